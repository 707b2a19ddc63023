package main

import (
	"context"
	"io"

	"github.com/UnendingLoop/UploadServer/internal/model"
	"github.com/UnendingLoop/UploadServer/internal/params"
)

type ImageAPIService interface {
	ParseUpload(contentType string, body io.Reader) (*model.IncomingFile, error)
	Upload(ctx context.Context, file *model.IncomingFile) (*model.Image, error)
	Delete(ctx context.Context, filename string) error
	GetList(ctx context.Context, pg params.Pagination, srt params.Sort) (*model.Listing, error)
}
