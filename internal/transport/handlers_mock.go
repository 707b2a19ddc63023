package transport

import (
	"context"
	"io"

	"github.com/UnendingLoop/UploadServer/internal/model"
	"github.com/UnendingLoop/UploadServer/internal/params"
)

type mockImageService struct {
	parseUploadFn func(contentType string, body io.Reader) (*model.IncomingFile, error)
	uploadFn      func(ctx context.Context, file *model.IncomingFile) (*model.Image, error)
	deleteFn      func(ctx context.Context, filename string) error
	getListFn     func(ctx context.Context, pg params.Pagination, srt params.Sort) (*model.Listing, error)
}

func (m *mockImageService) ParseUpload(contentType string, body io.Reader) (*model.IncomingFile, error) {
	return m.parseUploadFn(contentType, body)
}

func (m *mockImageService) Upload(ctx context.Context, file *model.IncomingFile) (*model.Image, error) {
	return m.uploadFn(ctx, file)
}

func (m *mockImageService) Delete(ctx context.Context, filename string) error {
	return m.deleteFn(ctx, filename)
}

func (m *mockImageService) GetList(ctx context.Context, pg params.Pagination, srt params.Sort) (*model.Listing, error) {
	return m.getListFn(ctx, pg, srt)
}
