// Package service provides business-logic for the app
package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/UnendingLoop/UploadServer/internal/model"
	"github.com/UnendingLoop/UploadServer/internal/mwlogger"
	"github.com/UnendingLoop/UploadServer/internal/params"
	"github.com/UnendingLoop/UploadServer/internal/repository"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// FileStorage - contract for the byte-blob store under the upload directory
type FileStorage interface {
	Save(name string, r io.Reader) error
	Remove(name string) error
}

type ImageService struct {
	repo        repository.ImageRepo
	storage     FileStorage
	maxFileSize int64
}

func NewImageService(repo repository.ImageRepo, storage FileStorage, maxFileSize int64) *ImageService {
	if maxFileSize <= 0 {
		maxFileSize = model.DefaultMaxFileSize
	}
	return &ImageService{
		repo:        repo,
		storage:     storage,
		maxFileSize: maxFileSize,
	}
}

// Upload runs the ingestion pipeline for one parsed file: size, format and
// content checks (no side effects on rejection), storage-key derivation,
// then metadata insert followed by the byte write. A failed byte write is
// compensated by deleting the just-created metadata row, so the two
// resources never observably diverge.
func (s *ImageService) Upload(ctx context.Context, file *model.IncomingFile) (*model.Image, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	if file.Size > s.maxFileSize {
		return nil, fmt.Errorf("%w: limit is %d bytes", model.ErrMaxSizeExceeded, s.maxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Name))
	if !model.SupportedFormats[ext] {
		return nil, fmt.Errorf("%w: allowed formats are %s", model.ErrUnsupportedFormat, model.SupportedFormatsList())
	}

	// Content sniffing is authoritative over the extension check: anything
	// that doesn't decode as an image is rejected the same way.
	if _, err := imaging.Decode(bytes.NewReader(file.Data)); err != nil {
		return nil, fmt.Errorf("%w: allowed formats are %s", model.ErrUnsupportedFormat, model.SupportedFormatsList())
	}

	base := strings.TrimSuffix(strings.ToLower(file.Name), ext)
	storageKey := base + "_" + uuid.New().String()

	img := &model.Image{
		Filename:     storageKey,
		OriginalName: base,
		Size:         file.Size,
		FileType:     ext,
	}

	if err := s.repo.Create(ctx, img); err != nil {
		logger.Error().Err(err).Msg("Failed to create image record in DB")
		return nil, model.ErrCommon500
	}

	storedName := storageKey + ext
	if err := s.storage.Save(storedName, bytes.NewReader(file.Data)); err != nil {
		logger.Error().Err(err).Str("filename", storedName).Msg("Failed to save file bytes, rolling back metadata")
		if _, derr := s.repo.DeleteByFilename(ctx, storageKey); derr != nil {
			logger.Error().Err(derr).Str("filename", storageKey).Msg("Compensating delete failed: metadata row is orphaned")
		}
		return nil, model.ErrCommon500
	}

	logger.Info().Str("filename", storedName).Int64("size", img.Size).Msg("File uploaded successfully")
	return img, nil
}

// Delete removes the metadata row for a stored filename, then best-effort
// removes the byte blob. A filesystem failure after the row is gone is
// logged and swallowed: callers get success, the orphan file is tolerated.
func (s *ImageService) Delete(ctx context.Context, filename string) error {
	logger := mwlogger.LoggerFromContext(ctx)

	ext := strings.ToLower(filepath.Ext(filename))
	if !model.SupportedFormats[ext] {
		return fmt.Errorf("%w: allowed formats are %s", model.ErrUnsupportedFormat, model.SupportedFormatsList())
	}

	storageKey := strings.ToLower(strings.TrimSuffix(filename, filepath.Ext(filename)))

	deleted, err := s.repo.DeleteByFilename(ctx, storageKey)
	if err != nil {
		logger.Error().Err(err).Str("filename", storageKey).Msg("Failed to delete image record from DB")
		return model.ErrCommon500
	}
	if !deleted {
		logger.Warn().Str("filename", storageKey).Msg("Image record was not found in DB while deleting")
		return model.ErrImageNotFound
	}

	if err := s.storage.Remove(filename); err != nil {
		logger.Error().Err(err).Str("filename", filename).Msg("Failed to remove file from disk after DB delete")
	}

	return nil
}

// GetList returns stored filenames for one page plus the total page count.
func (s *ImageService) GetList(ctx context.Context, pg params.Pagination, srt params.Sort) (*model.Listing, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	images, err := s.repo.GetListPaginatedSorted(ctx, pg.Limit, pg.Offset, srt.Column, srt.Direction)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch images list from DB")
		return nil, model.ErrCommon500
	}

	total, err := s.repo.CountAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to count images in DB")
		return nil, model.ErrCommon500
	}

	files := make([]string, 0, len(images))
	for _, img := range images {
		files = append(files, img.Filename+img.FileType)
	}

	return &model.Listing{
		Files:      files,
		TotalPages: int(math.Ceil(float64(total) / float64(pg.Limit))),
	}, nil
}
