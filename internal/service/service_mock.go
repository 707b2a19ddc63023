package service

import (
	"context"
	"io"

	"github.com/UnendingLoop/UploadServer/internal/model"
)

// MOCK REPOSITORY

type mockRepo struct {
	createFn           func(ctx context.Context, img *model.Image) error
	deleteByFilenameFn func(ctx context.Context, filename string) (bool, error)
	getListFn          func(ctx context.Context, limit, offset int, column, direction string) ([]model.Image, error)
	countAllFn         func(ctx context.Context) (int, error)
}

func (m *mockRepo) Create(ctx context.Context, img *model.Image) error {
	return m.createFn(ctx, img)
}

func (m *mockRepo) DeleteByFilename(ctx context.Context, filename string) (bool, error) {
	return m.deleteByFilenameFn(ctx, filename)
}

func (m *mockRepo) GetListPaginatedSorted(ctx context.Context, limit, offset int, column, direction string) ([]model.Image, error) {
	return m.getListFn(ctx, limit, offset, column, direction)
}

func (m *mockRepo) CountAll(ctx context.Context) (int, error) {
	return m.countAllFn(ctx)
}

// MOCK STORAGE

type mockStorage struct {
	saveFn   func(name string, r io.Reader) error
	removeFn func(name string) error
}

func (m *mockStorage) Save(name string, r io.Reader) error {
	return m.saveFn(name, r)
}

func (m *mockStorage) Remove(name string) error {
	return m.removeFn(name)
}
