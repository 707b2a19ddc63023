package imgpostgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/UnendingLoop/UploadServer/internal/model"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"
)

type PostgresRepo struct {
	DB *dbpg.DB
}

// Create inserts the metadata row and fills the generated id and
// server-assigned upload_time back into img.
func (p PostgresRepo) Create(ctx context.Context, img *model.Image) error {
	query := `INSERT INTO images (filename, original_name, size, file_type)
	VALUES ($1, $2, $3, $4)
	RETURNING id, upload_time`

	err := p.DB.QueryRowContext(ctx, query,
		img.Filename,
		img.OriginalName,
		img.Size,
		img.FileType,
	).Scan(&img.ID, &img.UploadTime)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrEntityCreation, err)
	}
	return nil
}

// DeleteByFilename removes the row keyed by the extension-less storage key.
// Returns false without error when no such row exists.
func (p PostgresRepo) DeleteByFilename(ctx context.Context, filename string) (bool, error) {
	query := `DELETE FROM images
	WHERE filename = $1
	RETURNING id`

	var id int64
	err := p.DB.QueryRowContext(ctx, query, filename).Scan(&id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("%w: %v", model.ErrEntityDeletion, err)
	}
	return true, nil
}

// GetListPaginatedSorted returns one page of records ordered by the given
// column and direction. Both values come exclusively from the params
// package's closed maps and are never raw user input; id breaks ties so
// paging stays stable.
func (p PostgresRepo) GetListPaginatedSorted(ctx context.Context, limit, offset int, column, direction string) ([]model.Image, error) {
	query := fmt.Sprintf(`SELECT id, filename, original_name, size, file_type, upload_time
	FROM images
	ORDER BY %s %s, id
	LIMIT $1
	OFFSET $2`, column, direction)

	rows, err := p.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrQueryExecution, err)
	}

	defer func() {
		if err := rows.Close(); err != nil {
			zlog.Logger.Warn().Err(err).Msg("Error while closing *sql.Rows after scanning")
		}
	}()

	images := make([]model.Image, 0, limit)
	for rows.Next() {
		var img model.Image
		if err := rows.Scan(&img.ID,
			&img.Filename,
			&img.OriginalName,
			&img.Size,
			&img.FileType,
			&img.UploadTime); err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrQueryExecution, err)
		}
		images = append(images, img)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrQueryExecution, rows.Err())
	}

	return images, nil
}

// CountAll returns the total number of stored images.
func (p PostgresRepo) CountAll(ctx context.Context) (int, error) {
	var total int
	err := p.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM images`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", model.ErrQueryExecution, err)
	}
	return total, nil
}
