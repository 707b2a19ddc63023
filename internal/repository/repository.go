// Package repository provides methods to work with DB
package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	"github.com/UnendingLoop/UploadServer/internal/model"
	"github.com/UnendingLoop/UploadServer/internal/repository/imgpostgres"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"
)

// ImageRepo is the persistence port for image metadata. DeleteByFilename
// reports "a row was removed" via the boolean; not-found is not an error.
type ImageRepo interface {
	Create(ctx context.Context, img *model.Image) error
	DeleteByFilename(ctx context.Context, filename string) (bool, error)
	GetListPaginatedSorted(ctx context.Context, limit, offset int, column, direction string) ([]model.Image, error)
	CountAll(ctx context.Context) (int, error)
}

func NewPostgresImageRepo(dbconn *dbpg.DB) ImageRepo {
	return imgpostgres.PostgresRepo{DB: dbconn}
}

// ConnectWithRetries opens a dbpg pool for POSTGRES_DSN, retrying until the
// DB accepts connections. Each worker gets its own pool, so pool bounds are
// kept small.
func ConnectWithRetries(appConfig *config.Config, retryCount int, idleTime time.Duration) (*dbpg.DB, error) {
	dbOptions := dbpg.Options{
		MaxOpenConns:    5,
		MaxIdleConns:    5,
		ConnMaxLifetime: 10 * time.Minute,
	}
	dsn := appConfig.GetString("POSTGRES_DSN")

	var dbConn *dbpg.DB
	var err error
	for range retryCount {
		dbConn, err = dbpg.New(dsn, nil, &dbOptions)
		if err == nil {
			return dbConn, nil
		}
		zlog.Logger.Warn().Err(err).Msgf("Failed to connect to PGDB, waiting %v before next retry...", idleTime)
		time.Sleep(idleTime)
	}

	return nil, err
}

// MigrateWithRetries applies migrations from migrationsPath, retrying on
// failure. Runs once at boot, before any worker starts serving.
func MigrateWithRetries(db *sql.DB, migrationsPath string, retries int, idle time.Duration) error {
	var err error
	for i := 1; i <= retries; i++ {
		zlog.Logger.Info().Msgf("Migration try #%d...", i)
		if err = runMigrate(db, migrationsPath); err == nil {
			return nil
		}
		zlog.Logger.Warn().Err(err).Msgf("Migration try #%d was unsuccessful, waiting %v before next try...", i, idle)
		time.Sleep(idle)
	}
	return err
}

func runMigrate(db *sql.DB, migrationsPath string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return err
	}

	sourceURL := "file://" + absPath
	zlog.Logger.Info().Msgf("Running migrations from %s", sourceURL)

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	zlog.Logger.Info().Msg("Database migrations applied successfully")
	return nil
}
