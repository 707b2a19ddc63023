// Package main launches the upload server: N workers, each bound to its own
// listening port with its own database pool, sharing only the upload
// directory on disk.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/UnendingLoop/UploadServer/internal/model"
	"github.com/UnendingLoop/UploadServer/internal/mwlogger"
	"github.com/UnendingLoop/UploadServer/internal/repository"
	"github.com/UnendingLoop/UploadServer/internal/service"
	"github.com/UnendingLoop/UploadServer/internal/storage/diskstorage"
	"github.com/UnendingLoop/UploadServer/internal/transport"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/zlog"
)

func main() {
	// инициализировать конфиг/считать энвы
	appConfig := config.New()
	appConfig.EnableEnv("")
	if err := appConfig.LoadEnvFiles("./.env"); err != nil {
		log.Fatalf("Failed to load envs: %s\nExiting app...", err)
	}

	// стартуем логгер
	zlog.InitConsole()
	level := appConfig.GetString("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	if err := zlog.SetLevel(level); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// слушатель прерываний - контекст для всего приложения
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workers := atoiOrDefault(appConfig.GetString("WEB_SERVER_WORKERS"), 1)
	startPort := atoiOrDefault(appConfig.GetString("WEB_SERVER_START_PORT"), 8000)
	maxFileSize := int64(atoiOrDefault(appConfig.GetString("MAX_FILE_SIZE"), int(model.DefaultMaxFileSize)))
	uploadDir := appConfig.GetString("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "./uploads"
	}

	// миграция выполняется один раз, до старта воркеров
	bootConn, err := repository.ConnectWithRetries(appConfig, 5, 10*time.Second)
	if err != nil {
		log.Fatal("Failed to connect to DB. Exiting the app...")
	}
	if err := repository.MigrateWithRetries(bootConn.Master, "./migrations", 10, 15*time.Second); err != nil {
		log.Fatal("Out of migration retries. Exiting the app...")
	}
	if err := bootConn.Master.Close(); err != nil {
		zlog.Logger.Warn().Err(err).Msg("Failed to close bootstrap DB-conn")
	}

	// каждый воркер получает свой порт и свой пул соединений
	servers := make([]*http.Server, 0, workers)
	pools := make([]*dbpg.DB, 0, workers)

	for i := range workers {
		dbConn, err := repository.ConnectWithRetries(appConfig, 5, 10*time.Second)
		if err != nil {
			log.Fatal("Failed to connect to DB. Exiting the app...")
		}
		pools = append(pools, dbConn)

		repo := repository.NewPostgresImageRepo(dbConn)
		strg := diskstorage.New(uploadDir)

		var svc ImageAPIService = service.NewImageService(repo, strg, maxFileSize)
		handlers := transport.NewImageHandler(svc)

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", startPort+i),
			Handler: mwlogger.NewMWLogger(transport.NewServer(handlers)),
		}
		servers = append(servers, srv)

		go func(srv *http.Server, worker int) {
			zlog.Logger.Info().Msgf("Worker %d running on http://localhost%s", worker, srv.Addr)
			err := srv.ListenAndServe()
			if err != nil {
				switch {
				case errors.Is(err, http.ErrServerClosed):
					zlog.Logger.Info().Msgf("Worker %d gracefully stopping...", worker)
				default:
					zlog.Logger.Error().Err(err).Msgf("Worker %d stopped", worker)
					stop()
				}
			}
		}(srv, i+1)
	}

	// ждем отмены контекста для запуска грейсфул закрытия
	<-ctx.Done()

	shutdown(servers, pools)
	zlog.Logger.Info().Msg("Exiting app...")
}

func atoiOrDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("Failed to parse config value %q: %v", s, err)
	}
	return v
}

func shutdown(servers []*http.Server, pools []*dbpg.DB) {
	zlog.Logger.Info().Msg("Interrupt received!!! Starting shutdown sequence...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for i, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			zlog.Logger.Warn().Err(err).Msgf("Failed to stop worker %d correctly", i+1)
		}
	}

	for i, pool := range pools {
		if err := pool.Master.Close(); err != nil {
			zlog.Logger.Warn().Err(err).Msgf("Failed to close DB-conn of worker %d correctly", i+1)
			continue
		}
	}
	zlog.Logger.Info().Msg("All servers stopped, DB-conns closed")
}
