package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/UnendingLoop/UploadServer/internal/model"
	"github.com/UnendingLoop/UploadServer/internal/mwlogger"
	"github.com/wb-go/wbf/zlog"
)

func errorCodeDefiner(err error) int {
	switch {
	case errors.Is(err, model.ErrImageNotFound):
		return 404
	case errors.Is(err, model.ErrBadContentType),
		errors.Is(err, model.ErrNoFileUploaded),
		errors.Is(err, model.ErrMultipleFiles),
		errors.Is(err, model.ErrMaxSizeExceeded),
		errors.Is(err, model.ErrUnsupportedFormat),
		errors.Is(err, model.ErrInvalidPage),
		errors.Is(err, model.ErrInvalidPerPage),
		errors.Is(err, model.ErrPerPageNotAvailable),
		errors.Is(err, model.ErrInvalidSortParam),
		errors.Is(err, model.ErrInvalidSortValue):
		return 400
	default:
		return 500
	}
}

func sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		zlog.Logger.Warn().Err(err).Msg("Failed to encode JSON response")
	}
}

// sendJSONError writes {"detail": msg} and logs with severity scaled to the
// status class: client errors as warnings, server errors as errors.
func sendJSONError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	logger := mwlogger.LoggerFromContext(r.Context())
	if status >= 500 {
		logger.Error().Int("status", status).Msg(msg)
	} else {
		logger.Warn().Int("status", status).Msg(msg)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"detail": msg}); err != nil {
		logger.Warn().Err(err).Msg("Failed to encode JSON error response")
	}
}
