package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"playqueue/internal/http/middleware"
	"playqueue/internal/store"
	"playqueue/shared/go/logging"
	"playqueue/shared/go/models"
)

// QueueService captures the queue workflows needed by the HTTP handlers.
type QueueService interface {
	GetQueue(ctx context.Context, userID string) (*models.Queue, error)
	Append(ctx context.Context, userID, trackID string) (models.QueueEntry, error)
	Prepend(ctx context.Context, userID, trackID string) (models.QueueEntry, error)
	Remove(ctx context.Context, userID, trackID string) error
	Move(ctx context.Context, userID string, fromIndex, toIndex int) error
	Clear(ctx context.Context, userID string) error
	GetSettings(ctx context.Context, userID string) (models.QueueSettings, error)
	UpdateSettings(ctx context.Context, userID string, update models.SettingsUpdate) (models.QueueSettings, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	queues QueueService
	auth   *middleware.Authenticator
}

// New configures a Server. Every /api/v1 route requires a token accepted by auth.
func New(queues QueueService, auth *middleware.Authenticator) *Server {
	return &Server{queues: queues, auth: auth}
}

// Routes exposes the HTTP handlers for queue management.
func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(s.auth.Require)

	api.HandleFunc("/queue", s.handleGetQueue).Methods(http.MethodGet)
	api.HandleFunc("/queue", s.handleClearQueue).Methods(http.MethodDelete)
	api.HandleFunc("/queue/tracks", s.handleAppend).Methods(http.MethodPost)
	api.HandleFunc("/queue/tracks/next", s.handlePrepend).Methods(http.MethodPost)
	api.HandleFunc("/queue/tracks/{trackId}", s.handleRemove).Methods(http.MethodDelete)
	api.HandleFunc("/queue/move", s.handleMove).Methods(http.MethodPost)
	api.HandleFunc("/queue/settings", s.handleGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/queue/settings", s.handleUpdateSettings).Methods(http.MethodPatch)

	return router
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeServiceError maps queue errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, store.ErrTrackNotFound):
		status, msg = http.StatusNotFound, "track not found"
	case errors.Is(err, store.ErrEntryNotFound):
		status, msg = http.StatusNotFound, "track not in queue"
	case errors.Is(err, store.ErrNotPlayable):
		status, msg = http.StatusUnprocessableEntity, "track is not playable audio"
	case errors.Is(err, store.ErrDuplicateEntry):
		status, msg = http.StatusConflict, "track already in queue"
	case errors.Is(err, store.ErrQueueFull):
		status, msg = http.StatusConflict, "queue is full"
	case errors.Is(err, store.ErrQueueChanged):
		status, msg = http.StatusConflict, "queue changed, retry"
	case errors.Is(err, store.ErrInvalidIndex):
		status, msg = http.StatusBadRequest, "index out of range"
	case errors.Is(err, store.ErrInvalidMode):
		status, msg = http.StatusBadRequest, "repeatMode must be one of off, one, all"
	case errors.Is(err, store.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, "unauthorized"
	case errors.Is(err, store.ErrStorageUnavailable):
		status, msg = http.StatusServiceUnavailable, "storage unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status, msg = http.StatusServiceUnavailable, "request cancelled"
	}

	if status >= http.StatusInternalServerError {
		logging.WithContext(r.Context()).Error().Err(err).Int("status_code", status).Msg("queue request failed")
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func userIDFrom(r *http.Request) string {
	userID, _ := logging.UserID(r.Context())
	return userID
}
