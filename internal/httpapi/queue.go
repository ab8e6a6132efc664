package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"playqueue/internal/store"
	"playqueue/shared/go/models"
)

type trackRequest struct {
	TrackID string `json:"trackId"`
}

type moveRequest struct {
	FromIndex *int `json:"fromIndex"`
	ToIndex   *int `json:"toIndex"`
}

type settingsRequest struct {
	ShuffleMode *bool   `json:"shuffleMode"`
	RepeatMode  *string `json:"repeatMode"`
}

func (s *Server) handleGetQueue(w http.ResponseWriter, r *http.Request) {
	queue, err := s.queues.GetQueue(r.Context(), userIDFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, queue)
}

func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	trackID, ok := decodeTrackRequest(w, r)
	if !ok {
		return
	}

	entry, err := s.queues.Append(r.Context(), userIDFrom(r), trackID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handlePrepend(w http.ResponseWriter, r *http.Request) {
	trackID, ok := decodeTrackRequest(w, r)
	if !ok {
		return
	}

	entry, err := s.queues.Prepend(r.Context(), userIDFrom(r), trackID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	trackID := strings.TrimSpace(mux.Vars(r)["trackId"])
	if trackID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "trackId is required"})
		return
	}

	if err := s.queues.Remove(r.Context(), userIDFrom(r), trackID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}
	if req.FromIndex == nil || req.ToIndex == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "fromIndex and toIndex are required"})
		return
	}

	if err := s.queues.Move(r.Context(), userIDFrom(r), *req.FromIndex, *req.ToIndex); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearQueue(w http.ResponseWriter, r *http.Request) {
	if err := s.queues.Clear(r.Context(), userIDFrom(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.queues.GetSettings(r.Context(), userIDFrom(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	update := models.SettingsUpdate{ShuffleMode: req.ShuffleMode}
	if req.RepeatMode != nil {
		mode, ok := models.ParseRepeatMode(strings.ToLower(strings.TrimSpace(*req.RepeatMode)))
		if !ok {
			writeServiceError(w, r, store.ErrInvalidMode)
			return
		}
		update.RepeatMode = &mode
	}

	settings, err := s.queues.UpdateSettings(r.Context(), userIDFrom(r), update)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func decodeTrackRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req trackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return "", false
	}

	trackID := strings.TrimSpace(req.TrackID)
	if trackID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "trackId is required"})
		return "", false
	}
	return trackID, true
}
