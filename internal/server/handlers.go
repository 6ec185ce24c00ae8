package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/claude/gtg/internal/reminder"
	"github.com/claude/gtg/internal/session"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	view, err := s.app.Today(r.Context())
	if err != nil {
		s.log.Error("today error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Reps int `json:"reps"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	view, err := s.app.AddSet(r.Context(), body.Reps)
	if errors.Is(err, session.ErrInvalidReps) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reps must be positive"})
		return
	}
	if err != nil {
		s.log.Error("add set error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRemoveSet(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set index"})
		return
	}

	// Out-of-range and already-empty slots are silent no-ops.
	view, err := s.app.RemoveSet(r.Context(), index)
	if err != nil {
		s.log.Error("remove set error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleReminder(w http.ResponseWriter, r *http.Request) {
	snap, err := s.app.ReminderState(r.Context())
	if err != nil {
		s.log.Error("reminder state error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDismissReminder(w http.ResponseWriter, r *http.Request) {
	snap, err := s.app.DismissReminder(r.Context())
	if errors.Is(err, reminder.ErrNotAlerting) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "no alert to dismiss"})
		return
	}
	if err != nil {
		s.log.Error("dismiss reminder error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.app.Statistics(r.Context())
	if err != nil {
		s.log.Error("stats error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
