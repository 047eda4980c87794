package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

type timerStopResponse struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	TimeEntry *models.TimeEntry `json:"time_entry"`
}

func (s *Server) handleTimerActive(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Timer.Active(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	// Idle encodes as JSON null.
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTimerStart(w http.ResponseWriter, r *http.Request) {
	var in models.TimerStartInput
	if err := decodeJSON(r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, err := s.svc.Timer.Start(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleTimerStop(w http.ResponseWriter, r *http.Request) {
	entry, err := s.svc.Timer.Stop(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, timerStopResponse{
		Success:   true,
		Message:   "Timer stopped successfully",
		TimeEntry: entry,
	})
}
