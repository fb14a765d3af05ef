package stubapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medicore/hospital-desk/internal/callrequest"
)

// handleCreateCallRequest accepts a call-back request from the public site;
// it is the only unauthenticated write.
func (s *Server) handleCreateCallRequest(w http.ResponseWriter, r *http.Request) {
	var req callrequest.CallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}
	if req.Name == "" || req.Phone == "" {
		writeError(w, http.StatusBadRequest, "missing_fields", "name and phone are required")
		return
	}

	req.ID = ""
	req.Status = callrequest.StatusPending
	created := s.data.addCallRequest(req)
	writeData(w, http.StatusCreated, created)
}

func (s *Server) handleListCallRequests(w http.ResponseWriter, r *http.Request) {
	status := callrequest.Status(r.URL.Query().Get("status"))
	if status != "" && status != callrequest.StatusPending && status != callrequest.StatusCompleted {
		writeError(w, http.StatusBadRequest, "invalid_status", "status must be pending or completed")
		return
	}

	writeData(w, http.StatusOK, s.data.listCallRequests(status))
}

func (s *Server) handleAttendCallRequest(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	updated, ok := s.data.attendCallRequest(id)
	if !ok {
		writeError(w, http.StatusNotFound, "call_request_not_found", "no such call request")
		return
	}

	writeData(w, http.StatusOK, updated)
}
