package stubapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medicore/hospital-desk/internal/patient"
)

// handleCreateOrFindPatient de-duplicates on phone number: an existing
// patient with the submitted phone is returned as-is rather than creating a
// second record.
func (s *Server) handleCreateOrFindPatient(w http.ResponseWriter, r *http.Request) {
	var req patient.Patient
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}
	if req.Phone == "" {
		writeError(w, http.StatusBadRequest, "missing_fields", "phone is required")
		return
	}

	if existing, ok := s.data.patientByPhone(req.Phone); ok {
		writeData(w, http.StatusOK, existing)
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing_fields", "name is required")
		return
	}
	if req.Gender == "" {
		req.Gender = "other"
	}

	req.ID = ""
	req.PatientID = ""
	created := s.data.addPatient(req)
	writeData(w, http.StatusCreated, created)
}

func (s *Server) handleSearchPatients(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	phone := r.URL.Query().Get("phone")

	writeData(w, http.StatusOK, s.data.searchPatients(name, phone))
}

func (s *Server) handleUpdatePatient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req patient.Patient
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}

	updated, ok := s.data.updatePatient(id, req)
	if !ok {
		writeError(w, http.StatusNotFound, "patient_not_found", "no such patient")
		return
	}

	writeData(w, http.StatusOK, updated)
}
