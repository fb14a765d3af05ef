package stubapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medicore/hospital-desk/internal/appointment"
	"github.com/medicore/hospital-desk/internal/staff"
)

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointment.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}

	p, ok := s.data.patientByID(req.PatientID)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_patient", "patient does not exist")
		return
	}
	doc, ok := s.data.userByID(req.DoctorID)
	if !ok || doc.Role != staff.RoleDoctor {
		writeError(w, http.StatusBadRequest, "unknown_doctor", "doctor does not exist")
		return
	}

	status := req.Status
	if status == "" {
		status = appointment.StatusPending
	}
	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = appointment.PaymentPending
	}

	created := s.data.addAppointment(appointment.Appointment{
		Patient: appointment.PartyRef{
			ID:        p.ID,
			Name:      p.Name,
			Phone:     p.Phone,
			PatientID: p.PatientID,
		},
		Doctor: appointment.PartyRef{
			ID:   doc.ID,
			Name: doc.Name,
		},
		DateTime:      req.DateTime,
		Status:        status,
		Reason:        req.Reason,
		PaymentStatus: paymentStatus,
	})

	writeData(w, http.StatusCreated, created)
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.data.listAppointments())
}

func (s *Server) handleUpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req appointment.Update
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}
	if req.Status == nil {
		writeError(w, http.StatusBadRequest, "missing_fields", "status is required")
		return
	}
	if _, err := appointment.ParseStatus(string(*req.Status)); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_status", err.Error())
		return
	}

	updated, err := s.data.setAppointmentStatus(id, *req.Status)
	if err != nil {
		switch {
		case errors.Is(err, appointment.ErrUnknownAppointment):
			writeError(w, http.StatusNotFound, "appointment_not_found", "no such appointment")
		case errors.Is(err, appointment.ErrInvalidTransition):
			writeError(w, http.StatusBadRequest, "invalid_transition", err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "update_failed", err.Error())
		}
		return
	}

	writeData(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.data.deleteAppointment(id) {
		writeError(w, http.StatusNotFound, "appointment_not_found", "no such appointment")
		return
	}

	writeData(w, http.StatusOK, map[string]string{"message": "deleted"})
}
