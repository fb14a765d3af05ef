// Package stubapi is a wire-compatible, in-memory stand-in for the remote
// hospital API. It exists so the portals, the smoke tool, and the end-to-end
// tests can run without a real backend; it is not a production server.
package stubapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/medicore/hospital-desk/internal/config"
)

const tokenTTL = 24 * time.Hour

type Server struct {
	data    *dataset
	secret  []byte
	log     zerolog.Logger
	limiter *ipRateLimiter
	env     string
	version string
}

func NewServer(cfg config.Config, log zerolog.Logger) *Server {
	return &Server{
		data:    newDataset(),
		secret:  []byte(cfg.JWTSecret),
		log:     log.With().Str("component", "stubapi").Logger(),
		limiter: newIPRateLimiter(rate.Limit(cfg.RateLimitRPS), int(cfg.RateLimitRPS)*2),
		env:     cfg.Env,
		version: "dev",
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.rateLimitMiddleware)

	r.Get("/health/live", s.handleLiveness)
	r.Get("/health/ready", s.handleReadiness)

	r.Post("/users/login", s.handleLogin)
	r.Post("/call-requests/create", s.handleCreateCallRequest)

	// Everything else requires a valid bearer token.
	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Post("/users/register", s.handleRegisterUser)
		r.Post("/users/logout", s.handleLogout)
		r.Get("/users/profile", s.handleProfile)
		r.Get("/users/get-users-by-role/{role}", s.handleListUsersByRole)
		r.Patch("/users/update", s.handleUpdateUser)
		r.Delete("/users/delete/{id}", s.handleDeleteUser)

		r.Post("/patients/create-or-find-patient", s.handleCreateOrFindPatient)
		r.Get("/patients/searchPatient", s.handleSearchPatients)
		r.Post("/patients/updatePatient/{id}", s.handleUpdatePatient)

		r.Post("/appointments/create", s.handleCreateAppointment)
		r.Get("/appointments/get-appointments", s.handleListAppointments)
		r.Put("/appointments/update-appointments/{id}", s.handleUpdateAppointment)
		r.Delete("/appointments/delete-appointments/{id}", s.handleDeleteAppointment)

		r.Get("/call-requests/get-call-requests", s.handleListCallRequests)
		r.Patch("/call-requests/attend-call-request/{id}", s.handleAttendCallRequest)
	})

	return r
}

type livenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type readinessResponse struct {
	Status string         `json:"status"`
	Env    string         `json:"env,omitempty"`
	Counts map[string]int `json:"counts"`
}

func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, livenessResponse{Status: "ok", Version: s.version, Env: s.env})
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	users, patients, appts, calls := s.data.counts()
	writeJSON(w, http.StatusOK, readinessResponse{
		Status: "ok",
		Env:    s.env,
		Counts: map[string]int{
			"users":        users,
			"patients":     patients,
			"appointments": appts,
			"callRequests": calls,
		},
	})
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type dataResponse struct {
	Data any `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeData wraps the payload in the API's uniform {"data": ...} envelope.
func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, dataResponse{Data: v})
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, errorResponse{Error: code, Details: details})
}
