package stubapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/medicore/hospital-desk/internal/staff"
)

type loginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}

	role, err := staff.ParseRole(req.Role)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_role", err.Error())
		return
	}

	u, ok := s.data.userByLogin(req.LoginID, role)
	if !ok || bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "login id or password incorrect")
		return
	}

	token, err := s.issueToken(u.ID, string(u.Role))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token_error", "could not issue token")
		return
	}

	writeData(w, http.StatusOK, loginResponse{Token: token, Role: string(u.Role)})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; logout only acknowledges so the client clears
	// its session.
	writeData(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := authUser(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing_token", "authorization required")
		return
	}

	u, ok := s.data.userByID(claims.UserID)
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "no such user")
		return
	}

	writeData(w, http.StatusOK, u.Record)
}

type registerRequest struct {
	staff.Record
	Password string `json:"password"`
}

func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}

	if _, err := staff.ParseRole(string(req.Role)); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_role", err.Error())
		return
	}
	if req.LoginID == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "missing_fields", "loginId and name are required")
		return
	}
	if req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_fields", "password is required")
		return
	}
	if s.data.loginTaken(req.LoginID, req.Role) {
		writeError(w, http.StatusBadRequest, "login_taken", "login id already registered for this role")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hash_error", "could not hash password")
		return
	}

	req.Record.ID = ""
	created := s.data.addUser(req.Record, string(hash))
	writeData(w, http.StatusCreated, created)
}

func (s *Server) handleListUsersByRole(w http.ResponseWriter, r *http.Request) {
	role, err := staff.ParseRole(chi.URLParam(r, "role"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_role", err.Error())
		return
	}

	writeData(w, http.StatusOK, s.data.usersByRole(role))
}

type updateUserRequest struct {
	ID string `json:"_id"`
	staff.Update
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "missing_id", "_id is required")
		return
	}

	updated, ok := s.data.updateUser(req.ID, req.Update)
	if !ok {
		writeError(w, http.StatusNotFound, "user_not_found", "no such user")
		return
	}

	writeData(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.data.deleteUser(id) {
		writeError(w, http.StatusNotFound, "user_not_found", "no such user")
		return
	}

	writeData(w, http.StatusOK, map[string]string{"message": "deleted"})
}
