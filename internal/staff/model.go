package staff

import (
	"errors"
	"fmt"
)

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleDoctor       Role = "doctor"
	RoleReceptionist Role = "receptionist"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleDoctor, RoleReceptionist:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown staff role %q", s)
}

var ErrNotInDirectory = errors.New("staff record not found in directory")

// Record is a staff member as returned by the hospital API. ID is the
// server-assigned canonical identifier; LoginID is the human-facing business
// identifier staff type into search and update forms. Both are unique per
// role, but only ID is immutable.
type Record struct {
	ID      string `json:"_id"`
	LoginID string `json:"loginId"`
	Role    Role   `json:"role"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`

	// Doctor-only fields.
	Specialization  string `json:"specialization,omitempty"`
	Experience      int    `json:"experience,omitempty"`
	Education       string `json:"education,omitempty"`
	ConsultationFee int    `json:"consultationFee,omitempty"`
	Available       bool   `json:"available,omitempty"`
	ProfilePicture  string `json:"profilePicture,omitempty"`
}

func (r Record) Key() string { return r.ID }

// Validate checks the minimum shape the client relies on. Responses failing
// it are rejected at the gateway boundary instead of propagating half-formed
// records into a store.
func (r Record) Validate() error {
	if r.ID == "" {
		return errors.New("staff record missing canonical id")
	}
	if r.LoginID == "" {
		return errors.New("staff record missing login id")
	}
	if _, err := ParseRole(string(r.Role)); err != nil {
		return err
	}
	return nil
}

// Update is a partial staff mutation. Nil fields are left untouched both in
// the request payload and when merged into a cached record.
type Update struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Specialization  *string `json:"specialization,omitempty"`
	Experience      *int    `json:"experience,omitempty"`
	Education       *string `json:"education,omitempty"`
	ConsultationFee *int    `json:"consultationFee,omitempty"`
	Available       *bool   `json:"available,omitempty"`
	ProfilePicture  *string `json:"profilePicture,omitempty"`
}

// Apply shallow-merges the update into rec.
func (u Update) Apply(rec *Record) {
	if u.Name != nil {
		rec.Name = *u.Name
	}
	if u.Email != nil {
		rec.Email = *u.Email
	}
	if u.Phone != nil {
		rec.Phone = *u.Phone
	}
	if u.Specialization != nil {
		rec.Specialization = *u.Specialization
	}
	if u.Experience != nil {
		rec.Experience = *u.Experience
	}
	if u.Education != nil {
		rec.Education = *u.Education
	}
	if u.ConsultationFee != nil {
		rec.ConsultationFee = *u.ConsultationFee
	}
	if u.Available != nil {
		rec.Available = *u.Available
	}
	if u.ProfilePicture != nil {
		rec.ProfilePicture = *u.ProfilePicture
	}
}
