package appointment

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(s), nil
	}
	return "", fmt.Errorf("unknown appointment status %q", s)
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

var (
	ErrInvalidTransition  = errors.New("invalid appointment status transition")
	ErrUnknownAppointment = errors.New("appointment not found in ledger")
)

// CheckTransition enforces the only permitted status changes:
// pending -> confirmed and pending -> cancelled. Confirmed and cancelled are
// terminal.
func CheckTransition(from, to Status) error {
	if from != StatusPending {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if to != StatusConfirmed && to != StatusCancelled {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	return nil
}

// PartyRef is a weak reference to a patient or doctor. The API sends it
// either as a bare canonical ID or as an embedded object carrying a
// denormalized snapshot, depending on the endpoint.
type PartyRef struct {
	ID        string `json:"_id"`
	Name      string `json:"name,omitempty"`
	Phone     string `json:"phone,omitempty"`
	PatientID string `json:"patientId,omitempty"`
}

func (p *PartyRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*p = PartyRef{ID: id}
		return nil
	}
	type alias PartyRef
	var obj alias
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*p = PartyRef(obj)
	return nil
}

func (p PartyRef) MarshalJSON() ([]byte, error) {
	if p.Name == "" && p.Phone == "" && p.PatientID == "" {
		return json.Marshal(p.ID)
	}
	type alias PartyRef
	return json.Marshal(alias(p))
}

type Appointment struct {
	ID            string        `json:"_id"`
	Patient       PartyRef      `json:"patient"`
	Doctor        PartyRef      `json:"doctor"`
	DateTime      time.Time     `json:"dateTime"`
	Status        Status        `json:"status"`
	Reason        string        `json:"reason"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}

func (a Appointment) Key() string { return a.ID }

func (a Appointment) Validate() error {
	if a.ID == "" {
		return errors.New("appointment missing canonical id")
	}
	if _, err := ParseStatus(string(a.Status)); err != nil {
		return err
	}
	return nil
}

// CreateRequest is the payload for booking an appointment. Both parties are
// sent as bare canonical IDs.
type CreateRequest struct {
	PatientID     string        `json:"patient"`
	DoctorID      string        `json:"doctor"`
	Reason        string        `json:"reason"`
	DateTime      time.Time     `json:"dateTime"`
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
}

// Update is a partial appointment mutation; only status changes are exposed.
type Update struct {
	Status *Status `json:"status,omitempty"`
}
