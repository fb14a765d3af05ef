package callrequest

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	// StatusCompleted is the server-side enum value. The portals label it
	// "Attended"; the label never appears on the wire.
	StatusCompleted Status = "completed"
)

// Label returns the display name for a status.
func (s Status) Label() string {
	switch s {
	case StatusCompleted:
		return "Attended"
	case StatusPending:
		return "Pending"
	}
	return string(s)
}

// CallRequest is a call-back request submitted through the public site.
type CallRequest struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Reason    string    `json:"reason"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c CallRequest) Key() string { return c.ID }

func (c CallRequest) Validate() error {
	if c.ID == "" {
		return errors.New("call request missing canonical id")
	}
	return nil
}
