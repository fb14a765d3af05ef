package hospitalapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/medicore/hospital-desk/internal/appointment"
)

// CreateAppointment books an appointment and returns the server's canonical
// record, with the patient and doctor references denormalized.
func (c *Client) CreateAppointment(ctx context.Context, req appointment.CreateRequest) (appointment.Appointment, error) {
	var created appointment.Appointment
	if err := c.do(ctx, "create_appointment", http.MethodPost, "/appointments/create", nil, req, &created); err != nil {
		return appointment.Appointment{}, err
	}
	if err := created.Validate(); err != nil {
		return appointment.Appointment{}, &ValidationError{Op: "create_appointment", Message: err.Error()}
	}
	return created, nil
}

// ListAppointments fetches the full appointment list; filtering by doctor or
// patient happens client-side.
func (c *Client) ListAppointments(ctx context.Context) ([]appointment.Appointment, error) {
	var appts []appointment.Appointment
	if err := c.do(ctx, "list_appointments", http.MethodGet, "/appointments/get-appointments", nil, nil, &appts); err != nil {
		return nil, err
	}
	for _, appt := range appts {
		if err := appt.Validate(); err != nil {
			return nil, &ValidationError{Op: "list_appointments", Message: err.Error()}
		}
	}
	return appts, nil
}

// UpdateAppointment applies a partial update, in practice a status change.
func (c *Client) UpdateAppointment(ctx context.Context, id string, upd appointment.Update) (appointment.Appointment, error) {
	var updated appointment.Appointment
	path := fmt.Sprintf("/appointments/update-appointments/%s", id)
	if err := c.do(ctx, "update_appointment", http.MethodPut, path, nil, upd, &updated); err != nil {
		return appointment.Appointment{}, err
	}
	if err := updated.Validate(); err != nil {
		return appointment.Appointment{}, &ValidationError{Op: "update_appointment", Message: err.Error()}
	}
	return updated, nil
}

// DeleteAppointment removes an appointment.
func (c *Client) DeleteAppointment(ctx context.Context, id string) error {
	path := fmt.Sprintf("/appointments/delete-appointments/%s", id)
	return c.do(ctx, "delete_appointment", http.MethodDelete, path, nil, nil, nil)
}
