package hospitalapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/medicore/hospital-desk/internal/patient"
)

// CreateOrFindPatient registers a patient, or returns the existing record if
// the server de-duplicates the submission. Callers must not assume the
// returned record is newly created.
func (c *Client) CreateOrFindPatient(ctx context.Context, p patient.Patient) (patient.Patient, error) {
	var res patient.Patient
	err := c.do(ctx, "create_or_find_patient", http.MethodPost, "/patients/create-or-find-patient", nil, p, &res)
	if err != nil {
		return patient.Patient{}, err
	}
	if err := res.Validate(); err != nil {
		return patient.Patient{}, &ValidationError{Op: "create_or_find_patient", Message: err.Error()}
	}
	return res, nil
}

// SearchPatients looks patients up by name or phone. An empty result is a
// valid outcome signaling "not found", never an error.
func (c *Client) SearchPatients(ctx context.Context, criteria patient.SearchCriteria) ([]patient.Patient, error) {
	query := url.Values{}
	if criteria.Name != "" {
		query.Set("name", criteria.Name)
	}
	if criteria.Phone != "" {
		query.Set("phone", criteria.Phone)
	}

	var res []patient.Patient
	if err := c.do(ctx, "search_patients", http.MethodGet, "/patients/searchPatient", query, nil, &res); err != nil {
		return nil, err
	}
	for _, p := range res {
		if err := p.Validate(); err != nil {
			return nil, &ValidationError{Op: "search_patients", Message: err.Error()}
		}
	}
	return res, nil
}

// UpdatePatient replaces the stored patient fields with the submitted form.
func (c *Client) UpdatePatient(ctx context.Context, id string, p patient.Patient) (patient.Patient, error) {
	var res patient.Patient
	path := fmt.Sprintf("/patients/updatePatient/%s", id)
	if err := c.do(ctx, "update_patient", http.MethodPost, path, nil, p, &res); err != nil {
		return patient.Patient{}, err
	}
	if err := res.Validate(); err != nil {
		return patient.Patient{}, &ValidationError{Op: "update_patient", Message: err.Error()}
	}
	return res, nil
}
