package patient

import "errors"

type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// Patient is a patient record as returned by the hospital API. Patients are
// looked up on demand by phone number and are not held in a long-lived
// client-side store.
type Patient struct {
	ID               string           `json:"_id"`
	PatientID        string           `json:"patientId,omitempty"`
	Name             string           `json:"name"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	Age              string           `json:"age"`
	Gender           string           `json:"gender"`
	MedicalHistory   string           `json:"medicalHistory"`
	EmergencyContact EmergencyContact `json:"emergencyContact"`
}

func (p Patient) Key() string { return p.ID }

func (p Patient) Validate() error {
	if p.ID == "" {
		return errors.New("patient record missing canonical id")
	}
	return nil
}

// SearchCriteria addresses the patient search endpoint. Both fields are
// optional; the reception desk searches by phone.
type SearchCriteria struct {
	Name  string
	Phone string
}

// NewForm returns the registration form defaults: gender "other", every
// other field blank.
func NewForm() Patient {
	return Patient{Gender: "other"}
}
