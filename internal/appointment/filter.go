package appointment

import "strings"

// StatusAll disables status filtering in a view.
const StatusAll = "all"

// View selects the subsequence of a ledger to display. Zero value shows
// everything.
type View struct {
	// DoctorID, when set, keeps only appointments assigned to that doctor.
	DoctorID string
	// Search matches case-insensitively against the patient name and the
	// patient display ID. Empty matches everything.
	Search string
	// Status keeps only appointments in that status; empty or StatusAll
	// keeps all.
	Status string
}

// Filter derives a read-only view of list. Ordering is preserved and the
// result depends only on the inputs.
func Filter(list []Appointment, v View) []Appointment {
	needle := strings.ToLower(v.Search)

	out := make([]Appointment, 0, len(list))
	for _, appt := range list {
		if v.DoctorID != "" && appt.Doctor.ID != v.DoctorID {
			continue
		}
		if needle != "" {
			name := strings.ToLower(appt.Patient.Name)
			displayID := strings.ToLower(appt.Patient.PatientID)
			if !strings.Contains(name, needle) && !strings.Contains(displayID, needle) {
				continue
			}
		}
		if v.Status != "" && v.Status != StatusAll && string(appt.Status) != v.Status {
			continue
		}
		out = append(out, appt)
	}
	return out
}
