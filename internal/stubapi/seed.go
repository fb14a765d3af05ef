package stubapi

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"

	"github.com/medicore/hospital-desk/internal/appointment"
	"github.com/medicore/hospital-desk/internal/callrequest"
	"github.com/medicore/hospital-desk/internal/patient"
	"github.com/medicore/hospital-desk/internal/staff"
)

// DemoPassword is the password of every seeded staff account.
const DemoPassword = "letmein123"

var specializations = []string{
	"Dermatology",
	"Cardiology",
	"General Practice",
	"Orthopedics",
	"Endocrinology",
	"Neurology",
	"Pediatrics",
	"Psychiatry",
	"Ophthalmology",
	"ENT",
}

// Seed fills the dataset with demo staff, patients, appointments, and call
// requests. A fixed seed yields the same dataset. The first admin is always
// loginId "admin1" so the portals have a known way in.
func (s *Server) Seed(seed uint64, doctors, patients int) error {
	f := gofakeit.New(seed)

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	for i := 0; i < 2; i++ {
		s.data.addUser(staff.Record{
			LoginID: fmt.Sprintf("admin%d", i+1),
			Role:    staff.RoleAdmin,
			Name:    f.Name(),
			Email:   f.Email(),
			Phone:   f.Phone(),
		}, string(hash))
	}

	for i := 0; i < 3; i++ {
		s.data.addUser(staff.Record{
			LoginID: fmt.Sprintf("reception%d", i+1),
			Role:    staff.RoleReceptionist,
			Name:    f.Name(),
			Email:   f.Email(),
			Phone:   f.Phone(),
		}, string(hash))
	}

	doctorIDs := make([]string, 0, doctors)
	for i := 0; i < doctors; i++ {
		rec := s.data.addUser(staff.Record{
			LoginID:         fmt.Sprintf("doc%d", i+1),
			Role:            staff.RoleDoctor,
			Name:            "Dr. " + f.Name(),
			Email:           f.Email(),
			Phone:           f.Phone(),
			Specialization:  specializations[f.Number(0, len(specializations)-1)],
			Experience:      f.Number(1, 30),
			Education:       "MBBS",
			ConsultationFee: f.Number(20, 200) * 10,
			Available:       f.Bool(),
		}, string(hash))
		doctorIDs = append(doctorIDs, rec.ID)
	}

	patientIDs := make([]string, 0, patients)
	for i := 0; i < patients; i++ {
		p := s.data.addPatient(patient.Patient{
			Name:           f.Name(),
			Phone:          f.Phone(),
			Email:          f.Email(),
			Age:            fmt.Sprintf("%d", f.Number(1, 90)),
			Gender:         f.RandomString([]string{"male", "female", "other"}),
			MedicalHistory: f.Sentence(8),
			EmergencyContact: patient.EmergencyContact{
				Name:  f.Name(),
				Phone: f.Phone(),
			},
		})
		patientIDs = append(patientIDs, p.ID)
	}

	if len(doctorIDs) > 0 && len(patientIDs) > 0 {
		statuses := []appointment.Status{
			appointment.StatusPending,
			appointment.StatusPending,
			appointment.StatusConfirmed,
			appointment.StatusCancelled,
		}
		for i := 0; i < patients/2; i++ {
			pid := patientIDs[f.Number(0, len(patientIDs)-1)]
			did := doctorIDs[f.Number(0, len(doctorIDs)-1)]
			p, _ := s.data.patientByID(pid)
			doc, _ := s.data.userByID(did)

			s.data.addAppointment(appointment.Appointment{
				Patient: appointment.PartyRef{
					ID:        p.ID,
					Name:      p.Name,
					Phone:     p.Phone,
					PatientID: p.PatientID,
				},
				Doctor:        appointment.PartyRef{ID: doc.ID, Name: doc.Name},
				DateTime:      time.Now().Add(time.Duration(f.Number(1, 14*24)) * time.Hour).UTC(),
				Status:        statuses[f.Number(0, len(statuses)-1)],
				Reason:        f.Sentence(6),
				PaymentStatus: appointment.PaymentPending,
			})
		}
	}

	for i := 0; i < 8; i++ {
		status := callrequest.StatusPending
		if f.Bool() {
			status = callrequest.StatusCompleted
		}
		s.data.addCallRequest(callrequest.CallRequest{
			Name:      f.Name(),
			Email:     f.Email(),
			Phone:     f.Phone(),
			Reason:    f.Sentence(5),
			Status:    status,
			CreatedAt: time.Now().Add(-time.Duration(f.Number(1, 72)) * time.Hour).UTC(),
		})
	}

	users, pats, appts, calls := s.data.counts()
	s.log.Info().
		Int("users", users).
		Int("patients", pats).
		Int("appointments", appts).
		Int("call_requests", calls).
		Msg("seeded demo data")

	return nil
}
