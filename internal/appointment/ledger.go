package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-desk/internal/patient"
	"github.com/medicore/hospital-desk/internal/store"
)

type Gateway interface {
	CreateAppointment(ctx context.Context, req CreateRequest) (Appointment, error)
	ListAppointments(ctx context.Context) ([]Appointment, error)
	UpdateAppointment(ctx context.Context, id string, upd Update) (Appointment, error)
	DeleteAppointment(ctx context.Context, id string) error
}

// PatientGateway is the slice of the patient API the booking flow needs.
type PatientGateway interface {
	CreateOrFindPatient(ctx context.Context, p patient.Patient) (patient.Patient, error)
}

// BookingForm is what the reception desk collects to book an appointment.
type BookingForm struct {
	PatientName string
	Age         string
	Email       string
	Phone       string
	DoctorID    string
	Reason      string
	DateTime    time.Time
}

// Ledger is the client-side view of the appointment list. Like the staff
// directory, it mutates its cache only after the gateway confirms the server
// mutation, and leaves it untouched on failure.
type Ledger struct {
	gw       Gateway
	patients PatientGateway
	appts    *store.Store[Appointment]
	log      zerolog.Logger
}

func NewLedger(gw Gateway, patients PatientGateway, log zerolog.Logger) *Ledger {
	return &Ledger{
		gw:       gw,
		patients: patients,
		appts:    store.New[Appointment](log),
		log:      log.With().Str("component", "appointment_ledger").Logger(),
	}
}

// Refresh replaces the cached list with the server's.
func (l *Ledger) Refresh(ctx context.Context) error {
	appts, err := l.gw.ListAppointments(ctx)
	if err != nil {
		return err
	}
	l.appts.ReplaceAll(appts)
	return nil
}

// Book resolves the patient through the server's create-or-find operation,
// then creates a pending appointment for them with the chosen doctor. The
// returned appointment is the server's canonical record and is added to the
// cache.
func (l *Ledger) Book(ctx context.Context, form BookingForm) (Appointment, error) {
	p, err := l.patients.CreateOrFindPatient(ctx, patient.Patient{
		Name:   form.PatientName,
		Age:    form.Age,
		Email:  form.Email,
		Phone:  form.Phone,
		Gender: "other",
	})
	if err != nil {
		return Appointment{}, fmt.Errorf("resolve patient: %w", err)
	}

	created, err := l.gw.CreateAppointment(ctx, CreateRequest{
		PatientID:     p.ID,
		DoctorID:      form.DoctorID,
		Reason:        form.Reason,
		DateTime:      form.DateTime,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
	})
	if err != nil {
		return Appointment{}, err
	}

	l.appts.Add(created)
	return created, nil
}

// SetStatus moves an appointment out of pending. The transition guard runs
// against the cached record before any network call, so a terminal
// appointment is never offered a further status change server-side either.
func (l *Ledger) SetStatus(ctx context.Context, id string, to Status) error {
	appt, ok := l.appts.Get(id)
	if !ok {
		return fmt.Errorf("set status of %q: %w", id, ErrUnknownAppointment)
	}
	if err := CheckTransition(appt.Status, to); err != nil {
		return err
	}

	if _, err := l.gw.UpdateAppointment(ctx, id, Update{Status: &to}); err != nil {
		return err
	}

	l.appts.Patch(id, func(a *Appointment) { a.Status = to })
	return nil
}

func (l *Ledger) Confirm(ctx context.Context, id string) error {
	return l.SetStatus(ctx, id, StatusConfirmed)
}

func (l *Ledger) Cancel(ctx context.Context, id string) error {
	return l.SetStatus(ctx, id, StatusCancelled)
}

// Remove deletes an appointment server-side and drops it from the cache.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	if err := l.gw.DeleteAppointment(ctx, id); err != nil {
		return err
	}
	l.appts.Remove(id)
	return nil
}

func (l *Ledger) Get(id string) (Appointment, bool) {
	return l.appts.Get(id)
}

// All returns the cached list in insertion order.
func (l *Ledger) All() []Appointment {
	return l.appts.All()
}

// Select applies a display filter over the cached list.
func (l *Ledger) Select(v View) []Appointment {
	return Filter(l.appts.All(), v)
}

func (l *Ledger) Len() int {
	return l.appts.Len()
}
