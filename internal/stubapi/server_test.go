package stubapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hospital-desk/internal/appointment"
	"github.com/medicore/hospital-desk/internal/callrequest"
	"github.com/medicore/hospital-desk/internal/config"
	"github.com/medicore/hospital-desk/internal/hospitalapi"
	"github.com/medicore/hospital-desk/internal/patient"
	"github.com/medicore/hospital-desk/internal/session"
	"github.com/medicore/hospital-desk/internal/staff"
	"github.com/medicore/hospital-desk/internal/stubapi"
)

func startServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		Env:          "test",
		JWTSecret:    "test-secret",
		RateLimitRPS: 1000,
	}
	server := stubapi.NewServer(cfg, zerolog.Nop())
	require.NoError(t, server.Seed(1, 2, 4))

	srv := httptest.NewServer(server.Router())
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server) *hospitalapi.Client {
	t.Helper()
	return hospitalapi.New(srv.URL, 5*time.Second, zerolog.Nop())
}

func loginAs(t *testing.T, api *hospitalapi.Client, loginID string, role staff.Role) {
	t.Helper()
	_, err := api.Login(context.Background(), loginID, stubapi.DemoPassword, role)
	require.NoError(t, err)
}

func TestHealthEndpoints(t *testing.T) {
	srv := startServer(t)

	resp, err := http.Get(srv.URL + "/health/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/health/ready")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthenticationRequired(t *testing.T) {
	srv := startServer(t)
	api := newClient(t, srv)

	_, err := api.ListAppointments(context.Background())
	var verr *hospitalapi.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	srv := startServer(t)
	api := newClient(t, srv)

	_, err := api.Login(context.Background(), "admin1", "wrong", staff.RoleAdmin)
	var verr *hospitalapi.ValidationError
	require.ErrorAs(t, err, &verr)

	// Role is part of the credential: an admin login id is not a doctor.
	_, err = api.Login(context.Background(), "admin1", stubapi.DemoPassword, staff.RoleDoctor)
	assert.ErrorAs(t, err, &verr)
}

func TestSessionProfileRoundTrip(t *testing.T) {
	srv := startServer(t)
	api := newClient(t, srv)

	sess := session.New(api, zerolog.Nop())
	require.NoError(t, sess.Login(context.Background(), "doc1", stubapi.DemoPassword, staff.RoleDoctor))

	me, err := sess.LoadProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "doc1", me.LoginID)
	assert.Equal(t, staff.RoleDoctor, me.Role)
	assert.True(t, strings.HasPrefix(me.Name, "Dr. "))

	exp, ok := sess.ExpiresAt()
	require.True(t, ok)
	assert.True(t, exp.After(time.Now()))

	require.NoError(t, sess.Logout(context.Background()))
	assert.False(t, sess.LoggedIn())
}

func TestStaffDirectoryFlow(t *testing.T) {
	srv := startServer(t)
	api := newClient(t, srv)
	loginAs(t, api, "admin1", staff.RoleAdmin)

	dir := staff.NewDirectory(staff.RoleDoctor, api, zerolog.Nop())
	require.NoError(t, dir.Refresh(context.Background()))
	require.Equal(t, 2, dir.Len())

	created, err := dir.Register(context.Background(), staff.Record{
		LoginID:        "doc99",
		Name:           "Dr. New",
		Email:          "new@example.com",
		Specialization: "Cardiology",
	}, "a-password")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 3, dir.Len())

	// The same login id cannot be registered twice for one role, and the
	// failed attempt must not grow the cache.
	_, err = dir.Register(context.Background(), staff.Record{LoginID: "doc99", Name: "Imposter"}, "pw")
	var verr *hospitalapi.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 3, dir.Len())

	phone := "555-9999"
	updated, err := dir.UpdateByLoginID(context.Background(), "doc99", staff.Update{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "555-9999", updated.Phone)

	cached, _ := dir.Get(created.ID)
	assert.Equal(t, "555-9999", cached.Phone)

	require.NoError(t, dir.RemoveByLoginID(context.Background(), "doc99"))
	assert.Equal(t, 2, dir.Len())

	err = dir.RemoveByLoginID(context.Background(), "doc99")
	assert.ErrorIs(t, err, staff.ErrNotInDirectory)
}

func TestPatientFindOrRegisterFlow(t *testing.T) {
	srv := startServer(t)
	api := newClient(t, srv)
	loginAs(t, api, "reception1", staff.RoleReceptionist)

	desk := patient.NewDesk(api, zerolog.Nop())

	// Unknown phone switches the desk into registration mode.
	require.NoError(t, desk.Search(context.Background(), "700-0001"))
	require.Equal(t, patient.ModeRegister, desk.Mode())
	assert.Equal(t, "700-0001", desk.Form().Phone)

	form := desk.Form()
	form.Name = "Walk In"
	form.Age = "34"
	desk.SetForm(form)

	created, err := desk.Register(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, strings.HasPrefix(created.PatientID, "PAT-"))
	assert.Equal(t, "other", created.Gender)

	// Searching the same phone now loads the record for editing.
	require.NoError(t, desk.Search(context.Background(), "700-0001"))
	require.Equal(t, patient.ModeEdit, desk.Mode())

	form = desk.Form()
	form.MedicalHistory = "none"
	desk.SetForm(form)

	updated, err := desk.SaveEdits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "none", updated.MedicalHistory)

	// Registering the phone again yields the existing record, not a second
	// patient.
	again, err := api.CreateOrFindPatient(context.Background(), patient.Patient{Name: "Other Name", Phone: "700-0001"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

func TestAppointmentBookingFlow(t *testing.T) {
	srv := startServer(t)
	api := newClient(t, srv)
	loginAs(t, api, "reception1", staff.RoleReceptionist)

	doctors, err := api.ListUsersByRole(context.Background(), staff.RoleDoctor)
	require.NoError(t, err)
	require.NotEmpty(t, doctors)

	ledger := appointment.NewLedger(api, api, zerolog.Nop())
	require.NoError(t, ledger.Refresh(context.Background()))

	created, err := ledger.Book(context.Background(), appointment.BookingForm{
		PatientName: "Booked Patient",
		Age:         "40",
		Phone:       "700-0002",
		DoctorID:    doctors[0].ID,
		Reason:      "checkup",
		DateTime:    time.Now().Add(48 * time.Hour).UTC(),
	})
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusPending, created.Status)
	assert.Equal(t, "Booked Patient", created.Patient.Name)
	assert.Equal(t, doctors[0].Name, created.Doctor.Name)

	require.NoError(t, ledger.Confirm(context.Background(), created.ID))
	got, _ := ledger.Get(created.ID)
	assert.Equal(t, appointment.StatusConfirmed, got.Status)

	// The ledger guard rejects a second transition locally.
	err = ledger.Cancel(context.Background(), created.ID)
	assert.ErrorIs(t, err, appointment.ErrInvalidTransition)

	// The server enforces the same rule for clients that skip the guard.
	to := appointment.StatusCancelled
	_, err = api.UpdateAppointment(context.Background(), created.ID, appointment.Update{Status: &to})
	var verr *hospitalapi.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "invalid_transition")

	require.NoError(t, ledger.Remove(context.Background(), created.ID))
	_, err = api.UpdateAppointment(context.Background(), created.ID, appointment.Update{Status: &to})
	var nfe *hospitalapi.NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestCallRequestFlow(t *testing.T) {
	srv := startServer(t)

	// The public site submits call requests without a token.
	resp, err := http.Post(srv.URL+"/call-requests/create", "application/json",
		strings.NewReader(`{"name":"Caller","phone":"700-0003","reason":"insurance question"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	api := newClient(t, srv)
	loginAs(t, api, "reception1", staff.RoleReceptionist)

	queue := callrequest.NewQueue(api, zerolog.Nop())
	require.NoError(t, queue.Refresh(context.Background(), callrequest.StatusPending))
	require.NotEmpty(t, queue.All())

	target := queue.All()[len(queue.All())-1]
	assert.Equal(t, "Caller", target.Name)

	require.NoError(t, queue.Attend(context.Background(), target.ID))
	got, _ := queue.Get(target.ID)
	assert.Equal(t, callrequest.StatusCompleted, got.Status)
	assert.Equal(t, "Attended", got.Status.Label())

	err = queue.Attend(context.Background(), target.ID)
	assert.ErrorIs(t, err, callrequest.ErrAlreadyAttended)
}
