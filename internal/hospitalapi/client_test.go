package hospitalapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hospital-desk/internal/appointment"
	"github.com/medicore/hospital-desk/internal/staff"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return New(srv.URL, 2*time.Second, zerolog.Nop()), srv
}

func TestLoginRetainsToken(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/login", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "doc1", req["loginId"])
		assert.Equal(t, "doctor", req["role"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"token":"tok-123","role":"doctor"}}`))
	}))
	defer srv.Close()

	res, err := c.Login(context.Background(), "doc1", "pw", staff.RoleDoctor)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", res.Token)
	assert.Equal(t, staff.RoleDoctor, res.Role)
	assert.Equal(t, "tok-123", c.Token())
}

func TestLoginRejectsMissingToken(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"role":"doctor"}}`))
	}))
	defer srv.Close()

	_, err := c.Login(context.Background(), "doc1", "pw", staff.RoleDoctor)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Empty(t, c.Token())
}

func TestBearerTokenAttachedOnceSet(t *testing.T) {
	var gotAuth string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c.SetToken("tok-456")
	_, err := c.ListAppointments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-456", gotAuth)
}

func TestNotFoundBecomesNotFoundError(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","details":"appointment missing"}`))
	}))
	defer srv.Close()

	_, err := c.ListAppointments(context.Background())
	var nfe *NotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.Contains(t, nfe.Error(), "appointment missing")
}

func TestClientErrorBecomesValidationError(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_transition"}`))
	}))
	defer srv.Close()

	to := appointment.StatusConfirmed
	_, err := c.UpdateAppointment(context.Background(), "1", appointment.Update{Status: &to})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), "invalid_transition")
}

func TestServerErrorBecomesTransportError(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := c.ListAppointments(context.Background())
	var terr *TransportError
	assert.ErrorAs(t, err, &terr)
}

func TestNetworkFailureBecomesTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	c := New(srv.URL, time.Second, zerolog.Nop())
	srv.Close()

	_, err := c.ListAppointments(context.Background())
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Error(t, terr.Unwrap())
}

func TestMalformedPayloadBecomesValidationError(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":"not an appointment list"}`))
	}))
	defer srv.Close()

	_, err := c.ListAppointments(context.Background())
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestMissingDataEnvelopeRejected(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := c.ListAppointments(context.Background())
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestInvalidRecordInListRejected(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Second record lacks a canonical id.
		_, _ = w.Write([]byte(`{"data":[
			{"_id":"1","loginId":"doc1","role":"doctor","name":"Dr. A"},
			{"loginId":"doc2","role":"doctor","name":"Dr. B"}
		]}`))
	}))
	defer srv.Close()

	_, err := c.ListUsersByRole(context.Background(), staff.RoleDoctor)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLogoutClearsTokenOnlyOnSuccess(t *testing.T) {
	fail := true
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c.SetToken("tok")
	require.Error(t, c.Logout(context.Background()))
	assert.Equal(t, "tok", c.Token())

	fail = false
	require.NoError(t, c.Logout(context.Background()))
	assert.Empty(t, c.Token())
}
