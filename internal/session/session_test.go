package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicore/hospital-desk/internal/hospitalapi"
	"github.com/medicore/hospital-desk/internal/staff"
)

type fakeGateway struct {
	loginErr   error
	logoutErr  error
	profileErr error
	token      string
	profile    staff.Record
}

func (f *fakeGateway) Login(ctx context.Context, loginID, password string, role staff.Role) (hospitalapi.LoginResult, error) {
	if f.loginErr != nil {
		return hospitalapi.LoginResult{}, f.loginErr
	}
	return hospitalapi.LoginResult{Token: f.token, Role: role}, nil
}

func (f *fakeGateway) Logout(ctx context.Context) error {
	return f.logoutErr
}

func (f *fakeGateway) Profile(ctx context.Context) (staff.Record, error) {
	if f.profileErr != nil {
		return staff.Record{}, f.profileErr
	}
	return f.profile, nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestLoginStoresTokenAndRole(t *testing.T) {
	s := New(&fakeGateway{token: "tok"}, zerolog.Nop())

	require.NoError(t, s.Login(context.Background(), "doc1", "pw", staff.RoleDoctor))

	assert.True(t, s.LoggedIn())
	assert.Equal(t, "tok", s.Token())
	assert.Equal(t, staff.RoleDoctor, s.Role())
}

func TestLoginFailureLeavesSessionLoggedOut(t *testing.T) {
	s := New(&fakeGateway{loginErr: errors.New("bad credentials")}, zerolog.Nop())

	require.Error(t, s.Login(context.Background(), "doc1", "pw", staff.RoleDoctor))
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Token())
}

func TestLoadProfileRequiresLogin(t *testing.T) {
	s := New(&fakeGateway{}, zerolog.Nop())
	_, err := s.LoadProfile(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestLoadProfileRetainsUser(t *testing.T) {
	gw := &fakeGateway{
		token:   "tok",
		profile: staff.Record{ID: "1", LoginID: "doc1", Role: staff.RoleDoctor, Name: "Dr. A"},
	}
	s := New(gw, zerolog.Nop())
	require.NoError(t, s.Login(context.Background(), "doc1", "pw", staff.RoleDoctor))

	rec, err := s.LoadProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Dr. A", rec.Name)

	user, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "1", user.ID)
}

func TestLogoutFailureKeepsSession(t *testing.T) {
	gw := &fakeGateway{token: "tok", logoutErr: errors.New("down")}
	s := New(gw, zerolog.Nop())
	require.NoError(t, s.Login(context.Background(), "doc1", "pw", staff.RoleDoctor))

	require.Error(t, s.Logout(context.Background()))
	assert.True(t, s.LoggedIn())
	assert.Equal(t, "tok", s.Token())
}

func TestLogoutClearsSession(t *testing.T) {
	gw := &fakeGateway{token: "tok"}
	s := New(gw, zerolog.Nop())
	require.NoError(t, s.Login(context.Background(), "doc1", "pw", staff.RoleDoctor))

	require.NoError(t, s.Logout(context.Background()))
	assert.False(t, s.LoggedIn())
	assert.Empty(t, s.Token())
	_, ok := s.User()
	assert.False(t, ok)
}

func TestLogoutWhenNotLoggedIn(t *testing.T) {
	s := New(&fakeGateway{}, zerolog.Nop())
	assert.ErrorIs(t, s.Logout(context.Background()), ErrNotLoggedIn)
}

func TestExpiresAtReadsClaimWithoutVerification(t *testing.T) {
	exp := time.Now().Add(24 * time.Hour).Truncate(time.Second)
	gw := &fakeGateway{token: signedToken(t, exp)}
	s := New(gw, zerolog.Nop())
	require.NoError(t, s.Login(context.Background(), "doc1", "pw", staff.RoleDoctor))

	got, ok := s.ExpiresAt()
	require.True(t, ok)
	assert.True(t, got.Equal(exp))
}

func TestExpiresAtWithoutToken(t *testing.T) {
	s := New(&fakeGateway{}, zerolog.Nop())
	_, ok := s.ExpiresAt()
	assert.False(t, ok)
}

func TestExpiresAtWithOpaqueToken(t *testing.T) {
	gw := &fakeGateway{token: "not-a-jwt"}
	s := New(gw, zerolog.Nop())
	require.NoError(t, s.Login(context.Background(), "doc1", "pw", staff.RoleDoctor))

	_, ok := s.ExpiresAt()
	assert.False(t, ok)
}
