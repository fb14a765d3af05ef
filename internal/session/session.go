package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/medicore/hospital-desk/internal/hospitalapi"
	"github.com/medicore/hospital-desk/internal/staff"
)

var ErrNotLoggedIn = errors.New("not logged in")

type Gateway interface {
	Login(ctx context.Context, loginID, password string, role staff.Role) (hospitalapi.LoginResult, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (staff.Record, error)
}

// Session is the auth state of one portal run: token, role, and the current
// user's record. It is cleared only by a successful logout or a failed
// login.
type Session struct {
	gw       Gateway
	log      zerolog.Logger
	loggedIn bool
	token    string
	role     staff.Role
	user     *staff.Record
}

func New(gw Gateway, log zerolog.Logger) *Session {
	return &Session{gw: gw, log: log}
}

func (s *Session) Login(ctx context.Context, loginID, password string, role staff.Role) error {
	res, err := s.gw.Login(ctx, loginID, password, role)
	if err != nil {
		return err
	}
	s.loggedIn = true
	s.token = res.Token
	s.role = res.Role
	s.log.Info().Str("role", string(res.Role)).Msg("logged in")
	return nil
}

// LoadProfile fetches and retains the authenticated user's record.
func (s *Session) LoadProfile(ctx context.Context) (staff.Record, error) {
	if !s.loggedIn {
		return staff.Record{}, ErrNotLoggedIn
	}
	rec, err := s.gw.Profile(ctx)
	if err != nil {
		return staff.Record{}, err
	}
	s.user = &rec
	return rec, nil
}

// Logout invalidates the session server-side, then clears local state. A
// failed logout leaves the session intact so the user can retry.
func (s *Session) Logout(ctx context.Context) error {
	if !s.loggedIn {
		return ErrNotLoggedIn
	}
	if err := s.gw.Logout(ctx); err != nil {
		return err
	}
	s.loggedIn = false
	s.token = ""
	s.role = ""
	s.user = nil
	s.log.Info().Msg("logged out")
	return nil
}

func (s *Session) LoggedIn() bool { return s.loggedIn }

func (s *Session) Token() string { return s.token }

func (s *Session) Role() staff.Role { return s.role }

func (s *Session) User() (staff.Record, bool) {
	if s.user == nil {
		return staff.Record{}, false
	}
	return *s.user, true
}

// ExpiresAt reads the expiry claim out of the session token without
// verifying the signature; verification is the server's job, the client only
// surfaces when a re-login will be needed.
func (s *Session) ExpiresAt() (time.Time, bool) {
	if s.token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
