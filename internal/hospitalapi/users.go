package hospitalapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/medicore/hospital-desk/internal/staff"
)

type registerRequest struct {
	staff.Record
	Password string `json:"password"`
}

type loginRequest struct {
	LoginID  string     `json:"loginId"`
	Password string     `json:"password"`
	Role     staff.Role `json:"role"`
}

// LoginResult is what a successful login returns to the session.
type LoginResult struct {
	Token string     `json:"token"`
	Role  staff.Role `json:"role"`
}

// Login authenticates a staff member. The returned token is also retained on
// the client and attached to every subsequent request.
func (c *Client) Login(ctx context.Context, loginID, password string, role staff.Role) (LoginResult, error) {
	var res LoginResult
	err := c.do(ctx, "login", http.MethodPost, "/users/login", nil, loginRequest{
		LoginID:  loginID,
		Password: password,
		Role:     role,
	}, &res)
	if err != nil {
		return LoginResult{}, err
	}
	if res.Token == "" {
		return LoginResult{}, &ValidationError{Op: "login", Message: "login response missing token"}
	}
	c.token = res.Token
	return res, nil
}

// Logout invalidates the session server-side and drops the retained token on
// success.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, "logout", http.MethodPost, "/users/logout", nil, nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// Profile fetches the record of the authenticated staff member.
func (c *Client) Profile(ctx context.Context) (staff.Record, error) {
	var rec staff.Record
	if err := c.do(ctx, "profile", http.MethodGet, "/users/profile", nil, nil, &rec); err != nil {
		return staff.Record{}, err
	}
	if err := rec.Validate(); err != nil {
		return staff.Record{}, &ValidationError{Op: "profile", Message: err.Error()}
	}
	return rec, nil
}

// RegisterUser creates a staff member and returns the server's canonical
// record.
func (c *Client) RegisterUser(ctx context.Context, rec staff.Record, password string) (staff.Record, error) {
	var created staff.Record
	err := c.do(ctx, "register_user", http.MethodPost, "/users/register", nil, registerRequest{
		Record:   rec,
		Password: password,
	}, &created)
	if err != nil {
		return staff.Record{}, err
	}
	if err := created.Validate(); err != nil {
		return staff.Record{}, &ValidationError{Op: "register_user", Message: err.Error()}
	}
	return created, nil
}

// ListUsersByRole fetches all staff records of one role.
func (c *Client) ListUsersByRole(ctx context.Context, role staff.Role) ([]staff.Record, error) {
	var recs []staff.Record
	path := fmt.Sprintf("/users/get-users-by-role/%s", role)
	if err := c.do(ctx, "list_users", http.MethodGet, path, nil, nil, &recs); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		if err := rec.Validate(); err != nil {
			return nil, &ValidationError{Op: "list_users", Message: err.Error()}
		}
	}
	return recs, nil
}

type updateUserRequest struct {
	ID string `json:"_id"`
	staff.Update
}

// UpdateUser applies a partial update to the staff record addressed by
// canonical ID and returns the server's updated record.
func (c *Client) UpdateUser(ctx context.Context, id string, upd staff.Update) (staff.Record, error) {
	var updated staff.Record
	err := c.do(ctx, "update_user", http.MethodPatch, "/users/update", nil, updateUserRequest{
		ID:     id,
		Update: upd,
	}, &updated)
	if err != nil {
		return staff.Record{}, err
	}
	if err := updated.Validate(); err != nil {
		return staff.Record{}, &ValidationError{Op: "update_user", Message: err.Error()}
	}
	return updated, nil
}

// DeleteUser removes the staff record addressed by canonical ID.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	path := fmt.Sprintf("/users/delete/%s", id)
	return c.do(ctx, "delete_user", http.MethodDelete, path, nil, nil, nil)
}
