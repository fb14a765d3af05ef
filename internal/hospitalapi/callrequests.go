package hospitalapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/medicore/hospital-desk/internal/callrequest"
)

// ListCallRequests fetches call-back requests, optionally restricted to one
// status server-side.
func (c *Client) ListCallRequests(ctx context.Context, status callrequest.Status) ([]callrequest.CallRequest, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", string(status))
	}

	var reqs []callrequest.CallRequest
	if err := c.do(ctx, "list_call_requests", http.MethodGet, "/call-requests/get-call-requests", query, nil, &reqs); err != nil {
		return nil, err
	}
	for _, req := range reqs {
		if err := req.Validate(); err != nil {
			return nil, &ValidationError{Op: "list_call_requests", Message: err.Error()}
		}
	}
	return reqs, nil
}

// AttendCallRequest marks a request completed and returns the updated record.
func (c *Client) AttendCallRequest(ctx context.Context, id string) (callrequest.CallRequest, error) {
	var updated callrequest.CallRequest
	path := fmt.Sprintf("/call-requests/attend-call-request/%s", id)
	if err := c.do(ctx, "attend_call_request", http.MethodPatch, path, nil, nil, &updated); err != nil {
		return callrequest.CallRequest{}, err
	}
	if err := updated.Validate(); err != nil {
		return callrequest.CallRequest{}, &ValidationError{Op: "attend_call_request", Message: err.Error()}
	}
	return updated, nil
}
