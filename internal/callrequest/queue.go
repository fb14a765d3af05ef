package callrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medicore/hospital-desk/internal/store"
)

var (
	ErrUnknownRequest  = errors.New("call request not found in queue")
	ErrAlreadyAttended = errors.New("call request already attended")
)

type Gateway interface {
	// ListCallRequests fetches requests, optionally restricted to one
	// status server-side. Empty status fetches all.
	ListCallRequests(ctx context.Context, status Status) ([]CallRequest, error)
	AttendCallRequest(ctx context.Context, id string) (CallRequest, error)
}

// Queue is the client-side view of the call-back requests. Attending a
// request is a one-way pending -> completed transition, never reversed.
type Queue struct {
	gw   Gateway
	reqs *store.Store[CallRequest]
	log  zerolog.Logger
}

func NewQueue(gw Gateway, log zerolog.Logger) *Queue {
	return &Queue{
		gw:   gw,
		reqs: store.New[CallRequest](log),
		log:  log.With().Str("component", "callrequest_queue").Logger(),
	}
}

// Refresh replaces the cached requests with the server's list.
func (q *Queue) Refresh(ctx context.Context, status Status) error {
	reqs, err := q.gw.ListCallRequests(ctx, status)
	if err != nil {
		return err
	}
	q.reqs.ReplaceAll(reqs)
	return nil
}

// Attend marks a pending request completed. Requests already attended are
// rejected before any network call.
func (q *Queue) Attend(ctx context.Context, id string) error {
	req, ok := q.reqs.Get(id)
	if !ok {
		return fmt.Errorf("attend %q: %w", id, ErrUnknownRequest)
	}
	if req.Status == StatusCompleted {
		return fmt.Errorf("attend %q: %w", id, ErrAlreadyAttended)
	}

	if _, err := q.gw.AttendCallRequest(ctx, id); err != nil {
		return err
	}

	q.reqs.Patch(id, func(c *CallRequest) { c.Status = StatusCompleted })
	return nil
}

func (q *Queue) Get(id string) (CallRequest, bool) {
	return q.reqs.Get(id)
}

// All returns the cached requests in insertion order.
func (q *Queue) All() []CallRequest {
	return q.reqs.All()
}

// Pending returns the cached requests still awaiting a call.
func (q *Queue) Pending() []CallRequest {
	out := make([]CallRequest, 0, q.reqs.Len())
	for _, req := range q.reqs.All() {
		if req.Status == StatusPending {
			out = append(out, req)
		}
	}
	return out
}
