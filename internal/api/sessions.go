package api

import (
	"context"
	"net/http"

	"coachboard/internal/metrics"
)

const sessionsPath = "/sessions"

// ListSessions returns training sessions matching every non-empty filter
// field
func (c *Client) ListSessions(ctx context.Context, filter SessionFilter, opts ...RequestOption) ([]Session, error) {
	query := filterQuery(
		"athlete_id", filter.AthleteID,
		"program_id", filter.ProgramID,
		"start_date", filter.StartDate,
		"end_date", filter.EndDate,
	)
	return doJSON[[]Session](ctx, c, metrics.OpListSessions, http.MethodGet, sessionsPath, query, nil, opts)
}

// CreateSession creates a session
func (c *Client) CreateSession(ctx context.Context, in SessionInput, opts ...RequestOption) (*Session, error) {
	session, err := doJSON[Session](ctx, c, metrics.OpCreateSession, http.MethodPost, sessionsPath, nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// UpdateSession applies a partial update
func (c *Client) UpdateSession(ctx context.Context, id string, in SessionUpdate, opts ...RequestOption) (*Session, error) {
	session, err := doJSON[Session](ctx, c, metrics.OpUpdateSession, http.MethodPut, byID(sessionsPath, id), nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession deletes a session
func (c *Client) DeleteSession(ctx context.Context, id string, opts ...RequestOption) error {
	return c.doMessage(ctx, metrics.OpDeleteSession, http.MethodDelete, byID(sessionsPath, id), nil, opts)
}
