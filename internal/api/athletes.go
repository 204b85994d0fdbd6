package api

import (
	"context"
	"net/http"

	"coachboard/internal/metrics"
)

const athletesPath = "/athletes"

// ListAthletes returns athletes, optionally narrowed by name and sector
func (c *Client) ListAthletes(ctx context.Context, filter AthleteFilter, opts ...RequestOption) ([]Athlete, error) {
	query := filterQuery("name", filter.Name, "sector", filter.Sector)
	return doJSON[[]Athlete](ctx, c, metrics.OpListAthletes, http.MethodGet, athletesPath, query, nil, opts)
}

// GetAthlete returns a single athlete by id
func (c *Client) GetAthlete(ctx context.Context, id string, opts ...RequestOption) (*Athlete, error) {
	athlete, err := doJSON[Athlete](ctx, c, metrics.OpGetAthlete, http.MethodGet, byID(athletesPath, id), nil, nil, opts)
	if err != nil {
		return nil, err
	}
	return &athlete, nil
}

// CreateAthlete creates an athlete
func (c *Client) CreateAthlete(ctx context.Context, in AthleteInput, opts ...RequestOption) (*Athlete, error) {
	athlete, err := doJSON[Athlete](ctx, c, metrics.OpCreateAthlete, http.MethodPost, athletesPath, nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &athlete, nil
}

// UpdateAthlete applies a partial update
func (c *Client) UpdateAthlete(ctx context.Context, id string, in AthleteUpdate, opts ...RequestOption) (*Athlete, error) {
	athlete, err := doJSON[Athlete](ctx, c, metrics.OpUpdateAthlete, http.MethodPut, byID(athletesPath, id), nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &athlete, nil
}

// DeleteAthlete deletes an athlete
func (c *Client) DeleteAthlete(ctx context.Context, id string, opts ...RequestOption) error {
	return c.doMessage(ctx, metrics.OpDeleteAthlete, http.MethodDelete, byID(athletesPath, id), nil, opts)
}
