package api

import (
	"context"
	"net/http"

	"coachboard/internal/metrics"
)

const (
	goalsPath    = "/goals"
	programsPath = "/programs"
)

// ListGoals returns goals, optionally for one athlete
func (c *Client) ListGoals(ctx context.Context, athleteID string, opts ...RequestOption) ([]Goal, error) {
	return doJSON[[]Goal](ctx, c, metrics.OpListGoals, http.MethodGet, goalsPath, filterQuery("athlete_id", athleteID), nil, opts)
}

// CreateGoal creates a goal
func (c *Client) CreateGoal(ctx context.Context, in GoalInput, opts ...RequestOption) (*Goal, error) {
	goal, err := doJSON[Goal](ctx, c, metrics.OpCreateGoal, http.MethodPost, goalsPath, nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal applies a partial update
func (c *Client) UpdateGoal(ctx context.Context, id string, in GoalUpdate, opts ...RequestOption) (*Goal, error) {
	goal, err := doJSON[Goal](ctx, c, metrics.OpUpdateGoal, http.MethodPut, byID(goalsPath, id), nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// DeleteGoal deletes a goal
func (c *Client) DeleteGoal(ctx context.Context, id string, opts ...RequestOption) error {
	return c.doMessage(ctx, metrics.OpDeleteGoal, http.MethodDelete, byID(goalsPath, id), nil, opts)
}

// ListPrograms returns programs, optionally for one athlete
func (c *Client) ListPrograms(ctx context.Context, athleteID string, opts ...RequestOption) ([]Program, error) {
	return doJSON[[]Program](ctx, c, metrics.OpListPrograms, http.MethodGet, programsPath, filterQuery("athlete_id", athleteID), nil, opts)
}

// CreateProgram creates a program
func (c *Client) CreateProgram(ctx context.Context, in ProgramInput, opts ...RequestOption) (*Program, error) {
	program, err := doJSON[Program](ctx, c, metrics.OpCreateProgram, http.MethodPost, programsPath, nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &program, nil
}

// UpdateProgram applies a partial update
func (c *Client) UpdateProgram(ctx context.Context, id string, in ProgramUpdate, opts ...RequestOption) (*Program, error) {
	program, err := doJSON[Program](ctx, c, metrics.OpUpdateProgram, http.MethodPut, byID(programsPath, id), nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &program, nil
}

// DeleteProgram deletes a program
func (c *Client) DeleteProgram(ctx context.Context, id string, opts ...RequestOption) error {
	return c.doMessage(ctx, metrics.OpDeleteProgram, http.MethodDelete, byID(programsPath, id), nil, opts)
}
