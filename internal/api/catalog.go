package api

import (
	"context"
	"net/http"

	"coachboard/internal/metrics"
)

const (
	exercisesPath = "/exercises"
	templatesPath = "/templates/sessions"
)

// ListExercises returns the exercise catalog, optionally for one category
func (c *Client) ListExercises(ctx context.Context, category string, opts ...RequestOption) ([]Exercise, error) {
	return doJSON[[]Exercise](ctx, c, metrics.OpListExercises, http.MethodGet, exercisesPath, filterQuery("category", category), nil, opts)
}

// CreateExercise adds an exercise to the catalog
func (c *Client) CreateExercise(ctx context.Context, in ExerciseInput, opts ...RequestOption) (*Exercise, error) {
	exercise, err := doJSON[Exercise](ctx, c, metrics.OpCreateExercise, http.MethodPost, exercisesPath, nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

// UpdateExercise applies a partial update
func (c *Client) UpdateExercise(ctx context.Context, id string, in ExerciseUpdate, opts ...RequestOption) (*Exercise, error) {
	exercise, err := doJSON[Exercise](ctx, c, metrics.OpUpdateExercise, http.MethodPut, byID(exercisesPath, id), nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

// DeleteExercise removes an exercise from the catalog
func (c *Client) DeleteExercise(ctx context.Context, id string, opts ...RequestOption) error {
	return c.doMessage(ctx, metrics.OpDeleteExercise, http.MethodDelete, byID(exercisesPath, id), nil, opts)
}

// ListSessionTemplates returns the session template catalog
func (c *Client) ListSessionTemplates(ctx context.Context, opts ...RequestOption) ([]SessionTemplate, error) {
	return doJSON[[]SessionTemplate](ctx, c, metrics.OpListTemplates, http.MethodGet, templatesPath, nil, nil, opts)
}

// CreateSessionTemplate adds a session template
func (c *Client) CreateSessionTemplate(ctx context.Context, in TemplateInput, opts ...RequestOption) (*SessionTemplate, error) {
	tmpl, err := doJSON[SessionTemplate](ctx, c, metrics.OpCreateTemplate, http.MethodPost, templatesPath, nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// UpdateSessionTemplate applies a partial update
func (c *Client) UpdateSessionTemplate(ctx context.Context, id string, in TemplateUpdate, opts ...RequestOption) (*SessionTemplate, error) {
	tmpl, err := doJSON[SessionTemplate](ctx, c, metrics.OpUpdateTemplate, http.MethodPut, byID(templatesPath, id), nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// DeleteSessionTemplate removes a session template
func (c *Client) DeleteSessionTemplate(ctx context.Context, id string, opts ...RequestOption) error {
	return c.doMessage(ctx, metrics.OpDeleteTemplate, http.MethodDelete, byID(templatesPath, id), nil, opts)
}
