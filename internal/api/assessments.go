package api

import (
	"context"
	"net/http"

	"coachboard/internal/metrics"
)

const (
	assessmentsPath = "/assessments"
	recordsPath     = "/records"
	analyticsPath   = "/analytics/athlete"
)

// ListAssessments returns physical assessments, optionally for one athlete
func (c *Client) ListAssessments(ctx context.Context, athleteID string, opts ...RequestOption) ([]PhysicalAssessment, error) {
	return doJSON[[]PhysicalAssessment](ctx, c, metrics.OpListAssessments, http.MethodGet, assessmentsPath, filterQuery("athlete_id", athleteID), nil, opts)
}

// CreateAssessment records a physical assessment
func (c *Client) CreateAssessment(ctx context.Context, in AssessmentInput, opts ...RequestOption) (*PhysicalAssessment, error) {
	a, err := doJSON[PhysicalAssessment](ctx, c, metrics.OpCreateAssessment, http.MethodPost, assessmentsPath, nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAssessment applies a partial update
func (c *Client) UpdateAssessment(ctx context.Context, id string, in AssessmentUpdate, opts ...RequestOption) (*PhysicalAssessment, error) {
	a, err := doJSON[PhysicalAssessment](ctx, c, metrics.OpUpdateAssessment, http.MethodPut, byID(assessmentsPath, id), nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAssessment deletes a physical assessment
func (c *Client) DeleteAssessment(ctx context.Context, id string, opts ...RequestOption) error {
	return c.doMessage(ctx, metrics.OpDeleteAssessment, http.MethodDelete, byID(assessmentsPath, id), nil, opts)
}

// ListRecords returns personal records, optionally for one athlete
func (c *Client) ListRecords(ctx context.Context, athleteID string, opts ...RequestOption) ([]PersonalRecord, error) {
	return doJSON[[]PersonalRecord](ctx, c, metrics.OpListRecords, http.MethodGet, recordsPath, filterQuery("athlete_id", athleteID), nil, opts)
}

// CreateRecord appends a personal record
func (c *Client) CreateRecord(ctx context.Context, in RecordInput, opts ...RequestOption) (*PersonalRecord, error) {
	r, err := doJSON[PersonalRecord](ctx, c, metrics.OpCreateRecord, http.MethodPost, recordsPath, nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// UpdateRecord applies a partial update
func (c *Client) UpdateRecord(ctx context.Context, id string, in RecordUpdate, opts ...RequestOption) (*PersonalRecord, error) {
	r, err := doJSON[PersonalRecord](ctx, c, metrics.OpUpdateRecord, http.MethodPut, byID(recordsPath, id), nil, in, opts)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRecord deletes a personal record
func (c *Client) DeleteRecord(ctx context.Context, id string, opts ...RequestOption) error {
	return c.doMessage(ctx, metrics.OpDeleteRecord, http.MethodDelete, byID(recordsPath, id), nil, opts)
}

// AthleteOverview returns the server-side training aggregate for an athlete
func (c *Client) AthleteOverview(ctx context.Context, athleteID string, opts ...RequestOption) (*AthleteOverview, error) {
	overview, err := doJSON[AthleteOverview](ctx, c, metrics.OpAthleteOverview, http.MethodGet, byID(analyticsPath, athleteID)+"/overview", nil, nil, opts)
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

// AthleteAssessmentSeries returns an athlete's assessment history as one
// series per dimension
func (c *Client) AthleteAssessmentSeries(ctx context.Context, athleteID string, opts ...RequestOption) (*AssessmentSeries, error) {
	series, err := doJSON[AssessmentSeries](ctx, c, metrics.OpAthleteAssessmentSets, http.MethodGet, byID(analyticsPath, athleteID)+"/assessments", nil, nil, opts)
	if err != nil {
		return nil, err
	}
	return &series, nil
}
