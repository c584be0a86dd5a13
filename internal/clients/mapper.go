package clients

import (
	"context"

	"fitforge/workout-builder/internal/config"
	"fitforge/workout-builder/internal/domain"
)

// MapperClient is a thin client for the exercise-mapping service, which
// matches free-text exercise names against the canonical device exercise
// library and reports per-exercise validation results.
type MapperClient struct {
	baseClient
}

// NewMapperClient builds a client from the service config.
func NewMapperClient(cfg config.ServiceConfig) *MapperClient {
	return &MapperClient{baseClient: newBaseClient("mapper", cfg)}
}

// ValidateRequest carries the whole tree; the service walks it itself.
type ValidateRequest struct {
	Workout *domain.WorkoutStructure `json:"workout"`
}

// ExerciseValidation is one per-exercise result.
type ExerciseValidation struct {
	ExerciseID    string   `json:"exercise_id"`
	Name          string   `json:"name"`
	Valid         bool     `json:"valid"`
	CanonicalName string   `json:"canonical_name,omitempty"`
	Confidence    float64  `json:"confidence,omitempty"`
	Suggestions   []string `json:"suggestions,omitempty"`
}

// ValidateResponse is the wire response for validation.
type ValidateResponse struct {
	Results []ExerciseValidation `json:"results"`
}

// Validate sends the tree for validation against the device library.
func (c *MapperClient) Validate(ctx context.Context, w *domain.WorkoutStructure) ([]ExerciseValidation, error) {
	var out ValidateResponse
	if err := c.postJSON(ctx, "/v1/validate", ValidateRequest{Workout: w}, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}
