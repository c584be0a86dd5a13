package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitforge/workout-builder/internal/clients"
	"fitforge/workout-builder/internal/domain"
	"fitforge/workout-builder/internal/repository"
)

// Validator is the slice of the mapper client this service needs.
type Validator interface {
	Validate(ctx context.Context, w *domain.WorkoutStructure) ([]clients.ExerciseValidation, error)
}

// MappingService forwards a workout to the exercise-mapping service and
// relays the per-exercise validation results. Nothing is persisted; the
// results are advisory until the user accepts a suggested rename.
type MappingService interface {
	ValidateWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) ([]clients.ExerciseValidation, error)
}

type mappingService struct {
	workoutRepo repository.WorkoutRepository
	validator   Validator
}

// NewMappingService creates a new instance of mappingService.
func NewMappingService(workoutRepo repository.WorkoutRepository, validator Validator) MappingService {
	return &mappingService{workoutRepo: workoutRepo, validator: validator}
}

func (s *mappingService) ValidateWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID) ([]clients.ExerciseValidation, error) {
	workout, err := loadOwned(ctx, s.workoutRepo, ownerID, workoutID)
	if err != nil {
		return nil, err
	}
	return s.validator.Validate(ctx, &workout.Structure)
}
