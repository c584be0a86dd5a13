package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitforge/workout-builder/internal/domain"
	"fitforge/workout-builder/internal/editor"
	"fitforge/workout-builder/internal/repository"
)

// --- Error Definitions ---
var (
	ErrWorkoutNotFound     = errors.New("workout not found")
	ErrWorkoutAccessDenied = errors.New("access denied to this workout")
)

// WorkoutService owns the editing session: it loads a workout, applies one
// editor operation per request, and persists the resulting tree. All tree
// semantics live in the editor package; this layer only adds ownership and
// storage.
type WorkoutService interface {
	Create(ctx context.Context, ownerID primitive.ObjectID, title string) (*domain.Workout, error)
	Get(ctx context.Context, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error)
	List(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error)
	Delete(ctx context.Context, ownerID, workoutID primitive.ObjectID) error

	ReplaceStructure(ctx context.Context, ownerID, workoutID primitive.ObjectID, structure *domain.WorkoutStructure) (*domain.Workout, error)
	SaveSettings(ctx context.Context, ownerID, workoutID primitive.ObjectID, title string, settings *domain.WorkoutSettings) (*domain.Workout, error)

	AddBlock(ctx context.Context, ownerID, workoutID primitive.ObjectID, kind *domain.StructureKind) (*domain.Workout, error)
	UpdateBlock(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx int, patch editor.BlockPatch) (*domain.Workout, error)
	DeleteBlock(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx int) (*domain.Workout, error)
	AddWarmupBlock(ctx context.Context, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error)
	AddCooldownBlock(ctx context.Context, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error)

	AddExercise(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx int, name string, supersetIdx *int) (*domain.Workout, error)
	UpdateExercise(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx, exerciseIdx int, patch editor.ExercisePatch, supersetIdx *int) (*domain.Workout, error)
	DeleteExercise(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx, exerciseIdx int, supersetIdx *int) (*domain.Workout, error)

	AddSuperset(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx int) (*domain.Workout, error)
	UpdateSuperset(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx, supersetIdx int, patch editor.SupersetPatch) (*domain.Workout, error)
	DeleteSuperset(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx, supersetIdx int) (*domain.Workout, error)

	MoveExercise(ctx context.Context, ownerID, workoutID primitive.ObjectID, srcBlockIdx, srcExerciseIdx int, srcSupersetIdx *int, dstBlockIdx, dstExerciseIdx int, dstSupersetIdx *int) (*domain.Workout, error)
	DragEnd(ctx context.Context, ownerID, workoutID primitive.ObjectID, active, over editor.DragItem) (*domain.Workout, bool, error)
}

type workoutService struct {
	workoutRepo repository.WorkoutRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(workoutRepo repository.WorkoutRepository) WorkoutService {
	return &workoutService{workoutRepo: workoutRepo}
}

// Create stores a new, empty workout.
func (s *workoutService) Create(ctx context.Context, ownerID primitive.ObjectID, title string) (*domain.Workout, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required to create a workout")
	}
	if title == "" {
		title = "New Workout"
	}

	workout := &domain.Workout{
		OwnerID: ownerID,
		Structure: domain.WorkoutStructure{
			Title:  title,
			Source: "manual",
			Blocks: []*domain.Block{},
		},
	}
	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	return s.workoutRepo.GetByID(ctx, id)
}

// Get loads a workout and normalizes it: missing entity ids are backfilled
// and the deprecated warmup setting is migrated into an explicit block. When
// normalization changed anything, the normalized tree is written back so the
// migration runs once per workout, not once per read.
func (s *workoutService) Get(ctx context.Context, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := loadOwned(ctx, s.workoutRepo, ownerID, workoutID)
	if err != nil {
		return nil, err
	}

	normalized := editor.EnsureIDs(&workout.Structure)
	migrated, changed := editor.MigrateLegacyWarmup(normalized)
	if !changed && normalized == &workout.Structure {
		return workout, nil
	}

	workout.Structure = *migrated
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

// List returns the owner's workouts.
func (s *workoutService) List(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID cannot be nil")
	}
	return s.workoutRepo.GetByOwnerID(ctx, ownerID)
}

// Delete removes a workout; the repository filter enforces ownership.
func (s *workoutService) Delete(ctx context.Context, ownerID, workoutID primitive.ObjectID) error {
	err := s.workoutRepo.Delete(ctx, workoutID, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrWorkoutNotFound
	}
	return err
}

// ReplaceStructure swaps in a whole new tree (used after client-side bulk
// edits). Ids are backfilled before persisting.
func (s *workoutService) ReplaceStructure(ctx context.Context, ownerID, workoutID primitive.ObjectID, structure *domain.WorkoutStructure) (*domain.Workout, error) {
	return s.apply(ctx, ownerID, workoutID, func(_ *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.EnsureIDs(structure), nil
	})
}

func (s *workoutService) SaveSettings(ctx context.Context, ownerID, workoutID primitive.ObjectID, title string, settings *domain.WorkoutSettings) (*domain.Workout, error) {
	return s.apply(ctx, ownerID, workoutID, func(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.SaveSettings(w, title, settings), nil
	})
}

func (s *workoutService) AddBlock(ctx context.Context, ownerID, workoutID primitive.ObjectID, kind *domain.StructureKind) (*domain.Workout, error) {
	return s.apply(ctx, ownerID, workoutID, func(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.AddBlock(w, kind)
	})
}

func (s *workoutService) UpdateBlock(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx int, patch editor.BlockPatch) (*domain.Workout, error) {
	return s.apply(ctx, ownerID, workoutID, func(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.UpdateBlock(w, blockIdx, patch)
	})
}

func (s *workoutService) DeleteBlock(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx int) (*domain.Workout, error) {
	return s.apply(ctx, ownerID, workoutID, func(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.DeleteBlock(w, blockIdx)
	})
}

func (s *workoutService) AddWarmupBlock(ctx context.Context, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	return s.apply(ctx, ownerID, workoutID, func(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.AddWarmupBlock(w)
	})
}

func (s *workoutService) AddCooldownBlock(ctx context.Context, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	return s.apply(ctx, ownerID, workoutID, func(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.AddCooldownBlock(w)
	})
}

func (s *workoutService) AddExercise(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx int, name string, supersetIdx *int) (*domain.Workout, error) {
	if name == "" {
		return nil, errors.New("exercise name is required")
	}
	return s.apply(ctx, ownerID, workoutID, func(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.AddExercise(w, blockIdx, name, supersetIdx)
	})
}

func (s *workoutService) UpdateExercise(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx, exerciseIdx int, patch editor.ExercisePatch, supersetIdx *int) (*domain.Workout, error) {
	return s.apply(ctx, ownerID, workoutID, func(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.UpdateExercise(w, blockIdx, exerciseIdx, patch, supersetIdx)
	})
}

func (s *workoutService) DeleteExercise(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx, exerciseIdx int, supersetIdx *int) (*domain.Workout, error) {
	return s.apply(ctx, ownerID, workoutID, func(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.DeleteExercise(w, blockIdx, exerciseIdx, supersetIdx)
	})
}

func (s *workoutService) AddSuperset(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx int) (*domain.Workout, error) {
	return s.apply(ctx, ownerID, workoutID, func(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.AddSuperset(w, blockIdx)
	})
}

func (s *workoutService) UpdateSuperset(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx, supersetIdx int, patch editor.SupersetPatch) (*domain.Workout, error) {
	return s.apply(ctx, ownerID, workoutID, func(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.UpdateSuperset(w, blockIdx, supersetIdx, patch)
	})
}

func (s *workoutService) DeleteSuperset(ctx context.Context, ownerID, workoutID primitive.ObjectID, blockIdx, supersetIdx int) (*domain.Workout, error) {
	return s.apply(ctx, ownerID, workoutID, func(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.DeleteSuperset(w, blockIdx, supersetIdx)
	})
}

func (s *workoutService) MoveExercise(ctx context.Context, ownerID, workoutID primitive.ObjectID, srcBlockIdx, srcExerciseIdx int, srcSupersetIdx *int, dstBlockIdx, dstExerciseIdx int, dstSupersetIdx *int) (*domain.Workout, error) {
	return s.apply(ctx, ownerID, workoutID, func(w *domain.WorkoutStructure) (*domain.WorkoutStructure, error) {
		return editor.MoveExercise(w, srcBlockIdx, srcExerciseIdx, srcSupersetIdx, dstBlockIdx, dstExerciseIdx, dstSupersetIdx)
	})
}

// DragEnd applies a completed drag gesture. The no-op path (drop onto the
// source, or no target) does not touch storage at all; the second return
// reports whether anything changed.
func (s *workoutService) DragEnd(ctx context.Context, ownerID, workoutID primitive.ObjectID, active, over editor.DragItem) (*domain.Workout, bool, error) {
	workout, err := loadOwned(ctx, s.workoutRepo, ownerID, workoutID)
	if err != nil {
		return nil, false, err
	}

	next, changed, err := editor.DragEnd(&workout.Structure, active, over)
	if err != nil {
		return nil, false, err
	}
	if !changed {
		return workout, false, nil
	}

	workout.Structure = *next
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, false, err
	}
	return workout, true, nil
}

// loadOwned fetches a workout and checks ownership. Shared by every service
// that reads the tree on a user's behalf.
func loadOwned(ctx context.Context, repo repository.WorkoutRepository, ownerID, workoutID primitive.ObjectID) (*domain.Workout, error) {
	workout, err := repo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if workout.OwnerID != ownerID {
		return nil, ErrWorkoutAccessDenied
	}
	return workout, nil
}

// apply is the shared load-mutate-store round trip for tree operations.
func (s *workoutService) apply(ctx context.Context, ownerID, workoutID primitive.ObjectID, op func(*domain.WorkoutStructure) (*domain.WorkoutStructure, error)) (*domain.Workout, error) {
	workout, err := loadOwned(ctx, s.workoutRepo, ownerID, workoutID)
	if err != nil {
		return nil, err
	}

	next, err := op(&workout.Structure)
	if err != nil {
		return nil, err
	}

	workout.Structure = *next
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}
