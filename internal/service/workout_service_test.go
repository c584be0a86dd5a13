package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitforge/workout-builder/internal/domain"
	"fitforge/workout-builder/internal/editor"
	"fitforge/workout-builder/internal/repository"
)

// fakeWorkoutRepo is an in-memory WorkoutRepository. It counts Update calls
// so tests can assert when the service persists and when it does not.
type fakeWorkoutRepo struct {
	workouts    map[primitive.ObjectID]*domain.Workout
	updateCalls int
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[primitive.ObjectID]*domain.Workout)}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) (primitive.ObjectID, error) {
	if workout.ID.IsZero() {
		workout.ID = primitive.NewObjectID()
	}
	stored := *workout
	r.workouts[workout.ID] = &stored
	return workout.ID, nil
}

func (r *fakeWorkoutRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Workout, error) {
	workout, ok := r.workouts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *workout
	return &copied, nil
}

func (r *fakeWorkoutRepo) GetByOwnerID(_ context.Context, ownerID primitive.ObjectID) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range r.workouts {
		if w.OwnerID == ownerID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) Update(_ context.Context, workout *domain.Workout) error {
	if _, ok := r.workouts[workout.ID]; !ok {
		return repository.ErrNotFound
	}
	r.updateCalls++
	stored := *workout
	r.workouts[workout.ID] = &stored
	return nil
}

func (r *fakeWorkoutRepo) Delete(_ context.Context, id, ownerID primitive.ObjectID) error {
	workout, ok := r.workouts[id]
	if !ok || workout.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(r.workouts, id)
	return nil
}

func seedWorkout(t *testing.T, repo *fakeWorkoutRepo, ownerID primitive.ObjectID, structure domain.WorkoutStructure) primitive.ObjectID {
	t.Helper()
	id, err := repo.Create(context.Background(), &domain.Workout{
		OwnerID:   ownerID,
		Structure: structure,
	})
	require.NoError(t, err)
	return id
}

func TestWorkoutServiceGetBackfillsAndPersistsOnce(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)
	owner := primitive.NewObjectID()

	duration := 420
	id := seedWorkout(t, repo, owner, domain.WorkoutStructure{
		Title: "Legacy Import",
		Settings: &domain.WorkoutSettings{
			WorkoutWarmup: &domain.LegacyWarmup{Enabled: true, DurationSec: &duration},
		},
		Blocks: []*domain.Block{
			{Label: "Main", Exercises: []*domain.Exercise{{Name: "Squat"}}},
		},
	})

	got, err := svc.Get(context.Background(), owner, id)
	require.NoError(t, err)

	// Warmup setting migrated into a leading block, ids backfilled.
	require.Len(t, got.Structure.Blocks, 2)
	assert.True(t, got.Structure.Blocks[0].HasStructure(domain.StructureWarmup))
	assert.Equal(t, 420, *got.Structure.Blocks[0].TimeCapSec)
	assert.Nil(t, got.Structure.Settings.WorkoutWarmup)
	assert.NotEmpty(t, got.Structure.Blocks[1].ID)
	assert.NotEmpty(t, got.Structure.Blocks[1].Exercises[0].ID)
	assert.Equal(t, 1, repo.updateCalls)

	// The second read sees a fully normalized tree and writes nothing.
	_, err = svc.Get(context.Background(), owner, id)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.updateCalls)
}

func TestWorkoutServiceGetDeniesOtherOwner(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)
	owner := primitive.NewObjectID()

	id := seedWorkout(t, repo, owner, domain.WorkoutStructure{Title: "Private"})

	_, err := svc.Get(context.Background(), primitive.NewObjectID(), id)
	assert.ErrorIs(t, err, ErrWorkoutAccessDenied)

	_, err = svc.Get(context.Background(), owner, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrWorkoutNotFound)
}

func TestWorkoutServiceAddExercisePersists(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)
	owner := primitive.NewObjectID()

	id := seedWorkout(t, repo, owner, domain.WorkoutStructure{
		Title:  "Push Day",
		Blocks: []*domain.Block{{ID: "b1", Label: "Main"}},
	})

	got, err := svc.AddExercise(context.Background(), owner, id, 0, "Bench Press", nil)
	require.NoError(t, err)
	require.Len(t, got.Structure.Blocks[0].Exercises, 1)
	assert.Equal(t, "Bench Press", got.Structure.Blocks[0].Exercises[0].Name)

	stored, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, stored.Structure.Blocks[0].Exercises, 1)
}

func TestWorkoutServiceEditorErrorsPassThrough(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)
	owner := primitive.NewObjectID()

	id := seedWorkout(t, repo, owner, domain.WorkoutStructure{
		Title:  "Push Day",
		Blocks: []*domain.Block{{ID: "b1", Label: "Main"}},
	})

	_, err := svc.DeleteBlock(context.Background(), owner, id, 5)
	assert.ErrorIs(t, err, editor.ErrBlockNotFound)
	assert.Zero(t, repo.updateCalls)
}

func TestWorkoutServiceDragEndNoopSkipsStorage(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)
	owner := primitive.NewObjectID()

	id := seedWorkout(t, repo, owner, domain.WorkoutStructure{
		Title: "Circuit",
		Blocks: []*domain.Block{
			{ID: "b1", Label: "A", Exercises: []*domain.Exercise{{ID: "e1", Name: "Row"}}},
			{ID: "b2", Label: "B"},
		},
	})

	item := editor.DragItem{Type: editor.DragBlock, ID: "b1", BlockIndex: 0}
	_, changed, err := svc.DragEnd(context.Background(), owner, id, item, item)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Zero(t, repo.updateCalls)

	// A real move persists.
	over := editor.DragItem{Type: editor.DragBlock, ID: "b2", BlockIndex: 1}
	got, changed, err := svc.DragEnd(context.Background(), owner, id, item, over)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "b2", got.Structure.Blocks[0].ID)
	assert.Equal(t, 1, repo.updateCalls)
}

func TestWorkoutServiceDeleteEnforcesOwnership(t *testing.T) {
	repo := newFakeWorkoutRepo()
	svc := NewWorkoutService(repo)
	owner := primitive.NewObjectID()

	id := seedWorkout(t, repo, owner, domain.WorkoutStructure{Title: "Mine"})

	err := svc.Delete(context.Background(), primitive.NewObjectID(), id)
	assert.ErrorIs(t, err, ErrWorkoutNotFound)

	require.NoError(t, svc.Delete(context.Background(), owner, id))
	_, err = repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
