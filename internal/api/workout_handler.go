package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitforge/workout-builder/internal/domain"
	"fitforge/workout-builder/internal/editor"
	"fitforge/workout-builder/internal/service"
)

// WorkoutHandler exposes workout CRUD and the per-operation tree mutations.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

type CreateWorkoutRequest struct {
	Title string `json:"title"`
}

type SaveSettingsRequest struct {
	Title    string                  `json:"title" binding:"required"`
	Settings *domain.WorkoutSettings `json:"settings"`
}

type ReplaceStructureRequest struct {
	Structure *domain.WorkoutStructure `json:"structure" binding:"required"`
}

type AddBlockRequest struct {
	Structure *domain.StructureKind `json:"structure"`
}

type AddExerciseRequest struct {
	Name          string `json:"name" binding:"required"`
	SupersetIndex *int   `json:"superset_index"`
}

type UpdateExerciseRequest struct {
	Patch         editor.ExercisePatch `json:"patch"`
	SupersetIndex *int                 `json:"superset_index"`
}

type DeleteExerciseRequest struct {
	SupersetIndex *int `json:"superset_index"`
}

type MoveExerciseRequest struct {
	SrcBlockIndex    int  `json:"src_block_index"`
	SrcExerciseIndex int  `json:"src_exercise_index"`
	SrcSupersetIndex *int `json:"src_superset_index"`
	DstBlockIndex    int  `json:"dst_block_index"`
	DstExerciseIndex int  `json:"dst_exercise_index"`
	DstSupersetIndex *int `json:"dst_superset_index"`
}

type DragEndRequest struct {
	Active editor.DragItem `json:"active" binding:"required"`
	Over   editor.DragItem `json:"over"`
}

// BlockSummary is the per-block display line: label plus the structure's
// headline number ("5 rounds", "20 min cap", ...).
type BlockSummary struct {
	ID            string                `json:"id"`
	Label         string                `json:"label"`
	Structure     *domain.StructureKind `json:"structure"`
	KeyMetric     string                `json:"key_metric,omitempty"`
	ExerciseCount int                   `json:"exercise_count"`
}

// WorkoutResponse carries the full editable tree plus derived read-side data:
// a content fingerprint (for client-side change detection) and per-block
// summaries.
type WorkoutResponse struct {
	ID          string                  `json:"id"`
	OwnerID     string                  `json:"ownerId"`
	Structure   domain.WorkoutStructure `json:"structure"`
	Fingerprint string                  `json:"fingerprint"`
	Blocks      []BlockSummary          `json:"block_summaries"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}

type DragEndResponse struct {
	Changed bool             `json:"changed"`
	Workout *WorkoutResponse `json:"workout,omitempty"`
}

// MapWorkoutToResponse converts a domain Workout to its response DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	summaries := make([]BlockSummary, 0, len(w.Structure.Blocks))
	for _, b := range w.Structure.Blocks {
		if b == nil {
			continue
		}
		count := 0
		for _, ex := range b.Exercises {
			if ex != nil {
				count++
			}
		}
		for _, ss := range b.Supersets {
			if ss != nil {
				count += len(ss.Exercises)
			}
		}
		summaries = append(summaries, BlockSummary{
			ID:            b.ID,
			Label:         b.Label,
			Structure:     b.Structure,
			KeyMetric:     domain.KeyMetric(b),
			ExerciseCount: count,
		})
	}
	return WorkoutResponse{
		ID:          w.ID.Hex(),
		OwnerID:     w.OwnerID.Hex(),
		Structure:   w.Structure,
		Fingerprint: editor.Fingerprint(&w.Structure),
		Blocks:      summaries,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

// --- Handler Methods ---

// CreateWorkout godoc
// @Summary Create an empty workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workout body CreateWorkoutRequest true "Workout title"
// @Success 201 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), ownerID, req.Title)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create workout")
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// ListWorkouts godoc
// @Summary List the authenticated user's workouts
// @Tags Workouts
// @Produce json
// @Success 200 {array} WorkoutResponse
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return
	}

	workouts, err := h.workoutService.List(c.Request.Context(), ownerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list workouts")
		return
	}

	out := make([]WorkoutResponse, 0, len(workouts))
	for i := range workouts {
		out = append(out, MapWorkoutToResponse(&workouts[i]))
	}
	c.JSON(http.StatusOK, out)
}

// GetWorkout godoc
// @Summary Get one workout, normalized
// @Description Loads the workout; missing ids are backfilled and legacy warmup settings migrated before it is returned.
// @Tags Workouts
// @Produce json
// @Param workoutId path string true "Workout ID"
// @Success 200 {object} WorkoutResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/{workoutId} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	workout, err := h.workoutService.Get(c.Request.Context(), ownerID, workoutID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// DeleteWorkout godoc
// @Summary Delete a workout
// @Tags Workouts
// @Param workoutId path string true "Workout ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/{workoutId} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	if err := h.workoutService.Delete(c.Request.Context(), ownerID, workoutID); err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ReplaceStructure swaps in a whole new tree after client-side bulk edits.
func (h *WorkoutHandler) ReplaceStructure(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	var req ReplaceStructureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	workout, err := h.workoutService.ReplaceStructure(c.Request.Context(), ownerID, workoutID, req.Structure)
	h.respond(c, workout, err)
}

// SaveSettings replaces the workout title and settings wholesale.
func (h *WorkoutHandler) SaveSettings(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	var req SaveSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	workout, err := h.workoutService.SaveSettings(c.Request.Context(), ownerID, workoutID, req.Title, req.Settings)
	h.respond(c, workout, err)
}

// AddBlock appends a block, optionally pre-configured with a structure kind.
func (h *WorkoutHandler) AddBlock(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	var req AddBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	workout, err := h.workoutService.AddBlock(c.Request.Context(), ownerID, workoutID, req.Structure)
	h.respond(c, workout, err)
}

func (h *WorkoutHandler) UpdateBlock(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	blockIdx, ok := h.indexParam(c, "blockIdx")
	if !ok {
		return
	}
	var patch editor.BlockPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	workout, err := h.workoutService.UpdateBlock(c.Request.Context(), ownerID, workoutID, blockIdx, patch)
	h.respond(c, workout, err)
}

func (h *WorkoutHandler) DeleteBlock(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	blockIdx, ok := h.indexParam(c, "blockIdx")
	if !ok {
		return
	}
	workout, err := h.workoutService.DeleteBlock(c.Request.Context(), ownerID, workoutID, blockIdx)
	h.respond(c, workout, err)
}

// AddWarmupBlock prepends a warmup block with the warmup defaults.
func (h *WorkoutHandler) AddWarmupBlock(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	workout, err := h.workoutService.AddWarmupBlock(c.Request.Context(), ownerID, workoutID)
	h.respond(c, workout, err)
}

// AddCooldownBlock appends a cooldown block with the cooldown defaults.
func (h *WorkoutHandler) AddCooldownBlock(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	workout, err := h.workoutService.AddCooldownBlock(c.Request.Context(), ownerID, workoutID)
	h.respond(c, workout, err)
}

// AddExercise adds a named exercise to a block or one of its supersets.
func (h *WorkoutHandler) AddExercise(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	blockIdx, ok := h.indexParam(c, "blockIdx")
	if !ok {
		return
	}
	var req AddExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	workout, err := h.workoutService.AddExercise(c.Request.Context(), ownerID, workoutID, blockIdx, req.Name, req.SupersetIndex)
	h.respond(c, workout, err)
}

func (h *WorkoutHandler) UpdateExercise(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	blockIdx, ok := h.indexParam(c, "blockIdx")
	if !ok {
		return
	}
	exerciseIdx, ok := h.indexParam(c, "exerciseIdx")
	if !ok {
		return
	}
	var req UpdateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	workout, err := h.workoutService.UpdateExercise(c.Request.Context(), ownerID, workoutID, blockIdx, exerciseIdx, req.Patch, req.SupersetIndex)
	h.respond(c, workout, err)
}

func (h *WorkoutHandler) DeleteExercise(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	blockIdx, ok := h.indexParam(c, "blockIdx")
	if !ok {
		return
	}
	exerciseIdx, ok := h.indexParam(c, "exerciseIdx")
	if !ok {
		return
	}
	var req DeleteExerciseRequest
	// Body is optional for block-level exercises.
	_ = c.ShouldBindJSON(&req)
	workout, err := h.workoutService.DeleteExercise(c.Request.Context(), ownerID, workoutID, blockIdx, exerciseIdx, req.SupersetIndex)
	h.respond(c, workout, err)
}

// AddSuperset appends an empty superset to a block.
func (h *WorkoutHandler) AddSuperset(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	blockIdx, ok := h.indexParam(c, "blockIdx")
	if !ok {
		return
	}
	workout, err := h.workoutService.AddSuperset(c.Request.Context(), ownerID, workoutID, blockIdx)
	h.respond(c, workout, err)
}

func (h *WorkoutHandler) UpdateSuperset(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	blockIdx, ok := h.indexParam(c, "blockIdx")
	if !ok {
		return
	}
	supersetIdx, ok := h.indexParam(c, "supersetIdx")
	if !ok {
		return
	}
	var patch editor.SupersetPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	workout, err := h.workoutService.UpdateSuperset(c.Request.Context(), ownerID, workoutID, blockIdx, supersetIdx, patch)
	h.respond(c, workout, err)
}

func (h *WorkoutHandler) DeleteSuperset(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	blockIdx, ok := h.indexParam(c, "blockIdx")
	if !ok {
		return
	}
	supersetIdx, ok := h.indexParam(c, "supersetIdx")
	if !ok {
		return
	}
	workout, err := h.workoutService.DeleteSuperset(c.Request.Context(), ownerID, workoutID, blockIdx, supersetIdx)
	h.respond(c, workout, err)
}

// MoveExercise is the explicit-coordinates move (used by keyboard reordering
// and tests; drag gestures go through DragEnd).
func (h *WorkoutHandler) MoveExercise(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	var req MoveExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	workout, err := h.workoutService.MoveExercise(c.Request.Context(), ownerID, workoutID,
		req.SrcBlockIndex, req.SrcExerciseIndex, req.SrcSupersetIndex,
		req.DstBlockIndex, req.DstExerciseIndex, req.DstSupersetIndex)
	h.respond(c, workout, err)
}

// DragEnd godoc
// @Summary Resolve a completed drag-and-drop gesture
// @Description Applies the drop described by active/over. A drop with no target or onto the source is a no-op and returns changed=false with no workout body.
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workoutId path string true "Workout ID"
// @Param gesture body DragEndRequest true "Drag descriptors"
// @Success 200 {object} DragEndResponse
// @Failure 400 {object} gin.H "Invalid gesture"
// @Router /workouts/{workoutId}/drag-end [post]
func (h *WorkoutHandler) DragEnd(c *gin.Context) {
	ownerID, workoutID, ok := h.ids(c)
	if !ok {
		return
	}
	var req DragEndRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	workout, changed, err := h.workoutService.DragEnd(c.Request.Context(), ownerID, workoutID, req.Active, req.Over)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if !changed {
		c.JSON(http.StatusOK, DragEndResponse{Changed: false})
		return
	}
	resp := MapWorkoutToResponse(workout)
	c.JSON(http.StatusOK, DragEndResponse{Changed: true, Workout: &resp})
}

// --- Helpers ---

// ids pulls the authenticated owner and the workout path param; on failure the
// response is already written.
func (h *WorkoutHandler) ids(c *gin.Context) (ownerID, workoutID primitive.ObjectID, ok bool) {
	ownerID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to identify user")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	workoutID, err = primitive.ObjectIDFromHex(c.Param("workoutId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format")
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return ownerID, workoutID, true
}

func (h *WorkoutHandler) indexParam(c *gin.Context, name string) (int, bool) {
	idx, err := strconv.Atoi(c.Param(name))
	if err != nil || idx < 0 {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return idx, true
}

// respond writes the standard mutation response: the updated workout or the
// mapped error.
func (h *WorkoutHandler) respond(c *gin.Context, workout *domain.Workout, err error) {
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

func (h *WorkoutHandler) writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWorkoutNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrWorkoutAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, editor.ErrBlockNotFound),
		errors.Is(err, editor.ErrExerciseNotFound),
		errors.Is(err, editor.ErrSupersetNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, editor.ErrSupersetIndexGap),
		errors.Is(err, editor.ErrUnknownStructure):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
