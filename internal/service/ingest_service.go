package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitforge/workout-builder/internal/clients"
	"fitforge/workout-builder/internal/domain"
	"fitforge/workout-builder/internal/editor"
	"fitforge/workout-builder/internal/repository"
	"fitforge/workout-builder/internal/storage"
)

// --- Error Definitions ---
var (
	ErrEmptySource      = errors.New("ingest source cannot be empty")
	ErrGenerationFailed = errors.New("workout generation failed")
)

// Generator is the slice of the generation client the ingest flow needs;
// tests substitute a fake.
type Generator interface {
	Generate(ctx context.Context, sourceType, content string) (*domain.WorkoutStructure, error)
}

// ImageUpload is the presigned upload handed to the browser for a source
// image.
type ImageUpload struct {
	ObjectKey string
	UploadURL string
}

// IngestService turns raw workout sources into persisted, normalized
// workouts. The heavy lifting (parsing text, reading images, scraping video)
// belongs to the external generation service; this side uploads sources,
// calls out, then normalizes ids and legacy settings on the returned tree.
type IngestService interface {
	FromText(ctx context.Context, ownerID primitive.ObjectID, text string) (*domain.Workout, error)
	FromVideoURL(ctx context.Context, ownerID primitive.ObjectID, videoURL string) (*domain.Workout, error)

	// CreateImageUpload reserves an object key and presigned PUT URL so the
	// browser can upload a source image directly to object storage.
	CreateImageUpload(ctx context.Context, ownerID primitive.ObjectID, contentType string) (*ImageUpload, error)
	// FromImage generates a workout from a previously uploaded source image.
	FromImage(ctx context.Context, ownerID primitive.ObjectID, objectKey string) (*domain.Workout, error)
}

type ingestService struct {
	workoutRepo repository.WorkoutRepository
	generator   Generator
	fileStorage storage.FileStorage
}

// NewIngestService creates a new instance of ingestService.
func NewIngestService(workoutRepo repository.WorkoutRepository, generator Generator, fileStorage storage.FileStorage) IngestService {
	return &ingestService{
		workoutRepo: workoutRepo,
		generator:   generator,
		fileStorage: fileStorage,
	}
}

func (s *ingestService) FromText(ctx context.Context, ownerID primitive.ObjectID, text string) (*domain.Workout, error) {
	if text == "" {
		return nil, ErrEmptySource
	}
	return s.generateAndStore(ctx, ownerID, clients.SourceText, text)
}

func (s *ingestService) FromVideoURL(ctx context.Context, ownerID primitive.ObjectID, videoURL string) (*domain.Workout, error) {
	if videoURL == "" {
		return nil, ErrEmptySource
	}
	return s.generateAndStore(ctx, ownerID, clients.SourceVideoURL, videoURL)
}

func (s *ingestService) CreateImageUpload(ctx context.Context, ownerID primitive.ObjectID, contentType string) (*ImageUpload, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectKey := fmt.Sprintf("sources/%s/%s", ownerID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}
	return &ImageUpload{ObjectKey: objectKey, UploadURL: uploadURL}, nil
}

func (s *ingestService) FromImage(ctx context.Context, ownerID primitive.ObjectID, objectKey string) (*domain.Workout, error) {
	if objectKey == "" {
		return nil, ErrEmptySource
	}

	// The generation service fetches the image itself through a short-lived
	// download URL; the bytes never transit this server twice.
	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	workout, err := s.generateAndStore(ctx, ownerID, clients.SourceImageURL, downloadURL)
	if err != nil {
		return nil, err
	}

	// Source images are transient; failures here only leak an object.
	if err := s.fileStorage.DeleteObject(ctx, objectKey); err != nil {
		log.Printf("WARN: Failed to delete source image '%s': %v", objectKey, err)
	}
	return workout, nil
}

func (s *ingestService) generateAndStore(ctx context.Context, ownerID primitive.ObjectID, sourceType, content string) (*domain.Workout, error) {
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required to ingest a workout")
	}

	structure, err := s.generator.Generate(ctx, sourceType, content)
	if err != nil {
		log.Printf("ERROR: Generation failed for source type %s: %v", sourceType, err)
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	normalized := editor.EnsureIDs(structure)
	normalized, _ = editor.MigrateLegacyWarmup(normalized)
	if normalized.Source == "" {
		normalized.Source = sourceType
	}
	if normalized.Title == "" {
		normalized.Title = "Imported Workout"
	}

	workout := &domain.Workout{
		OwnerID:   ownerID,
		Structure: *normalized,
	}
	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	return s.workoutRepo.GetByID(ctx, id)
}
