package service

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"fitforge/workout-builder/internal/clients"
	"fitforge/workout-builder/internal/repository"
)

// ExportFile is a rendered device file ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders a workout into a device-specific file via the
// exporter service.
type ExportService interface {
	ExportWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID, format string) (*ExportFile, error)
}

type exportService struct {
	workoutRepo repository.WorkoutRepository
	exporter    *clients.ExporterClient
}

// NewExportService creates a new instance of exportService.
func NewExportService(workoutRepo repository.WorkoutRepository, exporter *clients.ExporterClient) ExportService {
	return &exportService{workoutRepo: workoutRepo, exporter: exporter}
}

func (s *exportService) ExportWorkout(ctx context.Context, ownerID, workoutID primitive.ObjectID, format string) (*ExportFile, error) {
	if !clients.ExportFormats[format] {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	workout, err := loadOwned(ctx, s.workoutRepo, ownerID, workoutID)
	if err != nil {
		return nil, err
	}

	result, err := s.exporter.Export(ctx, &workout.Structure, format)
	if err != nil {
		return nil, err
	}

	return &ExportFile{
		Filename:    exportFilename(workout.Structure.Title, format),
		ContentType: result.ContentType,
		Data:        result.Data,
	}, nil
}

// exportFilename slugs the workout title into a safe download name.
func exportFilename(title, format string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '-', r == '_':
			return '-'
		default:
			return -1
		}
	}, title)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "workout"
	}
	return slug + "." + format
}
