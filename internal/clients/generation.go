package clients

import (
	"context"

	"fitforge/workout-builder/internal/config"
	"fitforge/workout-builder/internal/domain"
)

// Source types the generation service accepts.
const (
	SourceText     = "text"
	SourceImageURL = "image-url"
	SourceVideoURL = "video-url"
)

// GenerationClient is a thin client for the workout-generation service: it
// turns a raw source (pasted text, an image URL, a video URL) into a
// WorkoutStructure-shaped payload. No domain validation happens here; the
// response is normalized (ids, legacy settings) by the caller.
type GenerationClient struct {
	baseClient
}

// NewGenerationClient builds a client from the service config.
func NewGenerationClient(cfg config.ServiceConfig) *GenerationClient {
	return &GenerationClient{baseClient: newBaseClient("generation", cfg)}
}

// GenerateRequest is the wire request for structure generation.
type GenerateRequest struct {
	SourceType string `json:"source_type"`
	Content    string `json:"content"`
}

// Generate asks the service to structure the given source.
func (c *GenerationClient) Generate(ctx context.Context, sourceType, content string) (*domain.WorkoutStructure, error) {
	var out domain.WorkoutStructure
	err := c.postJSON(ctx, "/v1/generate", GenerateRequest{SourceType: sourceType, Content: content}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
