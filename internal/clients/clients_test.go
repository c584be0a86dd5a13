package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitforge/workout-builder/internal/config"
	"fitforge/workout-builder/internal/domain"
)

func TestGenerationClient_Generate(t *testing.T) {
	var gotAuth string
	var gotReq GenerateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/generate", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		_ = json.NewEncoder(w).Encode(domain.WorkoutStructure{
			Title:       "5x5 Strength",
			Source:      "text",
			WorkoutType: "strength",
			Blocks: []*domain.Block{
				{Label: "Main", Exercises: []*domain.Exercise{{Name: "Squat"}}},
			},
		})
	}))
	defer srv.Close()

	c := NewGenerationClient(config.ServiceConfig{BaseURL: srv.URL, APIKey: "sk-test"})
	got, err := c.Generate(context.Background(), SourceText, "5x5 squats then bench")
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, SourceText, gotReq.SourceType)
	assert.Equal(t, "5x5 Strength", got.Title)
	require.Len(t, got.Blocks, 1)
	assert.Equal(t, "Squat", got.Blocks[0].Exercises[0].Name)
}

func TestGenerationClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewGenerationClient(config.ServiceConfig{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), SourceText, "anything")
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.Code)
	assert.Equal(t, "generation", statusErr.Service)
	assert.Contains(t, statusErr.Body, "model overloaded")
}

func TestMapperClient_Validate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/validate", r.URL.Path)

		var req ValidateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.Workout)

		_ = json.NewEncoder(w).Encode(ValidateResponse{Results: []ExerciseValidation{
			{ExerciseID: "e1", Name: "Squat", Valid: true, CanonicalName: "BARBELL_SQUAT", Confidence: 0.98},
			{ExerciseID: "e2", Name: "Zercher Goblet Thing", Valid: false, Suggestions: []string{"GOBLET_SQUAT"}},
		}})
	}))
	defer srv.Close()

	c := NewMapperClient(config.ServiceConfig{BaseURL: srv.URL})
	results, err := c.Validate(context.Background(), &domain.WorkoutStructure{Title: "W"})
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.True(t, results[0].Valid)
	assert.Equal(t, "BARBELL_SQUAT", results[0].CanonicalName)
	assert.False(t, results[1].Valid)
	assert.Equal(t, []string{"GOBLET_SQUAT"}, results[1].Suggestions)
}

func TestExporterClient_Export(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/export", r.URL.Path)
		require.Equal(t, "zwo", r.URL.Query().Get("format"))
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(`<workout_file/>`))
	}))
	defer srv.Close()

	c := NewExporterClient(config.ServiceConfig{BaseURL: srv.URL})
	result, err := c.Export(context.Background(), &domain.WorkoutStructure{Title: "Ride"}, "zwo")
	require.NoError(t, err)

	assert.Equal(t, "application/xml", result.ContentType)
	assert.Equal(t, []byte(`<workout_file/>`), result.Data)
}

func TestExporterClient_UnsupportedFormat(t *testing.T) {
	c := NewExporterClient(config.ServiceConfig{BaseURL: "http://unused"})
	_, err := c.Export(context.Background(), &domain.WorkoutStructure{}, "fit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}
