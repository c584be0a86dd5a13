package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"fitforge/workout-builder/internal/config"
	"fitforge/workout-builder/internal/domain"
)

// Export formats the exporter service understands.
var ExportFormats = map[string]bool{
	"yaml":  true,
	"plist": true,
	"zwo":   true,
}

// ExporterClient is a thin client for the device-export service: it accepts
// the workout JSON and returns a device-specific file (YAML, plist, ZWO).
type ExporterClient struct {
	baseClient
}

// NewExporterClient builds a client from the service config.
func NewExporterClient(cfg config.ServiceConfig) *ExporterClient {
	return &ExporterClient{baseClient: newBaseClient("exporter", cfg)}
}

// ExportResult is the exported device file plus transport metadata.
type ExportResult struct {
	Data        []byte
	ContentType string
}

// Export asks the service for the workout in the given format. The response
// body is opaque to this side; it is streamed back to the user as-is.
func (c *ExporterClient) Export(ctx context.Context, w *domain.WorkoutStructure, format string) (*ExportResult, error) {
	if !ExportFormats[format] {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}

	body, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encoding exporter request: %w", err)
	}

	endpoint := c.baseURL + "/v1/export?format=" + url.QueryEscape(format)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling exporter service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading exporter response: %w", err)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &ExportResult{Data: data, ContentType: contentType}, nil
}
