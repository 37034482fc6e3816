// ABOUTME: HTTP client for the fabric capacity analyzer API
// ABOUTME: Wraps sizing, comparison, and sweep calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/markalston/fabric-capacity-analyzer/backend/models"
)

const apiPrefix = "/api/v1"

// Client is the API client for the fabric capacity analyzer backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var health models.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Defaults calls GET /api/v1/fabric/defaults
func (c *Client) Defaults(ctx context.Context) (*models.NetworkConfig, error) {
	var cfg models.NetworkConfig
	if err := c.do(ctx, http.MethodGet, "/fabric/defaults", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SizeClos calls POST /api/v1/fabric/clos
func (c *Client) SizeClos(ctx context.Context, cfg models.NetworkConfig) (*models.TopologyMetrics, error) {
	var m models.TopologyMetrics
	if err := c.do(ctx, http.MethodPost, "/fabric/clos", cfg, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SizeMesh calls POST /api/v1/fabric/mesh; a nil target sizes against cfg.NumUsers
func (c *Client) SizeMesh(ctx context.Context, cfg models.NetworkConfig, target *int) (*models.TopologyMetrics, error) {
	var m models.TopologyMetrics
	req := models.MeshRequest{NetworkConfig: cfg, TargetCapacity: target}
	if err := c.do(ctx, http.MethodPost, "/fabric/mesh", req, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Compare calls POST /api/v1/fabric/compare
func (c *Client) Compare(ctx context.Context, cfg models.NetworkConfig) (*models.FabricComparison, error) {
	var cmp models.FabricComparison
	if err := c.do(ctx, http.MethodPost, "/fabric/compare", cfg, &cmp); err != nil {
		return nil, err
	}
	return &cmp, nil
}

// Sweep calls POST /api/v1/fabric/sweep
func (c *Client) Sweep(ctx context.Context, req models.SweepRequest) (*models.SweepResponse, error) {
	var resp models.SweepResponse
	if err := c.do(ctx, http.MethodPost, "/fabric/sweep", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do sends an optional JSON body and decodes a 200 response into out
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}
	if errResp.Details != "" {
		return fmt.Errorf("backend error: %s: %s", errResp.Error, errResp.Details)
	}
	return fmt.Errorf("backend error: %s", errResp.Error)
}
