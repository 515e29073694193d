// Package hacknplan implements the tracker ports against the Hack'n'Plan
// REST API.
package hacknplan

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/hnp/internal/core/ticket"
	"github.com/example/hnp/internal/ctxutil"
	"github.com/example/hnp/internal/ports/secondary"
	"github.com/example/hnp/internal/version"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// Endpoint is the API base URL, e.g. https://api.hacknplan.com/v0.
	Endpoint  string
	ProjectID string
	APIKey    string
	// Timeout bounds each request. Ignored when HTTPClient is set.
	Timeout time.Duration
	// HTTPClient is used for all requests. If nil, a client with Timeout is
	// created.
	HTTPClient *http.Client
	// RunID is sent as X-Request-Id unless the request context carries one.
	RunID  string
	Logger *zap.Logger
}

// Client talks to one Hack'n'Plan project.
type Client struct {
	baseURL    string
	apiKey     string
	runID      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Hack'n'Plan client.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Endpoint == "" {
		return nil, fmt.Errorf("hacknplan: endpoint is required")
	}
	if _, err := url.Parse(config.Endpoint); err != nil {
		return nil, fmt.Errorf("hacknplan: invalid endpoint %q: %w", config.Endpoint, err)
	}
	if config.ProjectID == "" {
		return nil, fmt.Errorf("hacknplan: project id is required")
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("hacknplan: api key is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	runID := config.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.Endpoint, "/") + "/projects/" + url.PathEscape(config.ProjectID),
		apiKey:     config.APIKey,
		runID:      runID,
		httpClient: httpClient,
		logger:     logger.Named("hacknplan"),
	}, nil
}

// CloseIdleConnections releases pooled connections.
func (c *Client) CloseIdleConnections() {
	c.httpClient.CloseIdleConnections()
}

// CreateTag creates a project tag.
func (c *Client) CreateTag(ctx context.Context, name string) error {
	if _, err := c.doRequest(ctx, http.MethodPost, "/tags", createTagRequest{Name: name}); err != nil {
		return fmt.Errorf("hacknplan: create tag %q: %w", name, err)
	}
	c.logger.Info("tag created", zap.String("name", name))
	return nil
}

// SubmitTicket creates a work item from a draft.
func (c *Client) SubmitTicket(ctx context.Context, draft *ticket.Draft) error {
	if _, err := c.doRequest(ctx, http.MethodPost, "/workitems", draft); err != nil {
		return fmt.Errorf("hacknplan: create work item %q: %w", draft.Title, err)
	}
	return nil
}

// getJSON fetches path and decodes the response into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("hacknplan: failed to parse %s response: %w", path, err)
	}
	return nil
}

// requestID prefers the run ID carried by ctx over the configured one.
func (c *Client) requestID(ctx context.Context) string {
	if id := ctxutil.RunIDFromContext(ctx); id != "" {
		return id
	}
	return c.runID
}

func (c *Client) doRequest(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	requestURL := c.baseURL + path

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("hacknplan: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("hacknplan: failed to create request: %w", err)
	}

	request.Header.Set("Authorization", "ApiKey "+c.apiKey)
	request.Header.Set("Accept", "application/json")
	request.Header.Set("X-Request-Id", c.requestID(ctx))
	request.Header.Set("User-Agent", version.UserAgent())
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("hacknplan: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("hacknplan: failed to read response body: %w", err)
	}

	c.logger.Debug("request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", response.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	return nil, &StatusError{
		Method:     method,
		Path:       path,
		StatusCode: response.StatusCode,
		Body:       strings.TrimSpace(string(responseBody)),
	}
}

var (
	_ secondary.CatalogSource = (*Client)(nil)
	_ secondary.TagCreator    = (*Client)(nil)
	_ secondary.TicketSink    = (*Client)(nil)
)
