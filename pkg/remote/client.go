package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/surfboard-hq/surfboard/pkg/logging"
)

const (
	// defaultRequestTimeout bounds a single round-trip, not a task:
	// status polls and submissions answer quickly even when the task
	// itself runs for minutes.
	defaultRequestTimeout = 30 * time.Second

	// taskType is the only submission type this client speaks
	taskType = "natural_language"

	// defaultCountry is the fixed geolocation default applied to every
	// submission
	defaultCountry = "US"
)

// Client is the HTTP layer over the task service's /tasks resources.
// Every request carries a fresh header set from the HeaderFactory.
type Client struct {
	baseURL    string
	headers    HeaderFactory
	logger     *logging.Logger
	httpClient *http.Client
}

// NewClient constructs a client for the service at baseURL.
func NewClient(baseURL string, headers HeaderFactory, logger *logging.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		headers:    headers,
		logger:     logger,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

// TaskState fetches the current state of a task via GET /tasks/{id}.
func (c *Client) TaskState(ctx context.Context, taskID string) (*TaskState, error) {
	endpoint, err := c.resolve("/tasks/" + url.PathEscape(taskID))
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = c.headers()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Op: "task status", Err: err}
	}
	defer resp.Body.Close()

	body, err := c.readBody(resp, "task status")
	if err != nil {
		return nil, err
	}

	var state TaskState
	if err := json.Unmarshal(body, &state); err != nil {
		return nil, &ParseError{Op: "task status", Err: err}
	}
	return &state, nil
}

// CreateTask submits a new task via POST /tasks and returns the
// execution id the service assigned. The id may be empty; callers
// decide how to treat that.
func (c *Client) CreateTask(ctx context.Context, instructions []Instruction, project string) (string, error) {
	req := taskRequest{
		GeoLocation:  GeoLocation{Country: defaultCountry},
		Awaitable:    true,
		Instructions: instructions,
		Project:      project,
		Type:         taskType,
	}
	return c.submit(ctx, "/tasks", "task creation", req)
}

// SubmitInstructions sends a further instruction batch against an
// existing task via POST /tasks/{id}/instructions.
func (c *Client) SubmitInstructions(ctx context.Context, taskID string, instructions []Instruction, project string) (string, error) {
	req := taskRequest{
		GeoLocation:  GeoLocation{Country: defaultCountry},
		Awaitable:    true,
		Instructions: instructions,
		Project:      project,
	}
	return c.submit(ctx, "/tasks/"+url.PathEscape(taskID)+"/instructions", "instruction dispatch", req)
}

func (c *Client) submit(ctx context.Context, path, op string, body taskRequest) (string, error) {
	endpoint, err := c.resolve(path)
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header = c.headers()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := c.readBody(resp, op)
	if err != nil {
		return "", err
	}

	var accepted submissionResponse
	if err := json.Unmarshal(respBody, &accepted); err != nil {
		return "", &ParseError{Op: op, Err: err}
	}
	return accepted.ExecutionID, nil
}

// readBody drains the response and folds the status check in. On a
// non-success status the body read is best-effort: a secondary read
// failure is logged and the RequestError falls back to the status text
// rather than masking the primary failure.
func (c *Client) readBody(resp *http.Response, op string) ([]byte, error) {
	body, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if readErr != nil {
			c.logger.Warnf("failed to read %s error response body: %v", op, readErr)
			body = nil
		}
		return nil, &RequestError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(body)}
	}

	if readErr != nil {
		return nil, &TransportError{Op: op, Err: readErr}
	}
	return body, nil
}

func (c *Client) resolve(path string) (string, error) {
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", c.baseURL, err)
	}
	rel, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid request path %q: %w", path, err)
	}
	return base.ResolveReference(rel).String(), nil
}
