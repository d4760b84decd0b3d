package browse

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/surfboard-hq/surfboard/pkg/remote"
	"github.com/surfboard-hq/surfboard/pkg/session"
	"github.com/surfboard-hq/surfboard/pkg/toolkit"
)

// ExtractTool pulls structured data out of an existing session without
// driving any page interaction of its own.
type ExtractTool struct {
	dispatcher *remote.Dispatcher
	registry   *session.Registry
}

// NewExtractTool creates a new extract tool.
func NewExtractTool(dispatcher *remote.Dispatcher, registry *session.Registry) *ExtractTool {
	return &ExtractTool{
		dispatcher: dispatcher,
		registry:   registry,
	}
}

// Name returns the tool name.
func (t *ExtractTool) Name() string {
	return "extract_from_session"
}

// Description returns the tool description.
func (t *ExtractTool) Description() string {
	return "Extract structured data from the current page of an existing browser session. " +
		"Describe the data you want; the result arrives as JSON."
}

// Schema returns the tool's JSON schema.
func (t *ExtractTool) Schema() map[string]interface{} {
	return toolkit.BaseSchema(
		map[string]interface{}{
			"task_id": map[string]interface{}{
				"type":        "string",
				"description": "Id of the task/session to extract from",
			},
			"extraction": map[string]interface{}{
				"type":        "string",
				"description": "Description of the structured data to extract from the current page",
			},
		},
		[]string{"task_id", "extraction"},
	)
}

// extractInput represents the parameters for extraction.
type extractInput struct {
	TaskID     string `json:"task_id"`
	Extraction string `json:"extraction"`
}

// Execute dispatches an extraction-only batch against the session.
func (t *ExtractTool) Execute(ctx context.Context, inv *toolkit.Invocation, args json.RawMessage) (string, error) {
	var input extractInput
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if input.TaskID == "" {
		return "", fmt.Errorf("task_id is required")
	}
	if input.Extraction == "" {
		return "", fmt.Errorf("extraction is required")
	}

	t.registry.Touch(input.TaskID)

	// No actions of our own: the dispatcher's synthetic pacing and
	// extraction descriptors make up the whole batch.
	result, err := t.dispatcher.Dispatch(ctx, input.TaskID, nil, input.Extraction, inv.ReportProgress)
	if err != nil {
		return "", err
	}
	return result.Encode()
}
