package browse

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/surfboard-hq/surfboard/pkg/session"
	"github.com/surfboard-hq/surfboard/pkg/toolkit"
)

// CloseSessionTool drops a task id from the registry. The remote task
// itself is not cancelled; the service garbage-collects it out of band.
type CloseSessionTool struct {
	registry *session.Registry
}

// NewCloseSessionTool creates a new close session tool.
func NewCloseSessionTool(registry *session.Registry) *CloseSessionTool {
	return &CloseSessionTool{registry: registry}
}

// Name returns the tool name.
func (t *CloseSessionTool) Name() string {
	return "close_browser_session"
}

// Description returns the tool description.
func (t *CloseSessionTool) Description() string {
	return "Stop tracking a browser session. Use when a session's task id is no longer needed."
}

// Schema returns the tool's JSON schema.
func (t *CloseSessionTool) Schema() map[string]interface{} {
	return toolkit.BaseSchema(
		map[string]interface{}{
			"task_id": map[string]interface{}{
				"type":        "string",
				"description": "Id of the task/session to stop tracking",
			},
		},
		[]string{"task_id"},
	)
}

// closeSessionInput represents the parameters for closing.
type closeSessionInput struct {
	TaskID string `json:"task_id"`
}

// Execute removes the session from the registry.
func (t *CloseSessionTool) Execute(ctx context.Context, inv *toolkit.Invocation, args json.RawMessage) (string, error) {
	var input closeSessionInput
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if input.TaskID == "" {
		return "", fmt.Errorf("task_id is required")
	}

	t.registry.Remove(input.TaskID)
	inv.Logger.Infof("stopped tracking session %s", input.TaskID)

	payload, err := json.Marshal(map[string]string{"closed": input.TaskID})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
