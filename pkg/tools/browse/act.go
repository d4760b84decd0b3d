package browse

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/surfboard-hq/surfboard/pkg/remote"
	"github.com/surfboard-hq/surfboard/pkg/session"
	"github.com/surfboard-hq/surfboard/pkg/toolkit"
)

// ActTool sends further instructions against an existing task so the
// remote browser state carries across tool calls.
type ActTool struct {
	dispatcher *remote.Dispatcher
	registry   *session.Registry
}

// NewActTool creates a new act tool.
func NewActTool(dispatcher *remote.Dispatcher, registry *session.Registry) *ActTool {
	return &ActTool{
		dispatcher: dispatcher,
		registry:   registry,
	}
}

// Name returns the tool name.
func (t *ActTool) Name() string {
	return "act_in_session"
}

// Description returns the tool description.
func (t *ActTool) Description() string {
	return "Send further natural-language instructions to an existing browser session. " +
		"The task id comes from a previous run_browser_task call."
}

// Schema returns the tool's JSON schema.
func (t *ActTool) Schema() map[string]interface{} {
	return toolkit.BaseSchema(
		map[string]interface{}{
			"task_id": map[string]interface{}{
				"type":        "string",
				"description": "Id of the task/session to continue",
			},
			"instructions": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Ordered natural-language actions, executed in sequence",
			},
		},
		[]string{"task_id", "instructions"},
	)
}

// actInput represents the parameters for instruction dispatch.
type actInput struct {
	TaskID       string   `json:"task_id"`
	Instructions []string `json:"instructions"`
}

// Execute dispatches the batch and bumps the session's activity stamp.
func (t *ActTool) Execute(ctx context.Context, inv *toolkit.Invocation, args json.RawMessage) (string, error) {
	var input actInput
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if input.TaskID == "" {
		return "", fmt.Errorf("task_id is required")
	}
	if len(input.Instructions) == 0 {
		return "", fmt.Errorf("at least one instruction is required")
	}

	// Activity is stamped when the instructions are sent, not when the
	// resulting execution finishes.
	t.registry.Touch(input.TaskID)

	result, err := t.dispatcher.Dispatch(ctx, input.TaskID, input.Instructions, "", inv.ReportProgress)
	if err != nil {
		return "", err
	}
	return result.Encode()
}
