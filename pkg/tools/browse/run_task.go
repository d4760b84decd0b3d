package browse

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/surfboard-hq/surfboard/pkg/remote"
	"github.com/surfboard-hq/surfboard/pkg/session"
	"github.com/surfboard-hq/surfboard/pkg/toolkit"
)

// RunTaskTool creates a new remote browser-automation task from an
// ordered list of natural-language instructions and waits for it to
// finish.
type RunTaskTool struct {
	dispatcher *remote.Dispatcher
	registry   *session.Registry
}

// NewRunTaskTool creates a new run task tool.
func NewRunTaskTool(dispatcher *remote.Dispatcher, registry *session.Registry) *RunTaskTool {
	return &RunTaskTool{
		dispatcher: dispatcher,
		registry:   registry,
	}
}

// Name returns the tool name.
func (t *RunTaskTool) Name() string {
	return "run_browser_task"
}

// Description returns the tool description.
func (t *RunTaskTool) Description() string {
	return "Run a sequence of natural-language browser instructions as a new remote task. " +
		"Returns the task's execution id and result; the id can be reused with act_in_session " +
		"to continue in the same browser."
}

// Schema returns the tool's JSON schema.
func (t *RunTaskTool) Schema() map[string]interface{} {
	return toolkit.BaseSchema(
		map[string]interface{}{
			"instructions": map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string"},
				"description": "Ordered natural-language actions, executed in sequence",
			},
			"extraction": map[string]interface{}{
				"type":        "string",
				"description": "Optional description of the structured data to extract when the instructions finish",
			},
		},
		[]string{"instructions"},
	)
}

// runTaskInput represents the parameters for task creation.
type runTaskInput struct {
	Instructions []string `json:"instructions"`
	Extraction   string   `json:"extraction"`
}

// Execute creates the task, tracks its id, and polls it to completion.
// The session is tracked as soon as the service accepts the submission
// so its record survives a failed or interrupted poll.
func (t *RunTaskTool) Execute(ctx context.Context, inv *toolkit.Invocation, args json.RawMessage) (string, error) {
	var input runTaskInput
	if err := json.Unmarshal(args, &input); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}
	if len(input.Instructions) == 0 {
		return "", fmt.Errorf("at least one instruction is required")
	}

	executionID, err := t.dispatcher.Submit(ctx, input.Instructions, input.Extraction)
	if err != nil {
		return "", err
	}
	if executionID != "" {
		t.registry.Track(executionID)
		inv.Logger.Infof("tracking new session %s", executionID)
	}

	result, err := t.dispatcher.Await(ctx, executionID, inv.ReportProgress)
	if err != nil {
		return "", err
	}
	return result.Encode()
}
