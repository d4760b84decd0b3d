// Package toolkit defines the tool abstraction exposed to the agent
// host and the instrumentation wrapper applied to every tool before
// registration.
package toolkit

import (
	"context"
	"encoding/json"

	"github.com/surfboard-hq/surfboard/pkg/logging"
)

// Tool represents one capability exposed to the agent host. Arguments
// arrive as validated JSON; the result is always a single string value
// (for remote operations, a JSON-encoded payload).
type Tool interface {
	// Name returns the unique identifier for this tool (e.g., "run_browser_task")
	Name() string

	// Description returns a human-readable description of what this tool does
	Description() string

	// Schema returns the JSON schema for this tool's input parameters
	Schema() map[string]interface{}

	// Execute runs the tool with the given JSON arguments and the
	// host-supplied invocation context
	Execute(ctx context.Context, inv *Invocation, args json.RawMessage) (string, error)
}

// Invocation carries the per-call collaborators the host supplies to a
// tool: a logging sink and an optional best-effort progress sink.
type Invocation struct {
	// Logger receives the tool's structured log output
	Logger *logging.Logger

	// ReportProgress, if non-nil, receives step/total progress updates.
	// The signature stays a plain func so component packages can accept
	// it without importing this one.
	ReportProgress func(step, total int)
}

// Progress forwards to ReportProgress when a sink is present.
func (inv *Invocation) Progress(step, total int) {
	if inv.ReportProgress != nil {
		inv.ReportProgress(step, total)
	}
}

// BaseSchema creates a common JSON schema structure for a tool with the
// given properties and required fields.
func BaseSchema(properties map[string]interface{}, required []string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}
