package browse

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/surfboard-hq/surfboard/pkg/session"
	"github.com/surfboard-hq/surfboard/pkg/toolkit"
)

// ListSessionsTool reports the task ids the registry currently tracks.
type ListSessionsTool struct {
	registry *session.Registry
}

// NewListSessionsTool creates a new list sessions tool.
func NewListSessionsTool(registry *session.Registry) *ListSessionsTool {
	return &ListSessionsTool{registry: registry}
}

// Name returns the tool name.
func (t *ListSessionsTool) Name() string {
	return "list_browser_sessions"
}

// Description returns the tool description.
func (t *ListSessionsTool) Description() string {
	return "List the browser sessions opened in this process, with creation and last-activity times."
}

// Schema returns the tool's JSON schema.
func (t *ListSessionsTool) Schema() map[string]interface{} {
	return toolkit.BaseSchema(map[string]interface{}{}, nil)
}

// sessionView is the wire shape of one registry entry.
type sessionView struct {
	TaskID       string `json:"taskId"`
	Created      string `json:"created"`
	LastActivity string `json:"lastActivity"`
}

// Execute snapshots the registry. Output order is oldest first.
func (t *ListSessionsTool) Execute(ctx context.Context, inv *toolkit.Invocation, args json.RawMessage) (string, error) {
	entries := t.registry.List()
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Record.Created.Before(entries[j].Record.Created)
	})

	views := make([]sessionView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, sessionView{
			TaskID:       entry.ID,
			Created:      entry.Record.Created.Format(time.RFC3339),
			LastActivity: entry.Record.LastActivity.Format(time.RFC3339),
		})
	}

	payload, err := json.Marshal(map[string]interface{}{"sessions": views})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}
