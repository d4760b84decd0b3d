package remote

import "encoding/json"

// TaskStatus is the remote service's status vocabulary. Only the three
// terminal values are matched by name; anything else means the task is
// still running.
type TaskStatus string

const (
	// StatusPending is the usual in-progress status
	StatusPending TaskStatus = "pending"

	// StatusAwaiting is terminal: the task succeeded and is holding
	// its browser state for follow-up instructions
	StatusAwaiting TaskStatus = "awaiting"

	// StatusFinalized is terminal: the task succeeded and released
	// its browser
	StatusFinalized TaskStatus = "finalized"

	// StatusFailed is terminal: the task failed
	StatusFailed TaskStatus = "failed"
)

// Terminal reports whether the status ends the poll loop.
func (s TaskStatus) Terminal() bool {
	return s == StatusAwaiting || s == StatusFinalized || s == StatusFailed
}

// TaskState is the body of GET /tasks/{id}. Result is present once the
// task is terminal-success; Error is present on terminal failure.
type TaskState struct {
	Status TaskStatus      `json:"status"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Instruction is one atomic natural-language action descriptor. Order
// within a batch is significant: the service executes them in sequence.
type Instruction struct {
	Action string `json:"action"`
}

// GeoLocation pins the service's exit geography for a task.
type GeoLocation struct {
	Country string `json:"country"`
}

// taskRequest is the body of POST /tasks and POST /tasks/{id}/instructions.
// Type is only set on task creation.
type taskRequest struct {
	GeoLocation  GeoLocation   `json:"geoLocation"`
	Awaitable    bool          `json:"awaitable"`
	Instructions []Instruction `json:"instructions"`
	Project      string        `json:"project"`
	Type         string        `json:"type,omitempty"`
}

// submissionResponse is the accepted-submission body of both POST
// endpoints. Fields beyond the execution id are ignored.
type submissionResponse struct {
	ExecutionID string `json:"executionId"`
}

// Result combines a dispatched execution id with the payload its poll
// returned. Tools serialize this as a single JSON text value for wire
// compatibility with the existing host protocol.
type Result struct {
	ExecutionID string          `json:"executionId"`
	Result      json.RawMessage `json:"result"`
}

// Encode renders the result in the compatibility format: a JSON-encoded
// string payload, never a native structure.
func (r Result) Encode() (string, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
