package remote

import "fmt"

// TransportError indicates the remote service could not be reached at
// the network layer. Never retried by the poll loop.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RequestError indicates the remote service answered with a non-success
// HTTP status. Body holds the response body text when it could be read.
type RequestError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RequestError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
	}
	// Fall back to the status text when the body is empty
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Status)
}

// ParseError indicates a response body could not be interpreted as
// structured data.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TaskFailedError indicates a task reached the terminal "failed" status.
// Reason carries the service-supplied error text verbatim.
type TaskFailedError struct {
	TaskID string
	Reason string
}

func (e *TaskFailedError) Error() string {
	return fmt.Sprintf("task %s failed: %s", e.TaskID, e.Reason)
}

// MissingExecutionIDError indicates the service accepted a submission
// but returned no usable execution identifier.
type MissingExecutionIDError struct {
	TaskID string
}

func (e *MissingExecutionIDError) Error() string {
	if e.TaskID == "" {
		return "service accepted the task but returned no execution id"
	}
	return fmt.Sprintf("service accepted instructions for task %s but returned no execution id", e.TaskID)
}
