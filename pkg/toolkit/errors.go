package toolkit

import "fmt"

// NetworkError is the wrapper's classification of a raw network-layer
// failure surfaced by a tool doing its own I/O. The original message is
// preserved. Typed errors from the remote package already carry their
// classification and pass through without this promotion.
type NetworkError struct {
	Tool string
	Err  error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network failure in tool %s: %v", e.Tool, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
