// Package remote implements the client side of the Surfboard task
// service's HTTP contract: task creation, instruction dispatch, and the
// submit-once/poll-until-terminal state machine.
//
// # Architecture
//
// The package is built around three pieces:
//
//  1. Client: thin HTTP layer over the /tasks resources, stamping every
//     request with the Header Factory's authenticated header set
//  2. Poller: drives GET /tasks/{id} until the task reaches a terminal
//     status and returns its result payload
//  3. Dispatcher: submits an ordered instruction batch against a task,
//     then hands the returned execution id to the Poller
//
// # Task lifecycle
//
// A task is created by POST /tasks and progresses through the remote
// service's status vocabulary. Only three values end the poll loop:
// "finalized" and "awaiting" (success) and "failed" (failure). Every
// other status, including values this client has never seen, means the
// task is still running and the loop keeps going after a fixed delay.
//
// The loop carries no intrinsic deadline. Callers that need bounded
// latency pass a context with a deadline; both the request and the
// inter-poll sleep honor cancellation.
//
// # Errors
//
// Failures are produced as typed values at the point of failure
// (TransportError, RequestError, ParseError, TaskFailedError,
// MissingExecutionIDError) and matched with errors.As. Only the
// "still running" condition is ever retried.
package remote
