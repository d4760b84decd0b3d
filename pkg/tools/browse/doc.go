// Package browse exposes the remote browser-automation task service to
// the agent host as tools.
//
// The package is thin glue over two collaborators:
//
//  1. remote.Dispatcher: submits instruction batches and polls the
//     resulting executions to completion
//  2. session.Registry: in-memory bookkeeping of the task ids the host
//     has open, for introspection
//
// # Session lifecycle
//
// run_browser_task creates a remote task and tracks its id. While the
// task sits in "awaiting", act_in_session and extract_from_session send
// further instruction batches against the same id, so the remote
// browser state carries across tool calls. close_browser_session drops
// the id from the registry; the remote service garbage-collects the
// task itself out of band.
//
// Every tool returns a single JSON-encoded string payload. Remote
// operations encode {executionId, result}; introspection tools encode
// their own shapes.
package browse
