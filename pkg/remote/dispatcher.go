package remote

import (
	"context"
	"time"

	"github.com/surfboard-hq/surfboard/pkg/logging"
)

const (
	// DefaultSettleDelay is the grace period between a submission being
	// accepted and the new execution becoming pollable. Polling sooner
	// intermittently 404s, so the delay is required, not cosmetic.
	DefaultSettleDelay = 1 * time.Second

	// pacingAction is the synthetic descriptor appended to every batch
	// so the service lets the page settle before extracting.
	pacingAction = "wait for 1 second"

	// defaultExtraction is the synthetic descriptor appended when the
	// caller does not ask for anything specific. It requests structured
	// output so every tool return parses as JSON.
	defaultExtraction = "extract a structured JSON summary of the current page state and the outcome of the instructions"
)

// Dispatcher submits ordered instruction batches to the task service
// and polls the resulting execution to completion.
type Dispatcher struct {
	client  *Client
	poller  *Poller
	logger  *logging.Logger
	project string
	settle  time.Duration
}

// DispatcherOption adjusts dispatcher behavior at construction time.
type DispatcherOption func(*Dispatcher)

// WithSettleDelay overrides the post-submission grace period. Tests run
// at zero delay through this.
func WithSettleDelay(d time.Duration) DispatcherOption {
	return func(disp *Dispatcher) {
		disp.settle = d
	}
}

// NewDispatcher constructs a dispatcher for the given project.
func NewDispatcher(client *Client, poller *Poller, logger *logging.Logger, project string, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		client:  client,
		poller:  poller,
		logger:  logger,
		project: project,
		settle:  DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Submit creates a new task from the given actions and returns the
// execution id without waiting for the task to complete. The id is
// available to callers immediately, before any polling, so sessions can
// be tracked from the moment the service accepts the work.
func (d *Dispatcher) Submit(ctx context.Context, actions []string, extraction string) (string, error) {
	batch := buildBatch(actions, extraction)

	d.logger.Infof("creating task with %d instructions", len(batch))
	return d.client.CreateTask(ctx, batch, d.project)
}

// Await settles and polls a previously submitted execution to
// completion. An empty execution id is diagnosed after the settle
// delay, the same way Run and Dispatch diagnose it.
func (d *Dispatcher) Await(ctx context.Context, executionID string, progress func(step, total int)) (Result, error) {
	return d.await(ctx, "", executionID, progress)
}

// Run creates a new task from the given actions and polls it to
// completion. The extraction text, when non-empty, replaces the default
// synthetic extraction descriptor appended to the batch.
func (d *Dispatcher) Run(ctx context.Context, actions []string, extraction string, progress func(step, total int)) (Result, error) {
	executionID, err := d.Submit(ctx, actions, extraction)
	if err != nil {
		return Result{}, err
	}
	return d.await(ctx, "", executionID, progress)
}

// Dispatch submits further actions against an existing task and polls
// the resulting execution to completion. Order within the batch is
// preserved; the service executes descriptors in sequence.
func (d *Dispatcher) Dispatch(ctx context.Context, taskID string, actions []string, extraction string, progress func(step, total int)) (Result, error) {
	batch := buildBatch(actions, extraction)

	d.logger.Infof("dispatching %d instructions to task %s", len(batch), taskID)
	executionID, err := d.client.SubmitInstructions(ctx, taskID, batch, d.project)
	if err != nil {
		return Result{}, err
	}
	return d.await(ctx, taskID, executionID, progress)
}

// await runs the shared tail of both submission paths: settle, verify
// the execution id, poll, and combine id and result. The settle delay
// deliberately precedes the id check, matching the observed service
// behavior that even a missing id follows the same pacing.
func (d *Dispatcher) await(ctx context.Context, taskID, executionID string, progress func(step, total int)) (Result, error) {
	if err := sleep(ctx, d.settle); err != nil {
		return Result{}, err
	}

	if executionID == "" {
		d.logger.Errorf("submission accepted but no execution id returned (task %q)", taskID)
		return Result{}, &MissingExecutionIDError{TaskID: taskID}
	}

	result, err := d.poller.Poll(ctx, executionID, progress)
	if err != nil {
		return Result{}, err
	}
	return Result{ExecutionID: executionID, Result: result}, nil
}

// buildBatch converts free-text actions into instruction descriptors
// and appends the synthetic pacing and extraction descriptors.
func buildBatch(actions []string, extraction string) []Instruction {
	if extraction == "" {
		extraction = defaultExtraction
	}

	batch := make([]Instruction, 0, len(actions)+2)
	for _, action := range actions {
		batch = append(batch, Instruction{Action: action})
	}
	batch = append(batch, Instruction{Action: pacingAction})
	batch = append(batch, Instruction{Action: extraction})
	return batch
}
