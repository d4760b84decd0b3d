package remote

import (
	"context"
	"encoding/json"
	"time"

	"github.com/surfboard-hq/surfboard/pkg/logging"
)

const (
	// DefaultPollInterval is the delay between status polls
	DefaultPollInterval = 3 * time.Second

	// progressCeiling is the fixed total reported to the progress
	// sink. Polling has no known length, so the step counter against
	// this ceiling is an approximation, not a percentage.
	progressCeiling = 20
)

// Poller drives the poll-until-terminal state machine for one task at a
// time. It is safe to run concurrent polls for different tasks; each
// Poll call is an independent, strictly sequential loop.
type Poller struct {
	client   *Client
	logger   *logging.Logger
	interval time.Duration
}

// PollerOption adjusts poller behavior at construction time.
type PollerOption func(*Poller)

// WithPollInterval overrides the delay between polls. Tests run the
// loop at zero delay through this.
func WithPollInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		p.interval = d
	}
}

// NewPoller constructs a poller over the given client.
func NewPoller(client *Client, logger *logging.Logger, opts ...PollerOption) *Poller {
	p := &Poller{
		client:   client,
		logger:   logger,
		interval: DefaultPollInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Poll queries the task's status until it reaches a terminal state and
// returns the result payload attached to the terminal response.
//
// "finalized" and "awaiting" are terminal success. "failed" is terminal
// failure and yields a TaskFailedError carrying the service's error
// text. Every other status, known or not, means still running: the
// poller sleeps its interval and tries again. Unknown values are logged
// once per Poll call so a vocabulary change is visible in the logs
// instead of silently extending the loop.
//
// Transport and parse failures abort the loop immediately. The loop
// itself has no deadline; it stops when the task turns terminal or ctx
// is cancelled.
//
// progress, if non-nil, receives a monotonically increasing step count
// against a fixed ceiling on every iteration. It is best-effort and has
// no effect on the loop.
func (p *Poller) Poll(ctx context.Context, taskID string, progress func(step, total int)) (json.RawMessage, error) {
	step := 0
	unknownSeen := make(map[TaskStatus]bool)

	for {
		state, err := p.client.TaskState(ctx, taskID)
		if err != nil {
			p.logger.Errorf("poll for task %s aborted: %v", taskID, err)
			return nil, err
		}

		p.logger.Debugf("task %s status: %s", taskID, state.Status)

		if step < progressCeiling {
			step++
		}
		if progress != nil {
			progress(step, progressCeiling)
		}

		switch {
		case state.Status == StatusFailed:
			p.logger.Errorf("task %s failed: %s", taskID, state.Error)
			return nil, &TaskFailedError{TaskID: taskID, Reason: state.Error}

		case state.Status.Terminal():
			p.logger.Infof("task %s completed with status %s", taskID, state.Status)
			return state.Result, nil

		default:
			if state.Status != StatusPending && !unknownSeen[state.Status] {
				unknownSeen[state.Status] = true
				p.logger.Warnf("task %s reported unrecognized status %q, treating as still running", taskID, state.Status)
			}
			if err := sleep(ctx, p.interval); err != nil {
				return nil, err
			}
		}
	}
}

// sleep waits for d or until ctx is cancelled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
