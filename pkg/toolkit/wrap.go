package toolkit

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/url"
	"time"

	"github.com/surfboard-hq/surfboard/pkg/logging"
	"github.com/surfboard-hq/surfboard/pkg/remote"
)

// Wrap produces the instrumented version of a tool: call counting,
// timing, structured logging, and uniform error classification. The
// wrapped tool is the single entry point the host invokes.
//
// The wrapper never recovers and never swallows: every failure path
// re-signals to the caller. Its only effect is enrichment.
func Wrap(logger *logging.Logger, stats *CallStats, tool Tool) Tool {
	return &instrumentedTool{
		tool:   tool,
		logger: logger,
		stats:  stats,
	}
}

type instrumentedTool struct {
	tool   Tool
	logger *logging.Logger
	stats  *CallStats
}

func (t *instrumentedTool) Name() string                   { return t.tool.Name() }
func (t *instrumentedTool) Description() string            { return t.tool.Description() }
func (t *instrumentedTool) Schema() map[string]interface{} { return t.tool.Schema() }

func (t *instrumentedTool) Execute(ctx context.Context, inv *Invocation, args json.RawMessage) (string, error) {
	name := t.tool.Name()
	count := t.stats.Record(name)
	t.logger.Infof("tool %s invocation #%d args=%s", name, count, string(args))

	start := time.Now()
	result, err := t.tool.Execute(ctx, inv, args)

	// Duration is logged exactly once per invocation, on both paths
	t.logger.Infof("tool %s finished in %s", name, time.Since(start))

	if err == nil {
		return result, nil
	}
	return "", t.classify(name, err)
}

// classify logs the failure under its taxonomy bucket and re-signals.
// Typed errors from the remote package pass through unchanged; raw
// network-layer failures from tools doing their own I/O are promoted to
// NetworkError so callers always see tagged variants.
func (t *instrumentedTool) classify(name string, err error) error {
	var reqErr *remote.RequestError
	if errors.As(err, &reqErr) {
		detail := reqErr.Body
		if detail == "" {
			detail = reqErr.Status
		}
		t.logger.Errorf("tool %s HTTP failure: status %d: %s", name, reqErr.StatusCode, detail)
		return err
	}

	var transportErr *remote.TransportError
	if errors.As(err, &transportErr) {
		t.logger.Errorf("tool %s network failure: %v", name, err)
		return err
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) {
		t.logger.Errorf("tool %s network failure: %v", name, err)
		return &NetworkError{Tool: name, Err: err}
	}

	t.logger.Errorf("tool %s unexpected failure: %v", name, err)
	return err
}
