package toolkit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfboard-hq/surfboard/pkg/logging"
	"github.com/surfboard-hq/surfboard/pkg/remote"
)

// stubTool is a minimal Tool returning a canned result or error.
type stubTool struct {
	name   string
	result string
	err    error
}

func (s *stubTool) Name() string                   { return s.name }
func (s *stubTool) Description() string            { return "stub" }
func (s *stubTool) Schema() map[string]interface{} { return BaseSchema(nil, nil) }

func (s *stubTool) Execute(ctx context.Context, inv *Invocation, args json.RawMessage) (string, error) {
	return s.result, s.err
}

func newInvocation() *Invocation {
	return &Invocation{Logger: logging.Discard("test")}
}

func TestWrapCountsInvocations(t *testing.T) {
	stats := NewCallStats()
	tool := Wrap(logging.Discard("wrapper"), stats, &stubTool{name: "demo", result: "ok"})

	for i := 0; i < 3; i++ {
		_, err := tool.Execute(context.Background(), newInvocation(), nil)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, stats.Count("demo"))
	assert.Equal(t, map[string]int{"demo": 3}, stats.Snapshot())
}

func TestWrapPassesResultThroughUnchanged(t *testing.T) {
	tool := Wrap(logging.Discard("wrapper"), NewCallStats(), &stubTool{name: "demo", result: `{"value":42}`})

	result, err := tool.Execute(context.Background(), newInvocation(), json.RawMessage(`{}`))
	require.NoError(t, err)
	assert.Equal(t, `{"value":42}`, result)
}

func TestWrapPreservesMetadata(t *testing.T) {
	inner := &stubTool{name: "demo", result: "ok"}
	tool := Wrap(logging.Discard("wrapper"), NewCallStats(), inner)

	assert.Equal(t, inner.Name(), tool.Name())
	assert.Equal(t, inner.Description(), tool.Description())
	assert.Equal(t, inner.Schema(), tool.Schema())
}

func TestWrapHTTPErrorWithEmptyBodyFallsBackToStatusText(t *testing.T) {
	reqErr := &remote.RequestError{
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
		Body:       "",
	}
	tool := Wrap(logging.Discard("wrapper"), NewCallStats(), &stubTool{name: "demo", err: reqErr})

	_, err := tool.Execute(context.Background(), newInvocation(), nil)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "Not Found")

	var surfaced *remote.RequestError
	require.ErrorAs(t, err, &surfaced)
	assert.Equal(t, http.StatusNotFound, surfaced.StatusCode)
}

func TestWrapHTTPErrorPrefersBodyText(t *testing.T) {
	reqErr := &remote.RequestError{
		StatusCode: http.StatusTooManyRequests,
		Status:     "429 Too Many Requests",
		Body:       "quota exhausted",
	}
	tool := Wrap(logging.Discard("wrapper"), NewCallStats(), &stubTool{name: "demo", err: reqErr})

	_, err := tool.Execute(context.Background(), newInvocation(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exhausted")
}

func TestWrapPromotesRawNetworkError(t *testing.T) {
	netErr := &url.Error{Op: "Get", URL: "https://api.example.com/tasks/t1", Err: errors.New("connection refused")}
	tool := Wrap(logging.Discard("wrapper"), NewCallStats(), &stubTool{name: "demo", err: netErr})

	_, err := tool.Execute(context.Background(), newInvocation(), nil)
	require.Error(t, err)

	var networkErr *NetworkError
	require.ErrorAs(t, err, &networkErr)
	assert.Equal(t, "demo", networkErr.Tool)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWrapTransportErrorPassesThrough(t *testing.T) {
	transportErr := &remote.TransportError{Op: "task status", Err: errors.New("dial timeout")}
	tool := Wrap(logging.Discard("wrapper"), NewCallStats(), &stubTool{name: "demo", err: transportErr})

	_, err := tool.Execute(context.Background(), newInvocation(), nil)
	assert.Same(t, error(transportErr), err)
}

func TestWrapUnexpectedErrorPassesThrough(t *testing.T) {
	plainErr := errors.New("something went sideways")
	tool := Wrap(logging.Discard("wrapper"), NewCallStats(), &stubTool{name: "demo", err: plainErr})

	_, err := tool.Execute(context.Background(), newInvocation(), nil)
	assert.Same(t, plainErr, err)
}

func TestWrapLogsDurationExactlyOncePerInvocation(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWriterLogger("wrapper", &buf)

	okTool := Wrap(logger, NewCallStats(), &stubTool{name: "demo", result: "ok"})
	_, err := okTool.Execute(context.Background(), newInvocation(), nil)
	require.NoError(t, err)

	failTool := Wrap(logger, NewCallStats(), &stubTool{name: "demo", err: errors.New("boom")})
	_, err = failTool.Execute(context.Background(), newInvocation(), nil)
	require.Error(t, err)

	assert.Equal(t, 2, strings.Count(buf.String(), "finished in"),
		"duration must be logged once per invocation on both paths")
}
