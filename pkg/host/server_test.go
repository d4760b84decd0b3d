package host

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surfboard-hq/surfboard/pkg/logging"
	"github.com/surfboard-hq/surfboard/pkg/toolkit"
)

// echoTool returns its arguments, optionally reporting progress first.
type echoTool struct {
	name     string
	progress bool
	err      error
}

func (e *echoTool) Name() string                   { return e.name }
func (e *echoTool) Description() string            { return "echoes arguments" }
func (e *echoTool) Schema() map[string]interface{} { return toolkit.BaseSchema(nil, nil) }

func (e *echoTool) Execute(ctx context.Context, inv *toolkit.Invocation, args json.RawMessage) (string, error) {
	if e.err != nil {
		return "", e.err
	}
	if e.progress {
		inv.Progress(1, 20)
		inv.Progress(2, 20)
	}
	return string(args), nil
}

// runServer feeds input lines through a server and returns the decoded
// output lines.
func runServer(t *testing.T, server *Server, input string) []map[string]json.RawMessage {
	t.Helper()

	var out bytes.Buffer
	err := server.Run(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	var messages []map[string]json.RawMessage
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var msg map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(line), &msg))
		messages = append(messages, msg)
	}
	return messages
}

func newTestServer() *Server {
	return NewServer(logging.Discard("host"), toolkit.NewCallStats())
}

func TestServerRoutesRequestToTool(t *testing.T) {
	server := newTestServer()
	server.Register(&echoTool{name: "echo"})

	messages := runServer(t, server, `{"id":"1","tool":"echo","params":{"a":1}}`+"\n")

	require.Len(t, messages, 1)
	assert.JSONEq(t, `"1"`, string(messages[0]["id"]))

	var result string
	require.NoError(t, json.Unmarshal(messages[0]["result"], &result))
	assert.JSONEq(t, `{"a":1}`, result)
}

func TestServerReportsUnknownTool(t *testing.T) {
	server := newTestServer()

	messages := runServer(t, server, `{"id":"1","tool":"missing","params":{}}`+"\n")

	require.Len(t, messages, 1)
	assert.Contains(t, string(messages[0]["error"]), "missing")
}

func TestServerSurfacesToolErrors(t *testing.T) {
	server := newTestServer()
	server.Register(&echoTool{name: "broken", err: assert.AnError})

	messages := runServer(t, server, `{"id":"7","tool":"broken","params":{}}`+"\n")

	require.Len(t, messages, 1)
	assert.JSONEq(t, `"7"`, string(messages[0]["id"]))
	assert.NotEmpty(t, messages[0]["error"])
	assert.Empty(t, messages[0]["result"])
}

func TestServerEmitsProgressNotes(t *testing.T) {
	server := newTestServer()
	server.Register(&echoTool{name: "slow", progress: true})

	messages := runServer(t, server, `{"id":"1","tool":"slow","params":{}}`+"\n")

	var progress, responses int
	for _, msg := range messages {
		switch {
		case msg["progress"] != nil:
			progress++
		case msg["result"] != nil || msg["error"] != nil:
			responses++
		}
	}
	assert.Equal(t, 2, progress)
	assert.Equal(t, 1, responses)
}

func TestServerHandlesMalformedLine(t *testing.T) {
	server := newTestServer()
	server.Register(&echoTool{name: "echo"})

	input := "this is not json\n" + `{"id":"2","tool":"echo","params":{}}` + "\n"
	messages := runServer(t, server, input)

	require.Len(t, messages, 2)

	// One error for the bad line, one success for the good one
	var sawMalformed, sawResult bool
	for _, msg := range messages {
		if e, ok := msg["error"]; ok && strings.Contains(string(e), "malformed") {
			sawMalformed = true
		}
		if _, ok := msg["result"]; ok {
			sawResult = true
		}
	}
	assert.True(t, sawMalformed)
	assert.True(t, sawResult)
}

func TestServerListTools(t *testing.T) {
	server := newTestServer()
	server.Register(&echoTool{name: "alpha"})
	server.Register(&echoTool{name: "beta"})

	messages := runServer(t, server, `{"id":"1","tool":"list_tools"}`+"\n")
	require.Len(t, messages, 1)

	var result string
	require.NoError(t, json.Unmarshal(messages[0]["result"], &result))

	var listing struct {
		Tools []struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal([]byte(result), &listing))
	require.Len(t, listing.Tools, 2)
	assert.Equal(t, "alpha", listing.Tools[0].Name)
	assert.Equal(t, "beta", listing.Tools[1].Name)
}

func TestServerCountsInvocations(t *testing.T) {
	stats := toolkit.NewCallStats()
	server := NewServer(logging.Discard("host"), stats)
	server.Register(&echoTool{name: "echo"})

	input := `{"id":"1","tool":"echo","params":{}}` + "\n" + `{"id":"2","tool":"echo","params":{}}` + "\n"
	runServer(t, server, input)

	assert.Equal(t, 2, stats.Count("echo"))
}
