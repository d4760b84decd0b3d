// Package host runs the stdio transport between the agent host and the
// registered tools. The protocol is newline-delimited JSON: one request
// object per line in, one response object per line out, with optional
// progress notifications in between.
//
// The transport is deliberately thin. It owns process lifecycle and
// fan-out; everything interesting happens inside the wrapped tools.
package host

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/surfboard-hq/surfboard/pkg/logging"
	"github.com/surfboard-hq/surfboard/pkg/toolkit"
)

// maxLineSize bounds a single request line. Instruction batches are
// natural-language text, so 1 MiB is generous.
const maxLineSize = 1 << 20

// request is one tool invocation from the host.
type request struct {
	ID     string          `json:"id"`
	Tool   string          `json:"tool"`
	Params json.RawMessage `json:"params"`
}

// response answers one request. Exactly one of Result and Error is set.
type response struct {
	ID     string `json:"id"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// progressNote is a best-effort notification emitted while a tool runs.
type progressNote struct {
	ID       string `json:"id"`
	Progress struct {
		Step  int `json:"step"`
		Total int `json:"total"`
	} `json:"progress"`
}

// toolDescriptor is the shape returned by the built-in listing request.
type toolDescriptor struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Schema      map[string]interface{} `json:"schema"`
}

// Server dispatches requests read from the transport to registered
// tools. Requests run concurrently; response writes are serialized.
type Server struct {
	logger *logging.Logger
	stats  *toolkit.CallStats

	mu    sync.Mutex // guards writes to the output stream
	tools map[string]toolkit.Tool
	order []string
}

// NewServer creates a server. Stats may be shared with other consumers
// for introspection; pass a fresh instance otherwise.
func NewServer(logger *logging.Logger, stats *toolkit.CallStats) *Server {
	return &Server{
		logger: logger,
		stats:  stats,
		tools:  make(map[string]toolkit.Tool),
	}
}

// Register adds a tool, applying the instrumentation wrapper. The last
// registration for a name wins.
func (s *Server) Register(tool toolkit.Tool) {
	name := tool.Name()
	if _, exists := s.tools[name]; !exists {
		s.order = append(s.order, name)
	}
	s.tools[name] = toolkit.Wrap(s.logger, s.stats, tool)
}

// Run reads requests from in until EOF or ctx cancellation, writing
// responses to out. Each request runs on its own goroutine; Run returns
// only after all in-flight invocations have finished.
func (s *Server) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var wg sync.WaitGroup
	defer wg.Wait()

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Warnf("discarding malformed request line: %v", err)
			s.write(out, response{Error: fmt.Sprintf("malformed request: %v", err)})
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.write(out, s.handle(ctx, out, req))
		}()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("transport read failed: %w", err)
	}
	return nil
}

// handle executes one request and builds its response.
func (s *Server) handle(ctx context.Context, out io.Writer, req request) response {
	if req.Tool == "list_tools" {
		return s.listTools(req.ID)
	}

	tool, ok := s.tools[req.Tool]
	if !ok {
		return response{ID: req.ID, Error: fmt.Sprintf("unknown tool %q", req.Tool)}
	}

	inv := &toolkit.Invocation{
		Logger: s.logger,
		ReportProgress: func(step, total int) {
			note := progressNote{ID: req.ID}
			note.Progress.Step = step
			note.Progress.Total = total
			s.write(out, note)
		},
	}

	result, err := tool.Execute(ctx, inv, req.Params)
	if err != nil {
		return response{ID: req.ID, Error: err.Error()}
	}
	return response{ID: req.ID, Result: result}
}

// listTools answers the built-in tool listing request.
func (s *Server) listTools(id string) response {
	descriptors := make([]toolDescriptor, 0, len(s.order))
	for _, name := range s.order {
		tool := s.tools[name]
		descriptors = append(descriptors, toolDescriptor{
			Name:        tool.Name(),
			Description: tool.Description(),
			Schema:      tool.Schema(),
		})
	}

	payload, err := json.Marshal(map[string]interface{}{"tools": descriptors})
	if err != nil {
		return response{ID: id, Error: err.Error()}
	}
	return response{ID: id, Result: string(payload)}
}

// write marshals v and appends it as one line, serialized across
// goroutines.
func (s *Server) write(out io.Writer, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.logger.Errorf("failed to marshal transport message: %v", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := out.Write(append(payload, '\n')); err != nil {
		s.logger.Errorf("failed to write transport message: %v", err)
	}
}
