package browse

import (
	"github.com/surfboard-hq/surfboard/pkg/remote"
	"github.com/surfboard-hq/surfboard/pkg/session"
	"github.com/surfboard-hq/surfboard/pkg/toolkit"
)

// Tools returns the full browser tool set, unwrapped. The host applies
// the instrumentation wrapper at registration.
func Tools(dispatcher *remote.Dispatcher, registry *session.Registry) []toolkit.Tool {
	return []toolkit.Tool{
		NewRunTaskTool(dispatcher, registry),
		NewActTool(dispatcher, registry),
		NewExtractTool(dispatcher, registry),
		NewListSessionsTool(registry),
		NewCloseSessionTool(registry),
	}
}
