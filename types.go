package artily

import (
	"context"
	"fmt"
)

// Logger is the logging surface of the client. Hosts plug their own
// implementation in through the With* setters; the default writes to stdout.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Requester executes a named GraphQL operation and decodes response data into
// out. Satisfied by *gql.Client; tests swap in fakes. Reset drops any
// session-scoped state held below the session layer and runs after token
// rotation and logout.
type Requester interface {
	Do(ctx context.Context, name, query string, vars map[string]any, out any) error
	Reset()
}

// KeyValue is the persisted client-side state backend, the Go analog of the
// browser's local storage. Absent keys read back as "" with a nil error.
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ARTILY "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] ARTILY "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ARTILY "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ARTILY "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
