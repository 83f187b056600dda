// Package gql is the transport between the client SDK and the marketplace
// GraphQL API. It does request envelope encoding, bearer token injection, and
// server error surfacing; it deliberately does no retrying, batching, or
// de-duplication.
package gql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-Id"

	textCodeTransport = "TRANSPORT_FAILURE"
	textCodeRejected  = "SERVER_REJECTED"
	textCodeBadReply  = "UNREADABLE_RESPONSE"
)

// ErrTransport is returned when the API endpoint cannot be reached or does
// not answer with a usable HTTP response.
var ErrTransport = goerrors.New("marketplace API is unreachable", goerrors.CategoryOperation).
	WithTextCode(textCodeTransport)

// Logger is the subset of logging the transport needs.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

type defLogger struct{}

func (defLogger) Debug(format string, args ...any) { fmt.Printf("[DBG] GQL "+format+"\n", args...) }
func (defLogger) Info(format string, args ...any)  { fmt.Printf("[INF] GQL "+format+"\n", args...) }
func (defLogger) Error(format string, args ...any) { fmt.Printf("[ERR] GQL "+format+"\n", args...) }

// TokenSource supplies the current bearer token. Returning "" sends the
// request anonymously.
type TokenSource func() string

// ResetHook runs when the client resets after token rotation or logout.
// Services register hooks to drop any session-scoped state they keep.
type ResetHook func()

// Client posts GraphQL operations to a single endpoint.
type Client struct {
	endpoint string
	httpc    *http.Client
	tokens   TokenSource
	logger   Logger
	debug    bool

	mu    sync.Mutex
	hooks []ResetHook
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpc.Timeout = d
		}
	}
}

// WithTokenSource attaches the bearer token supplier.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) {
		c.tokens = tokens
	}
}

// WithLogger replaces the default stdout logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug dumps request and response payloads through go-print.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// New returns a Client for the given endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: 30 * time.Second},
		logger:   defLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// OnReset registers a hook to run on Reset.
func (c *Client) OnReset(hook ResetHook) {
	if hook == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, hook)
}

// Reset runs the registered reset hooks. Called by the session layer after a
// token rotation or logout so no state from the prior session leaks into the
// next one.
func (c *Client) Reset() {
	c.mu.Lock()
	hooks := make([]ResetHook, len(c.hooks))
	copy(hooks, c.hooks)
	c.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

type envelope struct {
	OperationName string         `json:"operationName,omitempty"`
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type serverError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

type reply struct {
	Data   json.RawMessage `json:"data"`
	Errors []serverError   `json:"errors"`
}

// Do executes one operation and decodes the response data into out. Server
// errors carry the server's message text verbatim so callers can match known
// messages; anything below HTTP is wrapped as a transport failure.
func (c *Client) Do(ctx context.Context, name, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(envelope{
		OperationName: name,
		Query:         query,
		Variables:     vars,
	})
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode GraphQL request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build GraphQL request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(headerRequestID, uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set(headerAuthorization, "Bearer "+token)
		}
	}

	if c.debug {
		c.logger.Debug("request %s: %s", name, print.MaybePrettyJSON(vars))
	}

	res, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Error("operation %s transport error: %v", name, err)
		return goerrors.Wrap(err, ErrTransport.Category, ErrTransport.Message).
			WithTextCode(ErrTransport.TextCode)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		c.logger.Error("operation %s body read error: %v", name, err)
		return goerrors.Wrap(err, ErrTransport.Category, ErrTransport.Message).
			WithTextCode(ErrTransport.TextCode)
	}

	var parsed reply
	if err := json.Unmarshal(raw, &parsed); err != nil {
		c.logger.Error("operation %s returned unreadable payload: %v", name, err)
		return goerrors.Wrap(err, goerrors.CategoryOperation, "marketplace API returned an unreadable response").
			WithTextCode(textCodeBadReply)
	}

	if len(parsed.Errors) > 0 {
		msg := parsed.Errors[0].Message
		c.logger.Info("operation %s rejected: %s", name, msg)
		return goerrors.New(msg, goerrors.CategoryOperation).
			WithTextCode(textCodeRejected).
			WithMetadata(map[string]any{"operation": name})
	}

	if c.debug {
		c.logger.Debug("response %s: %s", name, print.MaybePrettyJSON(string(parsed.Data)))
	}

	if out == nil || len(parsed.Data) == 0 {
		return nil
	}

	if err := json.Unmarshal(parsed.Data, out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "marketplace API returned an unreadable response").
			WithTextCode(textCodeBadReply)
	}

	return nil
}

// IsServerRejection reports whether err carries a server-side GraphQL error
// (as opposed to a transport or decoding failure).
func IsServerRejection(err error) bool {
	return hasTextCode(err, textCodeRejected)
}

// IsTransportError reports whether err means the API could not be reached.
func IsTransportError(err error) bool {
	return hasTextCode(err, textCodeTransport)
}

func hasTextCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		return rich.TextCode == code
	}
	return false
}
