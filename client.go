package artily

import (
	"context"
	"io"

	"github.com/balumaqsud/artily-client/gql"
	"github.com/balumaqsud/artily-client/market"
	"github.com/balumaqsud/artily-client/storage"
)

// Client bundles the full SDK: the session lifecycle manager, the persisted
// token store, the reactive session cell, and the typed marketplace services,
// all sharing one transport.
type Client struct {
	Config   Config
	Store    *TokenStore
	Session  *SessionCell
	Manager  *Manager
	Watcher  *Watcher
	Products *market.Products
	Members  *market.Members
	Board    *market.Board
	Orders   *market.Orders

	transport *gql.Client
	backend   io.Closer
	logger    Logger
}

// ClientOption customizes the assembled client.
type ClientOption func(*clientOptions)

type clientOptions struct {
	logger Logger
	kv     KeyValue
}

// WithClientLogger routes all component logging through one logger.
func WithClientLogger(logger Logger) ClientOption {
	return func(o *clientOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithKeyValue overrides the persisted state backend, bypassing the
// config-selected SQLite store. Mostly for tests and embedded hosts.
func WithKeyValue(kv KeyValue) ClientOption {
	return func(o *clientOptions) {
		if kv != nil {
			o.kv = kv
		}
	}
}

// New assembles a Client from config. When cfg.StoragePath is set the state
// backend is the shared SQLite store, otherwise state stays in memory.
func New(cfg Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := &clientOptions{logger: defLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	var backend io.Closer
	kv := options.kv
	if kv == nil {
		if cfg.StoragePath != "" {
			store, err := storage.Open(cfg.StoragePath)
			if err != nil {
				return nil, err
			}
			kv = store
			backend = store
		} else {
			kv = NewMemoryKV()
		}
	}

	tokens := NewTokenStore(kv).WithLogger(options.logger)

	transport := gql.New(cfg.Endpoint,
		gql.WithTokenSource(tokens.Source()),
		gql.WithTimeout(cfg.RequestTimeout),
		gql.WithLogger(options.logger),
		gql.WithDebug(cfg.Debug),
	)

	cell := NewSessionCell()
	manager := NewManager(transport, tokens, cell).WithLogger(options.logger)

	c := &Client{
		Config:    cfg,
		Store:     tokens,
		Session:   cell,
		Manager:   manager,
		Watcher:   NewWatcher(manager, tokens).WithLogger(options.logger),
		Products:  market.NewProducts(transport),
		Members:   market.NewMembers(transport),
		Board:     market.NewBoard(transport),
		Orders:    market.NewOrders(transport),
		transport: transport,
		backend:   backend,
		logger:    options.logger,
	}

	if cfg.Locale != "" {
		ctx := context.Background()
		if tokens.Locale(ctx) == "" {
			if err := tokens.SetLocale(ctx, cfg.Locale); err != nil {
				options.logger.Warn("unable to persist locale preference: %v", err)
			}
		}
	}

	return c, nil
}

// Transport exposes the underlying GraphQL client for hosts that need to
// register their own reset hooks or run ad hoc operations.
func (c *Client) Transport() *gql.Client {
	return c.transport
}

// Close stops the watcher and releases the state backend.
func (c *Client) Close() error {
	c.Watcher.Stop()
	if c.backend != nil {
		return c.backend.Close()
	}
	return nil
}
