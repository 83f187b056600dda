package artily

import (
	"context"
	"sync"
	"time"
)

// DefaultWatchInterval is how often the watcher samples the session markers.
const DefaultWatchInterval = 2 * time.Second

// Watcher implements the cross-process session sync protocol: the token
// store stamps a "login" marker on every token write and a "logout" marker on
// every clear, and any process sharing the backend re-derives its session
// state when a marker advances. The protocol is one-way per marker — a
// follower never re-stamps in response, so two watchers cannot ping-pong.
type Watcher struct {
	manager  *Manager
	store    *TokenStore
	interval time.Duration
	logger   Logger

	mu         sync.Mutex
	cancel     context.CancelFunc
	done       chan struct{}
	lastLogin  time.Time
	lastLogout time.Time
}

// NewWatcher builds a watcher over the manager's store markers.
func NewWatcher(manager *Manager, store *TokenStore) *Watcher {
	return &Watcher{
		manager:  manager,
		store:    store,
		interval: DefaultWatchInterval,
		logger:   defLogger{},
	}
}

// WithInterval overrides the polling interval.
func (w *Watcher) WithInterval(interval time.Duration) *Watcher {
	if interval > 0 {
		w.interval = interval
	}
	return w
}

// WithLogger replaces the watcher's logger.
func (w *Watcher) WithLogger(logger Logger) *Watcher {
	if logger != nil {
		w.logger = logger
	}
	return w
}

// Start snapshots the current markers and begins polling. Starting an
// already running watcher is a no-op.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return
	}

	w.lastLogin, _ = w.store.LastLogin(ctx)
	w.lastLogout, _ = w.store.LastLogout(ctx)

	ctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.done = make(chan struct{})

	go w.run(ctx, w.done)
}

// Stop halts polling and waits for the poll goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	done := w.done
	w.cancel = nil
	w.done = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (w *Watcher) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	login, hasLogin := w.store.LastLogin(ctx)
	logout, hasLogout := w.store.LastLogout(ctx)

	w.mu.Lock()
	loginAdvanced := hasLogin && login.After(w.lastLogin)
	logoutAdvanced := hasLogout && logout.After(w.lastLogout)
	if loginAdvanced {
		w.lastLogin = login
	}
	if logoutAdvanced {
		w.lastLogout = logout
	}
	w.mu.Unlock()

	// When both markers moved, the most recent one wins: Set stamps login
	// after writing the token, Clear stamps logout after deleting it.
	switch {
	case loginAdvanced && (!logoutAdvanced || login.After(logout)):
		w.logger.Debug("login marker advanced, restoring session")
		if err := w.manager.Restore(ctx); err != nil {
			w.logger.Error("session restore after marker change failed: %v", err)
		}
	case logoutAdvanced:
		w.logger.Debug("logout marker advanced, dropping local session")
		w.manager.resetLocal()
	}
}
