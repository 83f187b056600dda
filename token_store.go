package artily

import (
	"context"
	"strings"
	"sync"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Persisted state keys. These four are the only durable client-side state:
// the bearer token, the cross-process login/logout markers, and the locale
// preference.
const (
	KeyAccessToken = "accessToken"
	KeyLastLogin   = "login"
	KeyLastLogout  = "logout"
	KeyLocale      = "locale"
)

// markerFormat keeps marker ordering comparable across processes.
const markerFormat = time.RFC3339Nano

// TokenStore holds the single bearer token and its session-change markers on
// top of a KeyValue backend. Reads never fail to the caller: backend errors
// are logged and read as "no token".
type TokenStore struct {
	kv     KeyValue
	logger Logger
	now    func() time.Time
}

// NewTokenStore wraps a KeyValue backend.
func NewTokenStore(kv KeyValue) *TokenStore {
	return &TokenStore{
		kv:     kv,
		logger: defLogger{},
		now:    time.Now,
	}
}

// WithLogger replaces the store's logger.
func (s *TokenStore) WithLogger(logger Logger) *TokenStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithClock injects a clock for the marker stamps.
func (s *TokenStore) WithClock(clock func() time.Time) *TokenStore {
	if clock != nil {
		s.now = clock
	}
	return s
}

// Get returns the persisted token, or "" when absent, whitespace-only, or
// unreadable.
func (s *TokenStore) Get(ctx context.Context) string {
	raw, err := s.kv.Get(ctx, KeyAccessToken)
	if err != nil {
		s.logger.Error("token read failed: %v", err)
		return ""
	}
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	return raw
}

// Set persists a token and stamps the login marker other processes watch.
// Blank, whitespace-only, or structurally malformed input is rejected and
// treated as a Clear, so a bad write can never leave a half-usable credential
// behind.
func (s *TokenStore) Set(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		s.logger.Warn("rejected blank token write, clearing instead")
		return s.Clear(ctx)
	}
	if !WellFormed(token) {
		s.logger.Warn("rejected malformed token write, clearing instead")
		return s.Clear(ctx)
	}

	if err := s.kv.Set(ctx, KeyAccessToken, token); err != nil {
		return goerrors.Wrap(err, ErrStorageFailure.Category, ErrStorageFailure.Message).
			WithTextCode(ErrStorageFailure.TextCode)
	}

	s.stamp(ctx, KeyLastLogin)
	return nil
}

// Clear removes the persisted token unconditionally and stamps the logout
// marker.
func (s *TokenStore) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, KeyAccessToken); err != nil {
		return goerrors.Wrap(err, ErrStorageFailure.Category, ErrStorageFailure.Message).
			WithTextCode(ErrStorageFailure.TextCode)
	}

	s.stamp(ctx, KeyLastLogout)
	return nil
}

// drop removes the persisted token without stamping the logout marker.
// Cleanup of a token that is already dead must not read as a logout to other
// processes.
func (s *TokenStore) drop(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyAccessToken)
}

// Source adapts the store into the token supplier shape the transport
// expects, so outgoing requests pick up whatever token is current at send
// time.
func (s *TokenStore) Source() func() string {
	return func() string {
		return s.Get(context.Background())
	}
}

// LastLogin returns the most recent login marker, if any.
func (s *TokenStore) LastLogin(ctx context.Context) (time.Time, bool) {
	return s.marker(ctx, KeyLastLogin)
}

// LastLogout returns the most recent logout marker, if any.
func (s *TokenStore) LastLogout(ctx context.Context) (time.Time, bool) {
	return s.marker(ctx, KeyLastLogout)
}

// Locale returns the persisted locale preference, or "" when unset.
func (s *TokenStore) Locale(ctx context.Context) string {
	raw, err := s.kv.Get(ctx, KeyLocale)
	if err != nil {
		s.logger.Error("locale read failed: %v", err)
		return ""
	}
	return raw
}

// SetLocale persists the locale preference.
func (s *TokenStore) SetLocale(ctx context.Context, locale string) error {
	if strings.TrimSpace(locale) == "" {
		return s.kv.Delete(ctx, KeyLocale)
	}
	return s.kv.Set(ctx, KeyLocale, locale)
}

func (s *TokenStore) stamp(ctx context.Context, key string) {
	if err := s.kv.Set(ctx, key, s.now().Format(markerFormat)); err != nil {
		// Markers only feed cross-process sync; a failed stamp must not fail
		// the session change itself.
		s.logger.Warn("marker %q stamp failed: %v", key, err)
	}
}

func (s *TokenStore) marker(ctx context.Context, key string) (time.Time, bool) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil || raw == "" {
		return time.Time{}, false
	}
	at, err := time.Parse(markerFormat, raw)
	if err != nil {
		s.logger.Warn("marker %q holds unreadable stamp %q", key, raw)
		return time.Time{}, false
	}
	return at, true
}

// MemoryKV is an in-process KeyValue backend for tests and hosts without a
// durable store.
type MemoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKV returns an empty in-memory backend.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

// Get implements KeyValue.
func (m *MemoryKV) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

// Set implements KeyValue.
func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete implements KeyValue.
func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
