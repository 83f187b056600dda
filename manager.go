package artily

import (
	"context"

	goerrors "github.com/goliatone/go-errors"

	"github.com/balumaqsud/artily-client/market"
)

const loginMutation = `mutation login($input: LoginInput!) {
	login(input: $input) {
		accessToken
	}
}`

const signupMutation = `mutation signup($input: MemberInput!) {
	signup(input: $input) {
		accessToken
	}
}`

type authPayload struct {
	AccessToken string `json:"accessToken"`
}

// Manager runs the session lifecycle: login, signup, logout, restore, and
// token rotation. It is the only writer of the session cell and the token
// store; every failure path finishes the full fallback to anonymous before
// the error reaches the caller, so no operation can leave a half-initialized
// session behind. Nothing retries automatically.
type Manager struct {
	requester Requester
	store     *TokenStore
	cell      *SessionCell
	codec     *TokenCodec
	phases    *phaseMachine
	logger    Logger
}

// NewManager wires the lifecycle over a transport, a token store, and the
// session cell the host's UI (or any other reader) watches.
func NewManager(requester Requester, store *TokenStore, cell *SessionCell) *Manager {
	return &Manager{
		requester: requester,
		store:     store,
		cell:      cell,
		codec:     NewTokenCodec(),
		phases:    newPhaseMachine(),
		logger:    defLogger{},
	}
}

// WithLogger replaces the manager's logger.
func (m *Manager) WithLogger(logger Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// WithCodec replaces the token codec, mostly to inject a test clock.
func (m *Manager) WithCodec(codec *TokenCodec) *Manager {
	if codec != nil {
		m.codec = codec
	}
	return m
}

// Phase returns the current session phase.
func (m *Manager) Phase() Phase {
	return m.phases.Current()
}

// Session returns the cell holding the current member profile.
func (m *Manager) Session() *SessionCell {
	return m.cell
}

// IsAuthenticated reports whether a member profile occupies the session
// cell, derived from the profile's identity field being non-empty.
func (m *Manager) IsAuthenticated() bool {
	return !m.cell.Current().IsAnonymous()
}

// HasValidToken reports whether the persisted token passes the full
// structural and expiry check. Fails closed.
func (m *Manager) HasValidToken(ctx context.Context) bool {
	return m.codec.IsValid(m.store.Get(ctx))
}

// Login authenticates with the marketplace and establishes the session. Any
// prior session is torn down before the attempt, and any failure, at any
// stage, leaves the token store empty and the session anonymous.
func (m *Manager) Login(ctx context.Context, nick, password string) error {
	input := LoginInput{Nick: nick, Password: password}
	if err := input.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "login input is not valid")
	}

	return m.authenticate(ctx, "login", loginMutation, map[string]any{"input": input})
}

// SignUp registers a new member and establishes the session under the same
// contract as Login, additionally surfacing the taken-nick rejection
// distinctly.
func (m *Manager) SignUp(ctx context.Context, input SignUpInput) error {
	if err := input.Validate(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "signup input is not valid")
	}

	return m.authenticate(ctx, "signup", signupMutation, map[string]any{"input": input})
}

func (m *Manager) authenticate(ctx context.Context, name, mutation string, vars map[string]any) error {
	m.teardown(ctx)
	if err := m.phases.Transition(PhaseAuthenticating); err != nil {
		return err
	}

	var out struct {
		Login  authPayload `json:"login"`
		Signup authPayload `json:"signup"`
	}
	if err := m.requester.Do(ctx, name, mutation, vars, &out); err != nil {
		m.teardown(ctx)
		m.logger.Info("%s rejected: %v", name, err)
		return mapServerError(err)
	}

	token := out.Login.AccessToken
	if token == "" {
		token = out.Signup.AccessToken
	}

	if err := m.establish(ctx, token); err != nil {
		return err
	}

	m.logger.Debug("%s established session for %s", name, m.cell.Current().Nick)
	return nil
}

// establish persists and decodes a freshly issued token, then populates the
// session cell from its claims. Called with the phase at authenticating.
func (m *Manager) establish(ctx context.Context, token string) error {
	if !WellFormed(token) {
		m.teardown(ctx)
		return ErrInvalidTokenFormat
	}

	if err := m.store.Set(ctx, token); err != nil {
		m.teardown(ctx)
		return err
	}

	claims, err := m.codec.Decode(token)
	if err != nil {
		// A half-initialized session is worse than no session: drop the
		// already-persisted token and fall back to anonymous.
		m.teardown(ctx)
		return err
	}

	m.cell.set(memberFromClaims(claims))
	if err := m.phases.Transition(PhaseAuthenticated); err != nil {
		m.teardown(ctx)
		return err
	}

	return nil
}

// Logout tears the session down: token cleared, profile reset to the
// anonymous sentinel, and every session-scoped cache below the session layer
// dropped through the transport's reset hooks. Idempotent; logging out while
// logged out is not an error.
func (m *Manager) Logout(ctx context.Context) error {
	err := m.store.Clear(ctx)
	m.cell.set(market.Member{})
	m.phases.Reset()
	m.requester.Reset()

	if err != nil {
		m.logger.Error("logout token clear failed: %v", err)
		return err
	}
	return nil
}

// RefreshFromMutation applies a mutation response that may carry a rotated
// token. No token means nothing to do and is not an error. A present, valid
// token is persisted and the session cell takes the response's authoritative
// member fields, never re-decoded claims, so the profile shows exactly what
// the server confirmed. A present but malformed token is fatal: forced
// logout.
func (m *Manager) RefreshFromMutation(ctx context.Context, res market.ProfileResult) error {
	if res.AccessToken == "" {
		return nil
	}

	if !WellFormed(res.AccessToken) {
		m.teardown(ctx)
		return ErrInvalidTokenFormat
	}

	if err := m.store.Set(ctx, res.AccessToken); err != nil {
		m.teardown(ctx)
		return err
	}

	m.cell.set(withProfileDefaults(res.Member))
	m.phases.force(PhaseAuthenticated)
	m.requester.Reset()
	return nil
}

// Restore rebuilds the session from a previously persisted token, the
// startup path of a returning host. An absent, malformed, or expired token
// quietly cleans up to anonymous; only storage trouble surfaces as an error.
func (m *Manager) Restore(ctx context.Context) error {
	raw := m.store.Get(ctx)
	if raw == "" {
		return nil
	}

	if err := m.codec.Validate(raw); err != nil {
		m.logger.Info("stored token no longer valid, dropping: %v", err)
		m.discard(ctx)
		return nil
	}

	claims, err := m.codec.Decode(raw)
	if err != nil {
		m.discard(ctx)
		return nil
	}

	m.cell.set(memberFromClaims(claims))
	m.phases.force(PhaseAuthenticated)
	return nil
}

// teardown is the fallback-to-anonymous sequence shared by every failure
// path: clear the store, zero the profile, reset the phase.
func (m *Manager) teardown(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Error("teardown token clear failed: %v", err)
	}
	m.cell.set(market.Member{})
	m.phases.Reset()
}

// discard is the silent variant of teardown: the dead token is removed
// without stamping the logout marker. Restore uses it so cleanup of an
// expired or unreadable token never logs other processes out.
func (m *Manager) discard(ctx context.Context) {
	if err := m.store.drop(ctx); err != nil {
		m.logger.Error("token drop failed: %v", err)
	}
	m.cell.set(market.Member{})
	m.phases.Reset()
}

// resetLocal mirrors another process's logout without re-stamping the logout
// marker: the other process already cleared the shared store.
func (m *Manager) resetLocal() {
	m.cell.set(market.Member{})
	m.phases.Reset()
	m.requester.Reset()
}
