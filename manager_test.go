package artily_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	artily "github.com/balumaqsud/artily-client"
	"github.com/balumaqsud/artily-client/market"
)

// fakeRequester is a canned-response transport for lifecycle tests.
type fakeRequester struct {
	mu      sync.Mutex
	calls   []string
	respond map[string]any
	errs    map[string]error
	resets  int
}

func newFakeRequester() *fakeRequester {
	return &fakeRequester{
		respond: map[string]any{},
		errs:    map[string]error{},
	}
}

func (f *fakeRequester) Do(_ context.Context, name, _ string, _ map[string]any, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()

	if err := f.errs[name]; err != nil {
		return err
	}

	payload, ok := f.respond[name]
	if !ok {
		return nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (f *fakeRequester) Reset() {
	f.mu.Lock()
	f.resets++
	f.mu.Unlock()
}

func (f *fakeRequester) resetCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.resets
}

func newManagerFixture() (*artily.Manager, *fakeRequester, *artily.TokenStore, *artily.SessionCell) {
	requester := newFakeRequester()
	store := artily.NewTokenStore(artily.NewMemoryKV())
	cell := artily.NewSessionCell()
	return artily.NewManager(requester, store, cell), requester, store, cell
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("establishes a session from the issued token", func(t *testing.T) {
		manager, requester, store, cell := newManagerFixture()
		token := makeToken(t, map[string]any{
			"_id":        "m1",
			"memberNick": "alice",
			"memberType": "ARTIST",
			"exp":        time.Now().Add(time.Hour).Unix(),
		})
		requester.respond["login"] = map[string]any{
			"login": map[string]any{"accessToken": token},
		}

		require.NoError(t, manager.Login(ctx, "alice", "pw123"))

		assert.True(t, manager.IsAuthenticated())
		assert.Equal(t, artily.PhaseAuthenticated, manager.Phase())
		assert.Equal(t, token, store.Get(ctx))
		assert.Equal(t, "m1", cell.Current().ID)
		assert.Equal(t, "alice", cell.Current().Nick)
		assert.True(t, manager.HasValidToken(ctx))
	})

	t.Run("notifies session subscribers", func(t *testing.T) {
		manager, requester, _, cell := newManagerFixture()
		requester.respond["login"] = map[string]any{
			"login": map[string]any{"accessToken": makeToken(t, map[string]any{"_id": "m1"})},
		}

		var seen []string
		cell.Subscribe(func(m market.Member) { seen = append(seen, m.ID) })

		require.NoError(t, manager.Login(ctx, "alice", "pw123"))
		assert.Equal(t, "m1", seen[len(seen)-1])
	})

	t.Run("rejects invalid input without calling the server", func(t *testing.T) {
		manager, requester, _, _ := newManagerFixture()

		require.Error(t, manager.Login(ctx, "al", "pw123"))
		assert.Empty(t, requester.calls)
		assert.Equal(t, artily.PhaseAnonymous, manager.Phase())
	})

	t.Run("maps the blocked account rejection", func(t *testing.T) {
		manager, requester, store, _ := newManagerFixture()
		requester.errs["login"] = errors.New("Definer: user has been blocked!")

		err := manager.Login(ctx, "alice", "pw123")
		require.Error(t, err)
		assert.True(t, artily.IsBlockedAccountError(err))
		assert.False(t, manager.IsAuthenticated())
		assert.Empty(t, store.Get(ctx))
		assert.Equal(t, artily.PhaseAnonymous, manager.Phase())
	})

	t.Run("maps the wrong password rejection", func(t *testing.T) {
		manager, requester, _, _ := newManagerFixture()
		requester.errs["login"] = errors.New("Definer: wrong password, please try again!")

		err := manager.Login(ctx, "alice", "pw123")
		require.Error(t, err)
		assert.True(t, artily.IsCredentialMismatchError(err))
	})

	t.Run("leaves no residue behind a malformed token", func(t *testing.T) {
		manager, requester, store, _ := newManagerFixture()
		requester.respond["login"] = map[string]any{
			"login": map[string]any{"accessToken": "not-a-token"},
		}

		err := manager.Login(ctx, "alice", "pw123")
		require.Error(t, err)
		assert.True(t, artily.IsMalformedTokenError(err))
		assert.False(t, manager.IsAuthenticated())
		assert.Empty(t, store.Get(ctx))
		assert.Equal(t, artily.PhaseAnonymous, manager.Phase())
	})

	t.Run("replaces a prior session", func(t *testing.T) {
		manager, requester, _, cell := newManagerFixture()
		requester.respond["login"] = map[string]any{
			"login": map[string]any{"accessToken": makeToken(t, map[string]any{"_id": "m1", "memberNick": "alice"})},
		}
		require.NoError(t, manager.Login(ctx, "alice", "pw123"))

		requester.respond["login"] = map[string]any{
			"login": map[string]any{"accessToken": makeToken(t, map[string]any{"_id": "m2", "memberNick": "bob"})},
		}
		require.NoError(t, manager.Login(ctx, "bob", "pw123"))

		assert.Equal(t, "m2", cell.Current().ID)
	})
}

func TestManager_SignUp(t *testing.T) {
	ctx := context.Background()
	input := artily.SignUpInput{
		Nick:     "alice",
		Password: "secret1",
		Phone:    "2025550123",
		Type:     market.MemberTypeUser,
	}

	t.Run("establishes a session", func(t *testing.T) {
		manager, requester, _, cell := newManagerFixture()
		requester.respond["signup"] = map[string]any{
			"signup": map[string]any{"accessToken": makeToken(t, map[string]any{"_id": "m1", "memberNick": "alice"})},
		}

		require.NoError(t, manager.SignUp(ctx, input))
		assert.True(t, manager.IsAuthenticated())
		assert.Equal(t, "alice", cell.Current().Nick)
	})

	t.Run("maps the taken nick rejection", func(t *testing.T) {
		manager, requester, _, _ := newManagerFixture()
		requester.errs["signup"] = errors.New("Definer: member nick is already being used!")

		err := manager.SignUp(ctx, input)
		require.Error(t, err)
		assert.True(t, artily.IsDuplicateIdentifierError(err))
		assert.False(t, manager.IsAuthenticated())
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()
	manager, requester, store, cell := newManagerFixture()
	requester.respond["login"] = map[string]any{
		"login": map[string]any{"accessToken": makeToken(t, map[string]any{"_id": "m1"})},
	}
	require.NoError(t, manager.Login(ctx, "alice", "pw123"))

	require.NoError(t, manager.Logout(ctx))

	assert.False(t, manager.IsAuthenticated())
	assert.True(t, cell.Current().IsAnonymous())
	assert.Empty(t, store.Get(ctx))
	assert.Equal(t, artily.PhaseAnonymous, manager.Phase())
	assert.Equal(t, 1, requester.resetCount())

	_, ok := store.LastLogout(ctx)
	assert.True(t, ok)

	// Logging out while logged out is fine.
	require.NoError(t, manager.Logout(ctx))
}

func TestManager_RefreshFromMutation(t *testing.T) {
	ctx := context.Background()

	t.Run("no token means nothing to do", func(t *testing.T) {
		manager, requester, _, _ := newManagerFixture()
		requester.respond["login"] = map[string]any{
			"login": map[string]any{"accessToken": makeToken(t, map[string]any{"_id": "m1", "memberNick": "alice"})},
		}
		require.NoError(t, manager.Login(ctx, "alice", "pw123"))

		require.NoError(t, manager.RefreshFromMutation(ctx, market.ProfileResult{
			Member: market.Member{ID: "m1", Nick: "renamed"},
		}))

		// Without a rotated token the response does not touch the session.
		assert.Equal(t, "alice", manager.Session().Current().Nick)
	})

	t.Run("rotated token takes the response profile verbatim", func(t *testing.T) {
		manager, requester, store, cell := newManagerFixture()
		requester.respond["login"] = map[string]any{
			"login": map[string]any{"accessToken": makeToken(t, map[string]any{"_id": "m1", "memberNick": "alice"})},
		}
		require.NoError(t, manager.Login(ctx, "alice", "pw123"))

		rotated := makeToken(t, map[string]any{"_id": "m1", "memberNick": "stale-nick"})
		require.NoError(t, manager.RefreshFromMutation(ctx, market.ProfileResult{
			AccessToken: rotated,
			Member:      market.Member{ID: "m1", Nick: "renamed"},
		}))

		assert.Equal(t, rotated, store.Get(ctx))
		assert.Equal(t, "renamed", cell.Current().Nick)
		assert.Equal(t, artily.DefaultMemberImage, cell.Current().Image)
		assert.Equal(t, 1, requester.resetCount())
	})

	t.Run("malformed rotated token forces logout", func(t *testing.T) {
		manager, requester, store, _ := newManagerFixture()
		requester.respond["login"] = map[string]any{
			"login": map[string]any{"accessToken": makeToken(t, map[string]any{"_id": "m1"})},
		}
		require.NoError(t, manager.Login(ctx, "alice", "pw123"))

		err := manager.RefreshFromMutation(ctx, market.ProfileResult{
			AccessToken: "garbage",
			Member:      market.Member{ID: "m1"},
		})
		require.Error(t, err)
		assert.True(t, artily.IsMalformedTokenError(err))
		assert.False(t, manager.IsAuthenticated())
		assert.Empty(t, store.Get(ctx))
	})
}

func TestManager_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("rebuilds the session from a valid stored token", func(t *testing.T) {
		manager, _, store, cell := newManagerFixture()
		token := makeToken(t, map[string]any{
			"_id":        "m1",
			"memberNick": "alice",
			"exp":        time.Now().Add(time.Hour).Unix(),
		})
		require.NoError(t, store.Set(ctx, token))

		require.NoError(t, manager.Restore(ctx))
		assert.True(t, manager.IsAuthenticated())
		assert.Equal(t, artily.PhaseAuthenticated, manager.Phase())
		assert.Equal(t, "alice", cell.Current().Nick)
	})

	t.Run("empty store is a quiet no-op", func(t *testing.T) {
		manager, _, _, _ := newManagerFixture()
		require.NoError(t, manager.Restore(ctx))
		assert.False(t, manager.IsAuthenticated())
	})

	t.Run("expired token cleans up silently", func(t *testing.T) {
		manager, _, store, _ := newManagerFixture()
		token := makeToken(t, map[string]any{
			"_id": "m1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		require.NoError(t, store.Set(ctx, token))

		require.NoError(t, manager.Restore(ctx))
		assert.False(t, manager.IsAuthenticated())
		assert.Empty(t, store.Get(ctx))
		assert.Equal(t, artily.PhaseAnonymous, manager.Phase())

		// Dropping a dead token is cleanup, not a logout: no marker stamp.
		_, ok := store.LastLogout(ctx)
		assert.False(t, ok)
	})
}
