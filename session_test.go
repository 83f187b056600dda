package artily

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balumaqsud/artily-client/market"
)

func TestSessionCell_CurrentStartsAnonymous(t *testing.T) {
	cell := NewSessionCell()
	assert.True(t, cell.Current().IsAnonymous())
}

func TestSessionCell_SetReplacesWholesale(t *testing.T) {
	cell := NewSessionCell()

	cell.set(market.Member{ID: "m1", Nick: "alice", Image: "/img/a.png"})
	cell.set(market.Member{ID: "m1", Nick: "alice"})

	// The second write carried no image, so no image survives.
	assert.Empty(t, cell.Current().Image)
}

func TestSessionCell_Subscribe(t *testing.T) {
	cell := NewSessionCell()

	var seen []string
	unsubscribe := cell.Subscribe(func(m market.Member) {
		seen = append(seen, m.ID)
	})

	// Subscribers are primed with the standing value.
	require.Len(t, seen, 1)
	assert.Empty(t, seen[0])

	cell.set(market.Member{ID: "m1"})
	require.Len(t, seen, 2)
	assert.Equal(t, "m1", seen[1])

	unsubscribe()
	cell.set(market.Member{ID: "m2"})
	assert.Len(t, seen, 2)
}

func TestSessionCell_SubscribeNil(t *testing.T) {
	cell := NewSessionCell()
	unsubscribe := cell.Subscribe(nil)
	require.NotNil(t, unsubscribe)
	unsubscribe()
}

func TestSessionCell_MultipleSubscribers(t *testing.T) {
	cell := NewSessionCell()

	var a, b int
	cell.Subscribe(func(market.Member) { a++ })
	stop := cell.Subscribe(func(market.Member) { b++ })

	cell.set(market.Member{ID: "m1"})
	assert.Equal(t, 2, a)
	assert.Equal(t, 2, b)

	stop()
	cell.set(market.Member{ID: "m2"})
	assert.Equal(t, 3, a)
	assert.Equal(t, 2, b)
}

func TestPhaseMachine_HappyPath(t *testing.T) {
	m := newPhaseMachine()
	assert.Equal(t, PhaseAnonymous, m.Current())

	require.NoError(t, m.Transition(PhaseAuthenticating))
	require.NoError(t, m.Transition(PhaseAuthenticated))
	assert.Equal(t, PhaseAuthenticated, m.Current())

	require.NoError(t, m.Transition(PhaseAnonymous))
	assert.Equal(t, PhaseAnonymous, m.Current())
}

func TestPhaseMachine_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    Phase
		to      Phase
		allowed bool
	}{
		{"anonymous to authenticating", PhaseAnonymous, PhaseAuthenticating, true},
		{"anonymous to authenticated skips the attempt", PhaseAnonymous, PhaseAuthenticated, false},
		{"authenticating to authenticated", PhaseAuthenticating, PhaseAuthenticated, true},
		{"authenticating back to anonymous", PhaseAuthenticating, PhaseAnonymous, true},
		{"authenticated to anonymous", PhaseAuthenticated, PhaseAnonymous, true},
		{"authenticated to authenticating without logout", PhaseAuthenticated, PhaseAuthenticating, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newPhaseMachine()
			m.force(tt.from)

			err := m.Transition(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, m.Current())
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.from, m.Current())
			}
		})
	}
}

func TestPhaseMachine_SamePhaseIsNoop(t *testing.T) {
	m := newPhaseMachine()
	require.NoError(t, m.Transition(PhaseAnonymous))
	assert.Equal(t, PhaseAnonymous, m.Current())
}

func TestPhaseMachine_ResetFromAnywhere(t *testing.T) {
	for _, from := range []Phase{PhaseAnonymous, PhaseAuthenticating, PhaseAuthenticated} {
		m := newPhaseMachine()
		m.force(from)
		m.Reset()
		assert.Equal(t, PhaseAnonymous, m.Current())
	}
}
