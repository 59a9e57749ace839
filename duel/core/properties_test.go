package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomAction(rng *rand.Rand, valid []ValidAction) Action {
	va := valid[rng.Intn(len(valid))]
	a := Action{Type: va.Type}
	if va.Type == ActionRaise {
		a.Amount = va.MinAmount + rng.Intn(va.MaxAmount-va.MinAmount+1)
	}
	return a
}

func checkInvariants(t *testing.T, e *Engine, s GameState, total int) {
	require.Equal(t, total, s.TotalChips(), "chips created or destroyed")
	for _, p := range s.Players {
		require.True(t, p.Chips >= 0, "negative chips for %v", p.ID)
	}

	// 只有当前玩家有可选操作
	cur := s.CurrentPlayer().ID
	for _, p := range s.Players {
		if p.ID != cur {
			require.Empty(t, e.GetValidActions(s, p.ID))
		}
	}

	switch s.Phase {
	case PhaseRoundEnd:
		require.Len(t, s.RoundHistory, s.RoundNumber)
	case PhaseAbility, PhaseBetting:
		require.Len(t, s.RoundHistory, s.RoundNumber-1)
	}
	for i, r := range s.RoundHistory {
		require.Equal(t, i+1, r.RoundNumber)
	}

	if s.Phase == PhaseGameOver {
		require.True(t, (s.Winner == "") == s.IsDraw)
	}

	for _, p := range s.Players {
		v, err := e.GetPlayerView(s, p.ID)
		require.NoError(t, err)
		if s.RoundNumber > 0 {
			require.NotNil(t, v.OpponentCard)
		}
		if (s.Phase == PhaseAbility || s.Phase == PhaseBetting) && !p.HasPeeked {
			require.Nil(t, v.MyCard)
		}
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	for seed := int64(1); seed <= 60; seed++ {
		cfg := classicCfg()
		if seed%2 == 0 {
			cfg = abilityCfg()
		}
		e, err := NewEngine(cfg, NewSeededShuffler(seed))
		require.NoError(t, err)
		rng := rand.New(rand.NewSource(seed))

		s := newFakeGame(e)
		total := s.TotalChips()
		resolved := 0
		for step := 0; step < 1000 && s.Phase != PhaseGameOver; step++ {
			valid := e.GetValidActions(s, "")
			require.NotEmpty(t, valid, "seed %d stuck in %v", seed, s.Phase)
			a := randomAction(rng, valid)

			before := s.Clone()
			r := e.ExecuteAction(s, a, "")
			require.True(t, r.Success, "seed %d: offered %v but got %v", seed, a, r.Message)
			assert.Equal(t, before, s)
			for _, ev := range r.Events {
				if ev.Type == EventRoundEnded {
					resolved++
				}
			}
			s = r.NewState
			checkInvariants(t, e, s, total)
		}
		require.Equal(t, PhaseGameOver, s.Phase, "seed %d", seed)
		assert.Len(t, s.RoundHistory, resolved)
	}
}
