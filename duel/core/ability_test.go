package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core/g-error"
)

func TestAbilityPeekThenSwap(t *testing.T) {
	e := newFakeEngine(t, abilityCfg(), 3, 7, 9)
	r := mustAct(t, e, newFakeGame(e), StartRound(), "a")
	s := r.NewState
	assert.Equal(t, []EventType{EventRoundStarted, EventDeckShuffled, EventAnte, EventAnte}, eventTypes(r.Events))
	assert.Equal(t, PhaseAbility, s.Phase)
	assert.Equal(t, 0, s.CurrentPlayerIndex)
	assert.Equal(t, []ValidAction{{Type: ActionPeek}, {Type: ActionSwap}, {Type: ActionSkipAbility}}, e.GetValidActions(s, "a"))

	r = mustAct(t, e, s, Peek(), "a")
	s = r.NewState
	assert.Equal(t, []EventType{EventPeek}, eventTypes(r.Events))
	assert.Equal(t, 1, s.Players[0].PeekCount)
	assert.True(t, s.Players[0].HasPeeked)
	assert.Equal(t, PhaseAbility, s.Phase)
	assert.Equal(t, 1, s.CurrentPlayerIndex)

	r = mustAct(t, e, s, Swap(), "b")
	s = r.NewState
	assert.Equal(t, []EventType{EventSwap, EventBettingStarted}, eventTypes(r.Events))
	assert.Equal(t, Card(9), s.Players[1].Card)
	assert.Equal(t, 0, s.Players[1].SwapCount)
	assert.Equal(t, []Card{7}, s.DiscardPile)
	assert.Len(t, s.Deck, 17)
	assert.Equal(t, PhaseBetting, s.Phase)
	assert.Equal(t, 0, s.CurrentPlayerIndex)
	assert.Equal(t, -1, s.LastRaisePlayerIndex)

	// 换牌不能在下注阶段
	res := e.ExecuteAction(s, Swap(), "a")
	assert.Equal(t, g_error.ErrWrongPhase, errorsCause(res.Err))
}

func TestAbilityBothSkip(t *testing.T) {
	e := newFakeEngine(t, abilityCfg(), 3, 7)
	s := mustAct(t, e, newFakeGame(e), StartRound(), "a").NewState

	res := e.ExecuteAction(s, Raise(1), "a")
	assert.Equal(t, g_error.ErrWrongPhase, errorsCause(res.Err))

	s = mustAct(t, e, s, SkipAbility(), "a").NewState
	s = mustAct(t, e, s, SkipAbility(), "b").NewState
	assert.Equal(t, PhaseBetting, s.Phase)
	assert.Equal(t, 2, s.Players[0].PeekCount)
	assert.Equal(t, 1, s.Players[1].SwapCount)

	// 第二轮由B先用技能
	s = mustAct(t, e, s, Fold(), "a").NewState
	s = mustAct(t, e, s, StartRound(), "b").NewState
	assert.Equal(t, PhaseAbility, s.Phase)
	assert.Equal(t, 1, s.CurrentPlayerIndex)
	assert.False(t, s.Players[0].HasUsedAbility)
}

func TestAbilityResourceErrors(t *testing.T) {
	cfg := abilityCfg()
	cfg.PeekCount = 0
	e := newFakeEngine(t, cfg, 3, 7)
	s := mustAct(t, e, newFakeGame(e), StartRound(), "a").NewState
	assert.Equal(t, []ValidAction{{Type: ActionSwap}, {Type: ActionSkipAbility}}, e.GetValidActions(s, "a"))
	res := e.ExecuteAction(s, Peek(), "a")
	assert.Equal(t, g_error.ErrNoPeekLeft, errorsCause(res.Err))
	assert.Equal(t, g_error.KindResource, g_error.KindOf(res.Err))

	s.Players[0].SwapCount = 0
	res = e.ExecuteAction(s, Swap(), "a")
	assert.Equal(t, g_error.ErrNoSwapLeft, errorsCause(res.Err))

	s.Players[0].SwapCount = 1
	s.Deck = nil
	assert.Equal(t, []ValidAction{{Type: ActionSkipAbility}}, e.GetValidActions(s, "a"))
	res = e.ExecuteAction(s, Swap(), "a")
	assert.Equal(t, g_error.ErrDeckEmpty, errorsCause(res.Err))
}

func TestAbilityOncePerRound(t *testing.T) {
	e := newFakeEngine(t, abilityCfg(), 3, 7)
	s := mustAct(t, e, newFakeGame(e), StartRound(), "a").NewState
	peeked, _, err := peek(s, 0)
	require.NoError(t, err)

	_, _, err = skipAbility(peeked, 0)
	assert.Equal(t, g_error.ErrAbilityUsed, errorsCause(err))
	_, _, err = swap(peeked, 0)
	assert.Equal(t, g_error.ErrAbilityUsed, errorsCause(err))

	// 正常流程里偷看过就一定用过技能，这里手动拆开
	again := peeked.Clone()
	again.Players[0].HasUsedAbility = false
	_, _, err = peek(again, 0)
	assert.Equal(t, g_error.ErrAlreadyPeeked, errorsCause(err))

	// 换牌之后要重新偷看
	swapped, _, err := swap(again, 0)
	require.NoError(t, err)
	assert.False(t, swapped.Players[0].HasPeeked)
	assert.True(t, again.Players[0].HasPeeked)
}
