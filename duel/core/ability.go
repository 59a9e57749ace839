package core

import (
	"github.com/pkg/errors"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core/g-error"
)

// 技能阶段：每人每轮用一次技能(偷看/换牌/跳过)，两人都用完后进入下注

func checkAbilityUsable(s GameState, idx int) error {
	if s.Players[idx].HasUsedAbility {
		return errors.Wrapf(g_error.ErrAbilityUsed, "player %v", s.Players[idx].ID)
	}
	return nil
}

func peek(s GameState, idx int) (GameState, []GameEvent, error) {
	p := s.Players[idx]
	if err := checkAbilityUsable(s, idx); err != nil {
		return s, nil, err
	}
	// peek同时置HasUsedAbility，按规则打出来的状态走不到这里，只有外部拼出来的状态会
	if p.HasPeeked {
		return s, nil, errors.Wrapf(g_error.ErrAlreadyPeeked, "player %v", p.ID)
	}
	if p.PeekCount <= 0 {
		return s, nil, errors.Wrapf(g_error.ErrNoPeekLeft, "player %v", p.ID)
	}

	ns := s.Clone()
	me := &ns.Players[idx]
	me.PeekCount--
	me.HasPeeked = true
	me.HasUsedAbility = true
	// 不把牌面放进事件里，事件会广播给对手
	events := []GameEvent{newEvent(ns, EventPeek, me.ID, 0, "%v peeked at their card", me.Name)}
	ns, handOff := passAbilityTurn(ns, idx)
	return ns, append(events, handOff...), nil
}

func swap(s GameState, idx int) (GameState, []GameEvent, error) {
	p := s.Players[idx]
	if err := checkAbilityUsable(s, idx); err != nil {
		return s, nil, err
	}
	if p.SwapCount <= 0 {
		return s, nil, errors.Wrapf(g_error.ErrNoSwapLeft, "player %v", p.ID)
	}
	drawn, rest, ok := drawCards(s.Deck, 1)
	if !ok {
		return s, nil, g_error.ErrDeckEmpty
	}

	ns := s.Clone()
	me := &ns.Players[idx]
	ns.DiscardPile = append(ns.DiscardPile, me.Card)
	ns.Deck = rest
	me.Card = drawn[0]
	me.SwapCount--
	// 换来的新牌还没看过
	me.HasPeeked = false
	me.HasUsedAbility = true
	events := []GameEvent{newEvent(ns, EventSwap, me.ID, 0, "%v swapped their card", me.Name)}
	ns, handOff := passAbilityTurn(ns, idx)
	return ns, append(events, handOff...), nil
}

func skipAbility(s GameState, idx int) (GameState, []GameEvent, error) {
	if err := checkAbilityUsable(s, idx); err != nil {
		return s, nil, err
	}
	ns := s.Clone()
	me := &ns.Players[idx]
	me.HasUsedAbility = true
	events := []GameEvent{newEvent(ns, EventSkipAbility, me.ID, 0, "%v skipped their ability", me.Name)}
	ns, handOff := passAbilityTurn(ns, idx)
	return ns, append(events, handOff...), nil
}

// passAbilityTurn 对手没用过技能就轮到对手，否则开始下注。ns必须已经是clone过的
func passAbilityTurn(ns GameState, idx int) (GameState, []GameEvent) {
	opp := other(idx)
	if !ns.Players[opp].HasUsedAbility {
		ns.CurrentPlayerIndex = opp
		return ns, nil
	}
	return openBetting(ns)
}

func openBetting(ns GameState) (GameState, []GameEvent) {
	ns.Phase = PhaseBetting
	ns.CurrentPlayerIndex = ns.FirstPlayerIndex
	ns.LastRaisePlayerIndex = noPlayer
	first := ns.Players[ns.FirstPlayerIndex]
	return ns, []GameEvent{newEvent(ns, EventBettingStarted, first.ID, 0, "betting opens, %v acts first", first.Name)}
}
