package core

import (
	"github.com/pkg/errors"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core/g-error"
)

// callAmountOf 跟注需要补的筹码，不会小于0
func callAmountOf(s GameState, idx int) int {
	diff := s.Players[other(idx)].CurrentBet - s.Players[idx].CurrentBet
	if diff < 0 {
		return 0
	}
	return diff
}

func lookupSeat(s GameState, playerID string) (int, error) {
	idx := s.PlayerIndex(playerID)
	if idx == noPlayer {
		return noPlayer, errors.Wrapf(g_error.ErrPlayerNotFound, "player %q", playerID)
	}
	return idx, nil
}

/*

加注：amount是在跟注之外额外加的部分，需要 callAmount + amount <= chips。
成功后轮到对手，并记录最后加注的人。

*/
func raise(s GameState, playerID string, amount int) (GameState, []GameEvent, error) {
	idx, err := lookupSeat(s, playerID)
	if err != nil {
		return s, nil, err
	}
	if amount <= 0 {
		return s, nil, errors.Wrapf(g_error.ErrInvalidRaiseAmount, "got %d", amount)
	}
	callAmount := callAmountOf(s, idx)
	// 不能先相加再比较，amount来自客户端，可能溢出
	if amount > s.Players[idx].Chips-callAmount {
		return s, nil, errors.Wrapf(g_error.ErrInsufficientChips, "call %d + raise %d, have %d", callAmount, amount, s.Players[idx].Chips)
	}
	owed := callAmount + amount

	ns := s.Clone()
	me := &ns.Players[idx]
	me.Chips -= owed
	me.CurrentBet += owed
	ns.Pot += owed
	ns.LastRaisePlayerIndex = idx
	ns.CurrentPlayerIndex = other(idx)
	return ns, []GameEvent{newEvent(ns, EventRaise, me.ID, amount, "%v raised %d", me.Name, amount)}, nil
}

// call 补齐差额后直接摊牌，筹码不够就全下
func call(s GameState, playerID string) (GameState, []GameEvent, error) {
	idx, err := lookupSeat(s, playerID)
	if err != nil {
		return s, nil, err
	}

	ns := s.Clone()
	me := &ns.Players[idx]
	callAmount := callAmountOf(ns, idx)
	var ev GameEvent
	if callAmount <= 0 {
		ev = newEvent(ns, EventCheck, me.ID, 0, "%v checked", me.Name)
	} else {
		paid := callAmount
		if paid > me.Chips {
			paid = me.Chips
		}
		me.Chips -= paid
		me.CurrentBet += paid
		ns.Pot += paid
		ev = newEvent(ns, EventCall, me.ID, paid, "%v called %d", me.Name, paid)
	}
	ns.Phase = PhaseShowdown
	return ns, []GameEvent{ev}, nil
}

/*

弃牌：对手直接拿走底池。
若弃牌者手里是最大的牌且玩法开了弃牌惩罚，再从弃牌者转penalty给对手，penalty不超过弃牌者剩余筹码。

*/
func fold(cfg Config, s GameState, playerID string) (GameState, []GameEvent, error) {
	idx, err := lookupSeat(s, playerID)
	if err != nil {
		return s, nil, err
	}

	ns := s.Clone()
	folder := &ns.Players[idx]
	winner := &ns.Players[other(idx)]
	folder.HasFolded = true

	events := []GameEvent{newEvent(ns, EventFold, folder.ID, 0, "%v folded", folder.Name)}

	pot := ns.Pot
	winner.Chips += pot
	ns.Pot = 0

	penalty := 0
	if cfg.FoldPenalty > 0 && folder.Card == cfg.MaxRank {
		penalty = cfg.FoldPenalty
		if penalty > folder.Chips {
			penalty = folder.Chips
		}
		folder.Chips -= penalty
		winner.Chips += penalty
		events = append(events, newEvent(ns, EventFoldPenalty, folder.ID, penalty,
			"%v folded the top card %v and pays a penalty of %d", folder.Name, folder.Card, penalty))
	}
	events = append(events, newEvent(ns, EventWin, winner.ID, pot, "%v wins the pot of %d", winner.Name, pot))

	ns.RoundHistory = append(ns.RoundHistory, RoundResult{
		RoundNumber:    ns.RoundNumber,
		Cards:          roundCards(ns),
		Winner:         winner.ID,
		PotWon:         pot,
		FoldedPlayerID: folder.ID,
		ChipChanges: map[string]int{
			winner.ID: pot - winner.CurrentBet + penalty,
			folder.ID: -folder.CurrentBet - penalty,
		},
		Penalty:       penalty,
		FirstPlayerID: ns.Players[ns.FirstPlayerIndex].ID,
	})
	ns.Phase = PhaseRoundEnd
	return ns, events, nil
}

func roundCards(s GameState) map[string]Card {
	return map[string]Card{
		s.Players[0].ID: s.Players[0].Card,
		s.Players[1].ID: s.Players[1].Card,
	}
}
