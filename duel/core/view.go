package core

import (
	"github.com/pkg/errors"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core/g-error"
)

// PublicPlayer 双方都能看到的玩家信息
type PublicPlayer struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Chips          int    `json:"chips"`
	CurrentBet     int    `json:"current_bet"`
	HasFolded      bool   `json:"has_folded"`
	HasUsedAbility bool   `json:"has_used_ability"`
}

func publicOf(p Player) PublicPlayer {
	return PublicPlayer{
		ID: p.ID, Name: p.Name, Chips: p.Chips, CurrentBet: p.CurrentBet,
		HasFolded: p.HasFolded, HasUsedAbility: p.HasUsedAbility,
	}
}

/*

PlayerView 是某个玩家能看到的局面。
自己的牌：本轮进行中只有偷看过才能看到，轮次结束后公开。
对手的牌：发牌后永远可见。
对手的偷看/换牌次数以及是否偷看过都不会给出。

*/
type PlayerView struct {
	GameID        string `json:"game_id"`
	Phase         Phase  `json:"phase"`
	RoundNumber   int    `json:"round_number"`
	MaxRounds     int    `json:"max_rounds"`
	Pot           int    `json:"pot"`
	DeckRemaining int    `json:"deck_remaining"`

	Me       PublicPlayer `json:"me"`
	Opponent PublicPlayer `json:"opponent"`
	// nil表示看不到
	MyCard       *Card `json:"my_card"`
	OpponentCard *Card `json:"opponent_card"`

	MyPeekCount int  `json:"my_peek_count"`
	MySwapCount int  `json:"my_swap_count"`
	MyHasPeeked bool `json:"my_has_peeked"`

	AbilityPhase  bool          `json:"ability_phase"`
	FoldPenalty   int           `json:"fold_penalty"`
	MaxRank       Card          `json:"max_rank"`
	FirstPlayerID string        `json:"first_player_id"`
	IsMyTurn      bool          `json:"is_my_turn"`
	CallAmount    int           `json:"call_amount"`
	ValidActions  []ValidAction `json:"valid_actions"`

	RoundHistory []RoundResult `json:"round_history"`
	Winner       string        `json:"winner"`
	IsDraw       bool          `json:"is_draw"`
}

func cardRef(c Card) *Card {
	if c == NoCard {
		return nil
	}
	return &c
}

func ownCardVisible(s GameState, me Player) bool {
	switch s.Phase {
	case PhaseRoundEnd, PhaseGameOver:
		return true
	}
	return me.HasPeeked
}

func (e *Engine) GetPlayerView(s GameState, playerID string) (PlayerView, error) {
	idx := s.PlayerIndex(playerID)
	if idx == noPlayer {
		return PlayerView{}, errors.Wrapf(g_error.ErrPlayerNotFound, "player %q", playerID)
	}
	me, opp := s.Players[idx], s.Players[other(idx)]

	v := PlayerView{
		GameID:        s.ID,
		Phase:         s.Phase,
		RoundNumber:   s.RoundNumber,
		MaxRounds:     s.MaxRounds,
		Pot:           s.Pot,
		DeckRemaining: len(s.Deck),
		Me:            publicOf(me),
		Opponent:      publicOf(opp),
		OpponentCard:  cardRef(opp.Card),
		MyPeekCount:   me.PeekCount,
		MySwapCount:   me.SwapCount,
		MyHasPeeked:   me.HasPeeked,
		AbilityPhase:  e.cfg.AbilityPhase,
		FoldPenalty:   e.cfg.FoldPenalty,
		MaxRank:       e.cfg.MaxRank,
		IsMyTurn:      s.Phase != PhaseGameOver && s.CurrentPlayerIndex == idx,
		ValidActions:  e.GetValidActions(s, playerID),
		Winner:        s.Winner,
		IsDraw:        s.IsDraw,
	}
	if s.RoundNumber > 0 {
		v.FirstPlayerID = s.Players[s.FirstPlayerIndex].ID
	}
	if s.Phase == PhaseBetting {
		v.CallAmount = callAmountOf(s, idx)
	}
	if ownCardVisible(s, me) {
		v.MyCard = cardRef(me.Card)
	}
	v.RoundHistory = make([]RoundResult, len(s.RoundHistory))
	for i, r := range s.RoundHistory {
		v.RoundHistory[i] = r.clone()
	}
	return v, nil
}
