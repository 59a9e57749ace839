package core

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core/g-error"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/log"
)

// outcome 流水线上每一步的结果，terminal为true时后面的步骤不再执行
type outcome struct {
	state    GameState
	events   []GameEvent
	terminal bool
}

func next(s GameState, events ...GameEvent) outcome {
	return outcome{state: s, events: events}
}

func stop(s GameState, events ...GameEvent) outcome {
	return outcome{state: s, events: events, terminal: true}
}

type transition func(e *Engine, s GameState) outcome

// 下注/弃牌之后依次执行：摊牌 -> 轮次结束检查
var afterAction = []transition{resolveShowdown, handlePostRound}

/*

Engine 是无状态的规则执行者：所有方法都接收一个GameState并返回新的GameState，
从不修改传入值。同一局游戏的ExecuteAction需要调用方自己串行化。

*/
type Engine struct {
	cfg      Config
	shuffler Shuffler
}

func NewEngine(cfg Config, shuffler Shuffler) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if shuffler == nil {
		shuffler = NewCryptoShuffler()
	}
	return &Engine{cfg: cfg, shuffler: shuffler}, nil
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) newPlayer(info PlayerInfo) Player {
	p := Player{ID: info.ID, Name: info.Name, Chips: e.cfg.StartingChips}
	if e.cfg.AbilityPhase {
		p.PeekCount = e.cfg.PeekCount
		p.SwapCount = e.cfg.SwapCount
	}
	return p
}

// CreateGame seats p1 and leaves the second seat empty
func (e *Engine) CreateGame(id string, p1 PlayerInfo) GameState {
	return GameState{
		ID:                   id,
		Players:              [2]Player{e.newPlayer(p1), {}},
		Phase:                PhaseWaiting,
		MaxRounds:            e.cfg.MaxRounds,
		LastRaisePlayerIndex: noPlayer,
	}
}

// JoinGame fills the second seat. The caller makes sure it's called once per game.
func (e *Engine) JoinGame(s GameState, p2 PlayerInfo) GameState {
	ns := s.Clone()
	ns.Players[1] = e.newPlayer(p2)
	return ns
}

// ExecuteAction is the only way to advance a game. On failure NewState is the untouched input.
// An empty actingPlayerID means whoever holds the turn.
func (e *Engine) ExecuteAction(s GameState, action Action, actingPlayerID string) ActionResult {
	ns, events, err := e.apply(s, action, actingPlayerID)
	if err != nil {
		log.L.Debug("action rejected", zap.String("game", s.ID), zap.String("action", string(action.Type)),
			zap.String("player", actingPlayerID), zap.String("phase", string(s.Phase)), zap.Error(err))
		return ActionResult{Success: false, NewState: s, Message: err.Error(), Err: err}
	}

	msg := string(action.Type)
	if len(events) > 0 {
		msg = events[0].Message
	}
	if ns.Phase != s.Phase {
		log.L.Debug("phase changed", zap.String("game", ns.ID), zap.Int("round", ns.RoundNumber),
			zap.String("from", string(s.Phase)), zap.String("to", string(ns.Phase)))
	}
	return ActionResult{Success: true, NewState: ns, Message: msg, Events: events}
}

func (e *Engine) apply(s GameState, action Action, actingPlayerID string) (GameState, []GameEvent, error) {
	if err := action.Validate(); err != nil {
		return s, nil, err
	}
	if s.Phase == PhaseGameOver {
		return s, nil, g_error.ErrGameOver
	}

	idx := s.CurrentPlayerIndex
	if actingPlayerID != "" {
		if idx = s.PlayerIndex(actingPlayerID); idx == noPlayer {
			return s, nil, errors.Wrapf(g_error.ErrPlayerNotFound, "player %q", actingPlayerID)
		}
	}
	if action.Type != ActionStartRound && idx != s.CurrentPlayerIndex {
		return s, nil, errors.Wrapf(g_error.ErrNotYourTurn, "waiting for %v", s.CurrentPlayer().ID)
	}

	var (
		ns     GameState
		events []GameEvent
		err    error
	)
	switch action.Type {
	case ActionStartRound:
		return e.startRound(s)
	case ActionPeek, ActionSwap, ActionSkipAbility:
		if err := e.checkPhase(s, PhaseAbility); err != nil {
			return s, nil, err
		}
		switch action.Type {
		case ActionPeek:
			return peek(s, idx)
		case ActionSwap:
			return swap(s, idx)
		default:
			return skipAbility(s, idx)
		}
	case ActionRaise:
		if err := e.checkPhase(s, PhaseBetting); err != nil {
			return s, nil, err
		}
		ns, events, err = raise(s, s.Players[idx].ID, action.Amount)
	case ActionCall:
		if err := e.checkPhase(s, PhaseBetting); err != nil {
			return s, nil, err
		}
		ns, events, err = call(s, s.Players[idx].ID)
	case ActionFold:
		if err := e.checkPhase(s, PhaseBetting); err != nil {
			return s, nil, err
		}
		ns, events, err = fold(e.cfg, s, s.Players[idx].ID)
	default:
		return s, nil, errors.Wrapf(g_error.ErrUnknownAction, "%q", string(action.Type))
	}
	if err != nil {
		return s, nil, err
	}
	ns, more := e.runPipeline(ns, afterAction)
	return ns, append(events, more...), nil
}

/*

Resign 玩家中途离开，游戏直接结束，对手获胜。
底池里的筹码归对手，本轮不计入RoundHistory。
不检查轮次和阶段，任何时候都可以认输。

*/
func (e *Engine) Resign(s GameState, playerID string) ActionResult {
	if s.Phase == PhaseGameOver {
		return ActionResult{Success: false, NewState: s, Message: g_error.ErrGameOver.Error(), Err: g_error.ErrGameOver}
	}
	idx, err := lookupSeat(s, playerID)
	if err == nil && !s.BothSeated() {
		err = g_error.ErrSeatNotFilled
	}
	if err != nil {
		log.L.Debug("resign rejected", zap.String("game", s.ID), zap.String("player", playerID), zap.Error(err))
		return ActionResult{Success: false, NewState: s, Message: err.Error(), Err: err}
	}

	ns := s.Clone()
	leaver := ns.Players[idx]
	winner := &ns.Players[other(idx)]
	events := []GameEvent{newEvent(ns, EventResign, leaver.ID, ns.Pot, "%v left the game", leaver.Name)}
	winner.Chips += ns.Pot
	ns.Pot = 0
	ns.Phase = PhaseGameOver
	ns.Winner, ns.IsDraw = winner.ID, false
	events = append(events, newEvent(ns, EventGameOver, winner.ID, winner.Chips,
		"%v wins the game, %v left", winner.Name, leaver.Name))
	log.L.Debug("player resigned", zap.String("game", ns.ID), zap.Int("round", ns.RoundNumber), zap.String("player", leaver.ID))
	return ActionResult{Success: true, NewState: ns, Message: events[0].Message, Events: events}
}

func (e *Engine) checkPhase(s GameState, want Phase) error {
	if want == PhaseAbility && !e.cfg.AbilityPhase {
		return g_error.ErrAbilityDisabled
	}
	if s.Phase != want {
		return errors.Wrapf(g_error.ErrWrongPhase, "phase is %v, need %v", s.Phase, want)
	}
	return nil
}

func (e *Engine) runPipeline(s GameState, steps []transition) (GameState, []GameEvent) {
	var events []GameEvent
	for _, step := range steps {
		o := step(e, s)
		s = o.state
		events = append(events, o.events...)
		if o.terminal {
			break
		}
	}
	return s, events
}

/*

开始新一轮：
1. 已经打满轮数或有人没筹码了，直接结束游戏
2. 上一轮的牌进弃牌堆，牌堆不足两张时重新洗一副新牌
3. 先手座位0号发第一张，扣底注
4. 有技能阶段进技能阶段，否则直接下注

*/
func (e *Engine) startRound(s GameState) (GameState, []GameEvent, error) {
	if s.Phase != PhaseWaiting && s.Phase != PhaseRoundEnd {
		return s, nil, errors.Wrapf(g_error.ErrRoundNotStartable, "phase is %v", s.Phase)
	}
	if !s.BothSeated() {
		return s, nil, g_error.ErrSeatNotFilled
	}
	if s.RoundNumber+1 > s.MaxRounds || s.Players[0].Chips <= 0 || s.Players[1].Chips <= 0 {
		o := endGame(s)
		return o.state, o.events, nil
	}

	ns := s.Clone()
	ns.RoundNumber++
	if ns.RoundNumber == 1 {
		ns.FirstPlayerIndex = 0
	} else {
		ns.FirstPlayerIndex = other(ns.FirstPlayerIndex)
	}
	first := ns.Players[ns.FirstPlayerIndex]
	events := []GameEvent{newEvent(ns, EventRoundStarted, first.ID, 0,
		"round %d of %d, %v acts first", ns.RoundNumber, ns.MaxRounds, first.Name)}

	for i := range ns.Players {
		if ns.Players[i].Card != NoCard {
			ns.DiscardPile = append(ns.DiscardPile, ns.Players[i].Card)
			ns.Players[i].Card = NoCard
		}
	}
	if len(ns.Deck) < 2 {
		ns.Deck = e.shuffler.Shuffle(e.cfg.FullDeck())
		ns.DiscardPile = nil
		events = append(events, newEvent(ns, EventDeckShuffled, "", len(ns.Deck), "a fresh deck of %d cards is shuffled", len(ns.Deck)))
	}
	drawn, rest, _ := drawCards(ns.Deck, 2)
	ns.Deck = rest

	for i := range ns.Players {
		p := &ns.Players[i]
		p.Card = drawn[i]
		p.HasFolded = false
		p.HasPeeked = false
		p.HasUsedAbility = false

		ante := e.cfg.Ante
		if ante > p.Chips {
			ante = p.Chips
		}
		p.Chips -= ante
		p.CurrentBet = ante
		ns.Pot += ante
		events = append(events, newEvent(ns, EventAnte, p.ID, ante, "%v antes %d", p.Name, ante))
	}

	ns.CurrentPlayerIndex = ns.FirstPlayerIndex
	ns.LastRaisePlayerIndex = noPlayer
	if e.cfg.AbilityPhase {
		ns.Phase = PhaseAbility
	} else {
		var opened []GameEvent
		ns, opened = openBetting(ns)
		events = append(events, opened...)
	}
	log.L.Debug("round started", zap.String("game", ns.ID), zap.Int("round", ns.RoundNumber),
		zap.Int("first", ns.FirstPlayerIndex), zap.Int("deck", len(ns.Deck)))
	return ns, events, nil
}

// handlePostRound 一轮结束后检查是否要结束游戏，否则把开下一轮的权利交给下一轮的先手
func handlePostRound(_ *Engine, s GameState) outcome {
	if s.Phase != PhaseRoundEnd {
		return next(s)
	}
	ns := s.Clone()
	ended := newEvent(ns, EventRoundEnded, "", 0, "round %d is over", ns.RoundNumber)
	if ns.Players[0].Chips <= 0 || ns.Players[1].Chips <= 0 || ns.RoundNumber >= ns.MaxRounds {
		o := endGame(ns)
		return stop(o.state, append([]GameEvent{ended}, o.events...)...)
	}
	ns.CurrentPlayerIndex = other(ns.FirstPlayerIndex)
	ns.LastRaisePlayerIndex = noPlayer
	return next(ns, ended)
}

// endGame 筹码多的赢，一样多平局
func endGame(s GameState) outcome {
	ns := s.Clone()
	ns.Phase = PhaseGameOver
	p0, p1 := ns.Players[0], ns.Players[1]
	var ev GameEvent
	switch {
	case p0.Chips > p1.Chips:
		ns.Winner, ns.IsDraw = p0.ID, false
		ev = newEvent(ns, EventGameOver, p0.ID, p0.Chips, "%v wins the game with %d chips", p0.Name, p0.Chips)
	case p1.Chips > p0.Chips:
		ns.Winner, ns.IsDraw = p1.ID, false
		ev = newEvent(ns, EventGameOver, p1.ID, p1.Chips, "%v wins the game with %d chips", p1.Name, p1.Chips)
	default:
		ns.Winner, ns.IsDraw = "", true
		ev = newEvent(ns, EventGameOver, "", p0.Chips, "the game is a draw at %d chips each", p0.Chips)
	}
	log.L.Debug("game over", zap.String("game", ns.ID), zap.String("winner", ns.Winner), zap.Bool("draw", ns.IsDraw))
	return stop(ns, ev)
}
