package duel

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/abstracts"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/npc"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/log"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/util"
)

var (
	ErrTableClosed   = errors.New("table closed")
	ErrTableFull     = errors.New("table is full")
	ErrAlreadySeated = errors.New("already seated at this table")
	ErrNotSeated     = errors.New("not seated at this table")
)

var _ abstracts.Table = (*Table)(nil)

// npc连续操作的上限，防止规则出错时死循环
const maxBotSteps = 64

type TableOption struct {
	Variant   string
	Engine    *core.Engine
	MsgSender abstracts.MsgSender
	Recorder  abstracts.Recorder
	Metrics   abstracts.Metrics
	// 游戏结束后在table的协程里调用
	OnFinished func(t *Table)
}

func NewTable(id string, creator abstracts.User, opt TableOption) *Table {
	if opt.Recorder == nil {
		opt.Recorder = abstracts.NopRecorder{}
	}
	if opt.Metrics == nil {
		opt.Metrics = abstracts.NopMetrics{}
	}
	return &Table{
		id: id, opt: opt,
		state:      opt.Engine.CreateGame(id, core.PlayerInfo{ID: creator.ID(), Name: creator.Name()}),
		bots:       map[string]npc.Brain{},
		joinChan:   make(chan joinMsg),
		actionChan: make(chan actionMsg),
		viewChan:   make(chan viewMsg),
		leaveChan:  make(chan leaveMsg),
		stopChan:   make(chan struct{}),
	}
}

/*

一张桌子就是一局游戏。
所有请求都经过loop串行处理，保证同一局同时只有一个ExecuteAction在执行。
每次操作成功后：
1. 把每个真人玩家自己的视图和事件推给他
1. 记录新结束的轮次
1. 轮到npc就让npc继续操作
1. 游戏结束则记录整局结果并通知room

*/
type Table struct {
	id  string
	opt TableOption

	state core.GameState
	// key player id
	bots map[string]npc.Brain
	// 已经交给recorder的轮数
	recorded int
	finished bool
	// 中途离开的玩家
	leftPlayer string

	joinChan   chan joinMsg
	actionChan chan actionMsg
	viewChan   chan viewMsg
	leaveChan  chan leaveMsg
	stopChan   chan struct{}
	stopOnce   sync.Once
	started    uint32
}

type joinMsg struct {
	user       abstracts.User
	brain      npc.Brain
	resultChan chan error
}

type actionMsg struct {
	uID        string
	action     core.Action
	resultChan chan error
}

type leaveMsg struct {
	uID        string
	resultChan chan error
}

type viewResult struct {
	view core.PlayerView
	err  error
}

type viewMsg struct {
	uID        string
	resultChan chan viewResult
}

func (t *Table) ID() string { return t.id }

func (t *Table) loop() {
	for {
		// 处理请求时可能已经关桌
		select {
		case <-t.stopChan:
			return
		default:
		}

		select {
		case msg := <-t.joinChan:
			msg.resultChan <- t.doJoin(msg)
		case msg := <-t.actionChan:
			msg.resultChan <- t.doAction(msg)
		case msg := <-t.leaveChan:
			msg.resultChan <- t.doLeave(msg)
		case msg := <-t.viewChan:
			v, err := t.opt.Engine.GetPlayerView(t.state, msg.uID)
			msg.resultChan <- viewResult{view: v, err: err}
		case <-t.stopChan:
			return
		}
	}
}

func (t *Table) doJoin(msg joinMsg) error {
	if t.state.BothSeated() {
		return ErrTableFull
	}
	if t.state.PlayerIndex(msg.user.ID()) >= 0 {
		return ErrAlreadySeated
	}
	t.state = t.opt.Engine.JoinGame(t.state, core.PlayerInfo{ID: msg.user.ID(), Name: msg.user.Name()})
	if msg.brain != nil {
		t.bots[msg.user.ID()] = msg.brain
	}
	log.L.Info("player joined", zap.String("game", t.id), zap.String("uid", msg.user.ID()), zap.Bool("bot", msg.brain != nil))
	t.opt.Metrics.GameStarted(t.opt.Variant)

	t.push(nil)
	t.runBots()
	return nil
}

func (t *Table) doAction(msg actionMsg) error {
	if t.state.PlayerIndex(msg.uID) < 0 {
		return ErrNotSeated
	}
	if err := t.apply(msg.action, msg.uID); err != nil {
		return err
	}
	t.runBots()
	return nil
}

/*

离开：
1. 还没人加入，直接关桌，不算一局
1. 游戏进行中，离开的人认输，对手获胜并记录整局结果

*/
func (t *Table) doLeave(msg leaveMsg) error {
	if t.state.PlayerIndex(msg.uID) < 0 {
		return ErrNotSeated
	}
	if t.finished {
		return nil
	}
	if !t.state.BothSeated() {
		log.L.Info("creator left before anyone joined", zap.String("game", t.id), zap.String("uid", msg.uID))
		t.finished = true
		if t.opt.OnFinished != nil {
			t.opt.OnFinished(t)
		}
		return nil
	}

	r := t.opt.Engine.Resign(t.state, msg.uID)
	if !r.Success {
		return r.Err
	}
	log.L.Info("player left", zap.String("game", t.id), zap.String("uid", msg.uID), zap.Int("round", t.state.RoundNumber))
	t.state = r.NewState
	t.leftPlayer = msg.uID
	t.recordRounds()
	t.push(r.Events)
	t.finish()
	return nil
}

func (t *Table) apply(action core.Action, uID string) error {
	r := t.opt.Engine.ExecuteAction(t.state, action, uID)
	t.opt.Metrics.Action(string(action.Type), r.Success)
	if !r.Success {
		return r.Err
	}
	t.state = r.NewState
	t.recordRounds()
	t.push(r.Events)
	if t.state.Phase == core.PhaseGameOver {
		t.finish()
	}
	return nil
}

// runBots 轮到npc时让它一直操作，直到轮到真人或游戏结束
func (t *Table) runBots() {
	for i := 0; i < maxBotSteps && !t.finished; i++ {
		cur := t.state.CurrentPlayer()
		brain, ok := t.bots[cur.ID]
		if !ok || !t.state.BothSeated() {
			return
		}
		v, err := t.opt.Engine.GetPlayerView(t.state, cur.ID)
		if err != nil {
			log.L.Error("get npc view failed", zap.String("game", t.id), zap.Error(err))
			return
		}
		if err := t.apply(brain.Decide(v), cur.ID); err != nil {
			log.L.Warn("npc action rejected", zap.String("game", t.id), zap.String("uid", cur.ID), zap.Error(err))
			return
		}
	}
}

func (t *Table) recordRounds() {
	for ; t.recorded < len(t.state.RoundHistory); t.recorded++ {
		r := t.state.RoundHistory[t.recorded]
		t.opt.Metrics.RoundFinished(abstracts.RoundOutcome(r))
		if err := t.opt.Recorder.SaveRound(t.id, r); err != nil {
			log.L.Error("save round failed", zap.String("game", t.id), zap.Int("round", r.RoundNumber), zap.Error(err))
		}
	}
}

func (t *Table) finish() {
	if t.finished {
		return
	}
	t.finished = true
	rec := t.record()
	t.opt.Metrics.GameFinished(t.opt.Variant, rec.Outcome())
	if err := t.opt.Recorder.SaveGame(rec); err != nil {
		log.L.Error("save game failed", zap.String("game", t.id), zap.Error(err))
	}
	log.L.Info("game finished", zap.String("game", t.id), zap.String("winner", rec.Winner), zap.Bool("draw", rec.IsDraw), zap.Int("rounds", rec.Rounds))
	if t.opt.OnFinished != nil {
		t.opt.OnFinished(t)
	}
}

func (t *Table) record() abstracts.GameRecord {
	rec := abstracts.GameRecord{
		GameID: t.id, Variant: t.opt.Variant,
		Winner: t.state.Winner, IsDraw: t.state.IsDraw,
		Rounds: len(t.state.RoundHistory), LeftPlayer: t.leftPlayer, FinishedAt: time.Now(),
	}
	for _, p := range t.state.Players {
		_, isBot := t.bots[p.ID]
		rec.Players = append(rec.Players, abstracts.SeatRecord{ID: p.ID, Name: p.Name, Chips: p.Chips, IsBot: isBot})
	}
	return rec
}

// push 给每个真人玩家推送他自己的视图，npc不需要
func (t *Table) push(events []core.GameEvent) {
	if t.opt.MsgSender == nil {
		return
	}
	for _, p := range t.state.Players {
		if !p.Seated() {
			continue
		}
		if _, isBot := t.bots[p.ID]; isBot {
			continue
		}
		v, err := t.opt.Engine.GetPlayerView(t.state, p.ID)
		if err != nil {
			log.L.Error("build view failed", zap.String("game", t.id), zap.String("uid", p.ID), zap.Error(err))
			continue
		}
		resp := abstracts.EventsResp{GameID: t.id, Events: events, View: v}
		t.opt.MsgSender.Send(p.ID, abstracts.MsgTypeEvents, time.Now().UnixNano(), util.StringifyJsonToBytes(resp))
	}
}

func (t *Table) Join(u abstracts.User) error {
	return t.join(u, nil)
}

// JoinBot 让npc坐第二个座位
func (t *Table) JoinBot(u abstracts.User, brain npc.Brain) error {
	if brain == nil {
		return errors.New("nil brain")
	}
	return t.join(u, brain)
}

func (t *Table) join(u abstracts.User, brain npc.Brain) error {
	result := make(chan error, 1)
	select {
	case t.joinChan <- joinMsg{user: u, brain: brain, resultChan: result}:
	case <-t.stopChan:
		return ErrTableClosed
	}
	return <-result
}

func (t *Table) Do(uID string, action core.Action) error {
	result := make(chan error, 1)
	select {
	case t.actionChan <- actionMsg{uID: uID, action: action, resultChan: result}:
	case <-t.stopChan:
		return ErrTableClosed
	}
	return <-result
}

// Leave 未开局时关桌，开局后判负
func (t *Table) Leave(uID string) error {
	result := make(chan error, 1)
	select {
	case t.leaveChan <- leaveMsg{uID: uID, resultChan: result}:
	case <-t.stopChan:
		return ErrTableClosed
	}
	return <-result
}

func (t *Table) GetView(uID string) (core.PlayerView, error) {
	result := make(chan viewResult, 1)
	select {
	case t.viewChan <- viewMsg{uID: uID, resultChan: result}:
	case <-t.stopChan:
		return core.PlayerView{}, ErrTableClosed
	}
	r := <-result
	return r.view, r.err
}

func (t *Table) Start() error {
	if !atomic.CompareAndSwapUint32(&t.started, 0, 1) {
		return errors.New("already started")
	}
	t.opt.Metrics.TableOpened()
	go t.loop()
	return nil
}

func (t *Table) Stop() error {
	err := errors.New("already stopped")
	t.stopOnce.Do(func() {
		close(t.stopChan)
		t.opt.Metrics.TableClosed()
		err = nil
	})
	return err
}
