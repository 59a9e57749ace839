package duel

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/abstracts"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core/g-error"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/npc"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/log"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/msg_server"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/util"
)

type RoomConfig struct {
	Port int
	// 创建游戏时没指定玩法就用它
	Variant string
	// >0 时覆盖所有玩法的轮数
	MaxRounds int
	// 为空则用crypto shuffler
	Shuffler core.Shuffler
	Recorder abstracts.Recorder
	Metrics  abstracts.Metrics
}

func NewRoomServer(cfg RoomConfig) (*RoomServer, error) {
	r, err := newRoomServer(cfg)
	if err != nil {
		return nil, err
	}
	ws := msg_server.NewWsServer(cfg.Port, &guestUserGetter{}, r)
	r.wsServer = ws
	r.msgSender = ws
	return r, nil
}

func newRoomServer(cfg RoomConfig) (*RoomServer, error) {
	if cfg.Variant == "" {
		cfg.Variant = core.DefaultVariant
	}
	if cfg.Recorder == nil {
		cfg.Recorder = abstracts.NopRecorder{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = abstracts.NopMetrics{}
	}
	if cfg.Shuffler == nil {
		cfg.Shuffler = core.NewCryptoShuffler()
	}
	if _, ok := core.Variants[cfg.Variant]; !ok {
		return nil, fmt.Errorf("unknown variant: %v", cfg.Variant)
	}

	engines := map[string]*core.Engine{}
	for name, vc := range core.Variants {
		if cfg.MaxRounds > 0 {
			vc.MaxRounds = cfg.MaxRounds
		}
		e, err := core.NewEngine(vc, cfg.Shuffler)
		if err != nil {
			return nil, fmt.Errorf("variant %v: %v", name, err)
		}
		engines[name] = e
	}
	return &RoomServer{cfg: cfg, engines: engines}, nil
}

/*

房间只做会话管理：用户 -> 桌子，游戏id -> 桌子。
所有游戏逻辑都在桌子的loop里跑，房间本身不持有游戏状态。

*/
type RoomServer struct {
	cfg       RoomConfig
	engines   map[string]*core.Engine
	wsServer  *msg_server.WsServer
	msgSender abstracts.MsgSender

	// key user id, value *Table
	users sync.Map
	// key game id, value *Table
	tables sync.Map

	started uint32
}

func (r *RoomServer) Handle(uID string, msgType int, mID int64, msg []byte) error {
	u := &guestUser{id: uID, name: uID}
	switch msgType {
	case abstracts.MsgTypeCreateGame:
		var req abstracts.CreateGameReq
		if err := util.ParseJsonFromBytes(msg, &req); err != nil {
			r.sendErr(uID, mID, err)
			return nil
		}
		if req.Name != "" {
			u.name = req.Name
		}
		r.createGame(u, mID, req)
	case abstracts.MsgTypeJoinGame:
		var req abstracts.JoinGameReq
		if err := util.ParseJsonFromBytes(msg, &req); err != nil {
			r.sendErr(uID, mID, err)
			return nil
		}
		if req.Name != "" {
			u.name = req.Name
		}
		r.joinGame(u, mID, req)
	case abstracts.MsgTypeGameAction:
		a, err := core.ParseAction(msg)
		if err != nil {
			r.sendErr(uID, mID, err)
			return nil
		}
		r.gameAction(uID, mID, a)
	case abstracts.MsgTypeGetView:
		r.getView(uID, mID)
	case abstracts.MsgTypeLeave:
		r.leave(uID, mID)
	default:
		log.L.Debug("unknown msg type", zap.String("uid", uID), zap.Int("msg type", msgType))
		r.sendErr(uID, mID, fmt.Errorf("unknown msg type: %v", msgType))
	}
	return nil
}

func (r *RoomServer) createGame(u abstracts.User, mID int64, req abstracts.CreateGameReq) {
	variant := req.Variant
	if variant == "" {
		variant = r.cfg.Variant
	}
	engine, ok := r.engines[variant]
	if !ok {
		r.sendErr(u.ID(), mID, fmt.Errorf("unknown variant: %v", variant))
		return
	}

	id := uuid.New().String()
	t := NewTable(id, u, TableOption{
		Variant: variant, Engine: engine,
		MsgSender: r.msgSender, Recorder: r.cfg.Recorder, Metrics: r.cfg.Metrics,
		OnFinished: r.onTableFinished,
	})
	// 先占位再开桌，并发创建时只有一个能成功
	if _, loaded := r.users.LoadOrStore(u.ID(), t); loaded {
		r.sendErr(u.ID(), mID, errors.New("already in a game"))
		return
	}
	r.tables.Store(id, t)
	if err := t.Start(); err != nil {
		r.tables.Delete(id)
		r.users.Delete(u.ID())
		r.sendErr(u.ID(), mID, err)
		return
	}
	log.L.Info("game created", zap.String("game", id), zap.String("uid", u.ID()), zap.String("variant", variant), zap.Bool("vs bot", req.VsBot))

	r.sendMsg(u.ID(), abstracts.MsgTypeGameCreated, mID, abstracts.GameCreatedResp{GameID: id, Variant: variant})
	if req.VsBot {
		bot := &guestUser{id: "npc-" + id[:8], name: "npc"}
		if err := t.JoinBot(bot, npc.NewRuleBrain()); err != nil {
			log.L.Error("npc join failed", zap.String("game", id), zap.Error(err))
		}
	}
}

func (r *RoomServer) joinGame(u abstracts.User, mID int64, req abstracts.JoinGameReq) {
	if _, ok := r.users.Load(u.ID()); ok {
		r.sendErr(u.ID(), mID, errors.New("already in a game"))
		return
	}
	tmp, ok := r.tables.Load(req.GameID)
	if !ok {
		r.sendErr(u.ID(), mID, fmt.Errorf("game not found: %v", req.GameID))
		return
	}
	t := tmp.(*Table)
	// 先占位，避免同一用户并发加入两局
	if _, loaded := r.users.LoadOrStore(u.ID(), t); loaded {
		r.sendErr(u.ID(), mID, errors.New("already in a game"))
		return
	}
	if err := t.Join(u); err != nil {
		r.users.Delete(u.ID())
		r.sendErr(u.ID(), mID, err)
		return
	}
	r.sendSuccess(u.ID(), mID, "joined "+req.GameID)
}

func (r *RoomServer) gameAction(uID string, mID int64, a core.Action) {
	t, err := r.tableOf(uID)
	if err != nil {
		r.sendErr(uID, mID, err)
		return
	}
	// 成功后由桌子推送视图和事件
	if err := t.Do(uID, a); err != nil {
		r.sendErr(uID, mID, err)
	}
}

func (r *RoomServer) leave(uID string, mID int64) {
	t, err := r.tableOf(uID)
	if err != nil {
		r.sendErr(uID, mID, err)
		return
	}
	// leave table
	if err := t.Leave(uID); err != nil && err != ErrTableClosed {
		r.sendErr(uID, mID, err)
		return
	}
	// leave room，桌子结束时也会清理
	r.users.Delete(uID)
	r.sendSuccess(uID, mID, "leave success")
}

func (r *RoomServer) getView(uID string, mID int64) {
	t, err := r.tableOf(uID)
	if err != nil {
		r.sendErr(uID, mID, err)
		return
	}
	v, err := t.GetView(uID)
	if err != nil {
		r.sendErr(uID, mID, err)
		return
	}
	r.sendMsg(uID, abstracts.MsgTypeView, mID, abstracts.ViewResp{View: v})
}

func (r *RoomServer) tableOf(uID string) (*Table, error) {
	tmp, ok := r.users.Load(uID)
	if !ok {
		return nil, errors.New("user not in any game")
	}
	return tmp.(*Table), nil
}

// 在桌子的协程里调用
func (r *RoomServer) onTableFinished(t *Table) {
	r.tables.Delete(t.ID())
	r.users.Range(func(k, v interface{}) bool {
		if v.(*Table) == t {
			r.users.Delete(k)
		}
		return true
	})
	if err := t.Stop(); err != nil {
		log.L.Warn("stop finished table failed", zap.String("game", t.ID()), zap.Error(err))
	}
}

// send success
func (r *RoomServer) sendSuccess(uID string, mID int64, info string) {
	r.sendMsg(uID, abstracts.MsgTypeSuccess, mID, abstracts.SuccessResp{Info: info})
}

// send err，引擎的错误带上分类
func (r *RoomServer) sendErr(uID string, mID int64, err error) {
	r.sendMsg(uID, abstracts.MsgTypeErr, mID, abstracts.ErrResp{ErrCode: int(g_error.KindOf(err)), Info: err.Error()})
}

// send msg
func (r *RoomServer) sendMsg(uID string, mt int, mID int64, data interface{}) {
	if r.msgSender == nil {
		return
	}
	r.msgSender.Send(uID, mt, mID, util.StringifyJsonToBytes(data))
}

func (r *RoomServer) stopTables() {
	r.tables.Range(func(k, v interface{}) bool {
		v.(*Table).Stop()
		r.tables.Delete(k)
		return true
	})
	r.users.Range(func(k, _ interface{}) bool {
		r.users.Delete(k)
		return true
	})
}

func (r *RoomServer) Start() error {
	if !atomic.CompareAndSwapUint32(&r.started, 0, 1) {
		return errors.New("room already started")
	}
	if r.wsServer != nil {
		go func() {
			if err := r.wsServer.Run(); err != nil {
				log.L.Error("ws server stopped", zap.Error(err))
			}
		}()
	}
	return nil
}

func (r *RoomServer) Stop() error {
	if !atomic.CompareAndSwapUint32(&r.started, 1, 0) {
		return errors.New("room not started")
	}
	r.stopTables()
	if r.wsServer != nil {
		return r.wsServer.Stop()
	}
	return nil
}
