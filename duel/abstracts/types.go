package abstracts

import (
	"time"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core"
)

const (
	// c - s
	MsgTypeCreateGame = 0x10
	// c - s
	MsgTypeJoinGame = 0x11
	// c - s
	MsgTypeGameAction = 0x12
	// c - s
	MsgTypeGetView = 0x13
	// c - s
	MsgTypeLeave = 0x14

	// s - c
	MsgTypeErr = 0x20
	// s - c
	MsgTypeSuccess = 0x21
	// s - c
	MsgTypeView = 0x22
	// s - c，每次有人操作成功后推送
	MsgTypeEvents = 0x23
	// s - c
	MsgTypeGameCreated = 0x24
)

const (
	OutcomeWin  = "win"
	OutcomeDraw = "draw"
	OutcomeFold = "fold"
	// 有人中途离开
	OutcomeLeft = "left"
)

type CreateGameReq struct {
	// 为空时用房间默认玩法
	Variant string `json:"variant"`
	VsBot   bool   `json:"vs_bot"`
	Name    string `json:"name"`
}

type JoinGameReq struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

type GameCreatedResp struct {
	GameID  string `json:"game_id"`
	Variant string `json:"variant"`
}

type ErrResp struct {
	// g_error.Kind
	ErrCode int    `json:"err_code"`
	Info    string `json:"info"`
}

type SuccessResp struct {
	Info string `json:"info"`
}

type ViewResp struct {
	View core.PlayerView `json:"view"`
}

type EventsResp struct {
	GameID string           `json:"game_id"`
	Events []core.GameEvent `json:"events"`
	View   core.PlayerView  `json:"view"`
}

type SeatRecord struct {
	ID    string `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Chips int    `json:"chips" bson:"chips"`
	IsBot bool   `json:"is_bot" bson:"is_bot"`
}

// GameRecord 一局结束后的汇总
type GameRecord struct {
	GameID     string       `json:"game_id" bson:"game_id"`
	Variant    string       `json:"variant" bson:"variant"`
	Players    []SeatRecord `json:"players" bson:"players"`
	Winner     string       `json:"winner" bson:"winner"`
	IsDraw     bool         `json:"is_draw" bson:"is_draw"`
	Rounds     int          `json:"rounds" bson:"rounds"`
	LeftPlayer string       `json:"left_player,omitempty" bson:"left_player,omitempty"`
	FinishedAt time.Time    `json:"finished_at" bson:"finished_at"`
}

func (r GameRecord) Outcome() string {
	if r.LeftPlayer != "" {
		return OutcomeLeft
	}
	if r.IsDraw {
		return OutcomeDraw
	}
	return OutcomeWin
}

// RoundOutcome 给metrics用的轮次结果标签
func RoundOutcome(r core.RoundResult) string {
	switch {
	case r.FoldedPlayerID != "":
		return OutcomeFold
	case r.IsDraw():
		return OutcomeDraw
	default:
		return OutcomeWin
	}
}
