package abstracts

import (
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core"
)

type User interface {
	// user的id
	ID() string
	Name() string
}

type Table interface {
	ID() string
	Start() error
	Stop() error

	// 第二个座位只能坐一次
	Join(u User) error
	Do(uID string, action core.Action) error
	// 未开局时关桌，开局后判负
	Leave(uID string) error
	GetView(uID string) (core.PlayerView, error)
}

type MsgSender interface {
	Send(id string, msgType int, mID int64, msg []byte)
}

// Recorder 持久化结束的轮次和整局结果，失败只记日志，不影响游戏
type Recorder interface {
	SaveRound(gameID string, r core.RoundResult) error
	SaveGame(rec GameRecord) error
}

type Metrics interface {
	GameStarted(variant string)
	GameFinished(variant string, outcome string)
	RoundFinished(result string)
	Action(actionType string, success bool)
	TableOpened()
	TableClosed()
}
