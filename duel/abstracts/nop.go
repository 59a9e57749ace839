package abstracts

import "github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core"

// 没配mongo时使用
type NopRecorder struct{}

func (NopRecorder) SaveRound(gameID string, r core.RoundResult) error { return nil }
func (NopRecorder) SaveGame(rec GameRecord) error                     { return nil }

type NopMetrics struct{}

func (NopMetrics) GameStarted(variant string)                  {}
func (NopMetrics) GameFinished(variant string, outcome string) {}
func (NopMetrics) RoundFinished(result string)                 {}
func (NopMetrics) Action(actionType string, success bool)      {}
func (NopMetrics) TableOpened()                                {}
func (NopMetrics) TableClosed()                                {}
