package core

import "fmt"

type EventType string

const (
	EventRoundStarted   EventType = "round_started"
	EventDeckShuffled   EventType = "deck_shuffled"
	EventAnte           EventType = "ante"
	EventPeek           EventType = "peek"
	EventSwap           EventType = "swap"
	EventSkipAbility    EventType = "skip_ability"
	EventBettingStarted EventType = "betting_started"
	EventRaise          EventType = "raise"
	EventCall           EventType = "call"
	EventCheck          EventType = "check"
	EventFold           EventType = "fold"
	EventFoldPenalty    EventType = "fold_penalty"
	EventShowdown       EventType = "showdown"
	EventWin            EventType = "win"
	EventTie            EventType = "tie"
	EventRoundEnded     EventType = "round_ended"
	EventResign         EventType = "resign"
	EventGameOver       EventType = "game_over"
)

// GameEvent narrates one thing that happened during an ExecuteAction call.
// The engine only appends them, it never reads them back.
type GameEvent struct {
	Type     EventType `json:"type"`
	Round    int       `json:"round"`
	PlayerID string    `json:"player_id,omitempty"`
	Amount   int       `json:"amount,omitempty"`
	Message  string    `json:"message"`
}

func newEvent(s GameState, t EventType, playerID string, amount int, format string, args ...interface{}) GameEvent {
	return GameEvent{
		Type:     t,
		Round:    s.RoundNumber,
		PlayerID: playerID,
		Amount:   amount,
		Message:  fmt.Sprintf(format, args...),
	}
}
