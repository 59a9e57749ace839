package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	alice = PlayerInfo{ID: "a", Name: "alice"}
	bob   = PlayerInfo{ID: "b", Name: "bob"}
)

func classicCfg() Config {
	return Variants["classic"]
}

func abilityCfg() Config {
	return Variants["ability"]
}

// top里的牌会按顺序最先发出
func newFakeEngine(t *testing.T, cfg Config, top ...Card) *Engine {
	e, err := NewEngine(cfg, NewFixedShuffler(top...))
	require.NoError(t, err)
	return e
}

func newFakeGame(e *Engine) GameState {
	return e.JoinGame(e.CreateGame("g1", alice), bob)
}

func mustAct(t *testing.T, e *Engine, s GameState, a Action, playerID string) ActionResult {
	r := e.ExecuteAction(s, a, playerID)
	require.True(t, r.Success, "%v by %q: %v", a.Type, playerID, r.Message)
	return r
}

func eventTypes(events []GameEvent) []EventType {
	var types []EventType
	for _, ev := range events {
		types = append(types, ev.Type)
	}
	return types
}
