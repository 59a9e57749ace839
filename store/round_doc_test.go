package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core"
)

func TestRoundDoc(t *testing.T) {
	r := core.RoundResult{
		RoundNumber: 3, FoldedPlayerID: "a", Winner: "b", PotWon: 6, Penalty: 2, FirstPlayerID: "b",
		Cards:       map[string]core.Card{"a": 10, "b": 4},
		ChipChanges: map[string]int{"a": -5, "b": 5},
	}
	doc := toRoundDoc("g9", r)
	assert.Equal(t, "g9", doc.GameID)
	assert.Equal(t, 10, doc.Cards["a"])
	assert.False(t, doc.CreatedAt.IsZero())
	assert.Equal(t, r, doc.toRoundResult())
}

func TestNewDbConfig(t *testing.T) {
	conf := NewDbConfig([]string{"db1", "db2"}, "", "u", "p")
	assert.Equal(t, DefaultDBName, conf.Database)
	assert.Equal(t, []string{"db1", "db2"}, conf.Addrs)
	assert.Equal(t, "u", conf.Username)
}
