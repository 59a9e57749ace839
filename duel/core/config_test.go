package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariants(t *testing.T) {
	for name, cfg := range Variants {
		assert.NoError(t, cfg.Validate(), name)
	}
	assert.Contains(t, Variants, DefaultVariant)

	cfg, err := VariantByName("ability")
	assert.NoError(t, err)
	assert.True(t, cfg.AbilityPhase)
	assert.Equal(t, 2, cfg.PeekCount)
	assert.Equal(t, 1, cfg.SwapCount)

	_, err = VariantByName("texas")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	broken := []func(c *Config){
		func(c *Config) { c.StartingChips = 0 },
		func(c *Config) { c.Ante = -1 },
		func(c *Config) { c.MaxRounds = 0 },
		func(c *Config) { c.MinRank = 0 },
		func(c *Config) { c.MaxRank = c.MinRank - 1 },
		func(c *Config) { c.CopiesPerRank = 0 },
		func(c *Config) { c.MinRank, c.MaxRank, c.CopiesPerRank = 5, 5, 1 },
		func(c *Config) { c.FoldPenalty = -3 },
	}
	for i, b := range broken {
		cfg := classicCfg()
		b(&cfg)
		assert.Error(t, cfg.Validate(), "case %d", i)
	}
}

func TestFullDeck(t *testing.T) {
	deck := classicCfg().FullDeck()
	assert.Len(t, deck, 20)
	assert.Equal(t, Card(1), deck[0])
	assert.Equal(t, Card(10), deck[19])

	counts := map[Card]int{}
	for _, c := range deck {
		counts[c]++
	}
	for r := Card(1); r <= 10; r++ {
		assert.Equal(t, 2, counts[r])
	}
}

func TestDrawCards(t *testing.T) {
	deck := []Card{4, 5, 6}
	drawn, rest, ok := drawCards(deck, 2)
	assert.True(t, ok)
	assert.Equal(t, []Card{4, 5}, drawn)
	assert.Equal(t, []Card{6}, rest)
	assert.Equal(t, []Card{4, 5, 6}, deck)

	_, rest, ok = drawCards(deck, 4)
	assert.False(t, ok)
	assert.Len(t, rest, 3)
}
