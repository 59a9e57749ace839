package core

import (
	"math/rand"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/util"
)

// Shuffler returns a permutation of cards. Implementations must not touch the input slice
// and must not keep state between calls.
type Shuffler interface {
	Shuffle(cards []Card) []Card
}

type cryptoShuffler struct{}

func NewCryptoShuffler() Shuffler {
	return cryptoShuffler{}
}

// Fisher-Yates over crypto/rand
func (cryptoShuffler) Shuffle(cards []Card) []Card {
	out := append([]Card{}, cards...)
	for i := len(out) - 1; i > 0; i-- {
		j := util.RandANum(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

type seededShuffler struct {
	seed int64
}

// NewSeededShuffler gives the same permutation for the same input every call.
// The engine always reshuffles a full fresh deck, so every deck of a seeded game comes out
// in the same order. Use it for replays and tests, not for play.
func NewSeededShuffler(seed int64) Shuffler {
	return seededShuffler{seed: seed}
}

func (s seededShuffler) Shuffle(cards []Card) []Card {
	rng := rand.New(rand.NewSource(s.seed))
	out := append([]Card{}, cards...)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

type fixedShuffler struct {
	top []Card
}

// NewFixedShuffler moves top to the front of the deck in the given order and leaves the rest
// as it came. Cards in top that the deck doesn't hold are ignored.
func NewFixedShuffler(top ...Card) Shuffler {
	return fixedShuffler{top: append([]Card{}, top...)}
}

func (s fixedShuffler) Shuffle(cards []Card) []Card {
	rest := append([]Card{}, cards...)
	out := make([]Card, 0, len(cards))
	for _, c := range s.top {
		for i, rc := range rest {
			if rc == c {
				out = append(out, c)
				rest = append(rest[:i], rest[i+1:]...)
				break
			}
		}
	}
	return append(out, rest...)
}
