package core

import "strconv"

// Card is a bare rank, suits don't matter in a one card duel
type Card int

const NoCard Card = 0

func (c Card) String() string {
	if c == NoCard {
		return "-"
	}
	return strconv.Itoa(int(c))
}

// drawCards 从牌堆顶取n张，不修改传入的切片
func drawCards(deck []Card, n int) (drawn []Card, rest []Card, ok bool) {
	if n > len(deck) {
		return nil, deck, false
	}
	drawn = append([]Card{}, deck[:n]...)
	rest = append([]Card{}, deck[n:]...)
	return drawn, rest, true
}
