package core

// splitPot 平分底池，多出的一个筹码给本轮先手
func splitPot(pot int, firstIdx int) [2]int {
	half := pot / 2
	remainder := pot % 2
	var shares [2]int
	shares[0], shares[1] = half, half
	shares[firstIdx] += remainder
	return shares
}

// resolveShowdown 比牌，大的拿走底池，一样大就平分
func resolveShowdown(_ *Engine, s GameState) outcome {
	if s.Phase != PhaseShowdown {
		return next(s)
	}

	ns := s.Clone()
	p0, p1 := ns.Players[0], ns.Players[1]
	pot := ns.Pot
	events := []GameEvent{newEvent(ns, EventShowdown, "", pot,
		"showdown: %v holds %v, %v holds %v", p0.Name, p0.Card, p1.Name, p1.Card)}

	var shares [2]int
	result := RoundResult{
		RoundNumber:   ns.RoundNumber,
		Cards:         roundCards(ns),
		PotWon:        pot,
		FirstPlayerID: ns.Players[ns.FirstPlayerIndex].ID,
	}
	switch {
	case p0.Card > p1.Card:
		shares[0] = pot
		result.Winner = p0.ID
	case p1.Card > p0.Card:
		shares[1] = pot
		result.Winner = p1.ID
	default:
		shares = splitPot(pot, ns.FirstPlayerIndex)
	}

	result.ChipChanges = make(map[string]int, 2)
	for i := range ns.Players {
		p := &ns.Players[i]
		p.Chips += shares[i]
		result.ChipChanges[p.ID] = shares[i] - p.CurrentBet
	}
	if result.Winner == "" {
		events = append(events, newEvent(ns, EventTie, "", pot,
			"tie at %v, pot split %d/%d", p0.Card, shares[0], shares[1]))
	} else {
		w := ns.Players[ns.PlayerIndex(result.Winner)]
		events = append(events, newEvent(ns, EventWin, w.ID, pot, "%v wins the pot of %d", w.Name, pot))
	}

	ns.Pot = 0
	ns.RoundHistory = append(ns.RoundHistory, result)
	ns.Phase = PhaseRoundEnd
	return next(ns, events...)
}
