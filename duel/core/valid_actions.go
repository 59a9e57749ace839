package core

// GetValidActions lists what playerID may do right now. Anyone but the turn holder gets nothing.
func (e *Engine) GetValidActions(s GameState, playerID string) []ValidAction {
	idx := s.CurrentPlayerIndex
	if playerID != "" {
		idx = s.PlayerIndex(playerID)
	}
	if idx == noPlayer || idx != s.CurrentPlayerIndex || !s.Players[idx].Seated() {
		return []ValidAction{}
	}
	p := s.Players[idx]

	actions := []ValidAction{}
	switch s.Phase {
	case PhaseWaiting, PhaseRoundEnd:
		if s.BothSeated() {
			actions = append(actions, ValidAction{Type: ActionStartRound})
		}
	case PhaseAbility:
		if !e.cfg.AbilityPhase || p.HasUsedAbility {
			break
		}
		if p.PeekCount > 0 && !p.HasPeeked {
			actions = append(actions, ValidAction{Type: ActionPeek})
		}
		if p.SwapCount > 0 && len(s.Deck) > 0 {
			actions = append(actions, ValidAction{Type: ActionSwap})
		}
		actions = append(actions, ValidAction{Type: ActionSkipAbility})
	case PhaseBetting:
		callAmount := callAmountOf(s, idx)
		if p.Chips > callAmount {
			actions = append(actions, ValidAction{Type: ActionRaise, MinAmount: 1, MaxAmount: p.Chips - callAmount})
		}
		actions = append(actions, ValidAction{Type: ActionCall}, ValidAction{Type: ActionFold})
	case PhaseShowdown, PhaseGameOver:
	}
	return actions
}
