package npc

import (
	"go.uber.org/zap"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/log"
)

// Brain picks the next action for a seat it controls. It only ever sees that seat's PlayerView.
type Brain interface {
	Decide(view core.PlayerView) core.Action
}

func NewRuleBrain() *RuleBrain {
	return &RuleBrain{LowMargin: 3, HighMargin: 2, RaiseStep: 2}
}

/*

RuleBrain 只根据看到的对手牌和自己偷看到的牌做决定：
1. 能开局就开局
2. 技能阶段能偷看就偷看，否则跳过
3. 知道自己的牌时，比对手大就加注，比对手小就弃牌，一样就跟
4. 不知道自己的牌时，对手牌很小就加注，很大就弃牌，其余跟注
免费过牌时从不弃牌

*/
type RuleBrain struct {
	// 对手牌 <= LowMargin 视为小牌
	LowMargin core.Card
	// 对手牌 >= MaxRank - HighMargin 视为大牌
	HighMargin core.Card
	// 每次加注额，会被限制在允许范围内
	RaiseStep int
}

func (b *RuleBrain) Decide(view core.PlayerView) core.Action {
	if len(view.ValidActions) == 0 {
		log.L.Warn("npc asked to act without any valid action", zap.String("game", view.GameID), zap.String("phase", string(view.Phase)))
		return core.Action{}
	}
	valid := map[core.ActionType]core.ValidAction{}
	for _, va := range view.ValidActions {
		valid[va.Type] = va
	}

	a := b.decide(view, valid)
	if _, ok := valid[a.Type]; !ok {
		a = core.Action{Type: view.ValidActions[0].Type}
	}
	return a
}

func (b *RuleBrain) decide(view core.PlayerView, valid map[core.ActionType]core.ValidAction) core.Action {
	if _, ok := valid[core.ActionStartRound]; ok {
		return core.StartRound()
	}

	switch view.Phase {
	case core.PhaseAbility:
		if _, ok := valid[core.ActionPeek]; ok {
			return core.Peek()
		}
		return core.SkipAbility()
	case core.PhaseBetting:
		return b.bet(view, valid)
	}
	return core.Action{Type: view.ValidActions[0].Type}
}

func (b *RuleBrain) bet(view core.PlayerView, valid map[core.ActionType]core.ValidAction) core.Action {
	if view.OpponentCard == nil {
		return core.Call()
	}
	opp := *view.OpponentCard

	var strong, weak bool
	if view.MyCard != nil {
		strong = *view.MyCard > opp
		weak = *view.MyCard < opp
	} else {
		strong = opp <= b.LowMargin
		weak = opp >= view.MaxRank-b.HighMargin
	}

	switch {
	case strong:
		if ra, ok := valid[core.ActionRaise]; ok {
			return core.Raise(clamp(b.RaiseStep, ra.MinAmount, ra.MaxAmount))
		}
		return core.Call()
	case weak && view.CallAmount > 0:
		// 明知自己拿着最大的牌时不会走到这里
		return core.Fold()
	}
	return core.Call()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
