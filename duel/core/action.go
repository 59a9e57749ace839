package core

import (
	"github.com/pkg/errors"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core/g-error"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/util"
)

type ActionType string

const (
	ActionStartRound  ActionType = "START_ROUND"
	ActionPeek        ActionType = "PEEK"
	ActionSwap        ActionType = "SWAP"
	ActionSkipAbility ActionType = "SKIP_ABILITY"
	ActionRaise       ActionType = "RAISE"
	ActionCall        ActionType = "CALL"
	ActionFold        ActionType = "FOLD"
)

// AllActionTypes lists every action the engine dispatches on
var AllActionTypes = []ActionType{
	ActionStartRound, ActionPeek, ActionSwap, ActionSkipAbility, ActionRaise, ActionCall, ActionFold,
}

func (t ActionType) Known() bool {
	for _, at := range AllActionTypes {
		if at == t {
			return true
		}
	}
	return false
}

type Action struct {
	Type ActionType `json:"type"`
	// 只有RAISE用，表示在跟注之外再加多少
	Amount int `json:"amount,omitempty"`
}

func StartRound() Action  { return Action{Type: ActionStartRound} }
func Peek() Action        { return Action{Type: ActionPeek} }
func Swap() Action        { return Action{Type: ActionSwap} }
func SkipAbility() Action { return Action{Type: ActionSkipAbility} }
func Raise(amount int) Action {
	return Action{Type: ActionRaise, Amount: amount}
}
func Call() Action { return Action{Type: ActionCall} }
func Fold() Action { return Action{Type: ActionFold} }

// Validate only checks the shape, legality is the engine's job
func (a Action) Validate() error {
	if !a.Type.Known() {
		return errors.Wrapf(g_error.ErrUnknownAction, "%q", string(a.Type))
	}
	if a.Amount < 0 {
		return errors.Wrapf(g_error.ErrNegativeAmount, "%v %d", a.Type, a.Amount)
	}
	return nil
}

func ParseAction(data []byte) (Action, error) {
	var a Action
	if err := util.ParseJsonFromBytes(data, &a); err != nil {
		return Action{}, errors.Wrap(g_error.ErrUnknownAction, err.Error())
	}
	if err := a.Validate(); err != nil {
		return Action{}, err
	}
	return a, nil
}

// ValidAction is one legal move, Min/Max bound the raise amount
type ValidAction struct {
	Type      ActionType `json:"type"`
	MinAmount int        `json:"min_amount,omitempty"`
	MaxAmount int        `json:"max_amount,omitempty"`
}

type ActionResult struct {
	Success  bool        `json:"success"`
	NewState GameState   `json:"new_state"`
	Message  string      `json:"message"`
	Events   []GameEvent `json:"events"`
	// 失败原因，可以用g_error.KindOf分类
	Err error `json:"-"`
}
