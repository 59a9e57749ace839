package g_error

import (
	"errors"

	pkgerr "github.com/pkg/errors"
)

type Kind int

const (
	KindNone Kind = iota
	// acting player doesn't own the turn
	KindTurn
	// action not legal in the current phase
	KindPhase
	// not enough chips, bad amount, nothing left to use
	KindResource
	// round can't start yet
	KindPrecondition
	// player id isn't seated in the game
	KindLookup
	// unknown or ill-shaped action
	KindMalformed
)

var kindNames = map[Kind]string{
	KindNone:         "none",
	KindTurn:         "turn",
	KindPhase:        "phase",
	KindResource:     "resource",
	KindPrecondition: "precondition",
	KindLookup:       "lookup",
	KindMalformed:    "malformed",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

var (
	ErrNotYourTurn = errors.New("not your turn")

	ErrWrongPhase      = errors.New("action not allowed in current phase")
	ErrAbilityDisabled = errors.New("abilities are disabled in this variant")
	ErrGameOver        = errors.New("game is already over")
	ErrAbilityUsed     = errors.New("ability already used this round")

	ErrInsufficientChips  = errors.New("insufficient chips")
	ErrInvalidRaiseAmount = errors.New("raise amount must be a positive integer")
	ErrNoPeekLeft         = errors.New("no peek left")
	ErrAlreadyPeeked      = errors.New("card already peeked")
	ErrNoSwapLeft         = errors.New("no swap left")
	ErrDeckEmpty          = errors.New("deck is empty")

	ErrSeatNotFilled     = errors.New("waiting for the second player")
	ErrRoundNotStartable = errors.New("round can only start from waiting or round end")

	ErrPlayerNotFound = errors.New("player not in this game")

	ErrUnknownAction  = errors.New("unknown action type")
	ErrNegativeAmount = errors.New("amount can't be negative")
)

var errKinds = map[error]Kind{
	ErrNotYourTurn: KindTurn,

	ErrWrongPhase:      KindPhase,
	ErrAbilityDisabled: KindPhase,
	ErrGameOver:        KindPhase,
	ErrAbilityUsed:     KindPhase,

	ErrInsufficientChips:  KindResource,
	ErrInvalidRaiseAmount: KindResource,
	ErrNoPeekLeft:         KindResource,
	ErrAlreadyPeeked:      KindResource,
	ErrNoSwapLeft:         KindResource,
	ErrDeckEmpty:          KindResource,

	ErrSeatNotFilled:     KindPrecondition,
	ErrRoundNotStartable: KindPrecondition,

	ErrPlayerNotFound: KindLookup,

	ErrUnknownAction:  KindMalformed,
	ErrNegativeAmount: KindMalformed,
}

// KindOf unwraps err down to its sentinel and reports which kind of violation it is
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}
	if k, ok := errKinds[pkgerr.Cause(err)]; ok {
		return k
	}
	return KindNone
}
