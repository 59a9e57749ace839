package g_error

import (
	"testing"

	pkgerr "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNone, KindOf(nil))
	assert.Equal(t, KindTurn, KindOf(ErrNotYourTurn))
	assert.Equal(t, KindResource, KindOf(pkgerr.Wrapf(ErrInsufficientChips, "need %d, have %d", 5, 2)))
	assert.Equal(t, KindLookup, KindOf(pkgerr.Wrap(pkgerr.Wrap(ErrPlayerNotFound, "raise"), "engine")))
	assert.Equal(t, KindNone, KindOf(pkgerr.New("something else")))
}

func TestEveryErrorHasAKind(t *testing.T) {
	for err, k := range errKinds {
		assert.NotEqual(t, KindNone, k, err.Error())
		assert.NotEqual(t, "unknown", k.String())
	}
}
