package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringifyNil(t *testing.T) {
	assert.Equal(t, "null", StringifyJson(nil))
}

type payload struct {
	Type   string `json:"type"`
	Amount int    `json:"amount"`
}

func TestParseJsonFromBytes(t *testing.T) {
	var p payload
	err := ParseJsonFromBytes(StringifyJsonToBytes(payload{Type: "RAISE", Amount: 3}), &p)
	assert.NoError(t, err)
	assert.Equal(t, "RAISE", p.Type)
	assert.Equal(t, 3, p.Amount)

	err = ParseJson(`{"type":"CALL"}`, &p)
	assert.NoError(t, err)
	assert.Equal(t, "CALL", p.Type)

	assert.Error(t, ParseJson("{", &p))
}

func TestRandANum(t *testing.T) {
	assert.Equal(t, 0, RandANum(0))
	assert.Equal(t, 0, RandANum(1))
	for i := 0; i < 200; i++ {
		n := RandANum(7)
		assert.True(t, n >= 0 && n < 7)
	}
}
