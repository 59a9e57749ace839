package core

import (
	"github.com/pkg/errors"
)

// 预设的玩法，cli通过名字选择
var Variants = map[string]Config{
	"classic": {
		StartingChips: 20, Ante: 1, MaxRounds: 10,
		MinRank: 1, MaxRank: 10, CopiesPerRank: 2,
		FoldPenalty: 10,
	},
	"ability": {
		StartingChips: 20, Ante: 1, MaxRounds: 10,
		MinRank: 1, MaxRank: 10, CopiesPerRank: 2,
		AbilityPhase: true, PeekCount: 2, SwapCount: 1,
	},
}

const DefaultVariant = "classic"

type Config struct {
	// 开局每人带入的筹码
	StartingChips int `json:"starting_chips"`
	// 每轮开始时强制下的底注
	Ante      int `json:"ante"`
	MaxRounds int `json:"max_rounds"`

	MinRank       Card `json:"min_rank"`
	MaxRank       Card `json:"max_rank"`
	CopiesPerRank int  `json:"copies_per_rank"`

	// 下注前是否有偷看/换牌阶段
	AbilityPhase bool `json:"ability_phase"`
	// 整局可用次数
	PeekCount int `json:"peek_count"`
	SwapCount int `json:"swap_count"`

	// 拿着最大牌弃牌时额外赔付的筹码，0为关闭
	FoldPenalty int `json:"fold_penalty"`
}

func VariantByName(name string) (Config, error) {
	cfg, ok := Variants[name]
	if !ok {
		return Config{}, errors.Errorf("unknown variant: %v", name)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.StartingChips <= 0 {
		return errors.New("starting chips must be > 0")
	}
	if c.Ante < 0 {
		return errors.New("ante must be >= 0")
	}
	if c.MaxRounds <= 0 {
		return errors.New("max rounds must be > 0")
	}
	if c.MinRank <= NoCard || c.MaxRank < c.MinRank {
		return errors.Errorf("invalid rank range: %d..%d", c.MinRank, c.MaxRank)
	}
	if c.CopiesPerRank <= 0 {
		return errors.New("copies per rank must be > 0")
	}
	if len(c.FullDeck()) < 2 {
		return errors.New("deck must hold at least two cards")
	}
	if c.PeekCount < 0 || c.SwapCount < 0 || c.FoldPenalty < 0 {
		return errors.New("peek, swap and fold penalty must be >= 0")
	}
	return nil
}

// FullDeck 按rank从小到大生成一副未洗的牌
func (c Config) FullDeck() []Card {
	var deck []Card
	for r := c.MinRank; r <= c.MaxRank; r++ {
		for i := 0; i < c.CopiesPerRank; i++ {
			deck = append(deck, r)
		}
	}
	return deck
}
