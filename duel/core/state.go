package core

type Phase string

const (
	PhaseWaiting  Phase = "waiting"
	PhaseAbility  Phase = "ability"
	PhaseBetting  Phase = "betting"
	PhaseShowdown Phase = "showdown"
	PhaseRoundEnd Phase = "round_end"
	PhaseGameOver Phase = "game_over"
)

const noPlayer = -1

// PlayerInfo is what the session layer knows about a user before they're seated
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Chips int    `json:"chips"`
	// 本轮的牌，自己看不到
	Card Card `json:"card"`
	// 本轮累计下注，含底注
	CurrentBet int  `json:"current_bet"`
	HasFolded  bool `json:"has_folded"`

	// 技能相关，只在ability玩法中有意义
	PeekCount      int  `json:"peek_count"`
	SwapCount      int  `json:"swap_count"`
	HasPeeked      bool `json:"has_peeked"`
	HasUsedAbility bool `json:"has_used_ability"`
}

func (p Player) Seated() bool {
	return p.ID != ""
}

type RoundResult struct {
	RoundNumber int `json:"round_number"`
	// key player id
	Cards map[string]Card `json:"cards"`
	// 平局为空
	Winner         string `json:"winner"`
	PotWon         int    `json:"pot_won"`
	FoldedPlayerID string `json:"folded_player_id"`
	// key player id, 本轮净输赢
	ChipChanges map[string]int `json:"chip_changes"`
	Penalty     int            `json:"penalty"`
	// 平分底池时多出的一个筹码归他
	FirstPlayerID string `json:"first_player_id"`
}

func (r RoundResult) IsDraw() bool {
	return r.Winner == ""
}

func (r RoundResult) clone() RoundResult {
	c := r
	c.Cards = make(map[string]Card, len(r.Cards))
	for k, v := range r.Cards {
		c.Cards[k] = v
	}
	c.ChipChanges = make(map[string]int, len(r.ChipChanges))
	for k, v := range r.ChipChanges {
		c.ChipChanges[k] = v
	}
	return c
}

/*

整局游戏的快照。引擎从不原地修改传入的GameState，每次转换都先Clone再改，
因此旧快照可以被并发读取。

*/
type GameState struct {
	ID      string    `json:"id"`
	Players [2]Player `json:"players"`
	// 本副牌剩下未发的牌
	Deck        []Card `json:"deck"`
	DiscardPile []Card `json:"discard_pile"`
	Pot         int    `json:"pot"`
	Phase       Phase  `json:"phase"`

	RoundNumber int `json:"round_number"`
	MaxRounds   int `json:"max_rounds"`

	CurrentPlayerIndex   int `json:"current_player_index"`
	FirstPlayerIndex     int `json:"first_player_index"`
	LastRaisePlayerIndex int `json:"last_raise_player_index"`

	// game_over后二者只有一个有意义
	Winner string `json:"winner"`
	IsDraw bool   `json:"is_draw"`

	RoundHistory []RoundResult `json:"round_history"`
}

func (s GameState) Clone() GameState {
	c := s
	c.Deck = append([]Card(nil), s.Deck...)
	c.DiscardPile = append([]Card(nil), s.DiscardPile...)
	if s.RoundHistory != nil {
		c.RoundHistory = make([]RoundResult, len(s.RoundHistory))
		for i, r := range s.RoundHistory {
			c.RoundHistory[i] = r.clone()
		}
	}
	return c
}

// PlayerIndex returns the seat of id, or -1
func (s GameState) PlayerIndex(id string) int {
	if id == "" {
		return noPlayer
	}
	for i, p := range s.Players {
		if p.ID == id {
			return i
		}
	}
	return noPlayer
}

func (s GameState) CurrentPlayer() Player {
	return s.Players[s.CurrentPlayerIndex]
}

func (s GameState) BothSeated() bool {
	return s.Players[0].Seated() && s.Players[1].Seated()
}

// TotalChips 两人筹码加底池
func (s GameState) TotalChips() int {
	return s.Players[0].Chips + s.Players[1].Chips + s.Pot
}

func other(idx int) int {
	return 1 - idx
}
