package duel

import (
	"sync"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/abstracts"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/util"
)

type sentMsg struct {
	uID     string
	msgType int
	mID     int64
	content []byte
}

type fakeMsgSender struct {
	mu   sync.Mutex
	msgs []sentMsg
}

func (s *fakeMsgSender) Send(id string, msgType int, mID int64, msg []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, sentMsg{uID: id, msgType: msgType, mID: mID, content: msg})
}

// 取某个用户收到的某类消息
func (s *fakeMsgSender) of(uID string, msgType int) []sentMsg {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []sentMsg
	for _, m := range s.msgs {
		if m.uID == uID && m.msgType == msgType {
			result = append(result, m)
		}
	}
	return result
}

func (s *fakeMsgSender) lastEvents(uID string) abstracts.EventsResp {
	var resp abstracts.EventsResp
	msgs := s.of(uID, abstracts.MsgTypeEvents)
	if len(msgs) > 0 {
		util.ParseJsonFromBytes(msgs[len(msgs)-1].content, &resp)
	}
	return resp
}

type fakeRecorder struct {
	mu     sync.Mutex
	rounds []core.RoundResult
	games  []abstracts.GameRecord
}

func (r *fakeRecorder) SaveRound(gameID string, rr core.RoundResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds = append(r.rounds, rr)
	return nil
}

func (r *fakeRecorder) SaveGame(rec abstracts.GameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games = append(r.games, rec)
	return nil
}

func (r *fakeRecorder) counts() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rounds), len(r.games)
}

type fakeMetrics struct {
	mu      sync.Mutex
	actions map[string]int
	started int
	ended   []string
	opened  int
	closed  int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{actions: map[string]int{}}
}

func (m *fakeMetrics) GameStarted(variant string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started++
}

func (m *fakeMetrics) GameFinished(variant string, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ended = append(m.ended, outcome)
}

func (m *fakeMetrics) RoundFinished(result string) {}

func (m *fakeMetrics) Action(actionType string, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if success {
		m.actions[actionType]++
	} else {
		m.actions["rejected"]++
	}
}

func (m *fakeMetrics) TableOpened() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened++
}

func (m *fakeMetrics) TableClosed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
}

func newFakeEngine(variant string, top ...core.Card) *core.Engine {
	cfg, err := core.VariantByName(variant)
	if err != nil {
		panic(err)
	}
	e, err := core.NewEngine(cfg, core.NewFixedShuffler(top...))
	if err != nil {
		panic(err)
	}
	return e
}

func newFakeUser(id string) abstracts.User {
	return &guestUser{id: id, name: "user " + id}
}

// 优先开局/跳过技能/跟注，一直打到结束
func pickAction(v core.PlayerView) (core.Action, bool) {
	if len(v.ValidActions) == 0 {
		return core.Action{}, false
	}
	for _, want := range []core.ActionType{core.ActionStartRound, core.ActionSkipAbility, core.ActionCall} {
		for _, va := range v.ValidActions {
			if va.Type == want {
				return core.Action{Type: want}, true
			}
		}
	}
	return core.Action{Type: v.ValidActions[0].Type}, true
}
