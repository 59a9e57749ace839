package store

import (
	"time"

	"gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/abstracts"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/duel/core"
)

func NewGameDBByMongo(config *mgo.DialInfo, dbName string) (*GameDBByMongo, error) {
	db := &GameDBByMongo{
		config: config,
		dbName: dbName,

		roundTN: "round",
		gameTN:  "game",
	}
	if err := db.migrate(); err != nil {
		return nil, err
	}
	return db, nil
}

// GameDBByMongo implements abstracts.Recorder
type GameDBByMongo struct {
	config *mgo.DialInfo
	dbName string

	roundTN string
	gameTN  string
}

type roundDoc struct {
	GameID         string         `bson:"game_id"`
	RoundNumber    int            `bson:"round_number"`
	Cards          map[string]int `bson:"cards"`
	Winner         string         `bson:"winner"`
	PotWon         int            `bson:"pot_won"`
	FoldedPlayerID string         `bson:"folded_player_id"`
	ChipChanges    map[string]int `bson:"chip_changes"`
	Penalty        int            `bson:"penalty"`
	FirstPlayerID  string         `bson:"first_player_id"`
	CreatedAt      time.Time      `bson:"created_at"`
}

func toRoundDoc(gameID string, r core.RoundResult) roundDoc {
	doc := roundDoc{
		GameID: gameID, RoundNumber: r.RoundNumber,
		Cards:  map[string]int{},
		Winner: r.Winner, PotWon: r.PotWon, FoldedPlayerID: r.FoldedPlayerID,
		ChipChanges: map[string]int{}, Penalty: r.Penalty, FirstPlayerID: r.FirstPlayerID,
		CreatedAt: time.Now(),
	}
	for id, c := range r.Cards {
		doc.Cards[id] = int(c)
	}
	for id, d := range r.ChipChanges {
		doc.ChipChanges[id] = d
	}
	return doc
}

func (d roundDoc) toRoundResult() core.RoundResult {
	r := core.RoundResult{
		RoundNumber: d.RoundNumber, Cards: map[string]core.Card{},
		Winner: d.Winner, PotWon: d.PotWon, FoldedPlayerID: d.FoldedPlayerID,
		ChipChanges: map[string]int{}, Penalty: d.Penalty, FirstPlayerID: d.FirstPlayerID,
	}
	for id, c := range d.Cards {
		r.Cards[id] = core.Card(c)
	}
	for id, v := range d.ChipChanges {
		r.ChipChanges[id] = v
	}
	return r
}

// (game_id, round_number) 是unique的，重复保存会返回错误
func (db *GameDBByMongo) SaveRound(gameID string, r core.RoundResult) error {
	c, err := db.c(db.roundTN)
	if err != nil {
		return err
	}
	return c.Insert(toRoundDoc(gameID, r))
}

func (db *GameDBByMongo) SaveGame(rec abstracts.GameRecord) error {
	c, err := db.c(db.gameTN)
	if err != nil {
		return err
	}
	return c.Insert(rec)
}

// GetRounds 按轮次顺序返回
func (db *GameDBByMongo) GetRounds(gameID string) ([]core.RoundResult, error) {
	c, err := db.c(db.roundTN)
	if err != nil {
		return nil, err
	}
	var docs []roundDoc
	if err := c.Find(bson.M{"game_id": gameID}).Sort("round_number").All(&docs); err != nil {
		return nil, err
	}
	result := make([]core.RoundResult, len(docs))
	for i, d := range docs {
		result[i] = d.toRoundResult()
	}
	return result, nil
}

// 找不到时返回mgo.ErrNotFound
func (db *GameDBByMongo) GetGame(gameID string) (rec abstracts.GameRecord, err error) {
	c, err := db.c(db.gameTN)
	if err != nil {
		return rec, err
	}
	err = c.Find(bson.M{"game_id": gameID}).One(&rec)
	return
}

func (db *GameDBByMongo) getDB() (*mgo.Database, error) {
	s, err := GetDB(db.config)
	if err != nil {
		return nil, err
	}
	return s.DB(db.dbName), nil
}

func (db *GameDBByMongo) c(name string) (*mgo.Collection, error) {
	d, err := db.getDB()
	if err != nil {
		return nil, err
	}
	return d.C(name), nil
}

func (db *GameDBByMongo) migrate() error {
	d, err := db.getDB()
	if err != nil {
		return err
	}
	if err := d.C(db.roundTN).EnsureIndex(mgo.Index{Key: []string{"game_id", "round_number"}, Unique: true}); err != nil {
		return err
	}
	if err := d.C(db.gameTN).EnsureIndex(mgo.Index{Key: []string{"game_id"}, Unique: true}); err != nil {
		return err
	}
	return d.C(db.gameTN).EnsureIndex(mgo.Index{Key: []string{"winner"}})
}

func (db *GameDBByMongo) ClearTestData() error {
	return ClearAllData(db.config, db.dbName)
}
