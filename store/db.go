package store

import (
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/mgo.v2"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/log"
)

var session *mgo.Session
var mutex sync.Mutex

// 获取数据库连接
// 这里会先尝试去连admin，如果不成功则可能是只针对对应的数据库做了授权，因此再尝试去连对应数据库，如果对应数据库也失败了，那么就是真的连不上
func GetDB(dbConfig *mgo.DialInfo) (*mgo.Session, error) {
	mutex.Lock()
	defer mutex.Unlock()
	if session != nil {
		return session, nil
	}

	log.L.Info("init mongo session", zap.Strings("hosts", dbConfig.Addrs), zap.String("db", dbConfig.Database))
	cfg := *dbConfig
	cfg.Database = "admin"
	s, err := mgo.DialWithInfo(&cfg)
	if err != nil {
		log.L.Debug("dial admin failed, retry with target db", zap.Error(err))
		if s, err = mgo.DialWithInfo(dbConfig); err != nil {
			return nil, err
		}
	}
	s.SetMode(mgo.Strong, true)
	session = s
	return session, nil
}

// 清空某个数据库下的所有数据，只允许测试库
func ClearAllData(dbConfig *mgo.DialInfo, dbName string) error {
	if !strings.Contains(dbName, "test") {
		log.L.Warn("refuse to clear a non test db", zap.String("db", dbName))
		return errors.New("only test db can be cleared")
	}
	s, err := GetDB(dbConfig)
	if err != nil {
		return err
	}
	tmpDB := s.DB(dbName)
	cNames, err := tmpDB.CollectionNames()
	if err != nil {
		return err
	}
	for _, cn := range cNames {
		// DropCollection不会清除session中缓存的index，反复migrate会出问题，所以只删数据
		if _, err := tmpDB.C(cn).RemoveAll(nil); err != nil {
			return err
		}
	}
	return nil
}

// 关闭连接
func CloseDb() {
	mutex.Lock()
	defer mutex.Unlock()
	if session != nil {
		session.Close()
		session = nil
	}
}
