package store

import (
	"time"

	"gopkg.in/mgo.v2"
)

const DefaultDBName = "indian_poker"

// new mongo conf
func NewDbConfig(hosts []string, dbName string, user string, pwd string) *mgo.DialInfo {
	if dbName == "" {
		dbName = DefaultDBName
	}
	return &mgo.DialInfo{
		Addrs: hosts,
		// 先用admin连，失败再用这个库连，见GetDB
		Database:  dbName,
		Username:  user,
		Password:  pwd,
		Direct:    false,
		Timeout:   time.Second * 5,
		PoolLimit: 300, // Session.SetPoolLimit
	}
}
