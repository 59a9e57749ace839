package util

import (
	"crypto/rand"
	"math/big"

	"github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// 解析json字符串
func ParseJson(data string, result interface{}) error {
	return json.Unmarshal([]byte(data), result)
}

// json转字符串
func StringifyJson(data interface{}) string {
	b, _ := json.Marshal(&data)
	return string(b)
}

// 解析json bytes
func ParseJsonFromBytes(data []byte, result interface{}) error {
	return json.Unmarshal(data, result)
}

// json bytes转字符串
func StringifyJsonToBytes(data interface{}) []byte {
	b, _ := json.Marshal(&data)
	return b
}

func StringifyJsonToBytesWithErr(data interface{}) ([]byte, error) {
	return json.Marshal(&data)
}

// RandANum returns a uniform number in [0, limit) read from crypto/rand.
// A failed read is logged and yields 0, callers only use it for shuffling.
func RandANum(limit int) int {
	if limit <= 1 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(limit)))
	if err != nil {
		log.L.Error("read rand bytes failed", zap.Int("limit", limit), zap.Error(err))
		return 0
	}
	return int(n.Int64())
}
