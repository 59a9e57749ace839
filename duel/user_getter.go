package duel

import (
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/msg_server"
)

type guestUser struct {
	id   string
	name string
}

func (u *guestUser) ID() string   { return u.id }
func (u *guestUser) Name() string { return u.name }

// guestUserGetter 没有账号系统，握手的token就是用户id
type guestUserGetter struct{}

func (getter *guestUserGetter) GetUserByToken(token string) msg_server.AbsUser {
	if token == "" {
		return nil
	}
	return &guestUser{id: token, name: token}
}
