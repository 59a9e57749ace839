package msg_server

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/log"
	"github.com/LeaguesOfHoleHoleShoes/IndianPoker/util"
)

var upgrader = websocket.Upgrader{} // use default options

// msg type
const (
	MsgTypeHandShake = 0x0
)

const (
	sendMsgChanCache = 50
	maxPeerCount     = 1000

	handShakeWait = 8 * time.Second

	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024
)

type AbsUser interface {
	ID() string
}

type userGetter interface {
	GetUserByToken(token string) AbsUser
}

type msgHandler interface {
	Handle(uID string, msgType int, msgID int64, msg []byte) error
}

func NewWsServer(port int, userGetter userGetter, msgHandler msgHandler) *WsServer {
	return &WsServer{
		port:        port,
		userGetter:  userGetter,
		msgHandler:  msgHandler,
		peerSet:     newWsPeerSet(),
		sendMsgChan: make(chan *cMsg, sendMsgChanCache),
	}
}

type WsServer struct {
	port int

	userGetter userGetter
	msgHandler msgHandler

	peerSet *wsPeerSet

	sendMsgChan chan *cMsg
	loopOnce    sync.Once
	httpServer  *http.Server
}

type cMsg struct {
	msgID   int64
	uID     string
	msgType int
	content []byte
	// ping帧不走协议封装
	ping bool
}

// Handler serves the /msg endpoint and starts the send loop on first use
func (s *WsServer) Handler() http.Handler {
	s.loopOnce.Do(func() { go s.loop() })
	mux := http.NewServeMux()
	mux.HandleFunc("/msg", s.handlePeer)
	return mux
}

func (s *WsServer) Run() error {
	s.httpServer = &http.Server{Addr: fmt.Sprintf(":%v", s.port), Handler: s.Handler()}
	log.L.Info("ws server listening", zap.Int("port", s.port))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *WsServer) Stop() error {
	if s.httpServer == nil {
		return errors.New("ws server not running")
	}
	return s.httpServer.Close()
}

func (s *WsServer) loop() {
	for tmp := range s.sendMsgChan {
		s.send(tmp)
	}
}

func (s *WsServer) handlePeer(w http.ResponseWriter, r *http.Request) {
	log.L.Debug("receive new peer", zap.String("remote addr", r.RemoteAddr))
	if n := atomic.LoadInt64(&s.peerSet.peerCount); n >= maxPeerCount {
		log.L.Warn("can't receive new peer, too many peers", zap.Int64("cur count", n), zap.Int("max count", maxPeerCount))
		return
	}

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer c.Close()

	c.SetReadLimit(maxMessageSize)
	// hand shake
	uID, err := s.handleShake(c)
	if uID == "" || err != nil {
		log.L.Debug("hand shake failed", zap.Error(err), zap.String("u id", uID))
		return
	}

	np := newWsPeer(uID, c)
	s.peerSet.addPeer(np)
	defer s.peerSet.removePeer(np)
	np.start()

	c.SetReadDeadline(time.Now().Add(pongWait))
	c.SetPongHandler(func(string) error {
		c.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			log.L.Debug("read msg failed", zap.Error(err))
			return
		}
		if mt != websocket.BinaryMessage {
			log.L.Debug("receive invalid msg", zap.Int("msg type", mt))
			return
		}
		msgType, mID, msgB := UnWrapMsg(message)
		if msgType < 0 {
			log.L.Debug("receive msg shorter than header", zap.String("uid", uID), zap.Int("len", len(message)))
			return
		}
		if err = s.msgHandler.Handle(uID, msgType, mID, msgB); err != nil {
			log.L.Error("handle msg failed", zap.String("uid", uID), zap.Int("msg type", msgType), zap.Error(err))
			return
		}
	}
}

type HandShakeReq struct {
	Token string `json:"token"`
}

func (s *WsServer) handleShake(c *websocket.Conn) (string, error) {
	c.SetReadDeadline(time.Now().Add(handShakeWait))

	var req HandShakeReq
	mt, mb, err := c.ReadMessage()
	if err != nil {
		return "", err
	}
	if mt != websocket.BinaryMessage {
		return "", fmt.Errorf("invalid msg type: %v", mt)
	}

	msgType, _, msgB := UnWrapMsg(mb)
	if msgType != MsgTypeHandShake {
		return "", fmt.Errorf("msg type isn't MsgTypeHandShake, %v", msgType)
	}
	if err = util.ParseJsonFromBytes(msgB, &req); err != nil {
		return "", err
	}
	if req.Token == "" {
		return "", errors.New("empty token")
	}

	u := s.userGetter.GetUserByToken(req.Token)
	if u == nil {
		return "", errors.New("invalid token")
	}
	log.L.Debug("hand shake success", zap.String("u id", u.ID()))
	return u.ID(), nil
}

func (s *WsServer) Send(id string, msgType int, msgID int64, msg []byte) {
	s.sendMsgChan <- &cMsg{msgID: msgID, uID: id, msgType: msgType, content: msg}
}

func (s *WsServer) send(msg *cMsg) {
	p := s.peerSet.getPeer(msg.uID)
	if p == nil {
		log.L.Warn("can't find peer in peer set, msg not send", zap.String("uid", msg.uID))
		return
	}
	// 如果send失败，则会导致peer直接stop，接着就触发conn.close，那么这时上边的ReadMsg会read出err，此次连接的生命周期就此结束
	p.send(msg)
}

func newWsPeerSet() *wsPeerSet {
	return &wsPeerSet{}
}

type wsPeerSet struct {
	// key player id
	peers     sync.Map
	peerCount int64
}

func (ps *wsPeerSet) getPeer(id string) *wsPeer {
	if p, ok := ps.peers.Load(id); ok {
		return p.(*wsPeer)
	}
	return nil
}

// removePeer 只移除p本身，同一用户的新连接不受影响
func (ps *wsPeerSet) removePeer(p *wsPeer) {
	p.stop()
	if cur := ps.getPeer(p.id); cur == p {
		log.L.Debug("remove peer", zap.String("uid", p.id))
		ps.peers.Delete(p.id)
		atomic.AddInt64(&ps.peerCount, -1)
	}
}

func (ps *wsPeerSet) addPeer(p *wsPeer) {
	if preP := ps.getPeer(p.id); preP != nil {
		// 旧连接被挤掉，它的handlePeer会在读失败后退出
		preP.stop()
	} else {
		atomic.AddInt64(&ps.peerCount, 1)
	}
	ps.peers.Store(p.id, p)
}

func newWsPeer(id string, conn *websocket.Conn) *wsPeer {
	return &wsPeer{
		id: id, conn: conn,
		sendChan: make(chan *cMsg, sendMsgChanCache),
		stopChan: make(chan struct{}),
	}
}

type wsPeer struct {
	// user id
	id       string
	conn     *websocket.Conn
	sendChan chan *cMsg
	stopChan chan struct{}
	stopOnce sync.Once
}

func (p *wsPeer) start() {
	go p.loop()
}

// close stop chan 后会调用conn.close
func (p *wsPeer) stop() {
	p.stopOnce.Do(func() { close(p.stopChan) })
}

func (p *wsPeer) loop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()
	for {
		select {
		case msg := <-p.sendChan:
			if err := p.doSend(msg); err != nil {
				log.L.Debug("send msg failed", zap.String("uid", p.id), zap.Error(err))
				return
			}

		case <-ticker.C:
			if err := p.doSend(&cMsg{ping: true}); err != nil {
				return
			}

		case <-p.stopChan:
			log.L.Debug("peer loop returned", zap.String("uid", p.id))
			return
		}
	}
}

func (p *wsPeer) send(msg *cMsg) {
	select {
	case p.sendChan <- msg:
	default:
		log.L.Warn("can't send msg to client", zap.String("uid", p.id), zap.Int("send chan len", len(p.sendChan)))
	}
}

func (p *wsPeer) doSend(msg *cMsg) error {
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if msg.ping {
		return p.conn.WriteMessage(websocket.PingMessage, nil)
	}
	return p.conn.WriteMessage(websocket.BinaryMessage, WrapMsg(msg.msgType, msg.msgID, msg.content))
}
