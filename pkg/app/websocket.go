package app

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/haierkeys/dev-toolbox-service/pkg/code"
	"golang.org/x/sync/singleflight"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	val "github.com/go-playground/validator/v10"
	"github.com/lxzan/gws"
	"go.uber.org/zap"
)

const (
	WebSocketServerPingInterval = 25
	WebSocketServerPingWait     = 40
)

// WebSocketMessage 一条 Type|payload 帧
// Type 是动作名, Data 是竖线之后的原始载荷
type WebSocketMessage struct {
	Type string `json:"type"`
	Data []byte `json:"data"`
}

// WebsocketServerConfig WebSocket 服务配置
type WebsocketServerConfig struct {
	GWSOption       gws.ServerOption
	PingInterval    time.Duration
	PingWait        time.Duration
	Logger          *zap.Logger
	TokenManager    TokenManager
	IsReturnSuccess bool
}

// WebsocketClient 单个 WebSocket 连接及其状态
type WebsocketClient struct {
	conn      *gws.Conn
	done      chan struct{}
	closeOnce sync.Once

	Ctx  *gin.Context
	User *UserEntity
	SF   *singleflight.Group

	logger          *zap.Logger
	isReturnSuccess bool
}

// Done 连接关闭信号, 订阅类处理器用它终止推送协程
func (c *WebsocketClient) Done() <-chan struct{} {
	return c.done
}

// markDone 幂等地关闭 done 通道
func (c *WebsocketClient) markDone() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// BindAndValid WebSocket 版本的参数绑定和校验
func (c *WebsocketClient) BindAndValid(data []byte, obj any) (bool, ValidErrors) {
	var errs ValidErrors

	if err := json.Unmarshal(data, obj); err != nil {
		errs = append(errs, &ValidError{
			Key:     "body",
			Message: "Invalid message format",
		})
		return false, errs
	}

	engine, ok := binding.Validator.Engine().(*val.Validate)
	if !ok {
		return true, nil
	}
	if err := engine.Struct(obj); err != nil {
		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{Key: "body", Message: err.Error()})
			return false, errs
		}

		trans := translatorFromContext(c.Ctx)
		for _, verr := range verrs {
			msg := verr.Error()
			if trans != nil {
				msg = verr.Translate(trans)
			}
			errs = append(errs, &ValidError{Key: verr.Field(), Message: msg})
		}
		return false, errs
	}
	return true, nil
}

// PingLoop 定期发送协议层 Ping
func (c *WebsocketClient) PingLoop(pingInterval time.Duration) {
	ticker := time.NewTicker(pingInterval * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if c.conn == nil {
				return
			}
			if err := c.conn.WritePing(nil); err != nil {
				c.logger.Warn("websocket ping failed", zap.Error(err))
				return
			}
		}
	}
}

// ToResponse 将结果以 Action|JSON 格式发送给客户端
func (c *WebsocketClient) ToResponse(codeObj *code.Code, action ...string) {
	var actionType string
	if len(action) > 0 {
		actionType = action[0]
	}

	content := Res{
		Code:    codeObj.Code(),
		Status:  codeObj.Status(),
		Message: codeObj.Lang.GetMessage(),
		Data:    codeObj.Data(),
	}
	if codeObj.HaveDetails() {
		content.Details = strings.Join(codeObj.Details(), ",")
	}

	if codeObj.HaveDetails() || c.isReturnSuccess || actionType != "" || codeObj.Code() > 200 || codeObj.HaveData() {
		c.send(actionType, content)
	}
	codeObj.Reset()
}

// SendAction 主动推送一帧, 订阅流使用
func (c *WebsocketClient) SendAction(action string, payload any) {
	c.send(action, Res{
		Code:   code.Success.Code(),
		Status: true,
		Data:   payload,
	})
}

func (c *WebsocketClient) send(actionType string, content any) {
	responseBytes, err := json.Marshal(content)
	if err != nil {
		c.logger.Warn("websocket response marshal failed", zap.Error(err))
		return
	}
	if actionType != "" {
		responseBytes = []byte(fmt.Sprintf(`%s|%s`, actionType, string(responseBytes)))
	}
	c.conn.WriteMessage(gws.OpcodeText, responseBytes)
}

// ------------------------------------> WebsocketServer

type ConnStorage = map[*gws.Conn]*WebsocketClient

// WebsocketServer gws 事件回调载体, 维护连接与用户的映射
type WebsocketServer struct {
	handlers        map[string]func(*WebsocketClient, *WebSocketMessage)
	userDataHandler func(*WebsocketClient, int64) (*UserSelectEntity, error)
	clients         ConnStorage
	userClients     map[int64]ConnStorage
	mu              sync.Mutex
	up              *gws.Upgrader
	config          *WebsocketServerConfig
	logger          *zap.Logger
}

func NewWebsocketServer(c WebsocketServerConfig) *WebsocketServer {
	if c.PingInterval == 0 {
		c.PingInterval = WebSocketServerPingInterval
	}
	if c.PingWait == 0 {
		c.PingWait = WebSocketServerPingWait
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	wss := WebsocketServer{
		handlers:    make(map[string]func(*WebsocketClient, *WebSocketMessage)),
		clients:     make(ConnStorage),
		userClients: make(map[int64]ConnStorage),
		config:      &c,
		logger:      c.Logger,
	}
	return &wss
}

func (w *WebsocketServer) Upgrade() {
	w.up = gws.NewUpgrader(w, &w.config.GWSOption)
}

// Run 返回 gin 处理函数, 把 HTTP 连接升级为 WebSocket
func (w *WebsocketServer) Run() gin.HandlerFunc {
	return func(c *gin.Context) {
		w.Upgrade()
		socket, err := w.up.Upgrade(c.Writer, c.Request)
		if err != nil {
			w.logger.Error("websocket upgrade failed", zap.Error(err))
			return
		}
		// gin 在处理函数返回后回收 Context, 升级后的连接存活期更长, 必须持有副本
		client := &WebsocketClient{
			conn:            socket,
			done:            make(chan struct{}),
			Ctx:             c.Copy(),
			SF:              new(singleflight.Group),
			logger:          w.logger,
			isReturnSuccess: w.config.IsReturnSuccess,
		}
		w.AddClient(client)
		go socket.ReadLoop()
	}
}

// Use 注册动作处理器
func (w *WebsocketServer) Use(action string, handler func(*WebsocketClient, *WebSocketMessage)) {
	w.handlers[action] = handler
}

// UserDataSelectUse 注册用户有效性校验回调
func (w *WebsocketServer) UserDataSelectUse(handler func(*WebsocketClient, int64) (*UserSelectEntity, error)) {
	w.userDataHandler = handler
}

// Authorization 处理 Authorization|<token> 帧, 校验通过后绑定 uid
func (w *WebsocketServer) Authorization(c *WebsocketClient, msg *WebSocketMessage) {
	reject := func(err error) {
		w.logger.Warn("websocket authorization failed", zap.Error(err))
		c.ToResponse(code.ErrorInvalidUserAuthToken, "Authorization")
		time.Sleep(2 * time.Second)
		c.conn.WriteClose(1000, []byte("AuthorizationFailed"))
	}

	user, err := w.config.TokenManager.Parse(strings.TrimSpace(string(msg.Data)))
	if err != nil {
		reject(err)
		return
	}

	// 用户有效性强制验证
	if w.userDataHandler != nil {
		userSelect, herr := w.userDataHandler(c, user.UID)
		if userSelect == nil || herr != nil {
			reject(herr)
			return
		}
		user.Nickname = userSelect.Nickname
	}

	c.User = user
	w.AddUserClient(c)

	c.ToResponse(code.Success, "Authorization")
	w.logger.Info("websocket user authorized",
		zap.Int64("uid", user.UID),
		zap.Int("connections", w.UserClientCount(user.UID)))
	go c.PingLoop(w.config.PingInterval)
}

func (w *WebsocketServer) GetClient(conn *gws.Conn) *WebsocketClient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clients[conn]
}

func (w *WebsocketServer) AddClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clients[c.conn] = c
}

func (w *WebsocketServer) RemoveClient(conn *gws.Conn) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.clients, conn)
}

func (w *WebsocketServer) AddUserClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.userClients[c.User.UID] == nil {
		w.userClients[c.User.UID] = make(ConnStorage)
	}
	w.userClients[c.User.UID][c.conn] = c
}

func (w *WebsocketServer) RemoveUserClient(c *WebsocketClient) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.userClients[c.User.UID], c.conn)
	if len(w.userClients[c.User.UID]) == 0 {
		delete(w.userClients, c.User.UID)
	}
}

// UserClientCount 用户当前的连接数
func (w *WebsocketServer) UserClientCount(uid int64) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.userClients[uid])
}

// PushToUser 向用户的全部连接推送一帧
func (w *WebsocketServer) PushToUser(uid int64, action string, payload any) {
	w.mu.Lock()
	clients := make([]*WebsocketClient, 0, len(w.userClients[uid]))
	for _, uc := range w.userClients[uid] {
		clients = append(clients, uc)
	}
	w.mu.Unlock()

	for _, uc := range clients {
		uc.SendAction(action, payload)
	}
}

func (w *WebsocketServer) OnOpen(conn *gws.Conn) {
	_ = conn.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnClose(conn *gws.Conn, err error) {
	c := w.GetClient(conn)
	w.RemoveClient(conn)
	if c == nil {
		return
	}

	c.markDone()
	if c.User != nil {
		w.RemoveUserClient(c)
		w.logger.Info("websocket user left", zap.Int64("uid", c.User.UID))
	}
}

func (w *WebsocketServer) OnPing(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
	_ = socket.WritePong(nil)
}

func (w *WebsocketServer) OnPong(socket *gws.Conn, payload []byte) {
	_ = socket.SetDeadline(time.Now().Add(w.config.PingWait * time.Second))
}

func (w *WebsocketServer) OnMessage(conn *gws.Conn, message *gws.Message) {
	defer message.Close()
	if message.Opcode != gws.OpcodeText {
		return
	}
	if message.Data.String() == "close" {
		conn.WriteClose(1000, []byte("ClientClose"))
		return
	}

	c := w.GetClient(conn)
	if c == nil {
		return
	}

	messageStr := message.Data.String()
	index := strings.Index(messageStr, "|")

	var msg WebSocketMessage
	if index != -1 {
		msg.Type = messageStr[:index]
		msg.Data = []byte(messageStr[index+1:])
	} else {
		w.logger.Warn("websocket frame missing separator")
		return
	}

	if msg.Type == "Authorization" {
		w.Authorization(c, &msg)
		return
	}

	handler, exists := w.handlers[msg.Type]
	if !exists {
		w.logger.Warn("websocket unknown action", zap.String("action", msg.Type))
		c.ToResponse(code.ErrorNotFoundAPI, msg.Type)
		return
	}

	// Ping 之外的动作要求先完成认证
	if c.User == nil && msg.Type != "Ping" {
		c.ToResponse(code.ErrorNotUserAuthToken, msg.Type)
		return
	}

	handler(c, &msg)
}
