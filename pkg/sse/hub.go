package sse

import "encoding/json"

// Hub 管理按用户订阅的 SSE 通知通道。
//
// 收藏等事件发生时，业务层通过 NotifyUser 把消息推给作者的所有在线连接。
// subscribe/unsubscribe/publish 三个控制通道把对 users 的修改收敛到
// Run 所在的单个 goroutine 里，外部并发调用不需要加锁。
type Hub struct {
	// users 保存 userID -> 客户端 channel 集合。
	// channel 由 SSE handler 创建并负责关闭，Hub 只往里发消息。
	users map[int64]map[chan []byte]bool

	subscribe   chan subscription
	unsubscribe chan subscription
	publish     chan userMessage
}

type subscription struct {
	ch     chan []byte
	userID int64
}

type userMessage struct {
	userID int64
	msg    []byte
}

// Notification 推送给前端的事件体
type Notification struct {
	Type         string `json:"type"`
	PromptID     int64  `json:"promptId,string"`
	PromptTitle  string `json:"promptTitle"`
	FromUserName string `json:"fromUserName"`
	CreatedAt    int64  `json:"createdAt"`
}

var defaultHub *Hub

// NewHub publish 通道带缓冲（100），短时突发的发布不会阻塞业务层
func NewHub() *Hub {
	return &Hub{
		users:       make(map[int64]map[chan []byte]bool),
		subscribe:   make(chan subscription),
		unsubscribe: make(chan subscription),
		publish:     make(chan userMessage, 100),
	}
}

// SetDefaultHub 设置包级默认 hub
func SetDefaultHub(h *Hub) {
	defaultHub = h
}

// GetHub 返回默认 hub，未初始化时为 nil
func GetHub() *Hub {
	return defaultHub
}

// Run 启动事件循环，应在单独的 goroutine 中运行：
//
//	hub := sse.NewHub()
//	go hub.Run()
func (h *Hub) Run() {
	for {
		select {
		case s := <-h.subscribe:
			subs, ok := h.users[s.userID]
			if !ok {
				subs = make(map[chan []byte]bool)
				h.users[s.userID] = subs
			}
			subs[s.ch] = true
		case s := <-h.unsubscribe:
			if subs, ok := h.users[s.userID]; ok {
				delete(subs, s.ch)
				if len(subs) == 0 {
					delete(h.users, s.userID)
				}
			}
		case um := <-h.publish:
			for ch := range h.users[um.userID] {
				select {
				case ch <- um.msg:
				default:
					// 客户端不读就丢弃
				}
			}
		}
	}
}

// NotifyUser 把事件序列化后发给该用户的所有订阅连接
func (h *Hub) NotifyUser(userID int64, n *Notification) {
	msg, err := json.Marshal(n)
	if err != nil {
		return
	}
	h.publish <- userMessage{userID: userID, msg: msg}
}

// Subscribe 注册一个订阅通道。调用方应提供有缓冲的 channel（例如缓冲 16），
// 不再使用时负责取消订阅并关闭，Hub 不会替调用方关闭。
func (h *Hub) Subscribe(ch chan []byte, userID int64) {
	h.subscribe <- subscription{ch: ch, userID: userID}
}

// Unsubscribe 取消订阅
func (h *Hub) Unsubscribe(ch chan []byte, userID int64) {
	h.unsubscribe <- subscription{ch: ch, userID: userID}
}
