package sse

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ServeSSE 处理通知订阅的 SSE 连接
// @Summary 订阅服务器事件流（SSE）
// @Description 建立 SSE 长连接以接收服务端推送的事件，例如自己的提示词被收藏。通过查询参数 `userid` 指定订阅的用户 ID，如 `/events?userid=12345`。
// @Tags SSE
// @Produce text/event-stream
// @Param userid query string true "User ID to subscribe"
// @Success 200 {string} string "event stream"
// @Failure 400 {string} string "missing userid"
// @Failure 500 {string} string "server error"
// @Router /events [get]
func ServeSSE(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("userid"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "missing userid")
		return
	}

	h := GetHub()
	if h == nil {
		c.String(http.StatusInternalServerError, "sse hub not initialized")
		return
	}

	SetHeaders(c.Writer)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.String(http.StatusInternalServerError, "streaming unsupported")
		return
	}

	// 每个连接专用的消息通道（缓冲 16），由本 handler 创建和关闭
	msgCh := make(chan []byte, 16)
	h.Subscribe(msgCh, userID)
	defer h.Unsubscribe(msgCh, userID)

	notify := c.Request.Context().Done()
	// 发送一个注释作为初次握手 / 保活 ping，部分代理需要保持连接活跃
	fmt.Fprintf(c.Writer, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-notify:
			return
		case msg := <-msgCh:
			fmt.Fprintf(c.Writer, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
