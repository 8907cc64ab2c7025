package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// SetHeaders 设置 SSE 必要的响应头，确保浏览器和代理以流式方式处理
func SetHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// WriteContent 写出一帧增量内容：data: {"content":"..."}\n\n
func WriteContent(w io.Writer, content string) error {
	payload, err := json.Marshal(struct {
		Content string `json:"content"`
	}{Content: content})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", payload)
	return err
}

// WriteDone 写出终止帧
func WriteDone(w io.Writer) error {
	_, err := io.WriteString(w, "data: [DONE]\n\n")
	return err
}
