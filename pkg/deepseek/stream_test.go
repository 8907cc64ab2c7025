package deepseek

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkReader 按固定块大小吐数据，模拟和事件边界无关的 TCP 分片
type chunkReader struct {
	data []byte
	size int
	pos  int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	n := r.size
	if n > len(p) {
		n = len(p)
	}
	if r.pos+n > len(r.data) {
		n = len(r.data) - r.pos
	}
	copy(p, r.data[r.pos:r.pos+n])
	r.pos += n
	return n, nil
}

const upstreamPayload = "data: {\"choices\":[{\"delta\":{\"content\":\"你好\"}}]}\n\n" +
	": keep-alive\n" +
	"data: {\"choices\":[{\"delta\":{\"content\":\"，世界\"}}]}\n\n" +
	"data: this is not json\n\n" +
	"data: {\"choices\":[{\"delta\":{}}]}\n\n" +
	"data: {\"choices\":[{\"delta\":{\"content\":\"！\"}}]}\n\n" +
	"data: [DONE]\n\n"

func collect(t *testing.T, s *Stream) []string {
	t.Helper()
	var deltas []string
	for {
		delta, err := s.Recv()
		if err == io.EOF {
			return deltas
		}
		require.NoError(t, err)
		deltas = append(deltas, delta)
	}
}

func TestStreamRecv(t *testing.T) {
	s := NewStream(io.NopCloser(&chunkReader{data: []byte(upstreamPayload), size: len(upstreamPayload)}), 0)
	assert.Equal(t, []string{"你好", "，世界", "！"}, collect(t, s))
}

// 同一份字节流不管被切成多碎，解出来的增量序列必须一样
func TestStreamRecvChunkingInvariance(t *testing.T) {
	for size := 1; size <= 9; size++ {
		s := NewStream(io.NopCloser(&chunkReader{data: []byte(upstreamPayload), size: size}), 0)
		assert.Equal(t, []string{"你好", "，世界", "！"}, collect(t, s), "chunk size %d", size)
	}
}

func TestStreamRecvEOFAfterDone(t *testing.T) {
	s := NewStream(io.NopCloser(&chunkReader{data: []byte(upstreamPayload), size: 7}), 0)
	collect(t, s)
	// 结束后再读还是 EOF
	_, err := s.Recv()
	assert.Equal(t, io.EOF, err)
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{"content delta", `data: {"choices":[{"delta":{"content":"abc"}}]}`, "abc", true},
		{"blank", "", "", false},
		{"done sentinel", "data: [DONE]", "", false},
		{"comment line", ": keep-alive", "", false},
		{"event line", "event: message", "", false},
		{"malformed json", "data: {broken", "", false},
		{"empty delta", `data: {"choices":[{"delta":{}}]}`, "", false},
		{"no choices", `data: {"choices":[]}`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseLine([]byte(tt.line))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompleteOnce(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek-chat", req.Model)
		assert.False(t, req.Stream)
		assert.InDelta(t, 0.3, req.Temperature, 1e-9)
		assert.Equal(t, 800, req.MaxTokens)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "优化后的提示词"}},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "deepseek-chat", 0, 0)
	got, err := c.CompleteOnce(context.Background(), []Message{{Role: "user", Content: "hi"}}, 0.3, 800)
	require.NoError(t, err)
	assert.Equal(t, "优化后的提示词", got)
}

func TestCompleteOnceUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "bad-key", "deepseek-chat", 0, 0)
	_, err := c.CompleteOnce(context.Background(), nil, 0.3, 800)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestCompleteStreaming(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Stream)

		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, upstreamPayload)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "deepseek-chat", 0, 0)
	s, err := c.CompleteStreaming(context.Background(), []Message{{Role: "user", Content: "hi"}}, 0.7, 2048)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, []string{"你好", "，世界", "！"}, collect(t, s))
}

// 整体超时只管非流式调用，生成时间超过它的流不能被半路掐断
func TestCompleteStreamingOutlivesRequestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"第一段\"}}]}\n\n")
		w.(http.Flusher).Flush()
		time.Sleep(400 * time.Millisecond)
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"第二段\"}}]}\n\ndata: [DONE]\n\n")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", "deepseek-chat", 100*time.Millisecond, 5*time.Second)
	s, err := c.CompleteStreaming(context.Background(), []Message{{Role: "user", Content: "hi"}}, 0.7, 2048)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, []string{"第一段", "第二段"}, collect(t, s))
}

func TestNotConfigured(t *testing.T) {
	for _, key := range []string{"", "your-deepseek-api-key"} {
		c := NewClient("http://127.0.0.1:1", key, "deepseek-chat", 0, 0)
		assert.False(t, c.Configured())
		_, err := c.CompleteOnce(context.Background(), nil, 0.3, 800)
		assert.ErrorIs(t, err, ErrNotConfigured)
		_, err = c.CompleteStreaming(context.Background(), nil, 0.7, 2048)
		assert.ErrorIs(t, err, ErrNotConfigured)
	}
}
