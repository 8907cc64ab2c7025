package deepseek

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

var (
	dataPrefix   = []byte("data: ")
	doneSentinel = []byte("[DONE]")
)

// Stream 按行解码上游的 SSE 增量。上游的 TCP 分片和事件边界无关，
// 所以这里自己攒缓冲，只在遇到换行时切出完整行，残行留到下一次读。
type Stream struct {
	body    io.ReadCloser
	idle    time.Duration
	buf     []byte
	scratch []byte
	err     error
}

func NewStream(body io.ReadCloser, idle time.Duration) *Stream {
	return &Stream{
		body:    body,
		idle:    idle,
		scratch: make([]byte, 4096),
	}
}

// Recv 返回下一段增量文本，流正常结束时返回 io.EOF。
// 空行、[DONE] 标记、非 data 行和解析失败的行都会被静默跳过。
func (s *Stream) Recv() (string, error) {
	for {
		for {
			i := bytes.IndexByte(s.buf, '\n')
			if i < 0 {
				break
			}
			line := bytes.TrimSpace(s.buf[:i])
			s.buf = s.buf[i+1:]
			if delta, ok := parseLine(line); ok {
				return delta, nil
			}
		}
		if s.err != nil {
			return "", s.err
		}
		n, err := s.read()
		if n > 0 {
			s.buf = append(s.buf, s.scratch[:n]...)
		}
		if err != nil {
			// 缓冲里可能还有完整行，先吐完再报结束
			s.err = err
		}
	}
}

func (s *Stream) read() (int, error) {
	if s.idle <= 0 {
		return s.body.Read(s.scratch)
	}
	t := time.AfterFunc(s.idle, func() { s.body.Close() })
	n, err := s.body.Read(s.scratch)
	if !t.Stop() && err != nil {
		err = fmt.Errorf("deepseek: stream idle for %s: %w", s.idle, ErrUpstream)
	}
	return n, err
}

func (s *Stream) Close() error {
	return s.body.Close()
}

type streamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

func parseLine(line []byte) (string, bool) {
	if len(line) == 0 || !bytes.HasPrefix(line, dataPrefix) {
		return "", false
	}
	payload := bytes.TrimSpace(line[len(dataPrefix):])
	if bytes.Equal(payload, doneSentinel) {
		return "", false
	}
	var chunk streamChunk
	if err := json.Unmarshal(payload, &chunk); err != nil {
		return "", false
	}
	if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
		return "", false
	}
	return chunk.Choices[0].Delta.Content, true
}
