// Package deepseek 封装 DeepSeek Chat Completions 接口的非流式与流式调用
package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var (
	// ErrNotConfigured API Key 缺失或还是占位值
	ErrNotConfigured = errors.New("deepseek: api key not configured")
	// ErrUpstream 上游返回非 2xx
	ErrUpstream = errors.New("deepseek: upstream request failed")
)

const placeholderKey = "your-deepseek-api-key"

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Stream      bool      `json:"stream,omitempty"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// LLMClient 是优化器依赖的最小接口，测试里可以替换成假实现
type LLMClient interface {
	Configured() bool
	CompleteOnce(ctx context.Context, msgs []Message, temperature float64, maxTokens int) (string, error)
	CompleteStreaming(ctx context.Context, msgs []Message, temperature float64, maxTokens int) (*Stream, error)
}

type Client struct {
	baseURL      string
	apiKey       string
	model        string
	idleTimeout  time.Duration
	httpClient   *http.Client
	streamClient *http.Client
}

var _ LLMClient = (*Client)(nil)

// NewClient timeout 约束非流式请求的整个来回。流式连接不能设整体超时，
// Client.Timeout 会连响应体一起掐断还在生成的流，所以流式走单独的客户端，
// timeout 只用来限制等响应头，连上之后的活性由 idleTimeout 看护。
func NewClient(baseURL, apiKey, model string, timeout, idleTimeout time.Duration) *Client {
	st := http.DefaultTransport.(*http.Transport).Clone()
	st.ResponseHeaderTimeout = timeout
	return &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		model:        model,
		idleTimeout:  idleTimeout,
		httpClient:   &http.Client{Timeout: timeout},
		streamClient: &http.Client{Transport: st},
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != "" && c.apiKey != placeholderKey
}

// CompleteOnce 发起一次非流式补全，返回首个 choice 的内容
func (c *Client) CompleteOnce(ctx context.Context, msgs []Message, temperature float64, maxTokens int) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	resp, err := c.do(ctx, c.httpClient, &chatRequest{
		Model:       c.model,
		Messages:    msgs,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("deepseek: decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", nil
	}
	return cr.Choices[0].Message.Content, nil
}

// CompleteStreaming 发起流式补全，调用方负责 Close 返回的 Stream
func (c *Client) CompleteStreaming(ctx context.Context, msgs []Message, temperature float64, maxTokens int) (*Stream, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	resp, err := c.do(ctx, c.streamClient, &chatRequest{
		Model:       c.model,
		Messages:    msgs,
		Stream:      true,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return nil, err
	}
	return NewStream(resp.Body, c.idleTimeout), nil
}

func (c *Client) do(ctx context.Context, hc *http.Client, cr *chatRequest) (*http.Response, error) {
	body, err := json.Marshal(cr)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("deepseek: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		zap.L().Error("deepseek request failed",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", errBody))
		return nil, ErrUpstream
	}
	return resp, nil
}
