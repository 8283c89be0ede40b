package anthropic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"chef-bonbon/internal/infrastructure/config"
	"chef-bonbon/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const apiVersion = "2023-06-01"

// Client Anthropic Messages API 客戶端
// 每次呼叫只發出一次請求，不在這層重試；重試策略屬於上層
type Client struct {
	config *config.Config
	client *resty.Client
}

// message 對話消息
type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// request Messages API 請求
type request struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	Messages    []message `json:"messages"`
}

// response Messages API 回應
type response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient 創建新的 Anthropic 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Anthropic.BaseURL).
		SetTimeout(cfg.Anthropic.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-api-key", cfg.Anthropic.APIKey).
		SetHeader("anthropic-version", apiVersion)

	return &Client{
		config: cfg,
		client: client,
	}
}

// GenerateText 送出 prompt 並取回生成文字
// 失敗一律回傳分類過的 GenerationFailure
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.config.Anthropic.APIKey == "" {
		return "", common.NewUpstreamFailure(common.FailureUpstreamAuth,
			"anthropic api key is missing", nil)
	}

	req := &request{
		Model:       c.config.Anthropic.Model,
		MaxTokens:   c.config.Anthropic.MaxTokens,
		Temperature: c.config.Anthropic.Temperature,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	}

	common.LogDebug("Sending request to Anthropic",
		zap.String("model", req.Model),
		zap.Int("prompt_length", len(prompt)),
	)

	start := time.Now()
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post("/messages")

	if err != nil {
		// 超時與取消歸為 Timeout，其餘網路層錯誤視為上游服務錯誤
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", common.NewUpstreamFailure(common.FailureTimeout,
				"anthropic request timed out", err)
		}
		return "", common.NewUpstreamFailure(common.FailureUpstreamRateOrServer,
			"failed to reach anthropic", err)
	}

	if resp.StatusCode() != http.StatusOK {
		kind := common.FailureUpstreamRateOrServer
		if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
			kind = common.FailureUpstreamAuth
		}
		// 原始回應內容只進日誌，不進錯誤訊息
		common.LogError("Anthropic returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("model", req.Model),
			zap.String("response", resp.String()),
		)
		return "", common.NewUpstreamFailure(kind,
			fmt.Sprintf("anthropic returned status %d", resp.StatusCode()), nil)
	}

	var result response
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		common.LogError("Failed to parse Anthropic response",
			zap.Error(err),
			zap.String("model", req.Model),
		)
		return "", common.NewUpstreamFailure(common.FailureUpstreamMalformed,
			"failed to parse anthropic response", err)
	}

	if len(result.Content) == 0 || result.Content[0].Text == "" {
		common.LogError("Anthropic response missing text content",
			zap.String("model", req.Model),
		)
		return "", common.NewUpstreamFailure(common.FailureUpstreamMalformed,
			"anthropic returned no text", nil)
	}

	common.LogInfo("Successfully generated text from Anthropic",
		zap.String("model", req.Model),
		zap.Int("content_length", len(result.Content[0].Text)),
		zap.Duration("耗時", time.Since(start)),
	)

	return result.Content[0].Text, nil
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
