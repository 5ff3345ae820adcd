package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-care-assistant/internal/platform/httpclient"
	"pet-care-assistant/internal/ports/models"
)

var (
	ErrNotConfigured = errors.New("openai client not configured")
	ErrNoChoices     = errors.New("openai: no choices in response")
)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // default https://api.openai.com

	Timeout   time.Duration
	Transport http.RoundTripper
}

type message struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type imageURL struct {
	URL string `json:"url"`
}

type imageContent struct {
	Type     string   `json:"type"`
	ImageURL imageURL `json:"image_url"`
}

type chatRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal,omitempty"`
		} `json:"message"`
	} `json:"choices"`
}

// Client usa chat completions para ambos stages.
type Client struct {
	http  *httpclient.Client
	model string
}

func NewClient(cfg Config) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	model := strings.TrimSpace(cfg.Model)
	if key == "" || model == "" {
		return nil, ErrNotConfigured
	}
	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		base = "https://api.openai.com"
	}

	hc, err := httpclient.New(base,
		httpclient.WithHeader("Authorization", "Bearer "+key),
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithTransport(cfg.Transport),
	)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, model: model}, nil
}

func (c *Client) Name() string { return "openai" }

func (c *Client) DescribeImage(ctx context.Context, req models.VisionRequest) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", req.Image.MIMEType, base64.StdEncoding.EncodeToString(req.Image.Data))

	return c.chat(ctx, []message{{
		Role: "user",
		Content: []any{
			textContent{Type: "text", Text: req.Prompt},
			imageContent{Type: "image_url", ImageURL: imageURL{URL: dataURL}},
		},
	}})
}

func (c *Client) Complete(ctx context.Context, req models.TextRequest) (string, error) {
	msgs := make([]message, 0, 2)
	if len(req.System) > 0 {
		msgs = append(msgs, message{Role: "system", Content: strings.Join(req.System, "\n")})
	}
	msgs = append(msgs, message{Role: "user", Content: req.Prompt})
	return c.chat(ctx, msgs)
}

func (c *Client) chat(ctx context.Context, msgs []message) (string, error) {
	var resp chatResponse
	err := c.http.PostJSON(ctx, "/v1/chat/completions", nil, chatRequest{
		Model:    c.model,
		Messages: msgs,
	}, &resp)
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	m := resp.Choices[0].Message
	if m.Content == "" && m.Refusal != "" {
		return "", fmt.Errorf("openai: model refused: %s", m.Refusal)
	}
	return m.Content, nil
}
