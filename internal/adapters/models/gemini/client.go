package gemini

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
	ErrNotConfigured = errors.New("gemini client not configured")
	ErrNoCandidates  = errors.New("gemini: no candidates in response")
	ErrNoText        = errors.New("gemini: no text part in response")
)

// BlockedError: el modelo se negó a responder (safety, etc).
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("gemini: prompt blocked: %s", e.Reason)
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // default https://generativelanguage.googleapis.com

	Timeout   time.Duration
	Transport http.RoundTripper // tests
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

// tool: por ahora solo google_search (grounding con resultados web).
type tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type generateRequest struct {
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
	Contents          []content `json:"contents"`
	Tools             []tool    `json:"tools,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text,omitempty"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason,omitempty"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

// Client habla con la API REST generateContent. Sirve para ambos stages.
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
		base = "https://generativelanguage.googleapis.com"
	}

	hc, err := httpclient.New(base,
		httpclient.WithHeader("x-goog-api-key", key),
		httpclient.WithTimeout(cfg.Timeout),
		httpclient.WithTransport(cfg.Transport),
	)
	if err != nil {
		return nil, err
	}
	return &Client{http: hc, model: model}, nil
}

func (c *Client) Name() string { return "gemini" }

func (c *Client) DescribeImage(ctx context.Context, req models.VisionRequest) (string, error) {
	body := generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: req.Prompt},
				{InlineData: &inlineData{
					MimeType: req.Image.MIMEType,
					Data:     base64.StdEncoding.EncodeToString(req.Image.Data),
				}},
			},
		}},
	}
	return c.generateContent(ctx, body)
}

func (c *Client) Complete(ctx context.Context, req models.TextRequest) (string, error) {
	body := generateRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: req.Prompt}},
		}},
	}
	if len(req.System) > 0 {
		sys := content{}
		for _, s := range req.System {
			sys.Parts = append(sys.Parts, part{Text: s})
		}
		body.SystemInstruction = &sys
	}
	if req.WebSearch {
		body.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}
	return c.generateContent(ctx, body)
}

func (c *Client) generateContent(ctx context.Context, body generateRequest) (string, error) {
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)

	var resp generateResponse
	if err := c.http.PostJSON(ctx, path, nil, body, &resp); err != nil {
		return "", err
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", &BlockedError{Reason: resp.PromptFeedback.BlockReason}
	}
	if len(resp.Candidates) == 0 {
		return "", ErrNoCandidates
	}

	// Concatenamos todas las partes de texto del primer candidato.
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	if b.Len() == 0 {
		return "", ErrNoText
	}
	return b.String(), nil
}
