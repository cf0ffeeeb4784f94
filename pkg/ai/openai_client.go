package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// openAI speaks the chat-completions API of any OpenAI-compatible endpoint.
type openAI struct {
	http  *resty.Client
	model string
}

func NewOpenAI(endpoint, key, model string) Client {
	return &openAI{
		http: resty.New().
			SetBaseURL(strings.TrimRight(endpoint, "/")).
			SetAuthToken(key).
			SetTimeout(25 * time.Second),
		model: model,
	}
}

type chatReq struct {
	Model       string    `json:"model"`
	Messages    []chatMsg `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatMsg struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResp struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openAI) Generate(ctx context.Context, prompt string, img *Image) (string, error) {
	var content any = prompt
	if img != nil {
		dataURL := "data:" + img.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
		content = []contentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
		}
	}
	reqBody := chatReq{
		Model: c.model,
		Messages: []chatMsg{
			{Role: "system", Content: "You are an agronomist helping smallholder farmers in Kerala. Answer concisely and practically."},
			{Role: "user", Content: content},
		},
		Temperature: 0.2,
	}

	var out chatResp
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completions: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("chat completions: %s", resp.Status())
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no choices")
	}
	text := strings.TrimSpace(out.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty completion")
	}
	return text, nil
}

func (c *openAI) Configured() bool { return true }
