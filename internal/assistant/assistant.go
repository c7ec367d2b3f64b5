package assistant

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const systemPrompt = `You are "Suds," a friendly and expert laundry assistant for the Wizzz Laundry app.
Your goal is to help users with stain removal, fabric care, sorting clothes, and understanding care labels.

Guidelines:
1. Be concise and practical. Users are likely standing in front of their washing machine.
2. Use bullet points for steps.
3. If a stain is difficult, suggest professional cleaning but give a home remedy first if safe.
4. Keep a light, clean, and helpful tone.
5. Do not answer questions unrelated to laundry, cleaning, or clothing care.`

const (
	missingKeyMessage = "API Key is missing. Please configure it to use the AI assistant."
	apologyMessage    = "Sorry, I'm having trouble connecting to my laundry knowledge base right now. Please try again later."
	emptyReplyMessage = "I couldn't generate a response. Please try again."
)

type Config struct {
	APIURL string
	APIKey string
	Model  string
}

// Client asks a chat-completions endpoint laundry questions. It fails open:
// every failure mode degrades to a canned message, never an error, so the
// conversation surface stays usable without a backend.
type Client struct {
	cfg     Config
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	return &Client{
		cfg:  cfg,
		http: resty.New().SetTimeout(30 * time.Second),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "assistant",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
		logger: logger,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Ask returns the assistant's answer, or a canned message when no key is
// configured or the backend is unreachable.
func (c *Client) Ask(ctx context.Context, question string) string {
	if c.cfg.APIKey == "" {
		return missingKeyMessage
	}

	answer, err := c.breaker.Execute(func() (interface{}, error) {
		return c.complete(ctx, question)
	})
	if err != nil {
		c.logger.Warn("assistant request failed", zap.Error(err))
		return apologyMessage
	}

	text := answer.(string)
	if text == "" {
		return emptyReplyMessage
	}
	return text
}

func (c *Client) complete(ctx context.Context, question string) (string, error) {
	var result chatResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.cfg.APIKey).
		SetBody(chatRequest{
			Model: c.cfg.Model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: question},
			},
		}).
		SetResult(&result).
		SetError(&result).
		Post(c.cfg.APIURL)
	if err != nil {
		return "", err
	}
	if resp.IsError() {
		msg := resp.Status()
		if result.Error != nil {
			msg = result.Error.Message
		}
		return "", fmt.Errorf("completion API error: %s", msg)
	}
	if len(result.Choices) == 0 {
		return "", nil
	}
	return result.Choices[0].Message.Content, nil
}
