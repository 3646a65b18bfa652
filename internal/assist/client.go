package assist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/pdfdock/pdfdock/internal/config"
)

type client struct {
	http        *http.Client
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	logger      *slog.Logger
}

// New creates an assistant over the configured chat-completions endpoint.
// Without an API key the returned System answers every call with ErrDisabled.
func New(cfg config.AssistConfig, logger *slog.Logger) System {
	log := logger.With("system", "assist")
	if !cfg.Enabled() {
		log.Warn("assistant disabled: no API key configured")
		return disabled{}
	}

	return &client{
		http:        &http.Client{Timeout: cfg.TimeoutDuration()},
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey(),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      log,
	}
}

func (c *client) Enabled() bool { return true }

func (c *client) Summarize(ctx context.Context, text string) (string, error) {
	return c.complete(ctx, []Message{
		{Role: RoleSystem, Content: "You are a helpful assistant that summarizes text. Provide concise, informative summaries."},
		{Role: RoleUser, Content: fmt.Sprintf("Please summarize the following text:\n\n%s", text)},
	}, 500)
}

func (c *client) Answer(ctx context.Context, question, docContext string) (string, error) {
	return c.complete(ctx, []Message{
		{Role: RoleSystem, Content: "You are a helpful assistant that answers questions based on the provided context. If the answer cannot be found in the context, say so."},
		{Role: RoleUser, Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", docContext, question)},
	}, 1000)
}

func (c *client) Chat(ctx context.Context, messages []Message, docContext string) (string, error) {
	system := "You are a helpful AI assistant for PDF documents."
	if docContext != "" {
		system = fmt.Sprintf("You are an AI assistant helping users understand their PDF documents. Use this context to answer questions: %s", docContext)
	}

	conversation := append([]Message{{Role: RoleSystem, Content: system}}, messages...)
	return c.complete(ctx, conversation, 1024)
}

func (c *client) Command(ctx context.Context, utterance string) (string, error) {
	return c.complete(ctx, []Message{
		{Role: RoleSystem, Content: "You are a helpful assistant that processes voice commands. Respond with clear, actionable instructions."},
		{Role: RoleUser, Content: fmt.Sprintf("Process this voice command: %s", utterance)},
	}, 500)
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *client) complete(ctx context.Context, messages []Message, maxTokens int) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: c.temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrUpstream, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}

	if res.StatusCode != http.StatusOK {
		msg := res.Status
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		c.logger.Error("chat completion failed", "status", res.StatusCode, "error", msg)
		return "", fmt.Errorf("%w: %s", ErrUpstream, msg)
	}

	if len(parsed.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return parsed.Choices[0].Message.Content, nil
}

// disabled is the no-key implementation.
type disabled struct{}

func (disabled) Enabled() bool { return false }

func (disabled) Summarize(context.Context, string) (string, error) {
	return "", ErrDisabled
}

func (disabled) Answer(context.Context, string, string) (string, error) {
	return "", ErrDisabled
}

func (disabled) Chat(context.Context, []Message, string) (string, error) {
	return "", ErrDisabled
}

func (disabled) Command(context.Context, string) (string, error) {
	return "", ErrDisabled
}
