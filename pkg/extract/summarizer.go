package extract

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/mailscope/pkg/config"
)

// Summarizer condenses email bodies through an OpenAI-compatible service.
// Without an API key it degrades to a fixed-length prefix of the input.
type Summarizer struct {
	client    *openai.Client
	config    config.LLMConfig
	systemMsg string
}

// default system prompt for email body extraction
const defaultSystemPrompt = `Extract only the essential teaching content from the email text.
Return the main body of the message exactly as written, with greetings, boilerplate
and signatures before and after it removed. Do not change the actual content in any
way, removing the surroundings is the whole task.`

// NewSummarizer creates a new summarizer. An empty API key disables the
// backend and enables the prefix fallback.
func NewSummarizer(cfg config.LLMConfig) *Summarizer {
	systemMsg := cfg.SystemPrompt
	if systemMsg == "" {
		systemMsg = defaultSystemPrompt
	}

	s := &Summarizer{config: cfg, systemMsg: systemMsg}
	if cfg.APIKey != "" {
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		if cfg.Endpoint != "" {
			clientConfig.BaseURL = cfg.Endpoint
		}
		s.client = openai.NewClientWithConfig(clientConfig)
	}
	return s
}

// Summarize returns the condensed form of text. The input is never mutated
// locally, the service's own transformation is the only one applied.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	if s.client == nil {
		// graceful degradation without a configured backend
		runes := []rune(text)
		if len(runes) > s.config.FallbackLength {
			runes = runes[:s.config.FallbackLength]
		}
		return string(runes), nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       s.config.Model,
		Temperature: float32(s.config.Temperature),
		MaxTokens:   s.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: s.systemMsg},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	}

	var result string
	retrier := repeater.NewBackoff(3, 500*time.Millisecond, repeater.WithMaxDelay(5*time.Second))
	err := retrier.Do(ctx, func() error {
		resp, err := s.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("no response from llm")
		}
		result = resp.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("summarize request failed: %w", err)
	}

	return result, nil
}
