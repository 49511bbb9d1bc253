package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

const (
	DefaultModel = "gemini-2.0-flash-exp"

	temperature = 0.7
	maxTokens   = 2048
)

var ErrEmptyAnswer = errors.New("model returned no text")

// Model answers a single prompt.
type Model interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// LLMModel sends prompts through a langchaingo provider behind a circuit
// breaker.
type LLMModel struct {
	llm     contentGenerator
	breaker *gobreaker.CircuitBreaker
	timeout time.Duration
}

// NewGeminiModel builds a Google AI backed model.
func NewGeminiModel(ctx context.Context, apiKey, model string, timeout time.Duration, log *zap.Logger) (*LLMModel, error) {
	if model == "" {
		model = DefaultModel
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create googleai client: %w", err)
	}
	return newLLMModel(llm, timeout, log), nil
}

func newLLMModel(llm contentGenerator, timeout time.Duration, log *zap.Logger) *LLMModel {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	log = log.Named("chatbot.model")
	return &LLMModel{
		llm:     llm,
		timeout: timeout,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "llm",
			Timeout: time.Minute,
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Warn("circuit breaker state changed",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()),
				)
			},
		}),
	}
}

func (m *LLMModel) Complete(ctx context.Context, prompt string) (string, error) {
	out, err := m.breaker.Execute(func() (interface{}, error) {
		ctx, cancel := context.WithTimeout(ctx, m.timeout)
		defer cancel()

		resp, err := m.llm.GenerateContent(ctx,
			[]llms.MessageContent{llms.TextParts(schema.ChatMessageTypeHuman, prompt)},
			llms.WithTemperature(temperature),
			llms.WithMaxTokens(maxTokens),
		)
		if err != nil {
			return nil, err
		}
		if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
			return nil, ErrEmptyAnswer
		}
		text := strings.TrimSpace(resp.Choices[0].Content)
		if text == "" {
			return nil, ErrEmptyAnswer
		}
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}
