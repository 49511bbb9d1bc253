// Package chatbot answers guest questions about the guesthouse, through an
// LLM when one is configured and from a keyword table otherwise.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	"guesthouse/internal/metrics"

	"go.uber.org/zap"
)

const (
	SourceLLM      = "llm"
	SourceFallback = "fallback"
)

const promptTemplate = `You are a helpful assistant for a guesthouse in Kimberley, South Africa.
Answer briefly (<=120 words), friendly, and encourage contacting us for bookings.
Facts: 10 rooms (R400–R1600), free WiFi, free parking, pool, check-in 2:00 PM, check-out 10:00 AM, near airport (6 km) and malls (1.9 km).
Question: %q`

type Reply struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

type Service struct {
	model   Model
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewService accepts a nil model; every reply then comes from the keyword
// table.
func NewService(model Model, log *zap.Logger, m *metrics.Metrics) *Service {
	return &Service{model: model, log: log.Named("chatbot"), metrics: m}
}

// Reply never fails: model errors and empty answers fall back to the
// keyword table.
func (s *Service) Reply(ctx context.Context, message string) Reply {
	message = strings.TrimSpace(message)

	if s.model != nil {
		text, err := s.model.Complete(ctx, BuildPrompt(message))
		if err == nil && strings.TrimSpace(text) != "" {
			s.metrics.ChatReply(SourceLLM)
			return Reply{Text: text, Source: SourceLLM}
		}
		s.log.Warn("llm reply failed, using fallback", zap.Error(err))
	}

	s.metrics.ChatReply(SourceFallback)
	return Reply{Text: FallbackReply(message), Source: SourceFallback}
}

func BuildPrompt(question string) string {
	return fmt.Sprintf(promptTemplate, question)
}
