package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"guesthouse/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

type MockModel struct {
	mock.Mock
}

func (m *MockModel) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type fakeGenerator struct {
	resp    *llms.ContentResponse
	err     error
	calls   int
	options llms.CallOptions
	prompt  string
	role    schema.ChatMessageType
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	for _, opt := range options {
		opt(&f.options)
	}
	if len(messages) == 1 && len(messages[0].Parts) == 1 {
		f.role = messages[0].Role
		if text, ok := messages[0].Parts[0].(llms.TextContent); ok {
			f.prompt = text.Text
		}
	}
	return f.resp, f.err
}

func TestFallbackReply(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"What are your room rates?", rules[0].reply},
		{"How much does it COST?", rules[0].reply},
		{"Is WiFi available?", rules[1].reply},
		{"internet speed", rules[1].reply},
		{"Do you have parking?", rules[2].reply},
		{"How far from the airport?", rules[3].reply},
		{"What are check-in times?", rules[4].reply},
		{"when can I check in", rules[4].reply},
		{"What facilities do you offer?", rules[5].reply},
		{"any amenities", rules[5].reply},
		{"is there a pool", rules[6].reply},
		{"tell me about accommodation", rules[7].reply},
		{"hello", defaultReply},
		{"", defaultReply},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FallbackReply(tc.message), tc.message)
	}
}

func TestQuickQuestions_ReturnsCopy(t *testing.T) {
	q := QuickQuestions()
	require.Len(t, q, 6)
	q[0] = "changed"
	assert.Equal(t, "What are your room rates?", QuickQuestions()[0])
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("Is there a pool?")
	assert.Contains(t, p, "Kimberley, South Africa")
	assert.Contains(t, p, "check-in 2:00 PM, check-out 10:00 AM")
	assert.Contains(t, p, `Question: "Is there a pool?"`)
}

func TestService_Reply(t *testing.T) {
	t.Run("llm answer", func(t *testing.T) {
		model := new(MockModel)
		model.On("Complete", mock.Anything, BuildPrompt("Hi")).Return("Welcome to Senate Way!", nil)

		reg := prometheus.NewRegistry()
		s := NewService(model, zap.NewNop(), metrics.New(reg))
		r := s.Reply(context.Background(), "  Hi ")

		assert.Equal(t, Reply{Text: "Welcome to Senate Way!", Source: SourceLLM}, r)
		model.AssertExpectations(t)
		count, err := testutil.GatherAndCount(reg, "guesthouse_chatbot_replies_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("llm error", func(t *testing.T) {
		model := new(MockModel)
		model.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("quota exceeded"))

		r := NewService(model, zap.NewNop(), nil).Reply(context.Background(), "Do you have parking?")
		assert.Equal(t, SourceFallback, r.Source)
		assert.Equal(t, rules[2].reply, r.Text)
	})

	t.Run("blank llm answer", func(t *testing.T) {
		model := new(MockModel)
		model.On("Complete", mock.Anything, mock.Anything).Return("   ", nil)

		r := NewService(model, zap.NewNop(), nil).Reply(context.Background(), "pool?")
		assert.Equal(t, SourceFallback, r.Source)
		assert.Equal(t, rules[6].reply, r.Text)
	})

	t.Run("no model", func(t *testing.T) {
		r := NewService(nil, zap.NewNop(), nil).Reply(context.Background(), "hello")
		assert.Equal(t, Reply{Text: defaultReply, Source: SourceFallback}, r)
	})
}

func TestLLMModel_Complete(t *testing.T) {
	gen := &fakeGenerator{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "  We have a pool.  "}}}}
	m := newLLMModel(gen, 0, zap.NewNop())

	text, err := m.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "We have a pool.", text)
	assert.Equal(t, "prompt", gen.prompt)
	assert.Equal(t, schema.ChatMessageTypeHuman, gen.role)
	assert.Equal(t, 0.7, gen.options.Temperature)
	assert.Equal(t, 2048, gen.options.MaxTokens)
}

func TestLLMModel_EmptyAnswer(t *testing.T) {
	m := newLLMModel(&fakeGenerator{resp: &llms.ContentResponse{}}, 0, zap.NewNop())
	_, err := m.Complete(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
}

func TestLLMModel_BreakerOpens(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("unavailable")}
	m := newLLMModel(gen, 0, zap.NewNop())

	for i := 0; i < 6; i++ {
		_, _ = m.Complete(context.Background(), "prompt")
	}
	require.Equal(t, 6, gen.calls)

	_, err := m.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Equal(t, 6, gen.calls)
}

func setupRouter(s *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(s)
	v1 := router.Group("/api/v1")
	h.RegisterRoutes(v1)
	h.RegisterWriteRoutes(v1)
	return router
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Ask(t *testing.T) {
	router := setupRouter(NewService(nil, zap.NewNop(), nil))

	w := performRequest(router, http.MethodPost, "/api/v1/chat", ChatRequest{Message: "Is WiFi available?"})
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool  `json:"success"`
		Data    Reply `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, rules[1].reply, body.Data.Text)
	assert.Equal(t, SourceFallback, body.Data.Source)
}

func TestHandler_AskRequiresMessage(t *testing.T) {
	router := setupRouter(NewService(nil, zap.NewNop(), nil))

	w := performRequest(router, http.MethodPost, "/api/v1/chat", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
}

func TestHandler_GreetingAndQuickQuestions(t *testing.T) {
	router := setupRouter(NewService(nil, zap.NewNop(), nil))

	w := performRequest(router, http.MethodGet, "/api/v1/chat/greeting", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Senate Way Guesthouse assistant")

	w = performRequest(router, http.MethodGet, "/api/v1/chat/quick-questions", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data struct {
			Questions []string `json:"questions"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, QuickQuestions(), body.Data.Questions)
}
