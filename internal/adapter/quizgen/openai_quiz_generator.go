package quizgen

import (
	"context"
	"fmt"
	"strings"

	"studyaid/internal/domain"
	"studyaid/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// samplingTemperature keeps the model output structured without making it
// fully deterministic.
const samplingTemperature = 0.4

// OpenAIQuizGenerator implements domain.QuizGenerator on top of the
// langchaingo OpenAI client. It prefers the message-content call style with
// native JSON-object output and falls back to the legacy completion call
// only when the provider rejects JSON mode.
type OpenAIQuizGenerator struct {
	llmClient *openai.LLM
	modelName string
}

// NewOpenAIQuizGenerator creates a new generator. With an empty API key the
// generator is still constructed but every Generate call fails with a
// configuration error; the hosting process stays up either way.
func NewOpenAIQuizGenerator(apiKey, modelName string) (domain.QuizGenerator, error) {
	if modelName == "" {
		return nil, fmt.Errorf("model name cannot be empty")
	}
	gen := &OpenAIQuizGenerator{modelName: modelName}
	if apiKey == "" {
		logger.Get().Warn("OPENAI_API_KEY not configured; quiz generation will fail until it is set")
		return gen, nil
	}

	llm, err := openai.New(openai.WithToken(apiKey), openai.WithModel(modelName))
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}
	gen.llmClient = llm
	return gen, nil
}

// Generate performs one model round-trip and returns the raw response text.
func (g *OpenAIQuizGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if g.llmClient == nil {
		return "", domain.NewConfigError("OPENAI_API_KEY missing")
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, userPrompt),
	}

	resp, err := g.llmClient.GenerateContent(ctx, messages,
		llms.WithTemperature(samplingTemperature),
		llms.WithJSONMode(),
	)
	if err == nil {
		if len(resp.Choices) == 0 {
			return "", domain.NewLLMServiceError(fmt.Errorf("model returned no choices"))
		}
		return strings.TrimSpace(resp.Choices[0].Content), nil
	}

	// Only a recognized "JSON mode unsupported" fault triggers the fallback;
	// auth and network errors must propagate as-is.
	if !isJSONModeUnsupported(err) {
		return "", domain.NewLLMServiceError(err)
	}

	logger.Get().Warn("Model rejected JSON mode, falling back to completion call",
		zap.String("model", g.modelName),
		zap.Error(err))

	out, callErr := g.llmClient.Call(ctx, systemPrompt+"\n\n"+userPrompt,
		llms.WithTemperature(samplingTemperature))
	if callErr != nil {
		return "", domain.NewLLMServiceError(callErr)
	}
	return strings.TrimSpace(out), nil
}

// isJSONModeUnsupported recognizes the fault class a provider raises when it
// does not accept the response_format request field.
func isJSONModeUnsupported(err error) bool {
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "response_format") && !strings.Contains(msg, "json_object") {
		return false
	}
	return strings.Contains(msg, "unsupported") ||
		strings.Contains(msg, "not supported") ||
		strings.Contains(msg, "invalid")
}

var _ domain.QuizGenerator = (*OpenAIQuizGenerator)(nil)
