package openai

import (
	"context"
	"encoding/json"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/lorehub/relevance/internal/domain"
)

const intentSystemPrompt = `You classify search queries for a knowledge platform.
Respond with JSON only:
{"primary":"implementation|conceptual|examples|philosophy|general",
 "secondary":["..."],
 "concepts":["short concept names"],
 "complexity":1-5,
 "confidence":0.0-1.0}`

// IntentClassifier is the AI-assisted intent strategy. It satisfies
// intent.Strategy: any transport failure or malformed completion reports
// ok=false so the caller falls back to the rule-based result.
type IntentClassifier struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// IntentConfig holds the chat model settings for intent classification.
type IntentConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Logger  *zap.Logger
}

// NewIntentClassifier creates the AI-assisted strategy.
func NewIntentClassifier(cfg *IntentConfig) *IntentClassifier {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &IntentClassifier{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: logger,
	}
}

// intentPayload matches the JSON shape requested from the model.
type intentPayload struct {
	Primary    string   `json:"primary"`
	Secondary  []string `json:"secondary"`
	Concepts   []string `json:"concepts"`
	Complexity int      `json:"complexity"`
	Confidence float64  `json:"confidence"`
}

// TryClassify asks the chat model to classify the query. Never returns an
// error: classification is best-effort and the rules always back it up.
func (c *IntentClassifier) TryClassify(ctx context.Context, query string) (domain.IntentAnalysis, bool) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: intentSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: query},
		},
	})
	if err != nil {
		c.logger.Debug("AI intent classification failed", zap.Error(err))
		return domain.IntentAnalysis{}, false
	}
	if len(resp.Choices) == 0 {
		return domain.IntentAnalysis{}, false
	}

	var payload intentPayload
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		c.logger.Debug("AI intent response not parseable", zap.Error(err))
		return domain.IntentAnalysis{}, false
	}

	analysis := domain.IntentAnalysis{
		Primary:    domain.Intent(payload.Primary),
		Concepts:   payload.Concepts,
		Complexity: payload.Complexity,
		Confidence: payload.Confidence,
	}
	for _, s := range payload.Secondary {
		analysis.Secondary = append(analysis.Secondary, domain.Intent(s))
	}
	return analysis, true
}
