package relevance

import (
	"go.uber.org/zap"

	"github.com/lorehub/relevance/internal/scoring"
)

// Option configures the Engine.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	addrs    []string
	username string
	password string
	db       int

	openAIKey     string
	openAIBaseURL string
	model         string
	dimensions    int

	aiIntent      bool
	intentModel   string
	intentAPIKey  string
	intentBaseURL string

	weights scoring.Weights

	logger *zap.Logger
}

// WithRedis configures the content store and embedding cache connection.
func WithRedis(addr, username, password string, db int) Option {
	return optionFunc(func(c *engineConfig) {
		c.addrs = []string{addr}
		c.username = username
		c.password = password
		c.db = db
	})
}

// WithOpenAI sets the embedding provider. Without it the engine runs
// lexical-only.
func WithOpenAI(apiKey, baseURL, model string, dimensions int) Option {
	return optionFunc(func(c *engineConfig) {
		c.openAIKey = apiKey
		c.openAIBaseURL = baseURL
		c.model = model
		c.dimensions = dimensions
	})
}

// WithAIIntent enables the AI-assisted intent classification pass. The
// rule-based classifier remains the fallback.
func WithAIIntent(apiKey, baseURL, model string) Option {
	return optionFunc(func(c *engineConfig) {
		c.aiIntent = true
		c.intentAPIKey = apiKey
		c.intentBaseURL = baseURL
		c.intentModel = model
	})
}

// WithScoring overrides the relevance blend. Zero fields keep the documented
// defaults.
func WithScoring(w scoring.Weights) Option {
	return optionFunc(func(c *engineConfig) {
		c.weights = w
	})
}

// WithLogger enables structured logging for engine operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *engineConfig) {
		c.logger = l
	})
}
