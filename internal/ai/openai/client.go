package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/spigell/devmatch/internal/ai"
	"github.com/spigell/devmatch/internal/errs"
	"github.com/spigell/devmatch/internal/logger"
	"github.com/spigell/devmatch/internal/utils"
)

const (
	DefaultModel       = "gpt-3.5-turbo"
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.3
	defaultLogLength   = 200
)

type Config struct {
	APIKey    string
	Model     string
	MaxTokens int64
	// Temperature is nil for DefaultTemperature; zero is honoured.
	Temperature *float64
	// BaseURL overrides the API endpoint. Empty means the public API.
	BaseURL      string
	MaxRetries   int
	MaxLogLength int
}

// Generator answers prompts through the chat completions API.
type Generator struct {
	client      *openai.Client
	model       string
	maxTokens   int64
	temperature float64
	maxLogLen   int
	logger      *zap.Logger
}

var _ ai.Generator = (*Generator)(nil)

func NewGenerator(log *zap.Logger, cfg Config) (*Generator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errs.Misconfigured(ai.ProviderOpenAI, "new generator", errors.New("api key is required"))
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(opts...)

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	temperature := DefaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	logLen := cfg.MaxLogLength
	if logLen <= 0 {
		logLen = defaultLogLength
	}

	return &Generator{
		client:      &client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		maxLogLen:   logLen,
		logger:      logger.WithCommonFields(log, ai.ProviderOpenAI, model),
	}, nil
}

func (g *Generator) GenerateContent(ctx context.Context, system, prompt string) (string, error) {
	if g == nil || g.client == nil {
		return "", errors.New("openai generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system = strings.TrimSpace(system); system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(prompt))

	g.logger.Debug("openai chat completion request",
		zap.String("prompt_preview", utils.TruncateForLog(prompt, g.maxLogLen)),
	)

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(g.model),
		Messages:    messages,
		MaxTokens:   openai.Int(g.maxTokens),
		Temperature: openai.Float(g.temperature),
	})
	if err != nil {
		status := 0
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			status = apiErr.StatusCode
		}
		return "", errs.Upstream(ai.ProviderOpenAI, "chat completion", status, err)
	}

	if len(resp.Choices) == 0 {
		return "", errs.Upstream(ai.ProviderOpenAI, "chat completion", 0, errors.New("no choices in response"))
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errs.Upstream(ai.ProviderOpenAI, "chat completion", 0, errors.New("empty response"))
	}

	g.logger.Debug("openai chat completion response",
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
		zap.String("response_preview", utils.TruncateForLog(text, g.maxLogLen)),
	)

	return text, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

func (g *Generator) Provider() string {
	return ai.ProviderOpenAI
}
