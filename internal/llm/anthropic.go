package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// EnvAPIKey is read when no API key option is given.
const EnvAPIKey = "ANTHROPIC_API_KEY"

const (
	// DefaultModel serves requests that name no model.
	DefaultModel = "claude-sonnet-4-5-20250929"

	// DefaultMaxTokens bounds a reply. Filter translations are short.
	DefaultMaxTokens = 1024

	// defaultMaxRetries covers 429 and 5xx responses; the SDK backs off.
	defaultMaxRetries = 3
)

// ErrNoAPIKey is returned when neither an option nor the environment
// supplies an API key.
var ErrNoAPIKey = errors.New("llm: " + EnvAPIKey + " not set and no API key provided")

// AnthropicProvider implements Provider with the Anthropic Messages API.
type AnthropicProvider struct {
	client     anthropic.Client
	model      string
	maxTokens  int
	maxRetries int
}

var _ Provider = (*AnthropicProvider)(nil)

// AnthropicOption configures an AnthropicProvider.
type AnthropicOption func(*anthropicConfig)

type anthropicConfig struct {
	apiKey     string
	baseURL    string
	model      string
	maxTokens  int
	maxRetries int
}

// WithAPIKey sets the API key, overriding the environment.
func WithAPIKey(key string) AnthropicOption {
	return func(c *anthropicConfig) { c.apiKey = key }
}

// WithBaseURL points the client at another endpoint, such as a test server.
func WithBaseURL(url string) AnthropicOption {
	return func(c *anthropicConfig) { c.baseURL = url }
}

// WithModel overrides the default model. An empty name is ignored.
func WithModel(model string) AnthropicOption {
	return func(c *anthropicConfig) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxTokens overrides the default reply limit. Non-positive values are
// ignored.
func WithMaxTokens(n int) AnthropicOption {
	return func(c *anthropicConfig) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithMaxRetries sets the retry budget for transient errors.
func WithMaxRetries(n int) AnthropicOption {
	return func(c *anthropicConfig) { c.maxRetries = n }
}

// NewAnthropicProvider creates a provider. It fails with ErrNoAPIKey when no
// key is available.
func NewAnthropicProvider(opts ...AnthropicOption) (*AnthropicProvider, error) {
	cfg := anthropicConfig{
		model:      DefaultModel,
		maxTokens:  DefaultMaxTokens,
		maxRetries: defaultMaxRetries,
	}
	for _, o := range opts {
		o(&cfg)
	}

	apiKey := strings.TrimSpace(cfg.apiKey)
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	}
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	clientOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(cfg.maxRetries),
	}
	if cfg.baseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.baseURL))
	}

	return &AnthropicProvider{
		client:     anthropic.NewClient(clientOpts...),
		model:      cfg.model,
		maxTokens:  cfg.maxTokens,
		maxRetries: cfg.maxRetries,
	}, nil
}

// Complete sends one user message and concatenates the text blocks of the
// reply.
func (p *AnthropicProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	model := p.model
	if req.Model != "" {
		model = req.Model
	}
	maxTokens := p.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic: completion failed: %w", err)
	}

	var content strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			content.WriteString(text.Text)
		}
	}

	return &Response{
		Content: content.String(),
		Model:   string(msg.Model),
		Usage: Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
	}, nil
}

// Model returns the default model.
func (p *AnthropicProvider) Model() string { return p.model }

// MaxTokens returns the default reply limit.
func (p *AnthropicProvider) MaxTokens() int { return p.maxTokens }

// MaxRetries returns the configured retry budget.
func (p *AnthropicProvider) MaxRetries() int { return p.maxRetries }
