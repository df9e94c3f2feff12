package llm

import (
	"context"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "claude-sonnet-4-5-20250929"

// Client defines the single generative operation the pipeline needs.
// Each pipeline stage makes exactly one blocking call through this interface.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// CompletionRequest carries one system instruction + user prompt pair
// with an output token budget.
type CompletionRequest struct {
	System    string
	Prompt    string
	MaxTokens int64
	Stage     string // label for cost attribution logs only
}

// CompletionResponse is the generated text plus truncation and usage info.
type CompletionResponse struct {
	Text      string
	Truncated bool // output hit the MaxTokens ceiling before finishing
	Usage     TokenUsage
}

// TokenUsage tracks token consumption for one call.
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
}

// modelPricing holds per-million-token pricing for known models.
var modelPricing = map[string][2]float64{
	// model → {input $/MTok, output $/MTok}
	"claude-haiku-4-5-20251001":  {0.80, 4.00},
	"claude-sonnet-4-5-20250929": {3.00, 15.00},
}

// EstimateCost computes an estimated cost in USD from a TokenUsage and model ID.
// Returns 0 for unknown models.
func (u TokenUsage) EstimateCost(model string) float64 {
	pricing, ok := modelPricing[model]
	if !ok {
		return 0
	}
	inCost := (float64(u.InputTokens) / 1e6) * pricing[0]
	outCost := (float64(u.OutputTokens) / 1e6) * pricing[1]
	return inCost + outCost
}

// sdkClient implements Client using the official anthropic-sdk-go.
type sdkClient struct {
	client sdk.Client
	model  string
	logger *zap.Logger
}

// NewClient creates an LLM client backed by the Anthropic SDK.
// An empty model falls back to DefaultModel.
func NewClient(apiKey, model string, logger *zap.Logger) Client {
	if model == "" {
		model = DefaultModel
	}
	return &sdkClient{
		client: sdk.NewClient(
			option.WithAPIKey(apiKey),
		),
		model:  model,
		logger: logger,
	}
}

func (c *sdkClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	params := sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: req.MaxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []sdk.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, eris.Wrap(err, "llm: create message")
	}

	resp := fromSDKMessage(msg)
	c.logCost(req.Stage, resp)
	return resp, nil
}

// fromSDKMessage flattens the SDK response into our own type.
// StopReason max_tokens means the output was cut off by the budget.
func fromSDKMessage(msg *sdk.Message) *CompletionResponse {
	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return &CompletionResponse{
		Text:      text,
		Truncated: msg.StopReason == "max_tokens",
		Usage: TokenUsage{
			InputTokens:  msg.Usage.InputTokens,
			OutputTokens: msg.Usage.OutputTokens,
		},
	}
}

// logCost logs token usage and estimated cost with structured zap fields.
func (c *sdkClient) logCost(stage string, resp *CompletionResponse) {
	if c.logger == nil {
		return
	}
	c.logger.Info("llm cost attribution",
		zap.String("model", c.model),
		zap.String("stage", stage),
		zap.Int64("input_tokens", resp.Usage.InputTokens),
		zap.Int64("output_tokens", resp.Usage.OutputTokens),
		zap.Bool("truncated", resp.Truncated),
		zap.Float64("estimated_cost_usd", resp.Usage.EstimateCost(c.model)),
	)
}
