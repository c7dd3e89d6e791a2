package genai

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	googlegenai "google.golang.org/genai"
)

// Harm categories understood by the generateContent endpoint.
const (
	CategoryHateSpeech       = string(googlegenai.HarmCategoryHateSpeech)
	CategoryDangerousContent = string(googlegenai.HarmCategoryDangerousContent)
	CategorySexuallyExplicit = string(googlegenai.HarmCategorySexuallyExplicit)
	CategoryHarassment       = string(googlegenai.HarmCategoryHarassment)
	CategoryCivicIntegrity   = string(googlegenai.HarmCategoryCivicIntegrity)

	ThresholdBlockNone = string(googlegenai.HarmBlockThresholdBlockNone)
)

// DefaultAPIVersion is the Gemini API version path segment.
const DefaultAPIVersion = "v1beta"

// SafetySetting relaxes or tightens one harm category.
type SafetySetting struct {
	Category  string
	Threshold string
}

// Request is a single-turn text generation call.
type Request struct {
	Prompt            string
	SystemInstruction string
	Temperature       float64
	MaxOutputTokens   int
	SafetySettings    []SafetySetting
}

// Response carries the text of the first candidate.
type Response struct {
	Text         string
	FinishReason string
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIVersion string
	APIKey     string
	Model      string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client calls Gemini generateContent through the official SDK.
type Client struct {
	models *googlegenai.Models
	model  string
	logger *zap.Logger
}

// NewClient builds a client. A zero timeout leaves calls bounded only by their context.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("genai: api key is required")
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, errors.New("genai: model is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	apiVersion := opts.APIVersion
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sdk, err := googlegenai.NewClient(ctx, &googlegenai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    googlegenai.BackendGeminiAPI,
		HTTPClient: httpClient,
		HTTPOptions: googlegenai.HTTPOptions{
			BaseURL:    opts.BaseURL,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, err
	}
	return &Client{models: sdk.Models, model: opts.Model, logger: logger}, nil
}

// GenerateContent sends one prompt and returns the first candidate's text. Every failure
// is a *Failure.
func (c *Client) GenerateContent(ctx context.Context, req Request) (*Response, error) {
	config := &googlegenai.GenerateContentConfig{
		Temperature:     googlegenai.Ptr(float32(req.Temperature)),
		MaxOutputTokens: int32(req.MaxOutputTokens),
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = googlegenai.NewContentFromText(req.SystemInstruction, googlegenai.RoleUser)
	}
	for _, s := range req.SafetySettings {
		config.SafetySettings = append(config.SafetySettings, &googlegenai.SafetySetting{
			Category:  googlegenai.HarmCategory(s.Category),
			Threshold: googlegenai.HarmBlockThreshold(s.Threshold),
		})
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, googlegenai.Text(req.Prompt), config)
	if err != nil {
		c.logger.Warn("generateContent request failed", zap.String("model", c.model), zap.Error(err))
		return nil, transportFailure("generate content", err)
	}
	c.logger.Debug("generateContent response",
		zap.String("model", c.model),
		zap.Duration("latency", time.Since(start)),
	)

	return firstCandidate(resp)
}

func firstCandidate(resp *googlegenai.GenerateContentResponse) (*Response, error) {
	if resp == nil {
		return nil, &Failure{Kind: EmptyCompletion, Detail: "no response"}
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return nil, &Failure{Kind: SafetyBlocked, Detail: string(resp.PromptFeedback.BlockReason)}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, &Failure{Kind: EmptyCompletion, Detail: "no candidates"}
	}

	first := resp.Candidates[0]
	finish := string(first.FinishReason)
	if first.FinishReason == googlegenai.FinishReasonSafety {
		return nil, &Failure{Kind: SafetyBlocked, Detail: finish}
	}

	var text strings.Builder
	if first.Content != nil {
		for _, p := range first.Content.Parts {
			if p == nil || p.Thought {
				continue
			}
			text.WriteString(p.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return nil, &Failure{Kind: EmptyCompletion, Detail: finish}
	}

	return &Response{Text: text.String(), FinishReason: finish}, nil
}
