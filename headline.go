package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aktagon/llmkit/anthropic"
	"github.com/aktagon/llmkit/anthropic/types"
)

// MaxHeadlineLength bounds every composed headline, counted in runes
const MaxHeadlineLength = 90

const (
	headlineSeparator    = " — "
	headlineLastResort   = "Welcome"
	headlineSystemPrompt = "You are a concise marketing copywriter."
	promptPlaceholder    = "(none)"
)

// HeadlineInput is what the generator knows about the current run
type HeadlineInput struct {
	Brand    string
	Audience string
	Offer    string
	Video    *VideoItem
	Post     *SocialPost
}

// Generator produces a headline from a prompt pair
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// FallbackHeadline composes "{brand} — {source}" where source is the first
// non-empty entry of: video title, social caption, offer, "Welcome".
func FallbackHeadline(in HeadlineInput) string {
	var title, caption string
	if in.Video != nil {
		title = in.Video.Title
	}
	if in.Post != nil {
		caption = in.Post.Caption
	}
	source := firstNonEmpty(title, caption, in.Offer, headlineLastResort)
	return truncateRunes(in.Brand+headlineSeparator+source, MaxHeadlineLength)
}

// FailureHeadline is used when the text-generation service was asked and failed
func FailureHeadline(in HeadlineInput) string {
	return truncateRunes(in.Brand+headlineSeparator+firstNonEmpty(in.Offer, headlineLastResort), MaxHeadlineLength)
}

// HeadlineWriter asks the configured Generator for a headline
type HeadlineWriter struct {
	generator      Generator
	provider       string
	captionPreview int
	logger         *slog.Logger
}

// NewHeadlineWriter picks the provider named in the config. Without a
// credential for it the writer is disabled and only fallbacks are used.
func NewHeadlineWriter(cfg *Config, client *http.Client, logger *slog.Logger) *HeadlineWriter {
	w := &HeadlineWriter{
		provider:       cfg.Env.Headline.Provider,
		captionPreview: cfg.Settings.Headline.CaptionPreview,
		logger:         logger.With("source", "headline", "provider", cfg.Env.Headline.Provider),
	}

	key := cfg.Env.HeadlineKey()
	if key == "" {
		return w
	}

	switch cfg.Env.Headline.Provider {
	case ProviderAnthropic:
		w.generator = NewAnthropicGenerator(key, cfg.Settings.Headline.Anthropic)
	case ProviderOpenAI:
		w.generator = NewOpenAIGenerator(key, cfg.Settings.Headline.OpenAI, newAPIClient(client, cfg.Settings.HTTP.Timeout))
	default:
		w.logger.Warn("Unknown HEADLINE_PROVIDER, using fallback headline")
	}
	return w
}

// Headline returns the generated text, or a disabled/failed Result the
// caller turns into a fallback headline.
func (w *HeadlineWriter) Headline(ctx context.Context, in HeadlineInput) Result[string] {
	if w.generator == nil {
		w.logger.Info("No text-generation key configured, using fallback headline")
		return Disabled[string]("no text-generation credential")
	}

	w.logger.Info("→ Generating headline")
	text, err := w.generator.Generate(ctx, headlineSystemPrompt, BuildHeadlinePrompt(in, w.captionPreview))
	if err != nil {
		logUpstreamError(w.logger, "Headline generation failed", err)
		return Failed[string](err)
	}

	text = cleanHeadline(text)
	if text == "" {
		w.logger.Error("Headline generation returned empty content")
		return Failed[string](errors.New("empty headline"))
	}

	w.logger.Info("✓ Headline generated", "headline", text)
	return OK(text)
}

// BuildHeadlinePrompt embeds brand, audience, latest title, caption preview and offer
func BuildHeadlinePrompt(in HeadlineInput, captionPreview int) string {
	title := promptPlaceholder
	if in.Video != nil && strings.TrimSpace(in.Video.Title) != "" {
		title = in.Video.Title
	}
	caption := promptPlaceholder
	if in.Post != nil && strings.TrimSpace(in.Post.Caption) != "" {
		caption = truncateRunes(strings.Join(strings.Fields(in.Post.Caption), " "), captionPreview)
	}

	return fmt.Sprintf(`Write a short, punchy landing page headline (max 12 words) for %s.
Audience: %s.
Latest YouTube title: %s.
Latest Instagram caption: %s.
Offer: %s.`, in.Brand, in.Audience, title, caption, in.Offer)
}

// cleanHeadline trims whitespace and the quotes models like to add
func cleanHeadline(s string) string {
	s = strings.TrimSpace(s)
	for _, q := range []string{`"`, "'", "“"} {
		closing := q
		if q == "“" {
			closing = "”"
		}
		if len(s) >= len(q)+len(closing) && strings.HasPrefix(s, q) && strings.HasSuffix(s, closing) {
			s = strings.TrimSpace(s[len(q) : len(s)-len(closing)])
		}
	}
	return s
}

// OpenAIGenerator calls the chat completions endpoint
type OpenAIGenerator struct {
	apiKey   string
	settings ProviderSettings
	api      *apiClient
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// NewOpenAIGenerator creates a generator for an OpenAI compatible endpoint
func NewOpenAIGenerator(apiKey string, settings ProviderSettings, api *apiClient) *OpenAIGenerator {
	settings.APIURL = strings.TrimRight(settings.APIURL, "/")
	return &OpenAIGenerator{apiKey: apiKey, settings: settings, api: api}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: g.settings.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: g.settings.Temperature,
		MaxTokens:   g.settings.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	endpoint := g.settings.APIURL + "/chat/completions"
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	var resp chatResponse
	if err := g.api.doJSON(ctx, req, endpoint, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in chat response")
	}
	return resp.Choices[0].Message.Content, nil
}

// AnthropicGenerator calls Claude through llmkit
type AnthropicGenerator struct {
	apiKey   string
	settings ProviderSettings
}

// NewAnthropicGenerator creates a generator backed by the Messages API
func NewAnthropicGenerator(apiKey string, settings ProviderSettings) *AnthropicGenerator {
	return &AnthropicGenerator{apiKey: apiKey, settings: settings}
}

func (g *AnthropicGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	type reply struct {
		text string
		err  error
	}

	// llmkit has no context parameter; the buffered channel lets the call
	// finish in the background if ctx expires first.
	done := make(chan reply, 1)
	go func() {
		settings := types.RequestSettings{
			Model:       g.settings.Model,
			MaxTokens:   g.settings.MaxTokens,
			Temperature: g.settings.Temperature,
		}
		response, err := anthropic.PromptWithSettings(systemPrompt, userPrompt, "", g.apiKey, settings)
		if err != nil {
			done <- reply{err: fmt.Errorf("anthropic prompt: %w", err)}
			return
		}
		if len(response.Content) == 0 {
			done <- reply{err: errors.New("no content in response")}
			return
		}
		done <- reply{text: response.Content[0].Text}
	}()

	select {
	case r := <-done:
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
