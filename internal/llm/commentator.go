// Package llm generates optional plain-language commentary for a derived
// verdict. Commentary is produced after verification completes and never
// feeds back into grades, status, or the narrative.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/rashidk/tahqiq/internal/model"
)

// Commentator wraps an OpenAI-compatible chat model
type Commentator struct {
	client *openai.Client
	cfg    model.LLMConfig
}

// New creates a commentator from the LLM configuration. Returns nil when no
// provider is configured; callers treat a nil commentator as disabled.
func New(cfg model.LLMConfig) (*Commentator, error) {
	if cfg.Provider == "" {
		return nil, nil
	}
	if cfg.Provider != "openai" {
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm api key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &Commentator{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
	}, nil
}

// Comment summarizes the verdict in plain language. The prompt carries only
// fields already present in the verdict, so the model cannot introduce new
// grading claims with authority.
func (c *Commentator) Comment(ctx context.Context, verdict *model.Verdict) (*model.Commentary, error) {
	m := c.cfg.Model
	if m == "" {
		m = openai.GPT4oMini
	}

	maxTokens := c.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 600
	}

	timeout := time.Duration(c.cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     m,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleSystem,
				Content: "أنت مساعد يشرح نتائج التحقق من الأحاديث بلغة مبسطة. " +
					"اعتمد حصريا على المعطيات المذكورة ولا تضف أحكاما جديدة على الحديث.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(verdict),
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("llm commentary: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("llm commentary: empty response")
	}

	return &model.Commentary{
		Provider: "openai",
		Model:    m,
		Text:     strings.TrimSpace(resp.Choices[0].Message.Content),
	}, nil
}

func buildPrompt(verdict *model.Verdict) string {
	var b strings.Builder

	fmt.Fprintf(&b, "نتيجة التحقق: %s\n", verdict.Status)
	fmt.Fprintf(&b, "عدد نتائج البحث: %d\n", verdict.TotalMatches)

	if verdict.PrimaryGrade != "" {
		fmt.Fprintf(&b, "الدرجة: %s (الثقة: %s)\n", verdict.PrimaryGrade, verdict.PrimaryGradeConfidence)
	}
	if verdict.Narrative.Scholar != "" {
		fmt.Fprintf(&b, "المحدث: %s\n", verdict.Narrative.Scholar)
	}
	if len(verdict.AttributedSources) > 0 {
		fmt.Fprintf(&b, "المصادر: %s\n", strings.Join(verdict.AttributedSources, "، "))
	}
	if verdict.Narrative.Explanation != "" {
		fmt.Fprintf(&b, "التعليل: %s\n", verdict.Narrative.Explanation)
	}

	b.WriteString("\nلخص هذه النتيجة في فقرة قصيرة واضحة لغير المتخصصين.")
	return b.String()
}
