// Package llm generates optional narrative summaries of comparison
// reports. Summaries are presentation only and never feed back into
// the comparisons.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/avernik/doctrina/internal/report"
)

// Provider is one LLM backend.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Summarize generates a narrative summary of the report.
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks whether the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for summarization.
type SummarizeRequest struct {
	// Report is the comparison report to summarize.
	Report *report.Report

	// Prompt overrides the default prompt when set.
	Prompt string

	// Model is the specific model to use.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// SummarizeResponse contains the generated summary.
type SummarizeResponse struct {
	Summary    string
	Model      string
	TokensUsed int
}

// Config holds provider configuration.
type Config struct {
	// Provider name: "openai" or "" for disabled.
	Provider string

	// Model name, provider-specific.
	Model string

	// APIKey authenticates with the provider.
	APIKey string

	// BaseURL points at a custom endpoint.
	BaseURL string

	// Timeout for API requests, in seconds.
	Timeout int

	// MaxTokens for response generation.
	MaxTokens int
}

// DefaultConfig returns the defaults. Summarization is disabled until
// a provider is named.
func DefaultConfig() Config {
	return Config{
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// NewProvider creates a provider from configuration. An empty provider
// name returns nil with no error, meaning summarization is disabled.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)
	case "":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", config.Provider)
}

// BuildPrompt constructs the default summarization prompt. The model
// is asked to restate the logical relations found, never to judge
// which holding states the law correctly.
func BuildPrompt(r *report.Report) string {
	var b strings.Builder
	b.WriteString(`You are summarizing a report that compares judicial holdings as logical statements.

RULES:
1. Describe only the relations the report found: contradiction, implication, same meaning.
2. Never assert which holding is legally correct, and never add holdings not in the report.
3. If no relations were found, say so explicitly.

`)
	fmt.Fprintf(&b, "The report compares %d holdings from %s.\n", r.Summary.Holdings, r.Source)
	fmt.Fprintf(&b, "Of %d pairs: %d contradictions, %d implications, %d same meaning, %d unrelated.\n",
		r.Summary.Pairs, r.Summary.Contradictions, r.Summary.Implications,
		r.Summary.SameMeaning, r.Summary.Unrelated)

	b.WriteString("\nRelated pairs:\n")
	listed := 0
	for _, pair := range r.Pairs {
		if pair.Relation == "NO RELATION" {
			continue
		}
		if listed >= 20 {
			fmt.Fprintf(&b, "... and more pairs omitted\n")
			break
		}
		fmt.Fprintf(&b, "- holding %d %s holding %d\n", pair.Left, pair.Relation, pair.Right)
		listed++
	}
	if listed == 0 {
		b.WriteString("(none)\n")
	}

	b.WriteString("\nProvide a 3-4 sentence summary of how the holdings relate.")
	return b.String()
}
