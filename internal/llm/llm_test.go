package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"github.com/avernik/doctrina/internal/report"
)

func sampleReport() *report.Report {
	return &report.Report{
		Source: "cases/oracle.yaml",
		Summary: report.Summary{
			Holdings:       3,
			Pairs:          3,
			Contradictions: 1,
			Unrelated:      2,
		},
		Pairs: []report.Pair{
			{Left: 0, Right: 1, Relation: "CONTRADICTS"},
			{Left: 0, Right: 2, Relation: "NO RELATION"},
			{Left: 1, Right: 2, Relation: "NO RELATION"},
		},
	}
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(Config{})
	if err != nil || provider != nil {
		t.Errorf("Expected a nil provider for empty config, got %v, %v", provider, err)
	}

	if _, err := NewProvider(Config{Provider: "mystery"}); err == nil {
		t.Error("Expected error for an unknown provider name")
	}

	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("Expected error for openai without an API key")
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(sampleReport())
	if !strings.Contains(prompt, "3 holdings from cases/oracle.yaml") {
		t.Errorf("Expected the holding count in the prompt, got %q", prompt)
	}
	if !strings.Contains(prompt, "holding 0 CONTRADICTS holding 1") {
		t.Errorf("Expected the contradicting pair listed, got %q", prompt)
	}
	if strings.Contains(prompt, "NO RELATION") {
		t.Error("Expected unrelated pairs left out of the prompt")
	}
}

func TestOpenAIProvider_Summarize_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-123",
			Object: "chat.completion",
			Model:  "gpt-4o-mini",
			Choices: []openai.ChatCompletionChoice{
				{
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: "One pair of holdings contradicts.",
					},
					FinishReason: "stop",
				},
			},
			Usage: openai.Usage{TotalTokens: 100},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "gpt-4o-mini",
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	resp, err := provider.Summarize(context.Background(), SummarizeRequest{Report: sampleReport()})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if resp.Summary != "One pair of holdings contradicts." {
		t.Errorf("Unexpected summary: %s", resp.Summary)
	}
	if resp.TokensUsed != 100 {
		t.Errorf("Expected 100 tokens used, got %d", resp.TokensUsed)
	}
}

func TestOpenAIProvider_Summarize_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	if _, err := provider.Summarize(context.Background(), SummarizeRequest{Report: sampleReport()}); err == nil {
		t.Fatal("Expected error, got nil")
	}
}
