package llm

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultOllamaModel  = "ministral-3:latest"
	defaultOpenAIModel  = "gpt-4o-mini"
	defaultMistralModel = "mistral-small"

	defaultOllamaHost  = "http://localhost:11434"
	defaultOpenAIBase  = "https://api.openai.com/v1"
	defaultMistralBase = "https://api.mistral.ai/v1"

	// Paragraphs are pasted by hand; anything larger than this is clipped
	// before it reaches the prompt.
	maxParagraphChars = 60_000
)

const defaultLLMHTTPTimeout = 3 * time.Minute

// Provider names accepted by NewFromEnv.
const (
	ProviderOllama  = "ollama"
	ProviderOpenAI  = "openai"
	ProviderMistral = "mistral"
)

// Config describes how to build an LLM client. Empty fields fall back to
// environment variables and then to defaults.
type Config struct {
	Provider   string
	Model      string
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

// Client sends a single prompt and returns the model's completion.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Name() string
}

// NewFromEnv inspects the config and environment variables to build a client.
// Without an explicit provider, MISTRAL_API_KEY selects Mistral,
// OPENAI_API_KEY selects OpenAI and otherwise a local Ollama is used.
func NewFromEnv(cfg Config) (Client, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		switch {
		case os.Getenv("MISTRAL_API_KEY") != "":
			provider = ProviderMistral
		case os.Getenv("OPENAI_API_KEY") != "":
			provider = ProviderOpenAI
		default:
			provider = ProviderOllama
		}
	}

	switch provider {
	case ProviderOllama:
		host := cfg.Endpoint
		if host == "" {
			if env := os.Getenv("OLLAMA_HOST"); env != "" {
				host = env
			} else {
				host = defaultOllamaHost
			}
		}
		model := firstNonEmpty(cfg.Model, os.Getenv("OLLAMA_MODEL"), defaultOllamaModel)
		return &ollamaClient{
			host:   strings.TrimRight(host, "/"),
			model:  model,
			client: pickHTTPClient(cfg.HTTPClient),
		}, nil
	case ProviderOpenAI, ProviderMistral:
		keyEnv, base, model := "OPENAI_API_KEY", defaultOpenAIBase, defaultOpenAIModel
		if provider == ProviderMistral {
			keyEnv, base, model = "MISTRAL_API_KEY", defaultMistralBase, defaultMistralModel
		}
		apiKey := firstNonEmpty(cfg.APIKey, os.Getenv(keyEnv))
		if apiKey == "" {
			return nil, fmt.Errorf("%s provider requires %s", provider, keyEnv)
		}
		return &openAIClient{
			label:  providerLabel(provider),
			apiKey: apiKey,
			model:  firstNonEmpty(cfg.Model, model),
			base:   strings.TrimRight(firstNonEmpty(cfg.Endpoint, base), "/"),
			client: pickHTTPClient(cfg.HTTPClient),
		}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

func providerLabel(provider string) string {
	if provider == ProviderMistral {
		return "Mistral"
	}
	return "OpenAI"
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// Local models can take well over a minute; callers cancel through ctx.
	return &http.Client{Timeout: defaultLLMHTTPTimeout}
}
