package llm

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickHTTPClientHonorsCustomClient(t *testing.T) {
	custom := &http.Client{Timeout: 42 * time.Second}
	if got := pickHTTPClient(custom); got != custom {
		t.Fatalf("expected custom client to be returned")
	}
}

func TestPickHTTPClientUsesLongerTimeout(t *testing.T) {
	client := pickHTTPClient(nil)
	if client.Timeout != defaultLLMHTTPTimeout {
		t.Fatalf("expected default timeout %s, got %s", defaultLLMHTTPTimeout, client.Timeout)
	}
}

func TestNewFromEnvProviderSelection(t *testing.T) {
	t.Run("defaults to ollama", func(t *testing.T) {
		t.Setenv("MISTRAL_API_KEY", "")
		t.Setenv("OPENAI_API_KEY", "")
		t.Setenv("OLLAMA_HOST", "")
		t.Setenv("OLLAMA_MODEL", "")
		client, err := NewFromEnv(Config{})
		require.NoError(t, err)
		ollama, ok := client.(*ollamaClient)
		require.True(t, ok, "got %T", client)
		assert.Equal(t, defaultOllamaHost, ollama.host)
		assert.Equal(t, defaultOllamaModel, ollama.model)
	})

	t.Run("mistral key wins", func(t *testing.T) {
		t.Setenv("MISTRAL_API_KEY", "m-key")
		t.Setenv("OPENAI_API_KEY", "o-key")
		client, err := NewFromEnv(Config{})
		require.NoError(t, err)
		openai, ok := client.(*openAIClient)
		require.True(t, ok, "got %T", client)
		assert.Equal(t, defaultMistralBase, openai.base)
		assert.Equal(t, "m-key", openai.apiKey)
		assert.Equal(t, "Mistral (mistral-small)", client.Name())
	})

	t.Run("openai from env", func(t *testing.T) {
		t.Setenv("MISTRAL_API_KEY", "")
		t.Setenv("OPENAI_API_KEY", "o-key")
		client, err := NewFromEnv(Config{Model: "gpt-x", Endpoint: "http://proxy/v1/"})
		require.NoError(t, err)
		openai := client.(*openAIClient)
		assert.Equal(t, "http://proxy/v1", openai.base)
		assert.Equal(t, "gpt-x", openai.model)
	})

	t.Run("explicit provider without key", func(t *testing.T) {
		t.Setenv("MISTRAL_API_KEY", "")
		_, err := NewFromEnv(Config{Provider: "mistral"})
		assert.ErrorContains(t, err, "MISTRAL_API_KEY")
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := NewFromEnv(Config{Provider: "bard"})
		assert.ErrorContains(t, err, "unknown llm provider")
	})

	t.Run("ollama host trimmed", func(t *testing.T) {
		client, err := NewFromEnv(Config{Provider: "ollama", Endpoint: "http://gpu:11434/", Model: "llama3"})
		require.NoError(t, err)
		assert.Equal(t, "http://gpu:11434", client.(*ollamaClient).host)
		assert.Equal(t, "Ollama (llama3)", client.Name())
	})
}
