package llm

import (
	"errors"
	"os"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOllamaBaseURL = "http://localhost:11434"

// OllamaClient talks to a local Ollama server through its OpenAI-compatible
// /v1 API. Structured requests use Ollama's JSON mode.
type OllamaClient struct {
	openAIChat
	baseURL string
}

// NewOllamaClient creates a new Ollama client. baseURL may be given with or
// without the /v1 suffix.
func NewOllamaClient(model, baseURL string) (*OllamaClient, error) {
	if strings.TrimSpace(model) == "" {
		return nil, errors.New("ollama model is required")
	}
	if baseURL == "" {
		baseURL = os.Getenv("OLLAMA_HOST")
	}
	if baseURL == "" {
		baseURL = defaultOllamaBaseURL
	}
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	client := openai.NewClient(
		option.WithBaseURL(ollamaAPIURL(baseURL)),
		// Ollama ignores the key but the SDK refuses to send without one.
		option.WithAPIKey(ProviderOllama),
		option.WithHeader("User-Agent", userAgent),
	)

	return &OllamaClient{
		openAIChat: openAIChat{client: client, model: model, name: ProviderOllama, jsonMode: true},
		baseURL:    baseURL,
	}, nil
}

func ollamaAPIURL(baseURL string) string {
	if strings.HasSuffix(baseURL, "/v1") {
		return baseURL + "/"
	}
	return baseURL + "/v1/"
}
