package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
)

// openAIChat implements Client on top of any OpenAI-compatible endpoint.
type openAIChat struct {
	client openai.Client
	model  string
	name   string // provider name used in errors

	// jsonMode asks the server for a json_object response in ChatJSON.
	jsonMode bool
}

func toOpenAIMessages(messages []Message) []openai.ChatCompletionMessageParamUnion {
	result := make([]openai.ChatCompletionMessageParamUnion, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case "system":
			result[i] = openai.SystemMessage(msg.Content)
		case "assistant":
			result[i] = openai.AssistantMessage(msg.Content)
		default:
			result[i] = openai.UserMessage(msg.Content)
		}
	}
	return result
}

// Chat sends messages to the LLM and returns the response.
func (c *openAIChat) Chat(ctx context.Context, messages []Message) (string, error) {
	return c.complete(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: toOpenAIMessages(messages),
	})
}

// ChatJSON sends messages and parses the response as JSON into the provided type.
func (c *openAIChat) ChatJSON(ctx context.Context, messages []Message, result any) error {
	params := openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: toOpenAIMessages(messages),
	}
	if c.jsonMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	content, err := c.complete(ctx, params)
	if err != nil {
		return err
	}
	return decodeJSON(content, result)
}

func (c *openAIChat) complete(ctx context.Context, params openai.ChatCompletionNewParams) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", c.name, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}
