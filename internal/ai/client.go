package ai

import (
	"context"
	"github.com/myrjola/casegen/internal/errors"
	"github.com/sashabaranov/go-openai"
)

// Client wraps the OpenAI chat completion API behind the narrow surface the
// generation pipeline needs.
type Client struct {
	client *openai.Client
	model  string
}

// NewClient constructs a Client for the given API key and model. An empty model
// falls back to a JSON-mode capable default.
func NewClient(apiKey string, model string) *Client {
	if model == "" {
		model = openai.GPT3Dot5Turbo1106
	}
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Complete sends a system instruction and user prompt and returns the raw response text.
//
// The request asks for a JSON object response so the model is nudged towards the
// shape the pipeline expects, but the result is still treated as untrusted text
// and run through the repair engine by the caller.
func (c *Client) Complete(ctx context.Context, system string, prompt string, maxTokens int) (string, error) {
	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:     c.model,
			MaxTokens: maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion")
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
