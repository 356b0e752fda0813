package openai

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/lorekeep/lorekeep/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const jsonParseAttempts = 3

// errNoChoices is returned when the model produces an empty response.
var errNoChoices = errors.New("no choices returned from model")

// newChatClient creates an OpenAI-compatible chat client from the config.
// Use "none" as token for local OpenAI-compatible services that don't require authentication.
func newChatClient(config *ai.Config) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(config.ChatHost),
		openai.WithToken("none"),
		openai.WithModel(config.ChatModel),
	)
}

// generateJSON sends a system+user prompt pair in JSON mode and parses the
// response into out. Malformed JSON is retried up to jsonParseAttempts
// times, with code fences stripped and common key-quoting issues repaired
// before each parse.
func generateJSON(ctx context.Context, client llms.Model, systemPrompt, userText string, out any, logger *slog.Logger) error {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userText),
			},
		},
	}

	var lastErr error
	for attempt := 0; attempt < jsonParseAttempts; attempt++ {
		response, err := client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return err
		}

		if len(response.Choices) < 1 {
			logger.Debug("no choices returned from model")
			return errNoChoices
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), out); err != nil {
			lastErr = err
			logger.Warn("error parsing model response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		return nil
	}

	logger.Error("failed to parse model response after retries", "err", lastErr)
	return lastErr
}
