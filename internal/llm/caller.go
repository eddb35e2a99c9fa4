package llm

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"

	"docintake/internal/logger"
)

// completionSeed fixes the sampling seed so repeated runs over the same
// document produce the same completion.
const completionSeed = 42

// ChatCompleter is the narrow contract the pipeline needs from a completion
// backend.
type ChatCompleter interface {
	// Complete sends the prompt and returns the raw completion text.
	// process names the stage for logging ("Classification", "Extraction").
	Complete(ctx context.Context, messages []openai.ChatCompletionMessage, process string) (string, error)
}

// AzureClient calls one Azure OpenAI deployment with deterministic settings
// and strict-JSON response format.
type AzureClient struct {
	api        *openai.Client
	deployment string
	log        zerolog.Logger
}

// NewAzureClient creates a client bound to one deployment. Classification
// and extraction use separate deployments, so the pipeline holds two of
// these.
func NewAzureClient(endpoint, key, apiVersion, deployment string) (*AzureClient, error) {
	if endpoint == "" || key == "" {
		return nil, ErrMissingCredentials
	}

	cfg := openai.DefaultAzureConfig(key, endpoint)
	if apiVersion != "" {
		cfg.APIVersion = apiVersion
	}

	return &AzureClient{
		api:        openai.NewClientWithConfig(cfg),
		deployment: deployment,
		log:        logger.WithComponent("llm"),
	}, nil
}

// Complete sends the prompt with temperature 0, top_p 1 and a fixed seed,
// requesting a JSON object response.
func (c *AzureClient) Complete(ctx context.Context, messages []openai.ChatCompletionMessage, process string) (string, error) {
	const op = "Complete"

	c.log.Info().Str("process", process).Str("deployment", c.deployment).Msg("Completion starting")
	start := time.Now()

	resp, err := c.api.CreateChatCompletion(ctx, c.newRequest(messages))
	if err != nil {
		c.log.Error().
			Err(err).
			Str("process", process).
			Str("deployment", c.deployment).
			Msg("Completion request failed")
		return "", &CompletionError{Op: op, Process: process, Err: err}
	}

	if len(resp.Choices) == 0 {
		return "", &CompletionError{Op: op, Process: process, Err: ErrEmptyCompletion}
	}

	c.log.Info().
		Str("process", process).
		Dur("duration", time.Since(start)).
		Msg("Completion collected")

	return resp.Choices[0].Message.Content, nil
}

// newRequest builds the deterministic completion request. The client
// library marshals Temperature with omitempty, so a literal zero would be
// dropped from the body and the service would fall back to its default
// sampling; the smallest positive float is the library's way to transmit
// an explicit zero.
func (c *AzureClient) newRequest(messages []openai.ChatCompletionMessage) openai.ChatCompletionRequest {
	seed := completionSeed
	return openai.ChatCompletionRequest{
		Model:       c.deployment,
		Messages:    messages,
		Temperature: math.SmallestNonzeroFloat32,
		TopP:        1,
		Seed:        &seed,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
}
