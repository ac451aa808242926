// Package narrative turns a league digest into prose through an OpenAI
// compatible chat-completion API.
package narrative

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

var (
	ErrGeneration  = errors.New("narrative generation failed")
	ErrUnknownMode = errors.New("unknown narrative mode")
)

// ChatCompleter is the part of the OpenAI client the generator needs.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Config struct {
	APIKey   string
	BaseURL  string
	Personas map[Mode]Persona
}

type Generator struct {
	client   ChatCompleter
	personas map[Mode]Persona
}

func NewGenerator(cfg Config) *Generator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return NewGeneratorWithClient(openai.NewClientWithConfig(clientConfig), cfg.Personas)
}

func NewGeneratorWithClient(client ChatCompleter, personas map[Mode]Persona) *Generator {
	if personas == nil {
		personas = DefaultPersonas()
	}
	return &Generator{client: client, personas: personas}
}

// Generate embeds digest in the persona's prompt and returns the model's
// answer with surrounding whitespace removed.
func (g *Generator) Generate(ctx context.Context, mode Mode, digest string) (string, error) {
	persona, ok := g.personas[mode]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	req := openai.ChatCompletionRequest{
		Model: persona.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: persona.System},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("%s\n\n%s", persona.Prompt, digest)},
		},
		MaxTokens:   persona.MaxTokens,
		Temperature: persona.Temperature,
	}

	slog.Info("Requesting narrative", "mode", mode, "model", persona.Model, "digest_bytes", len(digest))

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGeneration)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrGeneration)
	}

	return text, nil
}
