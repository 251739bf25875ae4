package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"safetybot/internal/bot"
)

const defaultModelName = "gemini-1.5-flash-latest"

// GeminiResponder renders the per-mode prompt and issues a single blocking
// completion call. Every failure path degrades to an apology string that
// embeds the underlying error; callers never see an error or a 5xx.
type GeminiResponder struct {
	client    *genai.Client
	modelName string
}

// NewGeminiResponder builds a responder backed by the Gemini API.
func NewGeminiResponder(ctx context.Context, apiKey, modelName string) (*GeminiResponder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	if modelName == "" {
		modelName = defaultModelName
	}
	return &GeminiResponder{client: client, modelName: modelName}, nil
}

// Close releases the underlying client.
func (g *GeminiResponder) Close() {
	if g.client != nil {
		if err := g.client.Close(); err != nil {
			log.Printf("close genai client: %v", err)
		}
	}
}

// Respond implements Responder. No retries, no streaming.
func (g *GeminiResponder) Respond(ctx context.Context, mode bot.Mode, message string) string {
	prompt := bot.Prompt(mode, message)
	model := g.client.GenerativeModel(g.modelName)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return apology(err)
	}
	text := collectText(resp)
	if text == "" {
		return apology(fmt.Errorf("empty completion response"))
	}
	return text
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String()
}

func apology(err error) string {
	return fmt.Sprintf("I apologize, but I'm having trouble connecting to my AI brain right now. Please try again later. Error: %v", err)
}
