package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"closetcircle/models"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const (
	defaultGeminiModel   = "models/gemini-1.5-flash"
	defaultGeminiTimeout = 10 * time.Second
)

type GeminiClient struct {
	model    *genai.GenerativeModel
	generate func(ctx context.Context, prompt string) (string, error)
	timeout  time.Duration
	logger   *zap.Logger
}

// NewGeminiClient builds a JSON-mode Gemini model used for language understanding.
// Every understanding call is bounded by timeout.
func NewGeminiClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, logger *zap.Logger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if timeout <= 0 {
		timeout = defaultGeminiTimeout
	}

	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0)
	g := &GeminiClient{model: model, timeout: timeout, logger: logger}
	g.generate = g.GenerateContent
	return g, nil
}

func (g *GeminiClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}

// Understand asks Gemini for the {intent, entities} record of one user message.
// Transport errors and malformed output both degrade to the fallback intent.
func (g *GeminiClient) Understand(ctx context.Context, text string) models.Understanding {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	out, err := g.generate(ctx, understandingPrompt(text))
	if err != nil {
		g.logger.Warn("Language understanding failed", zap.Error(err))
		return models.Fallback()
	}
	u := ParseUnderstanding([]byte(out))
	if u.Intent == models.IntentFallback {
		g.logger.Debug("Language understanding fell back", zap.String("raw", out))
	}
	return u
}

func understandingPrompt(text string) string {
	return fmt.Sprintf(`You are the shopping assistant of Closet Circle, a marketplace where members rent clothes from each other.
Extract ONLY the intent and the entities of the user's message.

INTENTS (choose one):
- find_item: the user wants to search for clothing
- show_next_item: the user wants to see another or the next result
- book_item: the user wants to book, reserve or add the shown item to their cart
- provide_item_type: the user only answers with a kind of clothing
- provide_color: the user only answers with a colour
- greet, goodbye, affirm, deny, bot_challenge

ENTITIES: item_type, color, item_name.
- color is a list of category codes as strings: black "10", white "11", red "12", blue "13", green "14", pink "15".
  Map other colours to the closest listed one. No colour means [].
- item_type is one of: dress, shirt, pants, jacket, skirt, jeans, shorts, shoes. Singularise plurals.
  Leave it out when the user names some other kind of item.
- item_name is a brand or product name, as written.

Respond with JSON only:
{"intent": "<intent>", "entities": [{"entity": "color", "value": ["10"], "start": 0, "end": 5}]}

User message: %q`, strings.TrimSpace(text))
}
