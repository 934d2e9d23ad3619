package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SyntaxStrategist/genuity-ai/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an empty or unusable OpenAI response.
	ErrOpenAIResponse = errors.New("OpenAI response was empty")
)

const systemPrompt = `You are a non-clinical mood support assistant.

You receive a next-day mood forecast plus the behavioral patterns detected in
one user's own journaling data. You must base every suggestion only on the
provided data.

Rules:
- Do NOT provide medical advice, diagnoses, or mention disorders or treatment.
- Focus only on concrete behavior: sleep, movement, breaks, social contact.
- Respond with EXACTLY three lines and nothing else.
- Each line must have the form Timing|Action|Reason and no other pipes.
- No numbering, no bullets, no blank lines, no backticks.`

const promptTemplate = `Generate a 3-step prevention plan for tomorrow's predicted low mood.

Prediction: %.1f/5
Risk factors:
%s

What helps this user (from data):
%s

Create 3 specific, actionable steps:
1. Tonight action
2. Morning action
3. During day action

Format each as:
[Timing]|[Action]|[Reason with data]

Example:
Tonight|Go to bed by 10 PM|Sleep 8+ hours improves your mood by +1.2 points
Tomorrow morning|20-minute workout|Exercise boosts your mood by +2.0 points
During the day|Take breaks between meetings|Prevents your typical 3 PM mood crash`

// maxPromptPatterns caps how many positive patterns are cited in the prompt.
const maxPromptPatterns = 3

// InterventionLLM generates the raw pipe-delimited intervention text.
// The planner owns parsing and all fallback behavior.
type InterventionLLM interface {
	GenerateInterventionSteps(ctx context.Context, prediction *domain.MoodPrediction, patterns []domain.DetectedPattern) (string, error)
}

// OpenAIClient implements InterventionLLM using the OpenAI API.
type OpenAIClient struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewOpenAIClient creates a new OpenAI client for intervention generation.
// Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// SetSystemPrompt replaces the built-in system prompt, typically with a
// managed prompt fetched from Langfuse. Empty input is ignored.
func (c *OpenAIClient) SetSystemPrompt(prompt string) {
	if c == nil || strings.TrimSpace(prompt) == "" {
		return
	}
	c.systemPrompt = prompt
}

// GenerateInterventionSteps calls OpenAI for a personalized 3-step plan.
func (c *OpenAIClient) GenerateInterventionSteps(ctx context.Context, prediction *domain.MoodPrediction, patterns []domain.DetectedPattern) (string, error) {
	if c == nil {
		return "", ErrOpenAIUnavailable
	}

	userPrompt := fmt.Sprintf(promptTemplate,
		prediction.PredictedMood,
		formatRiskFactors(prediction.RiskFactors),
		formatPositivePatterns(patterns),
	)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrOpenAIResponse
	}

	return content, nil
}

func formatRiskFactors(factors []domain.RiskFactor) string {
	if len(factors) == 0 {
		return "- none identified"
	}

	lines := make([]string, 0, len(factors))
	for _, factor := range factors {
		lines = append(lines, fmt.Sprintf("- %s: %.1f impact", factor.Name, factor.Impact))
	}
	return strings.Join(lines, "\n")
}

func formatPositivePatterns(patterns []domain.DetectedPattern) string {
	lines := make([]string, 0, maxPromptPatterns)
	for _, pattern := range patterns {
		if pattern.Impact <= 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("- %s: %+.1f mood boost", pattern.Trigger, pattern.Impact))
		if len(lines) == maxPromptPatterns {
			break
		}
	}

	if len(lines) == 0 {
		return "- no positive patterns detected yet"
	}
	return strings.Join(lines, "\n")
}
