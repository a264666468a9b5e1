package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"hourly-step-notifier/internal/models"
)

// MessageComposer builds the notification text for a missed hourly step goal.
// When an OpenAI key is present it asks for a short motivational variant;
// otherwise (or on any composition failure) it falls back to a fixed template,
// so composing can never fail the notification path.
type MessageComposer struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	enabled     bool
}

// NewMessageComposer creates a composer, enabling the OpenAI variant only
// when OPENAI_API_KEY is set
func NewMessageComposer() *MessageComposer {
	apiKey := os.Getenv("OPENAI_API_KEY")

	composer := &MessageComposer{
		model:       "gpt-4o-mini",
		temperature: 0.7,
		maxTokens:   120,
	}

	if apiKey != "" {
		composer.client = openai.NewClient(apiKey)
		composer.enabled = true
	}

	return composer
}

// ComposeStepAlert returns the notification message for the report
func (c *MessageComposer) ComposeStepAlert(ctx context.Context, report *models.StepReport) string {
	fallback := TemplateStepAlert(report)

	if !c.enabled {
		return fallback
	}

	composed, err := c.composeWithOpenAI(ctx, report)
	if err != nil {
		log.Printf("Message composition failed, using template: %v", err)
		return fallback
	}

	return composed
}

// TemplateStepAlert is the deterministic notification text
func TemplateStepAlert(report *models.StepReport) string {
	return fmt.Sprintf("You've taken %d steps since %s, %d short of your hourly goal of %d. Time to get moving!",
		report.StepTotal, report.Window.Start, report.Threshold-report.StepTotal, report.Threshold)
}

// composeWithOpenAI asks for a single short motivational sentence
func (c *MessageComposer) composeWithOpenAI(ctx context.Context, report *models.StepReport) (string, error) {
	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Temperature: c.temperature,
			MaxTokens:   c.maxTokens,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You write one short, friendly push notification nudging someone to walk more. One sentence, no emoji, no quotes.",
				},
				{
					Role: openai.ChatMessageRoleUser,
					Content: fmt.Sprintf("They have taken %d steps since %s this hour; their goal is %d steps per hour.",
						report.StepTotal, report.Window.Start, report.Threshold),
				},
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices from OpenAI")
	}

	message := strings.TrimSpace(resp.Choices[0].Message.Content)
	if message == "" {
		return "", fmt.Errorf("empty message from OpenAI")
	}

	return message, nil
}

// IsEnabled reports whether the OpenAI variant is active
func (c *MessageComposer) IsEnabled() bool {
	return c.enabled
}
