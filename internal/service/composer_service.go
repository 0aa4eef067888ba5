package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthassist/healthassist-go/internal/client"
	"go.uber.org/zap"
)

// detailPhrases mark an explicit request for a longer answer
var detailPhrases = []string{
	"explain in detail", "more detail", "full explanation", "elaborate",
}

const composerTemperature = 0.3

// ComposerService generates the final answer from the user message and
// the selected reference passages
type ComposerService struct {
	llm    LLMClient
	logger *zap.Logger
}

// NewComposerService creates a response composer
func NewComposerService(llm LLMClient, logger *zap.Logger) *ComposerService {
	return &ComposerService{
		llm:    llm,
		logger: logger,
	}
}

// Compose runs one completion over the system instruction and the user
// turn and returns the reply text unmodified. Emergency handling belongs
// to the orchestrator, not here.
func (s *ComposerService) Compose(ctx context.Context, message string, selectedDocs []string) (string, error) {
	systemPrompt := s.buildSystemPrompt(message, selectedDocs)

	reply, err := s.llm.Complete(ctx, []client.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: message},
	}, composerTemperature)
	if err != nil {
		return "", fmt.Errorf("generating answer: %w", err)
	}

	s.logger.Info("answer generated",
		zap.Int("contextDocs", len(selectedDocs)),
		zap.Int("length", len(reply)))

	return reply, nil
}

func (s *ComposerService) buildSystemPrompt(message string, selectedDocs []string) string {
	var builder strings.Builder
	builder.WriteString(`You are a responsible NHS-based healthcare AI assistant.

STRICT RULES:
- Only answer healthcare-related questions.
- If a question is not healthcare-related, politely refuse.
- Provide educational information only.
- Do not diagnose.
- Do not prescribe medication.
- For serious symptoms, advise contacting NHS 111 or emergency services.

RESPONSE STYLE:
- Always give clear, brief, simple answers.
- Use clean bullet points.
- Avoid long paragraphs.
`)

	if wantsDetail(message) {
		builder.WriteString("- The user has explicitly asked for more detail: give a thorough explanation.\n")
	} else {
		builder.WriteString("- Only give detailed explanations if the user explicitly asks for more detail.\n")
	}

	if len(selectedDocs) > 0 {
		builder.WriteString("\nUse the following NHS context if relevant:\n\n")
		builder.WriteString(strings.Join(selectedDocs, "\n\n"))
		builder.WriteString("\n")
	}

	return builder.String()
}

// wantsDetail reports whether the user explicitly asked for elaboration
func wantsDetail(message string) bool {
	lowered := strings.ToLower(message)
	for _, phrase := range detailPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
