package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthassist/healthassist-go/internal/client"
	"go.uber.org/zap"
)

// Classifier policies
const (
	PolicyKeyword = "keyword"
	PolicyLLM     = "llm"
)

// healthcareKeywords is the allow-list used by the keyword policy
var healthcareKeywords = []string{
	"health", "medical", "doctor", "hospital", "symptom",
	"pain", "disease", "condition", "treatment", "medicine",
	"appointment", "nhs", "mental health", "therapy",
	"blood", "pressure", "diabetes", "asthma",
	"infection", "injury", "emergency", "fever",
	"headache", "breathing", "heart", "stroke",
	"anxiety", "depression",
}

const classifierSystemPrompt = `You decide whether a user message is healthcare-related.
Answer strictly YES or NO. Do not add anything else.`

// ClassifierService decides whether a message is in scope for the
// healthcare assistant
type ClassifierService struct {
	policy   string
	llm      LLMClient
	keywords []string
	logger   *zap.Logger
}

// NewClassifierService creates a classifier with the given policy
func NewClassifierService(policy string, llm LLMClient, logger *zap.Logger) (*ClassifierService, error) {
	if policy != PolicyKeyword && policy != PolicyLLM {
		return nil, fmt.Errorf("unknown classifier policy: %s", policy)
	}
	return &ClassifierService{
		policy:   policy,
		llm:      llm,
		keywords: healthcareKeywords,
		logger:   logger,
	}, nil
}

// InScope reports whether the message is healthcare-related. With the llm
// policy, provider failures are returned as errors rather than mapped to
// out-of-scope, so callers can tell a refusal from an outage.
func (s *ClassifierService) InScope(ctx context.Context, message string) (bool, error) {
	switch s.policy {
	case PolicyKeyword:
		return s.matchKeywords(message), nil
	case PolicyLLM:
		return s.classifyWithLLM(ctx, message)
	default:
		return false, fmt.Errorf("unknown classifier policy: %s", s.policy)
	}
}

func (s *ClassifierService) matchKeywords(message string) bool {
	lowered := strings.ToLower(message)
	for _, keyword := range s.keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func (s *ClassifierService) classifyWithLLM(ctx context.Context, message string) (bool, error) {
	prompt := "Is the following message healthcare-related?\n\n" + message

	reply, err := s.llm.Complete(ctx, []client.Message{
		{Role: "system", Content: classifierSystemPrompt},
		{Role: "user", Content: prompt},
	}, 0)
	if err != nil {
		return false, fmt.Errorf("classifying message: %w", err)
	}

	inScope := strings.ToUpper(strings.TrimSpace(reply)) == "YES"

	s.logger.Debug("message classified",
		zap.Bool("inScope", inScope),
		zap.String("reply", reply))

	// anything other than a plain YES counts as out-of-scope
	return inScope, nil
}
