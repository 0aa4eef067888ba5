package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/healthassist/healthassist-go/internal/client"
	"github.com/healthassist/healthassist-go/internal/rag"
	"go.uber.org/zap"
)

const selectorSystemPrompt = "You select relevant medical documents."

// SelectorService picks the reference passages relevant to a question.
// The LLM is asked to quote relevant passages verbatim and the reply is
// reconciled back to the store by exact substring match.
type SelectorService struct {
	llm    LLMClient
	store  *rag.Store
	logger *zap.Logger
}

// NewSelectorService creates a document selector
func NewSelectorService(llm LLMClient, store *rag.Store, logger *zap.Logger) *SelectorService {
	return &SelectorService{
		llm:    llm,
		store:  store,
		logger: logger,
	}
}

// Select returns the passages relevant to the query, in store order.
// Retrieval is best-effort: any provider failure degrades to an empty
// selection instead of failing the request.
func (s *SelectorService) Select(ctx context.Context, query string) []string {
	reply, err := s.llm.Complete(ctx, []client.Message{
		{Role: "system", Content: selectorSystemPrompt},
		{Role: "user", Content: s.buildSelectionPrompt(query)},
	}, 0)
	if err != nil {
		s.logger.Warn("document selection failed, continuing without context",
			zap.String("query", query),
			zap.Error(err))
		return nil
	}

	selected := s.store.MatchIn(reply)

	s.logger.Info("documents selected",
		zap.Int("selected", len(selected)),
		zap.Int("available", s.store.Count()))

	return selected
}

// buildSelectionPrompt asks for verbatim quotes of the relevant passages
func (s *SelectorService) buildSelectionPrompt(query string) string {
	var builder strings.Builder
	builder.WriteString("You are selecting relevant NHS documents for a healthcare assistant.\n\n")
	builder.WriteString("User question:\n")
	builder.WriteString(query)
	builder.WriteString("\n\nAvailable NHS documents:\n")
	for i, doc := range s.store.Documents() {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, doc))
	}
	builder.WriteString("\nReturn only the documents that are most relevant to the question.\n")
	builder.WriteString("Return them exactly as written.\n")
	builder.WriteString("If none are relevant, return an empty list.")
	return builder.String()
}
