package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/healthassist/healthassist-go/internal/client"
	"go.uber.org/zap"
)

func TestCompose_ReturnsReplyUnmodified(t *testing.T) {
	llm := &fakeLLM{replies: []string{"- Rest and drink fluids."}}
	composer := NewComposerService(llm, zap.NewNop())

	reply, err := composer.Compose(context.Background(), "I have a cold", nil)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if reply != "- Rest and drink fluids." {
		t.Errorf("reply was modified: %q", reply)
	}
	if llm.temps[0] != 0.3 {
		t.Errorf("composition should use temperature 0.3, got %v", llm.temps[0])
	}
}

func TestCompose_EmbedsSelectedDocuments(t *testing.T) {
	llm := &fakeLLM{replies: []string{"ok"}}
	composer := NewComposerService(llm, zap.NewNop())

	docs := []string{"Asthma can usually be controlled well with inhalers."}
	if _, err := composer.Compose(context.Background(), "asthma help", docs); err != nil {
		t.Fatalf("compose failed: %v", err)
	}

	systemPrompt := llm.messages[0][0].Content
	if !strings.Contains(systemPrompt, docs[0]) {
		t.Error("system prompt does not embed the selected document")
	}
	if llm.messages[0][1].Content != "asthma help" {
		t.Errorf("user turn should be the raw message, got %q", llm.messages[0][1].Content)
	}
}

func TestCompose_DetailRequestChangesInstruction(t *testing.T) {
	llm := &fakeLLM{replies: []string{"ok", "ok"}}
	composer := NewComposerService(llm, zap.NewNop())

	if _, err := composer.Compose(context.Background(), "explain in detail how asthma works", nil); err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if _, err := composer.Compose(context.Background(), "how does asthma work", nil); err != nil {
		t.Fatalf("compose failed: %v", err)
	}

	detailed := llm.messages[0][0].Content
	brief := llm.messages[1][0].Content
	if !strings.Contains(detailed, "explicitly asked for more detail") {
		t.Error("detail request did not unlock the thorough-answer instruction")
	}
	if strings.Contains(brief, "explicitly asked for more detail") {
		t.Error("plain question should keep the brief-answer instruction")
	}
}

func TestCompose_ProviderFailurePropagates(t *testing.T) {
	llm := &fakeLLM{errs: []error{client.ErrNoCompletion}}
	composer := NewComposerService(llm, zap.NewNop())

	_, err := composer.Compose(context.Background(), "question", nil)
	if err == nil {
		t.Fatal("expected an error when the provider returns no completion")
	}
	if !errors.Is(err, client.ErrNoCompletion) {
		t.Errorf("error should wrap ErrNoCompletion, got %v", err)
	}
}
