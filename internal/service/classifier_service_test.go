package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestKeywordPolicy(t *testing.T) {
	classifier, err := NewClassifierService(PolicyKeyword, nil, zap.NewNop())
	if err != nil {
		t.Fatalf("creating classifier: %v", err)
	}

	tests := []struct {
		message string
		want    bool
	}{
		{"I have a headache", true},
		{"My BLOOD pressure is high", true},
		{"book me a GP appointment", true},
		{"What's the weather today?", false},
		{"tell me a joke", false},
	}

	for _, tt := range tests {
		got, err := classifier.InScope(context.Background(), tt.message)
		if err != nil {
			t.Fatalf("InScope(%q) returned error: %v", tt.message, err)
		}
		if got != tt.want {
			t.Errorf("InScope(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestLLMPolicy_StrictYes(t *testing.T) {
	tests := []struct {
		reply string
		want  bool
	}{
		{"YES", true},
		{"  yes \n", true},
		{"NO", false},
		{"YES, it is healthcare-related", false},
		{"maybe", false},
	}

	for _, tt := range tests {
		llm := &fakeLLM{replies: []string{tt.reply}}
		classifier, err := NewClassifierService(PolicyLLM, llm, zap.NewNop())
		if err != nil {
			t.Fatalf("creating classifier: %v", err)
		}

		got, err := classifier.InScope(context.Background(), "some question")
		if err != nil {
			t.Fatalf("InScope returned error for reply %q: %v", tt.reply, err)
		}
		if got != tt.want {
			t.Errorf("reply %q: got %v, want %v", tt.reply, got, tt.want)
		}
	}
}

func TestLLMPolicy_ProviderFailureIsAnError(t *testing.T) {
	llm := &fakeLLM{errs: []error{errors.New("connection refused")}}
	classifier, err := NewClassifierService(PolicyLLM, llm, zap.NewNop())
	if err != nil {
		t.Fatalf("creating classifier: %v", err)
	}

	_, err = classifier.InScope(context.Background(), "is this a fever?")
	if err == nil {
		t.Fatal("expected a classification error, got none")
	}
}

func TestUnknownPolicyRejected(t *testing.T) {
	if _, err := NewClassifierService("fuzzy", nil, zap.NewNop()); err == nil {
		t.Fatal("expected an error for an unknown policy")
	}
}
