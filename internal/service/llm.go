package service

import (
	"context"

	"github.com/healthassist/healthassist-go/internal/client"
)

// LLMClient is the completion capability the pipeline needs from the
// provider. *client.GroqClient satisfies it; tests substitute a fake.
type LLMClient interface {
	Complete(ctx context.Context, messages []client.Message, temperature float64) (string, error)
}
