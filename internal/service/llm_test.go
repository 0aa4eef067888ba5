package service

import (
	"context"

	"github.com/healthassist/healthassist-go/internal/client"
)

// fakeLLM scripts provider replies per call, in order
type fakeLLM struct {
	replies  []string
	errs     []error
	calls    int
	messages [][]client.Message
	temps    []float64
}

func (f *fakeLLM) Complete(ctx context.Context, messages []client.Message, temperature float64) (string, error) {
	i := f.calls
	f.calls++
	f.messages = append(f.messages, messages)
	f.temps = append(f.temps, temperature)

	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.replies) {
		return f.replies[i], nil
	}
	return "", nil
}
