package gemcanvas

import (
	"context"
	"sync/atomic"
)

// MockGenerator is a mock implementation of Generator.
type MockGenerator struct {
	GenerateContentFunc func(ctx context.Context, prompt string, image *InputImage) (*Response, error)
	CloseFunc           func() error

	calls atomic.Int64
}

func (m *MockGenerator) GenerateContent(ctx context.Context, prompt string, image *InputImage) (*Response, error) {
	m.calls.Add(1)
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, image)
	}
	return &Response{}, nil
}

func (m *MockGenerator) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Calls reports how many remote calls were issued.
func (m *MockGenerator) Calls() int {
	return int(m.calls.Load())
}
