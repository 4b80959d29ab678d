package llmclient

import (
	"context"
	"time"

	"readiness/internal/observability"
)

// Instrumented decorates a Client with per-agent call metrics. The agent
// label is fixed at construction so each specialist wraps the shared
// underlying client with its own label.
type Instrumented struct {
	inner Client
	agent string
}

func NewInstrumented(inner Client, agent string) *Instrumented {
	return &Instrumented{inner: inner, agent: agent}
}

func (c *Instrumented) Name() string { return c.inner.Name() }
func (c *Instrumented) Close() error { return c.inner.Close() }

func (c *Instrumented) Generate(ctx context.Context, messages []Message) (string, error) {
	start := time.Now()
	out, err := c.inner.Generate(ctx, messages)
	observability.LLMCallDuration.WithLabelValues(c.agent).Observe(time.Since(start).Seconds())
	if err != nil {
		observability.LLMCallErrors.WithLabelValues(c.agent).Inc()
	}
	return out, err
}
