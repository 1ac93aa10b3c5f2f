package shared

import "time"

// TokenUsage tracks the tokens consumed by a request.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	Model            string
}

// AgentMeta holds operational metadata for one adapter execution.
type AgentMeta struct {
	AgentName string
	Usage     TokenUsage
	Latency   time.Duration
}

// NewAgentMeta stamps usage with the agent name and elapsed time.
func NewAgentMeta(name string, usage TokenUsage, started time.Time) AgentMeta {
	return AgentMeta{
		AgentName: name,
		Usage:     usage,
		Latency:   time.Since(started),
	}
}
