package model

// ToolCall is a schema-validated request to run one named player operation.
//
// ToolCalls are created only by the agent's normalizer after the arguments
// have passed registry validation. Anything downstream (the dispatcher in
// particular) may assume a ToolCall references a known tool and that its
// arguments satisfy that tool's parameter schema.
type ToolCall struct {
	Name      string
	Arguments map[string]any
}

// Invocation is an unvalidated tool invocation as reported by a provider,
// either from a native function-calling response or scraped out of free
// text. It becomes a ToolCall only after registry validation.
type Invocation struct {
	Name      string
	Arguments map[string]any
}

// RawResponse is what every provider adapter returns from Send, regardless
// of how the backend actually shaped its reply. Text carries the assistant
// prose; Invocations carries zero or more unvalidated tool invocations.
type RawResponse struct {
	Text        string
	Invocations []Invocation
}

// AgentResponse is the sole contract between the provider layer and
// everything downstream. Nothing past the normalizer depends on which
// provider produced it.
type AgentResponse struct {
	Message   string
	ToolCalls []ToolCall
}
