package provider

import (
	"encoding/json"
	"strings"

	"maestro/config"
	"maestro/model"
)

// ExtractInvocations scans free text for the first balanced JSON object or
// array and shape-checks it into tool invocations.
//
// This is the fallback path for backends without native function calling
// (and for models that "leak" tool calls into their prose on backends that
// have it). The scraping is deliberately confined to this file: adapters
// call it, and nothing outside the provider package ever sees unparsed
// text. Finding no usable JSON is a normal outcome, not an error: the
// original text is returned unchanged and the caller degrades to a
// chat-only response.
//
// On success the matched JSON span is removed from the returned remainder
// so the user is not shown raw tool syntax.
func ExtractInvocations(text string) ([]model.Invocation, string) {
	start, end, ok := scanBalancedJSON(text)
	if !ok {
		return nil, text
	}

	var parsed any
	if err := json.Unmarshal([]byte(text[start:end]), &parsed); err != nil {
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[extract] candidate JSON did not parse: %v", err)
		}
		return nil, text
	}

	var invocations []model.Invocation
	switch v := parsed.(type) {
	case map[string]any:
		if inv, ok := toInvocation(v); ok {
			invocations = append(invocations, inv)
		}
	case []any:
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if inv, ok := toInvocation(m); ok {
				invocations = append(invocations, inv)
			}
		}
	}

	if len(invocations) == 0 {
		return nil, text
	}

	remainder := strings.TrimSpace(text[:start] + text[end:])
	return invocations, remainder
}

// toInvocation shape-checks one parsed object. Models name the fields
// inconsistently, so a few synonyms are accepted; anything without a tool
// name is rejected.
func toInvocation(m map[string]any) (model.Invocation, bool) {
	// Some models wrap the call: {"function": {"name": ..., "arguments": ...}}
	if inner, ok := m["function"].(map[string]any); ok {
		return toInvocation(inner)
	}

	var name string
	for _, key := range []string{"tool", "name", "tool_name"} {
		if s, ok := m[key].(string); ok && s != "" {
			name = s
			break
		}
	}
	if name == "" {
		return model.Invocation{}, false
	}

	args := map[string]any{}
	for _, key := range []string{"arguments", "args", "parameters"} {
		if a, ok := m[key].(map[string]any); ok {
			args = a
			break
		}
	}

	return model.Invocation{Name: name, Arguments: args}, true
}

// scanBalancedJSON locates the first balanced JSON object or array in text
// and returns its byte offsets. It tracks string literals and escapes, so
// braces inside quoted values do not confuse the depth count.
func scanBalancedJSON(text string) (start, end int, ok bool) {
	start = strings.IndexAny(text, "{[")
	if start == -1 {
		return 0, 0, false
	}

	var (
		depth    int
		inString bool
		escaped  bool
	)

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return start, i + 1, true
			}
		}
	}

	// Ran off the end with the bracket still open: not balanced.
	return 0, 0, false
}
