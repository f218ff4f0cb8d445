package llm

import (
	"encoding/json"
	"fmt"
)

// wrappedRootKey holds a non-object root for providers whose structured
// output mode only accepts object schemas.
const wrappedRootKey = "items"

// objectRootDefinition returns a definition with an object root. Array
// (or scalar) roots are nested under wrappedRootKey; the bool reports
// whether wrapping happened.
func objectRootDefinition(def map[string]any) (map[string]any, bool) {
	if t, _ := def["type"].(string); t == "object" {
		return def, false
	}
	return map[string]any{
		"type":                 "object",
		"properties":           map[string]any{wrappedRootKey: def},
		"required":             []any{wrappedRootKey},
		"additionalProperties": false,
	}, true
}

// unwrapRoot extracts the nested value produced for a wrapped schema.
func unwrapRoot(content json.RawMessage) (json.RawMessage, error) {
	var env map[string]json.RawMessage
	if err := json.Unmarshal(content, &env); err != nil {
		return nil, &ErrInvalidResponse{Content: content, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	inner, ok := env[wrappedRootKey]
	if !ok {
		return nil, &ErrInvalidResponse{Content: content, Err: fmt.Errorf("missing %q in wrapped response", wrappedRootKey)}
	}
	return inner, nil
}
