package webhooks

import (
	"encoding/json"
	"strings"
)

// ParseCustomData rebuilds checkout metadata from "key=value" tokens. Only the first '=' splits,
// a token without '=' maps to "", and a later duplicate key overwrites an earlier one.
func ParseCustomData(tokens []string) map[string]string {
	out := make(map[string]string, len(tokens))
	for _, tok := range tokens {
		key, value, _ := strings.Cut(tok, "=")
		out[key] = value
	}
	return out
}

// decodeCustomData accepts either the token array form or a flat object of strings.
// Anything else, including null, yields an empty map. Non-string entries are skipped.
func decodeCustomData(raw json.RawMessage) map[string]string {
	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		tokens := make([]string, 0, len(list))
		for _, v := range list {
			if s, ok := v.(string); ok {
				tokens = append(tokens, s)
			}
		}
		return ParseCustomData(tokens)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil && obj != nil {
		out := make(map[string]string, len(obj))
		for k, v := range obj {
			if s, ok := v.(string); ok {
				out[k] = s
			}
		}
		return out
	}
	return map[string]string{}
}
