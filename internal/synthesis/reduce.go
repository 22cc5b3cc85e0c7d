package synthesis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Generation responses arrive as model-written JSON, which is not
// always shaped the way the prompt asked. The reducers here accept the
// variations seen in practice and normalize them.

// decodeList parses raw as either a bare JSON array or an object
// holding the array under one of containerKeys (tried in order). An
// object with none of the keys yields an empty list, not an error.
func decodeList[T any](raw string, containerKeys ...string) ([]T, error) {
	trimmed := strings.TrimSpace(raw)

	if strings.HasPrefix(trimmed, "[") {
		var out []T
		if err := json.Unmarshal([]byte(trimmed), &out); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return out, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &obj); err != nil {
		return nil, fmt.Errorf("decode list container: %w", err)
	}

	for _, key := range containerKeys {
		rawList, ok := obj[key]
		if !ok {
			continue
		}
		var out []T
		if err := json.Unmarshal(rawList, &out); err != nil {
			return nil, fmt.Errorf("decode list under %q: %w", key, err)
		}
		return out, nil
	}

	return []T{}, nil
}

// decodeObject parses raw into out. Missing fields keep their zero
// values; callers rely on that for optional response keys.
func decodeObject[T any](raw string, out *T) error {
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), out); err != nil {
		return fmt.Errorf("decode object: %w", err)
	}
	return nil
}

// truncate cuts s to at most n runes, mirroring the prompt budget
// limits applied when contexts are assembled. Cutting on rune
// boundaries keeps multi-byte text valid UTF-8.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// tail returns the last n runes of s.
func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
