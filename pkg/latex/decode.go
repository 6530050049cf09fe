package latex

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNotObject = errors.New("decoded payload is not a JSON object")

// StripCodeFence removes the markdown code fence models like to wrap JSON in and
// trims any prose around the outermost object.
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "{") {
		return s
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

// Decode parses repaired text into an untyped record. Numbers are kept as
// json.Number so they render exactly as the model wrote them.
func Decode(repaired string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(repaired)))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode repaired payload: %w", err)
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return doc, nil
}
