package jsonutil

import (
	"bytes"
	"encoding/json"
	"strings"
)

// ExtractJSONPayload strips a markdown code fence from generated text. Models
// asked for raw JSON still frequently wrap it in ``` or ```json blocks; the
// content inside the first fence wins, otherwise the trimmed text is returned
// as-is.
func ExtractJSONPayload(text string) string {
	trimmed := strings.TrimSpace(text)
	start := strings.Index(trimmed, "```")
	if start < 0 {
		return trimmed
	}
	rest := trimmed[start+3:]
	// Language tag on the fence line, e.g. ```json
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		tag := strings.TrimSpace(rest[:nl])
		if tag == "" || isFenceTag(tag) {
			rest = rest[nl+1:]
		}
	}
	if end := strings.Index(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

func isFenceTag(tag string) bool {
	switch strings.ToLower(tag) {
	case "json", "javascript", "js":
		return true
	default:
		return false
	}
}

// MarshalNoEscape encodes v into JSON without HTML-escaping <, >, and &.
// Used when embedding values into prompts.
func MarshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// MarshalIndentNoEscape is MarshalNoEscape with indentation.
func MarshalIndentNoEscape(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalFlex unmarshals raw into v, tolerating a payload that arrives as a
// JSON-encoded string of JSON (one unwrap level).
func UnmarshalFlex(raw []byte, v any) error {
	direct := json.Unmarshal(raw, v)
	if direct == nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if err := json.Unmarshal([]byte(s), v); err == nil {
			return nil
		}
	}
	return direct
}
