package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Format is the output encoding of a stream tracer.
type Format uint8

const (
	FormatAuto   Format = iota // по расширению файла
	FormatText
	FormatNDJSON
)

// ParseFormat accepts auto, text and ndjson (json is an alias).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

// FormatEvent encodes ev as one line; anything but NDJSON is text.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		line, err := json.Marshal(ev)
		if err != nil {
			return nil // строки и map[string]string сериализуются всегда
		}
		return append(line, '\n')
	}
	return appendText(nil, ev)
}

// appendText renders "15:04:05.000000 [scope ]   → name (detail) {k=v, ...}".
// Child spans are indented one step.
func appendText(b []byte, ev *Event) []byte {
	b = ev.Time.AppendFormat(b, "15:04:05.000000")
	b = fmt.Appendf(b, " [%-6s] ", ev.Scope)
	if ev.ParentID != 0 {
		b = append(b, "  "...)
	}
	b = append(b, ev.Kind.glyph()...)
	b = append(b, ' ')
	b = append(b, ev.Name...)
	if ev.Detail != "" {
		b = fmt.Appendf(b, " (%s)", ev.Detail)
	}
	for i, k := range slices.Sorted(maps.Keys(ev.Extra)) {
		sep := ", "
		if i == 0 {
			sep = " {"
		}
		b = fmt.Appendf(b, "%s%s=%s", sep, k, ev.Extra[k])
	}
	if len(ev.Extra) > 0 {
		b = append(b, '}')
	}
	return append(b, '\n')
}
