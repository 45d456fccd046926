package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	SevInfo Severity = iota
	SevMinor
	SevMajor
	SevCritical
	SevBlocker
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevMinor:
		return "MINOR"
	case SevMajor:
		return "MAJOR"
	case SevCritical:
		return "CRITICAL"
	case SevBlocker:
		return "BLOCKER"
	}
	return "UNKNOWN"
}

// ParseSeverity accepts the String form case-insensitively.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SevInfo, nil
	case "minor":
		return SevMinor, nil
	case "major":
		return SevMajor, nil
	case "critical":
		return SevCritical, nil
	case "blocker":
		return SevBlocker, nil
	}
	return SevInfo, fmt.Errorf("unknown severity %q", s)
}
