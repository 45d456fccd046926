package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff Level = iota
	LevelError
	LevelPhase
	LevelDetail
	LevelDebug
)

// levels maps each level to its name and the finest scope it lets through.
// LevelError emits nothing live; the ring is dumped after a fault.
var levels = [...]struct {
	name  string
	depth Scope
}{
	LevelOff:    {"off", 0},
	LevelError:  {"error", 0},
	LevelPhase:  {"phase", ScopePass},
	LevelDetail: {"detail", ScopeFile},
	LevelDebug:  {"debug", ScopeRule},
}

func (l Level) String() string {
	if int(l) < len(levels) {
		return levels[l].name
	}
	return "unknown"
}

// ParseLevel accepts the level names in any case; "" means off.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelOff, nil
	}
	s = strings.ToLower(s)
	for l, info := range levels {
		if info.name == s {
			return Level(l), nil // #nosec G115 -- len(levels) fits uint8
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
}

// ShouldEmit reports whether events of scope pass at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(levels) && scope <= levels[l].depth
}
