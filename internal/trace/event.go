package trace

import (
	"encoding/json"
	"time"
)

// Kind is what an event marks.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindHeartbeat
)

var kindInfo = [...]struct{ name, glyph string }{
	KindSpanBegin: {"begin", "→"},
	KindSpanEnd:   {"end", "←"},
	KindPoint:     {"point", "•"},
	KindHeartbeat: {"heartbeat", "♡"},
}

func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindInfo) {
		return "unknown"
	}
	return kindInfo[k].name
}

func (k Kind) glyph() string {
	if k == 0 || int(k) >= len(kindInfo) {
		return "?"
	}
	return kindInfo[k].glyph
}

// Scope is the granularity of an event; lower values are coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // команда CLI
	ScopePass                    // load, parse, bind, dispatch, fix
	ScopeFile
	ScopeRule // одно правило на одном файле
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeRule:   "rule",
}

func (s Scope) String() string {
	if s == 0 || int(s) >= len(scopeNames) {
		return "unknown"
	}
	return scopeNames[s]
}

// Event is one trace record. Name reads like "parse", "file:src/a.cs" or
// "rule:indexof-positive".
type Event struct {
	Time     time.Time
	Seq      uint64 // глобальный, монотонный
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 у корней
	GID      uint64
	Name     string
	Detail   string
	Extra    map[string]string
}

// MarshalJSON writes the NDJSON shape: enums as names, microsecond time.
func (ev *Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Time     string            `json:"time"`
		Seq      uint64            `json:"seq"`
		Kind     string            `json:"kind"`
		Scope    string            `json:"scope"`
		SpanID   uint64            `json:"span_id,omitempty"`
		ParentID uint64            `json:"parent_id,omitempty"`
		GID      uint64            `json:"gid,omitempty"`
		Name     string            `json:"name"`
		Detail   string            `json:"detail,omitempty"`
		Extra    map[string]string `json:"extra,omitempty"`
	}{
		ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		ev.Seq, ev.Kind.String(), ev.Scope.String(),
		ev.SpanID, ev.ParentID, ev.GID,
		ev.Name, ev.Detail, ev.Extra,
	})
}
