package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeRule, false},
		{LevelDebug, ScopeRule, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Fatalf("%s/%s = %v", tc.level, tc.scope, got)
		}
	}
}

func TestRingKeepsNewest(t *testing.T) {
	r := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(r, ScopePass, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 2 || snap[0].Name != "b" || snap[1].Name != "c" {
		t.Fatalf("snapshot %+v", snap)
	}
}

func TestStreamNDJSONAndContext(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	ctx, outer := BeginCtx(ctx, ScopePass, "dispatch")
	_, inner := BeginCtx(ctx, ScopeFile, "file:a.cs")
	inner.WithExtra("rules", "4").End("")
	Point(tr, ScopeRule, "rule:x", "", 0) // filtered at detail
	outer.End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d events:\n%s", len(lines), buf.String())
	}
	var ev struct {
		Kind     string            `json:"kind"`
		Name     string            `json:"name"`
		ParentID uint64            `json:"parent_id"`
		Extra    map[string]string `json:"extra"`
	}
	if err := json.Unmarshal([]byte(lines[2]), &ev); err != nil {
		t.Fatal(err)
	}
	if ev.Kind != "end" || ev.Name != "file:a.cs" || ev.ParentID != outer.ID() || ev.Extra["rules"] != "4" {
		t.Fatalf("inner end %+v", ev)
	}
}

func TestNopIsDisabled(t *testing.T) {
	if FromContext(context.Background()).Enabled() {
		t.Fatal("default tracer enabled")
	}
	sp := Begin(Nop, ScopeDriver, "x", 0)
	if sp.ID() != 0 || sp.End("") != 0 {
		t.Fatal("nop span recorded")
	}
}

func TestHeartbeatTicksUntilStopped(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(r.Snapshot()) == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	snap := r.Snapshot()
	if len(snap) == 0 || snap[0].Kind != KindHeartbeat || !strings.HasPrefix(snap[0].Detail, "#1 ") {
		t.Fatalf("heartbeat events %+v", snap)
	}
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("heartbeat started for a disabled tracer")
	}
}

func TestWithTracerKeepsCurrentSpan(t *testing.T) {
	r := NewRingTracer(8, LevelDebug)
	ctx, sp := BeginCtx(WithTracer(context.Background(), r), ScopePass, "parse")
	ctx = WithTracer(ctx, Nop)
	if CurrentSpan(ctx).SpanID != sp.ID() || FromContext(ctx).Enabled() {
		t.Fatalf("binding lost: span %d", CurrentSpan(ctx).SpanID)
	}
}

func TestNewBuildsSinksByMode(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	multi, ok := tr.(*MultiTracer)
	if !ok || multi.Ring() == nil {
		t.Fatalf("both mode built %T", tr)
	}
	Point(tr, ScopePass, "load", "", 0)
	if !strings.Contains(buf.String(), "load") || len(multi.Ring().Snapshot()) != 1 {
		t.Fatalf("event not fanned out: %q", buf.String())
	}
	if _, err := ParseMode("tape"); err == nil {
		t.Fatal("unknown mode accepted")
	}
	if tr, _ := New(Config{Level: LevelOff}); tr != Nop {
		t.Fatal("off level must give Nop")
	}
}

func TestTextFormat(t *testing.T) {
	ev := &Event{
		Time:     time.Date(2024, 1, 2, 3, 4, 5, 6000, time.UTC),
		Kind:     KindSpanEnd,
		Scope:    ScopeFile,
		ParentID: 1,
		Name:     "file:a.cs",
		Detail:   "3ms",
		Extra:    map[string]string{"z": "1", "a": "2"},
	}
	want := "03:04:05.000006 [file  ]   ← file:a.cs (3ms) {a=2, z=1}\n"
	if got := string(FormatEvent(ev, FormatText)); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("DETAIL"); err != nil || l != LevelDetail {
		t.Fatalf("ParseLevel = %v, %v", l, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatalf("expected an error")
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat = %v, %v", f, err)
	}
}
