package observ

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAddConcurrent(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("parse", time.Millisecond)
		}()
	}
	wg.Wait()

	rep := tm.Report()
	if len(rep.Phases) != 1 {
		t.Fatalf("expected one aggregated phase, got %+v", rep.Phases)
	}
	if rep.Phases[0].Count != 16 || rep.Phases[0].DurationMS != 16 {
		t.Fatalf("unexpected aggregate: %+v", rep.Phases[0])
	}
}

func TestTimerKeepsFirstUseOrder(t *testing.T) {
	tm := NewTimer()
	tm.Add("load", time.Millisecond)
	tm.Track("parse")()
	tm.Add("load", time.Millisecond)

	rep := tm.Report()
	if len(rep.Phases) != 2 || rep.Phases[0].Name != "load" || rep.Phases[1].Name != "parse" {
		t.Fatalf("unexpected order: %+v", rep.Phases)
	}
	if rep.TotalMS < 0 {
		t.Fatalf("negative wall time %v", rep.TotalMS)
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "load") || !strings.Contains(sum, "(2 calls)") || !strings.Contains(sum, "wall") {
		t.Fatalf("unexpected summary:\n%s", sum)
	}
}

func TestTimerMeasure(t *testing.T) {
	tm := NewTimer()
	want := errors.New("boom")
	if err := tm.Measure("bind", func() error { return want }); !errors.Is(err, want) {
		t.Fatalf("Measure returned %v", err)
	}
	if rep := tm.Report(); len(rep.Phases) != 1 || rep.Phases[0].Count != 1 {
		t.Fatalf("unexpected report: %+v", rep)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.Track("x")()
	tm.Add("y", time.Second)
	if rep := tm.Report(); len(rep.Phases) != 0 {
		t.Fatalf("nil timer reported phases: %+v", rep)
	}
}
