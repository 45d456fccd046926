package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Timer sums the time spent in named phases of a run. Workers report
// concurrently; a phase run once per file accumulates across files, so
// phase times can add up to more than the wall time. A nil *Timer
// records nothing.
type Timer struct {
	mu      sync.Mutex
	started time.Time
	order   []string
	phases  map[string]*phase
}

type phase struct {
	dur   time.Duration
	count int
}

func NewTimer() *Timer {
	return &Timer{started: time.Now(), phases: map[string]*phase{}}
}

// Add accumulates d into the phase called name.
func (t *Timer) Add(name string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.phases[name]
	if p == nil {
		p = &phase{}
		t.phases[name] = p
		t.order = append(t.order, name)
	}
	p.dur += d
	p.count++
}

// Track starts timing name; calling the returned func stops it.
//
//	defer timer.Track("load")()
func (t *Timer) Track(name string) func() {
	if t == nil {
		return func() {}
	}
	start := time.Now()
	return func() { t.Add(name, time.Since(start)) }
}

// Measure runs fn under Track.
func (t *Timer) Measure(name string, fn func() error) error {
	defer t.Track(name)()
	return fn()
}

// PhaseReport is one phase in serialisable form.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Count      int     `json:"count,omitempty"`
}

// Report is a snapshot of the timer. TotalMS is the wall time since
// NewTimer.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	rep := Report{TotalMS: millis(time.Since(t.started)), Phases: make([]PhaseReport, 0, len(t.order))}
	for _, name := range t.order {
		p := t.phases[name]
		rep.Phases = append(rep.Phases, PhaseReport{Name: name, DurationMS: millis(p.dur), Count: p.count})
	}
	return rep
}

// Summary renders the report as an aligned table for stderr.
func (t *Timer) Summary() string {
	rep := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, p := range rep.Phases {
		fmt.Fprintf(&b, "  %-12s %9.2f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			fmt.Fprintf(&b, "  (%d calls)", p.Count)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "  %-12s %9.2f ms\n", "wall", rep.TotalMS)
	return b.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
