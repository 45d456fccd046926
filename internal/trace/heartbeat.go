package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat emits a tick at a fixed interval. A rule stuck on one file shows
// up as ticks after that file's begin event with no end in between.
type Heartbeat struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// StartHeartbeat returns nil when tracing is off or interval <= 0.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{stop: make(chan struct{}), done: make(chan struct{})}
	go h.run(tracer, interval)
	return h
}

func (h *Heartbeat) run(tracer Tracer, interval time.Duration) {
	defer close(h.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	start := time.Now()
	gid := getGoroutineID()
	for tick := 1; ; tick++ {
		select {
		case <-h.stop:
			return
		case now := <-ticker.C:
			ev := event(KindHeartbeat, ScopeDriver, "heartbeat", gid)
			ev.Detail = fmt.Sprintf("#%d +%s", tick, now.Sub(start).Round(time.Millisecond))
			tracer.Emit(ev)
		}
	}
}

// Stop ends the ticks and waits for the goroutine. Nil-safe, idempotent.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	<-h.done
}
