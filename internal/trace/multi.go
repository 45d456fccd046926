package trace

import "errors"

// MultiTracer fans events out to several sinks, typically a stream and
// the crash ring.
type MultiTracer struct {
	sinks []Tracer
	level Level
}

func NewMultiTracer(level Level, sinks ...Tracer) *MultiTracer {
	return &MultiTracer{sinks: sinks, level: level}
}

// Emit gives each sink its own copy since sinks stamp Seq.
func (t *MultiTracer) Emit(ev *Event) {
	for _, s := range t.sinks {
		cp := *ev
		s.Emit(&cp)
	}
}

func (t *MultiTracer) each(op func(Tracer) error) error {
	errs := make([]error, 0, len(t.sinks))
	for _, s := range t.sinks {
		errs = append(errs, op(s))
	}
	return errors.Join(errs...)
}

func (t *MultiTracer) Flush() error { return t.each(Tracer.Flush) }
func (t *MultiTracer) Close() error { return t.each(Tracer.Close) }

func (t *MultiTracer) Level() Level  { return t.level }
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }

// Ring returns the ring sink, or nil when there is none.
func (t *MultiTracer) Ring() *RingTracer {
	for _, s := range t.sinks {
		if r, ok := s.(*RingTracer); ok {
			return r
		}
	}
	return nil
}
