package driver

import "time"

// Stage is a step of the per-file pipeline as the progress view sees it.
type Stage string

const (
	StageLoad     Stage = "load"
	StageParse    Stage = "parse"
	StageBind     Stage = "bind"
	StageDispatch Stage = "dispatch"
	StageFix      Stage = "fix"
)

// Status is where a file is inside its stage. StatusCached means the
// findings came from the result cache and no stage ran.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached"
	StatusError   Status = "error"
)

// Event is one progress notification about one file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink receives events from worker goroutines; implementations
// must be safe for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into Ch. Sends block, so a consumer must
// drain Ch until the run returns.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(ev Event) { f(ev) }

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

