package batch

import "time"

// Stage is a step in processing one descriptor.
type Stage string

const (
	StageLoad      Stage = "load"
	StageTranslate Stage = "translate"
	StageStore     Stage = "store"
)

// Status is the progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusCached  Status = "cached"
	StatusError   Status = "error"
)

// Event reports progress for a file, or for the whole run when File is
// empty.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// Sink consumes progress events. Implementations must be safe for
// concurrent use.
type Sink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- ev
}

// FuncSink adapts a function.
type FuncSink func(Event)

func (f FuncSink) OnEvent(ev Event) {
	if f != nil {
		f(ev)
	}
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
