package driver

import "time"

// Stage names a step of a fold run.
type Stage string

const (
	StageLoad  Stage = "load"
	StageParse Stage = "parse"
	StageFold  Stage = "fold"
)

// Status is the progress state of a file within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for one file.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Entries int
	Err     error
	Elapsed time.Duration
}

// ProgressSink receives progress events. FoldDir calls it from several
// goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func (o Options) report(evt Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(evt)
	}
}
