package download

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Status texts shown by presentation layers
const (
	StatusReady             = "Ready"
	StatusFetchingInfo      = "Fetching video information..."
	StatusDownloading       = "Downloading..."
	StatusDownloadCompleted = "Download completed successfully!"
	StatusDownloadFailed    = "Download failed"
	StatusProgressFormat    = "Downloading... %.1f%%"
)

// ReporterFuncs adapts plain functions to Reporter. Nil fields are skipped.
type ReporterFuncs struct {
	Busy   func(bool)
	Status func(string)
	Result func(Outcome)
}

func (f ReporterFuncs) SetBusy(busy bool) {
	if f.Busy != nil {
		f.Busy(busy)
	}
}

func (f ReporterFuncs) SetStatusText(text string) {
	if f.Status != nil {
		f.Status(text)
	}
}

func (f ReporterFuncs) ReportResult(outcome Outcome) {
	if f.Result != nil {
		f.Result(outcome)
	}
}

// EventKind tags the signal carried by an Event
type EventKind string

const (
	EventBusy   EventKind = "busy"
	EventStatus EventKind = "status"
	EventResult EventKind = "result"
)

// Event is one reporter signal
type Event struct {
	Kind    EventKind
	Busy    bool
	Text    string
	Outcome Outcome
}

// ChannelReporter forwards signals over a channel so a single consumer
// goroutine can apply them to its own state.
type ChannelReporter struct {
	events chan Event
}

// NewChannelReporter creates a reporter with the given channel buffer
func NewChannelReporter(buffer int) *ChannelReporter {
	return &ChannelReporter{events: make(chan Event, buffer)}
}

// Events returns the receive side of the channel
func (c *ChannelReporter) Events() <-chan Event {
	return c.events
}

func (c *ChannelReporter) SetBusy(busy bool) {
	c.events <- Event{Kind: EventBusy, Busy: busy}
}

func (c *ChannelReporter) SetStatusText(text string) {
	c.events <- Event{Kind: EventStatus, Text: text}
}

func (c *ChannelReporter) ReportResult(outcome Outcome) {
	c.events <- Event{Kind: EventResult, Outcome: outcome}
}

// LogReporter logs every signal before passing it to Next
type LogReporter struct {
	Next Reporter
	Log  logrus.FieldLogger
}

func (l *LogReporter) SetBusy(busy bool) {
	l.Log.WithField("busy", busy).Debug("busy state changed")
	l.Next.SetBusy(busy)
}

func (l *LogReporter) SetStatusText(text string) {
	l.Log.WithField("status", text).Debug("status text")
	l.Next.SetStatusText(text)
}

func (l *LogReporter) ReportResult(outcome Outcome) {
	entry := l.Log.WithField("kind", outcome.Kind)
	if outcome.Err != nil {
		entry.WithError(outcome.Err).Warn("job failed")
	} else {
		entry.Info("job succeeded")
	}
	l.Next.ReportResult(outcome)
}

// jobReporter serialises the signals of one job. Engine progress callbacks may
// arrive from other goroutines; once the result is reported they are dropped.
type jobReporter struct {
	mu       sync.Mutex
	next     Reporter
	reported bool
}

func newJobReporter(next Reporter) *jobReporter {
	return &jobReporter{next: next}
}

func (r *jobReporter) setBusy(busy bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next.SetBusy(busy)
}

func (r *jobReporter) setStatusText(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next.SetStatusText(text)
}

// report delivers the outcome once and returns false on repeated calls
func (r *jobReporter) report(status string, outcome Outcome) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reported {
		return false
	}
	r.reported = true
	if status != "" {
		r.next.SetStatusText(status)
	}
	r.next.ReportResult(outcome)
	return true
}

func (r *jobReporter) progress(percent float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reported || percent < 0 {
		return
	}
	r.next.SetStatusText(fmt.Sprintf(StatusProgressFormat, percent))
}
