package main

import (
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/ytget/nobsytdl/internal/download"
)

const spinnerType = 14

// spinnerReporter renders runner signals as a single terminal spinner line
type spinnerReporter struct {
	bar *progressbar.ProgressBar
}

func newSpinnerReporter(w io.Writer) *spinnerReporter {
	return &spinnerReporter{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSpinnerType(spinnerType),
			progressbar.OptionSetDescription(download.StatusReady),
			progressbar.OptionClearOnFinish(),
		),
	}
}

func (s *spinnerReporter) SetBusy(busy bool) {
	if busy {
		_ = s.bar.RenderBlank()
		return
	}
	_ = s.bar.Finish()
}

func (s *spinnerReporter) SetStatusText(text string) {
	s.bar.Describe(text)
	_ = s.bar.Add(1)
}

// ReportResult is a no-op; commands read the outcome from the job
func (s *spinnerReporter) ReportResult(download.Outcome) {}

var _ download.Reporter = (*spinnerReporter)(nil)

// drive applies events to r in arrival order. After stop is closed it applies
// whatever is still buffered and returns.
func drive(events *download.ChannelReporter, r download.Reporter, stop <-chan struct{}) {
	for {
		select {
		case ev := <-events.Events():
			apply(r, ev)
		case <-stop:
			for {
				select {
				case ev := <-events.Events():
					apply(r, ev)
				default:
					return
				}
			}
		}
	}
}

func apply(r download.Reporter, ev download.Event) {
	switch ev.Kind {
	case download.EventBusy:
		r.SetBusy(ev.Busy)
	case download.EventStatus:
		r.SetStatusText(ev.Text)
	case download.EventResult:
		r.ReportResult(ev.Outcome)
	}
}
