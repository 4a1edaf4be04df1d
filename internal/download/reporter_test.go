package download

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/nobsytdl/internal/model"
)

func TestChannelReporter_PreservesOrder(t *testing.T) {
	rep := NewChannelReporter(8)

	rep.SetBusy(true)
	rep.SetStatusText(StatusDownloading)
	rep.ReportResult(Outcome{Kind: model.JobKindDownload})
	rep.SetBusy(false)

	var kinds []EventKind
	for i := 0; i < 4; i++ {
		kinds = append(kinds, (<-rep.Events()).Kind)
	}
	assert.Equal(t, []EventKind{EventBusy, EventStatus, EventResult, EventBusy}, kinds)
}

func TestReporterFuncs_NilSafe(t *testing.T) {
	var rep Reporter = ReporterFuncs{}
	assert.NotPanics(t, func() {
		rep.SetBusy(true)
		rep.SetStatusText("x")
		rep.ReportResult(Outcome{})
	})

	var got string
	rep = ReporterFuncs{Status: func(s string) { got = s }}
	rep.SetStatusText(StatusReady)
	assert.Equal(t, StatusReady, got)
}

func TestLogReporter_LogsAndForwards(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	var results []Outcome
	rep := &LogReporter{
		Next: ReporterFuncs{Result: func(o Outcome) { results = append(results, o) }},
		Log:  logger,
	}

	rep.SetBusy(true)
	rep.ReportResult(Outcome{Kind: model.JobKindInfo, Err: errors.New("boom")})
	rep.ReportResult(Outcome{Kind: model.JobKindDownload})

	require.Len(t, results, 2)
	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	assert.Equal(t, logrus.DebugLevel, entries[0].Level)
	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, "job failed", entries[1].Message)
	assert.Equal(t, logrus.InfoLevel, entries[2].Level)
}

func TestJobReporter_ReportsOnce(t *testing.T) {
	rec := &recorder{}
	rep := newJobReporter(rec)

	assert.True(t, rep.report(StatusDownloadCompleted, Outcome{}))
	assert.False(t, rep.report(StatusDownloadFailed, Outcome{Err: errors.New("late")}))
	rep.progress(50)

	assert.Equal(t, []string{StatusDownloadCompleted}, rec.statusTexts())
	assert.Len(t, rec.results(), 1)
}

func TestJobReporter_SkipsUnknownProgress(t *testing.T) {
	rec := &recorder{}
	rep := newJobReporter(rec)

	rep.progress(-1)
	rep.progress(42)

	assert.Equal(t, []string{"Downloading... 42.0%"}, rec.statusTexts())
}
