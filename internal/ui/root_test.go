package ui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/nobsytdl/internal/config"
	"github.com/ytget/nobsytdl/internal/download"
	"github.com/ytget/nobsytdl/internal/model"
)

type stubEngine struct {
	mu       sync.Mutex
	params   []model.DownloadParams
	metaErr  error
	download error
}

func (s *stubEngine) ExtractMetadata(_ context.Context, url string) (*model.VideoInfoRaw, error) {
	if s.metaErr != nil {
		return nil, s.metaErr
	}
	return &model.VideoInfoRaw{
		Title:   "Stub Video",
		Formats: []model.RawFormat{{Height: 720, Ext: "mp4"}},
	}, nil
}

func (s *stubEngine) Download(_ context.Context, params model.DownloadParams) (*model.DownloadSuccess, error) {
	s.mu.Lock()
	s.params = append(s.params, params)
	s.mu.Unlock()
	if s.download != nil {
		return nil, s.download
	}
	return &model.DownloadSuccess{Path: "/tmp/Stub Video.mp3"}, nil
}

func newTestUI(t *testing.T, engine download.Engine) (*RootUI, *config.Settings) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)
	window := test.NewWindow(nil)
	settings := config.NewSettings(app, t.TempDir())
	return NewRootUI(context.Background(), window, settings, engine), settings
}

func waitLastJob(t *testing.T, ui *RootUI) download.Outcome {
	t.Helper()
	require.NotNil(t, ui.lastJob, "no job was submitted")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	outcome, err := ui.lastJob.Wait(ctx)
	require.NoError(t, err)
	return outcome
}

func TestRootUI_InitialForm(t *testing.T) {
	ui, settings := newTestUI(t, &stubEngine{})

	assert.Equal(t, settings.GetDownloadDirectory(), ui.pathEntry.Text)
	assert.Equal(t, "best", ui.qualitySelect.Selected)
	assert.Equal(t, []string{"best", "worst", "720p", "480p", "360p", "144p"}, ui.qualitySelect.Options)
	assert.True(t, ui.mp3Check.Disabled())
	assert.False(t, ui.progress.Visible())
	assert.Equal(t, download.StatusReady, ui.statusLabel.Text)
	assert.Equal(t, "Get Video Info", ui.infoBtn.Text)
}

func TestRootUI_AudioOnlyTogglesMP3(t *testing.T) {
	ui, _ := newTestUI(t, &stubEngine{})

	ui.audioCheck.SetChecked(true)
	assert.False(t, ui.mp3Check.Disabled())
	assert.True(t, ui.qualitySelect.Disabled())

	ui.audioCheck.SetChecked(false)
	assert.True(t, ui.mp3Check.Disabled())
}

func TestRootUI_GetInfo(t *testing.T) {
	ui, _ := newTestUI(t, &stubEngine{})

	ui.urlEntry.SetText("https://www.youtube.com/watch?v=abc")
	test.Tap(ui.infoBtn)

	outcome := waitLastJob(t, ui)
	require.True(t, outcome.OK())
	assert.Contains(t, ui.infoText.Text, "Title: Stub Video")
	assert.Contains(t, ui.infoText.Text, "720p - mp4")
	assert.Equal(t, download.StatusReady, ui.statusLabel.Text)
	assert.False(t, ui.infoBtn.Disabled())
	assert.False(t, ui.progress.Visible())
}

func TestRootUI_GetInfoFailureKeepsInfoText(t *testing.T) {
	ui, _ := newTestUI(t, &stubEngine{metaErr: errors.New("boom")})
	ui.infoText.SetText("previous")

	ui.urlEntry.SetText("https://bad")
	test.Tap(ui.infoBtn)

	outcome := waitLastJob(t, ui)
	assert.Equal(t, "Failed to get video info: boom", outcome.Message())
	assert.Equal(t, "previous", ui.infoText.Text)
	assert.Equal(t, download.StatusReady, ui.statusLabel.Text)
}

func TestRootUI_DownloadValidation(t *testing.T) {
	engine := &stubEngine{}
	ui, _ := newTestUI(t, engine)

	ui.urlEntry.SetText("   ")
	test.Tap(ui.downloadBtn)

	assert.Nil(t, ui.lastJob)
	assert.False(t, ui.runner.Busy())
	assert.Equal(t, download.StatusReady, ui.statusLabel.Text)
	assert.NotNil(t, ui.window.Canvas().Overlays().Top(), "an error dialog should be shown")
	assert.Empty(t, engine.params)
}

func TestRootUI_DownloadAudioMP3(t *testing.T) {
	engine := &stubEngine{}
	ui, settings := newTestUI(t, engine)
	dir := t.TempDir()

	ui.urlEntry.SetText("https://www.youtube.com/watch?v=abc")
	ui.pathEntry.SetText(dir)
	ui.audioCheck.SetChecked(true)
	ui.mp3Check.SetChecked(true)
	test.Tap(ui.downloadBtn)

	outcome := waitLastJob(t, ui)
	require.True(t, outcome.OK())
	assert.Equal(t, download.StatusDownloadCompleted, ui.statusLabel.Text)
	assert.False(t, ui.downloadBtn.Disabled())

	engine.mu.Lock()
	require.Len(t, engine.params, 1)
	params := engine.params[0]
	engine.mu.Unlock()
	assert.Equal(t, "bestaudio/best", params.Format.Expression)
	require.NotNil(t, params.Format.PostProcess)
	assert.Equal(t, "mp3", params.Format.PostProcess.Codec)

	assert.Equal(t, dir, settings.GetDownloadDirectory())
	assert.True(t, settings.GetAudioOnly())
	assert.True(t, settings.GetConvertToMP3())
}

func TestRootUI_DownloadFailure(t *testing.T) {
	ui, _ := newTestUI(t, &stubEngine{download: errors.New("HTTP Error 403")})

	ui.urlEntry.SetText("https://www.youtube.com/watch?v=abc")
	ui.pathEntry.SetText(t.TempDir())
	ui.qualitySelect.SetSelected("360p")
	test.Tap(ui.downloadBtn)

	outcome := waitLastJob(t, ui)
	assert.Equal(t, "Download failed: HTTP Error 403", outcome.Message())
	assert.Equal(t, download.StatusDownloadFailed, ui.statusLabel.Text)
}

func TestRootUI_LanguageChange(t *testing.T) {
	ui, settings := newTestUI(t, &stubEngine{})

	ui.onLanguageChange("ru")
	assert.Equal(t, "ru", settings.GetLanguage())
	assert.Equal(t, "Скачать", ui.downloadBtn.Text)

	ui.onLanguageChange("en")
	assert.Equal(t, "Download", ui.downloadBtn.Text)
}

// busyOrchestrator rejects every submission as if a job were running
type busyOrchestrator struct {
	requests []model.DownloadRequest
}

func (b *busyOrchestrator) SubmitInfoFetch(string) (*download.Job, error) {
	return nil, download.ErrJobInProgress
}

func (b *busyOrchestrator) SubmitDownload(req model.DownloadRequest) (*download.Job, error) {
	b.requests = append(b.requests, req)
	return nil, download.ErrJobInProgress
}

func (b *busyOrchestrator) State() model.JobState { return model.JobStateRunning }

func (b *busyOrchestrator) Busy() bool { return true }

func TestRootUI_RejectedSubmissionShowsError(t *testing.T) {
	ui, _ := newTestUI(t, &stubEngine{})
	orchestrator := &busyOrchestrator{}
	ui.runner = orchestrator

	ui.urlEntry.SetText("https://example.com/v")
	ui.onDownloadClick()

	require.Len(t, orchestrator.requests, 1)
	assert.Nil(t, ui.lastJob)
	assert.NotNil(t, ui.window.Canvas().Overlays().Top(), "an error dialog should be shown")

	ui.onGetInfoClick()
	assert.Nil(t, ui.lastJob)
}
