package ui

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/ytget/nobsytdl/internal/config"
	"github.com/ytget/nobsytdl/internal/download"
	"github.com/ytget/nobsytdl/internal/logging"
	"github.com/ytget/nobsytdl/internal/model"
	"github.com/ytget/nobsytdl/internal/platform"
)

// RootUI is the single download window
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	runner       download.Orchestrator
	log          logrus.FieldLogger

	urlLabel      *widget.Label
	urlEntry      *widget.Entry
	pathLabel     *widget.Label
	pathEntry     *widget.Entry
	browseBtn     *widget.Button
	optionsCard   *widget.Card
	audioCheck    *widget.Check
	mp3Check      *widget.Check
	qualityLabel  *widget.Label
	qualitySelect *widget.Select
	infoBtn       *widget.Button
	downloadBtn   *widget.Button
	infoCard      *widget.Card
	infoText      *widget.Entry
	progress      *widget.ProgressBarInfinite
	statusLabel   *widget.Label

	lastJob *download.Job
}

// NewRootUI builds the window contents and the runner that drives them.
// ctx is handed to the engine and should be cancelled on application exit.
func NewRootUI(ctx context.Context, window fyne.Window, settings *config.Settings, engine download.Engine) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		log:          logging.L().WithField("component", "ui"),
	}

	reporter := &download.LogReporter{Next: &fyneReporter{ui: ui}, Log: ui.log}
	ui.runner = download.NewRunner(ctx, engine, reporter)

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlLabel = widget.NewLabel("")
	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.OnSubmitted = func(string) { ui.onGetInfoClick() }

	ui.pathLabel = widget.NewLabel("")
	ui.pathEntry = widget.NewEntry()
	ui.pathEntry.SetText(ui.settings.GetDownloadDirectory())
	ui.browseBtn = widget.NewButton("", ui.onBrowseClick)

	ui.audioCheck = widget.NewCheck("", ui.onAudioOnlyChanged)
	ui.mp3Check = widget.NewCheck("", nil)

	ui.qualityLabel = widget.NewLabel("")
	ui.qualitySelect = widget.NewSelect(qualityOptionLabels(), nil)
	ui.qualitySelect.SetSelected(ui.settings.GetQuality().String())

	ui.audioCheck.SetChecked(ui.settings.GetAudioOnly())
	ui.mp3Check.SetChecked(ui.settings.GetConvertToMP3())
	ui.onAudioOnlyChanged(ui.audioCheck.Checked)

	ui.infoBtn = widget.NewButton("", ui.onGetInfoClick)
	ui.downloadBtn = widget.NewButton("", ui.onDownloadClick)
	ui.downloadBtn.Importance = widget.HighImportance

	ui.infoText = widget.NewMultiLineEntry()
	ui.infoText.Wrapping = fyne.TextWrapWord
	ui.infoText.SetMinRowsVisible(InfoVisibleRows)

	ui.progress = widget.NewProgressBarInfinite()
	ui.progress.Stop()
	ui.progress.Hide()
	ui.statusLabel = widget.NewLabel(download.StatusReady)

	urlRow := container.NewBorder(nil, nil, ui.urlLabel, nil, ui.urlEntry)
	pathRow := container.NewBorder(nil, nil, ui.pathLabel, ui.browseBtn, ui.pathEntry)
	qualityRow := container.NewHBox(ui.qualityLabel, ui.qualitySelect)
	ui.optionsCard = widget.NewCard("", "", container.NewVBox(
		container.NewHBox(ui.audioCheck, ui.mp3Check),
		qualityRow,
	))
	buttons := container.NewCenter(container.NewHBox(ui.infoBtn, ui.downloadBtn))
	ui.infoCard = widget.NewCard("", "", ui.infoText)

	top := container.NewVBox(urlRow, pathRow, ui.optionsCard, buttons)
	bottom := container.NewVBox(ui.progress, ui.statusLabel)

	ui.refreshUITexts()
	ui.window.SetContent(container.NewBorder(top, bottom, nil, nil, ui.infoCard))
	ui.window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	t := ui.localization.GetText
	ui.window.SetTitle(t(KeyAppTitle))
	ui.urlLabel.SetText(t(KeyURL))
	ui.urlEntry.SetPlaceHolder(t(KeyEnterURL))
	ui.pathLabel.SetText(t(KeyDownloadPath))
	ui.browseBtn.SetText(t(KeyBrowse))
	ui.optionsCard.SetTitle(t(KeyOptions))
	ui.audioCheck.Text = t(KeyAudioOnly)
	ui.audioCheck.Refresh()
	ui.mp3Check.Text = t(KeyConvertToMP3)
	ui.mp3Check.Refresh()
	ui.qualityLabel.SetText(t(KeyQuality))
	ui.infoBtn.SetText(t(KeyGetInfo))
	ui.downloadBtn.SetText(t(KeyDownload))
	ui.infoCard.SetTitle(t(KeyVideoInformation))
}

// onAudioOnlyChanged keeps the MP3 option tied to audio-only mode
func (ui *RootUI) onAudioOnlyChanged(checked bool) {
	if checked {
		ui.mp3Check.Enable()
		ui.qualitySelect.Disable()
	} else {
		ui.mp3Check.Disable()
		ui.qualitySelect.Enable()
	}
}

// onBrowseClick lets the user pick the download directory
func (ui *RootUI) onBrowseClick() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.pathEntry.SetText(uri.Path())
	}, ui.window)
}

// onGetInfoClick submits an info fetch for the entered URL
func (ui *RootUI) onGetInfoClick() {
	job, err := ui.runner.SubmitInfoFetch(ui.urlEntry.Text)
	if err != nil {
		ui.showError(err)
		return
	}
	ui.lastJob = job
}

// onDownloadClick submits a download for the current form state
func (ui *RootUI) onDownloadClick() {
	req := ui.request()
	job, err := ui.runner.SubmitDownload(req)
	if err != nil {
		ui.showError(err)
		return
	}
	ui.lastJob = job
	ui.saveForm(req)
}

// request collects the form into a download request
func (ui *RootUI) request() model.DownloadRequest {
	quality, err := model.ParseQuality(ui.qualitySelect.Selected)
	if err != nil {
		quality = model.Best()
	}
	return model.DownloadRequest{
		URL:            ui.urlEntry.Text,
		DestinationDir: ui.pathEntry.Text,
		Quality:        quality,
		AudioOnly:      ui.audioCheck.Checked,
		TranscodeToMP3: ui.audioCheck.Checked && ui.mp3Check.Checked,
	}
}

// saveForm remembers the accepted form state for the next run
func (ui *RootUI) saveForm(req model.DownloadRequest) {
	ui.settings.SetDownloadDirectory(req.DestinationDir)
	ui.settings.SetQuality(req.Quality)
	ui.settings.SetAudioOnly(req.AudioOnly)
	ui.settings.SetConvertToMP3(ui.mp3Check.Checked)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.localization.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
	})
}

func (ui *RootUI) showError(err error) {
	ui.log.WithError(err).Debug("submission rejected")
	dialog.ShowError(err, ui.window)
}

// setBusy toggles the progress indicator and the action buttons
func (ui *RootUI) setBusy(busy bool) {
	if busy {
		ui.infoBtn.Disable()
		ui.downloadBtn.Disable()
		ui.progress.Show()
		ui.progress.Start()
		return
	}
	ui.progress.Stop()
	ui.progress.Hide()
	ui.infoBtn.Enable()
	ui.downloadBtn.Enable()
}

// showOutcome renders a finished job
func (ui *RootUI) showOutcome(outcome download.Outcome) {
	if !outcome.OK() {
		dialog.ShowError(errors.New(outcome.Message()), ui.window)
		return
	}

	switch outcome.Kind {
	case model.JobKindInfo:
		ui.infoText.SetText(outcome.Message())
	case model.JobKindDownload:
		dialog.ShowInformation(ui.localization.GetText(KeySuccess), outcome.Message(), ui.window)
		if outcome.Download != nil && outcome.Download.Path != "" && ui.settings.GetRevealOnComplete() {
			ui.onRevealFile(outcome.Download.Path)
		}
	}
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if err := platform.OpenFileInManager(filePath); err != nil {
		ui.log.WithError(err).WithField("path", filePath).Warn("reveal failed")
		dialog.ShowError(errors.New(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window)
	}
}

func qualityOptionLabels() []string {
	options := model.QualityOptions()
	labels := make([]string, 0, len(options))
	for _, q := range options {
		labels = append(labels, q.String())
	}
	return labels
}

// fyneReporter applies runner signals on the Fyne goroutine
type fyneReporter struct {
	ui *RootUI
}

func (r *fyneReporter) SetBusy(busy bool) {
	fyne.Do(func() { r.ui.setBusy(busy) })
}

func (r *fyneReporter) SetStatusText(text string) {
	fyne.Do(func() { r.ui.statusLabel.SetText(text) })
}

func (r *fyneReporter) ReportResult(outcome download.Outcome) {
	fyne.Do(func() { r.ui.showOutcome(outcome) })
}
