package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/nobsytdl/internal/model"
	"github.com/ytget/nobsytdl/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir     = "download_directory"
	KeyQuality         = "quality"
	KeyAudioOnly       = "audio_only"
	KeyConvertToMP3    = "convert_to_mp3"
	KeyLanguage        = "app_language"
	KeyRevealComplete  = "reveal_on_complete"
	FallbackDownloadTo = "downloads"
)

// Default values
const (
	DefaultLanguage       = "system"
	DefaultAudioOnly      = false
	DefaultConvertToMP3   = false
	DefaultRevealComplete = false
)

// Settings persists the GUI form state between runs
type Settings struct {
	app        fyne.App
	defaultDir string
}

// NewSettings creates a new settings manager. defaultDir is used until the user
// picks a directory; empty means the user's Downloads directory.
func NewSettings(app fyne.App, defaultDir string) *Settings {
	if defaultDir == "" {
		dir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			dir = FallbackDownloadTo
		}
		defaultDir = dir
	}
	return &Settings{app: app, defaultDir: defaultDir}
}

// GetDownloadDirectory returns the last used download directory
func (s *Settings) GetDownloadDirectory() string {
	return s.app.Preferences().StringWithFallback(KeyDownloadDir, s.defaultDir)
}

// SetDownloadDirectory stores the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetQuality returns the stored quality selector, best when unset or invalid
func (s *Settings) GetQuality() model.Quality {
	q, err := model.ParseQuality(s.app.Preferences().String(KeyQuality))
	if err != nil {
		return model.Best()
	}
	return q
}

// SetQuality stores the quality selector
func (s *Settings) SetQuality(q model.Quality) {
	s.app.Preferences().SetString(KeyQuality, q.String())
}

// GetAudioOnly returns whether audio-only mode was last selected
func (s *Settings) GetAudioOnly() bool {
	return s.app.Preferences().BoolWithFallback(KeyAudioOnly, DefaultAudioOnly)
}

// SetAudioOnly stores the audio-only flag
func (s *Settings) SetAudioOnly(audioOnly bool) {
	s.app.Preferences().SetBool(KeyAudioOnly, audioOnly)
}

// GetConvertToMP3 returns whether MP3 conversion was last selected
func (s *Settings) GetConvertToMP3() bool {
	return s.app.Preferences().BoolWithFallback(KeyConvertToMP3, DefaultConvertToMP3)
}

// SetConvertToMP3 stores the MP3 conversion flag
func (s *Settings) SetConvertToMP3(convert bool) {
	s.app.Preferences().SetBool(KeyConvertToMP3, convert)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	return s.app.Preferences().StringWithFallback(KeyLanguage, DefaultLanguage)
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	if lang == "" {
		lang = DefaultLanguage
	}
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetRevealOnComplete returns whether to reveal finished downloads in the file manager
func (s *Settings) GetRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyRevealComplete, DefaultRevealComplete)
}

// SetRevealOnComplete sets whether to reveal finished downloads
func (s *Settings) SetRevealOnComplete(reveal bool) {
	s.app.Preferences().SetBool(KeyRevealComplete, reveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
	}
}
