package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/nobsytdl/internal/model"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app, "")

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
	if settings.defaultDir == "" {
		t.Error("Default directory should be resolved")
	}
}

func TestDownloadDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app, "/default/downloads")

	if dir := settings.GetDownloadDirectory(); dir != "/default/downloads" {
		t.Errorf("Expected default directory, got %s", dir)
	}

	customDir := "/custom/downloads"
	settings.SetDownloadDirectory(customDir)

	if dir := settings.GetDownloadDirectory(); dir != customDir {
		t.Errorf("Expected download directory %s, got %s", customDir, dir)
	}
}

func TestQuality(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app, "/tmp")

	if q := settings.GetQuality(); q != model.Best() {
		t.Errorf("Expected default quality best, got %s", q)
	}

	settings.SetQuality(model.AtMostHeight(480))
	if q := settings.GetQuality(); q != model.AtMostHeight(480) {
		t.Errorf("Expected 480p, got %s", q)
	}

	settings.SetQuality(model.Worst())
	if q := settings.GetQuality(); q != model.Worst() {
		t.Errorf("Expected worst, got %s", q)
	}

	// garbage falls back to best
	app.Preferences().SetString(KeyQuality, "ultra")
	if q := settings.GetQuality(); q != model.Best() {
		t.Errorf("Expected fallback to best, got %s", q)
	}
}

func TestAudioFlags(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app, "/tmp")

	if settings.GetAudioOnly() || settings.GetConvertToMP3() {
		t.Fatal("Audio flags should default to false")
	}

	settings.SetAudioOnly(true)
	settings.SetConvertToMP3(true)

	if !settings.GetAudioOnly() {
		t.Error("Audio only should be stored")
	}
	if !settings.GetConvertToMP3() {
		t.Error("Convert to MP3 should be stored")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app, "/tmp")

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("en")
	if lang := settings.GetLanguage(); lang != "en" {
		t.Errorf("Expected language 'en', got %s", lang)
	}

	settings.SetLanguage("")
	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Empty language should reset to %s, got %s", DefaultLanguage, lang)
	}
}

func TestRevealOnComplete(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app, "/tmp")

	if settings.GetRevealOnComplete() != DefaultRevealComplete {
		t.Error("Unexpected default for reveal on complete")
	}
	settings.SetRevealOnComplete(true)
	if !settings.GetRevealOnComplete() {
		t.Error("Reveal on complete should be stored")
	}
}

func TestGetLanguageOptions(t *testing.T) {
	settings := NewSettings(test.NewApp(), "/tmp")

	options := settings.GetLanguageOptions()
	for _, lang := range []string{"system", "en", "ru"} {
		if _, exists := options[lang]; !exists {
			t.Errorf("Expected language option '%s' to exist", lang)
		}
	}
}
