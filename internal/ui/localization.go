package ui

// Localization manages UI text translations. Status texts reported by the
// download runner are not translated.
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyURL               = "url"
	KeyEnterURL          = "enter_url"
	KeyDownloadPath      = "download_path"
	KeyBrowse            = "browse"
	KeyOptions           = "options"
	KeyAudioOnly         = "audio_only"
	KeyConvertToMP3      = "convert_to_mp3"
	KeyQuality           = "quality"
	KeyGetInfo           = "get_info"
	KeyDownload          = "download"
	KeyVideoInformation  = "video_information"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyRevealOnComplete  = "reveal_on_complete"
	KeyDownloadDirectory = "download_directory"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeySettingsSaved     = "settings_saved"
	KeySuccess           = "success"
	KeyErrorOpeningFile  = "error_opening_file"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YouTube Downloader",
		KeyURL:               "YouTube URL:",
		KeyEnterURL:          "https://www.youtube.com/watch?v=...",
		KeyDownloadPath:      "Download Path:",
		KeyBrowse:            "Browse",
		KeyOptions:           "Options",
		KeyAudioOnly:         "Audio Only",
		KeyConvertToMP3:      "Convert to MP3",
		KeyQuality:           "Quality:",
		KeyGetInfo:           "Get Video Info",
		KeyDownload:          "Download",
		KeyVideoInformation:  "Video Information",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyRevealOnComplete:  "Show file in folder after download",
		KeyDownloadDirectory: "Default download directory",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeySettingsSaved:     "Settings saved successfully!",
		KeySuccess:           "Success",
		KeyErrorOpeningFile:  "Error opening file",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YouTube Загрузчик",
		KeyURL:               "URL YouTube:",
		KeyEnterURL:          "https://www.youtube.com/watch?v=...",
		KeyDownloadPath:      "Папка загрузки:",
		KeyBrowse:            "Обзор",
		KeyOptions:           "Параметры",
		KeyAudioOnly:         "Только аудио",
		KeyConvertToMP3:      "Конвертировать в MP3",
		KeyQuality:           "Качество:",
		KeyGetInfo:           "Информация о видео",
		KeyDownload:          "Скачать",
		KeyVideoInformation:  "Информация о видео",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyRevealOnComplete:  "Показать файл в папке после загрузки",
		KeyDownloadDirectory: "Папка загрузки по умолчанию",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeySuccess:           "Готово",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
	}
}
