package ui

// Icons (emojis/symbols)
const (
	IconFolder = "📁"
)

// Window sizing
const (
	WindowWidth  float32 = 700
	WindowHeight float32 = 600

	SettingsWidth  float32 = 480
	SettingsHeight float32 = 260

	InfoVisibleRows = 12
)
