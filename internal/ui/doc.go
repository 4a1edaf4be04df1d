package ui

// Package ui contains the Fyne desktop window. It collects the form, submits
// jobs to the download runner and applies the runner's busy, status and result
// signals on the Fyne goroutine. Labels are localized via Localization.
