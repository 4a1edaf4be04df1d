package model

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Display limits for the info panel
const (
	MaxListedFormats     = 10
	MaxDescriptionLength = 200
	TruncationSuffix     = "..."
	NotAvailable         = "N/A"
	UnknownExtension     = "unknown"
)

// Time formatting constants
const (
	SecondsPerHour   = 3600
	SecondsPerMinute = 60
)

// RawFormat is one stream entry as reported by an engine. Height is 0 when unknown.
type RawFormat struct {
	Height int
	Ext    string
}

// VideoInfoRaw is the metadata an engine extracts for a URL.
// Pointer fields are nil when the engine did not report them.
type VideoInfoRaw struct {
	Title       string
	Duration    *float64
	UploadDate  string
	Uploader    string
	ViewCount   *int64
	Description string
	Formats     []RawFormat
}

// FormatEntry is one distinct resolution/container pair
type FormatEntry struct {
	Height int
	Ext    string
}

// String renders the entry as "720p - mp4"
func (f FormatEntry) String() string {
	return fmt.Sprintf("%d%s - %s", f.Height, HeightSuffix, f.Ext)
}

// VideoInfo is the result of an info fetch
type VideoInfo struct {
	Title       string
	DurationSec int // 0 when absent
	UploadDate  string
	Uploader    string
	ViewCount   *int64
	Description string
	Formats     []FormatEntry
	HasFormats  bool // engine reported a format list at all
}

// NewVideoInfo builds display metadata from raw engine output
func NewVideoInfo(raw *VideoInfoRaw) *VideoInfo {
	info := &VideoInfo{
		Title:       raw.Title,
		UploadDate:  raw.UploadDate,
		Uploader:    raw.Uploader,
		ViewCount:   raw.ViewCount,
		Description: raw.Description,
		Formats:     AvailableFormats(raw.Formats),
		HasFormats:  len(raw.Formats) > 0,
	}
	if raw.Duration != nil && *raw.Duration > 0 {
		info.DurationSec = int(*raw.Duration)
	}
	return info
}

// AvailableFormats deduplicates (height, ext) pairs, sorts them by height
// descending keeping first-seen order on ties, and keeps the top entries.
// Formats without a height are skipped.
func AvailableFormats(raw []RawFormat) []FormatEntry {
	seen := make(map[FormatEntry]struct{}, len(raw))
	entries := make([]FormatEntry, 0, len(raw))
	for _, f := range raw {
		if f.Height <= 0 {
			continue
		}
		ext := f.Ext
		if ext == "" {
			ext = UnknownExtension
		}
		entry := FormatEntry{Height: f.Height, Ext: ext}
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Height > entries[j].Height
	})

	if len(entries) > MaxListedFormats {
		entries = entries[:MaxListedFormats]
	}
	return entries
}

// FormatDuration formats seconds as mm:ss or hh:mm:ss, or N/A when zero
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return NotAvailable
	}

	hours := seconds / SecondsPerHour
	minutes := (seconds % SecondsPerHour) / SecondsPerMinute
	secs := seconds % SecondsPerMinute

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// TruncateDescription cuts descriptions longer than MaxDescriptionLength characters
func TruncateDescription(description string) string {
	runes := []rune(description)
	if len(runes) <= MaxDescriptionLength {
		return description
	}
	return string(runes[:MaxDescriptionLength]) + TruncationSuffix
}

// FormatViewCount renders a view count with thousands separators
func FormatViewCount(count *int64) string {
	if count == nil {
		return NotAvailable
	}
	return message.NewPrinter(language.English).Sprintf("%d", *count)
}

// Text renders the info panel contents
func (v *VideoInfo) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", orNotAvailable(v.Title))
	fmt.Fprintf(&b, "Duration: %s\n", FormatDuration(v.DurationSec))
	fmt.Fprintf(&b, "Upload Date: %s\n", orNotAvailable(v.UploadDate))
	fmt.Fprintf(&b, "Uploader: %s\n", orNotAvailable(v.Uploader))
	fmt.Fprintf(&b, "View Count: %s\n", FormatViewCount(v.ViewCount))
	fmt.Fprintf(&b, "Description: %s", orNotAvailable(TruncateDescription(v.Description)))

	if v.HasFormats {
		b.WriteString("\n\nAvailable Formats:\n")
		lines := make([]string, 0, len(v.Formats))
		for _, f := range v.Formats {
			lines = append(lines, f.String())
		}
		b.WriteString(strings.Join(lines, "\n"))
	}
	return b.String()
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
