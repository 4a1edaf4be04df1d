package model

// PostProcess is an engine post-processing directive
type PostProcess struct {
	Key     string // yt-dlp postprocessor key, e.g. FFmpegExtractAudio
	Codec   string // target audio codec
	Quality string // target quality, kbps for lossy codecs
}

// FormatSpec is the engine-facing description of what to fetch.
// Expression is a yt-dlp format selector; the remaining fields carry the same
// selection for engines that pick streams themselves.
type FormatSpec struct {
	Expression  string
	AudioOnly   bool
	MaxHeight   int // 0 means no cap
	Worst       bool
	PostProcess *PostProcess
}

// Progress is a byte-level progress sample reported by an engine
type Progress struct {
	DownloadedBytes int64
	TotalBytes      int64
}

// Percent returns completion in the range 0..100, or -1 when the total is unknown
func (p Progress) Percent() float64 {
	if p.TotalBytes <= 0 {
		return -1
	}
	percent := float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100
	if percent > 100 {
		percent = 100
	}
	return percent
}

// DownloadParams is what the orchestrator hands to an engine for one download
type DownloadParams struct {
	URL            string
	Format         FormatSpec
	OutputTemplate string
	OnProgress     func(Progress) // optional
}

// DownloadSuccess describes a completed download
type DownloadSuccess struct {
	URL            string
	DestinationDir string
	Path           string // may be empty when the engine cannot tell
}
