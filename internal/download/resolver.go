package download

import (
	"fmt"
	"path/filepath"

	"github.com/ytget/nobsytdl/internal/model"
)

// Format selector expressions understood by yt-dlp
const (
	AudioFormatExpression  = "bestaudio/best"
	WorstFormatExpression  = "worst"
	HeightCappedExpression = "best[height<=%d]"

	// DefaultMaxHeight caps the "best" selector
	DefaultMaxHeight = 1080
)

// MP3 transcode directive
const (
	ExtractAudioPostProcessor = "FFmpegExtractAudio"
	MP3Codec                  = "mp3"
	MP3Quality                = "192"
)

// FilenameTemplate names output files after the video title with the
// engine-chosen extension
const FilenameTemplate = "%(title)s.%(ext)s"

// Resolve maps a quality selection to an engine format spec. It panics on a
// selector outside the enumerated set since presentation layers only offer
// those values.
func Resolve(q model.Quality, audioOnly, transcodeToMP3 bool) model.FormatSpec {
	if audioOnly {
		spec := model.FormatSpec{
			Expression: AudioFormatExpression,
			AudioOnly:  true,
		}
		if transcodeToMP3 {
			spec.PostProcess = &model.PostProcess{
				Key:     ExtractAudioPostProcessor,
				Codec:   MP3Codec,
				Quality: MP3Quality,
			}
		}
		return spec
	}

	switch q.Kind {
	case model.QualityBest:
		return heightCapped(DefaultMaxHeight)
	case model.QualityWorst:
		return model.FormatSpec{Expression: WorstFormatExpression, Worst: true}
	case model.QualityHeight:
		if q.Height <= 0 {
			panic(fmt.Sprintf("download: invalid explicit height %d", q.Height))
		}
		return heightCapped(q.Height)
	default:
		panic(fmt.Sprintf("download: unknown quality selector %q", q.Kind))
	}
}

func heightCapped(height int) model.FormatSpec {
	return model.FormatSpec{
		Expression: fmt.Sprintf(HeightCappedExpression, height),
		MaxHeight:  height,
	}
}

// OutputTemplate roots FilenameTemplate at dir
func OutputTemplate(dir string) string {
	return filepath.Join(dir, FilenameTemplate)
}
