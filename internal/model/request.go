package model

import (
	"fmt"
	"strconv"
	"strings"
)

// QualityKind enumerates the quality selectors offered to the user
type QualityKind string

const (
	QualityBest   QualityKind = "best"
	QualityWorst  QualityKind = "worst"
	QualityHeight QualityKind = "height"
)

// HeightSuffix is appended to explicit heights in presentation strings (720p)
const HeightSuffix = "p"

// Quality is a video quality selector. Height is only meaningful for QualityHeight.
type Quality struct {
	Kind   QualityKind
	Height int
}

// Best returns the default quality selector
func Best() Quality {
	return Quality{Kind: QualityBest}
}

// Worst returns the lowest quality selector
func Worst() Quality {
	return Quality{Kind: QualityWorst}
}

// AtMostHeight returns a selector capping video height at h pixels
func AtMostHeight(h int) Quality {
	return Quality{Kind: QualityHeight, Height: h}
}

// String renders the selector the way presentation layers list it
func (q Quality) String() string {
	switch q.Kind {
	case QualityBest, QualityWorst:
		return string(q.Kind)
	case QualityHeight:
		return strconv.Itoa(q.Height) + HeightSuffix
	default:
		return string(q.Kind)
	}
}

// ParseQuality parses "best", "worst", "720p" or "720"
func ParseQuality(s string) (Quality, error) {
	value := strings.ToLower(strings.TrimSpace(s))
	switch value {
	case string(QualityBest):
		return Best(), nil
	case string(QualityWorst):
		return Worst(), nil
	}

	height, err := strconv.Atoi(strings.TrimSuffix(value, HeightSuffix))
	if err != nil || height <= 0 {
		return Quality{}, fmt.Errorf("invalid quality %q: expected best, worst or a height like 720p", s)
	}
	return AtMostHeight(height), nil
}

// QualityOptions returns the selectors offered by the presentation layers
func QualityOptions() []Quality {
	return []Quality{
		Best(),
		Worst(),
		AtMostHeight(720),
		AtMostHeight(480),
		AtMostHeight(360),
		AtMostHeight(144),
	}
}

// DownloadRequest is the user intent for one download job
type DownloadRequest struct {
	URL            string
	DestinationDir string
	Quality        Quality
	AudioOnly      bool
	// TranscodeToMP3 is ignored unless AudioOnly is set
	TranscodeToMP3 bool
}
