package platform

import (
	"fmt"
	"strings"

	"github.com/ytget/nobsytdl/internal/download"
)

// Engine kinds
const (
	EngineYTDLP  = "ytdlp"
	EngineNative = "native"
)

// EngineOptions selects and configures an engine
type EngineOptions struct {
	Kind       string
	YTDLPPath  string
	FFmpegPath string
}

var (
	_ download.Engine = (*YTDLPEngine)(nil)
	_ download.Engine = (*NativeEngine)(nil)
)

// NewEngine builds the engine named by opts.Kind, defaulting to yt-dlp
func NewEngine(opts EngineOptions) (download.Engine, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Kind)) {
	case "", EngineYTDLP:
		return NewYTDLPEngine(opts.YTDLPPath), nil
	case EngineNative:
		return NewNativeEngine(nil, NewTranscoder(opts.FFmpegPath)), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (expected %s or %s)", opts.Kind, EngineYTDLP, EngineNative)
	}
}
