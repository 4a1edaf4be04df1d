package platform

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"

	"github.com/ytget/nobsytdl/internal/logging"
	"github.com/ytget/nobsytdl/internal/model"
)

// yt-dlp engine constants
const (
	YTDLPProgressInterval = 500 * time.Millisecond
	ExtractAudioKey       = "FFmpegExtractAudio"
)

var errNoExtractedInfo = errors.New("yt-dlp returned no metadata")

// YTDLPEngine runs the yt-dlp executable through go-ytdlp
type YTDLPEngine struct {
	executable string
	log        logrus.FieldLogger
}

// NewYTDLPEngine creates the engine. An empty executable means yt-dlp from
// PATH; yt-dlp itself finds ffmpeg on PATH for audio extraction.
func NewYTDLPEngine(executable string) *YTDLPEngine {
	return &YTDLPEngine{
		executable: executable,
		log:        logging.L(),
	}
}

func (e *YTDLPEngine) command() *ytdlp.Command {
	dl := ytdlp.New().NoWarnings()
	if e.executable != "" {
		dl.SetExecutable(e.executable)
	}
	return dl
}

// ExtractMetadata asks yt-dlp for the info dict without downloading
func (e *YTDLPEngine) ExtractMetadata(ctx context.Context, url string) (*model.VideoInfoRaw, error) {
	result, err := e.command().
		SkipDownload().
		DumpJSON().
		NoPlaylist().
		Run(ctx, url)
	if err != nil {
		return nil, err
	}
	return infoFromResult(result)
}

// Download runs yt-dlp with the resolved format and post-processing
func (e *YTDLPEngine) Download(ctx context.Context, params model.DownloadParams) (*model.DownloadSuccess, error) {
	opts := downloadOptionsFor(params)

	dl := e.command().
		PrintJSON().
		ForceOverwrites().
		NoPlaylist().
		Format(opts.format).
		Output(opts.output)
	if opts.extractAudio {
		dl.ExtractAudio().
			AudioFormat(opts.audioFormat).
			AudioQuality(opts.audioQuality)
	}

	var mu sync.Mutex
	var lastFile string
	dl.ProgressFunc(YTDLPProgressInterval, func(update ytdlp.ProgressUpdate) {
		if update.Info != nil && update.Info.Filename != nil {
			mu.Lock()
			lastFile = *update.Info.Filename
			mu.Unlock()
		}
		if params.OnProgress != nil {
			params.OnProgress(model.Progress{
				DownloadedBytes: int64(update.DownloadedBytes),
				TotalBytes:      int64(update.TotalBytes),
			})
		}
	})

	e.log.WithFields(logrus.Fields{"url": params.URL, "format": opts.format}).Debug("running yt-dlp")
	result, err := dl.Run(ctx, params.URL)
	if err != nil {
		return nil, err
	}

	path := ""
	if info, err := result.GetExtractedInfo(); err == nil && len(info) > 0 && info[0].Filename != nil {
		path = *info[0].Filename
	}
	if path == "" {
		mu.Lock()
		path = lastFile
		mu.Unlock()
	}

	return &model.DownloadSuccess{URL: params.URL, Path: opts.finalPath(path)}, nil
}

// downloadOptions is the flag set derived from one request
type downloadOptions struct {
	format       string
	output       string
	extractAudio bool
	audioFormat  string
	audioQuality string
}

func downloadOptionsFor(params model.DownloadParams) downloadOptions {
	opts := downloadOptions{
		format: params.Format.Expression,
		output: params.OutputTemplate,
	}
	if pp := params.Format.PostProcess; pp != nil && pp.Key == ExtractAudioKey {
		opts.extractAudio = true
		opts.audioFormat = pp.Codec
		opts.audioQuality = pp.Quality
	}
	return opts
}

// finalPath accounts for the extension change done by audio extraction
func (o downloadOptions) finalPath(path string) string {
	if o.extractAudio && o.audioFormat != "" {
		return ReplaceExtension(path, o.audioFormat)
	}
	return path
}

// infoFromResult reads the first info dict yt-dlp printed
func infoFromResult(result *ytdlp.Result) (*model.VideoInfoRaw, error) {
	infos, err := result.GetExtractedInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}
	if len(infos) == 0 {
		return nil, errNoExtractedInfo
	}
	return rawFromExtractedInfo(infos[0]), nil
}

// rawFromExtractedInfo maps go-ytdlp's typed info dict to engine output
func rawFromExtractedInfo(info *ytdlp.ExtractedInfo) *model.VideoInfoRaw {
	raw := &model.VideoInfoRaw{
		Title:       deref(info.Title),
		Duration:    info.Duration,
		UploadDate:  deref(info.UploadDate),
		Uploader:    deref(info.Uploader),
		Description: deref(info.Description),
	}
	if info.ViewCount != nil {
		views := int64(*info.ViewCount)
		raw.ViewCount = &views
	}
	for _, f := range info.Formats {
		if f == nil {
			continue
		}
		height := 0
		if f.Height != nil {
			height = int(*f.Height)
		}
		raw.Formats = append(raw.Formats, model.RawFormat{Height: height, Ext: deref(f.Extension)})
	}
	return raw
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
