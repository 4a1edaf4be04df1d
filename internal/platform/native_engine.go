package platform

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/sirupsen/logrus"

	"github.com/ytget/nobsytdl/internal/logging"
	"github.com/ytget/nobsytdl/internal/model"
)

// Native engine constants
const (
	UploadDateLayout      = "20060102"
	ProgressInterval      = 500 * time.Millisecond
	mimeAudioPrefix       = "audio/"
	mimeVideoPrefix       = "video/"
	mimeParamSeparator    = ";"
	audioMP4MimeType      = "audio/mp4"
	audioMP4Extension     = "m4a"
	DefaultFileExtension  = "mp4"
	DefaultFilePermission = 0o644
)

// NativeEngine talks to YouTube directly through kkdai/youtube and uses ffmpeg
// only for MP3 conversion.
type NativeEngine struct {
	client     *youtube.Client
	transcoder *Transcoder
	log        logrus.FieldLogger
}

// NewNativeEngine creates the engine. httpClient may be nil.
func NewNativeEngine(httpClient *http.Client, transcoder *Transcoder) *NativeEngine {
	if httpClient == nil {
		// no client timeout: streams are bounded by the job context
		httpClient = &http.Client{}
	}
	if transcoder == nil {
		transcoder = NewTranscoder("")
	}
	return &NativeEngine{
		client:     &youtube.Client{HTTPClient: httpClient},
		transcoder: transcoder,
		log:        logging.L(),
	}
}

// ExtractMetadata retrieves video metadata without downloading
func (e *NativeEngine) ExtractMetadata(ctx context.Context, url string) (*model.VideoInfoRaw, error) {
	video, err := e.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, err
	}
	return rawFromVideo(video), nil
}

// Download fetches the selected stream into the expanded output template
func (e *NativeEngine) Download(ctx context.Context, params model.DownloadParams) (*model.DownloadSuccess, error) {
	video, err := e.client.GetVideoContext(ctx, params.URL)
	if err != nil {
		return nil, err
	}

	format, err := SelectFormat(video.Formats, params.Format)
	if err != nil {
		return nil, err
	}

	path := ExpandTemplate(params.OutputTemplate, video.Title, formatExtension(format))
	log := e.log.WithFields(logrus.Fields{"video_id": video.ID, "itag": format.ItagNo, "path": path})
	log.Debug("downloading stream")

	if err := e.downloadStream(ctx, video, format, path, params.OnProgress); err != nil {
		return nil, err
	}

	if pp := params.Format.PostProcess; pp != nil && pp.Codec == MP3Extension {
		log.Debug("converting to mp3")
		path, err = e.transcoder.ToMP3(ctx, path, pp.Quality, nil)
		if err != nil {
			return nil, err
		}
	}

	return &model.DownloadSuccess{URL: params.URL, Path: path}, nil
}

// downloadStream writes the stream to a .part file and renames it on success
func (e *NativeEngine) downloadStream(ctx context.Context, video *youtube.Video, format *youtube.Format, path string, onProgress func(model.Progress)) error {
	stream, size, err := e.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return fmt.Errorf("failed to get stream: %w", err)
	}
	defer stream.Close()

	partPath := path + PartialFileExtension
	file, err := os.OpenFile(partPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, DefaultFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	counter := newProgressWriter(size, ProgressInterval, onProgress)
	_, err = io.Copy(io.MultiWriter(file, counter), stream)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(partPath)
		return fmt.Errorf("failed to write stream to file: %w", err)
	}
	counter.flush()

	if err := os.Rename(partPath, path); err != nil {
		os.Remove(partPath)
		return fmt.Errorf("failed to finalize file: %w", err)
	}
	return nil
}

// rawFromVideo maps library metadata to engine output
func rawFromVideo(video *youtube.Video) *model.VideoInfoRaw {
	raw := &model.VideoInfoRaw{
		Title:       video.Title,
		Uploader:    video.Author,
		Description: video.Description,
	}
	if video.Duration > 0 {
		seconds := video.Duration.Seconds()
		raw.Duration = &seconds
	}
	if video.Views > 0 {
		views := int64(video.Views)
		raw.ViewCount = &views
	}
	if !video.PublishDate.IsZero() {
		raw.UploadDate = video.PublishDate.Format(UploadDateLayout)
	}
	for _, f := range video.Formats {
		raw.Formats = append(raw.Formats, model.RawFormat{Height: f.Height, Ext: formatExtension(&f)})
	}
	return raw
}

// SelectFormat picks the stream described by spec. Audio selection prefers the
// highest bitrate audio-only stream and falls back to the best muxed stream.
// Video selection only considers muxed streams.
func SelectFormat(formats youtube.FormatList, spec model.FormatSpec) (*youtube.Format, error) {
	if spec.AudioOnly {
		if f := bestAudio(formats); f != nil {
			return f, nil
		}
		spec = model.FormatSpec{Expression: spec.Expression}
	}

	var chosen *youtube.Format
	for i := range formats {
		f := &formats[i]
		if !isMuxed(f) {
			continue
		}
		if spec.MaxHeight > 0 && f.Height > spec.MaxHeight {
			continue
		}
		if chosen == nil || betterVideo(f, chosen, spec.Worst) {
			chosen = f
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("requested format is not available: %s", spec.Expression)
	}
	return chosen, nil
}

func bestAudio(formats youtube.FormatList) *youtube.Format {
	var chosen *youtube.Format
	for i := range formats {
		f := &formats[i]
		if !strings.HasPrefix(f.MimeType, mimeAudioPrefix) {
			continue
		}
		if chosen == nil || f.Bitrate > chosen.Bitrate {
			chosen = f
		}
	}
	return chosen
}

func isMuxed(f *youtube.Format) bool {
	return strings.HasPrefix(f.MimeType, mimeVideoPrefix) && f.AudioChannels > 0
}

// betterVideo reports whether a should replace b; ties keep the earlier entry
func betterVideo(a, b *youtube.Format, worst bool) bool {
	if a.Height != b.Height {
		if worst {
			return a.Height < b.Height
		}
		return a.Height > b.Height
	}
	if worst {
		return a.Bitrate < b.Bitrate
	}
	return a.Bitrate > b.Bitrate
}

// formatExtension derives a file extension from the stream MIME type
func formatExtension(f *youtube.Format) string {
	mime := strings.TrimSpace(strings.SplitN(f.MimeType, mimeParamSeparator, 2)[0])
	if mime == audioMP4MimeType {
		return audioMP4Extension
	}
	if _, sub, ok := strings.Cut(mime, "/"); ok && sub != "" {
		return sub
	}
	return DefaultFileExtension
}

// progressWriter counts written bytes and reports at most once per interval
type progressWriter struct {
	mu         sync.Mutex
	total      int64
	written    int64
	interval   time.Duration
	last       time.Time
	onProgress func(model.Progress)
}

func newProgressWriter(total int64, interval time.Duration, onProgress func(model.Progress)) *progressWriter {
	return &progressWriter{total: total, interval: interval, onProgress: onProgress}
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	w.written += int64(len(p))
	due := time.Since(w.last) >= w.interval
	if due {
		w.last = time.Now()
	}
	sample := model.Progress{DownloadedBytes: w.written, TotalBytes: w.total}
	w.mu.Unlock()

	if due && w.onProgress != nil {
		w.onProgress(sample)
	}
	return len(p), nil
}

// flush reports the final byte count
func (w *progressWriter) flush() {
	w.mu.Lock()
	sample := model.Progress{DownloadedBytes: w.written, TotalBytes: w.total}
	w.mu.Unlock()
	if w.onProgress != nil {
		w.onProgress(sample)
	}
}
