package platform

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ytget/nobsytdl/internal/logging"
)

// FFmpeg constants for MP3 extraction
const (
	MP3AudioCodec      = "libmp3lame"
	MP3Extension       = "mp3"
	DefaultMP3Bitrate  = "192"
	BitrateSuffix      = "k"
	FFmpegCommand      = "ffmpeg"
	FFprobeCommand     = "ffprobe"
	FFprobeLogLevel    = "error"
	FFprobeShowEntries = "format=duration"
	FFprobeOutputFmt   = "csv=p=0"
	ProgressPipeTarget = "pipe:2"
	ProgressTimePrefix = "out_time_us="
	microsPerSecond    = 1_000_000.0
)

// Transcoder converts downloaded media to MP3 with ffmpeg
type Transcoder struct {
	ffmpegPath  string
	ffprobePath string
	log         logrus.FieldLogger
}

// NewTranscoder creates a transcoder. An empty path means ffmpeg from PATH;
// ffprobe is looked up next to it.
func NewTranscoder(ffmpegPath string) *Transcoder {
	if ffmpegPath == "" {
		ffmpegPath = FFmpegCommand
	}
	return &Transcoder{
		ffmpegPath:  ffmpegPath,
		ffprobePath: siblingTool(ffmpegPath, FFprobeCommand),
		log:         logging.L(),
	}
}

// siblingTool returns the path of tool in the same directory as ffmpegPath
func siblingTool(ffmpegPath, tool string) string {
	if !strings.ContainsAny(ffmpegPath, `/\`) {
		return tool
	}
	idx := strings.LastIndexAny(ffmpegPath, `/\`)
	base := ffmpegPath[idx+1:]
	return ffmpegPath[:idx+1] + strings.Replace(base, FFmpegCommand, tool, 1)
}

// BuildArgs builds the ffmpeg arguments for an MP3 extraction
func (t *Transcoder) BuildArgs(inputPath, outputPath, bitrate string) []string {
	if bitrate == "" {
		bitrate = DefaultMP3Bitrate
	}
	if !strings.HasSuffix(bitrate, BitrateSuffix) {
		bitrate += BitrateSuffix
	}
	return []string{
		"-y",
		"-i", inputPath,
		"-vn",
		"-c:a", MP3AudioCodec,
		"-b:a", bitrate,
		"-progress", ProgressPipeTarget,
		"-nostats",
		outputPath,
	}
}

// ToMP3 converts inputPath to an .mp3 next to it, removes the source on success
// and returns the new path. onProgress receives 0..1 when the duration is known.
func (t *Transcoder) ToMP3(ctx context.Context, inputPath, bitrate string, onProgress func(float64)) (string, error) {
	outputPath := ReplaceExtension(inputPath, MP3Extension)
	if outputPath == inputPath {
		return inputPath, nil
	}

	duration, err := t.probeDuration(ctx, inputPath)
	if err != nil {
		t.log.WithError(err).WithField("path", inputPath).Warn("ffprobe failed, converting without progress")
	}

	cmd := exec.CommandContext(ctx, t.ffmpegPath, t.BuildArgs(inputPath, outputPath, bitrate)...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	// stderr must be read to EOF before Wait closes the pipe
	msg := <-monitorProgress(stderr, duration, onProgress)

	if err := cmd.Wait(); err != nil {
		os.Remove(outputPath)
		if msg != "" {
			return "", fmt.Errorf("ffmpeg failed: %w: %s", err, msg)
		}
		return "", fmt.Errorf("ffmpeg failed: %w", err)
	}

	if err := os.Remove(inputPath); err != nil {
		t.log.WithError(err).WithField("path", inputPath).Warn("failed to remove source after conversion")
	}
	return outputPath, nil
}

// probeDuration gets the duration of a media file in seconds
func (t *Transcoder) probeDuration(ctx context.Context, filePath string) (float64, error) {
	cmd := exec.CommandContext(ctx, t.ffprobePath, "-v", FFprobeLogLevel, "-show_entries", FFprobeShowEntries, "-of", FFprobeOutputFmt, filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}
	return duration, nil
}

// monitorProgress reads ffmpeg -progress output until EOF. The returned channel
// yields the last non-progress line, which carries the error on failure.
func monitorProgress(stderr io.Reader, totalDuration float64, onProgress func(float64)) <-chan string {
	tail := make(chan string, 1)
	go func() {
		var last string
		scanner := bufio.NewScanner(stderr)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			seconds, ok := parseProgressLine(line)
			if !ok {
				if line != "" && !strings.Contains(line, "=") {
					last = line
				}
				continue
			}
			if totalDuration > 0 && onProgress != nil {
				onProgress(min(seconds/totalDuration, 1.0))
			}
		}
		tail <- last
	}()
	return tail
}

// parseProgressLine parses "out_time_us=123456" into seconds
func parseProgressLine(line string) (float64, bool) {
	if !strings.HasPrefix(line, ProgressTimePrefix) {
		return 0, false
	}
	micros, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
	if err != nil || micros < 0 {
		return 0, false
	}
	return float64(micros) / microsPerSecond, true
}
