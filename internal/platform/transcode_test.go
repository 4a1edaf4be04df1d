package platform

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildArgs(t *testing.T) {
	tr := NewTranscoder("")
	args := tr.BuildArgs("/in/song.webm", "/in/song.mp3", "192")

	expected := []string{
		"-y",
		"-i", "/in/song.webm",
		"-vn",
		"-c:a", MP3AudioCodec,
		"-b:a", "192k",
		"-progress", "pipe:2",
		"-nostats",
		"/in/song.mp3",
	}
	assert.Equal(t, expected, args)

	assert.Contains(t, tr.BuildArgs("a", "b", ""), "192k")
	assert.Contains(t, tr.BuildArgs("a", "b", "320k"), "320k")
}

func TestSiblingTool(t *testing.T) {
	tests := []struct {
		ffmpeg   string
		expected string
	}{
		{"ffmpeg", "ffprobe"},
		{"/usr/local/bin/ffmpeg", "/usr/local/bin/ffprobe"},
		{`C:\tools\ffmpeg.exe`, `C:\tools\ffprobe.exe`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, siblingTool(tt.ffmpeg, FFprobeCommand), tt.ffmpeg)
	}
}

func TestParseProgressLine(t *testing.T) {
	tests := []struct {
		line    string
		seconds float64
		ok      bool
	}{
		{"out_time_us=1500000", 1.5, true},
		{"out_time_us=0", 0, true},
		{"out_time_us=N/A", 0, false},
		{"out_time_us=-1", 0, false},
		{"progress=continue", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		seconds, ok := parseProgressLine(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.InDelta(t, tt.seconds, seconds, 1e-9, tt.line)
	}
}

func TestMonitorProgress(t *testing.T) {
	output := strings.Join([]string{
		"out_time_us=2500000",
		"progress=continue",
		"out_time_us=5000000",
		"out_time_us=20000000",
		"Conversion failed!",
		"progress=end",
	}, "\n")

	var mu sync.Mutex
	var got []float64
	tail := monitorProgress(strings.NewReader(output), 10, func(p float64) {
		mu.Lock()
		got = append(got, p)
		mu.Unlock()
	})

	assert.Equal(t, "Conversion failed!", <-tail)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []float64{0.25, 0.5, 1.0}, got)
}

func TestMonitorProgress_UnknownDuration(t *testing.T) {
	called := false
	tail := monitorProgress(strings.NewReader("out_time_us=1000000\n"), 0, func(float64) { called = true })
	<-tail
	assert.False(t, called)
}

func TestToMP3_AlreadyMP3(t *testing.T) {
	tr := NewTranscoder("/nonexistent/ffmpeg")
	path, err := tr.ToMP3(context.Background(), "/tmp/song.mp3", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/song.mp3", path)
}

func TestToMP3_MissingFFmpeg(t *testing.T) {
	input := filepath.Join(t.TempDir(), "song.webm")
	require.NoError(t, os.WriteFile(input, []byte("not media"), 0o644))

	tr := NewTranscoder(filepath.Join(t.TempDir(), "ffmpeg"))
	_, err := tr.ToMP3(context.Background(), input, "192", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start ffmpeg")

	_, statErr := os.Stat(input)
	assert.NoError(t, statErr, "source must survive a failed conversion")
}

func TestToMP3_ReportsLastFFmpegError(t *testing.T) {
	if runtime.GOOS == OSWindows {
		t.Skip("shell script stands in for ffmpeg")
	}
	dir := t.TempDir()
	script := "#!/bin/sh\n" +
		"echo 'out_time_us=1000000' >&2\n" +
		"echo 'Error while decoding stream' >&2\n" +
		"echo 'Conversion failed!' >&2\n" +
		"exit 1\n"
	fakeFFmpeg := filepath.Join(dir, "ffmpeg")
	require.NoError(t, os.WriteFile(fakeFFmpeg, []byte(script), 0o755))

	input := filepath.Join(dir, "song.webm")
	require.NoError(t, os.WriteFile(input, []byte("not media"), 0o644))

	_, err := NewTranscoder(fakeFFmpeg).ToMP3(context.Background(), input, "192", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Conversion failed!")

	_, statErr := os.Stat(input)
	assert.NoError(t, statErr)
	_, statErr = os.Stat(filepath.Join(dir, "song.mp3"))
	assert.True(t, os.IsNotExist(statErr))
}
