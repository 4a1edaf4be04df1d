package download

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/nobsytdl/internal/model"
)

func TestResolve_Video(t *testing.T) {
	tests := []struct {
		name      string
		quality   model.Quality
		expr      string
		maxHeight int
		worst     bool
	}{
		{"best caps at 1080", model.Best(), "best[height<=1080]", 1080, false},
		{"worst has no cap", model.Worst(), "worst", 0, true},
		{"explicit 720", model.AtMostHeight(720), "best[height<=720]", 720, false},
		{"explicit 144", model.AtMostHeight(144), "best[height<=144]", 144, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := Resolve(tt.quality, false, false)
			assert.Equal(t, tt.expr, spec.Expression)
			assert.Equal(t, tt.maxHeight, spec.MaxHeight)
			assert.Equal(t, tt.worst, spec.Worst)
			assert.False(t, spec.AudioOnly)
			assert.Nil(t, spec.PostProcess)
		})
	}
}

func TestResolve_AudioOnly(t *testing.T) {
	spec := Resolve(model.Best(), true, false)
	assert.Equal(t, "bestaudio/best", spec.Expression)
	assert.True(t, spec.AudioOnly)
	assert.Nil(t, spec.PostProcess)

	spec = Resolve(model.AtMostHeight(360), true, true)
	assert.Equal(t, "bestaudio/best", spec.Expression)
	require.NotNil(t, spec.PostProcess)
	assert.Equal(t, &model.PostProcess{Key: "FFmpegExtractAudio", Codec: "mp3", Quality: "192"}, spec.PostProcess)
}

func TestResolve_TotalAndDeterministic(t *testing.T) {
	selectors := []model.Quality{model.Best(), model.Worst()}
	for h := 144; h <= 1080; h += 12 {
		selectors = append(selectors, model.AtMostHeight(h))
	}

	for _, q := range selectors {
		for _, audioOnly := range []bool{true, false} {
			for _, mp3 := range []bool{true, false} {
				name := fmt.Sprintf("%s/audio=%v/mp3=%v", q, audioOnly, mp3)
				first := Resolve(q, audioOnly, mp3)
				second := Resolve(q, audioOnly, mp3)
				assert.Equal(t, first, second, name)
				assert.NotEmpty(t, first.Expression, name)

				if !audioOnly {
					assert.Nil(t, first.PostProcess, "transcode directive without audio-only: %s", name)
				}
			}
		}
	}
}

func TestResolve_PanicsOnUnknownSelector(t *testing.T) {
	assert.Panics(t, func() {
		Resolve(model.Quality{Kind: "ultra"}, false, false)
	})
	assert.Panics(t, func() {
		Resolve(model.AtMostHeight(0), false, false)
	})
	assert.NotPanics(t, func() {
		Resolve(model.Quality{Kind: "ultra"}, true, false)
	})
}

func TestOutputTemplate(t *testing.T) {
	assert.Equal(t, filepath.Join("/downloads", "%(title)s.%(ext)s"), OutputTemplate("/downloads"))
}
