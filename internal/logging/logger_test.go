package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New("debug", FormatJSON, &buf)

	l.WithFields(Fields{"job_id": "abc"}).Debug("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "abc", entry["job_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := New("loud", FormatText, &buf)

	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.Contains(t, buf.String(), "Invalid log level loud")
}

func TestConfigure(t *testing.T) {
	prev := L()
	defer func() { logger = prev }()

	l := Configure("warn", FormatText)
	assert.Same(t, l, L())
	assert.Equal(t, logrus.WarnLevel, L().GetLevel())
}
