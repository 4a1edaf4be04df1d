package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ytget/nobsytdl/internal/logging"
	"github.com/ytget/nobsytdl/internal/platform"
)

const (
	envVarPrefix   = "NOBSYTDL"
	appName        = "nobsytdl"
	configFileEnv  = envVarPrefix + "_CONFIG_FILE"
	configFileExt  = ".yaml"
	dotEnvFileName = ".env"
)

// Defaults applied to fields left empty by the file and the environment
const (
	DefaultEngine          = platform.EngineYTDLP
	DefaultFFmpegPath      = platform.FFmpegCommand
	DefaultLogLevel        = "info"
	DefaultLogFormat       = logging.FormatText
	DefaultPlaylistTimeout = platform.DefaultPlaylistTimeout
)

// Config is the process configuration shared by the GUI and the CLI
type Config struct {
	Engine          string        `envconfig:"NOBSYTDL_ENGINE"           yaml:"engine"`
	YTDLPPath       string        `envconfig:"NOBSYTDL_YTDLP_PATH"       yaml:"ytdlpPath"`
	FFmpegPath      string        `envconfig:"NOBSYTDL_FFMPEG_PATH"      yaml:"ffmpegPath"`
	DownloadDir     string        `envconfig:"NOBSYTDL_DOWNLOAD_DIR"     yaml:"downloadDir"`
	LogLevel        string        `envconfig:"NOBSYTDL_LOG_LEVEL"        yaml:"logLevel"`
	LogFormat       string        `envconfig:"NOBSYTDL_LOG_FORMAT"       yaml:"logFormat"`
	PlaylistTimeout time.Duration `envconfig:"NOBSYTDL_PLAYLIST_TIMEOUT" yaml:"playlistTimeout"`
}

// DefaultConfigFile returns the config path used when none is given
func DefaultConfigFile() string {
	if path := os.Getenv(configFileEnv); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return appName + configFileExt
	}
	return filepath.Join(dir, appName+configFileExt)
}

// Load reads .env, then the YAML file, then environment overrides, and fills
// defaults. An explicit path must exist; the default path is optional.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(dotEnvFileName); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", dotEnvFileName, err)
	}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile()
	}

	var c Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decodeYAML(data, &c); err != nil {
			return nil, fmt.Errorf("unmarshaling config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// decodeYAML rejects unknown keys so typos surface at startup
func decodeYAML(data []byte, c *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Engine == "" {
		c.Engine = DefaultEngine
	}
	if c.FFmpegPath == "" {
		c.FFmpegPath = DefaultFFmpegPath
	}
	if c.DownloadDir == "" {
		if dir, err := platform.GetHomeDownloadsDir(); err == nil {
			c.DownloadDir = dir
		}
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.PlaylistTimeout == 0 {
		c.PlaylistTimeout = DefaultPlaylistTimeout
	}
	c.Engine = strings.ToLower(c.Engine)
	c.LogFormat = strings.ToLower(c.LogFormat)
}

// Validate checks enumerated fields
func (c *Config) Validate() error {
	if y, e, ok := func() (string, string, bool) {
		if c.Engine != platform.EngineYTDLP && c.Engine != platform.EngineNative {
			return "engine", "ENGINE", false
		}
		if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
			return "logLevel", "LOG_LEVEL", false
		}
		if c.LogFormat != logging.FormatText && c.LogFormat != logging.FormatJSON {
			return "logFormat", "LOG_FORMAT", false
		}
		if c.PlaylistTimeout < 0 {
			return "playlistTimeout", "PLAYLIST_TIMEOUT", false
		}
		return "", "", true
	}(); !ok {
		return fmt.Errorf("invalid configuration value for %s (env %s_%s)", y, envVarPrefix, e)
	}
	return nil
}

// EngineOptions maps the config onto engine construction options
func (c *Config) EngineOptions() platform.EngineOptions {
	return platform.EngineOptions{
		Kind:       c.Engine,
		YTDLPPath:  c.YTDLPPath,
		FFmpegPath: c.FFmpegPath,
	}
}
