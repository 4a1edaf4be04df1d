package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/ytget/nobsytdl/internal/config"
	"github.com/ytget/nobsytdl/internal/download"
	"github.com/ytget/nobsytdl/internal/logging"
	"github.com/ytget/nobsytdl/internal/model"
	"github.com/ytget/nobsytdl/internal/platform"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	// cliLogLevel keeps the spinner line clean unless asked otherwise
	cliLogLevel = "warn"

	eventBuffer    = 16
	playlistNotice = "URL belongs to a playlist: downloading the single video only (see the playlist command)"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &application{out: os.Stdout, errOut: os.Stderr, newEngine: platform.NewEngine}
	if err := a.cliApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// application carries what the command actions share
type application struct {
	cfg       *config.Config
	log       logrus.FieldLogger
	out       io.Writer
	errOut    io.Writer
	newEngine func(platform.EngineOptions) (download.Engine, error)
}

func (a *application) cliApp() *cli.App {
	return &cli.App{
		Name:        "nobsytdl",
		Usage:       "fetch video info and download videos from the terminal",
		Description: "one job at a time: info, download or playlist listing",
		Version:     version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML config file",
			},
			&cli.StringFlag{
				Name:  "engine",
				Usage: "download engine (ytdlp or native), overrides the config",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: cliLogLevel,
				Usage: "log level written to stderr",
			},
		},
		Before: a.setup,
		Commands: []*cli.Command{{
			Name:      "info",
			Usage:     "print video metadata",
			ArgsUsage: "URL",
			Action: func(c *cli.Context) error {
				return a.info(c.Context, c.Args().First(), c.String("engine"))
			},
		}, {
			Name:      "download",
			Aliases:   []string{"dl", "get"},
			Usage:     "download a video",
			ArgsUsage: "URL",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "dir",
					Aliases: []string{"d"},
					Usage:   "destination directory (defaults to the configured download dir)",
				},
				&cli.StringFlag{
					Name:    "quality",
					Aliases: []string{"q"},
					Value:   model.Best().String(),
					Usage:   "best, worst or a maximum height such as 720p",
				},
				&cli.BoolFlag{
					Name:    "audio-only",
					Aliases: []string{"a"},
					Usage:   "download the best audio stream only",
				},
				&cli.BoolFlag{
					Name:  "mp3",
					Usage: "convert audio to MP3 (requires --audio-only)",
				},
			},
			Action: func(c *cli.Context) error {
				dir := c.String("dir")
				if dir == "" {
					dir = a.cfg.DownloadDir
					if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
						return fmt.Errorf("creating download dir: %w", err)
					}
				}
				req, err := buildRequest(c.Args().First(), dir, c.String("quality"), c.Bool("audio-only"), c.Bool("mp3"))
				if err != nil {
					return err
				}
				return a.download(c.Context, req, c.String("engine"))
			},
		}, {
			Name:      "playlist",
			Aliases:   []string{"pl"},
			Usage:     "list the videos of a playlist",
			ArgsUsage: "URL",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "json",
					Usage: "print the playlist as JSON",
				},
			},
			Action: func(c *cli.Context) error {
				return a.playlist(c.Context, c.Args().First(), c.Bool("json"))
			},
		}},
	}
}

// setup loads the config and the logger before any command runs
func (a *application) setup(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logging.Configure(c.String("log-level"), cfg.LogFormat)
	return nil
}

func (a *application) runner(ctx context.Context, engineKind string, reporter download.Reporter) (*download.Runner, error) {
	opts := a.cfg.EngineOptions()
	if engineKind != "" {
		opts.Kind = engineKind
	}
	engine, err := a.newEngine(opts)
	if err != nil {
		return nil, err
	}
	runner := download.NewRunner(ctx, engine, reporter)
	runner.SetLogger(a.log)
	return runner, nil
}

// runJob submits one job and waits for it while a single goroutine applies
// the runner's signals to the spinner.
func (a *application) runJob(ctx context.Context, engineKind string, submit func(download.Orchestrator) (*download.Job, error)) (download.Outcome, error) {
	events := download.NewChannelReporter(eventBuffer)
	runner, err := a.runner(ctx, engineKind, events)
	if err != nil {
		return download.Outcome{}, err
	}

	stop := make(chan struct{})
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		drive(events, newSpinnerReporter(a.errOut), stop)
	}()
	defer func() {
		close(stop)
		<-drained
	}()

	job, err := submit(runner)
	if err != nil {
		return download.Outcome{}, err
	}
	return job.Wait(ctx)
}

// info fetches metadata and prints the formatted text
func (a *application) info(ctx context.Context, url, engineKind string) error {
	outcome, err := a.runJob(ctx, engineKind, func(o download.Orchestrator) (*download.Job, error) {
		return o.SubmitInfoFetch(url)
	})
	if err != nil {
		return err
	}
	if !outcome.OK() {
		return cli.Exit(outcome.Message(), 1)
	}
	fmt.Fprintln(a.out, outcome.Message())
	return nil
}

// download runs one download job and prints where the file went
func (a *application) download(ctx context.Context, req model.DownloadRequest, engineKind string) error {
	if platform.IsPlaylistURL(req.URL) {
		fmt.Fprintln(a.errOut, playlistNotice)
	}
	outcome, err := a.runJob(ctx, engineKind, func(o download.Orchestrator) (*download.Job, error) {
		return o.SubmitDownload(req)
	})
	if err != nil {
		return err
	}
	if !outcome.OK() {
		return cli.Exit(outcome.Message(), 1)
	}
	fmt.Fprintln(a.out, downloadSummary(outcome.Download))
	return nil
}

// playlist lists the entries of a playlist
func (a *application) playlist(ctx context.Context, url string, asJSON bool) error {
	lister := platform.NewPlaylistLister()
	lister.SetTimeout(a.cfg.PlaylistTimeout)

	pl, err := lister.List(ctx, strings.TrimSpace(url))
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(pl)
	}
	fmt.Fprint(a.out, pl.Text())
	return nil
}

// buildRequest turns command flags into a download request
func buildRequest(url, dir, quality string, audioOnly, mp3 bool) (model.DownloadRequest, error) {
	q, err := model.ParseQuality(quality)
	if err != nil {
		return model.DownloadRequest{}, err
	}
	if mp3 && !audioOnly {
		return model.DownloadRequest{}, fmt.Errorf("--mp3 requires --audio-only")
	}
	return model.DownloadRequest{
		URL:            url,
		DestinationDir: dir,
		Quality:        q,
		AudioOnly:      audioOnly,
		TranscodeToMP3: mp3,
	}, nil
}

func downloadSummary(result *model.DownloadSuccess) string {
	if result == nil {
		return download.StatusDownloadCompleted
	}
	if result.Path != "" {
		return fmt.Sprintf("%s\n%s", download.StatusDownloadCompleted, result.Path)
	}
	return fmt.Sprintf("%s\n%s", download.StatusDownloadCompleted, result.DestinationDir)
}
