package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"

	"github.com/ytget/nobsytdl/internal/config"
	"github.com/ytget/nobsytdl/internal/logging"
	"github.com/ytget/nobsytdl/internal/platform"
	"github.com/ytget/nobsytdl/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.nobsytdl"
	AppName = "No BS YT Downloader"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logging.Configure(cfg.LogLevel, cfg.LogFormat)
	log.WithField("version", version).Info("starting")

	engine, err := platform.NewEngine(cfg.EngineOptions())
	if err != nil {
		log.WithError(err).Fatal("creating engine")
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	settings := config.NewSettings(myApp, cfg.DownloadDir)
	if err := platform.CreateDirectoryIfNotExists(settings.GetDownloadDirectory()); err != nil {
		log.WithError(err).Warn("failed to ensure downloads dir")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	ui.NewRootUI(ctx, myWindow, settings, engine)

	myWindow.ShowAndRun()
}
