// Package main provides the entry point for the FixTheColor predictor.
package main

import (
	"flag"
	"log"

	"fixthecolor/internal/app"
	"fixthecolor/internal/config"
	"fixthecolor/internal/model"
	"fixthecolor/internal/version"
	"fixthecolor/ui/dialogs"
	"fixthecolor/ui/mainwindow"
	"fixthecolor/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
)

const appID = "io.github.fixthecolor"

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to YAML config")
	trainOnly := flag.Bool("train", false, "Open only the trainer window")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	defer cfg.SetupLogging().Close()
	log.Print(version.String("FixTheColor"))

	fyneApp := fyneapp.NewWithID(appID)
	fyneApp.Settings().SetTheme(&app.Theme{})
	appPrefs := prefs.Load()

	if *trainOnly {
		tw := dialogs.NewTrainWindow(fyneApp, model.NewStore(cfg.ModelPath), appPrefs)
		tw.ShowAndRun()
		return
	}

	win := mainwindow.New(fyneApp, app.NewState(), cfg, appPrefs)

	// Optional image to pick from
	if flag.NArg() > 0 {
		win.LoadImage(flag.Arg(0))
	}

	win.ShowAndRun()
}
