// Package main provides the entry point for the Radar Scope Annotator.
package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"radar-scope/internal/app"
	"radar-scope/internal/config"
	"radar-scope/internal/version"
	"radar-scope/ui/mainwindow"
	"radar-scope/ui/prefs"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", version.AppName, version.Version)

	cfg, err := config.Load(config.DefaultPath())
	if err != nil {
		log.Printf("Config error, using defaults: %v", err)
		cfg = config.Default()
	}

	fyneApp := fyneapp.NewWithID("radar-scope")
	fyneApp.Settings().SetTheme(&app.ScopeTheme{})

	state := app.NewState(cfg)
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, state)
	win.Resize(restoreWindowSize(appPrefs))

	// Reopen a session or folder passed on the command line.
	if len(os.Args) > 1 {
		arg := os.Args[1]
		switch {
		case strings.HasSuffix(arg, ".scopesession"):
			if err := state.LoadSession(arg); err != nil {
				log.Printf("Failed to load session %s: %v", arg, err)
			}
		default:
			if info, err := os.Stat(arg); err == nil && info.IsDir() {
				if err := state.OpenFolder(arg); err != nil {
					log.Printf("Failed to open folder %s: %v", arg, err)
				}
			} else if err := state.OpenFolder(filepath.Dir(arg)); err == nil {
				state.Navigator.JumpTo(arg)
				if err := state.LoadImage(arg); err != nil {
					log.Printf("Failed to load image %s: %v", arg, err)
				}
			}
		}
	}

	setupHotReload(win, appPrefs)

	win.SetOnClosed(func() {
		saveWindowSize(appPrefs, win)
	})

	win.ShowAndRun()
}

func restoreWindowSize(p *prefs.Prefs) fyne.Size {
	return fyne.NewSize(
		float32(p.Float("windowWidth", 1280)),
		float32(p.Float("windowHeight", 800)),
	)
}

func saveWindowSize(p *prefs.Prefs, win *mainwindow.MainWindow) {
	size := win.Canvas().Size()
	p.SetFloat("windowWidth", float64(size.Width))
	p.SetFloat("windowHeight", float64(size.Height))
	if err := p.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// setupHotReload offers a restart when a newer binary appears during
// development.
func setupHotReload(win *mainwindow.MainWindow, appPrefs *prefs.Prefs) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					saveWindowSize(appPrefs, win)
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win)
	})

	reloader.Start()
}
