// Package main provides the entry point for the Resume Hotspots editor.
package main

import (
	"log"
	"os"
	"time"

	"resume-hotspots/internal/app"
	"resume-hotspots/ui/mainwindow"
	"resume-hotspots/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const (
	appTitle   = "Resume Hotspots"
	appVersion = "0.1.0"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s v%s", appTitle, appVersion)

	fyneApp := fyneapp.NewWithID("resume-hotspots")
	fyneApp.Settings().SetTheme(&app.HotzoneTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Open a project from the command line, or reopen the last one.
	if len(os.Args) > 1 {
		if err := appState.OpenProject(os.Args[1]); err != nil {
			log.Printf("Failed to open project %s: %v", os.Args[1], err)
		}
	} else {
		win.RestoreLastProject()
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary
// is recompiled during development.
func setupHotReload(win *mainwindow.MainWindow) {
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
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win.Window)
	})

	reloader.Start()
}
