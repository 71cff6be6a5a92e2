// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"os"
	"path/filepath"

	"resume-hotspots/internal/app"
	"resume-hotspots/internal/engine"
	"resume-hotspots/internal/publish"
	"resume-hotspots/internal/region"
	"resume-hotspots/internal/version"
	"resume-hotspots/ui/canvas"
	"resume-hotspots/ui/panels"
	"resume-hotspots/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const (
	prefKeyLastDir      = "lastDirectory"
	prefKeyLastProject  = "lastProject"
	prefKeyWindowWidth  = "windowWidth"
	prefKeyWindowHeight = "windowHeight"
	prefKeySnapEnabled  = "snapEnabled"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	prefs     *prefs.Prefs
	state     *app.State
	engine    *engine.Engine
	canvas    *canvas.PageCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label

	drawToggle *widget.Check
	snapToggle *widget.Check
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Resume Hotspots")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		prefs:  p,
		state:  state,
		engine: engine.New(engine.Space{}),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()

	win.Resize(fyne.NewSize(
		float32(p.FloatWithFallback(prefKeyWindowWidth, 1280)),
		float32(p.FloatWithFallback(prefKeyWindowHeight, 860)),
	))
	win.SetCloseIntercept(func() {
		size := win.Canvas().Size()
		p.SetFloat(prefKeyWindowWidth, float64(size.Width))
		p.SetFloat(prefKeyWindowHeight, float64(size.Height))
		p.Save()
		win.Close()
	})

	return mw
}

// Engine returns the zone editor engine, for tests and tooling.
func (mw *MainWindow) Engine() *engine.Engine {
	return mw.engine
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	// Editor changes flow into the application state.
	mw.engine.SetOnChange(func(regions []region.Region) {
		mw.state.SetRegions(regions)
	})

	mw.canvas = canvas.NewPageCanvas(mw.engine)
	mw.canvas.Gestures().SetOnSelectionChanged(func(id string) {
		mw.state.Emit(app.EventSelectionChanged, id)
	})

	mw.sidePanel = panels.NewSidePanel(mw.state, mw.engine)
	mw.sidePanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel("Ready")

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,
		nil, nil, nil,
		mw.canvas.Container(),
	)

	split := container.NewHSplit(
		mw.sidePanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.25)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with mode and zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	mw.drawToggle = widget.NewCheck("Draw zones", func(on bool) {
		mw.engine.SetDrawMode(on)
		if on {
			mw.updateStatus("Draw mode: drag on the page to add a zone")
		} else {
			mw.updateStatus("Select mode")
		}
		mw.canvas.Refresh()
	})
	mw.snapToggle = widget.NewCheck("Snap", func(on bool) {
		mw.engine.SetSnapEnabled(on)
		mw.prefs.SetBool(prefKeySnapEnabled, on)
		if s := mw.state.Store; s != nil {
			s.File.Settings.SnapEnabled = on
		}
	})
	// The project setting wins once one is loaded.
	mw.snapToggle.SetChecked(mw.prefs.Bool(prefKeySnapEnabled, true))

	zoomOutBtn := widget.NewButton("-", func() { mw.canvas.ZoomOut() })
	zoomInBtn := widget.NewButton("+", func() { mw.canvas.ZoomIn() })
	fitBtn := widget.NewButton("Fit", func() { mw.canvas.FitToWindow() })
	actualBtn := widget.NewButton("1:1", func() { mw.canvas.SetZoom(1.0) })

	return container.NewHBox(
		mw.drawToggle,
		mw.snapToggle,
		widget.NewSeparator(),
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
		actualBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project...", mw.onNewProject),
		fyne.NewMenuItem("Open Project...", mw.onOpenProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Attach Resume PDF...", mw.onAttachResume),
		fyne.NewMenuItem("Attach Page Image...", mw.onAttachPageImage),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Project", mw.onSaveProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Publish Site...", mw.onPublish),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Delete Zone", mw.onDeleteZone),
		fyne.NewMenuItem("Cancel Gesture", func() {
			mw.engine.Cancel()
			mw.canvas.Refresh()
		}),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", func() { mw.canvas.ZoomIn() }),
		fyne.NewMenuItem("Zoom Out", func() { mw.canvas.ZoomOut() }),
		fyne.NewMenuItem("Fit to Window", func() { mw.canvas.FitToWindow() }),
		fyne.NewMenuItem("Actual Size", func() { mw.canvas.SetZoom(1.0) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		path, _ := data.(string)
		mw.SetTitle("Resume Hotspots - " + filepath.Base(path))
		mw.prefs.SetString(prefKeyLastProject, path)

		if s := mw.state.Store; s != nil {
			mw.snapToggle.SetChecked(s.File.Settings.SnapEnabled)
			if t := s.File.Settings.SnapThreshold; t > 0 {
				mw.engine.SetSnapThreshold(t)
			}
		}
		mw.engine.SetSpace(mw.state.Space)
		mw.engine.SetRegions(mw.state.RegionsCopy())
		mw.canvas.SetPage(mw.state.PageImage)
		mw.updateStatus("Project loaded: " + path)
	})

	mw.state.On(app.EventPageLoaded, func(interface{}) {
		mw.engine.SetSpace(mw.state.Space)
		mw.canvas.SetPage(mw.state.PageImage)
		mw.updateStatus("Page loaded")
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		id, _ := data.(string)
		if id != "" && mw.engine.Selected() != id {
			mw.engine.Select(id)
		}
		if id == "" {
			mw.engine.ClearSelection()
		}
		mw.canvas.Refresh()
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.prefs.SetString(prefKeyLastDir, filepath.Dir(filePath))
	mw.prefs.Save()
}

// RestoreLastProject reopens the project from the previous session.
func (mw *MainWindow) RestoreLastProject() {
	path := mw.prefs.String(prefKeyLastProject)
	if path == "" {
		return
	}
	if err := mw.state.OpenProject(path); err != nil {
		mw.updateStatus("Could not reopen " + filepath.Base(path))
	}
}

// Menu action handlers

func (mw *MainWindow) onNewProject() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		// The save dialog already created an empty file there.
		os.Remove(path)
		if filepath.Ext(path) != ".rhz" {
			path += ".rhz"
		}
		mw.saveLastDir(path)
		name := filepath.Base(path)
		if err := mw.state.NewProject(path, name[:len(name)-len(".rhz")]); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("resume.rhz")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onOpenProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.OpenProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".rhz"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAttachResume() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.SetResume(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAttachPageImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.SetPageImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tif", ".tiff"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveProject() {
	if mw.state.Store == nil {
		mw.onNewProject()
		return
	}
	if _, err := mw.state.SaveProject(); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	// Saving promotes drafts to stable ids, refresh the editor copy.
	mw.engine.SetRegions(mw.state.RegionsCopy())
	mw.canvas.Refresh()

	title := mw.Title()
	if len(title) > 2 && title[len(title)-2:] == " *" {
		mw.SetTitle(title[:len(title)-2])
	}
	mw.updateStatus("Project saved")
}

func (mw *MainWindow) onPublish() {
	store := mw.state.Store
	if store == nil {
		mw.updateStatus("Open a project before publishing")
		return
	}

	fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		outDir := uri.Path()

		pub := &publish.Publisher{
			Space:     mw.state.Space,
			PageImage: store.File.GetPageImagePath(store.Path),
			Regions:   store.Regions(),
			Photos:    store.Photos(),
			PhotosDir: mw.state.PhotosDir(),
			Cache:     mw.state.PhotoCache,
		}
		opts := publish.Options{OutDir: outDir, Title: store.File.Name}
		if err := pub.Publish(opts); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.state.Emit(app.EventPublished, outDir)
		mw.updateStatus("Published to " + outDir)
	}, mw.Window)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onDeleteZone() {
	id := mw.engine.Selected()
	if id == "" {
		mw.updateStatus("No zone selected")
		return
	}
	mw.engine.Delete(id)
	mw.state.Emit(app.EventSelectionChanged, "")
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Resume Hotspots",
		fmt.Sprintf("Resume Hotspots v%s\n\n"+
			"Turn a contractor's resume into an interactive page:\n"+
			"draw hot zones over the jobs and attach photos of the work.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
