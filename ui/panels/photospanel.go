package panels

import (
	"fmt"

	"resume-hotspots/internal/app"
	"resume-hotspots/internal/region"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const thumbDim = 160

// PhotosPanel manages the photo carousel of the selected zone: adding,
// removing, reordering and captioning photos.
type PhotosPanel struct {
	state  *app.State
	window fyne.Window

	zoneID string
	photos []region.Photo

	titleLabel *widget.Label
	list       *widget.List
	selected   int

	captionEntry *widget.Entry
	container    fyne.CanvasObject
}

// NewPhotosPanel creates a new photos panel.
func NewPhotosPanel(state *app.State) *PhotosPanel {
	pp := &PhotosPanel{
		state:    state,
		selected: -1,
	}

	pp.titleLabel = widget.NewLabel("Select a zone to manage its photos.")
	pp.titleLabel.Wrapping = fyne.TextWrapWord

	pp.list = widget.NewList(
		func() int { return len(pp.photos) },
		func() fyne.CanvasObject {
			img := fynecanvas.NewImageFromImage(nil)
			img.FillMode = fynecanvas.ImageFillContain
			img.SetMinSize(fyne.NewSize(thumbDim, thumbDim*3/4))
			return container.NewBorder(nil, widget.NewLabel(""), nil, nil, img)
		},
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if i >= len(pp.photos) {
				return
			}
			ph := pp.photos[i]
			border := obj.(*fyne.Container)
			img := border.Objects[0].(*fynecanvas.Image)
			caption := border.Objects[1].(*widget.Label)

			thumb, err := state.PhotoCache.Thumbnail(state.PhotosDir().Abs(ph.ImagePath), thumbDim)
			if err == nil {
				img.Image = thumb
				img.Refresh()
			}
			if ph.Caption != "" {
				caption.SetText(ph.Caption)
			} else {
				caption.SetText(ph.ImagePath)
			}
		},
	)
	pp.list.OnSelected = func(i widget.ListItemID) {
		pp.selected = i
		if i < len(pp.photos) {
			pp.captionEntry.SetText(pp.photos[i].Caption)
		}
	}

	addButton := widget.NewButton("Add Photo...", pp.addPhoto)
	removeButton := widget.NewButton("Remove", func() {
		if ph, ok := pp.selectedPhoto(); ok {
			pp.reportError(state.DeletePhoto(ph.ID))
		}
	})
	upButton := widget.NewButton("Up", func() {
		if ph, ok := pp.selectedPhoto(); ok {
			pp.reportError(state.MovePhoto(ph.ID, -1))
		}
	})
	downButton := widget.NewButton("Down", func() {
		if ph, ok := pp.selectedPhoto(); ok {
			pp.reportError(state.MovePhoto(ph.ID, 1))
		}
	})

	pp.captionEntry = widget.NewEntry()
	pp.captionEntry.SetPlaceHolder("Caption")
	pp.captionEntry.OnSubmitted = func(text string) {
		if ph, ok := pp.selectedPhoto(); ok {
			pp.reportError(state.SetPhotoCaption(ph.ID, text))
		}
	}

	controls := container.NewVBox(
		container.NewGridWithColumns(2, addButton, removeButton),
		container.NewGridWithColumns(2, upButton, downButton),
		pp.captionEntry,
	)

	pp.container = container.NewBorder(
		pp.titleLabel,
		controls,
		nil, nil,
		pp.list,
	)
	return pp
}

// Container returns the panel container.
func (pp *PhotosPanel) Container() fyne.CanvasObject {
	return pp.container
}

// SetWindow sets the parent window for dialogs.
func (pp *PhotosPanel) SetWindow(w fyne.Window) {
	pp.window = w
}

// SetZone switches the panel to the carousel of the given zone.
func (pp *PhotosPanel) SetZone(id string) {
	pp.zoneID = id
	pp.selected = -1
	pp.captionEntry.SetText("")
	pp.Reload()
}

// Reload refreshes the carousel from the state.
func (pp *PhotosPanel) Reload() {
	if pp.zoneID == "" {
		pp.photos = nil
		pp.titleLabel.SetText("Select a zone to manage its photos.")
	} else {
		pp.photos = region.PhotosFor(pp.state.PhotosCopy(), pp.zoneID)
		pp.titleLabel.SetText(fmt.Sprintf("%d photos in this zone", len(pp.photos)))
	}
	pp.list.UnselectAll()
	pp.list.Refresh()
}

func (pp *PhotosPanel) selectedPhoto() (region.Photo, bool) {
	if pp.selected < 0 || pp.selected >= len(pp.photos) {
		return region.Photo{}, false
	}
	return pp.photos[pp.selected], true
}

func (pp *PhotosPanel) addPhoto() {
	if pp.zoneID == "" {
		pp.reportError(fmt.Errorf("select a zone first"))
		return
	}
	if (region.Region{ID: pp.zoneID}).IsDraft() {
		pp.reportError(fmt.Errorf("save the project before adding photos to a new zone"))
		return
	}

	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		pp.reportError(pp.state.AddPhoto(pp.zoneID, path, ""))
	}, pp.window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg"}))
	fd.Show()
}

func (pp *PhotosPanel) reportError(err error) {
	if err == nil {
		return
	}
	if pp.window != nil {
		dialog.ShowError(err, pp.window)
	}
}
