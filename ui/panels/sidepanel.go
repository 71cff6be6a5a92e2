// Package panels provides UI panels for the application.
package panels

import (
	"fmt"

	"resume-hotspots/internal/app"
	"resume-hotspots/internal/engine"
	"resume-hotspots/internal/region"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	container *container.AppTabs

	zonesPanel  *ZonesPanel
	photosPanel *PhotosPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, eng *engine.Engine) *SidePanel {
	sp := &SidePanel{state: state}

	sp.zonesPanel = NewZonesPanel(state, eng)
	sp.photosPanel = NewPhotosPanel(state)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Zones", sp.zonesPanel.Container()),
		container.NewTabItem("Photos", sp.photosPanel.Container()),
	)

	// A zone selection on the canvas switches the photo panel to that
	// zone's carousel.
	state.On(app.EventSelectionChanged, func(data interface{}) {
		id, _ := data.(string)
		sp.zonesPanel.SetSelected(id)
		sp.photosPanel.SetZone(id)
	})
	state.On(app.EventRegionsChanged, func(interface{}) {
		sp.zonesPanel.Reload()
	})
	state.On(app.EventPhotosChanged, func(interface{}) {
		sp.photosPanel.Reload()
	})
	state.On(app.EventProjectLoaded, func(interface{}) {
		sp.zonesPanel.Reload()
		sp.photosPanel.SetZone("")
	})

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}

// SetWindow sets the parent window for dialogs.
func (sp *SidePanel) SetWindow(w fyne.Window) {
	sp.photosPanel.SetWindow(w)
}

// ZonesPanel lists the hot zones with their geometry and lets the user
// select or delete them.
type ZonesPanel struct {
	state  *app.State
	engine *engine.Engine

	list      *widget.List
	infoLabel *widget.Label
	container fyne.CanvasObject

	regions  []region.Region
	selected string
}

// NewZonesPanel creates a new zones panel.
func NewZonesPanel(state *app.State, eng *engine.Engine) *ZonesPanel {
	zp := &ZonesPanel{
		state:  state,
		engine: eng,
	}

	zp.infoLabel = widget.NewLabel("No zones yet. Use the draw tool to add one.")
	zp.infoLabel.Wrapping = fyne.TextWrapWord

	zp.list = widget.NewList(
		func() int { return len(zp.regions) },
		func() fyne.CanvasObject {
			return widget.NewLabel("zone")
		},
		func(i widget.ListItemID, obj fyne.CanvasObject) {
			if i >= len(zp.regions) {
				return
			}
			r := zp.regions[i]
			label := obj.(*widget.Label)
			label.SetText(fmt.Sprintf("Zone %d  (%.0f, %.0f) %.0fx%.0f",
				r.OrderIndex+1, r.X, r.Y, r.Width, r.Height))
		},
	)
	zp.list.OnSelected = func(i widget.ListItemID) {
		if i >= len(zp.regions) {
			return
		}
		id := zp.regions[i].ID
		zp.selected = id
		eng.Select(id)
		state.Emit(app.EventSelectionChanged, id)
	}

	deleteButton := widget.NewButton("Delete Zone", func() {
		if zp.selected == "" {
			return
		}
		eng.Delete(zp.selected)
		zp.selected = ""
		state.Emit(app.EventSelectionChanged, "")
	})

	zp.container = container.NewBorder(
		zp.infoLabel,
		deleteButton,
		nil, nil,
		zp.list,
	)

	zp.Reload()
	return zp
}

// Container returns the panel container.
func (zp *ZonesPanel) Container() fyne.CanvasObject {
	return zp.container
}

// Reload refreshes the zone list from the working copy.
func (zp *ZonesPanel) Reload() {
	zp.regions = zp.state.RegionsCopy()
	region.SortByOrder(zp.regions)
	if len(zp.regions) == 0 {
		zp.infoLabel.SetText("No zones yet. Use the draw tool to add one.")
	} else {
		zp.infoLabel.SetText(fmt.Sprintf("%d zones", len(zp.regions)))
	}
	zp.list.Refresh()
}

// SetSelected highlights the zone with the given id, or clears the
// highlight for "".
func (zp *ZonesPanel) SetSelected(id string) {
	zp.selected = id
	if id == "" {
		zp.list.UnselectAll()
		return
	}
	for i, r := range zp.regions {
		if r.ID == id {
			zp.list.Select(i)
			return
		}
	}
}
