package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/massinglab/gomassing/internal/building"
	"github.com/massinglab/gomassing/internal/drawing"
)

// handleInput processes user input
func (app *App) handleInput() {
	mousePos := rl.GetMousePosition()

	// Camera view preset shortcuts
	if rl.IsKeyPressed(rl.KeyHome) {
		app.resetCameraView()
	}
	if rl.IsKeyPressed(rl.KeyT) {
		app.setCameraTopView()
	}

	// Track mouse down for click vs drag detection
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		app.Interaction.mouseDownPos = mousePos
		app.Interaction.buttonDown = true
		shiftPressed := rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift)
		app.Interaction.isPanning = shiftPressed
		app.router.MouseDown(float64(mousePos.X), float64(mousePos.Y), time.Now())
	}

	// Camera panning with Shift + drag or middle mouse button drag
	if (rl.IsMouseButtonDown(rl.MouseLeftButton) && app.Interaction.isPanning) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.doPan(delta)
			// Panning is camera work, poison any pending click.
			app.router.MouseMove(float64(mousePos.X), float64(mousePos.Y), true)
		}
	} else if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		// Camera rotation with left drag
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.doOrbit(delta)
		}
		app.router.MouseMove(float64(mousePos.X), float64(mousePos.Y), true)
	} else if mousePos != app.Interaction.lastMousePos {
		// Free movement feeds hover and the drawing preview.
		app.router.MouseMove(float64(mousePos.X), float64(mousePos.Y), false)
	}
	app.Interaction.lastMousePos = mousePos

	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		app.router.MouseUp(float64(mousePos.X), float64(mousePos.Y), time.Now())
		app.Interaction.isPanning = false
		app.Interaction.buttonDown = false
	}

	// Zoom with mouse wheel
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		app.doZoom(wheel)
	}

	app.handleKeyboard()
}

func (app *App) handleKeyboard() {
	if rl.IsKeyPressed(rl.KeyD) {
		if !app.session.Active() {
			app.session.Start()
			app.setStatus("Drawing: click corners, double-click or Enter to close")
		}
	}
	if rl.IsKeyPressed(rl.KeyEnter) {
		if app.session.Active() {
			app.finishDrawing()
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		if app.session.Active() {
			app.session.Cancel()
			app.setStatus("Drawing cancelled")
		} else if app.registry.Selected() != nil {
			if err := app.registry.Select(building.NoID); err != nil {
				fmt.Printf("Error clearing selection: %v\n", err)
			}
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		if app.session.Active() {
			app.session.UndoLastPoint()
		} else if sel := app.registry.Selected(); sel != nil {
			app.registry.Delete(sel.ID)
			app.File.dirty = true
			app.setStatus(fmt.Sprintf("Deleted building %d", sel.ID))
		}
	}
	if rl.IsKeyPressed(rl.KeyG) {
		enabled := !app.snapper.Config().GridEnabled
		app.snapper.SetGridEnabled(enabled)
		if enabled {
			app.setStatus("Grid snapping on")
		} else {
			app.setStatus("Grid snapping off")
		}
	}
	if rl.IsKeyPressed(rl.KeyS) && !app.session.Active() {
		app.saveProject()
	}
	if rl.IsKeyPressed(rl.KeyL) && app.File.path != "" {
		app.loadProject()
	}
	if rl.IsKeyPressed(rl.KeyC) && !app.session.Active() {
		if app.registry.Count() > 0 {
			app.registry.ClearAll()
			app.File.dirty = true
			app.setStatus("Cleared all buildings")
		}
	}
	if rl.IsKeyPressed(rl.KeyN) {
		app.commitSnapshot()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		app.checkoutParent()
	}
	if rl.IsKeyPressed(rl.KeyU) {
		app.Sun.enabled = !app.Sun.enabled
		if app.Sun.enabled {
			app.updateSun()
			app.setStatus(fmt.Sprintf("Sun preview on (%.1f h)", app.Sun.solarHour))
		} else {
			app.host.SetLightDirection(rl.Vector3{X: -0.4, Y: -1.0, Z: -0.3})
			app.setStatus("Sun preview off")
		}
	}
	if rl.IsKeyPressed(rl.KeyComma) {
		app.adjustSolarHour(-0.5)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) {
		app.adjustSolarHour(0.5)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		app.adjustSelectedFloors(1)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		app.adjustSelectedFloors(-1)
	}
	if rl.IsKeyPressed(rl.KeyF1) || rl.IsKeyPressed(rl.KeyH) {
		app.View.showHelp = !app.View.showHelp
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		app.View.showStats = !app.View.showStats
	}
}

// onSingleClick adds a footprint corner while drawing, or picks a
// building when idle.
func (app *App) onSingleClick(x, y float64) {
	ray := app.pointerRay(x, y)

	if app.session.Active() {
		if app.session.VertexCount() >= maxFootprintVertices {
			app.setStatus(fmt.Sprintf("Footprint limited to %d corners", maxFootprintVertices))
			return
		}
		app.session.AddPoint(ray)
		return
	}

	id := building.NoID
	if rec := app.registry.Pick(ray); rec != nil {
		id = rec.ID
	}
	if err := app.registry.Select(id); err != nil {
		fmt.Printf("Error selecting building %d: %v\n", id, err)
		return
	}
	if rec := app.registry.Selected(); rec != nil {
		app.setStatus(fmt.Sprintf("Building %d: %.1f m2, %d floors", rec.ID, rec.Area, rec.Config.Floors))
	}
}

// onDoubleClick closes the footprint being drawn.
func (app *App) onDoubleClick(x, y float64) {
	if app.session.Active() {
		app.finishDrawing()
	}
}

// onPointerMove drives the drawing preview or the hover highlight.
func (app *App) onPointerMove(x, y float64) {
	ray := app.pointerRay(x, y)

	if app.session.Active() {
		app.session.SchedulePreview(ray)
		return
	}
	id := building.NoID
	if rec := app.registry.Pick(ray); rec != nil {
		id = rec.ID
	}
	app.registry.Hover(id)
}

func (app *App) finishDrawing() {
	err := app.session.Finish()
	switch {
	case err == nil:
		stats := app.registry.Stats()
		app.setStatus(fmt.Sprintf("Building created (%d total, %.1f m2)", stats.Count, stats.TotalArea))
	case err == drawing.ErrNotEnoughVertices:
		app.setStatus("Need at least 3 corners to close a footprint")
	default:
		fmt.Printf("Error committing building: %v\n", err)
		app.setStatus(fmt.Sprintf("Commit failed: %v", err))
	}
}

// maxFootprintVertices caps runaway click sequences; the core imposes
// no limit of its own.
const maxFootprintVertices = 256
