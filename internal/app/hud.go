package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/massinglab/gomassing/version"
)

// drawUI draws the heads-up display
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)
	fontSize16 := float32(16)
	fontSize14 := float32(14)
	fontSize12 := float32(12)

	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	// === SITE ===
	if app.View.showStats {
		stats := app.registry.Stats()
		rl.DrawTextEx(app.UI.font, "Site:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Buildings: %d", stats.Count), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Footprint Area: %.1f m2", stats.TotalArea), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Total Floors: %d", stats.TotalFloors), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.White)
		y += lineHeight
		if app.File.path != "" {
			marker := ""
			if app.File.dirty {
				marker = " *"
			}
			rl.DrawTextEx(app.UI.font, fmt.Sprintf("  File: %s%s", app.File.path, marker), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
			y += lineHeight
		}
		y += lineHeight
	}

	// === SELECTED ===
	if rec := app.registry.Selected(); rec != nil {
		rl.DrawTextEx(app.UI.font, "Selected:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
		y += lineHeight
		name := rec.Config.Name
		if name == "" {
			name = fmt.Sprintf("Building %d", rec.ID)
		}
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  %s", name), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.Green)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Area: %.1f m2 | Floors: %d | Height: %.1f m", rec.Area, rec.Config.Floors, rec.TotalHeight()), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.Green)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, "  +/-: Floors | Backspace: Delete | ESC: Deselect", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		y += lineHeight * 2
	}

	// === DRAWING ===
	if app.session.Active() {
		rl.DrawTextEx(app.UI.font, "DRAWING", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Magenta)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Corners: %d", app.session.VertexCount()), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.NewColor(255, 150, 255, 255))
		y += lineHeight
		if app.lastEdgeText != "" {
			rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Last %s", app.lastEdgeText), rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.NewColor(255, 150, 255, 255))
			y += lineHeight
		}
		if app.session.SnapToStartActive() {
			rl.DrawTextEx(app.UI.font, "  Click to close the loop", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.Orange)
			y += lineHeight
		}
		rl.DrawTextEx(app.UI.font, "  Double-Click/Enter: Close | Backspace: Undo | ESC: Cancel", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.NewColor(144, 238, 144, 255))
		y += lineHeight * 2
	}

	// === HELP ===
	if app.View.showHelp {
		rl.DrawTextEx(app.UI.font, "Edit:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, "  D: Draw footprint | Click: Select | G: Grid snap", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, "  S: Save | L: Reload | C: Clear all", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, "  N: Snapshot | P: Parent snapshot", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, "  U: Sun preview | , .: Solar time", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		y += lineHeight * 2

		rl.DrawTextEx(app.UI.font, "Navigate:", rl.Vector2{X: 10, Y: y}, fontSize16, 1, rl.Yellow)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, "  Left Drag: Rotate | Shift+Drag: Pan", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, "  Mouse Wheel: Zoom | Middle: Pan", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		y += lineHeight
		rl.DrawTextEx(app.UI.font, "  Home: Reset | T: Top | H: Toggle help", rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
		y += lineHeight
	}

	// Snapshot graph depth (top-right corner)
	if app.graph.Len() > 0 {
		graphText := fmt.Sprintf("snapshots: %d", app.graph.Len())
		if cur := app.graph.Current(); cur != nil {
			graphText = fmt.Sprintf("snapshots: %d @ %s", app.graph.Len(), shortID(cur.ID))
		}
		size := rl.MeasureTextEx(app.UI.font, graphText, fontSize12, 1)
		rl.DrawTextEx(app.UI.font, graphText, rl.Vector2{X: screenWidth - size.X - 20, Y: 10}, fontSize12, 1, rl.Gray)
	}

	// Status line (bottom center), fades after a few seconds
	if app.View.statusText != "" && time.Since(app.View.statusSetAt) < 4*time.Second {
		textSize := rl.MeasureTextEx(app.UI.font, app.View.statusText, fontSize16, 1)
		boxPadding := float32(10)
		boxWidth := textSize.X + boxPadding*2
		boxHeight := textSize.Y + boxPadding*2
		boxX := (screenWidth - boxWidth) / 2
		boxY := screenHeight - boxHeight - 50

		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 200))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.Yellow)
		rl.DrawTextEx(app.UI.font, app.View.statusText, rl.Vector2{X: boxX + boxPadding, Y: boxY + boxPadding}, fontSize16, 1, rl.Yellow)
	}

	// Version and FPS in bottom-left corner
	bottomY := screenHeight - 30
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(app.UI.font, versionText, rl.Vector2{X: 10, Y: bottomY}, fontSize12, 1, rl.Gray)

	fpsText := fmt.Sprintf("FPS: %d", rl.GetFPS())
	versionWidth := rl.MeasureTextEx(app.UI.font, versionText, fontSize12, 1).X
	rl.DrawTextEx(app.UI.font, fpsText, rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, fontSize12, 1, rl.Lime)
}
