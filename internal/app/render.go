package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawGround renders the site plane and the snapping grid. Must run
// inside BeginMode3D.
func (app *App) drawGround() {
	extent := app.View.gridExtent

	if app.View.showGround {
		// Slightly below y=0 so footprint outlines never z-fight.
		rl.DrawPlane(
			rl.Vector3{Y: -0.01},
			rl.Vector2{X: extent * 2, Y: extent * 2},
			rl.NewColor(28, 34, 44, 255),
		)
	}

	if !app.View.showGrid {
		return
	}

	spacing := app.View.gridSpacing
	if spacing <= 0 {
		return
	}

	minor := rl.NewColor(45, 52, 64, 255)
	major := rl.NewColor(70, 80, 96, 255)

	line := 0
	for d := float32(0); d <= extent; d += spacing {
		color := minor
		if line%10 == 0 {
			color = major
		}
		line++

		rl.DrawLine3D(rl.Vector3{X: -extent, Z: d}, rl.Vector3{X: extent, Z: d}, color)
		rl.DrawLine3D(rl.Vector3{X: d, Z: -extent}, rl.Vector3{X: d, Z: extent}, color)
		if d > 0 {
			rl.DrawLine3D(rl.Vector3{X: -extent, Z: -d}, rl.Vector3{X: extent, Z: -d}, color)
			rl.DrawLine3D(rl.Vector3{X: -d, Z: -extent}, rl.Vector3{X: -d, Z: extent}, color)
		}
	}

	// Axis hints at the origin.
	rl.DrawLine3D(rl.Vector3{}, rl.Vector3{X: 5}, rl.Red)
	rl.DrawLine3D(rl.Vector3{}, rl.Vector3{Z: 5}, rl.Blue)

	if app.Sun.enabled {
		app.drawSunIndicator()
	}
}

// drawSunIndicator shows where the light comes from.
func (app *App) drawSunIndicator() {
	dir := app.Sun.lightDir
	// Place the marker opposite the light direction, above the site.
	pos := rl.Vector3{
		X: -dir.X * app.View.gridExtent * 0.8,
		Y: -dir.Y * app.View.gridExtent * 0.8,
		Z: -dir.Z * app.View.gridExtent * 0.8,
	}
	if pos.Y < 2 {
		pos.Y = 2
	}
	rl.DrawSphere(pos, 2.0, rl.Gold)
	rl.DrawLine3D(pos, rl.Vector3{}, rl.NewColor(255, 203, 0, 120))
}
