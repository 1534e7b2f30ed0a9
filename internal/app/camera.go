package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// resetCameraView resets the camera to the default view
func (app *App) resetCameraView() {
	app.Camera.distance = app.Camera.defaultDist
	app.Camera.angleX = app.Camera.defaultAngleX
	app.Camera.angleY = app.Camera.defaultAngleY
	app.Camera.target = rl.Vector3{}
}

// setCameraTopView sets the camera to look straight down at the plan
func (app *App) setCameraTopView() {
	app.Camera.angleX = math.Pi/2 - 0.01 // Just off vertical so Up stays stable
	app.Camera.angleY = 0
}

// updateCamera updates camera position based on angles
func (app *App) updateCamera() {
	x := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Sin(float64(app.Camera.angleY)))
	y := app.Camera.distance * float32(math.Sin(float64(app.Camera.angleX)))
	z := app.Camera.distance * float32(math.Cos(float64(app.Camera.angleX))) * float32(math.Cos(float64(app.Camera.angleY)))

	app.Camera.camera.Position = rl.Vector3{
		X: app.Camera.target.X + x,
		Y: app.Camera.target.Y + y,
		Z: app.Camera.target.Z + z,
	}
	app.Camera.camera.Target = app.Camera.target
}

// doPan performs camera panning based on mouse delta. The target stays
// on the ground plane so the editor never pans underground.
func (app *App) doPan(delta rl.Vector2) {
	forward := rl.Vector3Normalize(rl.Vector3Subtract(app.Camera.target, app.Camera.camera.Position))
	right := rl.Vector3Normalize(rl.Vector3CrossProduct(forward, app.Camera.camera.Up))
	up := rl.Vector3Normalize(rl.Vector3CrossProduct(right, forward))

	// Pan speed based on distance from target
	panSpeed := app.Camera.distance * 0.001

	rightMove := rl.Vector3Scale(right, -delta.X*panSpeed)
	upMove := rl.Vector3Scale(up, delta.Y*panSpeed)

	app.Camera.target = rl.Vector3Add(app.Camera.target, rightMove)
	app.Camera.target = rl.Vector3Add(app.Camera.target, upMove)
	app.Camera.target.Y = 0
}

// doOrbit rotates the camera around the target based on mouse delta
func (app *App) doOrbit(delta rl.Vector2) {
	app.Camera.angleY -= delta.X * 0.003
	app.Camera.angleX += delta.Y * 0.003

	// Keep the camera above the ground plane
	if app.Camera.angleX < 0.05 {
		app.Camera.angleX = 0.05
	}
	if app.Camera.angleX > math.Pi/2-0.01 {
		app.Camera.angleX = math.Pi/2 - 0.01
	}
}

// doZoom adjusts the camera distance from the mouse wheel
func (app *App) doZoom(wheel float32) {
	app.Camera.distance -= wheel * app.Camera.distance * 0.1
	if app.Camera.distance < 5 {
		app.Camera.distance = 5
	}
	if app.Camera.distance > 400 {
		app.Camera.distance = 400
	}
}
