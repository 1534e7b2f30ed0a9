package app

import (
	"fmt"
	"math"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/massinglab/gomassing/internal/building"
	"github.com/massinglab/gomassing/internal/config"
	"github.com/massinglab/gomassing/internal/drawing"
	"github.com/massinglab/gomassing/internal/interaction"
	"github.com/massinglab/gomassing/internal/project"
	"github.com/massinglab/gomassing/internal/scene"
	"github.com/massinglab/gomassing/pkg/geometry"
	"github.com/massinglab/gomassing/pkg/snap"
	"github.com/massinglab/gomassing/pkg/solar"
	"github.com/massinglab/gomassing/pkg/watcher"
)

type App struct {
	Camera      CameraState
	View        ViewSettings
	Interaction InteractionState
	Sun         SunState
	File        FileState
	UI          UIState

	settings config.Settings
	host     *RaylibHost
	registry *building.Registry
	session  *drawing.Session
	snapper  *snap.Engine
	router   *interaction.Router
	graph    *building.Graph
	watcher  *watcher.Watcher

	// Config applied to the next committed building and to +/- edits.
	pendingConfig building.Config

	lastEdgeText string
}

// Run starts the editor. projectPath may be empty for a scratch session.
func Run(projectPath string) {
	settings, err := config.Load("gomassing.yaml")
	if err != nil {
		fmt.Printf("Error loading settings: %v\n", err)
		os.Exit(1)
	}

	// Initialize window
	screenWidth := int32(1400)
	screenHeight := int32(900)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(screenWidth, screenHeight, "GoMassing")
	rl.SetTargetFPS(60)
	// Extruded footprints are drawn from both sides.
	rl.DisableBackfaceCulling()

	app := newApp(settings, projectPath)
	defer app.shutdown()

	if projectPath != "" {
		if _, err := os.Stat(projectPath); err == nil {
			app.loadProject()
		} else {
			fmt.Printf("Project file %s does not exist yet, starting empty\n", projectPath)
		}
		app.setupFileWatcher()
	}

	app.mainLoop()
}

func newApp(settings config.Settings, projectPath string) *App {
	app := &App{
		settings: settings,
		View: ViewSettings{
			showGrid:    true,
			showGround:  true,
			showStats:   true,
			showHelp:    true,
			gridExtent:  float32(settings.Grid.Extent),
			gridSpacing: float32(settings.Grid.Size),
		},
		Sun: SunState{
			solarHour: 12,
			date:      time.Now(),
		},
		File: FileState{path: projectPath},
		UI:   UIState{font: rl.GetFontDefault()},
	}

	app.host = NewRaylibHost()
	app.registry = building.NewRegistry(app.host)
	app.graph = building.NewGraph()
	app.pendingConfig = building.Config{
		Floors:      settings.Defaults.Floors,
		FloorHeight: settings.Defaults.FloorHeight,
		Color:       scene.Color(settings.Defaults.Color),
	}

	app.snapper = snap.NewEngine(settings.SnapConfig())
	app.session = drawing.NewSession(app.host, app.snapper, func(vertices []geometry.Vector3) error {
		_, err := app.registry.Create(vertices, app.pendingConfig)
		if err == nil {
			app.File.dirty = true
		}
		return err
	})
	app.session.SetProjector(app.projectToGround)
	app.session.SetPreviewVolume(app.pendingConfig.TotalHeight(), app.pendingConfig.Color)
	app.session.SetEdgeListener(func(index int, length float64) {
		app.lastEdgeText = fmt.Sprintf("edge %d: %.2f m", index+1, length)
	})

	app.router = interaction.NewRouter(interaction.Handlers{
		OnSingleClick: app.onSingleClick,
		OnDoubleClick: app.onDoubleClick,
		OnMove:        app.onPointerMove,
	})

	// Camera starts high, looking down at the site.
	app.Camera.distance = 80
	app.Camera.angleX = 0.9
	app.Camera.angleY = 0.6
	app.Camera.defaultDist = 80
	app.Camera.defaultAngleX = 0.9
	app.Camera.defaultAngleY = 0.6
	app.Camera.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 60, Z: 60},
		Target:     rl.Vector3{},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}

	app.updateSun()
	return app
}

func (app *App) mainLoop() {
	for {
		// ESC is handled separately for cancel/deselect.
		if rl.WindowShouldClose() && !rl.IsKeyPressed(rl.KeyEscape) {
			break
		}

		ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
		if ctrlPressed && rl.IsKeyPressed(rl.KeyC) {
			break
		}

		// Reload requested by the watcher goroutine, applied here so all
		// scene mutation stays on the main thread.
		if app.File.needsReload {
			app.File.needsReload = false
			app.loadProject()
			app.setStatus("Project reloaded from disk")
		}

		app.handleInput()
		app.updateCamera()

		// At most one preview rebuild per frame, with the freshest ray.
		app.session.FlushPreview()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.Camera.camera)
		app.drawGround()
		app.host.Draw3D()
		rl.EndMode3D()

		app.host.DrawLabels(app.Camera.camera, app.UI.font)
		app.drawUI()

		rl.EndDrawing()
	}

	if app.File.dirty && app.File.path != "" {
		app.saveProject()
	}
}

func (app *App) shutdown() {
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			fmt.Printf("Warning: closing file watcher: %v\n", err)
		}
	}
	rl.CloseWindow()
}

func (app *App) setupFileWatcher() {
	w, err := watcher.New(app.File.path, func() {
		app.File.needsReload = true
	})
	if err != nil {
		fmt.Printf("Warning: Failed to set up file watching: %v\n", err)
		fmt.Println("Auto-reload will not be available")
		return
	}
	app.watcher = w
}

func (app *App) loadProject() {
	file, err := project.Load(app.File.path)
	if err != nil {
		fmt.Printf("Error loading project: %v\n", err)
		app.setStatus(fmt.Sprintf("Load failed: %v", err))
		return
	}
	result := project.Import(app.registry, file)
	app.File.dirty = false
	app.setStatus(fmt.Sprintf("Loaded %d buildings (%d skipped)", result.Created, result.Skipped))
}

func (app *App) saveProject() {
	path := app.File.path
	if path == "" {
		path = "untitled.gomassing.json"
		app.File.path = path
	}
	// Suspend the watcher while writing so our own save does not bounce
	// back as a reload.
	if app.watcher != nil {
		app.watcher.Suspend()
		defer app.watcher.Resume()
	}
	if err := project.Save(path, app.registry); err != nil {
		fmt.Printf("Error saving project: %v\n", err)
		app.setStatus(fmt.Sprintf("Save failed: %v", err))
		return
	}
	app.File.dirty = false
	app.setStatus(fmt.Sprintf("Saved %s", path))
}

// projectToGround maps a pointer ray onto the ground plane.
func (app *App) projectToGround(ray geometry.Ray) (geometry.Vector3, bool) {
	return ray.GroundIntersection()
}

// pointerRay builds a world-space picking ray from a screen position.
func (app *App) pointerRay(x, y float64) geometry.Ray {
	r := rl.GetMouseRay(rl.Vector2{X: float32(x), Y: float32(y)}, app.Camera.camera)
	return geometry.Ray{
		Origin:    geometry.Vector3{X: float64(r.Position.X), Y: float64(r.Position.Y), Z: float64(r.Position.Z)},
		Direction: geometry.Vector3{X: float64(r.Direction.X), Y: float64(r.Direction.Y), Z: float64(r.Direction.Z)},
	}
}

// updateSun recomputes the light direction from the solar settings.
func (app *App) updateSun() {
	pos := solar.PositionAt(app.settings.Latitude, app.Sun.date, app.Sun.solarHour)
	x, y, z := pos.LightDirection()
	app.Sun.lightDir = rl.Vector3{X: float32(x), Y: float32(y), Z: float32(z)}
	if app.Sun.enabled {
		app.host.SetLightDirection(app.Sun.lightDir)
	}
}

func (app *App) setStatus(text string) {
	app.View.statusText = text
	app.View.statusSetAt = time.Now()
}

// commitSnapshot records the current buildings as a node in the design
// exploration graph.
func (app *App) commitSnapshot() {
	label := fmt.Sprintf("%d buildings, %.0f m2", app.registry.Count(), app.registry.Stats().TotalArea)
	node := app.graph.Commit(label, app.registry.Capture())
	app.setStatus(fmt.Sprintf("Snapshot %s: %s", shortID(node.ID), label))
}

// checkoutParent moves one step back in the exploration graph.
func (app *App) checkoutParent() {
	current := app.graph.Current()
	if current == nil || current.ParentID == "" {
		app.setStatus("No parent snapshot")
		return
	}
	snap, err := app.graph.Checkout(current.ParentID)
	if err != nil {
		app.setStatus(fmt.Sprintf("Checkout failed: %v", err))
		return
	}
	app.registry.Restore(snap)
	app.File.dirty = true
	app.setStatus(fmt.Sprintf("Checked out %s", shortID(current.ParentID)))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// adjustSelectedFloors changes the floor count of the selected building,
// or of the pending config when nothing is selected.
func (app *App) adjustSelectedFloors(delta int) {
	rec := app.registry.Selected()
	if rec == nil {
		floors := app.pendingConfig.Floors + delta
		if floors < 1 {
			floors = 1
		}
		app.pendingConfig.Floors = floors
		app.session.SetPreviewVolume(app.pendingConfig.TotalHeight(), app.pendingConfig.Color)
		app.setStatus(fmt.Sprintf("Next building: %d floors", floors))
		return
	}

	floors := rec.Config.Floors + delta
	if floors < 1 {
		floors = 1
	}
	if _, err := app.registry.Update(rec.ID, building.Patch{Floors: &floors}); err != nil {
		fmt.Printf("Error updating building %d: %v\n", rec.ID, err)
		return
	}
	app.File.dirty = true
	app.setStatus(fmt.Sprintf("Building %d: %d floors (%.1f m)", rec.ID, floors, float64(floors)*rec.Config.FloorHeight))
}

// adjustSolarHour shifts the sun preview time, clamped to a day.
func (app *App) adjustSolarHour(delta float64) {
	app.Sun.solarHour = math.Min(24, math.Max(0, app.Sun.solarHour+delta))
	app.updateSun()
	app.setStatus(fmt.Sprintf("Solar time %.1f h", app.Sun.solarHour))
}
