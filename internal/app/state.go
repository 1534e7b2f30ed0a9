package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CameraState holds all camera-related state
type CameraState struct {
	camera        rl.Camera3D
	distance      float32
	angleX        float32
	angleY        float32
	target        rl.Vector3
	defaultDist   float32 // Default camera distance (for reset)
	defaultAngleX float32 // Default camera angle X (for reset)
	defaultAngleY float32 // Default camera angle Y (for reset)
}

// ViewSettings holds display settings
type ViewSettings struct {
	showGrid    bool
	showGround  bool
	showStats   bool
	showHelp    bool
	gridExtent  float32
	gridSpacing float32
	statusText  string    // One-line feedback in the HUD
	statusSetAt time.Time // Status fades after a few seconds
}

// InteractionState holds mouse and pointer state
type InteractionState struct {
	mouseDownPos rl.Vector2
	mouseMoved   bool
	isPanning    bool
	lastMousePos rl.Vector2
	buttonDown   bool
}

// SunState holds the sun preview settings
type SunState struct {
	enabled   bool
	solarHour float64 // 0..24, 12 = solar noon
	date      time.Time
	lightDir  rl.Vector3
}

// FileState holds project file and reload state
type FileState struct {
	path        string // Project file path ("" = unsaved scratch project)
	needsReload bool   // Flag set by the watcher goroutine
	dirty       bool
}

// UIState holds UI-related state
type UIState struct {
	font rl.Font
}
