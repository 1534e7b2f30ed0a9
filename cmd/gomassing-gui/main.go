package main

import (
	"fmt"
	"image/color"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/massinglab/gomassing/internal/project"
	"github.com/massinglab/gomassing/pkg/plan"
)

type App struct {
	window   fyne.Window
	file     project.File
	path     string
	renderer *plan.Renderer
	info     *InfoPanel
}

type InfoPanel struct {
	siteLabel      *widget.Label
	buildingLabel  *widget.Label
	selectionLabel *widget.Label
}

func main() {
	a := app.New()
	w := a.NewWindow("GoMassing - Project Inspector")

	appInstance := &App{
		window: w,
	}

	if len(os.Args) > 1 {
		appInstance.loadFile(os.Args[1])
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to GoMassing")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open Project' to inspect a massing project")

	openButton := widget.NewButton("Open Project", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.loadFile(reader.URI().Path())
	}, a.window)
}

func (a *App) loadFile(filename string) {
	file, err := project.Load(filename)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to load project: %w", err), a.window)
		return
	}

	a.file = file
	a.path = filename
	a.setupMainUI()
}

// footprints converts the stored buildings into plan outlines. The
// plan is drawn with north up, so the stored z (south) axis flips.
func (a *App) footprints() []plan.Footprint {
	fps := make([]plan.Footprint, 0, len(a.file.Buildings))
	for _, b := range a.file.Buildings {
		points := make([][2]float64, 0, len(b.Points))
		for _, p := range b.Points {
			points = append(points, [2]float64{p.X, -p.Z})
		}
		r := uint8(b.Color >> 16)
		g := uint8(b.Color >> 8)
		bl := uint8(b.Color)
		fps = append(fps, plan.Footprint{
			ID:     b.ID,
			Name:   b.Name,
			Points: points,
			Floors: b.Floors,
			Color:  color.RGBA{r, g, bl, 255},
		})
	}
	return fps
}

func (a *App) setupMainUI() {
	a.info = &InfoPanel{
		siteLabel:      widget.NewLabel(""),
		buildingLabel:  widget.NewLabel(""),
		selectionLabel: widget.NewLabel("Selection: none"),
	}
	a.info.selectionLabel.TextStyle = fyne.TextStyle{Bold: true}

	a.renderer = plan.NewRenderer(a.footprints())
	a.renderer.SetOnSelect(func(id int64) {
		a.updateSelection(id)
	})

	openButton := widget.NewButton("Open Project", func() {
		a.showFileDialog()
	})

	reloadButton := widget.NewButton("Reload", func() {
		file, err := project.Load(a.path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.file = file
		a.renderer.SetFootprints(a.footprints())
		a.updateSiteInfo()
		a.updateSelection(0)
	})

	a.updateSiteInfo()

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Tap a footprint to inspect it\n" +
			"• Drag to pan the plan\n" +
			"• Scroll to zoom in/out",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Site:"),
		widget.NewSeparator(),
		a.info.siteLabel,
		widget.NewSeparator(),
		a.info.selectionLabel,
		a.info.buildingLabel,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
		reloadButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		nil,        // left
		infoScroll, // right
		a.renderer, // center
	)

	a.window.SetContent(content)

	a.renderer.Render(800, 600)
}

func (a *App) updateSiteInfo() {
	var totalArea, totalGFA float64
	totalFloors := 0
	for _, b := range a.file.Buildings {
		totalArea += b.Area
		totalFloors += b.Floors
		totalGFA += b.Area * float64(b.Floors)
	}

	a.info.siteLabel.SetText(fmt.Sprintf(
		"File: %s\nBuildings: %d\nFootprint Area: %.1f m2\nGross Floor Area: %.1f m2\nTotal Floors: %d",
		a.path,
		len(a.file.Buildings),
		totalArea,
		totalGFA,
		totalFloors,
	))
}

func (a *App) updateSelection(id int64) {
	if id == 0 {
		a.info.selectionLabel.SetText("Selection: none")
		a.info.buildingLabel.SetText("")
		return
	}

	for _, b := range a.file.Buildings {
		if b.ID != id {
			continue
		}
		name := b.Name
		if name == "" {
			name = fmt.Sprintf("Building %d", b.ID)
		}
		a.info.selectionLabel.SetText(fmt.Sprintf("Selection: %s", name))

		text := fmt.Sprintf(
			"Corners: %d\nArea: %.2f m2\nFloors: %d\nFloor Height: %.2f m\nTotal Height: %.2f m",
			len(b.Points),
			b.Area,
			b.Floors,
			b.FloorHeight,
			b.TotalHeight,
		)
		if b.Description != "" {
			text += fmt.Sprintf("\n\n%s", b.Description)
		}
		a.info.buildingLabel.SetText(text)
		return
	}

	a.info.selectionLabel.SetText("Selection: unknown")
	a.info.buildingLabel.SetText("")
}
