// Package preview shows a finished saliency map in a window.
package preview

import (
	"image"
	"strings"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	AppID           = "com.salmap.preview"
	ImageAreaWidth  = 960
	ImageAreaHeight = 540
)

type ImageDisplay struct {
	container   fyne.CanvasObject
	image       *canvas.Image
	statusLabel *widget.Label
}

func NewImageDisplay(img image.Image, status string) *ImageDisplay {
	display := &ImageDisplay{}

	display.image = canvas.NewImageFromImage(img)
	display.image.FillMode = canvas.ImageFillContain
	display.image.ScaleMode = canvas.ImageScaleSmooth
	display.image.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))

	display.statusLabel = widget.NewLabel(strings.TrimSpace(status))

	display.container = container.NewBorder(nil, display.statusLabel, nil, nil, display.image)
	return display
}

func (id *ImageDisplay) GetContainer() fyne.CanvasObject {
	return id.container
}

// Window is the preview window. It satisfies shutdown.Shutdownable so a
// termination signal closes it.
type Window struct {
	app     fyne.App
	window  fyne.Window
	running atomic.Bool
}

// New creates the preview application and its window.
func New(title string, img image.Image, status string) *Window {
	return newWindow(app.NewWithID(AppID), title, img, status)
}

func newWindow(a fyne.App, title string, img image.Image, status string) *Window {
	w := a.NewWindow(title)
	w.SetContent(NewImageDisplay(img, status).GetContainer())
	w.Resize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight+40))
	w.CenterOnScreen()
	return &Window{app: a, window: w}
}

// Run shows the window and blocks until it is closed or Shutdown is called.
func (w *Window) Run() {
	w.running.Store(true)
	defer w.running.Store(false)

	w.window.ShowAndRun()
}

// Shutdown quits the event loop if it is still running.
func (w *Window) Shutdown() {
	if w.running.Load() {
		fyne.Do(w.app.Quit)
	}
}
