// Package canvas provides the image widget used to pick target colors.
package canvas

import (
	"image/color"

	pickimage "fixthecolor/internal/image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

var borderColor = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}

// PickerCanvas shows a picture and reports clicks on it.
type PickerCanvas struct {
	widget.BaseWidget

	picture *pickimage.Picture
	raster  *fynecanvas.Image
	border  *fynecanvas.Rectangle
	hint    *fynecanvas.Text

	// Callback with the click position and the size the picture is shown at
	onPick func(x, y, viewW, viewH float64)
}

// NewPickerCanvas creates an empty picker sized to the default display box.
func NewPickerCanvas() *PickerCanvas {
	pc := &PickerCanvas{}

	pc.raster = fynecanvas.NewImageFromImage(nil)
	pc.raster.FillMode = fynecanvas.ImageFillStretch
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels

	pc.border = fynecanvas.NewRectangle(color.Transparent)
	pc.border.StrokeColor = borderColor
	pc.border.StrokeWidth = 1

	pc.hint = fynecanvas.NewText("Import an image to pick colors", borderColor)
	pc.hint.Alignment = fyne.TextAlignCenter

	pc.setSize(fyne.NewSize(pickimage.DefaultMaxWidth, pickimage.DefaultMaxHeight))
	pc.ExtendBaseWidget(pc)
	return pc
}

// OnPick sets the click callback.
func (pc *PickerCanvas) OnPick(fn func(x, y, viewW, viewH float64)) {
	pc.onPick = fn
}

// SetPicture displays p at its display size. nil clears the canvas.
func (pc *PickerCanvas) SetPicture(p *pickimage.Picture) {
	pc.picture = p
	if p == nil || p.Display == nil {
		pc.raster.Image = nil
		pc.hint.Show()
		pc.setSize(fyne.NewSize(pickimage.DefaultMaxWidth, pickimage.DefaultMaxHeight))
	} else {
		b := p.Display.Bounds()
		pc.raster.Image = p.Display
		pc.hint.Hide()
		pc.setSize(fyne.NewSize(float32(b.Dx()), float32(b.Dy())))
	}
	pc.raster.Refresh()
	pc.Refresh()
}

// Picture returns the displayed picture.
func (pc *PickerCanvas) Picture() *pickimage.Picture {
	return pc.picture
}

func (pc *PickerCanvas) setSize(size fyne.Size) {
	pc.raster.SetMinSize(size)
	pc.border.SetMinSize(size)
}

// Tapped reports a left click inside the picture.
func (pc *PickerCanvas) Tapped(ev *fyne.PointEvent) {
	if pc.onPick == nil || pc.picture == nil {
		return
	}
	size := pc.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}
	pc.onPick(float64(ev.Position.X), float64(ev.Position.Y), float64(size.Width), float64(size.Height))
}

func (pc *PickerCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(pc.raster, pc.border, container.NewCenter(pc.hint)))
}
