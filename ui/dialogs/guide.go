package dialogs

import (
	"fixthecolor/internal/guide"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// ShowGuide opens a read-only window with the usage guide.
func ShowGuide(fyneApp fyne.App, path string) fyne.Window {
	w := fyneApp.NewWindow("Guide")

	text := widget.NewLabel(guide.Load(path))
	text.Wrapping = fyne.TextWrapWord

	w.SetContent(container.NewVScroll(container.NewPadded(text)))
	w.Resize(fyne.NewSize(520, 340))
	w.SetFixedSize(true)
	w.Show()
	return w
}
