// Package dialogs provides the trainer and guide windows.
package dialogs

import (
	"log"

	"fixthecolor/internal/app"
	"fixthecolor/internal/model"
	"fixthecolor/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

// TrainWindow fits a color model from two color list files.
type TrainWindow struct {
	fyne.Window
	store *model.Store
	prefs *prefs.Prefs

	actualEntry *widget.Entry
	inputEntry  *widget.Entry
	trainBtn    *widget.Button
	status      *widget.Label

	onTrained func(*model.Model)
}

// NewTrainWindow creates the trainer window. The file fields start with
// the files used last time.
func NewTrainWindow(fyneApp fyne.App, store *model.Store, p *prefs.Prefs) *TrainWindow {
	tw := &TrainWindow{
		Window: fyneApp.NewWindow("Train Color Model"),
		store:  store,
		prefs:  p,
	}
	tw.setupUI()
	return tw
}

// OnTrained sets a callback run after a model is saved.
func (tw *TrainWindow) OnTrained(fn func(*model.Model)) {
	tw.onTrained = fn
}

func (tw *TrainWindow) setupUI() {
	tw.actualEntry = widget.NewEntry()
	tw.actualEntry.SetPlaceHolder("Colors the process actually produced")
	tw.actualEntry.SetText(tw.prefs.String(prefs.KeyLastActualFile))

	tw.inputEntry = widget.NewEntry()
	tw.inputEntry.SetPlaceHolder("Colors fed to the process")
	tw.inputEntry.SetText(tw.prefs.String(prefs.KeyLastInputFile))

	form := widget.NewForm(
		widget.NewFormItem("Actual colors", tw.fileRow(tw.actualEntry, "Select actual colors file")),
		widget.NewFormItem("Input colors", tw.fileRow(tw.inputEntry, "Select input colors file")),
	)

	tw.trainBtn = widget.NewButton("Start Training", tw.onTrain)
	tw.status = widget.NewLabel(app.Ready.Text)
	tw.status.Importance = widget.SuccessImportance
	tw.status.Wrapping = fyne.TextWrapWord

	tw.SetContent(container.NewPadded(container.NewVBox(
		form,
		container.NewCenter(tw.trainBtn),
		tw.status,
	)))
	tw.Resize(fyne.NewSize(560, 220))
}

func (tw *TrainWindow) fileRow(entry *widget.Entry, title string) fyne.CanvasObject {
	browse := widget.NewButton("Browse...", func() {
		fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, tw.Window)
				return
			}
			if reader == nil {
				return
			}
			reader.Close()
			entry.SetText(reader.URI().Path())
		}, tw.Window)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".txt"}))
		if dir := tw.prefs.String(prefs.KeyLastDir); dir != "" {
			if loc, err := storage.ListerForURI(storage.NewFileURI(dir)); err == nil {
				fd.SetLocation(loc)
			}
		}
		fd.Show()
	})
	return container.NewBorder(nil, nil, nil, browse, entry)
}

func (tw *TrainWindow) setStatus(st app.Status) {
	if st.OK {
		tw.status.Importance = widget.SuccessImportance
	} else {
		tw.status.Importance = widget.DangerImportance
		log.Printf("Training failed: %v", st.Err)
	}
	tw.status.SetText(st.Text)
}

func (tw *TrainWindow) onTrain() {
	req := app.TrainRequest{ActualPath: tw.actualEntry.Text, InputPath: tw.inputEntry.Text}
	tw.setStatus(app.Status{Text: "Training...", OK: true})

	m, st := app.Train(req, tw.store)
	tw.setStatus(st)
	if m == nil {
		return
	}

	tw.prefs.RememberFile(prefs.KeyLastActualFile, req.ActualPath)
	tw.prefs.RememberFile(prefs.KeyLastInputFile, req.InputPath)
	if err := tw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
	if tw.onTrained != nil {
		tw.onTrained(m)
	}
}
