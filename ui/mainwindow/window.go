// Package mainwindow provides the predictor window.
package mainwindow

import (
	"fmt"
	"image/color"
	"log"

	"fixthecolor/internal/app"
	"fixthecolor/internal/config"
	pickimage "fixthecolor/internal/image"
	"fixthecolor/internal/model"
	"fixthecolor/internal/perturb"
	"fixthecolor/internal/version"
	"fixthecolor/pkg/colorutil"
	"fixthecolor/ui/canvas"
	"fixthecolor/ui/dialogs"
	"fixthecolor/ui/prefs"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const swatchSize = 28

// MainWindow is the predictor window.
type MainWindow struct {
	fyne.Window
	app   fyne.App
	state *app.State
	cfg   *config.Config
	prefs *prefs.Prefs

	models    *app.ModelCache
	perturber *perturb.Generator

	targetEntry  *widget.Entry
	targetSwatch *fynecanvas.Rectangle
	resultEntry  *widget.Entry
	resultSwatch *fynecanvas.Rectangle
	picker       *canvas.PickerCanvas
	statusBar    *widget.Label

	predictBtn *widget.Button
	perturbBtn *widget.Button
	copyBtn    *widget.Button
}

// New creates the predictor window.
func New(fyneApp fyne.App, state *app.State, cfg *config.Config, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("FixTheColor")

	mw := &MainWindow{
		Window:    win,
		app:       fyneApp,
		state:     state,
		cfg:       cfg,
		prefs:     p,
		models:    app.NewModelCache(model.NewStore(cfg.ModelPath)),
		perturber: perturb.New(cfg.Delta, nil),
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.SetFixedSize(true)

	return mw
}

// setupUI creates the window layout.
func (mw *MainWindow) setupUI() {
	mw.targetEntry = widget.NewEntry()
	mw.targetEntry.SetPlaceHolder("#RRGGBB")
	mw.targetEntry.TextStyle = fyne.TextStyle{Monospace: true}
	mw.targetEntry.OnChanged = func(text string) {
		mw.state.Apply(func(s app.Session) app.Session { return app.SetTarget(s, text) })
	}
	mw.targetEntry.OnSubmitted = func(string) { mw.onPredict() }
	mw.targetSwatch = newSwatch()

	mw.predictBtn = widget.NewButton("Predict", mw.onPredict)
	mw.perturbBtn = widget.NewButton("Random Nearby Color", mw.onPerturb)
	mw.copyBtn = widget.NewButton("Copy Result", mw.onCopy)
	buttons := container.NewHBox(
		widget.NewButton("Import Image", mw.onImportImage),
		mw.predictBtn,
		mw.perturbBtn,
		mw.copyBtn,
	)

	mw.picker = canvas.NewPickerCanvas()
	mw.picker.OnPick(func(x, y, w, h float64) {
		mw.state.Apply(func(s app.Session) app.Session { return app.PickColor(s, x, y, w, h) })
	})

	mw.resultEntry = widget.NewEntry()
	mw.resultEntry.TextStyle = fyne.TextStyle{Monospace: true}
	mw.resultEntry.Disable()
	mw.resultSwatch = newSwatch()

	mw.statusBar = widget.NewLabel(app.Ready.Text)
	mw.statusBar.TextStyle = fyne.TextStyle{Monospace: true}
	mw.statusBar.Importance = widget.SuccessImportance

	form := widget.NewForm(
		widget.NewFormItem("Target color", container.NewBorder(nil, nil, nil, mw.targetSwatch, mw.targetEntry)),
	)
	result := widget.NewForm(
		widget.NewFormItem("Suggested input", container.NewBorder(nil, nil, nil, mw.resultSwatch, mw.resultEntry)),
		widget.NewFormItem("Status", mw.statusBar),
	)

	content := container.NewVBox(
		form,
		buttons,
		container.NewCenter(mw.picker),
		result,
		container.NewCenter(widget.NewButton("Guide", mw.onGuide)),
	)
	mw.SetContent(container.NewPadded(content))
}

func newSwatch() *fynecanvas.Rectangle {
	r := fynecanvas.NewRectangle(color.Transparent)
	r.StrokeColor = colorutil.RGB{R: 0x80, G: 0x80, B: 0x80}.NRGBA()
	r.StrokeWidth = 1
	r.SetMinSize(fyne.NewSize(swatchSize, swatchSize))
	return r
}

func setSwatch(r *fynecanvas.Rectangle, c *colorutil.RGB) {
	if c == nil {
		r.FillColor = color.Transparent
	} else {
		r.FillColor = c.NRGBA()
	}
	r.Refresh()
}

// setupMenus creates the main menu.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import Image...", mw.onImportImage),
		fyne.NewMenuItem("Train Model...", mw.onTrain),
	)
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Predict", mw.onPredict),
		fyne.NewMenuItem("Random Nearby Color", mw.onPerturb),
		fyne.NewMenuItem("Copy Result", mw.onCopy),
	)
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Guide", mw.onGuide),
		fyne.NewMenuItem("About", mw.onAbout),
	)
	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

// setupEventHandlers keeps widgets in sync with the session.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventTargetChanged, func(data interface{}) {
		text, _ := data.(string)
		if mw.targetEntry.Text != text {
			mw.targetEntry.SetText(text)
		}
		if c, err := colorutil.ParseHex(text); err == nil {
			setSwatch(mw.targetSwatch, &c)
		} else {
			setSwatch(mw.targetSwatch, nil)
		}
	})

	mw.state.On(app.EventResultChanged, func(data interface{}) {
		c, _ := data.(*colorutil.RGB)
		if c == nil {
			mw.resultEntry.SetText("")
		} else {
			mw.resultEntry.SetText(c.Hex())
		}
		setSwatch(mw.resultSwatch, c)
	})

	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		pic, _ := data.(*pickimage.Picture)
		mw.picker.SetPicture(pic)
	})

	mw.state.On(app.EventStatusChanged, func(data interface{}) {
		if st, ok := data.(app.Status); ok {
			mw.updateStatus(st)
		}
	})

	mw.state.On(app.EventModelTrained, func(data interface{}) {
		mw.models.Invalidate()
	})
}

func (mw *MainWindow) updateStatus(st app.Status) {
	if st.OK {
		mw.statusBar.Importance = widget.SuccessImportance
	} else {
		mw.statusBar.Importance = widget.DangerImportance
	}
	mw.statusBar.SetText(st.Text)
}

func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

func (mw *MainWindow) savePrefs() {
	if err := mw.prefs.Save(); err != nil {
		log.Printf("Failed to save preferences: %v", err)
	}
}

// LoadImage loads an image for picking.
func (mw *MainWindow) LoadImage(path string) {
	mw.state.Apply(func(s app.Session) app.Session {
		return app.LoadImage(s, path, mw.cfg.Display.MaxWidth, mw.cfg.Display.MaxHeight)
	})
	if mw.state.Session().Status.OK {
		mw.prefs.RememberFile(prefs.KeyLastImage, path)
		mw.savePrefs()
	}
}

func (mw *MainWindow) onImportImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		if reader == nil {
			return
		}
		reader.Close()
		mw.LoadImage(reader.URI().Path())
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(pickimage.Extensions))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onPredict() {
	text := mw.targetEntry.Text
	mw.state.Apply(func(s app.Session) app.Session {
		return app.Predict(app.SetTarget(s, text), mw.models)
	})
}

func (mw *MainWindow) onPerturb() {
	mw.state.Apply(func(s app.Session) app.Session { return app.Perturb(s, mw.perturber) })
}

func (mw *MainWindow) onCopy() {
	s := mw.state.Apply(func(s app.Session) app.Session { return app.CopyResult(s, mw.Clipboard()) })
	if s.Status.OK {
		dialog.ShowInformation("Copied", s.ResultHex()+" copied to clipboard", mw.Window)
	}
}

func (mw *MainWindow) onTrain() {
	tw := dialogs.NewTrainWindow(mw.app, mw.models.Store(), mw.prefs)
	tw.OnTrained(func(m *model.Model) {
		mw.state.Emit(app.EventModelTrained, m)
	})
	tw.Show()
}

func (mw *MainWindow) onGuide() {
	dialogs.ShowGuide(mw.app, mw.cfg.GuidePath)
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About FixTheColor",
		fmt.Sprintf("FixTheColor v%s\n\n"+
			"Predicts the input color that reproduces a target color\n"+
			"through a trained linear color model.\n\n"+
			"Model: %s\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, mw.models.Path(), version.BuildTime, version.GitCommit),
		mw.Window)
}
