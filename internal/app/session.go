// Package app holds the predictor's session state and the handlers that
// turn user actions into new state.
package app

import (
	"errors"
	"fmt"
	"strings"

	"fixthecolor/internal/image"
	"fixthecolor/internal/model"
	"fixthecolor/internal/perturb"
	"fixthecolor/internal/training"
	"fixthecolor/pkg/colorutil"
)

// Status is the outcome shown in the status indicator.
type Status struct {
	Text string
	OK   bool
	Err  error // nil when OK
}

var (
	ErrNothingToCopy   = errors.New("nothing to copy")
	ErrNoTrainingFiles = errors.New("training files not selected")
)

// Ready is the initial status.
var Ready = Status{Text: "Ready", OK: true}

func okStatus(format string, args ...interface{}) Status {
	return Status{Text: fmt.Sprintf(format, args...), OK: true}
}

func errStatus(err error) Status {
	return Status{Text: Describe(err), Err: err}
}

// Session is the predictor's state between user actions.
type Session struct {
	Picture    *image.Picture
	Target     string
	Result     *colorutil.RGB
	Prediction *model.Prediction // last solved prediction; Result may be a variant of it
	Status     Status
}

// NewSession returns an empty session.
func NewSession() Session {
	return Session{Status: Ready}
}

// ModelSource supplies the current model.
type ModelSource interface {
	Load() (*model.Model, error)
}

// Clipboard receives copied text.
type Clipboard interface {
	SetContent(content string)
}

// Describe converts an error into a short message for the status label.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, colorutil.ErrInvalidColorFormat):
		return "Invalid color: use #RRGGBB"
	case errors.Is(err, model.ErrModelMissing):
		return "Model missing: train a model first"
	case errors.Is(err, model.ErrSingularMatrix):
		return "Computation failed: the model cannot be inverted for this color"
	case errors.Is(err, model.ErrInsufficientData):
		return fmt.Sprintf("At least %d color pairs are required", model.MinSamples)
	case errors.Is(err, model.ErrMismatchedLength):
		return "The two files contain different numbers of colors"
	case errors.Is(err, perturb.ErrNoBaseColor):
		return "No result yet: predict before generating a nearby color"
	case errors.Is(err, ErrNothingToCopy):
		return "Nothing to copy yet"
	case errors.Is(err, ErrNoTrainingFiles):
		return "Select both training files"
	}
	return err.Error()
}

// SetTarget records typed target text.
func SetTarget(s Session, text string) Session {
	s.Target = text
	return s
}

// LoadImage replaces the picture used for picking.
func LoadImage(s Session, path string, maxW, maxH int) Session {
	pic, err := image.Load(path, maxW, maxH)
	if err != nil {
		s.Status = errStatus(err)
		return s
	}
	s.Picture = pic
	s.Status = okStatus("Loaded image %dx%d", pic.Width(), pic.Height())
	return s
}

// PickColor sets the target to the source pixel under a click on the
// picture shown at viewW x viewH. Clicks outside the picture are ignored.
func PickColor(s Session, x, y, viewW, viewH float64) Session {
	if s.Picture == nil {
		return s
	}
	c, ok := s.Picture.ColorAt(x, y, viewW, viewH)
	if !ok {
		return s
	}
	s.Target = c.Hex()
	s.Status = okStatus("Picked %s", s.Target)
	return s
}

// Predict solves for the input color that produces the target.
func Predict(s Session, src ModelSource) Session {
	target, err := colorutil.ParseHex(s.Target)
	if err != nil {
		s.Status = errStatus(err)
		return s
	}
	m, err := src.Load()
	if err != nil {
		s.Status = errStatus(err)
		return s
	}
	p, err := m.Predict(target)
	if err != nil {
		s.Status = errStatus(err)
		return s
	}

	s.Target = target.Hex()
	s.Prediction = &p
	res := p.Input
	s.Result = &res
	if p.Clamped {
		s.Status = okStatus("Prediction succeeded (clamped to displayable range)")
	} else {
		s.Status = okStatus("Prediction succeeded")
	}
	return s
}

// Perturb replaces the result with a random nearby color.
func Perturb(s Session, g *perturb.Generator) Session {
	c, err := g.Next(s.Result)
	if err != nil {
		s.Status = errStatus(err)
		return s
	}
	s.Result = &c
	s.Status = okStatus("Generated nearby color %s", c.Hex())
	return s
}

// CopyResult puts the result on the clipboard.
func CopyResult(s Session, clip Clipboard) Session {
	if s.Result == nil {
		s.Status = errStatus(ErrNothingToCopy)
		return s
	}
	clip.SetContent(s.Result.Hex())
	s.Status = okStatus("Copied %s to clipboard", s.Result.Hex())
	return s
}

// ResultHex returns the result text, or "" when there is none.
func (s Session) ResultHex() string {
	if s.Result == nil {
		return ""
	}
	return s.Result.Hex()
}

// TrainRequest names the training files.
type TrainRequest struct {
	ActualPath string
	InputPath  string
}

// Train fits a model from the request's files and saves it to store.
func Train(req TrainRequest, store *model.Store) (*model.Model, Status) {
	if strings.TrimSpace(req.ActualPath) == "" || strings.TrimSpace(req.InputPath) == "" {
		return nil, errStatus(ErrNoTrainingFiles)
	}
	m, err := training.Train(req.ActualPath, req.InputPath, store)
	if err != nil {
		st := errStatus(err)
		if errors.Is(err, colorutil.ErrInvalidColorFormat) {
			st.Text = "Color format error: " + err.Error()
		}
		return nil, st
	}
	return m, okStatus("Training complete (%d pairs, %s), saved %s", m.Samples, m.Report, store.Path)
}
