package app

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fixthecolor/internal/model"
	"fixthecolor/internal/perturb"
	"fixthecolor/pkg/colorutil"
)

type fakeClipboard struct {
	content string
}

func (f *fakeClipboard) SetContent(content string) { f.content = content }

type fixedSource struct {
	m   *model.Model
	err error
}

func (f fixedSource) Load() (*model.Model, error) { return f.m, f.err }

func trainedStore(t *testing.T) *model.Store {
	t.Helper()
	dir := t.TempDir()
	actual := filepath.Join(dir, "actual.txt")
	input := filepath.Join(dir, "input.txt")
	os.WriteFile(actual, []byte("#101010 #202020 #303030"), 0o644)
	os.WriteFile(input, []byte("#000000 #101010 #202020"), 0o644)

	store := model.NewStore(filepath.Join(dir, "color_model.json"))
	if _, st := Train(TrainRequest{ActualPath: actual, InputPath: input}, store); !st.OK {
		t.Fatalf("Train: %s", st.Text)
	}
	return store
}

func TestPredictScenario(t *testing.T) {
	store := trainedStore(t)
	s := SetTarget(NewSession(), "#202020")
	s = Predict(s, NewModelCache(store))

	if !s.Status.OK {
		t.Fatalf("status = %+v", s.Status)
	}
	if s.ResultHex() != "#101010" {
		t.Errorf("result = %s, want #101010", s.ResultHex())
	}
	if s.Prediction == nil || s.Prediction.Target.Hex() != "#202020" {
		t.Errorf("prediction = %+v", s.Prediction)
	}
}

func TestPredictMalformedTarget(t *testing.T) {
	store := trainedStore(t)
	s := SetTarget(NewSession(), "12345")
	s = Predict(s, NewModelCache(store))

	if s.Status.OK {
		t.Fatal("expected failure status")
	}
	if !errors.Is(s.Status.Err, colorutil.ErrInvalidColorFormat) {
		t.Errorf("err = %v, want ErrInvalidColorFormat", s.Status.Err)
	}
	if s.Result != nil {
		t.Error("result set after failure")
	}
}

func TestPredictEmptyTarget(t *testing.T) {
	s := Predict(NewSession(), fixedSource{m: &model.Model{}})
	if !errors.Is(s.Status.Err, colorutil.ErrInvalidColorFormat) {
		t.Errorf("err = %v, want ErrInvalidColorFormat", s.Status.Err)
	}
}

func TestPredictModelMissing(t *testing.T) {
	store := model.NewStore(filepath.Join(t.TempDir(), "none.json"))
	s := Predict(SetTarget(NewSession(), "#202020"), NewModelCache(store))
	if !errors.Is(s.Status.Err, model.ErrModelMissing) {
		t.Fatalf("err = %v, want ErrModelMissing", s.Status.Err)
	}
	if s.Status.Text != "Model missing: train a model first" {
		t.Errorf("text = %q", s.Status.Text)
	}
}

func TestPredictSingular(t *testing.T) {
	s := Predict(SetTarget(NewSession(), "#202020"), fixedSource{m: &model.Model{}})
	if !errors.Is(s.Status.Err, model.ErrSingularMatrix) {
		t.Fatalf("err = %v, want ErrSingularMatrix", s.Status.Err)
	}
	if !strings.HasPrefix(s.Status.Text, "Computation failed") {
		t.Errorf("text = %q", s.Status.Text)
	}
}

func TestPredictKeepsPreviousResultOnError(t *testing.T) {
	prev := colorutil.RGB{R: 1, G: 2, B: 3}
	s := NewSession()
	s.Result = &prev
	s = Predict(SetTarget(s, "bogus"), fixedSource{m: &model.Model{}})
	if s.Result != &prev {
		t.Error("result replaced after failed prediction")
	}
}

func TestPredictClampedStatus(t *testing.T) {
	m := &model.Model{
		Coef:      [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Intercept: [3]float64{50, 0, 0},
	}
	s := Predict(SetTarget(NewSession(), "#000000"), fixedSource{m: m})
	if !s.Status.OK || !strings.Contains(s.Status.Text, "clamped") {
		t.Errorf("status = %+v", s.Status)
	}
	if s.ResultHex() != "#000000" {
		t.Errorf("result = %s", s.ResultHex())
	}
}

func TestPerturbWithoutResult(t *testing.T) {
	s := Perturb(NewSession(), perturb.New(8, rand.New(rand.NewSource(1))))
	if !errors.Is(s.Status.Err, perturb.ErrNoBaseColor) {
		t.Fatalf("err = %v, want ErrNoBaseColor", s.Status.Err)
	}
}

func TestPerturbReplacesResult(t *testing.T) {
	base := colorutil.RGB{R: 100, G: 100, B: 100}
	s := NewSession()
	s.Result = &base
	g := perturb.New(8, rand.New(rand.NewSource(5)))
	for i := 0; i < 20; i++ {
		prev := *s.Result
		s = Perturb(s, g)
		if !s.Status.OK {
			t.Fatalf("status = %+v", s.Status)
		}
		for _, d := range []int{
			int(s.Result.R) - int(prev.R),
			int(s.Result.G) - int(prev.G),
			int(s.Result.B) - int(prev.B),
		} {
			if d < -8 || d > 8 {
				t.Fatalf("step %d moved %d", i, d)
			}
		}
	}
	if base != (colorutil.RGB{R: 100, G: 100, B: 100}) {
		t.Error("perturb mutated the previous result")
	}
}

func TestCopyResult(t *testing.T) {
	clip := &fakeClipboard{}
	s := CopyResult(NewSession(), clip)
	if !errors.Is(s.Status.Err, ErrNothingToCopy) || clip.content != "" {
		t.Fatalf("copy without result: %+v, clip %q", s.Status, clip.content)
	}

	res := colorutil.RGB{R: 0xAB, G: 0xCD, B: 0xEF}
	s.Result = &res
	s = CopyResult(s, clip)
	if !s.Status.OK || clip.content != "#ABCDEF" {
		t.Errorf("status %+v, clip %q", s.Status, clip.content)
	}
}

func writePNG(t *testing.T, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadImageAndPick(t *testing.T) {
	s := PickColor(NewSession(), 1, 1, 20, 10)
	if s.Target != "" || s.Status != Ready {
		t.Fatalf("pick without image changed state: %+v", s)
	}

	s = LoadImage(s, writePNG(t, color.RGBA{R: 0x12, G: 0x34, B: 0x56, A: 255}), 400, 300)
	if !s.Status.OK || s.Picture == nil {
		t.Fatalf("LoadImage: %+v", s.Status)
	}
	s = PickColor(s, 5, 5, 20, 10)
	if s.Target != "#123456" {
		t.Errorf("target = %q, want #123456", s.Target)
	}

	before := s
	s = PickColor(s, 50, 5, 20, 10)
	if s.Target != before.Target {
		t.Error("pick outside image changed target")
	}
}

func TestLoadImageError(t *testing.T) {
	s := LoadImage(NewSession(), filepath.Join(t.TempDir(), "none.png"), 0, 0)
	if s.Status.OK || s.Picture != nil {
		t.Errorf("status = %+v", s.Status)
	}
}

func TestTrainErrors(t *testing.T) {
	dir := t.TempDir()
	store := model.NewStore(filepath.Join(dir, "m.json"))

	if _, st := Train(TrainRequest{ActualPath: "", InputPath: "x"}, store); !errors.Is(st.Err, ErrNoTrainingFiles) {
		t.Errorf("empty path: %+v", st)
	}

	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	os.WriteFile(a, []byte("#101010 #202020 #303030"), 0o644)
	os.WriteFile(b, []byte("#000000 #101010"), 0o644)
	if _, st := Train(TrainRequest{ActualPath: a, InputPath: b}, store); !errors.Is(st.Err, model.ErrMismatchedLength) {
		t.Errorf("mismatch: %+v", st)
	}

	os.WriteFile(b, []byte("#000000 #10101 #202020"), 0o644)
	_, st := Train(TrainRequest{ActualPath: a, InputPath: b}, store)
	if !errors.Is(st.Err, colorutil.ErrInvalidColorFormat) || !strings.HasPrefix(st.Text, "Color format error") {
		t.Errorf("bad token: %+v", st)
	}
}

func TestDescribeFallsBackToError(t *testing.T) {
	if got := Describe(errors.New("disk on fire")); got != "disk on fire" {
		t.Errorf("Describe = %q", got)
	}
}
