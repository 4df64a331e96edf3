package model

import (
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"fixthecolor/pkg/colorutil"
)

func mustHex(t *testing.T, s string) colorutil.RGB {
	t.Helper()
	c, err := colorutil.ParseHex(s)
	if err != nil {
		t.Fatalf("ParseHex(%q): %v", s, err)
	}
	return c
}

func grayRamp(t *testing.T) TrainingSet {
	return TrainingSet{
		Inputs:  []colorutil.RGB{mustHex(t, "#000000"), mustHex(t, "#101010"), mustHex(t, "#202020")},
		Actuals: []colorutil.RGB{mustHex(t, "#101010"), mustHex(t, "#202020"), mustHex(t, "#303030")},
	}
}

// syntheticSet samples a known affine map on random inputs.
func syntheticSet(rng *rand.Rand, a [3][3]float64, b [3]float64, n int) TrainingSet {
	ref := &Model{Coef: a, Intercept: b}
	var ts TrainingSet
	for i := 0; i < n; i++ {
		in := colorutil.RGB{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))}
		ts.Inputs = append(ts.Inputs, in)
		ts.Actuals = append(ts.Actuals, ref.Apply(in))
	}
	return ts
}

func TestFitInsufficientData(t *testing.T) {
	for n := 0; n < MinSamples; n++ {
		ts := TrainingSet{
			Inputs:  make([]colorutil.RGB, n),
			Actuals: make([]colorutil.RGB, n),
		}
		if _, err := Fit(ts); !errors.Is(err, ErrInsufficientData) {
			t.Errorf("Fit with %d samples: err = %v, want ErrInsufficientData", n, err)
		}
	}
}

func TestFitMismatchedLength(t *testing.T) {
	cases := [][2]int{{3, 4}, {5, 3}, {1, 2}, {0, 3}}
	for _, c := range cases {
		ts := TrainingSet{
			Inputs:  make([]colorutil.RGB, c[0]),
			Actuals: make([]colorutil.RGB, c[1]),
		}
		if _, err := Fit(ts); !errors.Is(err, ErrMismatchedLength) {
			t.Errorf("Fit(%d vs %d): err = %v, want ErrMismatchedLength", c[0], c[1], err)
		}
	}
}

func TestFitRecoversKnownTransform(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	a := [3][3]float64{
		{0.90, 0.05, 0.02},
		{0.03, 0.85, 0.04},
		{0.01, 0.06, 0.80},
	}
	b := [3]float64{5, 6, 4}
	ts := syntheticSet(rng, a, b, 200)

	m, err := Fit(ts)
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if d := math.Abs(m.Coef[i][j] - a[i][j]); d > 0.01 {
				t.Errorf("Coef[%d][%d] = %.4f, want %.4f", i, j, m.Coef[i][j], a[i][j])
			}
		}
		if d := math.Abs(m.Intercept[i] - b[i]); d > 1.0 {
			t.Errorf("Intercept[%d] = %.3f, want %.3f", i, m.Intercept[i], b[i])
		}
	}
	if m.Samples != 200 {
		t.Errorf("Samples = %d, want 200", m.Samples)
	}
	if m.Report.MaxError > 1.0 {
		t.Errorf("MaxError = %.3f, want <= 1 (rounding only)", m.Report.MaxError)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := [3][3]float64{
		{1.10, -0.05, 0.02},
		{0.04, 0.92, 0.10},
		{-0.03, 0.07, 0.88},
	}
	m := &Model{Coef: a, Intercept: [3]float64{-5, 3, 14}}

	for i := 0; i < 500; i++ {
		target := colorutil.RGB{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))}
		x, err := m.Invert(target)
		if err != nil {
			t.Fatalf("Invert(%s): %v", target, err)
		}
		fwd := m.ApplyVec(x)
		want := target.Vec()
		for c := 0; c < 3; c++ {
			if d := math.Abs(fwd[c] - want[c]); d > 1e-6 {
				t.Fatalf("Invert(%s): forward channel %d = %v, want %v", target, c, fwd[c], want[c])
			}
		}
	}
}

func TestGrayRampScenario(t *testing.T) {
	m, err := Fit(grayRamp(t))
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	target := mustHex(t, "#202020")
	x, err := m.Invert(target)
	if err != nil {
		t.Fatalf("Invert: %v", err)
	}
	fwd := m.ApplyVec(x)
	for c := 0; c < 3; c++ {
		if d := math.Abs(fwd[c] - 32); d > 1e-6 {
			t.Errorf("forward channel %d = %v, want 32", c, fwd[c])
		}
	}

	p, err := m.Predict(target)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got := p.Input.Hex(); got != "#101010" {
		t.Errorf("Predict(#202020) = %s, want #101010", got)
	}
	if p.Clamped {
		t.Error("Predict(#202020) reported clamping")
	}
}

func TestInvertUnreachableTargetOnSingularModel(t *testing.T) {
	m, err := Fit(grayRamp(t))
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	// Only grays are reachable through a rank-one transform.
	if _, err := m.Invert(mustHex(t, "#FF0000")); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("Invert(#FF0000): err = %v, want ErrSingularMatrix", err)
	}
}

func TestInvertZeroMatrix(t *testing.T) {
	m := &Model{Intercept: [3]float64{1, 2, 3}}
	if _, err := m.Invert(mustHex(t, "#808080")); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("err = %v, want ErrSingularMatrix", err)
	}
}

func TestPredictClamps(t *testing.T) {
	// Identity with a large offset pushes dark targets below zero.
	m := &Model{
		Coef:      [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		Intercept: [3]float64{100, 0, -100},
	}
	p, err := m.Predict(mustHex(t, "#20F080"))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	want := colorutil.RGB{R: 0, G: 0xF0, B: 0xE4}
	if p.Input != want {
		t.Errorf("Input = %s, want %s", p.Input, want)
	}
	if !p.Clamped {
		t.Error("expected Clamped")
	}
	if p.Unclamped[0] >= 0 {
		t.Errorf("Unclamped[0] = %v, want negative", p.Unclamped[0])
	}
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "sub", "model.json"))

	m, err := Fit(grayRamp(t))
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	if err := store.Save(m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Coef != m.Coef || got.Intercept != m.Intercept || got.Samples != m.Samples {
		t.Errorf("loaded model differs: %+v vs %+v", got, m)
	}

	// Retraining overwrites.
	m.Samples = 99
	if err := store.Save(m); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err = store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Samples != 99 {
		t.Errorf("Samples = %d after overwrite, want 99", got.Samples)
	}
}

func TestStoreMissing(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	if _, err := store.Load(); !errors.Is(err, ErrModelMissing) {
		t.Errorf("Load: err = %v, want ErrModelMissing", err)
	}
}

func TestStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := NewStore(path).Load()
	if err == nil || errors.Is(err, ErrModelMissing) {
		t.Errorf("Load corrupt: err = %v, want parse error", err)
	}
}

func TestNewStoreDefault(t *testing.T) {
	if got := NewStore("").Path; got != DefaultPath {
		t.Errorf("Path = %q, want %q", got, DefaultPath)
	}
}
