// Package model fits and inverts the affine color transform
// actual = A*input + b learned from paired color samples.
package model

import (
	"errors"
	"fmt"
	"math"
	"time"

	"fixthecolor/pkg/colorutil"

	"gonum.org/v1/gonum/mat"
)

// MinSamples is the smallest training set Fit accepts.
const MinSamples = 3

// residualTolerance bounds |A*x + b - target| for a prediction to count
// as solved, relative to the size of target - b.
const residualTolerance = 1e-6

var (
	ErrInsufficientData = errors.New("insufficient training data")
	ErrMismatchedLength = errors.New("training lists differ in length")
	ErrModelMissing     = errors.New("model missing")
	ErrSingularMatrix   = errors.New("singular color transform")
)

// TrainingSet pairs the colors fed to a process with the colors it produced.
type TrainingSet struct {
	Inputs  []colorutil.RGB
	Actuals []colorutil.RGB
}

// Validate checks the pairing invariants.
func (ts TrainingSet) Validate() error {
	if len(ts.Inputs) != len(ts.Actuals) {
		return fmt.Errorf("%w: %d inputs vs %d actuals", ErrMismatchedLength, len(ts.Inputs), len(ts.Actuals))
	}
	if len(ts.Inputs) < MinSamples {
		return fmt.Errorf("%w: need at least %d pairs, got %d", ErrInsufficientData, MinSamples, len(ts.Inputs))
	}
	return nil
}

// Len returns the number of pairs.
func (ts TrainingSet) Len() int {
	return len(ts.Inputs)
}

// Model is a fitted affine map actual = Coef*input + Intercept.
type Model struct {
	Coef      [3][3]float64 `json:"coef"`
	Intercept [3]float64    `json:"intercept"`
	Samples   int           `json:"samples"`
	Report    FitReport     `json:"report"`
	TrainedAt time.Time     `json:"trained_at"`
}

// FitReport summarizes how well the model reproduces its training data.
type FitReport struct {
	MeanError  float64 `json:"mean_error"`  // mean per-channel absolute error
	MaxError   float64 `json:"max_error"`   // worst per-channel absolute error
	MeanDeltaE float64 `json:"mean_delta_e"`
	MaxDeltaE  float64 `json:"max_delta_e"`
}

func (r FitReport) String() string {
	return fmt.Sprintf("mean error %.2f (max %.2f), mean ΔE %.2f (max %.2f)",
		r.MeanError, r.MaxError, r.MeanDeltaE, r.MaxDeltaE)
}

// Prediction is the input color suggested for a target.
type Prediction struct {
	Target    colorutil.RGB
	Input     colorutil.RGB
	Unclamped [3]float64
	Clamped   bool // true if some channel fell outside [0,255]
}

// Fit computes the least-squares affine transform for ts.
//
// The data are centered, the coefficients are the minimum-norm solution of
// the centered problem and the intercept maps the input mean onto the
// actual mean. Degenerate sets such as an all-gray ramp therefore fit,
// but may give a singular Coef.
func Fit(ts TrainingSet) (*Model, error) {
	if err := ts.Validate(); err != nil {
		return nil, err
	}

	n := ts.Len()
	var inMean, outMean [3]float64
	for i := 0; i < n; i++ {
		in, out := ts.Inputs[i].Vec(), ts.Actuals[i].Vec()
		for c := 0; c < 3; c++ {
			inMean[c] += in[c]
			outMean[c] += out[c]
		}
	}
	for c := 0; c < 3; c++ {
		inMean[c] /= float64(n)
		outMean[c] /= float64(n)
	}

	x := mat.NewDense(n, 3, nil)
	y := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		in, out := ts.Inputs[i].Vec(), ts.Actuals[i].Vec()
		for c := 0; c < 3; c++ {
			x.Set(i, c, in[c]-inMean[c])
			y.Set(i, c, out[c]-outMean[c])
		}
	}

	// Solves x*w = y, so each actual row is input row times w.
	w, _, err := leastSquares(x, y)
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}

	m := &Model{Samples: n, TrainedAt: time.Now()}
	for i := 0; i < 3; i++ {
		m.Intercept[i] = outMean[i]
		for j := 0; j < 3; j++ {
			m.Coef[i][j] = w.At(j, i)
			m.Intercept[i] -= m.Coef[i][j] * inMean[j]
		}
	}
	m.Report = m.evaluate(ts)

	return m, nil
}

func (m *Model) evaluate(ts TrainingSet) FitReport {
	var r FitReport
	n := ts.Len()
	if n == 0 {
		return r
	}
	for i := 0; i < n; i++ {
		pred := m.ApplyVec(ts.Inputs[i].Vec())
		want := ts.Actuals[i].Vec()
		for c := 0; c < 3; c++ {
			e := math.Abs(pred[c] - want[c])
			r.MeanError += e
			r.MaxError = math.Max(r.MaxError, e)
		}
		got, _ := colorutil.FromVec(pred)
		d := got.DeltaE(ts.Actuals[i])
		r.MeanDeltaE += d
		r.MaxDeltaE = math.Max(r.MaxDeltaE, d)
	}
	r.MeanError /= float64(3 * n)
	r.MeanDeltaE /= float64(n)
	return r
}

// ApplyVec runs the forward transform on an unclamped color vector.
func (m *Model) ApplyVec(in [3]float64) [3]float64 {
	var out [3]float64
	for i := 0; i < 3; i++ {
		out[i] = m.Intercept[i]
		for j := 0; j < 3; j++ {
			out[i] += m.Coef[i][j] * in[j]
		}
	}
	return out
}

// Apply predicts the actual color produced by input.
func (m *Model) Apply(input colorutil.RGB) colorutil.RGB {
	out, _ := colorutil.FromVec(m.ApplyVec(input.Vec()))
	return out
}

// Invert solves Coef*x + Intercept = target and returns the unclamped x.
// A rank-deficient Coef still solves targets inside its range, giving the
// minimum-norm x; any other target is ErrSingularMatrix.
func (m *Model) Invert(target colorutil.RGB) ([3]float64, error) {
	var x [3]float64

	a := mat.NewDense(3, 3, nil)
	rhs := mat.NewDense(3, 1, nil)
	t := target.Vec()
	scale := 1.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			a.Set(i, j, m.Coef[i][j])
		}
		rhs.Set(i, 0, t[i]-m.Intercept[i])
		scale = math.Max(scale, math.Abs(t[i]-m.Intercept[i]))
	}

	sol, rank, err := leastSquares(a, rhs)
	if err != nil {
		return x, fmt.Errorf("%w: %v", ErrSingularMatrix, err)
	}
	if rank == 0 {
		return x, fmt.Errorf("%w: coefficient matrix is zero", ErrSingularMatrix)
	}
	for i := 0; i < 3; i++ {
		x[i] = sol.At(i, 0)
	}

	fwd := m.ApplyVec(x)
	for i := 0; i < 3; i++ {
		if d := math.Abs(fwd[i] - t[i]); d > residualTolerance*scale || math.IsNaN(d) {
			return x, fmt.Errorf("%w: rank %d, %s unreachable", ErrSingularMatrix, rank, target)
		}
	}
	return x, nil
}

// Predict returns the input color expected to produce target, rounded and
// clamped to [0,255].
func (m *Model) Predict(target colorutil.RGB) (Prediction, error) {
	x, err := m.Invert(target)
	if err != nil {
		return Prediction{}, err
	}
	in, clamped := colorutil.FromVec(x)
	return Prediction{Target: target, Input: in, Unclamped: x, Clamped: clamped}, nil
}
