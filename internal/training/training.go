// Package training reads the paired color lists used to fit a color model.
package training

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"fixthecolor/internal/model"
	"fixthecolor/pkg/colorutil"
)

// ParseColors reads whitespace-separated hex color tokens.
func ParseColors(r io.Reader) ([]colorutil.RGB, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var colors []colorutil.RGB
	for n := 1; sc.Scan(); n++ {
		c, err := colorutil.ParseHex(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", n, err)
		}
		colors = append(colors, c)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return colors, nil
}

// ReadColorFile parses a color list file.
func ReadColorFile(path string) ([]colorutil.RGB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open color file: %w", err)
	}
	defer f.Close()

	colors, err := ParseColors(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return colors, nil
}

// LoadTrainingSet reads the actual and input lists. Pairing rules are
// checked by model.Fit.
func LoadTrainingSet(actualPath, inputPath string) (model.TrainingSet, error) {
	actuals, err := ReadColorFile(actualPath)
	if err != nil {
		return model.TrainingSet{}, err
	}
	inputs, err := ReadColorFile(inputPath)
	if err != nil {
		return model.TrainingSet{}, err
	}
	log.Printf("Loaded %d actual and %d input colors", len(actuals), len(inputs))
	return model.TrainingSet{Inputs: inputs, Actuals: actuals}, nil
}

// Train loads both files, fits a model and saves it to store.
func Train(actualPath, inputPath string, store *model.Store) (*model.Model, error) {
	ts, err := LoadTrainingSet(actualPath, inputPath)
	if err != nil {
		return nil, err
	}
	m, err := model.Fit(ts)
	if err != nil {
		return nil, err
	}
	if err := store.Save(m); err != nil {
		return nil, err
	}
	return m, nil
}
