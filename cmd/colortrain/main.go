// Command colortrain fits a color model from two color list files and
// writes it to the model artifact read by the predictor.
//
// Usage: colortrain -actual actual.txt -input input.txt [-model color_model.json]
package main

import (
	"flag"
	"fmt"
	"os"

	"fixthecolor/internal/config"
	"fixthecolor/internal/model"
	"fixthecolor/internal/training"
	"fixthecolor/internal/version"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to YAML config")
	actualPath := flag.String("actual", "", "File of colors the process actually produced")
	inputPath := flag.String("input", "", "File of colors fed to the process")
	modelPath := flag.String("model", "", "Model output path (default from config)")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("colortrain"))
		return
	}
	if *actualPath == "" || *inputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: %s -actual <file> -input <file> [-model <path>]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nFits actual = A*input + b from paired hex colors (#RRGGBB).\n")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cfg.SetupLogging().Close()
	if *modelPath != "" {
		cfg.ModelPath = *modelPath
	}

	store := model.NewStore(cfg.ModelPath)
	m, err := training.Train(*actualPath, *inputPath, store)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Trained on %d color pairs\n", m.Samples)
	for i, name := range []string{"R", "G", "B"} {
		fmt.Printf("  %s = %8.4f*R %+8.4f*G %+8.4f*B %+9.3f\n",
			name, m.Coef[i][0], m.Coef[i][1], m.Coef[i][2], m.Intercept[i])
	}
	fmt.Printf("Fit: %s\n", m.Report)
	fmt.Printf("\nWrote model to %s\n", store.Path)
}
