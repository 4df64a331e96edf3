// Command colorpredict prints the input color that should reproduce a
// target color under the trained model, optionally followed by random
// nearby variants.
//
// Usage: colorpredict [-model color_model.json] [-perturb N] [-seed S] '#RRGGBB'
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"fixthecolor/internal/config"
	"fixthecolor/internal/model"
	"fixthecolor/internal/perturb"
	"fixthecolor/internal/version"
	"fixthecolor/pkg/colorutil"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "Path to YAML config")
	modelPath := flag.String("model", "", "Model path (default from config)")
	variants := flag.Int("perturb", 0, "Number of random nearby variants to print")
	delta := flag.Int("delta", 0, "Per-channel variant offset (default from config)")
	seed := flag.Int64("seed", 0, "Random seed for variants (0 = time based)")
	verbose := flag.Bool("v", false, "Print the unclamped solution")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("colorpredict"))
		return
	}
	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <#RRGGBB>\n", os.Args[0])
		flag.PrintDefaults()
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
	if *delta > 0 {
		cfg.Delta = *delta
	}

	target, err := colorutil.ParseHex(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	m, err := model.NewStore(cfg.ModelPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	p, err := m.Predict(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(p.Input.Hex())
	if *verbose {
		fmt.Fprintf(os.Stderr, "unclamped (%.3f, %.3f, %.3f) clamped=%v\n",
			p.Unclamped[0], p.Unclamped[1], p.Unclamped[2], p.Clamped)
	}

	if *variants > 0 {
		var rng *rand.Rand
		if *seed != 0 {
			rng = rand.New(rand.NewSource(*seed))
		}
		g := perturb.New(cfg.Delta, rng)
		cur := p.Input
		for i := 0; i < *variants; i++ {
			cur, _ = g.Next(&cur)
			fmt.Println(cur.Hex())
		}
	}
}
