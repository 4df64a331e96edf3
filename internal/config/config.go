// Package config loads the optional YAML configuration shared by the
// predictor and trainer.
package config

import (
	"fmt"
	"io"
	"log"
	"os"

	"fixthecolor/internal/image"
	"fixthecolor/internal/model"
	"fixthecolor/internal/perturb"

	"gopkg.in/natefinch/lumberjack.v2"
	"gopkg.in/yaml.v2"
)

// DefaultPath is read when no -config flag is given.
const DefaultPath = "fixthecolor.yaml"

// Config holds tool settings.
type Config struct {
	ModelPath string `yaml:"model_path"`
	GuidePath string `yaml:"guide_path"`
	Delta     int    `yaml:"delta"`
	Display   struct {
		MaxWidth  int `yaml:"max_width"`
		MaxHeight int `yaml:"max_height"`
	} `yaml:"display"`
	Log struct {
		File       string `yaml:"file"`
		MaxSizeMB  int    `yaml:"max_size_mb"`
		MaxBackups int    `yaml:"max_backups"`
	} `yaml:"log"`
}

// Default returns the built-in settings.
func Default() *Config {
	c := &Config{
		ModelPath: model.DefaultPath,
		Delta:     perturb.DefaultDelta,
	}
	c.Display.MaxWidth = image.DefaultMaxWidth
	c.Display.MaxHeight = image.DefaultMaxHeight
	c.Log.MaxSizeMB = 5
	c.Log.MaxBackups = 3
	return c
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	c := Default()
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(c); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	c.fill()
	return c, nil
}

// fill restores defaults for zeroed fields.
func (c *Config) fill() {
	d := Default()
	if c.ModelPath == "" {
		c.ModelPath = d.ModelPath
	}
	if c.Delta <= 0 {
		c.Delta = d.Delta
	}
	if c.Display.MaxWidth <= 0 {
		c.Display.MaxWidth = d.Display.MaxWidth
	}
	if c.Display.MaxHeight <= 0 {
		c.Display.MaxHeight = d.Display.MaxHeight
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = d.Log.MaxSizeMB
	}
	if c.Log.MaxBackups < 0 {
		c.Log.MaxBackups = d.Log.MaxBackups
	}
}

// SetupLogging configures the standard logger. When a log file is set,
// output goes to stderr and a size-rotated file.
func (c *Config) SetupLogging() io.Closer {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if c.Log.File == "" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil)
	}
	lj := &lumberjack.Logger{
		Filename:   c.Log.File,
		MaxSize:    c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, lj))
	return lj
}
