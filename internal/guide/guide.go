// Package guide loads the usage guide shown in the help window.
package guide

import (
	"log"
	"os"
	"path/filepath"
)

// FileName is the guide looked up next to the executable.
const FileName = "guide.txt"

// Fallback is shown when the guide file cannot be read.
const Fallback = "guide.txt was not found. Place it in the same directory as the program."

// DefaultPath returns guide.txt next to the running executable.
func DefaultPath() string {
	exe, err := os.Executable()
	if err != nil {
		return FileName
	}
	return filepath.Join(filepath.Dir(exe), FileName)
}

// Load returns the guide text verbatim, or Fallback if path is unreadable.
// An empty path selects DefaultPath.
func Load(path string) string {
	if path == "" {
		path = DefaultPath()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Guide: %v", err)
		return Fallback
	}
	return string(data)
}
