package app

import (
	"log"
	"os"
	"time"

	"fixthecolor/internal/model"
)

// ModelCache loads the model artifact and reuses it until the file's
// modification time or size changes, so a retrain is picked up on the
// next prediction.
type ModelCache struct {
	store   *model.Store
	modTime time.Time
	size    int64
	model   *model.Model
}

// NewModelCache creates a cache over store.
func NewModelCache(store *model.Store) *ModelCache {
	return &ModelCache{store: store}
}

// Path returns the artifact path.
func (c *ModelCache) Path() string {
	return c.store.Path
}

// Store returns the underlying store.
func (c *ModelCache) Store() *model.Store {
	return c.store
}

// Load returns the current model.
func (c *ModelCache) Load() (*model.Model, error) {
	info, err := os.Stat(c.store.Path)
	if err != nil {
		c.model = nil
		// Let the store classify the failure (missing vs unreadable).
		return c.store.Load()
	}
	if c.model != nil && info.ModTime().Equal(c.modTime) && info.Size() == c.size {
		return c.model, nil
	}

	m, err := c.store.Load()
	if err != nil {
		c.model = nil
		return nil, err
	}
	c.model = m
	c.modTime = info.ModTime()
	c.size = info.Size()
	log.Printf("Loaded color model from %s (%d samples, trained %s)",
		c.store.Path, m.Samples, m.TrainedAt.Format("2006-01-02 15:04:05"))
	return m, nil
}

// Invalidate forces the next Load to read the file.
func (c *ModelCache) Invalidate() {
	c.model = nil
}
