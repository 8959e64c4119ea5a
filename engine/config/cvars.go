package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// defaults are the shipped cvar values. A YAML file overrides individual
// entries; types must match the default.
var defaults = map[string]any{
	"mapUseChunks":          true,
	"mapChunkSwitch":        false,
	"depthSorter":           2,
	"cameraLeapRadius":      50,
	"renderResolutionWidth": 1920,
	"enableAutoShade":       true,
	"ambientOcclusion":      float32(0.5),
	"fogR":                  float32(0.3),
	"fogG":                  float32(0.4),
	"fogB":                  float32(0.6),
	"enableLightEngine":     true,
	"debugRendering":        false,
	"singleBatchRendering":  true,
}

// CVars is the standard Provider: defaults, optional YAML overrides, and
// programmatic sets. Reads and writes may come from different goroutines
// (the file watcher reloads while the frame loop reads), hence the lock.
type CVars struct {
	mu     sync.RWMutex
	values map[string]any
}

func NewCVars() *CVars {
	v := make(map[string]any, len(defaults))
	for k, val := range defaults {
		v[k] = val
	}
	return &CVars{values: v}
}

// Load reads a YAML cvar file on top of the defaults. A missing file is not
// an error; the defaults stand.
func Load(path string) (*CVars, error) {
	c := NewCVars()
	if err := c.reload(path); err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}
	return c, nil
}

func (c *CVars) reload(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var overrides map[string]any
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("parse cvars %q: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for name, val := range overrides {
		def, ok := defaults[name]
		if !ok {
			return fmt.Errorf("unknown cvar %q in %q", name, path)
		}
		switch def.(type) {
		case bool:
			b, ok := val.(bool)
			if !ok {
				return fmt.Errorf("cvar %q: expected bool, got %T", name, val)
			}
			c.values[name] = b
		case int:
			i, ok := val.(int)
			if !ok {
				return fmt.Errorf("cvar %q: expected int, got %T", name, val)
			}
			c.values[name] = i
		case float32:
			switch f := val.(type) {
			case float64:
				c.values[name] = float32(f)
			case int:
				c.values[name] = float32(f)
			default:
				return fmt.Errorf("cvar %q: expected float, got %T", name, val)
			}
		}
	}
	return nil
}

func (c *CVars) Bool(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, _ := c.values[name].(bool)
	return b
}

func (c *CVars) Int(name string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch v := c.values[name].(type) {
	case int:
		return v
	case float32:
		return int(v)
	}
	return 0
}

func (c *CVars) Float(name string) float32 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch v := c.values[name].(type) {
	case float32:
		return v
	case int:
		return float32(v)
	}
	return 0
}

// SetBool overrides a cvar at runtime.
func (c *CVars) SetBool(name string, v bool) {
	c.mu.Lock()
	c.values[name] = v
	c.mu.Unlock()
}

func (c *CVars) SetInt(name string, v int) {
	c.mu.Lock()
	c.values[name] = v
	c.mu.Unlock()
}

func (c *CVars) SetFloat(name string, v float32) {
	c.mu.Lock()
	c.values[name] = v
	c.mu.Unlock()
}
