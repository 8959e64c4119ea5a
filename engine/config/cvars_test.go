package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cvars.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	c := NewCVars()
	if !c.Bool("mapUseChunks") {
		t.Error("mapUseChunks default = false, want true")
	}
	if got := c.Int("depthSorter"); got != 2 {
		t.Errorf("depthSorter default = %d, want 2", got)
	}
	if got := c.Int("cameraLeapRadius"); got != 50 {
		t.Errorf("cameraLeapRadius default = %d, want 50", got)
	}
	if got := c.Float("ambientOcclusion"); got != 0.5 {
		t.Errorf("ambientOcclusion default = %v, want 0.5", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeFile(t, "depthSorter: 1\nmapChunkSwitch: true\nfogR: 0.9\nambientOcclusion: 1\n")
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Int("depthSorter"); got != 1 {
		t.Errorf("depthSorter = %d, want 1", got)
	}
	if !c.Bool("mapChunkSwitch") {
		t.Error("mapChunkSwitch = false, want true")
	}
	if got := c.Float("fogR"); got != 0.9 {
		t.Errorf("fogR = %v, want 0.9", got)
	}
	// int literal accepted for float cvars
	if got := c.Float("ambientOcclusion"); got != 1 {
		t.Errorf("ambientOcclusion = %v, want 1", got)
	}
	// untouched cvars keep their defaults
	if got := c.Int("renderResolutionWidth"); got != 1920 {
		t.Errorf("renderResolutionWidth = %d, want 1920", got)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}
	if got := c.Int("depthSorter"); got != 2 {
		t.Errorf("depthSorter = %d, want default 2", got)
	}
}

func TestLoadRejectsUnknownCVar(t *testing.T) {
	path := writeFile(t, "noSuchVar: 1\n")
	if _, err := Load(path); err == nil {
		t.Fatal("want error for unknown cvar")
	}
}

func TestLoadRejectsWrongType(t *testing.T) {
	path := writeFile(t, "depthSorter: sideways\n")
	if _, err := Load(path); err == nil {
		t.Fatal("want error for mistyped cvar")
	}
}

func TestSetters(t *testing.T) {
	c := NewCVars()
	c.SetInt("depthSorter", 0)
	c.SetBool("debugRendering", true)
	c.SetFloat("fogG", 0.25)

	if got := c.Int("depthSorter"); got != 0 {
		t.Errorf("depthSorter = %d, want 0", got)
	}
	if !c.Bool("debugRendering") {
		t.Error("debugRendering = false, want true")
	}
	if got := c.Float("fogG"); got != 0.25 {
		t.Errorf("fogG = %v, want 0.25", got)
	}
}

func TestCrossTypeReads(t *testing.T) {
	c := NewCVars()
	// int cvar read as float and vice versa
	if got := c.Float("cameraLeapRadius"); got != 50 {
		t.Errorf("Float(cameraLeapRadius) = %v, want 50", got)
	}
	c.SetFloat("renderResolutionWidth", 960)
	if got := c.Int("renderResolutionWidth"); got != 960 {
		t.Errorf("Int(renderResolutionWidth) = %d, want 960", got)
	}
}
