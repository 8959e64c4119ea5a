package assets

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadShader reads a GLSL source file. The backend handles null termination.
func LoadShader(name string) (string, error) {
	path := filepath.Join("assets", "shaders", name)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	return string(b), nil
}
