package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// LoadPNG decodes a texture from assets/textures and returns its size and
// tightly packed RGBA8 pixels, row-major from the top-left. The sprite
// shader flips V at sample time, so rows stay in image order here.
func LoadPNG(name string) (w, h int, pix []byte, err error) {
	path := filepath.Join("assets", "textures", name)
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return 0, 0, nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

	b := img.Bounds()
	w, h = b.Dx(), b.Dy()

	// Redraw unless the decode already produced tight RGBA rows anchored
	// at the origin. Subimages and paletted PNGs take this path.
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != 4*w || b.Min != (image.Point{}) {
		tmp := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(tmp, tmp.Bounds(), img, b.Min, draw.Src)
		rgba = tmp
	}
	return w, h, rgba.Pix, nil
}
