package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func writeTestPNG(t *testing.T, dir, name string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(dir, "assets", "textures"), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(filepath.Join(dir, "assets", "textures", name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadPNGPacksRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{255, 255, 255, 255})

	dir := t.TempDir()
	writeTestPNG(t, dir, "quad.png", img)
	chdir(t, dir)

	w, h, pix, err := LoadPNG("quad.png")
	if err != nil {
		t.Fatal(err)
	}
	if w != 2 || h != 2 {
		t.Fatalf("size = %dx%d, want 2x2", w, h)
	}
	if len(pix) != 16 {
		t.Fatalf("len(pix) = %d, want 16", len(pix))
	}
	// top-left pixel first, rows in image order
	if pix[0] != 255 || pix[1] != 0 || pix[2] != 0 || pix[3] != 255 {
		t.Errorf("pix[0:4] = %v, want red", pix[0:4])
	}
	if pix[8] != 0 || pix[9] != 0 || pix[10] != 255 {
		t.Errorf("pix[8:12] = %v, want blue", pix[8:12])
	}
}

func TestLoadPNGRedrawsPaletted(t *testing.T) {
	pal := color.Palette{color.RGBA{10, 20, 30, 255}, color.RGBA{200, 100, 50, 255}}
	img := image.NewPaletted(image.Rect(0, 0, 3, 1), pal)
	img.SetColorIndex(1, 0, 1)

	dir := t.TempDir()
	writeTestPNG(t, dir, "pal.png", img)
	chdir(t, dir)

	w, h, pix, err := LoadPNG("pal.png")
	if err != nil {
		t.Fatal(err)
	}
	if w != 3 || h != 1 || len(pix) != 12 {
		t.Fatalf("size = %dx%d len %d, want 3x1 len 12", w, h, len(pix))
	}
	if pix[4] != 200 || pix[5] != 100 || pix[6] != 50 {
		t.Errorf("pix[4:8] = %v, want the second palette entry", pix[4:8])
	}
}

func TestLoadPNGMissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	if _, _, _, err := LoadPNG("no-such.png"); err == nil {
		t.Error("want error for missing texture")
	}
}
