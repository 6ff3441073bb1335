package imgio

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writePNG encodes a solid-color w×h PNG into dir and returns its path.
func writePNG(t *testing.T, dir, name string, w, h int, c color.Color) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	return path
}

func TestDimensions(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "probe.png", 48, 32, color.White)

	w, h, err := Dimensions(path)
	if err != nil {
		t.Fatalf("Dimensions: %v", err)
	}
	if w != 48 || h != 32 {
		t.Errorf("Dimensions = %dx%d, want 48x32", w, h)
	}
}

func TestDimensionsMissingFile(t *testing.T) {
	if _, _, err := Dimensions(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecode(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, "red.png", 4, 4, color.RGBA{R: 255, A: 255})

	img, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got := img.Bounds(); got.Dx() != 4 || got.Dy() != 4 {
		t.Errorf("bounds = %v, want 4x4", got)
	}
	r, _, _, _ := img.At(2, 2).RGBA()
	if r != 0xffff {
		t.Errorf("pixel red channel = %#x, want 0xffff", r)
	}
}

func TestNewCanvas(t *testing.T) {
	tests := []struct {
		mode    string
		wantErr bool
	}{
		{mode: "RGBA"},
		{mode: "rgba"},
		{mode: "RGB"},
		{mode: "NRGBA"},
		{mode: "L"},
		{mode: "CMYK", wantErr: true},
		{mode: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			c, err := NewCanvas(tt.mode, 10, 20)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewCanvas(%q) succeeded, want error", tt.mode)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewCanvas(%q): %v", tt.mode, err)
			}
			if b := c.Bounds(); b.Dx() != 10 || b.Dy() != 20 {
				t.Errorf("bounds = %v, want 10x20", b)
			}
		})
	}
}

func TestPaste(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{G: 255, A: 255})
	src.Set(1, 1, color.RGBA{G: 255, A: 255})

	Paste(dst, src, 3, 4)

	_, g, _, _ := dst.At(3, 4).RGBA()
	if g != 0xffff {
		t.Errorf("pasted pixel green channel = %#x, want 0xffff", g)
	}
	_, g, _, _ = dst.At(0, 0).RGBA()
	if g != 0 {
		t.Errorf("untouched pixel green channel = %#x, want 0", g)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 6, 5))
	for _, name := range []string{"out.png", "out.bmp", "out.gif"} {
		path := filepath.Join(dir, name)
		if err := Encode(path, img); err != nil {
			t.Fatalf("Encode %s: %v", name, err)
		}
		w, h, err := Dimensions(path)
		if err != nil {
			t.Fatalf("Dimensions %s: %v", name, err)
		}
		if w != 6 || h != 5 {
			t.Errorf("%s dimensions = %dx%d, want 6x5", name, w, h)
		}
	}
}

func TestEncodeUnsupportedExtension(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := Encode(filepath.Join(t.TempDir(), "out.xyz"), img); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestSupportedExtension(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"atlas.png", true},
		{"atlas.PNG", true},
		{"atlas.jpeg", true},
		{"atlas.tiff", true},
		{"atlas", false},
		{"atlas.webp", false}, // decode only
	}
	for _, tt := range tests {
		if got := SupportedExtension(tt.path); got != tt.want {
			t.Errorf("SupportedExtension(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
