package atlas

import (
	"fmt"
	"testing"

	"github.com/texpack/texpack/pkg/geom"
)

// mustFrame builds a frame with known dimensions for packing tests that
// never touch the filesystem.
func mustFrame(t *testing.T, name string, w, h int) *Frame {
	t.Helper()
	f, err := NewFrameWithSize(name, w, h)
	if err != nil {
		t.Fatalf("NewFrameWithSize(%s): %v", name, err)
	}
	return f
}

func singleFrameTexture(t *testing.T, name string, w, h int) *Texture {
	t.Helper()
	return &Texture{Name: name, Frames: []*Frame{mustFrame(t, name+".png", w, h)}}
}

func TestNewFrameWithSizeRejectsZero(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{name: "zero width", w: 0, h: 10},
		{name: "zero height", w: 10, h: 0},
		{name: "negative", w: -1, h: -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFrameWithSize("x.png", tt.w, tt.h); err == nil {
				t.Errorf("NewFrameWithSize(%d, %d) succeeded, want error", tt.w, tt.h)
			}
		})
	}
}

func TestPackTextureAllOrNothing(t *testing.T) {
	a := New(10, 10)
	tex := &Texture{
		Name: "big",
		Frames: []*Frame{
			mustFrame(t, "a.png", 10, 10),
			mustFrame(t, "b.png", 1, 1),
		},
	}

	failed := a.PackTexture(tex)
	if failed == nil {
		t.Fatal("expected second frame to fail")
	}
	if failed != tex.Frames[1] {
		t.Errorf("failed frame = %v, want second frame", failed.Source)
	}
	// Speculative append: the texture is present even though packing failed;
	// callers discard the whole instance.
	if len(a.Textures) != 1 {
		t.Errorf("len(Textures) = %d, want 1", len(a.Textures))
	}
}

func TestBuildPacksEverything(t *testing.T) {
	textures := []*Texture{
		singleFrameTexture(t, "a", 96, 96),
		singleFrameTexture(t, "b", 64, 48),
		singleFrameTexture(t, "c", 48, 64),
		singleFrameTexture(t, "d", 32, 32),
		singleFrameTexture(t, "e", 16, 16),
		singleFrameTexture(t, "f", 16, 16),
	}

	a, err := Build(textures)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(a.Textures) != 6 {
		t.Fatalf("packed %d textures, want 6", len(a.Textures))
	}

	// Fit: every frame stays inside the canvas.
	var placed []geom.Rect
	for _, tex := range a.Textures {
		for _, f := range tex.Frames {
			if f.Rect.X+f.Rect.Width > a.Width || f.Rect.Y+f.Rect.Height > a.Height {
				t.Errorf("frame %s out of bounds: %+v on %dx%d", f.Source, f.Rect, a.Width, a.Height)
			}
			placed = append(placed, f.Rect)
		}
	}

	// No-overlap across all packed frames.
	for i, r := range placed {
		for j, s := range placed[i+1:] {
			if r.Intersects(s) {
				t.Errorf("frames %d and %d overlap: %+v, %+v", i, i+1+j, r, s)
			}
		}
	}

	// Canvas dimensions stay close to the inputs: strictly larger than the
	// biggest frame, no bigger than biggest plus the per-axis growth bound.
	if a.Width <= 96 || a.Height <= 96 {
		t.Errorf("canvas %dx%d not strictly larger than largest frame", a.Width, a.Height)
	}
	if a.Width > 96+96 || a.Height > 96+96 {
		t.Errorf("canvas %dx%d grew more than one largest-frame step", a.Width, a.Height)
	}
}

func TestBuildSortsByFirstFramePerimeterStable(t *testing.T) {
	// b and c tie on perimeter; stable sort must keep b before c.
	textures := []*Texture{
		singleFrameTexture(t, "small", 8, 8),
		singleFrameTexture(t, "b", 32, 16),
		singleFrameTexture(t, "c", 16, 32),
		singleFrameTexture(t, "large", 64, 64),
	}

	a, err := Build(textures)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	gotOrder := make([]string, len(a.Textures))
	for i, tex := range a.Textures {
		gotOrder[i] = tex.Name
	}
	want := []string{"large", "b", "c", "small"}
	for i := range want {
		if gotOrder[i] != want[i] {
			t.Fatalf("packed order = %v, want %v", gotOrder, want)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	build := func() *Atlas {
		textures := []*Texture{
			singleFrameTexture(t, "a", 40, 30),
			singleFrameTexture(t, "b", 30, 40),
			singleFrameTexture(t, "c", 25, 25),
			singleFrameTexture(t, "d", 70, 10),
			singleFrameTexture(t, "e", 10, 70),
		}
		a, err := Build(textures)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		return a
	}

	a1, a2 := build(), build()
	if a1.Width != a2.Width || a1.Height != a2.Height {
		t.Fatalf("canvas size differs: %dx%d vs %dx%d", a1.Width, a1.Height, a2.Width, a2.Height)
	}
	for i := range a1.Textures {
		f1 := a1.Textures[i].Frames[0].Rect
		f2 := a2.Textures[i].Frames[0].Rect
		if f1 != f2 {
			t.Errorf("texture %d placement differs: %+v vs %+v", i, f1, f2)
		}
	}
}

func TestBuildTerminatesOnAwkwardInputs(t *testing.T) {
	// Long thin strips alternating orientation force repeated growth.
	var textures []*Texture
	for i := 0; i < 20; i++ {
		w, h := 100, 3
		if i%2 == 1 {
			w, h = 3, 100
		}
		textures = append(textures, singleFrameTexture(t, fmt.Sprintf("strip%d", i), w, h))
	}

	a, err := Build(textures)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := a.FrameCount(); got != 20 {
		t.Errorf("FrameCount = %d, want 20", got)
	}
}

func TestBuildRejectsEmptyInput(t *testing.T) {
	if _, err := Build(nil); err == nil {
		t.Error("Build(nil) succeeded, want error")
	}
	if _, err := Build([]*Texture{{Name: "empty"}}); err == nil {
		t.Error("Build with frameless texture succeeded, want error")
	}
}

func TestBuildFixed(t *testing.T) {
	t.Run("fits", func(t *testing.T) {
		textures := []*Texture{
			singleFrameTexture(t, "a", 32, 32),
			singleFrameTexture(t, "b", 32, 32),
		}
		a, err := BuildFixed(textures, 64)
		if err != nil {
			t.Fatalf("BuildFixed: %v", err)
		}
		if a.Width != 64 || a.Height != 64 {
			t.Errorf("canvas = %dx%d, want 64x64", a.Width, a.Height)
		}
	})

	t.Run("does not fit", func(t *testing.T) {
		textures := []*Texture{singleFrameTexture(t, "a", 100, 100)}
		if _, err := BuildFixed(textures, 64); err == nil {
			t.Error("BuildFixed succeeded, want packing failure")
		}
	})

	t.Run("invalid size", func(t *testing.T) {
		textures := []*Texture{singleFrameTexture(t, "a", 4, 4)}
		if _, err := BuildFixed(textures, 0); err == nil {
			t.Error("BuildFixed(0) succeeded, want error")
		}
	})
}

func TestMultiFrameTexturePacksInOrder(t *testing.T) {
	tex := &Texture{
		Name: "anim",
		Frames: []*Frame{
			mustFrame(t, "anim0.png", 16, 16),
			mustFrame(t, "anim1.png", 16, 16),
			mustFrame(t, "anim2.png", 16, 16),
		},
	}

	a, err := Build([]*Texture{tex})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, f := range tex.Frames {
		if f.Rect.Width != 16 || f.Rect.Height != 16 {
			t.Errorf("frame %d size changed: %+v", i, f.Rect)
		}
		if f.Rect.X+16 > a.Width || f.Rect.Y+16 > a.Height {
			t.Errorf("frame %d out of bounds: %+v", i, f.Rect)
		}
	}
}
