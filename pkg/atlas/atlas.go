package atlas

import (
	"github.com/texpack/texpack/pkg/geom"
	"github.com/texpack/texpack/pkg/pack"
)

// Atlas is a packed texture atlas: a canvas size, the packing tree over it,
// and the textures that were successfully placed. The canvas size is fixed
// for the lifetime of the atlas; growth happens by discarding the instance
// and building a new, larger one.
type Atlas struct {
	Width    int
	Height   int
	Textures []*Texture

	root *pack.Region
}

// New creates an empty atlas with a w×h canvas.
func New(w, h int) *Atlas {
	return &Atlas{
		Width:  w,
		Height: h,
		root:   pack.New(geom.Rect{Width: w, Height: h}),
	}
}

// Root returns the root packing region. Exposed for tree inspection.
func (a *Atlas) Root() *pack.Region { return a.root }

// PackTexture places every frame of t, in frame order, into the atlas.
// The texture is appended speculatively before packing starts. On the first
// frame that does not fit, packing stops and that frame is returned; the
// caller is expected to discard the whole atlas instance, so partial
// placements are not rolled back.
func (a *Atlas) PackTexture(t *Texture) (failed *Frame) {
	a.Textures = append(a.Textures, t)
	for _, f := range t.Frames {
		x, y, ok := a.root.Pack(f.Rect.Width, f.Rect.Height)
		if !ok {
			return f
		}
		f.Rect.X, f.Rect.Y = x, y
	}
	return nil
}

// FreeRegions returns all currently free leaf regions of the packing tree.
func (a *Atlas) FreeRegions() []*pack.Region {
	return a.root.FreeRegions()
}

// FrameCount returns the total number of frames across all textures.
func (a *Atlas) FrameCount() int {
	n := 0
	for _, t := range a.Textures {
		n += len(t.Frames)
	}
	return n
}
