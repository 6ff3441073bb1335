package atlas

import (
	"sort"

	"github.com/texpack/texpack/pkg/errors"
	"github.com/texpack/texpack/pkg/geom"
)

// maxGrowAttempts bounds the growth loop. Growth strictly increases one
// dimension per retry, so the loop terminates on its own for any finite
// input; the cap only guards against a runaway loop if that ever breaks.
const maxGrowAttempts = 4096

// Build packs textures into the smallest canvas the growth strategy finds.
//
// Textures are first stably sorted by the perimeter of their first frame in
// non-increasing order; ties keep input order. The canvas starts at the size
// of the first sorted texture's first frame. On a placement failure the
// current atlas is discarded and a dimension grows: if the widest free
// region is narrower than the failing frame, the canvas gains that frame's
// width, otherwise its height. The loop repeats until every texture packs.
func Build(textures []*Texture) (*Atlas, error) {
	if err := validate(textures); err != nil {
		return nil, err
	}

	sorted := make([]*Texture, len(textures))
	copy(sorted, textures)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Frames[0].Rect.Perimeter() > sorted[j].Frames[0].Rect.Perimeter()
	})

	first := sorted[0].Frames[0]
	width, height := first.Rect.Width, first.Rect.Height

	for attempt := 0; attempt < maxGrowAttempts; attempt++ {
		a := New(width, height)
		failed := a.packAll(sorted)
		if failed == nil {
			return a, nil
		}

		largest := largestFreeRegion(a)
		if largest.Width < failed.Rect.Width {
			width += failed.Rect.Width
		} else {
			height += failed.Rect.Height
		}
	}

	return nil, errors.New(errors.ErrCodePackingFailed, "growth loop exceeded %d attempts", maxGrowAttempts)
}

// BuildFixed packs textures onto a fixed size×size canvas without growing.
// The first frame that cannot be placed fails the build.
func BuildFixed(textures []*Texture, size int) (*Atlas, error) {
	if err := validate(textures); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas size must be positive, got %d", size)
	}

	sorted := make([]*Texture, len(textures))
	copy(sorted, textures)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Frames[0].Rect.Perimeter() > sorted[j].Frames[0].Rect.Perimeter()
	})

	a := New(size, size)
	if failed := a.packAll(sorted); failed != nil {
		return nil, errors.New(errors.ErrCodePackingFailed,
			"%s (%dx%d) does not fit on a %dx%d canvas",
			failed.Source, failed.Rect.Width, failed.Rect.Height, size, size)
	}
	return a, nil
}

// packAll packs every texture in order, returning the first frame that
// fails to place, or nil if everything fit.
func (a *Atlas) packAll(textures []*Texture) *Frame {
	for _, t := range textures {
		if failed := a.PackTexture(t); failed != nil {
			return failed
		}
	}
	return nil
}

// largestFreeRegion returns the rect of the free region with the largest
// perimeter. A packing tree always has at least one free leaf (leaves may
// be degenerate), so the result is well defined after any failure.
func largestFreeRegion(a *Atlas) geom.Rect {
	free := a.FreeRegions()
	best := free[0].Rect()
	for _, r := range free[1:] {
		if r.Rect().Perimeter() > best.Perimeter() {
			best = r.Rect()
		}
	}
	return best
}

func validate(textures []*Texture) error {
	if len(textures) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no textures to pack")
	}
	for _, t := range textures {
		if len(t.Frames) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "texture %q has no frames", t.Name)
		}
	}
	return nil
}
