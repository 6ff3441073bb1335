// Package pack implements the recursive binary-tree rectangle packer.
//
// A Region is a node in a binary tree over a fixed rectangular canvas area.
// A region is either free (a leaf with no occupant) or occupied: it holds
// exactly one packed rectangle placed at its origin plus two child regions
// that partition the leftover area. The occupant and the two children always
// tile the region exactly, so the set of free leaves in a tree describes all
// remaining usable space.
package pack

import "github.com/texpack/texpack/pkg/geom"

// Region is a node of the packing tree. The zero value is not usable;
// create regions with New.
type Region struct {
	rect     geom.Rect
	occupant *geom.Rect
	left     *Region
	right    *Region
}

// New creates a free region covering r.
func New(r geom.Rect) *Region {
	return &Region{rect: r}
}

// Rect returns the area this region covers.
func (r *Region) Rect() geom.Rect { return r.rect }

// Occupied reports whether a rectangle has been placed in this region.
func (r *Region) Occupied() bool { return r.occupant != nil }

// Pack places a w×h rectangle into the subtree rooted at r. On success it
// returns the assigned top-left position. The tree is not mutated on failure.
//
// A free region accepts the rectangle if it fits, placing it at the region's
// origin and splitting the leftover area into two child regions: the strip
// directly below the placed rectangle (only as wide as the rectangle) and
// the full-height column to its right. An occupied region recurses into the
// child with the larger perimeter first, the right child winning ties, and
// falls back to the other child.
// Exploring the larger leftover space first keeps small slivers available
// for later, small rectangles.
func (r *Region) Pack(w, h int) (x, y int, ok bool) {
	if r.occupant == nil {
		if w > r.rect.Width || h > r.rect.Height {
			return 0, 0, false
		}

		placed := geom.Rect{X: r.rect.X, Y: r.rect.Y, Width: w, Height: h}
		r.occupant = &placed

		// The occupant and both children tile r.rect exactly. Children
		// with zero width or height are legal and never accept anything.
		r.left = New(geom.Rect{
			X:      r.rect.X,
			Y:      r.rect.Y + h,
			Width:  w,
			Height: r.rect.Height - h,
		})
		r.right = New(geom.Rect{
			X:      r.rect.X + w,
			Y:      r.rect.Y,
			Width:  r.rect.Width - w,
			Height: r.rect.Height,
		})
		return placed.X, placed.Y, true
	}

	// Right child wins ties so a split whose halves measure the same is
	// explored column-first.
	first, second := r.right, r.left
	if second.rect.Perimeter() > first.rect.Perimeter() {
		first, second = second, first
	}
	if x, y, ok = first.Pack(w, h); ok {
		return x, y, true
	}
	return second.Pack(w, h)
}

// FreeRegions returns every free leaf in the subtree in depth-first
// left-then-right order. The tree is not mutated.
func (r *Region) FreeRegions() []*Region {
	if r.occupant == nil {
		return []*Region{r}
	}
	return append(r.left.FreeRegions(), r.right.FreeRegions()...)
}

// Occupants returns every placed rectangle in the subtree in depth-first
// left-then-right order, the occupant of each node preceding its children.
func (r *Region) Occupants() []geom.Rect {
	if r.occupant == nil {
		return nil
	}
	out := []geom.Rect{*r.occupant}
	out = append(out, r.left.Occupants()...)
	return append(out, r.right.Occupants()...)
}
