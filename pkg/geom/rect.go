// Package geom provides the primitive geometry used by the packer.
package geom

// Rect is an axis-aligned rectangle with integer position and size.
// Coordinates use a top-left origin with y increasing downward.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Perimeter returns 2*(width+height). It is recomputed on every call.
func (r Rect) Perimeter() int { return 2 * (r.Width + r.Height) }

// Area returns width*height.
func (r Rect) Area() int { return r.Width * r.Height }

// Intersects reports whether r and other overlap with positive area.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height && other.Y < r.Y+r.Height
}
