// Package atlas implements texture atlas assembly: frames, named textures,
// the packed atlas itself, and the auto-growing build loop that finds a
// canvas size large enough to hold every frame.
package atlas

import (
	"github.com/texpack/texpack/pkg/errors"
	"github.com/texpack/texpack/pkg/geom"
	"github.com/texpack/texpack/pkg/imgio"
)

// Frame is one source image and its assigned position once packed.
// The size is fixed at construction; the position is assigned (and
// reassigned) by Atlas.PackTexture on every packing attempt.
type Frame struct {
	Rect   geom.Rect
	Source string
}

// NewFrame probes the image at path for its dimensions and returns a frame
// for it. The probe reads only the image header.
func NewFrame(path string) (*Frame, error) {
	w, h, err := imgio.Dimensions(path)
	if err != nil {
		return nil, err
	}
	return NewFrameWithSize(path, w, h)
}

// NewFrameWithSize returns a frame with known dimensions, skipping the
// image probe. Used when dimensions come from a cache.
func NewFrameWithSize(path string, w, h int) (*Frame, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeSourceImage, "%s: zero-size frame (%dx%d)", path, w, h)
	}
	return &Frame{
		Rect:   geom.Rect{Width: w, Height: h},
		Source: path,
	}, nil
}

// Texture is a named, ordered group of frames packed as a unit.
// Frame order is significant: it is the draw and serialization order.
// Name uniqueness is not enforced here; duplicate names simply produce
// duplicate map keys downstream.
type Texture struct {
	Name   string
	Frames []*Frame
}
