package atlas

import (
	"image/draw"

	"github.com/texpack/texpack/pkg/imgio"
)

// Compose decodes every frame's source image and pastes it at its packed
// position on a fresh canvas in the given color mode. Textures are drawn in
// stored order, frames in frame order.
func (a *Atlas) Compose(mode string) (draw.Image, error) {
	canvas, err := imgio.NewCanvas(mode, a.Width, a.Height)
	if err != nil {
		return nil, err
	}

	for _, t := range a.Textures {
		for _, f := range t.Frames {
			img, err := imgio.Decode(f.Source)
			if err != nil {
				return nil, err
			}
			imgio.Paste(canvas, img, f.Rect.X, f.Rect.Y)
		}
	}
	return canvas, nil
}

// WriteImage composes the atlas and encodes it to path, with the image
// format inferred from the file extension.
func (a *Atlas) WriteImage(path, mode string) error {
	canvas, err := a.Compose(mode)
	if err != nil {
		return err
	}
	return imgio.Encode(path, canvas)
}
