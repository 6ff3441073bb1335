// Package imgio is the image codec boundary for the packer.
//
// It wraps decoding source frames (dimension probes and full pixel reads),
// creating blank canvases in a requested color mode, and encoding the final
// canvas with the format inferred from the output file extension.
//
// Supported input formats: PNG, JPEG, GIF, BMP, TIFF, and WebP (decode only).
// Supported output formats: PNG, JPEG, GIF, BMP, TIFF.
package imgio

import (
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // decode only

	"github.com/texpack/texpack/pkg/errors"
)

// Canvas color modes accepted by NewCanvas. The mode string is the caller's
// choice of pixel layout for the composed atlas.
const (
	ModeRGBA  = "RGBA"
	ModeNRGBA = "NRGBA"
	ModeGray  = "L"
)

// encoders maps an output file extension to its encode function.
var encoders = map[string]func(w io.Writer, img image.Image) error{
	".png":  png.Encode,
	".jpg":  encodeJPEG,
	".jpeg": encodeJPEG,
	".gif": func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, nil)
	},
	".bmp":  bmp.Encode,
	".tif":  encodeTIFF,
	".tiff": encodeTIFF,
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, nil)
}

func encodeTIFF(w io.Writer, img image.Image) error {
	return tiff.Encode(w, img, nil)
}

// SupportedExtension reports whether path carries a file extension that can
// be encoded. The comparison is case-insensitive.
func SupportedExtension(path string) bool {
	_, ok := encoders[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Dimensions returns the pixel width and height of the image at path without
// decoding the full pixel data.
func Dimensions(path string) (w, h int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeSourceImage, err, "open %s", path)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeSourceImage, err, "decode %s", path)
	}
	return cfg.Width, cfg.Height, nil
}

// Decode reads and decodes the full image at path.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceImage, err, "open %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceImage, err, "decode %s", path)
	}
	return img, nil
}

// NewCanvas creates a blank w×h canvas in the given color mode.
// The mode strings follow the conventional PIL-style names so existing
// pipelines keep working: "RGBA" (premultiplied), "NRGBA" (straight alpha),
// "L" (8-bit grayscale). "RGB" is accepted as an alias for RGBA since Go's
// image model has no dedicated 24-bit type.
func NewCanvas(mode string, w, h int) (draw.Image, error) {
	r := image.Rect(0, 0, w, h)
	switch strings.ToUpper(mode) {
	case ModeRGBA, "RGB":
		return image.NewRGBA(r), nil
	case ModeNRGBA:
		return image.NewNRGBA(r), nil
	case ModeGray, "GRAY":
		return image.NewGray(r), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidMode, "unsupported image mode %q", mode)
	}
}

// Paste draws src onto dst with its top-left corner at (x, y).
func Paste(dst draw.Image, src image.Image, x, y int) {
	b := src.Bounds()
	target := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(dst, target, src, b.Min, draw.Src)
}

// Encode writes img to path, choosing the format from the file extension.
func Encode(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSerialization, err, "create %s", path)
	}
	defer f.Close()

	if err := EncodeTo(f, filepath.Ext(path), img); err != nil {
		return errors.Wrap(errors.ErrCodeSerialization, err, "encode %s", path)
	}
	return nil
}

// EncodeTo writes img to w in the format named by ext (e.g. ".png").
func EncodeTo(w io.Writer, ext string, img image.Image) error {
	enc, ok := encoders[strings.ToLower(ext)]
	if !ok {
		return errors.New(errors.ErrCodeInvalidPath, "unsupported output extension %q", ext)
	}
	return enc(w, img)
}
