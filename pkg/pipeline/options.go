package pipeline

import (
	"path/filepath"
	"strings"

	"github.com/texpack/texpack/pkg/errors"
	"github.com/texpack/texpack/pkg/imgio"
)

// Default values shared by every entry point that runs the pipeline.
const (
	// DefaultImagePath is the output canvas filename.
	DefaultImagePath = "atlas.png"

	// DefaultMapFormat is the map serialization format.
	DefaultMapFormat = FormatJSON

	// DefaultMode is the canvas color mode, passed through to the image
	// codec's canvas constructor.
	DefaultMode = "RGBA"
)

// Map format constants.
const (
	FormatJSON   = "json"
	FormatBinary = "binary"
)

// ValidFormats is the set of supported map formats.
var ValidFormats = map[string]bool{
	FormatJSON:   true,
	FormatBinary: true,
}

// Spec names one texture to pack: a name plus its ordered frame paths.
type Spec struct {
	Name   string
	Frames []string
}

// Options configures a pipeline run.
type Options struct {
	Specs     []Spec
	Size      int    // fixed square canvas side; 0 enables auto-growth
	ImagePath string // output canvas path
	MapPath   string // output map path
	MapFormat string // "json" or "binary"
	Mode      string // canvas color mode
}

// ValidateAndSetDefaults fills empty options with defaults and rejects
// invalid combinations. The output image path must carry an extension the
// image codec can encode; this is checked before any packing work begins.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Specs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no textures given")
	}
	for _, s := range o.Specs {
		if len(s.Frames) == 0 {
			return errors.New(errors.ErrCodeInvalidInput, "texture %q has no frames", s.Name)
		}
	}

	if o.ImagePath == "" {
		o.ImagePath = DefaultImagePath
	}
	if !imgio.SupportedExtension(o.ImagePath) {
		return errors.New(errors.ErrCodeInvalidPath,
			"output image filename %q needs a supported image extension (e.g. atlas.png)", o.ImagePath)
	}

	if o.MapPath == "" {
		ext := filepath.Ext(o.ImagePath)
		o.MapPath = strings.TrimSuffix(o.ImagePath, ext) + ".map"
	}

	if o.MapFormat == "" {
		o.MapFormat = DefaultMapFormat
	}
	if !ValidFormats[o.MapFormat] {
		return errors.New(errors.ErrCodeInvalidFormat, "unknown map format %q (want json or binary)", o.MapFormat)
	}

	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	if o.Size < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "canvas size must not be negative, got %d", o.Size)
	}
	return nil
}
