// Package manifest loads TOML build manifests describing an atlas build:
// the output image and map settings plus the list of textures to pack.
//
// Example:
//
//	[atlas]
//	image = "ui.png"
//	map = "ui.map"
//	map-format = "binary"
//	mode = "RGBA"
//
//	[[texture]]
//	name = "button"
//	frames = ["button-up.png", "button-down.png"]
//
//	[[texture]]
//	frames = ["cursor.png"]   # name defaults to "cursor"
//
// Frame paths are resolved relative to the manifest's directory.
package manifest

import (
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/texpack/texpack/pkg/errors"
)

// Manifest is a parsed atlas build manifest.
type Manifest struct {
	Atlas    Atlas     `toml:"atlas"`
	Textures []Texture `toml:"texture"`
}

// Atlas holds the output settings of a build manifest. Empty fields fall
// back to the CLI defaults.
type Atlas struct {
	Image     string `toml:"image"`
	Map       string `toml:"map"`
	MapFormat string `toml:"map-format"`
	Mode      string `toml:"mode"`
	Size      int    `toml:"size"` // fixed square canvas; 0 enables auto-growth
}

// Texture is one texture entry: a name and its ordered frame paths.
type Texture struct {
	Name   string   `toml:"name"`
	Frames []string `toml:"frames"`
}

// Load reads and validates the manifest at path. Texture names default to
// the first frame's filename without extension, and frame paths are
// rewritten to be relative to the manifest's directory.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse manifest %s", path)
	}

	if len(m.Textures) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "manifest %s declares no textures", path)
	}

	base := filepath.Dir(path)
	for i := range m.Textures {
		t := &m.Textures[i]
		if len(t.Frames) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"manifest %s: texture %d has no frames", path, i)
		}
		for j, frame := range t.Frames {
			if !filepath.IsAbs(frame) {
				t.Frames[j] = filepath.Join(base, frame)
			}
		}
		if t.Name == "" {
			t.Name = nameFromPath(t.Frames[0])
		}
	}
	return &m, nil
}

// nameFromPath derives a texture name from a frame's filename, dropping
// the directory and extension.
func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
