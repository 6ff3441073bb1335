package cli

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/texpack/texpack/pkg/errors"
	"github.com/texpack/texpack/pkg/pipeline"
)

// specRe splits one texture argument into an optional name and the rest.
// Matches "hero=walk_0.png walk_1.png" as well as a bare "tile.png".
var specRe = regexp.MustCompile(`^(?:(\w+)=)?(.+)$`)

// parseSpecs converts positional arguments into texture specs. Each
// argument is either a single frame path or "name=path [path...]" where
// multi-frame textures arrive as one shell-quoted token. A texture without
// an explicit name takes its first frame's filename without extension.
func parseSpecs(args []string) ([]pipeline.Spec, error) {
	specs := make([]pipeline.Spec, 0, len(args))
	for _, arg := range args {
		m := specRe.FindStringSubmatch(arg)
		if m == nil || strings.TrimSpace(m[2]) == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid texture spec %q", arg)
		}

		frames := splitFrames(m[2])
		if len(frames) == 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "texture spec %q has no frame paths", arg)
		}

		name := m[1]
		if name == "" {
			name = nameFromPath(frames[0])
		}
		specs = append(specs, pipeline.Spec{Name: name, Frames: frames})
	}
	return specs, nil
}

// splitFrames splits a frame list on whitespace, honoring single and
// double quotes around paths that contain spaces.
func splitFrames(s string) []string {
	var (
		frames  []string
		current strings.Builder
		quote   rune
	)
	flush := func() {
		if current.Len() > 0 {
			frames = append(frames, current.String())
			current.Reset()
		}
	}
	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
		case r == ' ' || r == '\t':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return frames
}

// nameFromPath derives a texture name from a frame path: the filename
// without its extension.
func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
