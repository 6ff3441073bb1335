package mapfile

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/texpack/texpack/pkg/atlas"
	"github.com/texpack/texpack/pkg/errors"
)

// WriteJSON serializes a packed atlas as a JSON object keyed by texture
// name, in atlas order, with exactly two-space indentation. Each value is a
// list of [x, y, width, height] arrays in frame order, with y flipped to a
// bottom-left origin. A duplicate texture name overwrites the earlier value
// but keeps the earlier key position.
func WriteJSON(w io.Writer, a *atlas.Atlas) error {
	order := make([]string, 0, len(a.Textures))
	entries := make(map[string][][4]int, len(a.Textures))

	for _, t := range a.Textures {
		rows := make([][4]int, len(t.Frames))
		for i, f := range t.Frames {
			rows[i] = [4]int{
				f.Rect.X,
				a.Height - f.Rect.Y - f.Rect.Height,
				f.Rect.Width,
				f.Rect.Height,
			}
		}
		if _, seen := entries[t.Name]; !seen {
			order = append(order, t.Name)
		}
		entries[t.Name] = rows
	}

	// encoding/json sorts map keys, so the object is assembled by hand to
	// keep atlas order, then re-indented in one pass.
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, name := range order {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return errors.Wrap(errors.ErrCodeSerialization, err, "encode texture name %q", name)
		}
		compact.Write(key)
		compact.WriteByte(':')
		val, err := json.Marshal(entries[name])
		if err != nil {
			return errors.Wrap(errors.ErrCodeSerialization, err, "encode frames of %q", name)
		}
		compact.Write(val)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return errors.Wrap(errors.ErrCodeSerialization, err, "indent JSON map")
	}
	if _, err := w.Write(out.Bytes()); err != nil {
		return errors.Wrap(errors.ErrCodeSerialization, err, "write JSON map")
	}
	return nil
}
