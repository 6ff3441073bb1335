package mapfile

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"

	"github.com/texpack/texpack/pkg/errors"
)

// Map is the parsed form of an atlas map file, shared by both formats.
// Binary maps carry the atlas dimensions and top-left-origin frame
// coordinates; JSON maps have no dimension record and keep the flipped
// bottom-left y values exactly as stored.
type Map struct {
	Format   string // "binary" or "json"
	Width    int    // atlas width (binary only, 0 for JSON)
	Height   int    // atlas height (binary only, 0 for JSON)
	Textures []TextureEntry
}

// TextureEntry is one named texture and its frame rectangles.
type TextureEntry struct {
	Name   string
	Frames [][4]int // x, y, width, height
}

// FrameCount returns the total number of frames across all textures.
func (m *Map) FrameCount() int {
	n := 0
	for _, t := range m.Textures {
		n += len(t.Frames)
	}
	return n
}

// Read parses a map file in either format, sniffing the binary magic.
func Read(r io.Reader) (*Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "read map")
	}
	if len(data) >= 4 && string(data[:4]) == Magic {
		return ReadBinary(bytes.NewReader(data))
	}
	return ReadJSON(bytes.NewReader(data))
}

// ReadBinary parses a binary map file, validating the magic, the section
// bounds, and every record offset.
func ReadBinary(r io.Reader) (*Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "read binary map")
	}
	if len(data) < headerSize {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "binary map truncated: %d bytes", len(data))
	}
	if string(data[:4]) != Magic {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "bad magic %q, want %q", data[:4], Magic)
	}

	u32 := func(off int) uint32 { return binary.LittleEndian.Uint32(data[off : off+4]) }

	m := &Map{
		Format: "binary",
		Width:  int(u32(4)),
		Height: int(u32(8)),
	}
	count := int(u32(12))
	texOff, texLen := int(u32(16)), int(u32(20))
	strOff, strLen := int(u32(24)), int(u32(28))
	frmOff, frmLen := int(u32(32)), int(u32(36))

	for _, s := range [][2]int{{texOff, texLen}, {strOff, strLen}, {frmOff, frmLen}} {
		if s[0] < 0 || s[1] < 0 || s[0]+s[1] > len(data) {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"section (offset %d, size %d) exceeds file length %d", s[0], s[1], len(data))
		}
	}
	if count*textureRecordSize != texLen {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"texture section size %d does not match %d textures", texLen, count)
	}

	strings := data[strOff : strOff+strLen]
	frames := data[frmOff : frmOff+frmLen]

	for i := 0; i < count; i++ {
		rec := texOff + i*textureRecordSize
		nameOff := int(u32(rec))
		frameCount := int(u32(rec + 4))
		frameOff := int(u32(rec + 8))

		if nameOff >= len(strings) {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"texture %d: name offset %d outside string section", i, nameOff)
		}
		end := bytes.IndexByte(strings[nameOff:], 0)
		if end < 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"texture %d: unterminated name at offset %d", i, nameOff)
		}
		entry := TextureEntry{Name: string(strings[nameOff : nameOff+end])}

		if frameOff+frameCount*frameRecordSize > len(frames) {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"texture %d: %d frames at offset %d outside frame section", i, frameCount, frameOff)
		}
		for j := 0; j < frameCount; j++ {
			rec := frmOff + frameOff + j*frameRecordSize
			entry.Frames = append(entry.Frames, [4]int{
				int(u32(rec)), int(u32(rec + 4)), int(u32(rec + 8)), int(u32(rec + 12)),
			})
		}
		m.Textures = append(m.Textures, entry)
	}
	return m, nil
}

// ReadJSON parses a JSON map file, preserving the document's key order.
func ReadJSON(r io.Reader) (*Map, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse JSON map")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "JSON map must be an object, got %v", tok)
	}

	m := &Map{Format: "json"}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse JSON map key")
		}
		name := keyTok.(string)

		var frames [][4]int
		if err := dec.Decode(&frames); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse frames of %q", name)
		}
		m.Textures = append(m.Textures, TextureEntry{Name: name, Frames: frames})
	}
	return m, nil
}
