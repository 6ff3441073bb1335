package mapfile

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/texpack/texpack/pkg/atlas"
	"github.com/texpack/texpack/pkg/geom"
)

// testAtlas builds a fake packed atlas without touching the packer: frame
// positions are assigned directly, which is all the codecs look at.
func testAtlas(w, h int, textures ...*atlas.Texture) *atlas.Atlas {
	a := atlas.New(w, h)
	a.Textures = textures
	return a
}

func frameAt(x, y, w, h int) *atlas.Frame {
	return &atlas.Frame{
		Rect:   geom.Rect{X: x, Y: y, Width: w, Height: h},
		Source: "test.png",
	}
}

func u32(data []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(data[off : off+4])
}

func TestWriteBinaryHeader(t *testing.T) {
	a := testAtlas(256, 128,
		&atlas.Texture{Name: "hero", Frames: []*atlas.Frame{
			frameAt(0, 0, 64, 64),
			frameAt(64, 0, 64, 64),
		}},
		&atlas.Texture{Name: "tile", Frames: []*atlas.Frame{
			frameAt(0, 64, 32, 32),
		}},
	)

	var buf bytes.Buffer
	if err := WriteBinary(&buf, a); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	data := buf.Bytes()

	if string(data[:4]) != "TEXA" {
		t.Fatalf("magic = %q, want TEXA", data[:4])
	}

	// "hero\0tile\0" = 10 bytes, 2 texture records = 24 bytes, 3 frames = 48.
	wantHeader := []struct {
		name string
		off  int
		want uint32
	}{
		{"width", 4, 256},
		{"height", 8, 128},
		{"texture count", 12, 2},
		{"texture section offset", 16, 40},
		{"texture section size", 20, 24},
		{"string section offset", 24, 64},
		{"string section size", 28, 10},
		{"frame section offset", 32, 74},
		{"frame section size", 36, 48},
	}
	for _, f := range wantHeader {
		if got := u32(data, f.off); got != f.want {
			t.Errorf("%s = %d, want %d", f.name, got, f.want)
		}
	}

	if wantLen := 74 + 48; len(data) != wantLen {
		t.Errorf("file length = %d, want %d", len(data), wantLen)
	}
}

func TestWriteBinaryRoundTripOffsets(t *testing.T) {
	a := testAtlas(512, 512,
		&atlas.Texture{Name: "alpha", Frames: []*atlas.Frame{
			frameAt(0, 0, 100, 50),
			frameAt(0, 50, 100, 50),
		}},
		&atlas.Texture{Name: "beta", Frames: []*atlas.Frame{
			frameAt(100, 0, 30, 40),
		}},
		&atlas.Texture{Name: "gamma", Frames: []*atlas.Frame{
			frameAt(130, 0, 8, 8),
		}},
	)

	var buf bytes.Buffer
	if err := WriteBinary(&buf, a); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	data := buf.Bytes()

	texOff := int(u32(data, 16))
	strOff := int(u32(data, 24))
	frmOff := int(u32(data, 32))

	for i, tex := range a.Textures {
		rec := texOff + i*12

		// header.string_section_offset + name_offset locates the name.
		nameOff := int(u32(data, rec))
		end := bytes.IndexByte(data[strOff+nameOff:], 0)
		if got := string(data[strOff+nameOff : strOff+nameOff+end]); got != tex.Name {
			t.Errorf("texture %d name = %q, want %q", i, got, tex.Name)
		}

		if got := int(u32(data, rec+4)); got != len(tex.Frames) {
			t.Errorf("texture %d frame count = %d, want %d", i, got, len(tex.Frames))
		}

		// header.frame_section_offset + frame_offset + j*16 locates frame j.
		frameOff := int(u32(data, rec+8))
		for j, f := range tex.Frames {
			fr := frmOff + frameOff + j*16
			got := geom.Rect{
				X:      int(u32(data, fr)),
				Y:      int(u32(data, fr+4)),
				Width:  int(u32(data, fr+8)),
				Height: int(u32(data, fr+12)),
			}
			if got != f.Rect {
				t.Errorf("texture %d frame %d = %+v, want %+v", i, j, got, f.Rect)
			}
		}
	}

	// Every (offset, size) pair stays within the file.
	for _, pair := range [][2]int{{16, 20}, {24, 28}, {32, 36}} {
		off, size := u32(data, pair[0]), u32(data, pair[1])
		if int(off+size) > len(data) {
			t.Errorf("section at header offset %d overruns file: %d+%d > %d", pair[0], off, size, len(data))
		}
	}
}

func TestWriteBinaryDuplicateNamesKeptSeparate(t *testing.T) {
	a := testAtlas(64, 64,
		&atlas.Texture{Name: "dup", Frames: []*atlas.Frame{frameAt(0, 0, 8, 8)}},
		&atlas.Texture{Name: "dup", Frames: []*atlas.Frame{frameAt(8, 0, 8, 8)}},
	)

	var buf bytes.Buffer
	if err := WriteBinary(&buf, a); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}
	data := buf.Bytes()

	if got := u32(data, 12); got != 2 {
		t.Errorf("texture count = %d, want 2 (no deduplication)", got)
	}
	// "dup\0dup\0": the name is stored twice, back to back.
	if got := u32(data, 28); got != 8 {
		t.Errorf("string section size = %d, want 8", got)
	}
}

func TestReadBinaryRoundTrip(t *testing.T) {
	a := testAtlas(320, 200,
		&atlas.Texture{Name: "walk", Frames: []*atlas.Frame{
			frameAt(0, 0, 32, 48),
			frameAt(32, 0, 32, 48),
			frameAt(64, 0, 32, 48),
		}},
		&atlas.Texture{Name: "idle", Frames: []*atlas.Frame{
			frameAt(96, 0, 32, 48),
		}},
	)

	var buf bytes.Buffer
	if err := WriteBinary(&buf, a); err != nil {
		t.Fatalf("WriteBinary: %v", err)
	}

	m, err := ReadBinary(&buf)
	if err != nil {
		t.Fatalf("ReadBinary: %v", err)
	}

	if m.Width != 320 || m.Height != 200 {
		t.Errorf("dimensions = %dx%d, want 320x200", m.Width, m.Height)
	}
	if len(m.Textures) != 2 {
		t.Fatalf("got %d textures, want 2", len(m.Textures))
	}
	if m.Textures[0].Name != "walk" || len(m.Textures[0].Frames) != 3 {
		t.Errorf("texture 0 = %q with %d frames, want walk with 3", m.Textures[0].Name, len(m.Textures[0].Frames))
	}
	if got := m.Textures[0].Frames[1]; got != [4]int{32, 0, 32, 48} {
		t.Errorf("walk frame 1 = %v, want [32 0 32 48]", got)
	}
	if m.Textures[1].Name != "idle" {
		t.Errorf("texture 1 = %q, want idle", m.Textures[1].Name)
	}
}

func TestReadBinaryRejectsCorruptInput(t *testing.T) {
	valid := func() []byte {
		a := testAtlas(64, 64,
			&atlas.Texture{Name: "x", Frames: []*atlas.Frame{frameAt(0, 0, 8, 8)}},
		)
		var buf bytes.Buffer
		if err := WriteBinary(&buf, a); err != nil {
			t.Fatalf("WriteBinary: %v", err)
		}
		return buf.Bytes()
	}

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{
			name:   "truncated header",
			mutate: func(b []byte) []byte { return b[:20] },
		},
		{
			name: "bad magic",
			mutate: func(b []byte) []byte {
				b[0] = 'X'
				return b
			},
		},
		{
			name: "frame section overruns file",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[36:], 1<<20)
				return b
			},
		},
		{
			name: "texture count mismatch",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[12:], 7)
				return b
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.mutate(valid())
			if _, err := ReadBinary(bytes.NewReader(data)); err == nil {
				t.Error("ReadBinary succeeded on corrupt input, want error")
			}
		})
	}
}

func TestReadSniffsFormat(t *testing.T) {
	a := testAtlas(64, 64,
		&atlas.Texture{Name: "x", Frames: []*atlas.Frame{frameAt(0, 0, 8, 8)}},
	)

	var bin, js bytes.Buffer
	if err := WriteBinary(&bin, a); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(&js, a); err != nil {
		t.Fatal(err)
	}

	m, err := Read(&bin)
	if err != nil {
		t.Fatalf("Read(binary): %v", err)
	}
	if m.Format != "binary" {
		t.Errorf("Format = %q, want binary", m.Format)
	}

	m, err = Read(&js)
	if err != nil {
		t.Fatalf("Read(json): %v", err)
	}
	if m.Format != "json" {
		t.Errorf("Format = %q, want json", m.Format)
	}
}
