package mapfile

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/texpack/texpack/pkg/atlas"
	"github.com/texpack/texpack/pkg/errors"
)

// Magic identifies a binary atlas map file.
const Magic = "TEXA"

// Record sizes of the binary layout, in bytes.
const (
	headerSize        = 40
	textureRecordSize = 12
	frameRecordSize   = 16
)

// WriteBinary serializes a packed atlas to the binary map layout.
// Section sizes and offsets are computed up front in a single pass, then
// the four sections are emitted in order; the declared offsets always match
// the actual byte positions.
func WriteBinary(w io.Writer, a *atlas.Atlas) error {
	texSectionOff := uint32(headerSize)
	texSectionLen := uint32(len(a.Textures) * textureRecordSize)

	strSectionOff := texSectionOff + texSectionLen
	strSectionLen := uint32(0)
	for _, t := range a.Textures {
		strSectionLen += uint32(len(t.Name) + 1) // +1 for the null terminator
	}

	frmSectionOff := strSectionOff + strSectionLen
	frmSectionLen := uint32(a.FrameCount() * frameRecordSize)

	buf := bytes.NewBuffer(make([]byte, 0, int(frmSectionOff+frmSectionLen)))

	// Header
	buf.WriteString(Magic)
	for _, v := range []uint32{
		uint32(a.Width),
		uint32(a.Height),
		uint32(len(a.Textures)),
		texSectionOff,
		texSectionLen,
		strSectionOff,
		strSectionLen,
		frmSectionOff,
		frmSectionLen,
	} {
		putUint32(buf, v)
	}

	// Texture section: offsets are relative to their own sections.
	strOffset := uint32(0)
	frmOffset := uint32(0)
	for _, t := range a.Textures {
		putUint32(buf, strOffset)
		putUint32(buf, uint32(len(t.Frames)))
		putUint32(buf, frmOffset)
		strOffset += uint32(len(t.Name) + 1)
		frmOffset += uint32(len(t.Frames) * frameRecordSize)
	}

	// String section
	for _, t := range a.Textures {
		buf.WriteString(t.Name)
		buf.WriteByte(0)
	}

	// Frame section
	for _, t := range a.Textures {
		for _, f := range t.Frames {
			putUint32(buf, uint32(f.Rect.X))
			putUint32(buf, uint32(f.Rect.Y))
			putUint32(buf, uint32(f.Rect.Width))
			putUint32(buf, uint32(f.Rect.Height))
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(errors.ErrCodeSerialization, err, "write binary map")
	}
	return nil
}

func putUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
