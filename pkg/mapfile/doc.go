// Package mapfile serializes and parses atlas map files.
//
// # Overview
//
// A map file describes where each texture frame landed in a packed atlas.
// Two formats are supported:
//
//   - Binary: a fixed little-endian layout with a "TEXA" magic, used by
//     runtime loaders that want zero-parse access via section offsets
//   - JSON: a human-diffable object keyed by texture name
//
// # Binary Layout
//
// All integers are 4-byte unsigned little-endian, packed with no padding.
// The file has four sections in order: header, texture, string, frame.
//
//	HEADER (40 bytes)
//	Offset Size Description
//	------ ---- -----------
//	0      4    Magic ('TEXA' = 0x41584554)
//	4      4    Texture Atlas Width
//	8      4    Texture Atlas Height
//	12     4    Number of Textures
//	16     4    Texture Section Offset
//	20     4    Texture Section Size
//	24     4    String Section Offset
//	28     4    String Section Size
//	32     4    Frame Section Offset
//	36     4    Frame Section Size
//
//	TEXTURE RECORD (12 bytes each)
//	0      4    Offset to Texture Name within the String Section
//	4      4    Number of Frames
//	8      4    Offset to first Frame within the Frame Section
//
//	FRAME RECORD (16 bytes each)
//	0      4    X-Coordinate of Frame
//	4      4    Y-Coordinate of Frame
//	8      4    Frame Width
//	12     4    Frame Height
//
// Section offsets in the header are absolute; the name and frame offsets in
// texture records are relative to the start of their section. Strings are
// UTF-8 with a single null terminator, no padding, no deduplication. Frame
// records use the atlas's top-left-origin coordinates.
//
// # JSON Layout
//
// The JSON map is an object keyed by texture name, each value an ordered
// list of [x, y, width, height] arrays, one per frame. The y coordinate is
// flipped to a bottom-left origin (y' = atlasHeight - y - height), which is
// what most UV tooling expects. Duplicate texture names collapse to one key
// with the last texture's frames, keeping the first occurrence's position;
// the binary format keeps one record per texture, duplicates included.
package mapfile
