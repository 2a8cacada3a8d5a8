// Package tags decodes and encodes the flat tag layout of map item files.
//
// A decompressed map item is treated as an unstructured byte buffer in which
// field names appear as ASCII keys immediately followed by a fixed-width
// big-endian value. The decoder does not interpret any container framing: it
// scans the buffer for known keys, so fields may appear in any order and
// unknown data between them is skipped.
//
// The pixel payload ("colors") is consumed as a whole, including its bytes.
// Key lookalikes inside the payload are therefore never decoded, but bytes
// before the payload that happen to spell a key still are.
package tags

import (
	"bytes"
	"encoding/binary"
)

// Record holds the fields extracted from a map item.
type Record struct {
	Scale     uint8
	Dimension int8
	Height    uint16
	Width     uint16
	CenterX   int32
	CenterZ   int32
	Colors    []byte
}

type field struct {
	key   []byte
	width int
	set   func(r *Record, value []byte)
}

var fields = []field{
	{[]byte("scale"), 1, func(r *Record, v []byte) { r.Scale = v[0] }},
	{[]byte("dimension"), 1, func(r *Record, v []byte) { r.Dimension = int8(v[0]) }},
	{[]byte("height"), 2, func(r *Record, v []byte) { r.Height = binary.BigEndian.Uint16(v) }},
	{[]byte("width"), 2, func(r *Record, v []byte) { r.Width = binary.BigEndian.Uint16(v) }},
	{[]byte("xCenter"), 4, func(r *Record, v []byte) { r.CenterX = int32(binary.BigEndian.Uint32(v)) }},
	{[]byte("zCenter"), 4, func(r *Record, v []byte) { r.CenterZ = int32(binary.BigEndian.Uint32(v)) }},
}

var colorsKey = []byte("colors")

// Decode scans buffer for known fields and stores every field found into
// record. Fields missing from the buffer keep their current value in record,
// so callers set defaults before decoding. A field whose value is cut off by
// the end of the buffer is ignored.
func Decode(buffer []byte, record *Record) {
	for i := 0; i < len(buffer); {
		if n := decodeAt(buffer[i:], record); n > 0 {
			i += n
		} else {
			i++
		}
	}
}

// decodeAt decodes the field starting at the beginning of b and returns the
// number of bytes consumed, or 0 when no complete field starts there.
func decodeAt(b []byte, record *Record) int {
	for _, f := range fields {
		if !bytes.HasPrefix(b, f.key) {
			continue
		}
		end := len(f.key) + f.width
		if end > len(b) {
			return 0
		}
		f.set(record, b[len(f.key):end])
		return end
	}

	if bytes.HasPrefix(b, colorsKey) {
		start := len(colorsKey) + 4
		if start > len(b) {
			return 0
		}
		n := binary.BigEndian.Uint32(b[len(colorsKey):start])
		if uint64(n) > uint64(len(b)-start) {
			return 0
		}
		record.Colors = bytes.Clone(b[start : start+int(n)])
		return start + int(n)
	}

	return 0
}

const (
	tagEnd       = 0
	tagByte      = 1
	tagShort     = 2
	tagInt       = 3
	tagByteArray = 7
	tagCompound  = 10
)

// Encode serializes record in the layout written by the game: a root compound
// holding a "data" compound with one named tag per field.
func Encode(record *Record) []byte {
	var buffer bytes.Buffer

	writeName := func(tagType byte, name string) {
		buffer.WriteByte(tagType)
		buffer.Write(binary.BigEndian.AppendUint16(nil, uint16(len(name))))
		buffer.WriteString(name)
	}

	writeName(tagCompound, "")
	writeName(tagCompound, "data")

	writeName(tagByte, "scale")
	buffer.WriteByte(record.Scale)
	writeName(tagByte, "dimension")
	buffer.WriteByte(byte(record.Dimension))
	writeName(tagShort, "height")
	buffer.Write(binary.BigEndian.AppendUint16(nil, record.Height))
	writeName(tagShort, "width")
	buffer.Write(binary.BigEndian.AppendUint16(nil, record.Width))
	writeName(tagInt, "xCenter")
	buffer.Write(binary.BigEndian.AppendUint32(nil, uint32(record.CenterX)))
	writeName(tagInt, "zCenter")
	buffer.Write(binary.BigEndian.AppendUint32(nil, uint32(record.CenterZ)))
	writeName(tagByteArray, "colors")
	buffer.Write(binary.BigEndian.AppendUint32(nil, uint32(len(record.Colors))))
	buffer.Write(record.Colors)

	buffer.WriteByte(tagEnd)
	buffer.WriteByte(tagEnd)

	return buffer.Bytes()
}
