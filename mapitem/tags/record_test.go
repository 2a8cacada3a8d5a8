package tags_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/eak1mov/go-mapcombine/mapitem/tags"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	for _, tc := range []struct {
		Name   string
		Record tags.Record
	}{
		{
			Name: "Overworld",
			Record: tags.Record{
				Scale: 2, Dimension: 0, Height: 4, Width: 4,
				CenterX: -64, CenterZ: 448,
				Colors: []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
			},
		},
		{
			Name: "Nether",
			Record: tags.Record{
				Scale: 0, Dimension: -1, Height: 2, Width: 3,
				CenterX: 1 << 20, CenterZ: -(1 << 20),
				Colors: []byte{44, 45, 46, 47, 48, 49},
			},
		},
		{
			Name: "KeyLookalikeInColors",
			Record: tags.Record{
				Scale: 1, Dimension: 1, Height: 1, Width: 11,
				Colors: []byte("scale\x07width"),
			},
		},
		{
			Name: "MaxWidth",
			Record: tags.Record{
				Scale: 4, Height: 128, Width: 128,
				CenterX: 2147483647, CenterZ: -2147483648,
				Colors: bytes.Repeat([]byte{4*7 + 2}, 128*128),
			},
		},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			var decoded tags.Record
			tags.Decode(tags.Encode(&tc.Record), &decoded)
			if diff := cmp.Diff(tc.Record, decoded); diff != "" {
				t.Errorf("Decode(Encode(record)) mismatch (-want+got):\n%v", diff)
			}
		})
	}
}

func TestDecodeKeepsDefaults(t *testing.T) {
	record := tags.Record{Scale: 3, Dimension: -1, CenterZ: 99}
	tags.Decode([]byte("junk width\x00\x80 more junk xCenter\x00\x00\x01\x00"), &record)

	want := tags.Record{Scale: 3, Dimension: -1, Width: 128, CenterX: 256, CenterZ: 99}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Errorf("Decode mismatch (-want+got):\n%v", diff)
	}
}

func TestDecodeNoKeys(t *testing.T) {
	var record tags.Record
	tags.Decode([]byte("nothing to see here"), &record)
	require.Equal(t, tags.Record{}, record)

	tags.Decode(nil, &record)
	require.Equal(t, tags.Record{}, record)
}

func TestDecodeTruncated(t *testing.T) {
	var record tags.Record
	tags.Decode([]byte("height\x00\x10xCenter\x00\x01"), &record)
	require.Equal(t, tags.Record{Height: 16}, record)

	record = tags.Record{}
	buffer := binary.BigEndian.AppendUint32([]byte("colors"), 10)
	buffer = append(buffer, 1, 2, 3)
	tags.Decode(buffer, &record)
	require.Nil(t, record.Colors)
}

func TestDecodeArbitraryOrder(t *testing.T) {
	var buffer []byte
	buffer = append(buffer, "zCenter"...)
	buffer = binary.BigEndian.AppendUint32(buffer, uint32(0xfffffff0))
	buffer = append(buffer, "colors"...)
	buffer = binary.BigEndian.AppendUint32(buffer, 2)
	buffer = append(buffer, 9, 10)
	buffer = append(buffer, "scale\x01dimension\xff"...)

	var record tags.Record
	tags.Decode(buffer, &record)

	want := tags.Record{Scale: 1, Dimension: -1, CenterZ: -16, Colors: []byte{9, 10}}
	if diff := cmp.Diff(want, record); diff != "" {
		t.Errorf("Decode mismatch (-want+got):\n%v", diff)
	}
}

func TestDecodeLookalikeBeforeColors(t *testing.T) {
	// Bytes preceding the payload are still scanned for keys.
	var record tags.Record
	tags.Decode([]byte("\x07\x00\x05scale\x03"), &record)
	require.Equal(t, uint8(3), record.Scale)
}
