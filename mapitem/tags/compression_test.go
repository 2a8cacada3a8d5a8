package tags_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/eak1mov/go-mapcombine/mapitem/tags"
	"github.com/google/go-cmp/cmp"
)

func TestCompression(t *testing.T) {
	dataCases := []struct {
		Name string
		Data []byte
	}{
		{Name: "Repeat", Data: bytes.Repeat([]byte{42}, 100500)},
		{Name: "Record", Data: tags.Encode(&tags.Record{Width: 1, Height: 1, Colors: []byte{5}})},
	}
	compressionCases := []struct {
		Name        string
		Compression tags.Compression
	}{
		{Name: "None", Compression: tags.CompressionNone},
		{Name: "Gzip", Compression: tags.CompressionGzip},
	}
	for _, dc := range dataCases {
		for _, cc := range compressionCases {
			t.Run(dc.Name+cc.Name, func(t *testing.T) {
				compressed, err := tags.Compress(dc.Data, cc.Compression)
				if err != nil {
					t.Fatalf("Compress failed: %v", err)
				}
				decompressed, err := tags.Decompress(compressed, cc.Compression)
				if err != nil {
					t.Fatalf("Decompress failed: %v", err)
				}
				if !cmp.Equal(dc.Data, decompressed) {
					t.Errorf("Decompress(Compress(input)) != input")
				}
			})
		}
	}
}

func TestDecompressErrors(t *testing.T) {
	if _, err := tags.Decompress([]byte("not gzip"), tags.CompressionGzip); err == nil {
		t.Errorf("Decompress(garbage) succeeded")
	}
	if _, err := tags.Decompress(nil, tags.Compression(9)); !errors.Is(err, tags.ErrUnsupportedCompression) {
		t.Errorf("Decompress(unknown) = %v, want = %v", err, tags.ErrUnsupportedCompression)
	}
}
