// Package decode turns raw input bytes into plain ASCII text,
// transparently inflating gzip and zstd payloads.
package decode

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	// ErrNotActuallyCompressed means the filename claims a compressed
	// format but the payload's magic bytes disagree. Kept distinct from
	// a corrupt-archive error: the file is mislabeled, not damaged.
	ErrNotActuallyCompressed = errors.New("extension claims compression but content is not compressed")

	// ErrInvalidEncoding means the content contains non-ASCII bytes.
	// Sequence files are conventionally pure ASCII; anything wider is
	// treated as corruption.
	ErrInvalidEncoding = errors.New("content is not ASCII text")
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Decode returns the plain-text content of raw. name is the originating
// filename; a .gz or .zst extension requires the matching magic bytes and
// triggers full decompression. Inputs without a compression extension
// (e.g. stdin) are still sniffed by magic bytes, so a gzipped stream
// works without being named. Decompression is all-or-nothing; no partial
// output is ever returned.
func Decode(name string, raw []byte) ([]byte, error) {
	lower := strings.ToLower(name)

	var (
		text []byte
		err  error
	)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		if !bytes.HasPrefix(raw, gzipMagic) {
			return nil, ErrNotActuallyCompressed
		}
		text, err = gunzip(raw)
	case strings.HasSuffix(lower, ".zst"):
		if !bytes.HasPrefix(raw, zstdMagic) {
			return nil, ErrNotActuallyCompressed
		}
		text, err = unzstd(raw)
	case bytes.HasPrefix(raw, gzipMagic):
		text, err = gunzip(raw)
	case bytes.HasPrefix(raw, zstdMagic):
		text, err = unzstd(raw)
	default:
		text = raw
	}
	if err != nil {
		return nil, err
	}

	if !isASCII(text) {
		return nil, ErrInvalidEncoding
	}
	return text, nil
}

func gunzip(raw []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %w", err)
	}
	defer gz.Close() //nolint:errcheck // read-only stream

	text, err := io.ReadAll(gz)
	if err != nil {
		return nil, fmt.Errorf("decompressing gzip stream: %w", err)
	}
	return text, nil
}

func unzstd(raw []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	defer dec.Close()

	text, err := dec.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing zstd stream: %w", err)
	}
	return text, nil
}

func isASCII(text []byte) bool {
	for _, b := range text {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
