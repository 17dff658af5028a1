package snapshot

import (
	"errors"
	"fmt"
)

const (
	// MagicNumber identifies pattern-snapshot files (ASCII: "PSN0").
	MagicNumber = 0x50534E30
	// Version is the current file format version (v1.0.0).
	Version = 0x00010000
)

// Compression identifies the payload compression algorithm.
type Compression uint8

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast, modest ratio).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD block compression (better ratio).
	CompressionZSTD Compression = 2
)

func (c Compression) valid() bool {
	switch c {
	case CompressionNone, CompressionLZ4, CompressionZSTD:
		return true
	default:
		return false
	}
}

var (
	// ErrInvalidMagic is returned when a file does not start with the
	// snapshot magic number.
	ErrInvalidMagic = errors.New("invalid magic number")
	// ErrInvalidVersion is returned for unsupported format versions.
	ErrInvalidVersion = errors.New("unsupported version")
	// ErrInvalidCompression is returned for unknown compression types.
	ErrInvalidCompression = errors.New("invalid compression type")
)

// ErrUnknownCodec indicates a snapshot whose header names a codec this
// build does not provide.
type ErrUnknownCodec struct {
	Name string
}

func (e *ErrUnknownCodec) Error() string {
	return fmt.Sprintf("unknown codec: %q", e.Name)
}
