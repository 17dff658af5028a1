// Package snapshot persists a set of sub-sampled patterns together with the
// provenance of the feature-reduction run that produced them.
//
// Files are self-describing: the header records format version, payload
// codec and compression, and a CRC32 checksum guards the payload against
// storage corruption.
package snapshot

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/subsample/codec"
	"github.com/hupe1980/subsample/pattern"
)

// Manifest is the provenance of a feature-reduction run, baked into the
// snapshot artifact.
type Manifest struct {
	ID        uuid.UUID `json:"id"`
	Dataset   string    `json:"dataset"`
	CreatedAt time.Time `json:"created_at"`
	Fraction  float64   `json:"fraction"`
	Seed      *int64    `json:"seed,omitempty"`
	SourceDim int       `json:"source_dim"`
	Indexes   []int     `json:"indexes"`
}

// NewManifest creates a Manifest with a fresh ID and timestamp. indexes are
// the ascending kept columns; seed may be nil for unseeded runs.
func NewManifest(dataset string, fraction float64, seed *int64, sourceDim int, indexes []int) Manifest {
	return Manifest{
		ID:        uuid.New(),
		Dataset:   dataset,
		CreatedAt: time.Now().UTC(),
		Fraction:  fraction,
		Seed:      seed,
		SourceDim: sourceDim,
		Indexes:   indexes,
	}
}

// Snapshot is a set of sub-sampled patterns plus its manifest.
type Snapshot struct {
	Manifest Manifest           `json:"manifest"`
	Patterns []*pattern.Pattern `json:"patterns"`
}

type writeOptions struct {
	codec       codec.Codec
	compression Compression
}

// WriteOption configures snapshot encoding.
type WriteOption func(*writeOptions)

// WithCodec configures the payload codec. If nil is passed, codec.Default
// is used.
func WithCodec(c codec.Codec) WriteOption {
	return func(o *writeOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures the payload compression.
func WithCompression(c Compression) WriteOption {
	return func(o *writeOptions) {
		o.compression = c
	}
}

func applyWriteOptions(optFns []WriteOption) writeOptions {
	o := writeOptions{
		codec:       codec.Default,
		compression: CompressionZSTD,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

// Write encodes the snapshot to w.
//
// Layout (little endian):
//
//	[Magic u32][Version u32][Compression u8][CodecNameLen u8][CodecName]
//	[PayloadLen u64][Payload][CRC32 u32]
//
// The CRC covers the (compressed) payload bytes.
func Write(w io.Writer, snap *Snapshot, optFns ...WriteOption) error {
	o := applyWriteOptions(optFns)

	if !o.compression.valid() {
		return ErrInvalidCompression
	}

	encoded, err := o.codec.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	payload, err := compress(encoded, o.compression)
	if err != nil {
		return fmt.Errorf("compress snapshot: %w", err)
	}

	codecName := o.codec.Name()
	if len(codecName) > 255 {
		return fmt.Errorf("codec name too long: %q", codecName)
	}

	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, uint32(MagicNumber)); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(Version)); err != nil {
		return err
	}
	if err := bw.WriteByte(byte(o.compression)); err != nil {
		return err
	}
	if err := bw.WriteByte(byte(len(codecName))); err != nil {
		return err
	}
	if _, err := bw.WriteString(codecName); err != nil {
		return err
	}
	if err := binary.Write(bw, binary.LittleEndian, uint64(len(payload))); err != nil {
		return err
	}

	cw := NewChecksumWriter(bw)
	if _, err := cw.Write(payload); err != nil {
		return err
	}

	if err := binary.Write(bw, binary.LittleEndian, cw.Sum()); err != nil {
		return err
	}

	return bw.Flush()
}

// Read decodes a snapshot from r, verifying magic, version, codec and
// checksum.
func Read(r io.Reader) (*Snapshot, error) {
	br := bufio.NewReader(r)

	var magic, version uint32
	if err := binary.Read(br, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != MagicNumber {
		return nil, ErrInvalidMagic
	}
	if err := binary.Read(br, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != Version {
		return nil, ErrInvalidVersion
	}

	compressionByte, err := br.ReadByte()
	if err != nil {
		return nil, err
	}
	compression := Compression(compressionByte)
	if !compression.valid() {
		return nil, ErrInvalidCompression
	}

	nameLen, err := br.ReadByte()
	if err != nil {
		return nil, err
	}
	nameBytes := make([]byte, nameLen)
	if _, err := io.ReadFull(br, nameBytes); err != nil {
		return nil, err
	}

	c, ok := codec.ByName(string(nameBytes))
	if !ok {
		return nil, &ErrUnknownCodec{Name: string(nameBytes)}
	}

	var payloadLen uint64
	if err := binary.Read(br, binary.LittleEndian, &payloadLen); err != nil {
		return nil, err
	}

	cr := NewChecksumReader(br)
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(cr, payload); err != nil {
		return nil, err
	}

	var expected uint32
	if err := binary.Read(br, binary.LittleEndian, &expected); err != nil {
		return nil, err
	}
	if err := cr.Verify(expected); err != nil {
		return nil, err
	}

	encoded, err := decompress(payload, compression)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}

	var snap Snapshot
	if err := c.Unmarshal(encoded, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	return &snap, nil
}

// Save writes the snapshot to path atomically (temp file + rename).
func Save(path string, snap *Snapshot, optFns ...WriteOption) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := Write(tmp, snap, optFns...); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}

// Load reads a snapshot from path.
func Load(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}
