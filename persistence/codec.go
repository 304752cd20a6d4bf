// Package persistence implements the exclusion index's snapshot
// codec and named-file store: the byte-stream serialize/deserialize
// contract from spec.md §4.6 plus the directory-backed snapshot
// bookkeeping spec.md §6 calls "Snapshot files".
package persistence

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/pgarrett-scripps/exclusionms/exclusion"
	"github.com/pgarrett-scripps/exclusionms/exclusion/exerr"
)

// Binary format constants. The magic and header shape mirror the
// teacher's matrix codec; the payload is a slice of exclusion.Interval
// rather than a neuron matrix.
const (
	MagicBytes    = "XMSX"
	FormatVersion = 1

	headerSize = 4 + 2 + 2 + 8 + 4 // magic + version + flags + length + checksum
)

const (
	// FlagCompressed marks the payload as gzip-compressed.
	FlagCompressed uint16 = 1 << 0
)

type header struct {
	Magic    [4]byte
	Version  uint16
	Flags    uint16
	Length   uint64
	Checksum uint32
}

// Codec encodes and decodes a full exclusion index as a self-describing
// byte stream. It holds no index state itself.
type Codec struct {
	compress  bool
	compLevel int
}

// NewCodec returns a Codec; compress gzips the msgpack payload whenever
// doing so actually shrinks it.
func NewCodec(compress bool) *Codec {
	return &Codec{compress: compress, compLevel: gzip.BestSpeed}
}

// Encode serializes intervals to the versioned binary format described
// in spec.md §4.6. Handles round-trip verbatim (P5).
func (c *Codec) Encode(intervals []exclusion.Interval) ([]byte, error) {
	data, err := msgpack.Marshal(intervals)
	if err != nil {
		return nil, err
	}

	var flags uint16
	if c.compress {
		compressed, err := c.compressData(data)
		if err != nil {
			return nil, err
		}
		if len(compressed) < len(data) {
			data = compressed
			flags |= FlagCompressed
		}
	}

	h := header{
		Version:  FormatVersion,
		Flags:    flags,
		Length:   uint64(len(data)),
		Checksum: crc32.ChecksumIEEE(data),
	}
	copy(h.Magic[:], MagicBytes)

	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	if _, err := buf.Write(data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reverses Encode, returning exerr.ErrCorruptSnapshot for any
// structural problem: truncated input, bad magic, an unsupported
// version, or a checksum mismatch.
func (c *Codec) Decode(raw []byte) ([]exclusion.Interval, error) {
	if len(raw) < headerSize {
		return nil, exerr.ErrCorruptSnapshot
	}

	r := bytes.NewReader(raw)
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, exerr.ErrCorruptSnapshot
	}
	if string(h.Magic[:]) != MagicBytes {
		return nil, exerr.ErrCorruptSnapshot
	}
	if h.Version != FormatVersion {
		return nil, exerr.ErrCorruptSnapshot
	}

	data := make([]byte, h.Length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, exerr.ErrCorruptSnapshot
	}
	if crc32.ChecksumIEEE(data) != h.Checksum {
		return nil, exerr.ErrCorruptSnapshot
	}

	if h.Flags&FlagCompressed != 0 {
		decompressed, err := c.decompressData(data)
		if err != nil {
			return nil, exerr.ErrCorruptSnapshot
		}
		data = decompressed
	}

	var intervals []exclusion.Interval
	if err := msgpack.Unmarshal(data, &intervals); err != nil {
		return nil, exerr.ErrCorruptSnapshot
	}
	return intervals, nil
}

func (c *Codec) compressData(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, c.compLevel)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *Codec) decompressData(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}
