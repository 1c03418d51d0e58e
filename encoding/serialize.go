package encoding

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the algorithm applied to a serialized set body.
type Compression uint8

const (
	// None stores the body as is.
	None Compression = 0
	// LZ4 uses LZ4 block compression (fast, good for hot posting lists).
	LZ4 Compression = 1
	// ZSTD uses ZSTD (better ratio, good for cold posting lists).
	ZSTD Compression = 2
)

// String returns the string representation of a Compression.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return "unknown"
	}
}

// Serialized layout (little endian):
//
//	magic "SIDX" | compression u8 | body length u32 | stored length u32 | stored body
//
// The uncompressed body is:
//
//	chunk count u32
//	per chunk: id u16 | kind u8 | blocks u16 | card u32 | payload length u32
//	payloads in chunk order (sparse: raw bytes, dense: 1024 u64 words)
const (
	magic           = "SIDX"
	envelopeSize    = 4 + 1 + 4 + 4
	chunkRecordSize = 2 + 1 + 2 + 4 + 4
	maxBodySize     = 4 + (1<<16)*(chunkRecordSize+ChunkBitmapWords*8)

	lz4MaxRatio  = 255
	zstdPrealloc = 16
)

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(maxBodySize))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// MarshalBinary implements encoding.BinaryMarshaler without compression.
func (s *Set) MarshalBinary() ([]byte, error) {
	return Marshal(s, None)
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Set) UnmarshalBinary(data []byte) error {
	decoded, err := Unmarshal(data)
	if err != nil {
		return err
	}
	*s = *decoded
	return nil
}

// Marshal serializes a set, compressing the body with c.
func Marshal(s *Set, c Compression) ([]byte, error) {
	body := s.appendBody(nil)

	var stored []byte
	switch c {
	case None:
		stored = body
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(body)))
		n, err := lz4.CompressBlock(body, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if n == 0 {
			// Incompressible
			c, stored = None, body
		} else {
			stored = buf[:n]
		}
	case ZSTD:
		enc := getZstdEncoder()
		stored = enc.EncodeAll(body, nil)
		putZstdEncoder(enc)
	default:
		return nil, fmt.Errorf("unsupported compression: %d", c)
	}

	out := make([]byte, envelopeSize, envelopeSize+len(stored))
	copy(out, magic)
	out[4] = byte(c)
	binary.LittleEndian.PutUint32(out[5:], uint32(len(body)))
	binary.LittleEndian.PutUint32(out[9:], uint32(len(stored)))
	return append(out, stored...), nil
}

func (s *Set) appendBody(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(s.chunks)))
	for i := range s.chunks {
		c := &s.chunks[i]
		dst = binary.LittleEndian.AppendUint16(dst, c.id)
		dst = append(dst, byte(c.kind))
		dst = binary.LittleEndian.AppendUint16(dst, c.blocks)
		dst = binary.LittleEndian.AppendUint32(dst, c.card)
		dst = binary.LittleEndian.AppendUint32(dst, payloadLength(c))
	}
	for i := range s.chunks {
		c := &s.chunks[i]
		switch c.kind {
		case Sparse:
			dst = append(dst, s.sparsePayload(c)...)
		case Dense:
			for _, w := range s.denseWords(c) {
				dst = binary.LittleEndian.AppendUint64(dst, w)
			}
		}
	}
	return dst
}

func payloadLength(c *chunkHeader) uint32 {
	switch c.kind {
	case Sparse:
		return c.length
	case Dense:
		return ChunkBitmapWords * 8
	default:
		return 0
	}
}

// Unmarshal decodes and validates a set produced by Marshal. Every failure
// wraps ErrCorrupt.
func Unmarshal(data []byte) (*Set, error) {
	if len(data) < envelopeSize || string(data[:4]) != magic {
		return nil, fmt.Errorf("%w: bad envelope", ErrCorrupt)
	}
	c := Compression(data[4])
	bodyLen := binary.LittleEndian.Uint32(data[5:])
	storedLen := binary.LittleEndian.Uint32(data[9:])
	if bodyLen > maxBodySize {
		return nil, fmt.Errorf("%w: body length %d exceeds limit", ErrCorrupt, bodyLen)
	}
	if uint64(len(data)) < envelopeSize+uint64(storedLen) {
		return nil, fmt.Errorf("%w: truncated body", ErrCorrupt)
	}
	stored := data[envelopeSize : envelopeSize+storedLen]

	body, err := decompress(stored, c, bodyLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	s, err := parseBody(body)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func decompress(stored []byte, c Compression, bodyLen uint32) ([]byte, error) {
	switch c {
	case None:
		if uint32(len(stored)) != bodyLen {
			return nil, errors.New("body length mismatch")
		}
		return stored, nil
	case LZ4:
		// An LZ4 block expands at most 255x.
		if uint64(bodyLen) > lz4MaxRatio*uint64(len(stored)) {
			return nil, errors.New("body length exceeds lz4 expansion bound")
		}
		body := make([]byte, bodyLen)
		n, err := lz4.UncompressBlock(stored, body)
		if err != nil {
			return nil, err
		}
		if uint32(n) != bodyLen {
			return nil, errors.New("decompressed size mismatch")
		}
		return body, nil
	case ZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		body, err := dec.DecodeAll(stored, make([]byte, 0, min(uint64(bodyLen), zstdPrealloc*uint64(len(stored)))))
		if err != nil {
			return nil, err
		}
		if uint32(len(body)) != bodyLen {
			return nil, errors.New("decompressed size mismatch")
		}
		return body, nil
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}
}

func parseBody(body []byte) (*Set, error) {
	if len(body) < 4 {
		return nil, fmt.Errorf("%w: missing chunk count", ErrCorrupt)
	}
	n := int(binary.LittleEndian.Uint32(body))
	if n > 1<<16 || 4+n*chunkRecordSize > len(body) {
		return nil, fmt.Errorf("%w: chunk directory truncated", ErrCorrupt)
	}

	s := &Set{chunks: make([]chunkHeader, n)}
	lengths := make([]uint32, n)
	var sparseBytes, denseChunks int
	payloadRoom := len(body) - 4 - n*chunkRecordSize
	off := 4
	for i := range s.chunks {
		rec := body[off : off+chunkRecordSize]
		c := &s.chunks[i]
		c.id = binary.LittleEndian.Uint16(rec)
		c.kind = Kind(rec[2])
		c.blocks = binary.LittleEndian.Uint16(rec[3:])
		c.card = binary.LittleEndian.Uint32(rec[5:])
		lengths[i] = binary.LittleEndian.Uint32(rec[9:])
		off += chunkRecordSize

		want := payloadLength(&chunkHeader{kind: c.kind, length: lengths[i]})
		if c.kind > Full || lengths[i] != want {
			return nil, &ErrCorruptChunk{Index: i, ID: c.id, Reason: "bad payload length"}
		}
		// Payloads must fit in what is left of the body before anything
		// is allocated from their lengths.
		if uint64(want) > uint64(payloadRoom) {
			return nil, &ErrCorruptChunk{Index: i, ID: c.id, Reason: "payload exceeds body"}
		}
		payloadRoom -= int(want)
		switch c.kind {
		case Sparse:
			sparseBytes += int(lengths[i])
		case Dense:
			denseChunks++
		}
		s.card += uint64(c.card)
	}

	s.data = make([]byte, 0, sparseBytes)
	s.words = make([]uint64, 0, denseChunks*ChunkBitmapWords)
	for i := range s.chunks {
		c := &s.chunks[i]
		size := int(lengths[i])
		if off+size > len(body) {
			return nil, &ErrCorruptChunk{Index: i, ID: c.id, Reason: "payload truncated"}
		}
		payload := body[off : off+size]
		off += size

		switch c.kind {
		case Sparse:
			c.offset = uint32(len(s.data))
			c.length = uint32(size)
			s.data = append(s.data, payload...)
		case Dense:
			c.offset = uint32(len(s.words))
			for w := 0; w < ChunkBitmapWords; w++ {
				s.words = append(s.words, binary.LittleEndian.Uint64(payload[w*8:]))
			}
		}
	}
	if off != len(body) {
		return nil, fmt.Errorf("%w: trailing bytes", ErrCorrupt)
	}
	return s, nil
}
