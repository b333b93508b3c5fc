package compress

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4.Compressor keeps a hash table between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

const (
	lz4BlockStored     byte = 0x0
	lz4BlockCompressed byte = 0x1

	// lz4MaxSize bounds the declared payload size of corrupted input.
	lz4MaxSize = 128 * 1024 * 1024
)

var errLZ4Corrupted = errors.New("lz4: corrupted payload")

// LZ4Compressor compresses payloads as a single LZ4 block.
//
// The block is prefixed with the uvarint original size and a mode byte, so
// decompression allocates exactly once. Incompressible input is stored as is.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress implements Compressor.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, binary.MaxVarintLen64+1+lz4.CompressBlockBound(len(data)))
	hdr := binary.PutUvarint(dst, uint64(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[hdr+1:])
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		dst[hdr] = lz4BlockStored
		n = copy(dst[hdr+1:], data)
	} else {
		dst[hdr] = lz4BlockCompressed
	}

	return dst[:hdr+1+n], nil
}

// Decompress implements Decompressor.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, hdr := binary.Uvarint(data)
	if hdr <= 0 || hdr >= len(data) || size > lz4MaxSize {
		return nil, errLZ4Corrupted
	}
	mode, body := data[hdr], data[hdr+1:]

	switch mode {
	case lz4BlockStored:
		if uint64(len(body)) != size {
			return nil, errLZ4Corrupted
		}

		return append([]byte(nil), body...), nil
	case lz4BlockCompressed:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("lz4 decompression failed: %w", err)
		}
		if uint64(n) != size {
			return nil, errLZ4Corrupted
		}

		return out, nil
	default:
		return nil, errLZ4Corrupted
	}
}
