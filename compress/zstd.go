package compress

// ZstdCompressor compresses payloads with Zstandard at the default level.
//
// Zstd gives the best ratio of the built-in codecs and suits frames shipped
// over slow links. The pure Go klauspost/compress implementation is used
// unless the module is built with cgo and the gozstd tag.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
