// Package compress provides the payload codecs of render frames.
//
// A frame stores the x and y values of a snapshot as two encoded payloads
// (see package encoding). Compression is a second, optional stage applied
// to each payload:
//
//   - None: payload stored as encoded
//   - Zstd: best ratio; pure Go by default, libzstd via cgo with -tags gozstd
//   - S2: fast, moderate ratio
//   - LZ4: fastest decompression
//
// The algorithm is recorded in the frame header, so decoders look up the
// matching codec:
//
//	codec, err := compress.GetCodec(header.Compression)
//	if err != nil {
//	    return err
//	}
//	payload, err := codec.Decompress(raw)
//
// Built-in codecs are stateless (pooled internals) and safe for concurrent use.
//
// Time-axis payloads are delta encoded and already small; ordinal x payloads
// and y payloads of slowly changing metrics compress well with S2 or Zstd.
package compress
