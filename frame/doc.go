// Package frame serializes snapshots into compact binary render frames.
//
// A frame carries everything an out-of-process renderer needs to draw one
// snapshot: every series with its assigned color, its x and y values and the
// x domain. The layout is:
//
//	+--------------------+  0
//	| Header (48 bytes)  |  magic, flags, scale, compression, generation,
//	|                    |  series count, section offsets, x domain
//	+--------------------+  48
//	| Index (24 bytes    |  series ID (xxHash64 of chart and name), chart,
//	|  per series)       |  point count, x and y byte lengths
//	+--------------------+  NamesPayloadOffset
//	| Names payload      |  name, color pairs as length-prefixed strings
//	+--------------------+  XPayloadOffset
//	| X payload          |  delta varints (time), raw float64 (linear) or
//	|                    |  length-prefixed strings (ordinal), compressed
//	+--------------------+  YPayloadOffset
//	| Y payload          |  raw float64, NaN for non-numeric, compressed
//	+--------------------+  end of frame
//
// Encoding and decoding:
//
//	enc, err := frame.NewEncoder(frame.WithCompression(format.CompressionS2))
//	data, err := enc.Encode(engine.Snapshot())
//
//	f, err := frame.Decode(data)
//	for _, s := range f.Series {
//	    fmt.Println(s.Name, s.Color, s.Len())
//	}
//
// When two series names hash to the same ID the encoder sets the collision
// bit and the decoder skips name verification; lookups always compare names.
// The codec performs no I/O.
package frame
