// Package encoding implements the column payload encodings of render frames.
//
// # Encodings
//
// Three encodings cover the x and y columns a frame carries:
//
//   - DeltaEncoder: delta-of-delta + zigzag + varint for int64 values. Used
//     for time axes, where points are epoch milliseconds at near-regular
//     intervals and most values shrink to a single byte.
//   - FloatRawEncoder: fixed 8-byte float64 in the frame byte order. Used
//     for linear x values and all y values; NaN marks a non-numeric y.
//   - VarStringEncoder: uvarint length prefix + UTF-8 bytes. Used for
//     ordinal x values and for series names and colors.
//
// Each encoder has a matching decoder exposing an iter.Seq based All and a
// bounds-checked At:
//
//	enc := encoding.NewDeltaEncoder()
//	defer enc.Finish()
//	enc.WriteSlice([]int64{1000, 2000, 3000})
//
//	dec := encoding.NewDeltaDecoder()
//	for ts := range dec.All(enc.Bytes(), enc.Len()) {
//	    fmt.Println(ts)
//	}
//
// # Runs
//
// A frame encodes the x values of all series into one payload. Calling Reset
// between series starts a new delta run so every series decodes on its own
// once its byte range is known.
//
// # Buffers
//
// Encoders draw their buffers from internal/pool and return them in Finish.
// Bytes are only valid until Finish; copy them (or compress them) first.
package encoding
