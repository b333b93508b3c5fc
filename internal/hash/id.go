package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// SeriesID computes the identifier of a series buffer.
//
// The chart index is folded into the digest so that equally named series of
// different charts receive different identifiers.
func SeriesID(chart int, name string) uint64 {
	var prefix [3]byte
	prefix[0] = byte(chart >> 8) //nolint:gosec
	prefix[1] = byte(chart)      //nolint:gosec
	prefix[2] = 0

	d := xxhash.New()
	_, _ = d.Write(prefix[:])
	_, _ = d.WriteString(name)

	return d.Sum64()
}
