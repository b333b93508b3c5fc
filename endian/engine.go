// Package endian selects the byte order of render frames.
//
// Frames are little-endian unless the encoder is told otherwise; the choice
// is recorded in the frame header so decoders pick the matching engine:
//
//	engine := endian.ForFrame(header.BigEndian())
//	id := engine.Uint64(entry[0:8])
//
// All engines are the stateless binary.LittleEndian and binary.BigEndian
// values and are safe for concurrent use.
package endian

import (
	"encoding/binary"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// so codecs can both put and append fixed-size values.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForFrame returns the engine matching a frame's endianness flag.
func ForFrame(bigEndian bool) EndianEngine {
	if bigEndian {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsBigEndian reports whether engine writes the most significant byte first.
func IsBigEndian(engine EndianEngine) bool {
	var probe [2]byte
	engine.PutUint16(probe[:], 0x0102)

	return probe[0] == 0x01
}

// IsNativeLittleEndian reports whether the host is little-endian.
func IsNativeLittleEndian() bool {
	return !IsBigEndian(binary.NativeEndian)
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return IsBigEndian(engine) == IsBigEndian(binary.NativeEndian)
}
