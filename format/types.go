package format

import (
	"fmt"
	"strings"
)

type (
	ScaleKind       uint8
	EncodingType    uint8
	CompressionType uint8
)

const (
	ScaleLinear  ScaleKind = 0x1 // ScaleLinear represents a numeric continuous axis.
	ScaleOrdinal ScaleKind = 0x2 // ScaleOrdinal represents a categorical axis.
	ScaleTime    ScaleKind = 0x3 // ScaleTime represents a temporal continuous axis.

	TypeRaw       EncodingType = 0x1 // TypeRaw represents raw little/big endian float64 data.
	TypeDelta     EncodingType = 0x2 // TypeDelta represents delta-of-delta varint encoding.
	TypeVarString EncodingType = 0x3 // TypeVarString represents length-prefixed strings.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

// ParseScaleKind maps a column type name to its scale kind.
//
// "linear" and "ordinal" map to their kinds, every other name (for example
// "time", "timestamp" or an empty string) maps to ScaleTime. Matching is
// case-insensitive.
func ParseScaleKind(name string) ScaleKind {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "linear":
		return ScaleLinear
	case "ordinal":
		return ScaleOrdinal
	default:
		return ScaleTime
	}
}

// Continuous reports whether the scale is numeric or temporal.
func (s ScaleKind) Continuous() bool {
	return s == ScaleLinear || s == ScaleTime
}

func (s ScaleKind) String() string {
	switch s {
	case ScaleLinear:
		return "linear"
	case ScaleOrdinal:
		return "ordinal"
	case ScaleTime:
		return "time"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s ScaleKind) MarshalText() ([]byte, error) {
	if s < ScaleLinear || s > ScaleTime {
		return nil, fmt.Errorf("invalid scale kind: %d", s)
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseScaleKind rules.
func (s *ScaleKind) UnmarshalText(text []byte) error {
	*s = ParseScaleKind(string(text))
	return nil
}

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeDelta:
		return "Delta"
	case TypeVarString:
		return "VarString"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompressionType parses a compression name such as "zstd" or "none".
func ParseCompressionType(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression type: %q", name)
	}
}
