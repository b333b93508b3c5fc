package frame

import (
	"github.com/arloliu/vizstream/endian"
	"github.com/arloliu/vizstream/errs"
	"github.com/arloliu/vizstream/format"
)

// Flag is the packed leading word of a frame header.
type Flag struct {
	// Options is a packed field for various options.
	// Bit 0 is the collision flag: two series names share a hash, so
	// decoders must not verify names against IDs.
	// Bit 1 is endianness flag, 0 means little-endian, 1 means big-endian.
	// Bit 2 is set when the header carries an x domain.
	// Bit 3 is reserved, must be set to 0.
	// Bit 4-15 are the magic number, 0xEC10 for frame format v1.
	Options uint16

	// Scale is the x axis scale kind of the snapshot.
	Scale uint8
	// Compression is the compression applied to the x and y payloads.
	Compression uint8
}

// NewFlag creates a little-endian v1 flag for a time axis without compression.
func NewFlag() Flag {
	return Flag{
		Options:     MagicFrameV1Opt,
		Scale:       uint8(format.ScaleTime),
		Compression: uint8(format.CompressionNone),
	}
}

// HasCollision reports whether the frame holds colliding series IDs.
func (f Flag) HasCollision() bool {
	return (f.Options & CollisionMask) != 0
}

// SetCollision sets or clears the collision bit.
func (f *Flag) SetCollision(collision bool) {
	if collision {
		f.Options |= CollisionMask
	} else {
		f.Options &^= CollisionMask
	}
}

// IsBigEndian returns whether the frame is big-endian.
func (f Flag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithBigEndian sets big-endian byte order.
func (f *Flag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// WithLittleEndian sets little-endian byte order.
func (f *Flag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// HasDomain reports whether the header domain fields are meaningful.
func (f Flag) HasDomain() bool {
	return (f.Options & DomainMask) != 0
}

// SetHasDomain sets or clears the domain bit.
func (f *Flag) SetHasDomain(has bool) {
	if has {
		f.Options |= DomainMask
	} else {
		f.Options &^= DomainMask
	}
}

// GetMagicNumber returns the magic number from the Options field.
func (f Flag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// ScaleKind returns the x axis scale.
func (f Flag) ScaleKind() format.ScaleKind {
	return format.ScaleKind(f.Scale)
}

// CompressionType returns the payload compression.
func (f Flag) CompressionType() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// Validate checks the magic number, the reserved bit and the enum fields.
func (f Flag) Validate() error {
	if f.GetMagicNumber() != MagicFrameV1Opt {
		return errs.ErrInvalidMagicNumber
	}
	if f.Options&ReservedMask != 0 {
		return errs.ErrInvalidFrame
	}

	switch f.ScaleKind() {
	case format.ScaleLinear, format.ScaleOrdinal, format.ScaleTime:
	default:
		return errs.ErrInvalidFrame
	}

	switch f.CompressionType() {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return errs.ErrInvalidFrame
	}

	return nil
}

// GetEndianEngine returns the endian engine matching the flag.
func (f Flag) GetEndianEngine() endian.EndianEngine {
	return endian.ForFrame(f.IsBigEndian())
}
