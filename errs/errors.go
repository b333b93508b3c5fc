// Package errs defines the sentinel errors shared by vizstream packages.
//
// Configuration problems detected while ingesting a batch are reported as a
// *ConfigError wrapping one of the configuration sentinels below, so callers
// can branch with errors.Is and still recover the failing component with
// errors.As:
//
//	var cfgErr *errs.ConfigError
//	if errors.As(err, &cfgErr) && errors.Is(err, errs.ErrAxisMismatch) {
//	    // the x field changed kind after the axis locked
//	}
package errs

import "errors"

// Configuration errors.
var (
	ErrFieldNotFound      = errors.New("field not found in metadata")
	ErrColorFieldNotFound = errors.New("color field not found in metadata")
	ErrAxisMismatch       = errors.New("x axis type does not match locked scale")
	ErrUnsupportedChart   = errors.New("unsupported chart type")
	ErrUnsupportedMap     = errors.New("unsupported map type")
	ErrInvalidColumnStyle = errors.New("invalid column style")
	ErrInvalidPalette     = errors.New("palette must contain at least one color")
	ErrInvalidMetadata    = errors.New("metadata names and types length mismatch")
	ErrInvalidValue       = errors.New("value is not valid for the axis scale")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// Frame errors.
var (
	ErrInvalidFrame          = errors.New("invalid render frame")
	ErrInvalidHeaderSize     = errors.New("invalid header size")
	ErrInvalidMagicNumber    = errors.New("invalid magic number")
	ErrInvalidIndexEntrySize = errors.New("invalid index entry size")
	ErrHashMismatch          = errors.New("series name does not match its hash")
	ErrHashCollision         = errors.New("series hash collision")
	ErrInvalidSeriesName     = errors.New("invalid series name")
	ErrSeriesAlreadyTracked  = errors.New("series already tracked")
)

// Render errors.
var (
	ErrNoData        = errors.New("no visible data to render")
	ErrUnknownFormat = errors.New("unknown image format")
)
