package pix

import "errors"

// Errors reported at construction time. Per-channel and per-pixel access is
// never an error: out-of-range reads return a defined default and
// out-of-range writes are ignored.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pix: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("pix: invalid format")

	// ErrInvalidChannels is returned when a channel count is outside 1-4.
	ErrInvalidChannels = errors.New("pix: channel count must be between 1 and 4")

	// ErrInvalidStride is returned when a row stride is less than the
	// minimum the format requires.
	ErrInvalidStride = errors.New("pix: stride too small for width")

	// ErrDataTooSmall is returned when a provided buffer is smaller than
	// the dimensions require.
	ErrDataTooSmall = errors.New("pix: data buffer too small")

	// ErrInvalidPaletteSize is returned when a palette color count is
	// negative.
	ErrInvalidPaletteSize = errors.New("pix: invalid palette size")

	// ErrPaletteRequired is returned when a paletted container is created
	// without a palette.
	ErrPaletteRequired = errors.New("pix: palette required")

	// ErrUnsupportedFormat is returned by the codec wrappers for an
	// unknown encoding name.
	ErrUnsupportedFormat = errors.New("pix: unsupported format")
)
