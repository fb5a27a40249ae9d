package pix

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/pix/float16"
)

// Format represents the numeric storage kind of an image channel.
type Format uint8

const (
	// FormatUint1 is 1-bit unsigned, 8 channel values packed per byte.
	FormatUint1 Format = iota

	// FormatUint2 is 2-bit unsigned, 4 channel values packed per byte.
	FormatUint2

	// FormatUint4 is 4-bit unsigned, 2 channel values packed per byte.
	FormatUint4

	// FormatUint8 is 8-bit unsigned, the most common storage format.
	FormatUint8

	// FormatUint16 is 16-bit unsigned.
	FormatUint16

	// FormatUint32 is 32-bit unsigned.
	FormatUint32

	// FormatInt8 is 8-bit signed.
	FormatInt8

	// FormatInt16 is 16-bit signed.
	FormatInt16

	// FormatInt32 is 32-bit signed.
	FormatInt32

	// FormatFloat16 is 16-bit half-precision floating point.
	FormatFloat16

	// FormatFloat32 is 32-bit floating point.
	FormatFloat32

	// FormatFloat64 is 64-bit floating point.
	FormatFloat64

	// formatCount is the number of formats (for internal use).
	formatCount
)

// FormatType classifies a format's numeric representation.
type FormatType uint8

const (
	// FormatTypeUint covers the unsigned integer formats, including the
	// bit-packed ones.
	FormatTypeUint FormatType = iota

	// FormatTypeInt covers the signed integer formats.
	FormatTypeInt

	// FormatTypeFloat covers the floating-point formats.
	FormatTypeFloat
)

// String returns a string representation of the format type.
func (t FormatType) String() string {
	switch t {
	case FormatTypeUint:
		return "uint"
	case FormatTypeInt:
		return "int"
	case FormatTypeFloat:
		return "float"
	default:
		return "unknown"
	}
}

// FormatInfo contains metadata about a channel format.
type FormatInfo struct {
	// Bits is the number of bits per channel value.
	Bits int

	// Type is the numeric class of the format.
	Type FormatType

	// MaxValue is the largest representable channel value. Float formats
	// report 1.0 even though stored values may exceed it.
	MaxValue float64
}

// formatInfoTable contains metadata for each format.
var formatInfoTable = [formatCount]FormatInfo{
	FormatUint1:   {Bits: 1, Type: FormatTypeUint, MaxValue: 1},
	FormatUint2:   {Bits: 2, Type: FormatTypeUint, MaxValue: 3},
	FormatUint4:   {Bits: 4, Type: FormatTypeUint, MaxValue: 15},
	FormatUint8:   {Bits: 8, Type: FormatTypeUint, MaxValue: 255},
	FormatUint16:  {Bits: 16, Type: FormatTypeUint, MaxValue: 65535},
	FormatUint32:  {Bits: 32, Type: FormatTypeUint, MaxValue: 4294967295},
	FormatInt8:    {Bits: 8, Type: FormatTypeInt, MaxValue: 127},
	FormatInt16:   {Bits: 16, Type: FormatTypeInt, MaxValue: 32767},
	FormatInt32:   {Bits: 32, Type: FormatTypeInt, MaxValue: 2147483647},
	FormatFloat16: {Bits: 16, Type: FormatTypeFloat, MaxValue: 1},
	FormatFloat32: {Bits: 32, Type: FormatTypeFloat, MaxValue: 1},
	FormatFloat64: {Bits: 64, Type: FormatTypeFloat, MaxValue: 1},
}

// Info returns the FormatInfo for this format.
func (f Format) Info() FormatInfo {
	if f >= formatCount {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// Bits returns the number of bits per channel value.
func (f Format) Bits() int {
	return f.Info().Bits
}

// BytesPerChannel returns the number of whole bytes per channel value.
// Bit-packed formats (uint1, uint2, uint4) return 0.
func (f Format) BytesPerChannel() int {
	if f.IsPacked() {
		return 0
	}
	return f.Bits() / 8
}

// Type returns the numeric class of the format.
func (f Format) Type() FormatType {
	return f.Info().Type
}

// MaxValue returns the largest representable channel value.
func (f Format) MaxValue() float64 {
	return f.Info().MaxValue
}

// IsPacked returns true for sub-byte formats where multiple channel values
// share a byte.
func (f Format) IsPacked() bool {
	return f == FormatUint1 || f == FormatUint2 || f == FormatUint4
}

// IsLDR returns true for low dynamic range formats, whose values stay within
// a fixed integer range.
func (f Format) IsLDR() bool {
	return f.Type() != FormatTypeFloat
}

// IsHDR returns true for high dynamic range formats. IsHDR is the exact
// complement of IsLDR for every format.
func (f Format) IsHDR() bool {
	return !f.IsLDR()
}

// IsValid returns true if the format is a valid known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatUint1:
		return "uint1"
	case FormatUint2:
		return "uint2"
	case FormatUint4:
		return "uint4"
	case FormatUint8:
		return "uint8"
	case FormatUint16:
		return "uint16"
	case FormatUint32:
		return "uint32"
	case FormatInt8:
		return "int8"
	case FormatInt16:
		return "int16"
	case FormatInt32:
		return "int32"
	case FormatFloat16:
		return "float16"
	case FormatFloat32:
		return "float32"
	case FormatFloat64:
		return "float64"
	default:
		return "unknown"
	}
}

// RowStride calculates the number of bytes per image row for the given width
// and channel count. Bit-packed rows are padded up to a whole byte.
func (f Format) RowStride(width, channels int) int {
	if f.IsPacked() {
		return (width*channels*f.Bits() + 7) / 8
	}
	return width * channels * f.BytesPerChannel()
}

// colorBytes returns the per-channel storage size used by Color and Palette
// buffers. Packed formats store one unpacked value per byte there; packing
// only applies inside image rows.
func (f Format) colorBytes() int {
	if f.IsPacked() {
		return 1
	}
	return f.BytesPerChannel()
}

// read decodes the channel value at byte offset off. Multi-byte values are
// stored little-endian.
func (f Format) read(data []byte, off int) float64 {
	switch f {
	case FormatUint1, FormatUint2, FormatUint4, FormatUint8:
		return float64(data[off])
	case FormatUint16:
		return float64(binary.LittleEndian.Uint16(data[off:]))
	case FormatUint32:
		return float64(binary.LittleEndian.Uint32(data[off:]))
	case FormatInt8:
		return float64(int8(data[off]))
	case FormatInt16:
		return float64(int16(binary.LittleEndian.Uint16(data[off:])))
	case FormatInt32:
		return float64(int32(binary.LittleEndian.Uint32(data[off:])))
	case FormatFloat16:
		return float16.FromBits(binary.LittleEndian.Uint16(data[off:])).Float64()
	case FormatFloat32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(data[off:])))
	case FormatFloat64:
		return math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
	default:
		return 0
	}
}

// write encodes a channel value at byte offset off. Integer formats truncate
// toward zero and wrap like typed array stores; float formats store as-is.
func (f Format) write(data []byte, off int, v float64) {
	switch f {
	case FormatUint1:
		data[off] = uint8(trunc(v)) & 0x1
	case FormatUint2:
		data[off] = uint8(trunc(v)) & 0x3
	case FormatUint4:
		data[off] = uint8(trunc(v)) & 0xf
	case FormatUint8:
		data[off] = uint8(trunc(v))
	case FormatUint16:
		binary.LittleEndian.PutUint16(data[off:], uint16(trunc(v)))
	case FormatUint32:
		binary.LittleEndian.PutUint32(data[off:], uint32(trunc(v)))
	case FormatInt8:
		data[off] = uint8(int8(trunc(v)))
	case FormatInt16:
		binary.LittleEndian.PutUint16(data[off:], uint16(int16(trunc(v))))
	case FormatInt32:
		binary.LittleEndian.PutUint32(data[off:], uint32(int32(trunc(v))))
	case FormatFloat16:
		binary.LittleEndian.PutUint16(data[off:], float16.New(v).Bits())
	case FormatFloat32:
		binary.LittleEndian.PutUint32(data[off:], math.Float32bits(float32(v)))
	case FormatFloat64:
		binary.LittleEndian.PutUint64(data[off:], math.Float64bits(v))
	}
}

// trunc truncates toward zero, mapping NaN to 0 so that integer stores stay
// defined over all inputs.
func trunc(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	if v <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(v)
}
