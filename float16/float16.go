// Package float16 implements the IEEE 754 half-precision (binary16)
// floating-point format.
//
// The codec is total: every 16-bit pattern decodes to a float64, and every
// finite float64 encodes to a half, saturating to signed infinity outside the
// representable range. Decoding is table-driven; the 65536-entry table is
// built once on first use and is read-only afterwards, so values may be
// decoded concurrently.
package float16

import (
	"math"
	"strconv"
	"sync"
)

// Float16 represents an IEEE 754 half-precision floating-point number.
// It wraps uint16 for storage but provides float semantics.
//
// Format: Sign (1 bit) | Exponent (5 bits) | Mantissa (10 bits)
//
//	S | EEEEE | MMMMMMMMMM
type Float16 uint16

// Special values.
const (
	Zero      Float16 = 0x0000 // positive zero
	NegZero   Float16 = 0x8000 // negative zero
	One       Float16 = 0x3c00 // 1.0
	NegOne    Float16 = 0xbc00 // -1.0
	MaxValue  Float16 = 0x7bff // 65504, largest finite value
	MinNormal Float16 = 0x0400 // 2^-14, smallest normal value
	MinValue  Float16 = 0x0001 // smallest denormal (~5.96e-8)
	Inf       Float16 = 0x7c00 // positive infinity
	NegInf    Float16 = 0xfc00 // negative infinity
	NaN       Float16 = 0x7e00 // canonical quiet NaN
)

const (
	signMask     = 0x8000
	expMask      = 0x1f
	mantissaMask = 0x3ff
)

// Lookup tables, built once on first use.
//
// eLut maps the 9-bit sign+exponent field of a float32 bit pattern to a
// half sign+exponent field; a zero entry routes the slow convert path
// (zeros, denormals, overflow, infinities and NaNs).
//
// decodeLut maps every 16-bit half pattern to its float32 equivalent.
var (
	tableOnce sync.Once
	eLut      [512]uint16
	decodeLut [65536]float32
)

func initTables() {
	for i := range eLut {
		e := (i & 0xff) - (127 - 15)
		if e <= 0 || e >= 30 {
			eLut[i] = 0
			continue
		}
		h := uint16(e << 10)
		if i&0x100 != 0 {
			h |= signMask
		}
		eLut[i] = h
	}
	for i := range decodeLut {
		decodeLut[i] = math.Float32frombits(halfToFloatBits(uint16(i)))
	}
}

// halfToFloatBits widens a half bit pattern to the equivalent float32 bit
// pattern, handling zeros, denormals, infinities and NaN.
func halfToFloatBits(h uint16) uint32 {
	sign := uint32(h>>15) & 1
	exp := uint32(h>>10) & expMask
	mant := uint32(h) & mantissaMask

	switch {
	case exp == 0:
		if mant == 0 {
			return sign << 31
		}
		// Denormal: renormalize by shifting the mantissa up until the
		// implicit leading bit appears.
		exp = 1
		for mant&0x400 == 0 {
			mant <<= 1
			exp--
		}
		mant &= mantissaMask
		return sign<<31 | uint32(int32(exp)+127-15)<<23 | mant<<13
	case exp == 31:
		if mant == 0 {
			return sign<<31 | 0x7f800000
		}
		// NaN: keep the payload, force the quiet bit.
		return sign<<31 | 0x7fc00000 | mant<<13
	}
	return sign<<31 | (exp+127-15)<<23 | mant<<13
}

// New converts a float64 to the nearest representable half.
// Values outside the half range saturate to signed infinity.
func New(f float64) Float16 {
	return fromFloat32Bits(math.Float32bits(float32(f)))
}

// FromBits creates a Float16 from a raw bit pattern.
func FromBits(bits uint16) Float16 {
	return Float16(bits)
}

// Bits returns the raw uint16 representation.
func (h Float16) Bits() uint16 {
	return uint16(h)
}

func fromFloat32Bits(bits uint32) Float16 {
	tableOnce.Do(initTables)

	e := (bits >> 23) & 0x1ff
	if eLut[e] != 0 {
		// Normal range: the table supplies sign and exponent, the
		// mantissa is rounded and truncated to 10 bits.
		m := bits & 0x7fffff
		return Float16(uint32(eLut[e]) + ((m + 0x1000) >> 13))
	}
	return convert(int32(bits))
}

// convert handles the patterns the exponent table cannot: zeros, denormals,
// values that overflow the half range, infinities and NaNs.
func convert(i int32) Float16 {
	s := (i >> 16) & signMask
	e := ((i >> 23) & 0xff) - (127 - 15)
	m := i & 0x7fffff

	if e <= 0 {
		if e < -10 {
			// Too small even for a half denormal; flush to zero.
			return Float16(s)
		}

		// Denormal half: shift the mantissa (with its implicit
		// leading bit) into place, rounding to nearest even.
		m |= 0x800000
		t := uint(14 - e)
		a := int32(1)<<(t-1) - 1
		b := (m >> t) & 1
		m = (m + a + b) >> t
		return Float16(s | m)
	}

	if e == 0xff-(127-15) {
		if m == 0 {
			return Float16(s | 0x7c00)
		}
		// NaN: keep a truncated payload, never collapse to infinity.
		m >>= 13
		q := int32(0)
		if m == 0 {
			q = 1
		}
		return Float16(s | 0x7c00 | m | q)
	}

	// Round to nearest even; the mantissa may carry into the exponent.
	m = m + 0xfff + ((m >> 13) & 1)
	if m&0x800000 != 0 {
		m = 0
		e++
	}
	if e > 30 {
		return Float16(s | 0x7c00)
	}
	return Float16(s | e<<10 | m>>13)
}

// Float32 converts h to float32.
func (h Float16) Float32() float32 {
	tableOnce.Do(initTables)
	return decodeLut[h]
}

// Float64 converts h to float64.
func (h Float16) Float64() float64 {
	return float64(h.Float32())
}

// Add returns h + o, computed in double precision and rounded back.
func (h Float16) Add(o Float16) Float16 {
	return New(h.Float64() + o.Float64())
}

// Sub returns h - o, computed in double precision and rounded back.
func (h Float16) Sub(o Float16) Float16 {
	return New(h.Float64() - o.Float64())
}

// Mul returns h * o, computed in double precision and rounded back.
func (h Float16) Mul(o Float16) Float16 {
	return New(h.Float64() * o.Float64())
}

// Div returns h / o, computed in double precision and rounded back.
func (h Float16) Div(o Float16) Float16 {
	return New(h.Float64() / o.Float64())
}

// Neg returns -h.
func (h Float16) Neg() Float16 {
	return New(-h.Float64())
}

// Round returns h with the mantissa truncated to n bits of precision
// (0 <= n <= 10), rounding the discarded bits half-up. A result whose
// rounding carries into the infinity encoding is clamped to the shifted
// exponent/mantissa field instead.
func (h Float16) Round(n int) Float16 {
	if n >= 10 {
		return h
	}
	if n < 0 {
		n = 0
	}

	s := h & signMask
	e := h & 0x7fff

	e >>= 9 - n
	e += e & 1
	e <<= 9 - n

	if e >= 0x7c00 {
		e = h & 0x7fff
		e >>= 10 - n
		e <<= 10 - n
	}

	return s | e
}

// IsFinite returns true if h is neither infinity nor NaN.
func (h Float16) IsFinite() bool {
	return (h>>10)&expMask < 31
}

// IsNormalized returns true if h is a normalized number.
func (h Float16) IsNormalized() bool {
	exp := (h >> 10) & expMask
	return exp > 0 && exp < 31
}

// IsDenormalized returns true if h is a denormalized number.
func (h Float16) IsDenormalized() bool {
	return (h>>10)&expMask == 0 && h&mantissaMask != 0
}

// IsZero returns true if h is positive or negative zero.
func (h Float16) IsZero() bool {
	return h&0x7fff == 0
}

// IsNaN returns true if h is a NaN value.
func (h Float16) IsNaN() bool {
	return (h>>10)&expMask == 31 && h&mantissaMask != 0
}

// IsInf returns true if h is positive or negative infinity.
func (h Float16) IsInf() bool {
	return (h>>10)&expMask == 31 && h&mantissaMask == 0
}

// IsNegative returns true if the sign bit is set.
func (h Float16) IsNegative() bool {
	return h&signMask != 0
}

// String returns the decimal representation of h.
func (h Float16) String() string {
	return strconv.FormatFloat(h.Float64(), 'g', -1, 64)
}
