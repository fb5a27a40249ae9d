// Package pix provides an in-memory image representation with uniform access
// to pixel data across twelve channel storage formats, from 1-bit packed
// unsigned values to 64-bit floats.
//
// An [Image] owns one or more frames of [ImageData], each a row-major,
// channel-interleaved buffer in a single [Format]. Pixels are read and
// written as float64 regardless of storage depth; [Pixel] cursors iterate a
// buffer without per-pixel allocation. Low bit-depth images can share a
// [Palette], and [Image.Convert] moves content between any two
// format/channel/palette combinations.
//
// The [github.com/gogpu/pix/float16] subpackage implements the IEEE 754
// binary16 encoding used by [FormatFloat16].
package pix
