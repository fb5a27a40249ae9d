package pix

// Pixel is a mutable read/write head bound to exactly one ImageData buffer.
// It implements the Color contract over the pixel at its current position
// and doubles as a forward-only iterator: Next advances through the buffer
// in row-major order.
//
// A pixel holds only a back-reference and the current offset; the image data
// owns the buffer. Pixels are not safe for concurrent use — callers must use
// independent cursors or serialize access.
type Pixel struct {
	img *ImageData
	x   int
	y   int

	// offset is the byte offset of the pixel's first channel. For packed
	// formats, bit is the starting bit position within that byte.
	offset int
	bit    int
}

var _ Color = (*Pixel)(nil)

func newPixel(d *ImageData) *Pixel {
	p := &Pixel{img: d}
	p.SetPosition(0, 0)
	return p
}

// ImageData returns the buffer the pixel is bound to.
func (p *Pixel) ImageData() *ImageData {
	return p.img
}

// X returns the current column.
func (p *Pixel) X() int { return p.x }

// Y returns the current row.
func (p *Pixel) Y() int { return p.y }

// IsValid returns true if the current position lies inside the image.
// SetPosition does not validate; callers that may move a pixel out of range
// check this separately.
func (p *Pixel) IsValid() bool {
	return p.x >= 0 && p.x < p.img.width && p.y >= 0 && p.y < p.img.height
}

// compatibleWith reports whether the pixel can be repositioned over d and
// reused in place of a fresh cursor.
func (p *Pixel) compatibleWith(d *ImageData) bool {
	return p.img == d
}

// SetPosition moves the pixel to (x, y), recomputing its offset from
// scratch. The position is not validated.
func (p *Pixel) SetPosition(x, y int) {
	p.x, p.y = x, y
	d := p.img
	if d.format.IsPacked() {
		bitPos := x * d.channels * d.format.Bits()
		p.offset = y*d.rowStride + bitPos>>3
		p.bit = bitPos & 7
		return
	}
	p.offset = y*d.rowStride + x*d.channels*d.format.BytesPerChannel()
	p.bit = 0
}

// Next advances one pixel, wrapping to column 0 of the next row at the end
// of a row. It returns false once the position passes the last row; the
// iteration is restartable only via SetPosition or a fresh cursor.
func (p *Pixel) Next() bool {
	d := p.img
	p.x++
	if p.x >= d.width {
		p.x = 0
		p.y++
		if p.y >= d.height {
			return false
		}
		// Rows are byte-aligned, so recompute at each row start.
		p.SetPosition(0, p.y)
		return true
	}
	if d.format.IsPacked() {
		p.bit += d.channels * d.format.Bits()
		p.offset += p.bit >> 3
		p.bit &= 7
		return true
	}
	p.offset += d.channels * d.format.BytesPerChannel()
	return true
}

// rawChannel reads stored channel i without palette indirection.
func (p *Pixel) rawChannel(i int) float64 {
	d := p.img
	if d.format.IsPacked() {
		bits := d.format.Bits()
		chanBit := p.bit + i*bits
		off := p.offset + chanBit>>3
		shift := 8 - bits - chanBit&7
		mask := byte(1<<bits - 1)
		return float64(d.data[off] >> shift & mask)
	}
	return d.format.read(d.data, p.offset+i*d.format.BytesPerChannel())
}

// setRawChannel writes stored channel i, masking and OR-ing sub-byte values
// into the owning byte for packed formats.
func (p *Pixel) setRawChannel(i int, v float64) {
	d := p.img
	if d.format.IsPacked() {
		bits := d.format.Bits()
		chanBit := p.bit + i*bits
		off := p.offset + chanBit>>3
		shift := 8 - bits - chanBit&7
		mask := byte(1<<bits - 1)
		d.data[off] = d.data[off]&^(mask<<shift) | byte(trunc(v))&mask<<shift
		return
	}
	d.format.write(d.data, p.offset+i*d.format.BytesPerChannel(), v)
}

// rawIndex returns the stored palette index (channel 0) of a paletted pixel.
func (p *Pixel) rawIndex() int {
	return int(p.rawChannel(0))
}

// Length returns the channel count: the palette's when the image is
// paletted, otherwise the image's.
func (p *Pixel) Length() int {
	if pal := p.img.palette; pal != nil {
		return pal.NumChannels()
	}
	return p.img.channels
}

// Format returns the image's storage format.
func (p *Pixel) Format() Format {
	return p.img.format
}

// MaxChannelValue returns the largest representable channel value, resolved
// through the palette for paletted images.
func (p *Pixel) MaxChannelValue() float64 {
	if pal := p.img.palette; pal != nil {
		return pal.MaxChannelValue()
	}
	return p.img.format.MaxValue()
}

// IsLDRFormat returns true for low dynamic range formats.
func (p *Pixel) IsLDRFormat() bool {
	return p.img.format.IsLDR()
}

// IsHDRFormat returns true for high dynamic range formats.
func (p *Pixel) IsHDRFormat() bool {
	return p.img.format.IsHDR()
}

// Palette returns the image's palette, or nil.
func (p *Pixel) Palette() *Palette {
	return p.img.palette
}

// Channel returns the value of channel i. Paletted pixels resolve channels
// through the palette; channel 0 of the raw storage holds the index.
func (p *Pixel) Channel(i int) float64 {
	if i == int(ChannelLuminance) {
		return p.Luminance()
	}
	if pal := p.img.palette; pal != nil {
		return pal.Get(p.rawIndex(), i)
	}
	if i < 0 || i >= p.img.channels {
		return 0
	}
	return p.rawChannel(i)
}

// SetChannel writes stored channel i. For paletted images only channel 0
// (the index) is stored, so other channels are ignored.
func (p *Pixel) SetChannel(i int, v float64) {
	if i < 0 || i >= p.img.channels {
		return
	}
	p.setRawChannel(i, v)
}

// ChannelNormalized returns channel i scaled into [0, 1].
func (p *Pixel) ChannelNormalized(i int) float64 {
	return p.Channel(i) / p.MaxChannelValue()
}

// SetChannelNormalized sets channel i from a [0, 1] value.
func (p *Pixel) SetChannelNormalized(i int, v float64) {
	p.SetChannel(i, v*p.MaxChannelValue())
}

// R returns the red (or gray/index) channel.
func (p *Pixel) R() float64 { return p.Channel(0) }

// SetR sets the red channel.
func (p *Pixel) SetR(v float64) { p.SetChannel(0, v) }

// G returns the green channel.
func (p *Pixel) G() float64 { return p.Channel(1) }

// SetG sets the green channel.
func (p *Pixel) SetG(v float64) { p.SetChannel(1, v) }

// B returns the blue channel.
func (p *Pixel) B() float64 { return p.Channel(2) }

// SetB sets the blue channel.
func (p *Pixel) SetB(v float64) { p.SetChannel(2, v) }

// A returns the alpha channel, or the maximum channel value when the pixel
// has no alpha channel.
func (p *Pixel) A() float64 {
	if p.Length() > 3 {
		return p.Channel(3)
	}
	return p.MaxChannelValue()
}

// SetA sets the alpha channel.
func (p *Pixel) SetA(v float64) { p.SetChannel(3, v) }

// Index returns the raw palette index for paletted images, or channel 0.
func (p *Pixel) Index() float64 {
	if p.img.palette != nil {
		return p.rawChannel(0)
	}
	return p.Channel(0)
}

// SetIndex sets the raw palette index (channel 0).
func (p *Pixel) SetIndex(v float64) { p.SetChannel(0, v) }

// Luminance returns the BT.601 luma of the pixel.
func (p *Pixel) Luminance() float64 {
	return luminance(p)
}

// LuminanceNormalized returns the luma scaled into [0, 1].
func (p *Pixel) LuminanceNormalized() float64 {
	return p.Luminance() / p.MaxChannelValue()
}

// Channels exports the channel values as a slice.
func (p *Pixel) Channels() []float64 {
	out := make([]float64, p.Length())
	for i := range out {
		out[i] = p.Channel(i)
	}
	return out
}

// Equal compares channel-by-channel after matching lengths.
func (p *Pixel) Equal(other Color) bool {
	return colorsEqual(p, other)
}

// Clone returns a detached cursor snapshot bound to the same image data.
func (p *Pixel) Clone() Color {
	clone := *p
	return &clone
}

// Convert returns a detached color in a different format or channel count.
func (p *Pixel) Convert(opts ...ConvertOption) Color {
	return convertColorValue(p, opts)
}
