package pix

import "iter"

// ImageData owns one typed pixel buffer: width by height pixels of
// channel-interleaved values in a single format, row-major with byte-aligned
// rows. Paletted containers additionally share a Palette reference; the
// palette's lifetime is independent and it is deep-cloned whenever the
// container is cloned.
//
// Write operations require external synchronization; concurrent reads
// through independent cursors are safe.
type ImageData struct {
	width     int
	height    int
	channels  int
	format    Format
	rowStride int
	palette   *Palette
	data      []byte

	// scratch is the shared internal cursor behind the SetPixel* paths.
	scratch *Pixel
}

// NewImageData creates a zeroed container with the given dimensions, channel
// count and format.
func NewImageData(width, height, channels int, format Format) (*ImageData, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if channels < 1 || channels > 4 {
		return nil, ErrInvalidChannels
	}

	rowStride := format.RowStride(width, channels)
	return &ImageData{
		width:     width,
		height:    height,
		channels:  channels,
		format:    format,
		rowStride: rowStride,
		data:      make([]byte, rowStride*height),
	}, nil
}

// NewImageDataPaletted creates a container whose single stored channel
// indexes the given palette.
func NewImageDataPaletted(width, height int, format Format, palette *Palette) (*ImageData, error) {
	if palette == nil {
		return nil, ErrPaletteRequired
	}
	d, err := NewImageData(width, height, 1, format)
	if err != nil {
		return nil, err
	}
	d.palette = palette
	return d, nil
}

// ImageDataFromRaw wraps a caller-supplied buffer without copying. The
// caller must ensure data remains valid for the lifetime of the container.
// A rowStride of 0 selects the format's minimum stride.
func ImageDataFromRaw(data []byte, width, height, channels int, format Format, rowStride int) (*ImageData, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if channels < 1 || channels > 4 {
		return nil, ErrInvalidChannels
	}

	minStride := format.RowStride(width, channels)
	if rowStride == 0 {
		rowStride = minStride
	}
	if rowStride < minStride {
		return nil, ErrInvalidStride
	}
	required := rowStride * height
	if len(data) < required {
		return nil, ErrDataTooSmall
	}

	return &ImageData{
		width:     width,
		height:    height,
		channels:  channels,
		format:    format,
		rowStride: rowStride,
		data:      data[:required],
	}, nil
}

// Width returns the image width in pixels.
func (d *ImageData) Width() int { return d.width }

// Height returns the image height in pixels.
func (d *ImageData) Height() int { return d.height }

// Channels returns the number of stored channels per pixel. Paletted
// containers store 1 (the index); see NumChannels for the resolved count.
func (d *ImageData) Channels() int { return d.channels }

// NumChannels returns the channel count pixels resolve to: the palette's
// for paletted containers, otherwise the stored count.
func (d *ImageData) NumChannels() int {
	if d.palette != nil {
		return d.palette.NumChannels()
	}
	return d.channels
}

// Format returns the channel storage format.
func (d *ImageData) Format() Format { return d.format }

// RowStride returns the number of bytes per row.
func (d *ImageData) RowStride() int { return d.rowStride }

// Palette returns the shared palette, or nil.
func (d *ImageData) Palette() *Palette { return d.palette }

// HasPalette returns true for paletted containers.
func (d *ImageData) HasPalette() bool { return d.palette != nil }

// Data returns the raw backing buffer.
func (d *ImageData) Data() []byte { return d.data }

// ByteSize returns the total size of the pixel data in bytes.
func (d *ImageData) ByteSize() int { return len(d.data) }

// MaxChannelValue returns the largest representable channel value.
func (d *ImageData) MaxChannelValue() float64 {
	if d.palette != nil {
		return d.palette.MaxChannelValue()
	}
	return d.format.MaxValue()
}

// IsLDR returns true for low dynamic range formats.
func (d *ImageData) IsLDR() bool { return d.format.IsLDR() }

// IsHDR returns true for high dynamic range formats.
func (d *ImageData) IsHDR() bool { return d.format.IsHDR() }

// IsPacked returns true for sub-byte formats.
func (d *ImageData) IsPacked() bool { return d.format.IsPacked() }

// PixelAt returns a cursor positioned at (x, y). If reuse is a cursor bound
// to this container it is repositioned and returned, avoiding an
// allocation. The position is not validated; see Pixel.IsValid.
func (d *ImageData) PixelAt(x, y int, reuse *Pixel) *Pixel {
	if reuse != nil && reuse.compatibleWith(d) {
		reuse.SetPosition(x, y)
		return reuse
	}
	p := newPixel(d)
	p.SetPosition(x, y)
	return p
}

func (d *ImageData) scratchAt(x, y int) *Pixel {
	if d.scratch == nil {
		d.scratch = newPixel(d)
	}
	d.scratch.SetPosition(x, y)
	return d.scratch
}

// SetPixelRGB writes the first three channels of pixel (x, y). The position
// is trusted; callers that cannot guarantee bounds use SetPixelRGBSafe.
func (d *ImageData) SetPixelRGB(x, y int, r, g, b float64) {
	p := d.scratchAt(x, y)
	p.SetR(r)
	p.SetG(g)
	p.SetB(b)
}

// SetPixelRGBA writes all four channels of pixel (x, y). The position is
// trusted; callers that cannot guarantee bounds use SetPixelRGBASafe.
func (d *ImageData) SetPixelRGBA(x, y int, r, g, b, a float64) {
	d.SetPixelRGB(x, y, r, g, b)
	d.scratch.SetA(a)
}

// SetPixelRGBSafe writes pixel (x, y), silently ignoring out-of-range
// positions. This is the only bounds-checked write path.
func (d *ImageData) SetPixelRGBSafe(x, y int, r, g, b float64) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return
	}
	d.SetPixelRGB(x, y, r, g, b)
}

// SetPixelRGBASafe writes pixel (x, y), silently ignoring out-of-range
// positions.
func (d *ImageData) SetPixelRGBASafe(x, y int, r, g, b, a float64) {
	if x < 0 || x >= d.width || y < 0 || y >= d.height {
		return
	}
	d.SetPixelRGBA(x, y, r, g, b, a)
}

// SetPixel copies a color's channels into pixel (x, y).
func (d *ImageData) SetPixel(x, y int, c Color) {
	p := d.scratchAt(x, y)
	n := c.Length()
	for i := 0; i < d.channels && i < n; i++ {
		p.SetChannel(i, c.Channel(i))
	}
}

// Clear sets all pixel data to zero.
func (d *ImageData) Clear() {
	clear(d.data)
}

// Fill sets every pixel to the given color.
func (d *ImageData) Fill(c Color) {
	for p := range d.Pixels() {
		for i := 0; i < d.channels; i++ {
			p.SetChannel(i, c.Channel(i))
		}
	}
}

// Pixels iterates over every pixel in row-major order:
// (0,0), (1,0), ... (w-1,0), (0,1), ... (w-1,h-1).
// The yielded cursor is reused between iterations; clone it to retain a
// position.
func (d *ImageData) Pixels() iter.Seq[*Pixel] {
	return func(yield func(*Pixel) bool) {
		p := newPixel(d)
		for {
			if !yield(p) {
				return
			}
			if !p.Next() {
				return
			}
		}
	}
}

// Range iterates over the sub-rectangle of width w and height h anchored at
// (x, y), row by row. The rectangle is clipped to the image bounds.
func (d *ImageData) Range(x, y, w, h int) iter.Seq[*Pixel] {
	return func(yield func(*Pixel) bool) {
		x0 := max(x, 0)
		y0 := max(y, 0)
		x1 := min(x+w, d.width)
		y1 := min(y+h, d.height)
		if x0 >= x1 || y0 >= y1 {
			return
		}

		p := newPixel(d)
		for yy := y0; yy < y1; yy++ {
			p.SetPosition(x0, yy)
			for xx := x0; xx < x1; xx++ {
				if !yield(p) {
					return
				}
				p.Next()
			}
		}
	}
}

// Bytes returns the pixel data, optionally remapped to a different channel
// order. Without a remap the raw buffer is returned as a live view; with
// one, the whole image is cloned and permuted pixel by pixel, so the result
// is always a detached copy. Orders whose channel count does not match the
// image are ignored.
func (d *ImageData) Bytes(opts ...BytesOption) []byte {
	var o bytesOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasOrder || o.order.isCanonical() || o.order.Channels() != d.channels {
		return d.data
	}

	clone := d.Clone(true)
	src := newPixel(d)
	dst := newPixel(clone)
	for {
		for i := 0; i < d.channels; i++ {
			dst.SetChannel(i, src.Channel(o.order.channelAt(i)))
		}
		if !src.Next() || !dst.Next() {
			return clone.data
		}
	}
}

// bytesOptions holds optional configuration for Bytes.
type bytesOptions struct {
	order    ChannelOrder
	hasOrder bool
}

// BytesOption configures a Bytes export.
type BytesOption func(*bytesOptions)

// WithOrder requests the exported bytes in the given channel order.
func WithOrder(order ChannelOrder) BytesOption {
	return func(o *bytesOptions) {
		o.order = order
		o.hasOrder = true
	}
}

// Clone creates a deep copy. With skipPixels the new buffer is zeroed,
// keeping only dimensions and palette. A shared palette is deep-cloned so
// independent containers never share mutable palette state.
func (d *ImageData) Clone(skipPixels bool) *ImageData {
	data := make([]byte, len(d.data))
	if !skipPixels {
		copy(data, d.data)
	}

	clone := &ImageData{
		width:     d.width,
		height:    d.height,
		channels:  d.channels,
		format:    d.format,
		rowStride: d.rowStride,
		data:      data,
	}
	if d.palette != nil {
		clone.palette = d.palette.Clone()
	}
	return clone
}
