package pix

import "math"

// convertOptions holds the target triple and conversion knobs.
type convertOptions struct {
	format        Format
	hasFormat     bool
	channels      int
	alpha         float64
	withPalette   bool
	skipAnimation bool
}

func newConvertOptions() convertOptions {
	// NaN means "not supplied": alpha then defaults to the target's
	// maximum channel value.
	return convertOptions{alpha: math.NaN()}
}

// ConvertOption configures a conversion.
type ConvertOption func(*convertOptions)

// ConvertFormat sets the target storage format (default: unchanged).
func ConvertFormat(f Format) ConvertOption {
	return func(o *convertOptions) {
		o.format = f
		o.hasFormat = true
	}
}

// ConvertChannels sets the target channel count (default: unchanged).
func ConvertChannels(n int) ConvertOption {
	return func(o *convertOptions) { o.channels = n }
}

// ConvertAlpha sets the value used when an alpha channel is synthesized.
func ConvertAlpha(a float64) ConvertOption {
	return func(o *convertOptions) { o.alpha = a }
}

// ConvertWithPalette requests a paletted target. The request is honored only
// for palette-capable targets (uint1/2/4/8 with fewer than 4 channels).
func ConvertWithPalette() ConvertOption {
	return func(o *convertOptions) { o.withPalette = true }
}

// ConvertSkipAnimation limits the conversion to the first frame.
func ConvertSkipAnimation() ConvertOption {
	return func(o *convertOptions) { o.skipAnimation = true }
}

// paletteCapable reports whether a format can index a palette.
func paletteCapable(f Format) bool {
	switch f {
	case FormatUint1, FormatUint2, FormatUint4, FormatUint8:
		return true
	default:
		return false
	}
}

// Convert transforms the image into the requested (format, channels,
// palette) triple, preserving visual content and all attached metadata.
// Every frame is converted unless ConvertSkipAnimation is given.
//
// Converting to the image's own current triple yields an independent
// structural copy without recomputing pixels. Converting to fewer channels
// drops the extra ones; converting to more synthesizes only alpha (gray
// channels are never expanded to rgb implicitly).
func (i *Image) Convert(opts ...ConvertOption) (*Image, error) {
	o := newConvertOptions()
	for _, opt := range opts {
		opt(&o)
	}

	format := i.Format()
	if o.hasFormat {
		format = o.format
	}
	channels := i.Channels()
	if o.channels != 0 {
		channels = o.channels
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if channels < 1 || channels > 4 {
		return nil, ErrInvalidChannels
	}

	withPalette := o.withPalette
	if withPalette && (channels >= 4 || !paletteCapable(format)) {
		withPalette = false
	}
	// A palette cannot follow the image across the sub-byte boundary:
	// moving a paletted image between the packed formats and uint8-or-wider
	// expands it instead.
	if withPalette && i.HasPalette() &&
		i.Format().IsPacked() != format.IsPacked() {
		withPalette = false
	}

	if format == i.Format() && channels == i.Channels() && withPalette == i.HasPalette() {
		clone := i.Clone(false)
		if o.skipAnimation {
			clone.extraFrames = nil
		}
		return clone, nil
	}

	var out *Image
	for frame := range i.Frames() {
		conv, err := convertFrame(frame, format, channels, withPalette, o.alpha)
		if err != nil {
			return nil, err
		}
		conv.copyMetadataFrom(frame)
		if out == nil {
			out = conv
		} else {
			out.extraFrames = append(out.extraFrames, conv)
		}
		if o.skipAnimation {
			break
		}
	}

	Logger().Debug("pix: converted image",
		"format", format.String(),
		"channels", channels,
		"palette", withPalette,
		"frames", out.NumFrames())
	return out, nil
}

// convertFrame converts a single frame into a fresh container of the target
// triple.
func convertFrame(src *Image, format Format, channels int, withPalette bool, alpha float64) (*Image, error) {
	if withPalette {
		return convertFramePaletted(src, format, channels, alpha)
	}

	dst, err := NewImageData(src.Width(), src.Height(), channels, format)
	if err != nil {
		return nil, err
	}

	sp := newPixel(src.ImageData())
	dp := newPixel(dst)
	for {
		convertColor(sp, dp, alpha)
		if !sp.Next() || !dp.Next() {
			break
		}
	}
	return ImageFromImageData(dst), nil
}

// convertFramePaletted builds a deduplicated palette in first-seen order:
// colors are keyed by their 8-bit-quantized rgb value regardless of the
// target depth, each new key appending one palette entry. When the distinct
// colors exceed the format's index capacity the frame is median-cut
// quantized instead.
func convertFramePaletted(src *Image, format Format, channels int, alpha float64) (*Image, error) {
	pal, err := NewPalette(FormatUint8, 0, channels)
	if err != nil {
		return nil, err
	}
	dst, err := NewImageDataPaletted(src.Width(), src.Height(), format, pal)
	if err != nil {
		return nil, err
	}

	capacity := 1 << format.Bits()
	lookup := make(map[uint32]int)
	entry, err := NewColor(FormatUint8, channels)
	if err != nil {
		return nil, err
	}

	sp := newPixel(src.ImageData())
	dp := newPixel(dst)
	for {
		key := quantizedKey(sp)
		index, ok := lookup[key]
		if !ok {
			if pal.NumColors() >= capacity {
				Logger().Debug("pix: palette capacity exceeded, quantizing",
					"capacity", capacity)
				return quantizeFrame(src, format, channels, capacity)
			}
			convertColor(sp, entry, alpha)
			index = pal.AddColor(entry.Channels()...)
			lookup[key] = index
		}
		dp.SetIndex(float64(index))
		if !sp.Next() || !dp.Next() {
			break
		}
	}
	return ImageFromImageData(dst), nil
}

// quantizedKey packs a color's channels, quantized to 8 bits, into one
// integer for palette deduplication.
func quantizedKey(c Color) uint32 {
	r := quantize8(c.ChannelNormalized(0))
	g := quantize8(c.ChannelNormalized(1))
	b := quantize8(c.ChannelNormalized(2))
	return r<<16 | g<<8 | b
}

func quantize8(norm float64) uint32 {
	v := math.Floor(norm * 255)
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint32(v)
}

// convertColor copies src's channels into dst, rescaling between formats
// through normalized values. Sources and targets sharing the same channel
// scale copy directly, so same-depth conversions are exact. When dst gains
// an alpha channel it is synthesized: the supplied alpha, or the target's
// maximum when alpha is NaN.
func convertColor(src, dst Color, alpha float64) {
	fromLen := src.Length()
	toLen := dst.Length()
	n := min(fromLen, toLen)

	if src.MaxChannelValue() == dst.MaxChannelValue() {
		for c := 0; c < n; c++ {
			dst.SetChannel(c, clampChannel(src.Channel(c), dst.Format()))
		}
	} else {
		dmax := dst.MaxChannelValue()
		for c := 0; c < n; c++ {
			dst.SetChannel(c, clampChannel(src.ChannelNormalized(c)*dmax, dst.Format()))
		}
	}

	if toLen == 4 && fromLen < 4 {
		a := alpha
		if math.IsNaN(a) {
			a = dst.MaxChannelValue()
		}
		dst.SetChannel(3, a)
	}
}

// clampChannel saturates a converted value into the integer target's range.
// Float targets pass through so high dynamic range content survives.
func clampChannel(v float64, f Format) float64 {
	info := f.Info()
	switch info.Type {
	case FormatTypeUint:
		return math.Max(0, math.Min(v, info.MaxValue))
	case FormatTypeInt:
		return math.Max(-info.MaxValue-1, math.Min(v, info.MaxValue))
	default:
		return v
	}
}

// convertColorValue implements Color.Convert for colors and pixel
// snapshots. Invalid option values fall back to the source's own triple;
// color conversion itself never fails.
func convertColorValue(src Color, opts []ConvertOption) Color {
	o := newConvertOptions()
	for _, opt := range opts {
		opt(&o)
	}

	format := src.Format()
	if o.hasFormat && o.format.IsValid() {
		format = o.format
	}
	length := src.Length()
	if o.channels >= 1 && o.channels <= 4 {
		length = o.channels
	}

	dst, err := NewColor(format, length)
	if err != nil {
		return src.Clone()
	}
	convertColor(src, dst, o.alpha)
	return dst
}
