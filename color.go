package pix

// Color is the uniform access contract shared by detached color values,
// palette entries and pixel cursors. A color carries 1 to 4 channels:
// 1 is gray or a palette index, 2 is gray plus alpha, 3 is rgb, 4 is rgba.
//
// Channel access is permissive: reading a channel the color does not store
// returns 0 (except the alpha accessor, which returns the format's maximum),
// and writing one is a no-op. Construction, by contrast, is strict; invalid
// channel counts are rejected with an error.
type Color interface {
	// Length returns the channel count.
	Length() int

	// Format returns the numeric storage format.
	Format() Format

	// MaxChannelValue returns the largest representable channel value.
	MaxChannelValue() float64

	// IsLDRFormat returns true for low dynamic range formats.
	IsLDRFormat() bool

	// IsHDRFormat returns true for high dynamic range formats.
	IsHDRFormat() bool

	// Palette returns the palette the color resolves through, or nil.
	Palette() *Palette

	// Channel returns the value of channel i. Out-of-range channels read
	// as 0. Channel(int(ChannelLuminance)) computes the BT.601 luma.
	Channel(i int) float64

	// SetChannel sets the value of channel i. Out-of-range channels are
	// ignored. Integer formats truncate toward zero.
	SetChannel(i int, v float64)

	// ChannelNormalized returns channel i scaled into [0, 1].
	ChannelNormalized(i int) float64

	// SetChannelNormalized sets channel i from a [0, 1] value.
	SetChannelNormalized(i int, v float64)

	// R returns the red (or gray/index) channel.
	R() float64

	// SetR sets the red channel.
	SetR(v float64)

	// G returns the green channel.
	G() float64

	// SetG sets the green channel.
	SetG(v float64)

	// B returns the blue channel.
	B() float64

	// SetB sets the blue channel.
	SetB(v float64)

	// A returns the alpha channel. Colors without an alpha channel report
	// the format's maximum value, never 0, so missing alpha reads opaque.
	A() float64

	// SetA sets the alpha channel.
	SetA(v float64)

	// Index returns the palette index (an alias for channel 0).
	Index() float64

	// SetIndex sets the palette index (an alias for channel 0).
	SetIndex(v float64)

	// Luminance returns the BT.601 luma of the color.
	Luminance() float64

	// LuminanceNormalized returns the luma scaled into [0, 1].
	LuminanceNormalized() float64

	// Channels exports the channel values as a slice.
	Channels() []float64

	// Equal compares channel-by-channel after matching lengths.
	Equal(other Color) bool

	// Clone returns a detached copy.
	Clone() Color

	// Convert returns a new color in a different format or channel count.
	Convert(opts ...ConvertOption) Color
}

// ColorValue is a concrete Color: a fixed-size channel buffer in one numeric
// format, with value semantics and no identity.
type ColorValue struct {
	format Format
	length int
	data   []byte
}

var _ Color = (*ColorValue)(nil)

// NewColor creates a zeroed color with the given format and channel count.
func NewColor(format Format, length int) (*ColorValue, error) {
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if length < 1 || length > 4 {
		return nil, ErrInvalidChannels
	}
	return &ColorValue{
		format: format,
		length: length,
		data:   make([]byte, length*format.colorBytes()),
	}, nil
}

// NewColorRGB creates a 3-channel color from explicit channel values.
func NewColorRGB(format Format, r, g, b float64) (*ColorValue, error) {
	c, err := NewColor(format, 3)
	if err != nil {
		return nil, err
	}
	c.SetR(r)
	c.SetG(g)
	c.SetB(b)
	return c, nil
}

// NewColorRGBA creates a 4-channel color from explicit channel values.
func NewColorRGBA(format Format, r, g, b, a float64) (*ColorValue, error) {
	c, err := NewColor(format, 4)
	if err != nil {
		return nil, err
	}
	c.SetR(r)
	c.SetG(g)
	c.SetB(b)
	c.SetA(a)
	return c, nil
}

// ColorFromChannels creates a color from explicit channel values; the channel
// count is the number of values given.
func ColorFromChannels(format Format, values ...float64) (*ColorValue, error) {
	c, err := NewColor(format, len(values))
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		c.SetChannel(i, v)
	}
	return c, nil
}

// Length returns the channel count.
func (c *ColorValue) Length() int {
	return c.length
}

// Format returns the numeric storage format.
func (c *ColorValue) Format() Format {
	return c.format
}

// MaxChannelValue returns the largest representable channel value.
func (c *ColorValue) MaxChannelValue() float64 {
	return c.format.MaxValue()
}

// IsLDRFormat returns true for low dynamic range formats.
func (c *ColorValue) IsLDRFormat() bool {
	return c.format.IsLDR()
}

// IsHDRFormat returns true for high dynamic range formats.
func (c *ColorValue) IsHDRFormat() bool {
	return c.format.IsHDR()
}

// Palette returns nil; detached colors never resolve through a palette.
func (c *ColorValue) Palette() *Palette {
	return nil
}

// Channel returns the value of channel i, 0 when out of range, or the
// computed luma for the luminance sentinel.
func (c *ColorValue) Channel(i int) float64 {
	if i == int(ChannelLuminance) {
		return c.Luminance()
	}
	if i < 0 || i >= c.length {
		return 0
	}
	return c.format.read(c.data, i*c.format.colorBytes())
}

// SetChannel sets channel i, ignoring out-of-range indices.
func (c *ColorValue) SetChannel(i int, v float64) {
	if i < 0 || i >= c.length {
		return
	}
	c.format.write(c.data, i*c.format.colorBytes(), v)
}

// ChannelNormalized returns channel i scaled into [0, 1].
func (c *ColorValue) ChannelNormalized(i int) float64 {
	return c.Channel(i) / c.format.MaxValue()
}

// SetChannelNormalized sets channel i from a [0, 1] value.
func (c *ColorValue) SetChannelNormalized(i int, v float64) {
	c.SetChannel(i, v*c.format.MaxValue())
}

// R returns the red (or gray/index) channel.
func (c *ColorValue) R() float64 { return c.Channel(0) }

// SetR sets the red channel.
func (c *ColorValue) SetR(v float64) { c.SetChannel(0, v) }

// G returns the green channel.
func (c *ColorValue) G() float64 { return c.Channel(1) }

// SetG sets the green channel.
func (c *ColorValue) SetG(v float64) { c.SetChannel(1, v) }

// B returns the blue channel.
func (c *ColorValue) B() float64 { return c.Channel(2) }

// SetB sets the blue channel.
func (c *ColorValue) SetB(v float64) { c.SetChannel(2, v) }

// A returns the alpha channel, or the format maximum when the color has no
// alpha channel.
func (c *ColorValue) A() float64 {
	if c.length > 3 {
		return c.Channel(3)
	}
	return c.format.MaxValue()
}

// SetA sets the alpha channel.
func (c *ColorValue) SetA(v float64) { c.SetChannel(3, v) }

// Index returns the palette index (channel 0).
func (c *ColorValue) Index() float64 { return c.Channel(0) }

// SetIndex sets the palette index (channel 0).
func (c *ColorValue) SetIndex(v float64) { c.SetChannel(0, v) }

// Luminance returns the BT.601 luma of the color.
func (c *ColorValue) Luminance() float64 {
	return luminance(c)
}

// LuminanceNormalized returns the luma scaled into [0, 1].
func (c *ColorValue) LuminanceNormalized() float64 {
	return c.Luminance() / c.format.MaxValue()
}

// Channels exports the channel values as a slice.
func (c *ColorValue) Channels() []float64 {
	out := make([]float64, c.length)
	for i := range out {
		out[i] = c.Channel(i)
	}
	return out
}

// Equal compares channel-by-channel after matching lengths.
func (c *ColorValue) Equal(other Color) bool {
	return colorsEqual(c, other)
}

// Clone returns a detached copy.
func (c *ColorValue) Clone() Color {
	data := make([]byte, len(c.data))
	copy(data, c.data)
	return &ColorValue{format: c.format, length: c.length, data: data}
}

// Convert returns a new color in a different format or channel count,
// optionally synthesizing an alpha channel.
func (c *ColorValue) Convert(opts ...ConvertOption) Color {
	return convertColorValue(c, opts)
}

// colorsEqual implements the shared Equal semantics for colors and pixels.
func colorsEqual(a, b Color) bool {
	if b == nil || a.Length() != b.Length() {
		return false
	}
	for i := 0; i < a.Length(); i++ {
		if a.Channel(i) != b.Channel(i) {
			return false
		}
	}
	return true
}
