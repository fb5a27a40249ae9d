package pix

// Palette is an indexed table of colors stored in one numeric format:
// numColors rows of numChannels values in a flat buffer. A palette owns its
// buffer exclusively; image containers that share a palette deep-clone it
// when they are cloned.
//
// Access follows the same permissive policy as Color: missing channels read
// as 0 (alpha reads as the format maximum) and out-of-range writes are
// ignored. Integer-backed palettes truncate on write.
type Palette struct {
	format      Format
	numColors   int
	numChannels int
	data        []byte
}

// NewPalette creates a zeroed palette with the given format, color count and
// channels per color.
func NewPalette(format Format, numColors, numChannels int) (*Palette, error) {
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if numColors < 0 {
		return nil, ErrInvalidPaletteSize
	}
	if numChannels < 1 || numChannels > 4 {
		return nil, ErrInvalidChannels
	}
	return &Palette{
		format:      format,
		numColors:   numColors,
		numChannels: numChannels,
		data:        make([]byte, numColors*numChannels*format.colorBytes()),
	}, nil
}

// Format returns the numeric storage format of the palette entries.
func (p *Palette) Format() Format {
	return p.format
}

// NumColors returns the number of colors in the palette.
func (p *Palette) NumColors() int {
	return p.numColors
}

// NumChannels returns the number of channels per color.
func (p *Palette) NumChannels() int {
	return p.numChannels
}

// MaxChannelValue returns the largest representable channel value.
func (p *Palette) MaxChannelValue() float64 {
	return p.format.MaxValue()
}

// Get returns channel ch of color index, or 0 when either is out of range.
func (p *Palette) Get(index, ch int) float64 {
	if index < 0 || index >= p.numColors || ch < 0 || ch >= p.numChannels {
		return 0
	}
	return p.format.read(p.data, (index*p.numChannels+ch)*p.format.colorBytes())
}

// Set sets channel ch of color index, ignoring out-of-range arguments.
func (p *Palette) Set(index, ch int, v float64) {
	if index < 0 || index >= p.numColors || ch < 0 || ch >= p.numChannels {
		return
	}
	p.format.write(p.data, (index*p.numChannels+ch)*p.format.colorBytes(), v)
}

// SetRGB sets the first three channels of color index.
func (p *Palette) SetRGB(index int, r, g, b float64) {
	p.Set(index, 0, r)
	p.Set(index, 1, g)
	p.Set(index, 2, b)
}

// SetRGBA sets all four channels of color index.
func (p *Palette) SetRGBA(index int, r, g, b, a float64) {
	p.SetRGB(index, r, g, b)
	p.Set(index, 3, a)
}

// Red returns the red channel of color index.
func (p *Palette) Red(index int) float64 { return p.Get(index, 0) }

// SetRed sets the red channel of color index.
func (p *Palette) SetRed(index int, v float64) { p.Set(index, 0, v) }

// Green returns the green channel of color index.
func (p *Palette) Green(index int) float64 { return p.Get(index, 1) }

// SetGreen sets the green channel of color index.
func (p *Palette) SetGreen(index int, v float64) { p.Set(index, 1, v) }

// Blue returns the blue channel of color index.
func (p *Palette) Blue(index int) float64 { return p.Get(index, 2) }

// SetBlue sets the blue channel of color index.
func (p *Palette) SetBlue(index int, v float64) { p.Set(index, 2, v) }

// Alpha returns the alpha channel of color index. Palettes without an alpha
// channel report the format maximum so missing alpha reads opaque.
func (p *Palette) Alpha(index int) float64 {
	if p.numChannels > 3 {
		return p.Get(index, 3)
	}
	return p.format.MaxValue()
}

// SetAlpha sets the alpha channel of color index.
func (p *Palette) SetAlpha(index int, v float64) { p.Set(index, 3, v) }

// ColorAt returns a detached color snapshot of entry index.
func (p *Palette) ColorAt(index int) Color {
	c, _ := NewColor(p.format, p.numChannels)
	for ch := 0; ch < p.numChannels; ch++ {
		c.SetChannel(ch, p.Get(index, ch))
	}
	return c
}

// AddColor appends a color to the palette and returns its index. Missing
// values read as 0; extra values are ignored.
func (p *Palette) AddColor(values ...float64) int {
	index := p.numColors
	p.data = append(p.data, make([]byte, p.numChannels*p.format.colorBytes())...)
	p.numColors++
	for ch := 0; ch < p.numChannels && ch < len(values); ch++ {
		p.Set(index, ch, values[ch])
	}
	return index
}

// Clone returns a deep copy of the palette.
func (p *Palette) Clone() *Palette {
	data := make([]byte, len(p.data))
	copy(data, p.data)
	return &Palette{
		format:      p.format,
		numColors:   p.numColors,
		numChannels: p.numChannels,
		data:        data,
	}
}

// Bytes exposes the raw backing buffer for serialization.
func (p *Palette) Bytes() []byte {
	return p.data
}
