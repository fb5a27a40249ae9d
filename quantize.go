package pix

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ericpauley/go-quantize/quantize"
)

// quantizeFrame reduces a frame to at most capacity distinct colors with a
// median cut quantizer, then rebuilds it as a paletted container of the
// target format. It is the fallback when exact deduplication overflows the
// index range.
func quantizeFrame(src *Image, format Format, channels, capacity int) (*Image, error) {
	m := toNRGBA(src.ImageData())
	b := m.Bounds()

	q := quantize.MedianCutQuantizer{}
	reduced := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, capacity), m))
	draw.Draw(reduced, b, m, b.Min, draw.Src)

	pal, err := NewPalette(FormatUint8, len(reduced.Palette), channels)
	if err != nil {
		return nil, err
	}
	for i, c := range reduced.Palette {
		r, g, bl, _ := c.RGBA()
		switch channels {
		case 1:
			pal.Set(i, 0, float64(r>>8))
		case 2:
			pal.Set(i, 0, float64(r>>8))
			pal.Set(i, 1, float64(g>>8))
		default:
			pal.SetRGB(i, float64(r>>8), float64(g>>8), float64(bl>>8))
		}
	}

	dst, err := NewImageDataPaletted(src.Width(), src.Height(), format, pal)
	if err != nil {
		return nil, err
	}
	dp := newPixel(dst)
	for {
		dp.SetIndex(float64(reduced.ColorIndexAt(dp.X(), dp.Y())))
		if !dp.Next() {
			break
		}
	}
	return ImageFromImageData(dst), nil
}
