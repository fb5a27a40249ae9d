package pix

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ldr8 maps a normalized channel into an 8-bit value, saturating out-of-range
// input so high dynamic range content exports cleanly.
func ldr8(norm float64) uint8 {
	v := math.Round(norm * 255)
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// toNRGBA flattens any container into a standard 8-bit NRGBA image.
// Single-channel content is replicated to gray, two-channel content is
// treated as gray plus alpha, and palettes are resolved.
func toNRGBA(d *ImageData) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, d.width, d.height))
	for p := range d.Pixels() {
		r := ldr8(p.ChannelNormalized(0))
		g, b := r, r
		if p.Length() >= 3 {
			g = ldr8(p.ChannelNormalized(1))
			b = ldr8(p.ChannelNormalized(2))
		}
		a := uint8(255)
		switch p.Length() {
		case 2:
			a = ldr8(p.ChannelNormalized(1))
		case 4:
			a = ldr8(p.ChannelNormalized(3))
		}
		off := m.PixOffset(p.X(), p.Y())
		m.Pix[off+0] = r
		m.Pix[off+1] = g
		m.Pix[off+2] = b
		m.Pix[off+3] = a
	}
	return m
}

// FromStdImage imports a standard library image. Gray and NRGBA variants map
// directly onto 1- and 4-channel containers at matching depth; everything
// else is flattened to 8-bit NRGBA first.
func FromStdImage(m image.Image) (*Image, error) {
	b := m.Bounds()
	switch src := m.(type) {
	case *image.Gray:
		img, err := NewImage(b.Dx(), b.Dy(), WithChannels(1))
		if err != nil {
			return nil, err
		}
		for p := range img.Pixels() {
			p.SetChannel(0, float64(src.GrayAt(b.Min.X+p.X(), b.Min.Y+p.Y()).Y))
		}
		return img, nil
	case *image.Gray16:
		img, err := NewImage(b.Dx(), b.Dy(), WithChannels(1), WithFormat(FormatUint16))
		if err != nil {
			return nil, err
		}
		for p := range img.Pixels() {
			p.SetChannel(0, float64(src.Gray16At(b.Min.X+p.X(), b.Min.Y+p.Y()).Y))
		}
		return img, nil
	case *image.NRGBA:
		img, err := NewImage(b.Dx(), b.Dy(), WithChannels(4))
		if err != nil {
			return nil, err
		}
		for p := range img.Pixels() {
			c := src.NRGBAAt(b.Min.X+p.X(), b.Min.Y+p.Y())
			p.SetR(float64(c.R))
			p.SetG(float64(c.G))
			p.SetB(float64(c.B))
			p.SetA(float64(c.A))
		}
		return img, nil
	case *image.NRGBA64:
		img, err := NewImage(b.Dx(), b.Dy(), WithChannels(4), WithFormat(FormatUint16))
		if err != nil {
			return nil, err
		}
		for p := range img.Pixels() {
			c := src.NRGBA64At(b.Min.X+p.X(), b.Min.Y+p.Y())
			p.SetR(float64(c.R))
			p.SetG(float64(c.G))
			p.SetB(float64(c.B))
			p.SetA(float64(c.A))
		}
		return img, nil
	default:
		flat := image.NewNRGBA(b)
		draw.Draw(flat, b, m, b.Min, draw.Src)
		return FromStdImage(flat)
	}
}

// StdImage exports the first frame as a standard library image. Unpaletted
// single-channel uint8 content maps onto image.Gray without conversion;
// everything else is flattened to 8-bit NRGBA.
func (i *Image) StdImage() image.Image {
	d := i.data
	if d.palette == nil && d.format == FormatUint8 && d.channels == 1 {
		g := image.NewGray(image.Rect(0, 0, d.width, d.height))
		for y := 0; y < d.height; y++ {
			copy(g.Pix[y*g.Stride:], d.data[y*d.rowStride:y*d.rowStride+d.width])
		}
		return g
	}
	return toNRGBA(d)
}

// Decode reads an encoded image (png, jpeg, gif, bmp or tiff) from r.
func Decode(r io.Reader) (*Image, error) {
	m, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("pix: decode: %w", err)
	}
	return FromStdImage(m)
}

// Encode writes the image to w in the named encoding. Supported names are
// "png", "jpeg" (or "jpg"), "gif", "bmp" and "tiff" (or "tif").
func Encode(w io.Writer, img *Image, format string) error {
	switch strings.ToLower(format) {
	case "png":
		return png.Encode(w, img.StdImage())
	case "jpeg", "jpg":
		return jpeg.Encode(w, img.StdImage(), &jpeg.Options{Quality: 90})
	case "gif":
		return gif.Encode(w, img.StdImage(), nil)
	case "bmp":
		return bmp.Encode(w, img.StdImage())
	case "tiff", "tif":
		return tiff.Encode(w, img.StdImage(), &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
