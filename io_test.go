package pix

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
)

func TestStdImage_Gray(t *testing.T) {
	img, err := NewImage(3, 2, WithChannels(1))
	if err != nil {
		t.Fatal(err)
	}
	img.SetPixelRGB(1, 1, 200, 0, 0)

	std := img.StdImage()
	gray, ok := std.(*image.Gray)
	if !ok {
		t.Fatalf("StdImage() = %T, want *image.Gray", std)
	}
	if got := gray.GrayAt(1, 1).Y; got != 200 {
		t.Errorf("GrayAt(1,1) = %d, want 200", got)
	}
	if got := gray.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("GrayAt(0,0) = %d, want 0", got)
	}
}

func TestStdImage_NRGBA(t *testing.T) {
	img, err := NewImage(2, 1, WithChannels(4))
	if err != nil {
		t.Fatal(err)
	}
	img.SetPixelRGBA(0, 0, 10, 20, 30, 40)

	std := img.StdImage()
	nrgba, ok := std.(*image.NRGBA)
	if !ok {
		t.Fatalf("StdImage() = %T, want *image.NRGBA", std)
	}
	c := nrgba.NRGBAAt(0, 0)
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 40 {
		t.Errorf("NRGBAAt(0,0) = %v, want {10 20 30 40}", c)
	}
}

func TestStdImage_GrayReplication(t *testing.T) {
	// Single-channel uint16 content flattens to NRGBA with the gray value
	// replicated into rgb.
	img, err := NewImage(1, 1, WithChannels(1), WithFormat(FormatUint16))
	if err != nil {
		t.Fatal(err)
	}
	img.SetPixelRGB(0, 0, 65535, 0, 0)

	nrgba := img.StdImage().(*image.NRGBA)
	c := nrgba.NRGBAAt(0, 0)
	if c.R != 255 || c.G != 255 || c.B != 255 || c.A != 255 {
		t.Errorf("NRGBAAt(0,0) = %v, want white", c)
	}
}

func TestStdImage_HDRClamps(t *testing.T) {
	img, err := NewImage(1, 1, WithFormat(FormatFloat32))
	if err != nil {
		t.Fatal(err)
	}
	img.SetPixelRGB(0, 0, 2.5, -1, 1)

	nrgba := img.StdImage().(*image.NRGBA)
	c := nrgba.NRGBAAt(0, 0)
	if c.R != 255 || c.G != 0 || c.B != 255 {
		t.Errorf("NRGBAAt(0,0) = %v, want {255 0 255 255}", c)
	}
}

func TestStdImage_Paletted(t *testing.T) {
	pal, err := NewPalette(FormatUint8, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	pal.SetRGB(1, 10, 20, 30)
	img, err := NewImage(1, 1, WithFormat(FormatUint1), WithImagePalette(pal))
	if err != nil {
		t.Fatal(err)
	}
	img.PixelAt(0, 0, nil).SetIndex(1)

	nrgba := img.StdImage().(*image.NRGBA)
	c := nrgba.NRGBAAt(0, 0)
	if c.R != 10 || c.G != 20 || c.B != 30 {
		t.Errorf("NRGBAAt(0,0) = %v, want {10 20 30 255}", c)
	}
}

func TestFromStdImage(t *testing.T) {
	t.Run("gray", func(t *testing.T) {
		g := image.NewGray(image.Rect(0, 0, 2, 2))
		g.SetGray(1, 0, color.Gray{Y: 77})

		img, err := FromStdImage(g)
		if err != nil {
			t.Fatal(err)
		}
		if img.Channels() != 1 || img.Format() != FormatUint8 {
			t.Fatalf("shape = (%v, %d), want (uint8, 1)", img.Format(), img.Channels())
		}
		if got := img.PixelAt(1, 0, nil).Channel(0); got != 77 {
			t.Errorf("Channel(0) = %v, want 77", got)
		}
	})

	t.Run("gray16", func(t *testing.T) {
		g := image.NewGray16(image.Rect(0, 0, 1, 1))
		g.SetGray16(0, 0, color.Gray16{Y: 40000})

		img, err := FromStdImage(g)
		if err != nil {
			t.Fatal(err)
		}
		if img.Format() != FormatUint16 {
			t.Fatalf("Format() = %v, want uint16", img.Format())
		}
		if got := img.PixelAt(0, 0, nil).Channel(0); got != 40000 {
			t.Errorf("Channel(0) = %v, want 40000", got)
		}
	})

	t.Run("nrgba", func(t *testing.T) {
		m := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		m.SetNRGBA(0, 0, color.NRGBA{R: 1, G: 2, B: 3, A: 4})

		img, err := FromStdImage(m)
		if err != nil {
			t.Fatal(err)
		}
		if img.Channels() != 4 {
			t.Fatalf("Channels() = %d, want 4", img.Channels())
		}
		p := img.PixelAt(0, 0, nil)
		if p.R() != 1 || p.G() != 2 || p.B() != 3 || p.A() != 4 {
			t.Errorf("pixel = %v, want [1 2 3 4]", p.Channels())
		}
	})

	t.Run("offset bounds", func(t *testing.T) {
		m := image.NewNRGBA(image.Rect(5, 5, 7, 6))
		m.SetNRGBA(6, 5, color.NRGBA{R: 9, A: 255})

		img, err := FromStdImage(m)
		if err != nil {
			t.Fatal(err)
		}
		if img.Width() != 2 || img.Height() != 1 {
			t.Fatalf("size = %dx%d, want 2x1", img.Width(), img.Height())
		}
		if got := img.PixelAt(1, 0, nil).R(); got != 9 {
			t.Errorf("R() = %v, want 9", got)
		}
	})

	t.Run("generic fallback", func(t *testing.T) {
		m := image.NewRGBA(image.Rect(0, 0, 1, 1))
		m.SetRGBA(0, 0, color.RGBA{R: 8, G: 16, B: 32, A: 255})

		img, err := FromStdImage(m)
		if err != nil {
			t.Fatal(err)
		}
		p := img.PixelAt(0, 0, nil)
		if p.R() != 8 || p.G() != 16 || p.B() != 32 || p.A() != 255 {
			t.Errorf("pixel = %v, want [8 16 32 255]", p.Channels())
		}
	})
}

func TestEncodeDecode(t *testing.T) {
	src, err := NewImage(2, 2, WithChannels(4))
	if err != nil {
		t.Fatal(err)
	}
	src.SetPixelRGBA(0, 0, 255, 0, 0, 255)
	src.SetPixelRGBA(1, 0, 0, 255, 0, 255)
	src.SetPixelRGBA(0, 1, 0, 0, 255, 255)
	src.SetPixelRGBA(1, 1, 128, 128, 128, 255)

	for _, format := range []string{"png", "bmp", "tiff"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Encode(&buf, src, format); err != nil {
				t.Fatal(err)
			}

			img, err := Decode(&buf)
			if err != nil {
				t.Fatal(err)
			}
			if img.Width() != 2 || img.Height() != 2 {
				t.Fatalf("size = %dx%d, want 2x2", img.Width(), img.Height())
			}
			for p := range src.Pixels() {
				q := img.PixelAt(p.X(), p.Y(), nil)
				if p.R() != q.R() || p.G() != q.G() || p.B() != q.B() {
					t.Errorf("pixel (%d,%d) = [%v %v %v], want [%v %v %v]",
						p.X(), p.Y(), q.R(), q.G(), q.B(), p.R(), p.G(), p.B())
				}
			}
		})
	}
}

func TestEncode_UnsupportedFormat(t *testing.T) {
	img, err := NewImage(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img, "webp"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecode_Invalid(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Decode() of garbage succeeded")
	}
}
