package pix

import (
	"errors"
	"math"
	"testing"
)

func TestNewColor(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		length  int
		wantErr error
	}{
		{"rgb uint8", FormatUint8, 3, nil},
		{"gray uint16", FormatUint16, 1, nil},
		{"rgba float32", FormatFloat32, 4, nil},
		{"packed uint4", FormatUint4, 2, nil},
		{"zero channels", FormatUint8, 0, ErrInvalidChannels},
		{"five channels", FormatUint8, 5, ErrInvalidChannels},
		{"negative channels", FormatUint8, -1, ErrInvalidChannels},
		{"invalid format", Format(200), 3, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewColor(tt.format, tt.length)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewColor() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil {
				return
			}
			if c.Length() != tt.length {
				t.Errorf("Length() = %d, want %d", c.Length(), tt.length)
			}
			if c.Format() != tt.format {
				t.Errorf("Format() = %v, want %v", c.Format(), tt.format)
			}
			for i := 0; i < tt.length; i++ {
				if c.Channel(i) != 0 {
					t.Errorf("Channel(%d) = %v, want 0", i, c.Channel(i))
				}
			}
		})
	}
}

func TestColorValue_ChannelAccess(t *testing.T) {
	c, err := NewColorRGB(FormatUint8, 10, 20, 30)
	if err != nil {
		t.Fatal(err)
	}

	if got := c.R(); got != 10 {
		t.Errorf("R() = %v, want 10", got)
	}
	if got := c.G(); got != 20 {
		t.Errorf("G() = %v, want 20", got)
	}
	if got := c.B(); got != 30 {
		t.Errorf("B() = %v, want 30", got)
	}

	// Channels the color does not store read as 0, except alpha which
	// reads as the format maximum.
	if got := c.Channel(3); got != 0 {
		t.Errorf("Channel(3) = %v, want 0", got)
	}
	if got := c.Channel(-1); got != 0 {
		t.Errorf("Channel(-1) = %v, want 0", got)
	}
	if got := c.A(); got != 255 {
		t.Errorf("A() = %v, want 255", got)
	}

	// Out-of-range writes are ignored.
	c.SetChannel(3, 99)
	c.SetA(99)
	if got := c.A(); got != 255 {
		t.Errorf("A() after out-of-range write = %v, want 255", got)
	}
	if got := c.Channel(1); got != 20 {
		t.Errorf("Channel(1) after out-of-range write = %v, want 20", got)
	}
}

func TestColorValue_AlphaChannel(t *testing.T) {
	c, err := NewColorRGBA(FormatUint8, 10, 20, 30, 40)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.A(); got != 40 {
		t.Errorf("A() = %v, want 40", got)
	}
	c.SetA(200)
	if got := c.A(); got != 200 {
		t.Errorf("A() = %v, want 200", got)
	}
}

func TestColorValue_Truncation(t *testing.T) {
	tests := []struct {
		name     string
		format   Format
		in       float64
		expected float64
	}{
		{"uint8 fraction", FormatUint8, 250.9, 250},
		{"uint8 whole", FormatUint8, 128, 128},
		{"uint4 fraction", FormatUint4, 14.7, 14},
		{"int8 negative fraction", FormatInt8, -5.7, -5},
		{"int16 negative fraction", FormatInt16, -100.2, -100},
		{"uint16 nan", FormatUint16, math.NaN(), 0},
		{"float32 fraction kept", FormatFloat32, 0.25, 0.25},
		{"float64 fraction kept", FormatFloat64, 0.1, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewColor(tt.format, 1)
			if err != nil {
				t.Fatal(err)
			}
			c.SetChannel(0, tt.in)
			if got := c.Channel(0); got != tt.expected {
				t.Errorf("Channel(0) = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestColorValue_Normalized(t *testing.T) {
	c, err := NewColor(FormatUint8, 1)
	if err != nil {
		t.Fatal(err)
	}
	c.SetChannelNormalized(0, 1)
	if got := c.Channel(0); got != 255 {
		t.Errorf("Channel(0) = %v, want 255", got)
	}
	if got := c.ChannelNormalized(0); got != 1 {
		t.Errorf("ChannelNormalized(0) = %v, want 1", got)
	}

	// 0.5 * 255 truncates to 127.
	c.SetChannelNormalized(0, 0.5)
	if got := c.Channel(0); got != 127 {
		t.Errorf("Channel(0) = %v, want 127", got)
	}

	f, err := NewColor(FormatFloat32, 1)
	if err != nil {
		t.Fatal(err)
	}
	f.SetChannelNormalized(0, 0.5)
	if got := f.ChannelNormalized(0); got != 0.5 {
		t.Errorf("float ChannelNormalized(0) = %v, want 0.5", got)
	}
}

func TestColorValue_Luminance(t *testing.T) {
	tests := []struct {
		name     string
		r, g, b  float64
		expected float64
	}{
		{"black", 0, 0, 0, 0},
		{"white", 255, 255, 255, 255},
		{"red", 255, 0, 0, 0.299 * 255},
		{"green", 0, 255, 0, 0.587 * 255},
		{"blue", 0, 0, 255, 0.114 * 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewColorRGB(FormatUint8, tt.r, tt.g, tt.b)
			if err != nil {
				t.Fatal(err)
			}
			if got := c.Luminance(); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Luminance() = %v, want %v", got, tt.expected)
			}
			if got := c.Channel(int(ChannelLuminance)); got != c.Luminance() {
				t.Errorf("Channel(luminance) = %v, want %v", got, c.Luminance())
			}
		})
	}
}

func TestColorFromChannels(t *testing.T) {
	c, err := ColorFromChannels(FormatUint16, 1000, 2000)
	if err != nil {
		t.Fatal(err)
	}
	if c.Length() != 2 {
		t.Errorf("Length() = %d, want 2", c.Length())
	}
	if c.Channel(0) != 1000 || c.Channel(1) != 2000 {
		t.Errorf("Channels() = %v, want [1000 2000]", c.Channels())
	}

	if _, err := ColorFromChannels(FormatUint8); !errors.Is(err, ErrInvalidChannels) {
		t.Errorf("ColorFromChannels() error = %v, want ErrInvalidChannels", err)
	}
}

func TestColorValue_Equal(t *testing.T) {
	a, _ := NewColorRGB(FormatUint8, 1, 2, 3)
	b, _ := NewColorRGB(FormatUint8, 1, 2, 3)
	c, _ := NewColorRGB(FormatUint8, 1, 2, 4)
	d, _ := NewColorRGBA(FormatUint8, 1, 2, 3, 4)

	if !a.Equal(b) {
		t.Error("identical colors not equal")
	}
	if a.Equal(c) {
		t.Error("different colors equal")
	}
	if a.Equal(d) {
		t.Error("different lengths equal")
	}
	if a.Equal(nil) {
		t.Error("nil comparison equal")
	}

	// Same values in a different format still compare equal.
	e, _ := NewColorRGB(FormatUint16, 1, 2, 3)
	if !a.Equal(e) {
		t.Error("same values across formats not equal")
	}
}

func TestColorValue_Clone(t *testing.T) {
	a, _ := NewColorRGB(FormatUint8, 1, 2, 3)
	b := a.Clone()
	a.SetR(99)
	if b.R() != 1 {
		t.Errorf("clone mutated with original: R() = %v, want 1", b.R())
	}
	if b.Length() != 3 || b.Format() != FormatUint8 {
		t.Errorf("clone = %d channels of %v, want 3 of uint8", b.Length(), b.Format())
	}
}

func TestColorValue_Convert(t *testing.T) {
	src, err := NewColorRGB(FormatUint8, 255, 128, 0)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("to float32", func(t *testing.T) {
		dst := src.Convert(ConvertFormat(FormatFloat32))
		if dst.Format() != FormatFloat32 {
			t.Fatalf("Format() = %v, want float32", dst.Format())
		}
		if got := dst.Channel(0); got != 1 {
			t.Errorf("Channel(0) = %v, want 1", got)
		}
		want := float64(float32(128.0 / 255.0))
		if got := dst.Channel(1); got != want {
			t.Errorf("Channel(1) = %v, want %v", got, want)
		}
		if got := dst.Channel(2); got != 0 {
			t.Errorf("Channel(2) = %v, want 0", got)
		}
	})

	t.Run("add alpha", func(t *testing.T) {
		dst := src.Convert(ConvertChannels(4))
		if dst.Length() != 4 {
			t.Fatalf("Length() = %d, want 4", dst.Length())
		}
		if got := dst.A(); got != 255 {
			t.Errorf("A() = %v, want 255", got)
		}
	})

	t.Run("add alpha explicit", func(t *testing.T) {
		dst := src.Convert(ConvertChannels(4), ConvertAlpha(42))
		if got := dst.A(); got != 42 {
			t.Errorf("A() = %v, want 42", got)
		}
	})

	t.Run("drop channels", func(t *testing.T) {
		dst := src.Convert(ConvertChannels(1))
		if dst.Length() != 1 {
			t.Fatalf("Length() = %d, want 1", dst.Length())
		}
		if got := dst.Channel(0); got != 255 {
			t.Errorf("Channel(0) = %v, want 255", got)
		}
	})

	t.Run("widen depth", func(t *testing.T) {
		dst := src.Convert(ConvertFormat(FormatUint16))
		if got := dst.Channel(0); got != 65535 {
			t.Errorf("Channel(0) = %v, want 65535", got)
		}
	})
}

func TestChannelOrder(t *testing.T) {
	tests := []struct {
		order    ChannelOrder
		channels int
	}{
		{OrderRGBA, 4},
		{OrderBGRA, 4},
		{OrderARGB, 4},
		{OrderABGR, 4},
		{OrderRGB, 3},
		{OrderBGR, 3},
		{OrderGrayAlpha, 2},
		{OrderRed, 1},
	}

	for _, tt := range tests {
		t.Run(tt.order.String(), func(t *testing.T) {
			if got := tt.order.Channels(); got != tt.channels {
				t.Errorf("Channels() = %d, want %d", got, tt.channels)
			}
			if !tt.order.IsValid() {
				t.Error("IsValid() = false")
			}
		})
	}

	if ChannelOrder(99).IsValid() {
		t.Error("ChannelOrder(99).IsValid() = true")
	}
	if got := ChannelOrder(99).Channels(); got != 0 {
		t.Errorf("ChannelOrder(99).Channels() = %d, want 0", got)
	}
}
