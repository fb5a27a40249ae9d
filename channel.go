package pix

// Channel selects one component of a color or pixel.
//
// The first four values double as raw channel indices into the backing
// storage. ChannelLuminance is a computed sentinel: reading it yields the
// BT.601 luma of the red, green and blue channels instead of stored data.
type Channel int

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
	ChannelAlpha
	ChannelLuminance
)

// String returns a string representation of the channel.
func (c Channel) String() string {
	switch c {
	case ChannelRed:
		return "red"
	case ChannelGreen:
		return "green"
	case ChannelBlue:
		return "blue"
	case ChannelAlpha:
		return "alpha"
	case ChannelLuminance:
		return "luminance"
	default:
		return "unknown"
	}
}

// luminance computes the BT.601 luma of a color. Channels the color does not
// store contribute 0, matching the permissive channel-access policy.
func luminance(c Color) float64 {
	return 0.299*c.R() + 0.587*c.G() + 0.114*c.B()
}

// ChannelOrder describes the layout of interleaved channels in an external
// byte buffer, for feeding raw decoder output in and exporting bytes out.
type ChannelOrder uint8

const (
	// OrderRGBA is the canonical 4-channel layout used internally.
	OrderRGBA ChannelOrder = iota

	// OrderBGRA is the 4-channel layout common on Windows surfaces.
	OrderBGRA

	// OrderARGB stores alpha first.
	OrderARGB

	// OrderABGR is the fully reversed 4-channel layout.
	OrderABGR

	// OrderRGB is the canonical 3-channel layout.
	OrderRGB

	// OrderBGR is the reversed 3-channel layout.
	OrderBGR

	// OrderGrayAlpha is the 2-channel gray plus alpha layout.
	OrderGrayAlpha

	// OrderRed is the single-channel layout.
	OrderRed

	orderCount
)

// orderInfo describes one channel order: how many channels it carries and,
// for each buffer position, which canonical channel is stored there.
type orderInfo struct {
	channels int
	perm     [4]int
}

var orderInfoTable = [orderCount]orderInfo{
	OrderRGBA:      {channels: 4, perm: [4]int{0, 1, 2, 3}},
	OrderBGRA:      {channels: 4, perm: [4]int{2, 1, 0, 3}},
	OrderARGB:      {channels: 4, perm: [4]int{3, 0, 1, 2}},
	OrderABGR:      {channels: 4, perm: [4]int{3, 2, 1, 0}},
	OrderRGB:       {channels: 3, perm: [4]int{0, 1, 2, 0}},
	OrderBGR:       {channels: 3, perm: [4]int{2, 1, 0, 0}},
	OrderGrayAlpha: {channels: 2, perm: [4]int{0, 1, 0, 0}},
	OrderRed:       {channels: 1, perm: [4]int{0, 0, 0, 0}},
}

// Channels returns the number of channels the order describes.
func (o ChannelOrder) Channels() int {
	if o >= orderCount {
		return 0
	}
	return orderInfoTable[o].channels
}

// IsValid returns true if the order is a valid known channel order.
func (o ChannelOrder) IsValid() bool {
	return o < orderCount
}

// isCanonical reports whether the order matches internal storage, in which
// case no remapping is needed.
func (o ChannelOrder) isCanonical() bool {
	switch o {
	case OrderRGBA, OrderRGB, OrderGrayAlpha, OrderRed:
		return true
	default:
		return false
	}
}

// channelAt returns the canonical channel stored at buffer position i.
func (o ChannelOrder) channelAt(i int) int {
	return orderInfoTable[o].perm[i]
}

// String returns a string representation of the channel order.
func (o ChannelOrder) String() string {
	switch o {
	case OrderRGBA:
		return "rgba"
	case OrderBGRA:
		return "bgra"
	case OrderARGB:
		return "argb"
	case OrderABGR:
		return "abgr"
	case OrderRGB:
		return "rgb"
	case OrderBGR:
		return "bgr"
	case OrderGrayAlpha:
		return "gray-alpha"
	case OrderRed:
		return "red"
	default:
		return "unknown"
	}
}
