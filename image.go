package pix

import "iter"

// FrameType tags how a multi-frame image's frames relate to each other.
type FrameType uint8

const (
	// FrameTypeAnimation frames are timed animation frames.
	FrameTypeAnimation FrameType = iota

	// FrameTypePage frames are document pages.
	FrameTypePage

	// FrameTypeSequence frames are an untimed sequence.
	FrameTypeSequence
)

// String returns a string representation of the frame type.
func (t FrameType) String() string {
	switch t {
	case FrameTypeAnimation:
		return "animation"
	case FrameTypePage:
		return "page"
	case FrameTypeSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Image is the top-level aggregate: one pixel-data container plus attached
// metadata and, for animated or paged sources, additional frames. The image
// itself is always frame 0; extraFrames holds frames 1..n-1, so no
// self-referential frame list exists.
//
// EXIF and ICC data are carried as opaque blobs: the library round-trips
// them through conversion without interpreting them.
type Image struct {
	data *ImageData

	exif            []byte
	iccProfile      []byte
	iccProfileName  string
	iccCompression  int
	textData        map[string]string
	backgroundColor Color
	extraChannels   map[string]*ImageData

	loopCount     int
	frameType     FrameType
	frameDuration int
	frameIndex    int
	extraFrames   []*Image
}

// imageOptions holds optional configuration for image construction.
type imageOptions struct {
	format        Format
	channels      int
	palette       *Palette
	rowStride     int
	order         ChannelOrder
	hasOrder      bool
	exif          []byte
	iccProfile    []byte
	iccName       string
	textData      map[string]string
	loopCount     int
	frameType     FrameType
	frameDuration int
}

func defaultImageOptions() imageOptions {
	return imageOptions{
		format:    FormatUint8,
		channels:  3,
		frameType: FrameTypeSequence,
	}
}

// ImageOption configures image construction.
type ImageOption func(*imageOptions)

// WithFormat sets the channel storage format (default uint8).
func WithFormat(f Format) ImageOption {
	return func(o *imageOptions) { o.format = f }
}

// WithChannels sets the channel count (default 3).
func WithChannels(n int) ImageOption {
	return func(o *imageOptions) { o.channels = n }
}

// WithImagePalette makes the image paletted: one stored channel indexing
// the given palette.
func WithImagePalette(p *Palette) ImageOption {
	return func(o *imageOptions) { o.palette = p }
}

// WithRowStride sets an explicit row stride in bytes for buffers wrapped by
// ImageFromBytes.
func WithRowStride(stride int) ImageOption {
	return func(o *imageOptions) { o.rowStride = stride }
}

// WithChannelOrder declares the channel order of a buffer passed to
// ImageFromBytes. Non-canonical orders are permuted into canonical storage,
// and the order implies the channel count.
func WithChannelOrder(order ChannelOrder) ImageOption {
	return func(o *imageOptions) {
		o.order = order
		o.hasOrder = true
	}
}

// WithExif attaches an opaque EXIF blob.
func WithExif(exif []byte) ImageOption {
	return func(o *imageOptions) { o.exif = exif }
}

// WithICCProfile attaches an opaque ICC profile blob.
func WithICCProfile(name string, profile []byte) ImageOption {
	return func(o *imageOptions) {
		o.iccName = name
		o.iccProfile = profile
	}
}

// WithTextData attaches text metadata.
func WithTextData(text map[string]string) ImageOption {
	return func(o *imageOptions) { o.textData = text }
}

// WithLoopCount sets the animation loop count (0 loops forever).
func WithLoopCount(n int) ImageOption {
	return func(o *imageOptions) { o.loopCount = n }
}

// WithFrameType sets the frame relationship tag.
func WithFrameType(t FrameType) ImageOption {
	return func(o *imageOptions) { o.frameType = t }
}

// WithFrameDuration sets the frame display duration in milliseconds.
func WithFrameDuration(ms int) ImageOption {
	return func(o *imageOptions) { o.frameDuration = ms }
}

// NewImage creates an image with the given dimensions.
func NewImage(width, height int, opts ...ImageOption) (*Image, error) {
	o := defaultImageOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var (
		data *ImageData
		err  error
	)
	if o.palette != nil {
		data, err = NewImageDataPaletted(width, height, o.format, o.palette)
	} else {
		data, err = NewImageData(width, height, o.channels, o.format)
	}
	if err != nil {
		return nil, err
	}
	return newImageWith(data, &o), nil
}

// ImageFromBytes creates an image over a caller-supplied buffer of raw
// channel-interleaved pixel data, the feed path for format decoders. The
// buffer is wrapped, not copied, unless a non-canonical channel order
// requires permuting into canonical storage.
func ImageFromBytes(width, height int, data []byte, opts ...ImageOption) (*Image, error) {
	o := defaultImageOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.hasOrder {
		if !o.order.IsValid() {
			return nil, ErrInvalidFormat
		}
		o.channels = o.order.Channels()
	}

	d, err := ImageDataFromRaw(data, width, height, o.channels, o.format, o.rowStride)
	if err != nil {
		return nil, err
	}
	if o.palette != nil {
		if o.channels != 1 {
			return nil, ErrInvalidChannels
		}
		d.palette = o.palette
	}

	if o.hasOrder && !o.order.isCanonical() {
		reordered := d.Clone(true)
		src := newPixel(d)
		dst := newPixel(reordered)
		for {
			for i := 0; i < d.channels; i++ {
				dst.SetChannel(o.order.channelAt(i), src.Channel(i))
			}
			if !src.Next() || !dst.Next() {
				break
			}
		}
		d = reordered
	}

	return newImageWith(d, &o), nil
}

// ImageFromImageData wraps an existing container in an image.
func ImageFromImageData(data *ImageData, opts ...ImageOption) *Image {
	o := defaultImageOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newImageWith(data, &o)
}

func newImageWith(data *ImageData, o *imageOptions) *Image {
	return &Image{
		data:           data,
		exif:           o.exif,
		iccProfile:     o.iccProfile,
		iccProfileName: o.iccName,
		textData:       o.textData,
		loopCount:      o.loopCount,
		frameType:      o.frameType,
		frameDuration:  o.frameDuration,
	}
}

// ImageData returns the image's pixel-data container.
func (i *Image) ImageData() *ImageData { return i.data }

// Width returns the image width in pixels.
func (i *Image) Width() int { return i.data.width }

// Height returns the image height in pixels.
func (i *Image) Height() int { return i.data.height }

// Format returns the channel storage format.
func (i *Image) Format() Format { return i.data.format }

// Channels returns the resolved channel count (the palette's for paletted
// images).
func (i *Image) Channels() int { return i.data.NumChannels() }

// Palette returns the image's palette, or nil.
func (i *Image) Palette() *Palette { return i.data.palette }

// HasPalette returns true for paletted images.
func (i *Image) HasPalette() bool { return i.data.palette != nil }

// MaxChannelValue returns the largest representable channel value.
func (i *Image) MaxChannelValue() float64 { return i.data.MaxChannelValue() }

// IsLDR returns true for low dynamic range formats.
func (i *Image) IsLDR() bool { return i.data.IsLDR() }

// IsHDR returns true for high dynamic range formats.
func (i *Image) IsHDR() bool { return i.data.IsHDR() }

// PixelAt returns a cursor positioned at (x, y); see ImageData.PixelAt.
func (i *Image) PixelAt(x, y int, reuse *Pixel) *Pixel {
	return i.data.PixelAt(x, y, reuse)
}

// SetPixelRGB writes the first three channels of pixel (x, y).
func (i *Image) SetPixelRGB(x, y int, r, g, b float64) {
	i.data.SetPixelRGB(x, y, r, g, b)
}

// SetPixelRGBA writes all four channels of pixel (x, y).
func (i *Image) SetPixelRGBA(x, y int, r, g, b, a float64) {
	i.data.SetPixelRGBA(x, y, r, g, b, a)
}

// SetPixelRGBSafe writes pixel (x, y), ignoring out-of-range positions.
func (i *Image) SetPixelRGBSafe(x, y int, r, g, b float64) {
	i.data.SetPixelRGBSafe(x, y, r, g, b)
}

// SetPixelRGBASafe writes pixel (x, y), ignoring out-of-range positions.
func (i *Image) SetPixelRGBASafe(x, y int, r, g, b, a float64) {
	i.data.SetPixelRGBASafe(x, y, r, g, b, a)
}

// Pixels iterates over every pixel in row-major order.
func (i *Image) Pixels() iter.Seq[*Pixel] { return i.data.Pixels() }

// Range iterates over a sub-rectangle; see ImageData.Range.
func (i *Image) Range(x, y, w, h int) iter.Seq[*Pixel] {
	return i.data.Range(x, y, w, h)
}

// Bytes returns the pixel data, optionally remapped; see ImageData.Bytes.
func (i *Image) Bytes(opts ...BytesOption) []byte { return i.data.Bytes(opts...) }

// Exif returns the attached EXIF blob, or nil.
func (i *Image) Exif() []byte { return i.exif }

// SetExif attaches an opaque EXIF blob.
func (i *Image) SetExif(exif []byte) { i.exif = exif }

// ICCProfile returns the attached ICC profile blob, or nil.
func (i *Image) ICCProfile() []byte { return i.iccProfile }

// ICCProfileName returns the name of the attached ICC profile.
func (i *Image) ICCProfileName() string { return i.iccProfileName }

// SetICCProfile attaches an opaque ICC profile blob.
func (i *Image) SetICCProfile(name string, profile []byte) {
	i.iccProfileName = name
	i.iccProfile = profile
}

// ICCCompression returns the container-level compression tag of the attached
// ICC profile (0 when uncompressed or absent).
func (i *Image) ICCCompression() int { return i.iccCompression }

// SetICCCompression records the compression tag the profile was stored with.
func (i *Image) SetICCCompression(method int) { i.iccCompression = method }

// TextData returns the text metadata map, or nil.
func (i *Image) TextData() map[string]string { return i.textData }

// AddTextData adds a text metadata entry.
func (i *Image) AddTextData(key, value string) {
	if i.textData == nil {
		i.textData = make(map[string]string)
	}
	i.textData[key] = value
}

// BackgroundColor returns the background color, or nil.
func (i *Image) BackgroundColor() Color { return i.backgroundColor }

// SetBackgroundColor sets the background color.
func (i *Image) SetBackgroundColor(c Color) { i.backgroundColor = c }

// ExtraChannel returns the named non-color channel buffer, or nil.
func (i *Image) ExtraChannel(name string) *ImageData {
	return i.extraChannels[name]
}

// SetExtraChannel attaches a named non-color channel buffer.
func (i *Image) SetExtraChannel(name string, d *ImageData) {
	if i.extraChannels == nil {
		i.extraChannels = make(map[string]*ImageData)
	}
	i.extraChannels[name] = d
}

// LoopCount returns the animation loop count (0 loops forever).
func (i *Image) LoopCount() int { return i.loopCount }

// SetLoopCount sets the animation loop count.
func (i *Image) SetLoopCount(n int) { i.loopCount = n }

// FrameType returns the frame relationship tag.
func (i *Image) FrameType() FrameType { return i.frameType }

// SetFrameType sets the frame relationship tag.
func (i *Image) SetFrameType(t FrameType) { i.frameType = t }

// FrameDuration returns the frame display duration in milliseconds.
func (i *Image) FrameDuration() int { return i.frameDuration }

// SetFrameDuration sets the frame display duration in milliseconds.
func (i *Image) SetFrameDuration(ms int) { i.frameDuration = ms }

// FrameIndex returns this frame's position in its sequence.
func (i *Image) FrameIndex() int { return i.frameIndex }

// NumFrames returns the total frame count; the image itself is frame 0.
func (i *Image) NumFrames() int { return 1 + len(i.extraFrames) }

// HasAnimation returns true when the image carries more than one frame.
func (i *Image) HasAnimation() bool { return len(i.extraFrames) > 0 }

// Frame returns frame n; Frame(0) is the image itself. Out-of-range frames
// return nil.
func (i *Image) Frame(n int) *Image {
	if n == 0 {
		return i
	}
	if n < 1 || n > len(i.extraFrames) {
		return nil
	}
	return i.extraFrames[n-1]
}

// Frames iterates over all frames, the image itself first.
func (i *Image) Frames() iter.Seq[*Image] {
	return func(yield func(*Image) bool) {
		if !yield(i) {
			return
		}
		for _, f := range i.extraFrames {
			if !yield(f) {
				return
			}
		}
	}
}

// AddFrame appends a frame and returns it, assigning its frame index.
func (i *Image) AddFrame(f *Image) *Image {
	f.frameIndex = i.NumFrames()
	i.extraFrames = append(i.extraFrames, f)
	return f
}

// Clone returns a deep copy of the image: pixel data, palette, metadata and
// all frames. With skipPixels the pixel buffers are zeroed, keeping only
// structure.
func (i *Image) Clone(skipPixels bool) *Image {
	clone := &Image{
		data:           i.data.Clone(skipPixels),
		iccProfileName: i.iccProfileName,
		iccCompression: i.iccCompression,
		loopCount:      i.loopCount,
		frameType:      i.frameType,
		frameDuration:  i.frameDuration,
		frameIndex:     i.frameIndex,
	}
	if i.exif != nil {
		clone.exif = append([]byte(nil), i.exif...)
	}
	if i.iccProfile != nil {
		clone.iccProfile = append([]byte(nil), i.iccProfile...)
	}
	if i.textData != nil {
		clone.textData = make(map[string]string, len(i.textData))
		for k, v := range i.textData {
			clone.textData[k] = v
		}
	}
	if i.backgroundColor != nil {
		clone.backgroundColor = i.backgroundColor.Clone()
	}
	if i.extraChannels != nil {
		clone.extraChannels = make(map[string]*ImageData, len(i.extraChannels))
		for k, v := range i.extraChannels {
			clone.extraChannels[k] = v.Clone(skipPixels)
		}
	}
	for _, f := range i.extraFrames {
		clone.extraFrames = append(clone.extraFrames, f.Clone(skipPixels))
	}
	return clone
}

// copyMetadataFrom copies the non-pixel attributes of src, deep-copying the
// blobs so converted images never share mutable state with their source.
func (i *Image) copyMetadataFrom(src *Image) {
	if src.exif != nil {
		i.exif = append([]byte(nil), src.exif...)
	}
	if src.iccProfile != nil {
		i.iccProfile = append([]byte(nil), src.iccProfile...)
	}
	i.iccProfileName = src.iccProfileName
	i.iccCompression = src.iccCompression
	if src.textData != nil {
		i.textData = make(map[string]string, len(src.textData))
		for k, v := range src.textData {
			i.textData[k] = v
		}
	}
	if src.backgroundColor != nil {
		i.backgroundColor = src.backgroundColor.Clone()
	}
	i.loopCount = src.loopCount
	i.frameType = src.frameType
	i.frameDuration = src.frameDuration
	i.frameIndex = src.frameIndex
}
