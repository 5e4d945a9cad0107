package flow

import "fmt"

// Format identifies which of the two flow file variants a Field carries.
// The channel count is always derived from the format, never stored
// separately.
type Format int

const (
	// FormatFlo is the two-channel variant: horizontal and vertical
	// displacement per cell. File tag "PIEH".
	FormatFlo Format = iota

	// FormatFloc is the three-channel variant: displacement plus a
	// per-cell confidence score. File tag "PIEI".
	FormatFloc
)

// Header identification tags, exactly four bytes each on the wire.
const (
	tagFlo  = "PIEH"
	tagFloc = "PIEI"
)

// Channels returns the number of float32 samples per cell for the format.
func (f Format) Channels() int {
	if f == FormatFloc {
		return 3
	}
	return 2
}

// Tag returns the four-byte header tag written for this format.
func (f Format) Tag() string {
	if f == FormatFloc {
		return tagFloc
	}
	return tagFlo
}

func (f Format) String() string {
	switch f {
	case FormatFlo:
		return "flo (u,v)"
	case FormatFloc:
		return "floc (u,v,conf)"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// formatForTag maps a header tag to its Format. ok is false for
// unrecognised tags.
func formatForTag(tag []byte) (f Format, ok bool) {
	switch string(tag) {
	case tagFlo:
		return FormatFlo, true
	case tagFloc:
		return FormatFloc, true
	default:
		return 0, false
	}
}

// Field is a dense 2D motion-vector grid. Samples are laid out row-major
// with channels interleaved per cell: cell (x, y) starts at
// (y*Width + x) * Format.Channels().
type Field struct {
	Width   int
	Height  int
	Format  Format
	Samples []float32
}

// NewField allocates a zero-filled field with the given format and
// dimensions.
func NewField(format Format, width, height int) *Field {
	return &Field{
		Width:   width,
		Height:  height,
		Format:  format,
		Samples: make([]float32, width*height*format.Channels()),
	}
}

// index returns the flat sample offset of channel ch in cell (x, y).
func (f *Field) index(x, y, ch int) int {
	return (y*f.Width+x)*f.Format.Channels() + ch
}

// U returns the horizontal displacement of cell (x, y).
func (f *Field) U(x, y int) float32 {
	return f.Samples[f.index(x, y, 0)]
}

// V returns the vertical displacement of cell (x, y).
func (f *Field) V(x, y int) float32 {
	return f.Samples[f.index(x, y, 1)]
}

// Conf returns the confidence of cell (x, y), or 0 for a two-channel
// field, which carries no confidence channel.
func (f *Field) Conf(x, y int) float32 {
	if f.Format.Channels() < 3 {
		return 0
	}
	return f.Samples[f.index(x, y, 2)]
}

// Set writes one cell. conf is ignored for two-channel fields.
func (f *Field) Set(x, y int, u, v, conf float32) {
	i := f.index(x, y, 0)
	f.Samples[i] = u
	f.Samples[i+1] = v
	if f.Format.Channels() >= 3 {
		f.Samples[i+2] = conf
	}
}
