package flow

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the displacement magnitudes of a field. MeanConfidence
// is zero for two-channel fields, which carry no confidence channel.
type Summary struct {
	Cells          int
	MinMagnitude   float64
	MaxMagnitude   float64
	MeanMagnitude  float64
	StdMagnitude   float64
	MeanConfidence float64
}

// Summarize computes per-cell displacement magnitudes and reduces them to
// a Summary. The field must have at least one cell; violating that is a
// programmer error and panics.
func Summarize(f *Field) Summary {
	if f.Width <= 0 || f.Height <= 0 {
		panic("flow: Summarize on empty field")
	}

	mags := make([]float64, 0, f.Width*f.Height)
	var confSum float64
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			mags = append(mags, math.Hypot(float64(f.U(x, y)), float64(f.V(x, y))))
			confSum += float64(f.Conf(x, y))
		}
	}

	s := Summary{
		Cells:         len(mags),
		MinMagnitude:  floats.Min(mags),
		MaxMagnitude:  floats.Max(mags),
		MeanMagnitude: stat.Mean(mags, nil),
		StdMagnitude:  stat.StdDev(mags, nil),
	}
	if f.Format.Channels() >= 3 {
		s.MeanConfidence = confSum / float64(len(mags))
	}
	return s
}

func (s Summary) String() string {
	return fmt.Sprintf("cells=%d |v| min=%.3f max=%.3f mean=%.3f std=%.3f conf=%.3f",
		s.Cells, s.MinMagnitude, s.MaxMagnitude, s.MeanMagnitude, s.StdMagnitude, s.MeanConfidence)
}
