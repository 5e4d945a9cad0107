package flow

import "math"

// Resample produces a new field of the requested dimensions by bilinear
// interpolation over src. The output format always mirrors the source
// format.
//
// scaleX and scaleY are the magnification factors between the grids. A
// non-positive scale is treated as unspecified and inferred from the size
// ratio (width/src.Width, height/src.Height), so callers can either state
// explicit factors or let the requested output size determine them.
//
// Boundary policy: each output cell samples a 2x2 source footprint; taps
// that fall outside the source grid are skipped and their weight is not
// redistributed, so cells near the right and bottom edges come out
// attenuated. This matches the historical tool output exactly and is load
// bearing for anyone diffing against previously produced files.
//
// width and height must be positive; violating that is a programmer
// error, not a runtime failure.
func Resample(src *Field, width, height int, scaleX, scaleY float64) *Field {
	if scaleX <= 0 {
		scaleX = float64(width) / float64(src.Width)
	}
	if scaleY <= 0 {
		scaleY = float64(height) / float64(src.Height)
	}

	dst := NewField(src.Format, width, height)
	hasConf := src.Format.Channels() >= 3

	for y := 0; y < height; y++ {
		ry := float64(y) / scaleY
		ky := int(math.Floor(ry))

		for x := 0; x < width; x++ {
			rx := float64(x) / scaleX
			kx := int(math.Floor(rx))

			w := bilinearWeights(rx-float64(kx), ry-float64(ky))

			var u, v, c float32
			for dy := 0; dy < 2; dy++ {
				sy := ky + dy
				if sy < 0 || sy >= src.Height {
					continue
				}
				for dx := 0; dx < 2; dx++ {
					sx := kx + dx
					if sx < 0 || sx >= src.Width {
						continue
					}
					wt := w[dx][dy]
					u += wt * src.U(sx, sy)
					v += wt * src.V(sx, sy)
					if hasConf {
						c += wt * src.Conf(sx, sy)
					}
				}
			}
			dst.Set(x, y, u, v, c)
		}
	}

	return dst
}

// bilinearWeights returns the 2x2 interpolation weights for fractional
// offsets fx, fy in [0, 1), indexed [dx][dy]. For a full in-bounds
// footprint the four weights sum to 1.
func bilinearWeights(fx, fy float64) [2][2]float32 {
	return [2][2]float32{
		{float32((1 - fx) * (1 - fy)), float32((1 - fx) * fy)},
		{float32(fx * (1 - fy)), float32(fx * fy)},
	}
}
