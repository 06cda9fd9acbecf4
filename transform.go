package ggfilter

// Rec. 601 luma weights used by GreyScale.
const (
	gsRed   = 0.299
	gsGreen = 0.587
	gsBlue  = 0.114
)

// sepiaMatrix holds the sepia coefficients, one row per output channel (R, G, B).
var sepiaMatrix = [3][3]float64{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}

// scalePresets holds the per-channel multipliers {R, G, B} of the channel-scaling kinds.
var scalePresets = map[Kind][3]float64{
	Warm1: {2.45, 1.65, 2.32},
	Warm2: {2.13, 1.00, 1.00},
	Cool1: {1.67, 1.12, 1.32},
	Cool2: {1.23, 1.12, 1.68},
}

// Coefficients returns the {R, G, B} multipliers of a channel-scaling kind.
// The second result is false for kinds that are not channel-scaling presets.
func Coefficients(k Kind) ([3]float64, bool) {
	c, ok := scalePresets[k]
	return c, ok
}

// Transform maps one pixel through the given kind.
//
// Transform is pure and total: alpha always passes through, every color
// channel is truncated toward zero and clamped to [0, 255], and NoFilter or
// an unknown kind returns p unchanged.
func Transform(k Kind, p Pixel) Pixel {
	switch k {
	case InvertColors:
		return invert(p)
	case GreyScale:
		return greyScale(p)
	case Sepia:
		return sepia(p)
	case Warm1, Warm2, Cool1, Cool2:
		return scale(p, scalePresets[k])
	default:
		return p
	}
}

func invert(p Pixel) Pixel {
	return Pixel{A: p.A, R: 255 - p.R, G: 255 - p.G, B: 255 - p.B}
}

func greyScale(p Pixel) Pixel {
	v := truncClamp(dot3(gsRed, gsGreen, gsBlue, p))
	return Pixel{A: p.A, R: v, G: v, B: v}
}

func sepia(p Pixel) Pixel {
	m := &sepiaMatrix
	return Pixel{
		A: p.A,
		R: truncClamp(dot3(m[0][0], m[0][1], m[0][2], p)),
		G: truncClamp(dot3(m[1][0], m[1][1], m[1][2], p)),
		B: truncClamp(dot3(m[2][0], m[2][1], m[2][2], p)),
	}
}

func scale(p Pixel, c [3]float64) Pixel {
	return Pixel{
		A: p.A,
		R: truncClamp(c[0] * float64(p.R)),
		G: truncClamp(c[1] * float64(p.G)),
		B: truncClamp(c[2] * float64(p.B)),
	}
}

// dot3 computes wr*R + wg*G + wb*B left to right.
// The explicit float64 conversions keep the compiler from fusing the
// products into FMA instructions, which would change truncation results
// on arm64 and other FMA targets.
func dot3(wr, wg, wb float64, p Pixel) float64 {
	return float64(wr*float64(p.R)) + float64(wg*float64(p.G)) + float64(wb*float64(p.B))
}

// truncClamp truncates toward zero and clamps to [0, 255].
func truncClamp(v float64) uint8 {
	i := int(v)
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return uint8(i)
}
