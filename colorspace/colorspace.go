// Package colorspace provides Oklab and linear-sRGB conversions for packed
// pixel stores, exposed as conversion adapters for the traversal engine.
//
// Formulas follow:
// https://bottosson.github.io/posts/oklab/
// https://bottosson.github.io/posts/colorwrong/#what-can-we-do%3F
package colorspace

import "math"

// Linear is a linear-light sRGB value. All components, alpha included, are
// in nominal [0, 1] range; color components may leave it for out-of-gamut
// values.
type Linear struct {
	R float64
	G float64
	B float64
	A float64
}

// LinearFromSRGB converts gamma-encoded sRGB components in [0, 1].
func LinearFromSRGB(r, g, b, a float64) Linear {
	return Linear{
		R: toLinear(r),
		G: toLinear(g),
		B: toLinear(b),
		A: a,
	}
}

// SRGB returns the gamma-encoded components. Out-of-range components are
// clamped.
func (lc Linear) SRGB() (r, g, b, a float64) {
	return fromLinear(clamp01(lc.R)), fromLinear(clamp01(lc.G)), fromLinear(clamp01(lc.B)), clamp01(lc.A)
}

// InGamut reports whether every color component lies in [0, 1].
func (lc Linear) InGamut() bool {
	return lc.R >= 0 && lc.R <= 1 && lc.G >= 0 && lc.G <= 1 && lc.B >= 0 && lc.B <= 1
}

func toLinear(x float64) float64 {
	if x >= 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	}
	return x / 12.92
}

const invGamma = 1.0 / 2.4

func fromLinear(x float64) float64 {
	if x >= 0.0031308 {
		return math.Pow(x, invGamma)*1.055 - 0.055
	}
	return x * 12.92
}

// Lab is an Oklab value. L is perceived lightness, A green/red, B
// blue/yellow; Alpha is in [0, 1].
type Lab struct {
	L     float64
	A     float64
	B     float64
	Alpha float64
}

// LabFromLinear converts a linear-light sRGB value.
func LabFromLinear(lc Linear) Lab {
	l := math.Cbrt(0.4122214708*lc.R + 0.5363325363*lc.G + 0.0514459929*lc.B)
	m := math.Cbrt(0.2119034982*lc.R + 0.6806995451*lc.G + 0.1073969566*lc.B)
	s := math.Cbrt(0.0883024619*lc.R + 0.2817188376*lc.G + 0.6299787005*lc.B)

	return Lab{
		L:     0.2104542553*l + 0.7936177850*m - 0.0040720468*s,
		A:     1.9779984951*l - 2.4285922050*m + 0.4505937099*s,
		B:     0.0259040371*l + 0.7827717662*m - 0.8086757660*s,
		Alpha: lc.A,
	}
}

// Linear converts back to linear-light sRGB. When clip is non-nil and the
// result falls outside the sRGB gamut, the value is clipped and converted
// again.
func (lc Lab) Linear(clip Clipper) Linear {
	l := lc.L + 0.3963377774*lc.A + 0.2158037573*lc.B
	l = l * l * l
	m := lc.L - 0.1055613458*lc.A - 0.0638541728*lc.B
	m = m * m * m
	s := lc.L - 0.0894841775*lc.A - 1.2914855480*lc.B
	s = s * s * s

	out := Linear{
		R: +4.0767416621*l - 3.3077115913*m + 0.2309699292*s,
		G: -1.2684380046*l + 2.6097574011*m - 0.3413193965*s,
		B: -0.0041960863*l - 0.7034186147*m + 1.7076147010*s,
		A: lc.Alpha,
	}
	if clip != nil && !out.InGamut() {
		return clip(lc).Linear(nil)
	}
	return out
}

// Chroma returns the chroma (distance from the neutral axis).
func (lc Lab) Chroma() float64 {
	return math.Sqrt(lc.A*lc.A + lc.B*lc.B)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
