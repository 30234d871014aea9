// Gamut clipping after:
// https://bottosson.github.io/posts/gamutclipping/

package colorspace

import "math"

const eps = 0.00001

// Clipper maps an out-of-gamut Oklab value to one inside the sRGB gamut.
type Clipper func(Lab) Lab

// ClipPreserveChroma projects towards the point on the neutral axis with
// the same lightness, clamped to [0, 1].
func ClipPreserveChroma(lc Lab) Lab {
	return clipProject(lc, math.Min(math.Max(lc.L, 0), 1))
}

// ClipAdaptive returns a clipper that projects towards a lightness chosen
// adaptively around 0.5; alpha controls how strongly lightness is
// compressed (0.05 is a reasonable default).
func ClipAdaptive(alpha float64) Clipper {
	return func(lc Lab) Lab {
		c := math.Max(eps, lc.Chroma())
		a := lc.A / c
		b := lc.B / c

		ld := lc.L - 0.5
		e1 := 0.5 + math.Abs(ld) + alpha*c
		l0 := 0.5 * (1 + sign(ld)*(e1-math.Sqrt(e1*e1-2*math.Abs(ld))))

		t := findGamutIntersection(a, b, lc.L, c, l0)
		return Lab{
			L:     l0*(1-t) + t*lc.L,
			A:     t * c * a,
			B:     t * c * b,
			Alpha: lc.Alpha,
		}
	}
}

func clipProject(lc Lab, l0 float64) Lab {
	c := math.Max(eps, lc.Chroma())
	a := lc.A / c
	b := lc.B / c

	t := findGamutIntersection(a, b, lc.L, c, l0)
	return Lab{
		L:     l0*(1-t) + t*lc.L,
		A:     t * c * a,
		B:     t * c * b,
		Alpha: lc.Alpha,
	}
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}

// findGamutIntersection intersects the line
// L = L0*(1-t) + t*L1, C = t*C1 with the gamut boundary.
// a and b must be normalized so a^2 + b^2 == 1.
func findGamutIntersection(a, b, l1, c1, l0 float64) float64 {
	lCusp, cCusp := findCusp(a, b)

	if ((l1-l0)*cCusp - (lCusp-l0)*c1) <= 0 {
		// lower half
		return cCusp * l0 / (c1*lCusp + cCusp*(l0-l1))
	}

	// upper half: intersect with the triangle edge first, then refine with
	// one step of Halley's method
	t := cCusp * (l0 - 1) / (c1*(lCusp-1) + cCusp*(l0-l1))

	dL := l1 - l0
	dC := c1

	kL := +0.3963377774*a + 0.2158037573*b
	kM := -0.1055613458*a - 0.0638541728*b
	kS := -0.0894841775*a - 1.2914855480*b

	lDt := dL + dC*kL
	mDt := dL + dC*kM
	sDt := dL + dC*kS

	L := l0*(1-t) + t*l1
	C := t * c1

	l_ := L + C*kL
	l := l_ * l_ * l_
	ldt := 3 * lDt * l_ * l_
	ldt2 := 6 * lDt * lDt * l_

	m_ := L + C*kM
	m := m_ * m_ * m_
	mdt := 3 * mDt * m_ * m_
	mdt2 := 6 * mDt * mDt * m_

	s_ := L + C*kS
	s := s_ * s_ * s_
	sdt := 3 * sDt * s_ * s_
	sdt2 := 6 * sDt * sDt * s_

	r := 4.0767416621*l - 3.3077115913*m + 0.2309699292*s - 1
	r1 := 4.0767416621*ldt - 3.3077115913*mdt + 0.2309699292*sdt
	r2 := 4.0767416621*ldt2 - 3.3077115913*mdt2 + 0.2309699292*sdt2

	uR := r1 / (r1*r1 - 0.5*r*r2)
	tR := math.MaxFloat64
	if uR >= 0 {
		tR = -r * uR
	}

	g := -1.2684380046*l + 2.6097574011*m - 0.3413193965*s - 1
	g1 := -1.2684380046*ldt + 2.6097574011*mdt - 0.3413193965*sdt
	g2 := -1.2684380046*ldt2 + 2.6097574011*mdt2 - 0.3413193965*sdt2

	uG := g1 / (g1*g1 - 0.5*g*g2)
	tG := math.MaxFloat64
	if uG >= 0 {
		tG = -g * uG
	}

	bl := -0.0041960863*l - 0.7034186147*m + 1.7076147010*s - 1
	b1 := -0.0041960863*ldt - 0.7034186147*mdt + 1.7076147010*sdt
	b2 := -0.0041960863*ldt2 - 0.7034186147*mdt2 + 1.7076147010*sdt2

	uB := b1 / (b1*b1 - 0.5*bl*b2)
	tB := math.MaxFloat64
	if uB >= 0 {
		tB = -bl * uB
	}

	return t + min(tR, tG, tB)
}

// findCusp finds the (L, C) cusp of the gamut triangle for a hue.
// a and b must be normalized so a^2 + b^2 == 1.
func findCusp(a, b float64) (float64, float64) {
	sCusp := maxSaturation(a, b)

	// scale lightness so the most saturated color touches the gamut
	rgbAtMax := Lab{L: 1, A: sCusp * a, B: sCusp * b}.Linear(nil)
	lCusp := math.Cbrt(1 / math.Max(math.Max(rgbAtMax.R, rgbAtMax.G), rgbAtMax.B))
	return lCusp, lCusp * sCusp
}

// maxSaturation finds the maximum saturation S = C/L that fits in sRGB for
// a hue, via a polynomial approximation refined with one Halley step.
// a and b must be normalized so a^2 + b^2 == 1.
func maxSaturation(a, b float64) float64 {
	// coefficients depend on which component leaves the gamut first
	var k0, k1, k2, k3, k4, wl, wm, ws float64
	switch {
	case (-1.88170328*a - 0.80936493*b) > 1: // red
		k0 = +1.19086277
		k1 = +1.76576728
		k2 = +0.59662641
		k3 = +0.75515197
		k4 = +0.56771245

		wl = +4.0767416621
		wm = -3.3077115913
		ws = +0.2309699292
	case (1.81444104*a - 1.19445276*b) > 1: // green
		k0 = +0.73956515
		k1 = -0.45954404
		k2 = +0.08285427
		k3 = +0.12541070
		k4 = +0.14503204

		wl = -1.2684380046
		wm = +2.6097574011
		ws = -0.3413193965
	default: // blue
		k0 = +1.35733652
		k1 = -0.00915799
		k2 = -1.15130210
		k3 = -0.50559606
		k4 = +0.00692167

		wl = -0.0041960863
		wm = -0.7034186147
		ws = +1.7076147010
	}

	sat := k0 + k1*a + k2*b + k3*a*a + k4*a*b

	kL := +0.3963377774*a + 0.2158037573*b
	kM := -0.1055613458*a - 0.0638541728*b
	kS := -0.0894841775*a - 1.2914855480*b

	l_ := 1 + sat*kL
	m_ := 1 + sat*kM
	s_ := 1 + sat*kS

	l := l_ * l_ * l_
	m := m_ * m_ * m_
	s := s_ * s_ * s_

	lDS := 3 * kL * l_ * l_
	mDS := 3 * kM * m_ * m_
	sDS := 3 * kS * s_ * s_

	lDS2 := 6 * kL * kL * l_
	mDS2 := 6 * kM * kM * m_
	sDS2 := 6 * kS * kS * s_

	f := wl*l + wm*m + ws*s
	f1 := wl*lDS + wm*mDS + ws*sDS
	f2 := wl*lDS2 + wm*mDS2 + ws*sDS2

	return sat - f*f1/(f1*f1-0.5*f*f2)
}
