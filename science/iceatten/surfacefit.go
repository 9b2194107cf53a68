/*
Copyright © 2018 the WAVICE authors.
This file is part of WAVICE.

WAVICE is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

WAVICE is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with WAVICE.  If not, see <http://www.gnu.org/licenses/>.
*/

package iceatten

import (
	"math"

	"github.com/spectralmodel/wavice"
)

// Long-period correction terms: α = longPeriodA/T² + longPeriodB/T⁴.
const (
	longPeriodA = 2.12e-3
	longPeriodB = 4.59e-2
)

// Validity bounds of the response surface fit. Inputs outside these
// ranges are clamped to the nearest bound.
const (
	minThickness = 0.1
	maxThickness = 3.5
	minFloe      = 2.5
	maxFloe      = 100.
)

// surfaceFitCoef holds the coefficients of the cubic response surface
// fit of log10 amplitude attenuation to wave period x1 [s], floe radius
// x2 [m], and ice thickness x3 [m], by term:
//
//	1, x1, x2, x3, x1², x2², x3², x1x2, x1x3, x2x3,
//	x1³, x2³, x3³, x1²x2, x1²x3, x1x2², x2²x3, x1x3², x2x3², x1x2x3
var surfaceFitCoef = [20]float64{
	-1.2668, -0.40745, -0.033767, 1.5817,
	0.0099253, 0.00026616, -0.58021,
	0.0025188, -0.080052, 0.0020634,
	-9.6551e-05, -6.4661e-07, 0.07153,
	-2.8422e-05, 0.0019924, -7.7571e-06,
	-1.4397e-05, 0.0097633, 4.891e-05, -0.00017944,
}

// SurfaceFit is a high-order empirical attenuation surface in ice
// thickness (C1 [m]), effective floe radius (C2 [m]), and wave period.
// The fitted value is 10 to the power of a cubic polynomial, capped at
// one. For periods between 5 and 20 seconds a long-period scattering
// correction is added to the fitted value; beyond 20 seconds the fit is
// outside its calibration range and the correction replaces it
// entirely. The two regimes are deliberately asymmetric, following the
// published fit.
type SurfaceFit struct{}

// Name returns the name of this parameterization.
func (SurfaceFit) Name() string { return "surfacefit" }

// Rates fills dst with the attenuation rate for each frequency bin.
func (SurfaceFit) Rates(dst []float64, g *wavice.SpectralGrid, c *wavice.Cell) error {
	x3 := math.Min(math.Max(c.Ice.C1, minThickness), maxThickness)
	x2 := math.Min(math.Max(c.Ice.C2, minFloe), maxFloe)
	for ik := range dst {
		x1 := 2 * math.Pi / g.Sigma[ik]
		correction := longPeriodA/(x1*x1) + longPeriodB/(x1*x1*x1*x1)
		if x1 > 20 {
			dst[ik] = correction
			continue
		}
		v := math.Pow(10, surfacePoly(x1, x2, x3))
		if v > 1 {
			v = 1
		}
		if x1 > 5 && x1 < 20 {
			v += correction
		}
		dst[ik] = v
	}
	return nil
}

func surfacePoly(x1, x2, x3 float64) float64 {
	c := &surfaceFitCoef
	return c[0] + c[1]*x1 + c[2]*x2 + c[3]*x3 +
		c[4]*x1*x1 + c[5]*x2*x2 + c[6]*x3*x3 +
		c[7]*x1*x2 + c[8]*x1*x3 + c[9]*x2*x3 +
		c[10]*x1*x1*x1 + c[11]*x2*x2*x2 + c[12]*x3*x3*x3 +
		c[13]*x1*x1*x2 + c[14]*x1*x1*x3 + c[15]*x1*x2*x2 +
		c[16]*x2*x2*x3 + c[17]*x1*x3*x3 + c[18]*x2*x3*x3 +
		c[19]*x1*x2*x3
}
