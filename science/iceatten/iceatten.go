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

// Package iceatten provides empirical parameterizations of wave
// amplitude attenuation by sea ice, fit to field and laboratory
// observations. Each parameterization maps the cell ice coefficients
// and wave frequency to an amplitude attenuation rate [1/m]; where a
// published fit gives the energy attenuation rate α, the amplitude rate
// is α/2.
package iceatten

import (
	"fmt"
	"math"

	"github.com/spectralmodel/wavice"
	"github.com/spectralmodel/wavice/science/icestep"
)

// Exponential is the exponential attenuation fit of Wadhams et al.
// (1988): α = exp(-C1·T - C2) with wave period T [s].
type Exponential struct{}

// Name returns the name of this parameterization.
func (Exponential) Name() string { return "exponential" }

// Rates fills dst with the attenuation rate for each frequency bin.
func (Exponential) Rates(dst []float64, g *wavice.SpectralGrid, c *wavice.Cell) error {
	for ik := range dst {
		T := 2 * math.Pi / g.Sigma[ik]
		dst[ik] = math.Exp(-c.Ice.C1*T-c.Ice.C2) / 2
	}
	return nil
}

// PeriodPolynomial is a quartic polynomial attenuation fit in wave
// period: α = C1 + C2·T + C3·T² + C4·T³ + C5·T⁴.
type PeriodPolynomial struct{}

// Name returns the name of this parameterization.
func (PeriodPolynomial) Name() string { return "periodpolynomial" }

// Rates fills dst with the attenuation rate for each frequency bin.
func (PeriodPolynomial) Rates(dst []float64, g *wavice.SpectralGrid, c *wavice.Cell) error {
	ice := c.Ice
	for ik := range dst {
		T := 2 * math.Pi / g.Sigma[ik]
		alpha := (ice.C1 + ice.C2*T + ice.C3*T*T) + (ice.C4*T*T*T + ice.C5*T*T*T*T)
		dst[ik] = alpha / 2
	}
	return nil
}

// ThicknessFit is a quadratic attenuation fit in ice thickness h = C1
// [m] and wave period T [s]:
//
//	α = exp(k1 + k2 + k3)
//	k1 = -0.3203 + 2.058 h - 0.9375 T
//	k2 = -0.4269 h² + 0.1566 h T
//	k3 = 0.0006 T²
type ThicknessFit struct{}

// Name returns the name of this parameterization.
func (ThicknessFit) Name() string { return "thicknessfit" }

// Rates fills dst with the attenuation rate for each frequency bin.
func (ThicknessFit) Rates(dst []float64, g *wavice.SpectralGrid, c *wavice.Cell) error {
	h := c.Ice.C1
	for ik := range dst {
		T := 2 * math.Pi / g.Sigma[ik]
		k1 := -0.3203 + 2.058*h - 0.9375*T
		k2 := -0.4269*h*h + 0.1566*h*T
		k3 := 0.0006 * T * T
		dst[ik] = math.Exp(k1+k2+k3) / 2
	}
	return nil
}

// HeightDependent is a frequency-independent attenuation rate keyed to
// the significant wave height of the local spectrum: C1 below 3 m
// (inclusive) and C2/Hs above, reflecting observations that large waves
// decay more slowly in relative terms.
type HeightDependent struct{}

// Name returns the name of this parameterization.
func (HeightDependent) Name() string { return "heightdependent" }

// Rates fills dst with the attenuation rate for each frequency bin.
func (HeightDependent) Rates(dst []float64, g *wavice.SpectralGrid, c *wavice.Cell) error {
	hs := wavice.SignificantWaveHeight(g, c)
	var r float64
	if hs <= 3 {
		r = c.Ice.C1
	} else {
		r = c.Ice.C2 / hs
	}
	for ik := range dst {
		dst[ik] = r
	}
	return nil
}

// Doble is the thickness and frequency attenuation fit of Doble et al.
// (2015): α = 0.2 f^2.13 h with cyclic frequency f [Hz] and ice
// thickness h = C1 [m].
type Doble struct{}

// Name returns the name of this parameterization.
func (Doble) Name() string { return "doble" }

// Rates fills dst with the attenuation rate for each frequency bin.
func (Doble) Rates(dst []float64, g *wavice.SpectralGrid, c *wavice.Cell) error {
	h := c.Ice.C1
	for ik := range dst {
		f := g.Freq(ik)
		alpha := 0.2 * math.Pow(f, 2.13) * h
		dst[ik] = alpha / 2
	}
	return nil
}

// Uniform attenuates every frequency at the rate given by ice
// coefficient C1. It is the fallback when no other parameterization is
// selected.
type Uniform struct{}

// Name returns the name of this parameterization.
func (Uniform) Name() string { return "uniform" }

// Rates fills dst with the attenuation rate for each frequency bin.
func (Uniform) Rates(dst []float64, g *wavice.SpectralGrid, c *wavice.Cell) error {
	for ik := range dst {
		dst[ik] = c.Ice.C1
	}
	return nil
}

// Method returns the attenuation model corresponding to the given
// method code:
//
//	1 exponential     2 periodpolynomial  3 thicknessfit
//	4 heightdependent 5 coefsteps         6 steptable
//	7 doble           8 surfacefit
//
// Method 6 requires a step table; table is ignored for all other codes.
// Codes outside 1–8 fall back to the uniform parameterization.
func Method(code int, table *icestep.Table) (wavice.AttenuationModel, error) {
	switch code {
	case 1:
		return Exponential{}, nil
	case 2:
		return PeriodPolynomial{}, nil
	case 3:
		return ThicknessFit{}, nil
	case 4:
		return HeightDependent{}, nil
	case 5:
		return icestep.CoefSteps{}, nil
	case 6:
		if table == nil {
			return nil, fmt.Errorf("iceatten: method 6 requires a step table but none was configured")
		}
		return table, nil
	case 7:
		return Doble{}, nil
	case 8:
		return SurfaceFit{}, nil
	default:
		return Uniform{}, nil
	}
}
