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

package wavice

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// AttenuationModel is an interface for parameterizations of wave
// amplitude attenuation by sea ice.
type AttenuationModel interface {
	// Rates fills dst, which must have length g.NK(), with the
	// amplitude attenuation rate [1/m] for each frequency bin of the
	// given cell. It returns an error if the cell is missing inputs
	// that the parameterization requires.
	Rates(dst []float64, g *SpectralGrid, c *Cell) error

	// Name returns a short name identifying the parameterization.
	Name() string
}

// IceDissipation returns a function that calculates the sink of wave
// action caused by sea ice. The amplitude attenuation rates from the
// given model are converted to an energy decay rate
//
//	D = -2 cg αa
//
// for every frequency bin, applied identically to each direction bin
// (attenuation by ice is assumed isotropic), and multiplied by the
// action density to give the source term S = D·A. Both S and D are
// stored on the cell and the source term is accumulated into the
// end-of-step spectrum. If the model reports a configuration error, the
// cell is left unchanged.
func IceDissipation(g *SpectralGrid, model AttenuationModel) CellManipulator {
	return func(c *Cell, Δt float64) error {
		wni := make([]float64, g.NK())
		if err := model.Rates(wni, g, c); err != nil {
			return fmt.Errorf("wavice: ice dissipation (%s): %v", model.Name(), err)
		}
		for ik := 0; ik < g.NK(); ik++ {
			d := -2 * c.Cg[ik] * wni[ik]
			for ith := 0; ith < g.NTH; ith++ {
				i := g.Index(ik, ith)
				c.Dice[i] = d
				c.Sice[i] = d * c.Ci[i]
				c.Cf[i] += c.Sice[i] * Δt
			}
		}
		return nil
	}
}

// SignificantWaveHeight returns the significant wave height [m] of the
// cell's beginning-of-step spectrum: four times the square root of the
// mean energy.
func SignificantWaveHeight(g *SpectralGrid, c *Cell) float64 {
	return 4 * math.Sqrt(math.Max(0, meanEnergy(g, c)))
}

// meanEnergy integrates the spectrum over direction and frequency,
// weighting each frequency band by its width and dividing by the group
// velocity.
func meanEnergy(g *SpectralGrid, c *Cell) float64 {
	eb := make([]float64, g.NK())
	for ik := 0; ik < g.NK(); ik++ {
		s := 0.
		for ith := 0; ith < g.NTH; ith++ {
			s += c.Ci[g.Index(ik, ith)]
		}
		w := g.dtheta * g.dsigma[ik] / c.Cg[ik]
		eb[ik] = s * w
	}
	return floats.Sum(eb)
}
