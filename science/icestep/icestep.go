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

// Package icestep provides piecewise-constant parameterizations of wave
// amplitude attenuation by sea ice: the attenuation rate is a step
// function of cyclic frequency, either read from the cell's ice
// coefficients or from a fixed table shared by the whole simulation.
package icestep

import (
	"fmt"

	"github.com/spectralmodel/wavice"
)

// MaxSteps is the largest number of (rate, cutoff) pairs a step table
// may hold.
const MaxSteps = 10

// CoefSteps is a step function of frequency whose levels vary in space
// and time through the cell ice coefficients: C1–C4 are amplitude
// attenuation rates [1/m] and C5–C7 the cyclic frequency cutoffs [Hz]
// separating them. All seven coefficients are required; a zero value
// means the forcing data for this cell is missing and is reported as an
// error rather than silently attenuating nothing.
type CoefSteps struct{}

// Name returns the name of this parameterization.
func (CoefSteps) Name() string { return "coefsteps" }

// Rates fills dst with the attenuation rate for each frequency bin.
func (CoefSteps) Rates(dst []float64, g *wavice.SpectralGrid, c *wavice.Cell) error {
	ice := c.Ice
	for i, v := range []float64{ice.C1, ice.C2, ice.C3, ice.C4, ice.C5, ice.C6, ice.C7} {
		if v == 0 {
			return fmt.Errorf("icestep: ice coefficient %d is zero; the step function parameterization requires coefficients 1-7", i+1)
		}
	}
	for ik := range dst {
		f := g.Freq(ik)
		switch {
		case f < ice.C5:
			dst[ik] = ice.C1
		case f < ice.C6:
			dst[ik] = ice.C2
		case f < ice.C7:
			dst[ik] = ice.C3
		default:
			dst[ik] = ice.C4
		}
	}
	return nil
}

// Table is a step function of frequency that is uniform in space and
// time, configured once per simulation.
type Table struct {
	rates   []float64 // amplitude attenuation rates [1/m]
	cutoffs []float64 // cyclic frequency cutoffs [Hz]
}

// NewTable creates a step table from paired attenuation rates [1/m] and
// cyclic frequency cutoffs [Hz]. Between 3 and MaxSteps pairs may be
// given; the first three rates and the first two cutoffs must be
// nonzero, because a zero there means the table was never filled in.
func NewTable(rates, cutoffs []float64) (*Table, error) {
	if len(rates) != len(cutoffs) {
		return nil, fmt.Errorf("icestep: the step table has %d rates but %d cutoffs; they must be paired",
			len(rates), len(cutoffs))
	}
	if len(rates) > MaxSteps {
		return nil, fmt.Errorf("icestep: the step table has %d entries; at most %d are allowed", len(rates), MaxSteps)
	}
	if len(rates) < 3 {
		return nil, fmt.Errorf("icestep: the step table has %d entries; at least 3 are required", len(rates))
	}
	for i := 0; i < 3; i++ {
		if rates[i] == 0 {
			return nil, fmt.Errorf("icestep: step table rate %d is zero; the first three rates are required", i+1)
		}
	}
	for i := 0; i < 2; i++ {
		if cutoffs[i] == 0 {
			return nil, fmt.Errorf("icestep: step table cutoff %d is zero; the first two cutoffs are required", i+1)
		}
	}
	return &Table{
		rates:   append([]float64(nil), rates...),
		cutoffs: append([]float64(nil), cutoffs...),
	}, nil
}

// Name returns the name of this parameterization.
func (t *Table) Name() string { return "steptable" }

// Rates fills dst with the attenuation rate for each frequency bin. The
// first cutoff exceeding the bin's cyclic frequency selects the rate;
// frequencies beyond the last cutoff take the last rate.
func (t *Table) Rates(dst []float64, g *wavice.SpectralGrid, c *wavice.Cell) error {
	for ik := range dst {
		dst[ik] = t.rate(g.Freq(ik))
	}
	return nil
}

func (t *Table) rate(f float64) float64 {
	for j, cutoff := range t.cutoffs {
		if cutoff > f {
			return t.rates[j]
		}
	}
	return t.rates[len(t.rates)-1]
}
