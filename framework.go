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

// Package wavice implements the attenuation of ocean surface waves by
// sea ice as a source term for a spectral wave model.
package wavice

import (
	"fmt"
	"math"
	"sync"
)

// SpectralGrid describes the discretization of the wave action density
// spectrum in frequency and direction. It is created once before a
// simulation starts and never changed afterward, so it is safe for use
// by any number of concurrent readers.
type SpectralGrid struct {
	// Sigma holds the angular frequency of each frequency bin [rad/s],
	// in strictly increasing order.
	Sigma []float64

	// NTH is the number of direction bins.
	NTH int

	dsigma []float64 // integration width of each frequency bin [rad/s]
	dtheta float64   // direction bin width [rad]
}

// NewSpectralGrid creates a spectral grid from the given angular
// frequencies [rad/s] and number of direction bins. There must be at
// least two frequencies, and they must be positive and strictly
// increasing.
func NewSpectralGrid(sigma []float64, nth int) (*SpectralGrid, error) {
	if len(sigma) < 2 {
		return nil, fmt.Errorf("wavice: a spectral grid requires at least 2 frequency bins but there are %d", len(sigma))
	}
	if nth < 1 {
		return nil, fmt.Errorf("wavice: a spectral grid requires at least 1 direction bin but there are %d", nth)
	}
	if sigma[0] <= 0 {
		return nil, fmt.Errorf("wavice: frequencies must be positive but the first is %g", sigma[0])
	}
	for k := 1; k < len(sigma); k++ {
		if sigma[k] <= sigma[k-1] {
			return nil, fmt.Errorf("wavice: frequencies must be strictly increasing but bin %d (%g) follows %g",
				k, sigma[k], sigma[k-1])
		}
	}
	g := &SpectralGrid{
		Sigma:  append([]float64(nil), sigma...),
		NTH:    nth,
		dsigma: make([]float64, len(sigma)),
		dtheta: 2 * math.Pi / float64(nth),
	}
	nk := len(sigma)
	g.dsigma[0] = sigma[1] - sigma[0]
	for k := 1; k < nk-1; k++ {
		g.dsigma[k] = (sigma[k+1] - sigma[k-1]) / 2
	}
	g.dsigma[nk-1] = sigma[nk-1] - sigma[nk-2]
	return g, nil
}

// NK returns the number of frequency bins.
func (g *SpectralGrid) NK() int { return len(g.Sigma) }

// NSpec returns the total number of spectral bins (NK×NTH).
func (g *SpectralGrid) NSpec() int { return len(g.Sigma) * g.NTH }

// Index returns the flattened spectral index of frequency bin ik and
// direction bin ith. Direction varies fastest.
func (g *SpectralGrid) Index(ik, ith int) int { return ik*g.NTH + ith }

// Freq returns the cyclic frequency of bin ik [Hz].
func (g *SpectralGrid) Freq(ik int) float64 { return g.Sigma[ik] / (2 * math.Pi) }

// BinWidth returns the integration width of frequency bin ik [rad/s].
func (g *SpectralGrid) BinWidth(ik int) float64 { return g.dsigma[ik] }

// DirWidth returns the direction bin width [rad].
func (g *SpectralGrid) DirWidth() float64 { return g.dtheta }

// IceCoefs holds the per-cell sea ice inputs. The physical meaning of
// each coefficient depends on the attenuation model in use: C1 is the
// ice thickness [m] for the thickness-based fits and C2 the effective
// floe radius [m] for the response-surface fit, while the step models
// read rate levels and frequency cutoffs from them. Coefficients that
// are not supplied by the forcing data are left at zero.
type IceCoefs struct {
	C1, C2, C3, C4, C5, C6, C7, C8 float64
}

// Cell holds the state of a single horizontal grid cell.
type Cell struct {
	Depth float64   `desc:"Water depth" units:"m"`
	Cg    []float64 // Group velocity for each frequency bin [m/s]
	Ice   IceCoefs

	Ci   []float64 // Action density at the beginning of the time step
	Cf   []float64 // Action density at the end of the time step
	Sice []float64 `desc:"Ice dissipation source term" units:"1/s × action"`
	Dice []float64 `desc:"Diagonal of the linearized ice dissipation operator" units:"1/s"`

	Row int // Master cell index

	sync.RWMutex // Avoid the cell being written by one worker and read by another at the same time.
}

// NewCell creates a cell with the given water depth [m], per-frequency
// group velocities [m/s], and ice coefficients. The group velocity
// profile must have one positive value for each frequency bin in g.
func NewCell(g *SpectralGrid, depth float64, cg []float64, ice IceCoefs) (*Cell, error) {
	if len(cg) != g.NK() {
		return nil, fmt.Errorf("wavice: group velocity profile has %d values but the grid has %d frequency bins",
			len(cg), g.NK())
	}
	for k, v := range cg {
		if v <= 0 {
			return nil, fmt.Errorf("wavice: group velocity for frequency bin %d is %g; it must be positive", k, v)
		}
	}
	c := &Cell{
		Depth: depth,
		Cg:    append([]float64(nil), cg...),
		Ice:   ice,
	}
	c.prepare(g)
	return c, nil
}

func (c *Cell) prepare(g *SpectralGrid) {
	n := g.NSpec()
	c.Ci = make([]float64, n)
	c.Cf = make([]float64, n)
	c.Sice = make([]float64, n)
	c.Dice = make([]float64, n)
}

// Domain holds the cells and configuration of a model run.
type Domain struct {
	Grid  *SpectralGrid
	Cells []*Cell

	Dt float64 // Time step [seconds]

	// Done specifies whether the simulation is finished.
	Done bool

	// InitFuncs are functions to be run in sequence to initialize
	// the domain.
	InitFuncs []DomainManipulator

	// RunFuncs are functions to be run in sequence repeatedly until
	// the simulation is finished.
	RunFuncs []DomainManipulator
}

// DomainManipulator is a class of functions that operate on the entire
// domain at once.
type DomainManipulator func(d *Domain) error

// CellManipulator is a class of functions that operate on a single grid
// cell, using the given time step Δt [seconds].
type CellManipulator func(c *Cell, Δt float64) error

// Init initializes the domain by running the InitFuncs.
func (d *Domain) Init() error {
	for _, f := range d.InitFuncs {
		if err := f(d); err != nil {
			return err
		}
	}
	return nil
}

// Run cycles through the RunFuncs until the simulation is finished.
func (d *Domain) Run() error {
	for !d.Done {
		for _, f := range d.RunFuncs {
			if err := f(d); err != nil {
				return err
			}
		}
	}
	return nil
}
