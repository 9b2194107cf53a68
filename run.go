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
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// Calculations returns a function that concurrently runs a series of
// calculations on all of the model grid cells. If a calculation fails,
// the worker that hit the failure stops; the first error is returned
// after the remaining workers finish their cells.
func Calculations(calculators ...CellManipulator) DomainManipulator {

	nprocs := runtime.GOMAXPROCS(0) // number of processors

	return func(d *Domain) error {
		var wg sync.WaitGroup
		var mx sync.Mutex
		var firstErr error

		wg.Add(nprocs)
		for pp := 0; pp < nprocs; pp++ {
			go func(pp int) {
				defer wg.Done()
				for ii := pp; ii < len(d.Cells); ii += nprocs {
					c := d.Cells[ii]
					c.Lock() // Lock the cell to avoid race conditions
					for _, f := range calculators {
						if err := f(c, d.Dt); err != nil {
							c.Unlock()
							mx.Lock()
							if firstErr == nil {
								firstErr = err
							}
							mx.Unlock()
							return
						}
					}
					c.Unlock() // Unlock the cell: we're done editing it
				}
			}(pp)
		}
		wg.Wait()
		return firstErr
	}
}

// ResetCells clears the spectral state of all of the grid cells.
func ResetCells() DomainManipulator {
	return func(d *Domain) error {
		for _, c := range d.Cells {
			c.prepare(d.Grid)
		}
		return nil
	}
}

// Advance returns a function that finishes a time step by copying the
// end-of-step spectrum into the beginning-of-step spectrum.
func Advance() CellManipulator {
	return func(c *Cell, Δt float64) error {
		copy(c.Ci, c.Cf)
		return nil
	}
}

// EnergyConvergenceCheck returns a function that decides whether the
// simulation is finished and sets the Done flag when it is. If
// numIterations > 0, the simulation is finished after that number of
// iterations have completed. Otherwise, the simulation has finished if
// the change in total action in the domain since the last check is less
// than 0.5%.
func EnergyConvergenceCheck(numIterations int) DomainManipulator {

	const tolerance = 0.005 // tolerance for convergence

	iteration := 0
	oldSum := math.NaN() // no previous check yet

	return func(d *Domain) error {
		iteration++
		if numIterations > 0 {
			if iteration >= numIterations {
				d.Done = true
			}
			return nil
		}
		sum := 0.
		for _, c := range d.Cells {
			sum += floats.Sum(c.Cf)
		}
		if math.Abs(sum-oldSum) <= tolerance*math.Abs(oldSum) {
			d.Done = true
		}
		oldSum = sum
		return nil
	}
}
