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
	"testing"
)

func different(a, b, tolerance float64) bool {
	if math.Abs(a-b) > math.Abs(tolerance*b) {
		return true
	}
	return false
}

// testGrid returns a small spectral grid for testing: 10 geometrically
// spaced frequency bins and 8 direction bins.
func testGrid(t *testing.T) *SpectralGrid {
	t.Helper()
	sigma := make([]float64, 10)
	for k := range sigma {
		sigma[k] = 0.5 * math.Pow(1.2, float64(k))
	}
	g, err := NewSpectralGrid(sigma, 8)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// testCell returns a cell on grid g with unit group velocities and the
// given ice coefficients.
func testCell(t *testing.T, g *SpectralGrid, ice IceCoefs) *Cell {
	t.Helper()
	cg := make([]float64, g.NK())
	for k := range cg {
		cg[k] = 1
	}
	c, err := NewCell(g, 2500, cg, ice)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestNewSpectralGrid(t *testing.T) {
	cases := []struct {
		sigma []float64
		nth   int
	}{
		{[]float64{1}, 8},                // too few frequencies
		{[]float64{1, 2}, 0},             // no directions
		{[]float64{0, 1}, 8},             // non-positive frequency
		{[]float64{-1, 1}, 8},            // non-positive frequency
		{[]float64{1, 1}, 8},             // not strictly increasing
		{[]float64{1, 2, 1.5}, 8},        // not strictly increasing
	}
	for i, c := range cases {
		if _, err := NewSpectralGrid(c.sigma, c.nth); err == nil {
			t.Errorf("case %d: should be an error", i)
		}
	}

	g, err := NewSpectralGrid([]float64{1, 2, 4}, 4)
	if err != nil {
		t.Fatal(err)
	}
	if g.NK() != 3 {
		t.Errorf("NK: have %d, want 3", g.NK())
	}
	if g.NSpec() != 12 {
		t.Errorf("NSpec: have %d, want 12", g.NSpec())
	}
	if i := g.Index(2, 3); i != 11 {
		t.Errorf("Index: have %d, want 11", i)
	}
	if f := g.Freq(1); different(f, 2/(2*math.Pi), 1e-15) {
		t.Errorf("Freq: have %g, want %g", f, 2/(2*math.Pi))
	}
	wantWidths := []float64{1, 1.5, 2}
	for k, want := range wantWidths {
		if have := g.BinWidth(k); have != want {
			t.Errorf("BinWidth(%d): have %g, want %g", k, have, want)
		}
	}
	if have := g.DirWidth(); different(have, math.Pi/2, 1e-15) {
		t.Errorf("DirWidth: have %g, want %g", have, math.Pi/2)
	}
}

func TestNewSpectralGridCopiesInput(t *testing.T) {
	sigma := []float64{1, 2, 4}
	g, err := NewSpectralGrid(sigma, 4)
	if err != nil {
		t.Fatal(err)
	}
	sigma[0] = 99
	if g.Sigma[0] != 1 {
		t.Error("grid shares memory with its input")
	}
}

func TestNewCell(t *testing.T) {
	g := testGrid(t)

	if _, err := NewCell(g, 100, make([]float64, g.NK()-1), IceCoefs{}); err == nil {
		t.Error("wrong group velocity length: should be an error")
	}
	cg := make([]float64, g.NK())
	if _, err := NewCell(g, 100, cg, IceCoefs{}); err == nil {
		t.Error("zero group velocity: should be an error")
	}
	for k := range cg {
		cg[k] = 1.5
	}
	c, err := NewCell(g, 100, cg, IceCoefs{C1: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range [][]float64{c.Ci, c.Cf, c.Sice, c.Dice} {
		if len(s) != g.NSpec() {
			t.Fatalf("cell slice length: have %d, want %d", len(s), g.NSpec())
		}
	}
	if c.Ice.C1 != 0.5 {
		t.Errorf("ice coefficient: have %g, want 0.5", c.Ice.C1)
	}
}

func TestCalculations(t *testing.T) {
	g := testGrid(t)
	d := &Domain{Grid: g, Dt: 1}
	for i := 0; i < 100; i++ {
		c := testCell(t, g, IceCoefs{})
		c.Row = i
		d.Cells = append(d.Cells, c)
	}

	add := func(c *Cell, Δt float64) error {
		c.Cf[0] += Δt
		return nil
	}
	double := func(c *Cell, Δt float64) error {
		c.Cf[0] *= 2
		return nil
	}
	if err := Calculations(add, double)(d); err != nil {
		t.Fatal(err)
	}
	// Each cell must be visited exactly once, with the calculators
	// applied in order.
	for _, c := range d.Cells {
		if c.Cf[0] != 2 {
			t.Fatalf("cell %d: have %g, want 2", c.Row, c.Cf[0])
		}
	}
}

func TestCalculationsError(t *testing.T) {
	g := testGrid(t)
	d := &Domain{Grid: g, Dt: 1}
	for i := 0; i < 20; i++ {
		c := testCell(t, g, IceCoefs{})
		c.Row = i
		d.Cells = append(d.Cells, c)
	}
	fail := func(c *Cell, Δt float64) error {
		if c.Row == 7 {
			return fmt.Errorf("cell 7 is broken")
		}
		return nil
	}
	if err := Calculations(fail)(d); err == nil {
		t.Error("should be an error")
	}
}

func TestResetCells(t *testing.T) {
	g := testGrid(t)
	c := testCell(t, g, IceCoefs{})
	c.Ci[3] = 1
	c.Cf[3] = 1
	c.Sice[3] = 1
	c.Dice[3] = 1
	d := &Domain{Grid: g, Cells: []*Cell{c}}
	if err := ResetCells()(d); err != nil {
		t.Fatal(err)
	}
	for _, s := range [][]float64{c.Ci, c.Cf, c.Sice, c.Dice} {
		if s[3] != 0 {
			t.Error("cell state was not cleared")
		}
	}
}

func TestAdvance(t *testing.T) {
	g := testGrid(t)
	c := testCell(t, g, IceCoefs{})
	for i := range c.Cf {
		c.Cf[i] = float64(i)
	}
	if err := Advance()(c, 60); err != nil {
		t.Fatal(err)
	}
	for i := range c.Ci {
		if c.Ci[i] != c.Cf[i] {
			t.Fatalf("index %d: have %g, want %g", i, c.Ci[i], c.Cf[i])
		}
	}
}

func TestEnergyConvergenceCheckFixedIterations(t *testing.T) {
	g := testGrid(t)
	d := &Domain{Grid: g, Cells: []*Cell{testCell(t, g, IceCoefs{})}, Dt: 1}
	iterations := 0
	d.RunFuncs = []DomainManipulator{
		func(d *Domain) error { iterations++; return nil },
		EnergyConvergenceCheck(5),
	}
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	if iterations != 5 {
		t.Errorf("have %d iterations, want 5", iterations)
	}
}

func TestEnergyConvergenceCheckAutomatic(t *testing.T) {
	g := testGrid(t)
	c := testCell(t, g, IceCoefs{})
	for i := range c.Cf {
		c.Cf[i] = 1
	}
	d := &Domain{Grid: g, Cells: []*Cell{c}, Dt: 1}
	iterations := 0
	d.RunFuncs = []DomainManipulator{
		func(d *Domain) error { iterations++; return nil },
		EnergyConvergenceCheck(0),
	}
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}
	// The spectrum never changes, so the check needs one iteration to
	// record the total and a second to see that it is unchanged.
	if iterations != 2 {
		t.Errorf("have %d iterations, want 2", iterations)
	}
}

func TestDomainInitError(t *testing.T) {
	d := &Domain{InitFuncs: []DomainManipulator{
		func(d *Domain) error { return fmt.Errorf("bad init") },
	}}
	if err := d.Init(); err == nil {
		t.Error("should be an error")
	}
}
