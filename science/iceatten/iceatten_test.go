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
	"testing"

	"github.com/spectralmodel/wavice"
	"github.com/spectralmodel/wavice/science/icestep"
)

func different(a, b, tolerance float64) bool {
	if math.Abs(a-b) > math.Abs(tolerance*b) {
		return true
	}
	return false
}

func testGrid(t *testing.T) *wavice.SpectralGrid {
	t.Helper()
	sigma := make([]float64, 12)
	for k := range sigma {
		sigma[k] = 0.4 * math.Pow(1.15, float64(k))
	}
	g, err := wavice.NewSpectralGrid(sigma, 6)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func testCell(t *testing.T, g *wavice.SpectralGrid, ice wavice.IceCoefs) *wavice.Cell {
	t.Helper()
	cg := make([]float64, g.NK())
	for k := range cg {
		cg[k] = 1
	}
	c, err := wavice.NewCell(g, 2500, cg, ice)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// With both coefficients zero the exponential fit reduces to
// exp(0)/2 = 0.5 at every frequency.
func TestExponentialZeroCoefficients(t *testing.T) {
	g := testGrid(t)
	c := testCell(t, g, wavice.IceCoefs{})
	dst := make([]float64, g.NK())
	if err := (Exponential{}).Rates(dst, g, c); err != nil {
		t.Fatal(err)
	}
	for ik, v := range dst {
		if v != 0.5 {
			t.Errorf("bin %d: have %g, want 0.5", ik, v)
		}
	}
}

func TestExponential(t *testing.T) {
	g := testGrid(t)
	ice := wavice.IceCoefs{C1: 0.11, C2: 2.3}
	c := testCell(t, g, ice)
	dst := make([]float64, g.NK())
	if err := (Exponential{}).Rates(dst, g, c); err != nil {
		t.Fatal(err)
	}
	for ik, v := range dst {
		T := 2 * math.Pi / g.Sigma[ik]
		want := math.Exp(-ice.C1*T-ice.C2) / 2
		if v != want {
			t.Errorf("bin %d: have %g, want %g", ik, v, want)
		}
	}
}

func TestPeriodPolynomial(t *testing.T) {
	g := testGrid(t)
	ice := wavice.IceCoefs{C1: 1e-5, C2: 2e-5, C3: -3e-6, C4: 4e-7, C5: -5e-9}
	c := testCell(t, g, ice)
	dst := make([]float64, g.NK())
	if err := (PeriodPolynomial{}).Rates(dst, g, c); err != nil {
		t.Fatal(err)
	}
	for ik, v := range dst {
		T := 2 * math.Pi / g.Sigma[ik]
		want := ((ice.C1 + ice.C2*T + ice.C3*T*T) + (ice.C4*T*T*T + ice.C5*T*T*T*T)) / 2
		if different(v, want, 1e-15) {
			t.Errorf("bin %d: have %g, want %g", ik, v, want)
		}
	}
}

func TestThicknessFit(t *testing.T) {
	g := testGrid(t)
	const h = 0.75
	c := testCell(t, g, wavice.IceCoefs{C1: h})
	dst := make([]float64, g.NK())
	if err := (ThicknessFit{}).Rates(dst, g, c); err != nil {
		t.Fatal(err)
	}
	for ik, v := range dst {
		T := 2 * math.Pi / g.Sigma[ik]
		k1 := -0.3203 + 2.058*h - 0.9375*T
		k2 := -0.4269*h*h + 0.1566*h*T
		k3 := 0.0006 * T * T
		want := math.Exp(k1+k2+k3) / 2
		if different(v, want, 1e-15) {
			t.Errorf("bin %d: have %g, want %g", ik, v, want)
		}
	}
}

// A significant wave height of exactly 3 m must select the small-wave
// branch (the boundary is inclusive).
func TestHeightDependentBoundary(t *testing.T) {
	g, err := wavice.NewSpectralGrid([]float64{0.5, 0.7}, 3)
	if err != nil {
		t.Fatal(err)
	}
	// The group velocity of the first bin cancels the integration
	// weight, so a single spectral value of (3/4)² = 0.5625 gives
	// Hs = 3 exactly.
	cg := []float64{g.DirWidth() * g.BinWidth(0), 1}
	ice := wavice.IceCoefs{C1: 0.123, C2: 0.456}
	c, err := wavice.NewCell(g, 2500, cg, ice)
	if err != nil {
		t.Fatal(err)
	}
	c.Ci[g.Index(0, 1)] = 0.5625
	if hs := wavice.SignificantWaveHeight(g, c); hs != 3 {
		t.Fatalf("test construction broken: Hs is %g, want exactly 3", hs)
	}

	dst := make([]float64, g.NK())
	if err := (HeightDependent{}).Rates(dst, g, c); err != nil {
		t.Fatal(err)
	}
	for ik, v := range dst {
		if v != ice.C1 {
			t.Errorf("bin %d: have %g, want %g (small-wave branch)", ik, v, ice.C1)
		}
	}

	// Four times the energy doubles the wave height to 6 m, which
	// selects the large-wave branch.
	c.Ci[g.Index(0, 1)] *= 4
	if err := (HeightDependent{}).Rates(dst, g, c); err != nil {
		t.Fatal(err)
	}
	for ik, v := range dst {
		if v != ice.C2/6 {
			t.Errorf("bin %d: have %g, want %g (large-wave branch)", ik, v, ice.C2/6)
		}
	}
}

func TestDoble(t *testing.T) {
	g := testGrid(t)
	const h = 0.4
	c := testCell(t, g, wavice.IceCoefs{C1: h})
	dst := make([]float64, g.NK())
	if err := (Doble{}).Rates(dst, g, c); err != nil {
		t.Fatal(err)
	}
	for ik, v := range dst {
		f := g.Freq(ik)
		want := 0.2 * math.Pow(f, 2.13) * h / 2
		if different(v, want, 1e-15) {
			t.Errorf("bin %d: have %g, want %g", ik, v, want)
		}
	}
	// Attenuation grows with frequency.
	for ik := 1; ik < g.NK(); ik++ {
		if dst[ik] <= dst[ik-1] {
			t.Errorf("bin %d: attenuation %g is not greater than %g", ik, dst[ik], dst[ik-1])
		}
	}
}

func TestUniform(t *testing.T) {
	g := testGrid(t)
	c := testCell(t, g, wavice.IceCoefs{C1: 3.3e-5})
	dst := make([]float64, g.NK())
	if err := (Uniform{}).Rates(dst, g, c); err != nil {
		t.Fatal(err)
	}
	for ik, v := range dst {
		if v != 3.3e-5 {
			t.Errorf("bin %d: have %g, want 3.3e-5", ik, v)
		}
	}
}

func TestMethod(t *testing.T) {
	table, err := icestep.NewTable(
		[]float64{5e-6, 7e-6, 15e-6, 0.10},
		[]float64{0.10, 0.12, 0.16, 99.0},
	)
	if err != nil {
		t.Fatal(err)
	}
	wantNames := map[int]string{
		1: "exponential",
		2: "periodpolynomial",
		3: "thicknessfit",
		4: "heightdependent",
		5: "coefsteps",
		6: "steptable",
		7: "doble",
		8: "surfacefit",
		// Codes outside 1-8 fall back to a uniform rate.
		0:  "uniform",
		9:  "uniform",
		-3: "uniform",
	}
	for code, want := range wantNames {
		m, err := Method(code, table)
		if err != nil {
			t.Fatal(err)
		}
		if m.Name() != want {
			t.Errorf("method %d: have %q, want %q", code, m.Name(), want)
		}
	}
	if _, err := Method(6, nil); err == nil {
		t.Error("method 6 without a table: should be an error")
	}
}
