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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ctessum/unit"
	"gonum.org/v1/gonum/floats"
)

// outputVars maps the names of the variables that are available for
// output to their unit labels.
var outputVars = map[string]string{
	"SignificantWaveHeight": "m",
	"TotalEnergy":           "m²",
	"Depth":                 "m",
	"IceThickness":          "m",
	"FloeRadius":            "m",
	"PeakDissipation":       "1/s",
}

// outputDims maps output variable names to their physical dimensions.
var outputDims = map[string]unit.Dimensions{
	"SignificantWaveHeight": unit.Meter,
	"TotalEnergy":           unit.Meter2,
	"Depth":                 unit.Meter,
	"IceThickness":          unit.Meter,
	"FloeRadius":            unit.Meter,
	"PeakDissipation":       unit.Herz,
}

// OutputVariables returns the names of the variables that are available
// for output.
func OutputVariables() []string {
	return []string{"SignificantWaveHeight", "TotalEnergy", "Depth",
		"IceThickness", "FloeRadius", "PeakDissipation"}
}

// Value returns the current value of the given output variable in the
// given cell. It returns an error if given an invalid variable name.
func (d *Domain) Value(c *Cell, variable string) (float64, error) {
	switch variable {
	case "SignificantWaveHeight":
		return SignificantWaveHeight(d.Grid, c), nil
	case "TotalEnergy":
		return meanEnergy(d.Grid, c), nil
	case "Depth":
		return c.Depth, nil
	case "IceThickness":
		return c.Ice.C1, nil
	case "FloeRadius":
		return c.Ice.C2, nil
	case "PeakDissipation":
		if len(c.Dice) == 0 {
			return 0, nil
		}
		return -floats.Min(c.Dice), nil
	default:
		return 0, fmt.Errorf("wavice: unknown output variable %q", variable)
	}
}

// Units returns the unit label of the given output variable, or an
// error if the variable name is invalid.
func (d *Domain) Units(variable string) (string, error) {
	u, ok := outputVars[variable]
	if !ok {
		return "", fmt.Errorf("wavice: unknown output variable %q", variable)
	}
	return u, nil
}

// UnitValue returns the current value of the given output variable in
// the given cell as a dimensioned quantity.
func (d *Domain) UnitValue(c *Cell, variable string) (*unit.Unit, error) {
	dims, ok := outputDims[variable]
	if !ok {
		return nil, fmt.Errorf("wavice: unknown output variable %q", variable)
	}
	v, err := d.Value(c, variable)
	if err != nil {
		return nil, err
	}
	return unit.New(v, dims), nil
}

// WriteResults writes the given output variables for every cell in the
// domain to w as a delimited table, one row per cell.
func (d *Domain) WriteResults(w io.Writer, variables []string) error {
	for _, v := range variables {
		if _, ok := outputVars[v]; !ok {
			return fmt.Errorf("wavice: unknown output variable %q", v)
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{"Cell"}, variables...)); err != nil {
		return err
	}
	row := make([]string, len(variables)+1)
	for _, c := range d.Cells {
		row[0] = strconv.Itoa(c.Row)
		for j, v := range variables {
			val, err := d.Value(c, v)
			if err != nil {
				return err
			}
			row[j+1] = strconv.FormatFloat(val, 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
