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

package waviceutil

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lnashier/viper"
	"github.com/spectralmodel/wavice"
	"github.com/spectralmodel/wavice/science/iceatten"
	"github.com/spectralmodel/wavice/science/icestep"
	"github.com/spf13/cast"
)

const gravity = 9.81 // m/s²

// SimulationConfig holds the settings for a model run.
type SimulationConfig struct {
	// Spectral grid: NumFreq cyclic frequencies starting at FirstFreq
	// [Hz] and increasing by the factor FreqRatio per bin, with NumDir
	// direction bins.
	NumFreq   int
	FirstFreq float64
	FreqRatio float64
	NumDir    int

	NumCells int     // number of grid cells
	Depth    float64 // water depth [m], the same for every cell

	// InitialEnergy is the action density assigned to every spectral
	// bin at the start of the simulation.
	InitialEnergy float64

	TimeStep      float64 // seconds
	NumIterations int     // ≤ 0 means run until convergence

	// IceMethod selects the attenuation parameterization (1–8).
	// Values outside that range select a spatially uniform rate taken
	// from ice coefficient 1.
	IceMethod int

	// IceCoefs are applied uniformly to every cell. Coefficients whose
	// IceCoefUse flag is off are treated as not supplied and zeroed.
	IceCoefs wavice.IceCoefs

	// StepTableFile is the path of the TOML step table, required for
	// ice method 6.
	StepTableFile string
}

// configFromViper assembles a SimulationConfig from the given
// configuration registry.
func configFromViper(cfg *viper.Viper) (*SimulationConfig, error) {
	c := &SimulationConfig{
		NumFreq:       cfg.GetInt("NumFreq"),
		FirstFreq:     cfg.GetFloat64("FirstFreq"),
		FreqRatio:     cfg.GetFloat64("FreqRatio"),
		NumDir:        cfg.GetInt("NumDir"),
		NumCells:      cfg.GetInt("NumCells"),
		Depth:         cfg.GetFloat64("Depth"),
		InitialEnergy: cfg.GetFloat64("InitialEnergy"),
		TimeStep:      cfg.GetFloat64("TimeStep"),
		NumIterations: cfg.GetInt("NumIterations"),
		IceMethod:     cfg.GetInt("IceMethod"),
		StepTableFile: os.ExpandEnv(cfg.GetString("StepTableFile")),
	}
	coefs := make([]float64, 8)
	for i := range coefs {
		coefs[i] = cfg.GetFloat64(fmt.Sprintf("IceCoef%d", i+1))
	}
	use := cfg.GetStringSlice("IceCoefUse")
	if len(use) != 8 {
		return nil, fmt.Errorf("waviceutil: IceCoefUse must have 8 entries but has %d", len(use))
	}
	for i, s := range use {
		u, err := cast.ToIntE(s)
		if err != nil {
			return nil, fmt.Errorf("waviceutil: problem reading IceCoefUse: %v", err)
		}
		if u == 0 { // Coefficient not supplied; treat as zero.
			coefs[i] = 0
		}
	}
	c.IceCoefs = wavice.IceCoefs{
		C1: coefs[0], C2: coefs[1], C3: coefs[2], C4: coefs[3],
		C5: coefs[4], C6: coefs[5], C7: coefs[6], C8: coefs[7],
	}
	return c, nil
}

// Validate checks the configuration for settings that would make a run
// impossible.
func (c *SimulationConfig) Validate() error {
	if c.NumFreq < 2 {
		return fmt.Errorf("waviceutil: NumFreq must be at least 2 but is %d", c.NumFreq)
	}
	if c.FirstFreq <= 0 {
		return fmt.Errorf("waviceutil: FirstFreq must be positive but is %g", c.FirstFreq)
	}
	if c.FreqRatio <= 1 {
		return fmt.Errorf("waviceutil: FreqRatio must be greater than 1 but is %g", c.FreqRatio)
	}
	if c.NumDir < 1 {
		return fmt.Errorf("waviceutil: NumDir must be at least 1 but is %d", c.NumDir)
	}
	if c.NumCells < 1 {
		return fmt.Errorf("waviceutil: NumCells must be at least 1 but is %d", c.NumCells)
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("waviceutil: TimeStep must be positive but is %g", c.TimeStep)
	}
	if c.InitialEnergy < 0 {
		return fmt.Errorf("waviceutil: InitialEnergy must not be negative but is %g", c.InitialEnergy)
	}
	if c.IceMethod == 5 {
		ice := c.IceCoefs
		for i, v := range []float64{ice.C1, ice.C2, ice.C3, ice.C4, ice.C5, ice.C6, ice.C7} {
			if v == 0 {
				return fmt.Errorf("waviceutil: ice method 5 requires ice coefficients 1-7 but coefficient %d is zero", i+1)
			}
		}
	}
	if c.IceMethod == 6 && c.StepTableFile == "" {
		return fmt.Errorf("waviceutil: ice method 6 requires a StepTableFile")
	}
	return nil
}

// Grid creates the spectral grid described by the configuration.
func (c *SimulationConfig) Grid() (*wavice.SpectralGrid, error) {
	sigma := make([]float64, c.NumFreq)
	for k := range sigma {
		sigma[k] = 2 * math.Pi * c.FirstFreq * math.Pow(c.FreqRatio, float64(k))
	}
	return wavice.NewSpectralGrid(sigma, c.NumDir)
}

// Model creates the configured attenuation model, reading the step
// table file if the selected method needs one.
func (c *SimulationConfig) Model() (wavice.AttenuationModel, error) {
	var table *icestep.Table
	if c.IceMethod == 6 {
		var err error
		table, err = ReadStepTable(c.StepTableFile)
		if err != nil {
			return nil, err
		}
	}
	return iceatten.Method(c.IceMethod, table)
}

// ReadStepTable reads a step table from a TOML file with paired
// `Damping` and `Cutoff` arrays.
func ReadStepTable(filename string) (*icestep.Table, error) {
	var t struct {
		Damping []float64
		Cutoff  []float64
	}
	if _, err := toml.DecodeFile(filename, &t); err != nil {
		return nil, fmt.Errorf("waviceutil: problem reading step table file: %v", err)
	}
	return icestep.NewTable(t.Damping, t.Cutoff)
}

// NewDomain builds the model domain described by the configuration,
// with deep-water group velocities for every cell.
func (c *SimulationConfig) NewDomain() (*wavice.Domain, error) {
	g, err := c.Grid()
	if err != nil {
		return nil, err
	}
	cg := make([]float64, g.NK())
	for k := range cg {
		cg[k] = gravity / (2 * g.Sigma[k])
	}
	cells := make([]*wavice.Cell, c.NumCells)
	for i := range cells {
		cell, err := wavice.NewCell(g, c.Depth, cg, c.IceCoefs)
		if err != nil {
			return nil, err
		}
		cell.Row = i
		cells[i] = cell
	}
	return &wavice.Domain{Grid: g, Cells: cells, Dt: c.TimeStep}, nil
}

// InitialSpectrum returns a function that assigns the configured
// initial action density to every spectral bin of every cell.
func (c *SimulationConfig) InitialSpectrum() wavice.DomainManipulator {
	return func(d *wavice.Domain) error {
		for _, cell := range d.Cells {
			for i := range cell.Ci {
				cell.Ci[i] = c.InitialEnergy
			}
			copy(cell.Cf, cell.Ci)
		}
		return nil
	}
}

// checkOutputFile makes sure that the output file's directory exists,
// and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`waviceutil: you need to specify an output file configuration variable (for example: OutputFile="output.csv")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("waviceutil: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkLogFile returns the log file path, deriving one from the output
// file path if none is given.
func checkLogFile(logFile, outputFile string) string {
	if logFile == "" {
		return strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
	}
	return os.ExpandEnv(logFile)
}
