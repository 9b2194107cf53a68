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
	"io"
	"log"
	"os"
	"time"

	"github.com/spectralmodel/wavice"
	"github.com/spf13/cobra"
)

// Run runs the model with the given configuration and writes the
// requested output variables for every cell to outputFile. Log messages
// go to the command's output and to logFile.
func Run(cmd *cobra.Command, logFile, outputFile string, outputVariables []string, c *SimulationConfig) error {
	startTime := time.Now()

	logfile, err := os.Create(logFile)
	if err != nil {
		return fmt.Errorf("waviceutil: problem creating log file: %v", err)
	}
	defer logfile.Close()
	mw := io.MultiWriter(cmd.OutOrStdout(), logfile)
	log.SetOutput(mw)

	log.Println("Initializing model...")
	d, err := c.NewDomain()
	if err != nil {
		return err
	}
	model, err := c.Model()
	if err != nil {
		return err
	}

	d.InitFuncs = []wavice.DomainManipulator{
		wavice.ResetCells(),
		c.InitialSpectrum(),
	}
	d.RunFuncs = []wavice.DomainManipulator{
		wavice.Calculations(
			wavice.IceDissipation(d.Grid, model),
			wavice.Advance(),
		),
		wavice.EnergyConvergenceCheck(c.NumIterations),
	}

	if err := d.Init(); err != nil {
		return err
	}
	log.Printf("Running simulation (%d cells, %d spectral bins, attenuation model %s)...",
		len(d.Cells), d.Grid.NSpec(), model.Name())
	if err := d.Run(); err != nil {
		return err
	}

	f, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("waviceutil: problem creating output file: %v", err)
	}
	if err := d.WriteResults(f, outputVariables); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("Elapsed time: %g seconds", time.Since(startTime).Seconds())
	return nil
}
