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

// Package waviceutil holds the configuration and commands of the WAVICE
// command-line interface.
package waviceutil

import (
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version is the WAVICE release number.
const Version = "0.4.0"

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to WAVICE.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "NumFreq",
			usage: `
              NumFreq is the number of frequency bins in the wave spectrum.`,
			defaultVal: 25,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "FirstFreq",
			usage: `
              FirstFreq is the cyclic frequency of the lowest spectral bin [Hz].`,
			defaultVal: 0.035,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "FreqRatio",
			usage: `
              FreqRatio is the ratio between the frequencies of consecutive
              spectral bins.`,
			defaultVal: 1.1,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "NumDir",
			usage: `
              NumDir is the number of direction bins in the wave spectrum.`,
			defaultVal: 24,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "NumCells",
			usage: `
              NumCells is the number of grid cells to simulate.`,
			defaultVal: 16,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "Depth",
			usage: `
              Depth is the water depth [m], the same for every cell.`,
			defaultVal: 2500.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "InitialEnergy",
			usage: `
              InitialEnergy is the action density assigned to every spectral
              bin at the start of the simulation.`,
			defaultVal: 0.001,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "TimeStep",
			usage: `
              TimeStep is the source term integration time step [seconds].`,
			defaultVal: 600.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "NumIterations",
			usage: `
              NumIterations is the number of iterations to calculate.
              If < 1, convergence is automatically calculated.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "IceMethod",
			usage: `
              IceMethod selects the ice attenuation parameterization (1-8).
              Any other value selects a spatially uniform attenuation rate
              taken from IceCoef1.`,
			shorthand:  "m",
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "IceCoef1",
			usage: `
              IceCoef1 is ice coefficient 1. Its meaning depends on IceMethod;
              for the thickness-based methods it is the ice thickness [m].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "IceCoef2",
			usage: `
              IceCoef2 is ice coefficient 2. Its meaning depends on IceMethod;
              for the response surface fit it is the effective floe radius [m].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "IceCoef3",
			usage: `
              IceCoef3 is ice coefficient 3. Its meaning depends on IceMethod.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "IceCoef4",
			usage: `
              IceCoef4 is ice coefficient 4. Its meaning depends on IceMethod.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "IceCoef5",
			usage: `
              IceCoef5 is ice coefficient 5. Its meaning depends on IceMethod.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "IceCoef6",
			usage: `
              IceCoef6 is ice coefficient 6. Its meaning depends on IceMethod.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "IceCoef7",
			usage: `
              IceCoef7 is ice coefficient 7. Its meaning depends on IceMethod.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "IceCoef8",
			usage: `
              IceCoef8 is ice coefficient 8. Its meaning depends on IceMethod.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "IceCoefUse",
			usage: `
              IceCoefUse flags which of the eight ice coefficients are
              supplied by the forcing data (1) or missing (0). Missing
              coefficients are treated as zero.`,
			defaultVal: []string{"1", "1", "1", "1", "1", "1", "1", "1"},
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "StepTableFile",
			usage: `
              StepTableFile is the path of the TOML file holding the
              attenuation step table required by IceMethod 6.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags(), validateCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path of the delimited text file to write
              results to.`,
			shorthand:  "o",
			defaultVal: "wavice_output.csv",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile is the path of the desired logfile location. If empty,
              the logfile will be saved in the same location as the
              OutputFile.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables lists the cell diagnostics to include in the
              output file.`,
			defaultVal: []string{"SignificantWaveHeight", "TotalEnergy", "PeakDissipation"},
			flagsets:   []*pflag.FlagSet{runCmd.PersistentFlags()},
		},
	}

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case []int:
				if option.shorthand == "" {
					set.IntSlice(option.name, option.defaultVal.([]int), option.usage)
				} else {
					set.IntSliceP(option.name, option.shorthand, option.defaultVal.([]int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
		}
	}

	initCfg()
}

// initCfg creates a new configuration registry bound to the command-line
// flags. Calling it again discards any values previously set on Cfg,
// including configuration file contents.
func initCfg() {
	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("WAVICE")

	for _, option := range options {
		Cfg.BindPFlag(option.name, option.flagsets[0].Lookup(option.name))
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(validateCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("wavice: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "wavice",
	Short: "A sea ice source term for spectral wave models.",
	Long: `WAVICE computes the dissipation of ocean wave energy by sea ice using
a selectable empirical attenuation parameterization.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'WAVICE_var' where 'var' is
the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

// versionCmd prints the version number.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "WAVICE v%s\n", Version)
		return nil
	},
}

// runCmd runs the simulation.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the simulation and save the results",
	Long: `run builds a domain from the configuration, applies the selected ice
attenuation parameterization to every cell until the spectrum stops
changing (or for NumIterations iterations), and writes the requested
diagnostics for every cell to OutputFile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := configFromViper(Cfg)
		if err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		logFile := checkLogFile(Cfg.GetString("LogFile"), outputFile)
		return Run(cmd, logFile, outputFile, Cfg.GetStringSlice("OutputVariables"), c)
	},
}

// validateCmd checks the configuration without running.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration without running",
	Long: `validate checks the spectral grid, the ice attenuation method, and
(for the step function methods) the required coefficients and table, and
reports the first problem found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := configFromViper(Cfg)
		if err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if _, err := c.Grid(); err != nil {
			return err
		}
		model, err := c.Model()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "configuration is valid (attenuation model: %s)\n", model.Name())
		return nil
	},
}
