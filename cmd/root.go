/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/strollnet/paceline/params"
	"github.com/strollnet/paceline/types/detector"
)

var optConfigPath string
var optVerbosity int

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "paceline",
	Short: "Reconstruct pedestrian trajectories from ambiguous detection logs",
	Long: `Paceline partitions time-ordered wireless detection records into
per-person trajectories. Records sharing a payload hash may belong to
different people; the estimator separates them by testing whether the
implied movement between detectors is physically walkable.

Subcommands cover the whole experiment loop: generate synthetic
detection logs, estimate trajectories from a log, evaluate estimates
against ground truth, and batch the loop over walker-count sweeps.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Accept snake_case spellings for all flags.
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	pFlags := rootCmd.PersistentFlags()
	pFlags.StringVar(&optConfigPath, "config", "", "Path to a YAML config file (defaults apply when empty)")
	pFlags.IntVarP(&optVerbosity, "verbosity", "v", 0, "Verbosity level: 0=info, 1=debug, -1=warn")
}

func setDefaultSlog(cmd *cobra.Command, args []string) {
	level := slog.LevelInfo
	switch {
	case optVerbosity > 0:
		level = slog.LevelDebug
	case optVerbosity < 0:
		level = slog.LevelWarn
	}
	slog.SetLogLoggerLevel(level)
}

// loadConfig resolves the --config flag into a full configuration and a
// detector registry. Fatal on error; every subcommand needs both.
func loadConfig() (*params.Config, *detector.Registry) {
	conf, err := params.Load(optConfigPath)
	if err != nil {
		log.Fatalln(err)
	}
	registry, err := detector.FromSpecs(conf.Detectors)
	if err != nil {
		log.Fatalln(err)
	}
	return conf, registry
}
