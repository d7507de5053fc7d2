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
	"context"
	"log"
	"log/slog"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/strollnet/paceline/estimator"
	"github.com/strollnet/paceline/flat"
)

var optEstInput string
var optEstOutput string

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Reconstruct trajectories from a detection log",
	Long: `Reads a detection log (CSV, optionally gzipped), partitions the
records by integrated payload hash, and repeatedly extracts one
physically-feasible trajectory per payload group per pass until no
record can be claimed.

Writes to the output directory:

  estimated_trajectories.json   reconstructed routes with per-stay windows
  annotated_log.csv.gz          the input records with cluster assignments`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		conf, registry := loadConfig()

		records, err := flat.ReadDetectionLog(optEstInput)
		if err != nil {
			log.Fatalln(err)
		}

		est, err := estimator.New(registry, conf.Cluster)
		if err != nil {
			log.Fatalln(err)
		}
		res, err := est.Estimate(context.Background(), records)
		if err != nil {
			log.Fatalln(err)
		}

		trajPath := filepath.Join(optEstOutput, "estimated_trajectories.json")
		if err := flat.WriteTrajectories(trajPath, res.Trajectories); err != nil {
			log.Fatalln(err)
		}
		annPath := filepath.Join(optEstOutput, "annotated_log.csv.gz")
		if err := flat.WriteAnnotatedLog(annPath, records); err != nil {
			log.Fatalln(err)
		}

		slog.Info("Estimate done",
			"records", humanize.Comma(int64(res.TotalRecords)),
			"trajectories", len(res.Trajectories),
			"passes", res.Passes,
			"unjudged", res.UnjudgedRecords,
			"out", trajPath)
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)

	flags := estimateCmd.Flags()
	flags.StringVarP(&optEstInput, "input", "i", "output/detection_log.csv.gz", "Detection log path")
	flags.StringVarP(&optEstOutput, "output", "o", "output", "Output directory")
}
