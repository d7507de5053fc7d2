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
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/strollnet/paceline/evaluator"
	"github.com/strollnet/paceline/flat"
)

var optEvalTruth string
var optEvalEstimates string
var optEvalOutput string

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score estimated trajectories against ground truth",
	Long: `Matches estimated trajectories to ground-truth routes by route
string and stay timing, then reports per-route person counts and the
headline accuracy metrics (MAE, RMSE, tracking rate).

Writes evaluation_report.json to the output directory and prints the
metrics to stdout.`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		conf, _ := loadConfig()

		truths, err := evaluator.ReadTruths(optEvalTruth)
		if err != nil {
			log.Fatalln(err)
		}
		estimates, err := evaluator.ReadEstimates(optEvalEstimates)
		if err != nil {
			log.Fatalln(err)
		}

		rep := evaluator.Evaluate(truths, estimates, conf.Evaluate)

		repPath := filepath.Join(optEvalOutput, "evaluation_report.json")
		if err := flat.WriteJSON(repPath, rep); err != nil {
			log.Fatalln(err)
		}

		fmt.Printf("routes=%d exact=%d mae=%.3f rmse=%.3f tracking=%.1f%%\n",
			rep.Metrics.TotalRoutes, rep.Metrics.ExactMatches,
			rep.Metrics.MAE, rep.Metrics.RMSE, rep.Metrics.TrackingRate*100)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	flags := evaluateCmd.Flags()
	flags.StringVarP(&optEvalTruth, "truth", "t", "output/ground_truth.json", "Ground truth JSON path")
	flags.StringVarP(&optEvalEstimates, "estimates", "e", "output/estimated_trajectories.json", "Estimated trajectories JSON path")
	flags.StringVarP(&optEvalOutput, "output", "o", "output", "Output directory")
}
