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
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/strollnet/paceline/batch"
)

var optBatchID string

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Run a generate/estimate/evaluate sweep over walker counts",
	Long: `Runs the full experiment loop for every (walker count, run index)
cell configured in the batch section, aggregating MAE, RMSE and tracking
rate per condition with 95% confidence intervals.

Each completed run is persisted to a bolt database in the experiment
directory, so an interrupted sweep rerun with the same --id picks up
where it left off instead of recomputing finished cells.`,
	Run: func(cmd *cobra.Command, args []string) {
		setDefaultSlog(cmd, args)
		conf, registry := loadConfig()

		ctx, stop := signal.NotifyContext(context.Background(),
			syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		runner, err := batch.NewRunner(registry, conf)
		if err != nil {
			log.Fatalln(err)
		}
		sum, err := runner.Run(ctx, optBatchID)
		if err != nil {
			log.Fatalln(err)
		}

		for _, c := range sum.Conditions {
			fmt.Printf("walkers=%-4d mae=%.3f±%.3f tracking=%.1f%%±%.1f%%\n",
				c.Walkers,
				c.MAE.Mean, c.MAE.Mean-c.MAE.CI95Low,
				c.TrackingRate.Mean*100, (c.TrackingRate.Mean-c.TrackingRate.CI95Low)*100)
		}
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&optBatchID, "id", "", "Experiment ID to resume (fresh ID when empty)")
}
