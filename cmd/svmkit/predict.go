package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-ml-lab/svmkit/gnb"
	"github.com/go-ml-lab/svmkit/internal/mlog"
)

// newPredictCommand is a small demo command: it re-fits a Gaussian Naive
// Bayes model on the given CSV file(s) in-process and reports predicted
// labels for the same rows. svmkit never persists a trained model (see
// SPEC_FULL.md's Non-goals), so there is nothing to load here — this
// mirrors a caller who fits and predicts in the same run.
func (c *cli) newPredictCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict <csv-file>...",
		Short: "Fit a Gaussian Naive Bayes model and report predictions for the same rows",
		Args:  cobra.MinimumNArgs(1),
		Example: `  svmkit predict data.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, err := loadCSVFiles(args)
			if err != nil {
				return fmt.Errorf("load csv: %w", err)
			}
			ds, err := concatMatrix(sets)
			if err != nil {
				return fmt.Errorf("assemble dataset: %w", err)
			}

			model, err := gnb.Fit[float64](ds.Records(), ds.Targets(), gnb.DefaultParams[float64]())
			if err != nil {
				return err
			}

			predicted, err := model.Predict(ds.Records())
			if err != nil {
				return err
			}

			mlog.Section("Predictions")
			correct := 0
			targets := ds.Targets()
			for i, label := range predicted {
				if label == targets[i] {
					correct++
				}
				mlog.Stats(fmt.Sprintf("row[%d]", i), label)
			}
			mlog.Stats("accuracy_on_train", float64(correct)/float64(len(predicted)))
			return nil
		},
	}
	return cmd
}
