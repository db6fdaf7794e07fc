package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/go-ml-lab/svmkit/dataset"
	"github.com/go-ml-lab/svmkit/floatkind"
	"github.com/go-ml-lab/svmkit/gnb"
	"github.com/go-ml-lab/svmkit/internal/mlog"
	"github.com/go-ml-lab/svmkit/kernel"
	"github.com/go-ml-lab/svmkit/smo"
)

func (c *cli) newTrainCommand() *cobra.Command {
	var (
		kernelName string
		gamma      float64
		coef0      float64
		degree     int
		boxC       float64
		eps        float64
		nu         bool
		naiveBayes bool
	)

	cmd := &cobra.Command{
		Use:   "train <csv-file>...",
		Short: "Fit an SVM (default) or Gaussian Naive Bayes model on one or more CSV files",
		Args:  cobra.MinimumNArgs(1),
		Example: `  svmkit train data.csv --kernel rbf --gamma 0.5
  svmkit train part1.csv part2.csv --nb`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runID := uuid.New()
			start := time.Now()

			sets, err := loadCSVFiles(args)
			if err != nil {
				return fmt.Errorf("load csv: %w", err)
			}
			ds, err := concatMatrix(sets)
			if err != nil {
				return fmt.Errorf("assemble dataset: %w", err)
			}
			mlog.Section("Dataset")
			mlog.Stats("run", runID)
			mlog.Stats("samples", humanize.Comma(int64(ds.Rows())))
			mlog.Stats("features", ds.Cols())

			if naiveBayes {
				return trainGNB(ds, start)
			}
			return trainSVM(ds, kernelName, gamma, coef0, degree, boxC, eps, nu, start)
		},
	}

	cmd.Flags().StringVar(&kernelName, "kernel", "linear", "Kernel: linear, poly, or rbf")
	cmd.Flags().Float64Var(&gamma, "gamma", 1.0, "Kernel gamma (poly, rbf)")
	cmd.Flags().Float64Var(&coef0, "coef0", 0.0, "Kernel coef0 (poly)")
	cmd.Flags().IntVar(&degree, "degree", 3, "Kernel degree (poly)")
	cmd.Flags().Float64Var(&boxC, "c", 1.0, "Box constraint C on every alpha")
	cmd.Flags().Float64Var(&eps, "eps", 1e-3, "KKT stopping tolerance")
	cmd.Flags().BoolVar(&nu, "nu", false, "Use the nu-formulation")
	cmd.Flags().BoolVar(&naiveBayes, "nb", false, "Fit Gaussian Naive Bayes instead of an SVM")

	return cmd
}

func buildKernelFunc(name string, gamma, coef0 float64, degree int) (kernel.Func, bool, error) {
	switch name {
	case "linear":
		return kernel.Linear, true, nil
	case "poly":
		return kernel.Poly(gamma, coef0, degree), false, nil
	case "rbf":
		return kernel.RBF(gamma), false, nil
	default:
		return nil, false, fmt.Errorf("unknown kernel %q", name)
	}
}

func trainSVM(ds dataset.Dataset, kernelName string, gamma, coef0 float64, degree int, boxC, eps float64, nu bool, start time.Time) error {
	fn, linear, err := buildKernelFunc(kernelName, gamma, coef0, degree)
	if err != nil {
		return err
	}

	targets, err := binaryTargets(ds.Targets())
	if err != nil {
		return err
	}

	n := ds.Rows()
	ker := kernel.NewDense[float64](ds.Records(), fn, linear)

	alpha0 := make([]float64, n)
	p := make([]float64, n)
	bounds := make([]float64, n)
	for i := range p {
		p[i] = -1
		bounds[i] = boxC
	}

	params := smo.DefaultParams[float64]()
	params.Eps = floatkind.FromFloat64[float64](eps)

	solver := smo.New[float64](alpha0, p, targets, ker, bounds, params, nu)
	result := solver.Solve()

	mlog.Section("SVM result")
	mlog.Stats("exit_reason", result.ExitReason)
	mlog.Stats("iterations", humanize.Comma(int64(result.Iterations)))
	mlog.Stats("rho", result.Rho)
	mlog.Stats("objective", result.Obj)
	if result.LinearDecision != nil {
		mlog.Stats("linear_decision", result.LinearDecision)
	}
	mlog.Stats("elapsed", humanize.Time(start))
	return nil
}

func trainGNB(ds dataset.Dataset, start time.Time) error {
	model, err := gnb.Fit[float64](ds.Records(), ds.Targets(), gnb.DefaultParams[float64]())
	if err != nil {
		return err
	}

	mlog.Section("GNB result")
	for _, class := range model.Classes() {
		prior, _ := model.Prior(class)
		mlog.Stats(fmt.Sprintf("prior[%d]", class), prior)
	}
	mlog.Stats("elapsed", humanize.Time(start))
	return nil
}

// binaryTargets maps the two distinct labels seen in labels to true/false,
// in order of first appearance; multi-class SVM is out of scope.
func binaryTargets(labels []int) ([]bool, error) {
	var first, second int
	haveFirst, haveSecond := false, false
	targets := make([]bool, len(labels))

	for i, l := range labels {
		switch {
		case !haveFirst:
			first, haveFirst = l, true
			targets[i] = true
		case l == first:
			targets[i] = true
		case !haveSecond:
			second, haveSecond = l, true
			targets[i] = false
		case l == second:
			targets[i] = false
		default:
			return nil, fmt.Errorf("svm training only supports two classes, found a third: %d", l)
		}
	}
	return targets, nil
}
