// Command lambdamart trains a LambdaMART ranking ensemble from svmlight-formatted training data,
// optionally tracking a held-out validation set, and reports one metric line per tree (spec.md §6).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/janpfeifer/lambdamart/internal/dataset"
	"github.com/janpfeifer/lambdamart/internal/lambdamart"
	"github.com/janpfeifer/lambdamart/internal/metric"
	"github.com/janpfeifer/lambdamart/internal/profilers"
	"github.com/janpfeifer/lambdamart/internal/svmlight"
)

var (
	flagTrain    = flag.String("train", "", "svmlight file with training data (required).")
	flagValidate = flag.String("validate", "", "svmlight file with validation data (optional).")
	flagTest     = flag.String("test", "", "svmlight file to score with the trained ensemble and report the final metric for (optional).")

	flagMetric  = flag.String("metric", "NDCG", "Ranking metric: NDCG or DCG.")
	flagMetricK = flag.Int("metric-k", 10, "Truncation level for the ranking metric.")

	flagTrees          = flag.Int("trees", 1000, "Number of trees (boosting iterations).")
	flagLeaves         = flag.Int("leaves", 10, "Max leaves per tree.")
	flagShrinkage      = flag.Float64("shrinkage", 0.1, "Learning rate applied to every tree's contribution.")
	flagThresholds     = flag.Int("thresholds", 256, "Max number of per-feature histogram bins.")
	flagMinLeafSupport = flag.Int("min-leaf-support", 1, "Minimum number of instances per leaf.")
	flagEarlyStop      = flag.Int("early-stop", 100, "Reserved; accepted but not consulted by the training loop.")

	flagPrintMetric = flag.Bool("print-metric", false, "Log the per-iteration metric line at -v=1.")
	flagPrintTree   = flag.Bool("print-tree", false, "Log each freshly built tree as indented text at -v=1.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if err := run(); err != nil {
		klog.Errorf("%+v", err)
		os.Exit(1)
	}
}

func run() error {
	if *flagTrain == "" {
		return errors.New("--train is required")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	profilers.Setup(ctx)
	defer profilers.OnQuit()

	trainDS, err := loadDataSet(*flagTrain)
	if err != nil {
		return errors.Wrap(err, "loading training data")
	}

	var validateDS *dataset.DataSet
	if *flagValidate != "" {
		validateDS, err = loadDataSet(*flagValidate)
		if err != nil {
			return errors.Wrap(err, "loading validation data")
		}
	}

	cfg := lambdamart.Config{
		Trees:          *flagTrees,
		LearningRate:   *flagShrinkage,
		MaxLeaves:      *flagLeaves,
		MinLeafSamples: *flagMinLeafSupport,
		Bins:           *flagThresholds,
		MetricFamily:   *flagMetric,
		MetricK:        *flagMetricK,
		EarlyStop:      *flagEarlyStop,
		PrintMetric:    *flagPrintMetric,
		PrintTree:      *flagPrintTree,
	}

	driver, err := lambdamart.New(cfg, trainDS, validateDS)
	if err != nil {
		return errors.Wrap(err, "configuring trainer")
	}

	if err := driver.Train(ctx, func(r lambdamart.Report) {
		fmt.Println(r.String())
	}); err != nil {
		return errors.Wrap(err, "training")
	}

	if *flagTest != "" {
		if err := evaluateTest(driver, cfg); err != nil {
			return errors.Wrap(err, "evaluating test data")
		}
	}
	return nil
}

// evaluateTest scores *flagTest with the trained ensemble and prints the mean metric over its
// queries. Ensemble already applies shrinkage internally (spec.md §3), so it is handed to
// ValidateSet.Update with a learning rate of 1 rather than accumulated tree-by-tree.
func evaluateTest(driver *lambdamart.Driver, cfg lambdamart.Config) error {
	testDS, err := loadDataSet(*flagTest)
	if err != nil {
		return err
	}
	m, err := metric.New(cfg.MetricFamily, cfg.MetricK)
	if err != nil {
		return err
	}

	vs := dataset.NewValidateSet(testDS)
	vs.Update(driver.Ensemble(), 1.0)
	fmt.Printf("test %s@%d = %.6f\n", cfg.MetricFamily, cfg.MetricK, vs.Evaluate(m))
	return nil
}

func loadDataSet(path string) (*dataset.DataSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	instances, err := svmlight.Load(f)
	if err != nil {
		return nil, err
	}
	return dataset.New(instances), nil
}
