package lambdamart

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/janpfeifer/lambdamart/internal/dataset"
	"github.com/janpfeifer/lambdamart/internal/metric"
	"github.com/janpfeifer/lambdamart/internal/tree"
)

// Report is one line of iteration output, emitted after every tree is grown (spec.md §4.5 step
// 6). ValidateMetric is nil when the driver has no validation set.
type Report struct {
	Iteration      int
	TrainMetric    float64
	ValidateMetric *float64
}

// String formats r the way spec.md §6 describes: "<iter> | <train_metric> | <validate_metric>",
// the validate column left blank when there is no validation set.
func (r Report) String() string {
	validate := ""
	if r.ValidateMetric != nil {
		validate = fmt.Sprintf("%.6f", *r.ValidateMetric)
	}
	return fmt.Sprintf("%6d | %.6f | %s", r.Iteration, r.TrainMetric, validate)
}

// Driver owns a TrainingSet, an optional ValidateSet, and the growing Ensemble, and runs the
// iteration loop spec.md §4.5 describes.
type Driver struct {
	cfg      Config
	metric   metric.Scorer
	train    *dataset.TrainingSet
	validate *dataset.ValidateSet
	ensemble *tree.Ensemble
}

// New constructs a Driver. Config errors (spec.md §7.2) are returned here, at construction time,
// rather than discovered mid-training -- the same contract internal/players' searcher-scorer
// constructors use in the teacher repo.
func New(cfg Config, trainDS *dataset.DataSet, validateDS *dataset.DataSet) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if trainDS.Len() == 0 {
		return nil, errors.New("training data set is empty")
	}

	m, err := metric.New(cfg.MetricFamily, cfg.MetricK)
	if err != nil {
		return nil, err
	}

	trainSet, err := dataset.NewTrainingSet(trainDS, cfg.Bins)
	if err != nil {
		return nil, err
	}

	var validateSet *dataset.ValidateSet
	if validateDS != nil {
		validateSet = dataset.NewValidateSet(validateDS)
	}

	return &Driver{
		cfg:      cfg,
		metric:   m,
		train:    trainSet,
		validate: validateSet,
		ensemble: tree.NewEnsemble(cfg.LearningRate),
	}, nil
}

// Ensemble returns the model grown so far. Safe to call between Train iterations or after Train
// returns.
func (d *Driver) Ensemble() *tree.Ensemble { return d.ensemble }

// Train runs cfg.Trees iterations of spec.md §4.5's loop: recompute lambdas/weights, grow one
// tree, fold its output into ModelScore, append it to the ensemble, measure train (and,
// optionally, validate) metric, and report. ctx is checked between iterations only -- a tree
// already under construction always finishes (spec.md §9) -- and a cancellation ends training
// with the partial ensemble and a nil error, not a failure.
//
// report is invoked once per completed iteration; it may be nil.
func (d *Driver) Train(ctx context.Context, report func(Report)) error {
	var bar *progressbar.ProgressBar
	if !klog.V(1).Enabled() {
		bar = progressbar.Default(int64(d.cfg.Trees), "training")
	}

	for iter := 1; iter <= d.cfg.Trees; iter++ {
		select {
		case <-ctx.Done():
			klog.Infof("training interrupted after %d/%d trees: %v", iter-1, d.cfg.Trees, ctx.Err())
			return nil
		default:
		}

		if err := d.train.UpdateLambdasWeights(d.metric); err != nil {
			return errors.Wrapf(err, "updating lambdas/weights at iteration %d", iter)
		}

		treeCfg := tree.Config{
			LearningRate:   d.cfg.LearningRate,
			MaxLeaves:      d.cfg.MaxLeaves,
			MinLeafSamples: d.cfg.MinLeafSamples,
		}
		t, outputs, err := tree.Learn(d.train, treeCfg)
		if err != nil {
			return errors.Wrapf(err, "growing tree %d", iter)
		}
		d.train.AddLeafOutputs(outputs)
		d.ensemble.Append(t)

		if d.cfg.PrintTree {
			var buf strings.Builder
			t.Print(&buf)
			klog.V(1).Infof("tree %d (%d leaves):\n%s", iter, t.NumLeaves(), buf.String())
		}

		r := Report{Iteration: iter, TrainMetric: d.train.Evaluate(d.metric)}
		if d.validate != nil {
			d.validate.Update(t, d.cfg.LearningRate)
			v := d.validate.Evaluate(d.metric)
			r.ValidateMetric = &v
		}
		if d.cfg.PrintMetric {
			klog.V(1).Infof("iteration %d: %s", iter, r)
		}
		if report != nil {
			report(r)
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return nil
}
