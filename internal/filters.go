package internal

import (
	"fmt"

	"github.com/visionpipe/preprocess/internal/imaging"
	"github.com/visionpipe/preprocess/internal/imaging/stage"
)

// FilterOptions carries the tunables shared by the named pipelines.
type FilterOptions struct {
	KernelSize int
	Sigma      float64
	Direct     bool
}

// DefaultFilterOptions is a 5x5 kernel with sigma 1.0, separable path.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{KernelSize: 5, Sigma: 1.0}
}

// Pipelines returns the named filter pipelines. "auto" is resolved by the
// caller via quality assessment before lookup.
func Pipelines(opts FilterOptions) map[string][]imaging.Stage {
	return map[string][]imaging.Stage{
		"gaussian": {
			&stage.GaussianBlurStage{Size: opts.KernelSize, Sigma: opts.Sigma, Direct: opts.Direct},
		},
		"sharpen": {
			&stage.SharpenStage{},
		},
		"denoise": {
			&stage.DenoiseStage{Size: 3},
		},
		"equalize": {
			&stage.EqualizeStage{},
		},
		"edge": {
			&stage.GreyscaleStage{},
			&stage.EdgeDetectStage{Radius: 1.0},
		},
		"smooth": {
			&stage.GaussianBlurStage{Size: opts.KernelSize, Sigma: opts.Sigma, Direct: opts.Direct},
			&stage.ResampleStage{},
		},
		"greyscale": {
			&stage.GreyscaleStage{},
		},
		// NoOp
		"none": {},
	}
}

// LookupPipeline resolves a filter name to its stages.
func LookupPipeline(name string, opts FilterOptions) ([]imaging.Stage, error) {
	pipeline, ok := Pipelines(opts)[name]
	if !ok {
		return nil, fmt.Errorf("no processing pipeline defined for filter %q", name)
	}
	return pipeline, nil
}
