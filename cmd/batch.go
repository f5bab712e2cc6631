package cmd

import (
	"fmt"

	"github.com/visionpipe/preprocess/internal"
)

// Batch processes every image in inputDir through the named filter pipeline
// using a worker pool, writing results to outputDir.
func Batch(inputDir, outputDir, filter string, opts internal.FilterOptions, poolSize int) error {
	internal.ShowVersion()
	internal.UserInfo()
	internal.EnvironmentVars()

	processor, err := internal.NewProcessor(inputDir, outputDir, filter, opts, poolSize)
	if err != nil {
		return err
	}

	processor.StartWorkers()
	processor.DispatchJobs()

	if errors := processor.Wait(); len(errors) > 0 {
		return fmt.Errorf("%d files failed to process: %v", len(errors), errors)
	}
	return nil
}
