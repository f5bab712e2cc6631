package internal

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// NewScheduler starts a periodic job that re-scans the watch directory and
// processes any new images into the output directory. The first scan runs
// eagerly so startup fails fast when the directories are unusable.
func NewScheduler(watchDir, outputDir, filter string, opts FilterOptions, interval time.Duration) (gocron.Scheduler, error) {

	if err := scanAndProcess(watchDir, outputDir, filter, opts); err != nil {
		return nil, fmt.Errorf("initial run of job failed: %w", err)
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(scanAndProcess, watchDir, outputDir, filter, opts),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	scheduler.Start()
	return scheduler, nil
}

func scanAndProcess(watchDir, outputDir, filter string, opts FilterOptions) error {
	processor, err := NewProcessor(watchDir, outputDir, filter, opts, 1)
	if errors.Is(err, ErrNoImages) {
		// an empty watch directory is routine between drops, not a failure
		log.Printf("Nothing to process in %s", watchDir)
		return nil
	}
	if err != nil {
		return err
	}

	processor.StartWorkers()
	processor.DispatchJobs()
	if errs := processor.Wait(); len(errs) > 0 {
		return fmt.Errorf("processing errors occurred: %v", errs)
	}
	return nil
}
