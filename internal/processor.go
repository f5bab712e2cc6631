package internal

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/visionpipe/preprocess/internal/imaging"
	"github.com/visionpipe/preprocess/internal/quality"
)

// ErrNoImages indicates the input directory exists but holds no image files.
// Periodic watchers treat this as routine; one-shot batch runs surface it.
var ErrNoImages = errors.New("no images to process")

// Processor batch-processes every image in a directory through a filter
// pipeline using a pool of workers.
type Processor struct {
	startTime time.Time
	endTime   time.Time
	inputDir  string
	outputDir string
	filter    string
	opts      FilterOptions
	poolSize  int
	maxJobs   int
	jobs      chan string
	results   chan error
	files     []string
}

func NewProcessor(inputDir, outputDir, filter string, opts FilterOptions, poolSize int) (*Processor, error) {
	if poolSize < 1 {
		return nil, errors.New("pool size must be at least 1")
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg":
			files = append(files, entry.Name())
		}
	}

	log.Printf("Input directory %s contains %d images", inputDir, len(files))
	if len(files) == 0 {
		return nil, ErrNoImages
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Processor{
		startTime: time.Now(),
		inputDir:  inputDir,
		outputDir: outputDir,
		filter:    filter,
		opts:      opts,
		poolSize:  poolSize,
		maxJobs:   -1,
		jobs:      make(chan string),
		results:   make(chan error),
		files:     files,
	}, nil
}

// DispatchJobs sends files to the jobs channel for processing by workers.
// When maxJobs is greater than zero, it limits the number of jobs dispatched,
// hence set to -1 to dispatch all jobs.
func (p *Processor) DispatchJobs() {

	go func() {
		for n, file := range p.files {
			if p.maxJobs > 0 && n >= p.maxJobs {
				break
			}
			p.jobs <- file
		}
		close(p.jobs)
	}()
}

func (p *Processor) StartWorkers() {
	log.Printf("Starting processing files with pool size: %d", p.poolSize)

	for i := 0; i < p.poolSize; i++ {
		go p.worker(i)
	}
}

func (p *Processor) worker(i int) {
	log.Printf("Worker %d started", i)
	for file := range p.jobs {
		p.results <- p.processFile(file)
	}
	log.Printf("Worker %d finished", i)
}

func (p *Processor) processFile(name string) error {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	filename := filepath.Join(p.outputDir, base+".png")

	// if the file has already been processed, skip it
	if _, err := os.Stat(filename); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	inFile, err := os.Open(filepath.Join(p.inputDir, name))
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() {
		_ = inFile.Close()
	}()

	img, err := imaging.Decode(inFile)
	if err != nil {
		return fmt.Errorf("failed to decode image %s: %w", name, err)
	}

	filter := p.filter
	if filter == "auto" {
		report, err := quality.Assess(img.Img)
		if err != nil {
			return fmt.Errorf("failed to assess image quality: %w", err)
		}
		filter = report.RecommendedFilter
		log.Printf("File %s: issues=%v, selected filter %q", name, report.Issues, filter)
	}

	pipeline, err := LookupPipeline(filter, p.opts)
	if err != nil {
		return err
	}

	if err := img.Pipeline(pipeline...); err != nil {
		return fmt.Errorf("failed to process image pipeline: %w", err)
	}

	tmpFile, err := os.CreateTemp(p.outputDir, "preprocess-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	cleanupTemp := true
	defer func() {
		_ = tmpFile.Close()
		if cleanupTemp {
			_ = os.Remove(tmpFile.Name())
		}
	}()

	if err := img.Write(tmpFile); err != nil {
		return fmt.Errorf("failed to write processed image to temporary file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file before rename: %w", err)
	}

	if err := os.Rename(tmpFile.Name(), filename); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	cleanupTemp = false // Successfully renamed, don't delete
	return nil
}

func (p *Processor) Wait() []error {
	waitFor := p.maxJobs
	if waitFor < 0 {
		waitFor = len(p.files)
	}
	log.Printf("Waiting for %d files to be processed", waitFor)

	errors := make([]error, 0, 10)
	for i := 0; i < waitFor; i++ {
		err := <-p.results
		if err != nil {
			errors = append(errors, err)
		}
	}
	p.endTime = time.Now()
	elapsed := p.endTime.Sub(p.startTime)
	log.Printf("All files processed in %s (errors=%d)", elapsed, len(errors))
	return errors
}
