package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/visionpipe/preprocess/internal"
	"github.com/visionpipe/preprocess/internal/imaging"
	"github.com/visionpipe/preprocess/internal/quality"
)

// Filter processes a single image file through the named pipeline and writes
// the result as PNG. When animatePath is non-empty, an APNG showing the image
// before processing and after each stage is written alongside.
func Filter(inputPath, outputPath, filter string, opts internal.FilterOptions, animatePath string) error {
	internal.ShowVersion()

	inFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", inputPath, err)
	}
	defer func() {
		_ = inFile.Close()
	}()

	img, err := imaging.Decode(inFile)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", inputPath, err)
	}

	if filter == "auto" {
		report, err := quality.Assess(img.Img)
		if err != nil {
			return fmt.Errorf("failed to assess image quality: %w", err)
		}
		log.Printf("Quality: blurVariance=%.1f brightness=%.1f contrast=%.1f noise=%.1f issues=%v",
			report.BlurVariance, report.Brightness, report.Contrast, report.NoiseLevel, report.Issues)
		filter = report.RecommendedFilter
		log.Printf("Selected filter: %s", filter)
	}

	pipeline, err := internal.LookupPipeline(filter, opts)
	if err != nil {
		return err
	}

	if animatePath != "" {
		frames, err := img.PipelineFrames(pipeline...)
		if err != nil {
			return fmt.Errorf("failed to process image pipeline: %w", err)
		}

		apngBytes, err := imaging.Animate(frames, 1.0)
		if err != nil {
			return fmt.Errorf("failed to encode animation: %w", err)
		}
		if err := os.WriteFile(animatePath, apngBytes, 0644); err != nil {
			return fmt.Errorf("failed to write animation: %w", err)
		}
		log.Printf("Wrote stage progression animation to %s", animatePath)
	} else if err := img.Pipeline(pipeline...); err != nil {
		return fmt.Errorf("failed to process image pipeline: %w", err)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outputPath, err)
	}

	if err := img.Write(outFile); err != nil {
		_ = outFile.Close()
		return fmt.Errorf("failed to encode %s: %w", outputPath, err)
	}

	return outFile.Close()
}
