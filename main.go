package main

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/visionpipe/preprocess/cmd"
	"github.com/visionpipe/preprocess/internal"
)

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Ignoring non-numeric %s=%q", key, v)
	}
	return fallback
}

func main() {
	var filterName string
	var kernelSize int
	var sigma float64
	var direct bool
	var animatePath string
	var poolSize int
	var port int
	var watchDir string
	var outputDir string
	var debug bool

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	rootCmd := &cobra.Command{
		Use:  "preprocess",
		Long: `Image preprocessing pipeline with a from-scratch Gaussian convolution core`,
	}

	addFilterFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&filterName, "filter", "auto", "Filter pipeline to apply (auto, gaussian, sharpen, denoise, equalize, edge, smooth, greyscale, none)")
		c.Flags().IntVar(&kernelSize, "size", 5, "Gaussian kernel size (odd)")
		c.Flags().Float64Var(&sigma, "sigma", 1.0, "Gaussian standard deviation")
		c.Flags().BoolVar(&direct, "direct", false, "Use direct 2D convolution instead of the separable path")
	}

	opts := func() internal.FilterOptions {
		return internal.FilterOptions{KernelSize: kernelSize, Sigma: sigma, Direct: direct}
	}

	filterCmd := &cobra.Command{
		Use:   "filter <input> <output>",
		Short: "Preprocess a single image",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Filter(args[0], args[1], filterName, opts(), animatePath)
		},
	}
	addFilterFlags(filterCmd)
	filterCmd.Flags().StringVar(&animatePath, "animate", "", "Also write a stage-progression APNG to this path")

	batchCmd := &cobra.Command{
		Use:   "batch <input-dir> <output-dir>",
		Short: "Preprocess a directory of images with a worker pool",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return cmd.Batch(args[0], args[1], filterName, opts(), poolSize)
		},
	}
	addFilterFlags(batchCmd)
	batchCmd.Flags().IntVar(&poolSize, "pool-size", envInt("PREPROCESS_POOL_SIZE", 4), "Number of worker goroutines")

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--port <port>] [--watch <dir>] [--debug]",
		Short: "Start HTTP API server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.ApiServer(port, watchDir, outputDir, opts(), debug)
		},
	}
	addFilterFlags(apiServerCmd)
	apiServerCmd.Flags().IntVar(&port, "port", envInt("PREPROCESS_PORT", 8080), "Port to run HTTP server on")
	apiServerCmd.Flags().StringVar(&watchDir, "watch", "", "Directory to scan periodically for new images")
	apiServerCmd.Flags().StringVar(&outputDir, "output", "./data/processed", "Output directory for watched images")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			internal.ShowVersion()
		},
	}

	rootCmd.AddCommand(filterCmd, batchCmd, apiServerCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
