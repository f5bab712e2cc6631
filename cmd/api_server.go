package cmd

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
	"github.com/visionpipe/preprocess/internal"
	"github.com/visionpipe/preprocess/internal/imaging"
	"github.com/visionpipe/preprocess/internal/quality"
)

const maxUploadBytes = 32 << 20

func ApiServer(port int, watchDir, outputDir string, opts internal.FilterOptions, debug bool) {

	if watchDir != "" {
		sched, err := internal.NewScheduler(watchDir, outputDir, "auto", opts, 5*time.Minute)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				log.Printf("failed to shutdown scheduler: %v", err)
			}
		}()
	}

	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
	)

	if debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	if err := healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{}); err != nil {
		log.Fatalf("failed to initialize healthcheck: %v", err)
	}

	r.POST("/v1/preprocess/:filter", PreprocessHandler(opts))
	r.POST("/v1/quality", QualityHandler())

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting HTTP API Server on port %d...", port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP API Server failed to start on port %d: %v", port, err)
	}
}

// PreprocessHandler decodes the posted image, runs the named filter pipeline
// ("auto" picks one from quality assessment) and responds with the processed
// PNG.
func PreprocessHandler(opts internal.FilterOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		img, err := imaging.Decode(http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to decode image: %v", err)})
			return
		}

		filter := c.Param("filter")
		if filter == "auto" {
			report, err := quality.Assess(img.Img)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			filter = report.RecommendedFilter
		}

		pipeline, err := internal.LookupPipeline(filter, opts)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		if err := img.Pipeline(pipeline...); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		var buf bytes.Buffer
		if err := img.Write(&buf); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Header("X-Preprocess-Filter", filter)
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	}
}

// QualityHandler responds with the quality report for the posted image.
func QualityHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		img, err := imaging.Decode(http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to decode image: %v", err)})
			return
		}

		report, err := quality.Assess(img.Img)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, report)
	}
}
