package quality

// Report captures the quality heuristics computed for a single image, plus
// the preprocessing filter recommended from them.
type Report struct {
	BlurVariance      float64  `json:"blurVariance"`
	Brightness        float64  `json:"brightness"`
	Contrast          float64  `json:"contrast"`
	NoiseLevel        float64  `json:"noiseLevel"`
	Width             int      `json:"width"`
	Height            int      `json:"height"`
	Issues            []string `json:"issues,omitempty"`
	RecommendedFilter string   `json:"recommendedFilter"`
}
