package convolve

// Grid is a single-plane pixel grid with an 8-bit unsigned sample domain.
// Pix holds Rows*Cols samples in row-major order with stride Cols. The
// convolution functions never alias an input grid with their output.
type Grid struct {
	Rows, Cols int
	Pix        []uint8
}

// NewGrid allocates a zeroed grid of the given dimensions.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		Rows: rows,
		Cols: cols,
		Pix:  make([]uint8, rows*cols),
	}
}

// At returns the sample at row r, column c.
func (g *Grid) At(r, c int) uint8 {
	return g.Pix[r*g.Cols+c]
}

// Set stores a sample at row r, column c.
func (g *Grid) Set(r, c int, v uint8) {
	g.Pix[r*g.Cols+c] = v
}
