// internal/layout/layout.go
//
// Geometric fitting of a board into a bounded display area.
// Responsibilities:
//   - SolveGridDims: choose a (rows, cols) pair for a tile count that best
//     matches the display's aspect ratio.
//   - Compute: find the largest tile size that fits the available area,
//     falling back through alternative grid shapes and finally a forced
//     minimum size that may overflow (flagged, never fatal).
//   - Layout.TilePosition: pure per-cell geometry for the presentation layer.
//
// All offsets are computed: the tile block is centered in the content area,
// the content area in the frame, and the frame in the display region.

package layout

import "math"

// Config holds the fitting constants. Zero values fall back to defaults,
// so Config{} behaves like DefaultConfig().
type Config struct {
	MinTileSize float64
	Gap         float64
	Padding     float64
	FrameWidth  float64
}

// DefaultConfig returns the standard fitting constants.
func DefaultConfig() Config {
	return Config{MinTileSize: 32, Gap: 4, Padding: 12, FrameWidth: 2}
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.MinTileSize <= 0 {
		c.MinTileSize = d.MinTileSize
	}
	if c.Gap < 0 {
		c.Gap = d.Gap
	}
	if c.Padding < 0 {
		c.Padding = d.Padding
	}
	if c.FrameWidth < 0 {
		c.FrameWidth = d.FrameWidth
	}
	return c
}

// Layout pairs a grid shape with its resolved geometry.
// Valid is false only when the forced-minimum fallback was used and the
// board may overflow the available area.
type Layout struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`

	TileSize   float64 `json:"tileSize"`
	Gap        float64 `json:"gap"`
	Padding    float64 `json:"padding"`
	FrameWidth float64 `json:"frameWidth"`

	BoardWidth  float64 `json:"boardWidth"`
	BoardHeight float64 `json:"boardHeight"`
	BoardLeft   float64 `json:"boardLeft"`
	BoardTop    float64 `json:"boardTop"`

	Valid bool `json:"valid"`
}

// TilePos is the top-left corner and size of a single cell.
type TilePos struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Size float64 `json:"size"`
}

// SolveGridDims picks (rows, cols) with rows*cols >= tileCount whose
// cols/rows ratio deviates least from the target aspect. Exhaustive scan
// over every candidate row count; ties keep the first candidate found.
// Over-allocated cells are padded with empty tiles downstream.
func SolveGridDims(tileCount int, aspect float64) (rows, cols int) {
	if tileCount <= 0 {
		return 1, 1
	}
	if aspect <= 0 {
		aspect = 1
	}
	best := math.MaxFloat64
	rows, cols = 1, tileCount
	for r := 1; r <= tileCount; r++ {
		c := (tileCount + r - 1) / r
		if r*c < tileCount {
			continue
		}
		dev := math.Abs(float64(c)/float64(r) - aspect)
		if dev < best {
			best = dev
			rows, cols = r, c
		}
	}
	return rows, cols
}

// tileSizeFor returns the floored tile size for a grid shape in the given
// area, or a negative value when even a zero-size tile cannot fit.
func tileSizeFor(rows, cols int, availW, availH float64, cfg Config) float64 {
	chrome := 2 * (cfg.FrameWidth + cfg.Padding)
	usableW := availW - chrome
	usableH := availH - chrome
	tw := math.Floor((usableW - float64(cols-1)*cfg.Gap) / float64(cols))
	th := math.Floor((usableH - float64(rows-1)*cfg.Gap) / float64(rows))
	return math.Min(tw, th)
}

// Compute fits a tileCount board into availW x availH.
//
// Strategy A: aspect-optimal (rows, cols), ideal tile size.
// Strategy B: if A is below the minimum, enumerate every alternative grid
// shape with rows*cols >= tileCount and keep the one with the largest tile.
// Strategy C: if no shape reaches the minimum, force MinTileSize on the
// aspect-optimal shape and mark the layout degraded. The caller may need to
// scroll or clip; generation itself never fails.
func Compute(tileCount int, availW, availH float64, cfg Config) Layout {
	cfg = cfg.withDefaults()
	aspect := 1.0
	if availH > 0 {
		aspect = availW / availH
	}
	rows, cols := SolveGridDims(tileCount, aspect)

	// Strategy A
	size := tileSizeFor(rows, cols, availW, availH, cfg)
	if size >= cfg.MinTileSize {
		return assemble(rows, cols, size, availW, availH, cfg, true)
	}

	// Strategy B: dimension juggling.
	bestRows, bestCols, bestSize := rows, cols, size
	for r := 1; r <= tileCount; r++ {
		c := (tileCount + r - 1) / r
		if r*c < tileCount {
			continue
		}
		if s := tileSizeFor(r, c, availW, availH, cfg); s > bestSize {
			bestRows, bestCols, bestSize = r, c, s
		}
	}
	if bestSize >= cfg.MinTileSize {
		return assemble(bestRows, bestCols, bestSize, availW, availH, cfg, true)
	}

	// Strategy C: forced minimum, flagged as degraded.
	return assemble(rows, cols, cfg.MinTileSize, availW, availH, cfg, false)
}

// assemble derives the centered bounding box for a resolved shape and size.
func assemble(rows, cols int, size, availW, availH float64, cfg Config, valid bool) Layout {
	chrome := 2 * (cfg.FrameWidth + cfg.Padding)
	bw := float64(cols)*size + float64(cols-1)*cfg.Gap + chrome
	bh := float64(rows)*size + float64(rows-1)*cfg.Gap + chrome
	return Layout{
		Rows: rows, Cols: cols,
		TileSize: size, Gap: cfg.Gap, Padding: cfg.Padding, FrameWidth: cfg.FrameWidth,
		BoardWidth: bw, BoardHeight: bh,
		BoardLeft: (availW - bw) / 2,
		BoardTop:  (availH - bh) / 2,
		Valid:     valid,
	}
}

// TilePosition returns the top-left corner and size of the given cell, or
// false for any (row, col) outside [0, rows) x [0, cols).
func (l Layout) TilePosition(row, col int) (TilePos, bool) {
	if row < 0 || row >= l.Rows || col < 0 || col >= l.Cols {
		return TilePos{}, false
	}
	origin := l.FrameWidth + l.Padding
	return TilePos{
		X:    l.BoardLeft + origin + float64(col)*(l.TileSize+l.Gap),
		Y:    l.BoardTop + origin + float64(row)*(l.TileSize+l.Gap),
		Size: l.TileSize,
	}, true
}
