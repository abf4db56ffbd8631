package spectrum

import "github.com/cwbudde/algo-eq/dsp/core"

// Display range of the frequency axis.
const (
	MinDisplayFreq = 20.0
	MaxDisplayFreq = 20000.0
)

// Area is a drawing rectangle. Y grows downwards.
type Area struct {
	X, Y, Width, Height float64
}

// Bottom returns the y coordinate of the lower edge.
func (a Area) Bottom() float64 { return a.Y + a.Height }

// Point is a vertex of a drawn path.
type Point struct {
	X, Y float64
}

// PathGenerator maps analyzer bins into drawing coordinates. It keeps its
// point buffer between calls.
type PathGenerator struct {
	points []Point
}

// Generate maps bins (dB per FFT bin, as returned by Analyzer.Compute) into
// area. x follows a log10 axis over the display range; y maps [floorDB, 0]
// onto [bottom, top]. Bins outside the display range are skipped. The
// returned slice is reused by the next call.
func (g *PathGenerator) Generate(bins []float64, area Area, binWidth, floorDB float64) []Point {
	g.points = g.points[:0]

	if binWidth <= 0 || floorDB >= 0 {
		return g.points
	}

	for i, db := range bins {
		freq := float64(i) * binWidth
		if freq < MinDisplayFreq {
			continue
		}

		if freq > MaxDisplayFreq {
			break
		}

		x := area.X + area.Width*core.MapFromLog10(freq, MinDisplayFreq, MaxDisplayFreq)
		y := core.MapRange(core.Clamp(db, floorDB, 0), floorDB, 0, area.Bottom(), area.Y)
		g.points = append(g.points, Point{X: x, Y: y})
	}

	return g.points
}
