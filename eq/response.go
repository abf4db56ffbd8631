package eq

import (
	"iter"

	"github.com/cwbudde/algo-eq/dsp/core"
	"github.com/cwbudde/algo-eq/dsp/spectrum"
)

// Display range of the response curve.
const (
	MinFrequency  = spectrum.MinDisplayFreq
	MaxFrequency  = spectrum.MaxDisplayFreq
	MinResponseDB = -24.0
	MaxResponseDB = 24.0
)

// Area is the rectangle a curve is drawn into. Y grows downwards.
type Area = spectrum.Area

// Point is one column of a response curve. DB is the unmapped response.
type Point struct {
	X, Y, DB float64
}

// ResponseCurve samples chain across width columns. X is the column index
// and Y is normalised to [0, 1], 0 being +24 dB and 1 being -24 dB.
func ResponseCurve(chain *ChannelChain, sampleRate float64, width int) iter.Seq[Point] {
	return ResponseCurveIn(chain, sampleRate, Area{Width: float64(width), Height: 1})
}

// ResponseCurveIn samples chain once per whole unit of area width. Column i
// sits at i/width along a log10 axis from MinFrequency to MaxFrequency, and
// the product of all non-bypassed stage magnitudes is mapped linearly from
// [MinResponseDB, MaxResponseDB] onto [bottom, top] of area. Values beyond
// that range map outside area.
//
// The sequence reads the chain lazily and may be iterated repeatedly.
func ResponseCurveIn(chain *ChannelChain, sampleRate float64, area Area) iter.Seq[Point] {
	width := int(area.Width)

	return func(yield func(Point) bool) {
		if chain == nil || width <= 0 {
			return
		}

		for i := range width {
			freq := core.MapToLog10(float64(i)/float64(width), MinFrequency, MaxFrequency)
			db := core.GainToDecibels(chain.Magnitude(freq, sampleRate), responseFloorDB)

			pt := Point{
				X:  area.X + float64(i),
				Y:  core.MapRange(db, MinResponseDB, MaxResponseDB, area.Bottom(), area.Y),
				DB: db,
			}

			if !yield(pt) {
				return
			}
		}
	}
}

// FrequencyAtX returns the frequency drawn at horizontal position x of area.
func FrequencyAtX(area Area, x float64) float64 {
	if area.Width <= 0 {
		return MinFrequency
	}

	return core.MapToLog10(core.Clamp((x-area.X)/area.Width, 0, 1), MinFrequency, MaxFrequency)
}

// XForFrequency returns the horizontal position of freq in area.
func XForFrequency(area Area, freq float64) float64 {
	return area.X + area.Width*core.MapFromLog10(freq, MinFrequency, MaxFrequency)
}

// YForGain returns the vertical position of db in area.
func YForGain(area Area, db float64) float64 {
	return core.MapRange(db, MinResponseDB, MaxResponseDB, area.Bottom(), area.Y)
}
