package core

import "math"

// GainToDecibels converts linear gain to dB (20*log10), never returning less
// than floorDB. Zero and negative gains map to floorDB.
func GainToDecibels(gain, floorDB float64) float64 {
	if gain <= 0 || math.IsNaN(gain) {
		return floorDB
	}

	return math.Max(floorDB, 20*math.Log10(gain))
}

// MapRange maps value linearly from [srcMin, srcMax] onto [dstMin, dstMax].
// The source range must not be empty.
func MapRange(value, srcMin, srcMax, dstMin, dstMax float64) float64 {
	return dstMin + (value-srcMin)*(dstMax-dstMin)/(srcMax-srcMin)
}

// MapToLog10 maps a normalised proportion in [0, 1] onto [min, max] on a
// logarithmic scale. Both bounds must be positive.
func MapToLog10(proportion, min, max float64) float64 {
	return math.Exp(proportion*math.Log(max/min)) * min
}

// MapFromLog10 is the inverse of MapToLog10: it returns where value lies
// between min and max as a proportion on a logarithmic scale.
func MapFromLog10(value, min, max float64) float64 {
	return math.Log(value/min) / math.Log(max/min)
}
