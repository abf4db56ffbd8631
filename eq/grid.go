package eq

import (
	"strconv"
	"strings"
)

// GridFrequencies returns the vertical grid line frequencies.
func GridFrequencies() []float64 {
	return []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 20000}
}

// GridGains returns the horizontal grid line gains in dB.
func GridGains() []float64 {
	return []float64{-24, -12, 0, 12, 24}
}

func formatNumber(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// FrequencyLabel formats a grid frequency, e.g. "50Hz" or "2kHz".
func FrequencyLabel(freq float64) string {
	var b strings.Builder

	if freq > 999 {
		b.WriteString(formatNumber(freq/1000, -1))
		b.WriteString("k")
	} else {
		b.WriteString(formatNumber(freq, -1))
	}

	b.WriteString("Hz")

	return b.String()
}

// GainLabel formats a grid gain with an explicit sign for boosts, e.g. "+12".
func GainLabel(db float64) string {
	if db > 0 {
		return "+" + formatNumber(db, -1)
	}

	return formatNumber(db, -1)
}

// DisplayString formats a parameter value for a control label. Frequencies
// above 999 Hz switch to kHz with two decimals.
func DisplayString(id ParamID, value float64) string {
	switch id {
	case ParamLowCutSlope, ParamHighCutSlope:
		return Slope(value).clamp().String()
	case ParamLowCutBypassed, ParamPeakBypassed, ParamHighCutBypassed:
		if value >= 0.5 {
			return "Bypassed"
		}

		return "Active"
	case ParamAnalyzerEnabled:
		if value >= 0.5 {
			return "On"
		}

		return "Off"
	}

	var suffix string

	switch id {
	case ParamLowCutFreq, ParamHighCutFreq, ParamPeakFreq:
		suffix = "Hz"
	case ParamPeakGain:
		suffix = "dB"
	}

	decimals := -1
	kilo := false

	if suffix == "Hz" && value > 999 {
		value /= 1000
		decimals = 2
		kilo = true
	}

	s := formatNumber(value, decimals)
	if suffix == "" {
		return s
	}

	if kilo {
		return s + " k" + suffix
	}

	return s + " " + suffix
}
