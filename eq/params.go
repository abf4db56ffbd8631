package eq

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Slope is the steepness of a cut filter, 12 dB/octave per cascaded stage.
type Slope int

const (
	Slope12 Slope = iota
	Slope24
	Slope36
	Slope48
)

// Stages returns the number of active second-order sections, 1..4.
// Out-of-range slopes are clamped.
func (s Slope) Stages() int {
	return int(s.clamp()) + 1
}

// DBPerOctave returns the asymptotic attenuation rate.
func (s Slope) DBPerOctave() int {
	return 12 * s.Stages()
}

// String returns the choice name shown to the user, e.g. "24 db/Oct".
func (s Slope) String() string {
	return fmt.Sprintf("%d db/Oct", s.DBPerOctave())
}

func (s Slope) clamp() Slope {
	return min(max(s, Slope12), Slope48)
}

// ParamID names a parameter. The strings double as persisted-state keys.
type ParamID string

const (
	ParamLowCutFreq      ParamID = "LowCut Freq"
	ParamHighCutFreq     ParamID = "HighCut Freq"
	ParamPeakFreq        ParamID = "Peak Freq"
	ParamPeakGain        ParamID = "Peak Gain"
	ParamPeakQuality     ParamID = "Peak Quality"
	ParamLowCutSlope     ParamID = "LowCut Slope"
	ParamHighCutSlope    ParamID = "HighCut Slope"
	ParamLowCutBypassed  ParamID = "LowCut Bypassed"
	ParamPeakBypassed    ParamID = "Peak Bypassed"
	ParamHighCutBypassed ParamID = "HighCut Bypassed"
	ParamAnalyzerEnabled ParamID = "Analyzer Enabled"
)

// ParamIDs lists every parameter in layout order.
func ParamIDs() []ParamID {
	return []ParamID{
		ParamPeakFreq, ParamPeakGain, ParamPeakQuality,
		ParamLowCutFreq, ParamHighCutFreq,
		ParamLowCutSlope, ParamHighCutSlope,
		ParamLowCutBypassed, ParamPeakBypassed, ParamHighCutBypassed,
		ParamAnalyzerEnabled,
	}
}

// Range describes a continuous parameter. Skew shapes the normalised
// control position; values below 1 give more travel to the low end.
type Range struct {
	Min, Max, Step, Default, Skew float64
}

// Clamp limits v to the range. NaN and Inf become the default.
func (r Range) Clamp(v float64) float64 {
	if !core.IsFinite(v) {
		return r.Default
	}

	return core.Clamp(v, r.Min, r.Max)
}

// Contains reports whether v is finite and within the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Normalise maps v to a control position in [0, 1].
func (r Range) Normalise(v float64) float64 {
	p := (r.Clamp(v) - r.Min) / (r.Max - r.Min)
	if r.Skew > 0 && r.Skew != 1 && p > 0 {
		p = math.Exp(math.Log(p) * r.Skew)
	}

	return p
}

// Denormalise maps a control position in [0, 1] back to a value.
func (r Range) Denormalise(p float64) float64 {
	p = core.Clamp(p, 0, 1)
	if r.Skew > 0 && r.Skew != 1 && p > 0 {
		p = math.Exp(math.Log(p) / r.Skew)
	}

	return r.Min + (r.Max-r.Min)*p
}

// Parameter ranges.
var (
	LowCutFreqRange  = Range{Min: 20, Max: 20000, Step: 1, Default: 20, Skew: 0.25}
	HighCutFreqRange = Range{Min: 20, Max: 20000, Step: 1, Default: 20000, Skew: 0.25}
	PeakFreqRange    = Range{Min: 20, Max: 20000, Step: 1, Default: 750, Skew: 0.25}
	PeakGainRange    = Range{Min: -24, Max: 24, Step: 0.5, Default: 0, Skew: 1}
	PeakQualityRange = Range{Min: 0.1, Max: 10, Step: 0.05, Default: 1, Skew: 1}
)

// RangeOf returns the range of a continuous parameter.
func RangeOf(id ParamID) (Range, bool) {
	switch id {
	case ParamLowCutFreq:
		return LowCutFreqRange, true
	case ParamHighCutFreq:
		return HighCutFreqRange, true
	case ParamPeakFreq:
		return PeakFreqRange, true
	case ParamPeakGain:
		return PeakGainRange, true
	case ParamPeakQuality:
		return PeakQualityRange, true
	default:
		return Range{}, false
	}
}

// FilterParameters is one complete set of user-facing settings.
type FilterParameters struct {
	PeakFreq    float64
	PeakGainDB  float64
	PeakQuality float64

	LowCutFreq  float64
	HighCutFreq float64

	LowCutSlope  Slope
	HighCutSlope Slope

	LowCutBypassed  bool
	PeakBypassed    bool
	HighCutBypassed bool

	AnalyzerEnabled bool
}

// Defaults returns the initial parameter set.
func Defaults() FilterParameters {
	return FilterParameters{
		PeakFreq:        PeakFreqRange.Default,
		PeakGainDB:      PeakGainRange.Default,
		PeakQuality:     PeakQualityRange.Default,
		LowCutFreq:      LowCutFreqRange.Default,
		HighCutFreq:     HighCutFreqRange.Default,
		LowCutSlope:     Slope12,
		HighCutSlope:    Slope12,
		AnalyzerEnabled: true,
	}
}

// Clamp returns p with every value limited to its range and non-finite
// values replaced by their defaults. Values are not snapped to steps.
func (p FilterParameters) Clamp() FilterParameters {
	p.PeakFreq = PeakFreqRange.Clamp(p.PeakFreq)
	p.PeakGainDB = PeakGainRange.Clamp(p.PeakGainDB)
	p.PeakQuality = PeakQualityRange.Clamp(p.PeakQuality)
	p.LowCutFreq = LowCutFreqRange.Clamp(p.LowCutFreq)
	p.HighCutFreq = HighCutFreqRange.Clamp(p.HighCutFreq)
	p.LowCutSlope = p.LowCutSlope.clamp()
	p.HighCutSlope = p.HighCutSlope.clamp()

	return p
}

func (p FilterParameters) continuous() []struct {
	id ParamID
	v  float64
} {
	return []struct {
		id ParamID
		v  float64
	}{
		{ParamPeakFreq, p.PeakFreq},
		{ParamPeakGain, p.PeakGainDB},
		{ParamPeakQuality, p.PeakQuality},
		{ParamLowCutFreq, p.LowCutFreq},
		{ParamHighCutFreq, p.HighCutFreq},
	}
}

// checkFinite reports the first NaN or Inf value.
func (p FilterParameters) checkFinite() error {
	for _, c := range p.continuous() {
		if !core.IsFinite(c.v) {
			return fmt.Errorf("%w: %s is %v", ErrInvalidParameters, c.id, c.v)
		}
	}

	return nil
}

// Validate returns an error describing the first non-finite or out-of-range
// value, or nil when p needs no clamping.
func (p FilterParameters) Validate() error {
	if err := p.checkFinite(); err != nil {
		return err
	}

	for _, c := range p.continuous() {
		r, _ := RangeOf(c.id)
		if !r.Contains(c.v) {
			return fmt.Errorf("%w: %s = %v outside [%v, %v]", ErrInvalidParameters, c.id, c.v, r.Min, r.Max)
		}
	}

	if s := p.LowCutSlope; s != s.clamp() {
		return fmt.Errorf("%w: %s = %d outside [%d, %d]", ErrInvalidParameters, ParamLowCutSlope, s, Slope12, Slope48)
	}

	if s := p.HighCutSlope; s != s.clamp() {
		return fmt.Errorf("%w: %s = %d outside [%d, %d]", ErrInvalidParameters, ParamHighCutSlope, s, Slope12, Slope48)
	}

	return nil
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}

	return 0
}

// Values flattens p into a parameter-ID keyed map. Booleans are 0 or 1 and
// slopes are their choice index.
func (p FilterParameters) Values() map[string]float64 {
	return map[string]float64{
		string(ParamLowCutFreq):      p.LowCutFreq,
		string(ParamHighCutFreq):     p.HighCutFreq,
		string(ParamPeakFreq):        p.PeakFreq,
		string(ParamPeakGain):        p.PeakGainDB,
		string(ParamPeakQuality):     p.PeakQuality,
		string(ParamLowCutSlope):     float64(p.LowCutSlope),
		string(ParamHighCutSlope):    float64(p.HighCutSlope),
		string(ParamLowCutBypassed):  boolValue(p.LowCutBypassed),
		string(ParamPeakBypassed):    boolValue(p.PeakBypassed),
		string(ParamHighCutBypassed): boolValue(p.HighCutBypassed),
		string(ParamAnalyzerEnabled): boolValue(p.AnalyzerEnabled),
	}
}

// FromValues rebuilds parameters from a map produced by Values. Missing or
// non-finite entries keep their defaults; the result is clamped.
func FromValues(values map[string]float64) FilterParameters {
	p := Defaults()

	get := func(id ParamID) (float64, bool) {
		v, ok := values[string(id)]
		if !ok || !core.IsFinite(v) {
			return 0, false
		}

		return v, true
	}

	for id, dst := range map[ParamID]*float64{
		ParamLowCutFreq:  &p.LowCutFreq,
		ParamHighCutFreq: &p.HighCutFreq,
		ParamPeakFreq:    &p.PeakFreq,
		ParamPeakGain:    &p.PeakGainDB,
		ParamPeakQuality: &p.PeakQuality,
	} {
		if v, ok := get(id); ok {
			*dst = v
		}
	}

	for id, dst := range map[ParamID]*Slope{
		ParamLowCutSlope:  &p.LowCutSlope,
		ParamHighCutSlope: &p.HighCutSlope,
	} {
		if v, ok := get(id); ok {
			*dst = Slope(math.Round(v))
		}
	}

	for id, dst := range map[ParamID]*bool{
		ParamLowCutBypassed:  &p.LowCutBypassed,
		ParamPeakBypassed:    &p.PeakBypassed,
		ParamHighCutBypassed: &p.HighCutBypassed,
		ParamAnalyzerEnabled: &p.AnalyzerEnabled,
	} {
		if v, ok := get(id); ok {
			*dst = v >= 0.5
		}
	}

	return p.Clamp()
}

// MarshalJSON encodes p as its Values map.
func (p FilterParameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Values())
}

// UnmarshalJSON decodes a Values map. Unknown keys are ignored.
func (p *FilterParameters) UnmarshalJSON(data []byte) error {
	var values map[string]float64
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("decode parameters: %w", err)
	}

	*p = FromValues(values)

	return nil
}

// Nudge moves one parameter by steps increments of its step size. Slopes
// move by whole choices and booleans toggle on any odd step count.
func (p FilterParameters) Nudge(id ParamID, steps int) FilterParameters {
	values := p.Values()
	key := string(id)

	switch id {
	case ParamLowCutSlope, ParamHighCutSlope:
		values[key] += float64(steps)
	case ParamLowCutBypassed, ParamPeakBypassed, ParamHighCutBypassed, ParamAnalyzerEnabled:
		if steps%2 != 0 {
			values[key] = 1 - values[key]
		}
	default:
		r, ok := RangeOf(id)
		if !ok {
			return p
		}

		values[key] += float64(steps) * r.Step
	}

	return FromValues(values)
}
