// Package eq is a three-band parametric equalizer: a low cut, a peak (bell)
// and a high cut in series, run on two channels.
//
// The control side edits [FilterParameters] and calls
// [Processor.UpdateParameters]. That clamps the parameters, computes every
// biquad coefficient once and publishes the result as an immutable
// [ChainCoefficients]. The audio side calls [Processor.ProcessBlock], which
// picks up a pending publish at the start of the block by swapping
// coefficient pointers into both [ChannelChain] values. Nothing on the audio
// path locks, allocates or returns an error.
//
// The display side reads the same publishes through its own consumer and
// samples the chain's magnitude response on a logarithmic frequency axis
// ([Processor.ResponseCurve], [ResponseCurveIn]).
package eq
