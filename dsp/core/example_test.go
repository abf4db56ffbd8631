package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-eq/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d\n", cfg.SampleRate, cfg.BlockSize)

	// Output:
	// sampleRate=44100 blockSize=256
}

func ExampleEnsureLen() {
	buf := make([]float64, 2, 4)
	buf[0], buf[1] = 1, 2
	buf = core.EnsureLen(buf, 4)
	buf[2], buf[3] = 3, 4
	fmt.Println(len(buf), cap(buf), buf)

	core.Zero(buf[:2])
	fmt.Println(buf)

	// Output:
	// 4 4 [1 2 3 4]
	// [0 0 3 4]
}

func ExampleMapToLog10() {
	for _, p := range []float64{0, 0.5, 1} {
		fmt.Printf("%.0f Hz\n", core.MapToLog10(p, 20, 20000))
	}

	// Output:
	// 20 Hz
	// 632 Hz
	// 20000 Hz
}
