// Package effects implements Source adapters that transform the channel values of another
// Source while keeping its frame metadata consistent.
package effects

import (
	"math"

	"github.com/faiface/replay"
)

// fromFloat converts x back to the sample type S, clamping to the int16 range when needed.
func fromFloat[S replay.Sample](x float64) S {
	var zero S
	if _, ok := any(zero).(int16); ok {
		x = math.Max(math.MinInt16, math.Min(math.MaxInt16, math.Round(x)))
	}
	return S(x)
}
