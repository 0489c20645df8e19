package cloth

import "math"

// ImpulseResolution is the number of quantisation steps per unit of impulse.
const ImpulseResolution = 400

// Quantize rounds v to the nearest multiple of 1/ImpulseResolution.
//
// Impulses are accumulated through Quantize so that repeated additions of
// the same force land on identical values every frame instead of drifting
// in the last bits. Values already on the lattice are fixed points.
func Quantize(v float64) float64 {
	return math.Round(v*ImpulseResolution) / ImpulseResolution
}
