// Package analysis turns recorded cloth runs into numbers and pictures.
//
//   - [PowerSpectrum] and [DominantFrequency]: how a metric series oscillates
//   - [Separation]: growth rate of a small perturbation between twin grids
//   - [Response]: a metric's final value across a parameter sweep
//   - [SettleTick]: when a series stops moving
//
// # Sway Frequency
//
// A freshly hung cloth bobs before it settles. The sag series shows it:
//
//	res, _ := s.Run(ctx, sim.RunConfig{Ticks: 600})
//	hz := analysis.DominantFrequency(res.Samples["sag"], cloth.DefaultDt)
package analysis
