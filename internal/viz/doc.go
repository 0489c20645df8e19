// Package viz is the terminal host for a cloth simulation.
//
// [Model] is a Bubble Tea program that steps a [sim.Simulation] on a frame
// timer and draws its live links on a braille [Canvas]. Terminal mouse
// events are mapped back into simulation space through a [Projection] and
// fed to the simulation's pointer.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	N     - Single step while paused
//	R     - Rebuild the cloth
//	Tab   - Select a parameter
//	Up/K  - Raise the selected parameter
//	Down/J- Lower the selected parameter
//	T     - Cycle color themes
//	Q     - Quit
//
// # Mouse
//
// Left button drags the cloth. Right or middle button cuts it.
package viz
