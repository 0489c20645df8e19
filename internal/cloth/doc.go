// Package cloth implements a position-based cloth model: a lattice of
// point masses joined by distance links, advanced with Verlet integration
// and relaxed by repeated local constraint passes.
//
// The package defines the building blocks of the simulation:
//
//   - [Point]: a particle with current and previous position
//   - [Constraint]: a distance link owned by one of its endpoints
//   - [Grid]: the lattice, which owns every point and link
//   - [Pointer]: pointer input consumed by a tick (drag and cut)
//   - [Params]: immutable physics knobs
//
// # Ownership
//
// Points and links live in index arenas inside a [Grid]. A point's owned
// list holds link indices; the other endpoint of a link is a plain point
// index. Cutting a point clears only its own list, so links owned by its
// neighbours keep pulling on it. Points are never removed, which keeps every
// index valid for the grid's lifetime.
//
// # Example
//
//	p := cloth.DefaultParams()
//	space := cloth.Canvas{Width: 500, Height: 300}
//	g, _ := cloth.New(p, space.Origin(p))
//	g.Update(cloth.Pointer{}, space.Bounds())
//
// # Thread Safety
//
// Grid is NOT thread-safe. A tick reads and writes every point; callers
// that take input on another goroutine must snapshot the [Pointer] first.
package cloth
