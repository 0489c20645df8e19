// Package gui is a raylib desktop host for a cloth simulation.
//
// The window maps one simulation unit to Scale pixels. Left mouse drags
// the cloth, right or middle mouse cuts it. Space pauses, N steps while
// paused, R rebuilds the cloth, Tab and the arrow keys tune parameters.
package gui
