package sim

import (
	"sort"

	"github.com/san-kum/clothsim/internal/cloth"
)

type Action int

const (
	ActionPress Action = iota
	ActionMove
	ActionRelease
)

func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionMove:
		return "move"
	case ActionRelease:
		return "release"
	}
	return "unknown"
}

func ParseAction(s string) (Action, bool) {
	switch s {
	case "press", "down":
		return ActionPress, true
	case "move":
		return ActionMove, true
	case "release", "up":
		return ActionRelease, true
	}
	return ActionPress, false
}

// ScriptEvent is a pointer action applied before the tick with the same
// number runs. Ticks count from zero.
type ScriptEvent struct {
	Tick   int
	Action Action
	Button cloth.Button
	X, Y   float64
}

// Script replays pointer events in tick order, standing in for a live
// input host during headless runs.
type Script struct {
	events []ScriptEvent
	next   int
}

func NewScript(events []ScriptEvent) *Script {
	sorted := make([]ScriptEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tick < sorted[j].Tick })
	return &Script{events: sorted}
}

// apply feeds every pending event due at or before tick into ptr.
func (s *Script) apply(tick int, ptr *cloth.Pointer) {
	for s.next < len(s.events) && s.events[s.next].Tick <= tick {
		e := s.events[s.next]
		switch e.Action {
		case ActionPress:
			// A script has no hover motion, so a press starts with zero
			// travel instead of inheriting the jump from the last position.
			ptr.MoveTo(e.X, e.Y)
			ptr.Press(e.Button, e.X, e.Y)
		case ActionMove:
			ptr.MoveTo(e.X, e.Y)
		case ActionRelease:
			ptr.Release()
		}
		s.next++
	}
}

func (s *Script) Rewind() { s.next = 0 }

// Done reports whether every event has been applied.
func (s *Script) Done() bool { return s.next >= len(s.events) }

func (s *Script) Len() int { return len(s.events) }
