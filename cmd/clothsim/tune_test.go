package main

import (
	"reflect"
	"testing"
)

func TestParseGrid(t *testing.T) {
	names, ranges, err := parseGrid([]string{"physics_accuracy=1,2,4", "spacing = 3.5, 5"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"physics_accuracy", "spacing"}) {
		t.Errorf("unexpected names %v", names)
	}
	if !reflect.DeepEqual(ranges, [][]float64{{1, 2, 4}, {3.5, 5}}) {
		t.Errorf("unexpected ranges %v", ranges)
	}
}

func TestParseGridErrors(t *testing.T) {
	for _, spec := range []string{"gravity", "gravity=1,x"} {
		if _, _, err := parseGrid([]string{spec}); err == nil {
			t.Errorf("expected error for %q", spec)
		}
	}
}
