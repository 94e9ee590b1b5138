//go:build !pprof

package profile

import "testing"

func TestModes_EmptyWithoutTag(t *testing.T) {
	t.Parallel()

	if m := Modes(); len(m) != 0 {
		t.Errorf("Modes() = %v, want none", m)
	}
}
