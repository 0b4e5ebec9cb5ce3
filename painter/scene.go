package painter

import "strings"

// Scene is the ordered list of shapes currently on the canvas. Order is the
// drawing order: later shapes are painted over earlier ones.
type Scene []Shape

// Equal reports whether both scenes hold equal shapes in the same order.
func (s Scene) Equal(other Scene) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the scene back into command text, one shape per line.
func (s Scene) String() string {
	var b strings.Builder
	for i, sh := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(sh.String())
	}
	return b.String()
}
