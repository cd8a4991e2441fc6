package position

import "strings"

// Axis identifies one of the machine's linear axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ

	NumAxes = 3
)

func (a Axis) Letter() byte   { return byte('X' + a) }
func (a Axis) String() string { return string(a.Letter()) }
func (a Axis) IsValid() bool  { return a >= AxisX && a < NumAxes }

// AllAxes returns X, Y, Z in canonical order.
func AllAxes() []Axis { return []Axis{AxisX, AxisY, AxisZ} }

// ParseAxes maps an axis-letter string like "XZ" to axis identifiers,
// preserving the order given. Parsing is case-insensitive; whitespace and
// unrecognized letters are skipped, and duplicates collapse to the first
// occurrence.
func ParseAxes(s string) []Axis {
	var seen [NumAxes]bool
	res := make([]Axis, 0, NumAxes)
	for _, r := range strings.ToUpper(s) {
		var a Axis
		switch r {
		case 'X':
			a = AxisX
		case 'Y':
			a = AxisY
		case 'Z':
			a = AxisZ
		default:
			continue
		}
		if seen[a] {
			continue
		}
		seen[a] = true
		res = append(res, a)
	}
	return res
}
