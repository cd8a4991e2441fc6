package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mastercactapus/gpos/coord"
)

func runAll(t *testing.T, vm *VM, script string) {
	t.Helper()
	for _, b := range MustParse(script) {
		assert.NoError(t, vm.Run(b))
	}
}

func TestVM_Absolute(t *testing.T) {
	vm := NewVM()
	runAll(t, vm, "G0 X1 Y2\nG1 Z3 F100\n")

	assert.Equal(t, coord.Point{X: 1, Y: 2, Z: 3}, vm.MPos())
	assert.Equal(t, 100.0, vm.Feed())
}

func TestVM_Relative(t *testing.T) {
	vm := NewVM()
	runAll(t, vm, "G0 X10\nG91\nG0 X5 Z-1\nG0 X5\n")

	assert.Equal(t, coord.Point{X: 20, Z: -1}, vm.MPos())
}

func TestVM_WCO(t *testing.T) {
	vm := NewVM()
	vm.SetWCO(coord.Point{X: 100, Y: 50})
	runAll(t, vm, "G0 X1 Y1\n")

	// absolute moves are in work coordinates
	assert.Equal(t, coord.Point{X: 101, Y: 51}, vm.MPos())
	assert.Equal(t, coord.Point{X: 1, Y: 1}, vm.WPos())

	// G53 commands machine coordinates directly
	runAll(t, vm, "G53 G0 Z-5\n")
	assert.Equal(t, coord.Point{X: 101, Y: 51, Z: -5}, vm.MPos())
}

func TestVM_Inches(t *testing.T) {
	vm := NewVM()
	runAll(t, vm, "G20\nG0 X1\n")

	assert.Equal(t, coord.Point{X: 25.4}, vm.MPos())
}

func TestVM_Unsupported(t *testing.T) {
	vm := NewVM()
	assert.Error(t, vm.Run(MustParse("G2 X1 Y1 I0.5 J0.5\n")[0]))
}
