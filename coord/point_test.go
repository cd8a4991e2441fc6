package coord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint_Add(t *testing.T) {
	a := Point{X: 1, Y: 2, Z: 3}
	b := Point{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Point{X: 5, Y: 7, Z: 9}, a.Add(b))
}

func TestPoint_Sub(t *testing.T) {
	a := Point{X: 5, Y: 7, Z: 9}
	b := Point{X: 4, Y: 5, Z: 6}

	assert.Equal(t, Point{X: 1, Y: 2, Z: 3}, a.Sub(b))
}

func TestPoint_Axis(t *testing.T) {
	p := Point{X: 1, Y: 2, Z: 3}

	assert.Equal(t, 1.0, p.Axis(0))
	assert.Equal(t, 2.0, p.Axis(1))
	assert.Equal(t, 3.0, p.Axis(2))
	assert.Equal(t, 0.0, p.Axis(3))
}
