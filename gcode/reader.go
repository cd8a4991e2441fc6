package gcode

import "io"

// A Reader yields G-code one block at a time.
type Reader interface {
	Read() (Block, error)
}

// BlocksReader reads from a fixed slice of blocks.
type BlocksReader struct {
	Blocks []Block
	n      int
}

func (b *BlocksReader) Read() (Block, error) {
	if b.n == len(b.Blocks) {
		return nil, io.EOF
	}

	b.n++
	return b.Blocks[b.n-1], nil
}
