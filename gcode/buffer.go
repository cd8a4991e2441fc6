package gcode

import (
	"bytes"
	"io"
)

// Buffer adapts a block Reader into a byte stream, one block per line.
type Buffer struct {
	gr  Reader
	buf bytes.Buffer
	err error
}

var _ io.Reader = &Buffer{}

func NewBuffer(r Reader) *Buffer {
	return &Buffer{gr: r}
}

func (b *Buffer) Read(p []byte) (n int, err error) {
	for b.err == nil && b.buf.Len() < len(p) {
		var block Block
		block, b.err = b.gr.Read()
		if b.err != nil {
			break
		}
		b.buf.WriteString(block.String() + "\n")
	}

	// buffered data is always drained before an error is reported
	if b.buf.Len() > 0 {
		return b.buf.Read(p)
	}
	return 0, b.err
}
