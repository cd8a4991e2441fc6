package grbl

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

const bufferSize = 128

// ErrReset will be returned from write methods if a controller reset is
// encountered before all commands are run.
var ErrReset = errors.New("grbl reset")

// Conn implements grbl's character-count streaming protocol over a
// ReadWriter: each line occupies controller buffer space until its
// ok/error response arrives.
type Conn struct {
	rw io.ReadWriter

	ackCh   chan error
	pushCh  chan string
	resetCh chan struct{}
	closeCh chan struct{}

	mx  sync.Mutex
	wMx sync.Mutex

	deviceBuf int
	lineSize  []int

	wroteLines int64
	readLines  int64
}

// NewConn creates a new Conn using the provided ReadWriter for data.
func NewConn(rw io.ReadWriter) *Conn {
	c := &Conn{
		rw:      rw,
		ackCh:   make(chan error),
		pushCh:  make(chan string, 16),
		resetCh: make(chan struct{}, 1),
		closeCh: make(chan struct{}),
	}
	go c.readLoop()
	return c
}

// Push yields lines that are not command responses: status reports,
// feedback messages, and alarms.
func (c *Conn) Push() <-chan string { return c.pushCh }

// Close will abort any in-progress writes and close the underlying
// ReadWriter, if it implements io.Closer.
func (c *Conn) Close() error {
	close(c.closeCh)
	if closer, ok := c.rw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Conn) readLoop() {
	scan := bufio.NewScanner(c.rw)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		switch {
		case line == "":
		case line == "ok":
			select {
			case c.ackCh <- nil:
			case <-c.closeCh:
				return
			}
		case strings.HasPrefix(line, "error:"):
			select {
			case c.ackCh <- fmt.Errorf("grbl %s", line):
			case <-c.closeCh:
				return
			}
		case strings.HasPrefix(line, "Grbl "):
			// reset banner
			select {
			case c.resetCh <- struct{}{}:
			default:
			}
		default:
			select {
			case c.pushCh <- line:
			case <-c.closeCh:
				return
			}
		}
	}
}

func (c *Conn) recordBufferSpace(n int) int64 {
	c.deviceBuf += n
	c.wroteLines++
	c.lineSize = append(c.lineSize, n)
	return c.wroteLines
}

func (c *Conn) waitForBufferSpace(n int) error {
	for c.deviceBuf+n > bufferSize {
		err := c.next()
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *Conn) next() error {
	select {
	case <-c.closeCh:
		return io.ErrClosedPipe
	default:
	}

	select {
	case <-c.closeCh:
		return io.ErrClosedPipe
	case <-c.resetCh:
		c.deviceBuf = 0
		c.lineSize = nil
		c.readLines = c.wroteLines
		return ErrReset
	case e := <-c.ackCh:
		c.readLines++
		c.deviceBuf -= c.lineSize[0]
		c.lineSize = c.lineSize[1:]
		return e
	}
}

func (c *Conn) waitForLine(id int64) (err error) {
	for c.readLines < id {
		e := c.next()
		if err == nil {
			err = e
		}
		if e == ErrReset || e == io.ErrClosedPipe {
			return err
		}
	}
	return err
}

// writeLine will block until line has been written to the device in
// full. It returns the line index.
func (c *Conn) writeLine(line []byte) (id int64, err error) {
	err = c.waitForBufferSpace(len(line))
	if err != nil {
		return 0, err
	}
	c.mx.Lock()
	_, err = c.rw.Write(line)
	c.mx.Unlock()
	if err != nil {
		return 0, err
	}
	return c.recordBufferSpace(len(line)), nil
}

func splitLinesKeepN(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), append(data, '\n'), nil
	}
	return 0, nil, nil
}

// ReadFrom returns after all lines have been sent and executed.
func (c *Conn) ReadFrom(r io.Reader) (n int64, err error) {
	c.wMx.Lock()
	defer c.wMx.Unlock()
	select {
	case <-c.closeCh:
		return 0, io.ErrClosedPipe
	default:
	}

	scanner := bufio.NewScanner(r)
	scanner.Split(splitLinesKeepN)

	lastID := c.wroteLines
	for scanner.Scan() {
		lastID, err = c.writeLine(scanner.Bytes())
		if err != nil {
			return n, err
		}
		n += int64(len(scanner.Bytes()))
	}

	return n, c.waitForLine(lastID)
}

// Write will return after all lines have been sent and executed.
func (c *Conn) Write(p []byte) (int, error) {
	n, err := c.ReadFrom(bytes.NewBuffer(p))
	return int(n), err
}

// WriteByte will write directly to the device without accounting for
// buffering. Use for realtime commands like `?`.
func (c *Conn) WriteByte(p byte) (err error) {
	select {
	case <-c.closeCh:
		return io.ErrClosedPipe
	default:
	}
	c.mx.Lock()
	_, err = c.rw.Write([]byte{p})
	c.mx.Unlock()
	return err
}
