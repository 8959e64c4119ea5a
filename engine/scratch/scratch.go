// Package scratch is a frame-scoped byte buffer for composing HUD text
// without per-frame allocations. Single goroutine only: the render loop
// calls Reset once per frame and the debug layer appends into it.
package scratch

import (
	"strconv"
	"unsafe"
)

var buf []byte

// Init allocates the shared buffer. Call once at startup before the first
// frame; Reset keeps the capacity afterwards.
func Init(capacity int) {
	if capacity <= 0 {
		capacity = 1 << 10
	}
	buf = make([]byte, 0, capacity)
}

// Reset drops the contents without freeing memory. Once per frame.
func Reset() { buf = buf[:0] }

// Len returns the bytes written since the last Reset.
func Len() int { return len(buf) }

// Cap returns the buffer capacity, for tuning the Init size.
func Cap() int { return cap(buf) }

// Builder chains appends into the shared buffer.
type Builder struct{}

// F starts a builder chain over the shared buffer.
func F() Builder { return Builder{} }

// S appends a string literal.
func (Builder) S(s string) Builder {
	buf = append(buf, s...)
	return Builder{}
}

// C appends a single byte.
func (Builder) C(c byte) Builder {
	buf = append(buf, c)
	return Builder{}
}

// I appends a base-10 integer.
func (Builder) I(v int) Builder {
	buf = strconv.AppendInt(buf, int64(v), 10)
	return Builder{}
}

// F64 appends a float with prec digits after the decimal point.
func (Builder) F64(v float64, prec int) Builder {
	buf = strconv.AppendFloat(buf, v, 'f', prec, 64)
	return Builder{}
}

// Coord appends a chunk or grid coordinate pair as "x,y".
func (b Builder) Coord(x, y int) Builder {
	return b.I(x).C(',').I(y)
}

// String returns a copy of the buffer contents.
func String() string { return string(buf) }

// StringView returns a zero-copy view of the buffer. Valid only until the
// next append or Reset; hand it straight to the text drawer and let go.
func StringView() string {
	if len(buf) == 0 {
		return ""
	}
	return unsafe.String(&buf[0], len(buf))
}
