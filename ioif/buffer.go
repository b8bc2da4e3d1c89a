package ioif

import (
	"io"

	"github.com/ngageoint/six-library-sub016/errs"
)

// BufferHandle is an in-memory Handle (a writable one grows when written
// past its end), used for round-tripping
// NITF records that live entirely in memory (e.g. test fixtures, or
// extension payloads staged before being written to a file segment).
type BufferHandle struct {
	buf      []byte
	pos      int64
	writable bool
}

// NewBufferHandle wraps an existing byte slice. If writable is false, Write
// always fails; this mirrors spec.md's "writable sub-range optional".
func NewBufferHandle(buf []byte, writable bool) *BufferHandle {
	return &BufferHandle{buf: buf, writable: writable}
}

// NewGrowableBuffer returns a writable, initially empty BufferHandle that
// grows as data is written to it.
func NewGrowableBuffer() *BufferHandle {
	return &BufferHandle{writable: true}
}

// Bytes returns the buffer's current contents.
func (b *BufferHandle) Bytes() []byte {
	return b.buf
}

func (b *BufferHandle) Read(p []byte) (int, error) {
	if b.pos >= int64(len(b.buf)) {
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.pos:])
	b.pos += int64(n)
	return n, nil
}

func (b *BufferHandle) Write(p []byte) (int, error) {
	if !b.writable {
		return 0, errs.Wrap(errs.Io, -1, "", "", io.ErrShortWrite)
	}
	end := b.pos + int64(len(p))
	if end > int64(len(b.buf)) {
		grown := make([]byte, end)
		copy(grown, b.buf)
		b.buf = grown
	}
	n := copy(b.buf[b.pos:end], p)
	b.pos = end
	return n, nil
}

func (b *BufferHandle) Seek(offset int64, whence Whence) (int64, error) {
	var base int64
	switch whence {
	case Set:
		base = 0
	case Cur:
		base = b.pos
	case End:
		base = int64(len(b.buf))
	}
	newPos := base + offset
	if newPos < 0 {
		return b.pos, errs.Wrap(errs.InvalidArgument, -1, "", "", io.ErrUnexpectedEOF)
	}
	b.pos = newPos
	return b.pos, nil
}

func (b *BufferHandle) Tell() (int64, error) { return b.pos, nil }

func (b *BufferHandle) Size() (int64, error) { return int64(len(b.buf)), nil }

func (b *BufferHandle) Close() error { return nil }

func (b *BufferHandle) CanSeek() bool { return true }
