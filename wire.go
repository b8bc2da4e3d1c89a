package nitf

import (
	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/field"
	"github.com/ngageoint/six-library-sub016/ioif"
)

// cursor tracks the running byte offset alongside a Handle, so every
// field-level read/write can report the file offset it occurred at -- the
// parser's failure-reporting contract (spec.md §7) requires it.
type cursor struct {
	h      ioif.Handle
	offset int64
}

func newCursor(h ioif.Handle, startOffset int64) *cursor {
	return &cursor{h: h, offset: startOffset}
}

func (c *cursor) readField(length int, class field.Class, segKind, name string) (*field.Field, error) {
	buf := make([]byte, length)
	if err := ioif.ReadFull(c.h, buf); err != nil {
		return nil, errs.Wrap(errs.Eof, c.offset, segKind, name, err)
	}
	f, err := field.New(length, class)
	if err != nil {
		return nil, err
	}
	if err := f.SetBytes(buf); err != nil {
		return nil, errs.Wrap(errs.WrongClass, c.offset, segKind, name, err)
	}
	c.offset += int64(length)
	return f, nil
}

func (c *cursor) readRaw(length int, segKind, name string) ([]byte, error) {
	buf := make([]byte, length)
	if err := ioif.ReadFull(c.h, buf); err != nil {
		return nil, errs.Wrap(errs.Eof, c.offset, segKind, name, err)
	}
	c.offset += int64(length)
	return buf, nil
}

func (c *cursor) readString(length int, class field.Class, segKind, name string) (string, error) {
	f, err := c.readField(length, class, segKind, name)
	if err != nil {
		return "", err
	}
	return f.GetString(), nil
}

func (c *cursor) readInt(length int, segKind, name string) (int64, error) {
	f, err := c.readField(length, field.BCSN, segKind, name)
	if err != nil {
		return 0, err
	}
	return f.GetInteger()
}

func (c *cursor) writeField(f *field.Field) error {
	if err := ioif.WriteFull(c.h, f.Bytes()); err != nil {
		return errs.Wrap(errs.Io, c.offset, "", "", err)
	}
	c.offset += int64(f.Length())
	return nil
}

func (c *cursor) writeString(length int, class field.Class, s string) error {
	f, err := field.New(length, class)
	if err != nil {
		return err
	}
	if err := f.SetString(s); err != nil {
		return err
	}
	return c.writeField(f)
}

func (c *cursor) writeInt(length int, v int64) error {
	f, err := field.New(length, field.BCSN)
	if err != nil {
		return err
	}
	if err := f.SetInteger(v); err != nil {
		return err
	}
	return c.writeField(f)
}

func (c *cursor) writeRaw(b []byte) error {
	if err := ioif.WriteFull(c.h, b); err != nil {
		return errs.Wrap(errs.Io, c.offset, "", "", err)
	}
	c.offset += int64(len(b))
	return nil
}
