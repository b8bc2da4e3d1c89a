package ioif

import (
	"io"

	"github.com/ngageoint/six-library-sub016/errs"
)

// StreamAdapter wraps an arbitrary io.Reader/io.Writer/io.Seeker/io.Closer
// combination as a Handle, so user code can substitute any stream that
// satisfies the standard library's io interfaces (network sockets, pipes,
// in-process writers) without the engine needing to know about it.
type StreamAdapter struct {
	r        io.Reader
	w        io.Writer
	seeker   io.Seeker
	closer   io.Closer
	seekable bool
}

// NewStreamAdapter builds a Handle around an existing stream. Any of w,
// closer may be nil if the stream is not writable/closable; if s is nil the
// adapter reports CanSeek() == false and Seek always fails with NotSeekable.
func NewStreamAdapter(r io.Reader, w io.Writer, s io.Seeker, closer io.Closer) *StreamAdapter {
	return &StreamAdapter{r: r, w: w, seeker: s, closer: closer, seekable: s != nil}
}

func (a *StreamAdapter) Read(buf []byte) (int, error) {
	if a.r == nil {
		return 0, errs.Wrap(errs.Io, -1, "", "", io.ErrClosedPipe)
	}
	n, err := a.r.Read(buf)
	if err != nil && err != io.EOF {
		return n, errs.Wrap(errs.Io, -1, "", "", err)
	}
	return n, err
}

func (a *StreamAdapter) Write(buf []byte) (int, error) {
	if a.w == nil {
		return 0, errs.Wrap(errs.Io, -1, "", "", io.ErrClosedPipe)
	}
	n, err := a.w.Write(buf)
	if err != nil {
		return n, errs.Wrap(errs.Io, -1, "", "", err)
	}
	return n, nil
}

func (a *StreamAdapter) Seek(offset int64, whence Whence) (int64, error) {
	if !a.seekable {
		return 0, errs.Wrap(errs.NotSeekable, -1, "", "", nil)
	}
	n, err := a.seeker.Seek(offset, int(whence))
	if err != nil {
		return n, errs.Wrap(errs.Io, -1, "", "", err)
	}
	return n, nil
}

func (a *StreamAdapter) Tell() (int64, error) {
	return a.Seek(0, Cur)
}

func (a *StreamAdapter) Size() (int64, error) {
	if !a.seekable {
		return 0, errs.Wrap(errs.NotSeekable, -1, "", "", nil)
	}
	cur, err := a.Tell()
	if err != nil {
		return 0, err
	}
	end, err := a.Seek(0, End)
	if err != nil {
		return 0, err
	}
	if _, err := a.Seek(cur, Set); err != nil {
		return 0, err
	}
	return end, nil
}

func (a *StreamAdapter) Close() error {
	if a.closer == nil {
		return nil
	}
	if err := a.closer.Close(); err != nil {
		return errs.Wrap(errs.Io, -1, "", "", err)
	}
	return nil
}

func (a *StreamAdapter) CanSeek() bool { return a.seekable }
