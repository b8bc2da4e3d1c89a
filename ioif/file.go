package ioif

import (
	"io"
	"os"

	"github.com/ngageoint/six-library-sub016/errs"
)

// FileHandle adapts an *os.File to Handle, the native backend for reading
// and writing NITF files on disk.
type FileHandle struct {
	f *os.File
}

// OpenFile opens an existing file at path, read-only if readOnly is set and
// for reading and writing otherwise. It does not create a missing file.
func OpenFile(path string, readOnly bool) (*FileHandle, error) {
	flag := os.O_RDWR
	if readOnly {
		flag = os.O_RDONLY
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, errs.Wrap(errs.Io, -1, "", "", err)
	}
	return &FileHandle{f: f}, nil
}

// CreateFile creates (or truncates) path for reading and writing.
func CreateFile(path string) (*FileHandle, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, errs.Wrap(errs.Io, -1, "", "", err)
	}
	return &FileHandle{f: f}, nil
}

func (h *FileHandle) Read(buf []byte) (int, error) {
	n, err := h.f.Read(buf)
	if err != nil && err != io.EOF {
		return n, errs.Wrap(errs.Io, -1, "", "", err)
	}
	return n, err
}

func (h *FileHandle) Write(buf []byte) (int, error) {
	n, err := h.f.Write(buf)
	if err != nil {
		return n, errs.Wrap(errs.Io, -1, "", "", err)
	}
	return n, nil
}

func (h *FileHandle) Seek(offset int64, whence Whence) (int64, error) {
	n, err := h.f.Seek(offset, int(whence))
	if err != nil {
		return n, errs.Wrap(errs.Io, -1, "", "", err)
	}
	return n, nil
}

func (h *FileHandle) Tell() (int64, error) {
	return h.Seek(0, Cur)
}

func (h *FileHandle) Size() (int64, error) {
	fi, err := h.f.Stat()
	if err != nil {
		return 0, errs.Wrap(errs.Io, -1, "", "", err)
	}
	return fi.Size(), nil
}

func (h *FileHandle) Close() error {
	if err := h.f.Close(); err != nil {
		return errs.Wrap(errs.Io, -1, "", "", err)
	}
	return nil
}

func (h *FileHandle) CanSeek() bool { return true }
