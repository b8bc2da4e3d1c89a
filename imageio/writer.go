package imageio

import (
	"fmt"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/record"
)

// Writer builds an image segment's data buffer block by block. It encodes
// nothing itself: WriteBlock copies the caller's bytes as they are, which
// is raw pixel data for the native NC/NM codes and the caller's own encoded
// output for any other compression code.
type Writer struct {
	seg  *record.Segment
	grid Grid
	buf  []byte
}

// NewWriter allocates a Writer for a freshly-constructed image segment.
// The segment's NBPR/NBPC/NPPBH/NPPBV/NBPP/Mode/Bands fields must already
// be set; NewWriter sizes the data buffer from them.
func NewWriter(seg *record.Segment) (*Writer, error) {
	if seg.Kind != record.KindImage || seg.Image == nil {
		return nil, errs.Wrap(errs.InvalidArgument, -1, "image", "", fmt.Errorf("NewWriter requires an image segment"))
	}
	g := NewGrid(seg.Image)

	var numBlocks int
	if g.BandsPerBlock() == 1 {
		numBlocks = g.Bands * g.blockGridSize()
	} else {
		numBlocks = g.blockGridSize()
	}
	w := &Writer{
		seg:  seg,
		grid: g,
		buf:  make([]byte, numBlocks*g.BlockByteSize()),
	}
	return w, nil
}

// WriteBlock writes one block's already-encoded bytes (NC/NM: raw pixel
// bytes; any other compression code: the caller's own codec output) at its
// position in the segment's data buffer.
func (w *Writer) WriteBlock(band, row, col int, data []byte) error {
	g := w.grid
	if row < 0 || row >= g.BlocksPerCol || col < 0 || col >= g.BlocksPerRow {
		return errs.Wrap(errs.InvalidArgument, -1, "image", "", fmt.Errorf("block (%d,%d) out of range for %dx%d grid", row, col, g.BlocksPerCol, g.BlocksPerRow))
	}
	blockSize := g.BlockByteSize()
	if len(data) != blockSize {
		return errs.Wrap(errs.Structural, -1, "image", "", fmt.Errorf("block data is %d bytes, expected %d", len(data), blockSize))
	}

	idx := g.blockIndex(row, col)
	numBlocks := g.blockGridSize()
	var blockOrdinal int
	if g.BandsPerBlock() == 1 {
		blockOrdinal = band*numBlocks + idx
	} else {
		blockOrdinal = idx
	}
	start := blockOrdinal * blockSize
	copy(w.buf[start:start+blockSize], data)
	return nil
}

// Finish writes the assembled buffer (prefixed with a freshly-encoded mask
// table, if the segment's compression code is masked) back onto the
// segment's Data field.
func (w *Writer) Finish() error {
	if w.seg.Image.Compression.Masked() && w.seg.Mask != nil {
		mask := WriteMask(w.seg.Mask, w.grid)
		w.seg.Data = append(mask, w.buf...)
		return nil
	}
	w.seg.Data = w.buf
	return nil
}
