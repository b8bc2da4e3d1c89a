// Package imageio implements the block-oriented image I/O engine: block
// grid geometry for NITF's four image modes, bit packing for 1-64 bit
// pixels, mask-table parsing, compression dispatch, and an LRU block cache.
// It operates against the in-memory buffer nitf.Parse already loaded for an
// image segment (record.Segment.Data) rather than re-reading the file
// handle per block, trading the narrower "block-oriented lazy I/O" framing
// for a simpler, still block-addressable, implementation.
package imageio

import "github.com/ngageoint/six-library-sub016/record"

// State tracks a Reader's progress through one image segment, per the
// engine's read-path state machine: Fresh -> HeaderLoaded -> MaskLoaded ->
// Decoding <-> BlockCached -> Done, with Failed reachable from any state on
// an I/O or structural error.
type State int

const (
	Fresh State = iota
	HeaderLoaded
	MaskLoaded
	Decoding
	BlockCached
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "Fresh"
	case HeaderLoaded:
		return "HeaderLoaded"
	case MaskLoaded:
		return "MaskLoaded"
	case Decoding:
		return "Decoding"
	case BlockCached:
		return "BlockCached"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Grid describes one image segment's block layout, derived from its
// subheader's NBPR/NBPC/NPPBH/NPPBV/NBPP/Mode fields.
type Grid struct {
	BlocksPerRow int
	BlocksPerCol int
	BlockWidth   int
	BlockHeight  int
	BitsPerPixel int
	Bands        int
	Mode         record.Mode
}

// NewGrid derives a Grid from an image subheader.
func NewGrid(h *record.ImageSubheader) Grid {
	return Grid{
		BlocksPerRow: h.NBPR,
		BlocksPerCol: h.NBPC,
		BlockWidth:   h.NPPBH,
		BlockHeight:  h.NPPBV,
		BitsPerPixel: h.NBPP,
		Bands:        h.NBands(),
		Mode:         h.Mode,
	}
}

// BytesPerPixel rounds BitsPerPixel up to the next byte boundary.
func (g Grid) BytesPerPixel() int {
	return (g.BitsPerPixel + 7) / 8
}

// BlockPixelCount returns the number of pixels in one block.
func (g Grid) BlockPixelCount() int {
	return g.BlockWidth * g.BlockHeight
}

// BandsPerBlock returns how many bands' worth of pixel data a single block
// of this mode carries: 1 for mode B/S (band sequential, one block per
// band), Bands for mode P (band interleaved by pixel) and mode R (band
// interleaved by row).
func (g Grid) BandsPerBlock() int {
	switch g.Mode {
	case record.ModeP, record.ModeR:
		return g.Bands
	default:
		return 1
	}
}

// BlockByteSize returns the uncompressed byte size of one block, including
// every band the mode interleaves into it.
func (g Grid) BlockByteSize() int {
	return g.BlockPixelCount() * g.BandsPerBlock() * g.BytesPerPixel()
}

// blockGridSize returns the number of blocks in one block grid (NBPR*NBPC),
// whatever the mode. Mode B/S repeats this grid once per band; mode P/R
// shares a single grid across all bands.
func (g Grid) blockGridSize() int {
	return g.BlocksPerRow * g.BlocksPerCol
}
