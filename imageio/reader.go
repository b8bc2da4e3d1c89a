package imageio

import (
	"fmt"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/record"
)

// Reader decodes pixel blocks out of one image segment's in-memory data
// buffer, tracking progress through the read-path State machine.
type Reader struct {
	seg    *record.Segment
	grid   Grid
	codecs *CodecRegistry
	cache  *BlockCache
	state  State

	maskLen int // bytes consumed by the leading mask table, 0 if unmasked
}

// NewReader builds a Reader for an image segment. codecs supplies the
// compression dispatch table; pass nil to use a registry seeded with only
// the native NC/NM passthrough. cacheSize bounds the number of decoded
// blocks kept resident; pass 0 for DefaultBlockCacheSize.
func NewReader(seg *record.Segment, codecs *CodecRegistry, cacheSize int) (*Reader, error) {
	if seg.Kind != record.KindImage || seg.Image == nil {
		return nil, errs.Wrap(errs.InvalidArgument, -1, "image", "", fmt.Errorf("NewReader requires an image segment"))
	}
	if codecs == nil {
		codecs = NewCodecRegistry()
	}

	r := &Reader{
		seg:    seg,
		grid:   NewGrid(seg.Image),
		codecs: codecs,
		state:  HeaderLoaded,
	}

	if seg.Image.Compression.Masked() {
		mask, n, err := ReadMask(seg.Data, r.grid)
		if err != nil {
			r.state = Failed
			return nil, err
		}
		seg.Mask = mask
		r.maskLen = n
		r.state = MaskLoaded
	}

	r.cache = NewBlockCache(cacheSize, func(_ string, band, row, col int) ([]byte, error) {
		return r.decodeBlock(band, row, col)
	})

	return r, nil
}

// ReadBlock returns one band's decoded pixel bytes for a single block,
// consulting the block cache first. For mode B/S the block belongs to band
// alone; for mode P/R the underlying block is shared across bands and
// ReadBlock returns just this band's slice of it.
func (r *Reader) ReadBlock(band, row, col int) ([]byte, error) {
	if row < 0 || row >= r.grid.BlocksPerCol || col < 0 || col >= r.grid.BlocksPerRow {
		return nil, errs.Wrap(errs.InvalidArgument, -1, "image", "", fmt.Errorf("block (%d,%d) out of range for %dx%d grid", row, col, r.grid.BlocksPerCol, r.grid.BlocksPerRow))
	}
	r.state = Decoding
	data, err := r.cache.Get(r.segmentKey(), band, row, col)
	if err != nil {
		r.state = Failed
		return nil, err
	}
	r.state = BlockCached
	return data, nil
}

func (r *Reader) segmentKey() string {
	return fmt.Sprintf("%p", r.seg)
}

// blockIndex returns the row-major index of block (row, col) within its
// per-band (mode B/S) or shared (mode P/R) grid.
func (g Grid) blockIndex(row, col int) int {
	return row*g.BlocksPerRow + col
}

func (r *Reader) decodeBlock(band, row, col int) ([]byte, error) {
	g := r.grid
	idx := g.blockIndex(row, col)

	if r.seg.Mask != nil && len(r.seg.Mask.BlockOffsets) > 0 {
		bandIdx := 0
		if g.Mode == record.ModeS {
			bandIdx = band
		}
		if bandIdx >= len(r.seg.Mask.BlockOffsets) {
			return nil, errs.Wrap(errs.Structural, -1, "image", "", fmt.Errorf("band %d has no mask entry", band))
		}
		off := r.seg.Mask.BlockOffsets[bandIdx][idx]
		if off < 0 {
			return r.padBlock(band), nil
		}
	}

	compressed, err := r.rawBlockBytes(band, idx)
	if err != nil {
		return nil, err
	}

	codec, err := r.codecs.Get(r.seg.Image.Compression)
	if err != nil {
		return nil, err
	}
	decoded, err := codec.Decode(compressed, g)
	if err != nil {
		return nil, err
	}

	if g.BandsPerBlock() > 1 {
		return extractBand(decoded, g, band), nil
	}
	return decoded, nil
}

// extractBand pulls one band's pixel bytes out of a mode-P or mode-R block
// that interleaves every band together. Mode P interleaves band-by-band
// within each pixel; mode R interleaves band-by-band within each row.
func extractBand(raw []byte, g Grid, band int) []byte {
	bpp := g.BytesPerPixel()
	out := make([]byte, g.BlockPixelCount()*bpp)

	if g.Mode == record.ModeR {
		rowBytes := g.BlockWidth * bpp
		for row := 0; row < g.BlockHeight; row++ {
			srcStart := row*g.Bands*rowBytes + band*rowBytes
			dstStart := row * rowBytes
			if srcStart+rowBytes > len(raw) {
				break
			}
			copy(out[dstStart:dstStart+rowBytes], raw[srcStart:srcStart+rowBytes])
		}
		return out
	}

	stride := g.Bands * bpp
	for i := 0; i < g.BlockPixelCount(); i++ {
		srcStart := i*stride + band*bpp
		if srcStart+bpp > len(raw) {
			break
		}
		copy(out[i*bpp:i*bpp+bpp], raw[srcStart:srcStart+bpp])
	}
	return out
}

// rawBlockBytes locates one block's (still possibly compressed) bytes
// within the segment's data buffer. Native (NC/NM) blocks are fixed size
// and addressed by a simple stride; compressed blocks under a masked code
// are addressed through the mask's block-offset table instead. For mode
// P/R, band is only used to resolve the mask's (shared) band-0 table --
// the returned bytes still carry every band and extractBand splits them.
func (r *Reader) rawBlockBytes(band, idx int) ([]byte, error) {
	g := r.grid
	blockSize := g.BlockByteSize()

	if r.seg.Mask != nil {
		bandIdx := 0
		if g.Mode == record.ModeS {
			bandIdx = band
		}
		start := int(r.seg.Mask.BlockOffsets[bandIdx][idx])
		if start+blockSize > len(r.seg.Data) {
			return nil, errs.Wrap(errs.Eof, -1, "image", "", fmt.Errorf("block at offset %d runs past end of data", start))
		}
		return r.seg.Data[start : start+blockSize], nil
	}

	numBlocks := g.blockGridSize()
	var blockOrdinal int
	if g.BandsPerBlock() == 1 {
		blockOrdinal = band*numBlocks + idx
	} else {
		blockOrdinal = idx
	}
	start := r.maskLen + blockOrdinal*blockSize
	if start+blockSize > len(r.seg.Data) {
		return nil, errs.Wrap(errs.Eof, -1, "image", "", fmt.Errorf("block %d runs past end of data", blockOrdinal))
	}
	return r.seg.Data[start : start+blockSize], nil
}

func (r *Reader) padBlock(band int) []byte {
	g := r.grid
	blockSize := g.BlockByteSize()
	if g.BandsPerBlock() > 1 {
		blockSize = g.BlockPixelCount() * g.BytesPerPixel()
	}
	out := make([]byte, blockSize)
	if r.seg.Mask == nil || len(r.seg.Mask.PadValue) == 0 {
		return out
	}
	padIdx := 0
	if g.Mode == record.ModeS && band < len(r.seg.Mask.PadValue) {
		padIdx = band
	}
	pad := r.seg.Mask.PadValue[padIdx]
	for i := 0; i < len(out); i += len(pad) {
		copy(out[i:], pad)
	}
	return out
}

func (r *Reader) bandInfo(band int) record.BandInfo {
	if band >= 0 && band < len(r.seg.Image.Bands) {
		return r.seg.Image.Bands[band]
	}
	return record.BandInfo{}
}

// Window is a pixel-rectangle sub-window read request: RowCount rows
// starting at Row0, ColCount columns starting at Col0, over Bands (in the
// requested order, which may reorder or subset the segment's bands).
// BandSequential selects band-sequential output (all of band Bands[0]'s
// pixels, then all of Bands[1]'s, ...) instead of the default
// band-interleaved-by-pixel order.
type Window struct {
	Row0, RowCount int
	Col0, ColCount int
	Bands          []int
	BandSequential bool
}

// ReadWindow reads a rectangular sub-window of pixels across one or more
// bands, returning a single band-interleaved (or, if w.BandSequential,
// band-sequential) buffer of rN*cN*len(bands)*bytesPerPixel bytes. It
// decodes only the blocks the window touches, resolves per-band look-up
// tables, and normalizes multi-byte pixel containers into host byte order.
func (r *Reader) ReadWindow(w Window) ([]byte, error) {
	if err := r.validateWindow(w); err != nil {
		r.state = Failed
		return nil, err
	}

	bpp := r.grid.BytesPerPixel()
	out := make([]byte, w.RowCount*w.ColCount*len(w.Bands)*bpp)

	r.state = Decoding
	if w.BandSequential {
		stride := w.RowCount * w.ColCount * bpp
		for bi, band := range w.Bands {
			base := bi * stride
			err := r.fillBand(band, w, bpp, func(pixelIdx int, px []byte) {
				copy(out[base+pixelIdx*bpp:base+pixelIdx*bpp+len(px)], px)
			})
			if err != nil {
				r.state = Failed
				return nil, err
			}
		}
	} else {
		stride := len(w.Bands) * bpp
		for bi, band := range w.Bands {
			err := r.fillBand(band, w, bpp, func(pixelIdx int, px []byte) {
				off := pixelIdx*stride + bi*bpp
				copy(out[off:off+len(px)], px)
			})
			if err != nil {
				r.state = Failed
				return nil, err
			}
		}
	}

	r.state = Done
	return out, nil
}

func (r *Reader) validateWindow(w Window) error {
	g := r.grid
	h := r.seg.Image
	if w.RowCount <= 0 || w.ColCount <= 0 {
		return errs.Wrap(errs.InvalidArgument, -1, "image", "window", fmt.Errorf("row/col count must be positive, got %d/%d", w.RowCount, w.ColCount))
	}
	if w.Row0 < 0 || w.Row0+w.RowCount > h.Rows {
		return errs.Wrap(errs.InvalidArgument, -1, "image", "window", fmt.Errorf("row window [%d,%d) out of range for %d rows", w.Row0, w.Row0+w.RowCount, h.Rows))
	}
	if w.Col0 < 0 || w.Col0+w.ColCount > h.Cols {
		return errs.Wrap(errs.InvalidArgument, -1, "image", "window", fmt.Errorf("col window [%d,%d) out of range for %d cols", w.Col0, w.Col0+w.ColCount, h.Cols))
	}
	if len(w.Bands) == 0 {
		return errs.Wrap(errs.InvalidArgument, -1, "image", "window", fmt.Errorf("band list must not be empty"))
	}
	for _, b := range w.Bands {
		if b < 0 || b >= g.Bands {
			return errs.Wrap(errs.InvalidArgument, -1, "image", "window", fmt.Errorf("band %d out of range [0,%d)", b, g.Bands))
		}
	}
	return nil
}

// fillBand walks a single band's pixels across the window, fetching each
// pixel's block through ReadBlock (and so through the block cache; a block
// evicted from the cache is decoded again when it is next touched), and
// invokes emit with each pixel's final bytes in row-major window order.
func (r *Reader) fillBand(band int, w Window, bpp int, emit func(pixelIdx int, px []byte)) error {
	g := r.grid
	info := r.bandInfo(band)
	swap := bpp > 1 && HostLittleEndian()

	pixelIdx := 0
	for row := w.Row0; row < w.Row0+w.RowCount; row++ {
		blockRow := row / g.BlockHeight
		withinRow := row % g.BlockHeight
		for col := w.Col0; col < w.Col0+w.ColCount; col++ {
			blockCol := col / g.BlockWidth
			withinCol := col % g.BlockWidth

			block, err := r.ReadBlock(band, blockRow, blockCol)
			if err != nil {
				return err
			}
			off := (withinRow*g.BlockWidth + withinCol) * bpp
			if off+bpp > len(block) {
				return errs.Wrap(errs.Structural, -1, "image", "window", fmt.Errorf("pixel (%d,%d) runs past decoded block bounds", row, col))
			}

			// Unpack pulls the NBPP significant bits (MSB-first) out of the
			// pixel's on-disk bpp-byte container, normalizing widths that
			// aren't a full multiple of 8 (e.g. NBPP=5 stored in the top 5
			// bits of a single byte) down to a right-justified value.
			value := Unpack(block[off:off+bpp], g.BitsPerPixel, 1)[0]

			var px []byte
			switch {
			case len(info.LUTs) > 0:
				// ApplyLUT's output is one byte per table (3 for an RGB/LUT
				// expansion), independent of the index's own container
				// width; fit it into the window's fixed per-band-pixel
				// slot by truncating or zero-padding.
				looked := ApplyLUT(info, value)
				px = make([]byte, bpp)
				copy(px, looked)
			default:
				px = make([]byte, bpp)
				v := value
				for i := bpp - 1; i >= 0; i-- {
					px[i] = byte(v)
					v >>= 8
				}
				if swap {
					ByteSwap(px, bpp, 1)
				}
			}

			emit(pixelIdx, px)
			pixelIdx++
		}
	}
	return nil
}

// State returns the reader's current position in the read-path state machine.
func (r *Reader) State() State { return r.state }
