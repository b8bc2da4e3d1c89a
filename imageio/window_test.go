package imageio_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/imageio"
	"github.com/ngageoint/six-library-sub016/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newWindowSubheader builds an uncompressed image subheader for a
// rows x cols pixel image tiled into blockH x blockW blocks, one entry in
// Bands per band.
func newWindowSubheader(mode record.Mode, rows, cols, blockH, blockW, nbpp, bands int) record.ImageSubheader {
	h := record.ImageSubheader{
		Rows: rows, Cols: cols,
		NBPR: cols / blockW, NBPC: rows / blockH,
		NPPBH: blockW, NPPBV: blockH,
		NBPP:        nbpp,
		Mode:        mode,
		Compression: record.CompNone,
		Bands:       make([]record.BandInfo, bands),
	}
	return h
}

// fillWindowImage writes bandValues (one rows*cols*bpp byte slice per band,
// row-major) into seg's block storage in the layout grid.Mode expects.
func fillWindowImage(t *testing.T, seg *record.Segment, grid imageio.Grid, cols, bpp int, bandValues [][]byte) {
	t.Helper()
	w, err := imageio.NewWriter(seg)
	require.NoError(t, err)

	srcAt := func(band, row, col int) []byte {
		off := (row*cols + col) * bpp
		return bandValues[band][off : off+bpp]
	}

	switch grid.Mode {
	case record.ModeP:
		for br := 0; br < grid.BlocksPerCol; br++ {
			for bc := 0; bc < grid.BlocksPerRow; bc++ {
				block := make([]byte, grid.BlockPixelCount()*grid.Bands*bpp)
				for lr := 0; lr < grid.BlockHeight; lr++ {
					for lc := 0; lc < grid.BlockWidth; lc++ {
						row, col := br*grid.BlockHeight+lr, bc*grid.BlockWidth+lc
						pixel := lr*grid.BlockWidth + lc
						for band := 0; band < grid.Bands; band++ {
							dst := (pixel*grid.Bands + band) * bpp
							copy(block[dst:dst+bpp], srcAt(band, row, col))
						}
					}
				}
				require.NoError(t, w.WriteBlock(0, br, bc, block))
			}
		}
	case record.ModeR:
		rowBytes := grid.BlockWidth * bpp
		for br := 0; br < grid.BlocksPerCol; br++ {
			for bc := 0; bc < grid.BlocksPerRow; bc++ {
				block := make([]byte, grid.BlockHeight*grid.Bands*rowBytes)
				for lr := 0; lr < grid.BlockHeight; lr++ {
					row := br*grid.BlockHeight + lr
					for band := 0; band < grid.Bands; band++ {
						dstRow := lr*grid.Bands*rowBytes + band*rowBytes
						for lc := 0; lc < grid.BlockWidth; lc++ {
							col := bc*grid.BlockWidth + lc
							dst := dstRow + lc*bpp
							copy(block[dst:dst+bpp], srcAt(band, row, col))
						}
					}
				}
				require.NoError(t, w.WriteBlock(0, br, bc, block))
			}
		}
	default: // ModeB, ModeS: one block-grid instance per band
		for band := 0; band < grid.Bands; band++ {
			for br := 0; br < grid.BlocksPerCol; br++ {
				for bc := 0; bc < grid.BlocksPerRow; bc++ {
					block := make([]byte, grid.BlockPixelCount()*bpp)
					for lr := 0; lr < grid.BlockHeight; lr++ {
						for lc := 0; lc < grid.BlockWidth; lc++ {
							row, col := br*grid.BlockHeight+lr, bc*grid.BlockWidth+lc
							dst := (lr*grid.BlockWidth + lc) * bpp
							copy(block[dst:dst+bpp], srcAt(band, row, col))
						}
					}
					require.NoError(t, w.WriteBlock(band, br, bc, block))
				}
			}
		}
	}
	require.NoError(t, w.Finish())
}

// Scenario 1: mode P, one band, uncompressed 8bpp, read(0,2,4,4,[0]) on a
// 16x16 image with 4x4 blocks yields the literal bytes "AAAABBBB".
func TestReadWindowScenario1(t *testing.T) {
	h := newWindowSubheader(record.ModeP, 16, 16, 4, 4, 8, 1)
	grid := imageio.NewGrid(&h)
	seg := &record.Segment{Kind: record.KindImage, Image: &h}

	band0 := make([]byte, 16*16)
	// Block at (blockRow=0, blockCol=1) covers rows 0-3, cols 4-7.
	copy(band0[0*16+4:], "AAAA")
	copy(band0[1*16+4:], "BBBB")
	copy(band0[2*16+4:], "CCCC")
	copy(band0[3*16+4:], "DDDD")
	fillWindowImage(t, seg, grid, 16, 1, [][]byte{band0})

	r, err := imageio.NewReader(seg, nil, 0)
	require.NoError(t, err)

	got, err := r.ReadWindow(imageio.Window{Row0: 0, RowCount: 2, Col0: 4, ColCount: 4, Bands: []int{0}})
	require.NoError(t, err)
	assert.Equal(t, []byte("AAAABBBB"), got)
}

// Scenario 2: mode P, two bands, 8bpp, band-sequential read(0,4,0,16,[0,1])
// yields 64 bytes of band 0 followed by 64 bytes of band 1.
func TestReadWindowScenario2BandSequential(t *testing.T) {
	h := newWindowSubheader(record.ModeP, 16, 16, 4, 4, 8, 2)
	grid := imageio.NewGrid(&h)
	seg := &record.Segment{Kind: record.KindImage, Image: &h}

	band0 := make([]byte, 16*16)
	band1 := make([]byte, 16*16)
	for i := range band0 {
		band0[i] = byte(i)
		band1[i] = byte(200 + i)
	}
	fillWindowImage(t, seg, grid, 16, 1, [][]byte{band0, band1})

	r, err := imageio.NewReader(seg, nil, 0)
	require.NoError(t, err)

	got, err := r.ReadWindow(imageio.Window{Row0: 0, RowCount: 4, Col0: 0, ColCount: 16, Bands: []int{0, 1}, BandSequential: true})
	require.NoError(t, err)
	require.Len(t, got, 128)

	var wantBand0, wantBand1 []byte
	for row := 0; row < 4; row++ {
		wantBand0 = append(wantBand0, band0[row*16:row*16+16]...)
		wantBand1 = append(wantBand1, band1[row*16:row*16+16]...)
	}
	assert.Equal(t, wantBand0, got[:64])
	assert.Equal(t, wantBand1, got[64:])
}

// Scenario 3: mode P, two 16bpp big-endian bands, read(0,16,0,16,[1]) comes
// back as band 1's values in host byte order.
func TestReadWindowScenario3Endian16Bit(t *testing.T) {
	h := newWindowSubheader(record.ModeP, 16, 16, 4, 4, 16, 2)
	grid := imageio.NewGrid(&h)
	seg := &record.Segment{Kind: record.KindImage, Image: &h}

	n := 16 * 16
	band0 := make([]byte, n*2)
	band1 := make([]byte, n*2)
	wantVals := make([]uint16, n)
	for i := 0; i < n; i++ {
		binary.BigEndian.PutUint16(band0[i*2:], uint16(i))
		v := uint16(0x1234 + i)
		binary.BigEndian.PutUint16(band1[i*2:], v)
		wantVals[i] = v
	}
	fillWindowImage(t, seg, grid, 16, 2, [][]byte{band0, band1})

	r, err := imageio.NewReader(seg, nil, 0)
	require.NoError(t, err)

	got, err := r.ReadWindow(imageio.Window{Row0: 0, RowCount: 16, Col0: 0, ColCount: 16, Bands: []int{1}})
	require.NoError(t, err)
	require.Len(t, got, n*2)

	for i := 0; i < n; i++ {
		var v uint16
		if imageio.HostLittleEndian() {
			v = binary.LittleEndian.Uint16(got[i*2:])
		} else {
			v = binary.BigEndian.Uint16(got[i*2:])
		}
		assert.Equal(t, wantVals[i], v, "pixel %d", i)
	}
}

// Scenario 6: a masked, all-pad mode-S block reads back as its declared pad
// value without ever invoking the compression codec.
func TestReadWindowScenario6MaskedAllPad(t *testing.T) {
	h := newWindowSubheader(record.ModeS, 8, 4, 4, 4, 8, 1)
	h.Compression = record.CompNoneMasked
	grid := imageio.NewGrid(&h)
	seg := &record.Segment{Kind: record.KindImage, Image: &h}

	blockSize := grid.BlockByteSize()
	mask := &record.BlockMask{
		PadValue:     [][]byte{{0x5A}},
		BlockOffsets: [][]int64{{-1, 0}},
	}
	maskBytes := imageio.WriteMask(mask, grid)
	block1Offset := int64(len(maskBytes))
	mask.BlockOffsets[0][1] = block1Offset
	maskBytes = imageio.WriteMask(mask, grid)

	block1 := make([]byte, blockSize)
	for i := range block1 {
		block1[i] = byte(i)
	}
	seg.Data = append(maskBytes, block1...)

	codecs := imageio.NewCodecRegistry()
	codecs.Register(record.CompNoneMasked, failingCodec{})

	r, err := imageio.NewReader(seg, codecs, 0)
	require.NoError(t, err)

	got, err := r.ReadWindow(imageio.Window{Row0: 0, RowCount: 4, Col0: 0, ColCount: 4, Bands: []int{0}})
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0x5A}, blockSize), got)
}

type failingCodec struct{}

func (failingCodec) Decode(compressed []byte, g imageio.Grid) ([]byte, error) {
	return nil, errs.Wrap(errs.UnsupportedCompression, -1, "image", "", assertErr{})
}
func (failingCodec) Encode(raw []byte, g imageio.Grid) ([]byte, error) {
	return nil, errs.Wrap(errs.UnsupportedCompression, -1, "image", "", assertErr{})
}

type assertErr struct{}

func (assertErr) Error() string { return "decode should not have been called" }

// Mode equivalence: reading the same logical two-band image through every
// mode's own storage layout yields the same band-interleaved bytes.
func TestReadWindowModeEquivalence(t *testing.T) {
	band0 := make([]byte, 64)
	band1 := make([]byte, 64)
	for i := range band0 {
		band0[i] = byte(i)
		band1[i] = byte(200 + i)
	}

	var results [][]byte
	for _, mode := range []record.Mode{record.ModeB, record.ModeP, record.ModeR, record.ModeS} {
		h := newWindowSubheader(mode, 8, 8, 4, 4, 8, 2)
		grid := imageio.NewGrid(&h)
		seg := &record.Segment{Kind: record.KindImage, Image: &h}
		fillWindowImage(t, seg, grid, 8, 1, [][]byte{band0, band1})

		r, err := imageio.NewReader(seg, nil, 0)
		require.NoError(t, err)
		got, err := r.ReadWindow(imageio.Window{Row0: 0, RowCount: 8, Col0: 0, ColCount: 8, Bands: []int{0, 1}})
		require.NoError(t, err, "mode %c", mode)
		results = append(results, got)
	}

	for i := 1; i < len(results); i++ {
		assert.Equal(t, results[0], results[i])
	}

	want := make([]byte, 0, 128)
	for i := 0; i < 64; i++ {
		want = append(want, band0[i], band1[i])
	}
	assert.Equal(t, want, results[0])
}

// Band swap: requesting bands in reverse order swaps each pixel's bytes,
// matching a direct read with the same reordered band list.
func TestReadWindowBandSwap(t *testing.T) {
	h := newWindowSubheader(record.ModeP, 8, 8, 4, 4, 8, 2)
	grid := imageio.NewGrid(&h)
	seg := &record.Segment{Kind: record.KindImage, Image: &h}

	band0 := make([]byte, 64)
	band1 := make([]byte, 64)
	for i := range band0 {
		band0[i] = byte(i)
		band1[i] = byte(200 + i)
	}
	fillWindowImage(t, seg, grid, 8, 1, [][]byte{band0, band1})

	r, err := imageio.NewReader(seg, nil, 0)
	require.NoError(t, err)

	direct, err := r.ReadWindow(imageio.Window{Row0: 0, RowCount: 8, Col0: 0, ColCount: 8, Bands: []int{0, 1}})
	require.NoError(t, err)
	swapped, err := r.ReadWindow(imageio.Window{Row0: 0, RowCount: 8, Col0: 0, ColCount: 8, Bands: []int{1, 0}})
	require.NoError(t, err)

	require.Len(t, swapped, len(direct))
	for i := 0; i < len(direct); i += 2 {
		assert.Equal(t, direct[i], swapped[i+1], "pixel %d band0", i/2)
		assert.Equal(t, direct[i+1], swapped[i], "pixel %d band1", i/2)
	}
}

// Sub-window closure: reading a larger window and slicing out a smaller
// rectangle matches reading that rectangle directly.
func TestReadWindowSubWindowClosure(t *testing.T) {
	h := newWindowSubheader(record.ModeP, 8, 8, 4, 4, 8, 2)
	grid := imageio.NewGrid(&h)
	seg := &record.Segment{Kind: record.KindImage, Image: &h}

	band0 := make([]byte, 64)
	band1 := make([]byte, 64)
	for i := range band0 {
		band0[i] = byte(i)
		band1[i] = byte(200 + i)
	}
	fillWindowImage(t, seg, grid, 8, 1, [][]byte{band0, band1})

	r, err := imageio.NewReader(seg, nil, 0)
	require.NoError(t, err)

	full, err := r.ReadWindow(imageio.Window{Row0: 0, RowCount: 8, Col0: 0, ColCount: 8, Bands: []int{0, 1}})
	require.NoError(t, err)

	sub, err := r.ReadWindow(imageio.Window{Row0: 2, RowCount: 3, Col0: 3, ColCount: 4, Bands: []int{0, 1}})
	require.NoError(t, err)

	bpp := 1
	bands := 2
	fullStride := 8 * bands * bpp
	var want []byte
	for row := 2; row < 5; row++ {
		rowStart := row * fullStride
		colStart := rowStart + 3*bands*bpp
		want = append(want, full[colStart:colStart+4*bands*bpp]...)
	}
	assert.Equal(t, want, sub)
}

func TestApplyLUT(t *testing.T) {
	band := record.BandInfo{
		LUTs: [][]byte{
			{10, 20, 30, 40},
			{11, 21, 31, 41},
			{12, 22, 32, 42},
		},
	}
	got := imageio.ApplyLUT(band, 2)
	assert.Equal(t, []byte{30, 31, 32}, got)

	got = imageio.ApplyLUT(record.BandInfo{}, 5)
	assert.Empty(t, got)
}

func TestByteSwapIdempotent(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}
	original := append([]byte(nil), data...)
	imageio.ByteSwap(data, 2, 1)
	imageio.ByteSwap(data, 2, 1)
	assert.Equal(t, original, data)
}
