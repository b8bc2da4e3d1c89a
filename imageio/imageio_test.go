package imageio_test

import (
	"testing"

	"github.com/ngageoint/six-library-sub016/imageio"
	"github.com/ngageoint/six-library-sub016/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	for _, nbpp := range []int{1, 3, 8, 12, 16, 32, 64} {
		var mask uint64 = ^uint64(0)
		if nbpp < 64 {
			mask = (uint64(1) << uint(nbpp)) - 1
		}
		values := []uint64{0, 1 & mask, mask, 7 & mask}
		packed := imageio.Pack(values, nbpp)
		got := imageio.Unpack(packed, nbpp, len(values))
		assert.Equal(t, values, got, "nbpp=%d", nbpp)
	}
}

func TestByteSwapStripeCountIndependent(t *testing.T) {
	base := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	for _, stripes := range []int{1, 2, 3, 8, 100} {
		data := append([]byte(nil), base...)
		imageio.ByteSwap(data, 2, stripes)
		assert.Equal(t, []byte{0x02, 0x01, 0x04, 0x03, 0x06, 0x05, 0x08, 0x07}, data, "stripes=%d", stripes)
	}
}

func newTestGrid() (record.ImageSubheader, imageio.Grid) {
	h := record.ImageSubheader{
		Rows: 8, Cols: 8,
		NBPR: 2, NBPC: 2, NPPBH: 4, NPPBV: 4, NBPP: 8,
		Mode:  record.ModeB,
		Bands: []record.BandInfo{{}},
	}
	return h, imageio.NewGrid(&h)
}

func TestWriterReaderBlockRoundTrip(t *testing.T) {
	h, _ := newTestGrid()
	h.Compression = record.CompNone
	seg := &record.Segment{Kind: record.KindImage, Image: &h}

	w, err := imageio.NewWriter(seg)
	require.NoError(t, err)

	grid := imageio.NewGrid(&h)
	blockSize := grid.BlockByteSize()
	block00 := make([]byte, blockSize)
	for i := range block00 {
		block00[i] = byte(i)
	}
	require.NoError(t, w.WriteBlock(0, 0, 0, block00))
	require.NoError(t, w.WriteBlock(0, 1, 1, make([]byte, blockSize)))
	require.NoError(t, w.Finish())

	r, err := imageio.NewReader(seg, nil, 0)
	require.NoError(t, err)

	got, err := r.ReadBlock(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, block00, got)
	assert.Equal(t, imageio.BlockCached, r.State())
}

func TestMaskedReadWriteRoundTrip(t *testing.T) {
	h, _ := newTestGrid()
	h.Mode = record.ModeS
	h.Compression = record.CompNoneMasked
	h.Bands = []record.BandInfo{{}, {}}

	grid := imageio.NewGrid(&h)
	blockSize := grid.BlockByteSize()
	numBlocks := grid.BlocksPerRow * grid.BlocksPerCol

	mask := &record.BlockMask{
		PadValue:     [][]byte{{0xAA}, {0xBB}},
		BlockOffsets: make([][]int64, 2),
	}
	for b := 0; b < 2; b++ {
		offs := make([]int64, numBlocks)
		for i := range offs {
			offs[i] = int64(10 + (b*numBlocks+i)*blockSize)
		}
		offs[0] = -1 // first block of each band is all-pad
		mask.BlockOffsets[b] = offs
	}

	encoded := imageio.WriteMask(mask, grid)
	decoded, n, err := imageio.ReadMask(encoded, grid)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), n)
	assert.Equal(t, mask.PadValue, decoded.PadValue)
	assert.Equal(t, mask.BlockOffsets, decoded.BlockOffsets)
}

func TestCodecRegistryUnsupportedCompression(t *testing.T) {
	r := imageio.NewCodecRegistry()
	_, err := r.Get(record.CompJPEG)
	assert.Error(t, err)

	_, err = r.Get(record.CompNone)
	assert.NoError(t, err)
}
