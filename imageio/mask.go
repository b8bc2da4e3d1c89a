package imageio

import (
	"encoding/binary"
	"fmt"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/record"
)

// blockOffsetSentinel marks a block as entirely pad pixels: the codec never
// stores it and readers should synthesize PadValue instead.
const blockOffsetSentinel = 0xFFFFFFFF

// ReadMask parses the leading mask subheader that a masked compression code
// (NM, M1, M3, M5) prepends to an image segment's data, per spec.md §4.5's
// mask-table step. data is the segment's full data payload; the mask
// occupies its first bytes, and ReadMask returns how many.
func ReadMask(data []byte, g Grid) (*record.BlockMask, int, error) {
	if len(data) < 10 {
		return nil, 0, errs.Wrap(errs.Structural, -1, "image", "mask", fmt.Errorf("mask subheader truncated: %d bytes", len(data)))
	}

	imdatoff := binary.BigEndian.Uint32(data[0:4])
	bmrlnth := binary.BigEndian.Uint16(data[4:6])
	tmrlnth := binary.BigEndian.Uint16(data[6:8])
	tpxcdlnth := binary.BigEndian.Uint16(data[8:10])

	pos := 10
	padBytes := (int(tpxcdlnth) + 7) / 8
	bandsForPad := 1
	if g.Mode == record.ModeS {
		bandsForPad = g.Bands
	}

	mask := &record.BlockMask{}
	if tpxcdlnth > 0 {
		mask.PadValue = make([][]byte, bandsForPad)
		for b := 0; b < bandsForPad; b++ {
			if pos+padBytes > len(data) {
				return nil, 0, errs.Wrap(errs.Structural, int64(pos), "image", "mask", fmt.Errorf("pad value runs past end of mask"))
			}
			mask.PadValue[b] = append([]byte(nil), data[pos:pos+padBytes]...)
			pos += padBytes
		}
	}

	bandsForBMR := 1
	if g.Mode == record.ModeS {
		bandsForBMR = g.Bands
	}
	blocksPerBand := g.blockGridSize()

	if bmrlnth > 0 {
		mask.BlockOffsets = make([][]int64, bandsForBMR)
		for b := 0; b < bandsForBMR; b++ {
			offsets := make([]int64, blocksPerBand)
			for i := 0; i < blocksPerBand; i++ {
				if pos+4 > len(data) {
					return nil, 0, errs.Wrap(errs.Structural, int64(pos), "image", "mask", fmt.Errorf("block-offset table runs past end of mask"))
				}
				v := binary.BigEndian.Uint32(data[pos : pos+4])
				pos += 4
				if v == blockOffsetSentinel {
					offsets[i] = -1
				} else {
					offsets[i] = int64(v)
				}
			}
			mask.BlockOffsets[b] = offsets
		}
	}

	// tmrlnth (the per-block transparent-pixel run-length table) and the
	// declared imdatoff both describe layout this engine derives structurally
	// from bmrlnth instead of trusting verbatim; they are consumed here only
	// to keep pos aligned with the declared mask length.
	_ = tmrlnth
	if int(imdatoff) > pos {
		pos = int(imdatoff)
	}

	return mask, pos, nil
}

// WriteMask serializes mask back to its on-disk form for a grid whose
// geometry matches the one ReadMask was given.
func WriteMask(mask *record.BlockMask, g Grid) []byte {
	bandsForPad := 1
	if g.Mode == record.ModeS {
		bandsForPad = g.Bands
	}
	padBytes := 0
	if len(mask.PadValue) > 0 {
		padBytes = len(mask.PadValue[0])
	}
	blocksPerBand := g.blockGridSize()
	bandsForBMR := 1
	if g.Mode == record.ModeS {
		bandsForBMR = g.Bands
	}

	bmrlnth := 0
	if len(mask.BlockOffsets) > 0 {
		bmrlnth = blocksPerBand * 4
	}
	tpxcdlnth := padBytes * 8

	body := make([]byte, 0, 10+bandsForPad*padBytes+bandsForBMR*blocksPerBand*4)
	header := make([]byte, 10)
	binary.BigEndian.PutUint16(header[4:6], uint16(bmrlnth))
	binary.BigEndian.PutUint16(header[6:8], 0)
	binary.BigEndian.PutUint16(header[8:10], uint16(tpxcdlnth))
	body = append(body, header...)

	for b := 0; b < bandsForPad && b < len(mask.PadValue); b++ {
		body = append(body, mask.PadValue[b]...)
	}
	for b := 0; b < bandsForBMR && b < len(mask.BlockOffsets); b++ {
		for _, off := range mask.BlockOffsets[b] {
			var v uint32
			if off < 0 {
				v = blockOffsetSentinel
			} else {
				v = uint32(off)
			}
			var buf [4]byte
			binary.BigEndian.PutUint32(buf[:], v)
			body = append(body, buf[:]...)
		}
	}

	binary.BigEndian.PutUint32(body[0:4], uint32(len(body)))
	return body
}
