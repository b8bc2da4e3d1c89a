package nitf

import (
	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/ioif"
	"github.com/ngageoint/six-library-sub016/record"
)

// WriteOptions controls Write's overflow-merge behavior.
type WriteOptions struct {
	// SkipOverflowMerge disables the automatic TRE-overflow relocation pass.
	// Left false by default: Write runs mergeOverflow before serializing so a
	// Record whose extension sections have grown past the 5-digit field
	// width still serializes successfully.
	SkipOverflowMerge bool
}

// Write serializes rec to h: placeholder-free, single pass. FileHeader
// counts, ComponentInfo entries, HeaderLength, and FileLength are all
// recomputed from the current segment lists before anything is written, so
// Write is idempotent on an already-consistent Record and does not require
// the caller to keep derived fields in sync by hand.
func Write(h ioif.Handle, rec *record.Record, opts WriteOptions) error {
	if !opts.SkipOverflowMerge {
		if err := mergeOverflow(rec); err != nil {
			return err
		}
	}

	fh := rec.Header
	fh.ImageInfo = make([]record.ComponentInfo, len(rec.Images))
	for i, seg := range rec.Images {
		fh.ImageInfo[i] = record.ComponentInfo{
			SubheaderLength: uint32(imageSubheaderEncodedLength(seg.Image)),
			DataLength:      uint64(len(seg.Data)),
		}
	}
	fh.GraphicInfo = make([]record.ComponentInfo, len(rec.Graphics))
	for i, seg := range rec.Graphics {
		fh.GraphicInfo[i] = record.ComponentInfo{
			SubheaderLength: uint32(graphicSubheaderEncodedLength(seg.Graphic)),
			DataLength:      uint64(len(seg.Data)),
		}
	}
	fh.LabelInfo = make([]record.ComponentInfo, len(rec.Labels))
	for i, seg := range rec.Labels {
		fh.LabelInfo[i] = record.ComponentInfo{
			SubheaderLength: uint32(labelSubheaderEncodedLength(seg.Label)),
			DataLength:      uint64(len(seg.Data)),
		}
	}
	fh.TextInfo = make([]record.ComponentInfo, len(rec.Texts))
	for i, seg := range rec.Texts {
		fh.TextInfo[i] = record.ComponentInfo{
			SubheaderLength: uint32(textSubheaderEncodedLength(seg.Text)),
			DataLength:      uint64(len(seg.Data)),
		}
	}
	fh.DESInfo = make([]record.ComponentInfo, len(rec.DEs))
	for i, seg := range rec.DEs {
		fh.DESInfo[i] = record.ComponentInfo{
			SubheaderLength: uint32(deSubheaderEncodedLength(seg.DE)),
			DataLength:      uint64(len(seg.DE.Data)),
		}
	}
	fh.RESInfo = make([]record.ComponentInfo, len(rec.REs))
	for i, seg := range rec.REs {
		fh.RESInfo[i] = record.ComponentInfo{
			SubheaderLength: uint32(reSubheaderEncodedLength(seg.RE)),
			DataLength:      uint64(len(seg.RE.Data)),
		}
	}

	fh.HeaderLength = uint32(fileHeaderEncodedLength(fh))
	fh.FileLength = fh.ComputeFileLength()

	if _, err := h.Seek(0, ioif.Set); err != nil {
		return errs.Wrap(errs.Io, 0, "", "", err)
	}
	c := newCursor(h, 0)

	if err := c.writeRaw([]byte(magicString(fh.Version))); err != nil {
		return err
	}
	if err := writeFileHeader(c, fh); err != nil {
		return err
	}

	for _, seg := range rec.Images {
		if err := writeImageSubheader(c, seg.Image); err != nil {
			return err
		}
		if err := c.writeRaw(seg.Data); err != nil {
			return err
		}
	}
	for _, seg := range rec.Graphics {
		if err := writeGraphicSubheader(c, seg.Graphic); err != nil {
			return err
		}
		if err := c.writeRaw(seg.Data); err != nil {
			return err
		}
	}
	for _, seg := range rec.Labels {
		if err := writeLabelSubheader(c, seg.Label); err != nil {
			return err
		}
		if err := c.writeRaw(seg.Data); err != nil {
			return err
		}
	}
	for _, seg := range rec.Texts {
		if err := writeTextSubheader(c, seg.Text); err != nil {
			return err
		}
		if err := c.writeRaw(seg.Data); err != nil {
			return err
		}
	}
	for _, seg := range rec.DEs {
		if err := writeDESubheader(c, seg.DE); err != nil {
			return err
		}
		if err := c.writeRaw(seg.DE.Data); err != nil {
			return err
		}
	}
	for _, seg := range rec.REs {
		if err := writeRESubheader(c, seg.RE); err != nil {
			return err
		}
		if err := c.writeRaw(seg.RE.Data); err != nil {
			return err
		}
	}

	return nil
}

// fileHeaderEncodedLength computes HL (the HeaderLength field's own value)
// from the header's current contents without writing it.
func fileHeaderEncodedLength(h *record.FileHeader) int {
	total := 2 + 4 + 10 + 14 + 80 + h.Security.EncodedLength() + 1 + 24 + 18 + 12 + 6
	total += 3 + len(h.ImageInfo)*16   // NUMI + (subheaderLen:6 + dataLen:10) per image
	total += 3 + len(h.GraphicInfo)*10 // NUMS + (4+6) per graphic
	if h.Version == record.Version20 {
		total += 3 + len(h.LabelInfo)*10 // NUML + (4+6) per label
	}
	total += 3 + len(h.TextInfo)*9   // NUMT + (4+5) per text
	total += 3 + len(h.DESInfo)*13   // NUMDES + (4+9) per DES
	total += 3 + len(h.RESInfo)*11   // NUMRES + (4+7) per RES
	total += extensionSectionLength(h.UserDefinedHeader)
	total += extensionSectionLength(h.ExtendedHeader)
	return total
}
