package nitf

import (
	"github.com/ngageoint/six-library-sub016/dtg"
	"github.com/ngageoint/six-library-sub016/extension"
	"github.com/ngageoint/six-library-sub016/field"
	"github.com/ngageoint/six-library-sub016/record"
	"github.com/ngageoint/six-library-sub016/tre"
)

func readImageSubheader(c *cursor, v record.Version, registry *tre.Registry, strict bool, warnings *[]string) (*record.ImageSubheader, error) {
	h, err := record.NewImageSubheader(v)
	if err != nil {
		return nil, err
	}

	var s string
	if s, err = c.readString(10, field.BCSA, "image", "imageID"); err != nil {
		return nil, err
	}
	h.ImageID = s
	if s, err = c.readString(14, field.BCSAPlus, "image", "dateTime"); err != nil {
		return nil, err
	}
	h.DateTime = s
	if s, err = c.readString(17, field.BCSAPlus, "image", "targetID"); err != nil {
		return nil, err
	}
	h.TargetID = s
	if s, err = c.readString(80, field.BCSAPlus, "image", "title"); err != nil {
		return nil, err
	}
	h.Title = s
	if h.Security, err = readFileSecurity(c, v, "image"); err != nil {
		return nil, err
	}
	enc, err := c.readInt(1, "image", "encrypted")
	if err != nil {
		return nil, err
	}
	h.Encrypted = enc != 0
	if s, err = c.readString(42, field.BCSAPlus, "image", "source"); err != nil {
		return nil, err
	}
	h.Source = s

	rows, err := c.readInt(8, "image", "rows")
	if err != nil {
		return nil, err
	}
	h.Rows = int(rows)
	cols, err := c.readInt(8, "image", "cols")
	if err != nil {
		return nil, err
	}
	h.Cols = int(cols)

	if s, err = c.readString(3, field.BCSA, "image", "pvType"); err != nil {
		return nil, err
	}
	h.PVType = record.PixelValueType(s)
	if s, err = c.readString(8, field.BCSA, "image", "representation"); err != nil {
		return nil, err
	}
	h.Representation = record.Representation(s)
	if s, err = c.readString(8, field.BCSA, "image", "category"); err != nil {
		return nil, err
	}
	h.Category = s
	abpp, err := c.readInt(2, "image", "abpp")
	if err != nil {
		return nil, err
	}
	h.ActualBPP = int(abpp)
	just, err := c.readString(1, field.BCSA, "image", "justification")
	if err != nil {
		return nil, err
	}
	if just != "" {
		h.Justification = record.Justification(just[0])
	}

	icords, err := c.readString(1, field.BCSAPlus, "image", "icords")
	if err != nil {
		return nil, err
	}
	if icords != "" {
		h.ICORDS = dtg.ICORDS(icords[0])
	}
	if h.ICORDS != dtg.ICORDSNone {
		for i := 0; i < 4; i++ {
			raw, err := c.readString(15, field.BCSAPlus, "image", "igeolo")
			if err != nil {
				return nil, err
			}
			corner, err := dtg.ParseCorner(h.ICORDS, raw)
			if err != nil {
				return nil, err
			}
			h.IGEOLO[i] = corner
		}
	}

	nicom, err := c.readInt(1, "image", "nicom")
	if err != nil {
		return nil, err
	}
	for i := int64(0); i < nicom; i++ {
		comment, err := c.readString(80, field.BCSAPlus, "image", "comment")
		if err != nil {
			return nil, err
		}
		h.Comments = append(h.Comments, comment)
	}

	if s, err = c.readString(2, field.BCSA, "image", "compression"); err != nil {
		return nil, err
	}
	h.Compression = record.Compression(s)
	if h.Compression != record.CompNone && h.Compression != record.CompNoneMasked {
		if s, err = c.readString(4, field.BCSAPlus, "image", "compressionRate"); err != nil {
			return nil, err
		}
		h.CompressionRate = s
	}

	nbands, err := c.readInt(1, "image", "nbands")
	if err != nil {
		return nil, err
	}
	if nbands == 0 {
		xbands, err := c.readInt(5, "image", "xbands")
		if err != nil {
			return nil, err
		}
		nbands = xbands
	}
	for i := int64(0); i < nbands; i++ {
		var b record.BandInfo
		if b.Representation, err = c.readString(2, field.BCSA, "image", "irepband"); err != nil {
			return nil, err
		}
		if b.Subcategory, err = c.readString(6, field.BCSAPlus, "image", "isubcat"); err != nil {
			return nil, err
		}
		if b.FilterCondition, err = c.readString(1, field.BCSA, "image", "ifc"); err != nil {
			return nil, err
		}
		if b.FilterCode, err = c.readString(3, field.BCSA, "image", "imflt"); err != nil {
			return nil, err
		}
		nluts, err := c.readInt(1, "image", "nluts")
		if err != nil {
			return nil, err
		}
		b.NumLUTs = int(nluts)
		if b.NumLUTs > 0 {
			nelut, err := c.readInt(5, "image", "nelut")
			if err != nil {
				return nil, err
			}
			b.EntriesPerLUT = int(nelut)
			b.LUTs = make([][]byte, b.NumLUTs)
			for l := 0; l < b.NumLUTs; l++ {
				raw, err := c.readRaw(b.EntriesPerLUT, "image", "lutd")
				if err != nil {
					return nil, err
				}
				b.LUTs[l] = raw
			}
		}
		h.Bands = append(h.Bands, b)
	}

	mode, err := c.readString(1, field.BCSA, "image", "mode")
	if err != nil {
		return nil, err
	}
	if mode != "" {
		h.Mode = record.Mode(mode[0])
	}
	nbpr, err := c.readInt(4, "image", "nbpr")
	if err != nil {
		return nil, err
	}
	h.NBPR = int(nbpr)
	nbpc, err := c.readInt(4, "image", "nbpc")
	if err != nil {
		return nil, err
	}
	h.NBPC = int(nbpc)
	nppbh, err := c.readInt(4, "image", "nppbh")
	if err != nil {
		return nil, err
	}
	h.NPPBH = int(nppbh)
	nppbv, err := c.readInt(4, "image", "nppbv")
	if err != nil {
		return nil, err
	}
	h.NPPBV = int(nppbv)
	nbpp, err := c.readInt(2, "image", "nbpp")
	if err != nil {
		return nil, err
	}
	h.NBPP = int(nbpp)

	dlvl, err := c.readInt(3, "image", "displayLevel")
	if err != nil {
		return nil, err
	}
	h.DisplayLevel = int(dlvl)
	alvl, err := c.readInt(3, "image", "attachmentLevel")
	if err != nil {
		return nil, err
	}
	h.AttachmentLevel = int(alvl)
	if s, err = c.readString(10, field.BCSAPlus, "image", "iloc"); err != nil {
		return nil, err
	}
	h.ILOC = s
	if s, err = c.readString(4, field.BCSAPlus, "image", "imag"); err != nil {
		return nil, err
	}
	h.Magnification = s

	udid, _, err := readExtensionSection(c, registry, "image", strict, warnings)
	if err != nil {
		return nil, err
	}
	h.UserDefinedSection = udid
	ixshd, _, err := readExtensionSection(c, registry, "image", strict, warnings)
	if err != nil {
		return nil, err
	}
	h.ExtendedSection = ixshd

	if err := h.Validate(); err != nil {
		if strict {
			return nil, err
		}
		*warnings = append(*warnings, err.Error())
	}

	return h, nil
}

func writeImageSubheader(c *cursor, h *record.ImageSubheader) error {
	if err := c.writeString(10, field.BCSA, h.ImageID); err != nil {
		return err
	}
	if err := c.writeString(14, field.BCSAPlus, h.DateTime); err != nil {
		return err
	}
	if err := c.writeString(17, field.BCSAPlus, h.TargetID); err != nil {
		return err
	}
	if err := c.writeString(80, field.BCSAPlus, h.Title); err != nil {
		return err
	}
	if err := writeFileSecurity(c, h.Security); err != nil {
		return err
	}
	enc := int64(0)
	if h.Encrypted {
		enc = 1
	}
	if err := c.writeInt(1, enc); err != nil {
		return err
	}
	if err := c.writeString(42, field.BCSAPlus, h.Source); err != nil {
		return err
	}
	if err := c.writeInt(8, int64(h.Rows)); err != nil {
		return err
	}
	if err := c.writeInt(8, int64(h.Cols)); err != nil {
		return err
	}
	if err := c.writeString(3, field.BCSA, string(h.PVType)); err != nil {
		return err
	}
	if err := c.writeString(8, field.BCSA, string(h.Representation)); err != nil {
		return err
	}
	if err := c.writeString(8, field.BCSA, h.Category); err != nil {
		return err
	}
	if err := c.writeInt(2, int64(h.ActualBPP)); err != nil {
		return err
	}
	just := string(h.Justification)
	if just == "" {
		just = string(record.JustRight)
	}
	if err := c.writeString(1, field.BCSA, just); err != nil {
		return err
	}

	icords := ""
	if h.ICORDS != dtg.ICORDSNone {
		icords = string(rune(h.ICORDS))
	}
	if err := c.writeString(1, field.BCSAPlus, icords); err != nil {
		return err
	}
	if h.ICORDS != dtg.ICORDSNone {
		for _, corner := range h.IGEOLO {
			s, err := dtg.FormatCorner(h.ICORDS, corner)
			if err != nil {
				return err
			}
			if err := c.writeString(15, field.BCSAPlus, s); err != nil {
				return err
			}
		}
	}

	if err := c.writeInt(1, int64(len(h.Comments))); err != nil {
		return err
	}
	for _, comment := range h.Comments {
		if err := c.writeString(80, field.BCSAPlus, comment); err != nil {
			return err
		}
	}

	if err := c.writeString(2, field.BCSA, string(h.Compression)); err != nil {
		return err
	}
	if h.Compression != record.CompNone && h.Compression != record.CompNoneMasked {
		if err := c.writeString(4, field.BCSAPlus, h.CompressionRate); err != nil {
			return err
		}
	}

	n := len(h.Bands)
	if n <= 9 {
		if err := c.writeInt(1, int64(n)); err != nil {
			return err
		}
	} else {
		if err := c.writeInt(1, 0); err != nil {
			return err
		}
		if err := c.writeInt(5, int64(n)); err != nil {
			return err
		}
	}
	for _, b := range h.Bands {
		if err := c.writeString(2, field.BCSA, b.Representation); err != nil {
			return err
		}
		if err := c.writeString(6, field.BCSAPlus, b.Subcategory); err != nil {
			return err
		}
		if err := c.writeString(1, field.BCSA, b.FilterCondition); err != nil {
			return err
		}
		if err := c.writeString(3, field.BCSA, b.FilterCode); err != nil {
			return err
		}
		if err := c.writeInt(1, int64(b.NumLUTs)); err != nil {
			return err
		}
		if b.NumLUTs > 0 {
			if err := c.writeInt(5, int64(b.EntriesPerLUT)); err != nil {
				return err
			}
			for _, lut := range b.LUTs {
				if err := c.writeRaw(lut); err != nil {
					return err
				}
			}
		}
	}

	if err := c.writeString(1, field.BCSA, string(h.Mode)); err != nil {
		return err
	}
	if err := c.writeInt(4, int64(h.NBPR)); err != nil {
		return err
	}
	if err := c.writeInt(4, int64(h.NBPC)); err != nil {
		return err
	}
	if err := c.writeInt(4, int64(h.NPPBH)); err != nil {
		return err
	}
	if err := c.writeInt(4, int64(h.NPPBV)); err != nil {
		return err
	}
	if err := c.writeInt(2, int64(h.NBPP)); err != nil {
		return err
	}
	if err := c.writeInt(3, int64(h.DisplayLevel)); err != nil {
		return err
	}
	if err := c.writeInt(3, int64(h.AttachmentLevel)); err != nil {
		return err
	}
	if err := c.writeString(10, field.BCSAPlus, h.ILOC); err != nil {
		return err
	}
	if err := c.writeString(4, field.BCSAPlus, h.Magnification); err != nil {
		return err
	}

	if err := writeExtensionSection(c, h.UserDefinedSection, 0); err != nil {
		return err
	}
	if err := writeExtensionSection(c, h.ExtendedSection, 0); err != nil {
		return err
	}
	return nil
}

// imageSubheaderEncodedLength computes the on-disk length of h without
// writing it, used by the writer's fixup pass to populate ComponentInfo
// before the segment's bytes are actually serialized.
func imageSubheaderEncodedLength(h *record.ImageSubheader) int {
	total := 10 + 14 + 17 + 80 + h.Security.EncodedLength() + 1 + 42 + 8 + 8 + 3 + 8 + 8 + 2 + 1 + 1
	if h.ICORDS != dtg.ICORDSNone {
		total += 4 * 15
	}
	total += 1 + 80*len(h.Comments)
	total += 2
	if h.Compression != record.CompNone && h.Compression != record.CompNoneMasked {
		total += 4
	}
	if len(h.Bands) <= 9 {
		total += 1
	} else {
		total += 1 + 5
	}
	for _, b := range h.Bands {
		total += 2 + 6 + 1 + 3 + 1
		if b.NumLUTs > 0 {
			total += 5 + b.NumLUTs*b.EntriesPerLUT
		}
	}
	total += 1 + 4 + 4 + 4 + 4 + 2 + 3 + 3 + 10 + 4
	total += extensionSectionLength(h.UserDefinedSection)
	total += extensionSectionLength(h.ExtendedSection)
	return total
}

func extensionSectionLength(ext *extension.Extensions) int {
	if ext == nil || ext.EncodedLength() == 0 {
		return 5
	}
	return 5 + extOverflowFieldWidth + ext.EncodedLength()
}
