package nitf

import (
	"github.com/ngageoint/six-library-sub016/field"
	"github.com/ngageoint/six-library-sub016/record"
	"github.com/ngageoint/six-library-sub016/tre"
)

// componentInfoWidths gives the (subheader-length-digits, data-length-digits)
// pair for each FileHeader component array, per segment kind.
var componentInfoWidths = map[record.SegmentKind][2]int{
	record.KindImage:   {6, 10},
	record.KindGraphic: {4, 6},
	record.KindLabel:   {4, 6},
	record.KindText:    {4, 5},
	record.KindDE:      {4, 9},
	record.KindRE:      {4, 7},
}

func readComponentInfoArray(c *cursor, kind record.SegmentKind, countWidth int) ([]record.ComponentInfo, error) {
	widths := componentInfoWidths[kind]
	n, err := c.readInt(countWidth, "fileheader", "count")
	if err != nil {
		return nil, err
	}
	infos := make([]record.ComponentInfo, 0, n)
	for i := int64(0); i < n; i++ {
		subLen, err := c.readInt(widths[0], "fileheader", "subheaderLength")
		if err != nil {
			return nil, err
		}
		dataLen, err := c.readInt(widths[1], "fileheader", "dataLength")
		if err != nil {
			return nil, err
		}
		infos = append(infos, record.ComponentInfo{
			SubheaderLength: uint32(subLen),
			DataLength:      uint64(dataLen),
		})
	}
	return infos, nil
}

func writeComponentInfoArray(c *cursor, kind record.SegmentKind, countWidth int, infos []record.ComponentInfo) error {
	widths := componentInfoWidths[kind]
	if err := c.writeInt(countWidth, int64(len(infos))); err != nil {
		return err
	}
	for _, ci := range infos {
		if err := c.writeInt(widths[0], int64(ci.SubheaderLength)); err != nil {
			return err
		}
		if err := c.writeInt(widths[1], int64(ci.DataLength)); err != nil {
			return err
		}
	}
	return nil
}

// readFileHeader reads the complete NITF file header, including the
// ComponentInfo arrays and the file-level extension sections. v must already
// have been determined by DetectVersion; the 9-byte magic itself is not
// re-read here.
func readFileHeader(c *cursor, v record.Version, registry *tre.Registry, strict bool, warnings *[]string) (*record.FileHeader, error) {
	h, err := record.NewFileHeader(v)
	if err != nil {
		return nil, err
	}

	if h.ComplierLevel, err = c.readField(2, field.BCSN, "fileheader", "complierLevel"); err != nil {
		return nil, err
	}
	if h.SystemType, err = c.readField(4, field.BCSA, "fileheader", "systemType"); err != nil {
		return nil, err
	}
	if h.OriginatingStation, err = c.readField(10, field.BCSAPlus, "fileheader", "originatingStation"); err != nil {
		return nil, err
	}
	if h.DateTime, err = c.readField(14, field.BCSAPlus, "fileheader", "dateTime"); err != nil {
		return nil, err
	}
	if h.Title, err = c.readField(80, field.BCSAPlus, "fileheader", "title"); err != nil {
		return nil, err
	}
	if h.Security, err = readFileSecurity(c, v, "fileheader"); err != nil {
		return nil, err
	}
	if h.Encrypted, err = c.readField(1, field.BCSN, "fileheader", "encrypted"); err != nil {
		return nil, err
	}
	if h.OriginatorName, err = c.readField(24, field.BCSAPlus, "fileheader", "originatorName"); err != nil {
		return nil, err
	}
	if h.OriginatorPhone, err = c.readField(18, field.BCSAPlus, "fileheader", "originatorPhone"); err != nil {
		return nil, err
	}

	fileLength, err := c.readInt(12, "fileheader", "fileLength")
	if err != nil {
		return nil, err
	}
	h.FileLength = uint64(fileLength)

	headerLength, err := c.readInt(6, "fileheader", "headerLength")
	if err != nil {
		return nil, err
	}
	h.HeaderLength = uint32(headerLength)

	if h.ImageInfo, err = readComponentInfoArray(c, record.KindImage, 3); err != nil {
		return nil, err
	}
	if h.GraphicInfo, err = readComponentInfoArray(c, record.KindGraphic, 3); err != nil {
		return nil, err
	}
	if v == record.Version20 {
		if h.LabelInfo, err = readComponentInfoArray(c, record.KindLabel, 3); err != nil {
			return nil, err
		}
	}
	if h.TextInfo, err = readComponentInfoArray(c, record.KindText, 3); err != nil {
		return nil, err
	}
	if h.DESInfo, err = readComponentInfoArray(c, record.KindDE, 3); err != nil {
		return nil, err
	}
	if h.RESInfo, err = readComponentInfoArray(c, record.KindRE, 3); err != nil {
		return nil, err
	}

	udh, _, err := readExtensionSection(c, registry, "fileheader", strict, warnings)
	if err != nil {
		return nil, err
	}
	h.UserDefinedHeader = udh

	xhd, _, err := readExtensionSection(c, registry, "fileheader", strict, warnings)
	if err != nil {
		return nil, err
	}
	h.ExtendedHeader = xhd

	return h, nil
}

// writeFileHeader writes the complete file header. HeaderLength and
// FileLength must already be populated on h by the writer's fixup pass;
// writeFileHeader serializes them as-is rather than recomputing them.
func writeFileHeader(c *cursor, h *record.FileHeader) error {
	if err := c.writeField(h.ComplierLevel); err != nil {
		return err
	}
	if err := c.writeField(h.SystemType); err != nil {
		return err
	}
	if err := c.writeField(h.OriginatingStation); err != nil {
		return err
	}
	if err := c.writeField(h.DateTime); err != nil {
		return err
	}
	if err := c.writeField(h.Title); err != nil {
		return err
	}
	if err := writeFileSecurity(c, h.Security); err != nil {
		return err
	}
	if err := c.writeField(h.Encrypted); err != nil {
		return err
	}
	if err := c.writeField(h.OriginatorName); err != nil {
		return err
	}
	if err := c.writeField(h.OriginatorPhone); err != nil {
		return err
	}
	if err := c.writeInt(12, int64(h.FileLength)); err != nil {
		return err
	}
	if err := c.writeInt(6, int64(h.HeaderLength)); err != nil {
		return err
	}
	if err := writeComponentInfoArray(c, record.KindImage, 3, h.ImageInfo); err != nil {
		return err
	}
	if err := writeComponentInfoArray(c, record.KindGraphic, 3, h.GraphicInfo); err != nil {
		return err
	}
	if h.Version == record.Version20 {
		if err := writeComponentInfoArray(c, record.KindLabel, 3, h.LabelInfo); err != nil {
			return err
		}
	}
	if err := writeComponentInfoArray(c, record.KindText, 3, h.TextInfo); err != nil {
		return err
	}
	if err := writeComponentInfoArray(c, record.KindDE, 3, h.DESInfo); err != nil {
		return err
	}
	if err := writeComponentInfoArray(c, record.KindRE, 3, h.RESInfo); err != nil {
		return err
	}
	if err := writeExtensionSection(c, h.UserDefinedHeader, 0); err != nil {
		return err
	}
	if err := writeExtensionSection(c, h.ExtendedHeader, 0); err != nil {
		return err
	}
	return nil
}
