package nitf

import (
	"fmt"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/field"
	"github.com/ngageoint/six-library-sub016/record"
	"github.com/ngageoint/six-library-sub016/tre"
)

// readLabelSubheader reads a NITF 2.0 label segment subheader. Per spec.md's
// Open Questions resolution, a label part under 2.1/NSIF is rejected here
// with errs.Structural rather than silently accepted.
func readLabelSubheader(c *cursor, v record.Version, registry *tre.Registry, strict bool, warnings *[]string) (*record.LabelSubheader, error) {
	if v != record.Version20 {
		return nil, errs.Wrap(errs.Structural, c.offset, "label", "", fmt.Errorf("label segments are not legal under NITF 2.1/NSIF"))
	}

	h, err := record.NewLabelSubheader(v)
	if err != nil {
		return nil, err
	}

	if h.LabelID, err = c.readString(10, field.BCSA, "label", "labelID"); err != nil {
		return nil, err
	}
	if h.Security, err = readFileSecurity(c, v, "label"); err != nil {
		return nil, err
	}
	enc, err := c.readInt(1, "label", "encrypted")
	if err != nil {
		return nil, err
	}
	h.Encrypted = enc != 0
	if h.FontStyle, err = c.readString(1, field.BCSA, "label", "fontStyle"); err != nil {
		return nil, err
	}
	cw, err := c.readInt(2, "label", "cellWidth")
	if err != nil {
		return nil, err
	}
	h.CellWidth = int(cw)
	ch, err := c.readInt(2, "label", "cellHeight")
	if err != nil {
		return nil, err
	}
	h.CellHeight = int(ch)
	dlvl, err := c.readInt(3, "label", "displayLevel")
	if err != nil {
		return nil, err
	}
	h.DisplayLevel = int(dlvl)
	alvl, err := c.readInt(3, "label", "attachmentLevel")
	if err != nil {
		return nil, err
	}
	h.AttachmentLevel = int(alvl)
	lrow, err := c.readInt(5, "label", "locationRow")
	if err != nil {
		return nil, err
	}
	h.LocationRow = int(lrow)
	lcol, err := c.readInt(5, "label", "locationColumn")
	if err != nil {
		return nil, err
	}
	h.LocationColumn = int(lcol)
	textColor, err := c.readRaw(3, "label", "textColor")
	if err != nil {
		return nil, err
	}
	copy(h.TextColor[:], textColor)
	bgColor, err := c.readRaw(3, "label", "backgroundColor")
	if err != nil {
		return nil, err
	}
	copy(h.BackgroundColor[:], bgColor)

	ext, _, err := readExtensionSection(c, registry, "label", strict, warnings)
	if err != nil {
		return nil, err
	}
	h.ExtendedSection = ext

	return h, nil
}

func writeLabelSubheader(c *cursor, h *record.LabelSubheader) error {
	if err := c.writeString(10, field.BCSA, h.LabelID); err != nil {
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
	if err := c.writeString(1, field.BCSA, h.FontStyle); err != nil {
		return err
	}
	if err := c.writeInt(2, int64(h.CellWidth)); err != nil {
		return err
	}
	if err := c.writeInt(2, int64(h.CellHeight)); err != nil {
		return err
	}
	if err := c.writeInt(3, int64(h.DisplayLevel)); err != nil {
		return err
	}
	if err := c.writeInt(3, int64(h.AttachmentLevel)); err != nil {
		return err
	}
	if err := c.writeInt(5, int64(h.LocationRow)); err != nil {
		return err
	}
	if err := c.writeInt(5, int64(h.LocationColumn)); err != nil {
		return err
	}
	if err := c.writeRaw(h.TextColor[:]); err != nil {
		return err
	}
	if err := c.writeRaw(h.BackgroundColor[:]); err != nil {
		return err
	}
	return writeExtensionSection(c, h.ExtendedSection, 0)
}

func labelSubheaderEncodedLength(h *record.LabelSubheader) int {
	return 10 + h.Security.EncodedLength() + 1 + 1 + 2 + 2 + 3 + 3 + 5 + 5 + 3 + 3 + extensionSectionLength(h.ExtendedSection)
}
