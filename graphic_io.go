package nitf

import (
	"github.com/ngageoint/six-library-sub016/field"
	"github.com/ngageoint/six-library-sub016/record"
	"github.com/ngageoint/six-library-sub016/tre"
)

func readGraphicSubheader(c *cursor, v record.Version, registry *tre.Registry, strict bool, warnings *[]string) (*record.GraphicSubheader, error) {
	h, err := record.NewGraphicSubheader(v)
	if err != nil {
		return nil, err
	}

	if h.GraphicID, err = c.readString(10, field.BCSA, "graphic", "graphicID"); err != nil {
		return nil, err
	}
	if h.Name, err = c.readString(20, field.BCSAPlus, "graphic", "name"); err != nil {
		return nil, err
	}
	if h.Security, err = readFileSecurity(c, v, "graphic"); err != nil {
		return nil, err
	}
	enc, err := c.readInt(1, "graphic", "encrypted")
	if err != nil {
		return nil, err
	}
	h.Encrypted = enc != 0

	// Reserved type-indicator field (SY) is fixed "SY" and not modeled.
	if _, err = c.readRaw(2, "graphic", "reservedType"); err != nil {
		return nil, err
	}

	dlvl, err := c.readInt(3, "graphic", "displayLevel")
	if err != nil {
		return nil, err
	}
	h.DisplayLevel = int(dlvl)
	alvl, err := c.readInt(3, "graphic", "attachmentLevel")
	if err != nil {
		return nil, err
	}
	h.AttachmentLevel = int(alvl)
	if h.Location, err = c.readString(10, field.BCSAPlus, "graphic", "location"); err != nil {
		return nil, err
	}
	if h.BoundLocation1, err = c.readString(10, field.BCSAPlus, "graphic", "boundLocation1"); err != nil {
		return nil, err
	}
	colorFlag, err := c.readString(1, field.BCSA, "graphic", "color")
	if err != nil {
		return nil, err
	}
	h.Color = colorFlag == "C"
	if h.BoundLocation2, err = c.readString(10, field.BCSAPlus, "graphic", "boundLocation2"); err != nil {
		return nil, err
	}
	if h.Reserved, err = c.readString(2, field.BCSAPlus, "graphic", "reserved"); err != nil {
		return nil, err
	}

	ext, _, err := readExtensionSection(c, registry, "graphic", strict, warnings)
	if err != nil {
		return nil, err
	}
	h.ExtendedSection = ext

	return h, nil
}

func writeGraphicSubheader(c *cursor, h *record.GraphicSubheader) error {
	if err := c.writeString(10, field.BCSA, h.GraphicID); err != nil {
		return err
	}
	if err := c.writeString(20, field.BCSAPlus, h.Name); err != nil {
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
	if err := c.writeRaw([]byte("SY")); err != nil {
		return err
	}
	if err := c.writeInt(3, int64(h.DisplayLevel)); err != nil {
		return err
	}
	if err := c.writeInt(3, int64(h.AttachmentLevel)); err != nil {
		return err
	}
	if err := c.writeString(10, field.BCSAPlus, h.Location); err != nil {
		return err
	}
	if err := c.writeString(10, field.BCSAPlus, h.BoundLocation1); err != nil {
		return err
	}
	color := "N"
	if h.Color {
		color = "C"
	}
	if err := c.writeString(1, field.BCSA, color); err != nil {
		return err
	}
	if err := c.writeString(10, field.BCSAPlus, h.BoundLocation2); err != nil {
		return err
	}
	if err := c.writeString(2, field.BCSAPlus, h.Reserved); err != nil {
		return err
	}
	return writeExtensionSection(c, h.ExtendedSection, 0)
}

func graphicSubheaderEncodedLength(h *record.GraphicSubheader) int {
	return 10 + 20 + h.Security.EncodedLength() + 1 + 2 + 3 + 3 + 10 + 10 + 1 + 10 + 2 + extensionSectionLength(h.ExtendedSection)
}
