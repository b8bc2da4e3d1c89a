package nitf

import (
	"github.com/ngageoint/six-library-sub016/field"
	"github.com/ngageoint/six-library-sub016/record"
	"github.com/ngageoint/six-library-sub016/tre"
)

func readTextSubheader(c *cursor, v record.Version, registry *tre.Registry, strict bool, warnings *[]string) (*record.TextSubheader, error) {
	h, err := record.NewTextSubheader(v)
	if err != nil {
		return nil, err
	}

	if h.TextID, err = c.readString(7, field.BCSA, "text", "textID"); err != nil {
		return nil, err
	}
	alvl, err := c.readInt(3, "text", "attachmentLevel")
	if err != nil {
		return nil, err
	}
	h.AttachmentLevel = int(alvl)
	if h.DateTime, err = c.readString(14, field.BCSAPlus, "text", "dateTime"); err != nil {
		return nil, err
	}
	if h.Title, err = c.readString(80, field.BCSAPlus, "text", "title"); err != nil {
		return nil, err
	}
	if h.Security, err = readFileSecurity(c, v, "text"); err != nil {
		return nil, err
	}
	enc, err := c.readInt(1, "text", "encrypted")
	if err != nil {
		return nil, err
	}
	h.Encrypted = enc != 0
	if h.Format, err = c.readString(3, field.BCSA, "text", "format"); err != nil {
		return nil, err
	}

	ext, _, err := readExtensionSection(c, registry, "text", strict, warnings)
	if err != nil {
		return nil, err
	}
	h.ExtendedSection = ext

	return h, nil
}

func writeTextSubheader(c *cursor, h *record.TextSubheader) error {
	if err := c.writeString(7, field.BCSA, h.TextID); err != nil {
		return err
	}
	if err := c.writeInt(3, int64(h.AttachmentLevel)); err != nil {
		return err
	}
	if err := c.writeString(14, field.BCSAPlus, h.DateTime); err != nil {
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
	if err := c.writeString(3, field.BCSA, h.Format); err != nil {
		return err
	}
	return writeExtensionSection(c, h.ExtendedSection, 0)
}

func textSubheaderEncodedLength(h *record.TextSubheader) int {
	return 7 + 3 + 14 + 80 + h.Security.EncodedLength() + 1 + 3 + extensionSectionLength(h.ExtendedSection)
}
