package nitf

import (
	"github.com/ngageoint/six-library-sub016/field"
	"github.com/ngageoint/six-library-sub016/record"
)

// RE subheader field widths are grounded on
// _examples/original_source/c/nitf/include/nitf/RESubheader.h: filePartType
// is fixed "RE" (2 bytes, not separately modeled), typeID=25, version=2,
// securityClass=1, subheaderFieldsLength=4.
func readRESubheader(c *cursor, v record.Version) (*record.RESubheader, error) {
	h, err := record.NewRESubheader(v)
	if err != nil {
		return nil, err
	}

	if h.TypeID, err = c.readString(25, field.BCSA, "re", "typeID"); err != nil {
		return nil, err
	}
	ver, err := c.readInt(2, "re", "version")
	if err != nil {
		return nil, err
	}
	h.Version = int(ver)
	cls, err := c.readString(1, field.BCSA, "re", "securityClass")
	if err != nil {
		return nil, err
	}
	if cls != "" {
		h.SecurityClass = cls[0]
	}
	if h.Security, err = readFileSecurity(c, v, "re"); err != nil {
		return nil, err
	}
	fieldsLen, err := c.readInt(4, "re", "subheaderFieldsLength")
	if err != nil {
		return nil, err
	}
	if h.SubheaderFields, err = c.readRaw(int(fieldsLen), "re", "subheaderFields"); err != nil {
		return nil, err
	}

	return h, nil
}

func writeRESubheader(c *cursor, h *record.RESubheader) error {
	if err := c.writeString(25, field.BCSA, h.TypeID); err != nil {
		return err
	}
	if err := c.writeInt(2, int64(h.Version)); err != nil {
		return err
	}
	if err := c.writeString(1, field.BCSA, string(h.SecurityClass)); err != nil {
		return err
	}
	if err := writeFileSecurity(c, h.Security); err != nil {
		return err
	}
	if err := c.writeInt(4, int64(len(h.SubheaderFields))); err != nil {
		return err
	}
	return c.writeRaw(h.SubheaderFields)
}

func reSubheaderEncodedLength(h *record.RESubheader) int {
	return 25 + 2 + 1 + h.Security.EncodedLength() + 4 + len(h.SubheaderFields)
}
