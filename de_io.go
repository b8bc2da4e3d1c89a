package nitf

import (
	"github.com/ngageoint/six-library-sub016/field"
	"github.com/ngageoint/six-library-sub016/record"
	"github.com/ngageoint/six-library-sub016/tre"
)

// desOverflowTag is the DESTAG value marking a DES as a TRE-overflow holder,
// per spec.md §3 "DataExtensionSubheader. Overflow semantics".
const desOverflowTag = "TRE_OVERFLOW"

func readDESubheader(c *cursor, v record.Version, registry *tre.Registry, strict bool, warnings *[]string) (*record.DESubheader, error) {
	h, err := record.NewDESubheader(v)
	if err != nil {
		return nil, err
	}

	if h.TypeID, err = c.readString(25, field.BCSA, "de", "typeID"); err != nil {
		return nil, err
	}
	ver, err := c.readInt(2, "de", "version")
	if err != nil {
		return nil, err
	}
	h.Version = int(ver)
	if h.Security, err = readFileSecurity(c, v, "de"); err != nil {
		return nil, err
	}

	if h.TypeID == desOverflowTag {
		if h.OverflowedHeaderType, err = c.readString(6, field.BCSA, "de", "overflowedHeaderType"); err != nil {
			return nil, err
		}
		item, err := c.readInt(3, "de", "dataItemOverflowed")
		if err != nil {
			return nil, err
		}
		h.DataItemOverflowed = int(item)
	}

	fields, _, err := readExtensionSection(c, registry, "de", strict, warnings)
	if err != nil {
		return nil, err
	}
	h.SubheaderFields = fields

	return h, nil
}

func writeDESubheader(c *cursor, h *record.DESubheader) error {
	if err := c.writeString(25, field.BCSA, h.TypeID); err != nil {
		return err
	}
	if err := c.writeInt(2, int64(h.Version)); err != nil {
		return err
	}
	if err := writeFileSecurity(c, h.Security); err != nil {
		return err
	}
	if h.TypeID == desOverflowTag {
		if err := c.writeString(6, field.BCSA, h.OverflowedHeaderType); err != nil {
			return err
		}
		if err := c.writeInt(3, int64(h.DataItemOverflowed)); err != nil {
			return err
		}
	}
	return writeExtensionSection(c, h.SubheaderFields, 0)
}

func deSubheaderEncodedLength(h *record.DESubheader) int {
	total := 25 + 2 + h.Security.EncodedLength()
	if h.TypeID == desOverflowTag {
		total += 6 + 3
	}
	total += extensionSectionLength(h.SubheaderFields)
	return total
}
