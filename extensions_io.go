package nitf

import (
	"fmt"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/extension"
	"github.com/ngageoint/six-library-sub016/field"
	"github.com/ngageoint/six-library-sub016/tre"
)

// An extension section is serialized as a 5-digit total length (the bytes
// consumed by the overflow-index field plus every TRE entry), a 3-digit
// overflow DES index, and then a sequence of (tag:6, length:5, value) TRE
// entries until the declared length is exhausted. A total length of zero
// means the section is empty and no overflow field follows.
const extOverflowFieldWidth = 3

// readExtensionSection reads one UDHD/XHD-style section starting at the
// cursor's current position. strict controls whether an unregistered tag or
// a length mismatch aborts the parse (errs.UnknownTRE / errs.Structural) or
// is tolerated by falling back to the generic opaque descriptor, with the
// warning appended to warnings.
func readExtensionSection(c *cursor, registry *tre.Registry, segKind string, strict bool, warnings *[]string) (*extension.Extensions, int, error) {
	ext := extension.New()

	total, err := c.readInt(5, segKind, "extensionLength")
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return ext, 0, nil
	}

	overflow, err := c.readInt(extOverflowFieldWidth, segKind, "extensionOverflow")
	if err != nil {
		return nil, 0, err
	}
	remaining := int(total) - extOverflowFieldWidth
	if remaining < 0 {
		return nil, 0, errs.Wrap(errs.Structural, c.offset, segKind, "extensions",
			fmt.Errorf("declared extension length %d shorter than overflow field", total))
	}

	for remaining > 0 {
		if remaining < 11 {
			return nil, 0, errs.Wrap(errs.Structural, c.offset, segKind, "extensions",
				fmt.Errorf("%d bytes remain in extension section, too few for a TRE header", remaining))
		}
		tag, err := c.readString(6, field.BCSA, segKind, "tag")
		if err != nil {
			return nil, 0, err
		}
		length, err := c.readInt(5, segKind, "treLength")
		if err != nil {
			return nil, 0, err
		}
		remaining -= 11
		if int(length) > remaining {
			return nil, 0, errs.Wrap(errs.Structural, c.offset, segKind, tag,
				fmt.Errorf("declared TRE length %d exceeds %d bytes remaining in section", length, remaining))
		}
		data, err := c.readRaw(int(length), segKind, tag)
		if err != nil {
			return nil, 0, err
		}
		remaining -= int(length)

		inst, err := tre.DecodeTRE(registry, tag, data, strict)
		if err != nil {
			if strict {
				return nil, 0, err
			}
			*warnings = append(*warnings, err.Error())
		}
		ext.Append(inst)
	}

	return ext, int(overflow), nil
}

// writeExtensionSection writes one UDHD/XHD-style section. overflowDESIndex
// is the 1-based index (into the record's DES list) of the DES holding any
// TREs relocated out of this section by the overflow pass, or 0 if none.
func writeExtensionSection(c *cursor, ext *extension.Extensions, overflowDESIndex int) error {
	treBytes := ext.EncodedLength()
	if treBytes == 0 {
		return c.writeInt(5, 0)
	}

	total := extOverflowFieldWidth + treBytes
	if total > 99999 {
		return errs.Wrap(errs.Structural, c.offset, "", "extensions",
			fmt.Errorf("extension section length %d exceeds 5-digit field width; TREs must be relocated to a DES first", total))
	}
	if err := c.writeInt(5, int64(total)); err != nil {
		return err
	}
	if err := c.writeInt(extOverflowFieldWidth, int64(overflowDESIndex)); err != nil {
		return err
	}
	for _, t := range ext.Iter() {
		if err := c.writeString(6, field.BCSA, t.Tag()); err != nil {
			return err
		}
		if err := c.writeInt(5, int64(t.Len())); err != nil {
			return err
		}
		if err := c.writeRaw(t.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
