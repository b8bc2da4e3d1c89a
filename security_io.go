package nitf

import (
	"github.com/ngageoint/six-library-sub016/field"
	"github.com/ngageoint/six-library-sub016/record"
)

func readFileSecurity(c *cursor, v record.Version, segKind string) (*record.FileSecurity, error) {
	fs, err := record.NewFileSecurity(v)
	if err != nil {
		return nil, err
	}
	for _, slot := range fs.FieldSlots() {
		if *slot == nil {
			continue // not present in this version
		}
		f, err := c.readField((*slot).Length(), field.BCSAPlus, segKind, "security")
		if err != nil {
			return nil, err
		}
		*slot = f
	}
	return fs, nil
}

func writeFileSecurity(c *cursor, fs *record.FileSecurity) error {
	for _, slot := range fs.FieldSlots() {
		if *slot == nil {
			continue
		}
		if err := c.writeField(*slot); err != nil {
			return err
		}
	}
	return nil
}
