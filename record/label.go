package record

import "github.com/ngageoint/six-library-sub016/extension"

// LabelSubheader is the NITF label segment subheader. Labels are NITF
// 2.0-only; per spec.md's Open Questions resolution, encountering a label
// part under 2.1/NSIF is a parse error, not a silently-accepted legacy
// shim. Field widths are grounded on
// _examples/original_source/modules/c/nitf/include/nitf/LabelSubheader.h.
type LabelSubheader struct {
	LabelID         string
	Security        *FileSecurity
	Encrypted       bool
	FontStyle       string
	CellWidth       int
	CellHeight      int
	DisplayLevel    int
	AttachmentLevel int
	LocationRow     int
	LocationColumn  int
	TextColor       [3]byte // raw RGB
	BackgroundColor [3]byte // raw RGB

	ExtendedSection *extension.Extensions
}

// NewLabelSubheader allocates a blank LabelSubheader.
func NewLabelSubheader(v Version) (*LabelSubheader, error) {
	sec, err := NewFileSecurity(v)
	if err != nil {
		return nil, err
	}
	return &LabelSubheader{Security: sec, ExtendedSection: extension.New()}, nil
}
