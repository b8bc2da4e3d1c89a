package record

import "github.com/ngageoint/six-library-sub016/extension"

// GraphicSubheader is the NITF graphic segment subheader (CGM graphics).
type GraphicSubheader struct {
	GraphicID       string
	Name            string
	Security        *FileSecurity
	Encrypted       bool
	DisplayLevel    int
	AttachmentLevel int
	Location        string // row/col of graphic's origin point
	BoundLocation1  string
	Color           bool
	BoundLocation2  string
	Reserved        string

	ExtendedSection *extension.Extensions
}

// NewGraphicSubheader allocates a blank GraphicSubheader.
func NewGraphicSubheader(v Version) (*GraphicSubheader, error) {
	sec, err := NewFileSecurity(v)
	if err != nil {
		return nil, err
	}
	return &GraphicSubheader{Security: sec, ExtendedSection: extension.New()}, nil
}
