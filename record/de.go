package record

import "github.com/ngageoint/six-library-sub016/extension"

// DESubheader is the NITF Data Extension Segment subheader. When the
// segment is an overflow holder (see spec.md §3 "DataExtensionSubheader.
// Overflow semantics"), OverflowedHeaderType names the host section
// ("UDHD" or "XHD" in the file header, "UDID" or "IXSHD" in an image
// subheader, "SXSHD" in a graphic subheader, "TXSHD" in a text subheader)
// and DataItemOverflowed is the 1-based position of the host segment among
// segments of its kind (0 for the file header's sections). It does not
// record where the relocated TREs sat within the host's extension list.
type DESubheader struct {
	TypeID  string
	Version int
	Security *FileSecurity

	OverflowedHeaderType string // "" unless this DES is an overflow holder
	DataItemOverflowed   int

	SubheaderFields *extension.Extensions // TRE-shaped fields specific to TypeID

	DataLength int64
	Data       []byte // opaque; the engine never interprets DES payloads
}

// NewDESubheader allocates a blank DESubheader.
func NewDESubheader(v Version) (*DESubheader, error) {
	sec, err := NewFileSecurity(v)
	if err != nil {
		return nil, err
	}
	return &DESubheader{Security: sec, SubheaderFields: extension.New()}, nil
}

// IsOverflow reports whether this DES was created to hold a TRE relocated
// out of a host section whose extension-length field could not fit it.
func (d *DESubheader) IsOverflow() bool { return d.OverflowedHeaderType != "" }
