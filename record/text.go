package record

import "github.com/ngageoint/six-library-sub016/extension"

// TextSubheader is the NITF text segment subheader.
type TextSubheader struct {
	TextID          string
	AttachmentLevel int
	DateTime        string
	Title           string
	Security        *FileSecurity
	Encrypted       bool
	Format          string // "STA" (STANAG) or "USMTF" or "U8S" (UTF-8)

	ExtendedSection *extension.Extensions
}

// NewTextSubheader allocates a blank TextSubheader.
func NewTextSubheader(v Version) (*TextSubheader, error) {
	sec, err := NewFileSecurity(v)
	if err != nil {
		return nil, err
	}
	return &TextSubheader{Security: sec, ExtendedSection: extension.New()}, nil
}
