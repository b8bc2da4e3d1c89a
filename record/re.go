package record

// RESubheader is the NITF Reserved Extension Segment subheader: minimal,
// with an opaque payload. Field widths are grounded on
// _examples/original_source/c/nitf/include/nitf/RESubheader.h (the mainline
// widths; spec.md's Open Questions resolves the mainline-vs-vendored-nitro
// discrepancy in favor of mainline): filePartType=2, typeID=25, version=2,
// securityClass=1, subheaderFieldsLength=4.
type RESubheader struct {
	TypeID          string
	Version         int
	SecurityClass   byte
	Security        *FileSecurity
	SubheaderFields []byte // opaque, subheaderFieldsLength bytes

	DataLength int64
	Data       []byte // opaque
}

// NewRESubheader allocates a blank RESubheader.
func NewRESubheader(v Version) (*RESubheader, error) {
	sec, err := NewFileSecurity(v)
	if err != nil {
		return nil, err
	}
	return &RESubheader{Security: sec, SecurityClass: 'U'}, nil
}
