package record

import (
	"github.com/ngageoint/six-library-sub016/extension"
	"github.com/ngageoint/six-library-sub016/field"
)

// FileHeader is the NITF file header: the fixed leading fields, the
// classification group, the per-segment-kind ComponentInfo arrays, and the
// file-level user-defined and extended extension sections.
type FileHeader struct {
	Version Version

	ComplierLevel      *field.Field
	SystemType         *field.Field
	OriginatingStation *field.Field
	DateTime           *field.Field
	Title              *field.Field
	Security           *FileSecurity
	Encrypted          *field.Field
	BackgroundColor    *field.Field // not read or written by Parse/Write
	OriginatorName     *field.Field
	OriginatorPhone    *field.Field

	FileLength   uint64
	HeaderLength uint32

	ImageInfo   []ComponentInfo
	GraphicInfo []ComponentInfo
	LabelInfo   []ComponentInfo // NITF 2.0 only
	TextInfo    []ComponentInfo
	DESInfo     []ComponentInfo
	RESInfo     []ComponentInfo

	UserDefinedHeader *extension.Extensions
	ExtendedHeader    *extension.Extensions
}

// NewFileHeader allocates a blank FileHeader for the given version.
func NewFileHeader(v Version) (*FileHeader, error) {
	sec, err := NewFileSecurity(v)
	if err != nil {
		return nil, err
	}

	complierLevel, err := field.New(2, field.BCSN)
	if err != nil {
		return nil, err
	}
	systemType, err := field.New(4, field.BCSA)
	if err != nil {
		return nil, err
	}
	station, err := field.New(10, field.BCSAPlus)
	if err != nil {
		return nil, err
	}
	dtWidth := 14
	dt, err := field.New(dtWidth, field.BCSAPlus)
	if err != nil {
		return nil, err
	}
	title, err := field.New(80, field.BCSAPlus)
	if err != nil {
		return nil, err
	}
	encrypted, err := field.New(1, field.BCSN)
	if err != nil {
		return nil, err
	}
	oname, err := field.New(24, field.BCSAPlus)
	if err != nil {
		return nil, err
	}
	ophone, err := field.New(18, field.BCSAPlus)
	if err != nil {
		return nil, err
	}

	return &FileHeader{
		Version:            v,
		ComplierLevel:       complierLevel,
		SystemType:          systemType,
		OriginatingStation:  station,
		DateTime:            dt,
		Title:               title,
		Security:            sec,
		Encrypted:           encrypted,
		OriginatorName:      oname,
		OriginatorPhone:     ophone,
		UserDefinedHeader:   extension.New(),
		ExtendedHeader:      extension.New(),
	}, nil
}

// NUMI, NUMS, NUMT, NUMDES, NUMRES are derived from the length of the
// corresponding ComponentInfo slice rather than stored separately, so the
// spec's "counts equal the lengths of their arrays" invariant holds by
// construction.
func (h *FileHeader) NUMI() int   { return len(h.ImageInfo) }
func (h *FileHeader) NUMS() int   { return len(h.GraphicInfo) }
func (h *FileHeader) NUML() int   { return len(h.LabelInfo) }
func (h *FileHeader) NUMT() int   { return len(h.TextInfo) }
func (h *FileHeader) NUMDES() int { return len(h.DESInfo) }
func (h *FileHeader) NUMRES() int { return len(h.RESInfo) }

// ComputeFileLength returns header-length + sum of (subheader-length +
// data-length) across every ComponentInfo array, per spec.md's "Component
// sums" testable property.
func (h *FileHeader) ComputeFileLength() uint64 {
	total := uint64(h.HeaderLength)
	for _, infos := range [][]ComponentInfo{h.ImageInfo, h.GraphicInfo, h.LabelInfo, h.TextInfo, h.DESInfo, h.RESInfo} {
		for _, ci := range infos {
			total += uint64(ci.SubheaderLength) + ci.DataLength
		}
	}
	return total
}
