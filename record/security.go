// Package record implements the NITF data model: FileHeader, the five
// subheader kinds, segment wrappers, and the Record that owns them all.
package record

import "github.com/ngageoint/six-library-sub016/field"

// Version identifies which NITF/NSIF field-width table governs a Record.
type Version int

const (
	Version20  Version = 20
	Version21  Version = 21
	VersionNSIF Version = 210 // wire-compatible with 2.1; same width table
)

// is20 reports whether v selects the 2.0 width table; every other version
// uses the 2.1/NSIF table.
func (v Version) is20() bool { return v == Version20 }

// FileSecurity carries the fifteen classification fields shared by the file
// header and every subheader kind. Field widths differ between NITF 2.0 and
// 2.1/NSIF; NewFileSecurity selects the schema by version.
type FileSecurity struct {
	ClassificationSystem *field.Field // 2.1+ only
	Codewords             *field.Field
	ControlAndHandling    *field.Field
	ReleasingInstructions *field.Field
	DeclassType           *field.Field
	DeclassDate           *field.Field
	DeclassExemption      *field.Field
	Downgrade             *field.Field
	DowngradeDate         *field.Field
	ClassificationText    *field.Field
	ClassificationAuthorityType *field.Field
	ClassificationAuthority     *field.Field
	ClassificationReason        *field.Field
	SecuritySourceDate          *field.Field
	SecurityControlNumber       *field.Field
}

// fsWidths20/fsWidths21 give the widths of each FileSecurity field in
// declaration order, per NITF 2.0 and NITF 2.1/NSIF respectively. NITF 2.0
// has no classification-system field.
var fsWidths21 = []int{2, 11, 2, 20, 2, 8, 4, 1, 8, 43, 1, 40, 1, 8, 15}
var fsWidths20 = []int{0, 40, 1, 20, 2, 6, 4, 1, 6, 43, 1, 40, 1, 8, 15}

// NewFileSecurity allocates a blank FileSecurity for the given version.
func NewFileSecurity(v Version) (*FileSecurity, error) {
	widths := fsWidths21
	if v.is20() {
		widths = fsWidths20
	}
	fs := &FileSecurity{}
	targets := fs.FieldSlots()
	for i, t := range targets {
		if widths[i] == 0 {
			continue // not present in this version (e.g. 2.0 classification system)
		}
		f, err := field.New(widths[i], field.BCSAPlus)
		if err != nil {
			return nil, err
		}
		*t = f
	}
	return fs, nil
}

// FieldSlots returns pointers to every FileSecurity field in on-disk order,
// so the width tables and the parser/writer can walk them generically.
func (fs *FileSecurity) FieldSlots() []**field.Field {
	return []**field.Field{
		&fs.ClassificationSystem,
		&fs.Codewords,
		&fs.ControlAndHandling,
		&fs.ReleasingInstructions,
		&fs.DeclassType,
		&fs.DeclassDate,
		&fs.DeclassExemption,
		&fs.Downgrade,
		&fs.DowngradeDate,
		&fs.ClassificationText,
		&fs.ClassificationAuthorityType,
		&fs.ClassificationAuthority,
		&fs.ClassificationReason,
		&fs.SecuritySourceDate,
		&fs.SecurityControlNumber,
	}
}

// EncodedLength returns the total width of the present fields.
func (fs *FileSecurity) EncodedLength() int {
	total := 0
	for _, t := range fs.FieldSlots() {
		if *t != nil {
			total += (*t).Length()
		}
	}
	return total
}
