package tre

import "github.com/ngageoint/six-library-sub016/field"

// PIATGADescriptor is the built-in descriptor for the PIATGA (Profile for
// Imagery Access TARGET) TRE, grounded on
// _examples/original_source/c/nitf/shared/PIATGA.c. It is the TRE used in
// spec.md's seed test scenario: its eight fields total
// 15+15+2+5+15+3+38+3 = 96 bytes.
func PIATGADescriptor() *Descriptor {
	b := NewBuilder("PIATGA", "")
	b.Add(
		Simple(FieldSpec{Class: field.BCSAPlus, Length: 15, Label: "Target UTM", Key: "TGTUTM"}),
		Simple(FieldSpec{Class: field.BCSAPlus, Length: 15, Label: "Target ID", Key: "PIATGAID"}),
		Simple(FieldSpec{Class: field.BCSAPlus, Length: 2, Label: "Country Code", Key: "PIACTRY"}),
		Simple(FieldSpec{Class: field.BCSAPlus, Length: 5, Label: "Category Code", Key: "PIACAT"}),
		Simple(FieldSpec{Class: field.BCSAPlus, Length: 15, Label: "Target Geographic Coordinates", Key: "TGTGEO"}),
		Simple(FieldSpec{Class: field.BCSAPlus, Length: 3, Label: "Target Coordinate Datum", Key: "DATUM"}),
		Simple(FieldSpec{Class: field.BCSAPlus, Length: 38, Label: "Target Name", Key: "TGTNAME"}),
		Simple(FieldSpec{Class: field.BCSNPlus, Length: 3, Label: "Percent Coverage", Key: "PERCOVER", RangeLo: "0", RangeHi: "100"}),
	)
	d, err := b.Build()
	if err != nil {
		// The descriptor above is a fixed literal; a build failure here would
		// be a programming error in this file, not a runtime condition.
		panic(err)
	}
	return d
}

// RegisterBuiltins seeds r with every domain TRE shipped as source with this
// module. Extend this list as more TREs are added to the static table.
func RegisterBuiltins(r *Registry) {
	r.RegisterBuiltin(PIATGADescriptor())
}
