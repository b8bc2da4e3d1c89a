package nitf

import (
	"fmt"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/extension"
	"github.com/ngageoint/six-library-sub016/record"
)

// maxExtensionLength is the largest value the 5-digit extension-length field
// can hold; three bytes of that are always consumed by the overflow-index
// field itself, per the UDHDL/XHDL convention extensions_io.go implements.
const maxExtensionLength = 99999

// hostExtensions resolves a DESOFLW host-type string plus its 1-based
// DESITEM index to the Extensions it names, per spec.md §3
// "DataExtensionSubheader. Overflow semantics".
func hostExtensions(rec *record.Record, headerType string, item int) (*extension.Extensions, error) {
	switch headerType {
	case "UDHD":
		return rec.Header.UserDefinedHeader, nil
	case "XHD":
		return rec.Header.ExtendedHeader, nil
	case "UDID":
		if item < 1 || item > len(rec.Images) {
			return nil, fmt.Errorf("DESITEM %d out of range for %d image segments", item, len(rec.Images))
		}
		return rec.Images[item-1].Image.UserDefinedSection, nil
	case "IXSHD":
		if item < 1 || item > len(rec.Images) {
			return nil, fmt.Errorf("DESITEM %d out of range for %d image segments", item, len(rec.Images))
		}
		return rec.Images[item-1].Image.ExtendedSection, nil
	case "SXSHD":
		if item < 1 || item > len(rec.Graphics) {
			return nil, fmt.Errorf("DESITEM %d out of range for %d graphic segments", item, len(rec.Graphics))
		}
		return rec.Graphics[item-1].Graphic.ExtendedSection, nil
	case "TXSHD":
		if item < 1 || item > len(rec.Texts) {
			return nil, fmt.Errorf("DESITEM %d out of range for %d text segments", item, len(rec.Texts))
		}
		return rec.Texts[item-1].Text.ExtendedSection, nil
	default:
		return nil, fmt.Errorf("unrecognized DESOFLW host type %q", headerType)
	}
}

// unmergeOverflow relocates every TRE_OVERFLOW DES's carried TREs back onto
// their host section's extension list, appended in their original order.
// The overflow DES segments themselves remain in rec.DEs; they are not
// deleted, since a round-trip write must reproduce them for files whose
// extension sections still don't fit once merged back (the writer's own
// merge pass decides whether a fresh overflow DES is still required).
func unmergeOverflow(rec *record.Record) error {
	for _, seg := range rec.DEs {
		d := seg.DE
		if !d.IsOverflow() {
			continue
		}
		host, err := hostExtensions(rec, d.OverflowedHeaderType, d.DataItemOverflowed)
		if err != nil {
			return errs.Wrap(errs.Structural, seg.Offset, "de", d.TypeID, err)
		}
		for _, t := range d.SubheaderFields.Iter() {
			host.Append(t)
		}
	}
	return nil
}

// mergeOverflow relocates TREs off the back of any host extension list whose
// encoded length would exceed the 5-digit UDHDL/XHDL-style field, into fresh
// TRE_OVERFLOW DES segments appended to rec.DEs. Called by the writer's
// fixup pass before ComponentInfo is computed.
func mergeOverflow(rec *record.Record) error {
	type host struct {
		headerType string
		item       int
		ext        *extension.Extensions
	}
	hosts := []host{
		{"UDHD", 0, rec.Header.UserDefinedHeader},
		{"XHD", 0, rec.Header.ExtendedHeader},
	}
	for i, seg := range rec.Images {
		hosts = append(hosts,
			host{"UDID", i + 1, seg.Image.UserDefinedSection},
			host{"IXSHD", i + 1, seg.Image.ExtendedSection},
		)
	}
	for i, seg := range rec.Graphics {
		hosts = append(hosts, host{"SXSHD", i + 1, seg.Graphic.ExtendedSection})
	}
	for i, seg := range rec.Texts {
		hosts = append(hosts, host{"TXSHD", i + 1, seg.Text.ExtendedSection})
	}

	for _, hst := range hosts {
		overflowBudget := maxExtensionLength - extOverflowFieldWidth
		if hst.ext.EncodedLength() <= overflowBudget {
			continue
		}

		var relocated []extension.TRE
		entries := hst.ext.Iter()
		for hst.ext.EncodedLength() > overflowBudget && len(entries) > 0 {
			last := entries[len(entries)-1]
			idx := hst.ext.IndexOf(last)
			hst.ext.RemoveAt(idx)
			relocated = append(relocated, last)
			entries = hst.ext.Iter()
		}
		overflowExt := extension.New()
		for i := len(relocated) - 1; i >= 0; i-- {
			overflowExt.Append(relocated[i])
		}
		if hst.ext.EncodedLength() > overflowBudget {
			return errs.Wrap(errs.Structural, -1, hst.headerType, "",
				fmt.Errorf("extension section for %s still exceeds %d bytes after relocating every TRE", hst.headerType, overflowBudget))
		}

		desHeader, err := record.NewDESubheader(rec.Header.Version)
		if err != nil {
			return err
		}
		desHeader.TypeID = desOverflowTag
		desHeader.OverflowedHeaderType = hst.headerType
		desHeader.DataItemOverflowed = hst.item
		desHeader.SubheaderFields = overflowExt

		rec.DEs = append(rec.DEs, &record.Segment{Kind: record.KindDE, DE: desHeader})
	}
	return nil
}
