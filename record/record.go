package record

import (
	"fmt"

	"github.com/ngageoint/six-library-sub016/errs"
)

// Record owns exactly one FileHeader plus ordered lists of segments by kind.
// Segment offsets are monotonically increasing and non-overlapping on
// serialize; segment counts match the corresponding FileHeader count.
type Record struct {
	Header   *FileHeader
	Images   []*Segment
	Graphics []*Segment
	Labels   []*Segment // only legal under NITF 2.0
	Texts    []*Segment
	DEs      []*Segment
	REs      []*Segment

	// Warnings accumulates recoverable parse failures when the parser is run
	// in warnings mode; empty when the parser ran in strict mode (any error
	// aborted) or when nothing went wrong.
	Warnings []string
}

// New returns an empty Record with a blank FileHeader of the given version.
func New(v Version) (*Record, error) {
	h, err := NewFileHeader(v)
	if err != nil {
		return nil, err
	}
	return &Record{Header: h}, nil
}

// AllSegments returns every segment across all six kinds, in file layout
// order (images, graphics, labels, texts, DEs, REs).
func (r *Record) AllSegments() []*Segment {
	var out []*Segment
	out = append(out, r.Images...)
	out = append(out, r.Graphics...)
	out = append(out, r.Labels...)
	out = append(out, r.Texts...)
	out = append(out, r.DEs...)
	out = append(out, r.REs...)
	return out
}

// ValidateOffsets checks that segment offsets are strictly increasing and
// non-overlapping, and that FileHeader counts match the segment lists --
// spec.md's "Segment ordering" and "Record" invariants.
func (r *Record) ValidateOffsets() error {
	if len(r.Images) != r.Header.NUMI() {
		return errs.Wrap(errs.Structural, -1, "record", "NUMI", fmt.Errorf("NUMI %d != %d image segments", r.Header.NUMI(), len(r.Images)))
	}
	if len(r.Graphics) != r.Header.NUMS() {
		return errs.Wrap(errs.Structural, -1, "record", "NUMS", fmt.Errorf("NUMS %d != %d graphic segments", r.Header.NUMS(), len(r.Graphics)))
	}
	if len(r.Labels) != r.Header.NUML() {
		return errs.Wrap(errs.Structural, -1, "record", "NUML", fmt.Errorf("NUML %d != %d label segments", r.Header.NUML(), len(r.Labels)))
	}
	if len(r.Texts) != r.Header.NUMT() {
		return errs.Wrap(errs.Structural, -1, "record", "NUMT", fmt.Errorf("NUMT %d != %d text segments", r.Header.NUMT(), len(r.Texts)))
	}
	if len(r.DEs) != r.Header.NUMDES() {
		return errs.Wrap(errs.Structural, -1, "record", "NUMDES", fmt.Errorf("NUMDES %d != %d DE segments", r.Header.NUMDES(), len(r.DEs)))
	}
	if len(r.REs) != r.Header.NUMRES() {
		return errs.Wrap(errs.Structural, -1, "record", "NUMRES", fmt.Errorf("NUMRES %d != %d RE segments", r.Header.NUMRES(), len(r.REs)))
	}

	segs := r.AllSegments()
	var prevEnd int64 = -1
	for _, s := range segs {
		if s.Offset < prevEnd {
			return errs.Wrap(errs.Structural, s.Offset, s.Kind.String(), "", fmt.Errorf("segment offset %d overlaps prior segment ending at %d", s.Offset, prevEnd))
		}
		if s.End < s.Offset {
			return errs.Wrap(errs.Structural, s.Offset, s.Kind.String(), "", fmt.Errorf("segment end %d precedes its offset %d", s.End, s.Offset))
		}
		prevEnd = s.End
	}
	return nil
}
