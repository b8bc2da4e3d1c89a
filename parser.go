// Package nitf implements the NITF 2.0/2.1 and NSIF 1.0 record engine: magic
// detection, the full file/subheader wire format, the TRE overflow
// merge/unmerge pass, and the top-level Parse/Write orchestration.
package nitf

import (
	"fmt"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/ioif"
	"github.com/ngageoint/six-library-sub016/record"
	"github.com/ngageoint/six-library-sub016/tre"
)

// ParseOptions controls Parse's failure-tolerance mode.
type ParseOptions struct {
	// Registry supplies the TRE descriptors used to decode extension
	// sections. If nil, DefaultRegistry() is used.
	Registry *tre.Registry
	// Strict aborts the parse on the first recoverable failure (malformed
	// TRE, unknown tag, inconsistent offsets). When false, failures are
	// recorded on Record.Warnings and parsing continues on a best-effort
	// basis, per spec.md §7's two failure modes.
	Strict bool
}

// Parse reads a complete NITF/NSIF file from h: magic detection, the file
// header (including its ComponentInfo arrays), every segment's subheader in
// file order, and the unmerge of any TRE_OVERFLOW DES back into its host
// section's extensions. Every segment's raw data payload is read into
// memory (Segment.Data, or the DE/RE subheader's own Data field); the image
// I/O engine in package imageio decodes pixel blocks out of that buffer on
// demand rather than re-reading the handle.
func Parse(h ioif.Handle, opts ParseOptions) (*record.Record, error) {
	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	v, err := DetectVersion(h)
	if err != nil {
		return nil, err
	}
	if _, err := h.Seek(0, ioif.Set); err != nil {
		return nil, errs.Wrap(errs.Io, 0, "", "", err)
	}

	c := newCursor(h, 0)
	// Re-read the 9-byte magic the cursor now owns the offset for.
	if _, err := c.readRaw(9, "fileheader", "magic"); err != nil {
		return nil, err
	}

	rec, err := record.New(v)
	if err != nil {
		return nil, err
	}
	var warnings []string

	fh, err := readFileHeader(c, v, registry, opts.Strict, &warnings)
	if err != nil {
		return nil, err
	}
	rec.Header = fh

	// HeaderLength counts bytes after the 9-byte magic, matching how
	// writeFileHeader computes it; the declared value should already equal
	// c.offset-9 for a well-formed file, but the parser trusts whichever is
	// larger so a short subheader table doesn't truncate a later segment.
	offset := 9 + int64(fh.HeaderLength)
	if offset < c.offset {
		offset = c.offset
	}
	c.offset = offset
	if _, err := h.Seek(offset, ioif.Set); err != nil {
		return nil, errs.Wrap(errs.Io, offset, "", "", err)
	}

	readOne := func(kind record.SegmentKind, ci record.ComponentInfo) (*record.Segment, error) {
		start := c.offset
		seg := &record.Segment{Kind: kind, Offset: start}

		switch kind {
		case record.KindImage:
			img, err := readImageSubheader(c, v, registry, opts.Strict, &warnings)
			if err != nil {
				return nil, err
			}
			seg.Image = img
		case record.KindGraphic:
			g, err := readGraphicSubheader(c, v, registry, opts.Strict, &warnings)
			if err != nil {
				return nil, err
			}
			seg.Graphic = g
		case record.KindLabel:
			l, err := readLabelSubheader(c, v, registry, opts.Strict, &warnings)
			if err != nil {
				return nil, err
			}
			seg.Label = l
		case record.KindText:
			t, err := readTextSubheader(c, v, registry, opts.Strict, &warnings)
			if err != nil {
				return nil, err
			}
			seg.Text = t
		case record.KindDE:
			d, err := readDESubheader(c, v, registry, opts.Strict, &warnings)
			if err != nil {
				return nil, err
			}
			seg.DE = d
		case record.KindRE:
			r, err := readRESubheader(c, v)
			if err != nil {
				return nil, err
			}
			seg.RE = r
		}

		subheaderEnd := start + int64(ci.SubheaderLength)
		if ci.SubheaderLength > 0 && c.offset != subheaderEnd {
			msg := fmt.Sprintf("%s subheader consumed %d bytes, ComponentInfo declared %d", kind, c.offset-start, ci.SubheaderLength)
			if opts.Strict {
				return nil, errs.Wrap(errs.Structural, c.offset, kind.String(), "", fmt.Errorf("%s", msg))
			}
			warnings = append(warnings, msg)
			c.offset = subheaderEnd
			if _, err := h.Seek(subheaderEnd, ioif.Set); err != nil {
				return nil, errs.Wrap(errs.Io, subheaderEnd, "", "", err)
			}
		}

		dataEnd := subheaderEnd + int64(ci.DataLength)
		switch kind {
		case record.KindImage:
			// The block-oriented image I/O engine (package imageio) decodes
			// directly against this in-memory buffer rather than re-reading
			// the handle per block; see imageio's package doc.
			data, err := c.readRaw(int(ci.DataLength), "image", "data")
			if err != nil {
				return nil, err
			}
			seg.Data = data
		case record.KindDE:
			data, err := c.readRaw(int(ci.DataLength), "de", "data")
			if err != nil {
				return nil, err
			}
			seg.DE.Data = data
			seg.DE.DataLength = int64(len(data))
		case record.KindRE:
			data, err := c.readRaw(int(ci.DataLength), "re", "data")
			if err != nil {
				return nil, err
			}
			seg.RE.Data = data
			seg.RE.DataLength = int64(len(data))
		default:
			data, err := c.readRaw(int(ci.DataLength), kind.String(), "data")
			if err != nil {
				return nil, err
			}
			seg.Data = data
		}

		seg.End = dataEnd
		c.offset = dataEnd
		if _, err := h.Seek(dataEnd, ioif.Set); err != nil {
			return nil, errs.Wrap(errs.Io, dataEnd, "", "", err)
		}
		return seg, nil
	}

	for _, ci := range fh.ImageInfo {
		seg, err := readOne(record.KindImage, ci)
		if err != nil {
			return nil, err
		}
		rec.Images = append(rec.Images, seg)
	}
	for _, ci := range fh.GraphicInfo {
		seg, err := readOne(record.KindGraphic, ci)
		if err != nil {
			return nil, err
		}
		rec.Graphics = append(rec.Graphics, seg)
	}
	for _, ci := range fh.LabelInfo {
		seg, err := readOne(record.KindLabel, ci)
		if err != nil {
			return nil, err
		}
		rec.Labels = append(rec.Labels, seg)
	}
	for _, ci := range fh.TextInfo {
		seg, err := readOne(record.KindText, ci)
		if err != nil {
			return nil, err
		}
		rec.Texts = append(rec.Texts, seg)
	}
	for _, ci := range fh.DESInfo {
		seg, err := readOne(record.KindDE, ci)
		if err != nil {
			return nil, err
		}
		rec.DEs = append(rec.DEs, seg)
	}
	for _, ci := range fh.RESInfo {
		seg, err := readOne(record.KindRE, ci)
		if err != nil {
			return nil, err
		}
		rec.REs = append(rec.REs, seg)
	}

	if err := unmergeOverflow(rec); err != nil {
		if opts.Strict {
			return nil, err
		}
		warnings = append(warnings, err.Error())
	}

	rec.Warnings = warnings
	if err := rec.ValidateOffsets(); err != nil {
		if opts.Strict {
			return nil, err
		}
		rec.Warnings = append(rec.Warnings, err.Error())
	}

	return rec, nil
}
