package imageio

import "github.com/ngageoint/six-library-sub016/record"

// ApplyLUT expands a single pixel's raw index value through a band's
// look-up tables, one output byte per table. A band with Representation
// RGB/LUT carries three tables and expands a one-byte index into an R, G, B
// triple; a band with a single table remaps the index through it. Bands
// with no tables are returned untouched by the caller -- ApplyLUT is only
// ever invoked when len(band.LUTs) > 0.
func ApplyLUT(band record.BandInfo, index uint64) []byte {
	out := make([]byte, len(band.LUTs))
	for i, lut := range band.LUTs {
		idx := int(index)
		if idx < 0 || idx >= len(lut) {
			idx = 0
		}
		out[i] = lut[idx]
	}
	return out
}
