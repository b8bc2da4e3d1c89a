package record

import (
	"fmt"

	"github.com/ngageoint/six-library-sub016/dtg"
	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/extension"
)

// PixelValueType is the image subheader's PVTYPE field.
type PixelValueType string

const (
	PVTypeInt     PixelValueType = "INT"
	PVTypeSigned  PixelValueType = "SI"
	PVTypeReal    PixelValueType = "R"
	PVTypeComplex PixelValueType = "C"
	PVTypeBit     PixelValueType = "B"
)

// Representation is the image subheader's IREP field.
type Representation string

const (
	RepMono      Representation = "MONO"
	RepRGB       Representation = "RGB"
	RepRGBLUT    Representation = "RGB/LUT"
	RepMulti     Representation = "MULTI"
	RepNoDisplay Representation = "NODISPLAY"
	RepNVector   Representation = "NVECTOR"
	RepPolar     Representation = "POLAR"
)

// Compression is the image subheader's IC field.
type Compression string

const (
	CompNone          Compression = "NC"
	CompNoneMasked    Compression = "NM"
	CompBiLevel       Compression = "C1"
	CompBiLevelMasked Compression = "M1"
	CompJPEG          Compression = "C3"
	CompJPEGMasked    Compression = "M3"
	CompVQ            Compression = "C4"
	CompLosslessJPEG  Compression = "C5"
	CompLosslessJPEGM Compression = "M5"
	CompReserved      Compression = "C7"
	CompJPEG2000      Compression = "C8"
	CompDownsampled   Compression = "I1"
)

// Masked reports whether the compression code carries a leading mask table.
func (c Compression) Masked() bool {
	switch c {
	case CompNoneMasked, CompBiLevelMasked, CompJPEGMasked, CompLosslessJPEGM:
		return true
	default:
		return false
	}
}

// Mode is the image subheader's IMODE field: the block layout variant.
type Mode byte

const (
	ModeB Mode = 'B' // band sequential
	ModeP Mode = 'P' // band interleaved by pixel
	ModeR Mode = 'R' // band interleaved by row
	ModeS Mode = 'S' // band sequential, per-band block masks
)

// Justification is the image subheader's PJUST field.
type Justification byte

const (
	JustLeft  Justification = 'L'
	JustRight Justification = 'R'
)

// BandInfo describes one of an image segment's NBANDS band-info entries.
type BandInfo struct {
	Representation  string
	Subcategory     string
	FilterCondition string
	FilterCode      string
	NumLUTs         int
	EntriesPerLUT   int
	LUTs            [][]byte // NumLUTs tables, each EntriesPerLUT bytes, column-major on disk
}

// ImageSubheader is the NITF image segment subheader.
type ImageSubheader struct {
	ImageID      string
	DateTime     string
	TargetID     string
	Title        string
	Security     *FileSecurity
	Encrypted    bool
	Source       string

	Rows int
	Cols int

	PVType         PixelValueType
	Representation Representation
	Category       string
	ActualBPP      int
	Justification  Justification

	ICORDS  dtg.ICORDS
	IGEOLO  [4]dtg.Corner
	Comments []string

	Compression     Compression
	CompressionRate string

	Bands []BandInfo

	Mode Mode
	NBPR int // blocks per row
	NBPC int // blocks per column
	NPPBH int // pixels per block, horizontal
	NPPBV int // pixels per block, vertical
	NBPP  int // bits per pixel, on disk

	DisplayLevel    int
	AttachmentLevel int
	ILOC            string // "RRRRRCCCCC" row/col of attachment point
	Magnification   string

	UserDefinedSection *extension.Extensions
	ExtendedSection    *extension.Extensions
}

// NewImageSubheader allocates a blank ImageSubheader.
func NewImageSubheader(v Version) (*ImageSubheader, error) {
	sec, err := NewFileSecurity(v)
	if err != nil {
		return nil, err
	}
	return &ImageSubheader{
		Security:           sec,
		UserDefinedSection: extension.New(),
		ExtendedSection:    extension.New(),
		Justification:      JustRight,
	}, nil
}

// NBands returns NBANDS (or XBANDS, when NBANDS would have been the
// overflow sentinel 0) by simply counting Bands, per spec.md's invariant
// that the count of band-info entries equals NBANDS/XBANDS.
func (h *ImageSubheader) NBands() int { return len(h.Bands) }

// BytesPerPixel returns the container width in bytes for NBPP, rounded up to
// the next byte boundary.
func (h *ImageSubheader) BytesPerPixel() int {
	return (h.NBPP + 7) / 8
}

// Validate checks the invariants spec.md §3 "ImageSubheader" states.
func (h *ImageSubheader) Validate() error {
	if h.Mode == ModeB || h.Mode == ModeP || h.Mode == ModeR {
		if h.NPPBH <= 0 || h.NPPBV <= 0 {
			return errs.Wrap(errs.Structural, -1, "image", "NPPBH/NPPBV", fmt.Errorf("block dimensions must be > 0 for mode %c", h.Mode))
		}
	}
	if h.NBPR*h.NPPBH < h.Cols {
		return errs.Wrap(errs.Structural, -1, "image", "NBPR", fmt.Errorf("NBPR*NPPBH (%d) < cols (%d)", h.NBPR*h.NPPBH, h.Cols))
	}
	if h.NBPC*h.NPPBV < h.Rows {
		return errs.Wrap(errs.Structural, -1, "image", "NBPC", fmt.Errorf("NBPC*NPPBV (%d) < rows (%d)", h.NBPC*h.NPPBV, h.Rows))
	}
	if h.NBPP < 1 || h.NBPP > 64 {
		return errs.Wrap(errs.Structural, -1, "image", "NBPP", fmt.Errorf("NBPP %d out of range [1,64]", h.NBPP))
	}
	if h.ActualBPP > h.NBPP {
		return errs.Wrap(errs.Structural, -1, "image", "ABPP", fmt.Errorf("ABPP %d > NBPP %d", h.ActualBPP, h.NBPP))
	}
	return nil
}
