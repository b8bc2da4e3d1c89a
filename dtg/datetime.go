// Package dtg implements the NITF date/time formats and the ICORDS/IGEOLO
// geographic-coordinate conversions shared across file and image headers.
package dtg

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ngageoint/six-library-sub016/errs"
)

// Legacy20Layout is the NITF 2.0 file date/time format: DDHHMMSSZMONYY, e.g.
// "25121500ZJUL26" for the 25th of July 2026, 12:15:00Z. Always 14 characters.
const Legacy20Layout = "02150405ZJan06"

// Layout21 is the NITF 2.1/NSIF date/time format: CCYYMMDDhhmmss, e.g.
// "20260725121500". Always 14 characters.
const Layout21 = "20060102150405"

// Parse reads a NITF date/time field unconditionally trying both the 2.0 and
// 2.1/NSIF formats, per spec.md's design note "parse both unconditionally".
// Width alone does not disambiguate (both are 14 characters), so the caller
// should prefer ParseVersion when the file's version is already known.
func Parse(s string) (time.Time, error) {
	if t, err := ParseVersion(s, 21); err == nil {
		return t, nil
	}
	return ParseVersion(s, 20)
}

// ParseVersion parses s using the date/time layout for the given NITF
// version family (20 for NITF 2.0, 21 for NITF 2.1/NSIF; any other value is
// treated as 21).
func ParseVersion(s string, version int) (time.Time, error) {
	layout := Layout21
	if version == 20 {
		layout = Legacy20Layout
	}
	s = strings.ToUpper(strings.TrimSpace(s))
	// time.Parse's month abbreviations are title-cased ("Jul"); NITF legacy
	// date/times are upper-cased on disk ("JUL"), so re-case the month before
	// matching against the title-cased reference layout.
	t, err := time.ParseInLocation(layout, toTitleMonth(s), time.UTC)
	if err != nil {
		return time.Time{}, errs.Wrap(errs.Parse, -1, "", "", fmt.Errorf("date/time %q does not match NITF %d layout: %w", s, version, err))
	}
	return t, nil
}

// toTitleMonth title-cases a 3-letter month abbreviation embedded anywhere in
// an otherwise-uppercase legacy date/time string (e.g. "JUL" -> "Jul"),
// matching the case time.Parse expects for its "Jan" reference layout token.
func toTitleMonth(s string) string {
	months := []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
	out := s
	for _, m := range months {
		out = strings.ReplaceAll(out, strings.ToUpper(m), m)
	}
	return out
}

// Format renders t in the date/time layout for the given NITF version
// family, at the exact field width the target version expects (always 14
// characters for both families).
func Format(t time.Time, version int) string {
	layout := Layout21
	if version == 20 {
		layout = Legacy20Layout
	}
	s := t.UTC().Format(layout)
	if version == 20 {
		s = strings.ToUpper(s)
	}
	return s
}

// ICORDS is the coordinate-system indicator for an image subheader's IGEOLO field.
type ICORDS byte

const (
	// ICORDSNone indicates no corner coordinates are present.
	ICORDSNone ICORDS = 0
	// ICORDSUTM is Universal Transverse Mercator.
	ICORDSUTM ICORDS = 'U'
	// ICORDSUTMSouth is UTM in the southern hemisphere.
	ICORDSUTMSouth ICORDS = 'S'
	// ICORDSGeographic is geographic, expressed in degrees/minutes/seconds (DMS).
	ICORDSGeographic ICORDS = 'G'
	// ICORDSDecimal is geographic, expressed as signed decimal degrees rather than DMS.
	ICORDSDecimal ICORDS = 'D'
)

// Corner is one of an image segment's four IGEOLO corner points, in decimal degrees.
type Corner struct {
	Lat float64
	Lon float64
}

// ParseDMS parses a geographic DMS coordinate in the fixed-width IGEOLO
// form: latitude as DDMMSSH (7 chars, H in {N,S}) followed immediately by
// longitude as DDDMMSSH (8 chars, H in {E,W}). Each corner is therefore 15
// characters, matching ImageSubheader.IGEOLO's per-corner width for
// ICORDS=G.
func ParseDMS(s string) (Corner, error) {
	if len(s) != 15 {
		return Corner{}, errs.Wrap(errs.Parse, -1, "", "IGEOLO", fmt.Errorf("DMS corner must be 15 characters, got %d", len(s)))
	}
	lat, err := dmsToDecimal(s[0:2], s[2:4], s[4:6], s[6:7], 2)
	if err != nil {
		return Corner{}, err
	}
	lon, err := dmsToDecimal(s[7:10], s[10:12], s[12:14], s[14:15], 3)
	if err != nil {
		return Corner{}, err
	}
	return Corner{Lat: lat, Lon: lon}, nil
}

// FormatDMS renders c as a 15-character IGEOLO corner in DDMMSSH/DDDMMSSH form.
func FormatDMS(c Corner) string {
	return degreesToDMS(c.Lat, 2, "N", "S") + degreesToDMS(c.Lon, 3, "E", "W")
}

func dmsToDecimal(degStr, minStr, secStr, hemi string, degWidth int) (float64, error) {
	deg, err := strconv.Atoi(strings.TrimSpace(degStr))
	if err != nil {
		return 0, errs.Wrap(errs.Parse, -1, "", "IGEOLO", err)
	}
	min, err := strconv.Atoi(strings.TrimSpace(minStr))
	if err != nil {
		return 0, errs.Wrap(errs.Parse, -1, "", "IGEOLO", err)
	}
	sec, err := strconv.Atoi(strings.TrimSpace(secStr))
	if err != nil {
		return 0, errs.Wrap(errs.Parse, -1, "", "IGEOLO", err)
	}
	v := float64(deg) + float64(min)/60.0 + float64(sec)/3600.0
	switch strings.ToUpper(hemi) {
	case "S", "W":
		v = -v
	}
	return v, nil
}

func degreesToDMS(v float64, degWidth int, pos, neg string) string {
	hemi := pos
	if v < 0 {
		hemi = neg
		v = -v
	}
	totalSeconds := int(v*3600.0 + 0.5)
	deg := totalSeconds / 3600
	min := (totalSeconds % 3600) / 60
	sec := totalSeconds % 60
	return fmt.Sprintf("%0*d%02d%02d%s", degWidth, deg, min, sec, hemi)
}

// ParseCorner parses a 15-character IGEOLO corner according to the
// coordinate system given by ics: decimal-degrees form for ICORDSDecimal,
// DMS form for everything else (UTM corners are carried as raw DMS-shaped
// text; true UTM easting/northing conversion is out of scope).
func ParseCorner(ics ICORDS, s string) (Corner, error) {
	if ics == ICORDSDecimal {
		return ParseDecimal(s)
	}
	return ParseDMS(s)
}

// FormatCorner is the inverse of ParseCorner.
func FormatCorner(ics ICORDS, c Corner) (string, error) {
	if ics == ICORDSDecimal {
		return FormatDecimal(c), nil
	}
	return FormatDMS(c), nil
}

// ParseDecimal parses a geographic corner given as signed decimal degrees
// (ICORDS=D), fixed width ±DD.DDD (7 chars) followed by ±DDD.DDD (8 chars).
func ParseDecimal(s string) (Corner, error) {
	if len(s) != 15 {
		return Corner{}, errs.Wrap(errs.Parse, -1, "", "IGEOLO", fmt.Errorf("decimal corner must be 15 characters, got %d", len(s)))
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(s[0:7]), 64)
	if err != nil {
		return Corner{}, errs.Wrap(errs.Parse, -1, "", "IGEOLO", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(s[7:15]), 64)
	if err != nil {
		return Corner{}, errs.Wrap(errs.Parse, -1, "", "IGEOLO", err)
	}
	return Corner{Lat: lat, Lon: lon}, nil
}

// FormatDecimal renders c as a 15-character signed-decimal-degrees IGEOLO corner.
func FormatDecimal(c Corner) string {
	return fmt.Sprintf("%+07.3f%+08.3f", c.Lat, c.Lon)
}
