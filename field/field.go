// Package field implements the fixed-width typed strings that make up every
// NITF header and subheader: a declared length, a character class, and the
// raw bytes that back it.
package field

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ngageoint/six-library-sub016/errs"
)

// Class is the character class a Field's content must conform to.
type Class int

const (
	// BCSA is the Basic Character Set, alphanumeric subset.
	BCSA Class = iota
	// BCSAPlus additionally permits the extended punctuation/sign set.
	BCSAPlus
	// BCSN is the Basic Character Set, numeric subset (digits, sign).
	BCSN
	// BCSNPlus additionally permits extended numeric punctuation.
	BCSNPlus
	// Binary fields are opaque length-exact byte arrays; no class validation applies.
	Binary
)

// Field is a fixed-width value with a declared character class.
type Field struct {
	length  int
	class   Class
	bytes   []byte
	resize  bool // resizable, for length-driven TRE loop fields
}

// New constructs a Field of the given length and class, initialized to the
// class's "blank" representation (spaces for BCS-A, zeros for BCS-N, zero
// bytes for binary).
func New(length int, class Class) (*Field, error) {
	if length <= 0 {
		return nil, errs.Wrap(errs.InvalidArgument, -1, "", "", fmt.Errorf("field length must be > 0, got %d", length))
	}
	f := &Field{length: length, class: class}
	f.bytes = make([]byte, length)
	switch class {
	case BCSA, BCSAPlus:
		for i := range f.bytes {
			f.bytes[i] = ' '
		}
	case BCSN, BCSNPlus:
		for i := range f.bytes {
			f.bytes[i] = '0'
		}
	case Binary:
		// zero bytes already
	}
	return f, nil
}

// Length returns the declared width of the field in bytes.
func (f *Field) Length() int { return f.length }

// Class returns the field's declared character class.
func (f *Field) Class() Class { return f.class }

// Resizable reports whether this field was created as loop-driven and may
// change length between TRE instances.
func (f *Field) Resizable() bool { return f.resize }

// SetResizable marks the field as resizable, used for TRE loop-body fields
// whose width is computed per instance.
func (f *Field) SetResizable(v bool) { f.resize = v }

func classAllows(c Class, b byte) bool {
	switch c {
	case BCSA:
		return b >= 0x20 && b < 0x7F && b != '+' && b != '-'
	case BCSAPlus:
		return b >= 0x20 && b < 0x7F
	case BCSN:
		return (b >= '0' && b <= '9') || b == ' '
	case BCSNPlus:
		return (b >= '0' && b <= '9') || b == ' ' || b == '+' || b == '-' || b == '.'
	default:
		return true
	}
}

func (f *Field) validate(b []byte) error {
	if f.class == Binary {
		return nil
	}
	for _, c := range b {
		if !classAllows(f.class, c) {
			return errs.Wrap(errs.WrongClass, -1, "", "", fmt.Errorf("byte %q not allowed in class %v", c, f.class))
		}
	}
	return nil
}

// SetBytes replaces the raw content of the field. len(b) must equal the
// field's declared length unless the field is resizable, in which case the
// field's length is updated to len(b).
func (f *Field) SetBytes(b []byte) error {
	if !f.resize && len(b) != f.length {
		return errs.Wrap(errs.Truncation, -1, "", "", fmt.Errorf("expected %d bytes, got %d", f.length, len(b)))
	}
	if err := f.validate(b); err != nil {
		return err
	}
	f.bytes = append([]byte(nil), b...)
	f.length = len(b)
	return nil
}

// Bytes returns the raw backing bytes of the field.
func (f *Field) Bytes() []byte {
	return append([]byte(nil), f.bytes...)
}

// isBlank reports whether the field is entirely spaces (alpha classes) or
// entirely zeros and/or spaces (numeric classes) -- the "unset" sentinel
// permitted by several subheader schemas.
func (f *Field) isBlank() bool {
	var pad byte = ' '
	if f.class == BCSN || f.class == BCSNPlus {
		pad = '0'
	}
	for _, b := range f.bytes {
		if b != pad && b != ' ' {
			return false
		}
	}
	return true
}

// SetString sets alpha-class content, left-justified and space-padded. If
// the content (untrimmed) is wider than the field, Truncation is returned.
func (f *Field) SetString(s string) error {
	if f.class != Binary {
		if err := f.validate([]byte(s)); err != nil {
			return err
		}
	}
	if len(s) > f.length {
		return errs.Wrap(errs.Truncation, -1, "", "", fmt.Errorf("value %q wider than field of length %d", s, f.length))
	}
	buf := make([]byte, f.length)
	for i := range buf {
		buf[i] = ' '
	}
	copy(buf, s)
	f.bytes = buf
	return nil
}

// SetInteger sets numeric-class content, right-justified and zero-padded.
func (f *Field) SetInteger(v int64) error {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	width := f.length
	if neg {
		width--
	}
	if len(digits) > width {
		return errs.Wrap(errs.Truncation, -1, "", "", fmt.Errorf("value %d wider than field of length %d", v, f.length))
	}
	buf := make([]byte, f.length)
	for i := range buf {
		buf[i] = '0'
	}
	copy(buf[f.length-len(digits):], digits)
	if neg {
		buf[0] = '-'
	}
	f.bytes = buf
	return nil
}

// SetUnsigned sets numeric-class content from an unsigned value, right
// justified and zero padded.
func (f *Field) SetUnsigned(v uint64) error {
	digits := strconv.FormatUint(v, 10)
	if len(digits) > f.length {
		return errs.Wrap(errs.Truncation, -1, "", "", fmt.Errorf("value %d wider than field of length %d", v, f.length))
	}
	buf := make([]byte, f.length)
	for i := range buf {
		buf[i] = '0'
	}
	copy(buf[f.length-len(digits):], digits)
	f.bytes = buf
	return nil
}

// SetReal sets numeric-class content from a floating point value formatted
// to fit exactly within the field width, right justified.
func (f *Field) SetReal(v float64, decimals int) error {
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	if len(s) > f.length {
		return errs.Wrap(errs.Truncation, -1, "", "", fmt.Errorf("value %v wider than field of length %d", v, f.length))
	}
	buf := make([]byte, f.length)
	for i := range buf {
		buf[i] = ' '
	}
	copy(buf[f.length-len(s):], s)
	f.bytes = buf
	return nil
}

// GetString returns alpha-class content with trailing/leading space trimmed.
func (f *Field) GetString() string {
	return strings.TrimSpace(string(f.bytes))
}

// GetRawBytes returns the unprocessed backing bytes.
func (f *Field) GetRawBytes() []byte {
	return f.Bytes()
}

// GetInteger parses numeric-class content as a signed integer, or for binary
// fields of length 1/2/4/8, interprets the raw bytes as big-endian.
func (f *Field) GetInteger() (int64, error) {
	if f.class == Binary {
		u, err := f.GetUnsigned()
		if err != nil {
			return 0, err
		}
		return int64(u), nil
	}
	s := strings.TrimSpace(string(f.bytes))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errs.Wrap(errs.Parse, -1, "", "", err)
	}
	return v, nil
}

// GetUnsigned parses numeric-class content as an unsigned integer, or for
// binary fields of length 1/2/4/8, interprets the raw bytes as big-endian.
func (f *Field) GetUnsigned() (uint64, error) {
	if f.class == Binary {
		switch len(f.bytes) {
		case 1:
			return uint64(f.bytes[0]), nil
		case 2:
			return uint64(f.bytes[0])<<8 | uint64(f.bytes[1]), nil
		case 4:
			var v uint64
			for _, b := range f.bytes[:4] {
				v = v<<8 | uint64(b)
			}
			return v, nil
		case 8:
			var v uint64
			for _, b := range f.bytes[:8] {
				v = v<<8 | uint64(b)
			}
			return v, nil
		default:
			return 0, errs.Wrap(errs.Parse, -1, "", "", fmt.Errorf("binary field of length %d has no integer interpretation", len(f.bytes)))
		}
	}
	s := strings.TrimSpace(string(f.bytes))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errs.Wrap(errs.Parse, -1, "", "", err)
	}
	return v, nil
}

// GetReal parses numeric-class content as a floating point value.
func (f *Field) GetReal() (float64, error) {
	s := strings.TrimSpace(string(f.bytes))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errs.Wrap(errs.Parse, -1, "", "", err)
	}
	return v, nil
}

// IsUnset reports whether the field holds the class's blank sentinel value.
func (f *Field) IsUnset() bool {
	return f.isBlank()
}
