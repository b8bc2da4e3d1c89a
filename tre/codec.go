package tre

import (
	"fmt"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/field"
)

// Decode materializes an Instance from raw bytes against descriptor d. The
// descriptor is walked entry by entry, consuming bytes as it goes; loops and
// conditionals may reference previously decoded field values by their
// unindexed key. Decode requires the descriptor to consume exactly
// len(data) bytes; callers (the Registry) are responsible for retrying
// alternate descriptions on a length mismatch.
func Decode(d *Descriptor, data []byte) (*Instance, error) {
	inst := NewInstance(d.Tag)
	inst.SetDescriptionID(d.DescriptionID)

	values := map[string]string{}
	pos := 0

	if err := decodeEntries(d.Entries, data, &pos, nil, values, inst); err != nil {
		return inst, err
	}

	if pos != len(data) {
		return inst, errs.Wrap(errs.Structural, int64(pos), "tre", d.Tag,
			fmt.Errorf("descriptor consumed %d of %d bytes", pos, len(data)))
	}

	return inst, nil
}

func decodeEntries(entries []Entry, data []byte, pos *int, idxPath []int, values map[string]string, inst *Instance) error {
	for _, e := range entries {
		switch e.Kind {
		case EntrySimple:
			key := e.Field.Key
			for _, i := range idxPath {
				key = loopKey(key, i)
			}

			length := e.Field.Length
			if *pos+length > len(data) {
				inst.markMalformed(*pos)
				return errs.Wrap(errs.Structural, int64(*pos), "tre", key,
					fmt.Errorf("field %q runs past end of TRE value (%d bytes remaining, need %d)", key, len(data)-*pos, length))
			}

			f, err := field.New(length, e.Field.Class)
			if err != nil {
				inst.markMalformed(*pos)
				return err
			}
			if err := f.SetBytes(data[*pos : *pos+length]); err != nil {
				inst.markMalformed(*pos)
				return errs.Wrap(errs.WrongClass, int64(*pos), "tre", key, err)
			}
			if err := checkRange(e.Field, f); err != nil {
				inst.markMalformed(*pos)
				return err
			}

			inst.Append(key, f)
			values[key] = f.GetString()
			*pos += length

		case EntryLoop:
			n, err := resolveCount(e.Count, values)
			if err != nil {
				return err
			}
			for i := 0; i < n; i++ {
				if err := decodeEntries(e.Body, data, pos, append(append([]int(nil), idxPath...), i), values, inst); err != nil {
					return err
				}
			}

		case EntryIf:
			ok, err := e.Predicate(values)
			if err != nil {
				return err
			}
			if ok {
				if err := decodeEntries(e.Then, data, pos, idxPath, values, inst); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func checkRange(spec FieldSpec, f *field.Field) error {
	if spec.RangeLo == "" && spec.RangeHi == "" {
		return nil
	}
	v, err := f.GetInteger()
	if err != nil {
		return nil // non-numeric content with a declared range is a class error, already caught
	}
	if spec.RangeLo != "" {
		var lo int64
		fmt.Sscanf(spec.RangeLo, "%d", &lo)
		if v < lo {
			return errs.Wrap(errs.Parse, -1, "tre", spec.Key, fmt.Errorf("value %d below range minimum %d", v, lo))
		}
	}
	if spec.RangeHi != "" {
		var hi int64
		fmt.Sscanf(spec.RangeHi, "%d", &hi)
		if v > hi {
			return errs.Wrap(errs.Parse, -1, "tre", spec.Key, fmt.Errorf("value %d above range maximum %d", v, hi))
		}
	}
	return nil
}

// Encode serializes inst back to its on-disk bytes, in iteration order. This
// is a straight concatenation of each field's raw bytes: iteration order is
// guaranteed (by Decode, and by any constructor going through Instance.Append)
// to match on-disk layout, so no descriptor walk is needed to re-encode.
func Encode(inst *Instance) []byte {
	buf := make([]byte, 0, inst.Len())
	for _, e := range inst.order {
		buf = append(buf, e.field.Bytes()...)
	}
	return buf
}

// ComputedLength returns the descriptor's on-disk length given a set of
// already-known field values (e.g. to size a new instance before encoding).
func ComputedLength(d *Descriptor, values map[string]string) (int, error) {
	return computedLength(d.Entries, values)
}
