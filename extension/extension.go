// Package extension implements Extensions: the ordered, duplicate-key
// mapping from TRE tag to TRE instance used for the user-defined and
// extended-header sections of every NITF subheader kind.
package extension

// TRE is the minimal surface extension needs from a TRE instance; the
// concrete type lives in package tre, which depends on extension, so the
// dependency is expressed the other way around here to avoid a cycle.
type TRE interface {
	Tag() string
	Len() int
	Bytes() []byte
}

// Extensions is an ordered, duplicate-key mapping from tag to TRE instance.
// Iteration order is insertion order, matching on-disk layout.
type Extensions struct {
	entries []TRE
}

// New returns an empty Extensions container.
func New() *Extensions {
	return &Extensions{}
}

// Append adds tre to the end of the container's iteration order.
func (e *Extensions) Append(t TRE) {
	e.entries = append(e.entries, t)
}

// Len returns the number of TRE instances in the container.
func (e *Extensions) Len() int {
	return len(e.entries)
}

// Iter returns the TRE instances in insertion order.
func (e *Extensions) Iter() []TRE {
	return append([]TRE(nil), e.entries...)
}

// Find returns the first TRE instance with the given tag, or nil if none exists.
func (e *Extensions) Find(tag string) TRE {
	for _, t := range e.entries {
		if t.Tag() == tag {
			return t
		}
	}
	return nil
}

// FindAll returns all TRE instances with the given tag, in insertion order.
func (e *Extensions) FindAll(tag string) []TRE {
	var out []TRE
	for _, t := range e.entries {
		if t.Tag() == tag {
			out = append(out, t)
		}
	}
	return out
}

// Remove deletes the first TRE instance with the given tag, returning it
// (or nil if no match).
func (e *Extensions) Remove(tag string) TRE {
	for i, t := range e.entries {
		if t.Tag() == tag {
			e.entries = append(e.entries[:i], e.entries[i+1:]...)
			return t
		}
	}
	return nil
}

// RemoveAt deletes the TRE instance at position index (0-based, in insertion
// order), returning it. Used by the overflow merge pass, which identifies
// the offending TRE by its index within the host section rather than by tag.
func (e *Extensions) RemoveAt(index int) TRE {
	if index < 0 || index >= len(e.entries) {
		return nil
	}
	t := e.entries[index]
	e.entries = append(e.entries[:index], e.entries[index+1:]...)
	return t
}

// InsertAt inserts t at position index in the iteration order; an
// out-of-range index appends.
func (e *Extensions) InsertAt(index int, t TRE) {
	if index < 0 || index > len(e.entries) {
		index = len(e.entries)
	}
	e.entries = append(e.entries, nil)
	copy(e.entries[index+1:], e.entries[index:])
	e.entries[index] = t
}

// IndexOf returns the position of tre within the iteration order, or -1.
func (e *Extensions) IndexOf(t TRE) int {
	for i, cur := range e.entries {
		if cur == t {
			return i
		}
	}
	return -1
}

// EncodedLength returns the total number of bytes this container occupies on
// disk when serialized as a sequence of (tag:6, length:5, bytes:length)
// entries.
func (e *Extensions) EncodedLength() int {
	total := 0
	for range e.entries {
		total += 6 + 5
	}
	for _, t := range e.entries {
		total += t.Len()
	}
	return total
}
