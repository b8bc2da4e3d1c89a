// Package tre implements the Tagged Record Extension plug-in system: a
// descriptor mini-DSL describing a TRE's on-disk layout, a registry mapping
// tag to descriptor, and TRE instances materialized from (or serialized to)
// raw bytes.
package tre

import (
	"fmt"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/field"
)

// CountSourceKind distinguishes how a Loop entry determines its repeat count.
type CountSourceKind int

const (
	// CountLiteral repeats a fixed number of times.
	CountLiteral CountSourceKind = iota
	// CountPriorField reads the repeat count from a previously decoded field.
	CountPriorField
	// CountComputed derives the repeat count from a function over previously decoded values.
	CountComputed
)

// CountSource describes how many times a Loop entry's body repeats.
type CountSource struct {
	Kind      CountSourceKind
	Literal   int
	FieldName string
	Compute   func(values map[string]string) (int, error)
}

// FieldSpec describes one simple (non-repeating, non-conditional) field in a
// TRE descriptor.
type FieldSpec struct {
	Class     field.Class
	Length    int
	Label     string
	Key       string
	RangeLo   string // optional; numeric-range validation, both ends empty means unranged
	RangeHi   string
}

// EntryKind distinguishes the three entry shapes a TRE descriptor is built from.
type EntryKind int

const (
	EntrySimple EntryKind = iota
	EntryLoop
	EntryIf
)

// Entry is one node of a TRE descriptor: a simple field, a loop, or a
// conditional, mirroring spec.md's tagged-sum-type redesign of the source's
// function-pointer TREDescription arrays.
type Entry struct {
	Kind EntryKind

	// EntrySimple
	Field FieldSpec

	// EntryLoop
	Count CountSource
	Body  []Entry

	// EntryIf
	Predicate func(values map[string]string) (bool, error)
	Then      []Entry
}

// Simple builds a simple-field entry.
func Simple(spec FieldSpec) Entry {
	return Entry{Kind: EntrySimple, Field: spec}
}

// Loop builds a repeating-group entry.
func Loop(count CountSource, body ...Entry) Entry {
	return Entry{Kind: EntryLoop, Count: count, Body: body}
}

// If builds a conditional entry.
func If(predicate func(values map[string]string) (bool, error), then ...Entry) Entry {
	return Entry{Kind: EntryIf, Predicate: predicate, Then: then}
}

// Descriptor is an ordered sequence of entries describing one TRE's on-disk
// layout, optionally disambiguated from other descriptors sharing the same
// tag by a description ID.
type Descriptor struct {
	Tag           string
	DescriptionID string
	Entries       []Entry
}

// Builder incrementally constructs a Descriptor, validating key uniqueness
// and well-formedness as entries are added -- the declarative alternative to
// hand-coded descriptor arrays that spec.md's design notes call for.
type Builder struct {
	tag           string
	descriptionID string
	entries       []Entry
	seenKeys      map[string]bool
	err           error
}

// NewBuilder starts a Descriptor under construction for the given tag.
func NewBuilder(tag, descriptionID string) *Builder {
	return &Builder{tag: tag, descriptionID: descriptionID, seenKeys: map[string]bool{}}
}

func (b *Builder) checkKeys(entries []Entry, insideLoop bool) {
	for _, e := range entries {
		switch e.Kind {
		case EntrySimple:
			if !insideLoop {
				if b.seenKeys[e.Field.Key] {
					b.err = fmt.Errorf("tre %s: duplicate field key %q outside loop", b.tag, e.Field.Key)
					return
				}
				b.seenKeys[e.Field.Key] = true
			}
			if e.Field.Length <= 0 {
				b.err = fmt.Errorf("tre %s: field %q has non-positive length", b.tag, e.Field.Key)
				return
			}
		case EntryLoop:
			b.checkKeys(e.Body, true)
		case EntryIf:
			b.checkKeys(e.Then, insideLoop)
		}
		if b.err != nil {
			return
		}
	}
}

// Add appends entries to the descriptor under construction.
func (b *Builder) Add(entries ...Entry) *Builder {
	if b.err != nil {
		return b
	}
	b.checkKeys(entries, false)
	b.entries = append(b.entries, entries...)
	return b
}

// Build finalizes the descriptor, or returns the first validation error
// encountered during Add.
func (b *Builder) Build() (*Descriptor, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &Descriptor{Tag: b.tag, DescriptionID: b.descriptionID, Entries: b.entries}, nil
}

// computedLength returns the descriptor's total on-disk length given the
// values decoded so far (needed because loop counts and conditionals may
// depend on prior field values). Decoding does not call it; it backs
// Descriptor.ComputedLength.
func computedLength(entries []Entry, values map[string]string) (int, error) {
	total := 0
	for _, e := range entries {
		switch e.Kind {
		case EntrySimple:
			total += e.Field.Length
		case EntryLoop:
			n, err := resolveCount(e.Count, values)
			if err != nil {
				return 0, err
			}
			for i := 0; i < n; i++ {
				l, err := computedLength(e.Body, values)
				if err != nil {
					return 0, err
				}
				total += l
			}
		case EntryIf:
			ok, err := e.Predicate(values)
			if err != nil {
				return 0, err
			}
			if ok {
				l, err := computedLength(e.Then, values)
				if err != nil {
					return 0, err
				}
				total += l
			}
		}
	}
	return total, nil
}

func resolveCount(c CountSource, values map[string]string) (int, error) {
	switch c.Kind {
	case CountLiteral:
		return c.Literal, nil
	case CountPriorField:
		s, ok := values[c.FieldName]
		if !ok {
			return 0, errs.Wrap(errs.Structural, -1, "", c.FieldName, fmt.Errorf("loop count references undecoded field %q", c.FieldName))
		}
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
			return 0, errs.Wrap(errs.Parse, -1, "", c.FieldName, err)
		}
		return n, nil
	case CountComputed:
		return c.Compute(values)
	default:
		return 0, fmt.Errorf("unknown count source kind %d", c.Kind)
	}
}
