package tre

import "github.com/ngageoint/six-library-sub016/field"

// kv pairs an instantiated key with its decoded field, preserving the
// on-disk iteration order a loop's array-indexed keys were produced in.
type kv struct {
	key   string
	field *field.Field
}

// Instance is one materialized TRE: a tag, an optional description ID that
// disambiguates which alternate descriptor was selected, and the ordered
// mapping from instantiated key to Field. Keys produced inside a loop carry
// an index suffix in the internal "BASE[i]" form; RewrittenKeys exposes the
// "BASE_i" form for consumers that cannot handle brackets.
type Instance struct {
	tag           string
	descriptionID string
	order         []kv
	index         map[string]int // key -> position in order, last-wins for duplicate synthetic keys
	malformed     bool
	malformedAt   int // byte offset of the first field that failed to decode, -1 if well formed
}

// NewInstance creates an empty, well-formed TRE instance for tag.
func NewInstance(tag string) *Instance {
	return &Instance{tag: tag, index: map[string]int{}, malformedAt: -1}
}

// Tag returns the TRE's 6-character tag. Satisfies extension.TRE.
func (t *Instance) Tag() string { return t.tag }

// DescriptionID returns the disambiguating description ID, or "" if the tag
// had only one registered descriptor.
func (t *Instance) DescriptionID() string { return t.descriptionID }

// SetDescriptionID records which alternate descriptor was selected.
func (t *Instance) SetDescriptionID(id string) { t.descriptionID = id }

// Malformed reports whether decoding this instance failed partway through;
// MalformedAt gives the byte offset (relative to the start of the TRE's
// value bytes) of the first field that could not be decoded.
func (t *Instance) Malformed() bool   { return t.malformed }
func (t *Instance) MalformedAt() int  { return t.malformedAt }

func (t *Instance) markMalformed(offset int) {
	t.malformed = true
	t.malformedAt = offset
}

// Append adds a (key, field) pair at the end of the iteration order.
func (t *Instance) Append(key string, f *field.Field) {
	t.order = append(t.order, kv{key: key, field: f})
	t.index[key] = len(t.order) - 1
}

// Get returns the field stored under key, or nil.
func (t *Instance) Get(key string) *field.Field {
	if i, ok := t.index[key]; ok {
		return t.order[i].field
	}
	return nil
}

// Keys returns the instantiated keys in on-disk iteration order, in their
// internal "BASE[i]" form.
func (t *Instance) Keys() []string {
	out := make([]string, len(t.order))
	for i, e := range t.order {
		out[i] = e.key
	}
	return out
}

// Len returns the TRE's total encoded length in bytes: the sum of every
// field's width. Satisfies extension.TRE.
func (t *Instance) Len() int {
	total := 0
	for _, e := range t.order {
		total += e.field.Length()
	}
	return total
}

// Bytes returns the instance's on-disk encoding. Satisfies extension.TRE.
func (t *Instance) Bytes() []byte { return Encode(t) }

// Fields returns the ordered (key, field) pairs.
func (t *Instance) Fields() []struct {
	Key   string
	Field *field.Field
} {
	out := make([]struct {
		Key   string
		Field *field.Field
	}, len(t.order))
	for i, e := range t.order {
		out[i] = struct {
			Key   string
			Field *field.Field
		}{Key: e.key, Field: e.field}
	}
	return out
}
