package tre

import (
	"fmt"
	"sync"

	"github.com/ngageoint/six-library-sub016/errs"
	"github.com/ngageoint/six-library-sub016/field"
)

// Factory builds one alternate Descriptor for a tag. Plug-ins register
// factories rather than descriptors directly so construction can be
// deferred until the tag is actually seen.
type Factory func() (*Descriptor, error)

// Registry maps a TRE tag to its candidate descriptors: first the static
// built-in table (domain TREs shipped as source, see builtin.go), then
// registered plug-in providers, then -- if nothing matches -- a generic
// single opaque-binary-field descriptor sized to the instance's declared
// length.
type Registry struct {
	mu       sync.Mutex
	builtin  map[string][]*Descriptor
	plugins  map[string][]Factory
	warnings []string
}

// NewRegistry returns an empty registry. Use RegisterBuiltin to seed the
// static domain-TRE table and Register for plug-in-contributed descriptors.
func NewRegistry() *Registry {
	return &Registry{
		builtin: map[string][]*Descriptor{},
		plugins: map[string][]Factory{},
	}
}

// RegisterBuiltin adds a compile-time-known descriptor to the static table.
// Builtins are tried before any plug-in-registered factory.
func (r *Registry) RegisterBuiltin(d *Descriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builtin[d.Tag] = append(r.builtin[d.Tag], d)
}

// Register adds a plug-in-contributed descriptor factory for tag. Factories
// for a tag accumulate in registration order and are tried in that order
// after the builtins, so an earlier registration is tried first. Register
// does not detect conflicting registrations and records no warning for
// them.
func (r *Registry) Register(tag string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[tag] = append(r.plugins[tag], f)
}

// Warnings returns and clears the accumulated non-fatal warnings (plug-in
// factories that failed when Describe called them).
func (r *Registry) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	w := r.warnings
	r.warnings = nil
	return w
}

func (r *Registry) warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// Describe returns the candidate descriptors for tag, in try-order (builtin
// first, then plug-in), and whether any specific descriptor was found at
// all (as opposed to the generic opaque fallback).
func (r *Registry) Describe(tag string) (descs []*Descriptor, found bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	descs = append(descs, r.builtin[tag]...)
	for _, f := range r.plugins[tag] {
		d, err := f()
		if err != nil {
			r.warnf("tre %s: plug-in descriptor factory failed: %v", tag, err)
			continue
		}
		descs = append(descs, d)
	}
	return descs, len(descs) > 0
}

// genericDescriptor builds the fallback descriptor: a single opaque binary
// field spanning the TRE's entire declared length.
func genericDescriptor(tag string, length int) *Descriptor {
	return &Descriptor{
		Tag: tag,
		Entries: []Entry{
			Simple(FieldSpec{Class: field.Binary, Length: length, Label: "raw", Key: "RAW"}),
		},
	}
}

// DecodeTRE materializes a TRE instance for (tag, data), trying every
// candidate descriptor in turn and selecting the one whose computed length
// matches len(data) -- the DescriptionID of the winning descriptor is
// recorded on the instance. If no candidate is registered for tag, the
// generic opaque-binary fallback is used unless strict is set, in which
// case errs.UnknownTRE is returned. If candidates exist but none of them
// consume exactly len(data) bytes, the instance is reported malformed: tag,
// total length, and the offset of the first byte that failed to match any
// candidate.
func DecodeTRE(r *Registry, tag string, data []byte, strict bool) (*Instance, error) {
	descs, found := r.Describe(tag)
	if !found {
		if strict {
			return nil, errs.Wrap(errs.UnknownTRE, -1, "tre", tag, fmt.Errorf("no descriptor registered for tag %q", tag))
		}
		inst, err := Decode(genericDescriptor(tag, len(data)), data)
		return inst, err
	}

	var bestErr error
	bestOffset := -1
	for _, d := range descs {
		inst, err := Decode(d, data)
		if err == nil {
			return inst, nil
		}
		if nerr, ok := err.(*errs.Error); ok && inst != nil && inst.Malformed() {
			if bestOffset < inst.MalformedAt() {
				bestOffset = inst.MalformedAt()
				bestErr = nerr
			}
		} else if bestErr == nil {
			bestErr = err
		}
	}

	// None of the registered alternates matched; fall back to the generic
	// opaque field so a malformed TRE still yields a usable instance, but
	// flag it as malformed at the first byte that defeated every candidate.
	inst, _ := Decode(genericDescriptor(tag, len(data)), data)
	if bestOffset < 0 {
		bestOffset = 0
	}
	inst.markMalformed(bestOffset)
	return inst, errs.Wrap(errs.Structural, int64(bestOffset), "tre", tag,
		fmt.Errorf("no registered descriptor for tag %q matches declared length %d: %w", tag, len(data), bestErr))
}
