package core

import "fmt"

// Domain is an ordered, finite sequence of values sharing a single type tag
// (for example "colors" or "luminosity"). Iteration order is significant
// and stable: algorithms rely on it for deterministic value ordering.
//
// A Domain is immutable after construction and safe to share by reference.
type Domain struct {
	name    string
	typeTag string
	values  []Value
}

// NewDomain builds a Domain from the given ordered values.
// The values slice is copied; the caller keeps ownership of its slice.
// Returns ErrEmptyName when name is empty and ErrEmptyDomain when no value
// is supplied.
func NewDomain(name, typeTag string, values ...Value) (*Domain, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if len(values) == 0 {
		return nil, ErrEmptyDomain
	}
	vals := make([]Value, len(values))
	copy(vals, values)

	return &Domain{name: name, typeTag: typeTag, values: vals}, nil
}

// MustDomain is NewDomain that panics on error; intended for fixtures and
// examples where the inputs are literals.
func MustDomain(name, typeTag string, values ...Value) *Domain {
	d, err := NewDomain(name, typeTag, values...)
	if err != nil {
		panic(err)
	}

	return d
}

// Name returns the domain's name.
func (d *Domain) Name() string { return d.name }

// TypeTag returns the domain's value-type tag.
func (d *Domain) TypeTag() string { return d.typeTag }

// Len returns the number of values in the domain.
func (d *Domain) Len() int { return len(d.values) }

// At returns the i-th value in iteration order.
func (d *Domain) At(i int) Value { return d.values[i] }

// Values returns a copy of the ordered value sequence.
func (d *Domain) Values() []Value {
	vals := make([]Value, len(d.values))
	copy(vals, d.values)

	return vals
}

// IndexOf returns the position of v in the domain, or ErrValueNotInDomain.
// Complexity: O(n) — domains are small by construction.
func (d *Domain) IndexOf(v Value) (int, error) {
	for i, dv := range d.values {
		if dv == v {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %v in %s", ErrValueNotInDomain, v, d.name)
}

// Contains reports whether v is a member of the domain.
func (d *Domain) Contains(v Value) bool {
	_, err := d.IndexOf(v)

	return err == nil
}
