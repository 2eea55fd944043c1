package schema

import (
	"fmt"
	"reflect"
)

// TagKey is the struct tag that overrides a field's column name.
const TagKey = "delim"

// Field is one column of a record schema: the column name, the coercion from
// a raw cell to the field's value, and the rendering back to a cell.
type Field struct {
	Name   string
	index  int
	coerce coerceFunc
	render renderFunc
}

// Descriptor is the ordered field schema derived from a record struct type.
// Field order follows struct declaration order and is significant: it must
// match the file's column order exactly.
type Descriptor struct {
	typ    reflect.Type
	fields []Field
}

// ForType inspects a record struct type and returns its ordered field schema.
// Unexported fields and fields tagged `delim:"-"` are excluded. Every
// remaining field must have a type coercible from a single string cell, or
// the whole type is rejected with an InvalidTypeError.
func ForType(t reflect.Type) (*Descriptor, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return nil, &InvalidTypeError{Type: t, Reason: "record type must be a struct"}
	}

	d := &Descriptor{typ: t}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup(TagKey); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}
		coerce, render, err := coercerFor(sf.Type)
		if err != nil {
			return nil, &InvalidTypeError{Type: t, Reason: fmt.Sprintf("field %s: %v", sf.Name, err)}
		}
		d.fields = append(d.fields, Field{Name: name, index: i, coerce: coerce, render: render})
	}
	if len(d.fields) == 0 {
		return nil, &InvalidTypeError{Type: t, Reason: "record type has no readable fields"}
	}
	return d, nil
}

// TypeName returns the name of the record type the descriptor was built from.
func (d *Descriptor) TypeName() string {
	if d.typ.Name() != "" {
		return d.typ.Name()
	}
	return d.typ.String()
}

// Fieldnames returns the column names in schema order.
func (d *Descriptor) Fieldnames() []string {
	names := make([]string, len(d.fields))
	for i, f := range d.fields {
		names[i] = f.Name
	}
	return names
}

// Bind checks the file's fieldnames against the descriptor. The sequences
// must be equal in count, names, and order; anything else is a mismatch.
func (d *Descriptor) Bind(fieldnames []string, source string) error {
	want := d.Fieldnames()
	if len(fieldnames) == len(want) {
		equal := true
		for i := range want {
			if fieldnames[i] != want[i] {
				equal = false
				break
			}
		}
		if equal {
			return nil
		}
	}
	return &MismatchError{
		RecordType:   d.TypeName(),
		Source:       source,
		RecordFields: want,
		FileFields:   fieldnames,
	}
}

// Decode converts one row of raw cells into a record value. Cells are
// positional, one per schema field; the caller enforces arity before calling.
// A coercion failure is returned as the coercion's own error, untouched.
func (d *Descriptor) Decode(cells []string) (reflect.Value, error) {
	if len(cells) != len(d.fields) {
		return reflect.Value{}, fmt.Errorf("row has %d cells, schema %s has %d fields",
			len(cells), d.TypeName(), len(d.fields))
	}
	v := reflect.New(d.typ).Elem()
	for i, f := range d.fields {
		fv, err := f.coerce(cells[i])
		if err != nil {
			return reflect.Value{}, err
		}
		v.Field(f.index).Set(fv)
	}
	return v, nil
}

// Encode renders one record value into raw cells in schema order, using the
// canonical string form of each field (the inverse of Decode's coercion).
func (d *Descriptor) Encode(v reflect.Value) ([]string, error) {
	if v.Type() != d.typ {
		return nil, fmt.Errorf("cannot encode %s as %s", v.Type(), d.TypeName())
	}
	cells := make([]string, len(d.fields))
	for i, f := range d.fields {
		s, err := f.render(v.Field(f.index))
		if err != nil {
			return nil, fmt.Errorf("rendering field %s: %w", f.Name, err)
		}
		cells[i] = s
	}
	return cells, nil
}

// Include returns a descriptor restricted to the named fields, in the order
// given. Every name must exist in the schema.
func (d *Descriptor) Include(names []string) (*Descriptor, error) {
	byName := make(map[string]Field, len(d.fields))
	for _, f := range d.fields {
		byName[f.Name] = f
	}
	sub := &Descriptor{typ: d.typ}
	for _, name := range names {
		f, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("record type %s has no field named %q", d.TypeName(), name)
		}
		sub.fields = append(sub.fields, f)
	}
	if len(sub.fields) == 0 {
		return nil, fmt.Errorf("record type %s: empty field selection", d.TypeName())
	}
	return sub, nil
}

// Exclude returns a descriptor without the named fields, preserving schema
// order. Every name must exist in the schema.
func (d *Descriptor) Exclude(names []string) (*Descriptor, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = false
	}
	sub := &Descriptor{typ: d.typ}
	for _, f := range d.fields {
		if _, ok := drop[f.Name]; ok {
			drop[f.Name] = true
			continue
		}
		sub.fields = append(sub.fields, f)
	}
	for name, seen := range drop {
		if !seen {
			return nil, fmt.Errorf("record type %s has no field named %q", d.TypeName(), name)
		}
	}
	if len(sub.fields) == 0 {
		return nil, fmt.Errorf("record type %s: empty field selection", d.TypeName())
	}
	return sub, nil
}
