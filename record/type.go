// Package record implements runtime-generated record types: immutable,
// fixed-arity values that are addressable both by position, like a
// tuple, and by field name.
//
// A [Type] is built once with [NewType] from a type name and an ordered
// list of field names. It precomputes a name→position table, so every
// name-based access on its records is a single map lookup; no code is
// generated and no global state is touched. Values of a type are
// created through the type itself ([Type.New], [Type.Build],
// [Type.FromSlice], [Type.FromMap]) and are immutable from then on:
// [Record.Replace] returns a fresh value rather than mutating.
//
// NOTE record equality is structural over the stored values only, the
// same way two plain tuples compare: the declared type name does not
// participate. See [Record.Equal].
package record

import (
	"errors"
	"fmt"
	"go/token"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

var (
	// ErrInvalidTypeName is returned by NewType when the type name is
	// not a valid identifier.
	ErrInvalidTypeName = errors.New("invalid type name")

	// ErrInvalidFieldName is returned by NewType when a field name is
	// not a valid identifier or starts with an underscore (the
	// underscore namespace is reserved for rename-generated fields).
	ErrInvalidFieldName = errors.New("invalid field name")

	// ErrDuplicateFieldName is returned by NewType when the same field
	// name appears more than once.
	ErrDuplicateFieldName = errors.New("duplicate field name")

	// ErrMissingFieldValue is returned by construction when a declared
	// field receives no value.
	ErrMissingFieldValue = errors.New("missing field value")

	// ErrUnexpectedFieldValue is returned when a value is supplied for
	// something that is not a declared field, or for a field that has
	// already received a value.
	ErrUnexpectedFieldValue = errors.New("unexpected field value")

	// ErrArityMismatch is returned when a whole-record operation is
	// given the wrong number of values or targets.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrIndexOutOfRange is returned by Record.At for indexes outside
	// [0, Len).
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Type describes a record type: a name and an ordered set of unique
// field names. It is immutable after NewType returns and is safe for
// concurrent use. The number of fields fixes the arity of every record
// of the type.
type Type struct {
	name   string
	fields []string

	// index maps each field name to its position. It is built once at
	// factory time so that name-based access never scans the field
	// list.
	index map[string]int
}

// Option configures NewType.
type Option func(*typeOptions)

type typeOptions struct {
	rename bool
}

// Rename makes NewType replace any field name that would be rejected
// (not an identifier, keyword, leading underscore, or duplicate) with a
// positional name of the form "_<index>", instead of returning an
// error.
func Rename() Option {
	return func(o *typeOptions) {
		o.rename = true
	}
}

// NewType returns a new record type with the given name and field
// names, in order.
//
// The type name must be a valid Go identifier. Each field name must be
// a valid Go identifier, must not start with an underscore and must be
// distinct from all other field names; otherwise NewType fails with
// [ErrInvalidTypeName], [ErrInvalidFieldName] or [ErrDuplicateFieldName]
// (see [Rename] for the recovering alternative). An empty field list is
// legal and produces a zero-arity type.
//
// All validation happens here: a returned *Type is always well formed.
func NewType(name string, fields []string, opts ...Option) (*Type, error) {
	var o typeOptions
	for _, opt := range opts {
		opt(&o)
	}
	if !token.IsIdentifier(name) {
		return nil, fmt.Errorf("record: type name %q: %w", name, ErrInvalidTypeName)
	}
	fields = append([]string(nil), fields...)
	if o.rename {
		seen := make(map[string]bool, len(fields))
		for i, f := range fields {
			if !token.IsIdentifier(f) || strings.HasPrefix(f, "_") || seen[f] {
				f = "_" + strconv.Itoa(i)
				fields[i] = f
			}
			seen[f] = true
		}
	}
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		if !token.IsIdentifier(f) {
			return nil, fmt.Errorf("record: field name %q: %w", f, ErrInvalidFieldName)
		}
		if !o.rename && strings.HasPrefix(f, "_") {
			return nil, fmt.Errorf("record: field name %q: leading underscore is reserved: %w", f, ErrInvalidFieldName)
		}
		if _, ok := index[f]; ok {
			return nil, fmt.Errorf("record: field name %q: %w", f, ErrDuplicateFieldName)
		}
		index[f] = i
	}
	return &Type{name: name, fields: fields, index: index}, nil
}

// MustType is like [NewType] but panics on error. It simplifies
// package-level type declarations:
//
//	var point = record.MustType("Point", "x", "y")
func MustType(name string, fields ...string) *Type {
	t, err := NewType(name, fields)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseFields splits a comma- and/or space-separated field list, so
// that "x y" and "x, y" both parse to ["x", "y"]. It does no
// validation; pass the result to [NewType].
func ParseFields(s string) []string {
	return strings.Fields(strings.ReplaceAll(s, ",", " "))
}

// Name returns the type's name.
func (t *Type) Name() string {
	return t.name
}

// Fields returns a copy of the type's field names, in declared order.
func (t *Type) Fields() []string {
	return append([]string(nil), t.fields...)
}

// NumFields returns the type's arity: the number of fields, and hence
// the number of values held by every record of the type.
func (t *Type) NumFields() int {
	return len(t.fields)
}

// HasField reports whether name is one of the type's fields.
func (t *Type) HasField(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Index returns the position of the named field and whether the field
// exists.
func (t *Type) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// String returns the type's display form, "Name(f1, f2, ...)".
func (t *Type) String() string {
	return t.name + "(" + strings.Join(t.fields, ", ") + ")"
}

// New returns a new record holding the given values, one per field in
// declared order. It is shorthand for Build(values, nil), so all fields
// must be supplied.
func (t *Type) New(values ...any) (Record, error) {
	return t.Build(values, nil)
}

// Build returns a new record from a mix of positional and named
// values. Positional values bind to fields in declared order; named
// values bind by field name. Every field must receive exactly one
// value: Build fails with [ErrMissingFieldValue] if a field gets none,
// and with [ErrUnexpectedFieldValue] if there are more positional
// values than fields, if a named key is not a declared field, or if a
// field is supplied both positionally and by name.
func (t *Type) Build(positional []any, named map[string]any) (Record, error) {
	if len(positional) > len(t.fields) {
		return Record{}, fmt.Errorf("record: %s takes %d values, got %d: %w",
			t.name, len(t.fields), len(positional), ErrUnexpectedFieldValue)
	}
	for name := range named {
		i, ok := t.index[name]
		if !ok {
			return Record{}, fmt.Errorf("record: %s has no field %q: %w", t.name, name, ErrUnexpectedFieldValue)
		}
		if i < len(positional) {
			return Record{}, fmt.Errorf("record: %s field %q supplied twice: %w", t.name, name, ErrUnexpectedFieldValue)
		}
	}
	values := make([]any, len(t.fields))
	copy(values, positional)
	for i := len(positional); i < len(t.fields); i++ {
		v, ok := named[t.fields[i]]
		if !ok {
			return Record{}, fmt.Errorf("record: %s needs a value for field %q: %w", t.name, t.fields[i], ErrMissingFieldValue)
		}
		values[i] = v
	}
	return Record{typ: t, values: values}, nil
}

// FromSlice returns a new record holding the values of the given
// slice, which must have exactly one value per field; otherwise it
// fails with [ErrArityMismatch]. The slice is copied, so the caller
// may keep mutating it.
func (t *Type) FromSlice(values []any) (Record, error) {
	if len(values) != len(t.fields) {
		return Record{}, fmt.Errorf("record: %s expects %d values, got %d: %w",
			t.name, len(t.fields), len(values), ErrArityMismatch)
	}
	return Record{typ: t, values: append([]any(nil), values...)}, nil
}

// FromMap returns a new record with each field bound to the value
// stored under its name in m. It fails like [Type.Build] with all
// values named.
func (t *Type) FromMap(m map[string]any) (Record, error) {
	return t.Build(nil, m)
}

// FromOrderedMap is like [Type.FromMap] for the ordered mapping
// produced by [Record.AsMap], completing the map round trip.
func (t *Type) FromOrderedMap(m *orderedmap.OrderedMap[string, any]) (Record, error) {
	named := make(map[string]any, m.Len())
	for p := m.Oldest(); p != nil; p = p.Next() {
		named[p.Key] = p.Value
	}
	return t.Build(nil, named)
}
