package record

import (
	"fmt"
	"iter"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is an immutable, fixed-arity value of some [Type]. It holds
// one value per field, in declared field order, and can be read both
// by position ([Record.At], [Record.All]) and by field name
// ([Record.ByName]). No method mutates the receiver.
//
// The zero Record has no type and no values.
type Record struct {
	typ    *Type
	values []any
}

// Type returns the record's type, or nil for the zero Record.
func (r Record) Type() *Type {
	return r.typ
}

// Len returns the number of values held by the record.
func (r Record) Len() int {
	return len(r.values)
}

// At returns the i'th value, counting from zero in field order. It
// fails with [ErrIndexOutOfRange] if i is outside [0, Len).
func (r Record) At(i int) (any, error) {
	if i < 0 || i >= len(r.values) {
		return nil, fmt.Errorf("record: index %d out of range [0, %d): %w", i, len(r.values), ErrIndexOutOfRange)
	}
	return r.values[i], nil
}

// All returns an iterator over the record's values in field order.
// The iterator is restartable: ranging over it again yields the same
// values.
func (r Record) All() iter.Seq[any] {
	return func(yield func(any) bool) {
		for _, v := range r.values {
			if !yield(v) {
				return
			}
		}
	}
}

// Fields returns an iterator over (field name, value) pairs in field
// order.
func (r Record) Fields() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if r.typ == nil {
			return
		}
		for i, name := range r.typ.fields {
			if !yield(name, r.values[i]) {
				return
			}
		}
	}
}

// Values returns a copy of the record's values in field order.
func (r Record) Values() []any {
	return append([]any(nil), r.values...)
}

// ByName returns the value bound to the named field. The lookup goes
// through the type's precomputed name→position table. It fails with
// [ErrUnexpectedFieldValue] if the name is not a declared field.
func (r Record) ByName(name string) (any, error) {
	if r.typ != nil {
		if i, ok := r.typ.index[name]; ok {
			return r.values[i], nil
		}
	}
	return nil, fmt.Errorf("record: no field %q: %w", name, ErrUnexpectedFieldValue)
}

// Scan unpacks the record into the given targets, one per field in
// declared order. It fails with [ErrArityMismatch] unless exactly one
// target is given per field.
func (r Record) Scan(dsts ...*any) error {
	if len(dsts) != len(r.values) {
		return fmt.Errorf("record: cannot unpack %d values into %d targets: %w",
			len(r.values), len(dsts), ErrArityMismatch)
	}
	for i, d := range dsts {
		*d = r.values[i]
	}
	return nil
}

// AsMap returns a new ordered mapping from field name to value, in
// declared field order. The mapping is independent of the record:
// mutating it has no effect on the record's values.
func (r Record) AsMap() *orderedmap.OrderedMap[string, any] {
	m := orderedmap.New[string, any](len(r.values))
	for name, v := range r.Fields() {
		m.Set(name, v)
	}
	return m
}

// Replace returns a new record with the fields named in overrides
// bound to the override values and every other field copied from r.
// It fails with [ErrUnexpectedFieldValue] if an override key is not a
// declared field. The receiver is left unchanged.
func (r Record) Replace(overrides map[string]any) (Record, error) {
	var index map[string]int
	if r.typ != nil {
		index = r.typ.index
	}
	values := append([]any(nil), r.values...)
	for name, v := range overrides {
		i, ok := index[name]
		if !ok {
			return Record{}, fmt.Errorf("record: no field %q: %w", name, ErrUnexpectedFieldValue)
		}
		values[i] = v
	}
	return Record{typ: r.typ, values: values}, nil
}

// Equal reports whether r and o hold equal values at every position.
// Equality is structural over the value sequences only, the same way
// two plain tuples compare: records of differently named types are
// equal whenever their values are. Records of different arity are
// never equal.
func (r Record) Equal(o Record) bool {
	if len(r.values) != len(o.values) {
		return false
	}
	for i := range r.values {
		if !reflect.DeepEqual(r.values[i], o.values[i]) {
			return false
		}
	}
	return true
}

// Compare compares two records lexicographically position by position
// using cmp, which must return a negative number, zero or a positive
// number as x is less than, equal to or greater than y. If one record
// is a prefix of the other, the shorter is less.
func Compare(r1, r2 Record, cmp func(x, y any) int) int {
	for i := 0; i < len(r1.values) && i < len(r2.values); i++ {
		if c := cmp(r1.values[i], r2.values[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(r1.values) == len(r2.values):
		return 0
	case len(r1.values) < len(r2.values):
		return -1
	}
	return 1
}

// String returns the record's display form,
// "TypeName(f1=v1, f2=v2, ...)".
func (r Record) String() string {
	var b strings.Builder
	if r.typ == nil {
		return "Record()"
	}
	b.WriteString(r.typ.name)
	b.WriteByte('(')
	for i, v := range r.values {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", r.typ.fields[i], v)
	}
	b.WriteByte(')')
	return b.String()
}

// Unpack2 unpacks a two-field record into typed values. It fails with
// [ErrArityMismatch] if the record's arity is not 2, and with a
// wrapped [ErrUnexpectedFieldValue] if a stored value does not have
// the requested type. A nil stored value yields the zero value of the
// target type.
func Unpack2[A, B any](r Record) (A, B, error) {
	var (
		a A
		b B
	)
	if err := checkArity(r, 2); err != nil {
		return a, b, err
	}
	a, err := valueAs[A](r, 0)
	if err != nil {
		return a, b, err
	}
	b, err = valueAs[B](r, 1)
	return a, b, err
}

// Unpack3 is [Unpack2] for three-field records.
func Unpack3[A, B, C any](r Record) (A, B, C, error) {
	var (
		a A
		b B
		c C
	)
	if err := checkArity(r, 3); err != nil {
		return a, b, c, err
	}
	a, err := valueAs[A](r, 0)
	if err != nil {
		return a, b, c, err
	}
	if b, err = valueAs[B](r, 1); err != nil {
		return a, b, c, err
	}
	c, err = valueAs[C](r, 2)
	return a, b, c, err
}

// Unpack4 is [Unpack2] for four-field records.
func Unpack4[A, B, C, D any](r Record) (A, B, C, D, error) {
	var (
		a A
		b B
		c C
		d D
	)
	if err := checkArity(r, 4); err != nil {
		return a, b, c, d, err
	}
	a, err := valueAs[A](r, 0)
	if err != nil {
		return a, b, c, d, err
	}
	if b, err = valueAs[B](r, 1); err != nil {
		return a, b, c, d, err
	}
	if c, err = valueAs[C](r, 2); err != nil {
		return a, b, c, d, err
	}
	d, err = valueAs[D](r, 3)
	return a, b, c, d, err
}

func checkArity(r Record, n int) error {
	if r.Len() != n {
		return fmt.Errorf("record: cannot unpack %d values into %d targets: %w", r.Len(), n, ErrArityMismatch)
	}
	return nil
}

func valueAs[T any](r Record, i int) (T, error) {
	v := r.values[i]
	t, ok := v.(T)
	if !ok && v != nil {
		var zero T
		return zero, fmt.Errorf("record: value %d is %T, not %T: %w", i, v, zero, ErrUnexpectedFieldValue)
	}
	return t, nil
}
