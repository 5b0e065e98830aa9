package record_test

import (
	"fmt"

	"github.com/arnauorriols/cheapnamedtuple/record"
)

// This example builds a Point type and exercises a record of it as
// both a positional tuple and a name-addressable value.
func Example() {
	point := record.MustType("Point", "x", "y")
	fmt.Println(point)

	// One positional value, one named value.
	p, err := point.Build([]any{11}, map[string]any{"y": 22})
	if err != nil {
		panic(err)
	}
	fmt.Println(p)

	// Indexable like a plain tuple.
	x, y, err := record.Unpack2[int, int](p)
	if err != nil {
		panic(err)
	}
	fmt.Println(x + y)

	// Fields are also accessible by name.
	vx, _ := p.ByName("x")
	fmt.Println(vx)

	// Convert to a mapping and back.
	d := p.AsMap()
	q, err := point.FromOrderedMap(d)
	if err != nil {
		panic(err)
	}
	fmt.Println(p.Equal(q))

	// Replace targets named fields and leaves p untouched.
	p2, err := p.Replace(map[string]any{"x": 100})
	if err != nil {
		panic(err)
	}
	fmt.Println(p2)
	fmt.Println(p)

	// Output:
	// Point(x, y)
	// Point(x=11, y=22)
	// 33
	// 11
	// true
	// Point(x=100, y=22)
	// Point(x=11, y=22)
}

func ExampleParseFields() {
	typ := record.MustType("Size", record.ParseFields("width, height")...)
	fmt.Println(typ)
	// Output:
	// Size(width, height)
}

func ExampleRecord_All() {
	typ := record.MustType("Triple", "a", "b", "c")
	r, err := typ.New(1, 2, 3)
	if err != nil {
		panic(err)
	}
	sum := 0
	for v := range r.All() {
		sum += v.(int)
	}
	fmt.Println(sum)
	// Output:
	// 6
}
