// Package properties enumerates the properties of an object deterministically.
//
// Of is stabilized: asked twice about the same object reference, it returns
// the same *List, so listings can be compared by identity and reused as keys
// of further stabilized functions.
package properties

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/on-the-ground/stable_ive_go/stable"
)

// Property is one named value of an object.
type Property struct {
	Name  string
	Value any
}

// List holds the properties of one object sorted by name.
type List struct {
	props []Property
}

var (
	of          = stable.StableI1O1(enumerate, stable.WithName("properties.Of"))
	fingerprint = stable.StableI1O1(func(obj any) uint64 {
		return Of(obj).Sum64()
	}, stable.WithName("properties.Fingerprint"))
)

// Of lists the exported fields of a struct, or the entries of a map keyed by
// strings. Pointers are followed; anything else has no properties.
//
// Objects are assumed immutable: a listing is computed once per reference.
func Of(obj any) *List {
	return of(obj)
}

// Fingerprint hashes the listing of obj. Objects with equal properties have
// equal fingerprints.
func Fingerprint(obj any) uint64 {
	return fingerprint(obj)
}

func enumerate(obj any) *List {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return &List{}
		}
		v = v.Elem()
	}

	var props []Property
	switch v.Kind() {
	case reflect.Struct:
		for _, f := range reflect.VisibleFields(v.Type()) {
			if !f.IsExported() || f.Anonymous {
				continue
			}
			fv, err := v.FieldByIndexErr(f.Index)
			if err != nil {
				continue // promoted through a nil embedded pointer
			}
			props = append(props, Property{Name: f.Name, Value: fv.Interface()})
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			break
		}
		iter := v.MapRange()
		for iter.Next() {
			props = append(props, Property{Name: iter.Key().String(), Value: iter.Value().Interface()})
		}
	}

	slices.SortFunc(props, func(a, b Property) int {
		return strings.Compare(a.Name, b.Name)
	})
	return &List{props: props}
}

func (l *List) Len() int {
	return len(l.props)
}

func (l *List) At(i int) Property {
	return l.props[i]
}

func (l *List) Names() []string {
	names := make([]string, len(l.props))
	for i, p := range l.props {
		names[i] = p.Name
	}
	return names
}

// Get returns the value of the named property.
func (l *List) Get(name string) (any, bool) {
	i, found := slices.BinarySearchFunc(l.props, name, func(p Property, name string) int {
		return strings.Compare(p.Name, name)
	})
	if !found {
		return nil, false
	}
	return l.props[i].Value, true
}

// Sum64 hashes the listing with xxhash.
func (l *List) Sum64() uint64 {
	d := xxhash.New()
	for _, p := range l.props {
		_, _ = d.WriteString(p.Name)
		_, _ = d.WriteString("=")
		_, _ = d.WriteString(fmt.Sprintf("%v", p.Value))
		_, _ = d.WriteString("\n")
	}
	return d.Sum64()
}

func (l *List) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, p := range l.props {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s:%v", p.Name, p.Value)
	}
	b.WriteString("}")
	return b.String()
}
