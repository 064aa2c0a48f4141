package stable

import (
	"fmt"
	"reflect"
	"unsafe"
	"weak"
)

type sentinel struct {
	name string
}

// Key identifies one slot of a Table.
//
// An identity key refers to its argument through a weak pointer, so holding a
// Key never keeps the argument reachable. It also records the argument's
// dynamic type: a struct and its first field share an address but are
// different references. The four sentinel keys stand in for
// values that have exactly one possible identity.
type Key struct {
	ref  weak.Pointer[byte]
	typ  reflect.Type
	view [2]int // len and cap of a slice argument
	mark *sentinel
}

var (
	// UndefinedKey is the key of a nil interface value.
	UndefinedKey = Key{mark: &sentinel{name: "undefined"}}

	// NullKey is the key of every typed nil: pointers, maps, slices, chans and funcs.
	NullKey = Key{mark: &sentinel{name: "null"}}

	TrueKey  = Key{mark: &sentinel{name: "true"}}
	FalseKey = Key{mark: &sentinel{name: "false"}}
)

// IsSentinel reports whether k is one of UndefinedKey, NullKey, TrueKey or FalseKey.
func (k Key) IsSentinel() bool {
	return k.mark != nil
}

func (k Key) String() string {
	if k.mark != nil {
		return k.mark.name
	}
	if k.view != [2]int{} {
		return fmt.Sprintf("ref[%d:%d]", k.view[0], k.view[1])
	}
	return "ref"
}

// KeyFor normalizes v into a cache key.
// ok is false when v is value-typed (numbers, strings, structs, ...) and
// therefore must not be cached at all.
func KeyFor(v any) (key Key, ok bool) {
	key, _, ok = keyFor(v)
	return
}

// keyFor also returns the address the key was derived from, nil for sentinels.
// The address keeps the referent alive for as long as the caller holds it.
func keyFor(v any) (Key, unsafe.Pointer, bool) {
	if v == nil {
		return UndefinedKey, nil, true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return TrueKey, nil, true
		}
		return FalseKey, nil, true

	case reflect.Pointer:
		if rv.IsNil() {
			return NullKey, nil, true
		}
		// every zero-size value may share one address
		if rv.Type().Elem().Size() == 0 {
			return Key{}, nil, false
		}
		return identity(rv.Type(), rv.UnsafePointer(), [2]int{})

	case reflect.Map, reflect.Chan:
		if rv.IsNil() {
			return NullKey, nil, true
		}
		return identity(rv.Type(), rv.UnsafePointer(), [2]int{})

	case reflect.Slice:
		if rv.IsNil() {
			return NullKey, nil, true
		}
		if rv.Cap() == 0 || rv.Type().Elem().Size() == 0 {
			return Key{}, nil, false
		}
		return identity(rv.Type(), rv.UnsafePointer(), [2]int{rv.Len(), rv.Cap()})

	case reflect.Func:
		// func values carry no identity guarantee
		if rv.IsNil() {
			return NullKey, nil, true
		}
		return Key{}, nil, false

	default:
		return Key{}, nil, false
	}
}

func identity(typ reflect.Type, p unsafe.Pointer, view [2]int) (Key, unsafe.Pointer, bool) {
	return Key{ref: weak.Make((*byte)(p)), typ: typ, view: view}, p, true
}
