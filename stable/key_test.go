package stable_test

import (
	"fmt"
	"testing"

	"github.com/on-the-ground/stable_ive_go/stable"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	n   int
	pad [64]byte
}

type flag bool

func TestKeyForSentinels(t *testing.T) {
	var nilPayload *payload
	var nilMap map[string]int
	var nilSlice []int
	var nilChan chan int
	var nilFunc func()

	tests := []struct {
		name string
		arg  any
		want stable.Key
	}{
		{"nil interface", nil, stable.UndefinedKey},
		{"nil pointer", nilPayload, stable.NullKey},
		{"nil map", nilMap, stable.NullKey},
		{"nil slice", nilSlice, stable.NullKey},
		{"nil chan", nilChan, stable.NullKey},
		{"nil func", nilFunc, stable.NullKey},
		{"true", true, stable.TrueKey},
		{"false", false, stable.FalseKey},
		{"named bool", flag(true), stable.TrueKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := stable.KeyFor(tt.arg)
			assert.True(t, ok)
			assert.True(t, key.IsSentinel())
			assert.Equal(t, tt.want.String(), key.String())
			assert.True(t, tt.want == key)
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []stable.Key{stable.UndefinedKey, stable.NullKey, stable.TrueKey, stable.FalseKey}
	for i, a := range sentinels {
		for j, b := range sentinels {
			assert.Equal(t, i == j, a == b, "%s vs %s", a, b)
		}
	}
}

func TestKeyForValueTypesIsNotCacheable(t *testing.T) {
	tests := []struct {
		name string
		arg  any
	}{
		{"int", 3},
		{"uint8", uint8(3)},
		{"float", 1.5},
		{"complex", complex(1, 2)},
		{"uintptr", uintptr(8)},
		{"string", "hello"},
		{"empty string", ""},
		{"struct", payload{n: 1}},
		{"array", [2]int{1, 2}},
		{"func", func() {}},
		{"zero-size pointee", &struct{}{}},
		{"empty slice", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := stable.KeyFor(tt.arg)
			assert.False(t, ok)
		})
	}
}

func TestKeyForIdentity(t *testing.T) {
	p1 := &payload{n: 1}
	p2 := &payload{n: 1}

	k1, ok := stable.KeyFor(p1)
	assert.True(t, ok)
	assert.False(t, k1.IsSentinel())
	again, _ := stable.KeyFor(p1)
	assert.True(t, k1 == again)

	k2, _ := stable.KeyFor(p2)
	assert.False(t, k1 == k2, "equal values are distinct objects")
}

func TestKeyForReferenceKinds(t *testing.T) {
	m := map[string]int{"a": 1}
	ch := make(chan int)

	km, ok := stable.KeyFor(m)
	assert.True(t, ok)
	km2, _ := stable.KeyFor(m)
	assert.True(t, km == km2)

	kc, ok := stable.KeyFor(ch)
	assert.True(t, ok)
	assert.False(t, km == kc)
}

func TestKeyForSliceViews(t *testing.T) {
	s := make([]int, 4, 8)

	whole, ok := stable.KeyFor(s)
	assert.True(t, ok)
	same, _ := stable.KeyFor(s)
	assert.True(t, whole == same)

	prefix, _ := stable.KeyFor(s[:2])
	assert.False(t, whole == prefix, "a shorter view is a different sequence")
	assert.Equal(t, "ref[2:8]", prefix.String())
}

type pair struct {
	First  [2]int
	Second int
}

func TestKeyForDistinguishesSharedAddresses(t *testing.T) {
	s := &pair{}
	whole, _ := stable.KeyFor(s)
	field, _ := stable.KeyFor(&s.First)
	assert.False(t, whole == field, "a struct and its first field are different references")

	elem, _ := stable.KeyFor(&s.First[0])
	assert.False(t, field == elem, "an array and its first element are different references")
}

func TestTableSeparatesSharedAddresses(t *testing.T) {
	fn := stable.StableI1O1(func(v any) string {
		return fmt.Sprintf("%T", v)
	})

	arr := &[4]int{}
	assert.Equal(t, "*[4]int", fn(arr))
	assert.Equal(t, "*int", fn(&arr[0]))
}
