package stable

import "reflect"

type result[O1, O2 any] struct {
	O1 O1
	O2 O2
}

// failure reports o as an error if it is a non-nil error value.
// A typed nil, such as a nil *MyErr, is not a failure.
func failure[O any](o O) error {
	if err, ok := any(o).(error); ok && !isNil(err) {
		return err
	}
	return nil
}

func isNil(err error) bool {
	if err == nil {
		return true
	}
	switch rv := reflect.ValueOf(err); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func dual[O1, O2 any](o1 O1, o2 O2) (result[O1, O2], error) {
	return result[O1, O2]{O1: o1, O2: o2}, failure(o2)
}

// StableI0O2 is the dual-output form of StableI0O1.
func StableI0O2[W, O1, O2 any](fn func() (O1, O2), opts ...Option) func(W) (O1, O2) {
	return StableI1O2(func(W) (O1, O2) { return fn() }, opts...)
}

// StableI1O2 memoizes a function of two results.
// When O2 is an error and fn returns a non-nil one, nothing is stored and the
// next call with the same argument runs fn again.
func StableI1O2[I1, O1, O2 any](fn func(I1) (O1, O2), opts ...Option) func(I1) (O1, O2) {
	stabilized := stableOne(func(i1 I1) (result[O1, O2], error) {
		o1, o2 := fn(i1)
		return dual(o1, o2)
	}, newConfig(opts))
	return func(i1 I1) (O1, O2) {
		res, _ := stabilized(i1)
		return res.O1, res.O2
	}
}

func StableI2O2[I1, I2, O1, O2 any](fn func(I1, I2) (O1, O2), opts ...Option) func(I1, I2) (O1, O2) {
	stabilized := stableTwo(func(i1 I1, i2 I2) (result[O1, O2], error) {
		o1, o2 := fn(i1, i2)
		return dual(o1, o2)
	}, newConfig(opts))
	return func(i1 I1, i2 I2) (O1, O2) {
		res, _ := stabilized(i1, i2)
		return res.O1, res.O2
	}
}

func StableI3O2[I1, I2, I3, O1, O2 any](fn func(I1, I2, I3) (O1, O2), opts ...Option) func(I1, I2, I3) (O1, O2) {
	stabilized := stableThree(func(i1 I1, i2 I2, i3 I3) (result[O1, O2], error) {
		o1, o2 := fn(i1, i2, i3)
		return dual(o1, o2)
	}, newConfig(opts))
	return func(i1 I1, i2 I2, i3 I3) (O1, O2) {
		res, _ := stabilized(i1, i2, i3)
		return res.O1, res.O2
	}
}
