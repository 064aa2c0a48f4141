package stable

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/on-the-ground/stable_ive_go/shared/helper"
)

var (
	anyType   = reflect.TypeFor[any]()
	errorType = reflect.TypeFor[error]()
)

// Build inspects how many parameters fn declares and returns its memoized wrapper:
//
//   - none: a func(any) with fn's results that ignores its argument but is
//     cached by it, as StableI0O1;
//   - one to three: a func of fn's own type, memoized one argument at a time;
//   - more: an error wrapping ErrUnsupportedArity, before anything is called.
//
// When fn's last result is an error, calls returning a non-nil error are not cached.
func Build(fn any, opts ...Option) (any, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return nil, errors.Wrapf(ErrNotFunc, "cannot stabilize %T", fn)
	}

	typ := v.Type()
	cfg := newConfig(opts)
	switch arity := typ.NumIn(); arity {
	case 0:
		outs := make([]reflect.Type, typ.NumOut())
		for i := range outs {
			outs[i] = typ.Out(i)
		}
		witnessed := reflect.FuncOf([]reflect.Type{anyType}, outs, false)
		return stabilizeValue(witnessed, func([]reflect.Value) []reflect.Value {
			return v.Call(nil)
		}, cfg), nil
	case 1, 2, 3:
		call := v.Call
		if typ.IsVariadic() {
			call = v.CallSlice
		}
		return stabilizeValue(typ, call, cfg), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedArity, "%s declares %d parameters, at most 3 can be stabilized", typ, arity)
	}
}

// BuildAs is Build with the wrapper asserted to F, the type the caller expects
// back: fn's own type, or func(any) ... for a function without parameters.
func BuildAs[F any](fn any, opts ...Option) (F, error) {
	return helper.As[F](func() (any, error) {
		return Build(fn, opts...)
	})
}

// MustBuild is like Build but panics if fn cannot be stabilized.
func MustBuild(fn any, opts ...Option) any {
	return helper.Must(Build(fn, opts...))
}

// stabilizeValue memoizes call behind a func of type typ.
// Every leading argument selects a continuation table; the last one selects
// the stored results.
func stabilizeValue(typ reflect.Type, call func([]reflect.Value) []reflect.Value, cfg *config) any {
	root := newTable[any](cfg, 1)
	return reflect.MakeFunc(typ, func(args []reflect.Value) []reflect.Value {
		last := len(args) - 1
		table := root
		for i, arg := range args[:last] {
			cont, _ := table.Do(arg.Interface(), func() (any, error) {
				return newTable[any](cfg, i+2), nil
			})
			table = cont.(*Table[any])
		}
		out, _ := table.Do(args[last].Interface(), func() (any, error) {
			out := call(args)
			return out, failedCall(typ, out)
		})
		return out.([]reflect.Value)
	}).Interface()
}

func failedCall(typ reflect.Type, out []reflect.Value) error {
	n := typ.NumOut()
	if n == 0 || typ.Out(n-1) != errorType {
		return nil
	}
	if err, ok := out[n-1].Interface().(error); ok && !isNil(err) {
		return err
	}
	return nil
}
