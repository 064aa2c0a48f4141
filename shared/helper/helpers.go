package helper

import (
	"fmt"
)

// As runs a constructor of untyped values and asserts its result to T.
// Returns an error if the constructor fails or the result is not a T.
func As[T any](build func() (any, error)) (T, error) {
	var zero T

	res, err := build()
	if err != nil {
		return zero, err
	}

	val, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("unexpected type: got %T, want %T", res, zero)
	}

	return val, nil
}

// Must is the panic-on-failure variant for constructors whose failure is a
// programming error.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
