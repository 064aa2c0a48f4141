package stable

import "github.com/pkg/errors"

var (
	// ErrUnsupportedArity is returned by Build for functions of more than three parameters.
	// Hand-curry such functions before wrapping them.
	ErrUnsupportedArity = errors.New("stable: unsupported arity")

	// ErrNotFunc is returned by Build when its argument is not a non-nil function.
	ErrNotFunc = errors.New("stable: not a function")
)
