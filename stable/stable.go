package stable

// StableI0O1 wraps a function of no arguments as a function of one witness
// argument. The witness is ignored by fn but keys the cache, so results are
// only replayed when callers keep passing the same witness.
func StableI0O1[W, O any](fn func() O, opts ...Option) func(W) O {
	return StableI1O1(func(W) O { return fn() }, opts...)
}

func StableI1O1[I1, O any](fn func(I1) O, opts ...Option) func(I1) O {
	stabilized := stableOne(infallible1(fn), newConfig(opts))
	return func(i1 I1) O {
		v, _ := stabilized(i1)
		return v
	}
}

func StableI2O1[I1, I2, O any](fn func(I1, I2) O, opts ...Option) func(I1, I2) O {
	stabilized := stableTwo(func(i1 I1, i2 I2) (O, error) {
		return fn(i1, i2), nil
	}, newConfig(opts))
	return func(i1 I1, i2 I2) O {
		v, _ := stabilized(i1, i2)
		return v
	}
}

func StableI3O1[I1, I2, I3, O any](fn func(I1, I2, I3) O, opts ...Option) func(I1, I2, I3) O {
	stabilized := stableThree(func(i1 I1, i2 I2, i3 I3) (O, error) {
		return fn(i1, i2, i3), nil
	}, newConfig(opts))
	return func(i1 I1, i2 I2, i3 I3) O {
		v, _ := stabilized(i1, i2, i3)
		return v
	}
}

func infallible1[I1, O any](fn func(I1) O) func(I1) (O, error) {
	return func(i1 I1) (O, error) {
		return fn(i1), nil
	}
}

// stableOne is the primitive every other wrapper is composed from.
func stableOne[I1, O any](fn func(I1) (O, error), cfg *config) func(I1) (O, error) {
	table := newTable[O](cfg, 1)
	return func(i1 I1) (O, error) {
		return table.Do(i1, func() (O, error) {
			return fn(i1)
		})
	}
}

// next returns the memoized continuation stored under arg, creating it on first use.
// A continuation holds no reference to arg: the wrapper passes the leading
// arguments back in on every application.
func next[R any](t *Table[*Table[R]], arg any, cfg *config, level int) *Table[R] {
	cont, _ := t.Do(arg, func() (*Table[R], error) {
		return newTable[R](cfg, level), nil
	})
	return cont
}

func stableTwo[I1, I2, O any](fn func(I1, I2) (O, error), cfg *config) func(I1, I2) (O, error) {
	first := newTable[*Table[O]](cfg, 1)
	return func(i1 I1, i2 I2) (O, error) {
		return next(first, i1, cfg, 2).Do(i2, func() (O, error) {
			return fn(i1, i2)
		})
	}
}

func stableThree[I1, I2, I3, O any](fn func(I1, I2, I3) (O, error), cfg *config) func(I1, I2, I3) (O, error) {
	first := newTable[*Table[*Table[O]]](cfg, 1)
	return func(i1 I1, i2 I2, i3 I3) (O, error) {
		second := next(first, i1, cfg, 2)
		return next(second, i2, cfg, 3).Do(i3, func() (O, error) {
			return fn(i1, i2, i3)
		})
	}
}
