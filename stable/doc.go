// Package stable memoizes pure functions by the identity of their arguments.
//
// Stabilizing a function does not make it faster so much as it makes its
// results *stable*: called twice with the same object, a stabilized function
// returns the very same result, not merely an equal one.
//
//	describe := stable.StableI1O1(func(o *Order) *Summary { ... })
//	describe(order) == describe(order) // same *Summary
//
// Arguments are keyed by reference and held weakly. A table never keeps an
// argument alive; once the rest of the program drops it, the runtime reclaims
// it and its entry goes with it.
//
// Features:
//   - StableI0O1 to StableI3O2: typed, generic wrappers for zero to three arguments
//     with one or two results.
//   - Build: the same wrappers for any func value, dispatched on its parameter count.
//   - Multi-argument wrappers are curried over one single-argument Table.
//   - No negative caching: failed calls (a non-nil trailing error, or a panic) are
//     never stored.
//
// Key normalization:
//
//	nil interface                          → UndefinedKey
//	nil pointer, map, slice, chan, func    → NullKey
//	true, false                            → TrueKey, FalseKey
//	pointer, map, chan, non-empty slice    → the argument's identity
//	numbers, strings, structs, arrays, ... → not cached, fn runs every time
//
// Sentinel keys are shared by every table, so all nil-interface calls of one
// wrapper share one slot, and so on for the other three.
//
// Wrapping a function of no arguments (StableI0O1, or Build on a func()) yields
// a function of one witness argument that keys the cache. Results are replayed
// only while callers keep passing the same witness.
//
// WARNING: stabilize only pure functions of immutable arguments. A result
// computed for an object is replayed even if that object has changed since.
package stable
