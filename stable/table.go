package stable

import (
	"runtime"
	"sync"
	"sync/atomic"
	"unsafe"
	"weak"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Table memoizes results of type R by the identity of a single argument.
//
// Entries are keyed with KeyFor. The table never keeps an argument reachable:
// once nothing else refers to it, the runtime reclaims the argument and a
// cleanup drops its entry. A stored result that itself refers to its argument
// keeps both alive for the lifetime of the table.
//
// A Table is safe for concurrent use. Callers racing on the same key share a
// single computation. A computation may call back into its own table for
// other keys, as recursive functions over a DAG do, but not for its own key:
// that call waits on itself and never returns.
type Table[R any] struct {
	id     uuid.UUID
	logger *zap.Logger
	self   weak.Pointer[Table[R]]

	mu       sync.Mutex
	entries  map[Key]R
	inflight map[Key]*call[R]

	hits      atomic.Uint64
	misses    atomic.Uint64
	bypassed  atomic.Uint64
	evictions atomic.Uint64
}

type call[R any] struct {
	done    chan struct{}
	val     R
	err     error
	settled bool // false if the computation panicked
}

// Stats is a snapshot of a Table's counters.
type Stats struct {
	Entries   int
	Hits      uint64
	Misses    uint64
	Bypassed  uint64
	Evictions uint64
}

// NewTable returns an empty table.
func NewTable[R any](opts ...Option) *Table[R] {
	return newTable[R](newConfig(opts), 1)
}

func newTable[R any](cfg *config, level int) *Table[R] {
	t := &Table[R]{
		id:       uuid.New(),
		entries:  make(map[Key]R),
		inflight: make(map[Key]*call[R]),
	}
	t.self = weak.Make(t)
	t.logger = cfg.logger.With(
		zap.String("wrapper", cfg.name),
		zap.Stringer("table", t.id),
		zap.Int("level", level),
	)
	t.logger.Debug("stable: table created")
	return t
}

// Do returns the result stored for arg, or runs compute and stores its result.
//
// Value-typed arguments bypass the table: compute runs on every call.
// A result is stored only if compute returns a nil error; errors and panics
// reach the caller unchanged and the next call for the same key recomputes.
// compute must not call Do with arg again.
func (t *Table[R]) Do(arg any, compute func() (R, error)) (R, error) {
	key, ptr, ok := keyFor(arg)
	if !ok {
		t.bypassed.Add(1)
		return compute()
	}

	for {
		t.mu.Lock()
		if v, found := t.entries[key]; found {
			t.mu.Unlock()
			t.hits.Add(1)
			return v, nil
		}
		if c, pending := t.inflight[key]; pending {
			t.mu.Unlock()
			<-c.done
			if c.settled {
				return c.val, c.err
			}
			continue
		}
		c := &call[R]{done: make(chan struct{})}
		t.inflight[key] = c
		t.mu.Unlock()

		t.misses.Add(1)
		return t.lead(key, ptr, c, compute)
	}
}

func (t *Table[R]) lead(key Key, ptr unsafe.Pointer, c *call[R], compute func() (R, error)) (R, error) {
	defer func() {
		t.mu.Lock()
		delete(t.inflight, key)
		if c.settled && c.err == nil {
			t.entries[key] = c.val
			t.watch(key, ptr)
		}
		t.mu.Unlock()
		close(c.done)

		switch {
		case !c.settled:
			t.logger.Debug("stable: computation panicked, result not cached", zap.Stringer("key", key))
		case c.err != nil:
			t.logger.Debug("stable: computation failed, result not cached", zap.Stringer("key", key), zap.Error(c.err))
		}
	}()

	c.val, c.err = compute()
	c.settled = true
	return c.val, c.err
}

type eviction[R any] struct {
	table weak.Pointer[Table[R]]
	key   Key
}

// watch drops the entry for key once the object at ptr is reclaimed.
// Sentinel keys live as long as the process and are never watched.
func (t *Table[R]) watch(key Key, ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	runtime.AddCleanup((*byte)(ptr), evict[R], eviction[R]{table: t.self, key: key})
}

func evict[R any](e eviction[R]) {
	if t := e.table.Value(); t != nil {
		t.evict(e.key)
	}
}

func (t *Table[R]) evict(key Key) {
	t.mu.Lock()
	_, found := t.entries[key]
	delete(t.entries, key)
	t.mu.Unlock()

	if found {
		t.evictions.Add(1)
		t.logger.Debug("stable: entry reclaimed", zap.Stringer("key", key))
	}
}

// Lookup returns the result stored for arg without computing anything.
func (t *Table[R]) Lookup(arg any) (R, bool) {
	key, _, ok := keyFor(arg)
	if !ok {
		var zero R
		return zero, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	v, found := t.entries[key]
	return v, found
}

// Len returns the number of stored results.
func (t *Table[R]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

func (t *Table[R]) Stats() Stats {
	return Stats{
		Entries:   t.Len(),
		Hits:      t.hits.Load(),
		Misses:    t.misses.Load(),
		Bypassed:  t.bypassed.Load(),
		Evictions: t.evictions.Load(),
	}
}
