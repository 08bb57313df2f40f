package store

// table is one keyed, insertion-ordered entity table. Reads hand out value
// copies; replaceWith builds a whole new table so a swap is a single pointer
// assignment under the store's writer lock.
type table[T any] struct {
	key   func(T) string
	order []string
	rows  map[string]T
}

func newTable[T any](key func(T) string) *table[T] {
	return &table[T]{key: key, rows: map[string]T{}}
}

func (t *table[T]) get(k string) (T, bool) {
	v, ok := t.rows[k]
	return v, ok
}

func (t *table[T]) has(k string) bool {
	_, ok := t.rows[k]
	return ok
}

// upsert inserts or replaces the full record by natural key. An insert keeps
// its position at the end of the insertion order; a replace keeps the
// original position so pagination stays deterministic.
func (t *table[T]) upsert(v T) {
	k := t.key(v)
	if _, ok := t.rows[k]; !ok {
		t.order = append(t.order, k)
	}
	t.rows[k] = v
}

// all returns records in insertion order. A nil filter matches everything.
func (t *table[T]) all(filter func(T) bool) []T {
	out := make([]T, 0, len(t.order))
	for _, k := range t.order {
		v := t.rows[k]
		if filter == nil || filter(v) {
			out = append(out, v)
		}
	}
	return out
}

// replaceWith builds a fresh table from the given rows, preserving their
// order. The caller swaps the returned pointer in under the writer lock.
func (t *table[T]) replaceWith(rows []T) *table[T] {
	next := newTable[T](t.key)
	for _, v := range rows {
		next.upsert(v)
	}
	return next
}

// journal is an append-only log. seq is assigned at admission and is the
// ordering authority; entries are never removed or reloaded from the source.
type journal[T any] struct {
	entries []T
	seq     uint64
}

func (j *journal[T]) append(v T, assign func(*T, uint64)) T {
	j.seq++
	assign(&v, j.seq)
	j.entries = append(j.entries, v)
	return v
}

func (j *journal[T]) all(filter func(T) bool) []T {
	out := make([]T, 0, len(j.entries))
	for _, v := range j.entries {
		if filter == nil || filter(v) {
			out = append(out, v)
		}
	}
	return out
}
