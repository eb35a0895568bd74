package ecs

import (
	"iter"

	"github.com/vmihailenco/msgpack/v5"
)

type slot[T any] struct {
	value      T
	generation uint32
}

type pendingInsert[T any] struct {
	id    ID[T]
	value T
}

// Arena stores values in reusable slots addressed by generational handles.
//
// Deferred operations (DeferInsert, DeferRemove) never touch the slot slice,
// so pointers obtained while iterating stay valid until ApplyPending.
type Arena[T any] struct {
	slots      []slot[T]
	free       []uint32
	generation uint32
	next       uint32
	live       int

	pendingInserts []pendingInsert[T]
	pendingRemoves []ID[T]
}

// NewArena creates an empty arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{}
}

func (a *Arena[T]) mintGeneration() uint32 {
	a.generation++
	if a.generation == GenDeleted {
		a.generation++
	}
	return a.generation
}

func (a *Arena[T]) reserveIndex() uint32 {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		return idx
	}
	idx := a.next
	a.next++
	return idx
}

func (a *Arena[T]) ensure(idx uint32) {
	for uint32(len(a.slots)) <= idx {
		a.slots = append(a.slots, slot[T]{})
	}
}

func (a *Arena[T]) write(id ID[T], value T) {
	a.ensure(id.Index)
	s := &a.slots[id.Index]
	s.value = value
	s.generation = id.Generation
	if setter, ok := any(&s.value).(IDSetter[T]); ok {
		setter.SetID(id)
	}
	a.live++
}

// Insert stores value and returns its handle. Freed slots are reused last in,
// first out.
func (a *Arena[T]) Insert(value T) ID[T] {
	id := ID[T]{Index: a.reserveIndex(), Generation: a.mintGeneration()}
	a.write(id, value)
	return id
}

// DeferInsert reserves a handle for value now and writes it on ApplyPending.
// Until then Get reports the handle as absent.
func (a *Arena[T]) DeferInsert(value T) ID[T] {
	id := ID[T]{Index: a.reserveIndex(), Generation: a.mintGeneration()}
	a.pendingInserts = append(a.pendingInserts, pendingInsert[T]{id: id, value: value})
	return id
}

// DeferRemove stages id for removal on ApplyPending.
func (a *Arena[T]) DeferRemove(id ID[T]) {
	a.pendingRemoves = append(a.pendingRemoves, id)
}

// ApplyPending writes staged inserts, then staged removals.
func (a *Arena[T]) ApplyPending() {
	if a == nil {
		return
	}
	for _, p := range a.pendingInserts {
		a.write(p.id, p.value)
	}
	clear(a.pendingInserts)
	a.pendingInserts = a.pendingInserts[:0]

	for _, id := range a.pendingRemoves {
		a.Remove(id)
	}
	a.pendingRemoves = a.pendingRemoves[:0]
}

// Pending returns the number of staged inserts and removals.
func (a *Arena[T]) Pending() (inserts, removes int) {
	if a == nil {
		return 0, 0
	}
	return len(a.pendingInserts), len(a.pendingRemoves)
}

// Get returns the value behind id, or false when the handle does not resolve.
func (a *Arena[T]) Get(id ID[T]) (*T, bool) {
	if a == nil || id.Generation == GenDeleted || id.Index >= uint32(len(a.slots)) {
		return nil, false
	}
	s := &a.slots[id.Index]
	if s.generation != id.Generation {
		return nil, false
	}
	return &s.value, true
}

// Has reports whether id resolves to a live value.
func (a *Arena[T]) Has(id ID[T]) bool {
	_, ok := a.Get(id)
	return ok
}

// MustGet is Get for handles the caller knows are live.
func (a *Arena[T]) MustGet(id ID[T]) *T {
	v, ok := a.Get(id)
	if !ok {
		panic(ErrInvalidHandle.Error() + " " + id.String())
	}
	return v
}

// Set replaces the value behind a live handle.
func (a *Arena[T]) Set(id ID[T], value T) error {
	v, ok := a.Get(id)
	if !ok {
		return ErrInvalidHandle
	}
	*v = value
	if setter, ok := any(v).(IDSetter[T]); ok {
		setter.SetID(id)
	}
	return nil
}

// Remove tombstones the slot behind id. Stale handles are ignored.
func (a *Arena[T]) Remove(id ID[T]) bool {
	if !a.Has(id) {
		return false
	}
	s := &a.slots[id.Index]
	var zero T
	s.value = zero
	s.generation = GenDeleted
	a.free = append(a.free, id.Index)
	a.live--
	return true
}

// Len returns the number of live values.
func (a *Arena[T]) Len() int {
	if a == nil {
		return 0
	}
	return a.live
}

// All yields live handles and values in slot order.
func (a *Arena[T]) All() iter.Seq2[ID[T], *T] {
	return func(yield func(ID[T], *T) bool) {
		if a == nil {
			return
		}
		for i := range a.slots {
			s := &a.slots[i]
			if s.generation == GenDeleted {
				continue
			}
			if !yield(ID[T]{Index: uint32(i), Generation: s.generation}, &s.value) {
				return
			}
		}
	}
}

// Values yields live values in slot order.
func (a *Arena[T]) Values() iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for _, v := range a.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// IDs yields live handles in slot order.
func (a *Arena[T]) IDs() iter.Seq[ID[T]] {
	return func(yield func(ID[T]) bool) {
		for id := range a.All() {
			if !yield(id) {
				return
			}
		}
	}
}

type wireSlot[T any] struct {
	Value      T      `msgpack:"v"`
	Generation uint32 `msgpack:"g"`
}

type wireArena[T any] struct {
	Slots      []wireSlot[T] `msgpack:"slots"`
	Free       []uint32      `msgpack:"free"`
	Generation uint32        `msgpack:"generation"`
}

// EncodeMsgpack writes the committed slots. Staged operations are dropped and
// any index they reserved goes back on the free list.
func (a *Arena[T]) EncodeMsgpack(enc *msgpack.Encoder) error {
	w := wireArena[T]{
		Slots:      make([]wireSlot[T], len(a.slots)),
		Free:       append([]uint32(nil), a.free...),
		Generation: a.generation,
	}
	for i, s := range a.slots {
		w.Slots[i] = wireSlot[T]{Value: s.value, Generation: s.generation}
	}
	for _, p := range a.pendingInserts {
		if p.id.Index < uint32(len(a.slots)) {
			w.Free = append(w.Free, p.id.Index)
		}
	}
	return enc.Encode(&w)
}

func (a *Arena[T]) DecodeMsgpack(dec *msgpack.Decoder) error {
	var w wireArena[T]
	if err := dec.Decode(&w); err != nil {
		return err
	}
	*a = Arena[T]{
		slots:      make([]slot[T], len(w.Slots)),
		free:       w.Free,
		generation: w.Generation,
		next:       uint32(len(w.Slots)),
	}
	for i, s := range w.Slots {
		a.slots[i] = slot[T]{value: s.Value, generation: s.Generation}
		if s.Generation == GenDeleted {
			continue
		}
		if setter, ok := any(&a.slots[i].value).(IDSetter[T]); ok {
			setter.SetID(ID[T]{Index: uint32(i), Generation: s.Generation})
		}
		a.live++
	}
	return nil
}
