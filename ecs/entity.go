package ecs

import (
	"errors"
	"strconv"
)

// GenDeleted marks a tombstoned slot. Live slots never carry it, so the zero
// ID is a null handle that never resolves.
const GenDeleted uint32 = 0

// ErrInvalidHandle is returned when a handle is stale, out of range or null.
var ErrInvalidHandle = errors.New("ecs: invalid handle")

// ID is a generation-tagged handle into an Arena[T].
type ID[T any] struct {
	Index      uint32 `msgpack:"i"`
	Generation uint32 `msgpack:"g"`
}

// IsNull reports whether id is the zero handle.
func (id ID[T]) IsNull() bool {
	return id.Generation == GenDeleted
}

func (id ID[T]) String() string {
	return strconv.FormatUint(uint64(id.Index), 10) + ":" + strconv.FormatUint(uint64(id.Generation), 10)
}

// IDSetter is implemented by values that want to know their own handle.
// Arena writes the handle on insertion when *T implements it.
type IDSetter[T any] interface {
	SetID(ID[T])
}
