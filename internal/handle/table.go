// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package handle implements the id table that maps small integer handles
// to backend-owned objects.
//
// Ids are positive and recycled: Insert always hands out the smallest id
// that is not currently live. Id 0 is reserved to mean "no object" and is
// never allocated. Entries are kept sorted by id so the smallest free id is
// found with a single linear scan over the live entries.
package handle

import "sort"

// entry pairs an id with the object it denotes.
type entry[T any] struct {
	id  uint32
	obj T
}

// Table owns the id to object mapping. The zero value is an empty table
// ready for use. A Table is not safe for concurrent use.
type Table[T any] struct {
	entries []entry[T]
}

// Insert stores obj under the smallest unused positive id and returns it.
func (t *Table[T]) Insert(obj T) uint32 {
	id, pos := t.nextFree()
	t.entries = append(t.entries, entry[T]{})
	copy(t.entries[pos+1:], t.entries[pos:])
	t.entries[pos] = entry[T]{id: id, obj: obj}
	return id
}

// NextID reports the id that the next Insert would return.
func (t *Table[T]) NextID() uint32 {
	id, _ := t.nextFree()
	return id
}

// nextFree returns the smallest free id and the index it belongs at.
func (t *Table[T]) nextFree() (uint32, int) {
	want := uint32(1)
	for i, e := range t.entries {
		if e.id != want {
			return want, i
		}
		want++
	}
	return want, len(t.entries)
}

// Get returns the object stored under id. The boolean is false for id 0
// and for ids that are not live.
func (t *Table[T]) Get(id uint32) (T, bool) {
	i, ok := t.find(id)
	if !ok {
		var zero T
		return zero, false
	}
	return t.entries[i].obj, true
}

// Set replaces the object stored under a live id.
func (t *Table[T]) Set(id uint32, obj T) bool {
	i, ok := t.find(id)
	if !ok {
		return false
	}
	t.entries[i].obj = obj
	return true
}

// Remove deletes id and returns the object it held. A miss leaves the
// table unchanged.
func (t *Table[T]) Remove(id uint32) (T, bool) {
	i, ok := t.find(id)
	if !ok {
		var zero T
		return zero, false
	}
	obj := t.entries[i].obj
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	return obj, true
}

// Contains reports whether id is live.
func (t *Table[T]) Contains(id uint32) bool {
	_, ok := t.find(id)
	return ok
}

// Len returns the number of live entries.
func (t *Table[T]) Len() int { return len(t.entries) }

// IDs returns the live ids in ascending order.
func (t *Table[T]) IDs() []uint32 {
	ids := make([]uint32, len(t.entries))
	for i, e := range t.entries {
		ids[i] = e.id
	}
	return ids
}

// Each calls fn for every live entry in ascending id order.
// fn must not modify the table.
func (t *Table[T]) Each(fn func(id uint32, obj T)) {
	for _, e := range t.entries {
		fn(e.id, e.obj)
	}
}

// Clear removes all entries.
func (t *Table[T]) Clear() {
	clear(t.entries)
	t.entries = t.entries[:0]
}

func (t *Table[T]) find(id uint32) (int, bool) {
	if id == 0 {
		return 0, false
	}
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].id >= id })
	if i < len(t.entries) && t.entries[i].id == id {
		return i, true
	}
	return i, false
}
