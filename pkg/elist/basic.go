package elist

import (
	"iter"
	"slices"
)

type BasicList[E comparable] struct {
	data   []E
	unique bool
	ops    Ops[E]
	hooks  Hooks[E]
}

var (
	_ EList[int] = (*BasicList[int])(nil)
	_ Ops[int]   = (*BasicList[int])(nil)
)

// NewBasicList creates a plain list. For unique lists
// duplicates in the initial elements are dropped.
func NewBasicList[E comparable](unique bool, elems ...E) *BasicList[E] {
	l := &BasicList[E]{unique: unique, hooks: NoHooks[E]{}}
	l.ops = l
	if unique {
		elems = nonDuplicates(nil, elems)
	}
	l.data = slices.Clone(elems)
	return l
}

// SetOps replaces the mutation primitives. It is used by
// layered lists to route the public operations through
// their outermost layer.
func (l *BasicList[E]) SetOps(ops Ops[E]) {
	if ops == nil {
		l.ops = l
		return
	}
	l.ops = ops
}

func (l *BasicList[E]) Ops() Ops[E] {
	return l.ops
}

func (l *BasicList[E]) SetHooks(h Hooks[E]) {
	if h == nil {
		h = NoHooks[E]{}
	}
	l.hooks = h
}

func (l *BasicList[E]) IsUnique() bool {
	return l.unique
}

func (l *BasicList[E]) Size() int {
	return len(l.data)
}

func (l *BasicList[E]) Empty() bool {
	return len(l.data) == 0
}

func (l *BasicList[E]) Get(index int) (E, error) {
	var _nil E
	if index < 0 || index >= len(l.data) {
		return _nil, indexError(index, len(l.data))
	}
	return l.ops.Resolve(index, l.data[index]), nil
}

// BasicGet returns the stored element without resolution.
func (l *BasicList[E]) BasicGet(index int) (E, error) {
	var _nil E
	if index < 0 || index >= len(l.data) {
		return _nil, indexError(index, len(l.data))
	}
	return l.data[index], nil
}

// BasicIndexOf searches the stored elements without resolution.
func (l *BasicList[E]) BasicIndexOf(e E) int {
	return slices.Index(l.data, e)
}

// BasicSlice returns a copy of the stored elements.
func (l *BasicList[E]) BasicSlice() []E {
	return slices.Clone(l.data)
}

// Replace overwrites a slot without any hook or notification.
func (l *BasicList[E]) Replace(index int, e E) {
	l.data[index] = e
}

func (l *BasicList[E]) IndexOf(e E) int {
	r, resolving := l.ops.(Resolving[E])
	i := slices.Index(l.data, e)
	if i >= 0 {
		if resolving && r.IsUnresolved(l.data[i]) {
			l.ops.Resolve(i, l.data[i])
		}
		return i
	}
	if resolving {
		for i := 0; i < len(l.data); i++ {
			if r.IsUnresolved(l.data[i]) && l.ops.Resolve(i, l.data[i]) == e {
				return i
			}
		}
	}
	return -1
}

func (l *BasicList[E]) Contains(e E) bool {
	return l.IndexOf(e) >= 0
}

func (l *BasicList[E]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		for i := 0; i < len(l.data); i++ {
			if !yield(i, l.ops.Resolve(i, l.data[i])) {
				return
			}
		}
	}
}

func (l *BasicList[E]) ToSlice() []E {
	r := make([]E, 0, len(l.data))
	for _, e := range l.All() {
		r = append(r, e)
	}
	return r
}

func (l *BasicList[E]) Set(index int, e E) (E, error) {
	var _nil E
	if index < 0 || index >= len(l.data) {
		return _nil, indexError(index, len(l.data))
	}
	if l.unique {
		cur := l.IndexOf(e)
		if cur >= 0 && cur != index {
			return _nil, ErrNotUnique
		}
	}
	return l.ops.DoSetUnique(index, e), nil
}

func (l *BasicList[E]) Add(e E) (bool, error) {
	if l.unique && l.Contains(e) {
		return false, nil
	}
	l.ops.DoAddUnique(e)
	return true, nil
}

func (l *BasicList[E]) Insert(index int, e E) (bool, error) {
	if index < 0 || index > len(l.data) {
		return false, indexError(index, len(l.data))
	}
	if l.unique && l.Contains(e) {
		return false, nil
	}
	l.ops.DoInsertUnique(index, e)
	return true, nil
}

func (l *BasicList[E]) AddAll(elems ...E) (bool, error) {
	if l.unique {
		elems = nonDuplicates(l, elems)
	}
	if len(elems) == 0 {
		return false, nil
	}
	l.ops.DoAddAllUnique(elems)
	return true, nil
}

func (l *BasicList[E]) InsertAll(index int, elems ...E) (bool, error) {
	if index < 0 || index > len(l.data) {
		return false, indexError(index, len(l.data))
	}
	if l.unique {
		elems = nonDuplicates(l, elems)
	}
	if len(elems) == 0 {
		return false, nil
	}
	l.ops.DoInsertAllUnique(index, elems)
	return true, nil
}

func (l *BasicList[E]) Remove(e E) (bool, error) {
	i := l.IndexOf(e)
	if i < 0 {
		return false, nil
	}
	l.ops.DoRemoveAt(i)
	return true, nil
}

func (l *BasicList[E]) RemoveAt(index int) (E, error) {
	var _nil E
	if index < 0 || index >= len(l.data) {
		return _nil, indexError(index, len(l.data))
	}
	return l.ops.DoRemoveAt(index), nil
}

// RemoveAll removes all occurrences of the given elements.
// Elements are removed from the end of the list to keep
// the indices of the remaining candidates stable.
func (l *BasicList[E]) RemoveAll(elems ...E) (bool, error) {
	modified := false
	for i := len(l.data) - 1; i >= 0; i-- {
		if i >= len(l.data) {
			continue
		}
		if slices.Contains(elems, l.ops.Resolve(i, l.data[i])) {
			l.ops.DoRemoveAt(i)
			modified = true
		}
	}
	return modified, nil
}

func (l *BasicList[E]) Move(newIndex int, e E) error {
	_, err := l.MoveIndex(newIndex, l.IndexOf(e))
	return err
}

func (l *BasicList[E]) MoveIndex(newIndex, oldIndex int) (E, error) {
	var _nil E
	if newIndex < 0 || newIndex >= len(l.data) {
		return _nil, indexError(newIndex, len(l.data))
	}
	if oldIndex < 0 || oldIndex >= len(l.data) {
		return _nil, indexError(oldIndex, len(l.data))
	}
	return l.ops.DoMove(newIndex, oldIndex), nil
}

func (l *BasicList[E]) Clear() error {
	l.ops.DoClear()
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// primitives

func (l *BasicList[E]) Resolve(index int, e E) E {
	return e
}

func (l *BasicList[E]) DoAddUnique(e E) {
	l.data = append(l.data, e)
	l.hooks.DidAdd(len(l.data)-1, e)
	l.hooks.DidChange()
}

func (l *BasicList[E]) DoInsertUnique(index int, e E) {
	l.data = slices.Insert(l.data, index, e)
	l.hooks.DidAdd(index, e)
	l.hooks.DidChange()
}

func (l *BasicList[E]) DoAddAllUnique(elems []E) {
	l.DoInsertAllUnique(len(l.data), elems)
}

func (l *BasicList[E]) DoInsertAllUnique(index int, elems []E) {
	l.data = slices.Insert(l.data, index, elems...)
	for i, e := range elems {
		l.hooks.DidAdd(index+i, e)
		l.hooks.DidChange()
	}
}

func (l *BasicList[E]) DoSetUnique(index int, e E) E {
	old := l.data[index]
	l.data[index] = e
	l.hooks.DidSet(index, e, old)
	l.hooks.DidChange()
	return old
}

func (l *BasicList[E]) DoRemoveAt(index int) E {
	old := l.data[index]
	l.data = slices.Delete(l.data, index, index+1)
	l.hooks.DidRemove(index, old)
	l.hooks.DidChange()
	return old
}

func (l *BasicList[E]) DoMove(newIndex, oldIndex int) E {
	e := l.data[oldIndex]
	if newIndex != oldIndex {
		l.data = slices.Delete(l.data, oldIndex, oldIndex+1)
		l.data = slices.Insert(l.data, newIndex, e)
		l.hooks.DidMove(newIndex, e, oldIndex)
		l.hooks.DidChange()
	}
	return e
}

func (l *BasicList[E]) DoClear() {
	old := l.data
	l.data = nil
	l.hooks.DidClear(old)
	l.hooks.DidChange()
}

// nonDuplicates filters elements already contained in the list
// or occurring earlier in the given sequence.
func nonDuplicates[E comparable](l EList[E], elems []E) []E {
	var r []E
	for _, e := range elems {
		if slices.Contains(r, e) {
			continue
		}
		if l != nil && l.Contains(e) {
			continue
		}
		r = append(r, e)
	}
	return r
}
