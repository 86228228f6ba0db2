package elist

import (
	"iter"
)

// EList is an ordered collection of elements with an
// optional uniqueness constraint.
// Index based operations validate their index and
// fail with ErrIndexOutOfBounds.
type EList[E comparable] interface {
	Size() int
	Empty() bool

	Get(index int) (E, error)
	Set(index int, e E) (E, error)

	// Add appends an element. For unique lists an element
	// already contained is ignored and false is returned.
	Add(e E) (bool, error)
	Insert(index int, e E) (bool, error)
	AddAll(elems ...E) (bool, error)
	InsertAll(index int, elems ...E) (bool, error)

	Remove(e E) (bool, error)
	RemoveAt(index int) (E, error)
	RemoveAll(elems ...E) (bool, error)

	// Move moves the given element to a new index.
	Move(newIndex int, e E) error
	MoveIndex(newIndex, oldIndex int) (E, error)
	Clear() error

	IndexOf(e E) int
	Contains(e E) bool
	All() iter.Seq2[int, E]
	ToSlice() []E

	IsUnique() bool
}

// Ops provides the mutation primitives called by the public
// list operations after the arguments have been validated.
// Layered lists replace them to add behaviour on top
// of the plain sequence.
type Ops[E comparable] interface {
	DoAddUnique(e E)
	DoInsertUnique(index int, e E)
	DoAddAllUnique(elems []E)
	DoInsertAllUnique(index int, elems []E)
	DoSetUnique(index int, e E) E
	DoRemoveAt(index int) E
	DoMove(newIndex, oldIndex int) E
	DoClear()

	// Resolve maps a stored element to the element
	// visible to readers.
	Resolve(index int, e E) E
}

// Resolving is an optional capability of Ops
// used to detect stored placeholders.
type Resolving[E comparable] interface {
	IsUnresolved(e E) bool
}

// Hooks are called after every structural change.
type Hooks[E comparable] interface {
	DidAdd(index int, e E)
	DidRemove(index int, e E)
	DidSet(index int, newE, oldE E)
	DidMove(newIndex int, e E, oldIndex int)
	DidClear(old []E)
	DidChange()
}

type NoHooks[E comparable] struct{}

var _ Hooks[int] = NoHooks[int]{}

func (NoHooks[E]) DidAdd(int, E) {}
func (NoHooks[E]) DidRemove(int, E) {}
func (NoHooks[E]) DidSet(int, E, E) {}
func (NoHooks[E]) DidMove(int, E, int) {}
func (NoHooks[E]) DidClear([]E) {}
func (NoHooks[E]) DidChange() {}
