package elist

import (
	"iter"
	"slices"
)

// ImmutableList is a read-only snapshot. Every mutator
// fails with ErrImmutable.
type ImmutableList[E comparable] struct {
	data []E
}

var _ EList[int] = (*ImmutableList[int])(nil)

func NewImmutableList[E comparable](elems ...E) *ImmutableList[E] {
	return &ImmutableList[E]{data: slices.Clone(elems)}
}

func EmptyList[E comparable]() *ImmutableList[E] {
	return &ImmutableList[E]{}
}

func (l *ImmutableList[E]) IsUnique() bool {
	return false
}

func (l *ImmutableList[E]) Size() int {
	return len(l.data)
}

func (l *ImmutableList[E]) Empty() bool {
	return len(l.data) == 0
}

func (l *ImmutableList[E]) Get(index int) (E, error) {
	var _nil E
	if index < 0 || index >= len(l.data) {
		return _nil, indexError(index, len(l.data))
	}
	return l.data[index], nil
}

func (l *ImmutableList[E]) IndexOf(e E) int {
	return slices.Index(l.data, e)
}

func (l *ImmutableList[E]) Contains(e E) bool {
	return slices.Contains(l.data, e)
}

func (l *ImmutableList[E]) All() iter.Seq2[int, E] {
	return slices.All(l.data)
}

func (l *ImmutableList[E]) ToSlice() []E {
	return slices.Clone(l.data)
}

func (l *ImmutableList[E]) Set(int, E) (E, error) {
	var _nil E
	return _nil, ErrImmutable
}

func (l *ImmutableList[E]) Add(E) (bool, error) {
	return false, ErrImmutable
}

func (l *ImmutableList[E]) Insert(int, E) (bool, error) {
	return false, ErrImmutable
}

func (l *ImmutableList[E]) AddAll(...E) (bool, error) {
	return false, ErrImmutable
}

func (l *ImmutableList[E]) InsertAll(int, ...E) (bool, error) {
	return false, ErrImmutable
}

func (l *ImmutableList[E]) Remove(E) (bool, error) {
	return false, ErrImmutable
}

func (l *ImmutableList[E]) RemoveAt(int) (E, error) {
	var _nil E
	return _nil, ErrImmutable
}

func (l *ImmutableList[E]) RemoveAll(...E) (bool, error) {
	return false, ErrImmutable
}

func (l *ImmutableList[E]) Move(int, E) error {
	return ErrImmutable
}

func (l *ImmutableList[E]) MoveIndex(int, int) (E, error) {
	var _nil E
	return _nil, ErrImmutable
}

func (l *ImmutableList[E]) Clear() error {
	return ErrImmutable
}
