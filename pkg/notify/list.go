package notify

import (
	"slices"

	"github.com/mandelsoft/ecore/pkg/elist"
)

// Inverse maintains the opposite end of a relation
// for elements added to or removed from a NotifyingList.
type Inverse[E comparable] interface {
	InverseAdd(e E, chain *Chain) *Chain
	InverseRemove(e E, chain *Chain) *Chain
}

// NotifyingList is a list turning every structural change
// into notifications of its owner.
type NotifyingList[E comparable] struct {
	*elist.BasicList[E]
	owner     Notifier
	featureID int
	feature   any
	inverse   Inverse[E]
}

var (
	_ elist.EList[int] = (*NotifyingList[int])(nil)
	_ elist.Ops[int]   = (*NotifyingList[int])(nil)
)

func NewNotifyingList[E comparable](owner Notifier, featureID int, unique bool) *NotifyingList[E] {
	l := &NotifyingList[E]{
		BasicList: elist.NewBasicList[E](unique),
		owner:     owner,
		featureID: featureID,
	}
	l.SetOps(l)
	return l
}

func (l *NotifyingList[E]) SetFeature(f any) {
	l.feature = f
}

func (l *NotifyingList[E]) SetInverse(inv Inverse[E]) {
	l.inverse = inv
}

func (l *NotifyingList[E]) Owner() Notifier {
	return l.owner
}

func (l *NotifyingList[E]) FeatureID() int {
	return l.featureID
}

func (l *NotifyingList[E]) Feature() any {
	return l.feature
}

func (l *NotifyingList[E]) isNotificationRequired() bool {
	return l.owner != nil && l.owner.ENotificationRequired()
}

func (l *NotifyingList[E]) isSet() bool {
	return l.Size() != 0
}

// CreateNotification creates a notification for this list's feature.
func (l *NotifyingList[E]) CreateNotification(eventType EventType, oldValue, newValue any, position int, wasSet bool) *Notification {
	return New(l.owner, eventType, l.featureID, oldValue, newValue, position).WithFeature(l.feature).WithWasSet(wasSet)
}

func toAny[E any](elems []E) []any {
	r := make([]any, len(elems))
	for i, e := range elems {
		r[i] = e
	}
	return r
}

func (l *NotifyingList[E]) DoAddUnique(e E) {
	l.DoInsertUnique(l.Size(), e)
}

func (l *NotifyingList[E]) DoInsertUnique(index int, e E) {
	required := l.isNotificationRequired()
	wasSet := l.isSet()

	l.BasicList.DoInsertUnique(index, e)

	var chain *Chain
	if l.inverse != nil {
		chain = l.inverse.InverseAdd(e, chain)
	}
	if required {
		chain = Append(chain, l.CreateNotification(ADD, nil, e, index, wasSet))
	}
	chain.Dispatch()
}

func (l *NotifyingList[E]) DoAddAllUnique(elems []E) {
	l.DoInsertAllUnique(l.Size(), elems)
}

func (l *NotifyingList[E]) DoInsertAllUnique(index int, elems []E) {
	if len(elems) == 0 {
		return
	}
	required := l.isNotificationRequired()
	wasSet := l.isSet()

	l.BasicList.DoInsertAllUnique(index, elems)

	var chain *Chain
	if l.inverse != nil {
		for _, e := range elems {
			chain = l.inverse.InverseAdd(e, chain)
		}
	}
	if required {
		var n *Notification
		if len(elems) == 1 {
			n = l.CreateNotification(ADD, nil, elems[0], index, wasSet)
		} else {
			n = l.CreateNotification(ADD_MANY, nil, toAny(elems), index, wasSet)
		}
		chain = Append(chain, n)
	}
	chain.Dispatch()
}

func (l *NotifyingList[E]) DoSetUnique(index int, e E) E {
	var _nil E

	required := l.isNotificationRequired()
	wasSet := l.isSet()

	old := l.BasicList.DoSetUnique(index, e)

	var chain *Chain
	if l.inverse != nil && e != old {
		if old != _nil {
			chain = l.inverse.InverseRemove(old, chain)
		}
		chain = l.inverse.InverseAdd(e, chain)
	}
	if required {
		chain = Append(chain, l.CreateNotification(SET, old, e, index, wasSet))
	}
	chain.Dispatch()
	return old
}

func (l *NotifyingList[E]) DoRemoveAt(index int) E {
	old, chain := l.removeAt(index, nil)
	chain.Dispatch()
	return old
}

func (l *NotifyingList[E]) removeAt(index int, chain *Chain) (E, *Chain) {
	required := l.isNotificationRequired()
	wasSet := l.isSet()

	old := l.BasicList.DoRemoveAt(index)

	if l.inverse != nil {
		chain = l.inverse.InverseRemove(old, chain)
	}
	if required {
		chain = Append(chain, l.CreateNotification(REMOVE, old, nil, index, wasSet))
	}
	return old, chain
}

func (l *NotifyingList[E]) DoMove(newIndex, oldIndex int) E {
	required := l.isNotificationRequired()
	e := l.BasicList.DoMove(newIndex, oldIndex)
	if required {
		Dispatch(l.CreateNotification(MOVE, oldIndex, e, newIndex, true))
	}
	return e
}

func (l *NotifyingList[E]) DoClear() {
	required := l.isNotificationRequired()
	old := l.BasicSlice()
	if len(old) == 0 {
		l.BasicList.DoClear()
		return
	}

	l.BasicList.DoClear()

	var chain *Chain
	if l.inverse != nil {
		for _, e := range old {
			chain = l.inverse.InverseRemove(e, chain)
		}
	}
	if required {
		var n *Notification
		if len(old) == 1 {
			n = l.CreateNotification(REMOVE, old[0], nil, 0, true)
		} else {
			positions := make([]int, len(old))
			for i := range positions {
				positions[i] = i
			}
			n = l.CreateNotification(REMOVE_MANY, toAny(old), positions, 0, true)
		}
		chain = Append(chain, n)
	}
	chain.Dispatch()
}

// RemoveAll removes all occurrences of the given elements.
// The single removals are merged into one REMOVE_MANY
// notification carrying the original positions.
func (l *NotifyingList[E]) RemoveAll(elems ...E) (bool, error) {
	var chain *Chain
	modified := false
	for i := l.Size() - 1; i >= 0; i-- {
		if i >= l.Size() {
			continue
		}
		e, err := l.Get(i)
		if err != nil {
			return modified, err
		}
		if slices.Contains(elems, e) {
			_, chain = l.removeAt(i, chain)
			modified = true
		}
	}
	chain.Dispatch()
	return modified, nil
}

////////////////////////////////////////////////////////////////////////////////
// chain accepting operations without inverse handling

// BasicAdd appends an element and returns the notification
// in the given chain instead of dispatching it.
func (l *NotifyingList[E]) BasicAdd(e E, chain *Chain) *Chain {
	required := l.isNotificationRequired()
	wasSet := l.isSet()
	index := l.Size()
	l.BasicList.DoInsertUnique(index, e)
	if required {
		chain = Append(chain, l.CreateNotification(ADD, nil, e, index, wasSet))
	}
	return chain
}

// BasicRemove removes an element and returns the notification
// in the given chain instead of dispatching it.
func (l *NotifyingList[E]) BasicRemove(e E, chain *Chain) *Chain {
	index := l.IndexOf(e)
	if index < 0 {
		return chain
	}
	required := l.isNotificationRequired()
	wasSet := l.isSet()
	old := l.BasicList.DoRemoveAt(index)
	if required {
		chain = Append(chain, l.CreateNotification(REMOVE, old, nil, index, wasSet))
	}
	return chain
}

// BasicSet replaces an element and returns the notification
// in the given chain instead of dispatching it.
func (l *NotifyingList[E]) BasicSet(index int, e E, chain *Chain) (*Chain, error) {
	if index < 0 || index >= l.Size() {
		_, err := l.BasicGet(index)
		return chain, err
	}
	required := l.isNotificationRequired()
	wasSet := l.isSet()
	old := l.BasicList.DoSetUnique(index, e)
	if required {
		chain = Append(chain, l.CreateNotification(SET, old, e, index, wasSet))
	}
	return chain, nil
}
