package notify

import (
	"fmt"
	"reflect"
	"slices"
)

type EventType int

const (
	SET EventType = iota + 1
	UNSET
	ADD
	REMOVE
	ADD_MANY
	REMOVE_MANY
	MOVE
	REMOVING_ADAPTER
	RESOLVE
)

const (
	NO_INDEX      = -1
	NO_FEATURE_ID = -1
)

var eventTypeNames = map[EventType]string{
	SET:              "SET",
	UNSET:            "UNSET",
	ADD:              "ADD",
	REMOVE:           "REMOVE",
	ADD_MANY:         "ADD_MANY",
	REMOVE_MANY:      "REMOVE_MANY",
	MOVE:             "MOVE",
	REMOVING_ADAPTER: "REMOVING_ADAPTER",
	RESOLVE:          "RESOLVE",
}

func (t EventType) String() string {
	if n, ok := eventTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Notification describes a single state transition of a Notifier.
type Notification struct {
	notifier  Notifier
	eventType EventType
	feature   any
	featureID int
	oldValue  any
	newValue  any
	position  int
	wasSet    bool
}

func New(notifier Notifier, eventType EventType, featureID int, oldValue, newValue any, position int) *Notification {
	return &Notification{
		notifier:  notifier,
		eventType: eventType,
		featureID: featureID,
		oldValue:  oldValue,
		newValue:  newValue,
		position:  position,
		wasSet:    true,
	}
}

// WithFeature attaches the schema feature the change refers to.
func (n *Notification) WithFeature(f any) *Notification {
	n.feature = f
	return n
}

// WithWasSet records whether the feature was set before the change.
func (n *Notification) WithWasSet(b bool) *Notification {
	n.wasSet = b
	return n
}

func (n *Notification) Notifier() Notifier {
	return n.notifier
}

func (n *Notification) EventType() EventType {
	return n.eventType
}

func (n *Notification) Feature() any {
	return n.feature
}

func (n *Notification) FeatureID() int {
	return n.featureID
}

func (n *Notification) OldValue() any {
	return n.oldValue
}

func (n *Notification) NewValue() any {
	return n.newValue
}

func (n *Notification) Position() int {
	return n.position
}

func (n *Notification) WasSet() bool {
	return n.wasSet
}

// IsTouch reports whether the notification describes
// a change without visible effect.
func (n *Notification) IsTouch() bool {
	switch n.eventType {
	case RESOLVE, REMOVING_ADAPTER:
		return true
	case MOVE:
		old, ok := n.oldValue.(int)
		return ok && old == n.position
	case SET, UNSET:
		return n.wasSet && sameValue(n.oldValue, n.newValue)
	default:
		return false
	}
}

func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}

func (n *Notification) String() string {
	return fmt.Sprintf("%s(feature %d, pos %d, old %v, new %v)", n.eventType, n.featureID, n.position, n.oldValue, n.newValue)
}

func (n *Notification) sameTarget(o *Notification) bool {
	return n.notifier == o.notifier && n.featureID == o.featureID
}

// Merge tries to absorb the incoming notification.
// If true is returned, the incoming notification must be discarded.
func (n *Notification) Merge(incoming *Notification) bool {
	if incoming == nil || !n.sameTarget(incoming) {
		return false
	}
	switch n.eventType {
	case SET, UNSET:
		switch incoming.eventType {
		case SET, UNSET:
			n.newValue = incoming.newValue
			if incoming.eventType == SET {
				n.eventType = SET
			}
			return true
		}
	case REMOVE:
		if incoming.eventType == REMOVE {
			p1 := n.position
			p2 := incoming.position
			n.eventType = REMOVE_MANY
			if p1 <= p2 {
				n.oldValue = []any{n.oldValue, incoming.oldValue}
				n.newValue = []int{p1, p2 + 1}
				n.position = p1
			} else {
				n.oldValue = []any{incoming.oldValue, n.oldValue}
				n.newValue = []int{p2, p1}
				n.position = p2
			}
			return true
		}
	case REMOVE_MANY:
		if incoming.eventType == REMOVE {
			positions, ok := n.newValue.([]int)
			if !ok {
				return false
			}
			values, ok := n.oldValue.([]any)
			if !ok || len(values) != len(positions) {
				return false
			}
			np := incoming.position
			j := 0
			for j < len(positions) && positions[j] <= np {
				np++
				j++
			}
			n.newValue = slices.Insert(slices.Clone(positions), j, np)
			n.oldValue = slices.Insert(slices.Clone(values), j, incoming.oldValue)
			if j == 0 {
				n.position = np
			}
			return true
		}
	}
	return false
}
