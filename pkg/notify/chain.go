package notify

import (
	"slices"
)

// Chain accumulates the notifications of a composite change.
// Compatible notifications are merged on Add, the remaining
// ones are delivered once by Dispatch.
// A nil chain is valid and denotes an empty chain.
type Chain struct {
	notifications []*Notification
	dispatched    bool
}

func NewChain(notifications ...*Notification) *Chain {
	c := &Chain{}
	for _, n := range notifications {
		c.Add(n)
	}
	return c
}

// Append adds a notification to a chain, creating the
// chain if required.
func Append(c *Chain, n *Notification) *Chain {
	if n == nil {
		return c
	}
	if c == nil {
		c = &Chain{}
	}
	c.Add(n)
	return c
}

// Add returns false if the notification has been merged
// into an already retained one.
func (c *Chain) Add(n *Notification) bool {
	if c.dispatched {
		panic("notification chain already dispatched")
	}
	if n == nil {
		return false
	}
	for _, e := range c.notifications {
		if e.Merge(n) {
			return false
		}
	}
	c.notifications = append(c.notifications, n)
	return true
}

func (c *Chain) Size() int {
	if c == nil {
		return 0
	}
	return len(c.notifications)
}

func (c *Chain) Notifications() []*Notification {
	if c == nil {
		return nil
	}
	return slices.Clone(c.notifications)
}

// Dispatch delivers all retained notifications in
// insertion order.
func (c *Chain) Dispatch() {
	if c == nil || c.dispatched {
		return
	}
	c.dispatched = true
	for _, n := range c.notifications {
		Dispatch(n)
	}
}

// Dispatch delivers a single notification to its notifier.
func Dispatch(n *Notification) {
	if n != nil && n.notifier != nil {
		n.notifier.ENotify(n)
	}
}
