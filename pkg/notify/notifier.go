package notify

import (
	"fmt"

	"github.com/mandelsoft/ecore/pkg/elist"
)

var ErrUnsupportedOperation = fmt.Errorf("unsupported operation")

// Notifier is an observable entity.
type Notifier interface {
	EAdapters() elist.EList[Adapter]
	EDeliver() bool
	ESetDeliver(deliver bool) error
	ENotify(n *Notification)

	// ENotificationRequired is true if delivery is enabled
	// and at least one adapter is attached.
	ENotificationRequired() bool
}

// Adapter observes notifiers.
type Adapter interface {
	NotifyChanged(n *Notification)

	Target() Notifier
	SetTarget(n Notifier)
	// UnsetTarget clears the target only if it is
	// still the given notifier.
	UnsetTarget(n Notifier)
}

// AdapterBase provides the target handling for adapters.
type AdapterBase struct {
	target Notifier
}

func (a *AdapterBase) NotifyChanged(n *Notification) {
}

func (a *AdapterBase) Target() Notifier {
	return a.target
}

func (a *AdapterBase) SetTarget(n Notifier) {
	a.target = n
}

func (a *AdapterBase) UnsetTarget(n Notifier) {
	if a.target == n {
		a.target = nil
	}
}

type funcAdapter struct {
	AdapterBase
	f func(n *Notification)
}

// AdapterFunc provides an adapter calling the given function.
func AdapterFunc(f func(n *Notification)) Adapter {
	return &funcAdapter{f: f}
}

func (a *funcAdapter) NotifyChanged(n *Notification) {
	a.f(n)
}

////////////////////////////////////////////////////////////////////////////////

// BasicNotifier is the embeddable notifier implementation.
// It must be initialized with the identity of the embedding
// object, if this differs from the BasicNotifier itself.
type BasicNotifier struct {
	self      Notifier
	adapters  *elist.BasicList[Adapter]
	noDeliver bool
}

var _ Notifier = (*BasicNotifier)(nil)

func NewBasicNotifier() *BasicNotifier {
	n := &BasicNotifier{}
	n.InitNotifier(n)
	return n
}

func (b *BasicNotifier) InitNotifier(self Notifier) {
	b.self = self
}

func (b *BasicNotifier) notifier() Notifier {
	if b.self == nil {
		return b
	}
	return b.self
}

func (b *BasicNotifier) EAdapters() elist.EList[Adapter] {
	if b.adapters == nil {
		b.adapters = elist.NewBasicList[Adapter](true)
		b.adapters.SetHooks(&adapterHooks{owner: b.notifier()})
	}
	return b.adapters
}

func (b *BasicNotifier) EDeliver() bool {
	return !b.noDeliver
}

func (b *BasicNotifier) ESetDeliver(deliver bool) error {
	b.noDeliver = !deliver
	return nil
}

func (b *BasicNotifier) ENotificationRequired() bool {
	return b.adapters != nil && !b.adapters.Empty() && b.notifier().EDeliver()
}

func (b *BasicNotifier) ENotify(n *Notification) {
	if !b.notifier().ENotificationRequired() {
		return
	}
	for _, a := range b.adapters.BasicSlice() {
		a.NotifyChanged(n)
	}
}

type adapterHooks struct {
	elist.NoHooks[Adapter]
	owner Notifier
}

func (h *adapterHooks) DidAdd(index int, a Adapter) {
	a.SetTarget(h.owner)
}

func (h *adapterHooks) DidRemove(index int, a Adapter) {
	if h.owner.EDeliver() {
		a.NotifyChanged(New(h.owner, REMOVING_ADAPTER, NO_FEATURE_ID, a, nil, index))
	}
	a.UnsetTarget(h.owner)
}

func (h *adapterHooks) DidSet(index int, n, o Adapter) {
	h.DidRemove(index, o)
	h.DidAdd(index, n)
}

func (h *adapterHooks) DidClear(old []Adapter) {
	for i, a := range old {
		h.DidRemove(i, a)
	}
}

////////////////////////////////////////////////////////////////////////////////

// NonDeliveringNotifier is a notifier without delivery control.
type NonDeliveringNotifier struct {
	BasicNotifier
}

func NewNonDeliveringNotifier() *NonDeliveringNotifier {
	n := &NonDeliveringNotifier{}
	n.InitNotifier(n)
	return n
}

func (b *NonDeliveringNotifier) EDeliver() bool {
	return false
}

func (b *NonDeliveringNotifier) ESetDeliver(deliver bool) error {
	return ErrUnsupportedOperation
}

func (b *NonDeliveringNotifier) ENotificationRequired() bool {
	return false
}

func (b *NonDeliveringNotifier) ENotify(n *Notification) {
}
