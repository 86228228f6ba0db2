package ecore

import (
	"github.com/mandelsoft/ecore/pkg/elist"
	"github.com/mandelsoft/ecore/pkg/notify"
)

type ListOption interface {
	ApplyTo(opts *ListOptions)
}

type ListOptions struct {
	containment   bool
	opposite      int
	oppositeClass EClass
	proxies       bool
}

type containment struct{}

// Containment marks the list as holding contained objects.
func Containment() ListOption {
	return containment{}
}

func (o containment) ApplyTo(opts *ListOptions) {
	opts.containment = true
}

type opposite struct {
	id    int
	class EClass
}

// Opposite configures the feature id (relative to class) of the
// reciprocal reference on the elements.
func Opposite(id int, class EClass) ListOption {
	return opposite{id, class}
}

func (o opposite) ApplyTo(opts *ListOptions) {
	opts.opposite = o.id
	opts.oppositeClass = o.class
}

type proxies struct{}

// ResolveProxies enables lazy proxy resolution on read.
func ResolveProxies() ListOption {
	return proxies{}
}

func (o proxies) ApplyTo(opts *ListOptions) {
	opts.proxies = true
}

// ReferenceOptions provides the list options for a reference.
func ReferenceOptions(ref EReference) []ListOption {
	var opts []ListOption
	if ref.IsContainment() {
		opts = append(opts, Containment())
	}
	if opp := ref.EOpposite(); opp != nil {
		opts = append(opts, Opposite(opp.FeatureID(), opp.EContainingClass()))
	}
	if ref.IsResolveProxies() {
		opts = append(opts, ResolveProxies())
	}
	return opts
}

////////////////////////////////////////////////////////////////////////////////

// EObjectList is the list used for many valued references.
// It maintains containment and opposite references of its
// elements and resolves proxies on read.
type EObjectList struct {
	*notify.NotifyingList[EObject]
	owner   InternalEObject
	options ListOptions
}

var _ InternalEList = (*EObjectList)(nil)

var _ elist.Resolving[EObject] = (*EObjectList)(nil)

func NewEObjectList(owner InternalEObject, featureID int, opts ...ListOption) *EObjectList {
	l := &EObjectList{
		NotifyingList: notify.NewNotifyingList[EObject](owner, featureID, true),
		owner:         owner,
		options:       ListOptions{opposite: notify.NO_FEATURE_ID},
	}
	for _, o := range opts {
		o.ApplyTo(&l.options)
	}
	if c := owner.EClass(); c != nil {
		l.SetFeature(c.EStructuralFeature(featureID))
	}
	if l.HasInverse() {
		l.SetInverse(l)
	}
	l.SetOps(l)
	return l
}

func (l *EObjectList) IsContainment() bool {
	return l.options.containment
}

func (l *EObjectList) HasOpposite() bool {
	return l.options.opposite != notify.NO_FEATURE_ID
}

func (l *EObjectList) HasInverse() bool {
	return l.options.containment || l.HasOpposite()
}

func (l *EObjectList) HasProxies() bool {
	return l.options.proxies
}

func (l *EObjectList) InverseAdd(e EObject, chain *notify.Chain) *notify.Chain {
	ie := Internal(e)
	if ie == nil {
		return chain
	}
	if l.HasOpposite() {
		return ie.EInverseAdd(l.owner, l.options.opposite, l.options.oppositeClass, chain)
	}
	if l.options.containment {
		return ie.EInverseAdd(l.owner, EOPPOSITE_FEATURE_BASE-l.FeatureID(), nil, chain)
	}
	return chain
}

func (l *EObjectList) InverseRemove(e EObject, chain *notify.Chain) *notify.Chain {
	ie := Internal(e)
	if ie == nil {
		return chain
	}
	if l.HasOpposite() {
		return ie.EInverseRemove(l.owner, l.options.opposite, l.options.oppositeClass, chain)
	}
	if l.options.containment {
		return ie.EInverseRemove(l.owner, EOPPOSITE_FEATURE_BASE-l.FeatureID(), nil, chain)
	}
	return chain
}

func (l *EObjectList) IsUnresolved(e EObject) bool {
	return l.options.proxies && !isNil(e) && e.EIsProxy()
}

func (l *EObjectList) Resolve(index int, e EObject) EObject {
	r, chain := l.ResolveAt(index, e)
	chain.Dispatch()
	return r
}

// ResolveAt resolves the element stored at the given index.
// If the element is replaced by its resolution, the
// notifications describing the change are returned and must be
// dispatched by the caller.
func (l *EObjectList) ResolveAt(index int, e EObject) (EObject, *notify.Chain) {
	if !l.IsUnresolved(e) {
		return e, nil
	}
	proxy := Internal(e)
	if proxy == nil {
		return e, nil
	}
	resolved := l.owner.EResolveProxy(proxy)
	if isNil(resolved) || resolved == e {
		return e, nil
	}
	l.Replace(index, resolved)

	var chain *notify.Chain
	if l.options.containment {
		chain = l.InverseRemove(e, chain)
		if r := Internal(resolved); r != nil && r.EInternalContainer() == nil {
			chain = l.InverseAdd(resolved, chain)
		}
	}
	if l.owner.ENotificationRequired() {
		chain = notify.Append(chain, l.CreateNotification(notify.RESOLVE, e, resolved, index, false))
	}
	return resolved, chain
}
