package ecore

import (
	"iter"
	"net/url"

	"github.com/modern-go/reflect2"

	"github.com/mandelsoft/ecore/pkg/elist"
	"github.com/mandelsoft/ecore/pkg/notify"
)

// BasicEObject is the embeddable base implementation of the
// object protocol. Embedding types must call Init with their
// own identity before the object is used. Typed classes
// override the *FromID dispatch methods and EBasicInverseAdd/
// EBasicInverseRemove for the features they declare.
type BasicEObject struct {
	notify.BasicNotifier

	self               InternalEObject
	class              EClass
	container          InternalEObject
	containerFeatureID int
	resource           Resource
	proxyURI           *url.URL
}

var _ InternalEObject = (*BasicEObject)(nil)

func (o *BasicEObject) Init(self InternalEObject, class EClass) {
	o.self = self
	o.class = class
	o.InitNotifier(self)
}

// Self returns the outermost object embedding this base.
func (o *BasicEObject) Self() InternalEObject {
	return o.self
}

func (o *BasicEObject) this() InternalEObject {
	if o.self == nil {
		panic("object not initialized")
	}
	return o.self
}

// Internal returns the internal object protocol of a value
// or nil, if the value is nil or no object.
func Internal(v any) InternalEObject {
	if isNil(v) {
		return nil
	}
	i, _ := v.(InternalEObject)
	return i
}

func isNil(v any) bool {
	return v == nil || reflect2.IsNil(v)
}

func (o *BasicEObject) EClass() EClass {
	return o.class
}

func (o *BasicEObject) EIsProxy() bool {
	return o.proxyURI != nil
}

func (o *BasicEObject) EProxyURI() *url.URL {
	return o.proxyURI
}

func (o *BasicEObject) ESetProxyURI(uri *url.URL) {
	o.proxyURI = uri
}

func (o *BasicEObject) EResolveProxy(proxy InternalEObject) EObject {
	return ResolveProxy(proxy, o.this())
}

////////////////////////////////////////////////////////////////////////////////
// containment

func (o *BasicEObject) EInternalContainer() InternalEObject {
	return o.container
}

func (o *BasicEObject) EContainerFeatureID() int {
	return o.containerFeatureID
}

func (o *BasicEObject) EContainer() EObject {
	c, chain := o.EResolveContainer()
	chain.Dispatch()
	return c
}

// EResolveContainer returns the container, resolving a container
// proxy. Notifications caused by a resolution are returned
// and must be dispatched by the caller.
func (o *BasicEObject) EResolveContainer() (EObject, *notify.Chain) {
	c := o.container
	if c == nil {
		return nil, nil
	}
	if !c.EIsProxy() {
		return c, nil
	}
	self := o.this()
	resolved := Internal(self.EResolveProxy(c))
	if resolved == nil || resolved == c {
		return c, nil
	}
	id := o.containerFeatureID
	chain := self.EBasicRemoveFromContainer(nil)
	o.container = resolved
	o.containerFeatureID = id
	if id > EOPPOSITE_FEATURE_BASE && self.ENotificationRequired() {
		n := notify.New(self, notify.RESOLVE, id, c, resolved, notify.NO_INDEX)
		chain = notify.Append(chain, n.WithFeature(self.EClass().EStructuralFeature(id)))
	}
	return resolved, chain
}

func (o *BasicEObject) EContainingFeature() EStructuralFeature {
	c := o.container
	if c == nil {
		return nil
	}
	if o.containerFeatureID <= EOPPOSITE_FEATURE_BASE {
		return c.EClass().EStructuralFeature(EOPPOSITE_FEATURE_BASE - o.containerFeatureID)
	}
	if r, ok := o.this().EClass().EStructuralFeature(o.containerFeatureID).(EReference); ok && r.EOpposite() != nil {
		return r.EOpposite()
	}
	return nil
}

func (o *BasicEObject) EContainmentFeature() EReference {
	return containmentFeature(o.this(), o.container, o.containerFeatureID)
}

func containmentFeature(obj EObject, container EObject, featureID int) EReference {
	if isNil(container) {
		return nil
	}
	if featureID <= EOPPOSITE_FEATURE_BASE {
		r, _ := container.EClass().EStructuralFeature(EOPPOSITE_FEATURE_BASE - featureID).(EReference)
		return r
	}
	if r, ok := obj.EClass().EStructuralFeature(featureID).(EReference); ok {
		return r.EOpposite()
	}
	return nil
}

func resolvesProxies(r EReference) bool {
	return r != nil && r.IsResolveProxies()
}

func (o *BasicEObject) EBasicSetContainer(newContainer InternalEObject, newContainerFeatureID int, chain *notify.Chain) *notify.Chain {
	self := o.this()
	oldContainer := o.container
	oldResource := o.resource
	var newResource Resource

	if oldResource != nil {
		if newContainer != nil && !resolvesProxies(containmentFeature(self, newContainer, newContainerFeatureID)) {
			if l, ok := oldResource.Contents().(InternalEList); ok {
				chain = l.BasicRemove(self, chain)
			}
			o.resource = nil
			newResource = newContainer.EInternalResource()
		} else {
			oldResource = nil
		}
	} else {
		if oldContainer != nil {
			oldResource = oldContainer.EInternalResource()
		}
		if newContainer != nil {
			newResource = newContainer.EInternalResource()
		}
	}

	if oldResource != newResource && oldResource != nil {
		oldResource.Detached(self)
	}

	oldContainerFeatureID := o.containerFeatureID
	o.container = newContainer
	o.containerFeatureID = newContainerFeatureID

	if oldResource != newResource && newResource != nil {
		newResource.Attached(self)
	}

	if self.ENotificationRequired() {
		if oldContainer != nil && oldContainerFeatureID >= 0 && oldContainerFeatureID != newContainerFeatureID {
			n := notify.New(self, notify.SET, oldContainerFeatureID, oldContainer, nil, notify.NO_INDEX)
			chain = notify.Append(chain, n.WithFeature(self.EClass().EStructuralFeature(oldContainerFeatureID)))
		}
		if newContainerFeatureID >= 0 {
			var old any
			if oldContainerFeatureID == newContainerFeatureID && oldContainer != nil {
				old = oldContainer
			}
			var nc any
			if newContainer != nil {
				nc = newContainer
			}
			n := notify.New(self, notify.SET, newContainerFeatureID, old, nc, notify.NO_INDEX)
			chain = notify.Append(chain, n.WithFeature(self.EClass().EStructuralFeature(newContainerFeatureID)))
		}
	}
	return chain
}

func (o *BasicEObject) EBasicRemoveFromContainer(chain *notify.Chain) *notify.Chain {
	if o.containerFeatureID >= 0 {
		return o.this().EBasicRemoveFromContainerFeature(chain)
	}
	if o.container != nil {
		return o.container.EInverseRemove(o.this(), EOPPOSITE_FEATURE_BASE-o.containerFeatureID, nil, chain)
	}
	return chain
}

func (o *BasicEObject) EBasicRemoveFromContainerFeature(chain *notify.Chain) *notify.Chain {
	self := o.this()
	r, ok := self.EClass().EStructuralFeature(o.containerFeatureID).(EReference)
	if !ok || r.EOpposite() == nil || o.container == nil {
		return chain
	}
	inv := r.EOpposite()
	return o.container.EInverseRemove(self, inv.FeatureID(), inv.EContainingClass(), chain)
}

func (o *BasicEObject) EInverseAdd(otherEnd InternalEObject, featureID int, baseClass EClass, chain *notify.Chain) *notify.Chain {
	self := o.this()
	if featureID >= 0 {
		return self.EBasicInverseAdd(otherEnd, self.EDerivedStructuralFeatureID(featureID, baseClass), chain)
	}
	if o.container != nil {
		chain = self.EBasicRemoveFromContainer(chain)
	}
	return self.EBasicSetContainer(otherEnd, featureID, chain)
}

func (o *BasicEObject) EInverseRemove(otherEnd InternalEObject, featureID int, baseClass EClass, chain *notify.Chain) *notify.Chain {
	self := o.this()
	if featureID >= 0 {
		return self.EBasicInverseRemove(otherEnd, self.EDerivedStructuralFeatureID(featureID, baseClass), chain)
	}
	return self.EBasicSetContainer(nil, featureID, chain)
}

func (o *BasicEObject) EBasicInverseAdd(otherEnd InternalEObject, featureID int, chain *notify.Chain) *notify.Chain {
	return chain
}

func (o *BasicEObject) EBasicInverseRemove(otherEnd InternalEObject, featureID int, chain *notify.Chain) *notify.Chain {
	return chain
}

// EDerivedStructuralFeatureID maps a feature id given relative
// to baseClass to the id used by the class of this object.
func (o *BasicEObject) EDerivedStructuralFeatureID(featureID int, baseClass EClass) int {
	c := o.this().EClass()
	if baseClass == nil || c == nil || baseClass == c {
		return featureID
	}
	f := baseClass.EStructuralFeature(featureID)
	if f == nil {
		return featureID
	}
	if id := c.FeatureID(f); id >= 0 {
		return id
	}
	return featureID
}

////////////////////////////////////////////////////////////////////////////////
// resource

func (o *BasicEObject) EDirectResource() Resource {
	return o.resource
}

func (o *BasicEObject) EInternalResource() Resource {
	if o.resource != nil {
		return o.resource
	}
	count := 0
	for c := o.container; c != nil; c = c.EInternalContainer() {
		if count++; count > 100000 {
			return nil
		}
		if r := c.EDirectResource(); r != nil {
			return r
		}
	}
	return nil
}

func (o *BasicEObject) EResource() Resource {
	return o.this().EInternalResource()
}

// ESetResource is called by a resource's content list for objects
// added or removed as top level objects.
func (o *BasicEObject) ESetResource(resource Resource, chain *notify.Chain) *notify.Chain {
	self := o.this()
	oldResource := o.resource
	if oldResource != nil && resource != nil {
		if l, ok := oldResource.Contents().(InternalEList); ok {
			chain = l.BasicRemove(self, chain)
		}
		oldResource.Detached(self)
	}

	if oldContainer := o.container; oldContainer != nil {
		if resolvesProxies(self.EContainmentFeature()) {
			if r := oldContainer.EInternalResource(); r != nil {
				if resource == nil {
					r.Attached(self)
				} else if oldResource == nil {
					r.Detached(self)
				}
			}
		} else {
			chain = self.EBasicRemoveFromContainer(chain)
			chain = self.EBasicSetContainer(nil, EOPPOSITE_FEATURE_BASE, chain)
		}
	}
	o.resource = resource
	return chain
}

////////////////////////////////////////////////////////////////////////////////
// content

// EContents returns a snapshot of the directly contained objects.
func (o *BasicEObject) EContents() elist.EList[EObject] {
	self := o.this()
	var r []EObject
	for _, ref := range self.EClass().EAllContainments() {
		if !ref.IsDerived() {
			r = appendValues(r, self, ref)
		}
	}
	return elist.NewImmutableList(r...)
}

// EAllContents iterates over all directly and indirectly
// contained objects in depth-first pre-order.
func (o *BasicEObject) EAllContents() iter.Seq[EObject] {
	return AllContents(o.this())
}

// ECrossReferences returns a snapshot of the objects referenced
// by non-containment references.
func (o *BasicEObject) ECrossReferences() elist.EList[EObject] {
	self := o.this()
	var r []EObject
	for _, ref := range self.EClass().EAllReferences() {
		if !ref.IsContainment() && !ref.IsContainer() && !ref.IsDerived() {
			r = appendValues(r, self, ref)
		}
	}
	return elist.NewImmutableList(r...)
}

func AllContents(obj EObject) iter.Seq[EObject] {
	return func(yield func(EObject) bool) {
		var walk func(o EObject) bool
		walk = func(o EObject) bool {
			for _, c := range o.EContents().All() {
				if !yield(c) || !walk(c) {
					return false
				}
			}
			return true
		}
		walk(obj)
	}
}

func appendValues(r []EObject, obj InternalEObject, ref EReference) []EObject {
	v, err := obj.EGetFromID(obj.EClass().FeatureID(ref), true)
	if err != nil {
		return r
	}
	switch t := v.(type) {
	case elist.EList[EObject]:
		r = append(r, t.ToSlice()...)
	case EObject:
		if !isNil(t) {
			r = append(r, t)
		}
	}
	return r
}

////////////////////////////////////////////////////////////////////////////////
// reflective access

func (o *BasicEObject) featureID(f EStructuralFeature) (int, error) {
	c := o.this().EClass()
	if isNil(f) || c == nil {
		return -1, featureError(c, f)
	}
	id := c.FeatureID(f)
	if id < 0 {
		return -1, featureError(c, f)
	}
	return id, nil
}

func (o *BasicEObject) EGet(f EStructuralFeature) (any, error) {
	return o.EGetResolve(f, true)
}

func (o *BasicEObject) EGetResolve(f EStructuralFeature, resolve bool) (any, error) {
	id, err := o.featureID(f)
	if err != nil {
		return nil, err
	}
	return o.this().EGetFromID(id, resolve)
}

func (o *BasicEObject) ESet(f EStructuralFeature, value any) error {
	id, err := o.featureID(f)
	if err != nil {
		return err
	}
	return o.this().ESetFromID(id, value)
}

func (o *BasicEObject) EIsSet(f EStructuralFeature) (bool, error) {
	id, err := o.featureID(f)
	if err != nil {
		return false, err
	}
	return o.this().EIsSetFromID(id)
}

func (o *BasicEObject) EUnset(f EStructuralFeature) error {
	id, err := o.featureID(f)
	if err != nil {
		return err
	}
	return o.this().EUnsetFromID(id)
}

func (o *BasicEObject) EGetFromID(featureID int, resolve bool) (any, error) {
	return nil, featureIDError(o.class, featureID)
}

func (o *BasicEObject) ESetFromID(featureID int, value any) error {
	return featureIDError(o.class, featureID)
}

func (o *BasicEObject) EIsSetFromID(featureID int) (bool, error) {
	return false, featureIDError(o.class, featureID)
}

func (o *BasicEObject) EUnsetFromID(featureID int) error {
	return featureIDError(o.class, featureID)
}
