package ecore

import (
	"fmt"

	"github.com/mandelsoft/ecore/pkg/notify"
)

// Helpers implementing the accessor patterns of typed classes
// for single valued references.

func reference(self InternalEObject, featureID int) EReference {
	r, _ := self.EClass().EStructuralFeature(featureID).(EReference)
	return r
}

// InverseAddFor informs the new value of a reference about
// being referenced by self.
func InverseAddFor(self InternalEObject, featureID int, value InternalEObject, chain *notify.Chain) *notify.Chain {
	ref := reference(self, featureID)
	if ref == nil || value == nil {
		return chain
	}
	if opp := ref.EOpposite(); opp != nil {
		return value.EInverseAdd(self, opp.FeatureID(), opp.EContainingClass(), chain)
	}
	if ref.IsContainment() {
		return value.EInverseAdd(self, EOPPOSITE_FEATURE_BASE-featureID, nil, chain)
	}
	return chain
}

// InverseRemoveFor informs the old value of a reference about
// no longer being referenced by self.
func InverseRemoveFor(self InternalEObject, featureID int, value InternalEObject, chain *notify.Chain) *notify.Chain {
	ref := reference(self, featureID)
	if ref == nil || value == nil {
		return chain
	}
	if opp := ref.EOpposite(); opp != nil {
		return value.EInverseRemove(self, opp.FeatureID(), opp.EContainingClass(), chain)
	}
	if ref.IsContainment() {
		return value.EInverseRemove(self, EOPPOSITE_FEATURE_BASE-featureID, nil, chain)
	}
	return chain
}

// BasicSetReference stores a new value in the slot of a single
// valued reference and records the SET notification.
func BasicSetReference[T comparable](self InternalEObject, featureID int, slot *T, value T, chain *notify.Chain) *notify.Chain {
	old := *slot
	*slot = value
	if self.ENotificationRequired() {
		n := notify.New(self, notify.SET, featureID, nilValue(old), nilValue(value), notify.NO_INDEX)
		chain = notify.Append(chain, n.WithFeature(self.EClass().EStructuralFeature(featureID)))
	}
	return chain
}

// SetReference implements the setter of a single valued
// containment or bidirectional reference.
func SetReference[T comparable](self InternalEObject, featureID int, slot *T, value T) {
	old := *slot
	if value != old {
		var chain *notify.Chain
		if o := Internal(old); o != nil {
			chain = InverseRemoveFor(self, featureID, o, chain)
		}
		if n := Internal(value); n != nil {
			chain = InverseAddFor(self, featureID, n, chain)
		}
		chain = BasicSetReference(self, featureID, slot, value, chain)
		chain.Dispatch()
	} else if self.ENotificationRequired() {
		n := notify.New(self, notify.SET, featureID, nilValue(value), nilValue(value), notify.NO_INDEX)
		notify.Dispatch(n.WithFeature(self.EClass().EStructuralFeature(featureID)))
	}
}

// InverseAddReference implements the inverse add for a single
// valued reference: the current value is released and
// the other end is stored.
func InverseAddReference[T comparable](self InternalEObject, featureID int, slot *T, otherEnd InternalEObject, chain *notify.Chain) *notify.Chain {
	if o := Internal(*slot); o != nil {
		chain = InverseRemoveFor(self, featureID, o, chain)
	}
	v, ok := any(otherEnd).(T)
	if !ok {
		return chain
	}
	return BasicSetReference(self, featureID, slot, v, chain)
}

// InverseRemoveReference implements the inverse remove for a
// single valued reference.
func InverseRemoveReference[T comparable](self InternalEObject, featureID int, slot *T, chain *notify.Chain) *notify.Chain {
	var _nil T
	return BasicSetReference(self, featureID, slot, _nil, chain)
}

// Container implements the getter of a container reference.
func Container(self InternalEObject, featureID int, resolve bool) EObject {
	if self.EContainerFeatureID() != featureID {
		return nil
	}
	if resolve {
		return self.EContainer()
	}
	if c := self.EInternalContainer(); c != nil {
		return c
	}
	return nil
}

// SetContainer implements the setter of a container reference.
func SetContainer(self InternalEObject, featureID int, container InternalEObject) error {
	ref := reference(self, featureID)
	if ref == nil || ref.EOpposite() == nil {
		return featureIDError(self.EClass(), featureID)
	}
	if container != self.EInternalContainer() || (self.EContainerFeatureID() != featureID && container != nil) {
		if IsAncestor(self, container) {
			return fmt.Errorf("%w for %s", ErrRecursiveContainment, ClassName(self.EClass()))
		}
		var chain *notify.Chain
		if self.EInternalContainer() != nil {
			chain = self.EBasicRemoveFromContainer(chain)
		}
		if container != nil {
			opp := ref.EOpposite()
			chain = container.EInverseAdd(self, opp.FeatureID(), opp.EContainingClass(), chain)
		}
		chain = self.EBasicSetContainer(container, featureID, chain)
		chain.Dispatch()
	} else if self.ENotificationRequired() {
		n := notify.New(self, notify.SET, featureID, nilValue(container), nilValue(container), notify.NO_INDEX)
		notify.Dispatch(n.WithFeature(ref))
	}
	return nil
}

// InverseAddContainer implements the inverse add for a
// container reference.
func InverseAddContainer(self InternalEObject, featureID int, otherEnd InternalEObject, chain *notify.Chain) *notify.Chain {
	if self.EInternalContainer() != nil {
		chain = self.EBasicRemoveFromContainer(chain)
	}
	return self.EBasicSetContainer(otherEnd, featureID, chain)
}

// InverseRemoveContainer implements the inverse remove for a
// container reference.
func InverseRemoveContainer(self InternalEObject, featureID int, chain *notify.Chain) *notify.Chain {
	return self.EBasicSetContainer(nil, featureID, chain)
}

// nilValue maps typed nil pointers to a plain nil.
func nilValue(v any) any {
	if isNil(v) {
		return nil
	}
	return v
}
