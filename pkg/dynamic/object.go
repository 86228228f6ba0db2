package dynamic

import (
	"fmt"

	"github.com/modern-go/reflect2"

	"github.com/mandelsoft/ecore/pkg/ecore"
	"github.com/mandelsoft/ecore/pkg/elist"
	"github.com/mandelsoft/ecore/pkg/notify"
)

// Object is a reflective object storing its feature values in
// slots indexed by feature id. It implements the feature dispatch
// generated classes implement statically.
type Object struct {
	ecore.BasicEObject
	slots []any
}

var _ ecore.InternalEObject = (*Object)(nil)

// reference is the slot of a single valued reference.
type reference struct {
	value ecore.EObject
}

func New(class ecore.EClass) *Object {
	o := &Object{}
	o.Init(o, class)
	return o
}

func (o *Object) Init(self ecore.InternalEObject, class ecore.EClass) {
	o.BasicEObject.Init(self, class)
	o.slots = make([]any, class.FeatureCount())
}

func (o *Object) slot(featureID int) ecore.EStructuralFeature {
	c := o.EClass()
	f := c.EStructuralFeature(featureID)
	if f == nil {
		return nil
	}
	if n := c.FeatureCount(); len(o.slots) < n {
		o.slots = append(o.slots, make([]any, n-len(o.slots))...)
	}
	return f
}

func asReference(f ecore.EStructuralFeature) ecore.EReference {
	r, _ := f.(ecore.EReference)
	return r
}

// List returns the list of a many valued feature.
func (o *Object) List(featureID int) (elist.EList[any], *ecore.EObjectList, error) {
	f := o.slot(featureID)
	if f == nil || !f.IsMany() {
		return nil, nil, ecore.FeatureIDError(o, featureID)
	}
	if r := asReference(f); r != nil {
		l, ok := o.slots[featureID].(*ecore.EObjectList)
		if !ok {
			l = ecore.NewEObjectList(o.Self(), featureID, ecore.ReferenceOptions(r)...)
			o.slots[featureID] = l
		}
		return nil, l, nil
	}
	l, ok := o.slots[featureID].(*notify.NotifyingList[any])
	if !ok {
		l = notify.NewNotifyingList[any](o.Self(), featureID, f.IsUnique())
		l.SetFeature(f)
		o.slots[featureID] = l
	}
	return l, nil, nil
}

func (o *Object) ref(featureID int) *reference {
	r, ok := o.slots[featureID].(*reference)
	if !ok {
		r = &reference{}
		o.slots[featureID] = r
	}
	return r
}

func (o *Object) EGetFromID(featureID int, resolve bool) (any, error) {
	f := o.slot(featureID)
	if f == nil {
		return o.BasicEObject.EGetFromID(featureID, resolve)
	}
	if f.IsMany() {
		a, r, err := o.List(featureID)
		if r != nil {
			return r, err
		}
		return a, err
	}
	if r := asReference(f); r != nil {
		if r.IsContainer() {
			return nilObject(ecore.Container(o.Self(), featureID, resolve)), nil
		}
		slot := o.ref(featureID)
		if resolve && r.IsResolveProxies() {
			return nilObject(o.resolve(featureID, slot)), nil
		}
		return nilObject(slot.value), nil
	}
	if v := o.slots[featureID]; v != nil {
		return v, nil
	}
	return f.DefaultValue(), nil
}

// resolve replaces a proxy stored in a single valued reference
// by its resolution.
func (o *Object) resolve(featureID int, slot *reference) ecore.EObject {
	old := ecore.Internal(slot.value)
	if old == nil || !old.EIsProxy() {
		return slot.value
	}
	resolved := o.EResolveProxy(old)
	if ecore.Internal(resolved) == nil || resolved == slot.value {
		return slot.value
	}
	slot.value = resolved

	var chain *notify.Chain
	if r := asReference(o.EClass().EStructuralFeature(featureID)); r != nil && r.IsContainment() {
		chain = ecore.InverseRemoveFor(o.Self(), featureID, old, chain)
		if n := ecore.Internal(resolved); n.EInternalContainer() == nil {
			chain = ecore.InverseAddFor(o.Self(), featureID, n, chain)
		}
	}
	if o.ENotificationRequired() {
		n := notify.New(o.Self(), notify.RESOLVE, featureID, old, resolved, notify.NO_INDEX)
		chain = notify.Append(chain, n.WithFeature(o.EClass().EStructuralFeature(featureID)))
	}
	chain.Dispatch()
	return resolved
}

func nilObject(o ecore.EObject) any {
	if ecore.Internal(o) == nil {
		return nil
	}
	return o
}

func (o *Object) ESetFromID(featureID int, value any) error {
	f := o.slot(featureID)
	if f == nil {
		return o.BasicEObject.ESetFromID(featureID, value)
	}
	if value != nil && reflect2.IsNil(value) {
		value = nil
	}
	if f.IsMany() {
		return o.setList(f, featureID, value)
	}
	if r := asReference(f); r != nil {
		obj, err := object(r, value)
		if err != nil {
			return err
		}
		if r.IsContainer() {
			return ecore.SetContainer(o.Self(), featureID, ecore.Internal(obj))
		}
		ecore.SetReference(o.Self(), featureID, &o.ref(featureID).value, obj)
		return nil
	}

	a, _ := f.(ecore.EAttribute)
	if value != nil && a != nil && a.EAttributeType() != nil {
		v, err := a.EAttributeType().Convert(value)
		if err != nil {
			return fmt.Errorf("%w: feature %q", err, f.Name())
		}
		value = v
	}
	old := o.slots[featureID]
	o.slots[featureID] = value
	if o.ENotificationRequired() {
		oldValue := old
		if old == nil {
			oldValue = f.DefaultValue()
		}
		newValue := value
		if value == nil {
			newValue = f.DefaultValue()
		}
		n := notify.New(o.Self(), notify.SET, featureID, oldValue, newValue, notify.NO_INDEX)
		notify.Dispatch(n.WithFeature(f).WithWasSet(old != nil))
	}
	return nil
}

func object(r ecore.EReference, value any) (ecore.EObject, error) {
	if value == nil {
		return nil, nil
	}
	obj, ok := value.(ecore.EObject)
	if !ok {
		return nil, fmt.Errorf("%w: %T for reference %q", ecore.ErrInvalidValue, value, r.Name())
	}
	if t := r.EReferenceType(); t != nil && !t.IsSuperTypeOf(obj.EClass()) {
		return nil, fmt.Errorf("%w: class %q for reference %q", ecore.ErrInvalidValue, ecore.ClassName(obj.EClass()), r.Name())
	}
	return obj, nil
}

func values(value any) ([]any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case []ecore.EObject:
		r := make([]any, len(v))
		for i, e := range v {
			r[i] = e
		}
		return r, nil
	case elist.EList[ecore.EObject]:
		return values(v.ToSlice())
	case elist.EList[any]:
		return v.ToSlice(), nil
	}
	return nil, fmt.Errorf("%w: %T is no list", ecore.ErrInvalidValue, value)
}

func (o *Object) setList(f ecore.EStructuralFeature, featureID int, value any) error {
	elems, err := values(value)
	if err != nil {
		return err
	}
	a, l, err := o.List(featureID)
	if err != nil {
		return err
	}
	if l != nil {
		r := asReference(f)
		objs := make([]ecore.EObject, len(elems))
		for i, e := range elems {
			objs[i], err = object(r, e)
			if err != nil {
				return err
			}
			if objs[i] == nil {
				return fmt.Errorf("%w: nil element for reference %q", ecore.ErrInvalidValue, f.Name())
			}
		}
		err = l.Clear()
		if err == nil {
			_, err = l.AddAll(objs...)
		}
		return err
	}

	if attr, ok := f.(ecore.EAttribute); ok && attr.EAttributeType() != nil {
		for i, e := range elems {
			elems[i], err = attr.EAttributeType().Convert(e)
			if err != nil {
				return fmt.Errorf("%w: feature %q", err, f.Name())
			}
		}
	}
	err = a.Clear()
	if err == nil {
		_, err = a.AddAll(elems...)
	}
	return err
}

func (o *Object) EIsSetFromID(featureID int) (bool, error) {
	f := o.slot(featureID)
	if f == nil {
		return o.BasicEObject.EIsSetFromID(featureID)
	}
	if f.IsMany() {
		switch l := o.slots[featureID].(type) {
		case *ecore.EObjectList:
			return !l.Empty(), nil
		case *notify.NotifyingList[any]:
			return !l.Empty(), nil
		}
		return false, nil
	}
	if r := asReference(f); r != nil {
		if r.IsContainer() {
			return o.EContainerFeatureID() == featureID && o.EInternalContainer() != nil, nil
		}
		return ecore.Internal(o.ref(featureID).value) != nil, nil
	}
	return o.slots[featureID] != nil, nil
}

func (o *Object) EUnsetFromID(featureID int) error {
	f := o.slot(featureID)
	if f == nil {
		return o.BasicEObject.EUnsetFromID(featureID)
	}
	if f.IsMany() {
		a, l, err := o.List(featureID)
		if err != nil {
			return err
		}
		if l != nil {
			return l.Clear()
		}
		return a.Clear()
	}
	if r := asReference(f); r != nil {
		if r.IsContainer() {
			return ecore.SetContainer(o.Self(), featureID, nil)
		}
		ecore.SetReference(o.Self(), featureID, &o.ref(featureID).value, nil)
		return nil
	}
	old := o.slots[featureID]
	o.slots[featureID] = nil
	if o.ENotificationRequired() {
		oldValue := old
		if old == nil {
			oldValue = f.DefaultValue()
		}
		n := notify.New(o.Self(), notify.UNSET, featureID, oldValue, f.DefaultValue(), notify.NO_INDEX)
		notify.Dispatch(n.WithFeature(f).WithWasSet(old != nil))
	}
	return nil
}

func (o *Object) EBasicInverseAdd(otherEnd ecore.InternalEObject, featureID int, chain *notify.Chain) *notify.Chain {
	r := asReference(o.slot(featureID))
	if r == nil {
		return o.BasicEObject.EBasicInverseAdd(otherEnd, featureID, chain)
	}
	if r.IsContainer() {
		return ecore.InverseAddContainer(o.Self(), featureID, otherEnd, chain)
	}
	if r.IsMany() {
		_, l, _ := o.List(featureID)
		return l.BasicAdd(otherEnd, chain)
	}
	return ecore.InverseAddReference(o.Self(), featureID, &o.ref(featureID).value, otherEnd, chain)
}

func (o *Object) EBasicInverseRemove(otherEnd ecore.InternalEObject, featureID int, chain *notify.Chain) *notify.Chain {
	r := asReference(o.slot(featureID))
	if r == nil {
		return o.BasicEObject.EBasicInverseRemove(otherEnd, featureID, chain)
	}
	if r.IsContainer() {
		return ecore.InverseRemoveContainer(o.Self(), featureID, chain)
	}
	if r.IsMany() {
		_, l, _ := o.List(featureID)
		return l.BasicRemove(otherEnd, chain)
	}
	return ecore.InverseRemoveReference(o.Self(), featureID, &o.ref(featureID).value, chain)
}
