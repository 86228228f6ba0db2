package ecoreutil

import (
	"github.com/mandelsoft/ecore/pkg/ecore"
	"github.com/mandelsoft/ecore/pkg/elist"
)

// Copier copies containment trees. Copy creates the copies of the
// objects and their attributes and contained objects. After all
// trees are copied, CopyReferences sets the non-containment
// references of the copies.
type Copier struct {
	options Options
	copies  map[ecore.EObject]ecore.EObject
	order   []ecore.EObject
}

func NewCopier(opts ...Option) *Copier {
	c := &Copier{
		options: defaultOptions(),
		copies:  map[ecore.EObject]ecore.EObject{},
	}
	for _, o := range opts {
		o.ApplyTo(&c.options)
	}
	return c
}

// Get returns the copy of an object or nil.
func (c *Copier) Get(obj ecore.EObject) ecore.EObject {
	return c.copies[obj]
}

// Originals returns the copied objects in copy order.
func (c *Copier) Originals() []ecore.EObject {
	return append([]ecore.EObject(nil), c.order...)
}

func (c *Copier) Size() int {
	return len(c.order)
}

func (c *Copier) Copy(obj ecore.EObject) (ecore.EObject, error) {
	if ecore.Internal(obj) == nil {
		return nil, nil
	}
	if r := c.copies[obj]; r != nil {
		return r, nil
	}
	class := obj.EClass()
	r, err := c.options.Factory.Create(class)
	if err != nil {
		return nil, err
	}
	c.copies[obj] = r
	c.order = append(c.order, obj)

	if o := ecore.Internal(obj); o.EIsProxy() {
		if t := ecore.Internal(r); t != nil {
			t.ESetProxyURI(o.EProxyURI())
		}
	}

	for _, f := range class.EAllStructuralFeatures() {
		if f.IsDerived() {
			continue
		}
		switch t := f.(type) {
		case ecore.EAttribute:
			err = c.copyAttribute(t, obj, r)
		case ecore.EReference:
			if t.IsContainment() {
				err = c.copyContainment(t, obj, r)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (c *Copier) CopyAll(objs ...ecore.EObject) ([]ecore.EObject, error) {
	r := make([]ecore.EObject, 0, len(objs))
	for _, o := range objs {
		n, err := c.Copy(o)
		if err != nil {
			return nil, err
		}
		r = append(r, n)
	}
	return r, nil
}

func (c *Copier) copyAttribute(a ecore.EAttribute, src, dst ecore.EObject) error {
	set, err := src.EIsSet(a)
	if err != nil || !set {
		return err
	}
	v, err := src.EGet(a)
	if err != nil {
		return err
	}
	if l, ok := v.(elist.EList[any]); ok {
		v = l.ToSlice()
	}
	return dst.ESet(a, v)
}

func (c *Copier) copyContainment(r ecore.EReference, src, dst ecore.EObject) error {
	set, err := src.EIsSet(r)
	if err != nil || !set {
		return err
	}
	v, err := src.EGetResolve(r, c.options.ResolveProxies)
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case elist.EList[ecore.EObject]:
		objs, err := c.CopyAll(c.elements(t)...)
		if err != nil {
			return err
		}
		return dst.ESet(r, objs)
	case ecore.EObject:
		o, err := c.Copy(t)
		if err != nil {
			return err
		}
		return dst.ESet(r, o)
	}
	return nil
}

func (c *Copier) elements(l elist.EList[ecore.EObject]) []ecore.EObject {
	if c.options.ResolveProxies {
		return l.ToSlice()
	}
	if b, ok := l.(interface{ BasicSlice() []ecore.EObject }); ok {
		return b.BasicSlice()
	}
	return l.ToSlice()
}

// CopyReferences sets the cross references of all copies.
func (c *Copier) CopyReferences() error {
	for _, src := range c.order {
		dst := c.copies[src]
		for _, r := range src.EClass().EAllReferences() {
			if r.IsContainment() || r.IsContainer() || r.IsDerived() {
				continue
			}
			if dst.EClass().FeatureID(r) < 0 {
				continue
			}
			err := c.copyReference(r, src, dst)
			if err != nil {
				return err
			}
		}
	}
	log.Debug("copied references of {{count}} objects", "count", len(c.order))
	return nil
}

func (c *Copier) target(r ecore.EReference, obj ecore.EObject) ecore.EObject {
	if t := c.copies[obj]; t != nil {
		return t
	}
	if c.options.UseOriginalReferences && r.EOpposite() == nil {
		return obj
	}
	return nil
}

func (c *Copier) copyReference(r ecore.EReference, src, dst ecore.EObject) error {
	set, err := src.EIsSet(r)
	if err != nil || !set {
		return err
	}
	v, err := src.EGetResolve(r, c.options.ResolveProxies)
	if err != nil {
		return err
	}
	switch t := v.(type) {
	case elist.EList[ecore.EObject]:
		dv, err := dst.EGetResolve(r, false)
		if err != nil {
			return err
		}
		list, ok := dv.(elist.EList[ecore.EObject])
		if !ok {
			return nil
		}
		pos := 0
		for _, e := range c.elements(t) {
			n := c.target(r, e)
			if n == nil {
				continue
			}
			idx := list.IndexOf(n)
			if idx < 0 {
				_, err = list.Insert(pos, n)
			} else if idx != pos {
				_, err = list.MoveIndex(pos, idx)
			}
			if err != nil {
				return err
			}
			pos++
		}
	case ecore.EObject:
		if n := c.target(r, t); n != nil {
			return dst.ESet(r, n)
		}
	}
	return nil
}

// Copy copies a containment tree including its references.
func Copy(obj ecore.EObject, opts ...Option) (ecore.EObject, error) {
	c := NewCopier(opts...)
	r, err := c.Copy(obj)
	if err != nil {
		return nil, err
	}
	return r, c.CopyReferences()
}

// CopyAll copies a set of containment trees including the
// references among them.
func CopyAll(objs []ecore.EObject, opts ...Option) ([]ecore.EObject, error) {
	c := NewCopier(opts...)
	r, err := c.CopyAll(objs...)
	if err != nil {
		return nil, err
	}
	return r, c.CopyReferences()
}
