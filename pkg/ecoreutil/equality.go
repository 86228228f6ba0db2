package ecoreutil

import (
	"fmt"

	"github.com/go-test/deep"

	"github.com/mandelsoft/ecore/pkg/ecore"
	"github.com/mandelsoft/ecore/pkg/elist"
)

// EqualityHelper compares object trees structurally. Objects
// successfully compared are remembered as matching pairs, so
// cyclic and shared references are compared consistently.
type EqualityHelper struct {
	matches     map[ecore.EObject]ecore.EObject
	differences []string
}

func NewEqualityHelper() *EqualityHelper {
	return &EqualityHelper{matches: map[ecore.EObject]ecore.EObject{}}
}

// Get returns the object matched with the given one or nil.
func (h *EqualityHelper) Get(obj ecore.EObject) ecore.EObject {
	return h.matches[obj]
}

// Differences describes the mismatches found so far.
func (h *EqualityHelper) Differences() []string {
	return append([]string(nil), h.differences...)
}

func (h *EqualityHelper) mismatch(msg string, args ...any) bool {
	h.differences = append(h.differences, fmt.Sprintf(msg, args...))
	return false
}

func (h *EqualityHelper) Equals(a, b ecore.EObject) bool {
	ia, ib := ecore.Internal(a), ecore.Internal(b)
	if ia == nil || ib == nil {
		if ia == ib {
			return true
		}
		return h.mismatch("nil mismatch")
	}
	if m := h.matches[a]; m != nil {
		return m == b
	}
	if m := h.matches[b]; m != nil {
		return m == a
	}
	if a == b {
		h.matches[a] = b
		return true
	}

	h.matches[a] = b
	h.matches[b] = a

	if ia.EIsProxy() || ib.EIsProxy() {
		if ia.EIsProxy() && ib.EIsProxy() && ia.EProxyURI().String() == ib.EProxyURI().String() {
			return true
		}
		return h.unmatch(a, b, "proxy mismatch")
	}
	if a.EClass() != b.EClass() {
		return h.unmatch(a, b, "class %s != %s", ecore.ClassName(a.EClass()), ecore.ClassName(b.EClass()))
	}
	for _, f := range a.EClass().EAllStructuralFeatures() {
		if f.IsDerived() {
			continue
		}
		if !h.equalFeature(a, b, f) {
			return h.unmatch(a, b, "%s.%s differs", ecore.ClassName(a.EClass()), f.Name())
		}
	}
	return true
}

func (h *EqualityHelper) unmatch(a, b ecore.EObject, msg string, args ...any) bool {
	delete(h.matches, a)
	delete(h.matches, b)
	return h.mismatch(msg, args...)
}

// EqualsAll compares two object lists element by element.
func (h *EqualityHelper) EqualsAll(a, b []ecore.EObject) bool {
	if len(a) != len(b) {
		return h.mismatch("list size %d != %d", len(a), len(b))
	}
	for i := range a {
		if !h.Equals(a[i], b[i]) {
			return false
		}
	}
	return true
}

func (h *EqualityHelper) equalFeature(a, b ecore.EObject, f ecore.EStructuralFeature) bool {
	if r, ok := f.(ecore.EReference); ok && r.IsContainer() {
		return true
	}
	sa, err := a.EIsSet(f)
	if err != nil {
		return h.mismatch("%s", err)
	}
	sb, err := b.EIsSet(f)
	if err != nil {
		return h.mismatch("%s", err)
	}
	if sa != sb {
		return h.mismatch("%s: set state %t != %t", f.Name(), sa, sb)
	}
	if !sa {
		return true
	}
	va, err := a.EGet(f)
	if err != nil {
		return h.mismatch("%s", err)
	}
	vb, err := b.EGet(f)
	if err != nil {
		return h.mismatch("%s", err)
	}
	if _, ok := f.(ecore.EReference); ok {
		la, oka := va.(elist.EList[ecore.EObject])
		lb, okb := vb.(elist.EList[ecore.EObject])
		if oka && okb {
			return h.EqualsAll(la.ToSlice(), lb.ToSlice())
		}
		oa, _ := va.(ecore.EObject)
		ob, _ := vb.(ecore.EObject)
		return h.Equals(oa, ob)
	}
	if l, ok := va.(elist.EList[any]); ok {
		va = l.ToSlice()
	}
	if l, ok := vb.(elist.EList[any]); ok {
		vb = l.ToSlice()
	}
	if diff := deep.Equal(va, vb); diff != nil {
		for _, d := range diff {
			h.mismatch("%s: %s", f.Name(), d)
		}
		return false
	}
	return true
}

// Equals compares two object trees.
func Equals(a, b ecore.EObject) bool {
	return NewEqualityHelper().Equals(a, b)
}

// EqualsAll compares two lists of object trees.
func EqualsAll(a, b []ecore.EObject) bool {
	return NewEqualityHelper().EqualsAll(a, b)
}
