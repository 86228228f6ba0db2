package ecore

import (
	"fmt"
	"strconv"
	"strings"
)

// EURIFragmentSegment describes the location of a contained object
// relative to this object: @<feature> for single valued features
// and @<feature>.<index> for many valued ones.
func (o *BasicEObject) EURIFragmentSegment(feature EStructuralFeature, obj EObject) (string, error) {
	self := o.this()
	if isNil(feature) {
		if isNil(obj) {
			return "", fmt.Errorf("%w: no feature given", ErrInvalidFragment)
		}
		feature = obj.EContainingFeature()
		if isNil(feature) {
			return "", fmt.Errorf("%w: object not contained", ErrInvalidFragment)
		}
	}
	id, err := o.featureID(feature)
	if err != nil {
		return "", err
	}
	segment := "@" + feature.Name()
	if feature.IsMany() {
		v, err := self.EGetFromID(id, false)
		if err != nil {
			return "", err
		}
		l, ok := v.(InternalEList)
		if !ok {
			return "", fmt.Errorf("%w: feature %q is no object list", ErrInvalidFragment, feature.Name())
		}
		index := l.IndexOf(obj)
		if index < 0 {
			return "", fmt.Errorf("%w: object not found in feature %q", ErrInvalidFragment, feature.Name())
		}
		segment += "." + strconv.Itoa(index)
	}
	return segment, nil
}

// EObjectForURIFragmentSegment locates the object described by
// a fragment segment. A nil object is returned if the segment
// is well-formed but there is no such object.
func (o *BasicEObject) EObjectForURIFragmentSegment(segment string) (EObject, error) {
	if len(segment) < 2 || segment[0] != '@' {
		return nil, fmt.Errorf("%w: expecting @ at index 0 of %q", ErrInvalidFragment, segment)
	}
	self := o.this()
	name := segment[1:]
	position := -1
	if last := name[len(name)-1:]; last >= "0" && last <= "9" {
		if i := strings.LastIndex(name, "."); i >= 0 {
			p, err := strconv.Atoi(name[i+1:])
			if err != nil {
				return nil, fmt.Errorf("%w: invalid index in %q", ErrInvalidFragment, segment)
			}
			position = p
			name = name[:i]
		}
	}

	f := self.EClass().EStructuralFeatureByName(name)
	if isNil(f) {
		return nil, fmt.Errorf("%w: unknown feature %q for class %q", ErrInvalidFragment, name, ClassName(self.EClass()))
	}
	v, err := self.EGetFromID(self.EClass().FeatureID(f), false)
	if err != nil {
		return nil, err
	}
	if position >= 0 {
		l, ok := v.(InternalEList)
		if !ok {
			return nil, fmt.Errorf("%w: feature %q is no object list", ErrInvalidFragment, name)
		}
		if position >= l.Size() {
			return nil, nil
		}
		return l.BasicGet(position)
	}
	e, ok := v.(EObject)
	if !ok || isNil(e) {
		return nil, nil
	}
	return e, nil
}
