package ecore

import (
	"fmt"
)

var (
	ErrInvalidFeature       = fmt.Errorf("invalid feature")
	ErrInvalidFeatureID     = fmt.Errorf("invalid feature id")
	ErrInvalidValue         = fmt.Errorf("invalid value")
	ErrRecursiveContainment = fmt.Errorf("recursive containment not allowed")
	ErrInvalidFragment      = fmt.Errorf("invalid uri fragment")
)

func featureError(c EClass, f EStructuralFeature) error {
	name := "<nil>"
	if !isNil(f) {
		name = f.Name()
	}
	return fmt.Errorf("%w %q for class %q", ErrInvalidFeature, name, ClassName(c))
}

func featureIDError(c EClass, id int) error {
	return fmt.Errorf("%w %d for class %q", ErrInvalidFeatureID, id, ClassName(c))
}

// FeatureIDError is used by feature dispatch implementations
// for feature ids they do not handle.
func FeatureIDError(o EObject, id int) error {
	return featureIDError(o.EClass(), id)
}

func ClassName(c EClass) string {
	if isNil(c) {
		return "<none>"
	}
	return c.Name()
}
