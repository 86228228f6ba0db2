package ecore

// The schema interfaces describe the metadata the object runtime
// consumes. A concrete implementation is provided by package metamodel.

type ENamedElement interface {
	Name() string
}

type EClassifier interface {
	ENamedElement
}

type EDataType interface {
	EClassifier
	IsInstance(v any) bool
	// Convert maps a value to the canonical representation
	// of the data type.
	Convert(v any) (any, error)
}

type EClass interface {
	EClassifier
	IsAbstract() bool
	ESuperTypes() []EClass
	IsSuperTypeOf(c EClass) bool

	// FeatureCount is the number of features including inherited ones.
	FeatureCount() int
	EStructuralFeature(featureID int) EStructuralFeature
	EStructuralFeatureByName(name string) EStructuralFeature
	// FeatureID returns the id of the given feature in this class
	// or -1 if the feature is not part of the class.
	FeatureID(f EStructuralFeature) int

	EAllStructuralFeatures() []EStructuralFeature
	EAllAttributes() []EAttribute
	EAllReferences() []EReference
	EAllContainments() []EReference
}

type EStructuralFeature interface {
	ENamedElement
	// FeatureID is the id relative to the containing class.
	FeatureID() int
	EContainingClass() EClass
	IsMany() bool
	IsUnique() bool
	IsDerived() bool
	DefaultValue() any
}

type EAttribute interface {
	EStructuralFeature
	EAttributeType() EDataType
}

type EReference interface {
	EStructuralFeature
	IsContainment() bool
	// IsContainer is true if the opposite reference is a containment.
	IsContainer() bool
	EOpposite() EReference
	IsResolveProxies() bool
	EReferenceType() EClass
}
