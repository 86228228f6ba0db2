package ecore

import (
	"iter"
	"net/url"

	"github.com/mandelsoft/ecore/pkg/elist"
	"github.com/mandelsoft/ecore/pkg/notify"
)

// EOPPOSITE_FEATURE_BASE is the base for container feature ids
// of unidirectional containments. An object contained by the
// feature with id n of its container gets the container
// feature id EOPPOSITE_FEATURE_BASE - n.
const EOPPOSITE_FEATURE_BASE = -1

// EObject is a feature-indexed, observable object.
type EObject interface {
	notify.Notifier

	EClass() EClass
	EIsProxy() bool
	EResource() Resource

	EContainer() EObject
	EContainingFeature() EStructuralFeature
	EContainmentFeature() EReference

	EContents() elist.EList[EObject]
	EAllContents() iter.Seq[EObject]
	ECrossReferences() elist.EList[EObject]

	EGet(feature EStructuralFeature) (any, error)
	EGetResolve(feature EStructuralFeature, resolve bool) (any, error)
	ESet(feature EStructuralFeature, value any) error
	EIsSet(feature EStructuralFeature) (bool, error)
	EUnset(feature EStructuralFeature) error
}

// InternalEObject is the protocol used by lists, resources
// and opposite objects to keep the object graph consistent.
type InternalEObject interface {
	EObject

	EInternalContainer() InternalEObject
	EContainerFeatureID() int
	EInternalResource() Resource
	EDirectResource() Resource

	ESetResource(resource Resource, chain *notify.Chain) *notify.Chain
	EBasicSetContainer(container InternalEObject, featureID int, chain *notify.Chain) *notify.Chain
	EBasicRemoveFromContainer(chain *notify.Chain) *notify.Chain
	EBasicRemoveFromContainerFeature(chain *notify.Chain) *notify.Chain

	// EInverseAdd is called by the other end of a relation.
	// Non-negative feature ids are given relative to baseClass,
	// negative ones denote a containment without opposite.
	EInverseAdd(otherEnd InternalEObject, featureID int, baseClass EClass, chain *notify.Chain) *notify.Chain
	EInverseRemove(otherEnd InternalEObject, featureID int, baseClass EClass, chain *notify.Chain) *notify.Chain
	EBasicInverseAdd(otherEnd InternalEObject, featureID int, chain *notify.Chain) *notify.Chain
	EBasicInverseRemove(otherEnd InternalEObject, featureID int, chain *notify.Chain) *notify.Chain
	EDerivedStructuralFeatureID(featureID int, baseClass EClass) int

	EProxyURI() *url.URL
	ESetProxyURI(uri *url.URL)
	EResolveProxy(proxy InternalEObject) EObject

	EGetFromID(featureID int, resolve bool) (any, error)
	ESetFromID(featureID int, value any) error
	EIsSetFromID(featureID int) (bool, error)
	EUnsetFromID(featureID int) error

	EURIFragmentSegment(feature EStructuralFeature, obj EObject) (string, error)
	EObjectForURIFragmentSegment(segment string) (EObject, error)
}

// InternalEList is implemented by lists supporting
// inverse bookkeeping by the other end of a relation.
type InternalEList interface {
	elist.EList[EObject]
	BasicGet(index int) (EObject, error)
	BasicAdd(e EObject, chain *notify.Chain) *notify.Chain
	BasicRemove(e EObject, chain *notify.Chain) *notify.Chain
}

// Resource is the collaborator owning a set of top level objects.
type Resource interface {
	notify.Notifier

	URI() *url.URL
	Contents() elist.EList[EObject]
	ResourceSet() ResourceSet

	// Attached is called for objects becoming part of the resource,
	// directly or through containment.
	Attached(obj EObject)
	// Detached is called for objects leaving the resource.
	Detached(obj EObject)

	EObject(fragment string) EObject
	URIFragment(obj EObject) string
}

// ResourceSet resolves objects by URI.
type ResourceSet interface {
	EObject(uri *url.URL, loadOnDemand bool) EObject
}
