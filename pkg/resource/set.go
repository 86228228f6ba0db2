package resource

import (
	"fmt"
	"net/url"
	"slices"

	"github.com/mandelsoft/ecore/pkg/ecore"
)

var ErrDuplicateResource = fmt.Errorf("duplicate resource")

// ResourceSet resolves object URIs across a set of resources.
type ResourceSet struct {
	resources []*Resource
	byURI     map[string]*Resource
}

var _ ecore.ResourceSet = (*ResourceSet)(nil)

func NewResourceSet() *ResourceSet {
	return &ResourceSet{byURI: map[string]*Resource{}}
}

func key(uri *url.URL) string {
	if uri == nil {
		return ""
	}
	return ecore.TrimFragment(uri).String()
}

// CreateResource creates a new empty resource for the given URI.
func (s *ResourceSet) CreateResource(uri *url.URL, opts ...Option) (*Resource, error) {
	if _, ok := s.byURI[key(uri)]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateResource, key(uri))
	}
	return New(uri, append(opts, InSet(s))...), nil
}

func (s *ResourceSet) add(r *Resource) {
	if r.set != nil {
		r.set.Remove(r)
	}
	r.set = s
	s.resources = append(s.resources, r)
	if r.uri != nil {
		s.byURI[key(r.uri)] = r
	}
}

func (s *ResourceSet) rename(r *Resource, old *url.URL) {
	if old != nil && s.byURI[key(old)] == r {
		delete(s.byURI, key(old))
	}
	if r.uri != nil {
		s.byURI[key(r.uri)] = r
	}
}

// Add adds a resource created outside of the set.
func (s *ResourceSet) Add(r *Resource) error {
	if o, ok := s.byURI[key(r.uri)]; ok && o != r {
		return fmt.Errorf("%w: %s", ErrDuplicateResource, key(r.uri))
	}
	if r.set != s {
		s.add(r)
	}
	return nil
}

func (s *ResourceSet) Remove(r *Resource) {
	i := slices.Index(s.resources, r)
	if i < 0 {
		return
	}
	s.resources = slices.Delete(s.resources, i, i+1)
	if r.uri != nil && s.byURI[key(r.uri)] == r {
		delete(s.byURI, key(r.uri))
	}
	r.set = nil
}

func (s *ResourceSet) Resources() []*Resource {
	return slices.Clone(s.resources)
}

// Resource returns the resource for the document addressed by
// the URI, ignoring its fragment.
func (s *ResourceSet) Resource(uri *url.URL) *Resource {
	return s.byURI[key(uri)]
}

// EObject resolves an object URI. There is no storage layer,
// so resources are never loaded on demand.
func (s *ResourceSet) EObject(uri *url.URL, loadOnDemand bool) ecore.EObject {
	r := s.Resource(uri)
	if r == nil {
		if loadOnDemand {
			log.Debug("no resource for {{uri}}", "uri", key(uri))
		}
		return nil
	}
	return r.EObject(uri.Fragment)
}
