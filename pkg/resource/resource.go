package resource

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/mandelsoft/ecore/pkg/ecore"
	"github.com/mandelsoft/ecore/pkg/elist"
	"github.com/mandelsoft/ecore/pkg/notify"
)

// RESOURCE_CONTENTS is the feature id used for notifications
// about the top level objects of a resource.
const RESOURCE_CONTENTS = 0

// Resource is an in-memory container for the top level objects
// of an object graph. Objects are never loaded from or stored to
// any storage.
type Resource struct {
	notify.BasicNotifier
	uri      *url.URL
	set      *ResourceSet
	useIDs   bool
	contents *contents
	ids      *IDManager
}

var _ ecore.Resource = (*Resource)(nil)

func New(uri *url.URL, opts ...Option) *Resource {
	var o Options
	for _, e := range opts {
		e.ApplyTo(&o)
	}
	r := &Resource{
		uri:    uri,
		useIDs: o.UseIDs,
		ids:    NewIDManager(),
	}
	r.InitNotifier(r)
	r.contents = newContents(r)
	if o.Set != nil {
		o.Set.add(r)
	}
	return r
}

// Parse creates a resource for a textual URI.
func Parse(uri string, opts ...Option) (*Resource, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}
	return New(u, opts...), nil
}

func (r *Resource) URI() *url.URL {
	return r.uri
}

func (r *Resource) SetURI(uri *url.URL) {
	old := r.uri
	r.uri = uri
	if r.set != nil {
		r.set.rename(r, old)
	}
}

func (r *Resource) ResourceSet() ecore.ResourceSet {
	if r.set == nil {
		return nil
	}
	return r.set
}

func (r *Resource) Set() *ResourceSet {
	return r.set
}

func (r *Resource) Contents() elist.EList[ecore.EObject] {
	return r.contents
}

func (r *Resource) IDManager() *IDManager {
	return r.ids
}

func (r *Resource) ID(obj ecore.EObject) string {
	return r.ids.ID(obj)
}

// Attached registers an object and its contents.
func (r *Resource) Attached(obj ecore.EObject) {
	log.Trace("attach {{class}} to {{uri}}", "class", ecore.ClassName(obj.EClass()), "uri", r.uriString())
	r.ids.Register(obj)
	for c := range obj.EAllContents() {
		r.ids.Register(c)
	}
}

// Detached unregisters an object and its contents.
func (r *Resource) Detached(obj ecore.EObject) {
	log.Trace("detach {{class}} from {{uri}}", "class", ecore.ClassName(obj.EClass()), "uri", r.uriString())
	r.ids.Unregister(obj)
	for c := range obj.EAllContents() {
		r.ids.Unregister(c)
	}
}

func (r *Resource) uriString() string {
	if r.uri == nil {
		return ""
	}
	return r.uri.String()
}

// URIFragment describes the location of an object in the
// resource. Path fragments start with a slash followed by the
// root index (omitted for the first root) and the fragment
// segments of the containment path.
func (r *Resource) URIFragment(obj ecore.EObject) string {
	if r.useIDs {
		if id := r.ids.ID(obj); id != "" {
			return id
		}
	}
	var segments []string
	o := ecore.Internal(obj)
	for count := 0; o != nil; count++ {
		if count > 100000 {
			return ""
		}
		if o.EDirectResource() == r {
			index := r.contents.BasicIndexOf(o)
			if index < 0 {
				return ""
			}
			root := ""
			if index > 0 {
				root = strconv.Itoa(index)
			}
			segments = append(segments, root)
			break
		}
		c := o.EInternalContainer()
		if c == nil {
			return ""
		}
		s, err := c.EURIFragmentSegment(o.EContainingFeature(), o)
		if err != nil {
			log.Debug("cannot determine fragment segment: {{error}}", "error", err)
			return ""
		}
		segments = append(segments, s)
		o = c
	}
	if len(segments) == 0 {
		return ""
	}
	var b strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		b.WriteString("/")
		b.WriteString(segments[i])
	}
	return b.String()
}

// EObject returns the object addressed by a path or id fragment.
func (r *Resource) EObject(fragment string) ecore.EObject {
	if !strings.HasPrefix(fragment, "/") {
		return r.ids.EObject(fragment)
	}
	segments := strings.Split(fragment[1:], "/")
	index := 0
	if segments[0] != "" {
		i, err := strconv.Atoi(segments[0])
		if err != nil {
			log.Debug("invalid root segment in {{fragment}}", "fragment", fragment)
			return nil
		}
		index = i
	}
	if index < 0 || index >= r.contents.Size() {
		return nil
	}
	obj, _ := r.contents.Get(index)
	for _, s := range segments[1:] {
		o := ecore.Internal(obj)
		if o == nil {
			return nil
		}
		next, err := o.EObjectForURIFragmentSegment(s)
		if err != nil {
			log.Debug("cannot resolve {{fragment}}: {{error}}", "fragment", fragment, "error", err)
			return nil
		}
		obj = next
	}
	return obj
}

// URIOf returns the complete URI of an object in this resource.
func (r *Resource) URIOf(obj ecore.EObject) *url.URL {
	f := r.URIFragment(obj)
	if r.uri == nil || f == "" {
		return nil
	}
	u := ecore.TrimFragment(r.uri)
	u.Fragment = f
	return u
}

////////////////////////////////////////////////////////////////////////////////

// contents is the list of top level objects. Adding an object
// removes it from its container or former resource.
type contents struct {
	*notify.NotifyingList[ecore.EObject]
	resource *Resource
}

func newContents(r *Resource) *contents {
	l := &contents{
		NotifyingList: notify.NewNotifyingList[ecore.EObject](r, RESOURCE_CONTENTS, true),
		resource:      r,
	}
	l.SetFeature("contents")
	l.SetInverse(l)
	return l
}

func (l *contents) InverseAdd(e ecore.EObject, chain *notify.Chain) *notify.Chain {
	o := ecore.Internal(e)
	if o == nil {
		return chain
	}
	chain = o.ESetResource(l.resource, chain)
	l.resource.Attached(o)
	return chain
}

func (l *contents) InverseRemove(e ecore.EObject, chain *notify.Chain) *notify.Chain {
	o := ecore.Internal(e)
	if o == nil {
		return chain
	}
	l.resource.Detached(o)
	return o.ESetResource(nil, chain)
}
