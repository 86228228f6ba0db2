package ecoreutil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gowebpki/jcs"

	"github.com/mandelsoft/ecore/pkg/ecore"
	"github.com/mandelsoft/ecore/pkg/elist"
)

// CLASS_KEY is the key of the class name in object descriptions.
const CLASS_KEY = "eClass"

// URI returns the URI of an object: the URI of its resource with
// the object's fragment, or the proxy URI for proxies.
func URI(obj ecore.EObject) *url.URL {
	o := ecore.Internal(obj)
	if o == nil {
		return nil
	}
	if o.EIsProxy() {
		return o.EProxyURI()
	}
	res := o.EResource()
	if res == nil || res.URI() == nil {
		return nil
	}
	f := res.URIFragment(obj)
	if f == "" {
		return nil
	}
	u := ecore.TrimFragment(res.URI())
	u.Fragment = f
	return u
}

// paths determines the path of all objects of a containment
// tree relative to its root.
func paths(root ecore.EObject) map[ecore.EObject]string {
	r := map[ecore.EObject]string{root: "/"}
	var walk func(o ecore.EObject, path string)
	walk = func(o ecore.EObject, path string) {
		io := ecore.Internal(o)
		for _, c := range o.EContents().All() {
			s, err := io.EURIFragmentSegment(c.EContainingFeature(), c)
			if err != nil {
				continue
			}
			p := path + "/" + s
			r[c] = p
			walk(c, p)
		}
	}
	walk(root, "/")
	return r
}

type describer struct {
	paths map[ecore.EObject]string
}

func (d *describer) reference(o ecore.EObject) string {
	if p, ok := d.paths[o]; ok {
		return p
	}
	if u := URI(o); u != nil {
		return u.String()
	}
	return "<" + ecore.ClassName(o.EClass()) + ">"
}

// Describe provides a generic description of a containment tree.
// Attributes are described by their values, contained objects by
// nested descriptions and cross references by paths relative to
// the root or by URIs.
func Describe(obj ecore.EObject) map[string]any {
	if ecore.Internal(obj) == nil {
		return nil
	}
	d := &describer{paths: paths(obj)}
	return d.describe(obj)
}

func (d *describer) describe(obj ecore.EObject) map[string]any {
	m := map[string]any{CLASS_KEY: ecore.ClassName(obj.EClass())}
	if o := ecore.Internal(obj); o.EIsProxy() {
		m["eProxyURI"] = o.EProxyURI().String()
		return m
	}
	for _, f := range obj.EClass().EAllStructuralFeatures() {
		if f.IsDerived() {
			continue
		}
		r, isRef := f.(ecore.EReference)
		if isRef && r.IsContainer() {
			continue
		}
		if set, err := obj.EIsSet(f); err != nil || !set {
			continue
		}
		v, err := obj.EGetResolve(f, false)
		if err != nil {
			continue
		}
		switch t := v.(type) {
		case elist.EList[ecore.EObject]:
			var l []any
			for _, e := range t.ToSlice() {
				l = append(l, d.value(r, e))
			}
			m[f.Name()] = l
		case elist.EList[any]:
			m[f.Name()] = t.ToSlice()
		case ecore.EObject:
			m[f.Name()] = d.value(r, t)
		default:
			m[f.Name()] = t
		}
	}
	return m
}

func (d *describer) value(r ecore.EReference, o ecore.EObject) any {
	if r.IsContainment() {
		return d.describe(o)
	}
	return d.reference(o)
}

// Fingerprint provides a hash of the canonical JSON representation
// of the description of a containment tree.
func Fingerprint(obj ecore.EObject) (string, error) {
	data, err := json.Marshal(Describe(obj))
	if err != nil {
		return "", err
	}
	data, err = jcs.Transform(data)
	if err != nil {
		return "", err
	}
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:]), nil
}

// Tree renders a human readable description of a containment tree.
func Tree(obj ecore.EObject) string {
	if ecore.Internal(obj) == nil {
		return ""
	}
	var b strings.Builder
	d := &describer{paths: paths(obj)}
	d.tree(&b, "", obj)
	return b.String()
}

func (d *describer) tree(b *strings.Builder, indent string, obj ecore.EObject) {
	fmt.Fprintf(b, "%s (%s)\n", ecore.ClassName(obj.EClass()), d.paths[obj])
	indent += "  "
	if o := ecore.Internal(obj); o.EIsProxy() {
		fmt.Fprintf(b, "%sproxy: %s\n", indent, o.EProxyURI())
		return
	}
	for _, f := range obj.EClass().EAllStructuralFeatures() {
		r, isRef := f.(ecore.EReference)
		if f.IsDerived() || (isRef && r.IsContainer()) {
			continue
		}
		if set, err := obj.EIsSet(f); err != nil || !set {
			continue
		}
		v, err := obj.EGetResolve(f, false)
		if err != nil {
			continue
		}
		switch t := v.(type) {
		case elist.EList[ecore.EObject]:
			fmt.Fprintf(b, "%s%s:\n", indent, f.Name())
			for i, e := range t.All() {
				fmt.Fprintf(b, "%s  [%d] ", indent, i)
				d.treeValue(b, indent+"    ", r, e)
			}
		case elist.EList[any]:
			fmt.Fprintf(b, "%s%s: %s\n", indent, f.Name(), format(t.ToSlice()))
		case ecore.EObject:
			fmt.Fprintf(b, "%s%s: ", indent, f.Name())
			d.treeValue(b, indent+"  ", r, t)
		default:
			fmt.Fprintf(b, "%s%s: %s\n", indent, f.Name(), format(t))
		}
	}
}

func (d *describer) treeValue(b *strings.Builder, indent string, r ecore.EReference, o ecore.EObject) {
	if r.IsContainment() {
		d.tree(b, indent[:len(indent)-2], o)
		return
	}
	fmt.Fprintf(b, "-> %s\n", d.reference(o))
}

func format(v any) string {
	switch t := v.(type) {
	case string:
		return strconv.Quote(t)
	case []any:
		s := make([]string, len(t))
		for i, e := range t {
			s[i] = format(e)
		}
		return "[" + strings.Join(s, ", ") + "]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
