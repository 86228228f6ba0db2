package ecore

import (
	"net/url"
)

// ResolveProxy resolves a proxy in the context of the given object.
// Proxies are resolved by the resource set of the context object,
// or, without resource set, by its resource if the proxy refers to
// the same document. If the proxy cannot be resolved, it is returned.
func ResolveProxy(proxy InternalEObject, context EObject) EObject {
	for count := 0; count < 100; count++ {
		uri := proxy.EProxyURI()
		if uri == nil {
			return proxy
		}
		resolved := Internal(lookup(uri, context))
		if resolved == nil {
			log.Debug("cannot resolve proxy {{uri}}", "uri", uri.String())
			return proxy
		}
		if resolved == proxy || !resolved.EIsProxy() {
			return resolved
		}
		proxy = resolved
	}
	return proxy
}

func lookup(uri *url.URL, context EObject) EObject {
	if isNil(context) {
		return nil
	}
	res := context.EResource()
	if res == nil {
		return nil
	}
	if rs := res.ResourceSet(); rs != nil {
		return rs.EObject(uri, true)
	}
	if SameDocument(res.URI(), uri) {
		return res.EObject(uri.Fragment)
	}
	return nil
}

// SameDocument checks whether two URIs address the same
// document, ignoring the fragment.
func SameDocument(a, b *url.URL) bool {
	if a == nil || b == nil {
		return a == b
	}
	return TrimFragment(a).String() == TrimFragment(b).String()
}

func TrimFragment(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	r := *u
	r.Fragment = ""
	r.RawFragment = ""
	return &r
}

// IsAncestor checks whether obj is contained directly or
// indirectly by ancestor, or is ancestor itself.
func IsAncestor(ancestor, obj EObject) bool {
	if isNil(ancestor) {
		return false
	}
	count := 0
	for o := Internal(obj); o != nil; o = o.EInternalContainer() {
		if o == ancestor {
			return true
		}
		if count++; count > 100000 {
			break
		}
	}
	return false
}
