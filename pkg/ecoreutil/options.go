package ecoreutil

import (
	"github.com/mandelsoft/ecore/pkg/factory"
)

type Option interface {
	ApplyTo(opts *Options)
}

type Options struct {
	UseOriginalReferences bool
	ResolveProxies        bool
	Factory               factory.Factory
}

func defaultOptions() Options {
	return Options{
		UseOriginalReferences: true,
		ResolveProxies:        true,
		Factory:               factory.Default,
	}
}

type useOriginalReferences bool

// UseOriginalReferences controls whether references to objects
// outside of the copied trees keep referring to the originals.
// References with an opposite never refer to the originals.
func UseOriginalReferences(b bool) Option {
	return useOriginalReferences(b)
}

func (o useOriginalReferences) ApplyTo(opts *Options) {
	opts.UseOriginalReferences = bool(o)
}

type resolveProxies bool

// ResolveProxies controls whether proxies are resolved while
// reading references.
func ResolveProxies(b bool) Option {
	return resolveProxies(b)
}

func (o resolveProxies) ApplyTo(opts *Options) {
	opts.ResolveProxies = bool(o)
}

type withFactory struct {
	factory factory.Factory
}

func WithFactory(f factory.Factory) Option {
	return withFactory{f}
}

func (o withFactory) ApplyTo(opts *Options) {
	if o.factory != nil {
		opts.Factory = o.factory
	}
}
