package random

import (
	"github.com/mandelsoft/ecore/pkg/ecore"
	"github.com/mandelsoft/ecore/pkg/factory"
)

type Option interface {
	ApplyTo(opts *Options)
}

type Options struct {
	Depth   int
	Width   int
	Seed    int64
	Seeded  bool
	Factory factory.Factory
	Classes []ecore.EClass
}

type depth int

// Depth limits the depth of generated containment trees.
func Depth(d int) Option {
	return depth(d)
}

func (o depth) ApplyTo(opts *Options) {
	opts.Depth = int(o)
}

type width int

// Width limits the number of elements of generated
// many valued features.
func Width(w int) Option {
	return width(w)
}

func (o width) ApplyTo(opts *Options) {
	opts.Width = int(o)
}

type seed int64

// Seed makes the generation reproducible.
func Seed(s int64) Option {
	return seed(s)
}

func (o seed) ApplyTo(opts *Options) {
	opts.Seed = int64(o)
	opts.Seeded = true
}

type withFactory struct {
	factory factory.Factory
}

func WithFactory(f factory.Factory) Option {
	return withFactory{f}
}

func (o withFactory) ApplyTo(opts *Options) {
	opts.Factory = o.factory
}

type classes []ecore.EClass

// Classes provides the candidates for instances of abstract classes.
func Classes(c ...ecore.EClass) Option {
	return classes(c)
}

func (o classes) ApplyTo(opts *Options) {
	opts.Classes = append(opts.Classes, o...)
}
