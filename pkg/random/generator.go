package random

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/goombaio/namegenerator"

	"github.com/mandelsoft/ecore/pkg/ecore"
	"github.com/mandelsoft/ecore/pkg/elist"
	"github.com/mandelsoft/ecore/pkg/factory"
	"github.com/mandelsoft/ecore/pkg/metamodel"
)

var ErrNoConcreteClass = fmt.Errorf("no concrete class")

// Generator creates random instance graphs: containment trees
// with random attribute values and cross references among
// the created objects.
type Generator struct {
	options Options
	rand    *rand.Rand
	names   namegenerator.Generator
	created []ecore.EObject
}

func New(opts ...Option) *Generator {
	o := Options{
		Depth:   3,
		Width:   3,
		Factory: factory.Default,
	}
	for _, e := range opts {
		e.ApplyTo(&o)
	}
	if !o.Seeded {
		o.Seed = time.Now().UnixNano()
	}
	if o.Factory == nil {
		o.Factory = factory.Default
	}
	return &Generator{
		options: o,
		rand:    rand.New(rand.NewSource(o.Seed)),
		names:   namegenerator.NewNameGenerator(o.Seed),
	}
}

func (g *Generator) Seed() int64 {
	return g.options.Seed
}

// Generate creates a random tree for the given class.
func (g *Generator) Generate(class ecore.EClass) (ecore.EObject, error) {
	g.created = nil
	log.Debug("generating {{class}} (seed {{seed}})", "class", class.Name(), "seed", g.options.Seed)
	root, err := g.create(class, 0)
	if err != nil {
		return nil, err
	}
	for _, o := range g.created {
		err := g.references(o)
		if err != nil {
			return nil, err
		}
	}
	log.Debug("generated {{count}} objects", "count", len(g.created))
	return root, nil
}

func (g *Generator) concrete(class ecore.EClass) (ecore.EClass, error) {
	if !class.IsAbstract() {
		return class, nil
	}
	var candidates []ecore.EClass
	for _, c := range g.options.Classes {
		if !c.IsAbstract() && class.IsSuperTypeOf(c) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w for %q", ErrNoConcreteClass, class.Name())
	}
	return candidates[g.rand.Intn(len(candidates))], nil
}

func (g *Generator) create(class ecore.EClass, level int) (ecore.EObject, error) {
	class, err := g.concrete(class)
	if err != nil {
		return nil, err
	}
	obj, err := g.options.Factory.Create(class)
	if err != nil {
		return nil, err
	}
	g.created = append(g.created, obj)

	for _, a := range class.EAllAttributes() {
		if a.IsDerived() {
			continue
		}
		var v any
		if a.IsMany() {
			n := g.rand.Intn(g.options.Width + 1)
			l := make([]any, 0, n)
			for i := 0; i < n; i++ {
				l = append(l, g.value(a.EAttributeType()))
			}
			v = l
		} else {
			v = g.value(a.EAttributeType())
		}
		err := obj.ESet(a, v)
		if err != nil {
			return nil, err
		}
	}

	if level >= g.options.Depth {
		return obj, nil
	}
	for _, r := range class.EAllContainments() {
		if r.IsDerived() {
			continue
		}
		if r.IsMany() {
			n := g.rand.Intn(g.options.Width + 1)
			l := make([]ecore.EObject, 0, n)
			for i := 0; i < n; i++ {
				c, err := g.create(r.EReferenceType(), level+1)
				if err != nil {
					return nil, err
				}
				l = append(l, c)
			}
			err = obj.ESet(r, l)
		} else if g.rand.Intn(2) == 0 {
			var c ecore.EObject
			c, err = g.create(r.EReferenceType(), level+1)
			if err == nil {
				err = obj.ESet(r, c)
			}
		}
		if err != nil {
			return nil, err
		}
	}
	return obj, nil
}

func (g *Generator) value(t ecore.EDataType) any {
	name := ""
	if t != nil {
		name = t.Name()
	}
	switch metamodel.Kind(name) {
	case metamodel.KIND_INT:
		return g.rand.Intn(1000)
	case metamodel.KIND_FLOAT:
		return math.Round(g.rand.Float64()*10000) / 100
	case metamodel.KIND_BOOL:
		return g.rand.Intn(2) == 1
	default:
		return g.names.Generate()
	}
}

func (g *Generator) candidates(r ecore.EReference) []ecore.EObject {
	var c []ecore.EObject
	t := r.EReferenceType()
	for _, o := range g.created {
		if t == nil || t.IsSuperTypeOf(o.EClass()) {
			c = append(c, o)
		}
	}
	return c
}

func (g *Generator) references(obj ecore.EObject) error {
	for _, r := range obj.EClass().EAllReferences() {
		if r.IsContainment() || r.IsContainer() || r.IsDerived() {
			continue
		}
		candidates := g.candidates(r)
		if len(candidates) == 0 {
			continue
		}
		if r.IsMany() {
			n := g.rand.Intn(min(g.options.Width, len(candidates)) + 1)
			v, err := obj.EGet(r)
			if err != nil {
				return err
			}
			l, ok := v.(elist.EList[ecore.EObject])
			if !ok {
				return fmt.Errorf("%w: feature %q is no object list", ecore.ErrInvalidValue, r.Name())
			}
			for _, i := range g.rand.Perm(len(candidates))[:n] {
				if _, err := l.Add(candidates[i]); err != nil {
					return err
				}
			}
		} else if g.rand.Intn(2) == 0 {
			err := obj.ESet(r, candidates[g.rand.Intn(len(candidates))])
			if err != nil {
				return err
			}
		}
	}
	return nil
}
