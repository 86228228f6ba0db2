package metamodel

import (
	"slices"

	"github.com/mandelsoft/ecore/pkg/ecore"
)

// Package is a named set of classes.
type Package struct {
	name    string
	classes []*Class
	version int
}

func NewPackage(name string) *Package {
	return &Package{name: name}
}

func (p *Package) Name() string {
	return p.name
}

func (p *Package) changed() {
	p.version++
}

func (p *Package) Classes() []*Class {
	return slices.Clone(p.classes)
}

func (p *Package) ClassNames() []string {
	var r []string
	for _, c := range p.classes {
		r = append(r, c.name)
	}
	return r
}

func (p *Package) Class(name string) *Class {
	for _, c := range p.classes {
		if c.name == name {
			return c
		}
	}
	return nil
}

// EClass returns the class with the given name or nil.
func (p *Package) EClass(name string) ecore.EClass {
	if c := p.Class(name); c != nil {
		return c
	}
	return nil
}

func (p *Package) NewClass(name string, supers ...*Class) *Class {
	c := &Class{
		pkg:        p,
		name:       name,
		superTypes: slices.Clone(supers),
		version:    -1,
	}
	p.classes = append(p.classes, c)
	p.changed()
	return c
}

////////////////////////////////////////////////////////////////////////////////

// Class is a schema class. Feature ids are stable: the features of
// the super types come first, followed by the declared features.
type Class struct {
	pkg        *Package
	name       string
	abstract   bool
	superTypes []*Class
	declared   []ecore.EStructuralFeature

	version   int
	computing bool
	all       []ecore.EStructuralFeature
}

var _ ecore.EClass = (*Class)(nil)

func (c *Class) Package() *Package {
	return c.pkg
}

func (c *Class) Name() string {
	return c.name
}

func (c *Class) String() string {
	return c.name
}

func (c *Class) IsAbstract() bool {
	return c.abstract
}

func (c *Class) SetAbstract(b bool) *Class {
	c.abstract = b
	return c
}

func (c *Class) AddSuperType(s *Class) *Class {
	c.superTypes = append(c.superTypes, s)
	c.pkg.changed()
	return c
}

func (c *Class) SuperTypes() []*Class {
	return slices.Clone(c.superTypes)
}

func (c *Class) ESuperTypes() []ecore.EClass {
	r := make([]ecore.EClass, len(c.superTypes))
	for i, s := range c.superTypes {
		r[i] = s
	}
	return r
}

func (c *Class) IsSuperTypeOf(o ecore.EClass) bool {
	mc, ok := o.(*Class)
	if !ok || mc == nil {
		return false
	}
	return c.isSuperTypeOf(mc, 0)
}

func (c *Class) isSuperTypeOf(o *Class, depth int) bool {
	if o == c {
		return true
	}
	if depth > len(c.pkg.classes) {
		return false
	}
	for _, s := range o.superTypes {
		if c.isSuperTypeOf(s, depth+1) {
			return true
		}
	}
	return false
}

func (c *Class) features() []ecore.EStructuralFeature {
	if c.version == c.pkg.version || c.computing {
		return c.all
	}
	c.computing = true
	defer func() { c.computing = false }()

	var all []ecore.EStructuralFeature
	for _, s := range c.superTypes {
		for _, f := range s.features() {
			if !slices.Contains(all, f) {
				all = append(all, f)
			}
		}
	}
	for _, f := range c.declared {
		asFeature(f).id = len(all)
		all = append(all, f)
	}
	c.all = all
	c.version = c.pkg.version
	return all
}

func (c *Class) FeatureCount() int {
	return len(c.features())
}

func (c *Class) EStructuralFeature(featureID int) ecore.EStructuralFeature {
	all := c.features()
	if featureID < 0 || featureID >= len(all) {
		return nil
	}
	return all[featureID]
}

func (c *Class) EStructuralFeatureByName(name string) ecore.EStructuralFeature {
	for _, f := range c.features() {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

func (c *Class) FeatureID(f ecore.EStructuralFeature) int {
	return slices.Index(c.features(), f)
}

func (c *Class) EAllStructuralFeatures() []ecore.EStructuralFeature {
	return slices.Clone(c.features())
}

func (c *Class) EAllAttributes() []ecore.EAttribute {
	var r []ecore.EAttribute
	for _, f := range c.features() {
		if a, ok := f.(ecore.EAttribute); ok {
			r = append(r, a)
		}
	}
	return r
}

func (c *Class) EAllReferences() []ecore.EReference {
	var r []ecore.EReference
	for _, f := range c.features() {
		if a, ok := f.(ecore.EReference); ok {
			r = append(r, a)
		}
	}
	return r
}

func (c *Class) EAllContainments() []ecore.EReference {
	var r []ecore.EReference
	for _, f := range c.features() {
		if a, ok := f.(ecore.EReference); ok && a.IsContainment() {
			r = append(r, a)
		}
	}
	return r
}

// Attribute returns the attribute with the given name, including
// inherited ones.
func (c *Class) Attribute(name string) *Attribute {
	a, _ := c.EStructuralFeatureByName(name).(*Attribute)
	return a
}

// Reference returns the reference with the given name, including
// inherited ones.
func (c *Class) Reference(name string) *Reference {
	r, _ := c.EStructuralFeatureByName(name).(*Reference)
	return r
}

func (c *Class) AddAttribute(name string, typ *DataType, opts ...FeatureOption) *Attribute {
	a := &Attribute{typ: typ}
	a.init(c, name, opts)
	c.declared = append(c.declared, a)
	c.pkg.changed()
	return a
}

func (c *Class) AddReference(name string, typ *Class, opts ...FeatureOption) *Reference {
	r := &Reference{typ: typ}
	o := r.init(c, name, opts)
	r.containment = o.containment
	r.proxies = o.proxies
	c.declared = append(c.declared, r)
	c.pkg.changed()
	return r
}
