package metamodel

import (
	"github.com/mandelsoft/ecore/pkg/ecore"
)

type FeatureOption interface {
	ApplyTo(opts *FeatureOptions)
}

type FeatureOptions struct {
	many        bool
	nonUnique   bool
	derived     bool
	containment bool
	proxies     bool
	def         any
}

type many struct{}

func Many() FeatureOption {
	return many{}
}

func (o many) ApplyTo(opts *FeatureOptions) {
	opts.many = true
}

type nonUnique struct{}

// NonUnique allows duplicates in many valued attributes.
func NonUnique() FeatureOption {
	return nonUnique{}
}

func (o nonUnique) ApplyTo(opts *FeatureOptions) {
	opts.nonUnique = true
}

type derived struct{}

func Derived() FeatureOption {
	return derived{}
}

func (o derived) ApplyTo(opts *FeatureOptions) {
	opts.derived = true
}

type containment struct{}

func Containment() FeatureOption {
	return containment{}
}

func (o containment) ApplyTo(opts *FeatureOptions) {
	opts.containment = true
}

type proxies struct{}

func ResolveProxies() FeatureOption {
	return proxies{}
}

func (o proxies) ApplyTo(opts *FeatureOptions) {
	opts.proxies = true
}

type defaultValue struct {
	value any
}

func Default(v any) FeatureOption {
	return defaultValue{v}
}

func (o defaultValue) ApplyTo(opts *FeatureOptions) {
	opts.def = o.value
}

////////////////////////////////////////////////////////////////////////////////

type feature struct {
	name    string
	class   *Class
	id      int
	many    bool
	unique  bool
	derived bool
	def     any
}

type featureAccess interface {
	base() *feature
}

func asFeature(f ecore.EStructuralFeature) *feature {
	return f.(featureAccess).base()
}

func (f *feature) init(c *Class, name string, opts []FeatureOption) *FeatureOptions {
	o := &FeatureOptions{}
	for _, e := range opts {
		e.ApplyTo(o)
	}
	f.name = name
	f.class = c
	f.many = o.many
	f.unique = !o.nonUnique
	f.derived = o.derived
	f.def = o.def
	return o
}

func (f *feature) base() *feature {
	return f
}

func (f *feature) Name() string {
	return f.name
}

func (f *feature) String() string {
	return f.class.name + "." + f.name
}

func (f *feature) FeatureID() int {
	f.class.features()
	return f.id
}

func (f *feature) Class() *Class {
	return f.class
}

func (f *feature) EContainingClass() ecore.EClass {
	return f.class
}

func (f *feature) IsMany() bool {
	return f.many
}

func (f *feature) IsUnique() bool {
	return f.unique
}

func (f *feature) IsDerived() bool {
	return f.derived
}

////////////////////////////////////////////////////////////////////////////////

type Attribute struct {
	feature
	typ *DataType
}

var _ ecore.EAttribute = (*Attribute)(nil)

func (a *Attribute) DataType() *DataType {
	return a.typ
}

func (a *Attribute) EAttributeType() ecore.EDataType {
	if a.typ == nil {
		return nil
	}
	return a.typ
}

func (a *Attribute) DefaultValue() any {
	if a.def != nil || a.many || a.typ == nil {
		return a.def
	}
	return a.typ.Zero()
}

////////////////////////////////////////////////////////////////////////////////

type Reference struct {
	feature
	typ         *Class
	containment bool
	proxies     bool
	opposite    *Reference
}

var _ ecore.EReference = (*Reference)(nil)

// SetOpposites links two references as opposites of each other.
func SetOpposites(a, b *Reference) {
	a.opposite = b
	b.opposite = a
}

func (r *Reference) DefaultValue() any {
	return nil
}

func (r *Reference) IsContainment() bool {
	return r.containment
}

func (r *Reference) IsContainer() bool {
	return r.opposite != nil && r.opposite.containment
}

func (r *Reference) IsResolveProxies() bool {
	return r.proxies
}

func (r *Reference) Opposite() *Reference {
	return r.opposite
}

func (r *Reference) EOpposite() ecore.EReference {
	if r.opposite == nil {
		return nil
	}
	return r.opposite
}

func (r *Reference) ReferenceType() *Class {
	return r.typ
}

func (r *Reference) EReferenceType() ecore.EClass {
	if r.typ == nil {
		return nil
	}
	return r.typ
}
