package metamodel

import (
	"fmt"

	"github.com/drone/envsubst"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"sigs.k8s.io/yaml"
)

// PackageSpecification is the serialized form of a package.
type PackageSpecification struct {
	Name    string               `json:"name"`
	Classes []ClassSpecification `json:"classes"`
}

type ClassSpecification struct {
	Name       string                   `json:"name"`
	Abstract   bool                     `json:"abstract,omitempty"`
	SuperTypes []string                 `json:"superTypes,omitempty"`
	Attributes []AttributeSpecification `json:"attributes,omitempty"`
	References []ReferenceSpecification `json:"references,omitempty"`
}

type AttributeSpecification struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Many      bool   `json:"many,omitempty"`
	NonUnique bool   `json:"nonUnique,omitempty"`
	Derived   bool   `json:"derived,omitempty"`
	Default   any    `json:"default,omitempty"`
}

type ReferenceSpecification struct {
	Name           string `json:"name"`
	Type           string `json:"type"`
	Many           bool   `json:"many,omitempty"`
	Containment    bool   `json:"containment,omitempty"`
	Opposite       string `json:"opposite,omitempty"`
	ResolveProxies bool   `json:"resolveProxies,omitempty"`
	Derived        bool   `json:"derived,omitempty"`
}

// Load parses a package specification. Environment variables
// are substituted before parsing.
func Load(data []byte) (*Package, error) {
	s, err := envsubst.EvalEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	var spec PackageSpecification
	err = yaml.Unmarshal([]byte(s), &spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidModel, err)
	}
	return Build(&spec)
}

func LoadFile(fs vfs.FileSystem, path string) (*Package, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	p, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Build creates and validates a package from its specification.
func Build(spec *PackageSpecification) (*Package, error) {
	p := NewPackage(spec.Name)

	for _, cs := range spec.Classes {
		if p.Class(cs.Name) != nil {
			return nil, fmt.Errorf("%w: duplicate class %q", ErrInvalidModel, cs.Name)
		}
		p.NewClass(cs.Name).SetAbstract(cs.Abstract)
	}

	for _, cs := range spec.Classes {
		c := p.Class(cs.Name)
		for _, n := range cs.SuperTypes {
			s := p.Class(n)
			if s == nil {
				return nil, fmt.Errorf("%w: class %q: unknown super type %q", ErrInvalidModel, cs.Name, n)
			}
			c.AddSuperType(s)
		}
	}

	for _, cs := range spec.Classes {
		c := p.Class(cs.Name)
		for _, as := range cs.Attributes {
			t := LookupDataType(as.Type)
			if t == nil {
				return nil, fmt.Errorf("%w: class %q: attribute %q: unknown type %q", ErrInvalidModel, cs.Name, as.Name, as.Type)
			}
			var opts []FeatureOption
			if as.Many {
				opts = append(opts, Many())
			}
			if as.NonUnique {
				opts = append(opts, NonUnique())
			}
			if as.Derived {
				opts = append(opts, Derived())
			}
			if as.Default != nil {
				def, err := t.Convert(as.Default)
				if err != nil {
					return nil, fmt.Errorf("%w: class %q: attribute %q: %w", ErrInvalidModel, cs.Name, as.Name, err)
				}
				opts = append(opts, Default(def))
			}
			c.AddAttribute(as.Name, t, opts...)
		}
		for _, rs := range cs.References {
			t := p.Class(rs.Type)
			if t == nil {
				return nil, fmt.Errorf("%w: class %q: reference %q: unknown type %q", ErrInvalidModel, cs.Name, rs.Name, rs.Type)
			}
			var opts []FeatureOption
			if rs.Many {
				opts = append(opts, Many())
			}
			if rs.Containment {
				opts = append(opts, Containment())
			}
			if rs.ResolveProxies {
				opts = append(opts, ResolveProxies())
			}
			if rs.Derived {
				opts = append(opts, Derived())
			}
			c.AddReference(rs.Name, t, opts...)
		}
	}

	for _, cs := range spec.Classes {
		c := p.Class(cs.Name)
		for _, rs := range cs.References {
			if rs.Opposite == "" {
				continue
			}
			r := c.Reference(rs.Name)
			o := r.typ.Reference(rs.Opposite)
			if o == nil {
				return nil, fmt.Errorf("%w: class %q: reference %q: unknown opposite %q", ErrInvalidModel, cs.Name, rs.Name, rs.Opposite)
			}
			if o.opposite != nil && o.opposite != r {
				return nil, fmt.Errorf("%w: class %q: reference %q: opposite %q already bound", ErrInvalidModel, cs.Name, rs.Name, rs.Opposite)
			}
			SetOpposites(r, o)
		}
	}

	err := p.Validate()
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Specification describes the package in its serialized form.
func (p *Package) Specification() *PackageSpecification {
	spec := &PackageSpecification{Name: p.name}
	for _, c := range p.classes {
		cs := ClassSpecification{
			Name:     c.name,
			Abstract: c.abstract,
		}
		for _, s := range c.superTypes {
			cs.SuperTypes = append(cs.SuperTypes, s.name)
		}
		for _, f := range c.declared {
			switch t := f.(type) {
			case *Attribute:
				cs.Attributes = append(cs.Attributes, AttributeSpecification{
					Name:      t.name,
					Type:      t.typ.Name(),
					Many:      t.many,
					NonUnique: !t.unique,
					Derived:   t.derived,
					Default:   t.def,
				})
			case *Reference:
				rs := ReferenceSpecification{
					Name:           t.name,
					Type:           t.typ.name,
					Many:           t.many,
					Containment:    t.containment,
					ResolveProxies: t.proxies,
					Derived:        t.derived,
				}
				if t.opposite != nil {
					rs.Opposite = t.opposite.name
				}
				cs.References = append(cs.References, rs)
			}
		}
		spec.Classes = append(spec.Classes, cs)
	}
	return spec
}
