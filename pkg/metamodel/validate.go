package metamodel

import (
	"fmt"
)

var ErrInvalidModel = fmt.Errorf("invalid metamodel")

// Validate checks the consistency of the package: unique class
// and feature names, acyclic super types, reference types and
// opposite relations.
func (p *Package) Validate() error {
	names := map[string]bool{}
	for _, c := range p.classes {
		if c.name == "" {
			return fmt.Errorf("%w: class without name", ErrInvalidModel)
		}
		if names[c.name] {
			return fmt.Errorf("%w: duplicate class %q", ErrInvalidModel, c.name)
		}
		names[c.name] = true
		for _, s := range c.superTypes {
			if s == nil || s.pkg != p {
				return fmt.Errorf("%w: class %q: invalid super type", ErrInvalidModel, c.name)
			}
			if c.IsSuperTypeOf(s) {
				return fmt.Errorf("%w: class %q: cyclic super type %q", ErrInvalidModel, c.name, s.name)
			}
		}
	}

	for _, c := range p.classes {
		err := validateClass(c)
		if err != nil {
			return fmt.Errorf("%w: class %q: %w", ErrInvalidModel, c.name, err)
		}
	}
	return nil
}

func validateClass(c *Class) error {
	features := map[string]bool{}
	for _, f := range c.features() {
		if f.Name() == "" {
			return fmt.Errorf("feature without name")
		}
		if features[f.Name()] {
			return fmt.Errorf("duplicate feature %q", f.Name())
		}
		features[f.Name()] = true
	}

	for _, f := range c.declared {
		switch t := f.(type) {
		case *Attribute:
			if t.typ == nil {
				return fmt.Errorf("attribute %q: missing type", t.name)
			}
			if t.def != nil {
				if _, err := t.typ.Convert(t.def); err != nil {
					return fmt.Errorf("attribute %q: invalid default: %w", t.name, err)
				}
			}
		case *Reference:
			if err := validateReference(c, t); err != nil {
				return fmt.Errorf("reference %q: %w", t.name, err)
			}
		}
	}
	return nil
}

func validateReference(c *Class, r *Reference) error {
	if r.typ == nil {
		return fmt.Errorf("missing type")
	}
	if r.typ.pkg != c.pkg {
		return fmt.Errorf("type %q not in package", r.typ.name)
	}
	o := r.opposite
	if o == nil {
		return nil
	}
	if o.opposite != r {
		return fmt.Errorf("opposite %q does not refer back", o.String())
	}
	if !o.typ.IsSuperTypeOf(c) {
		return fmt.Errorf("opposite %q has incompatible type %q", o.String(), o.typ.name)
	}
	if r.containment && o.containment {
		return fmt.Errorf("opposite %q is a containment, too", o.String())
	}
	if r.containment && o.many {
		return fmt.Errorf("container reference %q must be single valued", o.String())
	}
	return nil
}
