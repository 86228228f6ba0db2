package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mandelsoft/ecore/pkg/ecore"
	"github.com/mandelsoft/ecore/pkg/metamodel"
)

type Classes struct {
	cmd *cobra.Command

	mainopts *Options
	output   string
}

func NewClasses(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classes <metamodel> {<class>} <options>",
		Short: "list classes and features of a metamodel",
	}

	c := &Classes{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.StringVarP(&c.output, "output", "o", "", "output format (yaml or json)")
	return cmd
}

func (c *Classes) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("metamodel file required")
	}
	pkg, err := c.mainopts.LoadModel(args[0])
	if err != nil {
		return err
	}

	var classes []*metamodel.Class
	if len(args) > 1 {
		for _, n := range args[1:] {
			cls := pkg.Class(n)
			if cls == nil {
				return fmt.Errorf("unknown class %q", n)
			}
			classes = append(classes, cls)
		}
	} else {
		classes = pkg.Classes()
	}

	if o := NormalizeOutput(c.output); o != "" {
		spec := pkg.Specification()
		if len(args) > 1 {
			var filtered []metamodel.ClassSpecification
			for _, cs := range spec.Classes {
				if contains(classes, cs.Name) {
					filtered = append(filtered, cs)
				}
			}
			spec.Classes = filtered
		}
		return PrintStructured(c.cmd.OutOrStdout(), o, spec)
	}

	PrintTable(c.cmd.OutOrStdout(), []string{"CLASS", "ID", "FEATURE", "KIND", "TYPE", "MULT", "FLAGS"}, MapFeatures(classes))
	return nil
}

func contains(classes []*metamodel.Class, name string) bool {
	for _, c := range classes {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// MapFeatures provides one table row per feature of the given classes
// including inherited ones.
func MapFeatures(classes []*metamodel.Class) [][]string {
	var r [][]string
	for _, c := range classes {
		name := c.Name()
		if c.IsAbstract() {
			name += " (abstract)"
		}
		features := c.EAllStructuralFeatures()
		if len(features) == 0 {
			r = append(r, []string{name, "", "", "", "", "", ""})
			continue
		}
		for id, f := range features {
			kind, typ := "attribute", ""
			var flags []string
			switch t := f.(type) {
			case ecore.EAttribute:
				if t.EAttributeType() != nil {
					typ = t.EAttributeType().Name()
				}
			case ecore.EReference:
				kind = "reference"
				if t.EReferenceType() != nil {
					typ = t.EReferenceType().Name()
				}
				if t.IsContainment() {
					flags = append(flags, "containment")
				}
				if t.IsContainer() {
					flags = append(flags, "container")
				}
				if opp := t.EOpposite(); opp != nil {
					flags = append(flags, "opposite="+opp.Name())
				}
				if t.IsResolveProxies() && !t.IsContainer() {
					flags = append(flags, "proxies")
				}
			}
			mult := "1"
			if f.IsMany() {
				mult = "*"
				if !f.IsUnique() {
					flags = append(flags, "nonunique")
				}
			}
			if f.IsDerived() {
				flags = append(flags, "derived")
			}
			if f.EContainingClass() != ecore.EClass(c) {
				flags = append(flags, "from="+f.EContainingClass().Name())
			}
			r = append(r, []string{name, strconv.Itoa(id), f.Name(), kind, typ, mult, strings.Join(flags, ",")})
		}
	}
	return r
}
