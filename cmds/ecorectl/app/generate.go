package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mandelsoft/ecore/pkg/ecore"
	"github.com/mandelsoft/ecore/pkg/ecoreutil"
	"github.com/mandelsoft/ecore/pkg/random"
	"github.com/mandelsoft/ecore/pkg/resource"
)

type Generate struct {
	cmd *cobra.Command

	mainopts *Options
	depth    int
	width    int
	seed     int64
	output   string
	verify   bool
	ids      bool
}

func NewGenerate(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <metamodel> <class> <options>",
		Short: "generate a random instance graph for a class",
	}

	c := &Generate{
		cmd:      cmd,
		mainopts: opts,
	}
	c.cmd.RunE = func(cmd *cobra.Command, args []string) error { return c.Run(args) }
	flags := cmd.Flags()
	flags.IntVarP(&c.depth, "depth", "d", 3, "maximum containment depth")
	flags.IntVarP(&c.width, "width", "w", 3, "maximum number of elements of many valued features")
	flags.Int64VarP(&c.seed, "seed", "s", 0, "random seed (default: time based)")
	flags.StringVarP(&c.output, "output", "o", "", "output format (tree, yaml or json)")
	flags.BoolVarP(&c.verify, "verify", "", false, "verify copy, equality and fragments of the generated graph")
	flags.BoolVarP(&c.ids, "ids", "", false, "use object ids for fragments")
	return cmd
}

func (c *Generate) Run(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("metamodel file and class name required")
	}
	pkg, err := c.mainopts.LoadModel(args[0])
	if err != nil {
		return err
	}
	class := pkg.Class(args[1])
	if class == nil {
		return fmt.Errorf("unknown class %q", args[1])
	}

	flags := c.cmd.Flags()
	output := c.applySettings(flags, c.mainopts.Settings())
	if c.depth < 0 || c.width < 0 {
		return fmt.Errorf("depth and width must not be negative")
	}

	opts := []random.Option{random.Depth(c.depth), random.Width(c.width)}
	if flags.Changed("seed") {
		opts = append(opts, random.Seed(c.seed))
	}
	for _, cls := range pkg.Classes() {
		opts = append(opts, random.Classes(cls))
	}
	gen := random.New(opts...)
	root, err := gen.Generate(class)
	if err != nil {
		return err
	}
	log.Debug("generated graph for {{class}} with seed {{seed}}", "class", class.Name(), "seed", gen.Seed())

	w := c.cmd.OutOrStdout()
	switch output {
	case "", OUTPUT_TREE:
		fmt.Fprint(w, ecoreutil.Tree(root))
	default:
		err = PrintStructured(w, output, ecoreutil.Describe(root))
		if err != nil {
			return err
		}
	}

	if c.verify {
		return Verify(w, root, c.ids)
	}
	return nil
}

// applySettings uses configured values for flags not given
// explicitly and returns the output format.
func (c *Generate) applySettings(flags *pflag.FlagSet, settings *Config) string {
	if !flags.Changed("depth") && settings.Depth != nil {
		c.depth = *settings.Depth
	}
	if !flags.Changed("width") && settings.Width != nil {
		c.width = *settings.Width
	}
	output := NormalizeOutput(c.output)
	if output == "" && settings.Output != nil {
		output = NormalizeOutput(*settings.Output)
	}
	return output
}

// Verify checks that a copy of the given tree equals the
// original and that all fragments of a resource holding the
// tree resolve to the addressed objects.
func Verify(w io.Writer, root ecore.EObject, ids bool) error {
	cp, err := ecoreutil.Copy(root)
	if err != nil {
		return fmt.Errorf("cannot copy graph: %w", err)
	}
	h := ecoreutil.NewEqualityHelper()
	if !h.Equals(root, cp) {
		return fmt.Errorf("copy differs from original: %s", strings.Join(h.Differences(), ", "))
	}
	fo, err := ecoreutil.Fingerprint(root)
	if err != nil {
		return err
	}
	fc, err := ecoreutil.Fingerprint(cp)
	if err != nil {
		return err
	}
	if fo != fc {
		return fmt.Errorf("fingerprint of copy differs from original")
	}

	res, err := resource.Parse("memory:/generated", resource.UseIDs(ids))
	if err != nil {
		return err
	}
	if _, err := res.Contents().Add(root); err != nil {
		return err
	}
	count := 0
	objs := []ecore.EObject{root}
	for o := range root.EAllContents() {
		objs = append(objs, o)
	}
	for _, o := range objs {
		f := res.URIFragment(o)
		if res.EObject(f) != o {
			return fmt.Errorf("fragment %q does not resolve to its object", f)
		}
		count++
	}

	fmt.Fprintf(w, "objects:     %d\n", count)
	fmt.Fprintf(w, "original:    %s\n", fo)
	fmt.Fprintf(w, "copy:        %s\n", fc)
	fmt.Fprintf(w, "equal:       %t\n", true)
	return nil
}
