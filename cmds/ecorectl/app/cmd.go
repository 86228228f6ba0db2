package app

import (
	"github.com/mandelsoft/goutils/general"
	"github.com/mandelsoft/vfs/pkg/osfs"
	"github.com/mandelsoft/vfs/pkg/vfs"
	"github.com/spf13/cobra"

	"github.com/mandelsoft/ecore/pkg/metamodel"
)

type Options struct {
	fs       vfs.FileSystem
	level    string
	config   string
	settings *Config
}

// Settings provides the effective configuration.
func (o *Options) Settings() *Config {
	if o.settings == nil {
		return &Config{}
	}
	return o.settings
}

func (o *Options) LoadModel(path string) (*metamodel.Package, error) {
	return metamodel.LoadFile(o.fs, path)
}

func New(fss ...vfs.FileSystem) *cobra.Command {
	opts := &Options{
		fs: general.OptionalDefaulted(vfs.FileSystem(osfs.OsFs), fss...),
	}

	maincmd := &cobra.Command{
		Use:   "ecorectl <options> <cmd> <args>",
		Short: "inspect metamodels and instance graphs",
		Long: `
This command can be used to inspect metamodels given as YAML
specification and to generate and check random instance graphs
for their classes.
`,
		Run:              nil,
		TraverseChildren: true,
		SilenceUsage:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := GetConfig(opts.fs, opts.config)
			if err != nil {
				return err
			}
			opts.settings = cfg
			level := opts.level
			if level == "" && cfg.LogLevel != nil {
				level = *cfg.LogLevel
			}
			return SetupLogging(level)
		},
	}

	flags := maincmd.PersistentFlags()

	flags.StringVarP(&opts.level, "log-level", "L", "", "log level")
	flags.StringVarP(&opts.config, "config", "", "", "config file")

	maincmd.AddCommand(NewClasses(opts))
	maincmd.AddCommand(NewGenerate(opts))
	return maincmd
}
