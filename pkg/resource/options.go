package resource

type Option interface {
	ApplyTo(opts *Options)
}

type Options struct {
	UseIDs bool
	Set    *ResourceSet
}

func (o *Options) ApplyTo(opts *Options) {
	if o.UseIDs {
		opts.UseIDs = true
	}
	if o.Set != nil {
		opts.Set = o.Set
	}
}

type useIDs bool

// UseIDs selects ID based fragments instead of path fragments.
func UseIDs(b ...bool) Option {
	return useIDs(len(b) == 0 || b[0])
}

func (o useIDs) ApplyTo(opts *Options) {
	opts.UseIDs = bool(o)
}

type inSet struct {
	set *ResourceSet
}

func InSet(s *ResourceSet) Option {
	return inSet{s}
}

func (o inSet) ApplyTo(opts *Options) {
	opts.Set = o.set
}
