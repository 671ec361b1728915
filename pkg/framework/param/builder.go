package param

// Builder provides a fluent API for creating parameters. Validation happens
// when the finished parameter is added to a registry.
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder. The default range is linear [0,1].
func New(id, name string) *Builder {
	return &Builder{
		param: &Parameter{
			id:    id,
			name:  name,
			rng:   Linear(0, 1),
			flags: CanAutomate,
		},
	}
}

// Range sets the value range.
func (b *Builder) Range(r Range) *Builder {
	b.param.rng = r
	return b
}

// Linear sets a linear range.
func (b *Builder) Linear(min, max float32) *Builder {
	return b.Range(Linear(min, max))
}

// Skewed sets a skewed range.
func (b *Builder) Skewed(min, max, factor float32) *Builder {
	return b.Range(Skewed(min, max, factor))
}

// Stepped sets a stepped range with stepCount discrete values.
func (b *Builder) Stepped(min, max float32, stepCount int) *Builder {
	return b.Range(Stepped(min, max, stepCount))
}

// Default sets the default plain value.
func (b *Builder) Default(plain float32) *Builder {
	b.param.defaultPlain = plain
	return b
}

// Unit sets the unit label.
func (b *Builder) Unit(unit string) *Builder {
	b.param.unit = unit
	return b
}

// Flags replaces the parameter flags.
func (b *Builder) Flags(flags Flags) *Builder {
	b.param.flags = flags
	return b
}

// PolyModulatable marks the parameter as per-voice modulatable.
func (b *Builder) PolyModulatable() *Builder {
	b.param.flags |= PolyModulatable
	return b
}

// Hidden hides the parameter from generic host UIs.
func (b *Builder) Hidden() *Builder {
	b.param.flags |= IsHidden
	return b
}

// Smoothing sets the smoothing style and duration in milliseconds.
func (b *Builder) Smoothing(style SmoothingStyle, durationMs float32) *Builder {
	b.param.smoothing = style
	b.param.smoothingMs = durationMs
	return b
}

// Formatter sets custom value formatting and parsing in plain units.
func (b *Builder) Formatter(format func(float32) string, parse func(string) (float32, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build finalizes the parameter. The value starts at the default and the
// smoother is snapped to it.
func (b *Builder) Build() *Parameter {
	p := b.param
	p.smoother.Configure(p.smoothing, nil)
	if p.rng != nil {
		p.SetPlain(p.defaultPlain)
		p.smoother.Reset(p.Plain())
	}
	return p
}
