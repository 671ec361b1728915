package bus

// Common layouts for typical plugin shapes.

// NewStereo creates a plain stereo in/out layout.
func NewStereo() *Configuration {
	return NewBuilder().
		WithMainInput("Stereo In", 2).
		WithMainOutput("Stereo Out", 2).
		MustBuild()
}

// NewMono creates a mono in/out layout.
func NewMono() *Configuration {
	return NewBuilder().
		WithMainInput("Mono In", 1).
		WithMainOutput("Mono Out", 1).
		MustBuild()
}

// NewStereoSidechain creates a stereo layout with a stereo sidechain input.
func NewStereoSidechain() *Configuration {
	return NewBuilder().
		WithMainInput("Stereo In", 2).
		WithMainOutput("Stereo Out", 2).
		WithAuxInput("Sidechain", 2).
		MustBuild()
}

// NewMonoToStereo creates a mono-to-stereo layout, e.g. for spatializers.
// The process layer zero-fills the second output channel before DSP runs.
func NewMonoToStereo() *Configuration {
	return NewBuilder().
		WithMainInput("Mono In", 1).
		WithMainOutput("Stereo Out", 2).
		MustBuild()
}

// NewGenerator creates an output-only layout for instruments.
func NewGenerator() *Configuration {
	return NewBuilder().
		WithMainOutput("Stereo Out", 2).
		MustBuild()
}
