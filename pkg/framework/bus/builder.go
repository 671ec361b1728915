package bus

import (
	"fmt"
)

// Builder provides a fluent API for declaring bus layouts. Errors accumulate
// and are reported by Build, so construction problems fail plugin loading
// instead of surfacing mid-stream.
type Builder struct {
	config *Configuration
	errors []error
}

// NewBuilder creates an empty bus layout builder.
func NewBuilder() *Builder {
	return &Builder{config: &Configuration{}}
}

func (b *Builder) add(info Info) *Builder {
	if info.ChannelCount < 1 {
		b.errors = append(b.errors,
			fmt.Errorf("bus %q: channel count must be at least 1, got %d", info.Name, info.ChannelCount))
		return b
	}
	b.config.buses = append(b.config.buses, info)
	return b
}

// WithMainInput adds the main input bus.
func (b *Builder) WithMainInput(name string, channels int32) *Builder {
	return b.add(Info{
		Direction:    DirectionInput,
		ChannelCount: channels,
		Name:         name,
		BusType:      TypeMain,
		IsActive:     true,
	})
}

// WithMainOutput adds the main output bus.
func (b *Builder) WithMainOutput(name string, channels int32) *Builder {
	return b.add(Info{
		Direction:    DirectionOutput,
		ChannelCount: channels,
		Name:         name,
		BusType:      TypeMain,
		IsActive:     true,
	})
}

// WithAuxInput adds a named auxiliary input bus (e.g. a sidechain). Aux
// buses start inactive; the host activates them on demand.
func (b *Builder) WithAuxInput(name string, channels int32) *Builder {
	return b.add(Info{
		Direction:    DirectionInput,
		ChannelCount: channels,
		Name:         name,
		BusType:      TypeAux,
	})
}

// WithAuxOutput adds a named auxiliary output bus.
func (b *Builder) WithAuxOutput(name string, channels int32) *Builder {
	return b.add(Info{
		Direction:    DirectionOutput,
		ChannelCount: channels,
		Name:         name,
		BusType:      TypeAux,
	})
}

// Build validates and returns the configuration. A layout without a main
// output is rejected; duplicate aux names within a direction are rejected.
func (b *Builder) Build() (*Configuration, error) {
	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}
	if b.config.Main(DirectionOutput) == nil {
		return nil, fmt.Errorf("bus: layout needs a main output bus")
	}
	seen := map[[2]any]bool{}
	for _, info := range b.config.buses {
		if info.BusType != TypeAux {
			continue
		}
		key := [2]any{info.Direction, info.Name}
		if seen[key] {
			return nil, fmt.Errorf("bus: duplicate aux bus %q", info.Name)
		}
		seen[key] = true
	}
	return b.config, nil
}

// MustBuild is Build for static layouts known to be valid; it panics on
// error.
func (b *Builder) MustBuild() *Configuration {
	config, err := b.Build()
	if err != nil {
		panic(err)
	}
	return config
}
