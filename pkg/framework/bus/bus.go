// Package bus describes a plugin's audio port layout: main input/output plus
// named auxiliary buses. The host adapter binds its own buffer representation
// against this declaration each processing call; the layout itself is fixed
// at construction.
package bus

// Direction distinguishes input from output buses.
type Direction int32

const (
	// DirectionInput marks an input bus.
	DirectionInput Direction = 0
	// DirectionOutput marks an output bus.
	DirectionOutput Direction = 1
)

// Type distinguishes the main bus from auxiliary buses.
type Type int32

const (
	// TypeMain marks the main bus.
	TypeMain Type = 0
	// TypeAux marks an auxiliary bus such as a sidechain.
	TypeAux Type = 1
)

// Info describes one audio bus.
type Info struct {
	Direction    Direction
	ChannelCount int32
	Name         string
	BusType      Type
	IsActive     bool
}

// Configuration is a plugin's declared bus layout.
type Configuration struct {
	buses []Info
}

// Count returns the number of buses in a direction.
func (c *Configuration) Count(direction Direction) int32 {
	count := int32(0)
	for i := range c.buses {
		if c.buses[i].Direction == direction {
			count++
		}
	}
	return count
}

// Get returns the index-th bus in a direction, or nil.
func (c *Configuration) Get(direction Direction, index int32) *Info {
	n := int32(0)
	for i := range c.buses {
		if c.buses[i].Direction == direction {
			if n == index {
				return &c.buses[i]
			}
			n++
		}
	}
	return nil
}

// Main returns the main bus in a direction, or nil.
func (c *Configuration) Main(direction Direction) *Info {
	for i := range c.buses {
		if c.buses[i].Direction == direction && c.buses[i].BusType == TypeMain {
			return &c.buses[i]
		}
	}
	return nil
}

// Aux returns the named auxiliary bus in a direction, or nil.
func (c *Configuration) Aux(direction Direction, name string) *Info {
	for i := range c.buses {
		if c.buses[i].Direction == direction && c.buses[i].BusType == TypeAux &&
			c.buses[i].Name == name {
			return &c.buses[i]
		}
	}
	return nil
}

// EachAux calls fn for every auxiliary bus in a direction.
func (c *Configuration) EachAux(direction Direction, fn func(info *Info)) {
	for i := range c.buses {
		if c.buses[i].Direction == direction && c.buses[i].BusType == TypeAux {
			fn(&c.buses[i])
		}
	}
}

// SetActive activates or deactivates the index-th bus in a direction.
func (c *Configuration) SetActive(direction Direction, index int32, active bool) bool {
	if info := c.Get(direction, index); info != nil {
		info.IsActive = active
		return true
	}
	return false
}
