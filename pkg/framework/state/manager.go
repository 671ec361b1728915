// Package state serializes plugin parameter values to a compact binary
// format suitable for host preset and project storage.
package state

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/justyntemme/plugcore/pkg/framework/param"
)

// Magic identifies a plugcore state blob.
const Magic = "PLUGCORE"

// Version is the current state format version. Readers accept any version
// up to their own; newer blobs are rejected rather than misread.
const Version uint32 = 1

// Manager saves and restores parameter state for a registry. Parameters are
// written sorted by id so that two saves of the same state produce
// byte-identical output regardless of registration order.
type Manager struct {
	version  uint32
	registry *param.Registry
	saveFn   CustomSaveFunc
	loadFn   CustomLoadFunc
}

// CustomSaveFunc appends plugin-specific state after the parameter block.
type CustomSaveFunc func(w io.Writer) error

// CustomLoadFunc restores plugin-specific state written by the matching
// CustomSaveFunc.
type CustomLoadFunc func(r io.Reader) error

// NewManager creates a state manager for the given registry.
func NewManager(registry *param.Registry) *Manager {
	return &Manager{
		version:  Version,
		registry: registry,
	}
}

// SetCustomState installs save and load hooks for state beyond parameters.
// Both must be set together; a blob saved with custom data cannot be loaded
// without the matching load hook.
func (m *Manager) SetCustomState(save CustomSaveFunc, load CustomLoadFunc) {
	m.saveFn = save
	m.loadFn = load
}

// Save writes the current plain value of every registered parameter.
//
// Layout: magic, version, parameter count, then per parameter the id as a
// length-prefixed string and the plain value as a float32 bit pattern, all
// little-endian. Entries are sorted by id.
func (m *Manager) Save(w io.Writer) error {
	if _, err := io.WriteString(w, Magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, m.version); err != nil {
		return err
	}

	ids := m.registry.IDs()
	sort.Strings(ids)

	if err := binary.Write(w, binary.LittleEndian, uint32(len(ids))); err != nil {
		return err
	}
	for _, id := range ids {
		if err := writeString(w, id); err != nil {
			return err
		}
		value := m.registry.Get(id).Plain()
		if err := binary.Write(w, binary.LittleEndian, math.Float32bits(value)); err != nil {
			return err
		}
	}

	if m.saveFn != nil {
		if err := binary.Write(w, binary.LittleEndian, uint32(1)); err != nil {
			return err
		}
		return m.saveFn(w)
	}
	return binary.Write(w, binary.LittleEndian, uint32(0))
}

// Load restores parameter state from a blob written by Save.
//
// Every registered parameter is first reset to its default, so parameters
// missing from the blob (added since it was saved) come back at their
// defaults. Ids in the blob that are no longer registered are skipped, so
// old blobs load into newer plugins without error.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("state: reading header: %w", err)
	}
	if string(header) != Magic {
		return fmt.Errorf("state: invalid header %q", header)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return err
	}
	if version > m.version {
		return fmt.Errorf("state: version %d is newer than supported %d", version, m.version)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return err
	}

	m.registry.ResetAll()

	for i := uint32(0); i < count; i++ {
		id, err := readString(r)
		if err != nil {
			return err
		}
		var bits uint32
		if err := binary.Read(r, binary.LittleEndian, &bits); err != nil {
			return err
		}
		if p := m.registry.Get(id); p != nil {
			p.SetPlain(math.Float32frombits(bits))
		}
	}

	var hasCustom uint32
	if err := binary.Read(r, binary.LittleEndian, &hasCustom); err != nil {
		return err
	}
	if hasCustom != 0 {
		if m.loadFn == nil {
			return fmt.Errorf("state: blob carries custom data but no load hook is set")
		}
		return m.loadFn(r)
	}
	return nil
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n > 1<<16 {
		return "", fmt.Errorf("state: id length %d out of range", n)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}
