package plugin

import "hash/fnv"

// Info is the static plugin metadata a host adapter exposes.
type Info struct {
	ID       string // reverse-domain identifier, e.g. "com.example.gain"
	Name     string // display name
	Version  string // semantic version, e.g. "1.0.0"
	Vendor   string // developer or company name
	Category string // e.g. "Fx", "Instrument"
}

// UID derives a stable 16-byte unique id from the string identifier.
// Hosts key installed plugins by this value, so it must never change for a
// released ID.
func (i Info) UID() [16]byte {
	h := fnv.New128a()
	h.Write([]byte(i.ID))

	var uid [16]byte
	copy(uid[:], h.Sum(nil))
	return uid
}
