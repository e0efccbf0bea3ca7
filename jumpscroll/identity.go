package jumpscroll

// Identity is a durable key for an item's content, independent of its
// position on screen.
type Identity int64

// Adapter is the data source behind the list.
type Adapter interface {
	// HasStableIDs reports whether ItemID returns the same identity for the
	// same content across structural changes.
	HasStableIDs() bool
	ItemID(index int) Identity
}

// resolveIdentity prefers the handle's own identity over the adapter row id.
// Nothing resolves unless the adapter declares stable ids.
func resolveIdentity(h Handle, adapter Adapter) (Identity, bool) {
	if adapter == nil || !adapter.HasStableIDs() {
		return 0, false
	}
	if ided, ok := h.(Identified); ok {
		if id, ok := ided.StableID(); ok {
			return id, true
		}
	}
	return adapter.ItemID(h.Index()), true
}

// identityMap maps identities of the pre-jump viewport to positions in the
// "before" snapshot. It is owned by the in-flight transition.
type identityMap struct {
	entries map[Identity]int
}

func (m *identityMap) put(id Identity, position int) {
	if m.entries == nil {
		m.entries = make(map[Identity]int)
	}
	m.entries[id] = position
}

func (m *identityMap) lookup(id Identity) (int, bool) {
	position, ok := m.entries[id]
	return position, ok
}

func (m *identityMap) len() int {
	return len(m.entries)
}

func (m *identityMap) reset() {
	clear(m.entries)
}
