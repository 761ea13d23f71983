package hqdata

import "sync"

// MemoryStore keeps the override blob in memory. It still goes through the
// same encoding as the persistent stores, so tests exercise the real
// serialization boundary.
type MemoryStore struct {
	mu     sync.Mutex
	blob   []byte
	writes int
}

// NewMemoryStore returns an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Read implements [Store].
func (m *MemoryStore) Read() (Overrides, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return decodeOverrides(m.blob), nil
}

// Write implements [Store].
func (m *MemoryStore) Write(o Overrides) error {
	data, err := encodeOverrides(o)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.blob = data
	m.writes++

	return nil
}

// Clear implements [Store].
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blob = nil

	return nil
}

// SetRaw replaces the stored blob with raw bytes, bypassing encoding.
func (m *MemoryStore) SetRaw(raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blob = append([]byte(nil), raw...)
}

// Raw returns a copy of the stored blob, or nil if nothing is stored.
func (m *MemoryStore) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.blob == nil {
		return nil
	}

	return append([]byte(nil), m.blob...)
}

// Writes returns how many times Write succeeded.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.writes
}
