package model

// AnswerMap is an ordered mapping from question identifier to answer text.
// Iteration follows the order identifiers were first seen; setting an
// existing identifier overwrites its value but keeps its position.
type AnswerMap struct {
	keys   []string
	values map[string]string
}

// NewAnswerMap returns an empty AnswerMap.
func NewAnswerMap() *AnswerMap {
	return &AnswerMap{values: make(map[string]string)}
}

// Set inserts or overwrites the answer text for an identifier.
func (m *AnswerMap) Set(id, text string) {
	if _, ok := m.values[id]; !ok {
		m.keys = append(m.keys, id)
	}
	m.values[id] = text
}

// Get returns the answer text for an identifier.
func (m *AnswerMap) Get(id string) (string, bool) {
	v, ok := m.values[id]
	return v, ok
}

// Keys returns the identifiers in insertion order.
func (m *AnswerMap) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *AnswerMap) Len() int {
	return len(m.keys)
}
