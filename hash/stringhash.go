package hash

// Mutable and order preserving hash with string keys and arbitrary values. Used by
// the Record value to store its fields

type (
	stringEntry struct {
		key   string
		value interface{}
	}

	StringHash struct {
		entries []*stringEntry
		index   map[string]int
	}
)

// NewStringHash returns an empty *StringHash initialized with given capacity
func NewStringHash(capacity int) *StringHash {
	return &StringHash{make([]*stringEntry, 0, capacity), make(map[string]int, capacity)}
}

// Copy returns a shallow copy of this hash, i.e. each key and value is not cloned
func (h *StringHash) Copy() *StringHash {
	entries := make([]*stringEntry, len(h.entries))
	for i, e := range h.entries {
		entries[i] = &stringEntry{e.key, e.value}
	}
	index := make(map[string]int, len(h.index))
	for k, v := range h.index {
		index[k] = v
	}
	return &StringHash{entries, index}
}

// EachPair calls the given consumer function once for each key/value pair in this hash
func (h *StringHash) EachPair(consumer func(key string, value interface{})) {
	for _, e := range h.entries {
		consumer(e.key, e.value)
	}
}

// EqualsFunc compares two hashes for equality using the given function to compare
// values. Hashes are considered equal if the have the same size and contains the same
// key/value associations irrespective of order
func (h *StringHash) EqualsFunc(oh *StringHash, eq func(a, b interface{}) bool) bool {
	if len(h.entries) != len(oh.entries) {
		return false
	}
	for _, e := range h.entries {
		oi, ok := oh.index[e.key]
		if !(ok && eq(e.value, oh.entries[oi].value)) {
			return false
		}
	}
	return true
}

// Get returns a value from the hash or nil together with a boolean to indicate if the key was present or not
func (h *StringHash) Get(key string) (interface{}, bool) {
	if p, ok := h.index[key]; ok {
		return h.entries[p].value, true
	}
	return nil, false
}

// Delete the entry for the given key from the hash. Returns the old value or nil if not found
func (h *StringHash) Delete(key string) (oldValue interface{}) {
	p, ok := h.index[key]
	if !ok {
		return nil
	}
	oldValue = h.entries[p].value
	delete(h.index, key)
	for k, v := range h.index {
		if v > p {
			h.index[k] = v - 1
		}
	}
	h.entries = append(h.entries[:p], h.entries[p+1:]...)
	return
}

// Includes returns true if the hash contains the given key
func (h *StringHash) Includes(key string) bool {
	_, ok := h.index[key]
	return ok
}

// Keys returns the keys of the hash in the order that they were first entered
func (h *StringHash) Keys() []string {
	keys := make([]string, len(h.entries))
	for i, e := range h.entries {
		keys[i] = e.key
	}
	return keys
}

// Put adds a new key/value association to the hash or replace the value of an existing association
func (h *StringHash) Put(key string, value interface{}) (oldValue interface{}) {
	if p, ok := h.index[key]; ok {
		e := h.entries[p]
		oldValue = e.value
		e.value = value
	} else {
		h.index[key] = len(h.entries)
		h.entries = append(h.entries, &stringEntry{key, value})
	}
	return
}

// Len returns the number of entries in the hash
func (h *StringHash) Len() int {
	return len(h.entries)
}

// Values returns the values of the hash in the order that their respective keys were first entered
func (h *StringHash) Values() []interface{} {
	values := make([]interface{}, len(h.entries))
	for i, e := range h.entries {
		values[i] = e.value
	}
	return values
}
