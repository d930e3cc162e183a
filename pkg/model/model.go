// Package model holds an observable attribute container with change events.
package model

import (
	"reflect"
	"sort"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EventChange fires once per outermost mutation that changed at least one key.
const EventChange = "change"

type (
	// Attributes untyped key/value bag
	Attributes map[string]any
	// Listener receives the model, the changed key and its new value.
	// For EventChange key is empty and value is nil.
	Listener func(m *Model, key string, value any)
	// Subscription handle returned by On, used to unsubscribe with Off
	Subscription struct {
		event string
		id    uint64
	}
	listener struct {
		id uint64
		fn Listener
	}
	// Model is not safe for concurrent use; it belongs to a single owner.
	Model struct {
		cid        string
		attributes Attributes
		previous   Attributes
		changed    Attributes
		listeners  map[string][]listener
		nextID     uint64
		changing   bool
		pending    bool
	}
)

// ChangeEvent returns the event name fired when key changes
func ChangeEvent(key string) string {
	return EventChange + ":" + key
}

// ------------------------------------------------------------------------------------------------
// ~ Constructor
// ------------------------------------------------------------------------------------------------

// New merges attrs over defaults. Neither map is retained.
func New(defaults, attrs Attributes) *Model {
	inst := &Model{
		cid:        uuid.NewString(),
		attributes: make(Attributes, len(defaults)+len(attrs)),
		previous:   Attributes{},
		changed:    Attributes{},
		listeners:  map[string][]listener{},
	}
	for k, v := range defaults {
		inst.attributes[k] = v
	}
	for k, v := range attrs {
		inst.attributes[k] = v
	}
	return inst
}

// ------------------------------------------------------------------------------------------------
// ~ Getter
// ------------------------------------------------------------------------------------------------

// CID client side id, unique per instance
func (m *Model) CID() string {
	return m.cid
}

func (m *Model) Get(key string) any {
	return m.attributes[key]
}

// Lookup reports whether key is present at all
func (m *Model) Lookup(key string) (any, bool) {
	v, ok := m.attributes[key]
	return v, ok
}

// GetString returns "" for absent or non string values
func (m *Model) GetString(key string) string {
	v, _ := m.attributes[key].(string)
	return v
}

// GetBool returns false for absent or non bool values
func (m *Model) GetBool(key string) bool {
	v, _ := m.attributes[key].(bool)
	return v
}

// Has is true when key is present and not nil
func (m *Model) Has(key string) bool {
	return m.attributes[key] != nil
}

// Keys sorted attribute keys
func (m *Model) Keys() []string {
	return sortedKeys(m.attributes)
}

// Attributes returns a shallow copy
func (m *Model) Attributes() Attributes {
	return m.attributes.clone()
}

// Changed returns the keys changed by the last outermost mutation
func (m *Model) Changed() Attributes {
	return m.changed.clone()
}

// HasChanged without keys reports whether the last mutation changed anything,
// otherwise whether any of the given keys changed.
func (m *Model) HasChanged(keys ...string) bool {
	if len(keys) == 0 {
		return len(m.changed) > 0
	}
	for _, key := range keys {
		if _, ok := m.changed[key]; ok {
			return true
		}
	}
	return false
}

// Previous value of key before the last outermost mutation
func (m *Model) Previous(key string) any {
	return m.previous[key]
}

func (m *Model) PreviousAttributes() Attributes {
	return m.previous.clone()
}

// ------------------------------------------------------------------------------------------------
// ~ Public methods
// ------------------------------------------------------------------------------------------------

func (m *Model) Set(key string, value any) {
	m.set(Attributes{key: value}, nil)
}

// SetMany commits all values before any listener is notified
func (m *Model) SetMany(attrs Attributes) {
	m.set(attrs, nil)
}

func (m *Model) Unset(key string) {
	m.set(nil, []string{key})
}

// Update stores values and removes the unset keys in a single commit.
// A key in both is stored.
func (m *Model) Update(values Attributes, unset ...string) {
	m.set(values, unset)
}

// Replace stores values and removes every other key in a single commit
func (m *Model) Replace(values Attributes) {
	var unset []string
	for key := range m.attributes {
		if _, ok := values[key]; !ok {
			unset = append(unset, key)
		}
	}
	m.set(values, unset)
}

// Clear removes every attribute
func (m *Model) Clear() {
	m.set(nil, m.Keys())
}

// On registers fn for event. Listeners of one event run in registration order.
func (m *Model) On(event string, fn Listener) Subscription {
	m.nextID++
	m.listeners[event] = append(m.listeners[event], listener{id: m.nextID, fn: fn})
	return Subscription{event: event, id: m.nextID}
}

// Off removes a subscription, unknown subscriptions are ignored
func (m *Model) Off(s Subscription) {
	ls := m.listeners[s.event]
	for i, l := range ls {
		if l.id == s.id {
			m.listeners[s.event] = append(ls[:i:i], ls[i+1:]...)
			break
		}
	}
	if len(m.listeners[s.event]) == 0 {
		delete(m.listeners, s.event)
	}
}

// Clone copies the attributes into a new model with its own CID and no listeners
func (m *Model) Clone() *Model {
	return New(nil, m.attributes)
}

func (m *Model) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(m.attributes))
}

// ------------------------------------------------------------------------------------------------
// ~ Private methods
// ------------------------------------------------------------------------------------------------

func (m *Model) set(values Attributes, unset []string) {
	changing := m.changing
	m.changing = true
	if !changing {
		m.previous = m.attributes.clone()
		m.changed = Attributes{}
	}

	keys := make(Attributes, len(values)+len(unset))
	for _, key := range unset {
		keys[key] = nil
	}
	for key := range values {
		keys[key] = nil
	}

	var changes []string
	for _, key := range sortedKeys(keys) {
		current, ok := m.attributes[key]
		if value, set := values[key]; set {
			if ok && equal(current, value) {
				continue
			}
			m.attributes[key] = value
		} else {
			if !ok {
				continue
			}
			delete(m.attributes, key)
		}
		changes = append(changes, key)

		prev, hadPrev := m.previous[key]
		_, hasNow := m.attributes[key]
		if hadPrev == hasNow && equal(prev, m.attributes[key]) {
			delete(m.changed, key)
		} else {
			m.changed[key] = m.attributes[key]
		}
	}

	if len(changes) > 0 {
		m.pending = true
	}
	for _, key := range changes {
		m.emit(ChangeEvent(key), key, m.attributes[key])
	}

	// nested calls fold into the outermost change event
	if changing {
		return
	}
	for m.pending {
		m.pending = false
		m.emit(EventChange, "", nil)
	}
	m.changing = false
}

func (m *Model) emit(event, key string, value any) {
	ls := m.listeners[event]
	if len(ls) == 0 {
		return
	}
	// listeners may subscribe or unsubscribe while we iterate
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		l.fn(m, key, value)
	}
}

func (a Attributes) clone() Attributes {
	ret := make(Attributes, len(a))
	for k, v := range a {
		ret[k] = v
	}
	return ret
}

func sortedKeys(a Attributes) []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}
