package dotenv

import (
	"iter"
	"os"
	"slices"
	"sync"
)

// Store is the key/value mapping a [Loader] reads committed values from and
// writes resolved values into. Names are case-sensitive.
//
// First-wins is enforced by the Loader, not the Store: Set is only called
// for names Lookup reported missing.
type Store interface {
	Lookup(name string) (Value, bool)
	Set(name string, v Value) error
}

// Lookuper reads the ambient environment that existed independently of any
// load. [os.LookupEnv] satisfies it via [Environ].
type Lookuper interface {
	LookupEnv(name string) (string, bool)
}

// LookupFunc adapts a function to [Lookuper].
type LookupFunc func(name string) (string, bool)

// LookupEnv implements [Lookuper].
func (f LookupFunc) LookupEnv(name string) (string, bool) { return f(name) }

// Environ returns a [Lookuper] for the process environment.
func Environ() Lookuper { return LookupFunc(os.LookupEnv) }

// Map is an in-memory [Store] that remembers insertion order.
// The zero value is not usable; construct with [NewMap].
type Map struct {
	mu    sync.RWMutex
	vals  map[string]Value
	order []string
}

// NewMap returns an empty in-memory store.
func NewMap() *Map {
	return &Map{vals: make(map[string]Value)}
}

// Lookup implements [Store].
func (m *Map) Lookup(name string) (Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vals[name]

	return v, ok
}

// Set implements [Store]. Setting an existing name replaces its value but
// keeps its original position.
func (m *Map) Set(name string, v Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.vals[name]; !ok {
		m.order = append(m.order, name)
	}

	m.vals[name] = v

	return nil
}

// Len returns the number of names in the store.
func (m *Map) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.order)
}

// All returns an iterator over the stored values in insertion order.
// The iterator works on a snapshot taken when it starts.
func (m *Map) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		m.mu.RLock()
		names := slices.Clone(m.order)
		vals := make([]Value, len(names))

		for i, name := range names {
			vals[i] = m.vals[name]
		}
		m.mu.RUnlock()

		for i, name := range names {
			if !yield(name, vals[i]) {
				return
			}
		}
	}
}

// process is the store shared by every Loader constructed without
// [WithStore]. It lives for the lifetime of the process.
//
//nolint:gochecknoglobals
var process = &processStore{Map: NewMap(), setenv: os.Setenv}

// Process returns the process-wide [Store]. Typed values are kept in memory
// and their string forms are mirrored into the OS environment.
func Process() Store { return process }

type processStore struct {
	*Map

	setenv func(name, value string) error
}

// Set implements [Store]. The OS environment is written first so a failed
// mirror leaves no typed entry behind.
func (p *processStore) Set(name string, v Value) error {
	err := p.setenv(name, v.String())
	if err != nil {
		return err
	}

	return p.Map.Set(name, v)
}
