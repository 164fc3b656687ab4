// Package env provides the environment handle generated shaders read
// globals from and write globals to.
package env

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"glslgen/internal/rt"
)

// ErrUndefined is returned by Get for a name with no value.
var ErrUndefined = errors.New("undefined global")

// Environment is what generated code sees as `env`.
type Environment interface {
	Get(name string) (rt.Value, error)
	Set(name string, value rt.Value) error
}

// Map is a goroutine-safe Environment backed by a map.
type Map struct {
	mu     sync.RWMutex
	values map[string]rt.Value
}

// NewMap returns a Map seeded with a copy of values.
func NewMap(values map[string]rt.Value) *Map {
	m := &Map{values: make(map[string]rt.Value, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *Map) Get(name string) (rt.Value, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUndefined, name)
	}
	return v, nil
}

func (m *Map) Set(name string, value rt.Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = value
	return nil
}

// Snapshot returns a copy of the current values.
func (m *Map) Snapshot() map[string]rt.Value {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]rt.Value, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Names lists the defined names in sorted order.
func (m *Map) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.values))
	for k := range m.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Op is the kind of a recorded call.
type Op uint8

const (
	OpGet Op = iota + 1
	OpSet
)

func (o Op) String() string {
	switch o {
	case OpGet:
		return "get"
	case OpSet:
		return "set"
	}
	return "unknown"
}

// Call is one recorded environment access.
type Call struct {
	Op    Op
	Name  string
	Value rt.Value // value read or written; nil for failed reads
}

func (c Call) String() string {
	return fmt.Sprintf("%s %s %s", c.Op, c.Name, rt.Format(c.Value))
}

// Recorder forwards to another Environment and logs every call in order.
type Recorder struct {
	next Environment

	mu    sync.Mutex
	calls []Call
}

// NewRecorder wraps next.
func NewRecorder(next Environment) *Recorder {
	return &Recorder{next: next}
}

func (r *Recorder) Get(name string) (rt.Value, error) {
	v, err := r.next.Get(name)
	r.record(Call{Op: OpGet, Name: name, Value: v})
	return v, err
}

func (r *Recorder) Set(name string, value rt.Value) error {
	r.record(Call{Op: OpSet, Name: name, Value: value})
	return r.next.Set(name, value)
}

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

// Calls returns the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Transcript renders the calls one per line.
func (r *Recorder) Transcript() string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return strings.Join(lines, "\n")
}
