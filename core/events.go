package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gookit/event"
)

var (
	eventRegistry      = make(map[string]EventFactory)
	eventRegistryMutex sync.RWMutex
)

type Eventer interface {
	event.Event
	SetName(name string) Eventer
}

// EventFactory returns a fresh event value so concurrent fires never share data.
type EventFactory func() Eventer

var _ Eventer = (*Event)(nil)

type Event struct {
	name    string
	data    map[string]any
	aborted bool
}

// Abort event loop exec
func (e *Event) Abort(abort bool) {
	e.aborted = abort
}

// Get data by index
func (e *Event) Get(key string) any {
	if v, ok := e.data[key]; ok {
		return v
	}

	return nil
}

// Add value by key
func (e *Event) Add(key string, val any) {
	if _, ok := e.data[key]; !ok {
		e.Set(key, val)
	}
}

// Set value by key
func (e *Event) Set(key string, val any) {
	if e.data == nil {
		e.data = make(map[string]any)
	}

	e.data[key] = val
}

func (e *Event) Name() string {
	return e.name
}

func (e *Event) Data() map[string]any {
	return e.data
}

func (e *Event) IsAborted() bool {
	return e.aborted
}

func (e *Event) SetName(name string) Eventer {
	e.name = name
	return e
}

func (e *Event) SetData(data event.M) event.Event {
	if data != nil {
		e.data = data
	}
	return e
}

func RegisterEvent(id string, factory EventFactory) {
	eventRegistryMutex.Lock()
	defer eventRegistryMutex.Unlock()

	if _, ok := eventRegistry[id]; ok {
		panic(fmt.Sprintf("event %s already registered", id))
	}

	eventRegistry[id] = factory
}

// NewEvent builds a named instance of a registered event.
func NewEvent(id string) (Eventer, error) {
	eventRegistryMutex.RLock()
	factory, ok := eventRegistry[id]
	eventRegistryMutex.RUnlock()

	if !ok {
		return nil, fmt.Errorf("event %s not found", id)
	}

	evt := factory()
	evt.SetName(id)

	return evt, nil
}

func GetEvents() []string {
	eventRegistryMutex.RLock()
	defer eventRegistryMutex.RUnlock()

	keys := make([]string, 0, len(eventRegistry))

	for k := range eventRegistry {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
