package store

import "reflect"

// Local is an exclusive type-keyed store. It performs no locking; the owner is
// responsible for confining it to one goroutine. The zero value is ready to use.
type Local struct {
	values map[reflect.Type]any
}

// NewLocal creates an empty exclusive store.
func NewLocal() *Local {
	return &Local{values: make(map[reflect.Type]any)}
}

func (l *Local) engine() engine { return l }

func (l *Local) read(key reflect.Type) (any, func(), bool) {
	val, ok := l.values[key]
	return val, noop, ok
}

func (l *Local) write(key reflect.Type) (any, func(), bool) {
	val, ok := l.values[key]
	return val, noop, ok
}

func (l *Local) insert(key reflect.Type, create func() any) (any, func(), bool) {
	if val, ok := l.values[key]; ok {
		return val, noop, false
	}
	if l.values == nil {
		l.values = make(map[reflect.Type]any)
	}
	val := create()
	l.values[key] = val
	return val, noop, true
}

func (l *Local) remove(key reflect.Type, _ bool) (any, func(), bool) {
	val, ok := l.values[key]
	if ok {
		delete(l.values, key)
	}
	return val, noop, ok
}

func (l *Local) has(key reflect.Type) bool {
	_, ok := l.values[key]
	return ok
}

func (l *Local) size() int {
	return len(l.values)
}
