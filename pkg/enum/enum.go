package enum

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

var (
	mutex       sync.RWMutex
	enumManager = map[reflect.Type]any{}
)

type enum[T comparable] struct {
	toEnum map[string]T
}

// New registers value as a member of its enum type and returns it. It is
// expected to be called in package-level var blocks.
func New[T comparable](value T) T {
	mutex.Lock()
	defer mutex.Unlock()

	t := reflect.TypeOf(value)
	if _, ok := enumManager[t]; !ok {
		enumManager[t] = enum[T]{toEnum: make(map[string]T)}
	}

	enumManager[t].(enum[T]).toEnum[fmt.Sprint(value)] = value
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT)]
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.(enum[T]).toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

// IsValid returns true if value was registered by New.
func IsValid[T comparable](value T) bool {
	_, err := ToEnum[T](fmt.Sprint(value))
	return err == nil
}

// List returns all registered values of the enum type, sorted by their
// string form.
func List[T comparable]() []T {
	mutex.RLock()
	defer mutex.RUnlock()

	var defaultT T
	e, ok := enumManager[reflect.TypeOf(defaultT)]
	if !ok {
		return nil
	}

	keys := []string{}
	for k := range e.(enum[T]).toEnum {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []T{}
	for _, k := range keys {
		result = append(result, e.(enum[T]).toEnum[k])
	}

	return result
}
