/*
Copyright 2025 eatmoreapple

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package typehandler lets a Go type control its own driver-value encoding,
// the way database/sql.Valuer/Scanner do, but keyed by reflect.Type so the
// type itself does not need to implement anything. Values are converted
// only where a caller invokes ToDriverValue/FromDriverValue; no other
// package of this module calls them.
package typehandler

import (
	"fmt"
	"reflect"
	"sync"
)

// TypeHandler converts between a Go value and the driver value bound into
// (or scanned out of) a SQL statement.
type TypeHandler interface {
	// ToDriverValue converts v, of the registered Go type, into a value
	// database/sql accepts as a query argument.
	ToDriverValue(v any) (any, error)

	// FromDriverValue converts a driver-returned value back into the
	// registered Go type.
	FromDriverValue(v any) (any, error)
}

var (
	mu       sync.RWMutex
	registry = map[reflect.Type]TypeHandler{}
)

// Register associates TypeHandler with every Go value of the same type as
// sample, overwriting any previous registration for that type.
func Register(sample any, handler TypeHandler) {
	mu.Lock()
	defer mu.Unlock()
	registry[reflect.TypeOf(sample)] = handler
}

// Lookup returns the TypeHandler registered for t, if any.
func Lookup(t reflect.Type) (TypeHandler, bool) {
	mu.RLock()
	defer mu.RUnlock()
	h, ok := registry[t]
	return h, ok
}

// ToDriverValue converts v using its registered TypeHandler, if one exists.
// It returns v unchanged (ok=false) when no handler is registered, so a
// caller can fall through to database/sql's own Valuer handling.
func ToDriverValue(v any) (any, bool, error) {
	if v == nil {
		return nil, false, nil
	}
	h, ok := Lookup(reflect.TypeOf(v))
	if !ok {
		return v, false, nil
	}
	driverValue, err := h.ToDriverValue(v)
	if err != nil {
		return nil, true, fmt.Errorf("typehandler: %T.ToDriverValue: %w", v, err)
	}
	return driverValue, true, nil
}

// FromDriverValue converts v, scanned from the driver, into a value of
// Go type t using its registered TypeHandler, if one exists.
func FromDriverValue(t reflect.Type, v any) (any, bool, error) {
	h, ok := Lookup(t)
	if !ok {
		return v, false, nil
	}
	converted, err := h.FromDriverValue(v)
	if err != nil {
		return nil, true, fmt.Errorf("typehandler: %s.FromDriverValue: %w", t, err)
	}
	return converted, true, nil
}
