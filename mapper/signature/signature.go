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

// Package signature analyzes the reflect.Type of a declared mapper-interface
// method once, producing the classification the executor needs to dispatch
// a call without re-inspecting the method on every invocation.
package signature

import (
	"context"
	"errors"
	"fmt"
	"reflect"
)

// ErrMultipleRowBounds is returned when a method declares more than one
// parameter assignable to the configured RowBounds type.
var ErrMultipleRowBounds = errors.New("signature: at most one RowBounds parameter is allowed")

// ErrMultipleResultHandler is returned when a method declares more than one
// parameter assignable to the configured ResultHandler type.
var ErrMultipleResultHandler = errors.New("signature: at most one result handler parameter is allowed")

// Options carries the reflect.Type values signature analysis recognizes
// paging/result-handler parameters by. Go has no method annotations, so
// unlike the teacher's RowBounds/ResultHandler constants these are supplied
// by the caller (mapper.Dispatcher wires its own mapper.RowBounds/
// mapper.ResultHandler types here) instead of being hard-coded, which also
// keeps this package free of an import cycle on package mapper.
type Options struct {
	RowBoundsType     reflect.Type
	ResultHandlerType reflect.Type

	// MapKey is the result-map key property name, supplied by the caller
	// from the resolved statement's own metadata (e.g. an XML mapKey
	// attribute) since Go methods carry no annotation to read it from.
	MapKey string

	// ParamNames, when non-empty, supplies the declared parameter names in
	// order (from debug info or a generator's AST pass); entries left empty
	// fall back to the param<N> convention.
	ParamNames []string
}

// Signature is the resolved classification of one declared interface method.
type Signature struct {
	// Method is the method's name, unqualified.
	Method string

	// ReturnType is the method's first return value type, or nil for
	// ReturnsVoid.
	ReturnType reflect.Type

	ReturnsVoid     bool
	ReturnsMany     bool
	ReturnsMap      bool
	ReturnsCursor   bool
	ReturnsOptional bool

	// MapKey names the result property used as the map key when
	// ReturnsMap is set.
	MapKey string

	// RowBoundsIndex and ResultHandlerIndex are zero-based parameter
	// positions, or -1 when absent. They index into the method's Go
	// argument list, receiver excluded.
	RowBoundsIndex     int
	ResultHandlerIndex int

	// ParamNames names every non-special parameter, in declaration order
	// (special meaning the RowBounds/ResultHandler slots, which are
	// excluded here since they never participate in SQL binding).
	ParamNames []string

	// ParamIndices gives the original fn.In(i) position each ParamNames
	// entry was read from, so a caller holding the full original argument
	// list (receiver excluded) can pull out exactly the bindable values.
	ParamIndices []int
}

// Analyze classifies a Go method type with the receiver already excluded
// (the type of a bound method value, or of a method looked up on an
// interface type) into a Signature.
func Analyze(methodName string, fn reflect.Type, opts Options) (*Signature, error) {
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("signature: %T is not a function type", fn)
	}

	sig := &Signature{
		Method:             methodName,
		RowBoundsIndex:     -1,
		ResultHandlerIndex: -1,
		MapKey:             opts.MapKey,
	}

	// Go has no bare "void" return: a method with no data to report still
	// must return error to propagate failure, so NumOut()==0 (true void,
	// used by result-handler-driven Walk-style methods in generated code)
	// and NumOut()==1 with an error-only return are both "void" in the
	// spec's sense - there is no result value to shape.
	switch {
	case fn.NumOut() == 0:
		sig.ReturnsVoid = true
	case fn.NumOut() == 1 && fn.Out(0) == errorType:
		sig.ReturnsVoid = true
	default:
		sig.ReturnType = fn.Out(0)
		classifyReturn(sig, fn.Out(0))
		if sig.ReturnsMap && sig.MapKey == "" {
			sig.MapKey = discoverMapKey(fn.Out(0))
		}
	}

	paramNames := make([]string, 0, fn.NumIn())
	paramIndices := make([]int, 0, fn.NumIn())
	for i := 0; i < fn.NumIn(); i++ {
		in := fn.In(i)

		if in == contextType {
			continue
		}
		if opts.RowBoundsType != nil && in.AssignableTo(opts.RowBoundsType) {
			if sig.RowBoundsIndex != -1 {
				return nil, ErrMultipleRowBounds
			}
			sig.RowBoundsIndex = i
			continue
		}
		if opts.ResultHandlerType != nil && in.AssignableTo(opts.ResultHandlerType) {
			if sig.ResultHandlerIndex != -1 {
				return nil, ErrMultipleResultHandler
			}
			sig.ResultHandlerIndex = i
			continue
		}

		name := fmt.Sprintf("param%d", len(paramNames)+1)
		if i < len(opts.ParamNames) && opts.ParamNames[i] != "" {
			name = opts.ParamNames[i]
		}
		paramNames = append(paramNames, name)
		paramIndices = append(paramIndices, i)
	}
	sig.ParamNames = paramNames
	sig.ParamIndices = paramIndices

	return sig, nil
}

// mapKeyTag is the struct tag discoverMapKey looks for when Options.MapKey
// is left blank, mirroring sql/result_map.go's own columnTagName
// convention for letting a struct tag carry binding metadata instead of an
// out-of-band annotation Go has no syntax for.
const mapKeyTag = "mapkey"

// discoverMapKey finds the first field of t's map value type (t itself
// being the map type) tagged `mapkey:"..."` with a non-empty value, or ""
// if none is tagged or the value type isn't a struct.
func discoverMapKey(t reflect.Type) string {
	valueType := t.Elem()
	if valueType.Kind() == reflect.Ptr {
		valueType = valueType.Elem()
	}
	if valueType.Kind() != reflect.Struct {
		return ""
	}
	for i := 0; i < valueType.NumField(); i++ {
		if tag, ok := valueType.Field(i).Tag.Lookup(mapKeyTag); ok && tag != "" {
			return valueType.Field(i).Name
		}
	}
	return ""
}

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// classifyReturn shapes the return type purely from its reflect.Kind: Go
// has no way to mark a return type as "cursor" or "optional" short of its
// underlying shape, since sql.Iterator[T] is itself a bare func type
// (iter.Seq2) with no methods to assert against, and the idiomatic Go
// rendering of "value optionally absent" is a nil pointer rather than a
// wrapper type generics can't instantiate from a reflect.Type at runtime.
func classifyReturn(sig *Signature, t reflect.Type) {
	switch t.Kind() {
	case reflect.Func:
		sig.ReturnsCursor = true
	case reflect.Ptr:
		sig.ReturnsOptional = true
	case reflect.Map:
		sig.ReturnsMap = true
	case reflect.Slice, reflect.Array:
		sig.ReturnsMany = true
	}
}
