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

// Package mapper turns a declared Go interface method into a running SQL
// statement invocation: mapper/command resolves which statement a method
// dispatches to, mapper/signature classifies what shape the method expects
// back, and Executor/Dispatcher here do the actual argument conversion,
// session call and result binding a hand-written caller would otherwise
// have to write for every method.
//
// There is no reflect-only way to synthesize a concrete Go value
// satisfying an arbitrary interface at runtime (no running program can
// define a new named type with methods), so Dispatcher never hands back a
// value of the declared interface type itself. Instead a caller writes a
// small forwarding struct exactly the way dynasql.Mappers.GetStatement's
// method-value resolution already expects elsewhere in this module:
//
//	type userMapper struct{ *mapper.Dispatcher }
//
//	func (m *userMapper) FindByID(ctx context.Context, id int) (*User, error) {
//		out, err := m.Invoke(ctx, m.FindByID, id)
//		if err != nil || out == nil {
//			return nil, err
//		}
//		return out.(*User), nil
//	}
//
// cmd/dynasqlgen removes even that boilerplate by generating the
// forwarding struct from the interface declaration at build time, which is
// also the only way to support statements declared on an embedded
// super-interface (see mapper/command's InterfaceResolver) since walking
// an interface's embedding graph needs go/types, not reflect.
package mapper

import (
	"reflect"

	"github.com/dynasql/dynasql"
	"github.com/dynasql/dynasql/mapper/command"
)

// RowBounds is the paging descriptor mapper/signature recognizes by type: a
// method parameter assignable to RowBounds is the paging slot, regardless
// of its position, and is folded into the bound parameter set under the
// "rowBounds" key rather than counted as a positional SQL argument.
type RowBounds struct {
	Offset int
	Limit  int
}

// ResultHandler streams one mapped row at a time instead of materializing
// a whole result set. row is a map[string]any keyed by column name: the
// reflection-only Executor has no concrete Go type to scan into without
// cmd/dynasqlgen-generated code, so it hands back the raw column values
// the same way database/sql itself would via an *any destination.
type ResultHandler func(row any) error

var (
	rowBoundsType     = reflect.TypeOf(RowBounds{})
	resultHandlerType = reflect.TypeOf(ResultHandler(nil))
)

// Backend executes a resolved statement id against the underlying
// database. *dynasql.Engine satisfies this directly.
type Backend interface {
	Object(v any) dynasql.SQLRowsExecutor
}

// ConfigurationRegistry adapts a dynasql.IConfiguration's already-loaded
// statements to command.Registry, giving command.MethodValueResolver (and,
// through it, Dispatcher) a live statement-kind lookup with no separate
// bookkeeping of its own.
type ConfigurationRegistry struct {
	Configuration dynasql.IConfiguration
}

// Kind implements command.Registry.
func (r ConfigurationRegistry) Kind(id string) (command.Kind, bool) {
	stmt, err := r.Configuration.GetStatement(id)
	if err != nil {
		return command.UNKNOWN, false
	}
	return command.ParseKind(string(stmt.Action())), true
}
