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

package mapper

import (
	"context"
	stdsql "database/sql"
	"errors"
	"fmt"
	"reflect"

	"github.com/dynasql/dynasql"
	"github.com/dynasql/dynasql/mapper/command"
	"github.com/dynasql/dynasql/mapper/signature"
	jsql "github.com/dynasql/dynasql/sql"
)

// ErrUnsupportedReturnType is returned when a DML method's return type
// cannot carry a row count, or a SELECT method needs generated code to
// satisfy its declared return shape.
var ErrUnsupportedReturnType = errors.New("mapper: unsupported return type")

// Executor runs one resolved statement against a Backend: it converts the
// method's arguments into a dynasql.Param, issues the right Backend call
// for the command's kind, and shapes the result per the method's
// signature.Signature - the dispatch table a hand-written mapper method
// would otherwise implement itself.
type Executor struct {
	Backend Backend
}

// Execute dispatches cmd/sig against args, which holds the method's full
// original argument list (receiver excluded, context included at whatever
// index it appeared).
func (e *Executor) Execute(ctx context.Context, cmd command.Command, sig *signature.Signature, args []any) (any, error) {
	switch cmd.Kind {
	case command.INSERT, command.UPDATE, command.DELETE:
		return e.write(ctx, cmd, sig, args)
	case command.SELECT:
		return e.read(ctx, cmd, sig, args)
	case command.FLUSH:
		return nil, e.flush(ctx)
	default:
		return nil, fmt.Errorf("mapper: %s: %w", cmd.Name, command.ErrUnknownStatementKind)
	}
}

func (e *Executor) write(ctx context.Context, cmd command.Command, sig *signature.Signature, args []any) (any, error) {
	exec := e.Backend.Object(cmd.Name)
	param := buildParam(sig, args)

	var (
		result jsql.Result
		err    error
	)
	switch cmd.Kind {
	case command.INSERT:
		result, err = exec.ExecContext(ctx, param)
	case command.UPDATE:
		result, err = exec.ExecContext(ctx, param)
	case command.DELETE:
		result, err = exec.ExecContext(ctx, param)
	}
	if err != nil {
		return nil, err
	}

	if sig.ReturnsVoid {
		return nil, nil
	}

	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("mapper: %s: %w", cmd.Name, err)
	}
	return rowCountResult(n, sig.ReturnType)
}

// rowCountResult coerces a DML row count into the shape a declared method
// return type asks for: void discards it, signed integer kinds receive it
// converted to the declared type, bool reports whether any row was
// affected, anything else fails.
func rowCountResult(n int64, returnType reflect.Type) (any, error) {
	switch returnType.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(n).Convert(returnType).Interface(), nil
	case reflect.Bool:
		return n > 0, nil
	default:
		return nil, fmt.Errorf("%w: %s cannot carry a row count", ErrUnsupportedReturnType, returnType)
	}
}

func (e *Executor) read(ctx context.Context, cmd command.Command, sig *signature.Signature, args []any) (any, error) {
	exec := e.Backend.Object(cmd.Name)
	param := buildParam(sig, args)

	if sig.ReturnsVoid {
		if sig.ResultHandlerIndex != -1 {
			return nil, e.selectWithHandler(ctx, exec, param, args[sig.ResultHandlerIndex])
		}
		rows, err := exec.QueryContext(ctx, param)
		if err != nil {
			return nil, err
		}
		return nil, rows.Close()
	}

	rows, err := exec.QueryContext(ctx, param)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	switch {
	case sig.ReturnsMany:
		return selectMany(rows, sig)
	case sig.ReturnsMap:
		return selectMap(rows, sig)
	case sig.ReturnsCursor:
		return nil, fmt.Errorf("mapper: %s: %w: cursor returns require cmd/dynasqlgen-generated code", cmd.Name, ErrUnsupportedReturnType)
	default:
		return selectOne(rows, sig)
	}
}

func selectOne(rows jsql.Rows, sig *signature.Signature) (any, error) {
	allocType := sig.ReturnType
	if allocType.Kind() == reflect.Ptr {
		allocType = allocType.Elem()
	}
	rv := reflect.New(allocType)

	if err := (jsql.SingleRowResultMap{}).MapTo(rv, rows); err != nil {
		if errors.Is(err, stdsql.ErrNoRows) && sig.ReturnsOptional {
			return reflect.Zero(sig.ReturnType).Interface(), nil
		}
		return nil, err
	}

	if sig.ReturnType.Kind() == reflect.Ptr {
		return rv.Interface(), nil
	}
	return rv.Elem().Interface(), nil
}

func selectMany(rows jsql.Rows, sig *signature.Signature) (any, error) {
	rv := reflect.New(sig.ReturnType)
	if err := (jsql.MultiRowsResultMap{}).MapTo(rv, rows); err != nil {
		return nil, err
	}
	return rv.Elem().Interface(), nil
}

func selectMap(rows jsql.Rows, sig *signature.Signature) (any, error) {
	if sig.MapKey == "" {
		return nil, fmt.Errorf("mapper: %s: map return requires a map key; tag the keyed field `mapkey:\"true\"`", sig.Method)
	}

	valueType := sig.ReturnType.Elem()
	sliceValue := reflect.New(reflect.SliceOf(valueType))
	if err := (jsql.MultiRowsResultMap{}).MapTo(sliceValue, rows); err != nil {
		return nil, err
	}

	slice := sliceValue.Elem()
	result := reflect.MakeMapWithSize(sig.ReturnType, slice.Len())
	for i := 0; i < slice.Len(); i++ {
		elem := slice.Index(i)
		key := reflect.Indirect(elem).FieldByName(sig.MapKey)
		if !key.IsValid() {
			return nil, fmt.Errorf("mapper: %s: map key field %q not found on %s", sig.Method, sig.MapKey, valueType)
		}
		result.SetMapIndex(key.Convert(sig.ReturnType.Key()), elem)
	}
	return result.Interface(), nil
}

func (e *Executor) selectWithHandler(ctx context.Context, exec dynasql.SQLRowsExecutor, param dynasql.Param, handler any) error {
	rows, err := exec.QueryContext(ctx, param)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		row, err := scanRowMap(rows)
		if err != nil {
			return err
		}
		if err := callRowHandler(handler, row); err != nil {
			return err
		}
	}
	return rows.Err()
}

// scanRowMap scans the current row into a column-name-keyed map, the
// shape a ResultHandler receives since Executor has no concrete Go type
// to bind into without generated code.
func scanRowMap(rows jsql.Rows) (map[string]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	row := make(map[string]any, len(columns))
	for i, col := range columns {
		row[col] = values[i]
	}
	return row, nil
}

// callRowHandler invokes handler via reflect rather than a type assertion
// to ResultHandler, since a declared parameter only needs to be
// assignable to ResultHandler (signature.Analyze's AssignableTo check),
// not identical to it - a distinct named type with the same underlying
// func(any) error shape would fail a direct assertion but still Call fine.
func callRowHandler(handler any, row any) error {
	out := reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(row)})
	if out[0].IsNil() {
		return nil
	}
	return out[0].Interface().(error)
}

func (e *Executor) flush(context.Context) error {
	// dynasql has no first/second-level statement cache to invalidate
	// (caching beyond the driver's own connection pool is a non-goal), so
	// FLUSH is satisfied vacuously; it only exists so a method carrying the
	// flush marker has a defined outcome instead of ErrMissingStatement.
	return nil
}

// buildParam converts a method's non-special arguments into a
// dynasql.Param, per the "convert-args" rule: exactly one bindable
// argument with no explicit name (the synthesized "param1") and no
// RowBounds slot passes through as the bare value; anything else builds a
// strict-lookup map carrying each argument under its resolved name and its
// param<k> alias, plus the RowBounds value (if any) under "rowBounds".
func buildParam(sig *signature.Signature, args []any) dynasql.Param {
	hasRowBounds := sig.RowBoundsIndex != -1

	if len(sig.ParamIndices) == 0 && !hasRowBounds {
		return nil
	}
	if len(sig.ParamIndices) == 1 && !hasRowBounds && sig.ParamNames[0] == "param1" {
		return args[sig.ParamIndices[0]]
	}

	h := make(dynasql.H, len(sig.ParamIndices)*2+1)
	for i, idx := range sig.ParamIndices {
		v := args[idx]
		h[sig.ParamNames[i]] = v
		h[fmt.Sprintf("param%d", i+1)] = v
	}
	if hasRowBounds {
		h["rowBounds"] = args[sig.RowBoundsIndex]
	}
	return h
}
