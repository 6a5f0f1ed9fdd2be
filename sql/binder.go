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

package sql

import "reflect"

// bindWithResultMap maps rows to a destination value using the given ResultMap.
// It is the core binding function every exported Bind/List/List2 variant funnels
// through.
//
// Parameters:
//   - rows: the source Rows to map from. Must not be nil.
//   - v: the destination value to map to. Must be a pointer and not nil.
//   - resultMap: the mapping strategy to use. If nil, a default mapper is selected
//     based on the destination type (SingleRowResultMap for struct, MultiRowsResultMap
//     for slice).
//
// Returns an error if:
//   - the destination is nil (ErrNilDestination)
//   - the rows parameter is nil (ErrNilRows)
//   - the destination is not a pointer (ErrPointerRequired)
//   - any error occurs during the mapping process
func bindWithResultMap(rows Rows, v any, resultMap ResultMap) error {
	if v == nil {
		return ErrNilDestination
	}
	if rows == nil {
		return ErrNilRows
	}
	if rowScanner, ok := v.(RowScanner); ok {
		return rowScanner.ScanRows(rows)
	}
	rv := reflect.ValueOf(v)

	if rv.Kind() != reflect.Ptr {
		return ErrPointerRequired
	}

	if resultMap == nil {
		if kd := reflect.Indirect(rv).Kind(); kd == reflect.Slice {
			resultMap = MultiRowsResultMap{}
		} else {
			resultMap = SingleRowResultMap{}
		}
	}
	return resultMap.MapTo(rv, rows)
}

// BindWithResultMap binds rows to T using the given ResultMap. dest can be
// inferred as a struct, a slice of structs, or a slice of any scalar type.
// rows is not closed when the function returns.
func BindWithResultMap[T any](rows Rows, resultMap ResultMap) (result T, err error) {
	var ptr any = &result

	if t := reflect.TypeOf(result); t != nil && t.Kind() == reflect.Ptr {
		result = reflect.New(t.Elem()).Interface().(T)
		ptr = result
	}
	err = bindWithResultMap(rows, ptr, resultMap)
	return
}

// Bind binds rows to T using the default ResultMap.
//
//	type User struct {
//	    ID   int    `column:"id"`
//	    Name string `column:"name"`
//	}
//
//	user, err := Bind[User](rows)
func Bind[T any](rows Rows) (result T, err error) {
	return BindWithResultMap[T](rows, nil)
}

// List converts rows into a slice of T. If there are no rows, it returns an
// empty slice (see resultMapPreserveNilSlice).
//
// List always returns a slice, even for a single row, whereas Bind infers the
// shape from T. Prefer List when the shape is known ahead of time; it skips
// a reflect.New per call for non-pointer element types.
func List[T any](rows Rows) (result []T, err error) {
	var multiRowsResultMap MultiRowsResultMap

	element := reflect.TypeOf((*T)(nil)).Elem()

	if element.Kind() != reflect.Ptr {
		multiRowsResultMap.New = func() reflect.Value { return reflect.ValueOf(new(T)) }
	}

	err = bindWithResultMap(rows, &result, multiRowsResultMap)
	return
}

// List2 converts rows into a slice of pointers, []*T, instead of List's []T.
// Useful when elements need further mutation or are large enough that
// avoiding the extra copy matters.
func List2[T any](rows Rows) ([]*T, error) {
	items, err := List[T](rows)
	if err != nil {
		return nil, err
	}
	result := make([]*T, len(items))
	for i := range items {
		result[i] = &items[i]
	}
	return result, nil
}
