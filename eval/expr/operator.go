/*
Copyright 2023 eatmoreapple

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

package expr

import "reflect"

// IntOperator implements every OperatorExpr over reflect.Int* kinds.
type IntOperator struct {
	OperatorExpr OperatorExpr
}

func (o IntOperator) Operate(x, y reflect.Value) (reflect.Value, error) {
	a, b := x.Int(), y.Int()
	switch o.OperatorExpr {
	case Add:
		return reflect.ValueOf(a + b), nil
	case Sub:
		return reflect.ValueOf(a - b), nil
	case Mul:
		return reflect.ValueOf(a * b), nil
	case Quo:
		return reflect.ValueOf(a / b), nil
	case Rem:
		return reflect.ValueOf(a % b), nil
	case And:
		return reflect.ValueOf(a & b), nil
	case Land:
		return reflect.ValueOf(a != 0 && b != 0), nil
	case Or:
		return reflect.ValueOf(a | b), nil
	case Lor:
		return reflect.ValueOf(a != 0 || b != 0), nil
	case Eq:
		return reflect.ValueOf(a == b), nil
	case Ne:
		return reflect.ValueOf(a != b), nil
	case Lt:
		return reflect.ValueOf(a < b), nil
	case Le:
		return reflect.ValueOf(a <= b), nil
	case Gt:
		return reflect.ValueOf(a > b), nil
	case Ge:
		return reflect.ValueOf(a >= b), nil
	default:
		return reflect.Value{}, NewOperationError(x, y, o.OperatorExpr.String())
	}
}

// UintOperator implements every OperatorExpr over reflect.Uint* kinds.
type UintOperator struct {
	OperatorExpr OperatorExpr
}

func (o UintOperator) Operate(x, y reflect.Value) (reflect.Value, error) {
	a, b := x.Uint(), y.Uint()
	switch o.OperatorExpr {
	case Add:
		return reflect.ValueOf(a + b), nil
	case Sub:
		return reflect.ValueOf(a - b), nil
	case Mul:
		return reflect.ValueOf(a * b), nil
	case Quo:
		return reflect.ValueOf(a / b), nil
	case Rem:
		return reflect.ValueOf(a % b), nil
	case And:
		return reflect.ValueOf(a & b), nil
	case Land:
		return reflect.ValueOf(a != 0 && b != 0), nil
	case Or:
		return reflect.ValueOf(a | b), nil
	case Lor:
		return reflect.ValueOf(a != 0 || b != 0), nil
	case Eq:
		return reflect.ValueOf(a == b), nil
	case Ne:
		return reflect.ValueOf(a != b), nil
	case Lt:
		return reflect.ValueOf(a < b), nil
	case Le:
		return reflect.ValueOf(a <= b), nil
	case Gt:
		return reflect.ValueOf(a > b), nil
	case Ge:
		return reflect.ValueOf(a >= b), nil
	default:
		return reflect.Value{}, NewOperationError(x, y, o.OperatorExpr.String())
	}
}

// FloatOperator implements every OperatorExpr over reflect.Float* kinds,
// except the bitwise operators (&, |) which floats don't support.
type FloatOperator struct {
	OperatorExpr OperatorExpr
}

func (o FloatOperator) Operate(x, y reflect.Value) (reflect.Value, error) {
	a, b := x.Float(), y.Float()
	switch o.OperatorExpr {
	case Add:
		return reflect.ValueOf(a + b), nil
	case Sub:
		return reflect.ValueOf(a - b), nil
	case Mul:
		return reflect.ValueOf(a * b), nil
	case Quo:
		return reflect.ValueOf(a / b), nil
	case Rem:
		return reflect.ValueOf(float64(int64(a) % int64(b))), nil
	case Eq:
		return reflect.ValueOf(a == b), nil
	case Ne:
		return reflect.ValueOf(a != b), nil
	case Lt:
		return reflect.ValueOf(a < b), nil
	case Le:
		return reflect.ValueOf(a <= b), nil
	case Gt:
		return reflect.ValueOf(a > b), nil
	case Ge:
		return reflect.ValueOf(a >= b), nil
	default:
		return reflect.Value{}, NewOperationError(x, y, o.OperatorExpr.String())
	}
}

// StringOperator implements concatenation and comparison over strings.
type StringOperator struct {
	OperatorExpr OperatorExpr
}

func (o StringOperator) Operate(x, y reflect.Value) (reflect.Value, error) {
	a, b := x.String(), y.String()
	switch o.OperatorExpr {
	case Add:
		return reflect.ValueOf(a + b), nil
	case Eq:
		return reflect.ValueOf(a == b), nil
	case Ne:
		return reflect.ValueOf(a != b), nil
	case Lt:
		return reflect.ValueOf(a < b), nil
	case Le:
		return reflect.ValueOf(a <= b), nil
	case Gt:
		return reflect.ValueOf(a > b), nil
	case Ge:
		return reflect.ValueOf(a >= b), nil
	default:
		return reflect.Value{}, NewOperationError(x, y, o.OperatorExpr.String())
	}
}

// BoolOperator implements the logical and equality operators over bools.
type BoolOperator struct {
	OperatorExpr OperatorExpr
}

func (o BoolOperator) Operate(x, y reflect.Value) (reflect.Value, error) {
	a, b := x.Bool(), y.Bool()
	switch o.OperatorExpr {
	case And, Land:
		return reflect.ValueOf(a && b), nil
	case Or, Lor:
		return reflect.ValueOf(a || b), nil
	case Eq:
		return reflect.ValueOf(a == b), nil
	case Ne:
		return reflect.ValueOf(a != b), nil
	default:
		return reflect.Value{}, NewOperationError(x, y, o.OperatorExpr.String())
	}
}

// ComplexOperator implements arithmetic and equality over complex numbers.
// Complex values have no ordering, so Lt/Le/Gt/Ge are unsupported.
type ComplexOperator struct {
	OperatorExpr OperatorExpr
}

func (o ComplexOperator) Operate(x, y reflect.Value) (reflect.Value, error) {
	a, b := x.Complex(), y.Complex()
	switch o.OperatorExpr {
	case Add:
		return reflect.ValueOf(a + b), nil
	case Sub:
		return reflect.ValueOf(a - b), nil
	case Mul:
		return reflect.ValueOf(a * b), nil
	case Quo:
		return reflect.ValueOf(a / b), nil
	case Eq:
		return reflect.ValueOf(a == b), nil
	case Ne:
		return reflect.ValueOf(a != b), nil
	default:
		return reflect.Value{}, NewOperationError(x, y, o.OperatorExpr.String())
	}
}

// InvalidTypeOperator handles operations where one or both operands are the
// zero reflect.Value (e.g. a nil map lookup miss). Only equality against
// nil is meaningful; everything else is an error.
type InvalidTypeOperator struct {
	OperatorExpr OperatorExpr
}

func (o InvalidTypeOperator) Operate(x, y reflect.Value) (reflect.Value, error) {
	switch o.OperatorExpr {
	case Eq:
		return reflect.ValueOf(!x.IsValid() && !y.IsValid()), nil
	case Ne:
		return reflect.ValueOf(x.IsValid() || y.IsValid()), nil
	default:
		return reflect.Value{}, NewOperationError(x, y, o.OperatorExpr.String())
	}
}

// GenericOperator is the entry point used by FromToken: it inspects the
// operand kinds and delegates to the matching kind-specific Operator,
// rejecting operand pairs whose kinds don't match.
type GenericOperator struct {
	OperatorExpr OperatorExpr
}

func (o GenericOperator) Operate(x, y reflect.Value) (reflect.Value, error) {
	if !x.IsValid() || !y.IsValid() {
		return InvalidTypeOperator{OperatorExpr: o.OperatorExpr}.Operate(x, y)
	}

	xk, yk := normalizeKind(x.Kind()), normalizeKind(y.Kind())
	if xk != yk {
		return reflect.Value{}, NewOperationError(x, y, o.OperatorExpr.String())
	}

	switch xk {
	case reflect.Int64:
		return IntOperator{OperatorExpr: o.OperatorExpr}.Operate(x, y)
	case reflect.Uint64:
		return UintOperator{OperatorExpr: o.OperatorExpr}.Operate(x, y)
	case reflect.Float64:
		return FloatOperator{OperatorExpr: o.OperatorExpr}.Operate(x, y)
	case reflect.String:
		return StringOperator{OperatorExpr: o.OperatorExpr}.Operate(x, y)
	case reflect.Bool:
		return BoolOperator{OperatorExpr: o.OperatorExpr}.Operate(x, y)
	case reflect.Complex128:
		return ComplexOperator{OperatorExpr: o.OperatorExpr}.Operate(x, y)
	default:
		return reflect.Value{}, NewOperationError(x, y, o.OperatorExpr.String())
	}
}

// normalizeKind folds the sized int/uint/float/complex kinds down to one
// representative kind per family, so GenericOperator can compare operand
// families without enumerating every width.
func normalizeKind(k reflect.Kind) reflect.Kind {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.Int64
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return reflect.Uint64
	case reflect.Float32, reflect.Float64:
		return reflect.Float64
	case reflect.Complex64, reflect.Complex128:
		return reflect.Complex128
	default:
		return k
	}
}
