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

package typehandler

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DecimalHandler binds a decimal.Decimal as its exact string form, so a
// NUMERIC/DECIMAL column round-trips without the float64 precision loss
// database/sql's default conversion would introduce.
type DecimalHandler struct{}

// ToDriverValue implements TypeHandler.
func (DecimalHandler) ToDriverValue(v any) (any, error) {
	d, ok := v.(decimal.Decimal)
	if !ok {
		return nil, fmt.Errorf("expected decimal.Decimal, got %T", v)
	}
	return d.String(), nil
}

// FromDriverValue implements TypeHandler.
func (DecimalHandler) FromDriverValue(v any) (any, error) {
	switch value := v.(type) {
	case decimal.Decimal:
		return value, nil
	case string:
		return decimal.NewFromString(value)
	case []byte:
		return decimal.NewFromString(string(value))
	case float64:
		return decimal.NewFromFloat(value), nil
	default:
		return nil, fmt.Errorf("expected string, []byte or float64, got %T", v)
	}
}

func init() {
	Register(decimal.Decimal{}, DecimalHandler{})
}
