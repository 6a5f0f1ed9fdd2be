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
	"time"
)

// TimeHandler stores time.Time as a layout-formatted string, for dialects
// (or columns) that don't accept time.Time as a driver argument directly.
type TimeHandler struct {
	Layout string
}

// ToDriverValue implements TypeHandler.
func (h TimeHandler) ToDriverValue(v any) (any, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, fmt.Errorf("expected time.Time, got %T", v)
	}
	return t.Format(h.layout()), nil
}

// FromDriverValue implements TypeHandler.
func (h TimeHandler) FromDriverValue(v any) (any, error) {
	switch value := v.(type) {
	case time.Time:
		return value, nil
	case string:
		return time.Parse(h.layout(), value)
	case []byte:
		return time.Parse(h.layout(), string(value))
	default:
		return nil, fmt.Errorf("expected string, []byte or time.Time, got %T", v)
	}
}

func (h TimeHandler) layout() string {
	if h.Layout == "" {
		return time.RFC3339
	}
	return h.Layout
}

func init() {
	Register(time.Time{}, TimeHandler{})
}
