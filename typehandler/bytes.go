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

import "fmt"

// BytesHandler is the identity handler for []byte: database/sql already
// accepts and returns []byte directly, so registering it only exists to
// give a BLOB/VARBINARY mapper parameter an explicit, discoverable handler
// instead of relying on driver.Valuer's implicit pass-through.
type BytesHandler struct{}

// ToDriverValue implements TypeHandler.
func (BytesHandler) ToDriverValue(v any) (any, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, fmt.Errorf("expected []byte, got %T", v)
	}
	return b, nil
}

// FromDriverValue implements TypeHandler.
func (BytesHandler) FromDriverValue(v any) (any, error) {
	switch value := v.(type) {
	case []byte:
		cp := make([]byte, len(value))
		copy(cp, value)
		return cp, nil
	case nil:
		return []byte(nil), nil
	default:
		return nil, fmt.Errorf("expected []byte, got %T", v)
	}
}

func init() {
	Register([]byte(nil), BytesHandler{})
}
