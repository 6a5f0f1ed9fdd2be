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

package driver

import (
	"errors"
	"testing"
)

func TestGetUnknown(t *testing.T) {
	if _, err := Get("does-not-exist"); !errors.Is(err, ErrUnknownDriver) {
		t.Fatalf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestRegisteredDialects(t *testing.T) {
	tests := []struct {
		name        string
		placeholder string
	}{
		{"mysql", "?"},
		{"sqlite3", "?"},
		{"postgres", "$1"},
		{"pgx", "$1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Get(tt.name)
			if err != nil {
				t.Fatalf("Get(%q): %v", tt.name, err)
			}
			if d.Name() != tt.name {
				t.Fatalf("Name() = %q, want %q", d.Name(), tt.name)
			}
			if got := d.Translator().Translate("id"); got != tt.placeholder {
				t.Fatalf("Translate() = %q, want %q", got, tt.placeholder)
			}
		})
	}
}

func TestNumberedTranslatorIncrements(t *testing.T) {
	tr := &numberedTranslator{}
	if got := tr.Translate("id"); got != "$1" {
		t.Fatalf("first Translate() = %q, want $1", got)
	}
	if got := tr.Translate("id"); got != "$2" {
		t.Fatalf("second Translate() = %q, want $2 (repeated name must still advance)", got)
	}
}
