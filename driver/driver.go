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

// Package driver is the dialect abstraction boundary the core is allowed to
// cross: the placeholder convention only. Everything else about a dialect
// (feature flags, identifier quoting, pagination syntax) lives outside this
// package and outside the core.
package driver

import (
	"errors"
	"fmt"
	"sync"
)

// Translator lowers a parameter's source expression into the driver
// placeholder token that belongs at its position in the final SQL text.
// Translate is called once per emitted #{...} token, in the order those
// tokens are appended to the builder, so a stateful Translator (one that
// counts, for a numbered-placeholder dialect) sees calls in final
// placeholder order.
type Translator interface {
	// Translate returns the placeholder text for the parameter named by
	// expr (the raw source expression inside #{...}, e.g. "user.id").
	Translate(expr string) string
}

// Driver names a registered dialect and builds a fresh Translator for it.
// A Translator MUST be requested anew for every statement build: numbered
// placeholder dialects (PostgreSQL) keep a per-build counter, and a shared
// Translator would leak counts across unrelated statements.
type Driver interface {
	// Name returns the registered dialect name ("mysql", "postgres", "sqlite3", ...).
	Name() string

	// Translator returns a new Translator bound to one statement build.
	Translator() Translator
}

// TranslateFunc adapts a plain function to the Translator interface, the
// way http.HandlerFunc adapts a function to http.Handler. Mainly useful in
// tests that need a Translator without a registered dialect.
type TranslateFunc func(expr string) string

func (f TranslateFunc) Translate(expr string) string { return f(expr) }

// questionMarkTranslator is the anonymous-placeholder convention shared by
// MySQL and SQLite: every parameter lowers to a literal "?", regardless of
// how many times the same name is referenced.
type questionMarkTranslator struct{}

func (questionMarkTranslator) Translate(string) string { return "?" }

// numberedTranslator is the PostgreSQL convention: placeholders are
// positional ($1, $2, ...) and increase monotonically across the whole
// statement build, even when the same named expression is referenced twice
// (two references to #{id} still produce two distinct driver arguments).
type numberedTranslator struct {
	n int
}

func (t *numberedTranslator) Translate(string) string {
	t.n++
	return fmt.Sprintf("$%d", t.n)
}

// ErrUnknownDriver is returned by Get when no driver was registered under
// the given name.
var ErrUnknownDriver = errors.New("driver: unknown driver")

var (
	mu       sync.RWMutex
	registry = map[string]Driver{}
)

// Register adds a Driver under name, overwriting any previous registration.
// Dialect packages call this from an init func, mirroring database/sql.Register.
func Register(name string, d Driver) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = d
}

// Get returns the Driver registered under name.
func Get(name string) (Driver, error) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, name)
	}
	return d, nil
}
