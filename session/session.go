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

// Package session defines the minimal database/sql surface the rest of
// the module depends on, so that a *sql.DB and a *sql.Tx (and any mock
// sharing their three methods) are interchangeable wherever a statement
// is executed.
package session

import (
	"context"
	"database/sql"
	"errors"
)

// Session is the database/sql surface a statement handler needs to run a
// query. *sql.DB and *sql.Tx both satisfy it without any adapter, so a
// statement built against a plain connection and one built inside a
// transaction are executed identically.
type Session interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

var (
	_ Session = (*sql.DB)(nil)
	_ Session = (*sql.Tx)(nil)
)

// ErrNoSession is returned by FromContext when ctx carries no Session.
var ErrNoSession = errors.New("session: no session in context")

type sessionKey struct{}

// WithContext returns a copy of ctx carrying sess, retrievable with FromContext.
// Storing a transaction this way is how a caller makes nested mapper calls
// participate in the same transaction without threading it explicitly.
func WithContext(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// FromContext returns the Session previously attached with WithContext.
// It fails with ErrNoSession if ctx carries none, or carries a nil one.
func FromContext(ctx context.Context) (Session, error) {
	sess, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || sess == nil {
		return nil, ErrNoSession
	}
	return sess, nil
}
