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

package dynasql

import (
	"context"
	"database/sql"

	"github.com/dynasql/dynasql/session/tx"
)

// Manager is an interface for managing database operations.
// It provides a high-level abstraction for executing SQL operations
// through the Object method which returns a SQLRowsExecutor.
type Manager interface {
	Object(v any) SQLRowsExecutor
}

// NewGenericManager returns a new GenericManager.
func NewGenericManager[T any](manager Manager) *GenericManager[T] {
	return &GenericManager[T]{Manager: manager}
}

// GenericManager is a generic manager for a specific type T
// that provides type-safe database operations.
type GenericManager[T any] struct {
	Manager
}

// Object implements the GenericManager interface.
func (s *GenericManager[T]) Object(v any) Executor[T] {
	exe := &GenericExecutor[T]{SQLRowsExecutor: s.Manager.Object(v)}
	return exe
}

// TxManager is a transactional manager that extends the base Manager interface
// with transaction control capabilities. It provides methods for beginning,
// committing, and rolling back database transactions.
type TxManager interface {
	Manager

	// Begin begins a new database transaction.
	// Returns an error if transaction is already started or if there's a database error.
	Begin() error

	// Commit commits the current transaction.
	// Returns an error if there's no active transaction or if commit fails.
	Commit() error

	// Rollback aborts the current transaction.
	// Returns an error if there's no active transaction or if rollback fails.
	Rollback() error
}

// basicTxManager holds the transaction-scoped state shared by both the
// manually-driven BasicTxManager (Engine.Tx/ContextTx) and the handler-scoped
// manager Transaction installs in context for the duration of one callback.
// It is unexported: a caller only ever sees it through *BasicTxManager, or
// type-asserts it back out of a transaction's context when it needs direct
// access to the underlying *sql.Tx.
type basicTxManager struct {
	// engine is the database engine instance that handles database operations
	engine *Engine

	ctx context.Context

	// Transaction holds the current transaction session.
	// It's nil if no transaction is active.
	Transaction *sql.Tx
}

// Object implements the Manager interface
func (t *basicTxManager) Object(v any) SQLRowsExecutor {
	if t.Transaction == nil {
		return inValidExecutor(tx.ErrTransactionNotBegun)
	}
	statement, err := t.engine.GetConfiguration().GetStatement(v)
	if err != nil {
		return inValidExecutor(err)
	}
	drv := t.engine.Driver()
	statementHandler := NewBatchStatementHandler(drv, t.Transaction, t.engine.GetConfiguration(), t.engine.middlewares...)
	return NewSQLRowsExecutor(statement, statementHandler, drv)
}

// Commit commits the transaction
func (t *basicTxManager) Commit() error {
	// If the transaction is not begun, return an error directly.
	if t.Transaction == nil {
		return tx.ErrTransactionNotBegun
	}
	return t.Transaction.Commit()
}

// Rollback rollbacks the transaction
func (t *basicTxManager) Rollback() error {
	// If the transaction is not begun, return an error directly.
	if t.Transaction == nil {
		return tx.ErrTransactionNotBegun
	}
	return t.Transaction.Rollback()
}

func (t *basicTxManager) Raw(query string) Runner {
	if t.Transaction == nil {
		return NewErrorRunner(tx.ErrTransactionNotBegun)
	}
	return NewRunner(query, t.engine, t.Transaction)
}

// BasicTxManager implements the TxManager interface providing basic
// transaction management functionality. It adds Begin on top of
// *basicTxManager, which alone has no way to start a transaction since
// doing so needs the *sql.TxOptions a caller configured via Engine.ContextTx.
type BasicTxManager struct {
	*basicTxManager

	// txOptions configures the transaction behavior
	// If nil, default database transaction options are used
	txOptions *sql.TxOptions
}

// Begin begins the transaction
func (t *BasicTxManager) Begin() (err error) {
	// If the transaction is already begun, return an error directly.
	if t.Transaction != nil {
		return tx.ErrTransactionAlreadyBegun
	}
	t.Transaction, err = t.engine.DB().BeginTx(t.ctx, t.txOptions)
	return err
}

type managerKey struct{}

// managerFromContext returns the Manager from the context.
func managerFromContext(ctx context.Context) (Manager, bool) {
	manager, ok := ctx.Value(managerKey{}).(Manager)
	return manager, ok
}

// ManagerFromContext returns the Manager stored in ctx by ContextWithManager.
// It returns ErrNoManagerFoundInContext if ctx carries none.
func ManagerFromContext(ctx context.Context) (Manager, error) {
	manager, ok := managerFromContext(ctx)
	if !ok {
		return nil, ErrNoManagerFoundInContext
	}
	return manager, nil
}

// ContextWithManager returns a new context with the given Manager.
func ContextWithManager(ctx context.Context, manager Manager) context.Context {
	return context.WithValue(ctx, managerKey{}, manager)
}

// IsTxManager returns true if the manager is a TxManager.
func IsTxManager(manager Manager) bool {
	_, ok := manager.(TxManager)
	return ok
}
