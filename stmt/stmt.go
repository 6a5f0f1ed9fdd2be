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

// Package stmt is the standalone, inspectable form of a compiled SQL
// statement source: CompiledStatement wraps a node.Node and a dialect, and
// Bind evaluates it once into a BoundSql that keeps the correspondence
// between each driver argument and the template expression that produced
// it, instead of collapsing that correspondence into a bare []any the
// moment the tree is walked.
//
// This is deliberately a different contract from the root package's
// Statement.Build, which returns []any to match the teacher's executor
// chain; stmt.CompiledStatement is a richer representation that the chain
// does not use, kept separately so a caller who only wants to inspect or
// test a bound statement never has to pull in the executor.
package stmt

import (
	"fmt"

	"github.com/dynasql/dynasql/driver"
	"github.com/dynasql/dynasql/eval"
	"github.com/dynasql/dynasql/node"
)

// BoundSql is a SQL-node tree evaluated once against a parameter: the
// final query text, plus its driver arguments in placeholder order, each
// still labeled with the template expression it came from.
type BoundSql struct {
	Query string
	Args  []eval.ParameterRef
}

// Values returns the plain positional driver arguments, discarding the
// Name bookkeeping - what a database/sql call actually takes.
func (b BoundSql) Values() []any {
	if len(b.Args) == 0 {
		return nil
	}
	values := make([]any, len(b.Args))
	for i, arg := range b.Args {
		values[i] = arg.Value
	}
	return values
}

// ErrEmptyQuery is returned by Bind when the node tree produces no SQL
// text at all for the given parameter (e.g. every <if> in the statement
// evaluated false).
var ErrEmptyQuery = fmt.Errorf("stmt: bind produced an empty query")

// CompiledStatement is a SQL-node tree paired with the dialect it is bound
// against. It is safe for concurrent use: Bind requests a fresh
// driver.Translator per call, so concurrent binds never share placeholder
// counter state.
type CompiledStatement struct {
	source node.Node
	drv    driver.Driver
}

// New returns a CompiledStatement evaluating source against drv's dialect.
func New(source node.Node, drv driver.Driver) *CompiledStatement {
	return &CompiledStatement{source: source, drv: drv}
}

// Bind evaluates the statement's node tree against parameter, producing a
// BoundSql. It is the generalization of the teacher's
// xmlSQLStatement.Build that keeps named ParameterRef entries instead of
// flattening to []any, per SPEC_FULL's testable placeholder/argument
// correspondence requirement.
func (c *CompiledStatement) Bind(parameter eval.Parameter) (BoundSql, error) {
	translator := c.drv.Translator()
	query, args, err := c.source.Accept(translator, parameter)
	if err != nil {
		return BoundSql{}, err
	}
	if len(query) == 0 {
		return BoundSql{}, ErrEmptyQuery
	}
	return BoundSql{Query: query, Args: args}, nil
}
