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

// Package ctxreducer composes the handful of values (the call parameter,
// the session to run against) a mapper-method invocation needs to attach
// to its context before it reaches the statement handler chain.
package ctxreducer

import (
	"context"

	"github.com/dynasql/dynasql/eval"
	"github.com/dynasql/dynasql/session"
)

// ContextReducer attaches one value to a context, returning the derived
// context. Implementations must not mutate ctx.
type ContextReducer interface {
	Reduce(ctx context.Context) context.Context
}

// ContextReducerFunc adapts a plain function to ContextReducer.
type ContextReducerFunc func(ctx context.Context) context.Context

// Reduce implements ContextReducer.
func (f ContextReducerFunc) Reduce(ctx context.Context) context.Context {
	return f(ctx)
}

// ContextReducerGroup applies each reducer in order, threading the context
// produced by one into the next.
type ContextReducerGroup []ContextReducer

// Reduce implements ContextReducer.
func (g ContextReducerGroup) Reduce(ctx context.Context) context.Context {
	for _, r := range g {
		ctx = r.Reduce(ctx)
	}
	return ctx
}

// G is a shorthand alias for ContextReducerGroup; its zero value (nil) is a
// no-op reducer.
type G = ContextReducerGroup

// NewParamContextReducer returns a ContextReducer that attaches param,
// retrievable with eval.ParamFromContext.
func NewParamContextReducer(param eval.Param) ContextReducer {
	return ContextReducerFunc(func(ctx context.Context) context.Context {
		return eval.CtxWithParam(ctx, param)
	})
}

// NewSessionContextReducer returns a ContextReducer that attaches sess,
// retrievable with session.FromContext.
func NewSessionContextReducer(sess session.Session) ContextReducer {
	return ContextReducerFunc(func(ctx context.Context) context.Context {
		return session.WithContext(ctx, sess)
	})
}
