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

package mapper

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/dynasql/dynasql/mapper/command"
	"github.com/dynasql/dynasql/mapper/signature"
)

// plan is the cached outcome of resolving one bound method value: which
// statement it dispatches to, and how its arguments/return value are
// shaped. Computed once per distinct method, reused for every call.
type plan struct {
	cmd command.Command
	sig *signature.Signature
}

// Dispatcher is the runtime entry point for mapper methods. It is shared by
// two distinct callers:
//
//   - Invoke is the zero-codegen path: it resolves a bound method value's
//     statement id itself, through command.MethodValueResolver's runtime
//     program counter lookup (see mapper/command's package doc). This
//     cannot see a method promoted from an embedded super-interface, since
//     a method value's runtime name only ever names its own declaring type.
//   - InvokeCommand is cmd/dynasqlgen's path: the generator already walked
//     the declared interface's embedding graph with go/types at generation
//     time (command.InterfaceResolver) and bakes the resolved
//     command.Command into the emitted call directly, so no resolution
//     happens here at all - only signature classification, which reflect
//     can always do regardless of which interface declared the method.
type Dispatcher struct {
	executor *Executor
	resolver *command.MethodValueResolver

	plans      sync.Map // uintptr -> *plan, Invoke's cache
	signatures sync.Map // uintptr -> *signature.Signature, InvokeCommand's cache
	single     singleflight.Group
}

// NewDispatcher builds a Dispatcher that executes against backend,
// resolving statement kinds through registry.
func NewDispatcher(backend Backend, registry command.Registry) *Dispatcher {
	return &Dispatcher{
		executor: &Executor{Backend: backend},
		resolver: &command.MethodValueResolver{Registry: registry},
	}
}

// Invoke resolves methodValue (a bound method value, e.g. a forwarding
// struct's own receiver method taken as a value: m.FindByID) to its plan
// and executes it against args, the method's full original argument list
// with the receiver excluded.
//
// singleflight collapses concurrent first-lookups for the same method onto
// a single signature.Analyze/command.Resolve pair: a sync.Map
// compute-if-absent alone would let N concurrent first callers all race the
// (cheap but non-trivial) analysis before the first result is stored.
func (d *Dispatcher) Invoke(ctx context.Context, methodValue any, args ...any) (any, error) {
	rv := reflect.ValueOf(methodValue)
	if rv.Kind() != reflect.Func {
		return nil, fmt.Errorf("mapper: %T is not a method value", methodValue)
	}
	pc := rv.Pointer()

	p, err := d.planFor(pc, methodValue)
	if err != nil {
		return nil, err
	}
	return d.executor.Execute(ctx, p.cmd, p.sig, fullArgs(ctx, args))
}

// InvokeCommand executes methodValue against the already-resolved cmd,
// skipping command.MethodValueResolver (and the statement registry it
// queries) entirely. cmd/dynasqlgen calls this with the command.Command it
// resolved via command.InterfaceResolver at generation time, which is the
// only way to support a statement declared on an embedded super-interface
// (see the type doc above).
func (d *Dispatcher) InvokeCommand(ctx context.Context, cmd command.Command, methodValue any, args ...any) (any, error) {
	rv := reflect.ValueOf(methodValue)
	if rv.Kind() != reflect.Func {
		return nil, fmt.Errorf("mapper: %T is not a method value", methodValue)
	}
	pc := rv.Pointer()

	sig, err := d.signatureFor(pc, methodValue)
	if err != nil {
		return nil, err
	}
	return d.executor.Execute(ctx, cmd, sig, fullArgs(ctx, args))
}

// fullArgs reconstructs the method's original argument list (receiver
// excluded) from the ctx a caller passed separately to Invoke/InvokeCommand
// and the remaining args, matching the bound method value's own parameter
// order - see mapper.go's package doc for the calling convention this
// assumes (ctx first, when the method declares one).
func fullArgs(ctx context.Context, args []any) []any {
	full := make([]any, 0, len(args)+1)
	if ctx != nil {
		full = append(full, ctx)
	}
	return append(full, args...)
}

func (d *Dispatcher) planFor(pc uintptr, methodValue any) (*plan, error) {
	if cached, ok := d.plans.Load(pc); ok {
		return cached.(*plan), nil
	}

	v, err, _ := d.single.Do(fmt.Sprintf("plan:%d", pc), func() (any, error) {
		if cached, ok := d.plans.Load(pc); ok {
			return cached.(*plan), nil
		}

		cmd, err := d.resolver.Resolve(methodValue)
		if err != nil {
			return nil, err
		}

		sig, err := signature.Analyze(fmt.Sprintf("method@%d", pc), reflect.TypeOf(methodValue), signature.Options{
			RowBoundsType:     rowBoundsType,
			ResultHandlerType: resultHandlerType,
		})
		if err != nil {
			return nil, err
		}

		p := &plan{cmd: cmd, sig: sig}
		d.plans.Store(pc, p)
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*plan), nil
}

func (d *Dispatcher) signatureFor(pc uintptr, methodValue any) (*signature.Signature, error) {
	if cached, ok := d.signatures.Load(pc); ok {
		return cached.(*signature.Signature), nil
	}

	v, err, _ := d.single.Do(fmt.Sprintf("sig:%d", pc), func() (any, error) {
		if cached, ok := d.signatures.Load(pc); ok {
			return cached.(*signature.Signature), nil
		}

		sig, err := signature.Analyze(fmt.Sprintf("method@%d", pc), reflect.TypeOf(methodValue), signature.Options{
			RowBoundsType:     rowBoundsType,
			ResultHandlerType: resultHandlerType,
		})
		if err != nil {
			return nil, err
		}

		d.signatures.Store(pc, sig)
		return sig, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*signature.Signature), nil
}
