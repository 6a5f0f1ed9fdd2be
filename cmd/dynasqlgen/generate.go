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

package main

import (
	"fmt"
	"go/types"
	"sort"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/go/packages"

	"github.com/dynasql/dynasql"
	"github.com/dynasql/dynasql/mapper"
	"github.com/dynasql/dynasql/mapper/command"
)

const (
	mapperPkg  = "github.com/dynasql/dynasql/mapper"
	commandPkg = "github.com/dynasql/dynasql/mapper/command"
	contextPkg = "context"
)

// nameFlushMarker treats any method whose name is listed as a FLUSH
// statement, for mappers that never bother registering a flush statement
// in XML (there's nothing to bind a flush to - it's a bare signal).
type nameFlushMarker map[string]bool

func (n nameFlushMarker) IsFlush(_ *types.Interface, method string) bool { return n[method] }

func newNameFlushMarker(names []string) nameFlushMarker {
	m := make(nameFlushMarker, len(names))
	for _, n := range names {
		if n != "" {
			m[n] = true
		}
	}
	return m
}

// generator loads the source package once and resolves/renders every
// requested interface against it.
type generator struct {
	pkg      *packages.Package
	resolver *command.InterfaceResolver
}

func newGenerator(dir, xmlFile string, flush command.FlushMarker) (*generator, error) {
	cfg, err := dynasql.NewXMLConfiguration(xmlFile)
	if err != nil {
		return nil, fmt.Errorf("load xml mapper %s: %w", xmlFile, err)
	}
	registry := mapper.ConfigurationRegistry{Configuration: cfg}

	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo | packages.NeedSyntax | packages.NeedDeps,
		Dir:  dir,
	}, ".")
	if err != nil {
		return nil, fmt.Errorf("load package %s: %w", dir, err)
	}
	if len(pkgs) == 0 || len(pkgs[0].Errors) > 0 {
		if len(pkgs) > 0 {
			return nil, fmt.Errorf("package %s has errors: %v", dir, pkgs[0].Errors)
		}
		return nil, fmt.Errorf("no package found in %s", dir)
	}

	return &generator{
		pkg:      pkgs[0],
		resolver: &command.InterfaceResolver{Registry: registry, Flush: flush},
	}, nil
}

// Generate renders one proxy struct per requested interface name into a
// single jen.File sharing the source package's name.
func (g *generator) Generate(typeNames []string) (*jen.File, error) {
	f := jen.NewFile(g.pkg.Types.Name())
	f.HeaderComment("Code generated by dynasqlgen. DO NOT EDIT.")

	for _, name := range typeNames {
		if err := g.generateOne(f, name); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return f, nil
}

func (g *generator) generateOne(f *jen.File, typeName string) error {
	obj := g.pkg.Types.Scope().Lookup(typeName)
	if obj == nil {
		return fmt.Errorf("no such type in package %s", g.pkg.PkgPath)
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return fmt.Errorf("%s is not a named type", typeName)
	}
	iface, ok := named.Underlying().(*types.Interface)
	if !ok {
		return fmt.Errorf("%s is not an interface", typeName)
	}

	methods := flattenedMethodSet(iface)
	proxyName := typeName + "Proxy"

	f.Type().Id(proxyName).Struct(jen.Op("*").Qual(mapperPkg, "Dispatcher"))

	f.Func().Id("New" + proxyName).Params(
		jen.Id("d").Op("*").Qual(mapperPkg, "Dispatcher"),
	).Op("*").Id(proxyName).Block(
		jen.Return(jen.Op("&").Id(proxyName).Values(jen.Dict{
			jen.Id("Dispatcher"): jen.Id("d"),
		})),
	)

	for _, m := range methods {
		cmd, err := g.resolver.Resolve(named, m.Name())
		if err != nil {
			return fmt.Errorf("method %s: %w", m.Name(), err)
		}
		if err := g.renderMethod(f, proxyName, m, cmd); err != nil {
			return fmt.Errorf("method %s: %w", m.Name(), err)
		}
	}
	return nil
}

// flattenedMethodSet returns iface's full method set - including methods
// promoted from embedded interfaces - sorted by name for stable output.
// The Resolve call per method still walks the embedding graph itself
// (mapper/command.InterfaceResolver), since the flattened *types.Func here
// carries no trace of which embedded interface it arrived through.
func flattenedMethodSet(iface *types.Interface) []*types.Func {
	complete := iface.Complete()
	methods := make([]*types.Func, complete.NumMethods())
	for i := 0; i < complete.NumMethods(); i++ {
		methods[i] = complete.Method(i)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i].Name() < methods[j].Name() })
	return methods
}

func (g *generator) renderMethod(f *jen.File, proxyName string, fn *types.Func, cmd command.Command) error {
	sig, ok := fn.Type().(*types.Signature)
	if !ok {
		return fmt.Errorf("%s has no signature", fn.Name())
	}

	hasCtx := sig.Params().Len() > 0 && isContext(sig.Params().At(0).Type())

	params := make([]jen.Code, 0, sig.Params().Len())
	callArgs := make([]jen.Code, 0, sig.Params().Len())
	for i := 0; i < sig.Params().Len(); i++ {
		p := sig.Params().At(i)
		if i == 0 && hasCtx {
			params = append(params, jen.Id("ctx").Qual(contextPkg, "Context"))
			continue
		}
		pname := paramName(p, i)
		typeExpr, err := g.typeExpr(p.Type())
		if err != nil {
			return err
		}
		params = append(params, jen.Id(pname).Add(typeExpr))
		callArgs = append(callArgs, jen.Id(pname))
	}

	results := sig.Results()
	if results.Len() == 0 || !isError(results.At(results.Len()-1).Type()) {
		return fmt.Errorf("%s must return error as its last result", fn.Name())
	}

	ctxArg := jen.Nil()
	if hasCtx {
		ctxArg = jen.Id("ctx")
	}
	cmdExpr := jen.Qual(commandPkg, "Command").Values(jen.Dict{
		jen.Id("Name"): jen.Lit(cmd.Name),
		jen.Id("Kind"): jen.Qual(commandPkg, cmd.Kind.String()),
	})
	invokeArgs := append([]jen.Code{ctxArg, cmdExpr, jen.Id("m").Dot(fn.Name())}, callArgs...)

	if results.Len() == 1 {
		// error-only: void statement, ResultHandler-driven, or a DML call
		// whose caller doesn't care about the row count.
		body := jen.List(jen.Id("_"), jen.Id("err")).Op(":=").Id("m").Dot("InvokeCommand").Call(invokeArgs...)
		f.Func().Params(jen.Id("m").Op("*").Id(proxyName)).Id(fn.Name()).Params(params...).Error().Block(
			body,
			jen.Return(jen.Id("err")),
		)
		return nil
	}

	resultExpr, err := g.typeExpr(results.At(0).Type())
	if err != nil {
		return err
	}

	f.Func().Params(jen.Id("m").Op("*").Id(proxyName)).Id(fn.Name()).Params(params...).Params(
		jen.Id("result").Add(resultExpr), jen.Error(),
	).Block(
		jen.List(jen.Id("out"), jen.Id("err")).Op(":=").Id("m").Dot("InvokeCommand").Call(invokeArgs...),
		jen.If(jen.Id("err").Op("!=").Nil()).Block(
			jen.Return(jen.Id("result"), jen.Id("err")),
		),
		jen.If(jen.Id("out").Op("!=").Nil()).Block(
			jen.Id("result").Op("=").Id("out").Assert(resultExpr),
		),
		jen.Return(jen.Id("result"), jen.Nil()),
	)
	return nil
}

func paramName(p *types.Var, i int) string {
	if p.Name() != "" {
		return p.Name()
	}
	return fmt.Sprintf("arg%d", i)
}

func isContext(t types.Type) bool {
	named, ok := t.(*types.Named)
	return ok && named.Obj().Pkg() != nil && named.Obj().Pkg().Path() == "context" && named.Obj().Name() == "Context"
}

func isError(t types.Type) bool {
	named, ok := t.(*types.Named)
	return ok && named.Obj().Pkg() == nil && named.Obj().Name() == "error"
}

// typeExpr renders a go/types.Type as jen code, qualifying named types from
// other packages by their import path so jennifer can auto-track imports.
// Only the shapes a mapper method signature realistically uses are handled;
// anything else is a generation-time error rather than silently-wrong code.
func (g *generator) typeExpr(t types.Type) (jen.Code, error) {
	switch t := t.(type) {
	case *types.Basic:
		return jen.Id(t.Name()), nil
	case *types.Named:
		obj := t.Obj()
		if obj.Pkg() == nil {
			return jen.Id(obj.Name()), nil
		}
		if obj.Pkg().Path() == g.pkg.PkgPath {
			return jen.Id(obj.Name()), nil
		}
		return jen.Qual(obj.Pkg().Path(), obj.Name()), nil
	case *types.Pointer:
		elem, err := g.typeExpr(t.Elem())
		if err != nil {
			return nil, err
		}
		return jen.Op("*").Add(elem), nil
	case *types.Slice:
		elem, err := g.typeExpr(t.Elem())
		if err != nil {
			return nil, err
		}
		return jen.Index().Add(elem), nil
	case *types.Array:
		elem, err := g.typeExpr(t.Elem())
		if err != nil {
			return nil, err
		}
		return jen.Index(jen.Lit(int(t.Len()))).Add(elem), nil
	case *types.Map:
		key, err := g.typeExpr(t.Key())
		if err != nil {
			return nil, err
		}
		val, err := g.typeExpr(t.Elem())
		if err != nil {
			return nil, err
		}
		return jen.Map(key).Add(val), nil
	case *types.Interface:
		if t.Empty() {
			return jen.Any(), nil
		}
		return nil, fmt.Errorf("unsupported non-empty interface type %s", t.String())
	default:
		return nil, fmt.Errorf("unsupported parameter/result type %s", t.String())
	}
}
