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

// Command dynasqlgen generates a forwarding proxy for one or more declared
// mapper interfaces, so a caller never has to hand-write the
// mapper.Dispatcher.Invoke boilerplate mapper's own package doc shows.
//
// Unlike Dispatcher.Invoke's runtime program-counter lookup, dynasqlgen
// resolves each method's statement with go/types against the interface's
// full embedding graph (mapper/command.InterfaceResolver), so a statement
// declared on an embedded super-interface works even though the generated
// struct's own method has no trace of which interface originally declared
// it once compiled.
//
// Usage:
//
//	dynasqlgen -type UserMapper,OrderMapper -xml mapper.xml -output mapper_gen.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("dynasqlgen: ")

	var (
		typeNames = flag.String("type", "", "comma-separated list of mapper interface names (required)")
		xmlFile   = flag.String("xml", "", "XML mapper file used to resolve statement ids and kinds (required)")
		dir       = flag.String("source", ".", "package directory declaring the interfaces")
		output    = flag.String("output", "", "output file name (default: dynasqlgen_gen.go in -source)")
		flushName = flag.String("flush", "Flush", "comma-separated method names treated as FLUSH regardless of the registry")
	)
	flag.Parse()

	if *typeNames == "" {
		log.Fatal("-type is required")
	}
	if *xmlFile == "" {
		log.Fatal("-xml is required")
	}

	types := strings.Split(*typeNames, ",")
	for i := range types {
		types[i] = strings.TrimSpace(types[i])
	}

	out := *output
	if out == "" {
		out = fmt.Sprintf("%s/dynasqlgen_gen.go", strings.TrimRight(*dir, "/"))
	}

	g, err := newGenerator(*dir, *xmlFile, newNameFlushMarker(strings.Split(*flushName, ",")))
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	f, err := g.Generate(types)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	if err := os.MkdirAll(dirOf(out), 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}
	file, err := os.Create(out)
	if err != nil {
		log.Fatalf("create %s: %v", out, err)
	}
	defer func() { _ = file.Close() }()

	if err := f.Render(file); err != nil {
		log.Fatalf("render %s: %v", out, err)
	}
}

func dirOf(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}
	return "."
}
