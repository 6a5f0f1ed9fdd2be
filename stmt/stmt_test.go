package stmt_test

import (
	"errors"
	"testing"

	"github.com/dynasql/dynasql/driver"
	"github.com/dynasql/dynasql/eval"
	"github.com/dynasql/dynasql/node"
	"github.com/dynasql/dynasql/stmt"
)

type fixedDriver struct{}

func (fixedDriver) Name() string { return "fixed" }

func (fixedDriver) Translator() driver.Translator {
	return driver.TranslateFunc(func(_ string) string { return "?" })
}

func TestCompiledStatement_Bind_stmt_test(t *testing.T) {
	compiled := stmt.New(node.NewTextNode("SELECT * FROM users WHERE id = #{id}"), fixedDriver{})

	bound, err := compiled.Bind(eval.H{"id": 7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bound.Query != "SELECT * FROM users WHERE id = ?" {
		t.Fatalf("unexpected query: %q", bound.Query)
	}

	values := bound.Values()
	if len(values) != 1 || values[0] != 7 {
		t.Fatalf("unexpected values: %v", values)
	}

	if len(bound.Args) != 1 || bound.Args[0].Name != "id" {
		t.Fatalf("unexpected args: %+v", bound.Args)
	}
}

func TestCompiledStatement_Bind_EmptyQuery_stmt_test(t *testing.T) {
	compiled := stmt.New(node.NewTextNode(""), fixedDriver{})

	_, err := compiled.Bind(eval.H{})
	if !errors.Is(err, stmt.ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestCompiledStatement_Bind_ForeachUniqueArgNames_stmt_test(t *testing.T) {
	compiled := stmt.New(
		&node.ForeachNode{Collection: "ids", Item: "id", Open: "(", Close: ")", Separator: ",",
			Nodes: []node.Node{node.NewTextNode("#{id}")}},
		fixedDriver{},
	)

	bound, err := compiled.Bind(eval.H{"ids": []int{1, 2, 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bound.Query != "(?,?,?)" {
		t.Fatalf("unexpected query: %q", bound.Query)
	}

	if len(bound.Args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(bound.Args))
	}

	seen := map[string]bool{}
	for _, arg := range bound.Args {
		if seen[arg.Name] {
			t.Fatalf("duplicate argument name %q", arg.Name)
		}
		seen[arg.Name] = true
	}
}
