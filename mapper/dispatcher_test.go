package mapper

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dynasql/dynasql/internal/sqlmock"
	"github.com/dynasql/dynasql/mapper/command"
)

type registryStub struct {
	kinds map[string]command.Kind
}

func (r registryStub) Kind(id string) (command.Kind, bool) {
	k, ok := r.kinds[id]
	return k, ok
}

type dispatcherUserMapper struct {
	*Dispatcher
}

func (m *dispatcherUserMapper) FindByID(ctx context.Context, id int) (*testRow, error) {
	out, err := m.Invoke(ctx, m.FindByID, id)
	if err != nil || out == nil {
		return nil, err
	}
	return out.(*testRow), nil
}

func (m *dispatcherUserMapper) Delete(ctx context.Context, id int) (int64, error) {
	out, err := m.Invoke(ctx, m.Delete, id)
	if err != nil {
		return 0, err
	}
	return out.(int64), nil
}

// methodID mirrors command.MethodValueResolver's own runtime-name
// normalization (pcNameReplacer in mapper/command) so the registry stub below
// keys on exactly what Resolve would actually look up.
var methodIDReplacer = strings.NewReplacer("/", ".", `\`, ".", "*", "", "(", "", ")", "")

func methodID(name string) string {
	return methodIDReplacer.Replace("github.com/dynasql/dynasql/mapper.(*dispatcherUserMapper)." + name)
}

func TestDispatcher_Invoke_selectOne(t *testing.T) {
	rows := &sqlmock.MockRows{
		ColumnsLine: []string{"id", "name"},
		Data:        [][]any{{1, "alice"}},
	}
	backend := &fakeBackend{exec: &fakeSQLRowsExecutor{rows: rows}}
	registry := registryStub{kinds: map[string]command.Kind{
		methodID("FindByID"): command.SELECT,
	}}

	d := NewDispatcher(backend, registry)
	m := &dispatcherUserMapper{Dispatcher: d}

	got, err := m.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Name != "alice" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if backend.lastID != methodID("FindByID") {
		t.Fatalf("expected resolved statement id forwarded, got %v", backend.lastID)
	}
}

func TestDispatcher_Invoke_planCached(t *testing.T) {
	rows := &sqlmock.MockRows{
		ColumnsLine: []string{"id", "name"},
		Data:        [][]any{{1, "alice"}},
	}
	backend := &fakeBackend{exec: &fakeSQLRowsExecutor{rows: rows}}
	registry := registryStub{kinds: map[string]command.Kind{
		methodID("FindByID"): command.SELECT,
	}}

	d := NewDispatcher(backend, registry)
	m := &dispatcherUserMapper{Dispatcher: d}

	if _, err := m.FindByID(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	delete(registry.kinds, methodID("FindByID"))

	rows.Data = [][]any{{2, "bob"}}
	if _, err := m.FindByID(context.Background(), 1); err != nil {
		t.Fatalf("expected cached plan to bypass registry miss: %v", err)
	}
}

func TestDispatcher_Invoke_unknownStatement(t *testing.T) {
	backend := &fakeBackend{}
	registry := registryStub{kinds: map[string]command.Kind{}}

	d := NewDispatcher(backend, registry)
	m := &dispatcherUserMapper{Dispatcher: d}

	if _, err := m.Delete(context.Background(), 1); !errors.Is(err, command.ErrMissingStatement) {
		t.Fatalf("expected ErrMissingStatement, got %v", err)
	}
}
