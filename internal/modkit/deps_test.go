package modkit

import (
	"context"
	"testing"

	"autofax/internal/platform/config"
	"autofax/internal/platform/store"
)

type fakePG struct{}

func (fakePG) Exec(context.Context, string, ...any) (int64, error)       { return 0, nil }
func (fakePG) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (fakePG) QueryRow(context.Context, string, ...any) store.Row        { return nil }
func (fakePG) Ping(context.Context) error                                { return nil }

func TestDeps_ZeroValue(t *testing.T) {
	t.Parallel()
	var d Deps
	if d.HasPG() {
		t.Fatal("zero Deps should not report pg")
	}
	if len(d.Pingers()) != 0 {
		t.Fatalf("pingers %v", d.Pingers())
	}
}

func TestDeps_WithPG(t *testing.T) {
	t.Parallel()
	d := Deps{Cfg: config.New(), PG: fakePG{}}
	if !d.HasPG() {
		t.Fatal("expected pg")
	}
	if _, ok := d.Pingers()["pg"]; !ok {
		t.Fatalf("pg pinger missing: %v", d.Pingers())
	}
}
