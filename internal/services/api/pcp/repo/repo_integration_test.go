//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"testing"
	"time"

	perr "autofax/internal/platform/errors"
	"autofax/internal/platform/logger"
	"autofax/internal/platform/store"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

func TestBestProvider_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	st, err := store.Open(ctx, store.Config{PG: store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2}},
		store.WithLogger(*logger.Get()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer func() { _ = st.Close() }()

	if err := Migrate(ctx, st.PG); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// second run is a no-op
	if err := Migrate(ctx, st.PG); err != nil {
		t.Fatalf("migrate again: %v", err)
	}

	seed := []struct {
		name, npi, ins, loc string
		prio                int
	}{
		{"Site Low Prio", "111", "Healthfirst Medicaid", "Long Island City", 20},
		{"Site High Prio", "222", "Healthfirst Medicare", "long island city", 10},
		{"Anywhere", "333", "Healthfirst Medicaid", "ALL", 1},
		{"Aetna Anywhere", "444", "Aetna", "all", 5},
	}
	for _, s := range seed {
		if _, err := st.PG.Exec(ctx,
			`insert into providers (provider_name, npi, insurance, location, priority) values ($1,$2,$3,$4,$5)`,
			s.name, s.npi, s.ins, s.loc, s.prio); err != nil {
			t.Fatalf("seed %s: %v", s.name, err)
		}
	}

	r := NewPG(st.PG)
	hf := []string{"Healthfirst Medicaid", "Healthfirst Medicare", "Healthfirst Other LOB"}

	got, err := r.BestProvider(ctx, hf, "Long Island City")
	if err != nil {
		t.Fatalf("site lookup: %v", err)
	}
	if got.NPI != "222" || got.MatchType != 1 {
		t.Fatalf("site match should beat ALL and lower priority should win, got %+v", got)
	}

	got, err = r.BestProvider(ctx, hf, "Astoria")
	if err != nil {
		t.Fatalf("fallback lookup: %v", err)
	}
	if got.NPI != "333" || got.MatchType != 2 {
		t.Fatalf("want ALL fallback, got %+v", got)
	}

	got, err = r.BestProvider(ctx, []string{"Aetna"}, "Bartow")
	if err != nil || got.ProviderName != "Aetna Anywhere" {
		t.Fatalf("lowercase all should match, got %+v err=%v", got, err)
	}

	_, err = r.BestProvider(ctx, []string{"Humana"}, "Astoria")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want NotFound, got %v", err)
	}

	first, err := r.SaveSubmission(ctx, RowSubmission{Insurance: "Aetna", Location: "Astoria", PDFURL: "https://files.test/a.pdf"})
	if err != nil {
		t.Fatalf("save submission: %v", err)
	}
	second, err := r.SaveSubmission(ctx, RowSubmission{Insurance: "Aetna", Location: "Astoria", PDFURL: "https://files.test/b.pdf"})
	if err != nil || second <= first {
		t.Fatalf("ids should increase, first=%d second=%d err=%v", first, second, err)
	}
}
