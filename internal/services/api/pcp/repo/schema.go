package repo

import (
	"context"
	"fmt"

	"autofax/internal/platform/store"
)

// allLocations is the stored location that serves every site
const allLocations = "all"

var schema = []string{
	`create table if not exists providers (
	id            bigserial primary key,
	provider_name text    not null,
	npi           text    not null,
	insurance     text    not null,
	location      text    not null,
	priority      integer not null default 100
)`,
	`create index if not exists providers_insurance_location_idx on providers (insurance, lower(location), priority)`,
	`create table if not exists pcp_submissions (
	id           bigserial   primary key,
	insurance    text        not null,
	location     text        not null,
	pdf_url      text        not null,
	submitted_at timestamptz not null default now()
)`,
}

// Migrate creates the providers and submissions tables when missing
func Migrate(ctx context.Context, q store.RowQuerier) error {
	for i, stmt := range schema {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("pcp schema step %d: %w", i, err)
		}
	}
	return nil
}
