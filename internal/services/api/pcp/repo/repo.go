// Package repo provides postgres access for the provider directory
package repo

import (
	"context"

	"autofax/internal/platform/store"
)

// Repo defines the repository contract for providers
type Repo interface {
	BestProvider(ctx context.Context, insurances []string, location string) (RowProvider, error)
	SaveSubmission(ctx context.Context, s RowSubmission) (int64, error)
}

// RowSubmission is one filled pcp change form
type RowSubmission struct {
	Insurance string
	Location  string
	PDFURL    string
}

// RowProvider is a provider row picked for a plan and site
type RowProvider struct {
	ProviderName string
	NPI          string
	MatchType    int
	Priority     int
}

// PG implements Repo on the store seam
type PG struct{ q store.RowQuerier }

// NewPG binds the repo to a querier, it panics on nil
func NewPG(q store.RowQuerier) *PG {
	if q == nil {
		panic("pcp repo requires a non nil RowQuerier")
	}
	return &PG{q: q}
}

// site specific rows win over rows for every location, then lower priority wins
const bestProviderSQL = `
select provider_name, npi, match_type, priority from (
	select provider_name, npi, priority, 1 as match_type
	from providers
	where insurance = any($1) and lower(location) = lower($2)
	union
	select provider_name, npi, priority, 2 as match_type
	from providers
	where insurance = any($1) and lower(location) = lower($3)
) p
order by match_type asc, priority asc
limit 1
`

// BestProvider returns the winning row, no match is a NotFound error
func (r *PG) BestProvider(ctx context.Context, insurances []string, location string) (RowProvider, error) {
	return store.One(ctx, r.q, scanProvider, bestProviderSQL, insurances, location, allLocations)
}

func scanProvider(row store.Row) (RowProvider, error) {
	var p RowProvider
	if err := row.Scan(&p.ProviderName, &p.NPI, &p.MatchType, &p.Priority); err != nil {
		return RowProvider{}, err
	}
	return p, nil
}

const insertSubmissionSQL = `
insert into pcp_submissions (insurance, location, pdf_url)
values ($1, $2, $3)
returning id
`

// SaveSubmission stores the submission and returns its id
func (r *PG) SaveSubmission(ctx context.Context, s RowSubmission) (int64, error) {
	return store.One(ctx, r.q, func(row store.Row) (int64, error) {
		var id int64
		err := row.Scan(&id)
		return id, err
	}, insertSubmissionSQL, s.Insurance, s.Location, s.PDFURL)
}
