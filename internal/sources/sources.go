// Package sources implements the two telemetry feed readers: the portal's
// materialized log export and the report service's exported table. A source
// fetches and materializes its table once; the pipeline consumes the tables
// and never reaches back into a source.
package sources

import (
	"context"

	"github.com/agristack/fieldscope/pkg/telemetry"
)

// Feed identifiers used in source errors and log events.
const (
	PortalID = "portal"
	ReportID = "report"
)

// Source fetches and materializes one telemetry feed.
type Source interface {
	// ID identifies the feed ("portal", "report").
	ID() string
	// Fetch retrieves and materializes the feed's table.
	Fetch(ctx context.Context) error
	// Table returns the materialized table, nil before a successful Fetch.
	Table() *telemetry.Table
	// Cleanup releases anything Fetch acquired.
	Cleanup() error
}

// Pair bundles the two feeds of one device.
type Pair struct {
	Portal Source
	Report Source
}

// Fetch materializes both feeds in order. The first failure aborts.
func (p Pair) Fetch(ctx context.Context) error {
	if err := p.Portal.Fetch(ctx); err != nil {
		return err
	}
	return p.Report.Fetch(ctx)
}

// Cleanup releases both feeds, keeping the first failure.
func (p Pair) Cleanup() error {
	err := p.Portal.Cleanup()
	if rerr := p.Report.Cleanup(); err == nil {
		err = rerr
	}
	return err
}
