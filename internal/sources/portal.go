package sources

import (
	"context"
	"os"

	"github.com/agristack/fieldscope/pkg/errors"
	"github.com/agristack/fieldscope/pkg/logging"
	"github.com/agristack/fieldscope/pkg/telemetry"
)

// Portal reads the portal's materialized log export for one device. The
// export is produced upstream; this source only consumes the file.
type Portal struct {
	path  string
	table *telemetry.Table
}

// NewPortal creates a portal source over the exported file.
func NewPortal(path string) *Portal {
	return &Portal{path: path}
}

// ID implements the Source interface.
func (p *Portal) ID() string { return PortalID }

// Fetch implements the Source interface.
func (p *Portal) Fetch(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.WrapSource(PortalID, "open", err)
	}

	f, err := os.Open(p.path)
	if err != nil {
		return errors.WrapSource(PortalID, "open", err)
	}
	defer f.Close() //nolint:errcheck // read-side close

	table, err := decodeCSV(f, p.path)
	if err != nil {
		return errors.WrapSource(PortalID, "parse", err)
	}
	p.table = table

	logging.Debug().
		Str("source", PortalID).
		Str("path", p.path).
		Int("rows", table.Len()).
		Msg("feed materialized")
	return nil
}

// Table implements the Source interface.
func (p *Portal) Table() *telemetry.Table { return p.table }

// Cleanup implements the Source interface.
func (p *Portal) Cleanup() error {
	p.table = nil
	return nil
}
