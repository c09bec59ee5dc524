package sources

import (
	"bytes"
	"context"
	"os"
	"strings"

	"github.com/agristack/fieldscope/internal/transport"
	"github.com/agristack/fieldscope/pkg/errors"
	"github.com/agristack/fieldscope/pkg/logging"
	"github.com/agristack/fieldscope/pkg/schema"
	"github.com/agristack/fieldscope/pkg/telemetry"
)

// reportColumns is the report feed's column contract. Anything else the
// export carries is dropped at the source.
var reportColumns = []string{
	schema.ColLogDate,
	schema.ColCreatedOn,
	schema.ColAcc,
	schema.ColBat,
	"RC",
	"WSD",
	"LI",
	"Lat",
	"Lon",
}

// Report reads the report service's exported table, from a local file or an
// HTTP endpoint.
type Report struct {
	location string
	client   *transport.Client
	table    *telemetry.Table
}

// NewReport creates a report source over the given location. A location
// with an http or https scheme is fetched through the client; anything else
// is read as a local file path. A nil client gets a default one.
func NewReport(location string, client *transport.Client) *Report {
	if client == nil {
		client = transport.New(nil, "")
	}
	return &Report{location: location, client: client}
}

// ID implements the Source interface.
func (r *Report) ID() string { return ReportID }

// Fetch implements the Source interface.
func (r *Report) Fetch(ctx context.Context) error {
	raw, err := r.read(ctx)
	if err != nil {
		return err
	}

	table, err := decodeCSV(bytes.NewReader(raw), r.location)
	if err != nil {
		return errors.WrapSource(ReportID, "parse", err)
	}
	r.table = table.Select(reportColumns...)

	logging.Debug().
		Str("source", ReportID).
		Str("location", r.location).
		Int("rows", r.table.Len()).
		Msg("feed materialized")
	return nil
}

func (r *Report) read(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(r.location, "http://") || strings.HasPrefix(r.location, "https://") {
		body, err := r.client.FetchBody(ctx, r.location)
		if err != nil {
			return nil, errors.WrapSource(ReportID, "download", err)
		}
		return body, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.WrapSource(ReportID, "open", err)
	}
	body, err := os.ReadFile(r.location)
	if err != nil {
		return nil, errors.WrapSource(ReportID, "open", err)
	}
	return body, nil
}

// Table implements the Source interface.
func (r *Report) Table() *telemetry.Table { return r.table }

// Cleanup implements the Source interface.
func (r *Report) Cleanup() error {
	r.table = nil
	return nil
}
