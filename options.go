package fieldscope

import (
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/agristack/fieldscope/internal/sources"
	"github.com/agristack/fieldscope/internal/transport"
	"github.com/agristack/fieldscope/pkg/constants"
	"github.com/agristack/fieldscope/pkg/errors"
	"github.com/agristack/fieldscope/pkg/timestamps"
)

// Option is a function that configures a Fieldscope instance.
type Option func(*config) error

// config holds the resolved configuration of one instance.
type config struct {
	deviceID string

	portalPath     string
	reportLocation string
	reportAPIKey   string
	pair           *sources.Pair

	start *utc.Time
	end   *utc.Time

	gapThresholdSeconds int
	fetchTimeout        time.Duration
	logger              *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		gapThresholdSeconds: constants.GapThresholdSeconds,
		fetchTimeout:        constants.DefaultFetchTimeout,
	}
}

// WithDevice sets the device identifier carried into summary rows and log
// events.
func WithDevice(id string) Option {
	return func(c *config) error {
		c.deviceID = id
		return nil
	}
}

// WithPortalExport points the portal feed at a materialized log export file.
func WithPortalExport(path string) Option {
	return func(c *config) error {
		if path == "" {
			return errors.NewValidationError("portal", path, "export path must not be empty")
		}
		c.portalPath = path
		return nil
	}
}

// WithReportExport points the report feed at an exported table, either a
// local file path or an HTTP URL. An API key can be provided for
// authenticated endpoints, otherwise pass the empty string.
func WithReportExport(location, apiKey string) Option {
	return func(c *config) error {
		if location == "" {
			return errors.NewValidationError("report", location, "export location must not be empty")
		}
		c.reportLocation = location
		c.reportAPIKey = apiKey
		return nil
	}
}

// WithSources supplies pre-built feed sources, overriding the export
// options. Intended for tests and embedders with custom feed plumbing.
func WithSources(pair sources.Pair) Option {
	return func(c *config) error {
		c.pair = &pair
		return nil
	}
}

// WithBounds restricts the reconciled stream to records whose log timestamp
// falls inside [start, end]. Either bound may be empty. Bounds use the
// "2006-01-02 15:04:05" layout; a bare date is accepted.
func WithBounds(start, end string) Option {
	return func(c *config) error {
		var err error
		if c.start, err = parseBound("start", start); err != nil {
			return err
		}
		if c.end, err = parseBound("end", end); err != nil {
			return err
		}
		if c.start != nil && c.end != nil && c.end.Before(*c.start) {
			return errors.NewValidationError("bounds", start+".."+end, "end precedes start")
		}
		return nil
	}
}

// WithGapThreshold overrides the expected spacing between consecutive
// records, in seconds, used by gap synthesis.
func WithGapThreshold(seconds int) Option {
	return func(c *config) error {
		if seconds <= 0 {
			return errors.NewValidationError("gapThreshold", seconds, "threshold must be positive")
		}
		c.gapThresholdSeconds = seconds
		return nil
	}
}

// WithFetchTimeout overrides the timeout for retrieving both feeds.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d <= 0 {
			return errors.NewValidationError("fetchTimeout", d, "timeout must be positive")
		}
		c.fetchTimeout = d
		return nil
	}
}

// WithLogger sets the logger used by the instance.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

func parseBound(field, raw string) (*utc.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, ok := timestamps.Parse(raw, constants.BoundsTimeLayout)
	if !ok {
		t, ok = timestamps.Parse(raw, "")
	}
	if !ok {
		return nil, errors.NewValidationError(field, raw, "unrecognized timestamp")
	}
	return &t, nil
}

// sources builds the feed pair from the configuration.
func (c *config) sources() (sources.Pair, error) {
	if c.pair != nil {
		return *c.pair, nil
	}
	if c.portalPath == "" || c.reportLocation == "" {
		return sources.Pair{}, errors.NewValidationError(
			"sources", "", "both a portal export and a report export are required")
	}

	var client *transport.Client
	if c.reportAPIKey != "" {
		client = transport.New(&transport.BearerAuth{}, c.reportAPIKey)
	}
	return sources.Pair{
		Portal: sources.NewPortal(c.portalPath),
		Report: sources.NewReport(c.reportLocation, client),
	}, nil
}
