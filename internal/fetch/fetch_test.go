package fetch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agristack/fieldscope/internal/sources"
	"github.com/agristack/fieldscope/pkg/errors"
	"github.com/agristack/fieldscope/pkg/telemetry"
)

type stubSource struct {
	id    string
	table *telemetry.Table
	err   error
	delay time.Duration
}

func (s *stubSource) ID() string { return s.id }

func (s *stubSource) Fetch(ctx context.Context) error {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return errors.WrapSource(s.id, "fetch", ctx.Err())
		}
	}
	return s.err
}

func (s *stubSource) Table() *telemetry.Table { return s.table }
func (s *stubSource) Cleanup() error          { return nil }

func pairOf(portal, report sources.Source) sources.Pair {
	return sources.Pair{Portal: portal, Report: report}
}

func TestTaskDeliversTables(t *testing.T) {
	portal := telemetry.NewTable("a")
	report := telemetry.NewTable("b")

	task := Start(context.Background(), pairOf(
		&stubSource{id: sources.PortalID, table: portal},
		&stubSource{id: sources.ReportID, table: report},
	), time.Second)

	out := task.Wait(context.Background())
	require.NoError(t, out.Err)
	assert.Same(t, portal, out.Portal)
	assert.Same(t, report, out.Report)
}

func TestTaskDeliversFirstFailure(t *testing.T) {
	task := Start(context.Background(), pairOf(
		&stubSource{id: sources.PortalID, err: errors.WrapSource(sources.PortalID, "open", os.ErrNotExist)},
		&stubSource{id: sources.ReportID, table: telemetry.NewTable()},
	), time.Second)

	out := task.Wait(context.Background())
	require.Error(t, out.Err)
	assert.True(t, errors.IsSourceUnavailable(out.Err))
	assert.Nil(t, out.Portal)
}

func TestTaskStop(t *testing.T) {
	task := Start(context.Background(), pairOf(
		&stubSource{id: sources.PortalID, delay: time.Minute, table: telemetry.NewTable()},
		&stubSource{id: sources.ReportID, table: telemetry.NewTable()},
	), time.Minute)
	task.Stop()

	out := task.Wait(context.Background())
	require.Error(t, out.Err)
}

func TestTaskWaitHonorsCallerContext(t *testing.T) {
	task := Start(context.Background(), pairOf(
		&stubSource{id: sources.PortalID, delay: time.Minute, table: telemetry.NewTable()},
		&stubSource{id: sources.ReportID, table: telemetry.NewTable()},
	), time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	out := task.Wait(ctx)
	require.Error(t, out.Err)
	assert.True(t, errors.IsCanceled(out.Err))
}

func TestTaskRealFiles(t *testing.T) {
	dir := t.TempDir()
	portalPath := filepath.Join(dir, "portal.csv")
	reportPath := filepath.Join(dir, "report.csv")
	require.NoError(t, os.WriteFile(portalPath, []byte("Log Date (Raw),Accelerometer\n2024-01-01 10:00:00,[OK]\n"), 0o644))
	require.NoError(t, os.WriteFile(reportPath, []byte("LogDate,Acc,Bat\n01/01/2024 10:00:00,[OK],3.7\n"), 0o644))

	task := Start(context.Background(), sources.Pair{
		Portal: sources.NewPortal(portalPath),
		Report: sources.NewReport(reportPath, nil),
	}, time.Second)

	out := task.Wait(context.Background())
	require.NoError(t, out.Err)
	assert.Equal(t, 1, out.Portal.Len())
	assert.Equal(t, 1, out.Report.Len())
}
