package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marczakjulia/BYT-PROJECT/internal/config"
	"github.com/marczakjulia/BYT-PROJECT/internal/di"
	"github.com/marczakjulia/BYT-PROJECT/internal/domain"
	"github.com/marczakjulia/BYT-PROJECT/internal/store"
)

func baseArgs(dir string) []string {
	return []string{
		"-data-dir", dir,
		"-log-level", "error",
		"-env-file", filepath.Join(dir, "missing.env"),
	}
}

func runCLI(t *testing.T, dir string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), append(baseArgs(dir), args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	cfg, _, err := config.LoadConfig(baseArgs(t.TempDir()))
	require.NoError(t, err)

	injector := di.NewContainer(cfg)
	t.Cleanup(func() { _ = injector.Shutdown() })
	require.NoError(t, di.Bootstrap(context.Background(), injector))

	a := newApp(injector, &bytes.Buffer{})
	require.NoError(t, a.seed(context.Background(), nil))
	return a
}

func (a *app) output() string {
	buf := a.out.(*bytes.Buffer)
	s := buf.String()
	buf.Reset()
	return s
}

func firstScreening(t *testing.T, a *app) *domain.Screening {
	t.Helper()
	var first *domain.Screening
	for s := range a.catalog.Screenings.Seq() {
		if first == nil || s.StartsAt().Before(first.StartsAt()) {
			first = s
		}
	}
	require.NotNil(t, first)
	return first
}

func TestRun_Usage(t *testing.T) {
	dir := t.TempDir()

	code, _, stderr := runCLI(t, dir)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage: cinemactl")

	code, _, stderr = runCLI(t, dir, "dance")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "dance"`)
}

func TestRun_SeedPersistsGraph(t *testing.T) {
	dir := t.TempDir()

	code, stdout, stderr := runCLI(t, dir, "seed")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "seeded 2 cinemas, 3 movies, 3 screenings, 3 employees")
	assert.FileExists(t, filepath.Join(dir, "cinema.xml"))

	code, stdout, _ = runCLI(t, dir, "summary")
	require.Equal(t, 0, code)
	assert.Regexp(t, `movies\s+3`, stdout)
	assert.Contains(t, stdout, "Dom zły")

	code, stdout, _ = runCLI(t, dir, "search", "rejs")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Rejs")
}

func TestRun_ExitCodes(t *testing.T) {
	dir := t.TempDir()
	code, _, _ := runCLI(t, dir, "seed")
	require.Equal(t, 0, code)

	code, _, stderr := runCLI(t, dir, "sell", "tkt-missing", "Cash")
	assert.Equal(t, 4, code, stderr)

	code, _, _ = runCLI(t, dir, "sell")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, dir, "scan", "v4.local.garbage")
	assert.Equal(t, 2, code)

	code, _, _ = runCLI(t, dir, "-ticket-price", "-1", "summary")
	assert.Equal(t, 2, code)
}

func TestApp_SellPassScan(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	s := firstScreening(t, a)

	ticket, ok := s.Ticket("04A")
	require.True(t, ok)
	require.Equal(t, domain.TicketAvailable, ticket.Status())

	require.NoError(t, a.sell(ctx, []string{ticket.ID(), "Blik"}))
	assert.Contains(t, a.output(), "sold "+ticket.ID()+" seat 04A")

	err := a.sell(ctx, []string{ticket.ID(), "Cash"})
	require.Error(t, err)

	pngPath := filepath.Join(t.TempDir(), "pass.png")
	require.NoError(t, a.pass(ctx, []string{ticket.ID(), pngPath}))
	payload := strings.TrimSpace(a.output())
	assert.True(t, strings.HasPrefix(payload, "v4.local."))
	data, err := os.ReadFile(pngPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data[:4])

	a.now = func() time.Time { return s.StartsAt().Add(-10 * time.Minute) }
	require.NoError(t, a.scan(ctx, []string{payload}))
	assert.Equal(t, domain.TicketScanned, ticket.Status())
	assert.Contains(t, a.output(), "Scanned")

	require.Error(t, a.scan(ctx, []string{payload}))
}

func TestApp_Refund(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)
	s := firstScreening(t, a)

	ticket, ok := s.Ticket("01A")
	require.True(t, ok)
	require.Equal(t, domain.TicketPurchased, ticket.Status())

	a.now = func() time.Time { return s.StartsAt().Add(-48 * time.Hour) }
	require.NoError(t, a.refund(ctx, []string{ticket.ID(), "changed", "plans"}))
	assert.Equal(t, domain.TicketRefunded, ticket.Status())
	assert.Equal(t, "changed plans", ticket.Reason())
}

func TestApp_Tickets(t *testing.T) {
	a := newTestApp(t)
	s := firstScreening(t, a)

	require.NoError(t, a.tickets(context.Background(), []string{s.ID()}))
	out := a.output()
	assert.Regexp(t, `01A\s+tkt-\S+\s+25\.00\s+Purchased`, out)
	assert.Contains(t, out, string(domain.TicketPurchased))
}

func TestApp_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t)

	require.NoError(t, a.snapshot(ctx, []string{"before", "premiere"}))
	assert.Contains(t, a.output(), "before-premiere")

	s := firstScreening(t, a)
	require.NoError(t, a.catalog.RemoveScreening(s))
	require.Equal(t, 2, a.catalog.Screenings.Len())

	require.NoError(t, a.snapshots(ctx, nil))
	assert.Contains(t, a.output(), "before-premiere")

	require.NoError(t, a.restore(ctx, []string{"before-premiere"}))
	assert.Equal(t, 3, a.catalog.Screenings.Len())
	assert.Same(t, a.catalog, do.MustInvoke[*store.Catalog](a.injector))
}
