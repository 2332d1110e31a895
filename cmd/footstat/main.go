// Command footstat collects football statistics pages and stores their
// tables in normalized form.
//
// Usage:
//
//	footstat -config config/leagues.yaml -league epl
//	footstat -league epl -db data/footstat.db -out data/raw
//
// For each league it fetches the scores-and-fixtures page and extracts the
// primary schedule table, then fetches the season-stats page and extracts
// the standings and squad-aggregate tables. Results land in SQLite and as
// CSV dumps; raw HTML snapshots are kept next to the CSVs for debugging.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ovsand/footstat/fetch"
	"github.com/ovsand/footstat/league"
	"github.com/ovsand/footstat/store"
	"github.com/ovsand/footstat/tabular"
)

func main() {
	configPath := flag.String("config", "config/leagues.yaml", "path to the league registry")
	leagueCode := flag.String("league", "epl", "league code to collect")
	dbPath := flag.String("db", "data/footstat.db", "sqlite database path")
	outDir := flag.String("out", "data/raw", "directory for CSV and raw HTML dumps")
	headful := flag.Bool("headful", false, "run Chrome with a visible window")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *leagueCode, *dbPath, *outDir, *headful); err != nil {
		logger.Error("footstat: fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, configPath, leagueCode, dbPath, outDir string, headful bool) error {
	reg, err := league.Load(configPath)
	if err != nil {
		return err
	}
	lg, err := reg.Get(leagueCode)
	if err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	dumpDir := filepath.Join(outDir, fmt.Sprintf("%s_%s", leagueCode, lg.Season))
	if err := os.MkdirAll(dumpDir, 0o755); err != nil {
		return fmt.Errorf("footstat: mkdir %s: %w", dumpDir, err)
	}

	browser := fetch.New(fetch.Config{
		Headful: headful,
		HomeURL: lg.HomeURL,
		Logger:  logger,
	})
	if err := browser.Start(ctx); err != nil {
		return err
	}
	defer browser.Close()

	c := collector{
		logger:  logger,
		browser: browser,
		store:   st,
		league:  leagueCode,
		season:  lg.Season,
		dumpDir: dumpDir,
	}

	// One page failing should not stop the other: the provider pages are
	// independent and partial data is still worth keeping.
	if lg.FixturesURL != "" {
		if err := c.collectFixtures(ctx, lg.FixturesURL); err != nil {
			logger.Error("footstat: fixtures page failed", "league", leagueCode, "error", err)
		}
	}
	if lg.SeasonURL != "" {
		if err := c.collectSeason(ctx, lg.SeasonURL); err != nil {
			logger.Error("footstat: season page failed", "league", leagueCode, "error", err)
		}
	}
	return ctx.Err()
}

type collector struct {
	logger  *slog.Logger
	browser *fetch.Browser
	store   *store.Store
	league  string
	season  string
	dumpDir string
}

func (c *collector) collectFixtures(ctx context.Context, url string) error {
	c.logger.Info("footstat: fetching fixtures page", "league", c.league, "url", url)
	doc, err := c.browser.PageHTML(ctx, url)
	if err != nil {
		return err
	}
	c.snapshot("fixtures_page.html", doc)

	tbl := tabular.Biggest(doc)
	if tbl.Empty() {
		c.logger.Warn("footstat: no schedule table found", "league", c.league, "url", url)
		return nil
	}
	return c.save(ctx, "fixtures", url, "schedule_results.csv", tbl)
}

func (c *collector) collectSeason(ctx context.Context, url string) error {
	c.logger.Info("footstat: fetching season page", "league", c.league, "url", url)
	doc, err := c.browser.PageHTML(ctx, url)
	if err != nil {
		return err
	}
	c.snapshot("season_page.html", doc)

	standings, teamStats := tabular.Classify(doc)

	if standings == nil || standings.Empty() {
		c.logger.Warn("footstat: standings not detected", "league", c.league, "url", url)
	} else if err := c.save(ctx, "standings", url, "standings.csv", *standings); err != nil {
		return err
	}

	if teamStats == nil || teamStats.Empty() {
		c.logger.Warn("footstat: team stats not detected", "league", c.league, "url", url)
	} else if err := c.save(ctx, "team_stats", url, "team_standard_stats.csv", *teamStats); err != nil {
		return err
	}
	return nil
}

// save persists a table to the store and drops a CSV copy in the dump dir.
func (c *collector) save(ctx context.Context, kind, url, csvName string, tbl tabular.Table) error {
	meta := store.Meta{
		League:    c.league,
		Season:    c.season,
		Kind:      kind,
		SourceURL: url,
		FetchedAt: time.Now().UTC(),
	}
	if err := c.store.SaveTable(ctx, meta, tbl); err != nil {
		return err
	}

	path := filepath.Join(c.dumpDir, csvName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("footstat: create %s: %w", path, err)
	}
	defer f.Close()
	if err := store.WriteCSV(f, tbl); err != nil {
		return err
	}

	c.logger.Info("footstat: saved dataset",
		"league", c.league, "kind", kind,
		"rows", len(tbl.Rows), "cols", len(tbl.Fields), "csv", path)
	return nil
}

// snapshot writes the raw page HTML for offline debugging; failures are
// logged, not fatal.
func (c *collector) snapshot(name, doc string) {
	path := filepath.Join(c.dumpDir, name)
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		c.logger.Warn("footstat: snapshot failed", "path", path, "error", err)
	}
}
