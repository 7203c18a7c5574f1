package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func testImporterConfig(t *testing.T) Config {
	t.Helper()

	return Config{
		User:       "alice",
		PerPage:    500,
		RetryLimit: 3,
		DBPath:     filepath.Join(t.TempDir(), "quicktag.db"),
	}
}

func trackFor(page int) TrackRecord {
	return TrackRecord{
		Artist:    fmt.Sprintf("Artist %d", page),
		Title:     fmt.Sprintf("Title %d", page),
		PlayCount: page * 10,
	}
}

func TestImporterEmptyUser(t *testing.T) {
	cfg := testImporterConfig(t)
	cfg.User = "   "

	fetcher := fetcherFunc(func(ctx context.Context, user string, page, limit int) (PageResult, error) {
		t.Fatal("fetcher should not be called")
		return PageResult{}, nil
	})

	_, err := NewImporter(cfg, fetcher, zerolog.Nop()).Run(context.Background())

	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}

	// Validation happens before the store is opened.
	if _, err := os.Stat(cfg.DBPath); !os.IsNotExist(err) {
		t.Error("expected no database file to be created")
	}
}

func TestImporterZeroPagesAborts(t *testing.T) {
	cfg := testImporterConfig(t)
	gateCalls := 0
	cfg.Confirm = func() error {
		gateCalls++
		return nil
	}

	fetcher := fetcherFunc(func(ctx context.Context, user string, page, limit int) (PageResult, error) {
		return PageResult{TotalPages: 0}, nil
	})

	counters, err := NewImporter(cfg, fetcher, zerolog.Nop()).Run(context.Background())
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if counters.Found != 0 {
		t.Errorf("expected no found tracks, got %d", counters.Found)
	}
	if gateCalls != 0 {
		t.Error("confirmation gate must not run on the abort path")
	}

	// Nothing was committed.
	if n := countRows(t, cfg.DBPath); n != 0 {
		t.Errorf("expected 0 committed rows, got %d", n)
	}
}

func TestImporterSkipsExhaustedPage(t *testing.T) {
	cfg := testImporterConfig(t)
	cfg.RetryLimit = 2

	fetcher := fetcherFunc(func(ctx context.Context, user string, page, limit int) (PageResult, error) {
		if page == 2 {
			return PageResult{}, fmt.Errorf("connection reset")
		}
		return PageResult{Tracks: []TrackRecord{trackFor(page)}, TotalPages: 3}, nil
	})

	counters, err := NewImporter(cfg, fetcher, zerolog.Nop()).Run(context.Background())
	if err != nil {
		t.Fatalf("expected run to continue past the exhausted page, got %v", err)
	}

	// Pages 1 and 3 each contributed one track; page 2 was skipped.
	if counters.Found != 2 {
		t.Errorf("expected found 2, got %d", counters.Found)
	}
	if counters.Pages != 2 {
		t.Errorf("expected 2 processed pages, got %d", counters.Pages)
	}

	if n := countRows(t, cfg.DBPath); n != 2 {
		t.Errorf("expected 2 committed rows, got %d", n)
	}
}

func TestImporterLoopBoundShrinks(t *testing.T) {
	cfg := testImporterConfig(t)

	var fetched []int
	fetcher := fetcherFunc(func(ctx context.Context, user string, page, limit int) (PageResult, error) {
		fetched = append(fetched, page)
		total := 5
		if page >= 2 {
			total = 2
		}
		return PageResult{Tracks: []TrackRecord{trackFor(page)}, TotalPages: total}, nil
	})

	_, err := NewImporter(cfg, fetcher, zerolog.Nop()).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Page 2 revised the total down to 2, so pages 3-5 are never fetched.
	if len(fetched) != 2 || fetched[0] != 1 || fetched[1] != 2 {
		t.Errorf("expected pages [1 2] to be fetched, got %v", fetched)
	}
}

func TestImporterLoopBoundGrows(t *testing.T) {
	cfg := testImporterConfig(t)

	var fetched []int
	fetcher := fetcherFunc(func(ctx context.Context, user string, page, limit int) (PageResult, error) {
		fetched = append(fetched, page)
		total := 2
		if page >= 2 {
			total = 3
		}
		return PageResult{Tracks: []TrackRecord{trackFor(page)}, TotalPages: total}, nil
	})

	_, err := NewImporter(cfg, fetcher, zerolog.Nop()).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Page 1 reported 2 total pages, page 2 revised it up to 3, so a
	// third page is fetched.
	if len(fetched) != 3 || fetched[2] != 3 {
		t.Errorf("expected pages [1 2 3] to be fetched, got %v", fetched)
	}
}

func TestImporterEndToEnd(t *testing.T) {
	cfg := testImporterConfig(t)
	cfg.PerPage = 2
	cfg.RetryLimit = 1

	gateCalls := 0
	cfg.Confirm = func() error {
		gateCalls++
		return nil
	}

	fetcher := fetcherFunc(func(ctx context.Context, user string, page, limit int) (PageResult, error) {
		if user != "alice" {
			t.Errorf("expected user alice, got %q", user)
		}
		if limit != 2 {
			t.Errorf("expected limit 2, got %d", limit)
		}
		return PageResult{
			Tracks: []TrackRecord{
				{Artist: "Air", Title: "Sexy Boy", PlayCount: 10},
				{Artist: "Air", Title: "Sexy Boy", PlayCount: 10},
			},
			TotalPages: 1,
		}, nil
	})

	counters, err := NewImporter(cfg, fetcher, zerolog.Nop()).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if counters.Found != 2 {
		t.Errorf("expected found 2, got %d", counters.Found)
	}
	if counters.Unknown != 0 {
		t.Errorf("expected unknown 0, got %d", counters.Unknown)
	}
	if gateCalls != 1 {
		t.Errorf("expected confirmation gate to run exactly once, got %d", gateCalls)
	}

	// Both records share a fingerprint, so exactly one row exists.
	if n := countRows(t, cfg.DBPath); n != 1 {
		t.Errorf("expected 1 committed row, got %d", n)
	}
	value := readPlayCount(t, cfg.DBPath, Fingerprint("air", "sexy boy"))
	if value != "10" {
		t.Errorf("expected value %q, got %q", "10", value)
	}
}

func TestImporterGateErrorDiscardsWrites(t *testing.T) {
	cfg := testImporterConfig(t)
	gateErr := fmt.Errorf("other writer still open")
	cfg.Confirm = func() error { return gateErr }

	fetcher := fetcherFunc(func(ctx context.Context, user string, page, limit int) (PageResult, error) {
		return PageResult{Tracks: []TrackRecord{trackFor(page)}, TotalPages: 1}, nil
	})

	_, err := NewImporter(cfg, fetcher, zerolog.Nop()).Run(context.Background())
	if !errors.Is(err, gateErr) {
		t.Fatalf("expected gate error, got %v", err)
	}

	if n := countRows(t, cfg.DBPath); n != 0 {
		t.Errorf("expected 0 committed rows after refused gate, got %d", n)
	}
}

func TestImporterCancelledContext(t *testing.T) {
	cfg := testImporterConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := fetcherFunc(func(ctx context.Context, user string, page, limit int) (PageResult, error) {
		return PageResult{Tracks: []TrackRecord{trackFor(page)}, TotalPages: 1}, nil
	})

	_, err := NewImporter(cfg, fetcher, zerolog.Nop()).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
