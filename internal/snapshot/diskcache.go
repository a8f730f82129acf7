package snapshot

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"

	"github.com/klauspost/compress/gzip"

	"github.com/antigravity/transit-raptor/internal/feed"
)

// diskFeed is the gob-serializable payload written to the disk cache:
// a flat scan of a feed.Source, so a rebuild after process restart can
// skip re-querying the real backend (Postgres, SQLite, a GTFS zip)
// when it's unreachable or slow to re-parse.
type diskFeed struct {
	Stops     []feed.StopRecord
	Trips     []feed.TripRecord
	Transfers []feed.TransferRecord
}

// cachedSource adapts a decoded diskFeed to feed.Source.
type cachedSource struct{ d diskFeed }

func (c cachedSource) Stops(context.Context) ([]feed.StopRecord, error)     { return c.d.Stops, nil }
func (c cachedSource) Trips(context.Context) ([]feed.TripRecord, error)     { return c.d.Trips, nil }
func (c cachedSource) Transfers(context.Context) ([]feed.TransferRecord, error) {
	return c.d.Transfers, nil
}

var _ feed.Source = cachedSource{}

// WriteDiskCache scans source once and writes it to path as a
// gzip-compressed gob blob.
func WriteDiskCache(ctx context.Context, source feed.Source, path string) error {
	stops, err := source.Stops(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: disk cache: reading stops: %w", err)
	}
	trips, err := source.Trips(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: disk cache: reading trips: %w", err)
	}
	transfers, err := source.Transfers(ctx)
	if err != nil {
		return fmt.Errorf("snapshot: disk cache: reading transfers: %w", err)
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(diskFeed{Stops: stops, Trips: trips, Transfers: transfers}); err != nil {
		return fmt.Errorf("snapshot: disk cache: encoding: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("snapshot: disk cache: closing gzip writer: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("snapshot: disk cache: writing %s: %w", path, err)
	}
	return nil
}

// ReadDiskCache loads a feed.Source previously written by
// WriteDiskCache.
func ReadDiskCache(path string) (feed.Source, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: disk cache: reading %s: %w", path, err)
	}
	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("snapshot: disk cache: opening gzip reader: %w", err)
	}
	defer gz.Close()

	var d diskFeed
	if err := gob.NewDecoder(gz).Decode(&d); err != nil {
		return nil, fmt.Errorf("snapshot: disk cache: decoding: %w", err)
	}
	return cachedSource{d: d}, nil
}
