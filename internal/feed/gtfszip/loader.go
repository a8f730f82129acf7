// Package gtfszip implements a feed.Source that parses a raw GTFS feed
// (a zip or directory of CSVs) directly, for CLI use and tests where
// standing up a database is unwanted overhead.
package gtfszip

import (
	"context"
	"fmt"

	gtfsparser "github.com/patrickbr/gtfsparser"

	"github.com/antigravity/transit-raptor/internal/feed"
)

// Loader parses a GTFS feed once, at construction time, and serves the
// three feed.Source scans from the in-memory parse result.
type Loader struct {
	parsed *gtfsparser.Feed
}

// Open parses the GTFS feed at path (a .zip file or an extracted
// directory, per gtfsparser's own convention).
func Open(path string) (*Loader, error) {
	f := gtfsparser.NewFeed()
	if err := f.Parse(path); err != nil {
		return nil, fmt.Errorf("gtfszip: parsing %s: %w", path, err)
	}
	return &Loader{parsed: f}, nil
}

var _ feed.Source = (*Loader)(nil)

func (l *Loader) Stops(ctx context.Context) ([]feed.StopRecord, error) {
	out := make([]feed.StopRecord, 0, len(l.parsed.Stops))
	for id, s := range l.parsed.Stops {
		out = append(out, feed.StopRecord{ID: id, Lat: float64(s.Lat), Lon: float64(s.Lon)})
	}
	return out, nil
}

func (l *Loader) Trips(ctx context.Context) ([]feed.TripRecord, error) {
	out := make([]feed.TripRecord, 0, len(l.parsed.Trips))
	for id, t := range l.parsed.Trips {
		rec := feed.TripRecord{ID: id, ServiceID: t.Service.Id()}
		if t.Route != nil {
			rec.RouteKey = t.Route.Id
		}
		for _, st := range t.StopTimes {
			if st.Stop() == nil {
				continue
			}
			rec.StopTimes = append(rec.StopTimes, feed.StopTimeRecord{
				StopID:    st.Stop().Id,
				Arrival:   int64(st.Arrival_time().SecondsSinceMidnight()),
				Departure: int64(st.Departure_time().SecondsSinceMidnight()),
			})
		}
		if len(rec.StopTimes) < 2 {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (l *Loader) Transfers(ctx context.Context) ([]feed.TransferRecord, error) {
	out := make([]feed.TransferRecord, 0, len(l.parsed.Transfers))
	for from_to, transfer := range l.parsed.Transfers {
		if from_to.From_stop == nil || from_to.To_stop == nil {
			continue
		}
		out = append(out, feed.TransferRecord{
			FromStopID:  from_to.From_stop.Id,
			ToStopID:    from_to.To_stop.Id,
			WalkSeconds: int64(transfer.Min_transfer_time),
		})
	}
	return out, nil
}
