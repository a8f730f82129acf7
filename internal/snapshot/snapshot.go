// Package snapshot wires the Timetable Store, Foot-path Index and
// Access/Egress Resolver into one immutable, swappable unit, and
// manages rebuilding it from a feed.Source on a schedule (spec §5).
package snapshot

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/antigravity/transit-raptor/internal/feed"
	"github.com/antigravity/transit-raptor/internal/footpath"
	"github.com/antigravity/transit-raptor/internal/model"
)

// Snapshot is one fully-built, read-only view of a timetable. A reader
// holding a *Snapshot may keep using it indefinitely — rebuilding never
// mutates an existing Snapshot, it only produces a new one.
type Snapshot struct {
	Store    *model.Store
	Footpath *footpath.Index
	Resolver *footpath.Resolver
	BuiltAt  time.Time
}

// Build runs the Timetable Store construction and Foot-path Index
// build against source, producing one immutable Snapshot.
func Build(ctx context.Context, source feed.Source, footpathCfg footpath.Config, resolverCacheSize int) (*Snapshot, error) {
	store, err := model.Build(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("snapshot: building store: %w", err)
	}
	idx := footpath.Build(store.Stops, store.DeclaredTransfers, footpathCfg)
	resolver := footpath.NewResolver(idx, resolverCacheSize)

	return &Snapshot{
		Store:    store,
		Footpath: idx,
		Resolver: resolver,
		BuiltAt:  time.Now(),
	}, nil
}

// Holder is the read-copy-update container the rest of the module
// reads a *Snapshot through: an atomic pointer swap on refresh, no
// locks on the read path.
type Holder struct {
	ptr atomic.Pointer[Snapshot]
}

// NewHolder wraps an already-built Snapshot.
func NewHolder(initial *Snapshot) *Holder {
	h := &Holder{}
	h.ptr.Store(initial)
	return h
}

// Current returns the most recently published Snapshot. Safe for
// concurrent use by any number of readers.
func (h *Holder) Current() *Snapshot {
	return h.ptr.Load()
}

// Replace publishes a newly built Snapshot, atomically making it the
// one future Current() calls return. In-flight queries against the
// previous Snapshot are unaffected — they hold their own pointer.
func (h *Holder) Replace(next *Snapshot) {
	h.ptr.Store(next)
}
