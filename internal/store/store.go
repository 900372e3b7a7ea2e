// Package store provides an ephemeral, mutex-guarded storage for block
// placement records. It drives the save lifecycle of a record: dependencies
// are recalculated, the record is stored, and its post-save hook is told
// whether it was created or updated.
package store

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/specialistvlad/blockplace/internal/ctxlog"
	"github.com/specialistvlad/blockplace/internal/placement"
)

// Store keeps placement records in memory, keyed by id.
type Store struct {
	mu      sync.RWMutex
	records map[string]*placement.Record
}

// New creates an empty Store.
func New() *Store {
	return &Store{records: make(map[string]*placement.Record)}
}

// Save stores rec, replacing any record with the same id.
func (s *Store) Save(ctx context.Context, rec *placement.Record) error {
	if rec.ID() == "" {
		return errors.New("cannot save block placement without an id")
	}
	logger := ctxlog.FromContext(ctx)

	rec.PluginWithContext(ctx)
	deps := rec.CalculateDependencies()

	s.mu.Lock()
	_, update := s.records[rec.ID()]
	s.records[rec.ID()] = rec
	s.mu.Unlock()

	logger.Debug("Block placement stored.", "id", rec.ID(), "theme", rec.Theme(), "region", rec.Region(), "update", update, "dependencies", deps)
	rec.PostSave(ctx, update)
	return nil
}

// Load returns the record with the given id.
func (s *Store) Load(id string) (*placement.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	return rec, ok
}

// LoadAll returns every record ordered by id.
func (s *Store) LoadAll() []*placement.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*placement.Record, 0, len(s.records))
	for _, id := range slices.Sorted(maps.Keys(s.records)) {
		out = append(out, s.records[id])
	}
	return out
}

// LoadByTheme returns the records of one theme in listing order.
func (s *Store) LoadByTheme(theme string) []*placement.Record {
	var out []*placement.Record
	for _, rec := range s.LoadAll() {
		if rec.Theme() == theme {
			out = append(out, rec)
		}
	}
	placement.Sort(out)
	return out
}

// Themes returns the sorted set of themes that have at least one record.
func (s *Store) Themes() []string {
	var themes []string
	for _, rec := range s.LoadAll() {
		themes = append(themes, rec.Theme())
	}
	slices.Sort(themes)
	return slices.Compact(themes)
}

// Delete removes the record with the given id. Deleting an unknown id is not
// an error.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	rec, ok := s.records[id]
	delete(s.records, id)
	s.mu.Unlock()

	if !ok {
		return
	}
	rec.PostDelete(ctx)
}
