// Package store implements the annotation entity store: a generic CRUD
// layer over one record kind (marker or route) that merges the fixed
// built-in dataset with the user's custom records from durable storage.
//
// Custom records are re-read from the key-value layer on every call and
// every mutation rewrites the kind's full custom list. Storage failures
// never surface to callers: reads degrade to an empty custom collection
// and write failures are logged warnings, so loss of persistence cannot
// break the interaction flow.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/lorescape/waymark/internal/cache"
	"github.com/lorescape/waymark/internal/kv"
)

// Kind describes one record kind to the generic store: its identity,
// its built-in dataset, and the hooks the store needs to assign identity
// to new records.
type Kind[R any] struct {
	// Name is the kind's singular name, used as the id prefix.
	Name string
	// StorageKey is the well-known key the custom list persists under.
	StorageKey string
	// Builtin is the fixed built-in dataset, in presentation order.
	Builtin []R
	// ID extracts a record's id.
	ID func(R) string
	// Subtype extracts the record's type name for the id scheme.
	Subtype func(R) string
	// Stamp assigns identity to a freshly created record: the generated
	// id, IsCustom=true, and the creation timestamp (epoch millis). It
	// is also the place where explicit field defaults are applied.
	Stamp func(r *R, id string, createdAt int64)
}

// Fields excluded from every update patch. Identity is immutable once
// assigned.
var reservedFields = map[string]struct{}{
	"id":        {},
	"isCustom":  {},
	"createdAt": {},
}

// Store is the entity store for a single record kind.
type Store[R any] struct {
	kind Kind[R]
	kv   kv.Store
	ids  *cache.IDRegistry
	log  *slog.Logger

	// Guards the load/merge/save sequence per storage key so no write
	// can observe a torn intermediate state from another write.
	mu sync.Mutex

	now func() time.Time
}

// New creates a Store for the given kind on top of the key-value layer.
// The id registry may be shared across kinds; built-in ids are reserved
// up front so generated ids can never collide with them.
func New[R any](kind Kind[R], kvs kv.Store, ids *cache.IDRegistry, log *slog.Logger) *Store[R] {
	if log == nil {
		log = slog.Default()
	}
	for _, r := range kind.Builtin {
		ids.Reserve(kind.ID(r))
	}
	return &Store[R]{
		kind: kind,
		kv:   kvs,
		ids:  ids,
		log:  log,
		now:  time.Now,
	}
}

// All returns built-in records (fixed order) followed by custom records
// (storage order). It never fails; a storage read or parse failure is
// treated as zero custom records.
func (s *Store[R]) All() []R {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]R, 0, len(s.kind.Builtin))
	out = append(out, s.kind.Builtin...)
	return append(out, s.loadCustom()...)
}

// Custom returns the custom records only, with the same fault tolerance
// as All.
func (s *Store[R]) Custom() []R {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadCustom()
}

// BuiltinCount returns the number of built-in records of this kind.
func (s *Store[R]) BuiltinCount() int {
	return len(s.kind.Builtin)
}

// Add stamps identity onto r (generated id, IsCustom=true, CreatedAt),
// appends it to the custom list, persists the full list, and returns
// the stored record. Caller-side validation is assumed; Add itself
// validates nothing.
func (s *Store[R]) Add(r R) R {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID(s.kind.Subtype(r))
	s.kind.Stamp(&r, id, s.now().UnixMilli())

	customs := append(s.loadCustom(), r)
	s.saveCustom(customs)
	return r
}

// Update merges patch into the custom record with the given id and
// rewrites storage. The merge is shallow, last-write-wins per field;
// id, isCustom, and createdAt are stripped from the patch regardless of
// its content. Returns false when no custom record has the id, which
// also covers built-in records, since they are never in the custom
// list.
func (s *Store[R]) Update(id string, patch map[string]any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	customs := s.loadCustom()
	idx := -1
	for i, r := range customs {
		if s.kind.ID(r) == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	merged, err := mergeFields(customs[idx], patch)
	if err != nil {
		s.log.Warn("Update patch rejected", "kind", s.kind.Name, "id", id, "error", err)
		return false
	}
	customs[idx] = merged
	s.saveCustom(customs)
	return true
}

// Delete removes the custom record with the given id and reports
// whether anything was removed. Storage is rewritten only on change.
func (s *Store[R]) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	customs := s.loadCustom()
	kept := customs[:0]
	for _, r := range customs {
		if s.kind.ID(r) != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(customs) {
		return false
	}
	s.saveCustom(kept)
	return true
}

// ClearAll deletes every custom record of this kind, one Delete per
// record, so partial progress remains visible if interrupted.
func (s *Store[R]) ClearAll() {
	for _, r := range s.Custom() {
		s.Delete(s.kind.ID(r))
	}
}

// newID generates a fresh id under the
// {kind}-{subtype}-{timestamp}-{suffix} scheme, retrying until the id
// registry grants it.
func (s *Store[R]) newID(subtype string) string {
	for {
		id := fmt.Sprintf("%s-%s-%d-%s", s.kind.Name, subtype, s.now().UnixMilli(), randSuffix(9))
		if s.ids.Reserve(id) {
			return id
		}
	}
}

const suffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randSuffix(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = suffixAlphabet[rand.Intn(len(suffixAlphabet))]
	}
	return string(b)
}

// loadCustom reads the custom list from storage. Callers must hold the
// store lock.
func (s *Store[R]) loadCustom() []R {
	data, err := s.kv.Get(s.kind.StorageKey)
	if err != nil {
		s.log.Warn("Error loading custom records, treating as empty", "kind", s.kind.Name, "error", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	var customs []R
	if err := json.Unmarshal(data, &customs); err != nil {
		s.log.Warn("Corrupt custom records, treating as empty", "kind", s.kind.Name, "error", err)
		return nil
	}
	return customs
}

// saveCustom rewrites the custom list. Write failures are logged and
// swallowed; the in-memory result of the current operation is returned
// to the caller regardless. Callers must hold the store lock.
func (s *Store[R]) saveCustom(customs []R) {
	if customs == nil {
		customs = []R{}
	}
	data, err := json.Marshal(customs)
	if err != nil {
		s.log.Warn("Error encoding custom records", "kind", s.kind.Name, "error", err)
		return
	}
	if err := s.kv.Put(s.kind.StorageKey, data); err != nil {
		s.log.Warn("Error saving custom records, changes may not persist", "kind", s.kind.Name, "error", err)
	}
}

// mergeFields shallow-merges patch into r through a JSON round trip:
// unknown patch fields are dropped, reserved identity fields are
// ignored, and every remaining field replaces the record's value
// wholesale.
func mergeFields[R any](r R, patch map[string]any) (R, error) {
	var zero R

	raw, err := json.Marshal(r)
	if err != nil {
		return zero, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return zero, err
	}

	for k, v := range patch {
		if _, reserved := reservedFields[k]; reserved {
			continue
		}
		fields[k] = v
	}

	merged, err := json.Marshal(fields)
	if err != nil {
		return zero, err
	}
	var out R
	if err := json.Unmarshal(merged, &out); err != nil {
		return zero, err
	}
	return out, nil
}
