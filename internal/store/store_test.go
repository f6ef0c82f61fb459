package store

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lorescape/waymark/internal/cache"
	"github.com/lorescape/waymark/internal/config"
	"github.com/lorescape/waymark/internal/kv"
	"github.com/lorescape/waymark/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMarkerStore(t *testing.T) *Store[model.MarkerRecord] {
	t.Helper()
	kvs, err := kv.Open(config.StorageConfig{Type: "file", Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { kvs.Close() })
	return New(Markers(), kvs, cache.NewIDRegistry(), testLogger())
}

func newRouteStore(t *testing.T) *Store[model.RouteRecord] {
	t.Helper()
	kvs, err := kv.Open(config.StorageConfig{Type: "file", Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { kvs.Close() })
	return New(Routes(), kvs, cache.NewIDRegistry(), testLogger())
}

func TestAddAssignsIdentity(t *testing.T) {
	s := newMarkerStore(t)

	added := s.Add(model.MarkerRecord{
		Name:     "Watchtower",
		Type:     model.MarkerFort,
		Location: model.Point{41.2, -3.5},
	})

	assert.True(t, strings.HasPrefix(added.ID, "marker-fort-"), "id %q should embed kind and type", added.ID)
	assert.True(t, added.IsCustom)
	assert.Greater(t, added.CreatedAt, int64(0))
	assert.Equal(t, "Watchtower", added.Name)

	customs := s.Custom()
	require.Len(t, customs, 1)
	assert.Equal(t, added, customs[0])
}

func TestAddDefaultsUnknownType(t *testing.T) {
	s := newMarkerStore(t)

	added := s.Add(model.MarkerRecord{Name: "Somewhere", Location: model.Point{1, 2}})
	assert.Equal(t, model.MarkerUnknown, added.Type)
	assert.True(t, strings.HasPrefix(added.ID, "marker-unknown-"))
}

func TestAddRouteAppliesDefaults(t *testing.T) {
	s := newRouteStore(t)

	added := s.Add(model.RouteRecord{
		Name: "Shortcut",
		Path: []model.Point{{0, 0}, {1, 1}},
	})

	assert.Equal(t, model.RouteCustom, added.Type)
	assert.Equal(t, model.DefaultRouteColor, added.Color)
	assert.Equal(t, model.DefaultRouteWidth, added.Width)
}

func TestIDsUniqueUnderRapidAdds(t *testing.T) {
	s := newMarkerStore(t)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		added := s.Add(model.MarkerRecord{Name: fmt.Sprintf("m%d", i), Type: model.MarkerCity})
		assert.False(t, seen[added.ID], "duplicate id %s", added.ID)
		seen[added.ID] = true
	}
}

func TestAllOrdersBuiltinFirst(t *testing.T) {
	s := newMarkerStore(t)

	first := s.Add(model.MarkerRecord{Name: "First", Type: model.MarkerCave})
	second := s.Add(model.MarkerRecord{Name: "Second", Type: model.MarkerTown})

	all := s.All()
	require.Len(t, all, s.BuiltinCount()+2)
	for _, m := range all[:s.BuiltinCount()] {
		assert.False(t, m.IsCustom)
	}
	assert.Equal(t, first.ID, all[s.BuiltinCount()].ID)
	assert.Equal(t, second.ID, all[s.BuiltinCount()+1].ID)
}

func TestUpdateMergesFields(t *testing.T) {
	s := newMarkerStore(t)
	added := s.Add(model.MarkerRecord{Name: "Old Name", Type: model.MarkerVillage, Description: "keep me"})

	ok := s.Update(added.ID, map[string]any{"name": "New Name", "major": true})
	require.True(t, ok)

	customs := s.Custom()
	require.Len(t, customs, 1)
	assert.Equal(t, "New Name", customs[0].Name)
	assert.True(t, customs[0].Major)
	assert.Equal(t, "keep me", customs[0].Description, "untouched fields survive")
}

func TestUpdateProtectsIdentityFields(t *testing.T) {
	s := newMarkerStore(t)
	added := s.Add(model.MarkerRecord{Name: "Anchor", Type: model.MarkerPortal})

	ok := s.Update(added.ID, map[string]any{
		"id":        "marker-portal-0-forged000",
		"isCustom":  false,
		"createdAt": 1,
		"name":      "Renamed",
	})
	require.True(t, ok)

	customs := s.Custom()
	require.Len(t, customs, 1)
	assert.Equal(t, added.ID, customs[0].ID)
	assert.True(t, customs[0].IsCustom)
	assert.Equal(t, added.CreatedAt, customs[0].CreatedAt)
	assert.Equal(t, "Renamed", customs[0].Name)
}

func TestUpdateUnknownId(t *testing.T) {
	s := newMarkerStore(t)
	assert.False(t, s.Update("marker-city-0-missing00", map[string]any{"name": "x"}))
}

func TestUpdateBuiltinRejected(t *testing.T) {
	s := newMarkerStore(t)
	builtinID := s.All()[0].ID
	assert.False(t, s.Update(builtinID, map[string]any{"name": "hijack"}))
	assert.NotEqual(t, "hijack", s.All()[0].Name)
}

func TestDeleteRemovesOnlyTarget(t *testing.T) {
	s := newMarkerStore(t)
	a := s.Add(model.MarkerRecord{Name: "A", Type: model.MarkerCity})
	b := s.Add(model.MarkerRecord{Name: "B", Type: model.MarkerCity})

	assert.True(t, s.Delete(a.ID))
	customs := s.Custom()
	require.Len(t, customs, 1)
	assert.Equal(t, b.ID, customs[0].ID)
}

func TestDeleteMissingIsNoop(t *testing.T) {
	rec := &recordingKV{}
	s := New(Markers(), rec, cache.NewIDRegistry(), testLogger())

	assert.False(t, s.Delete("marker-city-0-missing00"))
	assert.Zero(t, rec.puts, "a failed delete must not rewrite storage")
}

func TestClearAllIdempotent(t *testing.T) {
	s := newMarkerStore(t)
	s.Add(model.MarkerRecord{Name: "A", Type: model.MarkerCity})
	s.Add(model.MarkerRecord{Name: "B", Type: model.MarkerCave})

	s.ClearAll()
	assert.Empty(t, s.Custom())
	assert.Len(t, s.All(), s.BuiltinCount())

	s.ClearAll()
	assert.Empty(t, s.Custom())
}

func TestCorruptStorageDegradesToEmpty(t *testing.T) {
	rec := &recordingKV{data: map[string][]byte{"custom-markers": []byte("{not json")}}
	s := New(Markers(), rec, cache.NewIDRegistry(), testLogger())

	assert.Empty(t, s.Custom())
	assert.Len(t, s.All(), s.BuiltinCount())

	// The store stays usable; the next write replaces the corrupt blob.
	added := s.Add(model.MarkerRecord{Name: "Fresh", Type: model.MarkerCity})
	customs := s.Custom()
	require.Len(t, customs, 1)
	assert.Equal(t, added.ID, customs[0].ID)
}

func TestStorageReadErrorDegradesToEmpty(t *testing.T) {
	rec := &recordingKV{failGets: true}
	s := New(Markers(), rec, cache.NewIDRegistry(), testLogger())

	assert.Empty(t, s.Custom())
	assert.Len(t, s.All(), s.BuiltinCount())
}

func TestStorageWriteErrorKeepsResult(t *testing.T) {
	rec := &recordingKV{failPuts: true}
	s := New(Markers(), rec, cache.NewIDRegistry(), testLogger())

	added := s.Add(model.MarkerRecord{Name: "Ephemeral", Type: model.MarkerCity})
	assert.NotEmpty(t, added.ID, "the caller still gets a stamped record")
}

// recordingKV is an in-memory kv.Store with switchable failure modes.
type recordingKV struct {
	data     map[string][]byte
	puts     int
	failGets bool
	failPuts bool
}

func (r *recordingKV) Get(key string) ([]byte, error) {
	if r.failGets {
		return nil, fmt.Errorf("get %s: backend unavailable", key)
	}
	return r.data[key], nil
}

func (r *recordingKV) Put(key string, value []byte) error {
	r.puts++
	if r.failPuts {
		return fmt.Errorf("put %s: backend unavailable", key)
	}
	if r.data == nil {
		r.data = map[string][]byte{}
	}
	r.data[key] = value
	return nil
}

func (r *recordingKV) Delete(key string) error {
	delete(r.data, key)
	return nil
}

func (r *recordingKV) Close() error { return nil }
