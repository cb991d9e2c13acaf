package server

import (
	"testing"
	"time"

	"github.com/matst80/listing-filters/pkg/filter"
	"github.com/matst80/listing-filters/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryEvictsIdleSessions(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(nil)
	r.now = func() time.Time { return now }

	stale, _ := r.Create(filter.Sold)
	now = now.Add(time.Hour)
	fresh, _ := r.Create("Archived")
	now = now.Add(30 * time.Minute)

	assert.Equal(t, 1, r.Evict(time.Hour))
	_, err := r.Get(stale)
	assert.ErrorIs(t, err, errSessionNotFound)
	session, err := r.Get(fresh)
	require.NoError(t, err)
	assert.Equal(t, filter.ForSale, session.State().Status)
}

func TestRegistrySnapshotRoundTrip(t *testing.T) {
	r := NewRegistry(nil)
	id, session := r.Create(filter.ForLease)
	session.Dispatch(filter.SetCities{Cities: []string{"Toronto"}})
	session.Dispatch(filter.SetBeds{Patch: filter.RangePatch{Preset: filter.To("3+")}})

	snaps, err := r.Snapshot()
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, "For Lease", snaps[0].DefaultStatus)

	dir := t.TempDir()
	disk := storage.NewDiskStorage(dir)
	require.NoError(t, disk.SaveSessions(snaps))
	loaded, err := disk.LoadSessions()
	require.NoError(t, err)

	other := NewRegistry(nil)
	assert.Zero(t, other.Load(loaded))
	restored, err := other.Get(id)
	require.NoError(t, err)
	assert.Equal(t, session.State(), restored.State())
	assert.Equal(t, 1, other.Len())
}

func TestRegistryLoadBrokenSnapshot(t *testing.T) {
	r := NewRegistry(nil)
	skipped := r.Load([]storage.SessionSnapshot{
		{ID: "a", DefaultStatus: "Sold", State: []byte(`"nope"`)},
		{ID: "b", DefaultStatus: "Sold", State: []byte(`{}`)},
	})
	assert.Equal(t, 1, skipped)
	session, err := r.Get("a")
	require.NoError(t, err)
	assert.Equal(t, filter.DefaultState(filter.Sold), session.State())
}
