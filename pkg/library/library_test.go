package library

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ssargent/vsvdb/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { lib.Close() })
	return lib
}

func mustRecord(t *testing.T, payload string) codec.Record {
	t.Helper()
	r, err := codec.ParseHex(payload)
	require.NoError(t, err)
	return r
}

func TestLibrary_SaveAndLatest(t *testing.T) {
	lib := openTestLibrary(t)

	rev, err := lib.Save("living-room", mustRecord(t, "480376825e6d95"))
	require.NoError(t, err)
	assert.Equal(t, "living-room", rev.Name)
	assert.Equal(t, "480376825e6d95", rev.Hex)
	assert.False(t, rev.SavedAt.IsZero())

	latest, err := lib.Latest("living-room")
	require.NoError(t, err)
	assert.Equal(t, rev.ID, latest.ID)
	assert.Equal(t, rev.Record, latest.Record)
	assert.Equal(t, rev.SavedAt, latest.SavedAt)
}

func TestLibrary_HistoryIsOldestFirst(t *testing.T) {
	lib := openTestLibrary(t)

	var saved []string
	for _, v := range codec.LLDVVectors {
		_, err := lib.Save("tv", mustRecord(t, v.Input))
		require.NoError(t, err)
		saved = append(saved, v.Input)
	}

	revs, err := lib.History("tv")
	require.NoError(t, err)
	require.Len(t, revs, len(saved))
	for i, rev := range revs {
		assert.Equal(t, saved[i], rev.Hex)
		if i > 0 {
			assert.True(t, rev.SavedAt.After(revs[i-1].SavedAt))
		}
	}

	latest, err := lib.Latest("tv")
	require.NoError(t, err)
	assert.Equal(t, saved[len(saved)-1], latest.Hex)
}

func TestLibrary_NamesDoNotOverlap(t *testing.T) {
	lib := openTestLibrary(t)

	// "tv" must not pick up revisions of "tv2"
	_, err := lib.Save("tv", mustRecord(t, "480376825e6d95"))
	require.NoError(t, err)
	_, err = lib.Save("tv2", mustRecord(t, "4403609248458f"))
	require.NoError(t, err)

	revs, err := lib.History("tv")
	require.NoError(t, err)
	require.Len(t, revs, 1)
	assert.Equal(t, "480376825e6d95", revs[0].Hex)
}

func TestLibrary_List(t *testing.T) {
	lib := openTestLibrary(t)

	names, err := lib.List()
	require.NoError(t, err)
	assert.Empty(t, names)

	for _, name := range []string{"projector", "den", "projector", "bedroom"} {
		_, err := lib.Save(name, mustRecord(t, "480376825e6d95"))
		require.NoError(t, err)
	}

	names, err = lib.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"bedroom", "den", "projector"}, names)
}

func TestLibrary_Delete(t *testing.T) {
	lib := openTestLibrary(t)

	for i := 0; i < 3; i++ {
		_, err := lib.Save("den", mustRecord(t, "480376825e6d95"))
		require.NoError(t, err)
	}
	_, err := lib.Save("denver", mustRecord(t, "4403609248458f"))
	require.NoError(t, err)

	require.NoError(t, lib.Delete("den"))

	_, err = lib.Latest("den")
	assert.ErrorIs(t, err, ErrNotFound)

	names, err := lib.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"denver"}, names)

	assert.ErrorIs(t, lib.Delete("den"), ErrNotFound)
}

func TestLibrary_NotFound(t *testing.T) {
	lib := openTestLibrary(t)

	_, err := lib.Latest("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = lib.History("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLibrary_InvalidNames(t *testing.T) {
	lib := openTestLibrary(t)
	rec := mustRecord(t, "480376825e6d95")

	for _, name := range []string{"", "   ", "a/b"} {
		t.Run(fmt.Sprintf("%q", name), func(t *testing.T) {
			_, err := lib.Save(name, rec)
			assert.ErrorIs(t, err, ErrInvalidName)

			_, err = lib.Latest(name)
			assert.ErrorIs(t, err, ErrInvalidName)

			assert.ErrorIs(t, lib.Delete(name), ErrInvalidName)
		})
	}
}

func TestLibrary_Reopen(t *testing.T) {
	dir := t.TempDir()

	lib, err := Open(dir, nil)
	require.NoError(t, err)
	_, err = lib.Save("den", mustRecord(t, "48039e5898aa5c"))
	require.NoError(t, err)
	require.NoError(t, lib.Close())

	lib, err = Open(dir, nil)
	require.NoError(t, err)
	defer lib.Close()

	rev, err := lib.Latest("den")
	require.NoError(t, err)
	assert.Equal(t, "48039e5898aa5c", rev.Hex)
}

func TestLibrary_ConcurrentSaves(t *testing.T) {
	lib := openTestLibrary(t)
	rec := mustRecord(t, "480376825e6d95")

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := lib.Save("shared", rec)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	revs, err := lib.History("shared")
	require.NoError(t, err)
	assert.Len(t, revs, n)
}
