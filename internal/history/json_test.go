package history

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farewatch/farewatch-cli/internal/model"
)

func tempStore(t *testing.T) *JSONStore {
	t.Helper()
	return NewJSON(filepath.Join(t.TempDir(), "history.json"))
}

func snap(date string, price int, carrier string) model.DailySnapshot {
	return model.DailySnapshot{Date: date, Price: price, Carrier: carrier}
}

func TestJSONStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.json")

	st := NewJSON(path)
	require.NoError(t, st.RecordSnapshot(ctx, "sf_weekend", snap("2026-02-01", 187, "Delta")))
	require.NoError(t, st.RecordSnapshot(ctx, "sf_weekend", snap("2026-02-02", 192, "Alaska")))
	require.NoError(t, st.RecordSnapshot(ctx, "desert_escape", snap("2026-02-02", 410, "Alaska")))
	require.NoError(t, st.Save(ctx))

	reloaded := NewJSON(path)

	series, err := reloaded.History(ctx, "sf_weekend")
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, snap("2026-02-01", 187, "Delta"), series[0])
	assert.Equal(t, snap("2026-02-02", 192, "Alaska"), series[1])

	latest, err := reloaded.Latest(ctx, "sf_weekend")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, snap("2026-02-02", 192, "Alaska"), *latest)

	ids, err := reloaded.RouteIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"desert_escape", "sf_weekend"}, ids)
}

func TestJSONStore_MissingFile(t *testing.T) {
	st := NewJSON(filepath.Join(t.TempDir(), "nope.json"))

	ids, err := st.RouteIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestJSONStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	st := NewJSON(path)

	ids, err := st.RouteIDs(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ids, "corrupt storage degrades to an empty store")
}

func TestJSONStore_SameDayReplaces(t *testing.T) {
	ctx := context.Background()
	st := tempStore(t)

	require.NoError(t, st.RecordSnapshot(ctx, "r", snap("2026-02-01", 200, "Delta")))
	require.NoError(t, st.RecordSnapshot(ctx, "r", snap("2026-02-01", 180, "Alaska")))

	series, err := st.History(ctx, "r")
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 180, series[0].Price)

	latest, err := st.Latest(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, 180, latest.Price)
}

func TestJSONStore_EmptyRouteID(t *testing.T) {
	err := tempStore(t).RecordSnapshot(context.Background(), "", snap("2026-02-01", 100, "Delta"))
	assert.Error(t, err)
}

func TestJSONStore_LatestUnknownRoute(t *testing.T) {
	latest, err := tempStore(t).Latest(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestJSONStore_WindowRecent(t *testing.T) {
	ctx := context.Background()
	st := tempStore(t)
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	// Spans fewer than 7 days: the window returns everything.
	for i, price := range []int{180, 190, 170} {
		day := now.AddDate(0, 0, -i).Format(model.DateLayout)
		require.NoError(t, st.RecordSnapshot(ctx, "r", snap(day, price, "Delta")))
	}

	windowed, err := st.Window(ctx, "r", 7)
	require.NoError(t, err)
	assert.Len(t, windowed, 3)
}

func TestJSONStore_WindowFiltersOld(t *testing.T) {
	ctx := context.Background()
	st := tempStore(t)
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	require.NoError(t, st.RecordSnapshot(ctx, "r", snap("2026-01-01", 300, "Delta")))
	require.NoError(t, st.RecordSnapshot(ctx, "r", snap("2026-02-09", 180, "Delta")))

	windowed, err := st.Window(ctx, "r", 7)
	require.NoError(t, err)
	require.Len(t, windowed, 1)
	assert.Equal(t, "2026-02-09", windowed[0].Date)
}

func TestJSONStore_WindowFallsBackToFullSeries(t *testing.T) {
	ctx := context.Background()
	st := tempStore(t)
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return now }

	require.NoError(t, st.RecordSnapshot(ctx, "r", snap("2026-01-01", 300, "Delta")))
	require.NoError(t, st.RecordSnapshot(ctx, "r", snap("2026-01-02", 280, "Alaska")))

	windowed, err := st.Window(ctx, "r", 7)
	require.NoError(t, err)
	assert.Len(t, windowed, 2, "stale history must fall back to the full series, never empty")
}

func TestJSONStore_WindowEmptyRoute(t *testing.T) {
	windowed, err := tempStore(t).Window(context.Background(), "ghost", 7)
	require.NoError(t, err)
	assert.Empty(t, windowed)
}

func TestJSONStore_SaveKeepsPriorStateOnDiskUntilRename(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "history.json")

	st := NewJSON(path)
	require.NoError(t, st.RecordSnapshot(ctx, "r", snap("2026-02-01", 187, "Delta")))
	require.NoError(t, st.Save(ctx))

	// No temp files left behind after a successful save.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "history.json", entries[0].Name())
}
