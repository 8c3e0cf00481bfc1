package ledger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/techbar/internal/store"
	"github.com/roach88/techbar/internal/testutil"
)

func createTestLedger(t *testing.T) (*Ledger, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	l := New(s,
		WithClock(testutil.NewSteppingClock(testutil.Epoch, 0)),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return l, s
}

func record(id string, prices ...string) Record {
	var items []Item
	for i, p := range prices {
		items = append(items, Item{
			ID:    ID(id + "-" + string(rune('a'+i))),
			Name:  "Nachos",
			Price: decimal.RequireFromString(p),
		})
	}
	return Record{ID: ID(id), Items: items, Total: Sum(items)}
}

func TestSaveStampsDate(t *testing.T) {
	l, _ := createTestLedger(t)
	ctx := t.Context()

	require.NoError(t, l.Save(ctx, record("o1", "120")))
	require.NoError(t, l.Save(ctx, Record{ID: "o2", Date: "ayer"}))

	orders, err := l.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "15/10/2026, 20:00:00", orders[0].Date)
	assert.Equal(t, "ayer", orders[1].Date, "explicit date kept")
	assert.Equal(t, ID("o1"), orders[0].ID)
	assert.True(t, decimal.NewFromInt(120).Equal(orders[0].Total))
}

func TestEmptyCollections(t *testing.T) {
	l, _ := createTestLedger(t)

	orders, err := l.Orders(t.Context())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)

	history, err := l.History(t.Context())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDeleteMovesToHistory(t *testing.T) {
	l, s := createTestLedger(t)
	ctx := t.Context()

	require.NoError(t, l.Save(ctx, record("o1", "100")))
	require.NoError(t, l.Save(ctx, record("o2", "50", "25.5")))

	ok, err := l.Delete(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, ok)

	orders, err := l.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, ID("o2"), orders[0].ID)

	history, err := l.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, ID("o1"), history[0].ID)
	assert.Equal(t, "15/10/2026, 20:02:00", history[0].DeletedAt)
	assert.Equal(t, "15/10/2026, 20:00:00", history[0].Date)

	rev, err := s.Revision(ctx, KeyHistory)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rev)
}

func TestDeleteUnknownIsNoop(t *testing.T) {
	l, s := createTestLedger(t)
	ctx := t.Context()
	require.NoError(t, l.Save(ctx, record("o1", "10")))

	ok, err := l.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	orders, err := l.Orders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	_, exists, err := s.Get(ctx, KeyHistory)
	require.NoError(t, err)
	assert.False(t, exists, "no history snapshot written")
}

func TestHistoryNewestFirst(t *testing.T) {
	l, _ := createTestLedger(t)
	ctx := t.Context()
	for _, id := range []ID{"o1", "o2", "o3"} {
		require.NoError(t, l.Save(ctx, record(string(id), "1")))
	}
	for _, id := range []ID{"o2", "o1", "o3"} {
		ok, err := l.Delete(ctx, id)
		require.NoError(t, err)
		require.True(t, ok)
	}

	history, err := l.History(ctx)
	require.NoError(t, err)
	var ids []ID
	for _, r := range history {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []ID{"o3", "o1", "o2"}, ids)
}

func TestClearHistory(t *testing.T) {
	l, _ := createTestLedger(t)
	ctx := t.Context()
	require.NoError(t, l.Save(ctx, record("o1", "1")))
	_, err := l.Delete(ctx, "o1")
	require.NoError(t, err)

	for _, wrong := range []string{"", "4325", "43251 ", "00000"} {
		assert.ErrorIs(t, l.ClearHistory(ctx, wrong), ErrSecretMismatch, "%q", wrong)
	}
	history, err := l.History(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 1, "wrong secret leaves history intact")

	require.NoError(t, l.ClearHistory(ctx, HistorySecret))
	history, err = l.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestCorruptCollectionReadsEmpty(t *testing.T) {
	l, s := createTestLedger(t)
	ctx := t.Context()
	require.NoError(t, s.Put(ctx, KeyOrders, "{not json"))
	require.NoError(t, s.Put(ctx, KeyHistory, `{"id":1}`))

	orders, err := l.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	history, err := l.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	// Saving over a corrupt collection starts it afresh.
	require.NoError(t, l.Save(ctx, record("o1", "5")))
	orders, err = l.Orders(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestLegacyNumericRecords(t *testing.T) {
	l, s := createTestLedger(t)
	ctx := t.Context()
	legacy := `[{"id":1718000000000,"items":[{"id":1718000000001,"name":"Bottle Absolut","price":1250.5,"customizations":["Con: 2x Piña, 1x Mineral"]}],"total":1250.5,"date":"10/6/2024, 9:13:20 p.m."}]`
	require.NoError(t, s.Put(ctx, KeyOrders, legacy))

	orders, err := l.Orders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, ID("1718000000000"), orders[0].ID)
	assert.Equal(t, ID("1718000000001"), orders[0].Items[0].ID)
	assert.True(t, decimal.RequireFromString("1250.5").Equal(orders[0].Total))

	ok, err := l.Delete(ctx, "1718000000000")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPersistedShape(t *testing.T) {
	l, s := createTestLedger(t)
	ctx := t.Context()
	rec := record("o1", "99.90")
	rec.Items[0].Customizations = []string{"Sin: cebolla"}
	require.NoError(t, l.Save(ctx, rec))

	raw, ok, err := s.Get(ctx, KeyOrders)
	require.NoError(t, err)
	require.True(t, ok)

	var generic []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &generic))
	require.Len(t, generic, 1)
	assert.ElementsMatch(t, []string{"id", "items", "total", "date"}, keys(generic[0]))
	item := generic[0]["items"].([]any)[0].(map[string]any)
	assert.ElementsMatch(t, []string{"id", "name", "price", "customizations"}, keys(item))
}

func TestWithDateLayout(t *testing.T) {
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	l := New(s, WithClock(testutil.NewSteppingClock(testutil.Epoch, 0)), WithDateLayout("2006-01-02 15:04"))
	assert.Equal(t, "2026-10-15 20:00", l.Stamp())

	l = New(s, WithDateLayout(""))
	assert.Equal(t, DefaultDateLayout, l.layout, "empty layout keeps the default")
}

type failingKV struct{ store.KV }

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, assert.AnError
}

func TestStoreErrorsPropagate(t *testing.T) {
	l := New(failingKV{})
	_, err := l.Orders(t.Context())
	assert.ErrorIs(t, err, assert.AnError)

	err = l.Save(t.Context(), record("o1", "1"))
	assert.ErrorIs(t, err, assert.AnError)

	_, err = l.Delete(t.Context(), "o1")
	assert.ErrorIs(t, err, assert.AnError)
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
