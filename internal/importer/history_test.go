package importer_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/stashgrab/internal/importer"
	_ "modernc.org/sqlite"
)

func testHistory(t *testing.T) *importer.HistoryStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := importer.NewHistoryStore(db)
	require.NoError(t, store.Init())
	return store
}

func TestHistoryStore_AddAndList(t *testing.T) {
	store := testHistory(t)

	require.NoError(t, store.Add(&importer.HistoryEntry{
		ImportID: "imp-1",
		URL:      "https://example.com/a",
		Outcome:  importer.OutcomeImported,
		RecordID: "10",
	}))
	require.NoError(t, store.Add(&importer.HistoryEntry{
		ImportID: "imp-2",
		URL:      "https://example.com/b",
		Outcome:  importer.OutcomeFailed,
		Message:  "acquisition failed",
	}))
	require.NoError(t, store.Add(&importer.HistoryEntry{
		ImportID: "imp-3",
		URL:      "https://example.com/c",
		Outcome:  importer.OutcomeDegraded,
		RecordID: "pending:xyz",
	}))

	all, err := store.List(importer.HistoryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "imp-3", all[0].ImportID, "newest first")
	assert.False(t, all[0].CreatedAt.IsZero())

	failed, err := store.List(importer.HistoryFilter{Outcome: importer.OutcomeFailed})
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.Equal(t, "imp-2", failed[0].ImportID)
	assert.Equal(t, "acquisition failed", failed[0].Message)
}

func TestHistoryStore_ListLimit(t *testing.T) {
	store := testHistory(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Add(&importer.HistoryEntry{
			ImportID: "imp",
			URL:      "https://example.com",
			Outcome:  importer.OutcomeImported,
		}))
	}

	limited, err := store.List(importer.HistoryFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
