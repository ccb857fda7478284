package events

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBus_PublishToTypeSubscriber(t *testing.T) {
	bus := NewBus(nil, testLogger())
	defer bus.Close()

	ch := bus.Subscribe(TypeImportPhase, 4)
	bus.Publish(NewImportPhaseChanged("imp-1", "downloading"))

	select {
	case e := <-ch:
		phase, ok := e.(*ImportPhaseChanged)
		require.True(t, ok)
		assert.Equal(t, "downloading", phase.Phase)
		assert.Equal(t, "imp-1", phase.EntityID())
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}
}

func TestBus_AllSubscriberSeesEverything(t *testing.T) {
	bus := NewBus(nil, testLogger())
	defer bus.Close()

	all := bus.SubscribeAll(8)
	bus.Publish(NewScrapeStarted("https://example.com/v/1"))
	bus.Publish(NewImportFailed("imp-1", "boom"))

	got := []string{(<-all).EventType(), (<-all).EventType()}
	assert.Equal(t, []string{TypeScrapeStarted, TypeImportFailed}, got)
}

func TestBus_FullSubscriberDropsEvent(t *testing.T) {
	bus := NewBus(nil, testLogger())
	defer bus.Close()

	ch := bus.Subscribe(TypeImportLog, 1)
	bus.Publish(NewImportLog("imp-1", "info", "one"))
	bus.Publish(NewImportLog("imp-1", "info", "two")) // dropped, channel full

	first := <-ch
	assert.Equal(t, "one", first.(*ImportLog).Message)
	select {
	case e := <-ch:
		t.Fatalf("unexpected second event: %v", e)
	default:
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus(nil, testLogger())
	defer bus.Close()

	ch := bus.Subscribe(TypeImportPhase, 1)
	bus.Unsubscribe(ch)

	// Channel is closed after unsubscribe.
	_, open := <-ch
	assert.False(t, open)

	// Publishing afterwards must not panic.
	bus.Publish(NewImportPhaseChanged("imp-1", "creating"))
}

func TestBus_PublishAfterClose(t *testing.T) {
	bus := NewBus(nil, testLogger())
	require.NoError(t, bus.Close())
	bus.Publish(NewScrapeStarted("https://example.com")) // no panic
}

func TestEventLog_AppendAndSince(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := NewEventLog(db)
	require.NoError(t, log.Init())

	bus := NewBus(log, testLogger())
	defer bus.Close()

	bus.Publish(NewImportCompleted("imp-1", "42", false))

	raw, err := log.Since(time.Now().Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, TypeImportCompleted, raw[0].EventType)
	assert.Equal(t, "imp-1", raw[0].EntityID)
	assert.Contains(t, raw[0].Payload, `"record_id":"42"`)
}
