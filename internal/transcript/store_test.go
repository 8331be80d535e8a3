package transcript

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentview/internal/display"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "transcript.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStorePersistsPanelsPerTurn(t *testing.T) {
	store := openStore(t)

	turnID := store.BeginTurn("what's the weather?")
	require.NotEmpty(t, turnID)

	store.FinalizePanel(display.Panel{Title: "User Message", Content: "what's the weather?", Style: display.StyleUser})
	store.FinalizePanel(display.Panel{Title: "Response - agent", Subtitle: "tokens in=10", Content: "sunny", Style: display.StyleResponse})
	require.NoError(t, store.Err())

	var prompt string
	row := store.db.Read().QueryRow("SELECT prompt FROM turns WHERE id = ?", turnID)
	require.NoError(t, row.Scan(&prompt))
	assert.Equal(t, "what's the weather?", prompt)

	rows, err := store.db.Read().Query("SELECT seq, style, title, subtitle, content FROM panels WHERE turn_id = ? ORDER BY seq", turnID)
	require.NoError(t, err)
	defer rows.Close()

	type panelRow struct {
		seq                             int
		style, title, subtitle, content string
	}
	var got []panelRow
	for rows.Next() {
		var p panelRow
		require.NoError(t, rows.Scan(&p.seq, &p.style, &p.title, &p.subtitle, &p.content))
		got = append(got, p)
	}
	require.NoError(t, rows.Err())

	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].seq)
	assert.Equal(t, "user", got[0].style)
	assert.Equal(t, 2, got[1].seq)
	assert.Equal(t, "tokens in=10", got[1].subtitle)
	assert.Equal(t, "sunny", got[1].content)
}

func TestStoreIgnoresPanelsBeforeFirstTurn(t *testing.T) {
	store := openStore(t)

	store.FinalizePanel(display.Panel{Title: "orphan", Style: display.StyleResponse})
	require.NoError(t, store.Err())

	var count int
	row := store.db.Read().QueryRow("SELECT COUNT(*) FROM panels")
	require.NoError(t, row.Scan(&count))
	assert.Zero(t, count)
}

func TestStoreLiveUpdatesAreNoOps(t *testing.T) {
	store := openStore(t)
	store.BeginTurn("prompt")

	store.UpdateLive("partial", "Response", "")
	store.ClearLive()
	require.NoError(t, store.Err())

	var count int
	row := store.db.Read().QueryRow("SELECT COUNT(*) FROM panels")
	require.NoError(t, row.Scan(&count))
	assert.Zero(t, count)
}
