package workflows

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kerrors "github.com/PolarWolf314/shroud/internal/errors"
	"github.com/PolarWolf314/shroud/internal/history"
)

func seededStore(t *testing.T) *history.JSONFile {
	t.Helper()
	store := history.NewJSONFile(filepath.Join(t.TempDir(), "history.json"))
	for _, r := range []history.Record{
		{OriginalName: "Budget.xlsx", EncryptedName: "AAAA1111"},
		{OriginalName: "notes.txt", EncryptedName: "BBBB2222"},
		{OriginalName: "photo.JPG", EncryptedName: "CCCC3333"},
		{OriginalName: "budget-old.xlsx", EncryptedName: "DDDD4444"},
	} {
		require.NoError(t, store.Append(r))
	}
	return store
}

func names(records []history.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.OriginalName)
	}
	return out
}

func TestHistory_AllRecords(t *testing.T) {
	result, err := History(context.Background(), HistoryOptions{Store: seededStore(t)})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, []string{"Budget.xlsx", "notes.txt", "photo.JPG", "budget-old.xlsx"}, names(result.Records))
}

func TestHistory_Filters(t *testing.T) {
	tests := []struct {
		name string
		opts HistoryOptions
		want []string
	}{
		{"search is case-insensitive", HistoryOptions{Search: "BUDGET"}, []string{"Budget.xlsx", "budget-old.xlsx"}},
		{"search matches identifier", HistoryOptions{Search: "cccc"}, []string{"photo.JPG"}},
		{"no match", HistoryOptions{Search: "zzz"}, []string{}},
		{"search ignores surrounding spaces", HistoryOptions{Search: "  budget "}, []string{"Budget.xlsx", "budget-old.xlsx"}},
		{"blank search keeps everything", HistoryOptions{Search: "   "}, []string{"Budget.xlsx", "notes.txt", "photo.JPG", "budget-old.xlsx"}},
		{"reverse", HistoryOptions{Reverse: true}, []string{"budget-old.xlsx", "photo.JPG", "notes.txt", "Budget.xlsx"}},
		{"limit", HistoryOptions{Limit: 2}, []string{"Budget.xlsx", "notes.txt"}},
		{"latest two", HistoryOptions{Limit: 2, Reverse: true}, []string{"budget-old.xlsx", "photo.JPG"}},
		{"limit above total", HistoryOptions{Limit: 10}, []string{"Budget.xlsx", "notes.txt", "photo.JPG", "budget-old.xlsx"}},
	}

	store := seededStore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.Store = store
			result, err := History(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(result.Records))
			assert.Equal(t, 4, result.Total)
		})
	}
}

func TestHistory_MissingLog(t *testing.T) {
	store := history.NewJSONFile(filepath.Join(t.TempDir(), "none.json"))

	result, err := History(context.Background(), HistoryOptions{Store: store})
	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.Empty(t, result.Records)
}

func TestHistory_MalformedLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("oops"), 0o644))

	_, err := History(context.Background(), HistoryOptions{Store: history.NewJSONFile(path)})
	assert.ErrorIs(t, err, kerrors.ErrInvalidHistory)
}
