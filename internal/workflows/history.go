package workflows

import (
	"context"
	"strings"

	"github.com/PolarWolf314/shroud/internal/history"
)

// HistoryOptions configures the history workflow.
type HistoryOptions struct {
	// Store is the history log to read.
	Store history.Store

	// Search keeps records whose original or encrypted name contains it,
	// ignoring case.
	Search string

	// Limit is the maximum number of records to return. 0 means no limit.
	Limit int

	// Reverse orders records from most recent to oldest when true.
	Reverse bool
}

// HistoryResult contains the outcome of a history query.
type HistoryResult struct {
	// Records are the matching records.
	Records []history.Record

	// Total is the number of records in the log before filtering.
	Total int
}

// History reads and filters the history log. A log that does not exist
// yet yields an empty result.
func History(ctx context.Context, opts HistoryOptions) (*HistoryResult, error) {
	records, err := opts.Store.Records()
	if err != nil {
		return nil, err
	}

	result := &HistoryResult{Total: len(records)}

	filtered := records
	if opts.Search != "" {
		filtered = filterBySearch(filtered, opts.Search)
	}

	if opts.Reverse {
		reversed := make([]history.Record, len(filtered))
		for i, r := range filtered {
			reversed[len(filtered)-1-i] = r
		}
		filtered = reversed
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}

	result.Records = filtered
	return result, nil
}

func filterBySearch(records []history.Record, query string) []history.Record {
	query = strings.ToLower(strings.TrimSpace(query))
	filtered := make([]history.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.OriginalName), query) ||
			strings.Contains(strings.ToLower(r.EncryptedName), query) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
