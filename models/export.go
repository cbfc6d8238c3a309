package models

import (
	"strconv"
	"strings"

	"github.com/OpinaApp/opina-backend/types"
)

// csvHeader mirrors the column projection of the admin export. The column
// names are part of the export contract consumed by existing tooling.
var csvHeader = []string{"ID", "Type", "Reference ID", "Response", "Created At"}

// ComputeAggregates counts responses by type. Pure.
func ComputeAggregates(responses []*types.FeedbackResponse) types.DashboardStats {
	var stats types.DashboardStats
	for _, resp := range responses {
		switch resp.Type {
		case types.CategorySuggestion:
			stats.SuggestionCount++
		case types.CategoryComplaint:
			stats.ComplaintCount++
		}
	}
	return stats
}

// ResponsesCSV renders responses as the admin export format: a header line,
// then one line per row with every field double-quoted and created_at as a
// calendar date. An empty input produces an empty header line and nothing
// else — the degenerate shape existing consumers already handle.
func ResponsesCSV(responses []*types.FeedbackResponse) string {
	if len(responses) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))

	for _, resp := range responses {
		fields := []string{
			strconv.FormatInt(resp.ID, 10),
			string(resp.Type),
			strconv.FormatInt(resp.ReferenceID, 10),
			resp.Response,
			resp.CreatedAt.Format("2006-01-02"),
		}
		b.WriteByte('\n')
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return b.String()
}
