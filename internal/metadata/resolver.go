package metadata

import "context"

// SummaryResolver produces a best-effort book summary for an ISBN.
// Implementations return "" when nothing can be found and never fail.
type SummaryResolver interface {
	FetchSummary(ctx context.Context, isbn string) string
}

var _ SummaryResolver = (*OpenLibraryClient)(nil)

// NoopResolver never returns a summary. Used when lookups are disabled.
type NoopResolver struct{}

func (NoopResolver) FetchSummary(context.Context, string) string {
	return ""
}
