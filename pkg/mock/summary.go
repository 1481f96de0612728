package mock

import "log/slog"

// SummaryPrefixLen is the number of characters of the input kept in a summary.
const SummaryPrefixLen = 60

type SummaryResult struct {
	Status  string `json:"status"`
	Summary string `json:"summary"`
}

// SummarizeArticle fakes a summary by keeping the first SummaryPrefixLen
// characters of text. Characters are runes, so multi-byte text is never split.
func SummarizeArticle(text string) SummaryResult {
	slog.Info("Tool called", "tool", "summarize_article", "length", len(text))

	prefix := text
	if runes := []rune(text); len(runes) > SummaryPrefixLen {
		prefix = string(runes[:SummaryPrefixLen])
	}

	return SummaryResult{Status: StatusSuccess, Summary: "Summary: " + prefix + "..."}
}
