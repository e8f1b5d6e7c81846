package app

import (
	"fmt"

	"pv-intake/internal/domain"
)

// ProgressView is the display-ready projection of a summary snapshot. All
// screens render the same fields; absent server values fall back to zero.
type ProgressView struct {
	TotalPatients   int
	Completed       int
	Pending         int
	HighRisk        int
	LowRisk         int
	OverallProgress string
}

// Project turns a raw summary snapshot into display fields. Pure function,
// no caching: callers hold only the latest snapshot.
func Project(stats domain.SummaryStats) ProgressView {
	return ProgressView{
		TotalPatients:   stats.TotalPatients,
		Completed:       stats.CompletedPatients,
		Pending:         stats.PendingPatients,
		HighRisk:        stats.HighRiskPatients,
		LowRisk:         stats.LowRiskPatients,
		OverallProgress: FormatPercent(stats.OverallCompletionPercentage),
	}
}

// FormatPercent renders a completion ratio the way the screens show it:
// one decimal place, trailing percent sign, never negative.
func FormatPercent(pct float64) string {
	if pct < 0 {
		pct = 0
	}
	return fmt.Sprintf("%.1f%%", pct)
}

// QuestionPosition renders the per-question progress line, 1-based.
func QuestionPosition(index, total int) string {
	return fmt.Sprintf("Question %d of %d", index+1, total)
}

// SubjectProgress renders a subject's answered/total line with percentage.
func SubjectProgress(info domain.SubjectInfo) string {
	return fmt.Sprintf("%d/%d (%s)", info.AnsweredCount, info.TotalQuestions, FormatPercent(info.CompletionPercentage))
}
