package app

import (
	"testing"

	"pv-intake/internal/domain"
)

func TestProjectZeroFallbacks(t *testing.T) {
	view := Project(domain.SummaryStats{})
	if view.TotalPatients != 0 || view.Completed != 0 || view.Pending != 0 {
		t.Fatalf("expected zero counts, got %+v", view)
	}
	if view.OverallProgress != "0.0%" {
		t.Fatalf("expected zero percentage, got %q", view.OverallProgress)
	}
}

func TestProjectFormatsPercentage(t *testing.T) {
	view := Project(domain.SummaryStats{
		TotalPatients:               12,
		CompletedPatients:           4,
		PendingPatients:             8,
		HighRiskPatients:            2,
		LowRiskPatients:             10,
		OverallCompletionPercentage: 33.333,
	})
	if view.OverallProgress != "33.3%" {
		t.Fatalf("expected 33.3%%, got %q", view.OverallProgress)
	}
	if view.TotalPatients != 12 || view.HighRisk != 2 {
		t.Fatalf("counts not carried over: %+v", view)
	}
}

func TestFormatPercentClampsNegative(t *testing.T) {
	if got := FormatPercent(-5); got != "0.0%" {
		t.Fatalf("expected clamp to zero, got %q", got)
	}
}

func TestQuestionPosition(t *testing.T) {
	if got := QuestionPosition(0, 3); got != "Question 1 of 3" {
		t.Fatalf("got %q", got)
	}
	if got := QuestionPosition(2, 3); got != "Question 3 of 3" {
		t.Fatalf("got %q", got)
	}
}

func TestSubjectProgress(t *testing.T) {
	got := SubjectProgress(domain.SubjectInfo{
		AnsweredCount:        1,
		TotalQuestions:       3,
		CompletionPercentage: 33.3,
	})
	if got != "1/3 (33.3%)" {
		t.Fatalf("got %q", got)
	}
}
