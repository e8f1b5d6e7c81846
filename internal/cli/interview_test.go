package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"pv-intake/internal/app"
	"pv-intake/internal/domain"
	"pv-intake/internal/infra/memory"
)

func localBinding(questions []domain.Question) app.Binding {
	return app.Binding{
		Lookup: func(ctx context.Context, identifier string) (domain.Lookup, error) {
			return domain.Lookup{
				Info:      domain.SubjectInfo{Initials: "J.D.", TotalQuestions: len(questions)},
				Questions: questions,
			}, nil
		},
		Submit: func(ctx context.Context, q domain.Question, answer string) (domain.SubmitResult, error) {
			return domain.SubmitResult{Message: "Response saved successfully!"}, nil
		},
		Complete: func(ctx context.Context, view app.SessionView) (string, error) {
			return "Thank you.", nil
		},
		BlankLookupMessage: "Please enter your PHN number",
	}
}

func TestRunInterviewWalksEveryQuestion(t *testing.T) {
	questions := []domain.Question{
		{ResponseID: "11", Text: "Did the reaction worsen?"},
		{ResponseID: "12", Text: "Did you consult a doctor?"},
	}
	engine := app.NewEngine(memory.NewSessionStore(), nil, localBinding(questions), time.Millisecond)
	engine.SetScheduler(func(d time.Duration, f func()) { f() })

	if err := engine.Lookup(context.Background(), "1234567890"); err != nil {
		t.Fatalf("lookup: %v", err)
	}

	in := bufio.NewScanner(strings.NewReader("yes\nno\n"))
	var out bytes.Buffer
	if err := runInterview(context.Background(), engine, in, &out); err != nil {
		t.Fatalf("runInterview: %v", err)
	}

	view := engine.CurrentView()
	if view.Status != domain.StatusCompleted {
		t.Fatalf("expected completed session, got %v", view.Status)
	}
	for _, want := range []string{
		"Question 1 of 2",
		"Did the reaction worsen?",
		"Question 2 of 2",
		"Did you consult a doctor?",
		"All questions completed! Thank you.",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("expected %q in output:\n%s", want, out.String())
		}
	}
	answers := view.Session.Questions
	if answers[0].PatientAnswer != "yes" || answers[1].PatientAnswer != "no" {
		t.Fatalf("unexpected recorded answers %+v", answers)
	}
}

func TestRunInterviewKeepsQuestionOnBlankAnswer(t *testing.T) {
	questions := []domain.Question{{ResponseID: "11", Text: "Did the reaction worsen?"}}
	engine := app.NewEngine(memory.NewSessionStore(), nil, localBinding(questions), time.Millisecond)
	engine.SetScheduler(func(d time.Duration, f func()) { f() })

	if err := engine.Lookup(context.Background(), "1234567890"); err != nil {
		t.Fatalf("lookup: %v", err)
	}

	// First line is blank, so the loop re-asks before accepting the answer.
	in := bufio.NewScanner(strings.NewReader("\nyes\n"))
	var out bytes.Buffer
	if err := runInterview(context.Background(), engine, in, &out); err != nil {
		t.Fatalf("runInterview: %v", err)
	}

	if !strings.Contains(out.String(), "Please provide an answer") {
		t.Fatalf("expected blank-answer feedback in output:\n%s", out.String())
	}
	if got := strings.Count(out.String(), "Did the reaction worsen?"); got != 2 {
		t.Fatalf("expected question re-asked, rendered %d times", got)
	}
	if engine.CurrentView().Status != domain.StatusCompleted {
		t.Fatalf("expected completed session")
	}
}
