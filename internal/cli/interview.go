package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"pv-intake/internal/app"
	"pv-intake/internal/domain"
)

// runInterview walks the active session one question at a time: render,
// read an answer, submit, wait out the feedback delay, next question.
// Validation and submission failures keep the loop on the same question.
func runInterview(ctx context.Context, engine *app.Engine, in *bufio.Scanner, out io.Writer) error {
	views, cancel := engine.Subscribe()
	defer cancel()

	for {
		view := engine.CurrentView()
		if !view.HasSession {
			return nil
		}
		if view.Status == domain.StatusCompleted {
			if view.Feedback != "" {
				fmt.Fprintln(out, view.Feedback)
			}
			return nil
		}

		session := view.Session
		fmt.Fprintf(out, "\n%s\n", app.QuestionPosition(session.Index, len(session.Questions)))
		fmt.Fprintf(out, "%s\n> ", session.Questions[session.Index].Text)

		if !in.Scan() {
			return in.Err()
		}
		if err := engine.RecordDraft(in.Text()); err != nil {
			return err
		}

		beforeIndex := session.Index
		if err := engine.SubmitCurrentAnswer(ctx); err != nil {
			fmt.Fprintln(out, engine.Feedback())
			continue
		}
		fmt.Fprintln(out, engine.Feedback())

		if err := awaitAdvance(ctx, views, beforeIndex); err != nil {
			return err
		}
	}
}

// awaitAdvance blocks until the engine moves past index or the session
// completes; the pause is what keeps the per-answer feedback readable.
func awaitAdvance(ctx context.Context, views <-chan app.View, index int) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case view, ok := <-views:
			if !ok {
				return nil
			}
			if !view.HasSession {
				return nil
			}
			if view.Session.Index > index || view.Status == domain.StatusCompleted {
				return nil
			}
		}
	}
}

// promptLine reads one trimmed line of input.
func promptLine(in *bufio.Scanner, out io.Writer, prompt string) (string, error) {
	fmt.Fprintf(out, "%s: ", prompt)
	if !in.Scan() {
		if err := in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(in.Text()), nil
}
