package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pv-intake/internal/app"
	"pv-intake/internal/domain"
	"pv-intake/internal/infra/memory"
)

// NewPortalCmd builds the patient-facing portal: enter a health number,
// answer the outstanding questions one by one.
func NewPortalCmd(configPath, apiFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "portal",
		Short: "Patient portal: look up a health number and answer pending questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPortal(cmd.Context(), *configPath, *apiFlag, os.Stdin, cmd.OutOrStdout())
		},
	}
}

func runPortal(ctx context.Context, configPath, apiFlag string, in io.Reader, out io.Writer) error {
	client, cfg, err := buildClient(configPath, apiFlag)
	if err != nil {
		return err
	}

	cache := memory.NewSummaryCache(client, summaryTTL(cfg))
	engine := app.NewEngine(memory.NewSessionStore(), cache, app.Binding{
		Lookup: client.LookupPatient,
		Submit: func(ctx context.Context, q domain.Question, answer string) (domain.SubmitResult, error) {
			return client.SubmitResponse(ctx, q.ResponseID, answer)
		},
		BlankLookupMessage: "Please enter your PHN number",
	}, advanceDelay(cfg))

	if err := engine.RefreshSummary(ctx); err == nil {
		renderSummary(out, app.Project(engine.CurrentView().Summary))
	}

	scanner := bufio.NewScanner(in)
	for {
		phn, err := promptLine(scanner, out, "\nEnter your PHN number (blank to quit)")
		if err == io.EOF || (err == nil && phn == "") {
			return nil
		}
		if err != nil {
			return err
		}

		if err := engine.Lookup(ctx, phn); err != nil {
			fmt.Fprintln(out, engine.Feedback())
			continue
		}

		view := engine.CurrentView()
		fmt.Fprintf(out, "\nPatient: %s (PHN %s)\n", view.Session.Info.Initials, view.Session.Info.ContactNo)
		fmt.Fprintf(out, "Progress: %s\n", app.SubjectProgress(view.Session.Info))

		if err := runInterview(ctx, engine, scanner, out); err != nil {
			return err
		}
		cache.Invalidate()
		engine.Reset()
	}
}
