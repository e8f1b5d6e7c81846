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

// NewDashboardCmd builds the triage dashboard: patient roster with
// progress, graded question sessions against a selected patient.
func NewDashboardCmd(configPath, apiFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Patient roster and graded follow-up sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(cmd.Context(), *configPath, *apiFlag, os.Stdin, cmd.OutOrStdout())
		},
	}
}

func runDashboard(ctx context.Context, configPath, apiFlag string, in io.Reader, out io.Writer) error {
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
		Graded:             true,
		BlankLookupMessage: "Please enter a PHN number",
	}, advanceDelay(cfg))

	scanner := bufio.NewScanner(in)
	for {
		if err := engine.RefreshSummary(ctx); err == nil {
			renderSummary(out, app.Project(engine.CurrentView().Summary))
		}
		patients, err := client.ListPatients(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		renderPatients(out, patients)

		phn, err := promptLine(scanner, out, "\nPHN to start a session (blank to quit)")
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
		fmt.Fprintf(out, "\nPatient Session: %s (PHN %s)\n", view.Session.Info.Initials, view.Session.Info.ContactNo)

		if err := runInterview(ctx, engine, scanner, out); err != nil {
			return err
		}
		cache.Invalidate()
		engine.Reset()
	}
}
