package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pv-intake/internal/app"
	"pv-intake/internal/domain"
	"pv-intake/internal/infra/memory"
)

// NewReportCmd builds the case intake flow: submit an adverse reaction,
// then walk the generated follow-up questions and send the batch.
func NewReportCmd(configPath, apiFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Report an adverse drug reaction and answer follow-up questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), *configPath, *apiFlag, os.Stdin, cmd.OutOrStdout())
		},
	}
}

func runReport(ctx context.Context, configPath, apiFlag string, in io.Reader, out io.Writer) error {
	client, cfg, err := buildClient(configPath, apiFlag)
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(in)

	report, err := readReport(scanner, out)
	if err != nil {
		return err
	}

	intake, err := client.SubmitCase(ctx, report)
	if err != nil {
		fmt.Fprintf(out, "Case submission failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "\nCase #%d filed. Risk Level: %s\n", intake.CaseID, intake.RiskLevel)

	missionCfg := missionConfig(cfg)
	mission := app.NewMission(missionCfg)
	renderMission(out, mission)

	if len(intake.FollowUpQuestions) == 0 {
		return nil
	}

	engine := app.NewEngine(memory.NewSessionStore(), nil, caseBinding(client, intake), advanceDelay(cfg))
	if err := engine.Lookup(ctx, strconv.Itoa(intake.CaseID)); err != nil {
		fmt.Fprintln(out, engine.Feedback())
		return nil
	}

	fmt.Fprintf(out, "\nA few follow-up questions about case #%d:\n", intake.CaseID)
	if err := runInterview(ctx, engine, scanner, out); err != nil {
		return err
	}

	if engine.CurrentView().Status == domain.StatusCompleted {
		mission = mission.FollowUpCompleted(missionCfg)
		renderMission(out, mission)
	}
	return nil
}

// caseBinding drives the same interview engine over the follow-up batch.
// Answers are kept local per question and sent as one joined batch when the
// last question is answered.
func caseBinding(client followUpSubmitter, intake domain.CaseIntakeResult) app.Binding {
	questions := make([]domain.Question, 0, len(intake.FollowUpQuestions))
	for i, text := range intake.FollowUpQuestions {
		questions = append(questions, domain.Question{
			ResponseID: strconv.Itoa(i + 1),
			CaseID:     strconv.Itoa(intake.CaseID),
			Text:       text,
		})
	}
	total := len(questions)

	return app.Binding{
		Lookup: func(_ context.Context, _ string) (domain.Lookup, error) {
			return domain.Lookup{
				Info: domain.SubjectInfo{
					CaseID:         strconv.Itoa(intake.CaseID),
					TotalQuestions: total,
				},
				Questions: questions,
			}, nil
		},
		Submit: func(_ context.Context, q domain.Question, _ string) (domain.SubmitResult, error) {
			answered, _ := strconv.Atoi(q.ResponseID)
			return domain.SubmitResult{
				CompletionPercentage: float64(answered) / float64(total) * 100,
				Completed:            answered == total,
			}, nil
		},
		Complete: func(ctx context.Context, view app.SessionView) (string, error) {
			answers := make([]string, 0, len(view.Questions))
			for _, q := range view.Questions {
				answers = append(answers, q.PatientAnswer)
			}
			if err := client.SubmitFollowUp(ctx, intake.CaseID, strings.Join(answers, " | ")); err != nil {
				return "", err
			}
			return "Thank you - your responses help improve medicine safety.", nil
		},
		BlankLookupMessage: "Case id missing",
	}
}

// followUpSubmitter is the slice of the gateway the case binding needs.
type followUpSubmitter interface {
	SubmitFollowUp(ctx context.Context, caseID int, answers string) error
}

func readReport(in *bufio.Scanner, out io.Writer) (domain.CaseReport, error) {
	var report domain.CaseReport
	for {
		lang, err := promptLine(in, out, "Language (en/hi)")
		if err != nil {
			return report, err
		}
		report.Language = lang
		if report.DrugName, err = promptLine(in, out, "Drug name"); err != nil {
			return report, err
		}
		if report.Reaction, err = promptLine(in, out, "Reaction"); err != nil {
			return report, err
		}
		if report.Phone, err = promptLine(in, out, "Patient phone (10 digits)"); err != nil {
			return report, err
		}
		if err := domain.ValidateReport(report); err != nil {
			fmt.Fprintf(out, "Invalid report: %v\n\n", err)
			continue
		}
		return report, nil
	}
}
