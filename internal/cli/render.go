package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pv-intake/internal/app"
	"pv-intake/internal/domain"
)

func renderSummary(out io.Writer, view app.ProgressView) {
	fmt.Fprintln(out, "System Overview")
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Total Patients\t%d\n", view.TotalPatients)
	fmt.Fprintf(w, "Completed\t%d\n", view.Completed)
	fmt.Fprintf(w, "Pending\t%d\n", view.Pending)
	fmt.Fprintf(w, "High Risk\t%d\n", view.HighRisk)
	fmt.Fprintf(w, "Low Risk\t%d\n", view.LowRisk)
	fmt.Fprintf(w, "Overall Progress\t%s\n", view.OverallProgress)
	w.Flush()
}

func renderPatients(out io.Writer, patients []domain.SubjectInfo) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INITIALS\tPHN\tPROGRESS")
	for _, p := range patients {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Initials, p.ContactNo, app.SubjectProgress(p))
	}
	w.Flush()
}

func renderCases(out io.Writer, cases []domain.Case) {
	highRisk := 0
	for _, c := range cases {
		if c.RiskLevel == domain.RiskHigh {
			highRisk++
		}
	}
	if highRisk > 0 {
		fmt.Fprintf(out, "ALERT: %d HIGH RISK case(s) detected - immediate attention required\n\n", highRisk)
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDRUG\tREACTION\tRISK\tPHONE")
	for _, c := range cases {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.DrugName, c.Reaction, c.RiskLevel, c.Phone)
	}
	w.Flush()
}

func renderLeaderboard(out io.Writer, entries []domain.LeaderboardEntry) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tCASE\tRESPONSES")
	for i, e := range entries {
		fmt.Fprintf(w, "%d\t%d\t%d\n", i+1, e.ID, e.ResponseCount)
	}
	w.Flush()
}

func renderMission(out io.Writer, m app.Mission) {
	fmt.Fprintln(out, "\nHealth Mission")
	fmt.Fprintf(out, "Points: %d\n", m.Points)
	fmt.Fprintf(out, "Level: %s\n", m.Level)
	fmt.Fprintf(out, "Streak: %d day(s)\n", m.Streak)
	fmt.Fprintf(out, "Achievements: %s\n", strings.Join(m.Badges(), ", "))
}
