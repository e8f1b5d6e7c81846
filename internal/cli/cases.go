package cli

import (
	"github.com/spf13/cobra"
)

// NewCasesCmd builds the risk dashboard table.
func NewCasesCmd(configPath, apiFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cases",
		Short: "List reported cases with their risk classification",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(*configPath, *apiFlag)
			if err != nil {
				return err
			}
			cases, err := client.ListCases(cmd.Context())
			if err != nil {
				return err
			}
			renderCases(cmd.OutOrStdout(), cases)
			return nil
		},
	}
}

// NewReconcileCmd triggers the server-side data comparison job.
func NewReconcileCmd(configPath, apiFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Run the backend data comparison job",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(*configPath, *apiFlag)
			if err != nil {
				return err
			}
			msg, err := client.RunComparison(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Println(msg)
			return nil
		},
	}
}
